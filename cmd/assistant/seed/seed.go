// Package seedcmder provides the snapshot build cobra command.
package seedcmder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ncuacg/assistant/pkg/cliui"
	"github.com/ncuacg/assistant/pkg/config"
	"github.com/ncuacg/assistant/pkg/dotdir"
	embeddingutils "github.com/ncuacg/assistant/pkg/embeddings/utils"
	"github.com/ncuacg/assistant/pkg/logger"
	"github.com/ncuacg/assistant/pkg/notice"
)

const seedLongDesc string = `Build the document snapshot from content files.

Reads notices and about JSON files, splits them into passages, embeds each
passage with the configured embedding model, and writes the snapshot the
server loads at startup. Notices keep their titles, slugs, and start times
so retrieval can prefer upcoming events.

Examples:
  assistant seed --notices data/notices.json
  assistant seed --notices data/notices.json --about data/aboutInfo.json
  assistant seed --notices data/notices.json --output ./snapshot.gob`

const seedShortDesc string = "Build the document snapshot"

type seedCommander struct {
	noticesPath string
	aboutPath   string
	outputPath  string
	configDir   string
	debug       bool

	logger *zap.Logger
}

func NewSeedCmd() *cobra.Command {
	cmder := &seedCommander{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: seedShortDesc,
		Long:  seedLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&cmder.noticesPath, "notices", "n", "data/notices.json", "Path to the notices JSON file")
	cmd.Flags().StringVarP(&cmder.aboutPath, "about", "a", "", "Path to the about JSON file")
	cmd.Flags().StringVarP(&cmder.outputPath, "output", "o", "", "Snapshot output path (default from config)")

	return cmd
}

func (c *seedCommander) run(ctx context.Context) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	cfger, err := config.NewConfiger(c.configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg, err := cfger.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	output := c.outputPath
	if output == "" {
		output = cfg.Storage.SnapshotPath
	}
	if output == "" {
		ddm := dotdir.NewManager()
		target, err := ddm.Target(c.configDir)
		if err != nil {
			return fmt.Errorf("resolving snapshot path: %w", err)
		}
		output = filepath.Join(target, notice.DefaultSnapshotFile)
	}

	docs, err := c.loadDocuments()
	if err != nil {
		return err
	}

	embedder, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
		ProviderType: cfg.Embedding.Provider,
		TargetURL:    cfg.Embedding.Target,
		Model:        cfg.Embedding.Model,
		Prefix:       cfg.Embedding.PassagePrefix,
	})
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	defer embedder.Close()

	var snap *notice.Snapshot
	if err := cliui.Step(os.Stdout, "Embedding documents", func() error {
		var buildErr error
		snap, buildErr = notice.BuildSnapshot(ctx, embedder, docs, c.logger)
		return buildErr
	}); err != nil {
		return err
	}

	if err := cliui.Step(os.Stdout, "Writing snapshot", func() error {
		return notice.WriteSnapshot(output, snap)
	}); err != nil {
		return err
	}

	fmt.Printf("\n  %s Embedded %s passages into %s\n\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(strconv.Itoa(len(docs))),
		cliui.DimStyle.Render(output),
	)
	return nil
}

// loadDocuments reads and flattens the content files. The notices file is
// required; the about file is optional.
func (c *seedCommander) loadDocuments() ([]notice.Document, error) {
	data, err := os.ReadFile(c.noticesPath)
	if err != nil {
		return nil, fmt.Errorf("reading notices: %w", err)
	}

	docs, err := notice.ParseNotices(data)
	if err != nil {
		return nil, err
	}

	if c.aboutPath != "" {
		data, err := os.ReadFile(c.aboutPath)
		if err != nil {
			return nil, fmt.Errorf("reading about: %w", err)
		}

		aboutDocs, err := notice.ParseAbout(data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, aboutDocs...)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found in content files")
	}

	return docs, nil
}
