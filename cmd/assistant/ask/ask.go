// Package askcmder provides the one-shot question cobra command.
package askcmder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ncuacg/assistant/pkg/chat"
	"github.com/ncuacg/assistant/pkg/cliui"
	"github.com/ncuacg/assistant/pkg/config"
	"github.com/ncuacg/assistant/pkg/dotdir"
	embeddingutils "github.com/ncuacg/assistant/pkg/embeddings/utils"
	llmutils "github.com/ncuacg/assistant/pkg/llm/utils"
	"github.com/ncuacg/assistant/pkg/logger"
	"github.com/ncuacg/assistant/pkg/notice"
	"github.com/ncuacg/assistant/pkg/persona"
	"github.com/ncuacg/assistant/pkg/retrieval"
)

const askLongDesc string = `Ask the assistant a one-shot question.

Retrieves relevant notices from the snapshot, asks the configured LLM in
the selected persona, and prints the rendered reply.

Examples:
  assistant ask "what's on this weekend?"
  assistant ask --persona parent_guardian "is the screening ok for kids?"
  assistant ask --context-only "autumn schedule"`

const askShortDesc string = "Ask a one-shot question"

type askCommander struct {
	personaID   string
	contextOnly bool
	topK        int
	configDir   string
	debug       bool

	logger *zap.Logger
}

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			return cmder.run(cmd.Context(), strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&cmder.personaID, "persona", "p", "", "Persona id to answer as (default from config)")
	cmd.Flags().BoolVarP(&cmder.contextOnly, "context-only", "c", false, "Print the retrieved context block instead of asking the LLM")
	cmd.Flags().IntVarP(&cmder.topK, "top-k", "k", 0, "Number of documents to retrieve (default from config)")

	return cmd
}

func (c *askCommander) run(ctx context.Context, question string) error {
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

	retriever, err := c.newRetriever(cfg)
	if err != nil {
		return err
	}

	if c.contextOnly {
		if retriever == nil {
			return fmt.Errorf("no snapshot found; run \"assistant seed\" first")
		}

		block, err := retriever.RetrieveContext(ctx, question, c.topK)
		if err != nil {
			return fmt.Errorf("retrieving context: %w", err)
		}
		if block == "" {
			fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render("No matching documents."))
			return nil
		}
		fmt.Printf("\n%s\n", block)
		return nil
	}

	registry := persona.NewRegistry(persona.Config{
		Paths:     personaPaths(cfg),
		DefaultID: cfg.Persona.Default,
	}, c.logger)
	resolver := persona.NewResolver(registry, cfg.Persona.SecretPhrases, c.logger)

	chatter, err := llmutils.NewChatter(&llmutils.NewChatterOpts{
		ProviderType: cfg.LLM.Provider,
		TargetURL:    cfg.LLM.Target,
		Model:        cfg.LLM.Model,
		APIKey:       os.Getenv(cfg.LLM.APIKeyEnv),
		Temperature:  cfg.LLM.Temperature,
	})
	if err != nil {
		return fmt.Errorf("creating chat client: %w", err)
	}
	defer chatter.Close()

	service := chat.NewService(retriever, registry, resolver, chatter, c.logger)

	var reply chat.Reply
	if err := cliui.Step(os.Stdout, "Asking the assistant", func() error {
		var askErr error
		reply, askErr = service.Ask(ctx, question, c.personaID)
		return askErr
	}); err != nil {
		return err
	}

	p, err := registry.Get(reply.PersonaUsed)
	name := reply.PersonaUsed
	if err == nil {
		name = p.Name
	}

	fmt.Printf("\n  %s %s\n",
		cliui.KeyStyle.Render("Persona:"),
		cliui.NameStyle.Render(name),
	)

	rendered, err := cliui.RenderMarkdown(reply.Text)
	if err != nil {
		// Fall back to plain text when the terminal renderer fails.
		rendered = "\n" + reply.Text + "\n"
	}
	fmt.Print(rendered)

	return nil
}

// newRetriever mirrors the serve command's snapshot wiring, but tolerates a
// missing snapshot by answering without context.
func (c *askCommander) newRetriever(cfg *config.Config) (*retrieval.Retriever, error) {
	path := cfg.Storage.SnapshotPath
	if path == "" {
		ddm := dotdir.NewManager()
		if target, err := ddm.Target(c.configDir); err == nil && target != "" {
			path = filepath.Join(target, notice.DefaultSnapshotFile)
		} else {
			path = notice.DefaultSnapshotFile
		}
	}

	if _, err := os.Stat(path); err != nil {
		c.logger.Debug("snapshot not found, answering without context",
			zap.String("path", path),
		)
		return nil, nil
	}

	store, err := notice.LoadStore(path)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	embedder, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
		ProviderType: cfg.Embedding.Provider,
		TargetURL:    cfg.Embedding.Target,
		Model:        cfg.Embedding.Model,
		Prefix:       cfg.Embedding.QueryPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	return retrieval.NewRetriever(store, embedder, retrieval.Options{
		TopK:       cfg.Retrieval.TopK,
		PoolFactor: cfg.Retrieval.PoolFactor,
		WindowDays: cfg.Retrieval.WindowDays,
	}, c.logger), nil
}

func personaPaths(cfg *config.Config) []string {
	if len(cfg.Persona.Paths) > 0 {
		return cfg.Persona.Paths
	}
	return persona.DefaultCandidatePaths
}
