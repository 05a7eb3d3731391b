// Package servecmder provides the assistant API server cobra command.
package servecmder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ncuacg/assistant/api"
	"github.com/ncuacg/assistant/pkg/chat"
	"github.com/ncuacg/assistant/pkg/config"
	"github.com/ncuacg/assistant/pkg/dotdir"
	embeddingutils "github.com/ncuacg/assistant/pkg/embeddings/utils"
	llmutils "github.com/ncuacg/assistant/pkg/llm/utils"
	"github.com/ncuacg/assistant/pkg/logger"
	"github.com/ncuacg/assistant/pkg/notice"
	"github.com/ncuacg/assistant/pkg/persona"
	"github.com/ncuacg/assistant/pkg/retrieval"
)

const serveLongDesc string = `Run the assistant API server.

Serves persona listings, context retrieval, and chat over HTTP. The server
loads the document snapshot once at startup; rebuild it with "assistant seed"
and restart to pick up new content.

Examples:
  assistant serve
  assistant serve --listen :8090
  assistant serve --snapshot ./snapshot.gob`

const serveShortDesc string = "Run the assistant API server"

type serveCommander struct {
	listen       string
	snapshotPath string
	configDir    string
	debug        bool

	logger *zap.Logger
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address for API server to listen on (default from config)")
	cmd.Flags().StringVarP(&cmder.snapshotPath, "snapshot", "s", "", "Path to the document snapshot (default from config)")

	return cmd
}

func (c *serveCommander) run(cmd *cobra.Command) error {
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

	if !cmd.Flags().Changed("listen") {
		c.listen = cfg.API.Listen
	}
	if !cmd.Flags().Changed("snapshot") {
		c.snapshotPath = resolveSnapshotPath(cfg, c.configDir)
	}

	registry := persona.NewRegistry(persona.Config{
		Paths:     personaPaths(cfg),
		DefaultID: cfg.Persona.Default,
	}, c.logger)
	resolver := persona.NewResolver(registry, cfg.Persona.SecretPhrases, c.logger)

	retriever, err := c.newRetriever(cfg)
	if err != nil {
		return err
	}

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

	chatService := chat.NewService(retriever, registry, resolver, chatter, c.logger)

	server := api.NewServer(api.Config{
		ListenAddr: c.listen,
	}, retriever, registry, chatService, c.logger)

	return server.Run()
}

// newRetriever loads the snapshot and wires the retrieval pipeline. A
// missing snapshot is not fatal for serving; retrieval routes answer 503
// and chat degrades to uncontextualized replies until a snapshot is built.
func (c *serveCommander) newRetriever(cfg *config.Config) (*retrieval.Retriever, error) {
	if _, err := os.Stat(c.snapshotPath); err != nil {
		c.logger.Warn("snapshot not found, serving without retrieval",
			zap.String("path", c.snapshotPath),
		)
		return nil, nil
	}

	store, err := notice.LoadStore(c.snapshotPath)
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

	c.logger.Info("loaded document snapshot",
		zap.String("path", c.snapshotPath),
		zap.Int("documents", store.Len()),
		zap.Int("dimensions", store.Dimensions()),
	)

	return retrieval.NewRetriever(store, embedder, retrieval.Options{
		TopK:       cfg.Retrieval.TopK,
		PoolFactor: cfg.Retrieval.PoolFactor,
		WindowDays: cfg.Retrieval.WindowDays,
	}, c.logger), nil
}

// resolveSnapshotPath prefers the configured path, then the .assistant/
// directory, then the working directory.
func resolveSnapshotPath(cfg *config.Config, configDir string) string {
	if cfg.Storage.SnapshotPath != "" {
		return cfg.Storage.SnapshotPath
	}

	ddm := dotdir.NewManager()
	if target, err := ddm.Target(configDir); err == nil && target != "" {
		return filepath.Join(target, notice.DefaultSnapshotFile)
	}

	return notice.DefaultSnapshotFile
}

// personaPaths prefers configured paths over the default candidates.
func personaPaths(cfg *config.Config) []string {
	if len(cfg.Persona.Paths) > 0 {
		return cfg.Persona.Paths
	}
	return persona.DefaultCandidatePaths
}
