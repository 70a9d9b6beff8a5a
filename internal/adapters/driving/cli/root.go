// Package cli wires the blograg services into cobra commands.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/blograg/internal/adapters/driven/config/file"
	"github.com/custodia-labs/blograg/internal/adapters/driven/llm/deepseek"
	"github.com/custodia-labs/blograg/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/blograg/internal/adapters/driven/vectorstore/chroma"
	"github.com/custodia-labs/blograg/internal/connectors/github"
	"github.com/custodia-labs/blograg/internal/core/ports/driven"
	"github.com/custodia-labs/blograg/internal/core/ports/driving"
	"github.com/custodia-labs/blograg/internal/core/services"
	"github.com/custodia-labs/blograg/internal/logger"
	"github.com/custodia-labs/blograg/internal/postprocessors"
	"github.com/custodia-labs/blograg/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configDir   string
	verboseFlag bool
)

// Services used by the commands, built once in initServices.
var (
	cfg           configfile.Config
	ingester      driving.Ingester
	searchService driving.SearchService
	runStore      driven.RunStore
)

var rootCmd = &cobra.Command{
	Use:   "blograg",
	Short: "Index a blog into a vector store and answer questions about it",
	Long: `blograg ingests blog posts from a GitHub repository, splits them into
overlapping chunks, stores them in a Chroma collection and answers
questions by retrieving relevant chunks and forwarding them to a hosted
language model.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.blograg)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// initServices loads configuration and builds the service graph. Remote
// collaborators are constructed lazily enough that commands not touching
// them (version, runs) still work offline.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	var err error
	cfg, err = configfile.Load(configDir)
	if err != nil {
		return err
	}

	store := chroma.New(chroma.Config{
		BaseURL:    cfg.Chroma.URL,
		Collection: cfg.Chroma.Collection,
	})

	source := github.New(context.Background(), github.Config{
		Owner:     cfg.Source.Owner,
		Repo:      cfg.Source.Repo,
		PostsPath: cfg.Source.PostsPath,
		Token:     cfg.Source.Token,
	})

	pipeline := postprocessors.New(chunker.New(
		chunker.WithChunkSize(cfg.Chunking.ChunkSize),
		chunker.WithOverlap(cfg.Chunking.ChunkOverlap),
	))

	// The completion service is optional; without a key, ask is
	// unavailable but update/search/status keep working.
	var llm driven.CompletionService
	if cfg.LLM.APIKey != "" {
		llm, err = deepseek.New(deepseek.Config{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		})
		if err != nil {
			return err
		}
	}

	ing := services.NewIngester(source, pipeline, store)
	if rs, err := sqlite.NewStore(cfg.Data.Dir); err != nil {
		logger.Warn("Run history disabled: %v", err)
	} else {
		ing.SetRunStore(rs)
		runStore = rs
	}

	ingester = ing
	searchService = services.NewSearchService(store, llm, store.Collection())
	return nil
}

// requireSource validates that the source repository is configured.
func requireSource() error {
	if cfg.Source.Owner == "" || cfg.Source.Repo == "" {
		return errors.New("source repository not configured: set source.owner and source.repo in config.toml")
	}
	return nil
}
