package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/blograg/internal/core/domain"
)

var (
	updateLatest bool
	updatePosts  int
	updateForce  bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Ingest new blog posts into the vector store",
	Long: `Lists the posts in the source repository, downloads the ones whose
content is not yet indexed, chunks them and stores the chunks in the
vector store. Already-indexed posts are skipped unless --force is given.`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateLatest, "latest", false, "only ingest the most recent post")
	updateCmd.Flags().IntVar(&updatePosts, "posts", 0, "limit ingestion to the N newest posts")
	updateCmd.Flags().BoolVar(&updateForce, "force", false, "reprocess posts even if already indexed")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	if ingester == nil {
		return errors.New("ingest service not configured")
	}
	if err := requireSource(); err != nil {
		return err
	}

	opts := domain.IngestOptions{RecencyLimit: updatePosts, Force: updateForce}
	if updateLatest {
		opts.RecencyLimit = 1
	}

	cmd.Printf("Updating from %s/%s...\n", cfg.Source.Owner, cfg.Source.Repo)
	result := updateWithProgress(cmd, opts)

	if result.Status == domain.IngestError {
		return errors.New(result.Message)
	}
	cmd.Printf("\r%s\n", result.Message)
	return nil
}

// updateWithProgress runs the ingestion while displaying progress updates.
func updateWithProgress(cmd *cobra.Command, opts domain.IngestOptions) domain.IngestResult {
	resultCh := make(chan domain.IngestResult, 1)
	go func() {
		resultCh <- ingester.Update(context.Background(), opts)
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	var last domain.ProgressState
	for {
		select {
		case result := <-resultCh:
			return result
		case <-ticker.C:
			progress := ingester.Progress()
			if progress != last {
				cmd.Printf("\r%-11s %d/%d %s", progress.Stage, progress.Current, progress.Total, progress.Message)
				last = progress
			}
		}
	}
}
