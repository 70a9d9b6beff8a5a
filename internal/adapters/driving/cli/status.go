package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the vector index",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	status, err := searchService.Status(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("Collection: %s\n", status.Collection)
	cmd.Printf("Chunks:     %d\n", status.ChunkCount)

	if runStore != nil {
		if last, err := runStore.Last(cmd.Context()); err == nil {
			cmd.Printf("Last run:   %s (%s) %s\n",
				last.FinishedAt.Local().Format("2006-01-02 15:04:05"),
				last.Status, last.Message)
		}
	}
	return nil
}
