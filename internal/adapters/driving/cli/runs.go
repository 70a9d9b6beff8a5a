package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent ingestion runs",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 0, "number of runs to show (default 20)")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	if runStore == nil {
		return errors.New("run history unavailable")
	}

	runs, err := runStore.List(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for _, run := range runs {
		cmd.Printf("%s  %-7s  %d/%d posts, %d skipped, %d chunks  %s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Status,
			run.PostsIndexed, run.PostsTotal, run.PostsSkipped, run.ChunksStored,
			run.Message)
	}
	return nil
}
