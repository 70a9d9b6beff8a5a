package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find blog chunks similar to a query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "number of results (default 5)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	query := strings.Join(args, " ")
	results, err := searchService.Search(cmd.Context(), query, searchLimit)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		cmd.Println("No results.")
		return nil
	}

	for i, res := range results {
		title := res.Metadata["title"]
		if title == "" {
			title = res.Metadata["document_name"]
		}
		cmd.Printf("%d. %s (distance %.4f)\n", i+1, title, res.Distance)
		if date := res.Metadata["date"]; date != "" {
			cmd.Printf("   Date: %s\n", date)
		}
		if url := res.Metadata["source_url"]; url != "" {
			cmd.Printf("   URL:  %s\n", url)
		}
		cmd.Printf("   %s\n\n", snippet(res.Content, 200))
	}
	return nil
}

// snippet truncates content to at most n characters on a word boundary.
func snippet(content string, n int) string {
	content = strings.Join(strings.Fields(content), " ")
	if len(content) <= n {
		return content
	}
	cut := content[:n]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
