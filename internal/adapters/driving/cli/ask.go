package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var askLimit int

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question from the indexed blog content",
	Long: `Retrieves the chunks most relevant to the question and forwards them
to the configured language model, which produces a cited answer.
Requires an API key (llm.api_key in config.toml or DEEPSEEK_API_KEY).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askLimit, "limit", "n", 0, "number of context chunks (default 5)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	question := strings.Join(args, " ")
	answer, err := searchService.Ask(cmd.Context(), question, askLimit)
	if err != nil {
		return err
	}

	cmd.Println(answer.Text)

	if len(answer.Sources) > 0 {
		cmd.Println("\nSources:")
		seen := make(map[string]bool)
		for _, src := range answer.Sources {
			name := src.Metadata["document_name"]
			url := src.Metadata["source_url"]
			key := name + url
			if seen[key] {
				continue
			}
			seen[key] = true
			if url != "" {
				cmd.Printf("  - %s (%s)\n", name, url)
			} else {
				cmd.Printf("  - %s\n", name)
			}
		}
	}
	return nil
}
