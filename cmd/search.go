package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/medprep/internal/filter"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the question bank",
	Long:  "Search question text, answer options, explanations and specialty names. Results are ordered by relevance.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		query := strings.Join(args, " ")

		results := env.Engine.SearchScored(env.Questions.All(), query, filter.SearchOptions{Limit: limit})
		if len(results) == 0 {
			fmt.Printf("No questions match %q.\n", query)
			return nil
		}

		for _, r := range results {
			q := r.Question
			fmt.Printf("%s  [%s/%s]\n", q.ID, q.Category, q.Difficulty)
			fmt.Printf("    %s\n", truncate(q.Text, 96))
		}
		fmt.Printf("\n%d question(s) found.\n", len(results))
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("limit", 20, "Maximum number of results (0 for all)")
}
