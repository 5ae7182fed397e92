package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List bookmarked questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ids, err := env.Store.Bookmarks().IDs(cmd.Context())
		if err != nil {
			return fmt.Errorf("load bookmarks: %w", err)
		}
		if len(ids) == 0 {
			fmt.Println("No bookmarked questions.")
			return nil
		}

		count := 0
		for _, q := range env.Questions.All() {
			if !ids[q.ID] {
				continue
			}
			count++
			fmt.Printf("%s  [%s / %s]\n    %s\n", q.ID, q.Category, q.Difficulty, truncate(q.Text, 100))
		}

		// Bookmarks whose question left the bank.
		if orphans := len(ids) - count; orphans > 0 {
			warnf("%d bookmark(s) refer to questions no longer in the bank", orphans)
		}
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

var toggleBookmarkCmd = &cobra.Command{
	Use:   "toggle <question-id>",
	Short: "Bookmark or un-bookmark a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		bookmarked, err := env.Store.Bookmarks().Toggle(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("toggle bookmark: %w", err)
		}
		if bookmarked {
			fmt.Println("Bookmarked", args[0])
		} else {
			fmt.Println("Removed bookmark", args[0])
		}
		return nil
	},
}

func init() {
	bookmarksCmd.AddCommand(toggleBookmarkCmd)
}
