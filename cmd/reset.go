package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/medprep/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all local progress data",
	Long:  "Delete sessions, answers, bookmarks and the exam log. The question bank is not touched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirmReset() {
			fmt.Println("Aborted.")
			return nil
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.Reset(); err != nil {
			return fmt.Errorf("reset store: %w", err)
		}
		fmt.Println("All progress data deleted.")
		return nil
	},
}

func confirmReset() bool {
	fmt.Print("This deletes all sessions, answers and bookmarks. Type 'yes' to continue: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == "yes"
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
}
