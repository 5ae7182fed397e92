package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/medprep/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "medprep",
	Short: "Terminal trainer for medical specialty exams",
	Long:  "MedPrep: terminal app for practicing multiple-choice medical licensing exam questions, with timed simulations, review of failed questions and progress tracking.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MEDPREP_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/medprep/config.toml)")
	rootCmd.PersistentFlags().String("bank", "", "Path to question bank file (overrides config)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(bookmarksCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MEDPREP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
