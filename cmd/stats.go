package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/medprep/internal/progress"
	"github.com/abhisek/medprep/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print progress statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		thresholds := thresholdsFromConfig(loadFileConfig(cmd))
		aggregator := progress.NewAggregator(st.Sessions(), st.Bookmarks())
		aggregator.SetThresholds(thresholds)

		overall, err := aggregator.Overall(ctx)
		if err != nil {
			return fmt.Errorf("load overall statistics: %w", err)
		}
		if overall.TotalQuestions == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		fmt.Printf("Questions answered:  %d\n", overall.TotalQuestions)
		fmt.Printf("Correct answers:     %d\n", overall.CorrectAnswers)
		fmt.Printf("Overall accuracy:    %d%%\n", overall.Accuracy)
		fmt.Printf("Performance level:   %s\n", overall.PerformanceLevel)
		fmt.Printf("Practice streak:     %d day(s)\n", overall.StreakDays)
		fmt.Printf("Trend:               %s\n", overall.Trend)

		categories, err := aggregator.Categories(ctx)
		if err != nil {
			return fmt.Errorf("load category statistics: %w", err)
		}
		if len(categories) == 0 {
			return nil
		}

		weak := progress.WeakCategoriesWith(categories, thresholds)
		strong := progress.StrongCategoriesWith(categories, thresholds)

		names := make([]string, 0, len(categories))
		for name := range categories {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println("\nBy specialty:")
		for _, name := range names {
			cs := categories[name]
			marker := " "
			switch {
			case strong[name]:
				marker = "+"
			case weak[name]:
				marker = "-"
			}
			fmt.Printf("  %s %-28s %3d%%  (%d/%d)\n", marker, name, cs.Accuracy, cs.Correct, cs.Total)
		}
		return nil
	},
}
