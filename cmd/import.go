package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/medprep/internal/bankimport"
	"github.com/abhisek/medprep/internal/config"
	"github.com/abhisek/medprep/internal/question"
	"github.com/abhisek/medprep/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import questions into the local bank",
	Long:  "Import questions from a JSON, YAML, XLSX or CSV file and merge them into the local question bank. Imported questions replace existing ones with the same ID.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]

		incoming, err := readImportFile(src)
		if err != nil {
			return err
		}
		if len(incoming) == 0 {
			return fmt.Errorf("no valid questions found in %s", src)
		}

		bankPath, err := resolveBankPath(cmd)
		if err != nil {
			return err
		}

		merged, added, replaced, err := mergeBank(bankPath, incoming)
		if err != nil {
			return err
		}

		if err := store.EnsureDir(bankPath); err != nil {
			return fmt.Errorf("create bank directory: %w", err)
		}
		if err := question.SaveFile(bankPath, merged); err != nil {
			return err
		}

		fmt.Printf("Imported %d question(s) into %s (%d new, %d replaced, %d total)\n",
			len(incoming), bankPath, added, replaced, len(merged))
		return nil
	},
}

// readImportFile loads questions from any supported format. Spreadsheet
// formats report per-row problems without aborting the import.
func readImportFile(path string) ([]question.Question, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".csv":
		questions, result, err := bankimport.ImportFile(path, bankimport.DefaultLayout())
		if err != nil {
			return nil, err
		}
		for _, msg := range result.Errors {
			warnf("%s", msg)
		}
		if result.Skipped > 0 {
			warnf("skipped %d row(s)", result.Skipped)
		}
		return questions, nil
	default:
		return question.LoadFile(path)
	}
}

// resolveBankPath returns the bank path from --bank, the config file, or
// the XDG default.
func resolveBankPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		return p, nil
	}
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	fileCfg, err := config.LoadConfig(cfgPath)
	if err == nil && fileCfg.Practice.BankPath != nil {
		return *fileCfg.Practice.BankPath, nil
	}
	return config.DefaultBankPath(), nil
}

// mergeBank folds incoming questions into the existing bank. Incoming
// questions win on ID collision; existing order is preserved.
func mergeBank(bankPath string, incoming []question.Question) ([]question.Question, int, int, error) {
	var existing []question.Question
	if _, err := os.Stat(bankPath); err == nil {
		existing, err = question.LoadFile(bankPath)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("load existing bank: %w", err)
		}
	}

	byID := make(map[string]int, len(existing))
	merged := make([]question.Question, len(existing))
	copy(merged, existing)
	for i, q := range merged {
		byID[q.ID] = i
	}

	var added, replaced int
	for _, q := range incoming {
		if i, ok := byID[q.ID]; ok {
			merged[i] = q
			replaced++
			continue
		}
		byID[q.ID] = len(merged)
		merged = append(merged, q)
		added++
	}
	return merged, added, replaced, nil
}
