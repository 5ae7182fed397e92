// Package bankimport loads question banks from spreadsheet files so
// editors can maintain them in Excel instead of JSON.
package bankimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/medprep/internal/question"
)

// Layout describes where each field lives in a row. Columns are 0-based
// indexes into the row.
type Layout struct {
	SheetName   string
	StartRow    int // 1-based first data row
	ID          int
	Category    int
	Difficulty  int
	Text        int
	FirstOption int // options run from FirstOption in A..E order
	OptionCount int
	Correct     int
	Explanation int
	Reference   int
}

// DefaultLayout matches the distributed bank template: one header row,
// then id, category, difficulty, text, options A-E, correct, explanation,
// reference.
func DefaultLayout() Layout {
	return Layout{
		SheetName:   "Sheet1",
		StartRow:    2,
		ID:          0,
		Category:    1,
		Difficulty:  2,
		Text:        3,
		FirstOption: 4,
		OptionCount: 5,
		Correct:     9,
		Explanation: 10,
		Reference:   11,
	}
}

// Result summarizes one import run.
type Result struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// optionLetters are the option keys in column order.
var optionLetters = []string{"A", "B", "C", "D", "E"}

// ImportFile reads questions from an .xlsx or .csv file. Rows that fail
// validation are skipped and reported in the result; the good rows are
// still returned.
func ImportFile(path string, layout Layout) ([]question.Question, *Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return importCSV(path, layout)
	case ".xlsx":
		return importExcel(path, layout)
	default:
		return nil, nil, fmt.Errorf("unsupported import format %q", filepath.Ext(path))
	}
}

func importExcel(path string, layout Layout) ([]question.Question, *Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(layout.SheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", layout.SheetName, err)
	}

	return collectRows(rows, layout)
}

func importCSV(path string, layout Layout) ([]question.Question, *Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, row)
	}

	return collectRows(rows, layout)
}

func collectRows(rows [][]string, layout Layout) ([]question.Question, *Result, error) {
	result := &Result{Errors: make([]string, 0)}
	seen := make(map[string]bool)
	var out []question.Question

	for i, row := range rows {
		if i < layout.StartRow-1 {
			continue
		}
		if blankRow(row) {
			continue
		}
		result.TotalProcessed++

		q, err := parseRow(row, layout)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if seen[q.ID] {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: duplicate question id %q", i+1, q.ID))
			continue
		}
		seen[q.ID] = true
		out = append(out, q)
		result.Imported++
	}

	return out, result, nil
}

func parseRow(row []string, layout Layout) (question.Question, error) {
	q := question.Question{
		ID:            cell(row, layout.ID),
		Category:      cell(row, layout.Category),
		Difficulty:    question.Difficulty(strings.ToLower(cell(row, layout.Difficulty))),
		Text:          cell(row, layout.Text),
		CorrectOption: strings.ToUpper(cell(row, layout.Correct)),
		Explanation:   cell(row, layout.Explanation),
		Reference:     cell(row, layout.Reference),
		Options:       make(map[string]string),
	}

	if q.ID == "" {
		q.ID = uuid.NewString()
	}

	count := layout.OptionCount
	if count > len(optionLetters) {
		count = len(optionLetters)
	}
	for i := 0; i < count; i++ {
		text := cell(row, layout.FirstOption+i)
		if text != "" {
			q.Options[optionLetters[i]] = text
		}
	}

	if err := q.Validate(); err != nil {
		return question.Question{}, err
	}
	return q, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
