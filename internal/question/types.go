package question

import (
	"fmt"
	"sort"
	"strings"
)

// Difficulty is the question difficulty level.
type Difficulty string

const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Difficulties lists all valid difficulty levels in ascending order.
var Difficulties = []Difficulty{
	DifficultyBasic,
	DifficultyIntermediate,
	DifficultyAdvanced,
}

// KnownDifficulty reports whether d is a valid difficulty value.
func KnownDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyBasic, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Question is a single multiple-choice exam question. Immutable after load.
type Question struct {
	ID            string            `json:"id" yaml:"id"`
	Category      string            `json:"category" yaml:"category"`
	Difficulty    Difficulty        `json:"difficulty" yaml:"difficulty"`
	Text          string            `json:"questionText" yaml:"questionText"`
	Options       map[string]string `json:"options" yaml:"options"`
	CorrectOption string            `json:"correctOption" yaml:"correctOption"`
	Explanation   string            `json:"explanation" yaml:"explanation"`
	Reference     string            `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// MinOptions is the minimum number of answer options per question.
const MinOptions = 2

// Validate checks the question invariants: non-empty ID, text and category,
// a known difficulty, at least MinOptions options, and a correct option that
// is one of the option keys.
func (q *Question) Validate() error {
	var problems []string
	if q.ID == "" {
		problems = append(problems, "missing id")
	}
	if strings.TrimSpace(q.Text) == "" {
		problems = append(problems, "missing question text")
	}
	if q.Category == "" {
		problems = append(problems, "missing category")
	}
	if !KnownDifficulty(q.Difficulty) {
		problems = append(problems, fmt.Sprintf("unknown difficulty %q", q.Difficulty))
	}
	if len(q.Options) < MinOptions {
		problems = append(problems, fmt.Sprintf("needs at least %d options, has %d", MinOptions, len(q.Options)))
	}
	if q.CorrectOption == "" {
		problems = append(problems, "missing correct option")
	} else if _, ok := q.Options[q.CorrectOption]; !ok {
		problems = append(problems, fmt.Sprintf("correct option %q is not an option key", q.CorrectOption))
	}
	if len(problems) > 0 {
		return fmt.Errorf("question %s: %s", q.ID, strings.Join(problems, "; "))
	}
	return nil
}

// HasOption reports whether key is one of the question's option keys.
func (q *Question) HasOption(key string) bool {
	_, ok := q.Options[key]
	return ok
}

// OptionKeys returns the option letter keys in alphabetical order.
func (q *Question) OptionKeys() []string {
	keys := make([]string, 0, len(q.Options))
	for k := range q.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
