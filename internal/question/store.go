package question

import (
	"fmt"
	"sort"
)

// Store holds the full loaded question set. Read-only after construction;
// every accessor returns a fresh slice so callers cannot mutate the set.
type Store struct {
	questions []Question
	byID      map[string]int
}

// NewStore validates every question and builds the in-memory store.
// Duplicate IDs are rejected.
func NewStore(questions []Question) (*Store, error) {
	byID := make(map[string]int, len(questions))
	for i := range questions {
		q := &questions[i]
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %s", q.ID)
		}
		byID[q.ID] = i
	}
	return &Store{questions: questions, byID: byID}, nil
}

// Len returns the number of questions in the store.
func (s *Store) Len() int {
	return len(s.questions)
}

// All returns every question in load order.
func (s *Store) All() []Question {
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// ByID returns the question with the given ID, or false if absent.
func (s *Store) ByID(id string) (Question, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Question{}, false
	}
	return s.questions[i], true
}

// ByCategory returns the questions in the given category, in load order.
func (s *Store) ByCategory(category string) []Question {
	var out []Question
	for _, q := range s.questions {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out
}

// ByDifficulty returns the questions at the given difficulty, in load order.
func (s *Store) ByDifficulty(d Difficulty) []Question {
	var out []Question
	for _, q := range s.questions {
		if q.Difficulty == d {
			out = append(out, q)
		}
	}
	return out
}

// Categories returns the distinct categories present in the store, sorted.
func (s *Store) Categories() []string {
	seen := make(map[string]bool)
	for _, q := range s.questions {
		seen[q.Category] = true
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// CategoryCounts returns the number of questions per category.
func (s *Store) CategoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, q := range s.questions {
		counts[q.Category]++
	}
	return counts
}
