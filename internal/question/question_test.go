package question

import (
	"strings"
	"testing"
)

func validQuestion(id string) Question {
	return Question{
		ID:         id,
		Category:   "Cardiología",
		Difficulty: DifficultyBasic,
		Text:       "¿Cuál es el tratamiento de primera línea?",
		Options: map[string]string{
			"A": "Opción A",
			"B": "Opción B",
			"C": "Opción C",
			"D": "Opción D",
		},
		CorrectOption: "B",
		Explanation:   "La opción B es correcta.",
	}
}

func TestValidate_OK(t *testing.T) {
	q := validQuestion("q1")
	if err := q.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_CorrectOptionMustBeAKey(t *testing.T) {
	q := validQuestion("q1")
	q.CorrectOption = "E"
	err := q.Validate()
	if err == nil {
		t.Fatal("expected error for correct option outside option keys")
	}
	if !strings.Contains(err.Error(), "not an option key") {
		t.Errorf("error = %q, want option key complaint", err)
	}
}

func TestValidate_MinimumOptions(t *testing.T) {
	q := validQuestion("q1")
	q.Options = map[string]string{"A": "only one"}
	q.CorrectOption = "A"
	if err := q.Validate(); err == nil {
		t.Fatal("expected error for single-option question")
	}
}

func TestValidate_UnknownDifficulty(t *testing.T) {
	q := validQuestion("q1")
	q.Difficulty = "expert"
	if err := q.Validate(); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
}

func TestNewStore_RejectsDuplicateIDs(t *testing.T) {
	_, err := NewStore([]Question{validQuestion("q1"), validQuestion("q1")})
	if err == nil {
		t.Fatal("expected duplicate ID error")
	}
}

func TestStore_Lookups(t *testing.T) {
	q1 := validQuestion("q1")
	q2 := validQuestion("q2")
	q2.Category = "Neurología"
	q2.Difficulty = DifficultyAdvanced
	q3 := validQuestion("q3")

	store, err := NewStore([]Question{q1, q2, q3})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if store.Len() != 3 {
		t.Errorf("Len = %d, want 3", store.Len())
	}
	if got := store.ByCategory("Cardiología"); len(got) != 2 {
		t.Errorf("ByCategory(Cardiología) = %d questions, want 2", len(got))
	}
	if got := store.ByDifficulty(DifficultyAdvanced); len(got) != 1 || got[0].ID != "q2" {
		t.Errorf("ByDifficulty(advanced) = %v, want [q2]", got)
	}
	if _, ok := store.ByID("q3"); !ok {
		t.Error("ByID(q3) not found")
	}
	if _, ok := store.ByID("nope"); ok {
		t.Error("ByID(nope) should not be found")
	}

	cats := store.Categories()
	if len(cats) != 2 || cats[0] != "Cardiología" || cats[1] != "Neurología" {
		t.Errorf("Categories = %v", cats)
	}
}

func TestLoadJSON_SchemaRejectsMalformedBank(t *testing.T) {
	// correctOption outside the allowed letter range.
	bank := `{"questions":[{"id":"q1","category":"Cardiología","difficulty":"basic",
		"questionText":"¿?","options":{"A":"a","B":"b"},"correctOption":"Z","explanation":""}]}`
	if _, err := LoadJSON(strings.NewReader(bank)); err == nil {
		t.Fatal("expected schema validation error")
	}
}

func TestLoadJSON_NormalizesOptionKeys(t *testing.T) {
	bank := `{"version":1,"questions":[{"id":"q1","category":"Cardiología","difficulty":"basic",
		"questionText":"¿?","options":{"a":"uno","b":"dos"},"correctOption":"b","explanation":"x"}]}`
	qs, err := LoadJSON(strings.NewReader(bank))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if qs[0].CorrectOption != "B" {
		t.Errorf("CorrectOption = %q, want B", qs[0].CorrectOption)
	}
	if _, ok := qs[0].Options["B"]; !ok {
		t.Errorf("Options = %v, want upper-case keys", qs[0].Options)
	}
}

func TestLoadYAML(t *testing.T) {
	bank := `
version: 1
questions:
  - id: q1
    category: Pediatría
    difficulty: intermediate
    questionText: "¿Cuál es la dosis?"
    options:
      A: "10 mg/kg"
      B: "15 mg/kg"
    correctOption: A
    explanation: "Dosis estándar."
`
	qs, err := LoadYAML(strings.NewReader(bank))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if len(qs) != 1 || qs[0].Category != "Pediatría" {
		t.Errorf("got %+v", qs)
	}
}
