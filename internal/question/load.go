package question

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// bankSchema is the JSON Schema every JSON bank file must conform to.
// Structural checks only; semantic invariants (correct option membership,
// taxonomy) are enforced by Question.Validate via NewStore.
const bankSchema = `{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "category", "difficulty", "questionText", "options", "correctOption", "explanation"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "category": {"type": "string", "minLength": 1},
          "difficulty": {"enum": ["basic", "intermediate", "advanced"]},
          "questionText": {"type": "string", "minLength": 1},
          "options": {
            "type": "object",
            "minProperties": 2,
            "maxProperties": 5,
            "patternProperties": {"^[A-Ea-e]$": {"type": "string", "minLength": 1}},
            "additionalProperties": false
          },
          "correctOption": {"type": "string", "pattern": "^[A-Ea-e]$"},
          "explanation": {"type": "string"},
          "reference": {"type": "string"}
        }
      }
    }
  }
}`

var (
	compiledBankSchema *jsonschema.Schema
	compileSchemaOnce  sync.Once
	compileSchemaErr   error
)

func bankSchemaCompiled() (*jsonschema.Schema, error) {
	compileSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(bankSchema))
		if err != nil {
			compileSchemaErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://question-bank.json", doc); err != nil {
			compileSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledBankSchema, compileSchemaErr = c.Compile("schema://question-bank.json")
	})
	return compiledBankSchema, compileSchemaErr
}

// bankFile is the on-disk bank format shared by the JSON and YAML loaders.
type bankFile struct {
	Version   int        `json:"version" yaml:"version"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// LoadFile loads a question bank from a JSON or YAML file, dispatching on
// the file extension.
func LoadFile(path string) ([]Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bank file: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return LoadJSON(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return nil, fmt.Errorf("unsupported bank format %q (want .json, .yaml or .yml)", ext)
	}
}

// LoadJSON reads a JSON bank, validates it against the embedded schema and
// returns the questions in file order.
func LoadJSON(r io.Reader) ([]Question, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}

	schema, err := bankSchemaCompiled()
	if err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("bank schema validation: %w", err)
	}

	var bank bankFile
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	return normalize(bank.Questions), nil
}

// LoadYAML reads a YAML bank and returns the questions in file order.
func LoadYAML(r io.Reader) ([]Question, error) {
	var bank bankFile
	if err := yaml.NewDecoder(r).Decode(&bank); err != nil {
		return nil, fmt.Errorf("decode YAML bank: %w", err)
	}
	if len(bank.Questions) == 0 {
		return nil, fmt.Errorf("bank contains no questions")
	}
	return normalize(bank.Questions), nil
}

// SaveJSON writes the questions as a JSON bank in the same shape LoadJSON
// reads.
func SaveJSON(w io.Writer, questions []Question) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bankFile{Version: 1, Questions: questions}); err != nil {
		return fmt.Errorf("encode bank: %w", err)
	}
	return nil
}

// SaveFile writes the questions as a JSON bank at path.
func SaveFile(path string, questions []Question) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create bank file: %w", err)
	}
	defer f.Close()

	if err := SaveJSON(f, questions); err != nil {
		return err
	}
	return f.Close()
}

// normalize upper-cases option keys and the correct option so bank authors
// can use either case.
func normalize(questions []Question) []Question {
	for i := range questions {
		q := &questions[i]
		opts := make(map[string]string, len(q.Options))
		for k, v := range q.Options {
			opts[strings.ToUpper(k)] = v
		}
		q.Options = opts
		q.CorrectOption = strings.ToUpper(q.CorrectOption)
	}
	return questions
}
