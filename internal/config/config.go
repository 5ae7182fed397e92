// Package config provides the TOML configuration file and XDG path
// helpers.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Pointer fields
// distinguish "unset" from a zero value so defaults can fill the gaps.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Tutor    TutorConfig    `toml:"tutor"`
	Exam     ExamConfig     `toml:"exam"`
	Progress ProgressConfig `toml:"progress"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Mode       *string `toml:"mode"`
	Specialty  *string `toml:"specialty"`
	Difficulty *string `toml:"difficulty"`
	Questions  *int    `toml:"questions"`
	BankPath   *string `toml:"bank"`
}

// TutorConfig maps LLM tutor settings. API keys stay in the environment.
type TutorConfig struct {
	Provider *string `toml:"provider"`
	Model    *string `toml:"model"`
}

// ExamConfig maps exam simulation settings.
type ExamConfig struct {
	DailyLimit *int `toml:"daily-limit"`
}

// ProgressConfig maps category classification thresholds, in integer
// percent accuracy.
type ProgressConfig struct {
	WeakThreshold   *int `toml:"weak-threshold"`
	StrongThreshold *int `toml:"strong-threshold"`
	MinAttempts     *int `toml:"min-attempts"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not
// an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "medprep", "config.toml")
}

// DefaultBankPath returns the default question bank location.
func DefaultBankPath() string {
	return filepath.Join(XDGDataHome(), "medprep", "bank.json")
}
