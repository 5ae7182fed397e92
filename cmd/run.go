package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/medprep/internal/app"
	"github.com/abhisek/medprep/internal/config"
	"github.com/abhisek/medprep/internal/filter"
	"github.com/abhisek/medprep/internal/gate"
	"github.com/abhisek/medprep/internal/modes"
	"github.com/abhisek/medprep/internal/notify"
	"github.com/abhisek/medprep/internal/progress"
	"github.com/abhisek/medprep/internal/question"
	"github.com/abhisek/medprep/internal/session"
	"github.com/abhisek/medprep/internal/store"
	"github.com/abhisek/medprep/internal/tutor"
)

// defaultDailyExamLimit applies when the config file sets no limit.
const defaultDailyExamLimit = 1

// appEnv bundles the dependencies the commands build from flags, the
// config file and the database.
type appEnv struct {
	Store      *store.Store
	Config     config.FileConfig
	Questions  *question.Store
	Engine     *filter.Engine
	Machine    *session.Machine
	Launcher   *modes.Launcher
	Aggregator *progress.Aggregator
	Tutor      *tutor.Tutor
}

func (e *appEnv) Close() error {
	return e.Store.Close()
}

// buildEnv opens the store, loads the config and bank, and wires the
// engine, machine, gate and launcher together.
func buildEnv(cmd *cobra.Command) (*appEnv, error) {
	// API keys may live in a local .env; absence is fine.
	_ = godotenv.Load()

	fileCfg := loadFileConfig(cmd)

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	questions, err := loadBank(cmd, fileCfg)
	if err != nil {
		st.Close()
		return nil, err
	}
	qstore, err := question.NewStore(questions)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("build question store: %w", err)
	}

	aggregator := progress.NewAggregator(st.Sessions(), st.Bookmarks())
	aggregator.SetThresholds(thresholdsFromConfig(fileCfg))

	engine := filter.NewEngine()
	filter.RegisterDefaults(engine, aggregator, aggregator)

	machine := session.NewMachine(session.NewBus(), st.Sessions())
	// Milestone notices surface on stderr once the TUI releases the screen.
	notify.SubscribeMilestones(machine.Bus(), notify.NewWriterNotifier(os.Stderr))

	limit := defaultDailyExamLimit
	if fileCfg.Exam.DailyLimit != nil {
		limit = *fileCfg.Exam.DailyLimit
	}
	examGate := gate.NewDailyLimitGate(st.ExamLog(), limit)

	launcher := modes.NewLauncher(machine, engine, qstore, examGate, aggregator, aggregator)

	return &appEnv{
		Store:      st,
		Config:     fileCfg,
		Questions:  qstore,
		Engine:     engine,
		Machine:    machine,
		Launcher:   launcher,
		Aggregator: aggregator,
		Tutor:      buildTutor(fileCfg),
	}, nil
}

// thresholdsFromConfig applies the config file's overrides on top of the
// default classification thresholds.
func thresholdsFromConfig(fileCfg config.FileConfig) progress.Thresholds {
	t := progress.DefaultThresholds()
	if fileCfg.Progress.WeakThreshold != nil {
		t.Weak = *fileCfg.Progress.WeakThreshold
	}
	if fileCfg.Progress.StrongThreshold != nil {
		t.Strong = *fileCfg.Progress.StrongThreshold
	}
	if fileCfg.Progress.MinAttempts != nil {
		t.MinAttempts = *fileCfg.Progress.MinAttempts
	}
	return t
}

// loadFileConfig reads the TOML config. A missing or broken file never
// aborts startup.
func loadFileConfig(cmd *cobra.Command) config.FileConfig {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		warnf("config file %s ignored: %v", path, err)
		return config.FileConfig{}
	}
	return fileCfg
}

// loadBank resolves the bank path (--bank flag, config, XDG default) and
// loads its questions. A missing bank is an empty bank plus a hint.
func loadBank(cmd *cobra.Command, fileCfg config.FileConfig) ([]question.Question, error) {
	path, _ := cmd.Flags().GetString("bank")
	if path == "" && fileCfg.Practice.BankPath != nil {
		path = *fileCfg.Practice.BankPath
	}
	if path == "" {
		path = config.DefaultBankPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		warnf("no question bank at %s; load one with 'medprep import'", path)
		return nil, nil
	}

	questions, err := question.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	return questions, nil
}

// buildTutor assembles the optional AI tutor. The app works without it.
func buildTutor(fileCfg config.FileConfig) *tutor.Tutor {
	tcfg := tutor.ConfigFromEnv()
	if fileCfg.Tutor.Provider != nil {
		tcfg.Provider = *fileCfg.Tutor.Provider
	}
	if fileCfg.Tutor.Model != nil {
		tcfg.Anthropic.Model = *fileCfg.Tutor.Model
		tcfg.OpenAI.Model = *fileCfg.Tutor.Model
	}

	if err := tcfg.Validate(); err != nil {
		discovered, ok := tutor.DiscoverConfig()
		if !ok {
			fmt.Fprintln(os.Stderr, "AI tutor not configured:", err)
			fmt.Fprintln(os.Stderr, "Deeper explanations will be unavailable.")
			return nil
		}
		tcfg = discovered
	}

	provider, err := tutor.NewProvider(tcfg)
	if err != nil {
		warnf("AI tutor disabled: %v", err)
		return nil
	}
	return tutor.New(provider)
}

// runApp builds the environment and launches the TUI.
func runApp(cmd *cobra.Command) error {
	env, err := buildEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	return app.Run(app.Deps{
		Launcher:   env.Launcher,
		Machine:    env.Machine,
		Aggregator: env.Aggregator,
		Sessions:   env.Store.Sessions(),
		Tutor:      env.Tutor,
	})
}
