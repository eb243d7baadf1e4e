// Package cli is the lingualearn command-line driver.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/lingualearn/internal/catalog"
	"github.com/vytor/lingualearn/internal/config"
	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/services"
)

type app struct {
	cfg     config.Config
	ctx     context.Context
	catalog *catalog.Catalog
	svc     services.ProgressService
	close   func() error
	json    bool
}

// Execute runs the root command until it finishes or ctx is cancelled.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Every subcommand shares one
// progress service opened when its body starts and closed after. Cobra's own
// help and completion commands never touch the store.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "lingualearn",
		Short:         "Language lesson progression tracker",
		Long:          "lingualearn tracks lessons, hearts, streaks, best scores and achievements for a language learner.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("learner", "", "Learner id (overrides LEARNER_ID)")
	flags.String("catalog", "", "Path to a YAML catalog (overrides CATALOG_PATH, default built-in)")
	flags.String("store", "", "Progress store: sqlite, memory, redis or postgres (overrides STORE_DRIVER)")
	flags.String("db", "", "SQLite database path (overrides DB_PATH)")
	flags.String("log-level", "", "Log level (overrides LOG_LEVEL)")
	flags.String("log-format", "", "Log format, text or json (overrides LOG_FORMAT)")
	flags.BoolVar(&a.json, "json", false, "Print results as JSON")

	root.AddCommand(
		newTracksCmd(a),
		newPathCmd(a),
		newStartCmd(a),
		newAnswerCmd(a),
		newReviewCmd(a),
		newStarsCmd(a),
		newAchievementsCmd(a),
		newStatusCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Load()
	overrides := map[string]*string{
		"learner":    &cfg.LearnerID,
		"catalog":    &cfg.CatalogPath,
		"store":      &cfg.StoreDriver,
		"db":         &cfg.DBPath,
		"log-level":  &cfg.LogLevel,
		"log-format": &cfg.LogFormat,
	}
	for name, dst := range overrides {
		if v, _ := cmd.Flags().GetString(name); cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	format := logger.ParseFormat(cfg.LogFormat)
	log := logger.New(
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(format),
		logger.WithColors(false),
	)
	logger.SetDefault(log)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a.ctx = logger.NewContext(ctx, log.WithField("learner", cfg.LearnerID))

	var err error
	if cfg.CatalogPath != "" {
		a.catalog, err = catalog.Load(cfg.CatalogPath)
	} else {
		a.catalog, err = catalog.Builtin()
	}
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	repo, closeFn, err := openStore(a.ctx, cfg)
	if err != nil {
		return err
	}
	a.close = closeFn
	a.svc = services.NewProgressService(repo, a.catalog,
		services.WithLocation(loc),
		services.WithMaxHearts(cfg.MaxHearts),
	)

	// Idle streak decay runs once per invocation, before the command.
	if _, err := a.svc.CheckDailyStreakDecay(a.ctx, cfg.LearnerID, a.svc.Today()); err != nil {
		_ = a.teardown()
		return err
	}
	return nil
}

// run wraps a command body: it opens the store first and closes it whether
// or not the body fails.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.setup(cmd); err != nil {
			return err
		}
		err := fn(cmd, args)
		if cerr := a.teardown(); err == nil {
			err = cerr
		}
		return err
	}
}

func (a *app) teardown() error {
	if a.close == nil {
		return nil
	}
	err := a.close()
	a.close = nil
	return err
}

func (a *app) learner() string {
	return a.cfg.LearnerID
}
