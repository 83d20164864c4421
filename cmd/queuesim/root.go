package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"queuesim/internal/config"
	"queuesim/internal/logging"
	"queuesim/internal/storage"
)

// app carries state shared by every subcommand once the config is loaded.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "queuesim",
		Short: "Single and dual-server queue simulations",
		Long: `queuesim draws one random trial of a single-server queue or of the
Able/Baker two-server queue and reports per-customer arrival, service,
waiting and idle times together with aggregate statistics.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "config.yaml", "path to configuration file (YAML)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newSingleCmd(a),
		newDualCmd(a),
		newBothCmd(a),
		newRunsCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	a.logger = logging.New(cfg.LogLevel, cfg.LogPretty)
	return nil
}

func (a *app) openStorage() (*storage.RunStorage, error) {
	store, err := storage.NewRunStorage(a.cfg.HistoryPath())
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("path", store.Path()).Msg("run history opened")
	return store, nil
}
