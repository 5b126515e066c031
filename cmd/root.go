package cmd

import (
	"github.com/abhisek/interviewd/internal/config"
	"github.com/abhisek/interviewd/internal/logger"
	"github.com/abhisek/interviewd/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	appConfig *config.Config
	log       *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "interviewd",
	Short: "Adaptive AI interview service",
	Long: "interviewd runs timed, adaptive technical interviews. Questions get harder or easier\n" +
		"with each answer, and a session ends early when performance stays below the threshold.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		appConfig = cfg
		log = logger.Must(cfg.Logging.Level, cfg.Logging.Format)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./interviewd.yaml or ./configs/interviewd.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides INTERVIEWD_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(interviewCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// openStore opens the configured database. For SQLite the path comes from
// --db (highest priority), then database.dsn, then INTERVIEWD_DB, then the
// default XDG path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	if appConfig.Database.Driver == store.DriverPostgres {
		return store.OpenDriver(store.DriverPostgres, appConfig.Database.DSN)
	}

	path, _ := cmd.Flags().GetString("db")
	switch {
	case path != "":
		if err := store.EnsureDir(path); err != nil {
			return nil, err
		}
	case appConfig.Database.DSN != "":
		path = appConfig.Database.DSN
	default:
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return store.Open(path)
}
