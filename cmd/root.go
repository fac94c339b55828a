package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzer/internal/app"
	"github.com/abhisek/quizzer/internal/config"
	"github.com/abhisek/quizzer/internal/logging"
	"github.com/abhisek/quizzer/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizzer",
	Short: "Timed multiple-choice quiz in the terminal",
	Long:  "Quizzer runs a timed multiple-choice quiz and keeps your best score.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZZER_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(versionCmd)
}

// runApp builds the quiz and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Log.File == "" {
		// Anything written to the terminal would tear the alternate screen.
		if cfg.Log.File, err = logging.DefaultFile(); err != nil {
			return err
		}
	}

	rt, err := newServices(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	stop := rt.startBackground(ctx)
	defer stop()

	return app.Run(ctx, app.Options{
		Machine:     rt.machine,
		Provider:    rt.provider,
		Events:      rt.store.EventRepo(),
		Source:      cfg.Questions.Source,
		LoadTimeout: cfg.RequestTimeout(),
	})
}

// loadConfig reads the config file named by --config and applies --db.
func loadConfig(cmd *cobra.Command) (config.App, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadApp(file)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZZER_DB or the config file, then the default XDG path.
func resolveDBPath(cfg config.App) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
