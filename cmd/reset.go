package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// resetter is implemented by high-score backends that persist.
type resetter interface {
	Reset(ctx context.Context) error
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the stored high score",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		rc, err := connectRedis(ctx, cfg, discardLogger())
		if err != nil {
			return err
		}
		if rc != nil {
			defer rc.Close()
		}
		scores, err := highScoreStore(cfg, st, rc)
		if err != nil {
			return err
		}

		r, ok := scores.(resetter)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "The %s backend keeps nothing to reset.\n", cfg.HighScore.Backend)
			return nil
		}
		if err := r.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "High score cleared.")
		return nil
	},
}

// discardLogger is used by one-shot commands that print their own output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
