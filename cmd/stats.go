package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the high score and recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")

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

		return printStats(ctx, cmd.OutOrStdout(), scores, st.EventRepo(), limit)
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent runs to show")
}

func printStats(ctx context.Context, w io.Writer, scores quiz.HighScoreStore, events store.EventRepo, limit int) error {
	hs, err := scores.Get(ctx)
	if err != nil {
		return fmt.Errorf("read high score: %w", err)
	}
	fmt.Fprintf(w, "High score: %d\n\n", hs)

	runs, err := events.FinishedSessions(ctx, limit)
	if err != nil {
		return fmt.Errorf("query sessions: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No finished runs yet.")
		return nil
	}

	fmt.Fprintf(w, "%-19s  %-10s  %-9s  %-8s  %-5s  %-9s  %s\n",
		"Finished", "Source", "Score", "Answered", "Pct", "Reason", "Time")
	fmt.Fprintln(w, strings.Repeat("─", 80))
	for _, e := range runs {
		pct := 0
		if e.MaxScore > 0 {
			pct = e.Score * 100 / e.MaxScore
		}
		fmt.Fprintf(w, "%-19s  %-10s  %-9s  %-8s  %-5s  %-9s  %s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Source,
			fmt.Sprintf("%d/%d", e.Score, e.MaxScore),
			fmt.Sprintf("%d/%d", e.Answered, e.Questions),
			fmt.Sprintf("%d%%", pct),
			e.Reason,
			formatClock(e.DurationSecs),
		)
	}
	return nil
}
