package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzer/internal/questions"
	"github.com/abhisek/quizzer/internal/quiz"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Inspect and manage question banks",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Load and print questions from the configured source",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if src, _ := cmd.Flags().GetString("source"); src != "" {
			cfg.Questions.Source = src
		}
		logger := discardLogger()

		rc, err := connectRedis(ctx, cfg, logger)
		if err != nil {
			return err
		}
		if rc != nil {
			defer rc.Close()
		}

		p, err := questions.New(ctx, cfg.Questions, questions.Deps{
			Redis:       rc,
			RedisPrefix: cfg.Redis.Prefix,
			LLM:         cfg.LLM,
			Logger:      logger,
		})
		if err != nil {
			return err
		}

		if d := cfg.RequestTimeout(); d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		qs, err := p.Load(ctx)
		if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}
		if err := quiz.ValidateQuestions(qs); err != nil {
			return err
		}
		printQuestions(cmd.OutOrStdout(), qs)
		return nil
	},
}

var questionsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a question bank file into Redis",
	Long: `Import a question bank file into Redis, replacing what is there.

Without --file the built-in bank is imported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		file, _ := cmd.Flags().GetString("file")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !cfg.Redis.Enabled() {
			return fmt.Errorf("redis is not configured; set redis.addrs or QUIZZER_REDIS_ADDRS")
		}

		var src quiz.Provider = questions.Embedded{}
		if file != "" {
			src = questions.File{Path: file}
		}
		qs, err := src.Load(ctx)
		if err != nil {
			return err
		}
		if err := quiz.ValidateQuestions(qs); err != nil {
			return err
		}

		rc, err := connectRedis(ctx, cfg, discardLogger())
		if err != nil {
			return err
		}
		defer rc.Close()

		if err := questions.NewRedisBank(rc, cfg.Redis.Prefix).Import(ctx, qs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d questions.\n", len(qs))
		return nil
	},
}

func init() {
	questionsListCmd.Flags().String("source", "", "Question source (embedded, file, http, redis, llm)")
	questionsImportCmd.Flags().String("file", "", "Question bank JSON file")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsImportCmd)
}

func printQuestions(w io.Writer, qs []quiz.Question) {
	total := 0
	for i, q := range qs {
		total += q.Points
		fmt.Fprintf(w, "%2d. [%d] %s\n", i+1, q.Points, q.Text)
		for j, o := range q.Options {
			mark := " "
			if j == q.CorrectOption {
				mark = "*"
			}
			fmt.Fprintf(w, "     %s %d) %s\n", mark, j+1, o)
		}
	}
	fmt.Fprintf(w, "\n%d questions, %d points\n", len(qs), total)
}
