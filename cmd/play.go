package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzer/internal/logging"
	"github.com/abhisek/quizzer/internal/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the quiz in plain line mode",
	Long: `Play the quiz without the full-screen UI.

Commands: s start, 1-4 answer, n next, f finish, r restart or retry, q quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Log.File == "" {
			if cfg.Log.File, err = logging.DefaultFile(); err != nil {
				return err
			}
		}

		svc, err := newServices(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer svc.Close()

		stop := svc.startBackground(ctx)
		defer stop()

		p := &plainPlayer{
			machine: svc.machine,
			reload:  svc.load,
			out:     cmd.OutOrStdout(),
		}
		return p.run(ctx, cmd.InOrStdin())
	},
}

// plainPlayer drives a machine from text commands and prints each state
// change. Timer ticks only change the clock, which is printed on demand.
type plainPlayer struct {
	machine *quiz.Machine
	reload  func(context.Context) error
	out     io.Writer

	last viewKey
}

// viewKey identifies what is on screen; a snapshot with the same key
// is not printed again.
type viewKey struct {
	status   quiz.Status
	run      int
	index    int
	answered bool
}

func keyOf(s quiz.Session) viewKey {
	return viewKey{status: s.Status, run: s.Run, index: s.Index, answered: s.Answered()}
}

func (p *plainPlayer) run(ctx context.Context, in io.Reader) error {
	updates, unsubscribe := p.machine.Subscribe()
	defer unsubscribe()

	if s := p.machine.Snapshot(); s.Status == quiz.StatusLoading {
		if err := p.reload(ctx); err != nil {
			fmt.Fprintln(p.out, "!", err)
		}
	}
	p.show(p.machine.Snapshot())

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			p.quit(context.WithoutCancel(ctx))
			return nil

		case err := <-readErr:
			p.quit(context.WithoutCancel(ctx))
			return err

		case s, ok := <-updates:
			if !ok {
				return nil
			}
			p.show(s)

		case line := <-lines:
			done, err := p.handle(ctx, strings.TrimSpace(line))
			if err != nil {
				fmt.Fprintln(p.out, "!", err)
			}
			if done {
				return nil
			}
		}
	}
}

// handle applies one command. It reports true when the player asked to quit.
func (p *plainPlayer) handle(ctx context.Context, cmd string) (bool, error) {
	s := p.machine.Snapshot()
	var ev quiz.Event

	switch cmd {
	case "q", "quit":
		p.quit(ctx)
		return true, nil
	case "t", "time":
		fmt.Fprintln(p.out, formatClock(s.Seconds()))
		return false, nil
	case "", "s", "start":
		if cmd == "" && s.Status != quiz.StatusReady {
			return false, nil
		}
		ev = quiz.Start{}
	case "n", "next":
		ev = quiz.Next{}
	case "f", "finish":
		ev = quiz.Finish{}
	case "r", "restart", "retry":
		if s.Status == quiz.StatusError || s.Status == quiz.StatusLoading {
			err := p.reload(ctx)
			p.show(p.machine.Snapshot())
			return false, err
		}
		ev = quiz.Restart{}
	default:
		n, err := strconv.Atoi(cmd)
		if err != nil {
			return false, fmt.Errorf("unknown command %q", cmd)
		}
		ev = quiz.Answer{Option: n - 1}
	}

	next, err := p.machine.Dispatch(ctx, ev)
	p.show(next)
	if errors.Is(err, quiz.ErrInvalidTransition) {
		return false, fmt.Errorf("can't %s while %s", ev.Name(), s.Status)
	}
	return false, err
}

// quit ends an active run so it is scored and recorded.
func (p *plainPlayer) quit(ctx context.Context) {
	if p.machine.Snapshot().Status == quiz.StatusActive {
		if s, err := p.machine.Dispatch(ctx, quiz.Finish{}); err == nil {
			p.show(s)
		}
	}
}

func (p *plainPlayer) show(s quiz.Session) {
	k := keyOf(s)
	if k == p.last {
		return
	}
	p.last = k

	w := p.out
	switch s.Status {
	case quiz.StatusLoading:
		fmt.Fprintln(w, "Loading questions...")

	case quiz.StatusError:
		fmt.Fprintln(w, "Could not load questions. Type r to retry.")

	case quiz.StatusReady:
		fmt.Fprintf(w, "%d questions to test your mastery (best: %d). Type s to start.\n",
			s.NumQuestions(), s.HighScore)

	case quiz.StatusActive:
		q, _ := s.Current()
		if !s.Answered() {
			fmt.Fprintf(w, "\nQuestion %d/%d  %d points  %s  score %d\n",
				s.Index+1, s.NumQuestions(), q.Points, formatClock(s.Seconds()), s.Score)
			fmt.Fprintln(w, q.Text)
			for i, o := range q.Options {
				fmt.Fprintf(w, "  %d) %s\n", i+1, o)
			}
			return
		}
		if s.AnsweredCorrectly() {
			fmt.Fprintf(w, "Correct! +%d\n", q.Points)
		} else {
			fmt.Fprintf(w, "Wrong, the answer was %d) %s\n", q.CorrectOption+1, q.Options[q.CorrectOption])
		}
		if s.Index+1 < s.NumQuestions() {
			fmt.Fprintln(w, "Type n for the next question.")
		} else {
			fmt.Fprintln(w, "Type n to finish.")
		}

	case quiz.StatusFinished:
		if s.EndReason == quiz.EndTimeout {
			fmt.Fprintln(w, "\nTime's up!")
		}
		fmt.Fprintf(w, "\nYou scored %d out of %d (%.0f%%)\n", s.Score, s.MaxPoints(), s.Percentage())
		fmt.Fprintf(w, "(Highscore: %d points)\n", s.HighScore)
		fmt.Fprintln(w, "Type r to restart or q to quit.")
	}
}

func formatClock(secs int) string {
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
