// Package cli holds the interactive and printing logic behind the recall
// commands.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/recallhq/recall/internal/schedule"
)

var errEnd = errors.New("end")

// InteractiveReviewCLI walks a learner through their due queue one item at a
// time, recording each outcome through the engine.
type InteractiveReviewCLI struct {
	engine    *schedule.Engine
	dueQuery  *schedule.DueQuery
	learnerID string

	queue        []schedule.ReviewSchedule
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
}

// NewInteractiveReviewCLI creates a session over the learner's current due
// queue. The queue is loaded once up front; items completed mid-session are
// not re-fetched.
func NewInteractiveReviewCLI(
	ctx context.Context,
	engine *schedule.Engine,
	dueQuery *schedule.DueQuery,
	learnerID string,
) (*InteractiveReviewCLI, error) {
	due, err := dueQuery.DueForLearner(ctx, learnerID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("dueQuery.DueForLearner() > %w", err)
	}

	return &InteractiveReviewCLI{
		engine:       engine,
		dueQuery:     dueQuery,
		learnerID:    learnerID,
		queue:        due,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}, nil
}

// Run drives Session in a loop until the queue is exhausted, the learner
// quits, or an interrupt arrives.
func (cli *InteractiveReviewCLI) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := cli.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Println("Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// Session asks for the outcome of one due item and records it.
func (cli *InteractiveReviewCLI) Session(ctx context.Context) error {
	current := cli.nextItem()
	if current == nil {
		fmt.Fprintln(cli.stdoutWriter, "No more reviews due!")
		return errEnd
	}

	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s", current.ContentID)
	if !current.InitialReviewCompleted {
		_, _ = cli.italic.Fprint(cli.stdoutWriter, " (first review)")
	}
	fmt.Fprintf(cli.stdoutWriter, "\n[r]emembered / [p]artial / [f]orgot / [s]kip / [q]uit: ")

	started := time.Now()
	input, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	result, ok := parseResultInput(input)
	if !ok {
		switch strings.TrimSpace(strings.ToLower(input)) {
		case "s", "skip":
			return nil
		case "q", "quit":
			return errEnd
		}
		fmt.Fprintln(cli.stdoutWriter, "Please answer r, p, f, s or q.")
		cli.requeue(*current)
		return nil
	}

	timeSpent := int(time.Since(started).Seconds())
	updated, err := cli.engine.CompleteReview(ctx, schedule.ReviewCommand{
		LearnerID:        cli.learnerID,
		ContentID:        current.ContentID,
		Result:           result,
		TimeSpentSeconds: &timeSpent,
	})
	if err != nil {
		return fmt.Errorf("engine.CompleteReview() > %w", err)
	}

	next := updated.NextReviewDate.Format("2006-01-02")
	switch result {
	case schedule.ResultRemembered:
		color.Green("Remembered. Next review on %s", next)
	case schedule.ResultPartial:
		color.Yellow("Partially remembered. Next review on %s", next)
	case schedule.ResultForgot:
		color.Red("Forgot. Review again on %s", next)
	}
	return nil
}

func (cli *InteractiveReviewCLI) nextItem() *schedule.ReviewSchedule {
	if len(cli.queue) == 0 {
		return nil
	}
	item := cli.queue[0]
	cli.queue = cli.queue[1:]
	return &item
}

func (cli *InteractiveReviewCLI) requeue(item schedule.ReviewSchedule) {
	cli.queue = append(cli.queue, item)
}

func parseResultInput(input string) (schedule.ReviewResult, bool) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "r", "remembered":
		return schedule.ResultRemembered, true
	case "p", "partial":
		return schedule.ResultPartial, true
	case "f", "forgot":
		return schedule.ResultForgot, true
	}
	return "", false
}
