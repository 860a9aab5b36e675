// Package session runs the interactive read-route-render loop.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/command"
	"budgetbuddy/internal/logging"
	"budgetbuddy/internal/ui"
)

// Session reads command lines and executes them against a Manager.
type Session struct {
	router   *command.Router
	manager  *budget.Manager
	renderer *ui.Renderer
	logger   logging.Logger
}

// Stats counts what a Run call did.
type Stats struct {
	Lines  int
	Failed int
	// Exited is true when the loop stopped on bye rather than end of input.
	Exited bool
	// Interrupted is true when the context was cancelled.
	Interrupted bool
}

// New creates a session.
func New(router *command.Router, manager *budget.Manager, renderer *ui.Renderer, logger logging.Logger) *Session {
	return &Session{
		router:   router,
		manager:  manager,
		renderer: renderer,
		logger:   logger,
	}
}

// Execute runs a single line and renders its outcome or error. It
// reports whether the line asked the session to end.
func (s *Session) Execute(line string) (exit bool, err error) {
	outcome, err := s.router.Run(s.manager, line)
	if err != nil {
		s.logger.Debug("Command failed",
			logging.F(logging.FieldCommand, line),
			logging.F(logging.FieldError, err.Error()))
		s.renderer.Error(err)
		return false, err
	}
	s.renderer.Render(outcome)
	return outcome.Exit, nil
}

// readLines feeds in line by line into the returned channel, which is
// closed at end of input. The read error, if any, is sent on errc
// afterwards. Closing done stops the reader early.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

// Run reads lines from in until bye, end of input or ctx is cancelled.
// Blank lines are ignored. Command errors are rendered and do not stop
// the loop. Cancellation ends the loop even while waiting for input and
// is reported through Stats.Interrupted; only a read failure is returned.
func (s *Session) Run(ctx context.Context, in io.Reader) (Stats, error) {
	var stats Stats
	done := make(chan struct{})
	defer close(done)
	lines, errc := readLines(in, done)

	for {
		if ctx.Err() != nil {
			return s.interrupted(stats), nil
		}

		var raw string
		var ok bool
		select {
		case <-ctx.Done():
			return s.interrupted(stats), nil
		case raw, ok = <-lines:
		}
		if !ok {
			if err := <-errc; err != nil {
				return stats, fmt.Errorf("failed to read input: %w", err)
			}
			break
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		stats.Lines++

		exit, err := s.Execute(line)
		if err != nil {
			stats.Failed++
		}
		if exit {
			stats.Exited = true
			break
		}
		s.renderer.Separator()
	}

	s.logger.Info("Session finished",
		logging.F(logging.FieldCount, stats.Lines),
		logging.F("failed", stats.Failed))
	return stats, nil
}

func (s *Session) interrupted(stats Stats) Stats {
	stats.Interrupted = true
	s.logger.Info("Session interrupted",
		logging.F(logging.FieldCount, stats.Lines),
		logging.F("failed", stats.Failed))
	return stats
}
