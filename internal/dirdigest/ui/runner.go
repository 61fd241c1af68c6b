// Package ui renders dirdigest progress in the terminal.
package ui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/gingerrexayers/dirdigest-go/internal/dirdigest/types"
)

// ErrInterrupted is returned by Run when the view stops before fn has finished.
var ErrInterrupted = errors.New("digest interrupted")

// Run executes fn while a progress view is drawn on out. fn receives the sink
// it must report progress to. The view exits once fn returns.
//
// Signals keep their default behaviour. If the view stops early, because ctx
// is cancelled or the program is told to quit, Run returns an error at once
// without waiting for fn.
func Run(ctx context.Context, out io.Writer, fn func(sink types.ProgressSink) error) error {
	return run(ctx, out, fn)
}

func run(ctx context.Context, out io.Writer, fn func(sink types.ProgressSink) error, opts ...tea.ProgramOption) error {
	events := make(chan types.Event, 256)

	var g errgroup.Group
	g.Go(func() error {
		defer close(events)
		return fn(types.ChannelSink{Ch: events})
	})

	opts = append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	}, opts...)
	final, uiErr := tea.NewProgram(NewProgressModel(events), opts...).Run()

	if m, ok := final.(*progressModel); uiErr != nil || !ok || m.phase != phaseDone {
		go func() {
			for range events { // unblock fn, its result is discarded
			}
		}()
		if uiErr != nil {
			return uiErr
		}
		return ErrInterrupted
	}

	return g.Wait()
}
