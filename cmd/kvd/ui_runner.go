package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"kvd/internal/driver"
	"kvd/internal/pipeline"
	"kvd/internal/ui"
)

type dirOutcome struct {
	result *driver.DirResult
	err    error
}

// runParseDirWithUI runs driver.ParseDir while a Bubble Tea view renders its
// progress events. Quitting the view cancels the run.
func runParseDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.DirOptions) (*driver.DirResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Sink = pipeline.ChannelSink{Ch: events}
		res, err := driver.ParseDir(ctx, dir, runOpts)
		close(events)
		outcomeCh <- dirOutcome{result: res, err: err}
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil || model.Interrupted() {
		cancel()
	}
	// keep workers from blocking on a full channel after the view is gone
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
