package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kvd/internal/trace"
)

// traceOnStderr is set when trace events are written to stderr.
var traceOnStderr bool

// setupTracing reads --trace and --trace-level (falling back to the [trace]
// config section), attaches the tracer and a driver-scope root span to the
// command context, and returns the cleanup that ends them.
func setupTracing(cmd *cobra.Command) (func(), error) {
	traceOutput, err := persistentString(cmd, "trace", cfg.Trace.Output)
	if err != nil {
		return nil, err
	}
	levelStr, err := persistentString(cmd, "trace-level", cfg.Trace.Level)
	if err != nil {
		return nil, err
	}
	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace alone means phase-level tracing
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	tracer, err := trace.New(trace.Config{Level: level, OutputPath: traceOutput})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	traceOnStderr = traceOutput == "" || traceOutput == "-"

	ctx := trace.WithTracer(cmd.Context(), tracer)
	root := trace.Begin(tracer, trace.ScopeDriver, "kvd "+cmd.Name(), 0)
	ctx = trace.WithSpan(ctx, root)
	cmd.SetContext(ctx)

	return func() {
		root.End("")
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}
