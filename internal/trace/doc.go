// Package trace records what the kvd tools are doing: which files are loaded,
// lexed and parsed, and how long each step takes.
//
// # Usage
//
//	kvd parse --trace=- --trace-level=detail testdata/
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: failures only
//   - LevelPhase: driver and pass boundaries (load, lex, parse)
//   - LevelDetail: per-file events
//   - LevelDebug: everything
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
package trace
