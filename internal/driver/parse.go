package driver

import (
	"context"
	"strconv"

	"kvd/internal/ast"
	"kvd/internal/diag"
	"kvd/internal/lexer"
	"kvd/internal/observ"
	"kvd/internal/parser"
	"kvd/internal/pipeline"
	"kvd/internal/source"
	"kvd/internal/trace"
)

// ParseOptions controls a single-file or directory parse.
type ParseOptions struct {
	MaxDiagnostics int
	// Cache, when set, is consulted before lexing and filled after a
	// successful parse.
	Cache *DiskCache
	// Sink receives per-file progress events.
	Sink pipeline.ProgressSink
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Root is nil when the document failed to parse.
	Root ast.Node
	// Err is the parse failure, an *parser.UnexpectedTokenError.
	Err    error
	Bag    *diag.Bag
	Timer  *observ.Timer
	Cached bool
}

// Parse loads and parses one document. The returned error is reserved for
// I/O failures; a syntax error is reported through ParseResult.Err and Bag.
// Input is normalized before lexing (BOM stripped, CRLF to LF, NFC), so
// string values reflect the normalized text, including inside literals.
func Parse(ctx context.Context, path string, opts ParseOptions) (*ParseResult, error) {
	fs := source.NewFileSet()
	timer := observ.NewTimer()

	loadIdx := timer.Begin("load")
	file, err := loadInput(fs, path)
	timer.End(loadIdx, "")
	if err != nil {
		return nil, err
	}

	res := parseLoaded(ctx, fs, file, opts, timer)
	return res, nil
}

// parseLoaded runs lexing and parsing for a file already in fs. It only reads
// from fs, so directory workers share one FileSet.
func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, opts ParseOptions, timer *observ.Timer) *ParseResult {
	res := &ParseResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Timer:   timer,
	}
	reporter := diag.BagReporter{Bag: res.Bag}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file:"+file.Path, trace.CurrentSpan(ctx).SpanID)

	if opts.Cache != nil {
		cacheIdx := timer.Begin("cache")
		root, hit, err := opts.Cache.Get(file.Hash, file.ID)
		timer.End(cacheIdx, hitNote(hit))
		if err != nil {
			diag.ReportWarning(reporter, diag.IOCacheError, source.Span{File: file.ID}, "ignoring unreadable cache entry: "+err.Error()).Emit()
		}
		if hit {
			res.Root, res.Cached = root, true
			pipeline.Emit(opts.Sink, pipeline.Event{File: file.Path, Stage: pipeline.StageParse, Status: pipeline.StatusCached})
			span.End("cached")
			return res
		}
	}

	pipeline.Emit(opts.Sink, pipeline.Event{File: file.Path, Stage: pipeline.StageLex, Status: pipeline.StatusWorking})
	lexIdx := timer.Begin("lex")
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	timer.End(lexIdx, strconv.Itoa(len(tokens))+" tokens")

	pipeline.Emit(opts.Sink, pipeline.Event{File: file.Path, Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	parseIdx := timer.Begin("parse")
	root, err := parser.ParseTokens(tokens, parser.Options{Reporter: reporter})
	timer.End(parseIdx, "")

	if err != nil {
		res.Err = err
		pipeline.Emit(opts.Sink, pipeline.Event{File: file.Path, Stage: pipeline.StageParse, Status: pipeline.StatusError, Err: err})
		span.End("error")
		return res
	}
	res.Root = root

	if opts.Cache != nil {
		if err := opts.Cache.Put(file.Hash, root); err != nil {
			diag.ReportWarning(reporter, diag.IOCacheError, source.Span{File: file.ID}, "failed to write cache entry: "+err.Error()).Emit()
		}
	}
	pipeline.Emit(opts.Sink, pipeline.Event{File: file.Path, Stage: pipeline.StageParse, Status: pipeline.StatusDone})
	span.End(ast.KindOf(root).String())
	return res
}

func hitNote(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
