package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"kvd/internal/diag"
	"kvd/internal/lexer"
	"kvd/internal/observ"
	"kvd/internal/pipeline"
	"kvd/internal/source"
	"kvd/internal/token"
	"kvd/internal/trace"
)

// DefaultExtensions are the file suffixes picked up from directories.
var DefaultExtensions = []string{".kvd"}

// DirOptions extends ParseOptions for directory runs.
type DirOptions struct {
	ParseOptions
	// Jobs caps concurrent workers; <= 0 means GOMAXPROCS.
	Jobs int
	// Extensions selects files by suffix; empty means DefaultExtensions.
	Extensions []string
}

// TokenizeDirResult is the result for one file of a directory run.
type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

// ListFiles returns the sorted paths under dir whose suffix is in exts.
func ListFiles(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range exts {
			if strings.HasSuffix(path, ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// preload reads every file up front: FileSet is not safe for concurrent Add.
// A file that fails to load keeps a nil entry; its IO diagnostic points at an
// empty placeholder so the path still prints.
func preload(paths []string, dir string, maxDiagnostics int) (*source.FileSet, []*source.File, []*diag.Bag, []error) {
	fileSet := source.NewFileSetWithBase(dir)
	files := make([]*source.File, len(paths))
	bags := make([]*diag.Bag, len(paths))
	loadErrs := make([]error, len(paths))
	for i, path := range paths {
		bags[i] = diag.NewBag(maxDiagnostics)
		file, err := loadInput(fileSet, path)
		if err != nil {
			placeholder := fileSet.AddVirtual(path, nil)
			bags[i].Add(diag.NewError(diag.IOLoadFileError, source.Span{File: placeholder}, err.Error()))
			loadErrs[i] = err
			continue
		}
		files[i] = file
	}
	return fileSet, files, bags, loadErrs
}

func workers(jobs, n int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(min(jobs, n), 1)
}

// TokenizeDir lexes every matching file under dir in parallel. Results are
// in path order.
func TokenizeDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []TokenizeDirResult, error) {
	paths, err := ListFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	fileSet, files, bags, _ := preload(paths, dir, opts.MaxDiagnostics)

	results := make([]TokenizeDirResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(opts.Jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = TokenizeDirResult{Path: path, Bag: bags[i]}
			file := files[i]
			if file == nil {
				return nil
			}
			results[i].FileID = file.ID
			results[i].Tokens = lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bags[i]}})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}

// DirResult bundles a directory run.
type DirResult struct {
	FileSet *source.FileSet
	// Files holds one entry per matching path, in path order. Entries of
	// files that failed to load have a nil File and an IO diagnostic.
	Files []*ParseResult
	Paths []string
	Timer *observ.Timer
}

// Failed counts files that did not produce a tree.
func (r *DirResult) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Root == nil {
			n++
		}
	}
	return n
}

// ParseDir parses every matching file under dir in parallel under an
// errgroup limited to opts.Jobs workers. Each worker only reads the shared
// FileSet. Results are in path order regardless of completion order.
func ParseDir(ctx context.Context, dir string, opts DirOptions) (*DirResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "parse-dir", trace.CurrentSpan(ctx).SpanID)
	ctx = trace.WithSpan(ctx, span)

	paths, err := ListFiles(dir, opts.Extensions)
	if err != nil {
		span.End("error")
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	timer := observ.NewTimer()
	loadIdx := timer.Begin("load")
	fileSet, files, bags, loadErrs := preload(paths, dir, opts.MaxDiagnostics)
	timer.End(loadIdx, fmt.Sprintf("%d files", len(paths)))

	for _, path := range paths {
		pipeline.Emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusQueued})
	}

	results := make([]*ParseResult, len(paths))
	timers := make([]*observ.Timer, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(opts.Jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if files[i] == nil {
				results[i] = &ParseResult{FileSet: fileSet, Bag: bags[i]}
				pipeline.Emit(opts.Sink, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: loadErrs[i]})
				return nil
			}
			timers[i] = observ.NewTimer()
			results[i] = parseLoaded(gctx, fileSet, files[i], opts.ParseOptions, timers[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End("canceled")
		return nil, err
	}

	for _, t := range timers {
		timer.Merge(t)
	}
	res := &DirResult{FileSet: fileSet, Files: results, Paths: paths, Timer: timer}
	span.WithExtra("files", fmt.Sprint(len(paths))).End(fmt.Sprintf("%d failed", res.Failed()))
	return res, nil
}
