package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"kvd/internal/diag"
	"kvd/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	path, code      *color.Color
	gutter, caret   *color.Color
	note            *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		path:   color.New(color.Bold),
		code:   color.New(color.FgMagenta),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.path, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes diagnostics in human-readable form, in bag order
// (call bag.Sort() first for a stable listing):
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed by the source line with a ^~~~ underline under the primary span,
// then the notes when opts.ShowNotes is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		writeHeader(w, pal, fs, opts, d)
		writeSnippet(w, pal, fs, opts, d.Primary)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				start, _ := fs.Resolve(n.Span)
				fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
					pal.note.Sprint("note:"),
					formatPath(fs.Get(n.Span.File), fs, opts.PathMode),
					start.Line, start.Col, n.Msg)
			}
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "... %d more diagnostic(s) suppressed\n", dropped)
	}
}

func writeHeader(w io.Writer, pal palette, fs *source.FileSet, opts PrettyOpts, d diag.Diagnostic) {
	start, _ := fs.Resolve(d.Primary)
	loc := fmt.Sprintf("%s:%d:%d", formatPath(fs.Get(d.Primary.File), fs, opts.PathMode), start.Line, start.Col)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.path.Sprint(loc),
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message)
}

func writeSnippet(w io.Writer, pal palette, fs *source.FileSet, opts PrettyOpts, span source.Span) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	lineCount := uint32(len(f.LineIdx)) + 1

	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := min(start.Line+ctx, lineCount)

	gutterWidth := len(fmt.Sprint(last))
	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != start.Line {
			continue
		}
		endCol := uint32(len(text)) + 1
		if end.Line == start.Line {
			endCol = min(end.Col, endCol)
		}
		pad, width := caretLayout(text, start.Col, endCol)
		fmt.Fprintf(w, "%s %s%s\n",
			pal.gutter.Sprintf("%*s |", gutterWidth, ""),
			pad,
			pal.caret.Sprint("^"+strings.Repeat("~", width-1)))
	}
}

// caretLayout returns the padding before column startCol and the display
// width of columns [startCol, endCol). Columns are 1-based byte offsets.
// Tabs are copied into the padding so the caret lines up with the source.
func caretLayout(line string, startCol, endCol uint32) (string, int) {
	s := min(int(startCol)-1, len(line))
	e := max(min(int(endCol)-1, len(line)), s)

	var pad strings.Builder
	for _, r := range line[:s] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return pad.String(), max(runewidth.StringWidth(line[s:e]), 1)
}
