package diagfmt

import (
	"fmt"
	"math"
	"strconv"

	"kvd/internal/source"
)

// formatSpan renders "startLine:startCol-endLine:endCol", or raw offsets without a FileSet.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	return f.FormatPath(mode.String(), fs.BaseDir())
}

// floatValue keeps finite floats as numbers; JSON has no literal for
// infinities, so those are written as strings ("+Inf", "-Inf").
func floatValue(v float64) any {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return v
}
