package lexer

import "kvd/internal/diag"

// ReporterAdapter adapts a diag.Bag for use as lexer options.
type ReporterAdapter struct {
	Bag *diag.Bag
}

// Reporter returns a diag.Reporter that forwards diagnostics to the adapter's bag.
func (r *ReporterAdapter) Reporter() diag.Reporter {
	return diag.BagReporter{Bag: r.Bag}
}
