package main

import (
	"fmt"
	"io"

	"kvd/internal/observ"
)

// printTimings writes the --timings table; it is a no-op unless the flag is set.
func printTimings(out io.Writer, enabled bool, timer *observ.Timer) {
	if !enabled || timer == nil {
		return
	}
	fmt.Fprint(out, timer.Summary())
}
