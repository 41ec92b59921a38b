package observ_test

import (
	"strings"
	"testing"

	"kvd/internal/observ"
)

func TestTimerReport(t *testing.T) {
	tm := observ.NewTimer()
	idx := tm.Begin("lex")
	tm.End(idx, "12 tokens")
	tm.End(42, "ignored")

	report := tm.Report()
	if len(report.Phases) != 1 || report.Phases[0].Name != "lex" || report.Phases[0].Note != "12 tokens" {
		t.Fatalf("unexpected report: %+v", report)
	}
	if !strings.Contains(tm.Summary(), "// 12 tokens") {
		t.Errorf("summary missing note:\n%s", tm.Summary())
	}
}

func TestTimerMerge(t *testing.T) {
	a, b := observ.NewTimer(), observ.NewTimer()
	a.End(a.Begin("parse"), "")
	b.End(b.Begin("parse"), "")
	b.End(b.Begin("load"), "")

	a.Merge(b)
	a.Merge(nil)
	report := a.Report()
	if len(report.Phases) != 2 || report.Phases[0].Name != "parse" || report.Phases[1].Name != "load" {
		t.Fatalf("unexpected merged phases: %+v", report.Phases)
	}
	if (*observ.Timer)(nil).Report().Phases != nil {
		t.Error("nil timer must produce an empty report")
	}
}
