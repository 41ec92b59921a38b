package diag_test

import (
	"testing"

	"kvd/internal/diag"
	"kvd/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := diag.NewBag(2)
	for i := range 3 {
		start := uint32(i)
		bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{Start: start, End: start + 1}, "x"))
	}
	if bag.Len() != 2 || bag.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d, want 2 and 1", bag.Len(), bag.Dropped())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("errors imply warnings-or-worse")
	}
}

func TestBagUnbounded(t *testing.T) {
	bag := diag.NewBag(0)
	for range 200 {
		bag.Add(diag.New(diag.SevInfo, diag.UnknownCode, source.Span{}, "i"))
	}
	if bag.Len() != 200 || bag.HasWarnings() {
		t.Fatalf("unexpected bag state: len=%d", bag.Len())
	}
}

func TestBagSortIsStable(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{Start: 5, End: 6}, "b"))
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{Start: 1, End: 2}, "a"))
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{Start: 5, End: 6}, "dup"))
	bag.Sort()

	items := bag.Items()
	if len(items) != 3 {
		t.Fatalf("want 3 items, got %d", len(items))
	}
	if items[0].Code != diag.LexUnknownChar || items[1].Message != "b" || items[2].Message != "dup" {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[diag.Code]string{
		diag.LexUnterminatedString: "LEX1002",
		diag.SynUnexpectedToken:    "SYN2001",
		diag.IOLoadFileError:       "IO4001",
		diag.UnknownCode:           "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %s, want %s", code, got, want)
		}
	}
	if got := diag.SynUnexpectedToken.String(); got != "[SYN2001]: Unexpected token" {
		t.Errorf("String() = %q", got)
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := diag.NewBag(10)
	b := diag.ReportError(diag.BagReporter{Bag: bag}, diag.LexBadNumber, source.Span{}, "too big").
		WithNote(source.Span{Start: 1, End: 2}, "here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 || len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("builder must emit exactly once with its notes, got %+v", bag.Items())
	}
}
