package lexer

import (
	"testing"

	"kvd/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kvd", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatalf("cursor must stay at EOF")
	}
}

func TestCursorMarkSpan(t *testing.T) {
	cursor := NewCursor(createFile("abc"))
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	if sp := cursor.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	cursor = NewCursor(createFile("abc"))
	if !cursor.Eat('a') || cursor.Eat('a') {
		t.Fatalf("Eat must consume only a matching byte")
	}
	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'b' || b1 != 'c' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatalf("Peek2 past the end must fail")
	}
}
