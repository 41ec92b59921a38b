package lexer_test

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"kvd/internal/diag"
	"kvd/internal/lexer"
	"kvd/internal/source"
	"kvd/internal/token"
)

// testReporter collects every diagnostic produced by the lexer.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func tokenize(input string) ([]token.Token, *testReporter) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.kvd", []byte(input)))
	reporter := &testReporter{}
	return lexer.Tokenize(file, lexer.Options{Reporter: reporter}), reporter
}

func kindsOf(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, tok.String())
	}
	return strings.Join(parts, " ")
}

// expectTokens checks the kinds of all tokens, EOF excluded.
func expectTokens(t *testing.T, input string, expected ...token.Kind) {
	t.Helper()
	tokens, reporter := tokenize(input)
	if last := tokens[len(tokens)-1]; last.Kind != token.EOF {
		t.Fatalf("token stream must end with EOF, got %v", last)
	}
	got := kindsOf(tokens[:len(tokens)-1])
	if fmt.Sprint(got) != fmt.Sprint(expected) {
		t.Fatalf("input %q:\n got  %v\n want %v\n tokens: %s\n diags: %v",
			input, got, expected, tokensToString(tokens), reporter.codes())
	}
}

func single(t *testing.T, input string) token.Token {
	t.Helper()
	tokens, _ := tokenize(input)
	if len(tokens) != 2 {
		t.Fatalf("input %q: want one token + EOF, got %s", input, tokensToString(tokens))
	}
	return tokens[0]
}

func TestPunctuation(t *testing.T) {
	expectTokens(t, ",{}[]:",
		token.Comma, token.LBrace, token.RBrace, token.LBracket, token.RBracket, token.Colon)
}

func TestWhitespaceIsSkipped(t *testing.T) {
	expectTokens(t, " \t\r\n\f\v{ \n } ", token.LBrace, token.RBrace)
	expectTokens(t, "   ")
	expectTokens(t, "")
}

func TestIntegerWinsOverFloat(t *testing.T) {
	tok := single(t, "10")
	if tok.Kind != token.Integer || tok.Int != 10 {
		t.Fatalf("10 lexed as %v", tok)
	}
	tok = single(t, "10.5")
	if tok.Kind != token.Float || tok.Float != 10.5 {
		t.Fatalf("10.5 lexed as %v", tok)
	}
	tok = single(t, "007")
	if tok.Kind != token.Integer || tok.Int != 7 || tok.Text != "007" {
		t.Fatalf("007 lexed as %v", tok)
	}
}

func TestDotWithoutFraction(t *testing.T) {
	// "1." is an integer followed by a stray dot
	expectTokens(t, "1.", token.Integer, token.Invalid)
	expectTokens(t, "1.2.3", token.Float, token.Invalid, token.Integer)
}

func TestLeadingDotIsNotFloat(t *testing.T) {
	tokens, reporter := tokenize(".25")
	if len(tokens) != 3 || tokens[0].Kind != token.Invalid || tokens[0].Text != "." {
		t.Fatalf(".25 lexed as %v", tokens)
	}
	if tokens[1].Kind != token.Integer || tokens[1].Int != 25 {
		t.Fatalf("digits after the dot lexed as %v", tokens[1])
	}
	if codes := reporter.codes(); len(codes) != 1 || codes[0] != diag.LexUnknownChar {
		t.Fatalf("want one LexUnknownChar, got %v", codes)
	}
}

func TestIntegerOverflowIsInvalid(t *testing.T) {
	tokens, reporter := tokenize("99999999999999999999")
	if tokens[0].Kind != token.Invalid {
		t.Fatalf("overflowing integer must be Invalid, got %v", tokens[0])
	}
	if codes := reporter.codes(); len(codes) != 1 || codes[0] != diag.LexBadNumber {
		t.Fatalf("want one LexBadNumber, got %v", codes)
	}
	tok := single(t, "9223372036854775807")
	if tok.Kind != token.Integer || tok.Int != 9223372036854775807 {
		t.Fatalf("max int64 lexed as %v", tok)
	}
}

func TestFloatOverflowSaturates(t *testing.T) {
	src := strings.Repeat("9", 400) + ".5"
	tokens, reporter := tokenize(src)
	if len(tokens) != 2 || tokens[0].Kind != token.Float || !math.IsInf(tokens[0].Float, 1) {
		t.Fatalf("huge float lexed as %s", tokensToString(tokens))
	}
	if codes := reporter.codes(); len(codes) != 0 {
		t.Fatalf("want no diagnostics, got %v", codes)
	}
}

func TestIdentifiers(t *testing.T) {
	tok := single(t, "true")
	if tok.Kind != token.Ident || tok.Str != "true" {
		t.Fatalf("true lexed as %v", tok)
	}
	tok = single(t, "_snake_Case")
	if tok.Kind != token.Ident || tok.Str != "_snake_Case" {
		t.Fatalf("identifier lexed as %v", tok)
	}
	// digits are not identifier characters
	expectTokens(t, "abc1", token.Ident, token.Integer)
}

func TestStrings(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"abc"`, "abc"},
		{`""`, ""},
		{`"a\"b"`, `a\"b`},
		{`"back\\"`, `back\\`},
		{`"tab\tnl\n"`, `tab\tnl\n`},
		{"\"multi\nline\"", "multi\nline"},
		{`"ünï"`, "ünï"},
	}
	for _, tt := range tests {
		tok := single(t, tt.in)
		if tok.Kind != token.String || tok.Str != tt.want {
			t.Errorf("%s lexed as %v, want String(%q)", tt.in, tok, tt.want)
		}
		if tok.Text != tt.in {
			t.Errorf("Text = %q, want the raw lexeme %q", tok.Text, tt.in)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	tokens, reporter := tokenize(`["abc, 1]`)
	got := kindsOf(tokens)
	want := []token.Kind{token.LBracket, token.Invalid, token.EOF}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if tokens[1].Text != `"abc, 1]` {
		t.Fatalf("unterminated string must span to the end, got %q", tokens[1].Text)
	}
	if codes := reporter.codes(); len(codes) != 1 || codes[0] != diag.LexUnterminatedString {
		t.Fatalf("want LexUnterminatedString, got %v", codes)
	}
	expectTokens(t, `"trailing backslash\`, token.Invalid)
}

func TestUnknownCharacters(t *testing.T) {
	tokens, reporter := tokenize("{@ é}")
	got := kindsOf(tokens)
	want := []token.Kind{token.LBrace, token.Invalid, token.Invalid, token.RBrace, token.EOF}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if tokens[2].Text != "é" {
		t.Fatalf("invalid token must cover one whole rune, got %q", tokens[2].Text)
	}
	if len(reporter.diagnostics) != 2 {
		t.Fatalf("want 2 diagnostics, got %v", reporter.codes())
	}
}

func TestSpans(t *testing.T) {
	tokens, _ := tokenize(`{"a": 12}`)
	want := []struct {
		start, end uint32
	}{{0, 1}, {1, 4}, {4, 5}, {6, 8}, {8, 9}, {9, 9}}
	for i, w := range want {
		sp := tokens[i].Span
		if sp.Start != w.start || sp.End != w.end {
			t.Errorf("token %d (%v) span %d..%d, want %d..%d", i, tokens[i], sp.Start, sp.End, w.start, w.end)
		}
	}
}

func TestNextAfterEOFAndPeek(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("t.kvd", []byte("[1]"))), lexer.Options{})

	if lx.Peek().Kind != token.LBracket || lx.Peek().Kind != token.LBracket {
		t.Fatalf("Peek must not consume")
	}
	for _, want := range []token.Kind{token.LBracket, token.Integer, token.RBracket, token.EOF, token.EOF} {
		if got := lx.Next().Kind; got != want {
			t.Fatalf("Next() = %v, want %v", got, want)
		}
	}
}

func TestNoReporterStillProducesInvalid(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.kvd", []byte("#")))
	tokens := lexer.Tokenize(file, lexer.Options{})
	if tokens[0].Kind != token.Invalid {
		t.Fatalf("got %v", tokens[0])
	}
}
