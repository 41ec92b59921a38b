package fuzztests

import (
	"testing"

	"kvd/internal/diag"
	"kvd/internal/lexer"
	"kvd/internal/source"
	"kvd/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		input = append([]byte(nil), input...)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.kvd", input))

		bag := diag.NewBag(64)
		tokens := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if len(tokens) == 0 || !tokens[len(tokens)-1].Is(token.EOF) {
			t.Fatalf("token stream does not end in EOF")
		}
		var prev uint32
		for i, tok := range tokens {
			if tok.Span.Start < prev || tok.Span.End < tok.Span.Start {
				t.Fatalf("token %d (%s) has span %d-%d after offset %d", i, tok, tok.Span.Start, tok.Span.End, prev)
			}
			if int(tok.Span.End) > len(file.Content) {
				t.Fatalf("token %d ends past input: %d > %d", i, tok.Span.End, len(file.Content))
			}
			prev = tok.Span.End
		}
	})
}
