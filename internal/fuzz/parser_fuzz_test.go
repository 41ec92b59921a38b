package fuzztests

import (
	"context"
	"testing"
	"time"

	"kvd/internal/diag"
	"kvd/internal/parser"
	"kvd/internal/source"
	"kvd/internal/testkit"
)

// parseTimeout bounds a single parse; exceeding it means the parser loops.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		input = append([]byte(nil), input...)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.kvd", input))

		bag := diag.NewBag(128)
		root, err := parser.ParseFile(context.Background(), file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err != nil {
			if root != nil {
				t.Fatalf("partial tree returned with error %v", err)
			}
			if !bag.HasErrors() {
				t.Fatalf("failure %v produced no diagnostic", err)
			}
			return
		}
		if err := testkit.CheckSpanInvariants(root, file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang checks that parsing finishes on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("[[[[[[[[[[[[[[[[[[[["))
	f.Add([]byte(`{"a": {"b": {"c": {"d": `))
	f.Add([]byte(`{,}`))

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		input = append([]byte(nil), input...)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.kvd", input))
			_, _ = parser.ParseFile(ctx, file, parser.Options{})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], "..."...)
}
