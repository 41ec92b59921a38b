package driver

import (
	"kvd/internal/diag"
	"kvd/internal/lexer"
	"kvd/internal/source"
	"kvd/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and lexes it to EOF.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	file, err := loadInput(fs, path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxDiagnostics)
	reporterAdapter := &lexer.ReporterAdapter{Bag: bag}
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: reporterAdapter.Reporter()})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
