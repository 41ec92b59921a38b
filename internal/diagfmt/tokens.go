package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"kvd/internal/source"
	"kvd/internal/token"
)

type TokenOutput struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text,omitempty"`
	Value any         `json:"value,omitempty"`
	Span  source.Span `json:"span"`
}

// FormatTokensPretty writes one token per line with its resolved position.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-10s %-24s at %d:%d-%d:%d\n",
			i+1, tok.Kind.String(), quoteText(tok),
			startPos.Line, startPos.Col, endPos.Line, endPos.Col); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

func quoteText(tok token.Token) string {
	if tok.Text == "" {
		return ""
	}
	return fmt.Sprintf("%q", tok.Text)
}

// BuildTokensOutput converts tokens up to and including EOF for JSON output.
func BuildTokensOutput(tokens []token.Token) []TokenOutput {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
		}
		switch tok.Kind {
		case token.Ident, token.String:
			out.Value = tok.Str
		case token.Integer:
			out.Value = tok.Int
		case token.Float:
			out.Value = floatValue(tok.Float)
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	return output
}

// FormatTokensJSON writes the tokens up to and including EOF as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens))
}
