package token

import (
	"fmt"
	"strconv"

	"kvd/internal/source"
)

// Token represents a single source token with its location and payload.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Str   string
	Int   int64
	Float float64
}

// Is compares the discriminant only; payloads are ignored.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsLiteral reports whether the token is a scalar value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Ident, String, Integer, Float:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is one of , { } [ ] :.
func (t Token) IsPunct() bool {
	return t.Kind.Punct() != ""
}

// String renders the token as Kind(payload), e.g. Integer(42) or RBrace.
func (t Token) String() string {
	switch t.Kind {
	case Ident, String:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Str)
	case Integer:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Int)
	case Float:
		return fmt.Sprintf("%s(%s)", t.Kind, strconv.FormatFloat(t.Float, 'g', -1, 64))
	case Invalid:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}
