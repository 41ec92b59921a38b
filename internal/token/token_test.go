package token_test

import (
	"testing"

	"kvd/internal/source"
	"kvd/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsComparesKindOnly(t *testing.T) {
	a := token.Token{Kind: token.String, Str: "a"}
	if !a.Is(token.String) {
		t.Fatalf("String token must match String kind regardless of payload")
	}
	if a.Is(token.Ident) {
		t.Fatalf("String token must not match Ident")
	}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.Ident, token.String, token.Integer, token.Float} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.Comma, token.LBrace, token.EOF, token.Invalid} {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunct(t *testing.T) {
	for _, k := range []token.Kind{token.Comma, token.LBrace, token.RBrace, token.LBracket, token.RBracket, token.Colon} {
		if !tok(k).IsPunct() {
			t.Fatalf("%v should be punct", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.Integer, token.EOF} {
		if tok(k).IsPunct() {
			t.Fatalf("%v must NOT be punct", k)
		}
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  token.Token
		want string
	}{
		{token.Token{Kind: token.RBrace, Text: "}"}, "RBrace"},
		{token.Token{Kind: token.Integer, Int: 42}, "Integer(42)"},
		{token.Token{Kind: token.Float, Float: 3.14}, "Float(3.14)"},
		{token.Token{Kind: token.String, Str: "abc"}, `String("abc")`},
		{token.Token{Kind: token.Ident, Str: "true"}, `Ident("true")`},
		{token.Token{Kind: token.Invalid, Text: "@"}, `Invalid("@")`},
		{token.Token{Kind: token.EOF}, "EOF"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	if token.LBracket.String() != "LBracket" || token.Kind(200).String() != "Kind(?)" {
		t.Fatalf("unexpected kind names")
	}
}
