package parser

import (
	"errors"
	"strings"

	"kvd/internal/token"
)

// ErrUnexpectedToken matches every *UnexpectedTokenError via errors.Is.
var ErrUnexpectedToken = errors.New("unexpected token")

// UnexpectedTokenError carries the token that broke the grammar.
type UnexpectedTokenError struct {
	Token token.Token
	// Expected lists the kinds that would have been accepted; empty when any value would do.
	Expected []token.Kind
}

func (e *UnexpectedTokenError) Error() string {
	var sb strings.Builder
	sb.WriteString("unexpected token ")
	sb.WriteString(e.Token.String())
	if len(e.Expected) > 0 {
		sb.WriteString(", expected ")
		for i, k := range e.Expected {
			if i > 0 {
				sb.WriteString(" or ")
			}
			sb.WriteString(k.String())
		}
	}
	return sb.String()
}

func (e *UnexpectedTokenError) Unwrap() error { return ErrUnexpectedToken }
