// Package token defines the lexical token kinds of the kvd notation.
// Invariants:
//   - Token.Text is the exact source lexeme; Token.Span matches it (Start..End).
//   - Only the payload field selected by Kind is meaningful: Str for Ident and
//     String, Int for Integer, Float for Float.
//   - String payloads have their delimiting quotes stripped; escapes are kept verbatim.
//   - A malformed lexeme is an Invalid token, never a lexer failure.
package token
