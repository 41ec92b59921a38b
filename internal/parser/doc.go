// Package parser turns a kvd token sequence into an ast.Node.
//
// The parser is a recursive descent over a two-token window (current, peek).
// It stops at the first token the grammar does not allow and reports it as an
// *UnexpectedTokenError; no partial tree is returned.
//
//	value  := object | list | STRING | INTEGER | FLOAT | IDENT
//	object := '{' [ member (',' member)* [','] ] '}'
//	member := (STRING | INTEGER | FLOAT) ':' value
//	list   := '[' [ value (',' value)* ] ']'
package parser
