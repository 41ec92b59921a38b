// Package fuzztests holds fuzz harnesses for the reading pipeline
// (source -> lexer -> parser). They check that arbitrary input never panics,
// never hangs and that every tree produced keeps its span invariants.
package fuzztests
