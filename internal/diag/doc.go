// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// Package diag does not perform any formatting or IO. Rendering lives in
// internal/diagfmt; the driver collects diagnostics per file into a Bag.
//
// Diagnostic is the central record: Severity, Code (stable numeric identifier
// with a string form such as SYN2001), Message, the Primary span and optional
// Notes. Producers emit through a Reporter so they never depend on storage.
package diag
