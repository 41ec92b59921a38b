package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates a malformed lexeme.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents a bare word made of ASCII letters and underscores.
	Ident
	// String represents a double-quoted string literal.
	String
	// Integer represents a run of decimal digits.
	Integer
	// Float represents a decimal number with a fractional part.
	Float

	Comma    // ,
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
	Colon    // :
)

var kindNames = [...]string{
	Invalid:  "Invalid",
	EOF:      "EOF",
	Ident:    "Ident",
	String:   "String",
	Integer:  "Integer",
	Float:    "Float",
	Comma:    "Comma",
	LBrace:   "LBrace",
	RBrace:   "RBrace",
	LBracket: "LBracket",
	RBracket: "RBracket",
	Colon:    "Colon",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Punct returns the single-character spelling of a punctuation kind, or "".
func (k Kind) Punct() string {
	switch k {
	case Comma:
		return ","
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case Colon:
		return ":"
	default:
		return ""
	}
}
