package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1004

	// syntax
	SynUnexpectedToken Code = 2001
	SynTrailingInput   Code = 2002

	// io
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string",
	LexBadNumber:          "Bad number literal",
	SynUnexpectedToken:    "Unexpected token",
	SynTrailingInput:      "Unexpected input after document",
	IOLoadFileError:       "I/O load file error",
	IOCacheError:          "Parse cache error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
