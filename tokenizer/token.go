package tokenizer

import (
	"errors"
	"strconv"
)

// Sentinel errors
var (
	ErrLineTooLong = errors.New("source line too long")
)

// CommentMarker starts a comment that runs to the end of the line.
const CommentMarker = '#'

// TokenType represents the type of a token
type TokenType int

const (
	OPCODE  TokenType = iota // first token of a content line
	OPERAND                  // any following token
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case OPCODE:
		return "OPCODE"
	case OPERAND:
		return "OPERAND"
	default:
		return "UNKNOWN"
	}
}

// Position represents a position in the source code
type Position struct {
	Line   int
	Column int // 1-based, counted in bytes of the raw line
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Token is a maximal whitespace-delimited substring of a normalized line
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}

// Line is one content-bearing source line
type Line struct {
	Number   int
	Text     string // normalized text: comment stripped, surrounding whitespace trimmed
	Opcode   Token
	Operands []Token
}
