package grammar

import "github.com/shibukawa/ippcode/tokenizer"

// OperandKind is the kind of operand a grammar row expects at one position
type OperandKind int

const (
	None OperandKind = iota
	Variable
	Label
	Symbol // Variable or Literal, resolved per token
	Type
)

// String returns the string representation of OperandKind
func (k OperandKind) String() string {
	switch k {
	case None:
		return "none"
	case Variable:
		return "variable"
	case Label:
		return "label"
	case Symbol:
		return "symbol"
	case Type:
		return "type"
	default:
		return "unknown"
	}
}

// Class is the concrete, emitted kind of a classified operand
type Class string

const (
	ClassVar    Class = "var"
	ClassLabel  Class = "label"
	ClassType   Class = "type"
	ClassInt    Class = "int"
	ClassBool   Class = "bool"
	ClassString Class = "string"
	ClassNil    Class = "nil"
)

// IsLiteral reports whether the class is one of the literal sub-kinds
func (c Class) IsLiteral() bool {
	switch c {
	case ClassInt, ClassBool, ClassString, ClassNil:
		return true
	default:
		return false
	}
}

// Operand is a validated operand
type Operand struct {
	Position int // 1-based
	Class    Class
	Value    string // emitted value: the part after the type tag for literals, the whole token otherwise
	Token    tokenizer.Token
}

// Instruction is a fully validated instruction line
type Instruction struct {
	Opcode   string // canonical
	Operands []Operand
	Line     int
}
