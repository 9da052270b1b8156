package grammar

import (
	"strconv"
	"unicode/utf8"

	"github.com/shibukawa/ippcode"
	"github.com/shibukawa/ippcode/tokenizer"
	pc "github.com/shibukawa/parsercombinator"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Validator checks instruction lines against the grammar table.
// A Validator is not safe for concurrent use.
type Validator struct {
	pctx  *pc.ParseContext[tokenizer.Token]
	upper cases.Caser
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{
		pctx:  newParseContext(),
		upper: cases.Upper(language.Und),
	}
}

// Canonical returns the canonical (uppercase) form of an opcode
func (v *Validator) Canonical(opcode string) string {
	return v.upper.String(opcode)
}

// ValidateLine validates a tokenized source line
func (v *Validator) ValidateLine(line tokenizer.Line) (*Instruction, error) {
	instruction, err := v.Validate(line.Opcode.Value, line.Operands)
	if err != nil {
		return nil, err
	}

	instruction.Line = line.Number

	return instruction, nil
}

// Validate looks up the opcode, checks arity and classifies each operand.
// It stops at the first operand that does not match its position.
func (v *Validator) Validate(opcode string, operands []tokenizer.Token) (*Instruction, error) {
	canonical := v.Canonical(opcode)
	if !isASCII(opcode) {
		canonical = opcode
	}

	row, ok := Lookup(canonical)
	if !ok {
		return nil, &ippcode.SyntaxError{
			Kind:   ippcode.ErrUnknownOpcode,
			Opcode: canonical,
			Token:  opcode,
		}
	}

	if len(operands) != len(row) {
		return nil, &ippcode.SyntaxError{
			Kind:     ippcode.ErrArity,
			Opcode:   canonical,
			Expected: arity(row),
			Got:      len(operands),
		}
	}

	instruction := &Instruction{
		Opcode:   canonical,
		Operands: make([]Operand, 0, len(row)),
	}

	for i, kind := range row {
		token := operands[i]

		class, ok := classify(v.pctx, kind, token)
		if !ok {
			return nil, &ippcode.SyntaxError{
				Kind:     ippcode.ErrOperandKind,
				Opcode:   canonical,
				Position: i + 1,
				Token:    token.Value,
				Expected: kind.String(),
			}
		}

		instruction.Operands = append(instruction.Operands, Operand{
			Position: i + 1,
			Class:    class,
			Value:    operandValue(class, token.Value),
			Token:    token,
		})
	}

	return instruction, nil
}

func arity(row Row) string {
	switch len(row) {
	case 0:
		return row.String()
	case 1:
		return "1 operand (" + row.String() + ")"
	default:
		return strconv.Itoa(len(row)) + " operands (" + row.String() + ")"
	}
}

// isASCII guards the lookup against letters that only fold to an opcode
// under Unicode case mapping, such as the long s or the Kelvin sign.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}

	return true
}
