package ippcode

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used throughout the ippcode packages
var (
	// ErrMissingHeader is returned when the first content line is not the language header.
	ErrMissingHeader = errors.New("missing or invalid program header")
	// ErrUnknownOpcode is returned when an opcode has no grammar row.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrArity is returned when an instruction has the wrong number of operands.
	ErrArity = errors.New("wrong number of operands")
	// ErrOperandKind is returned when an operand does not match the kind its position requires.
	ErrOperandKind = errors.New("invalid operand")
	// ErrInternal indicates a failure unrelated to the input grammar (serialization, output writing).
	ErrInternal = errors.New("internal error")

	// ErrInvalidArguments indicates a bad command line.
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrOpeningInput indicates the input could not be opened or read.
	ErrOpeningInput = errors.New("cannot open input")
	// ErrOpeningOutput indicates the output could not be opened.
	ErrOpeningOutput = errors.New("cannot open output")
)

// Process exit codes
const (
	ExitOK              = 0
	ExitInvalidArgs     = 10
	ExitOpeningInput    = 11
	ExitOpeningOutput   = 12
	ExitMissingHeader   = 21
	ExitUnknownOpcode   = 22
	ExitLexicalOrSyntax = 23
	ExitInternal        = 99
)

// SyntaxError describes a grammar failure of a single source line.
// It unwraps to one of ErrMissingHeader, ErrUnknownOpcode, ErrArity or ErrOperandKind.
type SyntaxError struct {
	Kind     error
	Line     int    // 1-based source line, 0 if unknown
	Order    int    // instruction order the line would have received, 0 for header errors
	Opcode   string // canonical opcode
	Position int    // 1-based operand position for ErrOperandKind
	Token    string // offending token (or the whole line for ErrMissingHeader)
	Expected string // expected operand kind or arity
	Got      int    // operand count for ErrArity
}

func (e *SyntaxError) Error() string {
	var b strings.Builder

	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}

	b.WriteString(e.Kind.Error())

	switch {
	case errors.Is(e.Kind, ErrMissingHeader):
		fmt.Fprintf(&b, ": expected %s, got %q", e.Expected, e.Token)
	case errors.Is(e.Kind, ErrUnknownOpcode):
		fmt.Fprintf(&b, " %q", e.Token)
	case errors.Is(e.Kind, ErrArity):
		fmt.Fprintf(&b, ": %s expects %s, got %d", e.Opcode, e.Expected, e.Got)
	case errors.Is(e.Kind, ErrOperandKind):
		fmt.Fprintf(&b, " %d of %s: %q is not a %s", e.Position, e.Opcode, e.Token, e.Expected)
	}

	if e.Order > 0 {
		fmt.Fprintf(&b, " (instruction %d)", e.Order)
	}

	return b.String()
}

func (e *SyntaxError) Unwrap() error {
	return e.Kind
}

// ExitCode maps an error returned by any ippcode package to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidArguments), errors.Is(err, ErrConfigValidation):
		return ExitInvalidArgs
	case errors.Is(err, ErrOpeningInput):
		return ExitOpeningInput
	case errors.Is(err, ErrOpeningOutput):
		return ExitOpeningOutput
	case errors.Is(err, ErrMissingHeader):
		return ExitMissingHeader
	case errors.Is(err, ErrUnknownOpcode):
		return ExitUnknownOpcode
	case errors.Is(err, ErrArity), errors.Is(err, ErrOperandKind):
		return ExitLexicalOrSyntax
	default:
		return ExitInternal
	}
}
