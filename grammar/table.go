package grammar

import (
	"slices"
	"strings"
)

// Row is the ordered list of operand kinds an opcode expects
type Row []OperandKind

// String renders the row as e.g. "variable symbol symbol"
func (r Row) String() string {
	if len(r) == 0 {
		return "no operands"
	}

	parts := make([]string, len(r))
	for i, kind := range r {
		parts[i] = kind.String()
	}

	return strings.Join(parts, " ")
}

// Opcodes are grouped by operand shape; each group shares one Row.
var shapes = []struct {
	row     Row
	opcodes []string
}{
	{Row{}, []string{"CREATEFRAME", "PUSHFRAME", "POPFRAME", "RETURN", "BREAK"}},
	{Row{Variable}, []string{"DEFVAR", "POPS"}},
	{Row{Label}, []string{"CALL", "LABEL", "JUMP"}},
	{Row{Symbol}, []string{"PUSHS", "WRITE", "EXIT", "DPRINT"}},
	{Row{Variable, Symbol}, []string{"MOVE", "NOT", "INT2CHAR", "STRLEN", "TYPE"}},
	{Row{Variable, Type}, []string{"READ"}},
	{Row{Variable, Symbol, Symbol}, []string{
		"ADD", "SUB", "MUL", "IDIV",
		"LT", "GT", "EQ",
		"AND", "OR",
		"STRI2INT", "GETCHAR", "SETCHAR", "CONCAT",
	}},
	{Row{Label, Symbol, Symbol}, []string{"JUMPIFEQ", "JUMPIFNEQ"}},
}

// Table maps a canonical opcode to its grammar row
var Table = buildTable()

func buildTable() map[string]Row {
	table := make(map[string]Row)

	for _, shape := range shapes {
		for _, opcode := range shape.opcodes {
			table[opcode] = shape.row
		}
	}

	return table
}

// Lookup returns the grammar row of a canonical opcode
func Lookup(opcode string) (Row, bool) {
	row, ok := Table[opcode]
	return row, ok
}

// Opcodes returns all known canonical opcodes, sorted
func Opcodes() []string {
	opcodes := make([]string, 0, len(Table))
	for opcode := range Table {
		opcodes = append(opcodes, opcode)
	}

	slices.Sort(opcodes)

	return opcodes
}
