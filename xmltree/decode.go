package xmltree

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shibukawa/ippcode/grammar"
)

// Sentinel errors
var (
	ErrNotProgram         = errors.New("root element is not a program")
	ErrMalformedStructure = errors.New("malformed program structure")
)

// Arg is a decoded operand element
type Arg struct {
	Position int
	Class    grammar.Class
	Value    string
}

// Record is a decoded instruction element
type Record struct {
	Order  int
	Opcode string
	Args   []Arg
}

// Decode reads a serialized program back into records in document order.
func Decode(r io.Reader) (language string, records []Record, err error) {
	doc := etree.NewDocument()

	_, err = doc.ReadFrom(r)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read program XML: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != ProgramTag {
		return "", nil, ErrNotProgram
	}

	for _, element := range root.ChildElements() {
		if element.Tag != InstructionTag {
			return "", nil, fmt.Errorf("%w: unexpected element <%s>", ErrMalformedStructure, element.Tag)
		}

		order, err := strconv.Atoi(element.SelectAttrValue("order", ""))
		if err != nil {
			return "", nil, fmt.Errorf("%w: invalid order: %w", ErrMalformedStructure, err)
		}

		record := Record{
			Order:  order,
			Opcode: element.SelectAttrValue("opcode", ""),
		}

		for _, arg := range element.ChildElements() {
			position, err := strconv.Atoi(strings.TrimPrefix(arg.Tag, argTagPrefix))
			if err != nil || !strings.HasPrefix(arg.Tag, argTagPrefix) {
				return "", nil, fmt.Errorf("%w: unexpected element <%s> in instruction %d", ErrMalformedStructure, arg.Tag, order)
			}

			record.Args = append(record.Args, Arg{
				Position: position,
				Class:    grammar.Class(arg.SelectAttrValue("type", "")),
				Value:    arg.Text(),
			})
		}

		records = append(records, record)
	}

	return root.SelectAttrValue("language", ""), records, nil
}

// Verify re-classifies every decoded operand against its declared class and
// checks that orders run 1..N without gaps.
func Verify(records []Record) error {
	for i, record := range records {
		if record.Order != i+1 {
			return fmt.Errorf("%w: instruction %d has order %d", ErrMalformedStructure, i+1, record.Order)
		}

		for j, arg := range record.Args {
			if arg.Position != j+1 {
				return fmt.Errorf("%w: instruction %d: <%s> at position %d", ErrMalformedStructure, record.Order, ArgTag(arg.Position), j+1)
			}

			if !grammar.Accepts(arg.Class, arg.Value) {
				return fmt.Errorf("%w: instruction %d: %s value %q does not classify as %s",
					ErrMalformedStructure, record.Order, ArgTag(arg.Position), arg.Value, arg.Class)
			}
		}
	}

	return nil
}
