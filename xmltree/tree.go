// Package xmltree builds the program document handed to the interpreter.
//
// The tree is append-only and holds raw operand values. Markup characters are
// escaped once, when the document is written.
package xmltree

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shibukawa/ippcode"
	"github.com/shibukawa/ippcode/grammar"
)

const (
	ProgramTag     = "program"
	InstructionTag = "instruction"
	argTagPrefix   = "arg"
)

// WriteOptions controls serialization
type WriteOptions struct {
	Indent      int // spaces per level, 0 writes a single line
	Declaration bool
}

// DefaultWriteOptions matches the default configuration
var DefaultWriteOptions = WriteOptions{Indent: 2, Declaration: true}

// Program is the in-memory program tree
type Program struct {
	language string
	root     *etree.Element
	count    int
}

// New creates an empty program tree for the given language name
func New(language string) *Program {
	root := etree.NewElement(ProgramTag)
	root.CreateAttr("language", language)

	return &Program{
		language: language,
		root:     root,
	}
}

// Language returns the value of the root language attribute
func (p *Program) Language() string {
	return p.language
}

// Len returns the number of instructions appended so far
func (p *Program) Len() int {
	return p.count
}

// Emit appends one validated instruction with the given order.
func (p *Program) Emit(order int, instruction *grammar.Instruction) {
	element := p.root.CreateElement(InstructionTag)
	element.CreateAttr("order", strconv.Itoa(order))
	element.CreateAttr("opcode", instruction.Opcode)

	for _, operand := range instruction.Operands {
		arg := element.CreateElement(ArgTag(operand.Position))
		arg.CreateAttr("type", string(operand.Class))

		if operand.Value != "" {
			arg.SetText(operand.Value)
		}
	}

	p.count++
}

// ArgTag returns the element tag of the operand at a 1-based position
func ArgTag(position int) string {
	return argTagPrefix + strconv.Itoa(position)
}

// Document returns a serializable copy of the tree
func (p *Program) Document(options WriteOptions) *etree.Document {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalText = true

	if options.Declaration {
		doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	}

	doc.AddChild(p.root.Copy())

	if options.Indent > 0 {
		doc.Indent(options.Indent)
	}

	return doc
}

// WriteTo serializes the whole tree.
func (p *Program) WriteTo(w io.Writer, options WriteOptions) (int64, error) {
	n, err := p.Document(options).WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("%w: failed to write program: %w", ippcode.ErrInternal, err)
	}

	return n, nil
}

// String serializes the tree with the default options
func (p *Program) String() string {
	var b strings.Builder

	_, _ = p.WriteTo(&b, DefaultWriteOptions)

	return b.String()
}
