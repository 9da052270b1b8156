package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/shibukawa/ippcode"
	"github.com/shibukawa/ippcode/grammar"
	"github.com/shibukawa/ippcode/tokenizer"
	"github.com/shibukawa/ippcode/xmltree"
)

// Parser translates one program in a single forward pass.
// A Parser is used once; create a new one per program.
type Parser struct {
	options   Options
	gate      *headerGate
	validator *grammar.Validator
	program   *xmltree.Program
	order     int
}

// NewParser creates a new Parser
func NewParser(options Options) *Parser {
	if options.Language == "" {
		options.Language = DefaultOptions.Language
	}

	return &Parser{
		options:   options,
		gate:      newHeaderGate(options.header()),
		validator: grammar.NewValidator(),
		program:   xmltree.New(options.Language),
	}
}

// Parse reads the whole program and returns the tree.
// Any grammar error stops the pass; no tree is returned in that case.
func (p *Parser) Parse(r io.Reader) (*xmltree.Program, error) {
	for line, err := range tokenizer.NewLineTokenizer(r).Lines() {
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ippcode.ErrOpeningInput, err)
		}

		err = p.ParseLine(line)
		if err != nil {
			return nil, err
		}
	}

	err := p.gate.finish()
	if err != nil {
		return nil, err
	}

	return p.program, nil
}

// ParseLine feeds one content-bearing line through the header gate and the validator.
func (p *Parser) ParseLine(line tokenizer.Line) error {
	isInstruction, err := p.gate.admit(line)
	if err != nil || !isInstruction {
		return err
	}

	p.order++

	instruction, err := p.validator.ValidateLine(line)
	if err != nil {
		var syntaxErr *ippcode.SyntaxError
		if errors.As(err, &syntaxErr) {
			syntaxErr.Line = line.Number
			syntaxErr.Order = p.order
		}

		return err
	}

	p.program.Emit(p.order, instruction)

	return nil
}

// Program returns the tree built so far
func (p *Parser) Program() *xmltree.Program {
	return p.program
}
