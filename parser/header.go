package parser

import (
	"strings"

	"github.com/shibukawa/ippcode"
	"github.com/shibukawa/ippcode/tokenizer"
)

type gateState int

const (
	awaitingHeader gateState = iota
	inBody
)

// headerGate requires the first content line to be the header.
// Once the header is seen every further line is an instruction, including a repeated header.
type headerGate struct {
	state  gateState
	header string
}

func newHeaderGate(header string) *headerGate {
	return &headerGate{header: header}
}

// admit reports whether the line is an instruction line.
func (g *headerGate) admit(line tokenizer.Line) (bool, error) {
	if g.state == inBody {
		return true, nil
	}

	if !strings.EqualFold(line.Text, g.header) {
		return false, &ippcode.SyntaxError{
			Kind:     ippcode.ErrMissingHeader,
			Line:     line.Number,
			Token:    line.Text,
			Expected: g.header,
		}
	}

	g.state = inBody

	return false, nil
}

// finish is called at end of input.
func (g *headerGate) finish() error {
	if g.state == inBody {
		return nil
	}

	return &ippcode.SyntaxError{
		Kind:     ippcode.ErrMissingHeader,
		Token:    "end of input",
		Expected: g.header,
	}
}
