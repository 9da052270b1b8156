package parser

import (
	"io"
	"strings"

	"github.com/shibukawa/ippcode/xmltree"
)

// Parse translates a program read from r with the given options.
func Parse(r io.Reader, options Options) (*xmltree.Program, error) {
	return NewParser(options).Parse(r)
}

// ParseString translates a program held in memory with the default options.
func ParseString(src string) (*xmltree.Program, error) {
	return Parse(strings.NewReader(src), DefaultOptions)
}
