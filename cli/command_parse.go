package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/shibukawa/ippcode"
	"github.com/shibukawa/ippcode/parser"
	"github.com/shibukawa/ippcode/xmltree"
)

// ParseCmd represents the parse command
type ParseCmd struct {
	Input  string `short:"i" help:"Source file to read, - for standard input" default:"-"`
	Output string `short:"o" help:"XML file to write, - for standard output" default:"-"`
}

// Run executes the parse command
func (p *ParseCmd) Run(ctx *Context) error {
	config, err := ctx.LoadConfig()
	if err != nil {
		return err
	}

	input, closeInput, err := openInput(ctx, p.Input)
	if err != nil {
		return err
	}
	defer closeInput()

	ctx.progress("Parsing %s", displayName(p.Input))

	program, err := parser.Parse(input, parser.OptionsFromConfig(config))
	if err != nil {
		return err
	}

	options := xmltree.WriteOptions{
		Indent:      config.Output.IndentWidth(),
		Declaration: config.Output.IncludeDeclaration(),
	}

	// Output is opened only after the whole program was accepted.
	if p.Output == "" || p.Output == "-" {
		_, err = program.WriteTo(ctx.stdout(), options)
		return err
	}

	file, err := os.Create(p.Output)
	if err != nil {
		return fmt.Errorf("%w: %w", ippcode.ErrOpeningOutput, err)
	}

	_, err = program.WriteTo(file, options)
	if err != nil {
		file.Close()
		return err
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("%w: %w", ippcode.ErrOpeningOutput, err)
	}

	ctx.progress("Wrote %d instructions to %s", program.Len(), p.Output)

	return nil
}

func openInput(ctx *Context, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return ctx.stdin(), func() {}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ippcode.ErrOpeningInput, err)
	}

	return file, func() { file.Close() }, nil
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "standard input"
	}

	return path
}
