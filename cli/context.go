package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/shibukawa/ippcode"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (c *Context) stdin() io.Reader {
	if c.Stdin == nil {
		return os.Stdin
	}

	return c.Stdin
}

func (c *Context) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}

	return c.Stdout
}

func (c *Context) stderr() io.Writer {
	if c.Stderr == nil {
		return os.Stderr
	}

	return c.Stderr
}

// LoadConfig loads the configuration named by the global --config flag
func (c *Context) LoadConfig() (*ippcode.Config, error) {
	config, err := ippcode.LoadConfig(c.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return config, nil
}

// Status lines go to stderr so they never mix with XML on stdout.

func (c *Context) progress(format string, args ...any) {
	if c.Verbose {
		color.New(color.FgBlue).Fprintf(c.stderr(), format+"\n", args...)
	}
}

func (c *Context) success(format string, args ...any) {
	if !c.Quiet {
		color.New(color.FgGreen).Fprintf(c.stderr(), format+"\n", args...)
	}
}

func (c *Context) failure(format string, args ...any) {
	color.New(color.FgRed).Fprintf(c.stderr(), format+"\n", args...)
}
