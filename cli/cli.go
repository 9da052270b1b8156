package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/shibukawa/ippcode"
)

// Version is the released version of the ippcode tool
var Version = "0.1.0"

// exitTestsFailed is the exit code of a test run with failing cases
const exitTestsFailed = 1

// CLI represents the command-line interface
type CLI struct {
	Config   string      `help:"Configuration file path" default:"ippcode.yaml"`
	Verbose  bool        `help:"Enable verbose output" short:"v"`
	Quiet    bool        `help:"Suppress output" short:"q"`
	Parse    ParseCmd    `cmd:"" default:"withargs" help:"Parse a program and write its XML representation (default)"`
	Validate ValidateCmd `cmd:"" help:"Check programs without writing XML"`
	Test     TestCmd     `cmd:"" help:"Run a directory of parser test cases"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintf(ctx.stdout(), "ippcode v%s (%s)\n", Version, ippcode.DefaultLanguage)
	return nil
}

// Main parses args, runs the selected command and returns the process exit code.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI

	exitCode := -1

	app, err := kong.New(&cli,
		kong.Name("ippcode"),
		kong.Description("Front end for "+ippcode.DefaultLanguage+": checks a program and prints its XML representation."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ippcode.ExitInternal
	}

	kctx, err := app.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ippcode.ExitInvalidArgs
	}

	appCtx := &Context{
		Config:  cli.Config,
		Verbose: cli.Verbose,
		Quiet:   cli.Quiet,
		Stdin:   stdin,
		Stdout:  stdout,
		Stderr:  stderr,
	}

	err = kctx.Run(appCtx)
	if err != nil {
		color.New(color.FgRed).Fprintf(stderr, "Error: %v\n", err)

		if errors.Is(err, ErrTestsFailed) {
			return exitTestsFailed
		}

		return ippcode.ExitCode(err)
	}

	return ippcode.ExitOK
}
