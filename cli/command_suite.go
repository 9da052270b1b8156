package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shibukawa/ippcode"
	"github.com/shibukawa/ippcode/parser"
	"github.com/shibukawa/ippcode/testrunner"
)

// ErrTestsFailed is returned by the test command when at least one case failed
var ErrTestsFailed = errors.New("test cases failed")

// TestCmd represents the test command
type TestCmd struct {
	Directory string `arg:"" optional:"" help:"Directory with .src/.rc/.out cases (default from config)"`
	Recursive bool   `short:"R" help:"Search subdirectories for cases"`
	Pattern   string `name:"run" short:"r" help:"Run only cases whose path matches the regular expression"`
	Report    string `help:"Write an HTML report to this file"`
	Timeout   string `help:"Suite timeout duration" default:"10m"`
}

// Run executes the test command
func (cmd *TestCmd) Run(ctx *Context) error {
	config, err := ctx.LoadConfig()
	if err != nil {
		return err
	}

	timeout, err := time.ParseDuration(cmd.Timeout)
	if err != nil {
		return fmt.Errorf("%w: invalid timeout duration: %w", ippcode.ErrInvalidArguments, err)
	}

	directory := firstNonEmpty(cmd.Directory, config.Test.Directory)
	pattern := firstNonEmpty(cmd.Pattern, config.Test.Run)
	report := firstNonEmpty(cmd.Report, config.Test.Report)

	runner := testrunner.NewSuiteRunner(directory, parser.OptionsFromConfig(config))
	runner.SetVerbose(ctx.Verbose)
	runner.SetRecursive(cmd.Recursive || config.Test.Recursive)
	runner.SetOutput(ctx.stdout())

	err = runner.SetRunPattern(pattern)
	if err != nil {
		return fmt.Errorf("%w: %w", ippcode.ErrInvalidArguments, err)
	}

	if ctx.Verbose && pattern != "" {
		ctx.progress("Running cases matching pattern: %s", pattern)
	}

	testCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	testCtx, stop := signal.NotifyContext(testCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.RunAllTests(testCtx)
	if err != nil {
		return fmt.Errorf("test execution failed: %w", err)
	}

	if !ctx.Quiet {
		runner.PrintSummary(summary)
	}

	if report != "" {
		err = testrunner.WriteHTMLReport(report, summary)
		if err != nil {
			return err
		}

		ctx.progress("Report written to %s", report)
	}

	if summary.FailedCases > 0 {
		return fmt.Errorf("%w: %d of %d", ErrTestsFailed, summary.FailedCases, summary.TotalCases)
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
