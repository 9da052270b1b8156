package testrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/shibukawa/ippcode"
	"github.com/shibukawa/ippcode/parser"
	"github.com/shibukawa/ippcode/xmltree"
)

// Test case file extensions
const (
	SourceExt   = ".src"
	OutputExt   = ".out"
	ExitCodeExt = ".rc"
)

// ErrMissingExpectedOutput is reported when a case expecting success has no .out file
var ErrMissingExpectedOutput = errors.New("missing expected output file")

// TestCase is one program under test, identified by its .src file
type TestCase struct {
	Name string
	Dir  string
}

// Path returns the path of the case file with the given extension
func (c TestCase) Path(ext string) string {
	return filepath.Join(c.Dir, c.Name+ext)
}

// ID returns the case path without extension
func (c TestCase) ID() string {
	return filepath.Join(c.Dir, c.Name)
}

// TestResult represents the result of a single test case
type TestResult struct {
	Case         TestCase
	Success      bool
	Duration     time.Duration
	ExpectedCode int
	ActualCode   int
	Message      string // diagnostic produced by the front end
	Diff         string // first XML difference
	Error        error  // failure of the harness itself (unreadable case files)
}

// TestSummary represents the overall test execution summary
type TestSummary struct {
	RunID         string
	Directory     string
	StartedAt     time.Time
	TotalCases    int
	PassedCases   int
	FailedCases   int
	TotalDuration time.Duration
	Results       []TestResult
}

// SuiteRunner runs a directory of parser test cases
type SuiteRunner struct {
	directory  string
	recursive  bool
	verbose    bool
	runPattern *regexp.Regexp
	options    parser.Options
	out        io.Writer
}

// NewSuiteRunner creates a new suite runner instance
func NewSuiteRunner(directory string, options parser.Options) *SuiteRunner {
	return &SuiteRunner{
		directory: directory,
		options:   options,
		out:       os.Stdout,
	}
}

// SetVerbose enables or disables per-case progress output
func (sr *SuiteRunner) SetVerbose(verbose bool) {
	sr.verbose = verbose
}

// SetRecursive enables descending into subdirectories
func (sr *SuiteRunner) SetRecursive(recursive bool) {
	sr.recursive = recursive
}

// SetOutput redirects progress and summary output
func (sr *SuiteRunner) SetOutput(out io.Writer) {
	sr.out = out
}

// SetRunPattern sets the case name filter pattern
func (sr *SuiteRunner) SetRunPattern(pattern string) error {
	if pattern == "" {
		sr.runPattern = nil
		return nil
	}

	regex, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid run pattern: %w", err)
	}

	sr.runPattern = regex

	return nil
}

// FindCases discovers all .src files, sorted by path
func (sr *SuiteRunner) FindCases() ([]TestCase, error) {
	var cases []TestCase

	err := walkAndProcessFiles(sr.directory, sr.recursive, func(p string, info os.FileInfo) {
		name, ok := strings.CutSuffix(info.Name(), SourceExt)
		if !ok || name == "" {
			return
		}

		c := TestCase{Name: name, Dir: filepath.Dir(p)}
		if sr.runPattern != nil && !sr.runPattern.MatchString(c.ID()) {
			return
		}

		cases = append(cases, c)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find test cases in %s: %w", sr.directory, err)
	}

	slices.SortFunc(cases, func(a, b TestCase) int {
		return strings.Compare(a.ID(), b.ID())
	})

	return cases, nil
}

// RunAllTests executes every discovered case. Cancelling ctx stops before the next case.
func (sr *SuiteRunner) RunAllTests(ctx context.Context) (*TestSummary, error) {
	cases, err := sr.FindCases()
	if err != nil {
		return nil, err
	}

	if sr.verbose {
		color.New(color.FgBlue).Fprintf(sr.out, "Found %d test cases in %s\n", len(cases), sr.directory)
	}

	summary := &TestSummary{
		RunID:      uuid.NewString(),
		Directory:  sr.directory,
		StartedAt:  time.Now(),
		TotalCases: len(cases),
		Results:    make([]TestResult, 0, len(cases)),
	}

	for _, c := range cases {
		err := ctx.Err()
		if err != nil {
			summary.TotalDuration = time.Since(summary.StartedAt)
			return summary, err
		}

		result := sr.RunCase(c)
		summary.Results = append(summary.Results, result)

		if result.Success {
			summary.PassedCases++
		} else {
			summary.FailedCases++
		}

		if sr.verbose {
			sr.printResult(result)
		}
	}

	summary.TotalDuration = time.Since(summary.StartedAt)

	return summary, nil
}

// RunCase parses the case source in process and checks exit code and output
func (sr *SuiteRunner) RunCase(c TestCase) (result TestResult) {
	startTime := time.Now()
	result.Case = c

	defer func() {
		result.Duration = time.Since(startTime)
	}()

	src, err := os.ReadFile(c.Path(SourceExt))
	if err != nil {
		result.Error = err
		return result
	}

	result.ExpectedCode, err = readExpectedCode(c.Path(ExitCodeExt))
	if err != nil {
		result.Error = err
		return result
	}

	program, err := parser.Parse(bytes.NewReader(src), sr.options)
	result.ActualCode = ippcode.ExitCode(err)

	if err != nil {
		result.Message = err.Error()
	}

	if result.ActualCode != result.ExpectedCode || result.ExpectedCode != ippcode.ExitOK {
		result.Success = result.ActualCode == result.ExpectedCode
		return result
	}

	var actual bytes.Buffer

	_, err = program.WriteTo(&actual, xmltree.DefaultWriteOptions)
	if err != nil {
		result.Error = err
		return result
	}

	_, records, err := xmltree.Decode(bytes.NewReader(actual.Bytes()))
	if err == nil {
		err = xmltree.Verify(records)
	}

	if err != nil {
		result.Diff = err.Error()
		return result
	}

	expected, err := os.ReadFile(c.Path(OutputExt))
	if err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("%w: %s", ErrMissingExpectedOutput, c.Path(OutputExt))
		}

		result.Error = err

		return result
	}

	result.Diff, err = CompareXML(expected, actual.Bytes())
	if err != nil {
		result.Error = err
		return result
	}

	result.Success = result.Diff == ""

	return result
}

// readExpectedCode reads a .rc file; a missing file means success is expected
func readExpectedCode(path string) (int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ippcode.ExitOK, nil
	}

	if err != nil {
		return 0, err
	}

	code, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid exit code in %s: %w", path, err)
	}

	return code, nil
}

// Reason describes why a result failed
func (r TestResult) Reason() string {
	switch {
	case r.Success:
		return ""
	case r.Error != nil:
		return r.Error.Error()
	case r.ActualCode != r.ExpectedCode:
		reason := fmt.Sprintf("expected exit code %d, got %d", r.ExpectedCode, r.ActualCode)
		if r.Message != "" {
			reason += ": " + r.Message
		}

		return reason
	default:
		return r.Diff
	}
}

func (sr *SuiteRunner) printResult(result TestResult) {
	if result.Success {
		color.New(color.FgGreen).Fprintf(sr.out, "--- PASS: %s (%.3fs)\n", result.Case.ID(), result.Duration.Seconds())
		return
	}

	color.New(color.FgRed).Fprintf(sr.out, "--- FAIL: %s (%.3fs)\n", result.Case.ID(), result.Duration.Seconds())
	fmt.Fprintf(sr.out, "    %s\n", result.Reason())
}

// PrintSummary prints the test execution summary
func (sr *SuiteRunner) PrintSummary(summary *TestSummary) {
	fmt.Fprintf(sr.out, "\n=== Test Summary ===\n")
	fmt.Fprintf(sr.out, "Cases: %d total, %d passed, %d failed\n",
		summary.TotalCases, summary.PassedCases, summary.FailedCases)
	fmt.Fprintf(sr.out, "Duration: %.3fs\n", summary.TotalDuration.Seconds())

	if summary.FailedCases > 0 {
		fmt.Fprintf(sr.out, "\nFailed cases:\n")

		for _, result := range summary.Results {
			if !result.Success {
				fmt.Fprintf(sr.out, "  %s\n    %s\n", result.Case.ID(), result.Reason())
			}
		}

		color.New(color.FgRed).Fprintf(sr.out, "\nSome tests failed! ❌\n")

		return
	}

	color.New(color.FgGreen).Fprintf(sr.out, "\nAll tests passed! ✅\n")
}
