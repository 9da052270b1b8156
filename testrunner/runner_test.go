package testrunner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/shibukawa/ippcode"
	"github.com/shibukawa/ippcode/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defvarXML = `<?xml version="1.0" encoding="UTF-8"?>
<program language="IPPcode22">
  <instruction opcode="DEFVAR" order="1">
    <arg1 type="var">GF@x</arg1>
  </instruction>
</program>
`

func writeCase(t *testing.T, dir, name string, files map[string]string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755))

	for ext, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+ext), []byte(content), 0o644))
	}
}

func newSuite(t *testing.T) string {
	t.Helper()

	color.NoColor = true
	dir := t.TempDir()

	writeCase(t, dir, "defvar", map[string]string{
		SourceExt: ".IPPcode22\nDEFVAR GF@x\n",
		OutputExt: defvarXML,
	})
	writeCase(t, dir, "no_header", map[string]string{
		SourceExt:   "DEFVAR GF@x\n",
		ExitCodeExt: "21\n",
	})
	writeCase(t, dir, "wrong_value", map[string]string{
		SourceExt:   ".IPPcode22\nDEFVAR GF@y\n",
		OutputExt:   defvarXML,
		ExitCodeExt: "0",
	})
	writeCase(t, filepath.Join(dir, "nested"), "arity", map[string]string{
		SourceExt:   ".IPPcode22\nBREAK GF@x\n",
		ExitCodeExt: "23",
	})

	return dir
}

func TestNewSuiteRunner(t *testing.T) {
	runner := NewSuiteRunner("/cases", parser.DefaultOptions)

	assert.Equal(t, "/cases", runner.directory)
	assert.False(t, runner.verbose)
	assert.False(t, runner.recursive)
	assert.Nil(t, runner.runPattern)
}

func TestSetRunPattern(t *testing.T) {
	runner := NewSuiteRunner("/cases", parser.DefaultOptions)

	err := runner.SetRunPattern("defvar")
	assert.NoError(t, err)
	assert.Equal(t, "defvar", runner.runPattern.String())

	err = runner.SetRunPattern("")
	assert.NoError(t, err)
	assert.Nil(t, runner.runPattern)

	err = runner.SetRunPattern("[invalid")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid run pattern")
}

func TestFindCases(t *testing.T) {
	dir := newSuite(t)

	t.Run("top level only", func(t *testing.T) {
		runner := NewSuiteRunner(dir, parser.DefaultOptions)

		cases, err := runner.FindCases()
		require.NoError(t, err)

		names := make([]string, 0, len(cases))
		for _, c := range cases {
			names = append(names, c.Name)
		}

		assert.Equal(t, []string{"defvar", "no_header", "wrong_value"}, names)
	})

	t.Run("recursive", func(t *testing.T) {
		runner := NewSuiteRunner(dir, parser.DefaultOptions)
		runner.SetRecursive(true)

		cases, err := runner.FindCases()
		require.NoError(t, err)
		assert.Len(t, cases, 4)
		assert.Equal(t, filepath.Join(dir, "nested", "arity.src"), cases[1].Path(SourceExt))
	})

	t.Run("run pattern", func(t *testing.T) {
		runner := NewSuiteRunner(dir, parser.DefaultOptions)
		require.NoError(t, runner.SetRunPattern("header$"))

		cases, err := runner.FindCases()
		require.NoError(t, err)
		require.Len(t, cases, 1)
		assert.Equal(t, "no_header", cases[0].Name)
	})

	t.Run("missing directory", func(t *testing.T) {
		runner := NewSuiteRunner(filepath.Join(dir, "absent"), parser.DefaultOptions)

		_, err := runner.FindCases()
		assert.Error(t, err)
	})
}

func TestRunCase(t *testing.T) {
	dir := newSuite(t)
	runner := NewSuiteRunner(dir, parser.DefaultOptions)

	t.Run("matching output", func(t *testing.T) {
		result := runner.RunCase(TestCase{Name: "defvar", Dir: dir})
		assert.True(t, result.Success, result.Reason())
		assert.Equal(t, ippcode.ExitOK, result.ActualCode)
		assert.Empty(t, result.Reason())
	})

	t.Run("expected failure code", func(t *testing.T) {
		result := runner.RunCase(TestCase{Name: "no_header", Dir: dir})
		assert.True(t, result.Success)
		assert.Equal(t, ippcode.ExitMissingHeader, result.ExpectedCode)
		assert.Equal(t, ippcode.ExitMissingHeader, result.ActualCode)
		assert.Contains(t, result.Message, "missing or invalid program header")
	})

	t.Run("different output", func(t *testing.T) {
		result := runner.RunCase(TestCase{Name: "wrong_value", Dir: dir})
		assert.False(t, result.Success)
		assert.NoError(t, result.Error)
		assert.Contains(t, result.Diff, "/program/instruction[1]/arg1[1]")
		assert.Contains(t, result.Reason(), `expected text "GF@x", got "GF@y"`)
	})

	t.Run("unexpected exit code", func(t *testing.T) {
		writeCase(t, dir, "unexpected", map[string]string{
			SourceExt:   ".IPPcode22\nFOO\n",
			ExitCodeExt: "0",
		})

		result := runner.RunCase(TestCase{Name: "unexpected", Dir: dir})
		assert.False(t, result.Success)
		assert.Equal(t, ippcode.ExitUnknownOpcode, result.ActualCode)
		assert.True(t, strings.HasPrefix(result.Reason(), "expected exit code 0, got 22: "))
	})

	t.Run("missing output file", func(t *testing.T) {
		writeCase(t, dir, "no_out", map[string]string{SourceExt: ".IPPcode22\nBREAK\n"})

		result := runner.RunCase(TestCase{Name: "no_out", Dir: dir})
		assert.False(t, result.Success)
		assert.ErrorIs(t, result.Error, ErrMissingExpectedOutput)
	})

	t.Run("invalid rc file", func(t *testing.T) {
		writeCase(t, dir, "bad_rc", map[string]string{
			SourceExt:   ".IPPcode22\n",
			ExitCodeExt: "zero",
		})

		result := runner.RunCase(TestCase{Name: "bad_rc", Dir: dir})
		assert.False(t, result.Success)
		assert.ErrorContains(t, result.Error, "invalid exit code")
	})
}

func TestRunAllTests(t *testing.T) {
	dir := newSuite(t)

	var out bytes.Buffer

	runner := NewSuiteRunner(dir, parser.DefaultOptions)
	runner.SetRecursive(true)
	runner.SetVerbose(true)
	runner.SetOutput(&out)

	summary, err := runner.RunAllTests(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 4, summary.TotalCases)
	assert.Equal(t, 3, summary.PassedCases)
	assert.Equal(t, 1, summary.FailedCases)
	assert.Len(t, summary.Results, 4)

	assert.Contains(t, out.String(), "Found 4 test cases")
	assert.Contains(t, out.String(), "--- PASS: "+filepath.Join(dir, "defvar"))
	assert.Contains(t, out.String(), "--- FAIL: "+filepath.Join(dir, "wrong_value"))

	out.Reset()
	runner.PrintSummary(summary)
	assert.Contains(t, out.String(), "Cases: 4 total, 3 passed, 1 failed")
	assert.Contains(t, out.String(), "Some tests failed!")
}

func TestRunAllTestsCancelled(t *testing.T) {
	dir := newSuite(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewSuiteRunner(dir, parser.DefaultOptions)
	runner.SetOutput(&bytes.Buffer{})

	summary, err := runner.RunAllTests(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Empty(t, summary.Results)
}

func TestPrintSummaryAllPassed(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer

	runner := NewSuiteRunner(".", parser.DefaultOptions)
	runner.SetOutput(&out)
	runner.PrintSummary(&TestSummary{TotalCases: 2, PassedCases: 2})

	assert.Contains(t, out.String(), "All tests passed!")
	assert.NotContains(t, out.String(), "Failed cases")
}

func TestRunAcceptanceSuite(t *testing.T) {
	color.NoColor = true

	runner := NewSuiteRunner(filepath.Join("..", "testdata", "parse"), parser.DefaultOptions)
	runner.SetOutput(&bytes.Buffer{})

	summary, err := runner.RunAllTests(context.Background())
	require.NoError(t, err)

	for _, result := range summary.Results {
		assert.True(t, result.Success, "%s: %s", result.Case.Name, result.Reason())
	}

	assert.Equal(t, 0, summary.FailedCases)
	assert.Greater(t, summary.TotalCases, 10)
}
