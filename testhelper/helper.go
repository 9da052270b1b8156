package testhelper

import (
	"regexp"
	"strings"
	"testing"
)

var leadingWhiteSpace = regexp.MustCompile(`^[ \t]*`)

// TrimIndent removes the indentation of the second line from every line and drops
// the first (empty) line, so sources can be written as indented raw strings.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")
	if len(lines) < 2 {
		return src
	}

	indent := leadingWhiteSpace.FindString(lines[1])

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, indent)
	}

	return strings.Join(lines[1:], "\n")
}

// Program prepends the default header to an indented program body.
func Program(t *testing.T, body string) string {
	t.Helper()

	return ".IPPcode22\n" + TrimIndent(t, body)
}
