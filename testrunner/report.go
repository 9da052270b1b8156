package testrunner

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// RenderMarkdown renders the summary as a GitHub flavored Markdown document
func RenderMarkdown(summary *TestSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Test report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", summary.RunID)
	fmt.Fprintf(&b, "- Directory: `%s`\n", summary.Directory)
	fmt.Fprintf(&b, "- Started: %s\n", summary.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Cases: %d total, %d passed, %d failed\n", summary.TotalCases, summary.PassedCases, summary.FailedCases)
	fmt.Fprintf(&b, "- Duration: %.3fs\n\n", summary.TotalDuration.Seconds())

	if len(summary.Results) == 0 {
		b.WriteString("No test cases found.\n")
		return b.String()
	}

	b.WriteString("| Case | Result | Expected | Actual | Detail |\n")
	b.WriteString("| --- | --- | ---: | ---: | --- |\n")

	for _, result := range summary.Results {
		status := "PASS"
		if !result.Success {
			status = "**FAIL**"
		}

		fmt.Fprintf(&b, "| `%s` | %s | %d | %d | %s |\n",
			result.Case.ID(), status, result.ExpectedCode, result.ActualCode, tableCell(result.Reason()))
	}

	return b.String()
}

var cellEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", "&lt;",
	"\r", "",
	"\n", " ",
)

// tableCell keeps a diagnostic on one table row as literal text
func tableCell(s string) string {
	return cellEscaper.Replace(s)
}

// RenderHTML converts the Markdown report into a standalone HTML page
func RenderHTML(summary *TestSummary) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer

	err := md.Convert([]byte(RenderMarkdown(summary)), &body)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	var page bytes.Buffer

	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>Test report %s</title>\n", summary.RunID)
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")

	return page.Bytes(), nil
}

// WriteHTMLReport renders the summary and writes it to path
func WriteHTMLReport(path string, summary *TestSummary) error {
	data, err := RenderHTML(summary)
	if err != nil {
		return err
	}

	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	return nil
}
