package testrunner

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// CompareXML compares two documents structurally: element tags, attributes (in any
// order), trimmed text and the order of child elements. It returns a description of
// the first difference, or "" when the documents are equivalent.
func CompareXML(expected, actual []byte) (string, error) {
	expectedDoc := etree.NewDocument()

	err := expectedDoc.ReadFromBytes(expected)
	if err != nil {
		return "", fmt.Errorf("failed to parse expected XML: %w", err)
	}

	actualDoc := etree.NewDocument()

	err = actualDoc.ReadFromBytes(actual)
	if err != nil {
		return "", fmt.Errorf("failed to parse actual XML: %w", err)
	}

	expectedRoot, actualRoot := expectedDoc.Root(), actualDoc.Root()

	switch {
	case expectedRoot == nil && actualRoot == nil:
		return "", nil
	case expectedRoot == nil:
		return "expected an empty document", nil
	case actualRoot == nil:
		return "actual document is empty", nil
	}

	return compareElement("/"+expectedRoot.Tag, expectedRoot, actualRoot), nil
}

func compareElement(path string, expected, actual *etree.Element) string {
	if expected.Tag != actual.Tag {
		return fmt.Sprintf("%s: expected element <%s>, got <%s>", path, expected.Tag, actual.Tag)
	}

	diff := compareAttributes(path, expected, actual)
	if diff != "" {
		return diff
	}

	expectedText := strings.TrimSpace(expected.Text())
	actualText := strings.TrimSpace(actual.Text())

	if expectedText != actualText {
		return fmt.Sprintf("%s: expected text %q, got %q", path, expectedText, actualText)
	}

	expectedChildren := expected.ChildElements()
	actualChildren := actual.ChildElements()

	for i, child := range expectedChildren {
		if i >= len(actualChildren) {
			return fmt.Sprintf("%s: missing element <%s> at index %d", path, child.Tag, i+1)
		}

		diff := compareElement(path+"/"+child.Tag+"["+strconv.Itoa(i+1)+"]", child, actualChildren[i])
		if diff != "" {
			return diff
		}
	}

	if len(actualChildren) > len(expectedChildren) {
		extra := actualChildren[len(expectedChildren)]
		return fmt.Sprintf("%s: unexpected element <%s> at index %d", path, extra.Tag, len(expectedChildren)+1)
	}

	return ""
}

func compareAttributes(path string, expected, actual *etree.Element) string {
	expectedAttrs := attributeMap(expected)
	actualAttrs := attributeMap(actual)

	keys := make([]string, 0, len(expectedAttrs)+len(actualAttrs))
	for key := range expectedAttrs {
		keys = append(keys, key)
	}

	for key := range actualAttrs {
		if _, ok := expectedAttrs[key]; !ok {
			keys = append(keys, key)
		}
	}

	slices.Sort(keys)

	for _, key := range keys {
		want, hasWant := expectedAttrs[key]
		got, hasGot := actualAttrs[key]

		switch {
		case !hasGot:
			return fmt.Sprintf("%s: missing attribute %s=%q", path, key, want)
		case !hasWant:
			return fmt.Sprintf("%s: unexpected attribute %s=%q", path, key, got)
		case want != got:
			return fmt.Sprintf("%s: attribute %s: expected %q, got %q", path, key, want, got)
		}
	}

	return ""
}

func attributeMap(element *etree.Element) map[string]string {
	attrs := make(map[string]string, len(element.Attr))
	for _, attr := range element.Attr {
		attrs[attr.FullKey()] = attr.Value
	}

	return attrs
}
