package tokenizer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// maxLineLength bounds a single source line
const maxLineLength = 1024 * 1024

// LineIterator uses Go 1.24 iterator pattern
type LineIterator iter.Seq2[Line, error]

// LineTokenizer splits a program into content-bearing lines
type LineTokenizer struct {
	reader io.Reader
}

// NewLineTokenizer creates a new LineTokenizer
func NewLineTokenizer(reader io.Reader) *LineTokenizer {
	return &LineTokenizer{reader: reader}
}

// Lines returns an iterator over content-bearing lines.
// Blank and comment-only lines are skipped. A read error is yielded once and ends the iteration.
func (t *LineTokenizer) Lines() LineIterator {
	return func(yield func(Line, error) bool) {
		scanner := bufio.NewScanner(t.reader)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

		number := 0
		for scanner.Scan() {
			number++

			line, ok := Tokenize(number, scanner.Text())
			if !ok {
				continue
			}

			if !yield(line, nil) {
				return
			}
		}

		err := scanner.Err()
		if errors.Is(err, bufio.ErrTooLong) {
			yield(Line{}, fmt.Errorf("%w: line %d exceeds %d bytes", ErrLineTooLong, number+1, maxLineLength))
		} else if err != nil {
			yield(Line{}, err)
		}
	}
}

// AllLines gets all content lines as a slice
func (t *LineTokenizer) AllLines() ([]Line, error) {
	lines := make([]Line, 0, 64)

	for line, err := range t.Lines() {
		if err != nil {
			return lines, err
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// Normalize strips the comment and surrounding whitespace from a raw line.
// The second result is false when nothing is left.
func Normalize(raw string) (string, bool) {
	normalized, _ := normalize(raw)
	return normalized, normalized != ""
}

// normalize also returns the byte offset of the normalized text inside raw
func normalize(raw string) (string, int) {
	index := strings.IndexRune(raw, CommentMarker)
	if index >= 0 {
		raw = raw[:index]
	}

	trimmedLeft := strings.TrimLeftFunc(raw, isTrimSpace)
	offset := len(raw) - len(trimmedLeft)

	return strings.TrimRightFunc(trimmedLeft, isTrimSpace), offset
}

// Tokenize normalizes one raw line and splits it into the opcode and operand tokens.
// The second result is false for blank and comment-only lines.
func Tokenize(number int, raw string) (Line, bool) {
	text, offset := normalize(raw)
	if text == "" {
		return Line{}, false
	}

	line := Line{
		Number: number,
		Text:   text,
	}

	column := offset + 1
	rest := text

	for rest != "" {
		start := strings.IndexFunc(rest, func(r rune) bool { return !isSeparator(r) })
		if start < 0 {
			break
		}

		column += start
		rest = rest[start:]

		end := strings.IndexFunc(rest, isSeparator)
		if end < 0 {
			end = len(rest)
		}

		token := Token{
			Type:     OPERAND,
			Value:    rest[:end],
			Position: Position{Line: number, Column: column},
		}

		if line.Opcode.Value == "" {
			token.Type = OPCODE
			line.Opcode = token
		} else {
			line.Operands = append(line.Operands, token)
		}

		column += end
		rest = rest[end:]
	}

	return line, true
}

// isSeparator reports ASCII whitespace. Other Unicode spaces are legal inside string literals.
func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

func isTrimSpace(r rune) bool {
	return r == 0 || isSeparator(r)
}
