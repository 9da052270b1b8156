package grammar

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shibukawa/ippcode/tokenizer"
	pc "github.com/shibukawa/parsercombinator"
)

// identifier is shared by variables (after the frame prefix) and labels
const identifier = `[a-zA-Z_\-$&%*!?][\w\-$&%*!?]*`

var (
	variablePattern = regexp.MustCompile(`^[GLT]F@` + identifier + `$`)
	labelPattern    = regexp.MustCompile(`^` + identifier + `$`)

	decimalPattern = regexp.MustCompile(`^[+-]?[0-9]+(_[0-9]+)*$`)
	hexPattern     = regexp.MustCompile(`^0[xX][0-9a-fA-F]+(_[0-9a-fA-F]+)*$`)
	octalPattern   = regexp.MustCompile(`^0[oO]?[0-7]+(_[0-7]+)*$`)
	stringPattern  = regexp.MustCompile(`^(\\[0-9]{3}|[^\x00-\x20#\\])*$`)
)

var (
	// VariableParser matches a frame-qualified variable such as GF@counter.
	VariableParser = classifier("variable", func(s string) (Class, bool) {
		return ClassVar, variablePattern.MatchString(s)
	})
	// LabelParser matches a bare identifier.
	LabelParser = classifier("label", func(s string) (Class, bool) {
		return ClassLabel, labelPattern.MatchString(s)
	})
	// TypeParser matches one of the four type names.
	TypeParser = classifier("type", func(s string) (Class, bool) {
		switch Class(s) {
		case ClassInt, ClassBool, ClassString, ClassNil:
			return ClassType, true
		}

		return "", false
	})

	intLiteral = literal(ClassInt, func(v string) bool {
		return decimalPattern.MatchString(v) || hexPattern.MatchString(v) || octalPattern.MatchString(v)
	})
	stringLiteral = literal(ClassString, func(v string) bool {
		return utf8.ValidString(v) && stringPattern.MatchString(v)
	})
	boolLiteral   = literal(ClassBool, func(v string) bool { return v == "true" || v == "false" })
	nilLiteral    = literal(ClassNil, func(v string) bool { return v == "nil" })

	// LiteralParser matches a typed constant: int@, string@, bool@ or nil@.
	LiteralParser = pc.Or(intLiteral, stringLiteral, boolLiteral, nilLiteral)
	// SymbolParser matches a variable or a literal, variables first.
	SymbolParser = pc.Or(VariableParser, LiteralParser)
)

var kindParsers = map[OperandKind]pc.Parser[tokenizer.Token]{
	Variable: VariableParser,
	Label:    LabelParser,
	Symbol:   SymbolParser,
	Type:     TypeParser,
}

// classifier turns a predicate over the token text into a single-token parser.
// The matched token's Type carries the resulting Class.
func classifier(name string, match func(string) (Class, bool)) pc.Parser[tokenizer.Token] {
	return pc.Trace(name, func(pctx *pc.ParseContext[tokenizer.Token], tokens []pc.Token[tokenizer.Token]) (int, []pc.Token[tokenizer.Token], error) {
		if len(tokens) == 0 {
			return 0, nil, pc.ErrNotMatch
		}

		class, ok := match(tokens[0].Val.Value)
		if !ok {
			return 0, nil, pc.ErrNotMatch
		}

		matched := tokens[0]
		matched.Type = string(class)

		return 1, []pc.Token[tokenizer.Token]{matched}, nil
	})
}

func literal(class Class, match func(value string) bool) pc.Parser[tokenizer.Token] {
	prefix := string(class) + "@"

	return classifier(prefix, func(s string) (Class, bool) {
		value, found := strings.CutPrefix(s, prefix)
		return class, found && match(value)
	})
}

func toParserToken(token tokenizer.Token) pc.Token[tokenizer.Token] {
	return pc.Token[tokenizer.Token]{
		Type: "raw",
		Pos: &pc.Pos{
			Line: token.Position.Line,
			Col:  token.Position.Column,
		},
		Val: token,
		Raw: token.Value,
	}
}

// newParseContext creates a context in which Or returns the first matching alternative
func newParseContext() *pc.ParseContext[tokenizer.Token] {
	pctx := pc.NewParseContext[tokenizer.Token]()
	pctx.OrMode = pc.OrModeTryFast

	return pctx
}

func classify(pctx *pc.ParseContext[tokenizer.Token], kind OperandKind, token tokenizer.Token) (Class, bool) {
	parser, ok := kindParsers[kind]
	if !ok {
		return "", false
	}

	consumed, matched, err := parser(pctx, []pc.Token[tokenizer.Token]{toParserToken(token)})
	if err != nil || consumed != 1 || len(matched) != 1 {
		return "", false
	}

	return Class(matched[0].Type), true
}

// Classify applies the classifier for kind to a single token text.
func Classify(kind OperandKind, text string) (Class, bool) {
	return classify(newParseContext(), kind, tokenizer.Token{Type: tokenizer.OPERAND, Value: text})
}

// operandValue is the emitted value: literals drop their type tag
func operandValue(class Class, text string) string {
	if class.IsLiteral() {
		_, value, _ := strings.Cut(text, "@")
		return value
	}

	return text
}

// Accepts reports whether an emitted (class, value) pair classifies back to the same class.
func Accepts(class Class, value string) bool {
	var (
		kind OperandKind
		text = value
	)

	switch {
	case class == ClassVar:
		kind = Variable
	case class == ClassLabel:
		kind = Label
	case class == ClassType:
		kind = Type
	case class.IsLiteral():
		kind = Symbol
		text = string(class) + "@" + value
	default:
		return false
	}

	got, ok := Classify(kind, text)

	return ok && got == class
}
