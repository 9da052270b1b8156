package grammar

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestClassifyVariable(t *testing.T) {
	tests := []struct {
		token string
		ok    bool
	}{
		{"GF@x", true},
		{"LF@counter_1", true},
		{"TF@-$&%*!?", true},
		{"GF@_", true},
		{"GF@a1b2", true},
		{"gf@x", false},
		{"XF@x", false},
		{"GF@1x", false},
		{"GF@", false},
		{"G@x", false},
		{"GF@x y", false},
		{"GF@x<", false},
		{"x", false},
		{"int@1", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			class, ok := Classify(Variable, tt.token)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, ClassVar, class)
			}
		})
	}
}

func TestClassifyLabel(t *testing.T) {
	tests := []struct {
		token string
		ok    bool
	}{
		{"loop", true},
		{"_end", true},
		{"&label%", true},
		{"while!?", true},
		{"L1", true},
		{"1L", false},
		{"GF@x", false},
		{"", false},
		{"a.b", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			class, ok := Classify(Label, tt.token)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, ClassLabel, class)
			}
		})
	}
}

func TestClassifyType(t *testing.T) {
	for _, token := range []string{"int", "bool", "string", "nil"} {
		class, ok := Classify(Type, token)
		assert.True(t, ok)
		assert.Equal(t, ClassType, class)
	}

	for _, token := range []string{"INT", "float", "int@1", "var", ""} {
		_, ok := Classify(Type, token)
		assert.False(t, ok, token)
	}
}

func TestClassifySymbol(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected Class
		ok       bool
	}{
		{"variable", "GF@x", ClassVar, true},
		{"decimal", "int@42", ClassInt, true},
		{"signed decimal", "int@-42", ClassInt, true},
		{"plus sign", "int@+7", ClassInt, true},
		{"decimal with separators", "int@1_000_000", ClassInt, true},
		{"hex", "int@0x1F", ClassInt, true},
		{"hex upper prefix", "int@0XdeadBEEF", ClassInt, true},
		{"hex with separator", "int@0xFF_FF", ClassInt, true},
		{"octal", "int@017", ClassInt, true},
		{"octal with o", "int@0o17", ClassInt, true},
		{"octal with O and separator", "int@0O7_7", ClassInt, true},
		{"zero", "int@0", ClassInt, true},
		{"empty int", "int@", "", false},
		{"double separator", "int@1__0", "", false},
		{"trailing separator", "int@10_", "", false},
		{"hex without digits", "int@0x", "", false},
		{"hex garbage suffix", "int@0x1G", "", false},
		{"octal garbage suffix", "int@0o8", "", false},
		{"signed hex", "int@-0x10", "", false},
		{"float", "int@1.5", "", false},
		{"string", "string@hello", ClassString, true},
		{"empty string", "string@", ClassString, true},
		{"string escape", "string@a\\032b", ClassString, true},
		{"string escapes only", "string@\\010\\092", ClassString, true},
		{"string unicode", "string@příliš_žluťoučký", ClassString, true},
		{"invalid utf-8", "string@a\xffb", "", false},
		{"string markup", "string@<a&b>", ClassString, true},
		{"string quotes", "string@\"it's\"", ClassString, true},
		{"string with at", "string@a@b", ClassString, true},
		{"string short escape", "string@\\03", "", false},
		{"string bare backslash", "string@a\\b", "", false},
		{"string hash", "string@a#b", "", false},
		{"string tab", "string@a\tb", "", false},
		{"bool true", "bool@true", ClassBool, true},
		{"bool false", "bool@false", ClassBool, true},
		{"bool upper", "bool@TRUE", "", false},
		{"bool number", "bool@1", "", false},
		{"nil", "nil@nil", ClassNil, true},
		{"nil wrong", "nil@null", "", false},
		{"unknown type", "float@1.0", "", false},
		{"label", "loop", "", false},
		{"type name", "int", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, ok := Classify(Symbol, tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, class)
		})
	}
}

func TestClassifyNone(t *testing.T) {
	_, ok := Classify(None, "GF@x")
	assert.False(t, ok)
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		class Class
		value string
		ok    bool
	}{
		{ClassVar, "GF@x", true},
		{ClassLabel, "loop", true},
		{ClassType, "int", true},
		{ClassInt, "0x10", true},
		{ClassString, "", true},
		{ClassString, "a&b", true},
		{ClassBool, "true", true},
		{ClassNil, "nil", true},
		{ClassInt, "abc", false},
		{ClassVar, "x", false},
		{ClassBool, "yes", false},
		{Class("float"), "1.0", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.class)+"@"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.ok, Accepts(tt.class, tt.value))
		})
	}
}

func TestClassIsLiteral(t *testing.T) {
	assert.True(t, ClassInt.IsLiteral())
	assert.True(t, ClassString.IsLiteral())
	assert.True(t, ClassBool.IsLiteral())
	assert.True(t, ClassNil.IsLiteral())
	assert.False(t, ClassVar.IsLiteral())
	assert.False(t, ClassLabel.IsLiteral())
	assert.False(t, ClassType.IsLiteral())
}
