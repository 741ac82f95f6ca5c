package css

import (
	"testing"

	"github.com/tdewolff/test"
)

func typeNames(t *testing.T, nodes []Node) []string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		switch v := n.(type) {
		case Whitespace:
			names[i] = "whitespace"
		case Comment:
			names[i] = "comment"
		case Literal:
			names[i] = "literal:" + v.Value
		case Ident:
			names[i] = "ident:" + v.Value
		case AtKeyword:
			names[i] = "at-keyword:" + v.Value
		case Hash:
			names[i] = "hash:" + v.Value
		case String:
			names[i] = "string:" + v.Value
		case URL:
			names[i] = "url:" + v.Value
		case Number:
			names[i] = "number"
		case Percentage:
			names[i] = "percentage"
		case Dimension:
			names[i] = "dimension:" + v.Unit
		case UnicodeRange:
			names[i] = "unicode-range"
		case ParenthesesBlock:
			names[i] = "()"
		case SquareBracketsBlock:
			names[i] = "[]"
		case CurlyBracketsBlock:
			names[i] = "{}"
		case FunctionBlock:
			names[i] = "function:" + v.Name
		case ParseError:
			names[i] = "error:" + v.Kind
		default:
			t.Errorf("unexpected node type %T", n)
		}
	}
	return names
}

func tokenize(text string) []Node {
	return newTokenizer(text).componentValueList(0)
}

func TestTokenizerBasic(t *testing.T) {
	var tests = []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"  \t\n", []string{"whitespace"}},
		{"/* hi */", []string{"comment"}},
		{"foo", []string{"ident:foo"}},
		{"-foo", []string{"ident:-foo"}},
		{"--foo", []string{"ident:--foo"}},
		{"@media", []string{"at-keyword:media"}},
		{"#id", []string{"hash:id"}},
		{"#123", []string{"hash:123"}},
		{`"hi"`, []string{"string:hi"}},
		{"'hi'", []string{"string:hi"}},
		{"42", []string{"number"}},
		{"42.5", []string{"number"}},
		{"42%", []string{"percentage"}},
		{"42px", []string{"dimension:px"}},
		{"foo(1, 2)", []string{"function:foo"}},
		{"(1 + 2)", []string{"()"}},
		{"[1 2]", []string{"[]"}},
		{"{a: 1}", []string{"{}"}},
		{"a,b", []string{"ident:a", "literal:,", "ident:b"}},
		{"~=", []string{"literal:~="}},
		{"<!-- -->", []string{"literal:<!--", "whitespace", "literal:-->"}},
	}
	for _, tt := range tests {
		got := typeNames(t, tokenize(tt.input))
		test.T(t, got, tt.want, tt.input)
	}
}

func TestTokenizerURL(t *testing.T) {
	nodes := tokenize("url(foo.png)")
	test.That(t, len(nodes) == 1, "expected one node")
	u, ok := nodes[0].(URL)
	test.That(t, ok, "expected URL node")
	test.String(t, u.Value, "foo.png")

	nodes = tokenize(`url("foo.png")`)
	test.That(t, len(nodes) == 1, "expected one node")
	fn, ok := nodes[0].(FunctionBlock)
	test.That(t, ok, "expected FunctionBlock node for quoted url()")
	test.String(t, fn.Name, "url")

	nodes = tokenize("url(bad url.png)")
	test.That(t, len(nodes) == 1, "expected one node")
	_, ok = nodes[0].(ParseError)
	test.That(t, ok, "expected bad-url ParseError")
}

func TestTokenizerUnicodeRange(t *testing.T) {
	nodes := tokenize("U+26")
	ur, ok := nodes[0].(UnicodeRange)
	test.That(t, ok, "expected UnicodeRange")
	test.That(t, ur.Start == 0x26 && ur.End == 0x26, "single value range")

	nodes = tokenize("u+0025-00FF")
	ur, ok = nodes[0].(UnicodeRange)
	test.That(t, ok, "expected UnicodeRange")
	test.That(t, ur.Start == 0x25 && ur.End == 0xFF, "explicit range")

	nodes = tokenize("U+4??")
	ur, ok = nodes[0].(UnicodeRange)
	test.That(t, ok, "expected UnicodeRange")
	test.That(t, ur.Start == 0x400 && ur.End == 0x4FF, "wildcard range")
}

func TestTokenizerUnmatchedCloser(t *testing.T) {
	got := typeNames(t, tokenize("a ) b"))
	test.T(t, got, []string{"ident:a", "whitespace", "whitespace", "ident:b"})
}

func TestTokenizerNesting(t *testing.T) {
	nodes := tokenize("foo(bar(1), [2 3])")
	fn, ok := nodes[0].(FunctionBlock)
	test.That(t, ok, "expected outer function")
	test.String(t, fn.Name, "foo")
	inner, ok := fn.Arguments[0].(FunctionBlock)
	test.That(t, ok, "expected nested function")
	test.String(t, inner.Name, "bar")
}
