package css

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestSerializeRoundTrip(t *testing.T) {
	var inputs = []string{
		"a{color:red}",
		"@media screen{a{color:red}}",
		"a,b{margin:0 1px}",
		`a[href="foo"]{}`,
		"a{content:\"\\a \"}",
	}
	for _, in := range inputs {
		nodes := ParseStylesheet(in, false, false)
		out := Serialize(nodes)
		again := ParseStylesheet(out, false, false)
		test.T(t, Serialize(again), out, in)
	}
}

func TestSerializeNeedsSeparator(t *testing.T) {
	nodes := []Node{Ident{Value: "foo"}, Ident{Value: "bar"}}
	out := Serialize(nodes)
	test.String(t, out, "foo/**/bar")

	nodes = []Node{Number{Representation: "1"}, Ident{Value: "px"}}
	out = Serialize(nodes)
	test.String(t, out, "1/**/px")

	nodes = []Node{Ident{Value: "foo"}, Literal{Value: ","}, Ident{Value: "bar"}}
	out = Serialize(nodes)
	test.String(t, out, "foo,bar")
}

func TestSerializeIdentifier(t *testing.T) {
	var tests = []struct {
		in      string
		out     string
		canSerialize bool
	}{
		{"foo", "foo", true},
		{"", "", false},
		{"-", "", false},
		{"-foo", "-foo", true},
		{"--foo", "--foo", true},
		{"1foo", "\\31 foo", true},
		{"-1foo", "-\\31 foo", true},
	}
	for _, tt := range tests {
		got, ok := SerializeIdentifier(tt.in)
		test.That(t, ok == tt.canSerialize, tt.in)
		if ok {
			test.String(t, got, tt.out)
		}
	}
}
