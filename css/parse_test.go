package css

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestParseOneDeclaration(t *testing.T) {
	n := ParseOneDeclaration("color: red")
	d, ok := n.(Declaration)
	test.That(t, ok, "expected Declaration")
	test.String(t, d.Name, "color")
	test.That(t, !d.Important, "not important")

	n = ParseOneDeclaration("color: red !important")
	d, ok = n.(Declaration)
	test.That(t, ok, "expected Declaration")
	test.That(t, d.Important, "important")

	n = ParseOneDeclaration("not a declaration")
	_, ok = n.(ParseError)
	test.That(t, ok, "expected ParseError for missing colon")
}

func TestParseOneRule(t *testing.T) {
	n := ParseOneRule("a { color: red }")
	rule, ok := n.(QualifiedRule)
	test.That(t, ok, "expected QualifiedRule")
	test.That(t, len(rule.Content) > 0, "expected content")

	n = ParseOneRule("@media screen { a { color: red } }")
	at, ok := n.(AtRule)
	test.That(t, ok, "expected AtRule")
	test.String(t, at.Name, "media")
	test.That(t, at.HasBlock, "expected block")

	n = ParseOneRule("a {} b {}")
	_, ok = n.(ParseError)
	test.That(t, ok, "expected extra-input error")
}

func TestParseStylesheetCDO(t *testing.T) {
	nodes := ParseStylesheet("<!-- a {} -->", true, true)
	test.That(t, len(nodes) == 1, "CDO/CDC dropped at stylesheet level")
	_, ok := nodes[0].(QualifiedRule)
	test.That(t, ok, "expected QualifiedRule")

	nodes = ParseRuleList("<!-- a {} -->", true, true)
	// Not dropped: "<!--" starts the qualified rule's prelude, and the
	// trailing "-->" starts a rule that hits EOF (an "invalid" ParseError).
	test.That(t, len(nodes) == 2, "CDO/CDC kept as ordinary tokens in ParseRuleList")
	_, ok = nodes[1].(ParseError)
	test.That(t, ok, "expected ParseError for the rule started by CDC")
}

func TestParseBlocksContentsNesting(t *testing.T) {
	nodes := ParseBlocksContents("color: red; & > a { color: blue; }", true, true)
	test.That(t, len(nodes) == 2, "expected declaration and nested rule")
	_, ok := nodes[0].(Declaration)
	test.That(t, ok, "expected leading declaration")
	rule, ok := nodes[1].(QualifiedRule)
	test.That(t, ok, "expected nested qualified rule")
	test.That(t, len(rule.Content) > 0, "expected nested rule content")
}

func TestParseBlocksContentsNodesFromRuleContent(t *testing.T) {
	// A QualifiedRule's Content is already a []Node; it must be
	// re-runnable through the blocks-contents grammar directly, without
	// serializing it back to text and re-tokenizing.
	n := ParseOneRule("a { & > b { color: blue; } color: red; }")
	rule, ok := n.(QualifiedRule)
	test.That(t, ok, "expected QualifiedRule")

	nodes := ParseBlocksContentsNodes(rule.Content, true, true)
	test.That(t, len(nodes) == 2, "expected nested rule and declaration")
	nested, ok := nodes[0].(QualifiedRule)
	test.That(t, ok, "expected nested qualified rule first")
	test.That(t, len(nested.Content) > 0, "expected nested rule content")
	decl, ok := nodes[1].(Declaration)
	test.That(t, ok, "expected trailing declaration")
	test.String(t, decl.Name, "color")
}

func TestParseOneDeclarationImportantWithComments(t *testing.T) {
	n := ParseOneDeclaration("color: red !/**/important")
	d, ok := n.(Declaration)
	test.That(t, ok, "expected Declaration")
	test.That(t, d.Important, "important marker separated by a comment")

	n = ParseOneDeclaration("color: red ! important/**/")
	d, ok = n.(Declaration)
	test.That(t, ok, "expected Declaration")
	test.That(t, d.Important, "important marker followed by a trailing comment")
}

func TestFilterTopLevel(t *testing.T) {
	nodes := ParseComponentValueList("a /* x */ b", false)
	test.That(t, len(nodes) == 5, "comment kept without skip")

	nodes = ParseComponentValueList("a /* x */ b", true)
	names := typeNames(t, nodes)
	test.T(t, names, []string{"ident:a", "whitespace", "whitespace", "ident:b"})
}

func TestSkipCommentsNeverChangesTokenization(t *testing.T) {
	// A comment separating two idents must not let them merge into one
	// token, even though skip_comments only filters the top-level
	// returned list and never reaches into a rule's prelude.
	nodes := ParseStylesheet("a/**/b {}", true, false)
	rule, ok := nodes[0].(QualifiedRule)
	test.That(t, ok, "expected QualifiedRule")
	idents := 0
	for _, n := range rule.Prelude {
		if _, ok := n.(Ident); ok {
			idents++
		}
	}
	test.That(t, idents == 2, "comment kept idents from merging")
}
