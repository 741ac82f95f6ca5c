// Package css's rule and declaration parser builds on top of the
// tokenizer's flat component-value stream (see tokenizer.go) the way
// CSS Syntax 3 §5 layers "consume a list of rules" / "consume a
// qualified rule" / "consume an at-rule" / "consume a declaration" on
// top of "consume a list of component values": blocks are already
// nested Nodes by the time these functions see them, so a rule or
// declaration boundary is just a scan over a slice for a top-level
// ";" or a CurlyBracketsBlock.
package css

import (
	"strings"

	"github.com/go-css/csssyntax/decode"
)

func newErr(pos Position, kind, message string) Node {
	return ParseError{base{pos}, kind, message}
}

func trimWhitespace(items []Node) []Node {
	i, j := 0, len(items)
	for i < j {
		if _, ok := items[i].(Whitespace); !ok {
			break
		}
		i++
	}
	for j > i {
		if _, ok := items[j-1].(Whitespace); !ok {
			break
		}
		j--
	}
	return items[i:j]
}

func isColon(n Node) bool {
	l, ok := n.(Literal)
	return ok && l.Value == ":"
}

// filterTopLevel drops top-level Comment and/or Whitespace nodes from
// an already-built result list. Per spec.md §9, skip_comments and
// skip_whitespace only filter the returned sequence — they never
// change parsing, since a comment can separate two idents that would
// otherwise merge into one.
func filterTopLevel(nodes []Node, skipComments, skipWhitespace bool) []Node {
	if !skipComments && !skipWhitespace {
		return nodes
	}
	out := nodes[:0:0]
	for _, n := range nodes {
		switch n.(type) {
		case Comment:
			if skipComments {
				continue
			}
		case Whitespace:
			if skipWhitespace {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

// ParseComponentValueList tokenizes text into the top-level flat
// stream of component values: tokens interleaved with already-nested
// Parentheses/SquareBrackets/CurlyBrackets/Function blocks.
func ParseComponentValueList(text string, skipComments bool) []Node {
	return filterTopLevel(newTokenizer(text).componentValueList(0), skipComments, false)
}

// ParseOneComponentValueNodes parses an already-tokenized node slice as
// exactly one component value, ignoring leading and trailing
// whitespace. An all-whitespace or empty slice yields an "empty"
// ParseError; more than one component value yields an "extra-input"
// ParseError anchored at the first one. This is the nodes-accepting
// form of ParseOneComponentValue, for callers that already hold a
// []Node (e.g. a rule's Prelude) per spec.md §6's text_or_nodes entry
// points.
func ParseOneComponentValueNodes(items []Node) Node {
	items = trimWhitespace(items)
	if len(items) == 0 {
		return newErr(Position{Line: 1, Column: 1}, ErrEmpty, "empty")
	}
	if len(items) > 1 {
		return newErr(items[0].Pos(), ErrExtraInput, "extra input after component value")
	}
	return items[0]
}

// ParseOneComponentValue parses text as exactly one component value;
// see ParseOneComponentValueNodes.
func ParseOneComponentValue(text string) Node {
	return ParseOneComponentValueNodes(newTokenizer(text).componentValueList(0))
}

// ParseOneDeclarationNodes parses an already-tokenized node slice as a
// single `name: value` pair, with no trailing ';'. See
// ParseBlocksContents for the `!important` rule.
func ParseOneDeclarationNodes(items []Node) Node {
	items = trimWhitespace(items)
	if len(items) == 0 {
		return newErr(Position{Line: 1, Column: 1}, ErrEmpty, "empty")
	}
	return buildDeclarationFromTokens(items[0].Pos(), items)
}

// ParseOneDeclaration parses text as a single `name: value` pair; see
// ParseOneDeclarationNodes.
func ParseOneDeclaration(text string) Node {
	return ParseOneDeclarationNodes(newTokenizer(text).componentValueList(0))
}

// ParseOneRuleNodes parses an already-tokenized node slice as a single
// qualified rule or at-rule, with no other rule following it (other
// than whitespace).
func ParseOneRuleNodes(items []Node) Node {
	items = trimWhitespace(items)
	if len(items) == 0 {
		return newErr(Position{Line: 1, Column: 1}, ErrEmpty, "empty")
	}
	var rule Node
	var consumed int
	if _, ok := items[0].(AtKeyword); ok {
		rule, consumed = consumeAtRule(items, 0)
	} else {
		rule, consumed = consumeQualifiedRule(items, 0)
	}
	if rest := trimWhitespace(items[consumed:]); len(rest) > 0 {
		return newErr(rule.Pos(), ErrExtraInput, "extra input after rule")
	}
	return rule
}

// ParseOneRule parses text as a single qualified rule or at-rule; see
// ParseOneRuleNodes.
func ParseOneRule(text string) Node {
	return ParseOneRuleNodes(newTokenizer(text).componentValueList(0))
}

// ParseStylesheet parses text as a top-level stylesheet: a list of
// rules, comments, and whitespace, with CDO/CDC tokens ("<!--", "-->")
// discarded at the top level, as CSS Syntax 3 requires for a
// stylesheet (but not for a bare rule list — see ParseRuleList).
// skip_comments/skip_whitespace only filter the returned list; they
// never change how the input is parsed (spec.md §9).
func ParseStylesheet(text string, skipComments, skipWhitespace bool) []Node {
	nodes := parseRuleList(newTokenizer(text).componentValueList(0), true)
	return filterTopLevel(nodes, skipComments, skipWhitespace)
}

// ParseStylesheetBytes decodes raw bytes per the CSS Syntax 3 §3.1
// "decode from bytes" fallback chain (see package decode) and then
// parses the result the same way as ParseStylesheet. Either encoding
// label may be empty.
func ParseStylesheetBytes(data []byte, protocolEncoding, environmentEncoding string, skipComments, skipWhitespace bool) []Node {
	text := decode.Decode(data, protocolEncoding, environmentEncoding)
	return ParseStylesheet(text, skipComments, skipWhitespace)
}

// ParseRuleList parses text the same way as ParseStylesheet, except
// that CDO/CDC tokens are preserved as ordinary Literal nodes rather
// than discarded: like any other token they begin (or belong to) a
// qualified rule's prelude. This entry point is for parsing the
// contents of an already-nested context (for example inside a block),
// where CDO/CDC has no special meaning.
func ParseRuleList(text string, skipComments, skipWhitespace bool) []Node {
	nodes := parseRuleList(newTokenizer(text).componentValueList(0), false)
	return filterTopLevel(nodes, skipComments, skipWhitespace)
}

// ParseBlocksContentsNodes parses an already-tokenized node slice as
// the contents of a block: a mix of declarations, nested qualified
// rules, and at-rules, per the CSS-nesting-aware "consume a blocks
// contents" algorithm. This is the nodes-accepting form of
// ParseBlocksContents — per spec.md §8, a QualifiedRule's Content must
// be re-runnable through this same grammar (for CSS Nesting's nested
// rules) without re-serializing and re-tokenizing it back to text.
func ParseBlocksContentsNodes(items []Node, skipComments, skipWhitespace bool) []Node {
	nodes := parseBlocksContents(items)
	return filterTopLevel(nodes, skipComments, skipWhitespace)
}

// ParseBlocksContents parses text as the contents of a block; see
// ParseBlocksContentsNodes. Plain "parse a declaration list" (no
// nested rules) is this same algorithm; ParseDeclarationList is kept
// only as its deprecated alias.
func ParseBlocksContents(text string, skipComments, skipWhitespace bool) []Node {
	return ParseBlocksContentsNodes(newTokenizer(text).componentValueList(0), skipComments, skipWhitespace)
}

// ParseDeclarationListNodes is a deprecated alias for
// ParseBlocksContentsNodes.
func ParseDeclarationListNodes(items []Node, skipComments, skipWhitespace bool) []Node {
	return ParseBlocksContentsNodes(items, skipComments, skipWhitespace)
}

// ParseDeclarationList is a deprecated alias for ParseBlocksContents,
// kept for callers migrating from the pre-nesting grammar.
func ParseDeclarationList(text string, skipComments, skipWhitespace bool) []Node {
	return ParseBlocksContents(text, skipComments, skipWhitespace)
}

func parseRuleList(items []Node, dropCDOCDC bool) []Node {
	var out []Node
	i := 0
	for i < len(items) {
		switch v := items[i].(type) {
		case Whitespace:
			out = append(out, v)
			i++
		case Comment:
			out = append(out, v)
			i++
		case Literal:
			if dropCDOCDC && (v.Value == "<!--" || v.Value == "-->") {
				i++
				continue
			}
			rule, consumed := consumeQualifiedRule(items, i)
			out = append(out, rule)
			i += consumed
		case AtKeyword:
			rule, consumed := consumeAtRule(items, i)
			out = append(out, rule)
			i += consumed
		default:
			rule, consumed := consumeQualifiedRule(items, i)
			out = append(out, rule)
			i += consumed
		}
	}
	return out
}

func consumeAtRule(items []Node, i int) (Node, int) {
	kw := items[i].(AtKeyword)
	start := i
	i++
	var prelude []Node
	for i < len(items) {
		switch v := items[i].(type) {
		case Literal:
			if v.Value == ";" {
				i++
				return AtRule{base{kw.Pos()}, kw.Value, prelude, false, nil}, i - start
			}
			prelude = append(prelude, v)
			i++
		case CurlyBracketsBlock:
			i++
			return AtRule{base{kw.Pos()}, kw.Value, prelude, true, v.Content}, i - start
		default:
			prelude = append(prelude, items[i])
			i++
		}
	}
	return AtRule{base{kw.Pos()}, kw.Value, prelude, false, nil}, i - start
}

func consumeQualifiedRule(items []Node, i int) (Node, int) {
	start := i
	startPos := items[i].Pos()
	var prelude []Node
	for i < len(items) {
		switch v := items[i].(type) {
		case CurlyBracketsBlock:
			i++
			return QualifiedRule{base{startPos}, prelude, v.Content}, i - start
		default:
			prelude = append(prelude, items[i])
			i++
		}
	}
	return newErr(startPos, ErrInvalid, "eof in qualified rule"), i - start
}

func parseBlocksContents(items []Node) []Node {
	var out []Node
	i := 0
	for i < len(items) {
		switch v := items[i].(type) {
		case Whitespace:
			i++
		case Comment:
			out = append(out, v)
			i++
		case Literal:
			if v.Value == ";" {
				i++
				continue
			}
			decl, consumed := consumeDeclarationOrRule(items, i)
			out = append(out, decl)
			i += consumed
		case AtKeyword:
			rule, consumed := consumeAtRule(items, i)
			out = append(out, rule)
			i += consumed
		default:
			decl, consumed := consumeDeclarationOrRule(items, i)
			out = append(out, decl)
			i += consumed
		}
	}
	return out
}

// consumeDeclarationOrRule scans from i until a top-level ";" (closing
// a declaration) or a CurlyBracketsBlock (closing a nested qualified
// rule, with everything collected so far as its prelude) is found.
func consumeDeclarationOrRule(items []Node, i int) (Node, int) {
	start := i
	startPos := items[i].Pos()
	var collected []Node
	for i < len(items) {
		switch v := items[i].(type) {
		case Literal:
			if v.Value == ";" {
				i++
				return buildDeclarationFromTokens(startPos, collected), i - start
			}
			collected = append(collected, v)
			i++
		case CurlyBracketsBlock:
			i++
			return QualifiedRule{base{startPos}, collected, v.Content}, i - start
		default:
			collected = append(collected, items[i])
			i++
		}
	}
	return buildDeclarationFromTokens(startPos, collected), i - start
}

func buildDeclarationFromTokens(startPos Position, tokens []Node) Node {
	t := trimWhitespace(tokens)
	if len(t) == 0 {
		return newErr(startPos, ErrEmpty, "empty declaration")
	}
	name, ok := t[0].(Ident)
	if !ok {
		return newErr(startPos, ErrInvalid, "declaration does not start with an identifier")
	}
	rest := t[1:]
	for len(rest) > 0 {
		if _, ok := rest[0].(Whitespace); !ok {
			break
		}
		rest = rest[1:]
	}
	if len(rest) == 0 || !isColon(rest[0]) {
		return newErr(startPos, ErrInvalid, "expected ':' in declaration")
	}
	value, important := extractImportant(rest[1:])
	return Declaration{base{name.Pos()}, name.Value, value, important}
}

// isWhitespaceOrComment reports whether n is insignificant separator
// between the '!', "important", and the value's end.
func isWhitespaceOrComment(n Node) bool {
	switch n.(type) {
	case Whitespace, Comment:
		return true
	}
	return false
}

// extractImportant strips a trailing, optionally whitespace/comment
// separated, case-insensitive "!important" marker from value.
func extractImportant(value []Node) ([]Node, bool) {
	j := len(value)
	for j > 0 && isWhitespaceOrComment(value[j-1]) {
		j--
	}
	if j == 0 {
		return value, false
	}
	ident, ok := value[j-1].(Ident)
	if !ok || !strings.EqualFold(ident.Value, "important") {
		return value, false
	}
	k := j - 1
	for k > 0 && isWhitespaceOrComment(value[k-1]) {
		k--
	}
	if k == 0 {
		return value, false
	}
	bang, ok := value[k-1].(Literal)
	if !ok || bang.Value != "!" {
		return value, false
	}
	return value[:k-1], true
}
