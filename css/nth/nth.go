// Package nth parses the CSS <An+B> microsyntax used by :nth-child()
// and related pseudo-classes, as a state machine over an already
// tokenized component-value list. It is grounded directly on
// original_source/tinycss2/nth.py's parse_b/parse_signless_b/parse_end
// state functions, translated from that module's generator-based
// token iterator to an index cursor over a []css.Node slice.
package nth

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-css/csssyntax/css"
)

var nDashDigitsRE = regexp.MustCompile(`^n(-[0-9]+)$`)

type cursor struct {
	items []css.Node
	pos   int
}

func (c *cursor) next() css.Node {
	if c.pos >= len(c.items) {
		return nil
	}
	n := c.items[c.pos]
	c.pos++
	return n
}

func nextSignificant(c *cursor) css.Node {
	for {
		n := c.next()
		if n == nil {
			return nil
		}
		switch n.(type) {
		case css.Whitespace, css.Comment:
			continue
		}
		return n
	}
}

// Parse parses the <An+B> microsyntax out of items, which may include
// surrounding or internal whitespace and comments. ok is false if
// items doesn't form a valid <An+B>.
func Parse(items []css.Node) (a, b int64, ok bool) {
	c := &cursor{items: items}
	token := nextSignificant(c)
	if token == nil {
		return 0, 0, false
	}
	switch t := token.(type) {
	case css.Number:
		if t.IntValue != nil {
			return parseEnd(c, 0, *t.IntValue)
		}
	case css.Dimension:
		if t.IntValue == nil {
			break
		}
		switch unit := strings.ToLower(t.Unit); unit {
		case "n":
			return parseB(c, *t.IntValue)
		case "n-":
			return parseSignlessB(c, *t.IntValue, -1)
		default:
			if m := nDashDigitsRE.FindStringSubmatch(unit); m != nil {
				n, _ := strconv.ParseInt(m[1], 10, 64)
				return parseEnd(c, *t.IntValue, n)
			}
		}
	case css.Ident:
		switch ident := strings.ToLower(t.Value); {
		case ident == "even":
			return parseEnd(c, 2, 0)
		case ident == "odd":
			return parseEnd(c, 2, 1)
		case ident == "n":
			return parseB(c, 1)
		case ident == "-n":
			return parseB(c, -1)
		case ident == "n-":
			return parseSignlessB(c, 1, -1)
		case ident == "-n-":
			return parseSignlessB(c, -1, -1)
		case strings.HasPrefix(ident, "-"):
			if m := nDashDigitsRE.FindStringSubmatch(ident[1:]); m != nil {
				n, _ := strconv.ParseInt(m[1], 10, 64)
				return parseEnd(c, -1, n)
			}
		default:
			if m := nDashDigitsRE.FindStringSubmatch(ident); m != nil {
				n, _ := strconv.ParseInt(m[1], 10, 64)
				return parseEnd(c, 1, n)
			}
		}
	case css.Literal:
		if t.Value != "+" {
			break
		}
		// Whitespace immediately after a standalone '+' is invalid,
		// so the next token is taken without skipping whitespace.
		next := c.next()
		id, ok := next.(css.Ident)
		if !ok {
			break
		}
		switch ident := strings.ToLower(id.Value); {
		case ident == "n":
			return parseB(c, 1)
		case ident == "n-":
			return parseSignlessB(c, 1, -1)
		default:
			if m := nDashDigitsRE.FindStringSubmatch(ident); m != nil {
				n, _ := strconv.ParseInt(m[1], 10, 64)
				return parseEnd(c, 1, n)
			}
		}
	}
	return 0, 0, false
}

// ParseText tokenizes text and parses it as <An+B>.
func ParseText(text string) (a, b int64, ok bool) {
	return Parse(css.ParseComponentValueList(text, false))
}

func parseB(c *cursor, a int64) (int64, int64, bool) {
	token := nextSignificant(c)
	if token == nil {
		return a, 0, true
	}
	if lit, ok := token.(css.Literal); ok {
		switch lit.Value {
		case "+":
			return parseSignlessB(c, a, 1)
		case "-":
			return parseSignlessB(c, a, -1)
		}
		return 0, 0, false
	}
	if num, ok := token.(css.Number); ok && num.IntValue != nil && hasExplicitSign(num.Representation) {
		return parseEnd(c, a, *num.IntValue)
	}
	return 0, 0, false
}

func parseSignlessB(c *cursor, a int64, bSign int64) (int64, int64, bool) {
	token := nextSignificant(c)
	num, ok := token.(css.Number)
	if !ok || num.IntValue == nil || hasExplicitSign(num.Representation) {
		return 0, 0, false
	}
	return parseEnd(c, a, bSign*(*num.IntValue))
}

func parseEnd(c *cursor, a, b int64) (int64, int64, bool) {
	if nextSignificant(c) == nil {
		return a, b, true
	}
	return 0, 0, false
}

func hasExplicitSign(representation string) bool {
	return len(representation) > 0 && (representation[0] == '-' || representation[0] == '+')
}
