package css

import (
	"strings"

	"github.com/go-css/csssyntax/buffer"
)

// tokenizer performs CSS Syntax 3's tokenization and block/function
// nesting in a single recursive-descent pass: whenever an opening
// "(", "[", or "{" would be tokenized, it instead recurses to build the
// corresponding Block's Content eagerly, matching how tinycss2's own
// tokenizer (original_source/tinycss2/tokenizer.py) maintains a block
// stack while tokenizing rather than tokenizing flat and nesting in a
// second pass.
type tokenizer struct {
	cur *buffer.Cursor
}

func newTokenizer(text string) *tokenizer {
	return &tokenizer{cur: buffer.NewCursor(text)}
}

func isCloser(r rune) bool {
	return r == ')' || r == ']' || r == '}'
}

// componentValueList consumes component values until stopAt is seen at
// this nesting level (consuming and discarding it) or EOF is reached.
// stopAt is 0 for the top level, where nothing closes the list except
// EOF. A closing delimiter that doesn't match stopAt is "an unmatched
// closer" and is silently consumed without producing a node, per
// spec.md §4.4 — this applies uniformly at the top level too, so a
// stray top-level ')' is dropped rather than surfaced as a Literal.
func (t *tokenizer) componentValueList(stopAt rune) []Node {
	var out []Node
	c := t.cur
	for {
		if c.EOF() {
			return out
		}
		r := c.Peek(0)
		if stopAt != 0 && r == stopAt {
			c.Advance(1)
			return out
		}
		if isCloser(r) {
			c.Advance(1)
			continue
		}
		if n := t.consumeComponentValue(); n != nil {
			out = append(out, n)
		}
	}
}

func (t *tokenizer) consumeComponentValue() Node {
	c := t.cur
	pos := c.Position()
	r := c.Peek(0)

	switch {
	case isWhitespace(r):
		ws := c.ConsumeWhile(isWhitespace)
		return Whitespace{base{pos}, ws}
	case r == '/' && c.Peek(1) == '*':
		return t.consumeComment(pos)
	case r == '"' || r == '\'':
		return t.consumeString(pos, r)
	case r == '#':
		return t.consumeHash(pos)
	case r == '(':
		c.Advance(1)
		return ParenthesesBlock{base{pos}, t.componentValueList(')')}
	case r == '[':
		c.Advance(1)
		return SquareBracketsBlock{base{pos}, t.componentValueList(']')}
	case r == '{':
		c.Advance(1)
		return CurlyBracketsBlock{base{pos}, t.componentValueList('}')}
	case r == '+' || r == '.':
		if wouldStartNumber(c) {
			return t.consumeNumeric(pos)
		}
		c.Advance(1)
		return Literal{base{pos}, string(r)}
	case isDigit(r):
		return t.consumeNumeric(pos)
	case r == '-':
		if wouldStartNumber(c) {
			return t.consumeNumeric(pos)
		}
		// The CDC check must come before the ident-sequence check:
		// "--" always satisfies wouldStartIdentSequence (a '-'
		// followed by another '-' is a valid ident start), so
		// "-->" would otherwise be consumed as Ident("--") plus a
		// bare ">" delim instead of the single CDC Literal CSS
		// Syntax 3 requires.
		if c.StartsWith("-->") {
			c.Advance(3)
			return Literal{base{pos}, "-->"}
		}
		if wouldStartIdentSequence(c, 0) {
			return t.consumeIdentLike(pos)
		}
		c.Advance(1)
		return Literal{base{pos}, "-"}
	case r == '<':
		if c.StartsWith("<!--") {
			c.Advance(4)
			return Literal{base{pos}, "<!--"}
		}
		c.Advance(1)
		return Literal{base{pos}, "<"}
	case r == '@':
		return t.consumeAtKeyword(pos)
	case strings.ContainsRune("~|^$*", r):
		c.Advance(1)
		if c.Peek(0) == '=' {
			c.Advance(1)
			return Literal{base{pos}, string(r) + "="}
		}
		return Literal{base{pos}, string(r)}
	case (r == 'u' || r == 'U') && c.Peek(1) == '+' && (isHexDigit(c.Peek(2)) || c.Peek(2) == '?'):
		return t.consumeUnicodeRange(pos)
	case wouldStartIdentSequence(c, 0):
		return t.consumeIdentLike(pos)
	default:
		c.Advance(1)
		return Literal{base{pos}, string(r)}
	}
}

func (t *tokenizer) consumeComment(pos Position) Node {
	c := t.cur
	c.Advance(2)
	var b strings.Builder
	for !c.EOF() && !c.StartsWith("*/") {
		b.WriteRune(c.Peek(0))
		c.Advance(1)
	}
	if c.StartsWith("*/") {
		c.Advance(2)
	}
	return Comment{base{pos}, b.String()}
}

func (t *tokenizer) consumeString(pos Position, quote rune) Node {
	c := t.cur
	c.Advance(1)
	var b strings.Builder
	for {
		if c.EOF() {
			return String{base{pos}, b.String(), quote}
		}
		r := c.Peek(0)
		switch {
		case r == quote:
			c.Advance(1)
			return String{base{pos}, b.String(), quote}
		case r == '\n':
			return ParseError{base{pos}, ErrBadString, "unescaped newline in string"}
		case r == '\\' && c.Peek(1) == '\n':
			c.Advance(2)
		case r == '\\' && c.Remaining() == 1:
			// A reverse solidus immediately followed by EOF consumes the
			// reverse solidus and appends nothing, per "consume a string
			// token": the escaped-code-point path only applies to a valid
			// escape, and a backslash at EOF never is one.
			c.Advance(1)
		case r == '\\':
			b.WriteRune(consumeEscape(c))
		default:
			b.WriteRune(r)
			c.Advance(1)
		}
	}
}

func (t *tokenizer) consumeHash(pos Position) Node {
	c := t.cur
	c.Advance(1)
	if !(isNameCodepoint(c.Peek(0)) || startsValidEscape(c)) {
		return Literal{base{pos}, "#"}
	}
	isIdent := wouldStartIdentSequence(c, 0)
	return Hash{base{pos}, consumeName(c), isIdent}
}

func (t *tokenizer) consumeAtKeyword(pos Position) Node {
	c := t.cur
	c.Advance(1)
	if wouldStartIdentSequence(c, 0) {
		return AtKeyword{base{pos}, consumeName(c)}
	}
	return Literal{base{pos}, "@"}
}

func (t *tokenizer) consumeNumeric(pos Position) Node {
	c := t.cur
	repr, isInt := consumeNumber(c)
	val, intVal := numericValue(repr, isInt)
	if wouldStartIdentSequence(c, 0) {
		unit := asciiLower(consumeName(c))
		return Dimension{base{pos}, val, intVal, repr, unit}
	}
	if c.Peek(0) == '%' {
		c.Advance(1)
		return Percentage{base{pos}, val, intVal, repr}
	}
	return Number{base{pos}, val, intVal, repr}
}

func (t *tokenizer) consumeIdentLike(pos Position) Node {
	c := t.cur
	name := consumeName(c)
	if c.Peek(0) != '(' {
		return Ident{base{pos}, name}
	}
	c.Advance(1)
	if asciiLower(name) == "url" {
		i := 0
		for isWhitespace(c.Peek(i)) {
			i++
		}
		if c.Peek(i) != '"' && c.Peek(i) != '\'' {
			return t.consumeURL(pos)
		}
	}
	return FunctionBlock{base{pos}, name, t.componentValueList(')')}
}

func isNonPrintable(r rune) bool {
	return (r >= 0 && r <= 0x8) || r == 0xB || (r >= 0xE && r <= 0x1F) || r == 0x7F
}

func (t *tokenizer) consumeURL(pos Position) Node {
	c := t.cur
	c.ConsumeWhile(isWhitespace)
	var b strings.Builder
	for {
		if c.EOF() {
			return URL{base{pos}, b.String()}
		}
		r := c.Peek(0)
		switch {
		case r == ')':
			c.Advance(1)
			return URL{base{pos}, b.String()}
		case isWhitespace(r):
			c.ConsumeWhile(isWhitespace)
			if c.Peek(0) == ')' {
				c.Advance(1)
				return URL{base{pos}, b.String()}
			}
			if c.EOF() {
				return URL{base{pos}, b.String()}
			}
			return t.consumeBadURLRemnants(pos)
		case r == '"' || r == '\'' || r == '(' || isNonPrintable(r):
			return t.consumeBadURLRemnants(pos)
		case r == '\\':
			if startsValidEscape(c) {
				b.WriteRune(consumeEscape(c))
				continue
			}
			return t.consumeBadURLRemnants(pos)
		default:
			b.WriteRune(r)
			c.Advance(1)
		}
	}
}

func (t *tokenizer) consumeBadURLRemnants(pos Position) Node {
	c := t.cur
	for !c.EOF() {
		if c.Peek(0) == ')' {
			c.Advance(1)
			break
		}
		if startsValidEscape(c) {
			consumeEscape(c)
			continue
		}
		c.Advance(1)
	}
	return ParseError{base{pos}, ErrBadURL, "invalid character in url()"}
}

func (t *tokenizer) consumeUnicodeRange(pos Position) Node {
	c := t.cur
	c.Advance(2) // "u+" / "U+"
	var hex strings.Builder
	for hex.Len() < 6 && isHexDigit(c.Peek(0)) {
		hex.WriteRune(c.Peek(0))
		c.Advance(1)
	}
	wildcards := 0
	for hex.Len()+wildcards < 6 && c.Peek(0) == '?' {
		wildcards++
		c.Advance(1)
	}
	if wildcards > 0 {
		start := hexToCodepoint(hex.String() + strings.Repeat("0", wildcards))
		end := hexToCodepoint(hex.String() + strings.Repeat("f", wildcards))
		return UnicodeRange{base{pos}, start, end}
	}
	start := hexToCodepoint(hex.String())
	end := start
	if c.Peek(0) == '-' && isHexDigit(c.Peek(1)) {
		c.Advance(1)
		var hex2 strings.Builder
		for hex2.Len() < 6 && isHexDigit(c.Peek(0)) {
			hex2.WriteRune(c.Peek(0))
			c.Advance(1)
		}
		end = hexToCodepoint(hex2.String())
	}
	if end > 0x10FFFF {
		end = 0x10FFFF
	}
	if end < start {
		end = start
	}
	return UnicodeRange{base{pos}, start, end}
}
