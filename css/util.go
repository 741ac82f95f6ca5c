package css

import (
	"strings"

	"github.com/go-css/csssyntax/buffer"
)

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// isNameStart reports whether r can start a CSS identifier's name part
// (i.e. it is a name-start code point): a letter, '_', or any non-ASCII
// code point. Escapes are handled separately by the caller.
func isNameStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r >= 0x80
}

// isNameCodepoint reports whether r can continue a CSS identifier: a
// name-start code point, a digit, or '-'.
func isNameCodepoint(r rune) bool {
	return isNameStart(r) || isDigit(r) || r == '-'
}

// asciiLower lowercases only ASCII letters, leaving non-ASCII code points
// untouched, per CSS Syntax 3's ASCII case-insensitive comparisons.
func asciiLower(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// startsValidEscape reports whether the two code points at c.Peek(0) and
// c.Peek(1) form a valid escape: a backslash not immediately followed by
// a newline or EOF.
func startsValidEscape(c *buffer.Cursor) bool {
	if c.Peek(0) != '\\' {
		return false
	}
	return c.Remaining() > 1 && c.Peek(1) != '\n'
}

// wouldStartIdentSequence reports whether the code points starting at
// offset n would begin a CSS identifier, per CSS Syntax 3 "would start an
// identifier". It only peeks; it never advances the cursor.
func wouldStartIdentSequence(c *buffer.Cursor, n int) bool {
	r0 := c.Peek(n)
	switch {
	case r0 == '-':
		r1 := c.Peek(n + 1)
		if r1 == '-' {
			return true
		}
		if isNameStart(r1) {
			return true
		}
		return r1 == '\\' && c.Peek(n+2) != '\n' && c.Peek(n+2) != 0
	case isNameStart(r0):
		return true
	case r0 == '\\':
		return c.Peek(n+1) != '\n' && c.Peek(n+1) != 0
	}
	return false
}

// wouldStartNumber reports whether the input at the cursor would begin a
// CSS numeric token, per CSS Syntax 3 "would start a number".
func wouldStartNumber(c *buffer.Cursor) bool {
	n := 0
	r0 := c.Peek(0)
	if r0 == '+' || r0 == '-' {
		n = 1
	}
	if isDigit(c.Peek(n)) {
		return true
	}
	if c.Peek(n) == '.' && isDigit(c.Peek(n+1)) {
		return true
	}
	return false
}

// consumeEscape consumes a valid escape sequence (the caller has already
// verified startsValidEscape) and returns the decoded rune. It handles
// both the 1-6 hex digit form (with one optional trailing whitespace
// code point) and the literal-character form, per CSS Syntax 3 "consume
// an escaped code point".
func consumeEscape(c *buffer.Cursor) rune {
	c.Advance(1) // the backslash
	if isHexDigit(c.Peek(0)) {
		var hex strings.Builder
		for i := 0; i < 6 && isHexDigit(c.Peek(0)); i++ {
			hex.WriteRune(c.Peek(0))
			c.Advance(1)
		}
		if isWhitespace(c.Peek(0)) {
			c.Advance(1)
		}
		cp := hexToCodepoint(hex.String())
		if cp == 0 || cp > 0x10FFFF || (cp >= 0xD800 && cp <= 0xDFFF) {
			return '�'
		}
		return rune(cp)
	}
	if c.EOF() {
		return '�'
	}
	r := c.Peek(0)
	c.Advance(1)
	return r
}

func hexToCodepoint(hex string) uint32 {
	var v uint32
	for _, r := range hex {
		v <<= 4
		switch {
		case r >= '0' && r <= '9':
			v |= uint32(r - '0')
		case r >= 'a' && r <= 'f':
			v |= uint32(r-'a') + 10
		case r >= 'A' && r <= 'F':
			v |= uint32(r-'A') + 10
		}
	}
	return v
}

// consumeName consumes a CSS "name": a maximal run of name code points
// and escapes, decoding escapes as it goes. Used for idents, at-keywords,
// hash values, and dimension units.
func consumeName(c *buffer.Cursor) string {
	var b strings.Builder
	for {
		if startsValidEscape(c) {
			b.WriteRune(consumeEscape(c))
			continue
		}
		if c.EOF() || !isNameCodepoint(c.Peek(0)) {
			break
		}
		b.WriteRune(c.Peek(0))
		c.Advance(1)
	}
	return b.String()
}
