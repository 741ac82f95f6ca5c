package css

import (
	"strconv"
	"strings"

	"github.com/go-css/csssyntax/buffer"
)

// consumeNumber consumes a CSS number (sign, digits, optional fraction,
// optional exponent) per CSS Syntax 3 "consume a number". The caller
// must have already verified wouldStartNumber. It returns the exact
// source representation and whether the representation is syntactically
// an integer (no '.' and no exponent).
func consumeNumber(c *buffer.Cursor) (representation string, isInteger bool) {
	var b strings.Builder
	if c.Peek(0) == '+' || c.Peek(0) == '-' {
		b.WriteRune(c.Peek(0))
		c.Advance(1)
	}
	for isDigit(c.Peek(0)) {
		b.WriteRune(c.Peek(0))
		c.Advance(1)
	}
	isInteger = true
	if c.Peek(0) == '.' && isDigit(c.Peek(1)) {
		isInteger = false
		b.WriteRune(c.Peek(0))
		c.Advance(1)
		for isDigit(c.Peek(0)) {
			b.WriteRune(c.Peek(0))
			c.Advance(1)
		}
	}
	if e := c.Peek(0); e == 'e' || e == 'E' {
		n := 1
		if s := c.Peek(1); s == '+' || s == '-' {
			n = 2
		}
		if isDigit(c.Peek(n)) {
			isInteger = false
			for i := 0; i < n; i++ {
				b.WriteRune(c.Peek(0))
				c.Advance(1)
			}
			for isDigit(c.Peek(0)) {
				b.WriteRune(c.Peek(0))
				c.Advance(1)
			}
		}
	}
	return b.String(), isInteger
}

// numericValue parses representation into a float64 and, when isInteger
// is true, an int64. Malformed representations (which consumeNumber
// never produces) fall back to 0.
func numericValue(representation string, isInteger bool) (float64, *int64) {
	f, err := strconv.ParseFloat(representation, 64)
	if err != nil {
		f = 0
	}
	if !isInteger {
		return f, nil
	}
	i, err := strconv.ParseInt(representation, 10, 64)
	if err != nil {
		iv := int64(f)
		return f, &iv
	}
	return f, &i
}
