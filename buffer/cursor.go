// Package buffer implements the CSS Syntax Level 3 "preprocessing the input
// stream" step: normalizing newlines and NUL bytes, and tracking the
// codepoint-granular (line, column) position used throughout the css
// package's tokenizer and parsers.
//
// This plays the role the teacher's (github.com/tdewolff/parse/v2)
// ShiftBuffer/Position pair plays for its own tokenizers, but counts
// codepoints rather than bytes: CSS Syntax 3 positions are defined in
// terms of code points, and the whole input is held in memory up front
// (streaming parse input is an explicit spec non-goal), so there is no
// need for the teacher's amortized-growth read-ahead buffer.
package buffer

// Position is a 1-indexed (line, column) pair recorded at tokenization
// time and never mutated afterward.
type Position struct {
	Line   int
	Column int
}

// Cursor walks a preprocessed rune stream, tracking position.
type Cursor struct {
	runes []rune
	pos   int
	line  int
	col   int
}

// NewCursor preprocesses src per CSS Syntax 3 §3.3 ("preprocess the byte
// stream") applied to code points: CRLF, lone CR, and FF all become LF,
// and NUL is replaced with U+FFFD.
func NewCursor(src string) *Cursor {
	return &Cursor{runes: Preprocess(src), pos: 0, line: 1, col: 1}
}

// Preprocess applies the newline-normalization and NUL-replacement rules
// without constructing a Cursor; callers that only need the normalized
// text (e.g. for computing an error context snippet) can use this
// directly.
func Preprocess(src string) []rune {
	in := []rune(src)
	out := make([]rune, 0, len(in))
	for i := 0; i < len(in); i++ {
		c := in[i]
		switch c {
		case '\r':
			if i+1 < len(in) && in[i+1] == '\n' {
				i++
			}
			out = append(out, '\n')
		case '\f':
			out = append(out, '\n')
		case 0:
			out = append(out, '�')
		default:
			out = append(out, c)
		}
	}
	return out
}

// Peek returns the rune n positions ahead of the cursor (0 = current),
// or 0 if that position is at or past EOF. The normalized stream never
// legitimately contains U+0000, so 0 is an unambiguous EOF sentinel.
func (c *Cursor) Peek(n int) rune {
	i := c.pos + n
	if i < 0 || i >= len(c.runes) {
		return 0
	}
	return c.runes[i]
}

// EOF reports whether the cursor has consumed the entire stream.
func (c *Cursor) EOF() bool {
	return c.pos >= len(c.runes)
}

// Remaining returns the number of unconsumed code points.
func (c *Cursor) Remaining() int {
	return len(c.runes) - c.pos
}

// Position returns the cursor's current (line, column), both 1-indexed.
func (c *Cursor) Position() Position {
	return Position{Line: c.line, Column: c.col}
}

// Advance consumes n code points, updating line/column as it crosses
// newlines introduced by Preprocess (always bare '\n' at this point).
func (c *Cursor) Advance(n int) {
	for i := 0; i < n && !c.EOF(); i++ {
		if c.runes[c.pos] == '\n' {
			c.line++
			c.col = 1
		} else {
			c.col++
		}
		c.pos++
	}
}

// StartsWith reports whether the unconsumed stream begins with s.
func (c *Cursor) StartsWith(s string) bool {
	rs := []rune(s)
	if c.pos+len(rs) > len(c.runes) {
		return false
	}
	for i, r := range rs {
		if c.runes[c.pos+i] != r {
			return false
		}
	}
	return true
}

// ConsumeWhile advances past a maximal run of code points satisfying
// pred and returns the consumed text. Used by the tokenizer for
// whitespace runs.
func (c *Cursor) ConsumeWhile(pred func(rune) bool) string {
	start := c.pos
	for !c.EOF() && pred(c.Peek(0)) {
		c.Advance(1)
	}
	return string(c.runes[start:c.pos])
}

// Slice returns the code points from the current position up to (but
// not including) n positions ahead, without consuming them.
func (c *Cursor) Slice(n int) string {
	end := c.pos + n
	if end > len(c.runes) {
		end = len(c.runes)
	}
	return string(c.runes[c.pos:end])
}
