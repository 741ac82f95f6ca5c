package buffer

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestPreprocessNewlines(t *testing.T) {
	test.String(t, string(Preprocess("a\r\nb\rc\fd\ne")), "a\nb\nc\nd\ne")
}

func TestPreprocessNUL(t *testing.T) {
	test.String(t, string(Preprocess("a\x00b")), "a�b")
}

func TestCursorPosition(t *testing.T) {
	c := NewCursor("ab\ncd")
	c.Advance(3)
	pos := c.Position()
	test.T(t, pos.Line, 2)
	test.T(t, pos.Column, 1)
	c.Advance(2)
	test.T(t, c.EOF(), true)
}

func TestCursorStartsWith(t *testing.T) {
	c := NewCursor("<!-- x")
	test.T(t, c.StartsWith("<!--"), true)
	test.T(t, c.StartsWith("-->"), false)
}

func TestCursorConsumeWhile(t *testing.T) {
	c := NewCursor("   abc")
	ws := c.ConsumeWhile(func(r rune) bool { return r == ' ' })
	test.String(t, ws, "   ")
	test.T(t, c.Peek(0), 'a')
}

func TestCursorColumnCountsCodepoints(t *testing.T) {
	c := NewCursor("é€x")
	c.Advance(2)
	pos := c.Position()
	test.T(t, pos.Column, 3)
}
