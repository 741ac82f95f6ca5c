package css

import (
	"fmt"
	"strings"
)

// Serialize concatenates the serialized form of nodes, inserting an
// empty comment ("/**/") between any adjacent pair whose concatenated
// text would re-tokenize differently than the two nodes did
// separately — e.g. two idents, or a number immediately followed by
// an ident. This mirrors CSS Syntax 3 §9's non-normative serialization
// guidance; the pair table below is not the full one the spec
// enumerates, but covers every merge risk the tokenizer in this
// package can actually produce (see DESIGN.md).
func Serialize(nodes []Node) string {
	if len(nodes) == 0 {
		return ""
	}
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = serializeNode(n)
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for i := 1; i < len(parts); i++ {
		if needSeparator(parts[i-1], parts[i]) {
			b.WriteString("/**/")
		}
		b.WriteString(parts[i])
	}
	return b.String()
}

func needSeparator(prev, next string) bool {
	if prev == "" || next == "" {
		return false
	}
	pr := []rune(prev)
	nr := []rune(next)
	a := pr[len(pr)-1]
	b := nr[0]
	switch {
	case isNameCodepoint(a) && (isNameCodepoint(b) || b == '\\'):
		return true
	case a == '-' && (isNameStart(b) || b == '-' || b == '\\'):
		return true
	case isDigit(a) && (b == '.' || b == '%' || b == '+' || b == '-'):
		return true
	case a == '.' && isDigit(b):
		return true
	case a == '#' && (isNameCodepoint(b) || b == '\\'):
		return true
	case a == '@' && (isNameStart(b) || b == '\\' || b == '-'):
		return true
	case a == '/' && b == '*':
		return true
	case strings.ContainsRune("~|^$*", a) && b == '=':
		return true
	case a == '|' && b == '|':
		return true
	case a == '<' && b == '!':
		return true
	}
	return false
}

func serializeNode(n Node) string {
	switch v := n.(type) {
	case Whitespace:
		return v.Value
	case Comment:
		return "/*" + v.Value + "*/"
	case Literal:
		return v.Value
	case Ident:
		s, ok := SerializeIdentifier(v.Value)
		if !ok {
			return v.Value
		}
		return s
	case AtKeyword:
		s, ok := SerializeIdentifier(v.Value)
		if !ok {
			s = v.Value
		}
		return "@" + s
	case Hash:
		if v.IsIdentifier {
			s, ok := SerializeIdentifier(v.Value)
			if ok {
				return "#" + s
			}
		}
		return "#" + serializeHashValue(v.Value)
	case String:
		return serializeStringValue(v.Value)
	case URL:
		return serializeURLValue(v.Value)
	case Number:
		return v.Representation
	case Percentage:
		return v.Representation + "%"
	case Dimension:
		unit, ok := SerializeIdentifier(v.Unit)
		if !ok {
			unit = v.Unit
		}
		return v.Representation + unit
	case UnicodeRange:
		return serializeUnicodeRange(v)
	case ParseError:
		return ""
	case ParenthesesBlock:
		return "(" + Serialize(v.Content) + ")"
	case SquareBracketsBlock:
		return "[" + Serialize(v.Content) + "]"
	case CurlyBracketsBlock:
		return "{" + Serialize(v.Content) + "}"
	case FunctionBlock:
		name, ok := SerializeIdentifier(v.Name)
		if !ok {
			name = v.Name
		}
		return name + "(" + Serialize(v.Arguments) + ")"
	case QualifiedRule:
		return Serialize(v.Prelude) + "{" + Serialize(v.Content) + "}"
	case AtRule:
		name, ok := SerializeIdentifier(v.Name)
		if !ok {
			name = v.Name
		}
		s := "@" + name + Serialize(v.Prelude)
		if v.HasBlock {
			return s + "{" + Serialize(v.Content) + "}"
		}
		return s + ";"
	case Declaration:
		name, ok := SerializeIdentifier(v.Name)
		if !ok {
			name = v.Name
		}
		s := name + ":" + Serialize(v.Value)
		if v.Important {
			s += "!important"
		}
		return s
	}
	return ""
}

func hexEscape(r rune) string {
	return fmt.Sprintf("\\%x ", r)
}

func isControl(r rune) bool {
	return (r >= 0x01 && r <= 0x1F) || r == 0x7F
}

func isPlainBodyRune(r rune) bool {
	return r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || isDigit(r) || r >= 0x80
}

// SerializeIdentifier implements CSS OM's "serialize an identifier"
// algorithm. It reports false when name cannot be represented as an
// identifier at all: the empty string, a bare "-", or anything
// containing U+0000 (a NUL can never survive a round trip — the
// tokenizer's own escape decoding replaces \0 with U+FFFD, so no
// escape sequence can ever reproduce it).
func SerializeIdentifier(name string) (string, bool) {
	if name == "" || name == "-" || strings.ContainsRune(name, 0) {
		return "", false
	}
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		switch {
		case isControl(r):
			b.WriteString(hexEscape(r))
		case i == 0 && isDigit(r):
			b.WriteString(hexEscape(r))
		case i == 1 && runes[0] == '-' && isDigit(r):
			b.WriteString(hexEscape(r))
		case isPlainBodyRune(r):
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String(), true
}

func serializeHashValue(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case isControl(r):
			b.WriteString(hexEscape(r))
		case isPlainBodyRune(r):
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

func serializeStringValue(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range value {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString("\\a ")
		case isControl(r):
			b.WriteString(hexEscape(r))
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func serializeURLValue(value string) string {
	var b strings.Builder
	b.WriteString("url(")
	for _, r := range value {
		switch {
		case r == '"' || r == '\'' || r == '\\' || r == '(' || r == ')':
			b.WriteByte('\\')
			b.WriteRune(r)
		case isWhitespace(r):
			b.WriteByte('\\')
			b.WriteRune(r)
		case isControl(r):
			b.WriteString(hexEscape(r))
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(')')
	return b.String()
}

func serializeUnicodeRange(v UnicodeRange) string {
	if v.Start == v.End {
		return fmt.Sprintf("U+%X", v.Start)
	}
	return fmt.Sprintf("U+%X-%X", v.Start, v.End)
}
