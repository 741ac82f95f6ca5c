// Package css implements the CSS Syntax Level 3 tokenizer, the block and
// function builder that nests component values, the rule/declaration
// parser (including the CSS-nesting-aware parse_blocks_contents), and the
// serializer that reverses all of it back into text.
//
// The grammar deliberately knows nothing about CSS semantics: properties,
// selectors, and at-rule grammars are not interpreted here, only tokens,
// blocks, functions, rules, and declarations.
//
// Node re-architects the teacher's (github.com/tdewolff/parse/v2/css)
// inheritance-style Node/TokenNode/BlockNode/... hierarchy as a tagged sum
// of concrete struct types sharing an embedded position header, matched by
// type switch at every consumer (serializer, rule parser, nth, color) —
// no virtual dispatch is needed because Go has no use for it here.
package css

import "github.com/go-css/csssyntax/buffer"

// Position is a 1-indexed (line, column) pair, recorded once at
// tokenization and never mutated.
type Position = buffer.Position

// Node is implemented by every token, block, function, rule, declaration,
// and parse error produced by this package.
type Node interface {
	// Pos returns the node's starting source position.
	Pos() Position
}

type base struct {
	Position Position
}

// Pos implements Node.
func (b base) Pos() Position { return b.Position }

// Whitespace is a run of one or more space, tab, or newline characters,
// normalized from CRLF/CR/FF to LF by the source cursor before
// tokenization (see package buffer).
type Whitespace struct {
	base
	Value string
}

// Literal is a single- or multi-character punctuation token: one of the
// colon, semicolon, or comma tokens; the CDO/CDC tokens ("<!--", "-->");
// the legacy attribute-selector match tokens ("~=", "|=", "^=", "$=",
// "*="); or a one-codepoint delim-token for anything else that isn't
// consumed as part of a longer token (a bare '.', '+', '@', '#', etc).
//
// This grouping follows tinycss2's LiteralToken (original_source,
// tokens.py): CSS Syntax 3's own grammar emits these as distinct token
// types, but this implementation's Node catalogue collapses them into
// one punctuation-carrying node, matching spec.md's Literal(ch) variant.
type Literal struct {
	base
	Value string
}

// Ident is an identifier, already unescaped. Value is the canonical
// Unicode text; serialization re-escapes it as needed (see
// SerializeIdentifier).
type Ident struct {
	base
	Value string
}

// AtKeyword is the name following '@' in an at-rule, unescaped, without
// the leading '@'.
type AtKeyword struct {
	base
	Value string
}

// Hash is a '#'-prefixed token. IsIdentifier is true iff the characters
// after '#' would themselves start a valid identifier, which is exactly
// the condition under which the hash is usable as an ID selector.
type Hash struct {
	base
	Value        string
	IsIdentifier bool
}

// String is a quoted string token, unescaped, without the surrounding
// quotes. Quote records which quote character the source used. The
// serializer does not read it and always emits '"'; Quote is retained
// for callers that want the original.
type String struct {
	base
	Value string
	Quote rune
}

// URL is an unquoted url(...) token's unescaped contents. A url(...)
// that used a quoted string instead is represented as a FunctionBlock
// named "url" with one String argument, never as a URL node — see
// FunctionBlock's doc comment.
type URL struct {
	base
	Value string
}

// Number is a numeric token with no unit or '%' suffix.
//
// Representation preserves the exact source digits (sign, digits,
// decimal point, exponent) for lossless round-trip; Value is the parsed
// float64. IntValue is non-nil iff Representation contains neither '.'
// nor 'e'/'E'.
type Number struct {
	base
	Value          float64
	IntValue       *int64
	Representation string
}

// Percentage is a numeric token immediately followed by '%'.
// Representation excludes the '%'.
type Percentage struct {
	base
	Value          float64
	IntValue       *int64
	Representation string
}

// Dimension is a numeric token immediately followed by a unit identifier.
// Unit is lowercased when ASCII; non-ASCII unit text is preserved as-is.
type Dimension struct {
	base
	Value          float64
	IntValue       *int64
	Representation string
	Unit           string
}

// UnicodeRange is a `u+XXXX` / `u+XXX??` / `u+XXX-YYY` token. Wildcards
// (`?`) expand Start to an all-zero fill and End to an all-F fill.
type UnicodeRange struct {
	base
	Start uint32
	End   uint32
}

// Comment is the content between "/*" and "*/", excluding the
// delimiters. An unterminated comment at EOF is not an error; its Value
// is whatever text preceded EOF.
type Comment struct {
	base
	Value string
}

// ParseError is an inline error marker. It is itself a component value:
// upper layers (the rule/declaration parser, nth, color) treat it like
// any other Node rather than raising an exception. See the Kind
// constants below and spec.md §7.
type ParseError struct {
	base
	Kind    string
	Message string
}

// ParseError Kind values (spec.md §7).
const (
	ErrInvalid     = "invalid"
	ErrEOFInString = "eof-in-string"
	ErrEOFInURL    = "eof-in-url"
	ErrBadString   = "bad-string"
	ErrBadURL      = "bad-url"
	ErrEmpty       = "empty"
	ErrExtraInput  = "extra-input"
)

// ParenthesesBlock is a "(" ... ")" block. Content never includes the
// closing ")"; an EOF before the matching ")" is accepted without error.
type ParenthesesBlock struct {
	base
	Content []Node
}

// SquareBracketsBlock is a "[" ... "]" block.
type SquareBracketsBlock struct {
	base
	Content []Node
}

// CurlyBracketsBlock is a "{" ... "}" block.
type CurlyBracketsBlock struct {
	base
	Content []Node
}

// FunctionBlock is a `name(` ... `)` call. Name is lowercased for
// matching purposes by consumers, but stored here exactly as the source
// identifier (non-ASCII names must serialize unchanged).
//
// A FunctionBlock named "url" with exactly one String child (surrounded
// only by whitespace) is distinct from a URL token: the tokenizer
// produces URL only for the unquoted url(...) form; the quoted form
// url("...") is always a FunctionBlock, because CSS Syntax 3 only
// special-cases the unquoted spelling.
type FunctionBlock struct {
	base
	Name      string
	Arguments []Node
}

// QualifiedRule is a prelude followed by a {}-block: selectors plus
// declarations, in ordinary CSS.
type QualifiedRule struct {
	base
	Prelude []Node
	Content []Node
}

// AtRule is "@name" followed by a prelude, terminated by either a ';'
// (a statement at-rule, HasBlock false, Content nil) or a {}-block
// (HasBlock true; Content holds the block's content, which may be an
// empty, non-nil slice).
type AtRule struct {
	base
	Name     string
	Prelude  []Node
	HasBlock bool
	Content  []Node
}

// Declaration is `<ident> ':' <value> ( '!' 'important' )?`. Important
// is true iff the value ended with an (optionally whitespace/comment
// separated, case-insensitive) "!important" marker, which is stripped
// from Value.
type Declaration struct {
	base
	Name      string
	Value     []Node
	Important bool
}
