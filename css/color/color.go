// Package color implements CSS Color Level 4 <color> parsing atop the
// css package's tokenizer, grounded on
// original_source/tinycss2/color4.py's _parse_separated_args /
// _parse_alpha / _parse_hwb shape for the legacy comma-or-space
// rgb()/hsl()/hwb() forms. lab()/lch()/oklab()/oklch()/color() are not
// present in the retrieval pack's color4.py (which predates them) or
// resolvable from color3.py (absent from the pack — color4.py imports
// its named-color table and RGBA/hash-regexp helpers from it, so this
// package's named-color table and hex parsing are built from the CSS
// Color 4 specification's own keyword list rather than grounded on
// pack source; see DESIGN.md).
//
// Per spec.md §4.8, non-sRGB color spaces are not converted to RGB:
// the parser only needs to validate the grammar and retain the space
// name and raw component numbers, which sidesteps needing the
// CSS Color 4 §10 XYZ/Lab/OKLab conversion matrices entirely.
package color

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-css/csssyntax/css"
)

// Kind distinguishes Color's three shapes: an sRGB-family color with
// numeric channels, the currentColor keyword (no channels), or a
// color-space variant that only retains the space name and its raw
// component numbers.
type Kind int

const (
	KindRGB Kind = iota
	KindCurrentColor
	KindColorSpace
)

// Color is the result of parsing a <color> value. For KindRGB, R/G/B
// use a 0-1 scale and are not clamped, so out-of-range inputs give
// values outside [0, 1] (only Alpha is clipped to [0, 1], per spec.md
// §4.8); for KindColorSpace, Space names the color space
// and Components holds its raw parsed numbers, unconverted.
type Color struct {
	Kind       Kind
	R, G, B    float64
	Alpha      float64
	Space      string
	Components []float64
}

// Parse tokenizes text as exactly one component value (comments are
// dropped, matching tinycss2's parse_one_component_value(skip_comments=true)
// call for the same purpose) and parses it as a <color>.
func Parse(text string) (Color, bool) {
	items := trimWhitespace(css.ParseComponentValueList(text, true))
	if len(items) != 1 {
		return Color{}, false
	}
	return ParseNode(items[0])
}

// ParseNode parses a single already-tokenized component value as a
// <color>.
func ParseNode(token css.Node) (Color, bool) {
	switch t := token.(type) {
	case css.Ident:
		return colorFromKeyword(strings.ToLower(t.Value))
	case css.Hash:
		return colorFromHash(t.Value)
	case css.FunctionBlock:
		return colorFromFunction(strings.ToLower(t.Name), t.Arguments)
	}
	return Color{}, false
}

func trimWhitespace(items []css.Node) []css.Node {
	i, j := 0, len(items)
	for i < j {
		if _, ok := items[i].(css.Whitespace); !ok {
			break
		}
		i++
	}
	for j > i {
		if _, ok := items[j-1].(css.Whitespace); !ok {
			break
		}
		j--
	}
	return items[i:j]
}

func filterWhitespaceComment(items []css.Node) []css.Node {
	out := items[:0:0]
	for _, n := range items {
		switch n.(type) {
		case css.Whitespace, css.Comment:
			continue
		}
		out = append(out, n)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func colorFromKeyword(name string) (Color, bool) {
	switch name {
	case "currentcolor":
		return Color{Kind: KindCurrentColor}, true
	case "transparent":
		return Color{Kind: KindRGB, Alpha: 0}, true
	}
	rgb, ok := namedColors[name]
	if !ok {
		return Color{}, false
	}
	return Color{
		Kind:  KindRGB,
		R:     float64(rgb[0]) / 255,
		G:     float64(rgb[1]) / 255,
		B:     float64(rgb[2]) / 255,
		Alpha: 1,
	}, true
}

func isHex(s string) bool {
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return false
		}
	}
	return true
}

func hexPair(s string) float64 {
	n, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0
	}
	return float64(n) / 255
}

func hexDouble(s string) float64 {
	return hexPair(s + s)
}

func colorFromHash(value string) (Color, bool) {
	if !isHex(value) {
		return Color{}, false
	}
	switch len(value) {
	case 3:
		return Color{Kind: KindRGB, R: hexDouble(value[0:1]), G: hexDouble(value[1:2]), B: hexDouble(value[2:3]), Alpha: 1}, true
	case 4:
		return Color{Kind: KindRGB, R: hexDouble(value[0:1]), G: hexDouble(value[1:2]), B: hexDouble(value[2:3]), Alpha: hexDouble(value[3:4])}, true
	case 6:
		return Color{Kind: KindRGB, R: hexPair(value[0:2]), G: hexPair(value[2:4]), B: hexPair(value[4:6]), Alpha: 1}, true
	case 8:
		return Color{Kind: KindRGB, R: hexPair(value[0:2]), G: hexPair(value[2:4]), B: hexPair(value[4:6]), Alpha: hexPair(value[6:8])}, true
	}
	return Color{}, false
}

// parseSeparatedArgs recognizes the legacy comma-or-space argument
// grammar shared by rgb()/rgba()/hsl()/hsla()/hwb(): either every
// other token is a "," (comma form), exactly 3 bare arguments (space
// form, no alpha), or 5 tokens with a "/" as the 4th (space form with
// alpha). Grounded on tinycss2's _parse_separated_args.
func parseSeparatedArgs(tokens []css.Node) []css.Node {
	f := filterWhitespaceComment(tokens)
	if len(f)%2 == 1 && len(f) > 1 {
		allCommas := true
		for i := 1; i < len(f); i += 2 {
			lit, ok := f[i].(css.Literal)
			if !ok || lit.Value != "," {
				allCommas = false
				break
			}
		}
		if allCommas {
			args := make([]css.Node, 0, len(f)/2+1)
			for i := 0; i < len(f); i += 2 {
				args = append(args, f[i])
			}
			return args
		}
	}
	if len(f) == 3 {
		return f
	}
	if len(f) == 5 {
		if lit, ok := f[3].(css.Literal); ok && lit.Value == "/" {
			return []css.Node{f[0], f[1], f[2], f[4]}
		}
	}
	return nil
}

func parseAlpha(args []css.Node) (float64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	switch v := args[0].(type) {
	case css.Number:
		return clamp01(v.Value), true
	case css.Percentage:
		return clamp01(v.Value / 100), true
	}
	return 0, false
}

func hueDegrees(n css.Node) (float64, bool) {
	switch v := n.(type) {
	case css.Number:
		return v.Value, true
	case css.Dimension:
		switch strings.ToLower(v.Unit) {
		case "deg":
			return v.Value, true
		case "grad":
			return v.Value * 0.9, true
		case "rad":
			return v.Value * 180 / math.Pi, true
		case "turn":
			return v.Value * 360, true
		}
	}
	return 0, false
}

// splitArgsAlpha accepts exactly 3 args (no alpha, defaults to opaque)
// or exactly 4 (last one is the alpha argument), and rejects anything
// else — guarding callers from slicing args[3:] out of bounds.
func splitArgsAlpha(args []css.Node) (components []css.Node, alpha float64, ok bool) {
	switch len(args) {
	case 3:
		return args, 1, true
	case 4:
		a, ok := parseAlpha(args[3:])
		if !ok {
			return nil, 0, false
		}
		return args[:3], a, true
	}
	return nil, 0, false
}

func colorFromFunction(name string, arguments []css.Node) (Color, bool) {
	switch name {
	case "rgb", "rgba":
		args := parseSeparatedArgs(arguments)
		if args == nil {
			return Color{}, false
		}
		components, alpha, ok := splitArgsAlpha(args)
		if !ok {
			return Color{}, false
		}
		return parseRGB(components, alpha)
	case "hsl", "hsla":
		args := parseSeparatedArgs(arguments)
		if args == nil {
			return Color{}, false
		}
		components, alpha, ok := splitArgsAlpha(args)
		if !ok {
			return Color{}, false
		}
		return parseHSL(components, alpha)
	case "hwb":
		args := parseSeparatedArgs(arguments)
		if args == nil {
			return Color{}, false
		}
		components, alpha, ok := splitArgsAlpha(args)
		if !ok {
			return Color{}, false
		}
		return parseHWB(components, alpha)
	case "lab", "lch", "oklab", "oklch":
		comps, alphaToks := parseModernArgs(arguments)
		if len(comps) != 3 {
			return Color{}, false
		}
		vals := make([]float64, 3)
		for i, c := range comps {
			v, ok := numericComponentValue(c)
			if !ok {
				return Color{}, false
			}
			vals[i] = v
		}
		alpha := 1.0
		if a, ok := parseAlpha(alphaToks); ok {
			alpha = a
		}
		return Color{Kind: KindColorSpace, Space: name, Components: vals, Alpha: alpha}, true
	case "color":
		comps, alphaToks := parseModernArgs(arguments)
		if len(comps) == 0 {
			return Color{}, false
		}
		spaceIdent, ok := comps[0].(css.Ident)
		if !ok {
			return Color{}, false
		}
		vals := make([]float64, 0, len(comps)-1)
		for _, c := range comps[1:] {
			v, ok := numericComponentValue(c)
			if !ok {
				return Color{}, false
			}
			vals = append(vals, v)
		}
		alpha := 1.0
		if a, ok := parseAlpha(alphaToks); ok {
			alpha = a
		}
		return Color{Kind: KindColorSpace, Space: strings.ToLower(spaceIdent.Value), Components: vals, Alpha: alpha}, true
	}
	return Color{}, false
}

// parseModernArgs splits a function's arguments on whitespace/comments
// and an optional "/"-separated alpha, per the space-only grammar
// lab()/lch()/oklab()/oklch()/color() use (they never accept commas).
func parseModernArgs(tokens []css.Node) (components, alpha []css.Node) {
	f := filterWhitespaceComment(tokens)
	for i, t := range f {
		if lit, ok := t.(css.Literal); ok && lit.Value == "/" {
			return f[:i], f[i+1:]
		}
	}
	return f, nil
}

func numericComponentValue(n css.Node) (float64, bool) {
	switch v := n.(type) {
	case css.Number:
		return v.Value, true
	case css.Percentage:
		return v.Value, true
	case css.Ident:
		if strings.EqualFold(v.Value, "none") {
			return 0, true
		}
	}
	return 0, false
}

func parseRGB(args []css.Node, alpha float64) (Color, bool) {
	if len(args) != 3 {
		return Color{}, false
	}
	vals := make([]float64, 3)
	for i, a := range args {
		switch v := a.(type) {
		case css.Number:
			vals[i] = v.Value / 255
		case css.Percentage:
			vals[i] = v.Value / 100
		default:
			return Color{}, false
		}
	}
	return Color{Kind: KindRGB, R: vals[0], G: vals[1], B: vals[2], Alpha: alpha}, true
}

func parseHSL(args []css.Node, alpha float64) (Color, bool) {
	if len(args) != 3 {
		return Color{}, false
	}
	h, ok := hueDegrees(args[0])
	if !ok {
		return Color{}, false
	}
	s, ok := args[1].(css.Percentage)
	if !ok {
		return Color{}, false
	}
	l, ok := args[2].(css.Percentage)
	if !ok {
		return Color{}, false
	}
	r, g, b := hslToRGB(h, s.Value/100, l.Value/100)
	return Color{Kind: KindRGB, R: r, G: g, B: b, Alpha: alpha}, true
}

func parseHWB(args []css.Node, alpha float64) (Color, bool) {
	if len(args) != 3 {
		return Color{}, false
	}
	h, ok := hueDegrees(args[0])
	if !ok {
		return Color{}, false
	}
	whiteness, ok := args[1].(css.Percentage)
	if !ok {
		return Color{}, false
	}
	blackness, ok := args[2].(css.Percentage)
	if !ok {
		return Color{}, false
	}
	white := whiteness.Value / 100
	black := blackness.Value / 100
	if white+black >= 1 {
		gray := white / (white + black)
		return Color{Kind: KindRGB, R: gray, G: gray, B: gray, Alpha: alpha}, true
	}
	r, g, b := hslToRGB(h, 1, 0.5)
	r = r*(1-white-black) + white
	g = g*(1-white-black) + white
	b = b*(1-white-black) + white
	return Color{Kind: KindRGB, R: r, G: g, B: b, Alpha: alpha}, true
}

// hslToRGB is the standard CSS hue/saturation/lightness to RGB
// conversion, all inputs and outputs unclamped floats.
func hslToRGB(h, s, l float64) (r, g, b float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2
	var r1, g1, b1 float64
	switch {
	case h < 60:
		r1, g1, b1 = c, x, 0
	case h < 120:
		r1, g1, b1 = x, c, 0
	case h < 180:
		r1, g1, b1 = 0, c, x
	case h < 240:
		r1, g1, b1 = 0, x, c
	case h < 300:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}
	return r1 + m, g1 + m, b1 + m
}
