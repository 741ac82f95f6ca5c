package color

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestParseKeywords(t *testing.T) {
	c, ok := Parse("red")
	test.That(t, ok, "expected red to parse")
	test.That(t, c.Kind == KindRGB, "expected RGB")
	test.That(t, approxEqual(c.R, 1) && approxEqual(c.G, 0) && approxEqual(c.B, 0) && approxEqual(c.Alpha, 1), "red channels")

	c, ok = Parse("rebeccapurple")
	test.That(t, ok, "expected rebeccapurple to parse")
	test.That(t, approxEqual(c.R, float64(0x66)/0xFF) && approxEqual(c.G, float64(0x33)/0xFF) && approxEqual(c.B, float64(0x99)/0xFF), "rebeccapurple channels")

	c, ok = Parse("transparent")
	test.That(t, ok, "expected transparent to parse")
	test.That(t, approxEqual(c.Alpha, 0), "transparent alpha")

	c, ok = Parse("currentColor")
	test.That(t, ok, "expected currentColor to parse")
	test.That(t, c.Kind == KindCurrentColor, "expected KindCurrentColor")

	_, ok = Parse("notacolor")
	test.That(t, !ok, "expected notacolor to fail")
}

func TestParseHex(t *testing.T) {
	c, ok := Parse("#f00")
	test.That(t, ok, "expected #f00 to parse")
	test.That(t, approxEqual(c.R, 1) && approxEqual(c.G, 0) && approxEqual(c.B, 0) && approxEqual(c.Alpha, 1), "#f00 channels")

	c, ok = Parse("#ff000080")
	test.That(t, ok, "expected #ff000080 to parse")
	test.That(t, approxEqual(c.R, 1) && approxEqual(c.Alpha, float64(0x80)/0xFF), "#ff000080 channels")

	_, ok = Parse("#12345")
	test.That(t, !ok, "expected 5-digit hex to fail")

	_, ok = Parse("#zzzzzz")
	test.That(t, !ok, "expected non-hex digits to fail")
}

func TestParseRGBFunction(t *testing.T) {
	c, ok := Parse("rgb(255, 0, 0)")
	test.That(t, ok, "expected comma rgb() to parse")
	test.That(t, approxEqual(c.R, 1) && approxEqual(c.Alpha, 1), "rgb() channels")

	c, ok = Parse("rgba(255, 0, 0, 0.5)")
	test.That(t, ok, "expected comma rgba() with alpha to parse")
	test.That(t, approxEqual(c.Alpha, 0.5), "rgba() alpha")

	c, ok = Parse("rgb(100% 0% 0% / 50%)")
	test.That(t, ok, "expected modern rgb() to parse")
	test.That(t, approxEqual(c.R, 1) && approxEqual(c.Alpha, 0.5), "modern rgb() channels")

	_, ok = Parse("rgb(255, 0)")
	test.That(t, !ok, "expected too few args to fail")
}

func TestParseHSLFunction(t *testing.T) {
	c, ok := Parse("hsl(0, 100%, 50%)")
	test.That(t, ok, "expected hsl() to parse")
	test.That(t, approxEqual(c.R, 1) && approxEqual(c.G, 0) && approxEqual(c.B, 0), "hsl(0,100%,50%) is red")

	c, ok = Parse("hsl(120deg 100% 50%)")
	test.That(t, ok, "expected space-form hsl() to parse")
	test.That(t, approxEqual(c.R, 0) && approxEqual(c.G, 1) && approxEqual(c.B, 0), "hsl(120,100%,50%) is green")
}

func TestParseHWBFunction(t *testing.T) {
	c, ok := Parse("hwb(0 0% 0%)")
	test.That(t, ok, "expected hwb() to parse")
	test.That(t, approxEqual(c.R, 1) && approxEqual(c.G, 0) && approxEqual(c.B, 0), "hwb(0,0%,0%) is red")

	c, ok = Parse("hwb(0 50% 50%)")
	test.That(t, ok, "expected hwb() with white+black=1 to parse")
	test.That(t, approxEqual(c.R, 0.5) && approxEqual(c.G, 0.5) && approxEqual(c.B, 0.5), "hwb oversaturated is gray")
}

func TestParseColorSpaceFunctions(t *testing.T) {
	c, ok := Parse("lab(29.2345% 39.3825 20.0664)")
	test.That(t, ok, "expected lab() to parse")
	test.That(t, c.Kind == KindColorSpace, "expected KindColorSpace")
	test.String(t, c.Space, "lab")
	test.That(t, len(c.Components) == 3, "expected 3 components")

	c, ok = Parse("oklch(0.5 0.2 30 / 0.8)")
	test.That(t, ok, "expected oklch() to parse")
	test.That(t, c.Kind == KindColorSpace, "expected KindColorSpace")
	test.That(t, approxEqual(c.Alpha, 0.8), "oklch alpha")

	c, ok = Parse("color(display-p3 1 0.5 0)")
	test.That(t, ok, "expected color() to parse")
	test.String(t, c.Space, "display-p3")
	test.That(t, len(c.Components) == 3, "expected 3 components")

	_, ok = Parse("color()")
	test.That(t, !ok, "expected color() with no space to fail")
}
