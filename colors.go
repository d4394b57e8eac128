package vtcore

// ColorTag discriminates the three ways a Color can be specified.
type ColorTag uint8

const (
	// ColorDefault means "whatever the terminal's default fg/bg is" — not
	// an index into the palette.
	ColorDefault ColorTag = iota
	// ColorIndexed selects one of the 256 palette slots; the index lives in
	// Color.R.
	ColorIndexed
	// ColorRGB carries an explicit 24-bit truecolor value in R/G/B.
	ColorRGB
)

// Color is a packed 4-byte color value: a tag byte plus three payload
// bytes. For ColorIndexed only R is meaningful (the palette index); for
// ColorRGB all three are meaningful; for ColorDefault none are.
type Color struct {
	Tag  ColorTag
	R, G, B uint8
}

// Default is the zero value of Color and means "terminal default".
var Default = Color{Tag: ColorDefault}

// Indexed builds a Color that selects palette slot i.
func Indexed(i uint8) Color { return Color{Tag: ColorIndexed, R: i} }

// RGB builds a truecolor Color.
func RGB(r, g, b uint8) Color { return Color{Tag: ColorRGB, R: r, G: g, B: b} }

// RGB8 is a plain RGB triple used for resolved palette/default colors,
// independent of how the color was specified.
type RGB8 struct {
	R, G, B uint8
}

// DefaultPalette is the standard 256-color palette: 16 named colors (0-15),
// 216 color cube (16-231), 24 grayscale (232-255).
var DefaultPalette = [256]RGB8{
	{0, 0, 0},       // Black
	{205, 49, 49},   // Red
	{13, 188, 121},  // Green
	{229, 229, 16},  // Yellow
	{36, 114, 200},  // Blue
	{188, 63, 188},  // Magenta
	{17, 168, 205},  // Cyan
	{229, 229, 229}, // White

	{102, 102, 102}, // Bright Black
	{241, 76, 76},   // Bright Red
	{35, 209, 139},  // Bright Green
	{245, 245, 67},  // Bright Yellow
	{59, 142, 234},  // Bright Blue
	{214, 112, 214}, // Bright Magenta
	{41, 184, 219},  // Bright Cyan
	{255, 255, 255}, // Bright White

	// 16-231 (216-color cube) and 232-255 (grayscale) filled in by init().
}

func init() {
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette[i] = RGB8{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51)}
				i++
			}
		}
	}
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette[232+j] = RGB8{gray, gray, gray}
	}
}

// DefaultForegroundRGB is the default text color (light gray), overridable
// per-Grid via OSC 10.
var DefaultForegroundRGB = RGB8{229, 229, 229}

// DefaultBackgroundRGB is the default background color (black), overridable
// per-Grid via OSC 11.
var DefaultBackgroundRGB = RGB8{0, 0, 0}

// DefaultCursorRGB is the default cursor rendering color, overridable
// per-Grid via OSC 12.
var DefaultCursorRGB = RGB8{229, 229, 229}

// brighten maps an indexed color in the dim 0-7 range to its bright 8-15
// counterpart. It is the implementation of the bold-is-bright policy: the
// substitution happens once, at write time, never at render time, so the
// original "this was index 2" intent is not recoverable after the fact —
// matching spec's write-time substitution requirement.
func brighten(c Color) Color {
	if c.Tag == ColorIndexed && c.R < 8 {
		return Color{Tag: ColorIndexed, R: c.R + 8}
	}
	return c
}

// resolve converts a Color to a concrete RGB8 using palette as the 256-slot
// table and (defFg, defBg) as the resolution for ColorDefault.
func resolve(c Color, palette *[256]RGB8, defFg, defBg RGB8, isFg bool) RGB8 {
	switch c.Tag {
	case ColorIndexed:
		return palette[c.R]
	case ColorRGB:
		return RGB8{c.R, c.G, c.B}
	default:
		if isFg {
			return defFg
		}
		return defBg
	}
}
