// SPDX-License-Identifier: MIT

// Package colorset implements a named-color registry with dark-mode variants,
// named lightness presets and composition, plus its binary and property-list
// persistence formats.
//
// Colors are stored as RGBA with every channel, alpha included, in [0,1].
package colorset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an RGBA color with channels in [0,1].
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

var (
	Clear = Color{}
	Black = Color{A: 1}
	White = Color{R: 1, G: 1, B: 1, A: 1}
)

// RGBA returns a color with every channel clamped to [0,1].
func RGBA(r, g, b, a float64) Color {
	return Color{R: clamp01(r), G: clamp01(g), B: clamp01(b), A: clamp01(a)}
}

// RGBA8 builds a color from 0-255 channels.
func RGBA8(r, g, b uint8, a float64) Color {
	return RGBA(float64(r)/255, float64(g)/255, float64(b)/255, a)
}

// Clamped returns c with every channel forced into [0,1]. NaN becomes 0.
func (c Color) Clamped() Color {
	return RGBA(c.R, c.G, c.B, c.A)
}

// Bytes returns the RGB channels scaled to 0-255.
func (c Color) Bytes() (r, g, b uint8) {
	return to8(c.R), to8(c.G), to8(c.B)
}

// Hex returns "#RRGGBB". Alpha is dropped.
func (c Color) Hex() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// HexAlpha returns "#RRGGBBAA".
func (c Color) HexAlpha() string {
	return c.Hex() + fmt.Sprintf("%02X", to8(c.A))
}

// CSS returns the color in rgba() notation.
func (c Color) CSS() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(math.Round(c.A*1000)/1000, 'f', -1, 64))
}

func (c Color) String() string {
	return c.HexAlpha()
}

// Equal reports whether both colors match within tol on every channel.
func (c Color) Equal(o Color, tol float64) bool {
	return math.Abs(c.R-o.R) <= tol &&
		math.Abs(c.G-o.G) <= tol &&
		math.Abs(c.B-o.B) <= tol &&
		math.Abs(c.A-o.A) <= tol
}

// ParseHex parses "#RRGGBB", "0xRRGGBB" or "RRGGBB", optionally followed by
// two alpha digits. Colors without an alpha component are opaque.
func ParseHex(s string) (Color, error) {
	h := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(h, "#"):
		h = h[1:]
	case strings.HasPrefix(h, "0x"), strings.HasPrefix(h, "0X"):
		h = h[2:]
	}

	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q: must be 6 or 8 hex digits", s)
	}

	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	a := 1.0
	if len(h) == 8 {
		a = float64(n&0xFF) / 255
		n >>= 8
	}

	return RGBA8(uint8(n>>16), uint8(n>>8), uint8(n), a), nil
}

// MustParseHex is ParseHex for compile-time constants.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
