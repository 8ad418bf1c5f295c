// SPDX-License-Identifier: MIT
package colorset

import (
	"math"
	"strconv"
	"strings"
)

// lightnessTolerance is how close two lightness values must be to count as equal.
const lightnessTolerance = 0.001

// LightnessVariant is a named lightness (0 to 1) for a base color.
type LightnessVariant struct {
	Lightness float64
	Name      string
}

// LightnessPair holds two lightness variants that stand in for each other
// when switching between light and dark mode.
type LightnessPair struct {
	Lightness1 LightnessVariant
	Lightness2 LightnessVariant
}

// NewLightnessPair builds a pair from two name/lightness couples.
func NewLightnessPair(name1 string, lightness1 float64, name2 string, lightness2 float64) LightnessPair {
	return LightnessPair{
		Lightness1: LightnessVariant{Lightness: clamp01(lightness1), Name: name1},
		Lightness2: LightnessVariant{Lightness: clamp01(lightness2), Name: name2},
	}
}

// Counterpart returns the lightness paired with l, if one member of the pair
// matches l.
func (p LightnessPair) Counterpart(l float64) (float64, bool) {
	if sameLightness(p.Lightness1.Lightness, l) {
		return p.Lightness2.Lightness, true
	}
	if sameLightness(p.Lightness2.Lightness, l) {
		return p.Lightness1.Lightness, true
	}
	return 0, false
}

// ColorPair is a primary color with an optional dark-mode variant and named
// lightness presets. A nil Variant means there is no dark-mode substitute.
type ColorPair struct {
	Color       *Color
	Variant     *Color
	Lightnesses []LightnessPair
}

// NewColorPair copies its arguments into a new pair.
func NewColorPair(color Color, variant *Color, lightnesses []LightnessPair) ColorPair {
	p := ColorPair{Color: &color}
	if variant != nil {
		v := *variant
		p.Variant = &v
	}
	p.Lightnesses = append([]LightnessPair(nil), lightnesses...)
	return p
}

// HasVariant reports whether the pair carries a dark-mode substitute.
func (p ColorPair) HasVariant() bool {
	return p.Variant != nil
}

// Clone returns a deep copy so callers cannot mutate registry state.
func (p ColorPair) Clone() ColorPair {
	c := ColorPair{}
	if p.Color != nil {
		v := *p.Color
		c.Color = &v
	}
	if p.Variant != nil {
		v := *p.Variant
		c.Variant = &v
	}
	if p.Lightnesses != nil {
		c.Lightnesses = append([]LightnessPair(nil), p.Lightnesses...)
	}
	return c
}

// NamedLightness finds a lightness variant by name in either member of each pair.
func (p ColorPair) NamedLightness(name string) (float64, bool) {
	for _, lp := range p.Lightnesses {
		if lp.Lightness1.Name == name {
			return lp.Lightness1.Lightness, true
		}
		if lp.Lightness2.Name == name {
			return lp.Lightness2.Lightness, true
		}
	}
	return 0, false
}

// DarkLightness maps a light-mode lightness to the one used in dark mode:
// the counterpart from a matching pair, or 1-l when no pair matches.
func (p ColorPair) DarkLightness(l float64) float64 {
	for _, lp := range p.Lightnesses {
		if other, ok := lp.Counterpart(l); ok {
			return other
		}
	}
	return 1 - l
}

func sameLightness(a, b float64) bool {
	return math.Abs(a-b) < lightnessTolerance
}

// ParseLightnessPercent converts "0".."100" to a lightness in [0,1]. Values
// outside the range are clamped; text that is not an integer yields 0.
func ParseLightnessPercent(s string) float64 {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	if i < 0 {
		i = 0
	} else if i > 100 {
		i = 100
	}
	return float64(i) / 100
}

// FormatLightnessPercent renders a lightness as a whole percentage.
func FormatLightnessPercent(l float64) string {
	return strconv.Itoa(int(math.Round(clamp01(l) * 100)))
}
