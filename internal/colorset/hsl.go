// SPDX-License-Identifier: MIT
package colorset

import "math"

// contrastThreshold is the perceived brightness (0-255 scale) above which a
// background gets dark text.
const contrastThreshold = 150

// RGBToHSL converts RGB channels in [0,1] to hue, saturation and lightness in [0,1].
func RGBToHSL(r, g, b float64) (h, s, l float64) {
	v := math.Max(math.Max(r, g), b)
	m := math.Min(math.Min(r, g), b)

	l = (m + v) / 2
	if l <= 0 {
		return 0, 0, l
	}

	vm := v - m
	if vm <= 0 {
		return 0, 0, l
	}

	if l <= 0.5 {
		s = vm / (v + m)
	} else {
		s = vm / (2 - v - m)
	}

	r2 := (v - r) / vm
	g2 := (v - g) / vm
	b2 := (v - b) / vm

	switch {
	case r == v:
		if g == m {
			h = 5 + b2
		} else {
			h = 1 - g2
		}
	case g == v:
		if b == m {
			h = 1 + r2
		} else {
			h = 3 - b2
		}
	default:
		if r == m {
			h = 3 + g2
		} else {
			h = 5 - r2
		}
	}

	h /= 6
	if h >= 1 {
		h -= 1
	}

	return h, s, l
}

// HSLToRGB converts hue, saturation and lightness to RGB channels in [0,1].
// Hue wraps; saturation and lightness are clamped.
func HSLToRGB(h, s, l float64) (r, g, b float64) {
	s = clamp01(s)
	l = clamp01(l)

	if s == 0 {
		return l, l, l
	}

	h = wrapHue(h)

	var t2 float64
	if l < 0.5 {
		t2 = l * (1 + s)
	} else {
		t2 = l + s - l*s
	}
	t1 := 2*l - t2

	return hueToChannel(t1, t2, h+1.0/3), hueToChannel(t1, t2, h), hueToChannel(t1, t2, h-1.0/3)
}

func hueToChannel(t1, t2, t float64) float64 {
	if t < 0 {
		t += 1
	} else if t > 1 {
		t -= 1
	}

	switch {
	case t*6 < 1:
		return t1 + (t2-t1)*6*t
	case t*2 < 1:
		return t2
	case t*3 < 2:
		return t1 + (t2-t1)*(2.0/3-t)*6
	}
	return t1
}

func wrapHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	return h - math.Floor(h)
}

// HSLA builds a color from hue, saturation, lightness and alpha.
func HSLA(h, s, l, a float64) Color {
	r, g, b := HSLToRGB(h, s, l)
	return RGBA(r, g, b, a)
}

// HSL returns the hue, saturation, lightness and alpha of c.
func (c Color) HSL() (h, s, l, a float64) {
	c = c.Clamped()
	h, s, l = RGBToHSL(c.R, c.G, c.B)
	return h, s, l, c.A
}

// Lightness returns the HSL lightness of c.
func (c Color) Lightness() float64 {
	_, _, l, _ := c.HSL()
	return l
}

// WithHue returns c with its hue replaced.
func (c Color) WithHue(hue float64) Color {
	_, s, l, a := c.HSL()
	return HSLA(hue, s, l, a)
}

// WithSaturation returns c with its saturation replaced.
func (c Color) WithSaturation(saturation float64) Color {
	h, _, l, a := c.HSL()
	return HSLA(h, saturation, l, a)
}

// WithLightness returns c with its lightness replaced.
func (c Color) WithLightness(lightness float64) Color {
	h, s, _, a := c.HSL()
	return HSLA(h, s, lightness, a)
}

// AdjustHue rotates the hue by delta.
func (c Color) AdjustHue(delta float64) Color {
	h, _, _, _ := c.HSL()
	return c.WithHue(h + delta)
}

// AdjustSaturation adds delta to the saturation.
func (c Color) AdjustSaturation(delta float64) Color {
	_, s, _, _ := c.HSL()
	return c.WithSaturation(s + delta)
}

// AdjustLightness adds delta to the lightness.
func (c Color) AdjustLightness(delta float64) Color {
	_, _, l, _ := c.HSL()
	return c.WithLightness(l + delta)
}

// Brightness returns the perceived brightness of c on a 0-255 scale,
// weighted 299/587/114 per mille.
func (c Color) Brightness() float64 {
	c = c.Clamped()
	return (c.R*255*299 + c.G*255*587 + c.B*255*114) / 1000
}

// BestTextColor returns black or white, whichever reads better on background.
func BestTextColor(background Color) Color {
	return BestTextColorWith(background, White, Black)
}

// BestTextColorWith returns dark for bright backgrounds and light otherwise.
func BestTextColorWith(background, light, dark Color) Color {
	if background.Brightness() > contrastThreshold {
		return dark
	}
	return light
}
