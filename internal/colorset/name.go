// SPDX-License-Identifier: MIT
package colorset

import (
	"strconv"
	"strings"
)

// nameQuery is a color name split into its base name and optional suffix.
//
//	"Accent"       base only
//	"Accent.80"    base plus lightness 0.80
//	"Accent.hover" base plus named lightness variant "hover"
type nameQuery struct {
	base         string
	variant      string
	lightness    float64
	hasLightness bool
}

func parseName(name string) nameQuery {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return nameQuery{base: name}
	}

	q := nameQuery{base: name[:i]}
	suffix := name[i+1:]

	if n, err := strconv.Atoi(suffix); err == nil && n >= 0 && n <= 100 {
		q.lightness = float64(n) / 100
		q.hasLightness = true
		return q
	}

	q.variant = suffix
	return q
}
