// SPDX-License-Identifier: MIT

// Package palettefile reads hand-written YAML palettes and compiles them into
// color sets.
//
//	name: ocean
//	colors:
//	  Primary:
//	    color: "#0EA5E9"
//	    dark: "#38BDF8"
//	    accent: true
//	    lightness:
//	      - light: {name: hover, percent: 60}
//	        dark: {name: hover-dark, percent: 40}
package palettefile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/thatcatcamp/colorset/internal/colorset"
)

// Palette is a YAML palette document.
type Palette struct {
	Name   string           `yaml:"name"`
	Colors map[string]Entry `yaml:"colors"`

	// Source is the file the palette was read from, if any.
	Source string `yaml:"-"`
}

// Entry is one named color. Colors are hex strings.
type Entry struct {
	Color     string          `yaml:"color"`
	Dark      string          `yaml:"dark,omitempty"`
	Accent    bool            `yaml:"accent,omitempty"`
	Lightness []LightnessPair `yaml:"lightness,omitempty"`
}

// LightnessPair names two lightness presets that swap in dark mode.
type LightnessPair struct {
	Light Level `yaml:"light"`
	Dark  Level `yaml:"dark"`
}

// Level is a named lightness given as a whole percentage.
type Level struct {
	Name    string `yaml:"name"`
	Percent string `yaml:"percent"`
}

// Validate checks that every entry has a parseable color.
func (p *Palette) Validate() error {
	if len(p.Colors) == 0 {
		return fmt.Errorf("palette %q defines no colors", p.Name)
	}

	for _, name := range p.names() {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("color name is required")
		}
		e := p.Colors[name]
		if _, err := colorset.ParseHex(e.Color); err != nil {
			return fmt.Errorf("color %s: %w", name, err)
		}
		if e.Dark != "" {
			if _, err := colorset.ParseHex(e.Dark); err != nil {
				return fmt.Errorf("color %s dark: %w", name, err)
			}
		}
		for i, lp := range e.Lightness {
			if lp.Light.Name == "" || lp.Dark.Name == "" {
				return fmt.Errorf("color %s lightness %d: both levels need a name", name, i)
			}
		}
	}
	return nil
}

func (p *Palette) names() []string {
	names := make([]string, 0, len(p.Colors))
	for name := range p.Colors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compile builds a color set from the palette.
func (p *Palette) Compile() (*colorset.ColorSet, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	set := colorset.New()
	for _, name := range p.names() {
		e := p.Colors[name]

		color := colorset.MustParseHex(e.Color)
		var variant *colorset.Color
		if e.Dark != "" {
			d := colorset.MustParseHex(e.Dark)
			variant = &d
		}

		pairs := make([]colorset.LightnessPair, 0, len(e.Lightness))
		for _, lp := range e.Lightness {
			pairs = append(pairs, colorset.NewLightnessPair(
				lp.Light.Name, colorset.ParseLightnessPercent(lp.Light.Percent),
				lp.Dark.Name, colorset.ParseLightnessPercent(lp.Dark.Percent),
			))
		}

		set.Set(name, color, variant, pairs)
		if e.Accent {
			set.UseAccentFor(name)
		}
	}

	return set, nil
}

// FromColorSet converts a set's own colors back to palette form. Colors are
// rounded to 8-bit hex and lightnesses to whole percentages.
func FromColorSet(name string, set *colorset.ColorSet) *Palette {
	p := &Palette{Name: name, Colors: make(map[string]Entry, set.Count())}

	accents := make(map[string]bool)
	for _, n := range set.AccentNames() {
		accents[n] = true
	}

	for _, n := range set.Names() {
		pair, ok := set.Entry(n)
		if !ok || pair.Color == nil {
			continue
		}

		e := Entry{Color: pair.Color.Hex(), Accent: accents[n]}
		if pair.Variant != nil {
			e.Dark = pair.Variant.Hex()
		}
		for _, lp := range pair.Lightnesses {
			e.Lightness = append(e.Lightness, LightnessPair{
				Light: Level{Name: lp.Lightness1.Name, Percent: colorset.FormatLightnessPercent(lp.Lightness1.Lightness)},
				Dark:  Level{Name: lp.Lightness2.Name, Percent: colorset.FormatLightnessPercent(lp.Lightness2.Lightness)},
			})
		}
		p.Colors[n] = e
	}

	return p
}
