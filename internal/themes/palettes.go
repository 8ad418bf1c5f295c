// SPDX-License-Identifier: MIT
package themes

import (
	"math"

	"github.com/thatcatcamp/colorset/internal/colorset"
)

// Role names shared by every theme color set.
const (
	RolePrimary    = "Primary"
	RoleSecondary  = "Secondary"
	RoleBackground = "Background"
	RoleSurface    = "Surface"
	RoleText       = "Text"
	RoleTextMuted  = "TextMuted"
	RoleBorder     = "Border"
	RoleSuccess    = "Success"
	RoleError      = "Error"
	RoleWarning    = "Warning"
)

// Named lightness presets carried by brand roles.
const (
	LevelHover  = "hover"
	LevelSubtle = "subtle"
)

// Palette defines the base colors for a theme
type Palette struct {
	Name      string // "slate", "indigo", etc.
	Primary   string // hex color #RRGGBB
	Secondary string // hex color #RRGGBB
}

var builtin = map[string]*Palette{
	"slate":      {Name: "slate", Primary: "#64748b", Secondary: "#0f172a"},
	"indigo":     {Name: "indigo", Primary: "#4f46e5", Secondary: "#f97316"},
	"rose":       {Name: "rose", Primary: "#e11d48", Secondary: "#64748b"},
	"emerald":    {Name: "emerald", Primary: "#059669", Secondary: "#f59e0b"},
	"navy":       {Name: "navy", Primary: "#000080", Secondary: "#fbbf24"},
	"purple":     {Name: "purple", Primary: "#a855f7", Secondary: "#ec4899"},
	"teal":       {Name: "teal", Primary: "#14b8a6", Secondary: "#f87171"},
	"amber":      {Name: "amber", Primary: "#f59e0b", Secondary: "#6366f1"},
	"rose-mono":  {Name: "rose-mono", Primary: "#e11d48", Secondary: "#c41e3a"},
	"green-mono": {Name: "green-mono", Primary: "#22c55e", Secondary: "#16a34a"},
	"blue-mono":  {Name: "blue-mono", Primary: "#3b82f6", Secondary: "#1e40af"},
	"neutral":    {Name: "neutral", Primary: "#6b7280", Secondary: "#4b5563"},
}

var order = []string{
	"slate", "indigo", "rose", "emerald", "navy", "purple",
	"teal", "amber", "rose-mono", "green-mono", "blue-mono", "neutral",
}

// GetPalette returns a palette by name
func GetPalette(name string) *Palette {
	p, ok := builtin[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPalettes returns all available palettes in order
func ListPalettes() []*Palette {
	var palettes []*Palette
	for _, name := range order {
		if p := GetPalette(name); p != nil {
			palettes = append(palettes, p)
		}
	}
	return palettes
}

// BaseSet returns the neutral and status roles every theme falls back to.
func BaseSet() *colorset.ColorSet {
	set := colorset.New()
	neutral := []struct {
		name, light, dark string
	}{
		{RoleBackground, "#ffffff", "#0f172a"},
		{RoleSurface, "#f9fafb", "#1e293b"},
		{RoleText, "#000000", "#f1f5f9"},
		{RoleTextMuted, "#6b7280", "#94a3b8"},
		{RoleBorder, "#e5e7eb", "#334155"},
	}
	for _, n := range neutral {
		dark := colorset.MustParseHex(n.dark)
		set.Set(n.name, colorset.MustParseHex(n.light), &dark, nil)
	}

	set.Set(RoleSuccess, colorset.MustParseHex("#22c55e"), nil, nil)
	set.Set(RoleError, colorset.MustParseHex("#ef4444"), nil, nil)
	set.Set(RoleWarning, colorset.MustParseHex("#f59e0b"), nil, nil)
	return set
}

// ColorSet builds the palette's theme: brand roles with dark variants and
// hover/subtle presets, backed by BaseSet. The primary role takes the
// caller's accent color when one is supplied.
func (p *Palette) ColorSet() (*colorset.ColorSet, error) {
	primary, err := colorset.ParseHex(p.Primary)
	if err != nil {
		return nil, err
	}
	secondary, err := colorset.ParseHex(p.Secondary)
	if err != nil {
		return nil, err
	}

	set := colorset.New()
	addBrandRole(set, RolePrimary, primary)
	addBrandRole(set, RoleSecondary, secondary)
	set.UseAccentFor(RolePrimary)
	set.AddChild(BaseSet())
	return set, nil
}

func addBrandRole(set *colorset.ColorSet, name string, c colorset.Color) {
	dark := darkVariant(c)
	set.Set(name, c, &dark, []colorset.LightnessPair{
		colorset.NewLightnessPair(LevelHover, 0.4, LevelHover+"-dark", 0.6),
		colorset.NewLightnessPair(LevelSubtle, 0.95, LevelSubtle+"-dark", 0.15),
	})
}

// darkVariant lifts dim brand colors so they stay legible on dark surfaces.
func darkVariant(c colorset.Color) colorset.Color {
	return c.WithLightness(math.Max(c.Lightness(), 0.65))
}
