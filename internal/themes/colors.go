// SPDX-License-Identifier: MIT
package themes

import "github.com/thatcatcamp/colorset/internal/colorset"

// Colors represents all generated colors for a theme, as #RRGGBB strings
type Colors struct {
	Primary         string // Main brand color
	PrimaryContrast string // Text drawn on Primary
	PrimaryHover    string
	PrimarySubtle   string
	Secondary       string // Accent/highlight color
	Background      string // Page background
	Surface         string // Card/container background
	Text            string // Main text color
	TextMuted       string // Secondary/muted text
	Border          string // Border/divider color
	Success         string
	Error           string
	Warning         string
}

// GenerateColors resolves every theme role from set for light or dark mode.
// Roles the set does not define come from BaseSet. A non-nil accent replaces
// roles marked for accent substitution.
func GenerateColors(set *colorset.ColorSet, darkMode bool, accent *colorset.Color) *Colors {
	base := BaseSet()
	resolve := func(name string) colorset.Color {
		if c, ok := set.Resolve(name, darkMode, accent); ok {
			return c
		}
		if c, ok := base.Resolve(name, darkMode, accent); ok {
			return c
		}
		return colorset.Clear
	}

	primary := resolve(RolePrimary)
	text := resolve(RoleText)
	background := resolve(RoleBackground)

	return &Colors{
		Primary:         primary.Hex(),
		PrimaryContrast: colorset.BestTextColorWith(primary, colorset.White, colorset.Black).Hex(),
		PrimaryHover:    resolve(RolePrimary + "." + LevelHover).Hex(),
		PrimarySubtle:   resolve(RolePrimary + "." + LevelSubtle).Hex(),
		Secondary:       resolve(RoleSecondary).Hex(),
		Background:      background.Hex(),
		Surface:         resolve(RoleSurface).Hex(),
		Text:            colorset.BestTextColorWith(background, lighter(text), darker(text)).Hex(),
		TextMuted:       resolve(RoleTextMuted).Hex(),
		Border:          resolve(RoleBorder).Hex(),
		Success:         resolve(RoleSuccess).Hex(),
		Error:           resolve(RoleError).Hex(),
		Warning:         resolve(RoleWarning).Hex(),
	}
}

// GeneratePaletteColors is GenerateColors for a built-in palette.
func GeneratePaletteColors(palette *Palette, darkMode bool) (*Colors, error) {
	set, err := palette.ColorSet()
	if err != nil {
		return nil, err
	}
	return GenerateColors(set, darkMode, nil), nil
}

// lighter and darker keep the configured text color when it suits that side
// of the contrast decision and otherwise fall back to white or black.
func lighter(text colorset.Color) colorset.Color {
	if colorset.BestTextColor(text) == colorset.Black {
		return text
	}
	return colorset.White
}

func darker(text colorset.Color) colorset.Color {
	if colorset.BestTextColor(text) == colorset.White {
		return text
	}
	return colorset.Black
}
