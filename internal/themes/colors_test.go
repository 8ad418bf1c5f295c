// SPDX-License-Identifier: MIT
package themes

import (
	"strings"
	"testing"

	"github.com/thatcatcamp/colorset/internal/colorset"
)

func mustPaletteColors(t *testing.T, name string, darkMode bool) *Colors {
	t.Helper()
	palette := GetPalette(name)
	if palette == nil {
		t.Fatalf("%s palette not found", name)
	}
	colors, err := GeneratePaletteColors(palette, darkMode)
	if err != nil {
		t.Fatalf("GeneratePaletteColors failed: %v", err)
	}
	return colors
}

func TestPaletteExists(t *testing.T) {
	if GetPalette("slate") == nil {
		t.Fatal("slate palette not found")
	}
	if GetPalette("plaid") != nil {
		t.Fatal("unknown palette should be nil")
	}
}

func TestGetPaletteReturnsCopy(t *testing.T) {
	p := GetPalette("slate")
	p.Primary = "#000000"
	if GetPalette("slate").Primary == "#000000" {
		t.Fatal("GetPalette should not expose the builtin table")
	}
}

func TestGenerateLightModeColors(t *testing.T) {
	colors := mustPaletteColors(t, "slate", false)

	if colors.Primary != "#64748B" {
		t.Errorf("expected light primary #64748B, got %s", colors.Primary)
	}
	if colors.Background != "#FFFFFF" {
		t.Errorf("expected white background, got %s", colors.Background)
	}
	if colors.Text != "#000000" {
		t.Errorf("expected black text, got %s", colors.Text)
	}
}

func TestGenerateDarkModeColors(t *testing.T) {
	colors := mustPaletteColors(t, "slate", true)

	if colors.Background != "#0F172A" {
		t.Errorf("expected dark background #0F172A, got %s", colors.Background)
	}
	if colors.Text != "#F1F5F9" {
		t.Errorf("expected light text #F1F5F9, got %s", colors.Text)
	}
	if colors.Primary == "#64748B" {
		t.Error("dark primary should be lifted")
	}
	if l := colorset.MustParseHex(colors.Primary).Lightness(); l < 0.64 {
		t.Errorf("dark primary lightness %v too low", l)
	}
}

func TestPrimaryContrast(t *testing.T) {
	navy := mustPaletteColors(t, "navy", false)
	if navy.PrimaryContrast != "#FFFFFF" {
		t.Errorf("navy needs white text, got %s", navy.PrimaryContrast)
	}

	amber := mustPaletteColors(t, "amber", false)
	if amber.PrimaryContrast != "#000000" {
		t.Errorf("amber needs black text, got %s", amber.PrimaryContrast)
	}
}

func TestHoverAndSubtleSwapInDarkMode(t *testing.T) {
	light := mustPaletteColors(t, "indigo", false)
	dark := mustPaletteColors(t, "indigo", true)

	if l := colorset.MustParseHex(light.PrimarySubtle).Lightness(); l < 0.9 {
		t.Errorf("light subtle should be pale, lightness %v", l)
	}
	if l := colorset.MustParseHex(dark.PrimarySubtle).Lightness(); l > 0.2 {
		t.Errorf("dark subtle should be deep, lightness %v", l)
	}
	if light.PrimaryHover == dark.PrimaryHover {
		t.Error("hover should differ between modes")
	}
}

func TestAccentReplacesPrimary(t *testing.T) {
	set, err := GetPalette("slate").ColorSet()
	if err != nil {
		t.Fatal(err)
	}
	accent := colorset.MustParseHex("#FF9800")

	for _, dark := range []bool{false, true} {
		colors := GenerateColors(set, dark, &accent)
		if colors.Primary != "#FF9800" {
			t.Errorf("dark=%v: expected accent primary, got %s", dark, colors.Primary)
		}
		if colors.Secondary != "#0F172A" && !dark {
			t.Errorf("secondary should not take the accent, got %s", colors.Secondary)
		}
	}
}

func TestGenerateColorsFallsBackToBase(t *testing.T) {
	set := colorset.New()
	set.Set(RolePrimary, colorset.MustParseHex("#3366CC"), nil, nil)

	colors := GenerateColors(set, false, nil)
	if colors.Primary != "#3366CC" {
		t.Errorf("expected primary #3366CC, got %s", colors.Primary)
	}
	if colors.Background != "#FFFFFF" || colors.Success != "#22C55E" {
		t.Errorf("expected base roles, got bg %s success %s", colors.Background, colors.Success)
	}
}

func TestTextAvoidsClashingBackground(t *testing.T) {
	set := colorset.New()
	set.Set(RoleBackground, colorset.Black, nil, nil)
	set.Set(RoleText, colorset.MustParseHex("#111111"), nil, nil)

	colors := GenerateColors(set, false, nil)
	if colors.Text != "#FFFFFF" {
		t.Errorf("dark text on black should become white, got %s", colors.Text)
	}
}

func TestListPalettes(t *testing.T) {
	palettes := ListPalettes()
	if len(palettes) < 12 {
		t.Errorf("expected at least 12 palettes, got %d", len(palettes))
	}
	if palettes[0].Name != "slate" {
		t.Errorf("expected slate first, got %s", palettes[0].Name)
	}
}

func TestPaletteNamesUnique(t *testing.T) {
	names := make(map[string]bool)
	for _, p := range ListPalettes() {
		if names[p.Name] {
			t.Errorf("duplicate palette name: %s", p.Name)
		}
		names[p.Name] = true
	}
}

func TestEveryPaletteBuilds(t *testing.T) {
	for _, p := range ListPalettes() {
		set, err := p.ColorSet()
		if err != nil {
			t.Errorf("%s: %v", p.Name, err)
			continue
		}
		for _, role := range []string{RolePrimary, RoleSecondary, RoleBackground, RoleWarning} {
			if _, ok := set.Resolve(role, true, nil); !ok {
				t.Errorf("%s: role %s missing", p.Name, role)
			}
		}
	}
}

func TestGeneratedColorsAreHex(t *testing.T) {
	colors := mustPaletteColors(t, "indigo", false)

	colorMap := map[string]string{
		"Primary":    colors.Primary,
		"Secondary":  colors.Secondary,
		"Background": colors.Background,
		"Surface":    colors.Surface,
		"Text":       colors.Text,
	}

	for name, color := range colorMap {
		if !strings.HasPrefix(color, "#") || len(color) != 7 {
			t.Errorf("%s should be #RRGGBB, got: %s", name, color)
		}
	}
}

func TestBadPaletteHex(t *testing.T) {
	p := &Palette{Name: "broken", Primary: "blue", Secondary: "#000000"}
	if _, err := p.ColorSet(); err == nil {
		t.Fatal("expected error for invalid primary")
	}
}
