// SPDX-License-Identifier: MIT
package themes

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/thatcatcamp/colorset/internal/colorset"
)

// GenerateCSS generates CSS with color variables from colors struct
func GenerateCSS(colors *Colors) string {
	return fmt.Sprintf(`:root {
  --color-primary: %s;
  --color-primary-contrast: %s;
  --color-primary-hover: %s;
  --color-primary-subtle: %s;
  --color-accent: var(--color-primary);
  --color-accent-contrast: var(--color-primary-contrast);
  --color-secondary: %s;
  --color-bg: %s;
  --color-surface: %s;
  --color-text: %s;
  --color-text-muted: %s;
  --color-border: %s;
  --color-success: %s;
  --color-error: %s;
  --color-warning: %s;
}

body {
  background-color: var(--color-bg);
  color: var(--color-text);
}

a {
  color: var(--color-primary);
}

a:hover {
  color: var(--color-primary-hover);
}

button, .btn {
  background-color: var(--color-primary);
  color: var(--color-primary-contrast);
  border: none;
  border-radius: 4px;
}

button:hover, .btn:hover {
  background-color: var(--color-primary-hover);
}

.card, .surface {
  background-color: var(--color-surface);
  border: 1px solid var(--color-border);
}

.highlight {
  background-color: var(--color-primary-subtle);
}

.text-muted, .muted {
  color: var(--color-text-muted);
}

.success { color: var(--color-success); }
.error, .danger { color: var(--color-error); }
.warning { color: var(--color-warning); }
`, colors.Primary, colors.PrimaryContrast, colors.PrimaryHover, colors.PrimarySubtle,
		colors.Secondary, colors.Background, colors.Surface, colors.Text, colors.TextMuted,
		colors.Border, colors.Success, colors.Error, colors.Warning)
}

// GenerateSetCSS emits one custom property per color reachable from set,
// including its children, resolved for the given mode. Names that appear in
// more than one set use the first definition, matching lookup order.
// Names with no letters or digits are skipped.
func GenerateSetCSS(set *colorset.ColorSet, darkMode bool, accent *colorset.Color) string {
	names := AllNames(set)
	properties := UniqueVariableNames(names)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, name := range names {
		property, ok := properties[name]
		if !ok {
			continue
		}
		c, ok := set.Resolve(name, darkMode, accent)
		if !ok {
			continue
		}
		value := c.Hex()
		if c.A < 1 {
			value = c.CSS()
		}
		fmt.Fprintf(&b, "  --%s: %s;\n", property, value)
	}
	b.WriteString("}\n")
	return b.String()
}

// AllNames lists the color names defined in set and its descendants, sorted.
func AllNames(set *colorset.ColorSet) []string {
	seen := make(map[string]struct{})
	visited := make(map[*colorset.ColorSet]struct{})

	var walk func(s *colorset.ColorSet)
	walk = func(s *colorset.ColorSet) {
		if _, ok := visited[s]; ok {
			return
		}
		visited[s] = struct{}{}
		for _, name := range s.Names() {
			seen[name] = struct{}{}
		}
		for _, child := range s.Children() {
			walk(child)
		}
	}
	walk(set)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VariableName converts a color name such as "TextMuted" or "Brand Blue.80"
// into a CSS custom property name ("text-muted", "brand-blue-80").
func VariableName(name string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		switch {
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevLower = true
		default:
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
			prevLower = false
		}
	}
	return strings.Trim(b.String(), "-")
}

// UniqueVariableNames maps each name to a distinct property name, in the
// order given. Later names that collide get a numeric suffix ("foo-bar-2");
// names with an empty property are left out.
func UniqueVariableNames(names []string) map[string]string {
	properties := make(map[string]string, len(names))
	used := make(map[string]bool, len(names))
	for _, name := range names {
		base := VariableName(name)
		if base == "" {
			continue
		}
		property := base
		for n := 2; used[property]; n++ {
			property = fmt.Sprintf("%s-%d", base, n)
		}
		used[property] = true
		properties[name] = property
	}
	return properties
}
