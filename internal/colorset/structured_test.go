// SPDX-License-Identifier: MIT
package colorset

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSameColors(t *testing.T, want, got *ColorSet) {
	t.Helper()

	require.Equal(t, want.Names(), got.Names())
	for _, name := range want.Names() {
		w, _ := want.Entry(name)
		g, ok := got.Entry(name)
		require.True(t, ok, name)

		require.NotNil(t, g.Color, name)
		assert.True(t, w.Color.Equal(*g.Color, 1e-9), "%s color: want %v got %v", name, w.Color, g.Color)

		require.Equal(t, w.HasVariant(), g.HasVariant(), name)
		if w.HasVariant() {
			assert.True(t, w.Variant.Equal(*g.Variant, 1e-9), "%s variant: want %v got %v", name, w.Variant, g.Variant)
		}

		require.Len(t, g.Lightnesses, len(w.Lightnesses), name)
		for i := range w.Lightnesses {
			assert.Equal(t, w.Lightnesses[i].Lightness1.Name, g.Lightnesses[i].Lightness1.Name)
			assert.Equal(t, w.Lightnesses[i].Lightness2.Name, g.Lightnesses[i].Lightness2.Name)
			assert.InDelta(t, w.Lightnesses[i].Lightness1.Lightness, g.Lightnesses[i].Lightness1.Lightness, 1e-12)
			assert.InDelta(t, w.Lightnesses[i].Lightness2.Lightness, g.Lightnesses[i].Lightness2.Lightness, 1e-12)
		}
	}
}

func TestPropertyListRoundTrip(t *testing.T) {
	set := fooSet()
	set.Set("Translucent", RGBA(0.2, 0.7, 0.3, 0.25), nil, []LightnessPair{
		NewLightnessPair("soft", 0.9, "deep", 0.1),
	})

	data, err := set.MarshalPropertyList()
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "<?xml"))
	assert.Contains(t, text, "<key>magic</key>")
	assert.Contains(t, text, "<key>lightness1</key>")
	assert.Contains(t, text, "<key>Translucent</key>")

	decoded, err := FromPropertyList(data)
	require.NoError(t, err)
	assertSameColors(t, set, decoded)
	assert.Equal(t, FormatXML, decoded.Format())
}

func TestJSONRoundTrip(t *testing.T) {
	set := fooSet()

	data, err := set.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"magic": 4850179227268629844`)

	decoded, err := FromJSON(data)
	require.NoError(t, err)
	assertSameColors(t, set, decoded)
	assert.Equal(t, FormatJSON, decoded.Format())
}

func TestStructuredStoresHSLA(t *testing.T) {
	set := New()
	set.Set("Red", RGBA(1, 0, 0, 0.5), nil, nil)

	data, err := set.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"l": 0.5`)
	assert.Contains(t, string(data), `"s": 1`)
	assert.NotContains(t, string(data), `"variant"`)
}

func structuredJSON(header string) []byte {
	return []byte(fmt.Sprintf(`{%s "colors": {"Red": {"color": {"h": 0, "s": 1, "l": 0.5, "a": 1}, "lightnesses": []}}}`, header))
}

func TestStructuredRejectsBadHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ``},
		{"missing minor", `"magic": 4850179227268629844, "major": 1,`},
		{"bad magic", `"magic": 1, "major": 1, "minor": 2,`},
		{"old minor", `"magic": 4850179227268629844, "major": 1, "minor": 1,`},
		{"newer major", `"magic": 4850179227268629844, "major": 2, "minor": 0,`},
		{"zero major", `"magic": 4850179227268629844, "major": 0, "minor": 9,`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := FromJSON(structuredJSON(tt.header))
			assert.ErrorIs(t, err, ErrInvalidDocument)
			assert.Nil(t, set)
		})
	}
}

func TestStructuredAcceptsCurrentVersion(t *testing.T) {
	set, err := FromJSON(structuredJSON(`"magic": 4850179227268629844, "major": 1, "minor": 2,`))
	require.NoError(t, err)

	c, ok := set.Resolve("Red", false, nil)
	require.True(t, ok)
	assert.True(t, c.Equal(RGBA(1, 0, 0, 1), 1e-9))
}

func TestFromPropertyListRejectsGarbage(t *testing.T) {
	set, err := FromPropertyList([]byte("<?xml version=\"1.0\"?><plist><array></array></plist>"))
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Nil(t, set)
}
