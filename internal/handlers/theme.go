// SPDX-License-Identifier: MIT
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/thatcatcamp/colorset/internal/colorset"
	"github.com/thatcatcamp/colorset/internal/themes"
)

var namePolicy = bluemonday.StrictPolicy()

// ThemeCSS serves the palette's theme stylesheet. With all=true it lists a
// custom property for every color instead of the semantic roles.
func (h *Handler) ThemeCSS(c *gin.Context) {
	dark, accent, ok := appearance(c)
	if !ok {
		return
	}
	set, ok := h.loadSet(c)
	if !ok {
		return
	}

	var css string
	if c.Query("all") == "true" {
		css = themes.GenerateSetCSS(set, dark, accent)
	} else {
		css = themes.GenerateCSS(themes.GenerateColors(set, dark, accent))
	}

	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(css))
}

// Swatches renders an HTML table of every color in light and dark mode.
func (h *Handler) Swatches(c *gin.Context) {
	_, accent, ok := appearance(c)
	if !ok {
		return
	}
	set, ok := h.loadSet(c)
	if !ok {
		return
	}

	title := namePolicy.Sanitize(c.Param("name"))

	var rows strings.Builder
	for _, name := range themes.AllNames(set) {
		light, lok := set.Resolve(name, false, accent)
		dark, dok := set.Resolve(name, true, accent)
		if !lok || !dok {
			continue
		}
		fmt.Fprintf(&rows, "\t<tr><td>%s</td>%s%s</tr>\n",
			namePolicy.Sanitize(name), swatchCell(light), swatchCell(dark))
	}

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>%s</title>
	<style>
		body { font-family: system-ui, sans-serif; margin: 40px; }
		table { border-collapse: collapse; }
		td, th { padding: 8px 16px; border: 1px solid #e5e7eb; text-align: left; }
		.swatch { font-family: monospace; min-width: 140px; }
	</style>
</head>
<body>
<h1>%s</h1>
<table>
	<tr><th>Name</th><th>Light</th><th>Dark</th></tr>
%s</table>
</body>
</html>
`, title, title, rows.String())

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func swatchCell(color colorset.Color) string {
	text := colorset.BestTextColor(color)
	return fmt.Sprintf(`<td class="swatch" style="background:%s;color:%s">%s</td>`,
		color.CSS(), text.Hex(), color.Hex())
}
