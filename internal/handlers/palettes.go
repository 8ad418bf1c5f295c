// SPDX-License-Identifier: MIT
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/thatcatcamp/colorset/internal/colorset"
	"github.com/thatcatcamp/colorset/internal/palettes"
	"github.com/thatcatcamp/colorset/internal/search"
)

// PaletteSource is the read side of the palette store.
type PaletteSource interface {
	Names() ([]string, error)
	Load(name string) (*colorset.ColorSet, error)
	SearchColors(query string) ([]search.SearchResult, error)
	NearestColors(target colorset.Color, limit int) ([]search.SearchResult, error)
}

// Handler serves stored palettes over HTTP.
type Handler struct {
	source PaletteSource
	logger zerolog.Logger
}

// NewHandler creates a handler over source.
func NewHandler(source PaletteSource, logger zerolog.Logger) *Handler {
	return &Handler{source: source, logger: logger}
}

// colorResponse is the JSON body of a resolved color.
type colorResponse struct {
	Name  string        `json:"name"`
	Hex   string        `json:"hex"`
	RGBA  string        `json:"rgba"`
	Color colorChannels `json:"color"`
}

type colorChannels struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Health reports that the server is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListPalettes returns the stored palette names.
func (h *Handler) ListPalettes(c *gin.Context) {
	names, err := h.source.Names()
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list palettes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list palettes"})
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"palettes": names})
}

// GetPalette returns a palette's own colors, as a JSON document unless the
// format query parameter asks for xml or binary.
func (h *Handler) GetPalette(c *gin.Context) {
	set, ok := h.loadSet(c)
	if !ok {
		return
	}

	format := colorset.FormatJSON
	if q := c.Query("format"); q != "" {
		f, err := colorset.ParseFormat(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if f != colorset.FormatAuto {
			format = f
		}
	}

	data, err := set.Encode(format)
	if err != nil {
		h.logger.Error().Err(err).Str("palette", c.Param("name")).Msg("failed to encode palette")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode palette"})
		return
	}
	c.Data(http.StatusOK, format.ContentType(), data)
}

// ResolveColor resolves one color name, including lightness suffixes such as
// "Primary.80" or "Primary.hover".
func (h *Handler) ResolveColor(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("color"), "/")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "color name is required"})
		return
	}

	dark, accent, ok := appearance(c)
	if !ok {
		return
	}

	set, ok := h.loadSet(c)
	if !ok {
		return
	}

	color, found := set.Resolve(name, dark, accent)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "color not found", "name": name})
		return
	}

	c.JSON(http.StatusOK, colorResponse{
		Name:  name,
		Hex:   color.Hex(),
		RGBA:  color.CSS(),
		Color: colorChannels{R: color.R, G: color.G, B: color.B, A: color.A},
	})
}

// loadSet loads the palette named by the route, writing the error response
// itself when that fails.
func (h *Handler) loadSet(c *gin.Context) (*colorset.ColorSet, bool) {
	name := c.Param("name")
	set, err := h.source.Load(name)
	if err != nil {
		if errors.Is(err, palettes.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "palette not found", "palette": name})
			return nil, false
		}
		h.logger.Error().Err(err).Str("palette", name).Msg("failed to load palette")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load palette"})
		return nil, false
	}
	return set, true
}

// appearance reads the dark and accent query parameters.
func appearance(c *gin.Context) (bool, *colorset.Color, bool) {
	dark := false
	if q := c.Query("dark"); q != "" {
		v, err := strconv.ParseBool(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dark must be true or false"})
			return false, nil, false
		}
		dark = v
	}

	var accent *colorset.Color
	if q := c.Query("accent"); q != "" {
		a, err := colorset.ParseHex(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "accent must be a hex color"})
			return false, nil, false
		}
		accent = &a
	}

	return dark, accent, true
}

// SearchColors finds stored colors by name with q, or by similarity with
// near (a hex color) and an optional limit.
func (h *Handler) SearchColors(c *gin.Context) {
	var (
		results []search.SearchResult
		err     error
	)

	switch {
	case c.Query("near") != "":
		target, perr := colorset.ParseHex(c.Query("near"))
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "near must be a hex color"})
			return
		}
		limit := 10
		if q := c.Query("limit"); q != "" {
			n, perr := strconv.Atoi(q)
			if perr != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			limit = n
		}
		results, err = h.source.NearestColors(target, limit)
	case c.Query("q") != "":
		results, err = h.source.SearchColors(c.Query("q"))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "q or near is required"})
		return
	}

	if err != nil {
		h.logger.Error().Err(err).Msg("color search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	if results == nil {
		results = []search.SearchResult{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
