// SPDX-License-Identifier: MIT

// Package search indexes the colors of stored palettes so they can be found
// by name or by similarity to a given color.
package search

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/thatcatcamp/colorset/internal/colorset"
	"github.com/thatcatcamp/colorset/internal/models"
)

// MaxResults caps the number of results any search returns.
const MaxResults = 50

// IndexPalette replaces the index rows of a palette with its own colors.
func IndexPalette(db *gorm.DB, palette *models.Palette) error {
	set, err := colorset.Parse(palette.Data)
	if err != nil {
		return fmt.Errorf("failed to decode palette %s: %w", palette.Name, err)
	}

	if err := RemovePaletteFromIndex(db, palette.ID); err != nil {
		return err
	}

	names := set.Names()
	if len(names) == 0 {
		return nil
	}

	rows := make([]models.PaletteColor, 0, len(names))
	for _, name := range names {
		pair, ok := set.Entry(name)
		if !ok || pair.Color == nil {
			continue
		}
		c := *pair.Color
		rows = append(rows, models.PaletteColor{
			PaletteID: palette.ID,
			Name:      name,
			Hex:       c.Hex(),
			R:         c.R,
			G:         c.G,
			B:         c.B,
			Lightness: c.Lightness(),
		})
	}

	if len(rows) == 0 {
		return nil
	}
	if err := db.CreateInBatches(rows, 100).Error; err != nil {
		return fmt.Errorf("failed to insert index entries: %w", err)
	}
	return nil
}

// RemovePaletteFromIndex removes a palette's rows from the index
func RemovePaletteFromIndex(db *gorm.DB, paletteID uint) error {
	if err := db.Where("palette_id = ?", paletteID).Delete(&models.PaletteColor{}).Error; err != nil {
		return fmt.Errorf("failed to remove from index: %w", err)
	}
	return nil
}

// RebuildIndex reindexes every stored palette
func RebuildIndex(db *gorm.DB) error {
	if err := db.Where("1 = 1").Delete(&models.PaletteColor{}).Error; err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}

	var palettes []models.Palette
	if err := db.Find(&palettes).Error; err != nil {
		return fmt.Errorf("failed to load palettes: %w", err)
	}

	for i := range palettes {
		if err := IndexPalette(db, &palettes[i]); err != nil {
			return fmt.Errorf("failed to index palette %s: %w", palettes[i].Name, err)
		}
	}
	return nil
}

// SearchResult is one indexed color. Distance is only set by Nearest.
type SearchResult struct {
	Palette  string  `json:"palette"`
	Color    string  `json:"color"`
	Hex      string  `json:"hex"`
	Distance float64 `json:"distance,omitempty"`
}

type indexedColor struct {
	models.PaletteColor
	PaletteName string
}

func (c indexedColor) result() SearchResult {
	return SearchResult{Palette: c.PaletteName, Color: c.Name, Hex: c.Hex}
}

func indexQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&models.PaletteColor{}).
		Select("palette_colors.*, palettes.name AS palette_name").
		Joins("JOIN palettes ON palettes.id = palette_colors.palette_id")
}

// Search finds colors whose name contains query, case-insensitively.
func Search(db *gorm.DB, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}, nil
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	var rows []indexedColor
	err := indexQuery(db).
		Where("LOWER(palette_colors.name) LIKE ? ESCAPE '!'", pattern).
		Order("palettes.name, palette_colors.name").
		Limit(MaxResults).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}

	results := make([]SearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, row.result())
	}
	return results, nil
}

// Nearest returns up to limit indexed colors closest to target, measured as
// straight-line distance in RGB space.
func Nearest(db *gorm.DB, target colorset.Color, limit int) ([]SearchResult, error) {
	if limit <= 0 || limit > MaxResults {
		limit = MaxResults
	}

	var rows []indexedColor
	if err := indexQuery(db).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}

	results := make([]SearchResult, 0, len(rows))
	for _, row := range rows {
		r := row.result()
		r.Distance = math.Sqrt(
			square(row.R-target.R) + square(row.G-target.G) + square(row.B-target.B))
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		if results[i].Palette != results[j].Palette {
			return results[i].Palette < results[j].Palette
		}
		return results[i].Color < results[j].Color
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func square(v float64) float64 { return v * v }

// escapeLike escapes LIKE wildcards with '!' so they match literally.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
