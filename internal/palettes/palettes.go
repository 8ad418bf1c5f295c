// SPDX-License-Identifier: MIT

// Package palettes persists named color sets along with the links that make
// one palette fall back to another and the colors that take an accent.
package palettes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/thatcatcamp/colorset/internal/colorset"
	"github.com/thatcatcamp/colorset/internal/models"
	"github.com/thatcatcamp/colorset/internal/search"
)

// ErrNotFound is returned when no palette has the requested name.
var ErrNotFound = errors.New("palette not found")

// Store reads and writes palettes through gorm.
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewStore creates a store over an already migrated database.
func NewStore(db *gorm.DB, logger zerolog.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("palette name is required")
	}
	return name, nil
}

func notFound(name string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return fmt.Errorf("failed to look up palette %s: %w", name, err)
}

// Save encodes set and stores it under name, replacing any palette with the
// same name. FormatAuto keeps the set's own format. The set's accent markers
// replace the stored ones; child links are left alone.
func (s *Store) Save(name string, set *colorset.ColorSet, format colorset.Format) (*models.Palette, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if format == colorset.FormatAuto {
		format = set.Format()
	}

	data, err := set.Encode(format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode palette %s: %w", name, err)
	}

	var palette models.Palette
	err = s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("name = ?", name).First(&palette)
		switch {
		case result.Error == nil:
			palette.Format = format.String()
			palette.Data = data
			palette.ColorCount = set.Count()
			if err := tx.Save(&palette).Error; err != nil {
				return err
			}
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			palette = models.Palette{
				Name:       name,
				Format:     format.String(),
				Data:       data,
				ColorCount: set.Count(),
			}
			if err := tx.Create(&palette).Error; err != nil {
				return err
			}
		default:
			return result.Error
		}

		if err := tx.Where("palette_id = ?", palette.ID).Delete(&models.PaletteAccent{}).Error; err != nil {
			return err
		}
		for _, colorName := range set.AccentNames() {
			accent := models.PaletteAccent{PaletteID: palette.ID, ColorName: colorName}
			if err := tx.Create(&accent).Error; err != nil {
				return err
			}
		}
		return search.IndexPalette(tx, &palette)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save palette %s: %w", name, err)
	}

	s.logger.Info().
		Str("palette", name).
		Str("format", format.String()).
		Int("colors", palette.ColorCount).
		Msg("palette saved")
	return &palette, nil
}

// Get returns the stored palette record.
func (s *Store) Get(name string) (*models.Palette, error) {
	var palette models.Palette
	if err := s.db.Where("name = ?", name).First(&palette).Error; err != nil {
		return nil, notFound(name, err)
	}
	return &palette, nil
}

// List returns every stored palette ordered by name.
func (s *Store) List() ([]models.Palette, error) {
	var palettes []models.Palette
	if err := s.db.Order("name").Find(&palettes).Error; err != nil {
		return nil, fmt.Errorf("failed to list palettes: %w", err)
	}
	return palettes, nil
}

// Names returns every stored palette name, sorted.
func (s *Store) Names() ([]string, error) {
	var names []string
	if err := s.db.Model(&models.Palette{}).Order("name").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list palettes: %w", err)
	}
	return names, nil
}

// Delete removes a palette, its accent markers and every link to or from it.
func (s *Store) Delete(name string) error {
	palette, err := s.Get(name)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ? OR child_id = ?", palette.ID, palette.ID).Delete(&models.PaletteChild{}).Error; err != nil {
			return err
		}
		if err := tx.Where("palette_id = ?", palette.ID).Delete(&models.PaletteAccent{}).Error; err != nil {
			return err
		}
		if err := search.RemovePaletteFromIndex(tx, palette.ID); err != nil {
			return err
		}
		return tx.Delete(palette).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete palette %s: %w", name, err)
	}

	s.logger.Info().Str("palette", name).Msg("palette deleted")
	return nil
}

// Link appends child to parent's fallback chain. Linking a palette to itself
// is rejected; longer cycles are allowed and broken at load time.
func (s *Store) Link(parentName, childName string) error {
	parent, err := s.Get(parentName)
	if err != nil {
		return err
	}
	child, err := s.Get(childName)
	if err != nil {
		return err
	}
	if parent.ID == child.ID {
		return fmt.Errorf("palette %s cannot be its own child", parentName)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PaletteChild{}).
			Where("parent_id = ? AND child_id = ?", parent.ID, child.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%s is already a child of %s", childName, parentName)
		}

		var last models.PaletteChild
		if err := tx.Where("parent_id = ?", parent.ID).
			Order("position DESC").
			Limit(1).
			Find(&last).Error; err != nil {
			return err
		}
		position := 0
		if last.ID != 0 {
			position = last.Position + 1
		}

		return tx.Create(&models.PaletteChild{
			ParentID: parent.ID,
			ChildID:  child.ID,
			Position: position,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to link %s to %s: %w", childName, parentName, err)
	}

	s.logger.Info().Str("parent", parentName).Str("child", childName).Msg("palette linked")
	return nil
}

// Unlink removes child from parent's fallback chain.
func (s *Store) Unlink(parentName, childName string) error {
	parent, err := s.Get(parentName)
	if err != nil {
		return err
	}
	child, err := s.Get(childName)
	if err != nil {
		return err
	}

	result := s.db.Where("parent_id = ? AND child_id = ?", parent.ID, child.ID).Delete(&models.PaletteChild{})
	if result.Error != nil {
		return fmt.Errorf("failed to unlink %s from %s: %w", childName, parentName, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s is not a child of %s", childName, parentName)
	}
	return nil
}

// ChildNames returns the names of parent's direct children in lookup order.
func (s *Store) ChildNames(parentName string) ([]string, error) {
	parent, err := s.Get(parentName)
	if err != nil {
		return nil, err
	}

	var names []string
	err = s.db.Model(&models.PaletteChild{}).
		Select("palettes.name").
		Joins("JOIN palettes ON palettes.id = palette_children.child_id").
		Where("palette_children.parent_id = ?", parent.ID).
		Order("palette_children.position").
		Pluck("palettes.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list children of %s: %w", parentName, err)
	}
	return names, nil
}

// SetAccent marks colorName in the named palette for accent substitution.
func (s *Store) SetAccent(name, colorName string) error {
	palette, err := s.Get(name)
	if err != nil {
		return err
	}

	accent := models.PaletteAccent{PaletteID: palette.ID, ColorName: colorName}
	if err := s.db.Where(accent).FirstOrCreate(&accent).Error; err != nil {
		return fmt.Errorf("failed to mark accent %s on %s: %w", colorName, name, err)
	}
	return nil
}

// ClearAccent removes an accent marker.
func (s *Store) ClearAccent(name, colorName string) error {
	palette, err := s.Get(name)
	if err != nil {
		return err
	}

	if err := s.db.Where("palette_id = ? AND color_name = ?", palette.ID, colorName).
		Delete(&models.PaletteAccent{}).Error; err != nil {
		return fmt.Errorf("failed to clear accent %s on %s: %w", colorName, name, err)
	}
	return nil
}

// AccentNames returns the colors of the named palette marked for accent
// substitution, sorted.
func (s *Store) AccentNames(name string) ([]string, error) {
	palette, err := s.Get(name)
	if err != nil {
		return nil, err
	}

	var names []string
	if err := s.db.Model(&models.PaletteAccent{}).
		Where("palette_id = ?", palette.ID).
		Order("color_name").
		Pluck("color_name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list accents of %s: %w", name, err)
	}
	return names, nil
}

// SearchColors finds stored colors whose name contains query.
func (s *Store) SearchColors(query string) ([]search.SearchResult, error) {
	return search.Search(s.db, query)
}

// NearestColors finds the stored colors closest to target.
func (s *Store) NearestColors(target colorset.Color, limit int) ([]search.SearchResult, error) {
	return search.Nearest(s.db, target, limit)
}

// Reindex rebuilds the color search index from the stored palettes.
func (s *Store) Reindex() error {
	if err := search.RebuildIndex(s.db); err != nil {
		return err
	}
	s.logger.Info().Msg("color index rebuilt")
	return nil
}

// Load decodes the named palette and attaches its children, recursively.
// A child already on the current load path is skipped, so cyclic links
// produce a finite tree. A palette reached through several parents is
// decoded once and shared.
func (s *Store) Load(name string) (*colorset.ColorSet, error) {
	palette, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	l := &loader{store: s, path: make(map[uint]bool), loaded: make(map[uint]*colorset.ColorSet)}
	return l.load(palette)
}

type loader struct {
	store  *Store
	path   map[uint]bool
	loaded map[uint]*colorset.ColorSet
}

func (l *loader) load(palette *models.Palette) (*colorset.ColorSet, error) {
	if set, ok := l.loaded[palette.ID]; ok {
		return set, nil
	}

	s := l.store
	set, err := colorset.Parse(palette.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode palette %s: %w", palette.Name, err)
	}

	var accents []models.PaletteAccent
	if err := s.db.Where("palette_id = ?", palette.ID).Find(&accents).Error; err != nil {
		return nil, fmt.Errorf("failed to load accents of %s: %w", palette.Name, err)
	}
	for _, a := range accents {
		set.UseAccentFor(a.ColorName)
	}

	var links []models.PaletteChild
	if err := s.db.Where("parent_id = ?", palette.ID).Order("position").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load children of %s: %w", palette.Name, err)
	}

	l.path[palette.ID] = true
	defer delete(l.path, palette.ID)

	for _, link := range links {
		if l.path[link.ChildID] {
			s.logger.Warn().
				Str("palette", palette.Name).
				Uint("child_id", link.ChildID).
				Msg("skipping cyclic palette link")
			continue
		}

		childSet, ok := l.loaded[link.ChildID]
		if !ok {
			var child models.Palette
			if err := s.db.First(&child, link.ChildID).Error; err != nil {
				return nil, fmt.Errorf("failed to load child of %s: %w", palette.Name, err)
			}
			if childSet, err = l.load(&child); err != nil {
				return nil, err
			}
		}
		set.AddChild(childSet)
	}

	l.loaded[palette.ID] = set
	return set, nil
}
