// SPDX-License-Identifier: MIT
package models

import (
	"time"
)

// Palette is a stored color set. Data holds the encoded set in Format.
type Palette struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:191;not null"`
	Format      string `gorm:"not null;default:binary"` // "binary", "xml" or "json"
	Data        []byte `gorm:"not null"`
	ColorCount  int    `gorm:"not null;default:0"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PaletteChild links a palette to a child palette it falls back to.
// Children are searched in ascending Position.
type PaletteChild struct {
	ID        uint `gorm:"primaryKey"`
	ParentID  uint `gorm:"not null;uniqueIndex:idx_palette_child"`
	ChildID   uint `gorm:"not null;uniqueIndex:idx_palette_child"`
	Position  int  `gorm:"not null"`
	CreatedAt time.Time
}

// PaletteAccent marks a color of a palette for accent substitution.
type PaletteAccent struct {
	ID        uint   `gorm:"primaryKey"`
	PaletteID uint   `gorm:"not null;uniqueIndex:idx_palette_accent"`
	ColorName string `gorm:"not null;size:191;uniqueIndex:idx_palette_accent"`
	CreatedAt time.Time
}

// PaletteColor is a search index row for one color of a palette. Channels
// are the primary color in 0..1.
type PaletteColor struct {
	ID        uint   `gorm:"primaryKey"`
	PaletteID uint   `gorm:"not null;index"`
	Name      string `gorm:"not null;size:191;index"`
	Hex       string `gorm:"not null;size:9"`
	R         float64
	G         float64
	B         float64
	Lightness float64
}

// TableName overrides for consistent naming
func (Palette) TableName() string {
	return "palettes"
}

func (PaletteChild) TableName() string {
	return "palette_children"
}

func (PaletteAccent) TableName() string {
	return "palette_accents"
}

func (PaletteColor) TableName() string {
	return "palette_colors"
}

// All returns every model, in migration order.
func All() []interface{} {
	return []interface{}{&Palette{}, &PaletteChild{}, &PaletteAccent{}, &PaletteColor{}}
}
