// SPDX-License-Identifier: MIT
package palettefile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadPalette reads a single palette from disk.
func LoadPalette(path string) (*Palette, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("palette path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette %s: %w", path, err)
	}

	palette, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse palette %s: %w", path, err)
	}
	palette.Source = path
	if palette.Name == "" {
		palette.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return palette, nil
}

// LoadPalettesFromDir loads every .yaml/.yml palette in dir, sorted by name.
// A missing directory yields no palettes.
func LoadPalettesFromDir(dir string) ([]*Palette, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Palette{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Palette{}, nil
		}
		return nil, fmt.Errorf("read palettes dir %s: %w", dir, err)
	}

	palettes := make([]*Palette, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		palette, err := LoadPalette(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		palettes = append(palettes, palette)
	}

	sort.Slice(palettes, func(i, j int) bool {
		return palettes[i].Name < palettes[j].Name
	})

	return palettes, nil
}

// Parse decodes and validates a YAML palette.
func Parse(data []byte) (*Palette, error) {
	var palette Palette
	if err := yaml.Unmarshal(data, &palette); err != nil {
		return nil, err
	}

	palette.Name = strings.TrimSpace(palette.Name)
	if err := palette.Validate(); err != nil {
		return nil, err
	}

	return &palette, nil
}

// Marshal encodes the palette as YAML.
func (p *Palette) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}
