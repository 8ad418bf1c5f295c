// SPDX-License-Identifier: MIT
package colorset

import (
	"math"
	"sort"
	"sync"
)

// ColorSet is a thread-safe registry of named color pairs. Names that are not
// found in the set itself are looked up in its children, in the order they
// were added.
type ColorSet struct {
	mu       sync.RWMutex
	entries  map[string]*ColorPair
	children []*ColorSet
	accents  map[string]struct{}
	format   Format
}

// New returns an empty color set.
func New() *ColorSet {
	return &ColorSet{
		entries: make(map[string]*ColorPair),
		accents: make(map[string]struct{}),
		format:  FormatBinary,
	}
}

// Format returns the format the set was loaded from, or FormatBinary for sets
// built in memory.
func (s *ColorSet) Format() Format {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.format
}

// SetFormat changes the format used by WriteFile with FormatAuto.
func (s *ColorSet) SetFormat(f Format) {
	s.mu.Lock()
	s.format = f
	s.mu.Unlock()
}

// Count returns the number of colors defined in the set itself.
func (s *ColorSet) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Names returns the set's own color names, sorted.
func (s *ColorSet) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedNames()
}

func (s *ColorSet) sortedNames() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add stores a color under name unless the name is already taken.
// It reports whether the color was added.
func (s *ColorSet) Add(name string, color Color, variant *Color, lightnesses []LightnessPair) bool {
	return s.AddPair(name, NewColorPair(color, variant, lightnesses))
}

// Set stores a color under name, replacing any existing entry.
func (s *ColorSet) Set(name string, color Color, variant *Color, lightnesses []LightnessPair) {
	s.SetPair(name, NewColorPair(color, variant, lightnesses))
}

// AddPair is Add for a prebuilt pair.
func (s *ColorSet) AddPair(name string, pair ColorPair) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[name]; exists {
		return false
	}
	p := pair.Clone()
	s.entries[name] = &p
	return true
}

// SetPair is Set for a prebuilt pair.
func (s *ColorSet) SetPair(name string, pair ColorPair) {
	p := pair.Clone()

	s.mu.Lock()
	s.entries[name] = &p
	s.mu.Unlock()
}

// Remove deletes a color from the set itself. It reports whether it existed.
func (s *ColorSet) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[name]; !exists {
		return false
	}
	delete(s.entries, name)
	delete(s.accents, name)
	return true
}

// Entry returns the pair stored under name in this set, ignoring children
// and accent substitution.
func (s *ColorSet) Entry(name string) (ColorPair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.entries[name]
	if !ok {
		return ColorPair{}, false
	}
	return p.Clone(), true
}

// AddChild appends child to the lookup chain. Adding a set to itself is a
// no-op. Deeper cycles are tolerated: lookups visit each set at most once.
func (s *ColorSet) AddChild(child *ColorSet) {
	if child == nil || child == s {
		return
	}

	s.mu.Lock()
	s.children = append(s.children, child)
	s.mu.Unlock()
}

// Children returns the direct children in lookup order.
func (s *ColorSet) Children() []*ColorSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*ColorSet(nil), s.children...)
}

// UseAccentFor marks name to be replaced by the caller's accent color at
// lookup time.
func (s *ColorSet) UseAccentFor(name string) {
	s.mu.Lock()
	s.accents[name] = struct{}{}
	s.mu.Unlock()
}

// AccentNames returns the names marked for accent substitution, sorted.
func (s *ColorSet) AccentNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.accents))
	for name := range s.accents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the pair named name from this set or, failing that, from the
// first child that has it. When accent is non-nil and the name is marked with
// UseAccentFor, the primary color (and the variant, if there is one) is
// replaced by accent.
func (s *ColorSet) Lookup(name string, accent *Color) (ColorPair, bool) {
	return s.lookup(name, accent, make(map[*ColorSet]struct{}))
}

func (s *ColorSet) lookup(name string, accent *Color, visited map[*ColorSet]struct{}) (ColorPair, bool) {
	if _, seen := visited[s]; seen {
		return ColorPair{}, false
	}
	visited[s] = struct{}{}

	s.mu.RLock()
	entry, ok := s.entries[name]
	var pair ColorPair
	if ok {
		pair = entry.Clone()
	}
	_, accented := s.accents[name]
	children := append([]*ColorSet(nil), s.children...)
	s.mu.RUnlock()

	if ok {
		if accented && accent != nil {
			c := *accent
			pair.Color = &c
			if pair.Variant != nil {
				v := *accent
				pair.Variant = &v
			}
		}
		return pair, true
	}

	for _, child := range children {
		if p, found := child.lookup(name, accent, visited); found {
			return p, true
		}
	}

	return ColorPair{}, false
}

// Colors returns every color defined in the set itself, with accent
// substitution applied.
func (s *ColorSet) Colors(accent *Color) map[string]ColorPair {
	colors := make(map[string]ColorPair)
	for _, name := range s.Names() {
		if p, ok := s.Lookup(name, accent); ok {
			colors[name] = p
		}
	}
	return colors
}

// Resolve returns the concrete color for name.
//
// The name may carry a suffix after its last dot: an integer 0-100 selects
// that lightness percentage of the primary color, any other text selects a
// named lightness variant. In dark mode a requested lightness is swapped for
// its paired counterpart (or inverted when unpaired), and plain names prefer
// the dark-mode variant. A name containing a dot is only looked up as a
// whole when its base name is not found.
func (s *ColorSet) Resolve(name string, darkMode bool, accent *Color) (Color, bool) {
	q := parseName(name)
	pair, ok := s.Lookup(q.base, accent)
	if !ok {
		if q.base == name {
			return Color{}, false
		}
		q = nameQuery{base: name}
		if pair, ok = s.Lookup(name, accent); !ok {
			return Color{}, false
		}
	}

	if q.variant != "" {
		q.lightness, q.hasLightness = pair.NamedLightness(q.variant)
	}

	var current float64
	if pair.Color != nil {
		current = pair.Color.Lightness()
	}

	if q.hasLightness && math.Abs(current-q.lightness) > lightnessTolerance {
		if pair.Color == nil {
			return Color{}, false
		}
		l := q.lightness
		if darkMode {
			l = pair.DarkLightness(l)
		}
		return pair.Color.WithLightness(l), true
	}

	if darkMode && pair.Variant != nil {
		return *pair.Variant, true
	}
	if pair.Color == nil {
		return Color{}, false
	}
	return *pair.Color, true
}
