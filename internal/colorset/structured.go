// SPDX-License-Identifier: MIT
package colorset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"howett.net/plist"
)

// Structured documents store colors as HSLA rather than RGBA, so a round trip
// reproduces colors only to floating-point precision.
type document struct {
	Magic  *uint64                 `plist:"magic" json:"magic"`
	Major  *uint64                 `plist:"major" json:"major"`
	Minor  *uint64                 `plist:"minor" json:"minor"`
	Colors map[string]pairDocument `plist:"colors" json:"colors"`
}

type pairDocument struct {
	Color       *hslaDocument           `plist:"color,omitempty" json:"color,omitempty"`
	Variant     *hslaDocument           `plist:"variant,omitempty" json:"variant,omitempty"`
	Lightnesses []lightnessPairDocument `plist:"lightnesses" json:"lightnesses"`
}

type hslaDocument struct {
	H float64 `plist:"h" json:"h"`
	S float64 `plist:"s" json:"s"`
	L float64 `plist:"l" json:"l"`
	A float64 `plist:"a" json:"a"`
}

type lightnessPairDocument struct {
	Lightness1 lightnessDocument `plist:"lightness1" json:"lightness1"`
	Lightness2 lightnessDocument `plist:"lightness2" json:"lightness2"`
}

type lightnessDocument struct {
	Lightness float64 `plist:"lightness" json:"lightness"`
	Name      string  `plist:"name" json:"name"`
}

// The structured form gained lightness pairs in 1.2 and has no older layout.
const minStructuredMinor uint32 = 2

func (s *ColorSet) toDocument() document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	magic, major, minor := Magic, uint64(VersionMajor), uint64(VersionMinor)
	doc := document{
		Magic:  &magic,
		Major:  &major,
		Minor:  &minor,
		Colors: make(map[string]pairDocument, len(s.entries)),
	}

	for name, p := range s.entries {
		pd := pairDocument{
			Color:       toHSLADocument(p.Color),
			Variant:     toHSLADocument(p.Variant),
			Lightnesses: make([]lightnessPairDocument, 0, len(p.Lightnesses)),
		}
		for _, lp := range p.Lightnesses {
			pd.Lightnesses = append(pd.Lightnesses, lightnessPairDocument{
				Lightness1: lightnessDocument{Lightness: lp.Lightness1.Lightness, Name: lp.Lightness1.Name},
				Lightness2: lightnessDocument{Lightness: lp.Lightness2.Lightness, Name: lp.Lightness2.Name},
			})
		}
		doc.Colors[name] = pd
	}

	return doc
}

func toHSLADocument(c *Color) *hslaDocument {
	if c == nil {
		return nil
	}
	h, s, l, a := c.HSL()
	return &hslaDocument{H: h, S: s, L: l, A: a}
}

func (d *hslaDocument) color() *Color {
	if d == nil {
		return nil
	}
	c := HSLA(d.H, d.S, d.L, d.A)
	return &c
}

func fromDocument(doc document, format Format) (*ColorSet, error) {
	if doc.Magic == nil || doc.Major == nil || doc.Minor == nil {
		return nil, fmt.Errorf("%w: missing header", ErrInvalidDocument)
	}
	if *doc.Magic != Magic {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidDocument)
	}

	major, minor := *doc.Major, *doc.Minor
	if major > uint64(VersionMajor) || minor > 0xFFFFFFFF ||
		versionAtMost(uint32(major), uint32(minor), VersionMajor, minStructuredMinor-1) {
		return nil, fmt.Errorf("%w: unsupported version %d.%d", ErrInvalidDocument, major, minor)
	}

	set := New()
	set.format = format
	for name, pd := range doc.Colors {
		pair := ColorPair{
			Color:   pd.Color.color(),
			Variant: pd.Variant.color(),
		}
		for _, lp := range pd.Lightnesses {
			pair.Lightnesses = append(pair.Lightnesses, NewLightnessPair(
				lp.Lightness1.Name, lp.Lightness1.Lightness,
				lp.Lightness2.Name, lp.Lightness2.Lightness,
			))
		}
		set.entries[name] = &pair
	}

	return set, nil
}

// MarshalPropertyList encodes the set as an XML property list.
func (s *ColorSet) MarshalPropertyList() ([]byte, error) {
	data, err := plist.MarshalIndent(s.toDocument(), plist.XMLFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to encode property list: %w", err)
	}
	return data, nil
}

// FromPropertyList decodes a property list in any encoding the plist package
// understands (XML, binary or OpenStep).
func FromPropertyList(data []byte) (*ColorSet, error) {
	var doc document
	if _, err := plist.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return fromDocument(doc, FormatXML)
}

// MarshalJSON encodes the set as the JSON form of the structured document.
func (s *ColorSet) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(s.toDocument(), "", "  ")
}

// FromJSON decodes the JSON form of the structured document.
func FromJSON(data []byte) (*ColorSet, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return fromDocument(doc, FormatJSON)
}
