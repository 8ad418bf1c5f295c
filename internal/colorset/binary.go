// SPDX-License-Identifier: MIT
package colorset

import "fmt"

const (
	// Magic is "COLORSET" in ASCII.
	Magic uint64 = 0x434F4C4F52534554

	VersionMajor uint32 = 1
	VersionMinor uint32 = 2
)

// versionAtMost reports whether (major, minor) <= (maxMajor, maxMinor).
func versionAtMost(major, minor, maxMajor, maxMinor uint32) bool {
	if major != maxMajor {
		return major < maxMajor
	}
	return minor <= maxMinor
}

// MarshalBinary encodes the set's own colors (not its children) in the
// binary colorset format. Entries are written in name order.
func (s *ColorSet) MarshalBinary() ([]byte, error) {
	s.mu.RLock()
	names := s.sortedNames()
	pairs := make([]ColorPair, len(names))
	for i, name := range names {
		pairs[i] = s.entries[name].Clone()
	}
	s.mu.RUnlock()

	var w StreamWriter
	w.WriteUint64(Magic)
	w.WriteUint32(VersionMajor)
	w.WriteUint32(VersionMinor)
	w.WriteUint64(uint64(len(names)))

	for i, name := range names {
		p := pairs[i]
		w.WriteString(name)
		w.WriteBool(p.Variant != nil)
		w.WriteColor(colorOrClear(p.Color))
		w.WriteColor(colorOrClear(p.Variant))
		w.WriteUint64(uint64(len(p.Lightnesses)))
		for _, lp := range p.Lightnesses {
			w.WriteFloat64(lp.Lightness1.Lightness)
			w.WriteString(lp.Lightness1.Name)
			w.WriteFloat64(lp.Lightness2.Lightness)
			w.WriteString(lp.Lightness2.Name)
		}
	}

	return w.Bytes(), nil
}

// FromBinary decodes binary colorset data. It never returns a partially
// populated set: any error yields nil.
func FromBinary(data []byte) (*ColorSet, error) {
	st := NewStream(data)

	magic, err := st.ReadUint64()
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, ErrBadMagic
	}

	major, err := st.ReadUint32()
	if err != nil {
		return nil, err
	}
	minor, err := st.ReadUint32()
	if err != nil {
		return nil, err
	}
	if major == 0 || !versionAtMost(major, minor, VersionMajor, VersionMinor) {
		return nil, fmt.Errorf("%w: %d.%d", ErrUnsupportedVersion, major, minor)
	}
	hasLightnesses := major > 1 || minor > 1

	n, err := st.ReadUint64()
	if err != nil {
		return nil, err
	}

	set := New()
	for i := uint64(0); i < n; i++ {
		name, pair, err := readEntry(st, hasLightnesses)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		set.AddPair(name, pair)
	}

	return set, nil
}

func readEntry(st *Stream, hasLightnesses bool) (string, ColorPair, error) {
	name, err := st.ReadString()
	if err != nil {
		return "", ColorPair{}, err
	}
	hasVariant, err := st.ReadBool()
	if err != nil {
		return "", ColorPair{}, err
	}
	color, err := st.ReadColor()
	if err != nil {
		return "", ColorPair{}, err
	}
	variant, err := st.ReadColor()
	if err != nil {
		return "", ColorPair{}, err
	}

	pair := ColorPair{Color: &color}
	if hasVariant {
		pair.Variant = &variant
	}

	if !hasLightnesses {
		return name, pair, nil
	}

	count, err := st.ReadUint64()
	if err != nil {
		return "", ColorPair{}, err
	}
	for j := uint64(0); j < count; j++ {
		var lp LightnessPair
		if lp.Lightness1, err = readLightness(st); err != nil {
			return "", ColorPair{}, err
		}
		if lp.Lightness2, err = readLightness(st); err != nil {
			return "", ColorPair{}, err
		}
		pair.Lightnesses = append(pair.Lightnesses, lp)
	}

	return name, pair, nil
}

func readLightness(st *Stream) (LightnessVariant, error) {
	l, err := st.ReadFloat64()
	if err != nil {
		return LightnessVariant{}, err
	}
	name, err := st.ReadString()
	if err != nil {
		return LightnessVariant{}, err
	}
	return LightnessVariant{Lightness: clamp01(l), Name: name}, nil
}

func colorOrClear(c *Color) Color {
	if c == nil {
		return Clear
	}
	return *c
}
