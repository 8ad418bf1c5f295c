// SPDX-License-Identifier: MIT
package colorset

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(major, minor uint32, count uint64) *StreamWriter {
	var w StreamWriter
	w.WriteUint64(Magic)
	w.WriteUint32(major)
	w.WriteUint32(minor)
	w.WriteUint64(count)
	return &w
}

func TestBinaryRoundTrip(t *testing.T) {
	set := fooSet()
	set.Set("Clear", Clear, nil, []LightnessPair{
		NewLightnessPair("a", 0.1, "b", 0.9),
		NewLightnessPair("c", 0.3, "d", 0.7),
	})

	data, err := set.MarshalBinary()
	require.NoError(t, err)

	decoded, err := FromBinary(data)
	require.NoError(t, err)
	assert.Equal(t, set.Names(), decoded.Names())

	for _, name := range set.Names() {
		want, _ := set.Entry(name)
		got, ok := decoded.Entry(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestBinaryRoundTripEmpty(t *testing.T) {
	data, err := New().MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, 24)

	decoded, err := FromBinary(data)
	require.NoError(t, err)
	assert.Equal(t, 0, decoded.Count())
}

func TestBinaryHeader(t *testing.T) {
	data, err := New().MarshalBinary()
	require.NoError(t, err)

	assert.Equal(t, []byte("TESROLOC"), data[:8])
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(data[8:]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[12:]))
	assert.Equal(t, uint64(0), binary.LittleEndian.Uint64(data[16:]))
}

func TestBinaryEntryLayout(t *testing.T) {
	set := New()
	set.Set("ab", RGBA(1, 0.5, 0, 1), nil, nil)

	data, err := set.MarshalBinary()
	require.NoError(t, err)

	st := NewStream(data[24:])
	n, err := st.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n, "length counts the NUL")

	name, err := st.ReadBytes(n)
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 'b', 0}, name)

	hasVariant, err := st.ReadBool()
	require.NoError(t, err)
	assert.False(t, hasVariant)

	color, err := st.ReadColor()
	require.NoError(t, err)
	assert.Equal(t, RGBA(1, 0.5, 0, 1), color)

	variant, err := st.ReadColor()
	require.NoError(t, err)
	assert.Equal(t, Clear, variant)

	count, err := st.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
	assert.Equal(t, 0, st.Remaining())
}

func TestBinaryRejectsUnsupportedVersions(t *testing.T) {
	for _, v := range [][2]uint32{{2, 0}, {0, 5}, {1, 3}, {0, 0}} {
		data := header(v[0], v[1], 0).Bytes()
		set, err := FromBinary(data)
		assert.ErrorIs(t, err, ErrUnsupportedVersion, "version %d.%d", v[0], v[1])
		assert.ErrorIs(t, err, ErrFormat)
		assert.Nil(t, set)
	}
}

func TestBinaryVersionWithoutLightnesses(t *testing.T) {
	w := header(1, 1, 1)
	w.WriteString("Old")
	w.WriteBool(true)
	w.WriteColor(RGBA(0.2, 0.4, 0.6, 1))
	w.WriteColor(RGBA(0.8, 0.6, 0.4, 1))

	set, err := FromBinary(w.Bytes())
	require.NoError(t, err)

	p, ok := set.Entry("Old")
	require.True(t, ok)
	assert.Equal(t, RGBA(0.2, 0.4, 0.6, 1), *p.Color)
	require.True(t, p.HasVariant())
	assert.Equal(t, RGBA(0.8, 0.6, 0.4, 1), *p.Variant)
	assert.Empty(t, p.Lightnesses)
}

func TestBinaryTruncated(t *testing.T) {
	data, err := fooSet().MarshalBinary()
	require.NoError(t, err)

	for i := 0; i < len(data); i++ {
		set, err := FromBinary(data[:i])
		require.ErrorIs(t, err, ErrTruncated, "prefix of %d bytes", i)
		require.Nil(t, set)
	}
}

func TestBinaryHugeLengthIsTruncated(t *testing.T) {
	w := header(1, 2, 1)
	w.WriteUint64(math.MaxUint64)

	set, err := FromBinary(w.Bytes())
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Nil(t, set)
}

func TestBinaryBadMagic(t *testing.T) {
	data, err := fooSet().MarshalBinary()
	require.NoError(t, err)
	data[0] ^= 0xFF

	set, err := FromBinary(data)
	assert.ErrorIs(t, err, ErrBadMagic)
	assert.Nil(t, set)
}

func TestBinaryClampsOutOfRangeValues(t *testing.T) {
	w := header(1, 2, 1)
	w.WriteString("Wild")
	w.WriteBool(false)
	w.WriteColor(Color{R: 2, G: -1, B: 0.5, A: 9})
	w.WriteColor(Clear)
	w.WriteUint64(1)
	w.WriteFloat64(1.5)
	w.WriteString("up")
	w.WriteFloat64(-0.5)
	w.WriteString("down")

	set, err := FromBinary(w.Bytes())
	require.NoError(t, err)

	p, ok := set.Entry("Wild")
	require.True(t, ok)
	assert.Equal(t, Color{R: 1, G: 0, B: 0.5, A: 1}, *p.Color)
	assert.False(t, p.HasVariant())
	assert.Equal(t, []LightnessPair{NewLightnessPair("up", 1, "down", 0)}, p.Lightnesses)
}

func TestBinaryStringWithoutTerminator(t *testing.T) {
	w := header(1, 2, 1)
	w.WriteUint64(3)
	w.WriteUint8('a')
	w.WriteUint8('b')
	w.WriteUint8('c')
	w.WriteBool(false)
	w.WriteColor(White)
	w.WriteColor(Clear)
	w.WriteUint64(0)

	set, err := FromBinary(w.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, set.Names())
}

func TestBinaryDuplicateNamesKeepFirst(t *testing.T) {
	w := header(1, 2, 2)
	for _, c := range []Color{White, Black} {
		w.WriteString("dup")
		w.WriteBool(false)
		w.WriteColor(c)
		w.WriteColor(Clear)
		w.WriteUint64(0)
	}

	set, err := FromBinary(w.Bytes())
	require.NoError(t, err)

	p, ok := set.Entry("dup")
	require.True(t, ok)
	assert.Equal(t, White, *p.Color)
}

func TestBinaryIsDeterministic(t *testing.T) {
	a := New()
	b := New()
	names := []string{"zeta", "alpha", "mid", "beta"}
	for i, name := range names {
		a.Set(name, RGBA(float64(i)/4, 0, 0, 1), nil, nil)
	}
	for i := len(names) - 1; i >= 0; i-- {
		b.Set(names[i], RGBA(float64(i)/4, 0, 0, 1), nil, nil)
	}

	da, err := a.MarshalBinary()
	require.NoError(t, err)
	db, err := b.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, da, db)
}
