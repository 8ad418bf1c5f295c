// SPDX-License-Identifier: MIT
package colorset

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Stream reads colorset binary data. All integers and floats are little-endian.
type Stream struct {
	data []byte
	pos  int
}

// NewStream creates a stream over data.
func NewStream(data []byte) *Stream {
	return &Stream{data: data}
}

// Position returns the current read position.
func (s *Stream) Position() int { return s.pos }

// Remaining returns bytes left to read.
func (s *Stream) Remaining() int { return len(s.data) - s.pos }

// ReadBytes reads n bytes into a new slice.
func (s *Stream) ReadBytes(n uint64) ([]byte, error) {
	if n > uint64(s.Remaining()) {
		return nil, ErrTruncated
	}
	out := make([]byte, n)
	copy(out, s.data[s.pos:s.pos+int(n)])
	s.pos += int(n)
	return out, nil
}

// ReadUint8 reads a single byte.
func (s *Stream) ReadUint8() (uint8, error) {
	if s.Remaining() < 1 {
		return 0, ErrTruncated
	}
	v := s.data[s.pos]
	s.pos++
	return v, nil
}

// ReadUint32 reads a little-endian uint32.
func (s *Stream) ReadUint32() (uint32, error) {
	if s.Remaining() < 4 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint32(s.data[s.pos:])
	s.pos += 4
	return v, nil
}

// ReadUint64 reads a little-endian uint64.
func (s *Stream) ReadUint64() (uint64, error) {
	if s.Remaining() < 8 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint64(s.data[s.pos:])
	s.pos += 8
	return v, nil
}

// ReadFloat64 reads an IEEE 754 double.
func (s *Stream) ReadFloat64() (float64, error) {
	v, err := s.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadBool reads a single byte; any non-zero value is true.
func (s *Stream) ReadBool() (bool, error) {
	v, err := s.ReadUint8()
	return v != 0, err
}

// ReadString reads a length-prefixed string. The length counts a trailing NUL,
// which is stripped when present.
func (s *Stream) ReadString() (string, error) {
	n, err := s.ReadUint64()
	if err != nil {
		return "", err
	}
	b, err := s.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return string(b), nil
}

// ReadColor reads four doubles (r, g, b, a), clamped to [0,1].
func (s *Stream) ReadColor() (Color, error) {
	var ch [4]float64
	for i := range ch {
		v, err := s.ReadFloat64()
		if err != nil {
			return Color{}, err
		}
		ch[i] = v
	}
	return RGBA(ch[0], ch[1], ch[2], ch[3]), nil
}

// StreamWriter builds colorset binary data.
type StreamWriter struct {
	buf bytes.Buffer
}

// Bytes returns the data written so far.
func (w *StreamWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// WriteUint8 appends a single byte.
func (w *StreamWriter) WriteUint8(v uint8) {
	w.buf.WriteByte(v)
}

// WriteUint32 appends a little-endian uint32.
func (w *StreamWriter) WriteUint32(v uint32) {
	w.buf.Write(binary.LittleEndian.AppendUint32(nil, v))
}

// WriteUint64 appends a little-endian uint64.
func (w *StreamWriter) WriteUint64(v uint64) {
	w.buf.Write(binary.LittleEndian.AppendUint64(nil, v))
}

// WriteFloat64 appends an IEEE 754 double.
func (w *StreamWriter) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

// WriteBool appends 1 or 0.
func (w *StreamWriter) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
		return
	}
	w.WriteUint8(0)
}

// WriteString appends the byte length plus one, the bytes and a NUL.
func (w *StreamWriter) WriteString(v string) {
	w.WriteUint64(uint64(len(v)) + 1)
	w.buf.WriteString(v)
	w.buf.WriteByte(0)
}

// WriteColor appends r, g, b, a as doubles.
func (w *StreamWriter) WriteColor(c Color) {
	w.WriteFloat64(c.R)
	w.WriteFloat64(c.G)
	w.WriteFloat64(c.B)
	w.WriteFloat64(c.A)
}
