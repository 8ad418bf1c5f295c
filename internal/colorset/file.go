// SPDX-License-Identifier: MIT
package colorset

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// FileExtension is the conventional extension for colorset files.
const FileExtension = ".colorset"

// Format selects a serialization.
type Format int

const (
	FormatAuto Format = iota
	FormatBinary
	FormatXML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatXML:
		return "xml"
	case FormatJSON:
		return "json"
	}
	return "auto"
}

// ContentType returns the MIME type for data in this format.
func (f Format) ContentType() string {
	switch f {
	case FormatXML:
		return "application/x-plist"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// ParseFormat converts a format name ("binary", "xml", "plist", "json",
// "auto" or "") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "binary", "bin":
		return FormatBinary, nil
	case "xml", "plist":
		return FormatXML, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatAuto, fmt.Errorf("unknown format: %s", s)
}

// Encode serializes the set. FormatAuto uses the format the set was loaded from.
func (s *ColorSet) Encode(format Format) ([]byte, error) {
	if format == FormatAuto {
		format = s.Format()
	}
	switch format {
	case FormatXML:
		return s.MarshalPropertyList()
	case FormatJSON:
		return s.MarshalJSON()
	}
	return s.MarshalBinary()
}

// Parse decodes colorset data of any supported format. Property lists are
// tried first, then JSON, then the binary format.
func Parse(data []byte) (*ColorSet, error) {
	if len(data) == 0 {
		return nil, ErrUnknownFormat
	}

	set, err := FromPropertyList(data)
	if err == nil {
		return set, nil
	}
	if looksLikePropertyList(data) {
		return nil, err
	}

	if looksLikeJSON(data) {
		return FromJSON(data)
	}

	return FromBinary(data)
}

func looksLikePropertyList(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return bytes.HasPrefix(trimmed, []byte("<?xml")) ||
		bytes.HasPrefix(trimmed, []byte("<plist")) ||
		bytes.HasPrefix(trimmed, []byte("bplist"))
}

func looksLikeJSON(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("{"))
}

// Load reads and decodes a colorset file.
func Load(path string) (*ColorSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read colorset: %w", err)
	}

	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return set, nil
}

// WriteFile encodes the set and writes it to path.
func (s *ColorSet) WriteFile(path string, format Format) error {
	data, err := s.Encode(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write colorset: %w", err)
	}
	return nil
}
