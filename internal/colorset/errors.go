// SPDX-License-Identifier: MIT
package colorset

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is the parent of every binary decoding failure.
	ErrFormat = errors.New("colorset: invalid binary data")

	ErrBadMagic           = fmt.Errorf("%w: bad magic", ErrFormat)
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrFormat)
	ErrTruncated          = fmt.Errorf("%w: unexpected end of data", ErrFormat)

	// ErrInvalidDocument reports a structured document with a missing or
	// malformed header.
	ErrInvalidDocument = errors.New("colorset: invalid document")

	// ErrUnknownFormat is returned when data matches none of the known formats.
	ErrUnknownFormat = errors.New("colorset: unrecognized data")
)
