// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcd

import "errors"

// Error kinds shared by all controller packages. Drivers wrap these with
// fmt.Errorf("%w", ...) so callers can match them with errors.Is.
var (
	// ErrConfiguration is returned when a device cannot be built or
	// reconfigured with the supplied options, for example an invalid pin
	// assignment or a misaligned memory region.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrUnsupportedOperation is returned when an operation is valid for the
	// chip family but not for the current configuration, for example a read
	// on a write-only bus or a graphic command while in basic mode.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrOutOfRange is returned when a coordinate or index falls outside the
	// configured geometry after any documented wraparound has been applied.
	ErrOutOfRange = errors.New("out of range")

	// ErrOverflow is returned when rendered text is wider than the requested
	// target width. The truncated data is still returned alongside it.
	ErrOverflow = errors.New("text overflow")

	// ErrUndefinedGlyph is returned when a rune has no glyph in the active
	// font table. No fallback glyph is substituted.
	ErrUndefinedGlyph = errors.New("undefined glyph")
)
