// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package textlayout composes single lines of text into fixed width buffers.
//
// Graphic controllers in this module render text a line at a time into a
// page buffer of pixel columns; character controllers render into a row of
// character cells. Both use the same alignment and overflow rules, provided
// here as RenderLine for pixel columns and PadRunes for cells.
package textlayout

import (
	"fmt"
	"strings"

	"github.com/pidisplays/lcd"
	"github.com/pidisplays/lcd/lcdfont"
)

// Alignment places a line inside its target width.
type Alignment int

const (
	// Left aligns to the leading edge.
	Left Alignment = iota
	// Center splits the padding, the odd column going to the trailing side.
	Center
	// Right aligns to the trailing edge.
	Right
)

func (a Alignment) String() string {
	switch a {
	case Left:
		return "left"
	case Center:
		return "center"
	case Right:
		return "right"
	}
	return "unknown"
}

// Pad returns the leading and trailing padding for content units inside
// target units. content must not exceed target.
func (a Alignment) Pad(content, target int) (lead, trail int) {
	rem := target - content
	switch a {
	case Right:
		return rem, 0
	case Center:
		return rem / 2, rem - rem/2
	default:
		return 0, rem
	}
}

// crop returns how many leading units to drop when content exceeds target.
// Left keeps the tail, Right keeps the head and Center drops the larger half
// from the head.
func (a Alignment) crop(content, target int) int {
	over := content - target
	switch a {
	case Left:
		return over
	case Center:
		return (over + 1) / 2
	default:
		return 0
	}
}

// RenderLine renders text into a buffer of exactly targetWidth pixel
// columns.
//
// Glyphs are separated by the font's spacing in blank columns. When the
// rendered text is wider than targetWidth the buffer holds the cropped slice
// selected by the alignment and the error wraps lcd.ErrOverflow; the data is
// still usable. Runes missing from the font fail with lcd.ErrUndefinedGlyph.
func RenderLine(text string, f lcdfont.Font, a Alignment, targetWidth int) ([]byte, error) {
	var content []byte
	for i, r := range text {
		g, err := f.Glyph(r)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			content = append(content, make([]byte, f.Spacing())...)
		}
		content = append(content, g...)
	}
	out := make([]byte, targetWidth)
	if len(content) > targetWidth {
		drop := a.crop(len(content), targetWidth)
		copy(out, content[drop:drop+targetWidth])
		return out, fmt.Errorf("textlayout: %q is %d columns in a %d column line: %w", text, len(content), targetWidth, lcd.ErrOverflow)
	}
	lead, _ := a.Pad(len(content), targetWidth)
	copy(out[lead:], content)
	return out, nil
}

// PadRunes aligns line inside a row of cells character cells, padding with
// spaces.
//
// A line longer than the row is cropped by the same rule as RenderLine and
// returned with lcd.ErrOverflow.
func PadRunes(line string, cells int, a Alignment) (string, error) {
	runes := []rune(line)
	if len(runes) > cells {
		drop := a.crop(len(runes), cells)
		return string(runes[drop : drop+cells]), fmt.Errorf("textlayout: %q is %d cells in a %d cell row: %w", line, len(runes), cells, lcd.ErrOverflow)
	}
	lead, trail := a.Pad(len(runes), cells)
	return strings.Repeat(" ", lead) + string(runes) + strings.Repeat(" ", trail), nil
}
