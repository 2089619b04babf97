// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdfont holds the glyph tables used to render text on graphic LCD
// controllers.
//
// Glyphs are stored as one byte per pixel column with the most significant
// bit at the top, the layout page-addressed chips consume directly. Two
// fonts are provided: Proportional, a compact variable width ASCII font, and
// Mono8, a fixed 8x8 ASCII font.
package lcdfont

import (
	"fmt"

	"github.com/pidisplays/lcd"
)

// Glyph is the bitmap of a single character, one byte per pixel column.
type Glyph []byte

// Width returns the glyph width in pixels.
func (g Glyph) Width() int {
	return len(g)
}

// Font resolves runes to glyphs.
type Font interface {
	// Glyph returns the bitmap for r. Runes outside the font fail with
	// lcd.ErrUndefinedGlyph; no substitute glyph is returned.
	Glyph(r rune) (Glyph, error)
	// Spacing returns the number of blank columns inserted between glyphs.
	Spacing() int
}

// table is a Font backed by a map.
type table struct {
	glyphs  map[rune]Glyph
	spacing int
}

func (t *table) Glyph(r rune) (Glyph, error) {
	g, ok := t.glyphs[r]
	if !ok {
		return nil, fmt.Errorf("lcdfont: no glyph for %q: %w", r, lcd.ErrUndefinedGlyph)
	}
	return g, nil
}

func (t *table) Spacing() int {
	return t.spacing
}
