// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// renderBanner draws text with a TrueType face into a white on black image
// sized for the display, centered both ways.
func renderBanner(text string, w, h int) (image.Image, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContext(w, h)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: float64(h) * 0.6}))
	dc.DrawStringAnchored(text, float64(w)/2, float64(h)/2, 0.5, 0.5)
	return dc.Image(), nil
}

// pageize converts an image into column bytes, one slice per 8 pixel tall
// page, most significant bit at the top. Pixels with more than half
// luminance are lit.
func pageize(img image.Image, w, h int) [][]byte {
	pages := make([][]byte, h/8)
	for p := range pages {
		pages[p] = make([]byte, w)
		for x := 0; x < w; x++ {
			var col byte
			for bit := 0; bit < 8; bit++ {
				r16, g16, b16, _ := img.At(x, p*8+bit).RGBA()
				if r16+g16+b16 >= 3*0x8000 {
					col |= 1 << (7 - bit)
				}
			}
			pages[p][x] = col
		}
	}
	return pages
}
