// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termlcd emulates a page addressed monochrome LCD on the terminal
// (stdout) using ANSI color codes.
//
// Useful to preview layouts rendered with lcdfont and textlayout while you
// are waiting for your display to come by mail. The buffer uses the same
// format the graphic chips consume: one byte per column per 8 pixel tall
// page, most significant bit at the top.
package termlcd

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"

	"github.com/pidisplays/lcd"
)

// Opts represents the options available for this display.
type Opts struct {
	// Width and Height in pixels. Height must be a multiple of 8.
	Width  int
	Height int
	// On and Off override the lit and unlit pixel colors.
	On  color.NRGBA
	Off color.NRGBA
	// Palette overrides ansi256.Default.
	Palette *ansi256.Palette

	_ struct{}
}

// Dev is an LCD emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	width   int
	height  int
	on      color.NRGBA
	off     color.NRGBA
	palette ansi256.Palette

	pixels []byte
	buf    bytes.Buffer
	drawn  bool
}

// New returns a Dev that displays at the console.
func New(opts *Opts) (*Dev, error) {
	if opts == nil || opts.Width <= 0 || opts.Height <= 0 || opts.Height%8 != 0 {
		return nil, fmt.Errorf("termlcd: width and a multiple of 8 height are required: %w", lcd.ErrConfiguration)
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	on := opts.On
	if on == (color.NRGBA{}) {
		on = color.NRGBA{0x20, 0xff, 0x40, 0xff}
	}
	off := opts.Off
	if off == (color.NRGBA{}) {
		off = color.NRGBA{0x10, 0x30, 0x18, 0xff}
	}
	return &Dev{
		w:       colorable.NewColorableStdout(),
		width:   opts.Width,
		height:  opts.Height,
		on:      on,
		off:     off,
		palette: *p,
		pixels:  make([]byte, opts.Width*opts.Height/8),
	}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("termlcd.Dev{%dx%d}", d.width, d.height)
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the shell is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// WritePage stores column bytes at an offset within a page and redraws,
// mirroring a MoveTo plus data write on a real chip.
func (d *Dev) WritePage(page, x int, data []byte) error {
	if page < 0 || page >= d.height/8 || x < 0 || x+len(data) > d.width {
		return fmt.Errorf("termlcd: %d bytes at (%d,%d) on a %dx%d page display: %w", len(data), x, page, d.width, d.height/8, lcd.ErrOutOfRange)
	}
	copy(d.pixels[page*d.width+x:], data)
	return d.refresh()
}

// Clear blanks the buffer and redraws.
func (d *Dev) Clear() error {
	for i := range d.pixels {
		d.pixels[i] = 0
	}
	return d.refresh()
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rectangle{Max: image.Point{X: d.width, Y: d.height}}
}

// Draw implements display.Drawer.
//
// Source pixels with more than half luminance are lit.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	srcR := src.Bounds()
	srcR.Min = srcR.Min.Add(sp)
	if dX := r.Dx(); dX < srcR.Dx() {
		srcR.Max.X = srcR.Min.X + dX
	}
	if dY := r.Dy(); dY < srcR.Dy() {
		srcR.Max.Y = srcR.Min.Y + dY
	}
	for sY := srcR.Min.Y; sY < srcR.Max.Y; sY++ {
		y := r.Min.Y + sY - srcR.Min.Y
		for sX := srcR.Min.X; sX < srcR.Max.X; sX++ {
			x := r.Min.X + sX - srcR.Min.X
			r16, g16, b16, _ := src.At(sX, sY).RGBA()
			d.setPixel(x, y, r16+g16+b16 >= 3*0x8000)
		}
	}
	return d.refresh()
}

func (d *Dev) setPixel(x, y int, on bool) {
	i := y / 8 * d.width + x
	bit := byte(1) << (7 - y%8)
	if on {
		d.pixels[i] |= bit
	} else {
		d.pixels[i] &^= bit
	}
}

func (d *Dev) refresh() error {
	// Designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	if d.drawn {
		// Move back to the frame's first line.
		fmt.Fprintf(&d.buf, "\033[%dA", d.height)
	}
	for y := 0; y < d.height; y++ {
		_, _ = d.buf.WriteString("\r\033[0m")
		for x := 0; x < d.width; x++ {
			c := d.off
			if d.pixels[y/8*d.width+x]>>(7-y%8)&1 != 0 {
				c = d.on
			}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.drawn = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
