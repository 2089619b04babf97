// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package termlcd

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"github.com/pidisplays/lcd"
)

func getDev(t *testing.T, w, h int) (*Dev, *bytes.Buffer) {
	t.Helper()
	d, err := New(&Opts{Width: w, Height: h})
	if err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	d.w = out
	return d, out
}

func TestBadGeometry(t *testing.T) {
	for _, o := range []*Opts{nil, {Width: 0, Height: 8}, {Width: 16, Height: 12}} {
		if _, err := New(o); !errors.Is(err, lcd.ErrConfiguration) {
			t.Errorf("New(%+v) = %v, want ErrConfiguration", o, err)
		}
	}
}

func TestWritePage(t *testing.T) {
	d, out := getDev(t, 16, 8)
	// A single column byte with only the top bit set lights pixel (0,0).
	if err := d.WritePage(0, 0, []byte{0x80}); err != nil {
		t.Fatal(err)
	}
	on := d.palette.Block(d.on)
	lines := strings.Split(out.String(), "\n")
	if len(lines) < 8 {
		t.Fatalf("got %d output lines, want at least 8", len(lines))
	}
	if !strings.Contains(lines[0], on) {
		t.Error("top row does not contain the lit pixel")
	}
	for i, l := range lines[1:8] {
		if strings.Contains(l, on) {
			t.Errorf("row %d contains a lit pixel", i+1)
		}
	}
	if got := strings.Count(out.String(), on); got != 1 {
		t.Errorf("got %d lit pixels, want 1", got)
	}
}

func TestWritePageOutOfRange(t *testing.T) {
	d, _ := getDev(t, 16, 8)
	for _, c := range []struct {
		page, x, n int
	}{{1, 0, 1}, {-1, 0, 1}, {0, 15, 2}, {0, -1, 1}} {
		if err := d.WritePage(c.page, c.x, make([]byte, c.n)); !errors.Is(err, lcd.ErrOutOfRange) {
			t.Errorf("WritePage(%d, %d, %d bytes) = %v, want ErrOutOfRange", c.page, c.x, c.n, err)
		}
	}
}

func TestDraw(t *testing.T) {
	d, _ := getDev(t, 16, 16)
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if err := d.Draw(d.Bounds(), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	// The white 2x2 square sets the two top bits of the first two columns.
	for x := 0; x < 2; x++ {
		if d.pixels[x] != 0xc0 {
			t.Errorf("column %d = %#02x, want 0xc0", x, d.pixels[x])
		}
	}
	if d.pixels[2] != 0 {
		t.Errorf("column 2 = %#02x, want 0x00", d.pixels[2])
	}
}

func TestClear(t *testing.T) {
	d, _ := getDev(t, 16, 8)
	if err := d.WritePage(0, 0, []byte{0xff}); err != nil {
		t.Fatal(err)
	}
	if err := d.Clear(); err != nil {
		t.Fatal(err)
	}
	for i, b := range d.pixels {
		if b != 0 {
			t.Fatalf("pixels[%d] = %#02x after Clear", i, b)
		}
	}
}

func TestHalt(t *testing.T) {
	d, out := getDev(t, 16, 8)
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\n\033[0m" {
		t.Errorf("Halt wrote %q", got)
	}
}
