// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7920

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/pidisplays/lcd"
	"github.com/pidisplays/lcd/lcdbus/lcdbustest"
	"github.com/pidisplays/lcd/textlayout"
)

// getDev returns a display over an 8-bit recording bus with the startup
// traffic cleared and settle waits disabled.
func getDev(t *testing.T, bus *lcdbustest.Record) *Dev {
	t.Helper()
	d, err := New(bus, nil)
	if err != nil {
		t.Fatal(err)
	}
	d.sleep = func(time.Duration) {}
	bus.Ops = nil
	return d
}

func TestStartup8Bit(t *testing.T) {
	bus := &lcdbustest.Record{Width: 8}
	if _, err := New(bus, nil); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x30, 0x01, 0x0c}
	if diff := cmp.Diff(want, bus.Commands()); diff != "" {
		t.Errorf("startup commands mismatch (-want +got):\n%s", diff)
	}
}

func TestStartup4Bit(t *testing.T) {
	bus := &lcdbustest.Record{Width: 4}
	if _, err := New(bus, nil); err != nil {
		t.Fatal(err)
	}
	// The two packed bytes carry three "8-bit" function sets and one
	// "4-bit" one on the wire.
	want := []byte{0x33, 0x32, 0x01, 0x0c}
	if diff := cmp.Diff(want, bus.Commands()); diff != "" {
		t.Errorf("startup commands mismatch (-want +got):\n%s", diff)
	}
}

func TestModeGating(t *testing.T) {
	bus := &lcdbustest.Record{}
	d := getDev(t, bus)
	// Extended only operations fail in basic mode.
	if err := d.ClearGraphic(); !errors.Is(err, lcd.ErrUnsupportedOperation) {
		t.Errorf("ClearGraphic() = %v, want ErrUnsupportedOperation", err)
	}
	if err := d.Graphic(true); !errors.Is(err, lcd.ErrUnsupportedOperation) {
		t.Errorf("Graphic(true) = %v, want ErrUnsupportedOperation", err)
	}
	if err := d.Extended(true); err != nil {
		t.Fatal(err)
	}
	// Basic only operations fail in extended mode.
	if err := d.ClearChar(); !errors.Is(err, lcd.ErrUnsupportedOperation) {
		t.Errorf("ClearChar() = %v, want ErrUnsupportedOperation", err)
	}
	if err := d.SetCharPosition(0, 0); !errors.Is(err, lcd.ErrUnsupportedOperation) {
		t.Errorf("SetCharPosition() = %v, want ErrUnsupportedOperation", err)
	}
	if err := d.Display(true); !errors.Is(err, lcd.ErrUnsupportedOperation) {
		t.Errorf("Display() = %v, want ErrUnsupportedOperation", err)
	}
	if err := d.MessageHalf("x", textlayout.Left, 0); !errors.Is(err, lcd.ErrUnsupportedOperation) {
		t.Errorf("MessageHalf() = %v, want ErrUnsupportedOperation", err)
	}
}

func TestSetCharPosition(t *testing.T) {
	bus := &lcdbustest.Record{}
	d := getDev(t, bus)
	for row := 0; row < 8; row++ {
		if err := d.SetCharPosition(0, row); err != nil {
			t.Fatal(err)
		}
	}
	// Row 9 wraps to row 1.
	if err := d.SetCharPosition(0, 9); err != nil {
		t.Fatal(err)
	}
	// Logical rows land in the hardware block order {0,2,1,3,4,6,5,7}.
	want := []byte{0x80, 0x90, 0x88, 0x98, 0xa0, 0xb0, 0xa8, 0xb8, 0x90}
	if diff := cmp.Diff(want, bus.Commands()); diff != "" {
		t.Errorf("DDRAM addresses mismatch (-want +got):\n%s", diff)
	}
	if err := d.SetCharPosition(8, 0); !errors.Is(err, lcd.ErrOutOfRange) {
		t.Errorf("SetCharPosition(8, 0) = %v, want ErrOutOfRange", err)
	}
}

func TestSetGraphicPosition(t *testing.T) {
	bus := &lcdbustest.Record{}
	d := getDev(t, bus)
	if err := d.SetGraphicPosition(3, 100); !errors.Is(err, lcd.ErrUnsupportedOperation) {
		t.Fatalf("SetGraphicPosition in basic mode = %v, want ErrUnsupportedOperation", err)
	}
	if err := d.Extended(true); err != nil {
		t.Fatal(err)
	}
	bus.Ops = nil
	if err := d.SetGraphicPosition(3, 100); err != nil {
		t.Fatal(err)
	}
	// Line 100 splits as bit 6 into the vertical byte and bit 5 into the
	// horizontal one.
	want := []byte{0xa4, 0x8b}
	if diff := cmp.Diff(want, bus.Commands()); diff != "" {
		t.Errorf("GDRAM addresses mismatch (-want +got):\n%s", diff)
	}
	if err := d.SetGraphicPosition(8, 0); !errors.Is(err, lcd.ErrOutOfRange) {
		t.Errorf("SetGraphicPosition(8, 0) = %v, want ErrOutOfRange", err)
	}
	if err := d.SetGraphicPosition(0, 128); !errors.Is(err, lcd.ErrOutOfRange) {
		t.Errorf("SetGraphicPosition(0, 128) = %v, want ErrOutOfRange", err)
	}
}

func TestClearGraphic(t *testing.T) {
	bus := &lcdbustest.Record{}
	d := getDev(t, bus)
	if err := d.Extended(true); err != nil {
		t.Fatal(err)
	}
	bus.Ops = nil
	if err := d.ClearGraphic(); err != nil {
		t.Fatal(err)
	}
	// 64 lines, each a two byte pointer set and a 32 byte write.
	if len(bus.Ops) != 64*3 {
		t.Fatalf("got %d ops, want %d", len(bus.Ops), 64*3)
	}
	want := []lcdbustest.Op{
		{Type: lcdbustest.Command, Data: []byte{0x80}},
		{Type: lcdbustest.Command, Data: []byte{0x80}},
		{Type: lcdbustest.Data, Data: make([]byte, 32)},
		{Type: lcdbustest.Command, Data: []byte{0x81}},
		{Type: lcdbustest.Command, Data: []byte{0x80}},
		{Type: lcdbustest.Data, Data: make([]byte, 32)},
	}
	if diff := cmp.Diff(want, bus.Ops[:6]); diff != "" {
		t.Errorf("clear traffic mismatch (-want +got):\n%s", diff)
	}
}

func TestMessageFull(t *testing.T) {
	bus := &lcdbustest.Record{}
	d := getDev(t, bus)
	if err := d.MessageFull("AB", textlayout.Center, 0); err != nil {
		t.Fatal(err)
	}
	line := []byte{
		0x20, 0x20, 0x20, 0x20, 0x20, 0x20,
		0xa3, 'A', 0xa3, 'B',
		0x20, 0x20, 0x20, 0x20, 0x20, 0x20,
	}
	want := []lcdbustest.Op{
		{Type: lcdbustest.Command, Data: []byte{0x80}},
		{Type: lcdbustest.Data, Data: line},
	}
	if diff := cmp.Diff(want, bus.Ops); diff != "" {
		t.Errorf("full width traffic mismatch (-want +got):\n%s", diff)
	}
}

func TestMessageHalf(t *testing.T) {
	bus := &lcdbustest.Record{}
	d := getDev(t, bus)
	if err := d.MessageHalf("hello", textlayout.Left, 2); err != nil {
		t.Fatal(err)
	}
	want := []lcdbustest.Op{
		{Type: lcdbustest.Command, Data: []byte{0x88}},
		{Type: lcdbustest.Data, Data: []byte("hello           ")},
	}
	if diff := cmp.Diff(want, bus.Ops); diff != "" {
		t.Errorf("half width traffic mismatch (-want +got):\n%s", diff)
	}
}

func TestMessageOverflow(t *testing.T) {
	bus := &lcdbustest.Record{}
	d := getDev(t, bus)
	err := d.MessageHalf("a line too wide for the cells", textlayout.Left, 0)
	if !errors.Is(err, lcd.ErrOverflow) {
		t.Fatalf("MessageHalf() = %v, want ErrOverflow", err)
	}
	// The cropped line is still written.
	last := bus.Ops[len(bus.Ops)-1]
	if last.Type != lcdbustest.Data || len(last.Data) != 16 {
		t.Errorf("expected a 16 byte data write, got %+v", last)
	}
}

func TestDefineGlyph(t *testing.T) {
	bus := &lcdbustest.Record{}
	d := getDev(t, bus)
	var glyph [32]byte
	for i := range glyph {
		glyph[i] = byte(i)
	}
	// Slot 6 wraps to slot 2.
	if err := d.DefineGlyph(6, glyph); err != nil {
		t.Fatal(err)
	}
	want := []lcdbustest.Op{
		{Type: lcdbustest.Command, Data: []byte{0x40 | 32}},
		{Type: lcdbustest.Data, Data: glyph[:]},
	}
	if diff := cmp.Diff(want, bus.Ops); diff != "" {
		t.Errorf("CGRAM traffic mismatch (-want +got):\n%s", diff)
	}
}

func TestDummyRead(t *testing.T) {
	bus := &lcdbustest.Record{Queue: []byte{0xff, 1, 2, 3}}
	d := getDev(t, bus)
	buf := make([]byte, 2)
	if err := d.ReadData(buf); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{1, 2}, buf); diff != "" {
		t.Errorf("first read after write must skip the dummy byte (-want +got):\n%s", diff)
	}
	// A second read in a row has no dummy byte.
	buf = buf[:1]
	if err := d.ReadData(buf); err != nil {
		t.Fatal(err)
	}
	if buf[0] != 3 {
		t.Errorf("second read = %#02x, want 0x03", buf[0])
	}
}

func TestOddWrite(t *testing.T) {
	d := getDev(t, &lcdbustest.Record{})
	if err := d.WriteData([]byte{1, 2, 3}); !errors.Is(err, lcd.ErrOutOfRange) {
		t.Errorf("WriteData(3 bytes) = %v, want ErrOutOfRange", err)
	}
}

func TestStatusShadow(t *testing.T) {
	bus := &lcdbustest.Record{}
	d := getDev(t, bus)
	if err := d.ShowCursor(true); err != nil {
		t.Fatal(err)
	}
	if err := d.Blink(true); err != nil {
		t.Fatal(err)
	}
	if err := d.Display(false); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x0e, 0x0f, 0x0b}
	if diff := cmp.Diff(want, bus.Commands()); diff != "" {
		t.Errorf("display status mismatch (-want +got):\n%s", diff)
	}
}

func TestEntryAndShift(t *testing.T) {
	bus := &lcdbustest.Record{}
	d := getDev(t, bus)
	if err := d.EntryRight(false); err != nil {
		t.Fatal(err)
	}
	if err := d.EntryShiftDisplay(true); err != nil {
		t.Fatal(err)
	}
	if err := d.ShiftCursor(true); err != nil {
		t.Fatal(err)
	}
	if err := d.ShiftDisplay(false); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x04, 0x05, 0x14, 0x18}
	if diff := cmp.Diff(want, bus.Commands()); diff != "" {
		t.Errorf("entry and shift mismatch (-want +got):\n%s", diff)
	}
}

func TestExtendedCommands(t *testing.T) {
	bus := &lcdbustest.Record{}
	d := getDev(t, bus)
	if err := d.Extended(true); err != nil {
		t.Fatal(err)
	}
	if err := d.Graphic(true); err != nil {
		t.Fatal(err)
	}
	if err := d.Scroll(true); err != nil {
		t.Fatal(err)
	}
	if err := d.SetScrollAddress(5); err != nil {
		t.Fatal(err)
	}
	if err := d.ToggleReverse(1); err != nil {
		t.Fatal(err)
	}
	if err := d.Standby(); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x34, 0x36, 0x03, 0x45, 0x05, 0x01}
	if diff := cmp.Diff(want, bus.Commands()); diff != "" {
		t.Errorf("extended commands mismatch (-want +got):\n%s", diff)
	}
	if err := d.ToggleReverse(2); !errors.Is(err, lcd.ErrOutOfRange) {
		t.Errorf("ToggleReverse(2) = %v, want ErrOutOfRange", err)
	}
}

func TestHalt(t *testing.T) {
	bus := &lcdbustest.Record{}
	d := getDev(t, bus)
	if err := d.Extended(true); err != nil {
		t.Fatal(err)
	}
	bus.Ops = nil
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x30, 0x01, 0x08}
	if diff := cmp.Diff(want, bus.Commands()); diff != "" {
		t.Errorf("halt commands mismatch (-want +got):\n%s", diff)
	}
}
