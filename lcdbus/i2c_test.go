// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdbus

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/pidisplays/lcd"
)

// nibbleOps expands a byte into the backpack's six port writes, high nibble
// first, with the backlight bit raised.
func nibbleOps(addr uint16, b, flags byte) []i2ctest.IO {
	var ops []i2ctest.IO
	for _, n := range [2]byte{b >> 4, b & 0x0f} {
		v := n<<4 | flags | bpBL
		for _, w := range [3]byte{v, v | bpEN, v} {
			ops = append(ops, i2ctest.IO{Addr: addr, W: []byte{w}})
		}
	}
	return ops
}

func TestI2CBackpackWrite(t *testing.T) {
	var ops []i2ctest.IO
	ops = append(ops, nibbleOps(DefaultI2CAddr, 0x33, 0)...)
	ops = append(ops, nibbleOps(DefaultI2CAddr, 0x41, bpRS)...)
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}
	b, err := NewI2CBackpack(bus, DefaultI2CAddr)
	if err != nil {
		t.Fatal(err)
	}
	if b.Bits() != 4 {
		t.Errorf("Bits() = %d, want 4", b.Bits())
	}
	if b.CanRead() {
		t.Error("CanRead() = true for a backpack")
	}
	if err := b.WriteCommand(0x33); err != nil {
		t.Fatal(err)
	}
	if err := b.WriteData([]byte{'A'}); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestI2CBackpackBacklight(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: DefaultI2CAddr, W: []byte{0x00}},
			{Addr: DefaultI2CAddr, W: []byte{bpBL}},
		},
		DontPanic: true,
	}
	b, err := NewI2CBackpack(bus, DefaultI2CAddr)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Backlight(false); err != nil {
		t.Fatal(err)
	}
	if err := b.Backlight(true); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestI2CBackpackRead(t *testing.T) {
	b, err := NewI2CBackpack(&i2ctest.Playback{DontPanic: true}, DefaultI2CAddr)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.ReadData(make([]byte, 1)); !errors.Is(err, lcd.ErrUnsupportedOperation) {
		t.Errorf("ReadData() = %v, want ErrUnsupportedOperation", err)
	}
	if _, err := b.ReadRegister(); !errors.Is(err, lcd.ErrUnsupportedOperation) {
		t.Errorf("ReadRegister() = %v, want ErrUnsupportedOperation", err)
	}
	if _, err := NewI2CBackpack(nil, DefaultI2CAddr); !errors.Is(err, lcd.ErrConfiguration) {
		t.Errorf("NewI2CBackpack(nil) = %v, want ErrConfiguration", err)
	}
}
