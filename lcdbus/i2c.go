// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdbus

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"

	"github.com/pidisplays/lcd"
)

// DefaultI2CAddr is the usual address of a PCF8574 backpack.
const DefaultI2CAddr uint16 = 0x27

// PCF8574 port bit assignment on the common backpack boards.
const (
	bpRS byte = 0x01
	bpRW byte = 0x02
	bpEN byte = 0x04
	bpBL byte = 0x08
)

// I2CBackpack is a 4-bit Bus through the PCF8574 I2C port expander found on
// the ubiquitous HD44780 backpack boards.
//
// The expander's upper nibble drives D4-D7 and the lower nibble carries RS,
// R/W, EN and the backlight switch. Every nibble takes three I2C writes: the
// data, the data with EN raised, and the data with EN dropped again. The
// expander is too slow to need any further delays.
//
// Reads through the expander are not implemented, so the bus reports itself
// write-only.
type I2CBackpack struct {
	c  *i2c.Dev
	bl byte
}

// NewI2CBackpack returns a Bus over the expander at addr.
//
// The backlight bit starts raised; use Backlight to switch it.
func NewI2CBackpack(b i2c.Bus, addr uint16) (*I2CBackpack, error) {
	if b == nil {
		return nil, fmt.Errorf("lcdbus: i2c bus is required: %w", lcd.ErrConfiguration)
	}
	return &I2CBackpack{c: &i2c.Dev{Bus: b, Addr: addr}, bl: bpBL}, nil
}

// Backlight switches the backpack's backlight transistor.
func (b *I2CBackpack) Backlight(on bool) error {
	b.bl = 0
	if on {
		b.bl = bpBL
	}
	return b.c.Tx([]byte{b.bl}, nil)
}

// WriteCommand implements Bus.
func (b *I2CBackpack) WriteCommand(cmd byte) error {
	return b.writeByte(cmd, 0)
}

// WriteData implements Bus.
func (b *I2CBackpack) WriteData(data []byte) error {
	for _, d := range data {
		if err := b.writeByte(d, bpRS); err != nil {
			return err
		}
	}
	return nil
}

func (b *I2CBackpack) writeByte(v, flags byte) error {
	if err := b.writeNibble(v>>4, flags); err != nil {
		return err
	}
	return b.writeNibble(v&0x0f, flags)
}

func (b *I2CBackpack) writeNibble(n, flags byte) error {
	v := n<<4 | flags | b.bl
	for _, w := range [3]byte{v, v | bpEN, v} {
		if err := b.c.Tx([]byte{w}, nil); err != nil {
			return err
		}
	}
	return nil
}

// ReadData implements Bus.
func (b *I2CBackpack) ReadData(data []byte) error {
	return fmt.Errorf("lcdbus: backpack is write-only: %w", lcd.ErrUnsupportedOperation)
}

// ReadRegister implements Bus.
func (b *I2CBackpack) ReadRegister() (byte, error) {
	return 0, fmt.Errorf("lcdbus: backpack is write-only: %w", lcd.ErrUnsupportedOperation)
}

// Bits implements Bus.
func (b *I2CBackpack) Bits() int {
	return 4
}

// CanRead implements Bus.
func (b *I2CBackpack) CanRead() bool {
	return false
}

func (b *I2CBackpack) String() string {
	return fmt.Sprintf("lcdbus.I2CBackpack{%s}", b.c)
}

// Halt implements Bus. It drops every line including the backlight.
func (b *I2CBackpack) Halt() error {
	b.bl = 0
	return b.c.Tx([]byte{0}, nil)
}

var _ Bus = &I2CBackpack{}
