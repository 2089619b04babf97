// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"periph.io/x/conn/v3/i2c"

	"github.com/pidisplays/lcd/lcdbus"
)

// NewI2CBackpack returns a display wired through a PCF8574 I2C backpack
// board, the cheapest and most common way to hook up these displays.
//
// addr is the expander's address, usually lcdbus.DefaultI2CAddr. The
// backpack drives its own backlight transistor; opts.Backlight is ignored
// and the backlight starts on.
func NewI2CBackpack(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	bus, err := lcdbus.NewI2CBackpack(b, addr)
	if err != nil {
		return nil, err
	}
	return New(bus, opts)
}
