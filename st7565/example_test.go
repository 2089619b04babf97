// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7565_test

import (
	"log"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/pidisplays/lcd/backlight"
	"github.com/pidisplays/lcd/lcdbus"
	"github.com/pidisplays/lcd/st7565"
	"github.com/pidisplays/lcd/textlayout"
)

// This example drives an ERC12864 128x64 panel on the first SPI port with
// A0 and RST on GPIO pins and a PWM dimmed backlight.
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	port, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer port.Close()
	bus, err := lcdbus.NewSPI(port, gpioreg.ByName("GPIO6"), 20*physic.MegaHertz)
	if err != nil {
		log.Fatal(err)
	}
	opts := &st7565.Opts{
		Width:      128,
		Height:     64,
		LeftStart:  4,
		RightStart: 0,
		Reset:      gpioreg.ByName("GPIO5"),
		Backlight:  backlight.New(gpioreg.ByName("GPIO18"), true),
	}
	dev, err := st7565.New(bus, opts)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()
	if err := dev.Message("Hello\nWorld", textlayout.Center, 0); err != nil {
		log.Fatal(err)
	}
}
