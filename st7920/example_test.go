// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7920_test

import (
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/gpioioctl"

	"github.com/pidisplays/lcd/backlight"
	"github.com/pidisplays/lcd/lcdbus"
	"github.com/pidisplays/lcd/st7920"
	"github.com/pidisplays/lcd/textlayout"
)

// This example drives a 128x64 panel wired to GPIO pins in 4-bit mode and
// draws a checkerboard on the graphic layer behind centered text.
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	chip := gpioioctl.Chips[0]
	// D4 to D7, least significant first.
	data, err := chip.LineSet(gpioioctl.LineOutput, gpio.NoEdge, gpio.PullNoChange,
		"GPIO25", "GPIO24", "GPIO23", "GPIO18")
	if err != nil {
		log.Fatal(err)
	}
	rs := gpioreg.ByName("GPIO7")
	en := gpioreg.ByName("GPIO8")
	bus, err := lcdbus.NewParallel(data, rs, en, nil, lcdbus.Motorola6800, &st7920.DefaultTimings)
	if err != nil {
		log.Fatal(err)
	}
	opts := &st7920.Opts{
		Reset:     gpioreg.ByName("GPIO26"),
		Backlight: backlight.New(gpioreg.ByName("GPIO12"), true),
	}
	dev, err := st7920.New(bus, opts)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()
	if err := dev.MessageHalf("Hello\nWorld", textlayout.Center, 0); err != nil {
		log.Fatal(err)
	}
	if err := dev.Extended(true); err != nil {
		log.Fatal(err)
	}
	if err := dev.ClearGraphic(); err != nil {
		log.Fatal(err)
	}
	row := make([]byte, 32)
	for i := range row {
		row[i] = 0xaa
	}
	for y := 0; y < 128; y += 2 {
		if err := dev.SetGraphicPosition(0, y); err != nil {
			log.Fatal(err)
		}
		if err := dev.WriteData(row); err != nil {
			log.Fatal(err)
		}
	}
	if err := dev.Graphic(true); err != nil {
		log.Fatal(err)
	}
}
