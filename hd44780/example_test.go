// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780_test

import (
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/gpioioctl"

	"github.com/pidisplays/lcd/backlight"
	"github.com/pidisplays/lcd/hd44780"
	"github.com/pidisplays/lcd/lcdbus"
)

// This example drives a display wired straight to GPIO pins in 4-bit mode.
// The periph.io/x/host/gpioioctl package provides the gpio.Group for the
// data lines.
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
	bus, err := lcdbus.NewParallel(data, rs, en, nil, lcdbus.Motorola6800, &hd44780.DefaultTimings)
	if err != nil {
		log.Fatal(err)
	}
	opts := hd44780.DefaultOpts
	opts.Backlight = backlight.New(gpioreg.ByName("GPIO12"), true)
	dev, err := hd44780.New(bus, &opts)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()
	if err := dev.Message("Hello\r\nWorld"); err != nil {
		log.Fatal(err)
	}
}

// A display on a PCF8574 I2C backpack needs just the two I2C lines.
func ExampleNewI2CBackpack() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()
	dev, err := hd44780.NewI2CBackpack(bus, lcdbus.DefaultI2CAddr, &hd44780.Opts{Rows: 4, Cols: 20})
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()
	if err := dev.Text("Hello"); err != nil {
		log.Fatal(err)
	}
}
