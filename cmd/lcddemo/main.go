// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// lcddemo writes a message to an LCD described by a YAML config file, or
// previews it on the terminal.
//
// Usage:
//
//	lcddemo -config lcd.yaml
//	lcddemo -preview
package main

import (
	"errors"
	"flag"
	"image"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/gpioioctl"

	"github.com/pidisplays/lcd"
	"github.com/pidisplays/lcd/backlight"
	"github.com/pidisplays/lcd/hd44780"
	"github.com/pidisplays/lcd/lcdbus"
	"github.com/pidisplays/lcd/lcdfont"
	"github.com/pidisplays/lcd/ra6963"
	"github.com/pidisplays/lcd/st7565"
	"github.com/pidisplays/lcd/st7920"
	"github.com/pidisplays/lcd/termlcd"
	"github.com/pidisplays/lcd/textlayout"
)

var (
	configPath = flag.String("config", "", "path to the YAML config file")
	preview    = flag.Bool("preview", false, "render to the terminal instead of hardware")
	verbose    = flag.Bool("v", false, "verbose output")
)

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	align, err := cfg.alignment()
	if err != nil {
		log.Fatal(err)
	}
	if *preview {
		err = runPreview(cfg, align)
	} else {
		err = runHardware(cfg, align)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runPreview(cfg *Config, align textlayout.Alignment) error {
	dev, err := termlcd.New(&termlcd.Opts{Width: cfg.Width, Height: cfg.Height})
	if err != nil {
		return err
	}
	defer dev.Halt()
	if cfg.Banner != "" {
		img, err := renderBanner(cfg.Banner, cfg.Width, cfg.Height)
		if err != nil {
			return err
		}
		return dev.Draw(dev.Bounds(), img, image.Point{})
	}
	for i, line := range strings.Split(cfg.Message, "\n") {
		buf, err := textlayout.RenderLine(line, lcdfont.Proportional, align, cfg.Width)
		if err != nil {
			if !errors.Is(err, lcd.ErrOverflow) {
				return err
			}
			log.Warnf("line %d overflows the display", i)
		}
		if err := dev.WritePage(i, 0, buf); err != nil {
			return err
		}
	}
	time.Sleep(time.Second)
	return nil
}

func runHardware(cfg *Config, align textlayout.Alignment) error {
	if _, err := host.Init(); err != nil {
		return err
	}
	bl := buildBacklight(cfg)
	switch cfg.Chip {
	case "hd44780":
		return runHD44780(cfg, bl)
	case "ra6963":
		return runRA6963(cfg, bl)
	case "st7565":
		return runST7565(cfg, align, bl)
	case "st7920":
		return runST7920(cfg, align, bl)
	}
	return errors.New("unknown chip " + cfg.Chip)
}

func buildBacklight(cfg *Config) *backlight.Dev {
	if cfg.Backlight.Pin == "" {
		return backlight.New(nil, false)
	}
	return backlight.New(gpioreg.ByName(cfg.Backlight.Pin), cfg.Backlight.PWM)
}

func resetPin(cfg *Config) gpio.PinOut {
	if cfg.Reset == "" {
		return nil
	}
	return gpioreg.ByName(cfg.Reset)
}

func buildParallel(cfg *Config, t *lcdbus.Timings) (lcdbus.Bus, error) {
	chip := gpioioctl.Chips[0]
	data, err := chip.LineSet(gpioioctl.LineOutput, gpio.NoEdge, gpio.PullNoChange, cfg.Bus.Data...)
	if err != nil {
		return nil, err
	}
	var read gpio.PinOut
	if cfg.Bus.Read != "" {
		read = gpioreg.ByName(cfg.Bus.Read)
	}
	proto := lcdbus.Motorola6800
	if cfg.Bus.Protocol == 8080 {
		proto = lcdbus.Intel8080
	}
	return lcdbus.NewParallel(data, gpioreg.ByName(cfg.Bus.RS), gpioreg.ByName(cfg.Bus.Strobe), read, proto, t)
}

func runHD44780(cfg *Config, bl *backlight.Dev) error {
	opts := &hd44780.Opts{Rows: cfg.Rows, Cols: cfg.Cols, Backlight: bl}
	var dev *hd44780.Dev
	switch cfg.Bus.Type {
	case "i2c":
		b, err := i2creg.Open(cfg.Bus.Port)
		if err != nil {
			return err
		}
		defer b.Close()
		addr := cfg.Bus.Addr
		if addr == 0 {
			addr = lcdbus.DefaultI2CAddr
		}
		if dev, err = hd44780.NewI2CBackpack(b, addr, opts); err != nil {
			return err
		}
	case "parallel":
		bus, err := buildParallel(cfg, &hd44780.DefaultTimings)
		if err != nil {
			return err
		}
		if dev, err = hd44780.New(bus, opts); err != nil {
			return err
		}
	default:
		return errors.New("hd44780 needs a parallel or i2c bus")
	}
	defer dev.Halt()
	if err := dev.SetBacklight(cfg.Backlight.Level); err != nil {
		return err
	}
	return dev.Message(strings.ReplaceAll(cfg.Message, "\n", "\r\n"))
}

func runRA6963(cfg *Config, bl *backlight.Dev) error {
	bus, err := buildParallel(cfg, &ra6963.DefaultTimings)
	if err != nil {
		return err
	}
	dev, err := ra6963.New(bus, &ra6963.Opts{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Reset:     resetPin(cfg),
		Backlight: bl,
	})
	if err != nil {
		return err
	}
	defer dev.Halt()
	if err := dev.SetBacklight(cfg.Backlight.Level); err != nil {
		return err
	}
	if err := dev.ClearAll(); err != nil {
		return err
	}
	if err := dev.DisplayMode(true, false); err != nil {
		return err
	}
	return dev.WriteText(cfg.Message)
}

func runST7565(cfg *Config, align textlayout.Alignment, bl *backlight.Dev) error {
	port, err := spireg.Open(cfg.Bus.Port)
	if err != nil {
		return err
	}
	defer port.Close()
	bus, err := lcdbus.NewSPI(port, gpioreg.ByName(cfg.Bus.DC), 20*physic.MegaHertz)
	if err != nil {
		return err
	}
	dev, err := st7565.New(bus, &st7565.Opts{
		Width:      cfg.Width,
		Height:     cfg.Height,
		LeftStart:  cfg.LeftStart,
		RightStart: cfg.RightStart,
		Reset:      resetPin(cfg),
		Backlight:  bl,
	})
	if err != nil {
		return err
	}
	defer dev.Halt()
	if err := dev.SetBacklight(cfg.Backlight.Level); err != nil {
		return err
	}
	if cfg.Banner != "" {
		img, err := renderBanner(cfg.Banner, cfg.Width, cfg.Height)
		if err != nil {
			return err
		}
		for p, page := range pageize(img, cfg.Width, cfg.Height) {
			if err := dev.MoveTo(0, p); err != nil {
				return err
			}
			if err := dev.WriteData(page); err != nil {
				return err
			}
		}
		return nil
	}
	return dev.Message(cfg.Message, align, 0)
}

func runST7920(cfg *Config, align textlayout.Alignment, bl *backlight.Dev) error {
	bus, err := buildParallel(cfg, &st7920.DefaultTimings)
	if err != nil {
		return err
	}
	dev, err := st7920.New(bus, &st7920.Opts{Reset: resetPin(cfg), Backlight: bl})
	if err != nil {
		return err
	}
	defer dev.Halt()
	if err := dev.SetBacklight(cfg.Backlight.Level); err != nil {
		return err
	}
	return dev.MessageHalf(cfg.Message, align, 0)
}
