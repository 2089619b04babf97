// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pidisplays/lcd/textlayout"
)

// BusConfig selects and wires the bus transport.
type BusConfig struct {
	// Type is parallel, spi or i2c.
	Type string `yaml:"type"`
	// Port is the spireg or i2creg name; empty picks the first one.
	Port string `yaml:"port"`
	// Addr is the I2C backpack address; zero uses the PCF8574 default.
	Addr uint16 `yaml:"addr"`
	// DC is the data/command select line for SPI.
	DC string `yaml:"dc"`
	// Data are the parallel data line names, least significant first; four
	// names select 4-bit mode.
	Data []string `yaml:"data"`
	// RS, Strobe and Read are the parallel control lines. Read is optional.
	RS     string `yaml:"rs"`
	Strobe string `yaml:"strobe"`
	Read   string `yaml:"read"`
	// Protocol is 6800 or 8080.
	Protocol int `yaml:"protocol"`
}

// BacklightConfig wires the optional backlight pin.
type BacklightConfig struct {
	Pin   string  `yaml:"pin"`
	PWM   bool    `yaml:"pwm"`
	Level float64 `yaml:"level"`
}

// Config is the top-level demo configuration.
type Config struct {
	// Chip is hd44780, ra6963, st7565 or st7920.
	Chip string    `yaml:"chip"`
	Bus  BusConfig `yaml:"bus"`

	// Character geometry for hd44780.
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
	// Pixel geometry for the graphic chips.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// LeftStart and RightStart are the st7565 column offsets.
	LeftStart  int `yaml:"left_start"`
	RightStart int `yaml:"right_start"`

	// Reset is the optional RST line name.
	Reset string `yaml:"reset"`

	Backlight BacklightConfig `yaml:"backlight"`

	// Message is written to the display; \n separates lines.
	Message string `yaml:"message"`
	// Align is left, center or right.
	Align string `yaml:"align"`
	// Banner, when set, is rendered with a TrueType font instead of the
	// chip fonts. Graphic chips and preview mode only.
	Banner string `yaml:"banner"`
}

func defaultConfig() *Config {
	return &Config{
		Chip:      "st7565",
		Bus:       BusConfig{Type: "spi", DC: "GPIO6", Protocol: 6800},
		Cols:      16,
		Rows:      2,
		Width:     128,
		Height:    64,
		Backlight: BacklightConfig{Level: 1},
		Message:   "Hello\nWorld",
		Align:     "center",
	}
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) alignment() (textlayout.Alignment, error) {
	switch c.Align {
	case "", "left":
		return textlayout.Left, nil
	case "center":
		return textlayout.Center, nil
	case "right":
		return textlayout.Right, nil
	}
	return textlayout.Left, fmt.Errorf("unknown alignment %q", c.Align)
}
