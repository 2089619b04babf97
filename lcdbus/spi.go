// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdbus

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/pidisplays/lcd"
)

// SPI is a write-only Bus over an SPI port and an A0/DC register select pin.
//
// The chip select line is expected to be handled by the SPI port itself.
type SPI struct {
	c  conn.Conn
	dc gpio.PinOut
}

// NewSPI returns a Bus over the supplied port.
//
// dc is the A0 (data/command) line, driven low for commands and high for
// data. f is the bus clock frequency; chips in this module are comfortable
// at 10 MHz and below.
func NewSPI(p spi.Port, dc gpio.PinOut, f physic.Frequency) (*SPI, error) {
	if dc == nil {
		return nil, fmt.Errorf("lcdbus: dc pin is required: %w", lcd.ErrConfiguration)
	}
	c, err := p.Connect(f, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("lcdbus: %w", err)
	}
	return &SPI{c: c, dc: dc}, nil
}

// WriteCommand implements Bus.
func (s *SPI) WriteCommand(cmd byte) error {
	if err := s.dc.Out(gpio.Low); err != nil {
		return err
	}
	return s.c.Tx([]byte{cmd}, nil)
}

// WriteData implements Bus.
func (s *SPI) WriteData(data []byte) error {
	if err := s.dc.Out(gpio.High); err != nil {
		return err
	}
	return s.c.Tx(data, nil)
}

// ReadData implements Bus. The serial hookup is write-only.
func (s *SPI) ReadData(data []byte) error {
	return fmt.Errorf("lcdbus: bus is write-only: %w", lcd.ErrUnsupportedOperation)
}

// ReadRegister implements Bus. The serial hookup is write-only.
func (s *SPI) ReadRegister() (byte, error) {
	return 0, fmt.Errorf("lcdbus: bus is write-only: %w", lcd.ErrUnsupportedOperation)
}

// Bits implements Bus.
func (s *SPI) Bits() int {
	return 8
}

// CanRead implements Bus.
func (s *SPI) CanRead() bool {
	return false
}

func (s *SPI) String() string {
	return fmt.Sprintf("lcdbus.SPI{%s}", s.c)
}

// Halt implements Bus.
func (s *SPI) Halt() error {
	return s.dc.Halt()
}

var _ Bus = &SPI{}
