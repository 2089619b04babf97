// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdbus provides the byte transports used by the LCD controller
// drivers in this module.
//
// A controller driver talks to its chip through the Bus interface and does
// not care whether the electrical connection is a 4-bit parallel hookup, a
// full 8-bit bus or SPI. Two implementations are provided: Parallel for
// bit-banged 6800/8080 style buses on a gpio.Group, and SPI for chips with a
// serial interface and an A0/DC register select pin.
package lcdbus

import "time"

// Bus is a byte oriented transport to an LCD controller.
//
// WriteCommand and WriteData differ only in the state of the register select
// line. On a 4-bit parallel bus each byte is clocked as two nibbles, high
// nibble first, which the caller never sees.
type Bus interface {
	// WriteCommand writes a single command byte.
	WriteCommand(cmd byte) error
	// WriteData writes data bytes.
	WriteData(data []byte) error
	// ReadData fills data from the chip's data register. Fails with
	// lcd.ErrUnsupportedOperation on a write-only bus.
	ReadData(data []byte) error
	// ReadRegister reads the chip's status register. Fails with
	// lcd.ErrUnsupportedOperation on a write-only bus.
	ReadRegister() (byte, error)
	// Bits returns the transfer width, 4 or 8.
	Bits() int
	// CanRead returns true if the bus can read back from the chip.
	CanRead() bool
	// Halt releases the bus lines.
	Halt() error
}

// Timings is the set of minimum delays honored on a parallel bus.
//
// The zero value disables all waiting which is fine for emulated buses in
// tests. Chip packages export suitable defaults taken from their datasheets.
type Timings struct {
	// Setup is the delay after changing the register select line.
	Setup time.Duration
	// Clock is the width of a strobe pulse.
	Clock time.Duration
	// Read is the chip's output access time after the read strobe.
	Read time.Duration
	// Proc is the chip's processing time after a full byte.
	Proc time.Duration
	// Hold is the data hold time after the last read cycle.
	Hold time.Duration
}
