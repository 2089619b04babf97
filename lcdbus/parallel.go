// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdbus

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"

	"github.com/pidisplays/lcd"
)

// Protocol selects the parallel bus handshake.
type Protocol int

const (
	// Motorola6800 uses a single E clock pulsed high, with an optional R/W
	// direction line. HD44780 and ST7920 chips use this handshake.
	Motorola6800 Protocol = iota
	// Intel8080 uses separate active-low WR and RD strobes. RA6963 chips use
	// this handshake.
	Intel8080
)

func (p Protocol) String() string {
	if p == Intel8080 {
		return "8080"
	}
	return "6800"
}

// Parallel is a bit-banged parallel Bus on a gpio.Group.
//
// The first 4 or 8 pins of the data group must be connected to the chip's
// data lines, least significant first. With 4 pins connect D4-D7 and each
// byte is clocked as two nibbles, high nibble first. With 8 or more pins
// connect D0-D7.
//
// rs is the register select line (RS on 6800 chips, C/D on 8080 chips) and
// strobe is the clock line (E or WR). rw is the direction line (R/W or RD);
// pass nil for a write-only hookup with the chip's R/W pin grounded.
type Parallel struct {
	data   gpio.Group
	rs     gpio.PinOut
	strobe gpio.PinOut
	rw     gpio.PinOut
	proto  Protocol
	bits   int
	t      Timings
}

// NewParallel returns a Parallel bus over the supplied pins.
//
// The strobe line is driven to its idle state (low for 6800, high for 8080).
// timings may be nil to disable all delays.
func NewParallel(data gpio.Group, rs, strobe, rw gpio.PinOut, proto Protocol, timings *Timings) (*Parallel, error) {
	if data == nil || rs == nil || strobe == nil {
		return nil, fmt.Errorf("lcdbus: data group, rs and strobe are required: %w", lcd.ErrConfiguration)
	}
	n := len(data.Pins())
	if n < 4 {
		return nil, fmt.Errorf("lcdbus: need at least 4 data pins, have %d: %w", n, lcd.ErrConfiguration)
	}
	bits := 4
	if n >= 8 {
		bits = 8
	}
	p := &Parallel{
		data:   data,
		rs:     rs,
		strobe: strobe,
		rw:     rw,
		proto:  proto,
		bits:   bits,
	}
	if timings != nil {
		p.t = *timings
	}
	if err := strobe.Out(p.strobeIdle()); err != nil {
		return nil, fmt.Errorf("lcdbus: %w", err)
	}
	if rw != nil {
		// Chip in write mode. On 8080 the RD strobe idles high.
		lvl := gpio.Low
		if proto == Intel8080 {
			lvl = gpio.High
		}
		if err := rw.Out(lvl); err != nil {
			return nil, fmt.Errorf("lcdbus: %w", err)
		}
	}
	return p, nil
}

// Bits implements Bus.
func (p *Parallel) Bits() int {
	return p.bits
}

// CanRead implements Bus.
func (p *Parallel) CanRead() bool {
	return p.rw != nil
}

func (p *Parallel) String() string {
	return fmt.Sprintf("lcdbus.Parallel{%s, %s, %d bits}", p.data.String(), p.proto, p.bits)
}

// WriteCommand implements Bus.
func (p *Parallel) WriteCommand(cmd byte) error {
	log.Debugf("lcdbus: command %#02x", cmd)
	if err := p.setRS(false); err != nil {
		return err
	}
	return p.writeByte(cmd)
}

// WriteData implements Bus.
func (p *Parallel) WriteData(data []byte) error {
	log.Debugf("lcdbus: data % 02x", data)
	if err := p.setRS(true); err != nil {
		return err
	}
	for _, b := range data {
		if err := p.writeByte(b); err != nil {
			return err
		}
	}
	return nil
}

// ReadData implements Bus.
func (p *Parallel) ReadData(data []byte) error {
	if p.rw == nil {
		return fmt.Errorf("lcdbus: bus is write-only: %w", lcd.ErrUnsupportedOperation)
	}
	if err := p.setRS(true); err != nil {
		return err
	}
	for i := range data {
		b, err := p.readByte()
		if err != nil {
			return err
		}
		data[i] = b
	}
	return nil
}

// ReadRegister implements Bus.
func (p *Parallel) ReadRegister() (byte, error) {
	if p.rw == nil {
		return 0, fmt.Errorf("lcdbus: bus is write-only: %w", lcd.ErrUnsupportedOperation)
	}
	if err := p.setRS(false); err != nil {
		return 0, err
	}
	return p.readByte()
}

// Halt implements Bus. It releases the data group.
func (p *Parallel) Halt() error {
	return p.data.Halt()
}

func (p *Parallel) strobeIdle() gpio.Level {
	// E idles low, WR idles high.
	return gpio.Level(p.proto == Intel8080)
}

// setRS drives the register select line. On 6800 chips RS is high for data,
// on 8080 chips C/D is low for data.
func (p *Parallel) setRS(dataMode bool) error {
	lvl := gpio.Level(dataMode)
	if p.proto == Intel8080 {
		lvl = !lvl
	}
	if err := p.rs.Out(lvl); err != nil {
		return err
	}
	time.Sleep(p.t.Setup)
	return nil
}

func (p *Parallel) writeByte(b byte) error {
	if p.bits == 4 {
		if err := p.writeCycle(gpio.GPIOValue(b>>4), 0x0f); err != nil {
			return err
		}
		if err := p.writeCycle(gpio.GPIOValue(b&0x0f), 0x0f); err != nil {
			return err
		}
	} else {
		if err := p.writeCycle(gpio.GPIOValue(b), 0xff); err != nil {
			return err
		}
	}
	time.Sleep(p.t.Proc)
	return nil
}

// writeCycle puts value on the data lines and pulses the strobe. The 6800 E
// clock pulses high, the 8080 WR strobe pulses low.
func (p *Parallel) writeCycle(value, mask gpio.GPIOValue) error {
	if err := p.data.Out(value, mask); err != nil {
		return err
	}
	active, idle := gpio.High, gpio.Low
	if p.proto == Intel8080 {
		active, idle = gpio.Low, gpio.High
	}
	if err := p.strobe.Out(active); err != nil {
		return err
	}
	time.Sleep(p.t.Clock)
	if err := p.strobe.Out(idle); err != nil {
		return err
	}
	time.Sleep(p.t.Clock)
	return nil
}

func (p *Parallel) readByte() (byte, error) {
	if p.proto == Motorola6800 {
		// R/W high puts the chip in read mode.
		if err := p.rw.Out(gpio.High); err != nil {
			return 0, err
		}
	}
	var b byte
	cycles := 8 / p.bits
	mask := gpio.GPIOValue(1)<<p.bits - 1
	for i := 0; i < cycles; i++ {
		v, err := p.readCycle(mask)
		if err != nil {
			return 0, err
		}
		b = b<<p.bits | byte(v)
	}
	if p.proto == Motorola6800 {
		if err := p.rw.Out(gpio.Low); err != nil {
			return 0, err
		}
	}
	hold := p.t.Proc
	if p.t.Hold > hold {
		hold = p.t.Hold
	}
	time.Sleep(hold)
	return b, nil
}

// readCycle pulses the read strobe (E high on 6800, RD low on 8080) and
// samples the data lines while it is asserted.
func (p *Parallel) readCycle(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	clk := p.strobe
	active, idle := gpio.High, gpio.Low
	if p.proto == Intel8080 {
		clk = p.rw
		active, idle = gpio.Low, gpio.High
	}
	if err := clk.Out(active); err != nil {
		return 0, err
	}
	time.Sleep(p.t.Read)
	v, err := p.data.Read(mask)
	if err != nil {
		return 0, err
	}
	if err := clk.Out(idle); err != nil {
		return 0, err
	}
	time.Sleep(p.t.Clock)
	return v, nil
}

var _ Bus = &Parallel{}
