// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package st7565 controls the Sitronix ST7565 graphic LCD controller over
// SPI, found in 128x64 panels like the ERC12864.
//
// The chip has no text mode; the graphic memory is divided into 8 pixel
// tall pages addressed by column. Text rendering goes through the lcdfont
// and textlayout packages, one line per page.
//
// # Datasheet
//
// https://www.crystalfontz.com/controllers/Sitronix/ST7565R/
package st7565

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/pidisplays/lcd"
	"github.com/pidisplays/lcd/backlight"
	"github.com/pidisplays/lcd/lcdbus"
	"github.com/pidisplays/lcd/lcdfont"
	"github.com/pidisplays/lcd/textlayout"
)

const (
	cmdDisplayOn            byte = 0xae
	cmdSetStartLine         byte = 0x40
	cmdSetPageAddress       byte = 0xb0
	cmdSetColumnUpper       byte = 0x10
	cmdSetColumnLower       byte = 0x00
	cmdADCSelect            byte = 0xa0
	cmdDisplayReverse       byte = 0xa6
	cmdDisplayAllPoints     byte = 0xa4
	cmdSetLCDBias           byte = 0xa2
	cmdReadModifyWriteStart byte = 0xe0
	cmdReadModifyWriteStop  byte = 0xee
	cmdReset                byte = 0xe2
	cmdCommonOutputReverse  byte = 0xc0
	cmdSetPowerControl      byte = 0x28
	cmdSetResistorRatio     byte = 0x20
	cmdSetElectronicVolume  byte = 0x81
	cmdStaticIndicator      byte = 0xac
)

// DefaultContrast is the electronic volume programmed at startup.
const DefaultContrast = 0x19

// Opts holds the device configuration.
type Opts struct {
	// Width and Height of the panel in pixels. Height must be a multiple
	// of 8.
	Width  int
	Height int
	// LeftStart and RightStart are the first driven column in normal and
	// horizontally mirrored orientation. Panel modules rarely wire segment
	// 0 to the glass edge.
	LeftStart  int
	RightStart int
	// Reset is the RST line; leave nil if it is tied high.
	Reset gpio.PinOut
	// Backlight is optional.
	Backlight *backlight.Dev
}

// Dev is a handle to a ST7565 display.
type Dev struct {
	bus    lcdbus.Bus
	w      int
	h      int
	lstart int
	rstart int
	start  int
	rst    gpio.PinOut
	bl     *backlight.Dev

	sleep func(time.Duration)
}

// New initializes the display and runs the voltage staircase startup. The
// display comes up on, cleared, at DefaultContrast.
func New(bus lcdbus.Bus, opts *Opts) (*Dev, error) {
	if opts == nil || opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("st7565: width and height are required: %w", lcd.ErrConfiguration)
	}
	if opts.Height%8 != 0 {
		return nil, fmt.Errorf("st7565: height %d is not a multiple of 8: %w", opts.Height, lcd.ErrConfiguration)
	}
	if opts.LeftStart < 0 || opts.RightStart < 0 {
		return nil, fmt.Errorf("st7565: negative start column: %w", lcd.ErrConfiguration)
	}
	bl := opts.Backlight
	if bl == nil {
		bl = backlight.New(nil, false)
	}
	d := &Dev{
		bus:    bus,
		w:      opts.Width,
		h:      opts.Height,
		lstart: opts.LeftStart,
		rstart: opts.RightStart,
		start:  opts.LeftStart,
		rst:    opts.Reset,
		bl:     bl,
		sleep:  time.Sleep,
	}
	if err := d.Startup(); err != nil {
		return nil, err
	}
	return d, nil
}

// Startup resets the chip and brings the charge pump up one stage at a
// time. It can be called again to recover the chip after a power glitch.
func (d *Dev) Startup() error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return err
		}
		d.sleep(500 * time.Millisecond)
		if err := d.rst.Out(gpio.High); err != nil {
			return err
		}
	}
	if err := d.SetBias(9); err != nil {
		return err
	}
	if err := d.MirrorVertical(false); err != nil {
		return err
	}
	if err := d.MirrorHorizontal(false); err != nil {
		return err
	}
	if err := d.SetStartLine(0); err != nil {
		return err
	}
	// Voltage converter, then regulator, then follower.
	for _, s := range [3]struct {
		bits byte
		wait time.Duration
	}{
		{0x4, 50 * time.Millisecond},
		{0x6, 50 * time.Millisecond},
		{0x7, 10 * time.Millisecond},
	} {
		if err := d.bus.WriteCommand(cmdSetPowerControl | s.bits); err != nil {
			return err
		}
		d.sleep(s.wait)
	}
	if err := d.bus.WriteCommand(cmdSetResistorRatio | 0x4); err != nil {
		return err
	}
	if err := d.Display(true); err != nil {
		return err
	}
	if err := d.AllPoints(false); err != nil {
		return err
	}
	if err := d.SetContrast(DefaultContrast); err != nil {
		return err
	}
	return d.Clear()
}

// MoveTo points the write position at a column within a page. Pages count
// from the top of the screen.
func (d *Dev) MoveTo(x, page int) error {
	if x < 0 || x >= d.w || page < 0 || page >= d.h/8 {
		return fmt.Errorf("st7565: position (%d,%d) on a %dx%d page display: %w", x, page, d.w, d.h/8, lcd.ErrOutOfRange)
	}
	// The chip's pages count from the bottom.
	x += d.start
	if err := d.bus.WriteCommand(cmdSetPageAddress | byte(d.h/8-1-page)); err != nil {
		return err
	}
	if err := d.bus.WriteCommand(cmdSetColumnLower | byte(x&0xf)); err != nil {
		return err
	}
	return d.bus.WriteCommand(cmdSetColumnUpper | byte(x>>4&0xf))
}

// WriteData writes raw column bytes at the current position.
func (d *Dev) WriteData(data []byte) error {
	return d.bus.WriteData(data)
}

// Clear blanks the whole screen.
func (d *Dev) Clear() error {
	blank := make([]byte, d.w)
	for page := 0; page < d.h/8; page++ {
		if err := d.MoveTo(0, page); err != nil {
			return err
		}
		if err := d.bus.WriteData(blank); err != nil {
			return err
		}
	}
	return nil
}

// Message renders proportional font text, one line per page starting at
// firstPage. Lines wider than the screen are cropped per the alignment and
// reported with lcd.ErrOverflow after all lines are written.
func (d *Dev) Message(text string, align textlayout.Alignment, firstPage int) error {
	return d.message(text, lcdfont.Proportional, align, firstPage)
}

// MessageMono is Message with the fixed width 8x8 font.
func (d *Dev) MessageMono(text string, align textlayout.Alignment, firstPage int) error {
	return d.message(text, lcdfont.Mono8, align, firstPage)
}

func (d *Dev) message(text string, f lcdfont.Font, align textlayout.Alignment, firstPage int) error {
	var overflow error
	page := firstPage
	for _, line := range splitLines(text) {
		buf, err := textlayout.RenderLine(line, f, align, d.w)
		if err != nil {
			if buf == nil {
				return err
			}
			// Cropped content is still written.
			overflow = err
		}
		if err := d.MoveTo(0, page); err != nil {
			return err
		}
		if err := d.bus.WriteData(buf); err != nil {
			return err
		}
		page++
	}
	return overflow
}

func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	return append(lines, text[start:])
}

// Display turns the display on or off.
func (d *Dev) Display(on bool) error {
	return d.onOff(cmdDisplayOn, 0x01, on)
}

// AllPoints drives every pixel on regardless of memory, used by the power
// save modes.
func (d *Dev) AllPoints(on bool) error {
	return d.onOff(cmdDisplayAllPoints, 0x01, on)
}

// InvertDisplay shows memory inverted without rewriting it.
func (d *Dev) InvertDisplay(invert bool) error {
	return d.onOff(cmdDisplayReverse, 0x01, invert)
}

// MirrorHorizontal flips the common output scan direction. Takes effect on
// the next refresh of memory.
func (d *Dev) MirrorHorizontal(mirror bool) error {
	return d.onOff(cmdCommonOutputReverse, 0x08, mirror)
}

// MirrorVertical flips the segment driver direction and switches the column
// offset between LeftStart and RightStart.
func (d *Dev) MirrorVertical(mirror bool) error {
	if mirror {
		d.start = d.rstart
	} else {
		d.start = d.lstart
	}
	return d.onOff(cmdADCSelect, 0x01, mirror)
}

func (d *Dev) onOff(cmd, bit byte, on bool) error {
	if on {
		return d.bus.WriteCommand(cmd | bit)
	}
	return d.bus.WriteCommand(cmd &^ bit)
}

// SetContrast sets the electronic volume, 0 to 63.
func (d *Dev) SetContrast(level int) error {
	if level < 0 || level > 0x3f {
		return fmt.Errorf("st7565: contrast %d: %w", level, lcd.ErrOutOfRange)
	}
	if err := d.bus.WriteCommand(cmdSetElectronicVolume); err != nil {
		return err
	}
	return d.bus.WriteCommand(byte(level))
}

// SetStartLine sets the memory line shown at the top of the screen, 0 to
// 63, for hardware scrolling.
func (d *Dev) SetStartLine(line int) error {
	if line < 0 || line > 0x3f {
		return fmt.Errorf("st7565: start line %d: %w", line, lcd.ErrOutOfRange)
	}
	return d.bus.WriteCommand(cmdSetStartLine | byte(line))
}

// SetBias selects the LCD bias ratio, 7 or 9.
func (d *Dev) SetBias(bias int) error {
	switch bias {
	case 9:
		return d.bus.WriteCommand(cmdSetLCDBias)
	case 7:
		return d.bus.WriteCommand(cmdSetLCDBias | 0x01)
	}
	return fmt.Errorf("st7565: bias 1/%d: %w", bias, lcd.ErrOutOfRange)
}

// ReadModifyWrite brackets a read-modify-write session: the column address
// is saved on start and restored on stop.
//
// The chip cannot be read over SPI, so this is only useful on a parallel
// bus with a read line.
func (d *Dev) ReadModifyWrite(start bool) error {
	if start {
		if !d.bus.CanRead() {
			return fmt.Errorf("st7565: read-modify-write on a write-only bus: %w", lcd.ErrUnsupportedOperation)
		}
		return d.bus.WriteCommand(cmdReadModifyWriteStart)
	}
	return d.bus.WriteCommand(cmdReadModifyWriteStop)
}

// StaticIndicator controls the dedicated indicator segment; register sets
// its blink pattern, 0 to 3.
func (d *Dev) StaticIndicator(on bool, register int) error {
	if register < 0 || register > 3 {
		return fmt.Errorf("st7565: indicator register %d: %w", register, lcd.ErrOutOfRange)
	}
	if !on {
		return d.bus.WriteCommand(cmdStaticIndicator)
	}
	if err := d.bus.WriteCommand(cmdStaticIndicator | 0x01); err != nil {
		return err
	}
	return d.bus.WriteCommand(byte(register))
}

// Normal leaves sleep or standby mode.
func (d *Dev) Normal() error {
	if err := d.AllPoints(false); err != nil {
		return err
	}
	if err := d.Display(true); err != nil {
		return err
	}
	return d.StaticIndicator(true, 0x03)
}

// Sleep enters the lowest power mode. The display blanks; memory is
// retained.
func (d *Dev) Sleep() error {
	if err := d.StaticIndicator(false, 0); err != nil {
		return err
	}
	if err := d.Display(false); err != nil {
		return err
	}
	return d.AllPoints(true)
}

// Standby enters standby mode: like Sleep but the indicator keeps blinking
// and wake-up is faster.
func (d *Dev) Standby() error {
	if err := d.StaticIndicator(true, 0x03); err != nil {
		return err
	}
	if err := d.Display(false); err != nil {
		return err
	}
	return d.AllPoints(true)
}

// SoftReset issues the reset command. It clears the internal registers but
// not the display memory.
func (d *Dev) SoftReset() error {
	return d.bus.WriteCommand(cmdReset)
}

// SetBacklight sets the backlight intensity between 0 and 1. Without a
// backlight pin this is a no-op.
func (d *Dev) SetBacklight(level float64) error {
	return d.bl.SetLevel(level)
}

func (d *Dev) String() string {
	return fmt.Sprintf("st7565.Dev{%dx%d}", d.w, d.h)
}

// Halt clears the screen and puts the chip to sleep.
func (d *Dev) Halt() error {
	_ = d.Clear()
	_ = d.Sleep()
	_ = d.bl.Halt()
	return d.bus.Halt()
}
