// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package st7920 controls the Sitronix ST7920 LCD controller driving the
// common 128x64 panels, which fold the chip's native 256x32 layout in half.
//
// The chip has a basic command set for the character display and an
// extended one for the graphic display; the same opcodes mean different
// things depending on the persisted function set flag. Calling an operation
// that is invalid in the current mode fails with
// lcd.ErrUnsupportedOperation instead of corrupting the screen.
//
// # Datasheet
//
// https://www.crystalfontz.com/controllers/Sitronix/ST7920/
package st7920

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/pidisplays/lcd"
	"github.com/pidisplays/lcd/backlight"
	"github.com/pidisplays/lcd/lcdbus"
	"github.com/pidisplays/lcd/textlayout"
)

const (
	cmdClear         byte = 0x01
	cmdHome          byte = 0x02
	cmdEntry         byte = 0x04
	cmdDisplayStatus byte = 0x08
	cmdShift         byte = 0x10
	cmdFunctionSet   byte = 0x20
	cmdCGRAMAddress  byte = 0x40
	cmdDDRAMAddress  byte = 0x80

	// Extended command set.
	cmdStandby      byte = 0x01
	cmdScrollRAM    byte = 0x02
	cmdReverse      byte = 0x04
	cmdIRAMAddress  byte = 0x40
	cmdGDRAMAddress byte = 0x80

	optEntryRight   byte = 0x02
	optEntryDisplay byte = 0x01

	optDisplayOn byte = 0x04
	optCursorOn  byte = 0x02
	optBlinkOn   byte = 0x01

	optShiftDisplay byte = 0x08
	optShiftRight   byte = 0x04

	opt8Bit      byte = 0x10
	optExtended  byte = 0x04
	optGraphicOn byte = 0x02

	optScroll byte = 0x01
)

// fullWidthMark introduces a 16 pixel wide character code pair in DDRAM.
const fullWidthMark byte = 0xa3

const (
	// The display geometry after the 256x32 fold.
	charCols = 16
	charRows = 8
	glyphLen = 32
	cgSlots  = 4
)

// settleTime is the post clear wait.
const settleTime = 3 * time.Millisecond

// DefaultTimings are bus delays with a margin over the datasheet figures,
// using the 6800 handshake.
var DefaultTimings = lcdbus.Timings{
	Setup: 10 * time.Nanosecond,
	Clock: 100 * time.Nanosecond,
	Read:  360 * time.Nanosecond,
	Proc:  47 * time.Microsecond,
	Hold:  20 * time.Nanosecond,
}

// Opts holds the device configuration.
type Opts struct {
	// Reset is the RST line; leave nil if it is tied high.
	Reset gpio.PinOut
	// Backlight is optional.
	Backlight *backlight.Dev
}

// Dev is a handle to a ST7920 display.
type Dev struct {
	bus lcdbus.Bus
	rst gpio.PinOut
	bl  *backlight.Dev

	entry         byte
	displayStatus byte
	functionSet   byte
	// The first read after a write returns a dummy byte.
	lastWrite bool

	sleep func(time.Duration)
}

// New initializes the display in basic mode, cleared and on.
func New(bus lcdbus.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	bl := opts.Backlight
	if bl == nil {
		bl = backlight.New(nil, false)
	}
	d := &Dev{
		bus:   bus,
		rst:   opts.Reset,
		bl:    bl,
		sleep: time.Sleep,
	}
	if err := d.Startup(); err != nil {
		return nil, err
	}
	return d, nil
}

// Startup resets the chip and synchronizes the bus width. It can be called
// again to recover a display that got out of sync.
//
// On a 4-bit bus the chip may power on with an unknown nibble phase, so the
// 8-bit function set is clocked in three times before switching the width:
// a chip stuck mid-byte consumes a nibble pair per command and converges to
// byte alignment within three attempts.
func (d *Dev) Startup() error {
	if d.rst != nil {
		for _, l := range [3]gpio.Level{gpio.High, gpio.Low, gpio.High} {
			if err := d.rst.Out(l); err != nil {
				return err
			}
			d.sleep(100 * time.Millisecond)
		}
	}
	d.entry = optEntryRight
	d.displayStatus = 0
	if d.bus.Bits() == 4 {
		d.functionSet = 0
		// Two packed bytes carry three "8-bit" function sets and one
		// "4-bit" one on the wire.
		if err := d.bus.WriteCommand(0x33); err != nil {
			return err
		}
		d.sleep(time.Millisecond)
		if err := d.bus.WriteCommand(0x32); err != nil {
			return err
		}
		d.sleep(time.Millisecond)
	} else {
		d.functionSet = opt8Bit
		if err := d.bus.WriteCommand(cmdFunctionSet | opt8Bit); err != nil {
			return err
		}
	}
	d.lastWrite = true
	if err := d.ClearChar(); err != nil {
		return err
	}
	return d.Display(true)
}

func (d *Dev) extended() bool {
	return d.functionSet&optExtended != 0
}

func (d *Dev) basicOnly(op string) error {
	if d.extended() {
		return fmt.Errorf("st7920: %s in extended mode: %w", op, lcd.ErrUnsupportedOperation)
	}
	return nil
}

func (d *Dev) extendedOnly(op string) error {
	if !d.extended() {
		return fmt.Errorf("st7920: %s in basic mode: %w", op, lcd.ErrUnsupportedOperation)
	}
	return nil
}

func (d *Dev) command(cmd byte) error {
	d.lastWrite = true
	return d.bus.WriteCommand(cmd)
}

// Extended switches between the basic and extended command sets. Valid in
// either mode.
func (d *Dev) Extended(on bool) error {
	if on {
		d.functionSet |= optExtended
	} else {
		d.functionSet &^= optExtended
	}
	return d.command(cmdFunctionSet | d.functionSet)
}

// Graphic turns the graphic layer on or off.
func (d *Dev) Graphic(on bool) error {
	if err := d.extendedOnly("Graphic"); err != nil {
		return err
	}
	if on {
		d.functionSet |= optGraphicOn
	} else {
		d.functionSet &^= optGraphicOn
	}
	return d.command(cmdFunctionSet | d.functionSet)
}

// ClearChar clears the character display and homes the cursor.
func (d *Dev) ClearChar() error {
	if err := d.basicOnly("ClearChar"); err != nil {
		return err
	}
	if err := d.command(cmdClear); err != nil {
		return err
	}
	d.sleep(settleTime)
	return nil
}

// ClearGraphic zeroes the whole graphic memory.
func (d *Dev) ClearGraphic() error {
	if err := d.extendedOnly("ClearGraphic"); err != nil {
		return err
	}
	blank := make([]byte, 32)
	for y := 0; y < 64; y++ {
		if err := d.command(cmdGDRAMAddress | byte(y)); err != nil {
			return err
		}
		if err := d.command(cmdGDRAMAddress); err != nil {
			return err
		}
		if err := d.WriteData(blank); err != nil {
			return err
		}
	}
	return nil
}

// CharHome moves the character memory pointer to the first cell.
func (d *Dev) CharHome() error {
	if err := d.basicOnly("CharHome"); err != nil {
		return err
	}
	return d.command(cmdHome)
}

// SetCharPosition moves the character memory pointer to a cell. col counts
// 16 pixel wide cells, 0 to 7; the row wraps modulo 8.
//
// DDRAM rows are stored in the hardware order {0,2,1,3,4,6,5,7}; the
// address bits reproduce that permutation.
func (d *Dev) SetCharPosition(col, row int) error {
	if err := d.basicOnly("SetCharPosition"); err != nil {
		return err
	}
	if col < 0 || col >= charCols/2 {
		return fmt.Errorf("st7920: column %d: %w", col, lcd.ErrOutOfRange)
	}
	row %= charRows
	if row < 0 {
		row += charRows
	}
	addr := byte(row&0x04>>1+row&0x01)<<4 | byte(row&0x02<<2) | byte(col)
	return d.command(cmdDDRAMAddress | addr)
}

// SetCGPosition moves the character generator pointer, in 2 byte units, 0
// to 63.
func (d *Dev) SetCGPosition(value int) error {
	if err := d.basicOnly("SetCGPosition"); err != nil {
		return err
	}
	if value < 0 || value > 0x3f {
		return fmt.Errorf("st7920: CG position %d: %w", value, lcd.ErrOutOfRange)
	}
	return d.command(cmdCGRAMAddress | byte(value))
}

// SetGraphicPosition moves the graphic memory pointer. x counts 16 bit
// words, 0 to 7; y counts raster lines, 0 to 127.
//
// The fold of the native 256x32 layout interleaves the vertical halves, so
// the y bits end up split across the two address bytes.
func (d *Dev) SetGraphicPosition(x, y int) error {
	if err := d.extendedOnly("SetGraphicPosition"); err != nil {
		return err
	}
	if x < 0 || x > 7 || y < 0 || y > 127 {
		return fmt.Errorf("st7920: graphic position (%d,%d): %w", x, y, lcd.ErrOutOfRange)
	}
	if err := d.command(cmdGDRAMAddress | byte(y&0x40>>1|y&0x1f)); err != nil {
		return err
	}
	return d.command(cmdGDRAMAddress | byte(y&0x20>>2|x))
}

// SetScrollAddress sets the vertical scroll offset when scrolling is
// enabled, 0 to 63.
func (d *Dev) SetScrollAddress(value int) error {
	if err := d.extendedOnly("SetScrollAddress"); err != nil {
		return err
	}
	if value < 0 || value > 0x3f {
		return fmt.Errorf("st7920: scroll address %d: %w", value, lcd.ErrOutOfRange)
	}
	return d.command(cmdIRAMAddress | byte(value))
}

// Scroll enables vertical scrolling through SetScrollAddress.
func (d *Dev) Scroll(on bool) error {
	if err := d.extendedOnly("Scroll"); err != nil {
		return err
	}
	if on {
		return d.command(cmdScrollRAM | optScroll)
	}
	return d.command(cmdScrollRAM)
}

// Display turns the display on or off.
func (d *Dev) Display(on bool) error {
	if err := d.basicOnly("Display"); err != nil {
		return err
	}
	return d.status(optDisplayOn, on)
}

// ShowCursor shows or hides the cursor.
func (d *Dev) ShowCursor(show bool) error {
	if err := d.basicOnly("ShowCursor"); err != nil {
		return err
	}
	return d.status(optCursorOn, show)
}

// Blink makes the cursor cell blink.
func (d *Dev) Blink(blink bool) error {
	if err := d.basicOnly("Blink"); err != nil {
		return err
	}
	return d.status(optBlinkOn, blink)
}

func (d *Dev) status(bit byte, on bool) error {
	if on {
		d.displayStatus |= bit
	} else {
		d.displayStatus &^= bit
	}
	return d.command(cmdDisplayStatus | d.displayStatus)
}

// EntryRight selects whether the pointer moves right or left after each
// write.
func (d *Dev) EntryRight(right bool) error {
	if err := d.basicOnly("EntryRight"); err != nil {
		return err
	}
	if right {
		d.entry |= optEntryRight
	} else {
		d.entry &^= optEntryRight
	}
	return d.command(cmdEntry | d.entry)
}

// EntryShiftDisplay shifts the whole display instead of the cursor on each
// write.
func (d *Dev) EntryShiftDisplay(shift bool) error {
	if err := d.basicOnly("EntryShiftDisplay"); err != nil {
		return err
	}
	if shift {
		d.entry |= optEntryDisplay
	} else {
		d.entry &^= optEntryDisplay
	}
	return d.command(cmdEntry | d.entry)
}

// ShiftCursor moves the cursor one cell right or left.
func (d *Dev) ShiftCursor(right bool) error {
	if err := d.basicOnly("ShiftCursor"); err != nil {
		return err
	}
	if right {
		return d.command(cmdShift | optShiftRight)
	}
	return d.command(cmdShift)
}

// ShiftDisplay moves the whole display one cell right or left.
func (d *Dev) ShiftDisplay(right bool) error {
	if err := d.basicOnly("ShiftDisplay"); err != nil {
		return err
	}
	if right {
		return d.command(cmdShift | optShiftDisplay | optShiftRight)
	}
	return d.command(cmdShift | optShiftDisplay)
}

// Standby puts the chip in standby. Any other command leaves it.
func (d *Dev) Standby() error {
	if err := d.extendedOnly("Standby"); err != nil {
		return err
	}
	return d.command(cmdStandby)
}

// ToggleReverse inverts one of the folded display lines, 0 or 1.
func (d *Dev) ToggleReverse(line int) error {
	if err := d.extendedOnly("ToggleReverse"); err != nil {
		return err
	}
	if line < 0 || line > 1 {
		return fmt.Errorf("st7920: reverse line %d: %w", line, lcd.ErrOutOfRange)
	}
	return d.command(cmdReverse | byte(line))
}

// DefineGlyph loads one 16x16 custom glyph, 32 bytes, two per row top to
// bottom. The slot index wraps over the 4 slots; slot n is displayed with
// the character code pair {0x00, n*2}.
func (d *Dev) DefineGlyph(slot int, glyph [glyphLen]byte) error {
	slot &= cgSlots - 1
	if err := d.SetCGPosition(slot * 16); err != nil {
		return err
	}
	return d.WriteData(glyph[:])
}

// MessageFull writes text in the chip's 16x16 full width font, one line per
// cell row starting at firstRow. Each screen row fits 8 full width cells.
// Lines that do not fit are cropped per the alignment and reported with
// lcd.ErrOverflow after all lines are written.
func (d *Dev) MessageFull(text string, align textlayout.Alignment, firstRow int) error {
	if err := d.basicOnly("MessageFull"); err != nil {
		return err
	}
	var overflow error
	row := firstRow
	for _, line := range splitLines(text) {
		padded, err := textlayout.PadRunes(line, charCols/2, align)
		if err != nil {
			overflow = err
		}
		buf := make([]byte, 0, charCols)
		for i := 0; i < len(padded); i++ {
			if padded[i] == ' ' {
				buf = append(buf, 0x20, 0x20)
			} else {
				buf = append(buf, fullWidthMark, padded[i])
			}
		}
		if err := d.writeRow(buf, row); err != nil {
			return err
		}
		row++
	}
	return overflow
}

// MessageHalf writes text in the chip's 8x16 half width font, one line per
// cell row starting at firstRow. Each screen row fits 16 half width cells.
// Lines that do not fit are cropped per the alignment and reported with
// lcd.ErrOverflow after all lines are written.
func (d *Dev) MessageHalf(text string, align textlayout.Alignment, firstRow int) error {
	if err := d.basicOnly("MessageHalf"); err != nil {
		return err
	}
	var overflow error
	row := firstRow
	for _, line := range splitLines(text) {
		padded, err := textlayout.PadRunes(line, charCols, align)
		if err != nil {
			overflow = err
		}
		if err := d.writeRow([]byte(padded), row); err != nil {
			return err
		}
		row++
	}
	return overflow
}

func (d *Dev) writeRow(buf []byte, row int) error {
	if err := d.SetCharPosition(0, row); err != nil {
		return err
	}
	return d.WriteData(buf)
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

// WriteData writes raw bytes at the current memory pointer. The chip
// consumes 16 bit units, so the length must be even.
func (d *Dev) WriteData(data []byte) error {
	if len(data)%2 == 1 {
		return fmt.Errorf("st7920: odd write length %d: %w", len(data), lcd.ErrOutOfRange)
	}
	d.lastWrite = true
	return d.bus.WriteData(data)
}

// ReadData reads bytes from the current memory pointer. The first read
// after a write returns a dummy byte, which is consumed transparently.
func (d *Dev) ReadData(data []byte) error {
	if d.lastWrite {
		var dummy [1]byte
		if err := d.bus.ReadData(dummy[:]); err != nil {
			return err
		}
	}
	if err := d.bus.ReadData(data); err != nil {
		return err
	}
	d.lastWrite = false
	return nil
}

// ReadStatus reads the busy flag and address counter.
func (d *Dev) ReadStatus() (byte, error) {
	return d.bus.ReadRegister()
}

// SetBacklight sets the backlight intensity between 0 and 1. Without a
// backlight pin this is a no-op.
func (d *Dev) SetBacklight(level float64) error {
	return d.bl.SetLevel(level)
}

func (d *Dev) String() string {
	return "st7920.Dev{128x64}"
}

// Halt returns to basic mode, clears the screen and turns the display and
// backlight off.
func (d *Dev) Halt() error {
	_ = d.Extended(false)
	_ = d.ClearChar()
	_ = d.Display(false)
	_ = d.bl.Halt()
	return d.bus.Halt()
}
