// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780 controls the Hitachi HD44780 character LCD chipset and
// its many clones.
//
// The chip is addressed in character cells, up to 4 rows of up to 40
// columns. It is usually wired as a 4-bit 6800 style parallel bus, with or
// without the R/W line.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package hd44780

import (
	"fmt"
	"time"

	"github.com/pidisplays/lcd"
	"github.com/pidisplays/lcd/backlight"
	"github.com/pidisplays/lcd/lcdbus"
	"github.com/pidisplays/lcd/textlayout"
)

const (
	cmdClearDisplay       byte = 0x01
	cmdReturnHome         byte = 0x02
	cmdEntryModeSet       byte = 0x04
	cmdDisplayControl     byte = 0x08
	cmdCursorDisplayShift byte = 0x10
	cmdFunctionSet        byte = 0x20
	cmdSetCGRAMAddr       byte = 0x40
	cmdSetDDRAMAddr       byte = 0x80

	optEntryShift  byte = 0x01
	optEntryRight  byte = 0x02
	optBlinkOn     byte = 0x01
	optCursorOn    byte = 0x02
	optDisplayOn   byte = 0x04
	optMoveRight   byte = 0x04
	optDisplayMove byte = 0x08
	opt2Line       byte = 0x08
	opt8BitMode    byte = 0x10
)

// rowOffsets holds the DDRAM address of column 0 for each row.
var rowOffsets = [4]byte{0x00, 0x40, 0x20, 0x60}

// settleTime is the execution time of the clear and home commands, which is
// far longer than any other command.
const settleTime = 2 * time.Millisecond

// DefaultTimings are suitable bus delays for the chip, taken from the
// datasheet with a generous processing margin.
var DefaultTimings = lcdbus.Timings{
	Setup: 60 * time.Nanosecond,
	Clock: 600 * time.Nanosecond,
	Read:  200 * time.Nanosecond,
	Proc:  60 * time.Microsecond,
}

// Opts holds the device configuration.
type Opts struct {
	// Rows and Cols describe the display geometry in character cells.
	Rows int
	Cols int
	// Backlight is optional; leave nil for a display without one.
	Backlight *backlight.Dev
}

// DefaultOpts describes the common 16x2 display.
var DefaultOpts = Opts{Rows: 2, Cols: 16}

// Dev is a handle to a HD44780 display.
//
// The entry mode and display control registers are write-only, so their
// current value is shadowed in the Dev and rebuilt on every change.
type Dev struct {
	bus  lcdbus.Bus
	rows int
	cols int
	bl   *backlight.Dev

	entryMode      byte
	displayControl byte

	// sleep performs the blocking settle waits, swapped out in tests.
	sleep func(time.Duration)
}

// New initializes a display over the supplied bus and runs the startup
// sequence, leaving the display on, cleared and in left to right mode.
func New(bus lcdbus.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Rows < 1 || opts.Rows > len(rowOffsets) {
		return nil, fmt.Errorf("hd44780: %d rows: %w", opts.Rows, lcd.ErrConfiguration)
	}
	if opts.Cols < 1 || opts.Cols > 40 {
		return nil, fmt.Errorf("hd44780: %d cols: %w", opts.Cols, lcd.ErrConfiguration)
	}
	bl := opts.Backlight
	if bl == nil {
		bl = backlight.New(nil, false)
	}
	d := &Dev{
		bus:   bus,
		rows:  opts.Rows,
		cols:  opts.Cols,
		bl:    bl,
		sleep: time.Sleep,
	}
	if err := d.Startup(); err != nil {
		return nil, err
	}
	return d, nil
}

// Startup runs the chip's initialization sequence. It can be called again at
// any time to reset a display that got out of sync.
//
// Three "8-bit mode" function sets put the chip in 8-bit mode no matter what
// state it was in; one "4-bit mode" function set then switches it down. On a
// 4-bit bus the two packed command bytes below clock out exactly that nibble
// sequence.
func (d *Dev) Startup() error {
	if d.bus.Bits() == 4 {
		if err := d.bus.WriteCommand(cmdFunctionSet | opt8BitMode | (cmdFunctionSet|opt8BitMode)>>4); err != nil { // 0b00110011
			return err
		}
		d.sleep(4100 * time.Microsecond)
		if err := d.bus.WriteCommand(cmdFunctionSet | opt8BitMode | cmdFunctionSet>>4); err != nil { // 0b00110010
			return err
		}
	} else {
		for i := 0; i < 3; i++ {
			if err := d.bus.WriteCommand(cmdFunctionSet | opt8BitMode); err != nil {
				return err
			}
			if i == 0 {
				d.sleep(4100 * time.Microsecond)
			}
		}
	}
	fs := cmdFunctionSet
	if d.bus.Bits() == 8 {
		fs |= opt8BitMode
	}
	if d.rows > 1 {
		fs |= opt2Line
	}
	if err := d.bus.WriteCommand(fs); err != nil {
		return err
	}
	d.displayControl = optDisplayOn
	if err := d.bus.WriteCommand(cmdDisplayControl | d.displayControl); err != nil {
		return err
	}
	d.entryMode = optEntryRight
	if err := d.bus.WriteCommand(cmdEntryModeSet | d.entryMode); err != nil {
		return err
	}
	return d.Clear()
}

// Clear clears the display and moves the cursor home. It blocks for the
// chip's 1.52ms execution time.
func (d *Dev) Clear() error {
	if err := d.bus.WriteCommand(cmdClearDisplay); err != nil {
		return err
	}
	d.sleep(settleTime)
	return nil
}

// Home moves the cursor home without clearing. It blocks like Clear.
func (d *Dev) Home() error {
	if err := d.bus.WriteCommand(cmdReturnHome); err != nil {
		return err
	}
	d.sleep(settleTime)
	return nil
}

// Display turns the display on or off without losing its content.
func (d *Dev) Display(on bool) error {
	return d.control(optDisplayOn, on)
}

// ShowCursor shows or hides the underline cursor.
func (d *Dev) ShowCursor(show bool) error {
	return d.control(optCursorOn, show)
}

// Blink turns cursor blinking on or off.
func (d *Dev) Blink(blink bool) error {
	return d.control(optBlinkOn, blink)
}

func (d *Dev) control(bit byte, on bool) error {
	if on {
		d.displayControl |= bit
	} else {
		d.displayControl &^= bit
	}
	return d.bus.WriteCommand(cmdDisplayControl | d.displayControl)
}

// AutoScroll shifts the display on every character written so the cursor
// appears to stay put.
func (d *Dev) AutoScroll(on bool) error {
	return d.entry(optEntryShift, on)
}

// SetLeftToRight makes writes advance the cursor to the right.
func (d *Dev) SetLeftToRight() error {
	return d.entry(optEntryRight, true)
}

// SetRightToLeft makes writes advance the cursor to the left.
func (d *Dev) SetRightToLeft() error {
	return d.entry(optEntryRight, false)
}

func (d *Dev) entry(bit byte, on bool) error {
	if on {
		d.entryMode |= bit
	} else {
		d.entryMode &^= bit
	}
	return d.bus.WriteCommand(cmdEntryModeSet | d.entryMode)
}

// MoveCursorLeft moves the cursor one cell left.
func (d *Dev) MoveCursorLeft() error {
	return d.bus.WriteCommand(cmdCursorDisplayShift)
}

// MoveCursorRight moves the cursor one cell right.
func (d *Dev) MoveCursorRight() error {
	return d.bus.WriteCommand(cmdCursorDisplayShift | optMoveRight)
}

// MoveDisplayLeft shifts the whole display one cell left.
func (d *Dev) MoveDisplayLeft() error {
	return d.bus.WriteCommand(cmdCursorDisplayShift | optDisplayMove)
}

// MoveDisplayRight shifts the whole display one cell right.
func (d *Dev) MoveDisplayRight() error {
	return d.bus.WriteCommand(cmdCursorDisplayShift | optDisplayMove | optMoveRight)
}

// SetCursor moves the cursor to the given cell. row wraps around the display
// height; col past the configured width fails with lcd.ErrOutOfRange.
func (d *Dev) SetCursor(col, row int) error {
	if col < 0 || col >= d.cols {
		return fmt.Errorf("hd44780: column %d on a %d column display: %w", col, d.cols, lcd.ErrOutOfRange)
	}
	row = row % d.rows
	return d.bus.WriteCommand(cmdSetDDRAMAddr | (byte(col) + rowOffsets[row]))
}

// Text writes a full line of text at the current cursor position, padded
// with spaces to the display width. Text longer than the line is cropped and
// reported with lcd.ErrOverflow after the write.
func (d *Dev) Text(text string) error {
	padded, lerr := textlayout.PadRunes(text, d.cols, textlayout.Left)
	if err := d.bus.WriteData([]byte(padded)); err != nil {
		return err
	}
	return lerr
}

// Message writes a multi line message starting from the home position.
//
// A CR LF pair moves to the next row, at the column matching the current
// writing direction. A bare LF has no special meaning and is handed to the
// chip as data, like any other byte.
func (d *Dev) Message(text string) error {
	if err := d.Home(); err != nil {
		return err
	}
	row := 0
	b := []byte(text)
	for i := 0; i < len(b); i++ {
		if b[i] == '\n' && i > 0 && b[i-1] == '\r' {
			continue
		}
		if b[i] == '\r' && i+1 < len(b) && b[i+1] == '\n' {
			row++
			col := 0
			if d.entryMode&optEntryRight == 0 {
				col = d.cols - 1
			}
			if err := d.SetCursor(col, row); err != nil {
				return err
			}
			continue
		}
		if err := d.bus.WriteData(b[i : i+1]); err != nil {
			return err
		}
	}
	return nil
}

// WriteData writes raw bytes to the current RAM address, character codes to
// DDRAM or glyph rows to CGRAM depending on the last address set.
func (d *Dev) WriteData(data []byte) error {
	return d.bus.WriteData(data)
}

// ReadData reads from the current RAM address. It fails with
// lcd.ErrUnsupportedOperation on a write-only hookup.
func (d *Dev) ReadData(data []byte) error {
	return d.bus.ReadData(data)
}

// ReadStatus reads the busy flag and address counter. It fails with
// lcd.ErrUnsupportedOperation on a write-only hookup.
func (d *Dev) ReadStatus() (byte, error) {
	return d.bus.ReadRegister()
}

// DefineGlyphs loads custom 5x8 glyphs into CGRAM starting at the given
// slot, one 8 byte bitmap per glyph, top row first. The chip has 8 slots and
// the slot index wraps around them; the glyphs are displayed with character
// codes 0 to 7.
//
// The cursor position is clobbered, follow with SetCursor or Home.
func (d *Dev) DefineGlyphs(slot int, glyphs ...[8]byte) error {
	slot &= 0x7
	if err := d.bus.WriteCommand(cmdSetCGRAMAddr | byte(slot)<<3); err != nil {
		return err
	}
	for _, g := range glyphs {
		if err := d.bus.WriteData(g[:]); err != nil {
			return err
		}
	}
	return nil
}

// SetBacklight sets the backlight intensity between 0 and 1. Without a
// backlight pin this is a no-op.
func (d *Dev) SetBacklight(level float64) error {
	return d.bl.SetLevel(level)
}

// Rows returns the display height in cells.
func (d *Dev) Rows() int {
	return d.rows
}

// Cols returns the display width in cells.
func (d *Dev) Cols() int {
	return d.cols
}

func (d *Dev) String() string {
	return fmt.Sprintf("hd44780.Dev{%dx%d}", d.cols, d.rows)
}

// Halt clears the display, turns the backlight and display off and releases
// the bus.
func (d *Dev) Halt() error {
	_ = d.Clear()
	_ = d.bl.Halt()
	_ = d.Display(false)
	return d.bus.Halt()
}
