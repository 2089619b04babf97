// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ra6963 controls the RAiO RA6963 graphic LCD controller, a T6963C
// compatible chip found in displays up to 240x128 pixels.
//
// The chip exposes one flat memory holding a text area, a graphic area and a
// character generator area; their base addresses are configurable. Commands
// take their arguments through the data register, so every parametrized
// command is two data bytes followed by the command byte. The chip speaks
// the 8080 parallel handshake.
//
// # Datasheet
//
// https://www.raio.com.tw/data_raio/Datasheet/RA6963.pdf
package ra6963

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"

	"github.com/pidisplays/lcd"
	"github.com/pidisplays/lcd/backlight"
	"github.com/pidisplays/lcd/lcdbus"
)

const (
	cmdSetCursorPointer     byte = 0x21
	cmdSetOffsetRegister    byte = 0x22
	cmdSetAddressPointer    byte = 0x24
	cmdSetTextHomeAddress   byte = 0x40
	cmdSetTextArea          byte = 0x41
	cmdSetGraphicHome       byte = 0x42
	cmdSetGraphicArea       byte = 0x43
	cmdModeSet              byte = 0x80
	cmdDisplayMode          byte = 0x90
	cmdCursorPatternSelect  byte = 0xa0
	cmdDataWriteIncrement   byte = 0xc0
	cmdDataReadIncrement    byte = 0xc1
	cmdDataWriteDecrement   byte = 0xc2
	cmdDataReadDecrement    byte = 0xc3
	cmdDataWriteNonVariable byte = 0xc4
	cmdDataReadNonVariable  byte = 0xc5
	cmdSetDataAutoWrite     byte = 0xb0
	cmdSetDataAutoRead      byte = 0xb1
	cmdAutoReset            byte = 0xb2
	cmdScreenPeek           byte = 0xe0
	cmdScreenCopy           byte = 0xe8
	cmdBitReset             byte = 0xf0
	cmdBitSet               byte = 0xf8
	cmdScreenReverse        byte = 0xd0
	cmdBlinkTime            byte = 0x50
	cmdCursorAutoMoving     byte = 0x60
	cmdCGROMFontSelect      byte = 0x70

	optCursorBlink byte = 0x01
	optCursorOn    byte = 0x02
	optTextOn      byte = 0x04
	optGraphicOn   byte = 0x08

	optExternalCGROM byte = 0x08
)

// CombineMode selects how the text and graphic layers are combined on
// screen.
type CombineMode byte

const (
	// CombineOr ors text over graphics.
	CombineOr CombineMode = 0x00
	// CombineExor inverts graphics under text.
	CombineExor CombineMode = 0x01
	// CombineAnd masks graphics with text.
	CombineAnd CombineMode = 0x03
	// CombineAttribute uses the graphic area as per-cell text attributes.
	CombineAttribute CombineMode = 0x04
)

// Text attribute codes for CombineAttribute mode, one per text cell in the
// graphic area.
const (
	AttrNormal  byte = 0x00
	AttrInhibit byte = 0x03
	AttrReverse byte = 0x05
	AttrBold    byte = 0x07
	AttrBlink   byte = 0x08
)

// cgAlign is the alignment the chip requires of the character generator
// area; the offset register only holds address bits 11 and up.
const cgAlign = 0x0800

// userGlyphBase is the character code of the first user definable glyph when
// the internal CGROM is active; codes below it come from the CGROM.
const userGlyphBase = 128

// DefaultTimings are bus delays with a margin over the datasheet figures,
// using the 8080 handshake.
var DefaultTimings = lcdbus.Timings{
	Setup: 20 * time.Nanosecond,
	Clock: 2 * time.Microsecond,
	Read:  300 * time.Nanosecond,
	Proc:  time.Microsecond,
	Hold:  2 * time.Microsecond,
}

// Regions holds the base addresses of the three memory areas.
type Regions struct {
	Text    uint16
	Graphic uint16
	CG      uint16
}

// DefaultRegions is a sensible layout for an 8KiB RAM part.
var DefaultRegions = Regions{Text: 0x0000, Graphic: 0x1000, CG: 0x7800}

// Opts holds the device configuration.
type Opts struct {
	// Width and Height of the panel in pixels. Width must be a multiple of
	// 8.
	Width  int
	Height int
	// Regions overrides DefaultRegions. A CG base that is not aligned to
	// 2KiB is rounded down with a logged warning.
	Regions *Regions
	// Reset is the RST line; leave nil if it is tied high.
	Reset gpio.PinOut
	// Backlight is optional.
	Backlight *backlight.Dev
}

// Dev is a handle to a RA6963 display.
type Dev struct {
	bus  lcdbus.Bus
	w    int
	h    int
	cols int
	reg  Regions
	rst  gpio.PinOut
	bl   *backlight.Dev

	displayMode byte
	modeSet     byte

	sleep func(time.Duration)
}

// New initializes the display: the chip is reset if a reset line is given,
// and the text, graphic and character generator homes are programmed.
//
// The display itself is left off; call DisplayMode to turn the layers on.
func New(bus lcdbus.Bus, opts *Opts) (*Dev, error) {
	if opts == nil || opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("ra6963: width and height are required: %w", lcd.ErrConfiguration)
	}
	if opts.Width%8 != 0 {
		return nil, fmt.Errorf("ra6963: width %d is not a multiple of 8: %w", opts.Width, lcd.ErrConfiguration)
	}
	reg := DefaultRegions
	if opts.Regions != nil {
		reg = *opts.Regions
	}
	if reg.CG%cgAlign != 0 {
		rounded := reg.CG &^ (cgAlign - 1)
		log.Warnf("ra6963: CG base %#04x is not 2KiB aligned, rounding down to %#04x", reg.CG, rounded)
		reg.CG = rounded
	}
	bl := opts.Backlight
	if bl == nil {
		bl = backlight.New(nil, false)
	}
	d := &Dev{
		bus:   bus,
		w:     opts.Width,
		h:     opts.Height,
		cols:  opts.Width / 8,
		reg:   reg,
		rst:   opts.Reset,
		bl:    bl,
		sleep: time.Sleep,
	}
	if err := d.Startup(); err != nil {
		return nil, err
	}
	return d, nil
}

// Startup resets the chip and reprograms the memory layout. It can be
// called again to recover a display that got out of sync.
func (d *Dev) Startup() error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return err
		}
		d.sleep(time.Millisecond)
		if err := d.rst.Out(gpio.High); err != nil {
			return err
		}
		d.sleep(time.Millisecond)
	}
	if err := d.wordCommand(d.reg.Text, cmdSetTextHomeAddress); err != nil {
		return err
	}
	if err := d.wordCommand(uint16(d.cols), cmdSetTextArea); err != nil {
		return err
	}
	if err := d.wordCommand(d.reg.Graphic, cmdSetGraphicHome); err != nil {
		return err
	}
	if err := d.wordCommand(uint16(d.cols), cmdSetGraphicArea); err != nil {
		return err
	}
	return d.wordCommand(d.reg.CG>>11, cmdSetOffsetRegister)
}

// wordCommand writes a 16 bit argument little-endian through the data
// register, then the command consuming it.
func (d *Dev) wordCommand(v uint16, cmd byte) error {
	if err := d.bus.WriteData([]byte{byte(v), byte(v >> 8)}); err != nil {
		return err
	}
	return d.bus.WriteCommand(cmd)
}

// Regions returns the programmed memory layout.
func (d *Dev) Regions() Regions {
	return d.reg
}

// SetAddress points the address pointer at an arbitrary memory address.
func (d *Dev) SetAddress(addr uint16) error {
	return d.wordCommand(addr, cmdSetAddressPointer)
}

// TextHome points the address pointer at the text area and returns its base
// address.
func (d *Dev) TextHome() (uint16, error) {
	return d.reg.Text, d.SetAddress(d.reg.Text)
}

// GraphicHome points the address pointer at the graphic area and returns
// its base address.
func (d *Dev) GraphicHome() (uint16, error) {
	return d.reg.Graphic, d.SetAddress(d.reg.Graphic)
}

// CGHome points the address pointer at the character generator area and
// returns its base address.
func (d *Dev) CGHome() (uint16, error) {
	return d.reg.CG, d.SetAddress(d.reg.CG)
}

// TextCellAddress translates a text cell coordinate into its memory
// address.
func (d *Dev) TextCellAddress(col, row int) (uint16, error) {
	if col < 0 || col >= d.cols || row < 0 || row >= d.h/8 {
		return 0, fmt.Errorf("ra6963: cell (%d,%d) on a %dx%d cell display: %w", col, row, d.cols, d.h/8, lcd.ErrOutOfRange)
	}
	return d.reg.Text + uint16(row*d.cols+col), nil
}

// SetCursor moves the hardware cursor to a text cell coordinate.
func (d *Dev) SetCursor(col, row int) error {
	if col < 0 || col >= d.cols || row < 0 || row >= d.h/8 {
		return fmt.Errorf("ra6963: cursor (%d,%d) on a %dx%d cell display: %w", col, row, d.cols, d.h/8, lcd.ErrOutOfRange)
	}
	return d.wordCommand(uint16(row)<<8|uint16(col), cmdSetCursorPointer)
}

// WriteIncrement writes one byte at the address pointer and increments it.
func (d *Dev) WriteIncrement(b byte) error {
	return d.byteCommand(b, cmdDataWriteIncrement)
}

// WriteDecrement writes one byte at the address pointer and decrements it.
func (d *Dev) WriteDecrement(b byte) error {
	return d.byteCommand(b, cmdDataWriteDecrement)
}

// WriteNonVariable writes one byte at the address pointer and leaves it in
// place.
func (d *Dev) WriteNonVariable(b byte) error {
	return d.byteCommand(b, cmdDataWriteNonVariable)
}

func (d *Dev) byteCommand(b, cmd byte) error {
	if err := d.bus.WriteData([]byte{b}); err != nil {
		return err
	}
	return d.bus.WriteCommand(cmd)
}

// ReadIncrement reads one byte at the address pointer and increments it.
func (d *Dev) ReadIncrement() (byte, error) {
	return d.readCommand(cmdDataReadIncrement)
}

// ReadDecrement reads one byte at the address pointer and decrements it.
func (d *Dev) ReadDecrement() (byte, error) {
	return d.readCommand(cmdDataReadDecrement)
}

// ReadNonVariable reads one byte at the address pointer and leaves it in
// place.
func (d *Dev) ReadNonVariable() (byte, error) {
	return d.readCommand(cmdDataReadNonVariable)
}

func (d *Dev) readCommand(cmd byte) (byte, error) {
	if err := d.bus.WriteCommand(cmd); err != nil {
		return 0, err
	}
	var buf [1]byte
	if err := d.bus.ReadData(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// WriteData streams data at the address pointer using the chip's auto write
// mode, bracketed by an auto reset.
func (d *Dev) WriteData(data []byte) error {
	if err := d.bus.WriteCommand(cmdSetDataAutoWrite); err != nil {
		return err
	}
	if err := d.bus.WriteData(data); err != nil {
		return err
	}
	return d.bus.WriteCommand(cmdAutoReset)
}

// ReadData streams data from the address pointer using the chip's auto read
// mode, bracketed by an auto reset.
func (d *Dev) ReadData(data []byte) error {
	if err := d.bus.WriteCommand(cmdSetDataAutoRead); err != nil {
		return err
	}
	if err := d.bus.ReadData(data); err != nil {
		return err
	}
	return d.bus.WriteCommand(cmdAutoReset)
}

// ReadStatus reads the chip's status register.
func (d *Dev) ReadStatus() (byte, error) {
	return d.bus.ReadRegister()
}

// BitSet sets bit n of the byte at the address pointer, 0 to 7.
func (d *Dev) BitSet(n int) error {
	if n < 0 || n > 7 {
		return fmt.Errorf("ra6963: bit %d: %w", n, lcd.ErrOutOfRange)
	}
	return d.bus.WriteCommand(cmdBitSet | byte(n))
}

// BitReset clears bit n of the byte at the address pointer, 0 to 7.
func (d *Dev) BitReset(n int) error {
	if n < 0 || n > 7 {
		return fmt.Errorf("ra6963: bit %d: %w", n, lcd.ErrOutOfRange)
	}
	return d.bus.WriteCommand(cmdBitReset | byte(n))
}

// BlinkTime sets the cursor blink period, 0 (fastest) to 7.
func (d *Dev) BlinkTime(n int) error {
	if n < 0 || n > 7 {
		return fmt.Errorf("ra6963: blink time %d: %w", n, lcd.ErrOutOfRange)
	}
	return d.wordCommand(uint16(n), cmdBlinkTime)
}

// CursorPattern selects how many lines tall the cursor is, 0 (one line) to
// 7 (full cell).
func (d *Dev) CursorPattern(n int) error {
	if n < 0 || n > 7 {
		return fmt.Errorf("ra6963: cursor pattern %d: %w", n, lcd.ErrOutOfRange)
	}
	return d.bus.WriteCommand(cmdCursorPatternSelect | byte(n))
}

// CursorBlink turns cursor blinking on or off.
func (d *Dev) CursorBlink(blink bool) error {
	return d.display(optCursorBlink, blink)
}

// CursorDisplay shows or hides the cursor.
func (d *Dev) CursorDisplay(show bool) error {
	return d.display(optCursorOn, show)
}

// CursorAutoMove makes the cursor follow data writes.
func (d *Dev) CursorAutoMove(move bool) error {
	v := cmdCursorAutoMoving
	if !move {
		v |= 0x01
	}
	return d.bus.WriteCommand(v)
}

// DisplayMode turns the text and graphic layers on or off.
func (d *Dev) DisplayMode(text, graphic bool) error {
	if text {
		d.displayMode |= optTextOn
	} else {
		d.displayMode &^= optTextOn
	}
	if graphic {
		d.displayMode |= optGraphicOn
	} else {
		d.displayMode &^= optGraphicOn
	}
	return d.bus.WriteCommand(cmdDisplayMode | d.displayMode)
}

func (d *Dev) display(bit byte, on bool) error {
	if on {
		d.displayMode |= bit
	} else {
		d.displayMode &^= bit
	}
	return d.bus.WriteCommand(cmdDisplayMode | d.displayMode)
}

// ModeSet selects how the two layers are combined.
func (d *Dev) ModeSet(m CombineMode) error {
	switch m {
	case CombineOr, CombineExor, CombineAnd, CombineAttribute:
	default:
		return fmt.Errorf("ra6963: combine mode %#02x: %w", byte(m), lcd.ErrOutOfRange)
	}
	d.modeSet = d.modeSet&^byte(CombineOr|CombineExor|CombineAnd|CombineAttribute) | byte(m)
	return d.bus.WriteCommand(cmdModeSet | d.modeSet)
}

// ExternalCG switches between the internal CGROM and a fully external
// character generator.
func (d *Dev) ExternalCG(external bool) error {
	if external {
		d.modeSet |= optExternalCGROM
	} else {
		d.modeSet &^= optExternalCGROM
	}
	return d.bus.WriteCommand(cmdModeSet | d.modeSet)
}

// CGROMFont selects one of the two internal CGROM fonts, 1 or 2.
func (d *Dev) CGROMFont(n int) error {
	if n != 1 && n != 2 {
		return fmt.Errorf("ra6963: CGROM font %d: %w", n, lcd.ErrOutOfRange)
	}
	v := uint16(0x0003)
	if n == 1 {
		v = 0x0002
	}
	return d.wordCommand(v, cmdCGROMFontSelect)
}

// ScreenPeek reads the display byte at the address pointer. Only valid when
// the hardware and software column counts match.
func (d *Dev) ScreenPeek() (byte, error) {
	return d.readCommand(cmdScreenPeek)
}

// ScreenCopy copies a raster line into the graphic area. Only available in
// single scan mode.
func (d *Dev) ScreenCopy() error {
	return d.bus.WriteCommand(cmdScreenCopy)
}

// ScreenReverse inverts the whole display.
func (d *Dev) ScreenReverse(reverse bool) error {
	v := cmdScreenReverse
	if reverse {
		v |= 0x01
	}
	return d.bus.WriteCommand(v)
}

// ClearAll zeroes the graphic, text and character generator areas.
func (d *Dev) ClearAll() error {
	if _, err := d.GraphicHome(); err != nil {
		return err
	}
	if err := d.WriteData(make([]byte, d.w*d.h/8)); err != nil {
		return err
	}
	if _, err := d.TextHome(); err != nil {
		return err
	}
	if err := d.WriteData(make([]byte, d.w*d.h/64)); err != nil {
		return err
	}
	if _, err := d.CGHome(); err != nil {
		return err
	}
	return d.WriteData(make([]byte, cgAlign))
}

// DefineGlyphs loads custom 8x8 glyphs starting at the given slot, one 8
// byte bitmap per glyph, top row first.
//
// With the internal CGROM active the first 128 character codes are
// predefined, so slot 0 is displayed with character code 128. There are 128
// slots and the slot index wraps around them.
func (d *Dev) DefineGlyphs(slot int, glyphs ...[8]byte) error {
	slot &= userGlyphBase - 1
	if err := d.SetAddress(d.reg.CG + userGlyphBase*8 + uint16(slot)*8); err != nil {
		return err
	}
	if err := d.bus.WriteCommand(cmdSetDataAutoWrite); err != nil {
		return err
	}
	for _, g := range glyphs {
		if err := d.bus.WriteData(g[:]); err != nil {
			return err
		}
	}
	return d.bus.WriteCommand(cmdAutoReset)
}

// WriteText writes a full screen of text starting at the text home.
//
// The chip's character codes are offset by 32 from ASCII. Newlines carry no
// layout information on this chip (the text area wraps at the configured
// width) and are stripped; any other byte below 0x20 fails with
// lcd.ErrUndefinedGlyph.
func (d *Dev) WriteText(text string) error {
	buf := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\n' {
			continue
		}
		if c < 0x20 {
			return fmt.Errorf("ra6963: no character code for %#02x: %w", c, lcd.ErrUndefinedGlyph)
		}
		buf = append(buf, c-0x20)
	}
	if _, err := d.TextHome(); err != nil {
		return err
	}
	return d.WriteData(buf)
}

// SetTextHome moves the text area base address.
func (d *Dev) SetTextHome(addr uint16) error {
	d.reg.Text = addr
	return d.wordCommand(addr, cmdSetTextHomeAddress)
}

// SetGraphicHome moves the graphic area base address.
func (d *Dev) SetGraphicHome(addr uint16) error {
	d.reg.Graphic = addr
	return d.wordCommand(addr, cmdSetGraphicHome)
}

// SetBacklight sets the backlight intensity between 0 and 1. Without a
// backlight pin this is a no-op.
func (d *Dev) SetBacklight(level float64) error {
	return d.bl.SetLevel(level)
}

func (d *Dev) String() string {
	return fmt.Sprintf("ra6963.Dev{%dx%d}", d.w, d.h)
}

// Halt turns the display layers and backlight off and releases the bus.
func (d *Dev) Halt() error {
	_ = d.DisplayMode(false, false)
	_ = d.bl.Halt()
	return d.bus.Halt()
}
