// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdfont

// Proportional is a variable width ASCII font, 1 to 6 columns per glyph and
// 8 pixels tall, with one blank column between glyphs.
var Proportional Font = &table{spacing: 1, glyphs: proportional}

var proportional = map[rune]Glyph{
	' ':  {0x00, 0x00, 0x00},
	'!':  {0xFA},
	'"':  {0xC0, 0x00, 0xC0},
	'#':  {0x58, 0x70, 0xD8, 0x70, 0xD0},
	'$':  {0x64, 0x92, 0xFF, 0x92, 0x4C},
	'%':  {0x60, 0x96, 0xF8, 0x3C, 0xD2, 0x0C},
	'&':  {0x0C, 0x52, 0xA2, 0x52, 0x0C, 0x12},
	'\'': {0xC0},
	'(':  {0x3C, 0x42, 0x81},
	')':  {0x81, 0x42, 0x3C},
	'*':  {0x48, 0x30, 0xE0, 0x30, 0x48},
	'+':  {0x10, 0x10, 0x7C, 0x10, 0x10},
	',':  {0x01, 0x06},
	'-':  {0x10, 0x10, 0x10, 0x10},
	'.':  {0x02},
	'/':  {0x03, 0x0C, 0x30, 0xC0},
	'0':  {0x7C, 0x8A, 0x92, 0xA2, 0x7C},
	'1':  {0x40, 0xFE},
	'2':  {0x42, 0x86, 0x8A, 0x92, 0x62},
	'3':  {0x84, 0x92, 0xB2, 0xD2, 0x8C},
	'4':  {0x18, 0x28, 0x48, 0xFE, 0x08},
	'5':  {0xE4, 0xA2, 0xA2, 0xA2, 0x9C},
	'6':  {0x3C, 0x52, 0x92, 0x92, 0x0C},
	'7':  {0x80, 0x80, 0x8E, 0xB0, 0xC0},
	'8':  {0x6C, 0x92, 0x92, 0x92, 0x6C},
	'9':  {0x60, 0x92, 0x92, 0x94, 0x78},
	':':  {0x22},
	';':  {0x01, 0x26},
	'<':  {0x10, 0x28, 0x44},
	'=':  {0x28, 0x28, 0x28, 0x28, 0x28},
	'>':  {0x44, 0x28, 0x10},
	'?':  {0x40, 0x8A, 0x90, 0x60},
	'@':  {0x3C, 0x5A, 0xA5, 0xBD, 0x44, 0x38},
	'A':  {0x0E, 0x38, 0xC8, 0x38, 0x0E},
	'B':  {0xFE, 0x92, 0x92, 0x92, 0x6C},
	'C':  {0x7C, 0x82, 0x82, 0x82, 0x44},
	'D':  {0xFE, 0x82, 0x82, 0x44, 0x38},
	'E':  {0xFE, 0x92, 0x92, 0x82},
	'F':  {0xFE, 0x90, 0x90, 0x80},
	'G':  {0x7C, 0x82, 0x82, 0x92, 0x5C},
	'H':  {0xFE, 0x10, 0x10, 0x10, 0xFE},
	'I':  {0xFE},
	'J':  {0x0C, 0x02, 0x02, 0x02, 0xFC},
	'K':  {0xFE, 0x10, 0x28, 0x44, 0x82},
	'L':  {0xFE, 0x02, 0x02, 0x02},
	'M':  {0xFE, 0x40, 0x20, 0x40, 0xFE},
	'N':  {0xFE, 0xC0, 0x30, 0x0C, 0xFE},
	'O':  {0x7C, 0x82, 0x82, 0x82, 0x7C},
	'P':  {0xFE, 0x90, 0x90, 0x90, 0x60},
	'Q':  {0x7C, 0x82, 0x86, 0x83, 0x7C},
	'R':  {0xFE, 0x90, 0x98, 0x94, 0x62},
	'S':  {0x64, 0x92, 0x92, 0x92, 0x4C},
	'T':  {0x80, 0x80, 0xFE, 0x80, 0x80},
	'U':  {0xFC, 0x02, 0x02, 0x02, 0xFC},
	'V':  {0xE0, 0x18, 0x06, 0x18, 0xE0},
	'W':  {0xF0, 0x0E, 0x30, 0x0E, 0xF0},
	'X':  {0xC6, 0x28, 0x10, 0x28, 0xC6},
	'Y':  {0xC0, 0x20, 0x1E, 0x20, 0xC0},
	'Z':  {0x8E, 0x92, 0xA2, 0xC2},
	'[':  {0xFF, 0x81},
	'\\': {0xC0, 0x30, 0x0C, 0x03},
	']':  {0x81, 0xFF},
	'^':  {0x40, 0x80, 0x40},
	'_':  {0x01, 0x01, 0x01, 0x01, 0x01, 0x01},
	'`':  {0x12, 0x7E, 0x92, 0x82, 0x04},
	'a':  {0x04, 0x2A, 0x2A, 0x1E},
	'b':  {0xFE, 0x22, 0x22, 0x1C},
	'c':  {0x1C, 0x22, 0x22, 0x14},
	'd':  {0x1C, 0x22, 0x22, 0xFE},
	'e':  {0x1C, 0x2A, 0x2A, 0x18},
	'f':  {0x20, 0x7E, 0xA0, 0x80},
	'g':  {0x18, 0x25, 0x25, 0x3E},
	'h':  {0xFE, 0x20, 0x20, 0x1E},
	'i':  {0xBE},
	'j':  {0x01, 0x01, 0xBE},
	'k':  {0xFE, 0x08, 0x14, 0x22},
	'l':  {0xFC, 0x02},
	'm':  {0x3E, 0x20, 0x1E, 0x20, 0x1E},
	'n':  {0x3E, 0x20, 0x20, 0x1E},
	'o':  {0x1C, 0x22, 0x22, 0x1C},
	'p':  {0x3F, 0x24, 0x24, 0x18},
	'q':  {0x18, 0x24, 0x24, 0x3F},
	'r':  {0x3E, 0x10, 0x20, 0x20},
	's':  {0x12, 0x2A, 0x2A, 0x24},
	't':  {0x20, 0xFC, 0x22},
	'u':  {0x3C, 0x02, 0x02, 0x3C},
	'v':  {0x20, 0x18, 0x06, 0x18, 0x20},
	'w':  {0x38, 0x06, 0x08, 0x06, 0x38},
	'x':  {0x22, 0x14, 0x08, 0x14, 0x22},
	'y':  {0x21, 0x19, 0x06, 0x18, 0x20},
	'z':  {0x26, 0x2A, 0x32, 0x22},
	'{':  {0x10, 0x6E, 0x81},
	'|':  {0xE7},
	'}':  {0x81, 0x6E, 0x10},
	'~':  {0x40, 0x80, 0xC0, 0x40, 0x80},
}
