// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcd is a container for LCD controller drivers.
//
// Each supported controller family lives in its own package: hd44780 and
// st7920 for character oriented chips, ra6963 and st7565 for graphic chips.
// Shared building blocks live in lcdbus (parallel, SPI and I2C backpack
// transports), lcdfont (glyph tables), textlayout (line composition) and
// backlight. termlcd previews page buffers on the terminal and cmd/lcddemo
// ties everything together.
//
// This package only holds the error vocabulary shared by all of them.
package lcd
