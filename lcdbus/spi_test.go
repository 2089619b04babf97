// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdbus

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"

	"github.com/pidisplays/lcd"
)

func TestSPIWrite(t *testing.T) {
	port := &spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{
				{W: []byte{0xae}},
				{W: []byte{0x01, 0x02, 0x03}},
			},
			DontPanic: true,
		},
	}
	dc := &gpiotest.Pin{N: "A0"}
	b, err := NewSPI(port, dc, 10*physic.MegaHertz)
	if err != nil {
		t.Fatal(err)
	}
	if b.Bits() != 8 {
		t.Errorf("Bits() = %d, want 8", b.Bits())
	}
	if b.CanRead() {
		t.Error("CanRead() = true for a serial hookup")
	}
	if err := b.WriteCommand(0xae); err != nil {
		t.Fatal(err)
	}
	if dc.L != gpio.Low {
		t.Error("A0 should be low for a command")
	}
	if err := b.WriteData([]byte{0x01, 0x02, 0x03}); err != nil {
		t.Fatal(err)
	}
	if dc.L != gpio.High {
		t.Error("A0 should be high for data")
	}
	if err := port.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSPIRead(t *testing.T) {
	b, err := NewSPI(&spitest.Playback{}, &gpiotest.Pin{N: "A0"}, physic.MegaHertz)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.ReadData(make([]byte, 1)); !errors.Is(err, lcd.ErrUnsupportedOperation) {
		t.Errorf("ReadData() = %v, want ErrUnsupportedOperation", err)
	}
	if _, err := b.ReadRegister(); !errors.Is(err, lcd.ErrUnsupportedOperation) {
		t.Errorf("ReadRegister() = %v, want ErrUnsupportedOperation", err)
	}
}

func TestSPINoDC(t *testing.T) {
	if _, err := NewSPI(&spitest.Playback{}, nil, physic.MegaHertz); !errors.Is(err, lcd.ErrConfiguration) {
		t.Errorf("NewSPI() = %v, want ErrConfiguration", err)
	}
}
