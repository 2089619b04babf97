// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdbustest is meant to be used to test drivers over a fake
// lcdbus.Bus.
package lcdbustest

import (
	"fmt"

	"github.com/pidisplays/lcd"
	"github.com/pidisplays/lcd/lcdbus"
)

// OpType distinguishes the recorded operations.
type OpType int

const (
	// Command is a WriteCommand call.
	Command OpType = iota
	// Data is a WriteData call.
	Data
	// Read is a ReadData call.
	Read
	// Register is a ReadRegister call.
	Register
)

func (t OpType) String() string {
	switch t {
	case Command:
		return "command"
	case Data:
		return "data"
	case Read:
		return "read"
	case Register:
		return "register"
	}
	return "unknown"
}

// Op is one recorded bus operation.
type Op struct {
	Type OpType
	// Data holds the byte(s) written, or for Read ops the byte count asked
	// for.
	Data []byte
}

// Record implements lcdbus.Bus and records every operation.
//
// Reads are served from the Queue slice in order; running out of queued
// bytes is an error so tests fail loudly on unexpected reads.
type Record struct {
	// Width reports 4 or 8 from Bits(). Zero defaults to 8.
	Width int
	// WriteOnly makes reads fail like a bus without an R/W line.
	WriteOnly bool
	// Queue holds the bytes served to ReadData and ReadRegister.
	Queue []byte
	// Ops accumulates the recorded operations.
	Ops []Op
}

// WriteCommand implements lcdbus.Bus.
func (r *Record) WriteCommand(cmd byte) error {
	r.Ops = append(r.Ops, Op{Type: Command, Data: []byte{cmd}})
	return nil
}

// WriteData implements lcdbus.Bus.
func (r *Record) WriteData(data []byte) error {
	d := make([]byte, len(data))
	copy(d, data)
	r.Ops = append(r.Ops, Op{Type: Data, Data: d})
	return nil
}

// ReadData implements lcdbus.Bus.
func (r *Record) ReadData(data []byte) error {
	if r.WriteOnly {
		return fmt.Errorf("lcdbustest: bus is write-only: %w", lcd.ErrUnsupportedOperation)
	}
	if len(r.Queue) < len(data) {
		return fmt.Errorf("lcdbustest: read of %d bytes with %d queued", len(data), len(r.Queue))
	}
	copy(data, r.Queue)
	r.Queue = r.Queue[len(data):]
	r.Ops = append(r.Ops, Op{Type: Read, Data: []byte{byte(len(data))}})
	return nil
}

// ReadRegister implements lcdbus.Bus.
func (r *Record) ReadRegister() (byte, error) {
	if r.WriteOnly {
		return 0, fmt.Errorf("lcdbustest: bus is write-only: %w", lcd.ErrUnsupportedOperation)
	}
	if len(r.Queue) == 0 {
		return 0, fmt.Errorf("lcdbustest: register read with nothing queued")
	}
	b := r.Queue[0]
	r.Queue = r.Queue[1:]
	r.Ops = append(r.Ops, Op{Type: Register, Data: []byte{b}})
	return b, nil
}

// Bits implements lcdbus.Bus.
func (r *Record) Bits() int {
	if r.Width == 0 {
		return 8
	}
	return r.Width
}

// CanRead implements lcdbus.Bus.
func (r *Record) CanRead() bool {
	return !r.WriteOnly
}

// Halt implements lcdbus.Bus.
func (r *Record) Halt() error {
	return nil
}

// Commands returns the recorded command bytes in order, ignoring data.
func (r *Record) Commands() []byte {
	var out []byte
	for _, op := range r.Ops {
		if op.Type == Command {
			out = append(out, op.Data...)
		}
	}
	return out
}

var _ lcdbus.Bus = &Record{}
