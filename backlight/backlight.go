// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package backlight drives an LCD backlight through a single GPIO pin.
//
// The pin is either switched (any level above zero turns the backlight on)
// or driven with PWM for real dimming. The backlight is an optional part of
// every display hookup, so a Dev built without a pin accepts all calls and
// does nothing.
package backlight

import (
	"math"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// pwmFreq matches the 100µs period the sysfs PWM hookup traditionally used.
const pwmFreq = 10 * physic.KiloHertz

// Dev controls a backlight pin.
type Dev struct {
	pin   gpio.PinIO
	pwm   bool
	level float64
	duty  gpio.Duty
}

// New returns a backlight on the supplied pin.
//
// With pwm set, intermediate levels are rendered as a duty cycle at 10kHz.
// If the pin turns out not to support PWM the device degrades to a switched
// backlight rather than failing; a display without dimming is better than no
// display. pin may be nil, in which case the device is unused and every call
// is a no-op.
func New(pin gpio.PinIO, pwm bool) *Dev {
	if pin == nil {
		return &Dev{}
	}
	d := &Dev{pin: pin, pwm: pwm}
	if pwm {
		if err := pin.PWM(0, pwmFreq); err != nil {
			log.Warnf("backlight: %s does not support PWM, falling back to on/off: %v", pin, err)
			d.pwm = false
		}
	}
	return d
}

// Unused returns true if the Dev has no pin to drive.
func (d *Dev) Unused() bool {
	return d.pin == nil
}

// SetLevel sets the backlight intensity in the range 0.0 to 1.0.
//
// Zero or less turns the backlight off. Values above 1.0 are clamped to full
// brightness. Without PWM any positive level turns the backlight fully on.
func (d *Dev) SetLevel(level float64) error {
	if d.pin == nil {
		return nil
	}
	if level > 1 {
		level = 1
	}
	if level < 0 {
		level = 0
	}
	d.level = level
	if !d.pwm {
		d.duty = 0
		if level > 0 {
			d.duty = gpio.DutyMax
		}
		return d.pin.Out(gpio.Level(level > 0))
	}
	d.duty = gpio.Duty(math.Round(level * float64(gpio.DutyMax)))
	return d.pin.PWM(d.duty, pwmFreq)
}

// Level returns the last level set.
func (d *Dev) Level() float64 {
	return d.level
}

// Duty returns the duty cycle currently driven on the pin.
func (d *Dev) Duty() gpio.Duty {
	return d.duty
}

// Halt turns the backlight off.
func (d *Dev) Halt() error {
	return d.SetLevel(0)
}

func (d *Dev) String() string {
	if d.pin == nil {
		return "backlight{unused}"
	}
	mode := "gpio"
	if d.pwm {
		mode = "pwm"
	}
	return "backlight{" + d.pin.Name() + ", " + mode + "}"
}
