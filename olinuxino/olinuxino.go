// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// OLinuXino on-board pins.

package olinuxino

import (
	"errors"
	"strings"

	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/pin"
	"periph.io/x/conn/v3/pin/pinreg"
	"periph.io/x/host/v3/distro"
	"periph.io/x/sunxi/allwinner"
	"periph.io/x/sunxi/pio"
)

// Present returns true if an Olimex OLinuXino board is detected.
func Present() bool {
	return isOLinuXino(distro.DTModel())
}

var (
	LED1 gpio.PinIO = allwinner.PinAt(pio.BankH, 2)  // Green user LED
	BUT1 gpio.PinIO = allwinner.PinAt(pio.BankL, 10) // User button, active low
)

// isOLinuXino matches models like "Olimex A20-OLinuXino-LIME" and
// "Olimex A64-OLinuXino".
func isOLinuXino(model string) bool {
	return strings.HasPrefix(model, "Olimex") && strings.Contains(model, "OLinuXino")
}

func registerHeaders() error {
	return pinreg.Register("OLIMEX", [][]pin.Pin{
		{LED1},
		{BUT1},
	})
}

// driver implements periph.Driver.
type driver struct {
	// Mocked in tests.
	model func() string
}

func (d *driver) String() string {
	return "olinuxino"
}

func (d *driver) Prerequisites() []string {
	return nil
}

// After the Allwinner PIO driver so the pins are mapped before the header is
// exposed.
func (d *driver) After() []string {
	return []string{"allwinner-pio"}
}

func (d *driver) Init() (bool, error) {
	if !isOLinuXino(d.model()) {
		return false, errors.New("board Olimex OLinuXino not detected")
	}
	return true, registerHeaders()
}

func init() {
	drv.model = distro.DTModel
	driverreg.MustRegister(&drv)
}

var drv driver
