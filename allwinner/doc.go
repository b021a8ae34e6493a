// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package allwinner exposes the GPIO pins of Allwinner sunxi CPUs as periph
// gpio.PinIO.
//
// The driver "allwinner-pio" maps the PIO and R_PIO register banks through
// /dev/mem with package pio and registers every pin in gpioreg, both under its
// datasheet name ("PH2") and under the kernel numbering ("GPIO226").
//
// Accessing /dev/mem requires root.
//
// # Physical addresses
//
// The register base addresses are read from the pinctrl devices bound in
// /sys/bus/platform/drivers. When not found, the A10/A20/H3 addresses are
// used.
//
// # Datasheets
//
// https://linux-sunxi.org/images/4/4b/Allwinner_H3_Datasheet_V1.2.pdf
//
// https://linux-sunxi.org/images/b/be/A20_User_Manual_v1.4_20150510.pdf
package allwinner
