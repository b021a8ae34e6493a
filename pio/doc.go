// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pio drives the Allwinner (sunxi) port controller by mapping its
// register bank from /dev/mem.
//
// A pin is addressed by a single number, bank*32+index, where bank A is 0.
// Every register operation goes through a Controller, which must be
// initialized first:
//
//	c := pio.New()
//	if err := c.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer c.Close()
//	led := pio.MustPin(pio.BankH, 2)
//	_ = c.SetFunction(led, pio.Output)
//	_ = c.Output(led, pio.High)
//
// Bank L lives in a separate register region (R_PIO). It is mapped on a best
// effort basis; when it is missing, operations on bank L return
// ErrLowPowerNotMapped while every other bank keeps working.
//
// The Controller performs no locking. Function and pull registers pack 8 and
// 16 pins per word, so concurrent callers must serialize access.
//
// # Datasheet
//
// https://linux-sunxi.org/GPIO
package pio
