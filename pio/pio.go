// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import "fmt"

const (
	// DefaultBase is the physical address of the PIO register bank on the
	// A10, A20, A31, H2+ and H3.
	DefaultBase = 0x01C20800
	// DefaultLowPowerBase is the physical address of the R_PIO register bank
	// holding bank L.
	DefaultLowPowerBase = 0x01F02C00
	// DefaultDevice is the physical memory device.
	DefaultDevice = "/dev/mem"
)

// Layout of a bank register block, in 32 bit words. A block is 0x24 bytes.
const (
	cfgOffset  = 0 // cfg[4], 4 bits per pin
	datOffset  = 4 // dat, 1 bit per pin
	drvOffset  = 5 // drv[2], unused
	pullOffset = 7 // pull[2], 2 bits per pin
	bankWords  = 9
)

// region is a window of physical memory mapped in the process, addressed in
// 32 bit words from the requested base address.
type region interface {
	load(i int) uint32
	store(i int, v uint32)
	unmap() error
}

// device is an open physical memory device.
type device interface {
	mapRegion(base uint64) (region, error)
	Close() error
}

// Controller owns the mapping of the PIO register banks.
//
// The zero value is ready to use with the default addresses; Init must be
// called before any register operation.
type Controller struct {
	// Device is the physical memory device to map, DefaultDevice if empty.
	Device string
	// Base is the physical address of bank A, DefaultBase if zero.
	Base uint64
	// LowPowerBase is the physical address of bank L, DefaultLowPowerBase if
	// zero.
	LowPowerBase uint64
	// NoLowPower skips mapping bank L, for SoCs without R_PIO like the A10
	// and A20.
	NoLowPower bool

	// open is mocked in tests.
	open func(path string) (device, error)

	main     region
	lowPower region // nil when R_PIO could not be mapped
}

// New returns a Controller using the default addresses.
func New() *Controller {
	return &Controller{
		Device:       DefaultDevice,
		Base:         DefaultBase,
		LowPowerBase: DefaultLowPowerBase,
	}
}

// Init maps the register banks.
//
// It is a no-op when already mapped. Failing to map bank L is not an error;
// LowPowerMapped reports it. The device is not kept open.
func (c *Controller) Init() error {
	if c.main != nil {
		return nil
	}
	path := c.Device
	if path == "" {
		path = DefaultDevice
	}
	base := c.Base
	if base == 0 {
		base = DefaultBase
	}
	lpBase := c.LowPowerBase
	if lpBase == 0 {
		lpBase = DefaultLowPowerBase
	}
	open := c.open
	if open == nil {
		open = openDevMem
	}

	d, err := open(path)
	if err != nil {
		return &ResourceError{Op: "open", Path: path, Err: err}
	}
	defer d.Close()
	main, err := d.mapRegion(base)
	if err != nil {
		return &ResourceError{Op: "mmap", Path: path, Addr: base, Err: err}
	}
	var lp region
	if !c.NoLowPower {
		if lp, err = d.mapRegion(lpBase); err != nil {
			lp = nil
		}
	}
	c.main, c.lowPower = main, lp
	return nil
}

// Close unmaps the register banks.
//
// Close never fails to release the Controller: it is unmapped on return and
// calling Close again does nothing. The returned error is advisory only; it
// reports a munmap failure and there is nothing left for the caller to undo.
func (c *Controller) Close() error {
	var err error
	if c.main != nil {
		err = c.main.unmap()
	}
	if c.lowPower != nil {
		if err1 := c.lowPower.unmap(); err == nil {
			err = err1
		}
	}
	c.main, c.lowPower = nil, nil
	if err != nil {
		return fmt.Errorf("pio: munmap: %w", err)
	}
	return nil
}

// Mapped reports whether Init succeeded and Close was not called since.
func (c *Controller) Mapped() bool {
	return c.main != nil
}

// LowPowerMapped reports whether bank L is accessible.
func (c *Controller) LowPowerMapped() bool {
	return c.lowPower != nil
}

// SetFunction sets the function field of p.
func (c *Controller) SetFunction(p Pin, f Function) error {
	b, err := c.bank(p)
	if err != nil {
		return err
	}
	b.update(b.cfg(p), cfgShift(p), functionMask, uint32(f))
	return nil
}

// Function returns the function field of p.
func (c *Controller) Function(p Pin) (Function, error) {
	b, err := c.bank(p)
	if err != nil {
		return 0, err
	}
	return Function(b.field(b.cfg(p), cfgShift(p), functionMask)), nil
}

// Output drives p to l.
//
// The data register is written even if p is not configured as Output, in
// which case it has no electrical effect.
func (c *Controller) Output(p Pin, l Level) error {
	b, err := c.bank(p)
	if err != nil {
		return err
	}
	var v uint32
	if l != Low {
		v = 1
	}
	b.update(b.dat(), dataShift(p), 1, v)
	return nil
}

// Input returns the level of p as read from the data register.
func (c *Controller) Input(p Pin) (Level, error) {
	b, err := c.bank(p)
	if err != nil {
		return Low, err
	}
	return Level(b.field(b.dat(), dataShift(p), 1)), nil
}

// SetPull sets the pull resistor field of p.
func (c *Controller) SetPull(p Pin, pull Pull) error {
	b, err := c.bank(p)
	if err != nil {
		return err
	}
	b.update(b.pull(p), pullShift(p), pullMask, uint32(pull))
	return nil
}

// Pull returns the pull resistor field of p.
func (c *Controller) Pull(p Pin) (Pull, error) {
	b, err := c.bank(p)
	if err != nil {
		return 0, err
	}
	return Pull(b.field(b.pull(p), pullShift(p), pullMask)), nil
}

//

// bank resolves the register block holding p.
//
// This is the only place aware that bank L lives in its own region.
func (c *Controller) bank(p Pin) (block, error) {
	if c.main == nil {
		return block{}, ErrNotMapped
	}
	if !p.Valid() {
		return block{}, fmt.Errorf("%w: %s", ErrRange, p)
	}
	if p.Bank() == LowPowerBank {
		if c.lowPower == nil {
			return block{}, ErrLowPowerNotMapped
		}
		return block{r: c.lowPower}, nil
	}
	return block{r: c.main, base: int(p.Bank()) * bankWords}, nil
}

// block is the register block of one bank within a region.
type block struct {
	r    region
	base int
}

func (b block) cfg(p Pin) int {
	return b.base + cfgOffset + cfgWord(p)
}

func (b block) dat() int {
	return b.base + datOffset
}

func (b block) pull(p Pin) int {
	return b.base + pullOffset + pullWord(p)
}

// update replaces the field of width mask at shift in word i. v is masked so
// it never spills into a neighbour field.
func (b block) update(i int, shift uint, mask, v uint32) {
	w := b.r.load(i)
	w &^= mask << shift
	w |= (v & mask) << shift
	b.r.store(i, w)
}

func (b block) field(i int, shift uint, mask uint32) uint32 {
	return (b.r.load(i) >> shift) & mask
}
