// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package allwinner

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
	"periph.io/x/host/v3/distro"
	"periph.io/x/sunxi/pio"
)

// Pin is a GPIO of an Allwinner CPU, driven through the memory mapped PIO
// registers.
//
// Pin implements gpio.PinIO and pin.PinFunc.
type Pin struct {
	id        pio.Pin
	altFunc   [5]pin.Func // functions 2 to 6, when known for the SoC
	available bool        // set when the SoC pin out is known
}

// PinAt returns the pin n of bank b, or nil if out of range.
func PinAt(b pio.Bank, n int) *Pin {
	id, err := pio.NewPin(b, n)
	if err != nil {
		return nil
	}
	return &cpuPins[id]
}

// Pins returns the pins registered by the driver.
func Pins() []*Pin {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	out := make([]*Pin, len(drv.registered))
	copy(out, drv.registered)
	return out
}

// String implements conn.Resource.
func (p *Pin) String() string {
	return p.Name()
}

// Halt implements conn.Resource.
func (p *Pin) Halt() error {
	return nil
}

// Name implements pin.Pin.
//
// It returns the datasheet name, e.g. "PH2".
func (p *Pin) Name() string {
	return p.id.String()
}

// Number implements pin.Pin.
//
// It returns the pin encoded as bank*32+index.
func (p *Pin) Number() int {
	return int(p.id)
}

// Function implements pin.Pin.
func (p *Pin) Function() string {
	return string(p.Func())
}

// Func implements pin.PinFunc.
func (p *Pin) Func() pin.Func {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	f, err := drv.c.Function(p.id)
	if err != nil {
		return pin.FuncNone
	}
	switch f {
	case pio.Input:
		if p.read() {
			return gpio.IN_HIGH
		}
		return gpio.IN_LOW
	case pio.Output:
		if p.read() {
			return gpio.OUT_HIGH
		}
		return gpio.OUT_LOW
	case pio.Disabled:
		return pin.FuncNone
	}
	if i := int(f) - 2; i >= 0 && i < len(p.altFunc) && p.altFunc[i] != "" {
		return p.altFunc[i]
	}
	return pin.Func(f.String())
}

// SupportedFuncs implements pin.PinFunc.
func (p *Pin) SupportedFuncs() []pin.Func {
	out := []pin.Func{gpio.IN, gpio.OUT}
	for _, f := range p.altFunc {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// SetFunc implements pin.PinFunc.
func (p *Pin) SetFunc(f pin.Func) error {
	switch f {
	case gpio.IN:
		return p.In(gpio.PullNoChange, gpio.NoEdge)
	case gpio.IN_HIGH:
		return p.In(gpio.PullUp, gpio.NoEdge)
	case gpio.IN_LOW:
		return p.In(gpio.PullDown, gpio.NoEdge)
	case gpio.OUT_HIGH:
		return p.Out(gpio.High)
	case gpio.OUT, gpio.OUT_LOW:
		return p.Out(gpio.Low)
	}
	for i, alt := range p.altFunc {
		if alt != "" && alt == f {
			drv.mu.Lock()
			defer drv.mu.Unlock()
			return p.wrap(drv.c.SetFunction(p.id, pio.Function(i+2)))
		}
	}
	return p.wrap(errors.New("unsupported function"))
}

// In implements gpio.PinIn.
//
// Edge detection is not supported.
func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error {
	if edge != gpio.NoEdge {
		return p.wrap(errors.New("edge detection is not supported"))
	}
	var mode pio.Pull
	switch pull {
	case gpio.PullNoChange:
	case gpio.Float:
		mode = pio.PullNone
	case gpio.PullDown:
		mode = pio.PullDown
	case gpio.PullUp:
		mode = pio.PullUp
	default:
		return p.wrap(fmt.Errorf("unknown pull %s", pull))
	}
	drv.mu.Lock()
	defer drv.mu.Unlock()
	if err := drv.c.SetFunction(p.id, pio.Input); err != nil {
		return p.wrap(err)
	}
	if pull != gpio.PullNoChange {
		return p.wrap(drv.c.SetPull(p.id, mode))
	}
	return nil
}

// Read implements gpio.PinIn.
//
// It returns the data register bit, which for an output is the level last
// written.
func (p *Pin) Read() gpio.Level {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	return p.read()
}

// WaitForEdge implements gpio.PinIn.
//
// It always returns false since edge detection is not supported.
func (p *Pin) WaitForEdge(timeout time.Duration) bool {
	return false
}

// Pull implements gpio.PinIn.
func (p *Pin) Pull() gpio.Pull {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	mode, err := drv.c.Pull(p.id)
	if err != nil {
		return gpio.PullNoChange
	}
	switch mode {
	case pio.PullNone:
		return gpio.Float
	case pio.PullUp:
		return gpio.PullUp
	case pio.PullDown:
		return gpio.PullDown
	default:
		return gpio.PullNoChange
	}
}

// DefaultPull implements gpio.PinIn.
//
// The pull resistors are disabled on reset.
func (p *Pin) DefaultPull() gpio.Pull {
	return gpio.Float
}

// Out implements gpio.PinOut.
//
// The level is written before the pin is switched to output so it doesn't
// glitch.
func (p *Pin) Out(l gpio.Level) error {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	v := pio.Low
	if l {
		v = pio.High
	}
	if err := drv.c.Output(p.id, v); err != nil {
		return p.wrap(err)
	}
	return p.wrap(drv.c.SetFunction(p.id, pio.Output))
}

// PWM implements gpio.PinOut.
//
// This is not supported.
func (p *Pin) PWM(gpio.Duty, physic.Frequency) error {
	return p.wrap(errors.New("pwm is not supported"))
}

//

// read must be called with drv.mu held.
func (p *Pin) read() gpio.Level {
	l, err := drv.c.Input(p.id)
	return err == nil && l == pio.High
}

// wrap returns nil for a nil err.
func (p *Pin) wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("allwinner-pio (%s): %w", p, err)
}

// cpuPins is every pin addressable by the PIO, indexed by pio.Pin.
var cpuPins [pio.NumBanks * pio.PinsPerBank]Pin

// driverPIO implements periph.Driver.
//
// It owns the process wide mapping of the registers. mu serializes every
// register access done through a Pin since neighbour pins share registers.
type driverPIO struct {
	mu         sync.Mutex
	c          pio.Controller
	registered []*Pin

	// Mocked in tests.
	driverDir  string
	device     string
	present    func() bool
	compatible func() []string
}

func (d *driverPIO) String() string {
	return "allwinner-pio"
}

func (d *driverPIO) Prerequisites() []string {
	return nil
}

func (d *driverPIO) After() []string {
	return nil
}

// Init maps the PIO registers and registers the pins in gpioreg.
//
// The physical addresses are discovered from the pinctrl drivers in sysfs.
func (d *driverPIO) Init() (bool, error) {
	if !d.present() {
		return false, errors.New("Allwinner CPU not detected")
	}
	if err := d.mapRegisters(); err != nil {
		return true, err
	}
	for _, p := range d.registered {
		if err := gpioreg.Register(p); err != nil {
			return true, err
		}
		// The kernel numbers sunxi GPIOs the same way.
		if err := gpioreg.RegisterAlias(pinName(p), p.Name()); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (d *driverPIO) mapRegisters() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.c.Device = d.device
	var lowPower bool
	d.c.Base, d.c.LowPowerBase, lowPower = getBaseAddresses(d.driverDir)
	d.c.NoLowPower = !lowPower
	if err := d.c.Init(); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("need more access, try as root: %w", err)
		}
		return err
	}
	if isH3(d.compatible()) {
		if err := mapH3Pins(); err != nil {
			return err
		}
	}
	d.registered = d.pins()
	return nil
}

// pins returns the pins to register: the known pin out of the SoC if
// detected, banks A to I otherwise. Bank L is skipped when not mapped.
func (d *driverPIO) pins() []*Pin {
	known := false
	for i := range cpuPins {
		if cpuPins[i].available {
			known = true
			break
		}
	}
	var out []*Pin
	for i := range cpuPins {
		p := &cpuPins[i]
		b := p.id.Bank()
		if b == pio.LowPowerBank && !d.c.LowPowerMapped() {
			continue
		}
		if known {
			if p.available {
				out = append(out, p)
			}
		} else if b <= pio.BankI || b == pio.LowPowerBank {
			out = append(out, p)
		}
	}
	return out
}

func (d *driverPIO) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.c.Close()
	d.c = pio.Controller{}
	d.registered = nil
	for i := range cpuPins {
		cpuPins[i].altFunc = [5]pin.Func{}
		cpuPins[i].available = false
	}
	d.driverDir = "/sys/bus/platform/drivers"
	d.device = pio.DefaultDevice
	d.present = func() bool { return isAllwinner(distro.DTCompatible()) }
	d.compatible = distro.DTCompatible
}

func init() {
	for i := range cpuPins {
		cpuPins[i].id = pio.Pin(i)
	}
	drv.reset()
	driverreg.MustRegister(&drv)
}

var drv driverPIO

// isAllwinner returns true if the device tree describes an Allwinner SoC.
func isAllwinner(compatible []string) bool {
	for _, c := range compatible {
		if strings.HasPrefix(c, "allwinner,") {
			return true
		}
	}
	return false
}

// pinName formats a name for aliases, e.g. "GPIO226".
func pinName(p *Pin) string {
	return "GPIO" + strconv.Itoa(p.Number())
}

var _ conn.Resource = &Pin{}
var _ gpio.PinIn = &Pin{}
var _ gpio.PinOut = &Pin{}
var _ gpio.PinIO = &Pin{}
var _ pin.PinFunc = &Pin{}
