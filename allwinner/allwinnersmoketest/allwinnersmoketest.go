// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package allwinnersmoketest is leveraged by periph-smoketest to verify that
// the Allwinner PIO registers are driven correctly.
//
// It requires two pins wired together.
package allwinnersmoketest

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/pin"
	"periph.io/x/sunxi/allwinner"
)

// SmokeTest is imported by periph-smoketest.
type SmokeTest struct {
}

// Name implements the SmokeTest interface.
func (s *SmokeTest) Name() string {
	return "allwinner"
}

// Description implements the SmokeTest interface.
func (s *SmokeTest) Description() string {
	return "Tests the Allwinner PIO through two wired pins"
}

// Run implements the SmokeTest interface.
func (s *SmokeTest) Run(f *flag.FlagSet, args []string) error {
	in := f.String("in", "", "pin used as input, e.g. PA6")
	out := f.String("out", "", "pin used as output and wired to -in, e.g. PA1")
	if err := f.Parse(args); err != nil {
		return err
	}
	if f.NArg() != 0 {
		f.Usage()
		return errors.New("unrecognized arguments")
	}
	if *in == "" || *out == "" {
		return errors.New("-in and -out are required")
	}
	p1, err := lookup(*in)
	if err != nil {
		return err
	}
	p2, err := lookup(*out)
	if err != nil {
		return err
	}
	if err := gpioTest(&loggingPin{p1}, &loggingPin{p2}); err != nil {
		return err
	}
	if err := funcTest(p2); err != nil {
		return err
	}
	return gpioPerfTest(p2)
}

// lookup returns the pin only if it is driven by the allwinner driver.
func lookup(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("%s: pin not found; is the allwinner-pio driver loaded?", name)
	}
	if r, ok := p.(gpio.RealPin); ok {
		p = r.Real()
	}
	if _, ok := p.(*allwinner.Pin); !ok {
		return nil, fmt.Errorf("%s: expected an allwinner pin, got %T", name, p)
	}
	return p, nil
}

// gpioTest ensures connectivity works, including the pull resistors.
func gpioTest(p1, p2 gpio.PinIO) error {
	fmt.Printf("  GPIO functionality on %s and %s:\n", p1, p2)
	if err := p1.In(gpio.Float, gpio.NoEdge); err != nil {
		return err
	}
	for _, l := range []gpio.Level{gpio.Low, gpio.High, gpio.Low} {
		if err := p2.Out(l); err != nil {
			return err
		}
		// There can be a small amount of skew. This should inject just enough time.
		time.Sleep(10 * time.Microsecond)
		if got := p1.Read(); got != l {
			return fmt.Errorf("%s: expected to read %s but got %s", p1, l, got)
		}
	}
	// With p2 floating, p1 follows its own pull resistor.
	if err := p2.In(gpio.Float, gpio.NoEdge); err != nil {
		return err
	}
	for _, pull := range []gpio.Pull{gpio.PullUp, gpio.PullDown} {
		if err := p1.In(pull, gpio.NoEdge); err != nil {
			return err
		}
		time.Sleep(time.Millisecond)
		want := pull == gpio.PullUp
		if got := p1.Read(); got != gpio.Level(want) {
			return fmt.Errorf("%s: expected to read %s with %s but got %s", p1, gpio.Level(want), pull, got)
		}
		if got := p1.Pull(); got != pull {
			return fmt.Errorf("%s: expected pull %s but got %s", p1, pull, got)
		}
	}
	return p1.In(gpio.Float, gpio.NoEdge)
}

// funcTest switches the pin through every function it supports and reads it
// back, then restores it as an input.
func funcTest(p gpio.PinIO) error {
	fmt.Printf("  Functions on %s:\n", p)
	pf, ok := p.(pin.PinFunc)
	if !ok {
		return fmt.Errorf("%s: expected pin.PinFunc", p)
	}
	for _, f := range []pin.Func{gpio.OUT_LOW, gpio.OUT_HIGH, gpio.IN} {
		if err := pf.SetFunc(f); err != nil {
			return err
		}
		got := pf.Func()
		fmt.Printf("    SetFunc(%s): %s\n", f, got)
		if f != gpio.IN && got != f {
			return fmt.Errorf("%s: expected function %s but got %s", p, f, got)
		}
		if f == gpio.IN && got != gpio.IN_LOW && got != gpio.IN_HIGH {
			return fmt.Errorf("%s: expected an input but got %s", p, got)
		}
	}
	return nil
}

// gpioPerfTest reads and write in a tight loop to evaluate performance.
//
// It doesn't evaluate correctness.
func gpioPerfTest(p gpio.PinIO) error {
	fmt.Printf("  GPIO performance on %s:\n", p)
	const loops = 100000
	fmt.Printf("    %d reads:  ", loops)
	if err := p.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return err
	}
	start := time.Now()
	for i := 0; i < loops; i++ {
		p.Read()
	}
	s := time.Since(start)
	fmt.Printf("%s; %s/op\n", s, s/loops)
	fmt.Printf("    %d writes: ", loops)
	if err := p.Out(gpio.Low); err != nil {
		return err
	}
	start = time.Now()
	for i := 0; i < loops; i++ {
		if err := p.Out(gpio.Low); err != nil {
			return err
		}
	}
	s = time.Since(start)
	fmt.Printf("%s; %s/op\n", s, s/loops)
	return p.In(gpio.Float, gpio.NoEdge)
}

// loggingPin logs when its state changes.
type loggingPin struct {
	gpio.PinIO
}

func (p *loggingPin) In(pull gpio.Pull, edge gpio.Edge) error {
	start := time.Now()
	if err := p.PinIO.In(pull, edge); err != nil {
		fmt.Printf("    %s %s.In(%s, %s) = %v\n", time.Since(start), p, pull, edge, err)
		return err
	}
	fmt.Printf("    %s %s.In(%s, %s)\n", time.Since(start), p, pull, edge)
	return nil
}

func (p *loggingPin) Read() gpio.Level {
	start := time.Now()
	l := p.PinIO.Read()
	fmt.Printf("    %s %s.Read() = %s\n", time.Since(start), p, l)
	return l
}

func (p *loggingPin) Out(l gpio.Level) error {
	start := time.Now()
	if err := p.PinIO.Out(l); err != nil {
		fmt.Printf("    %s %s.Out(%s) = %v\n", time.Since(start), p, l, err)
		return err
	}
	fmt.Printf("    %s %s.Out(%s)\n", time.Since(start), p, l)
	return nil
}
