// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// sunxigpio reads and writes the GPIO registers of an Allwinner CPU directly
// through /dev/mem.
//
// Usage:
//
//	sunxigpio [-dev /dev/mem] [-base 0x1c20800] [-lm-base 0x1f02c00] [-v] <command> ...
//
// Commands:
//
//	mode PIN in|out|per|disabled|0..15
//	read PIN
//	write PIN 0|1
//	pull PIN none|up|down
//	show PIN
//	blink [-n N] [-period D] PIN
//	button [-led PIN] [-poll D] PIN
//
// PIN is either a datasheet name like PH2 or a pin number like 226.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"periph.io/x/sunxi/pio"
)

// controller is the subset of *pio.Controller used by the commands.
type controller interface {
	SetFunction(p pio.Pin, f pio.Function) error
	Function(p pio.Pin) (pio.Function, error)
	Output(p pio.Pin, l pio.Level) error
	Input(p pio.Pin) (pio.Level, error)
	SetPull(p pio.Pin, pull pio.Pull) error
	Pull(p pio.Pin) (pio.Pull, error)
}

func mainImpl() error {
	dev := flag.String("dev", pio.DefaultDevice, "physical memory device")
	base := flag.String("base", "", "physical address of the PIO registers, banks A to K")
	lmBase := flag.String("lm-base", "", "physical address of the R_PIO registers, bank L")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Usage = usage
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() == 0 {
		usage()
		return errors.New("missing command")
	}

	c := pio.New()
	c.Device = *dev
	var err error
	if c.Base, err = parseAddr(*base, pio.DefaultBase); err != nil {
		return fmt.Errorf("-base: %w", err)
	}
	if c.LowPowerBase, err = parseAddr(*lmBase, pio.DefaultLowPowerBase); err != nil {
		return fmt.Errorf("-lm-base: %w", err)
	}
	log.Printf("mapping %s at %#x and %#x", c.Device, c.Base, c.LowPowerBase)
	if err := c.Init(); err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()
	if !c.LowPowerMapped() {
		log.Printf("bank L is not available")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return run(ctx, c, flag.Args(), os.Stdout)
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: sunxigpio [flags] <command> ...

Commands:
  mode PIN in|out|per|disabled|0..15
  read PIN
  write PIN 0|1
  pull PIN none|up|down
  show PIN
  blink [-n N] [-period D] PIN
  button [-led PIN] [-poll D] PIN

Flags:
`)
	flag.PrintDefaults()
}

// run executes one command.
func run(ctx context.Context, c controller, args []string, w io.Writer) error {
	if len(args) == 0 {
		return errors.New("missing command")
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "mode":
		p, v, err := pinAndValue(args)
		if err != nil {
			return err
		}
		f, err := parseFunction(v)
		if err != nil {
			return err
		}
		log.Printf("%s: function %s", p, f)
		return c.SetFunction(p, f)
	case "read":
		p, err := onePin(args)
		if err != nil {
			return err
		}
		l, err := c.Input(p)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%d\n", l)
		return err
	case "write":
		p, v, err := pinAndValue(args)
		if err != nil {
			return err
		}
		l, err := parseLevel(v)
		if err != nil {
			return err
		}
		// Set the level first so the pin doesn't glitch.
		if err := c.Output(p, l); err != nil {
			return err
		}
		return c.SetFunction(p, pio.Output)
	case "pull":
		p, v, err := pinAndValue(args)
		if err != nil {
			return err
		}
		pull, err := parsePull(v)
		if err != nil {
			return err
		}
		return c.SetPull(p, pull)
	case "show":
		p, err := onePin(args)
		if err != nil {
			return err
		}
		return show(c, p, w)
	case "blink":
		return blink(ctx, c, args)
	case "button":
		return button(ctx, c, args, w)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func show(c controller, p pio.Pin, w io.Writer) error {
	f, err := c.Function(p)
	if err != nil {
		return err
	}
	l, err := c.Input(p)
	if err != nil {
		return err
	}
	pull, err := c.Pull(p)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: %s %s pull=%s\n", p, f, l, pull)
	return err
}

// blink flashes the pin like a heartbeat: two short pulses per period.
func blink(ctx context.Context, c controller, args []string) error {
	f := flag.NewFlagSet("blink", flag.ContinueOnError)
	n := f.Int("n", 0, "number of heartbeats, 0 for infinite")
	period := f.Duration("period", time.Second, "duration of one heartbeat")
	if err := f.Parse(args); err != nil {
		return err
	}
	p, err := onePin(f.Args())
	if err != nil {
		return err
	}
	if err := c.Output(p, pio.Low); err != nil {
		return err
	}
	if err := c.SetFunction(p, pio.Output); err != nil {
		return err
	}
	pulse := *period / 10
	steps := []struct {
		l pio.Level
		d time.Duration
	}{
		{pio.High, pulse},
		{pio.Low, pulse},
		{pio.High, pulse},
		{pio.Low, *period - 3*pulse},
	}
	for i := 0; *n == 0 || i < *n; i++ {
		for _, s := range steps {
			if err := c.Output(p, s.l); err != nil {
				return err
			}
			if err := sleep(ctx, s.d); err != nil {
				return c.Output(p, pio.Low)
			}
		}
	}
	return nil
}

// button mirrors an active low button on a LED until interrupted.
func button(ctx context.Context, c controller, args []string, w io.Writer) error {
	f := flag.NewFlagSet("button", flag.ContinueOnError)
	led := f.String("led", "PH2", "LED pin")
	poll := f.Duration("poll", 10*time.Millisecond, "polling interval")
	if err := f.Parse(args); err != nil {
		return err
	}
	b, err := onePin(f.Args())
	if err != nil {
		return err
	}
	l, err := pio.ParsePin(*led)
	if err != nil {
		return err
	}
	if err := c.SetFunction(l, pio.Output); err != nil {
		return err
	}
	if err := c.SetFunction(b, pio.Input); err != nil {
		return err
	}
	if err := c.SetPull(b, pio.PullUp); err != nil {
		return err
	}
	fmt.Fprintln(w, "Press CTRL+C to exit")
	last := pio.Level(0xff)
	for {
		state, err := c.Input(b)
		if err != nil {
			return err
		}
		if state != last {
			// The pull up inverts the logic.
			out := pio.High
			if state == pio.High {
				out = pio.Low
			}
			if err := c.Output(l, out); err != nil {
				return err
			}
			log.Printf("%s: %s", b, state)
			last = state
		}
		if sleep(ctx, *poll) != nil {
			return nil
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func onePin(args []string) (pio.Pin, error) {
	if len(args) != 1 {
		return 0, errors.New("expected exactly one PIN")
	}
	return pio.ParsePin(args[0])
}

func pinAndValue(args []string) (pio.Pin, string, error) {
	if len(args) != 2 {
		return 0, "", errors.New("expected PIN and a value")
	}
	p, err := pio.ParsePin(args[0])
	return p, args[1], err
}

func parseAddr(s string, def uint64) (uint64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseUint(s, 0, 64)
}

func parseFunction(s string) (pio.Function, error) {
	switch strings.ToLower(s) {
	case "in":
		return pio.Input, nil
	case "out":
		return pio.Output, nil
	case "per":
		return pio.Peripheral, nil
	case "disabled":
		return pio.Disabled, nil
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil || v > 15 {
		return 0, fmt.Errorf("invalid function %q", s)
	}
	return pio.Function(v), nil
}

func parseLevel(s string) (pio.Level, error) {
	switch strings.ToLower(s) {
	case "0", "low":
		return pio.Low, nil
	case "1", "high":
		return pio.High, nil
	}
	return 0, fmt.Errorf("invalid level %q", s)
}

func parsePull(s string) (pio.Pull, error) {
	switch strings.ToLower(s) {
	case "none", "float":
		return pio.PullNone, nil
	case "up":
		return pio.PullUp, nil
	case "down":
		return pio.PullDown, nil
	}
	return 0, fmt.Errorf("invalid pull %q", s)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "sunxigpio: %s.\n", err)
		os.Exit(1)
	}
}
