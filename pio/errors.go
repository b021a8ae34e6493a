// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import (
	"errors"
	"fmt"
)

var (
	// ErrState is wrapped by every error caused by the Controller not having
	// the registers needed by an operation.
	ErrState = errors.New("pio: registers not available")
	// ErrNotMapped is returned by register operations before Init or after
	// Close.
	ErrNotMapped = fmt.Errorf("%w: controller is not initialized", ErrState)
	// ErrLowPowerNotMapped is returned for bank L pins when the R_PIO region
	// could not be mapped during Init.
	ErrLowPowerNotMapped = fmt.Errorf("%w: bank %s region is not mapped", ErrState, LowPowerBank)

	// ErrRange is wrapped by errors about a bank or pin number out of range.
	ErrRange = errors.New("pio: out of range")
)

// ResourceError reports a failure to open or map physical memory.
type ResourceError struct {
	Op   string // "open" or "mmap"
	Path string
	Addr uint64 // physical address, for "mmap"
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Op == "mmap" {
		return fmt.Sprintf("pio: mmap %s at %#x: %v", e.Path, e.Addr, e.Err)
	}
	return fmt.Sprintf("pio: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
