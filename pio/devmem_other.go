//go:build !linux

// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import "errors"

func openDevMem(path string) (device, error) {
	return nil, errors.New("physical memory mapping is only supported on linux")
}
