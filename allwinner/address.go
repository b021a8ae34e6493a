// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package allwinner

import (
	"os"
	"path"
	"regexp"
	"strconv"
	"strings"

	"periph.io/x/sunxi/pio"
)

var (
	// Main PIO controller, e.g. sun7i-a20-pinctrl, sun50i-h616-pinctrl.
	pioDriverRe = regexp.MustCompile(`^sun\d+i-[a-z0-9]+-pinctrl$`)
	// R_PIO controller holding bank L, e.g. sun8i-h3-r-pinctrl.
	rPIODriverRe = regexp.MustCompile(`^sun\d+i-[a-z0-9]+-r-pinctrl$`)
)

// getBaseAddresses queries the virtual file system to retrieve the physical
// base addresses of the PIO (banks A to K) and R_PIO (bank L) registers.
//
// Each address defaults to the value found in the A10/A20/H3 datasheets if it
// could not be found. lowPower is false when the PIO controller is bound but
// no R_PIO controller is, as on the A10 and A20 which have no bank L.
func getBaseAddresses(driverDir string) (base, lpBase uint64, lowPower bool) {
	base = pio.DefaultBase
	lpBase = pio.DefaultLowPowerBase
	items, err := os.ReadDir(driverDir)
	if err != nil {
		return base, lpBase, true
	}
	v, found := getBaseAddressFromDirItems(driverDir, items, pioDriverRe)
	if found {
		base = v
	}
	if v, ok := getBaseAddressFromDirItems(driverDir, items, rPIODriverRe); ok {
		return base, v, true
	}
	return base, lpBase, !found
}

func getBaseAddressFromDirItems(root string, items []os.DirEntry, re *regexp.Regexp) (uint64, bool) {
	for _, item := range items {
		if !item.IsDir() || !re.MatchString(item.Name()) {
			continue
		}
		if ret, ok := extractBaseAddressFromDriverDir(path.Join(root, item.Name())); ok {
			return ret, true
		}
	}
	return 0, false
}

// extractBaseAddressFromDriverDir looks for the device bound to the driver,
// named after its physical address like "1c20800.pinctrl".
func extractBaseAddressFromDriverDir(dir string) (uint64, bool) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return 0, false
	}
	for _, item := range items {
		if address, ok := extractBaseAddress(item); ok {
			return address, ok
		}
	}
	return 0, false
}

func extractBaseAddress(item os.DirEntry) (uint64, bool) {
	if item.IsDir() {
		return 0, false
	}
	prefix, ok := strings.CutSuffix(item.Name(), ".pinctrl")
	if !ok {
		return 0, false
	}
	address, err := strconv.ParseUint(prefix, 16, 64)
	if err != nil {
		return 0, false
	}
	return address, true
}
