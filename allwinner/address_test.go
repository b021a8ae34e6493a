// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package allwinner

import (
	"os"
	"path"
	"testing"

	"periph.io/x/sunxi/pio"
)

func createDirs(t *testing.T, root string, dirs ...string) string {
	for _, dir := range dirs {
		if err := os.MkdirAll(path.Join(root, dir), os.ModePerm); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func createFiles(t *testing.T, root string, paths ...string) string {
	for _, path_ := range paths {
		if file, err := os.Create(path.Join(root, path_)); err != nil {
			t.Fatal(err)
		} else {
			file.Close()
		}
	}
	return root
}

func createSymLink(t *testing.T, root string, source string, destination string) {
	if err := os.Symlink(path.Join(root, source), path.Join(root, destination)); err != nil {
		t.Fatal(err)
	}
}

func TestGetBaseAddresses_default(t *testing.T) {
	main, lp, lowPower := getBaseAddresses("/dev/null")
	if main != pio.DefaultBase {
		t.Errorf("Expected %#x received %#x", pio.DefaultBase, main)
	}
	if lp != pio.DefaultLowPowerBase || !lowPower {
		t.Errorf("Expected %#x received %#x, %t", pio.DefaultLowPowerBase, lp, lowPower)
	}
}

func TestGetBaseAddresses_A20(t *testing.T) {
	root := t.TempDir()
	createDirs(t,
		root,
		"sun7i-a20-pinctrl/bind",
		"devices/platform/soc/1c20800.pinctrl",
	)
	createFiles(t, root, "sun7i-a20-pinctrl/uevent")
	// The kernel exposes bound devices as symlinks.
	createSymLink(t, root, "devices/platform/soc/1c20800.pinctrl", "sun7i-a20-pinctrl/1c20800.pinctrl")
	main, _, lowPower := getBaseAddresses(root)
	if main != 0x1c20800 {
		t.Errorf("Expected %#x received %#x", 0x1c20800, main)
	}
	// The A20 has no R_PIO.
	if lowPower {
		t.Error("Expected no R_PIO")
	}
}

func TestGetBaseAddresses_H6(t *testing.T) {
	root := t.TempDir()
	createDirs(t,
		root,
		"sun50i-h6-pinctrl/bind",
		"sun50i-h6-pinctrl/uevent",
		"sun50i-h6-r-pinctrl/bind",
		"sun50i-h616-pinctrl/unbind",
		"sun50i-h616-pinctrl/uevent",
		"sun50i-h616-pinctrl/bind",
		"sun50i-pinctrl",
	)
	createFiles(t, root,
		"sun50i-h616-pinctrl/300b000.pinctrl",
		"sun50i-h6-r-pinctrl/7022000.pinctrl",
		"sun50i-pinctrl/1.pinctrl",
	)
	main, lp, lowPower := getBaseAddresses(root)
	if main != 0x300b000 {
		t.Errorf("Expected %#x received %#x", 0x300b000, main)
	}
	if lp != 0x7022000 || !lowPower {
		t.Errorf("Expected %#x received %#x, %t", 0x7022000, lp, lowPower)
	}
}

func TestGetBaseAddresses_unbound(t *testing.T) {
	root := t.TempDir()
	createDirs(t,
		root,
		"sun8i-h3-pinctrl/bin",
		"sun8i-h3-pinctrl/uevent",
		"sun8i-h3-r-pinctrl/bind",
	)
	createFiles(t, root, "sun8i-h3-r-pinctrl/garbage.pinctrl")
	main, lp, lowPower := getBaseAddresses(root)
	if main != pio.DefaultBase || lp != pio.DefaultLowPowerBase || !lowPower {
		t.Errorf("Expected defaults received %#x, %#x, %t", main, lp, lowPower)
	}
}
