// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package olinuxino

import (
	"testing"

	"periph.io/x/conn/v3/pin/pinreg"
)

func TestIsOLinuXino(t *testing.T) {
	data := []struct {
		model string
		want  bool
	}{
		{"Olimex A20-OLinuXino-LIME", true},
		{"Olimex A20-OLinuXino-MICRO", true},
		{"Olimex A64-OLinuXino", true},
		{"Olimex A20-SOM-EVB", false},
		{"Xunlong Orange Pi Zero", false},
		{"<unknown>", false},
	}
	for _, line := range data {
		if got := isOLinuXino(line.model); got != line.want {
			t.Errorf("isOLinuXino(%q) = %t", line.model, got)
		}
	}
}

func TestPins(t *testing.T) {
	if LED1.Name() != "PH2" || LED1.Number() != 226 {
		t.Fatalf("LED1 = %s (%d)", LED1, LED1.Number())
	}
	if BUT1.Name() != "PL10" || BUT1.Number() != 362 {
		t.Fatalf("BUT1 = %s (%d)", BUT1, BUT1.Number())
	}
}

func TestDriver_Init_notPresent(t *testing.T) {
	d := driver{model: func() string { return "Raspberry Pi 4 Model B" }}
	if ok, err := d.Init(); ok || err == nil {
		t.Fatalf("Init() = %t, %v", ok, err)
	}
}

func TestDriver_Init(t *testing.T) {
	d := driver{model: func() string { return "Olimex A20-OLinuXino-LIME" }}
	if ok, err := d.Init(); !ok || err != nil {
		t.Fatalf("Init() = %t, %v", ok, err)
	}
	defer pinreg.Unregister("OLIMEX")
	if name, pos := pinreg.Position(LED1); name != "OLIMEX" || pos != 1 {
		t.Fatalf("Position(LED1) = %s, %d", name, pos)
	}
	if name, pos := pinreg.Position(BUT1); name != "OLIMEX" || pos != 2 {
		t.Fatalf("Position(BUT1) = %s, %d", name, pos)
	}
	if d.String() != "olinuxino" || d.After()[0] != "allwinner-pio" {
		t.Fatal(d.String(), d.After())
	}
}
