// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// This file contains pin mapping information that is specific to the Allwinner
// H2+ and H3 model.

package allwinner

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"periph.io/x/conn/v3/pin"
	"periph.io/x/sunxi/pio"
)

// h3PinsSpec describes the mapping of the H3 processor GPIO pins to their
// alternate functions 2 to 6.
//
// It omits the in & out functions which are available on all gpio.
//
// The mappings source is the official H3 Datasheet, version 1.0, page 74
// (chapter 3.2 GPIO Multiplexing Functions).
// http://dl.linux-sunxi.org/H3/Allwinner_H3_Datasheet_V1.0.pdf
//
//   - TWI is the datasheet name for I2C.
//   - RGMII means Reduced gigabit media-independent interface.
//   - SDC is the SD card controller.
//   - CSI is for video capture.
//
//go:embed H3_pins.json
var h3PinsSpec []byte

type serializedPinSpec struct {
	Name      string
	Function2 pin.Func
	Function3 pin.Func
	Function4 pin.Func
	Function5 pin.Func
	Function6 pin.Func
}

func getH3SerializedPinSpecs() ([]serializedPinSpec, error) {
	var serializedPins []serializedPinSpec
	err := json.Unmarshal(h3PinsSpec, &serializedPins)
	return serializedPins, err
}

func getAltFunc(pinSpec serializedPinSpec) [5]pin.Func {
	return [5]pin.Func{
		pinSpec.Function2,
		pinSpec.Function3,
		pinSpec.Function4,
		pinSpec.Function5,
		pinSpec.Function6}
}

// isH3 returns true for the H2+ and H3, which share the same pin out.
func isH3(compatible []string) bool {
	for _, c := range compatible {
		if c == "allwinner,sun8i-h3" || c == "allwinner,sun8i-h2-plus" {
			return true
		}
	}
	return false
}

// mapH3Pins sets the altFunc fields of the H3 pins and marks them as
// available.
//
// It is called by the driver if an H2+ or H3 is detected.
func mapH3Pins() error {
	serializedPinSpecs, err := getH3SerializedPinSpecs()
	if err != nil {
		return err
	}
	for _, pinSpec := range serializedPinSpecs {
		id, err := pio.ParsePin(pinSpec.Name)
		if err != nil {
			return fmt.Errorf("allwinner: %v", err)
		}
		p := &cpuPins[id]
		p.altFunc = getAltFunc(pinSpec)
		p.available = true
	}
	return nil
}
