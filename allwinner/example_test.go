// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package allwinner_test

import (
	"log"
	"time"

	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/sunxi/allwinner"
	"periph.io/x/sunxi/pio"
)

func Example() {
	if _, err := driverreg.Init(); err != nil {
		log.Fatal(err)
	}
	p := gpioreg.ByName("PH2")
	if p == nil {
		log.Fatal("PH2 not found")
	}
	for i := 0; i < 10; i++ {
		if err := p.Out(i%2 == 0); err != nil {
			log.Fatal(err)
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func ExamplePinAt() {
	if _, err := driverreg.Init(); err != nil {
		log.Fatal(err)
	}
	b := allwinner.PinAt(pio.BankL, 10)
	if err := b.In(gpio.PullUp, gpio.NoEdge); err != nil {
		log.Fatal(err)
	}
	log.Printf("%s is %s", b, b.Read())
}
