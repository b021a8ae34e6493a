// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import (
	"fmt"
	"strconv"
	"strings"
)

// Bank is a group of up to 32 pins sharing one register block.
type Bank uint8

// Banks as labelled in the datasheets.
const (
	BankA Bank = iota
	BankB
	BankC
	BankD
	BankE
	BankF
	BankG
	BankH
	BankI
	BankJ
	BankK
	BankL
	BankM
	BankN
	BankO
)

const (
	// NumBanks is the number of addressable banks, A to O.
	NumBanks = 15
	// PinsPerBank is the stride between two banks in the pin numbering.
	PinsPerBank = 32

	// LowPowerBank is the bank that lives in the R_PIO region instead of the
	// main PIO region.
	LowPowerBank = BankL
)

func (b Bank) String() string {
	if b >= NumBanks {
		return "Bank(" + strconv.Itoa(int(b)) + ")"
	}
	return string(rune('A' + b))
}

// Pin identifies one pin as bank*32+index.
type Pin uint32

// NewPin encodes a pin from its bank and its index within the bank.
func NewPin(b Bank, n int) (Pin, error) {
	if b >= NumBanks {
		return 0, fmt.Errorf("%w: bank %d is not within [0, %d]", ErrRange, b, NumBanks-1)
	}
	if n < 0 || n >= PinsPerBank {
		return 0, fmt.Errorf("%w: pin number %d is not within [0, %d]", ErrRange, n, PinsPerBank-1)
	}
	return Pin(uint32(b)*PinsPerBank + uint32(n)), nil
}

// MustPin is like NewPin but panics on invalid input. It is meant for
// package level pin declarations.
func MustPin(b Bank, n int) Pin {
	p, err := NewPin(b, n)
	if err != nil {
		panic(err)
	}
	return p
}

// PA returns pin n of bank A.
func PA(n int) (Pin, error) { return NewPin(BankA, n) }

// PB returns pin n of bank B.
func PB(n int) (Pin, error) { return NewPin(BankB, n) }

// PC returns pin n of bank C.
func PC(n int) (Pin, error) { return NewPin(BankC, n) }

// PD returns pin n of bank D.
func PD(n int) (Pin, error) { return NewPin(BankD, n) }

// PE returns pin n of bank E.
func PE(n int) (Pin, error) { return NewPin(BankE, n) }

// PF returns pin n of bank F.
func PF(n int) (Pin, error) { return NewPin(BankF, n) }

// PG returns pin n of bank G.
func PG(n int) (Pin, error) { return NewPin(BankG, n) }

// PH returns pin n of bank H.
func PH(n int) (Pin, error) { return NewPin(BankH, n) }

// PI returns pin n of bank I.
func PI(n int) (Pin, error) { return NewPin(BankI, n) }

// PJ returns pin n of bank J.
func PJ(n int) (Pin, error) { return NewPin(BankJ, n) }

// PK returns pin n of bank K.
func PK(n int) (Pin, error) { return NewPin(BankK, n) }

// PL returns pin n of bank L, the low power bank.
func PL(n int) (Pin, error) { return NewPin(BankL, n) }

// PM returns pin n of bank M.
func PM(n int) (Pin, error) { return NewPin(BankM, n) }

// PN returns pin n of bank N.
func PN(n int) (Pin, error) { return NewPin(BankN, n) }

// PO returns pin n of bank O.
func PO(n int) (Pin, error) { return NewPin(BankO, n) }

// Bank returns the bank the pin belongs to.
func (p Pin) Bank() Bank {
	return Bank(p / PinsPerBank)
}

// Index returns the position of the pin within its bank.
func (p Pin) Index() int {
	return int(p % PinsPerBank)
}

// Valid reports whether p falls within banks A to O.
func (p Pin) Valid() bool {
	return p < NumBanks*PinsPerBank
}

// String returns the datasheet name of the pin, e.g. "PH2".
func (p Pin) String() string {
	if !p.Valid() {
		return "Pin(" + strconv.FormatUint(uint64(p), 10) + ")"
	}
	return "P" + p.Bank().String() + strconv.Itoa(p.Index())
}

// ParsePin parses either a datasheet name like "PH2" or a raw pin number
// like "226".
func ParsePin(s string) (Pin, error) {
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		p := Pin(n)
		if !p.Valid() {
			return 0, fmt.Errorf("%w: pin %d is beyond bank %s", ErrRange, n, BankO)
		}
		return p, nil
	}
	u := strings.ToUpper(s)
	if len(u) < 3 || u[0] != 'P' || u[1] < 'A' || u[1] > 'Z' {
		return 0, fmt.Errorf("pio: invalid pin name %q", s)
	}
	n, err := strconv.Atoi(u[2:])
	if err != nil {
		return 0, fmt.Errorf("pio: invalid pin name %q", s)
	}
	return NewPin(Bank(u[1]-'A'), n)
}

// Register geometry. All offsets derive from the index within the bank,
// never from the encoded pin number.

// cfgWord returns which of the four configuration words holds p.
func cfgWord(p Pin) int {
	return p.Index() / 8
}

// cfgShift returns the offset of the 4 bit function field of p.
func cfgShift(p Pin) uint {
	return uint(p.Index()%8) * 4
}

// pullWord returns which of the two pull words holds p.
func pullWord(p Pin) int {
	return p.Index() / 16
}

// pullShift returns the offset of the 2 bit pull field of p.
func pullShift(p Pin) uint {
	return uint(p.Index()%16) * 2
}

func dataShift(p Pin) uint {
	return uint(p.Index())
}

// Function is the 4 bit value selecting what drives a pin.
//
// Values other than Input and Output select a SoC specific peripheral; see
// the datasheet of the part for the mapping.
type Function uint8

const (
	Input      Function = 0
	Output     Function = 1
	Peripheral Function = 2
	// Disabled turns off both the input and output buffers. It is the reset
	// state on the H3.
	Disabled Function = 7

	functionMask = 0xf
)

func (f Function) String() string {
	switch f {
	case Input:
		return "In"
	case Output:
		return "Out"
	case Disabled:
		return "Disabled"
	default:
		return "ALT" + strconv.Itoa(int(f))
	}
}

// Pull is the 2 bit pull resistor setting of a pin.
type Pull uint8

const (
	PullNone Pull = 0
	PullUp   Pull = 1
	PullDown Pull = 2

	pullMask = 0x3
)

func (p Pull) String() string {
	switch p {
	case PullNone:
		return "None"
	case PullUp:
		return "Up"
	case PullDown:
		return "Down"
	default:
		return "Pull(" + strconv.Itoa(int(p)) + ")"
	}
}

// Level is a digital level.
type Level uint8

const (
	Low  Level = 0
	High Level = 1
)

func (l Level) String() string {
	if l == Low {
		return "Low"
	}
	return "High"
}
