// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import (
	"bytes"
	"errors"
	"go/format"
	"os"
	"path/filepath"
	"testing"
)

func TestNewPin_roundtrip(t *testing.T) {
	for b := Bank(0); b < NumBanks; b++ {
		for n := 0; n < PinsPerBank; n++ {
			p, err := NewPin(b, n)
			if err != nil {
				t.Fatalf("NewPin(%d, %d) = %v", b, n, err)
			}
			if p.Bank() != b || p.Index() != n {
				t.Fatalf("NewPin(%d, %d) decoded to (%d, %d)", b, n, p.Bank(), p.Index())
			}
			if !p.Valid() {
				t.Fatalf("%s should be valid", p)
			}
		}
	}
}

func TestNewPin_range(t *testing.T) {
	data := []struct {
		b Bank
		n int
	}{
		{15, 0},
		{255, 0},
		{BankA, 32},
		{BankA, -1},
		{BankO, 100},
	}
	for _, line := range data {
		if p, err := NewPin(line.b, line.n); !errors.Is(err, ErrRange) {
			t.Errorf("NewPin(%d, %d) = %d, %v; want ErrRange", line.b, line.n, p, err)
		}
	}
}

func TestBankHelpers(t *testing.T) {
	helpers := []func(int) (Pin, error){PA, PB, PC, PD, PE, PF, PG, PH, PI, PJ, PK, PL, PM, PN, PO}
	if len(helpers) != NumBanks {
		t.Fatalf("got %d helpers", len(helpers))
	}
	for i, h := range helpers {
		p, err := h(5)
		if err != nil {
			t.Fatal(err)
		}
		if want := Pin(i*PinsPerBank + 5); p != want {
			t.Errorf("helper %d: got %d, want %d", i, p, want)
		}
		if _, err := h(32); !errors.Is(err, ErrRange) {
			t.Errorf("helper %d accepted 32: %v", i, err)
		}
	}
	if p, _ := PH(2); p != 226 {
		t.Errorf("PH2 = %d", p)
	}
	if p, _ := PL(10); p != 362 {
		t.Errorf("PL10 = %d", p)
	}
}

func TestMustPin_panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustPin(BankO+1, 0)
}

func TestPin_String(t *testing.T) {
	data := []struct {
		p    Pin
		want string
	}{
		{0, "PA0"},
		{MustPin(BankH, 2), "PH2"},
		{MustPin(BankL, 11), "PL11"},
		{MustPin(BankO, 31), "PO31"},
		{NumBanks * PinsPerBank, "Pin(480)"},
	}
	for _, line := range data {
		if s := line.p.String(); s != line.want {
			t.Errorf("%d.String() = %q, want %q", uint32(line.p), s, line.want)
		}
	}
}

func TestParsePin(t *testing.T) {
	data := []struct {
		in   string
		want Pin
	}{
		{"PA0", 0},
		{"PH2", 226},
		{"ph2", 226},
		{"PL10", 362},
		{"226", 226},
		{"479", 479},
	}
	for _, line := range data {
		p, err := ParsePin(line.in)
		if err != nil {
			t.Errorf("ParsePin(%q) = %v", line.in, err)
			continue
		}
		if p != line.want {
			t.Errorf("ParsePin(%q) = %d, want %d", line.in, p, line.want)
		}
	}
	for _, in := range []string{"", "P", "PA", "XA1", "PA-1", "PA32", "PP0", "P01", "480"} {
		if p, err := ParsePin(in); err == nil {
			t.Errorf("ParsePin(%q) = %d, want error", in, p)
		}
	}
}

func TestGeometry(t *testing.T) {
	data := []struct {
		p                   Pin
		cfgWord, pullWord   int
		cfgShift, pullShift uint
		dataShift           uint
	}{
		{MustPin(BankA, 0), 0, 0, 0, 0, 0},
		{MustPin(BankA, 7), 0, 0, 28, 14, 7},
		{MustPin(BankA, 8), 1, 0, 0, 16, 8},
		{MustPin(BankA, 15), 1, 0, 28, 30, 15},
		{MustPin(BankA, 16), 2, 1, 0, 0, 16},
		{MustPin(BankA, 31), 3, 1, 28, 30, 31},
		// Offsets depend on the index within the bank only.
		{MustPin(BankB, 9), 1, 0, 4, 18, 9},
		{MustPin(BankH, 2), 0, 0, 8, 4, 2},
		{MustPin(BankL, 10), 1, 0, 8, 20, 10},
	}
	for _, line := range data {
		if got := cfgWord(line.p); got != line.cfgWord {
			t.Errorf("cfgWord(%s) = %d, want %d", line.p, got, line.cfgWord)
		}
		if got := cfgShift(line.p); got != line.cfgShift {
			t.Errorf("cfgShift(%s) = %d, want %d", line.p, got, line.cfgShift)
		}
		if got := pullWord(line.p); got != line.pullWord {
			t.Errorf("pullWord(%s) = %d, want %d", line.p, got, line.pullWord)
		}
		if got := pullShift(line.p); got != line.pullShift {
			t.Errorf("pullShift(%s) = %d, want %d", line.p, got, line.pullShift)
		}
		if got := dataShift(line.p); got != line.dataShift {
			t.Errorf("dataShift(%s) = %d, want %d", line.p, got, line.dataShift)
		}
	}
}

func TestConstants_String(t *testing.T) {
	if s := Input.String(); s != "In" {
		t.Error(s)
	}
	if s := Output.String(); s != "Out" {
		t.Error(s)
	}
	if s := Function(4).String(); s != "ALT4" {
		t.Error(s)
	}
	if s := PullDown.String(); s != "Down" {
		t.Error(s)
	}
	if s := Pull(3).String(); s != "Pull(3)" {
		t.Error(s)
	}
	if s := High.String(); s != "High" {
		t.Error(s)
	}
	if s := BankL.String(); s != "L" {
		t.Error(s)
	}
}

func TestSourcesAreFormatted(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range files {
		src, err := os.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}
		want, err := format.Source(src)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.Equal(src, want) {
			t.Errorf("%s is not gofmt'ed", name)
		}
	}
}
