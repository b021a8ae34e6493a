//go:build linux

// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pio

import (
	"os"
	"sync/atomic"
	"unsafe"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"
)

// windowPages is the size of each mapping in pages. A register block may
// straddle the page following the base address.
const windowPages = 2

// devMem is /dev/mem or a compatible device.
type devMem struct {
	f        *os.File
	pageSize int
}

func openDevMem(path string) (device, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	return &devMem{f: f, pageSize: unix.Getpagesize()}, nil
}

// mapRegion maps the pages around base. mmap requires a page aligned offset
// so the returned region starts base-start bytes into the mapping.
func (d *devMem) mapRegion(base uint64) (region, error) {
	start := base &^ uint64(d.pageSize-1)
	off := int(base - start)
	m, err := mmap.MapRegion(d.f, windowPages*d.pageSize, mmap.RDWR, 0, int64(start))
	if err != nil {
		return nil, err
	}
	words := unsafe.Slice((*uint32)(unsafe.Pointer(&m[off])), (len(m)-off)/4)
	return &mappedRegion{m: m, words: words}, nil
}

func (d *devMem) Close() error {
	return d.f.Close()
}

// mappedRegion is a region backed by mmap. Registers are accessed with
// atomic loads and stores.
type mappedRegion struct {
	m     mmap.MMap
	words []uint32
}

func (r *mappedRegion) load(i int) uint32 {
	return atomic.LoadUint32(&r.words[i])
}

func (r *mappedRegion) store(i int, v uint32) {
	atomic.StoreUint32(&r.words[i], v)
}

func (r *mappedRegion) unmap() error {
	r.words = nil
	return r.m.Unmap()
}
