// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package olinuxino contains Olimex OLinuXino hardware logic.
//
// It registers the on-board user LED and button as the "OLIMEX" header.
//
// # Physical
//
// https://www.olimex.com/Products/OLinuXino/
package olinuxino
