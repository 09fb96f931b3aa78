// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bumpy provides BumpyVector, a fixed-capacity container of
// non-overlapping, variable-length entries keyed by address range, with
// O(log n) lookup by any address inside an entry.
package bumpy

import "fmt"

// Range is a half-open interval [Start, End) over addresses.
type Range struct {
	Start uint64
	End   uint64
}

// Len returns End-Start.
func (r Range) Len() uint64 {
	return r.End - r.Start
}

// Contains reports whether addr falls within [Start, End).
func (r Range) Contains(addr uint64) bool {
	return addr >= r.Start && addr < r.End
}

// Overlaps reports whether r and o share any address.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// Intersects reports whether r shares any address with [start, end).
func (r Range) Intersects(start, end uint64) bool {
	return r.Start < end && start < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}
