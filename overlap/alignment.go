// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package overlap

import (
	"github.com/biogo/store/step"

	"github.com/biogo/readcorrect/core"
)

// columnRows is the step.Vector payload used by Alignment: the ordered set
// of row ids (0 is always the base read) covering one column range. It
// generalizes the single-value-per-range model contig.Contig uses (one
// seq.Sequence covers a range, overwriting whatever was there) to an
// accumulating one, since a column here must remember every row that
// covers it for the consensus vote, not just the most recent insert.
type columnRows struct {
	rows []int
}

// Equal implements step.Equaler.
func (c columnRows) Equal(e step.Equaler) bool {
	o, ok := e.(columnRows)
	if !ok || len(o.rows) != len(c.rows) {
		return false
	}
	for i := range c.rows {
		if c.rows[i] != o.rows[i] {
			return false
		}
	}
	return true
}

// Alignment is a multiple alignment of overlap rows stacked on a base read
// (C6). Row 0 is the base read at column offset 0; every subsequent row is
// a sequence projected onto the base's column coordinates at the offset its
// pairwise overlap against the base implies.
//
// This mirrors how contig.Contig in the teacher package projects a
// seq.Sequence onto a step.Vector spanning [start, end) in a common
// coordinate space: AddOverlap plays the role of Contig.insert, except each
// column accumulates every covering row instead of keeping only the latest
// one, since Consensus must tolerate conflicting bases at a column rather
// than assume a single sequence ever covers it.
type Alignment struct {
	base    string
	rows    []string // rows[0] == base; rows[i>0] are overlap sequences
	offsets []int    // offsets[i] is row i's column in base coordinates
	vector  *step.Vector
}

// NewAlignment returns an Alignment with an empty base. Call AddBase before
// AddOverlap.
func NewAlignment() *Alignment {
	return &Alignment{}
}

// AddBase initializes row 0, the base read, at column offset 0.
func (a *Alignment) AddBase(seq string) {
	v, err := step.New(0, len(seq), columnRows{})
	core.Require(err == nil, "overlap: AddBase could not build a step.Vector: %v", err)

	a.base = seq
	a.rows = []string{seq}
	a.offsets = []int{0}
	a.vector = v
	a.vector.SetRange(0, len(seq), columnRows{rows: []int{0}})
}

// AddOverlap appends a row whose first base sits at base column offset
// (which may be negative). It takes the offset rather than a core.Overlap;
// Refiner.Refine derives it from the overlap's QueryStart and TargetStart.
func (a *Alignment) AddOverlap(seq string, offset int) {
	rowID := len(a.rows)
	a.rows = append(a.rows, seq)
	a.offsets = append(a.offsets, offset)

	lo, hi := offset, offset+len(seq)
	if lo < 0 {
		lo = 0
	}
	if hi > len(a.base) {
		hi = len(a.base)
	}
	if lo >= hi {
		return
	}

	type piece struct {
		start, end int
		rows       []int
	}
	var pieces []piece
	a.vector.DoRange(lo, hi, func(start, end int, e step.Equaler) {
		cr := e.(columnRows)
		next := make([]int, len(cr.rows), len(cr.rows)+1)
		copy(next, cr.rows)
		pieces = append(pieces, piece{start, end, append(next, rowID)})
	})
	for _, p := range pieces {
		a.vector.SetRange(p.start, p.end, columnRows{rows: p.rows})
	}
}

// Len returns the number of columns in the base read.
func (a *Alignment) Len() int { return len(a.base) }

// Consensus computes the per-column consensus of up to maxDepth rows
// (row 0 plus the first maxDepth-1 overlap rows, in insertion order),
// emitting the argmax base at each column when its support meets
// minSupport, and the base read's own base otherwise.
//
// With minSupport = 0 this is plurality vote with no veto; with
// minSupport = 3 a column only changes when at least three aligned rows
// agree on a different base than the base read.
func (a *Alignment) Consensus(maxDepth, minSupport int) string {
	if a.base == "" {
		return ""
	}

	out := make([]byte, len(a.base))
	var counts [256]int
	a.vector.DoRange(0, len(a.base), func(start, end int, e step.Equaler) {
		rowIDs := e.(columnRows).rows
		if maxDepth > 0 && len(rowIDs) > maxDepth {
			rowIDs = rowIDs[:maxDepth]
		}
		for col := start; col < end; col++ {
			for i := range counts {
				counts[i] = 0
			}
			for _, rid := range rowIDs {
				var b byte
				if rid == 0 {
					b = a.base[col]
				} else {
					i := col - a.offsets[rid]
					if i < 0 || i >= len(a.rows[rid]) {
						continue
					}
					b = a.rows[rid][i]
				}
				counts[b]++
			}

			best, bestCount := a.base[col], 0
			for b, c := range counts {
				if c > bestCount {
					bestCount, best = c, byte(b)
				}
			}
			if bestCount >= minSupport {
				out[col] = best
			} else {
				out[col] = a.base[col]
			}
		}
	})
	return string(out)
}
