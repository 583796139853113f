// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memindex is a naive in-memory reference implementation of the
// core's FM-index, suffix-array-sample, and overlap-service collaborators
// (core.FMIndex, core.SuffixArraySample, core.OverlapService). It exists
// purely as scaffolding for tests and cmd/readcorrect-demo: the spec
// explicitly keeps the real FM-index out of the core's ownership, and this
// is the simplest possible concrete instance of that external collaborator.
//
// It builds a plain suffix array over a '$'-terminated concatenation of the
// read collection with stdlib sort.Slice; nothing here is tuned for scale.
package memindex

import (
	"sort"
	"strings"

	"github.com/biogo/readcorrect/core"
)

const sentinel = '$'

// Index is the in-memory FM-index/suffix-array-sample/overlap-service
// triple. It is read-only after New returns and is safe for concurrent use
// by multiple correction workers, per 5 "Shared-resource policy".
type Index struct {
	reads  []string
	starts []int
	concat string

	sa        []int
	bwt       []byte
	cTable    map[byte]int
	occPrefix map[byte][]int // occPrefix[b][i] = Occ(b, i-1); len = len(sa)+1
	readAtRow map[int]int    // sa-row -> read id, for rows whose suffix starts at a read's first base
}

// New builds an Index over reads. Each read is indexed by its position in
// the slice, matching the Idx every core.Read passed to a corrector built
// on this Index must carry.
func New(reads []string) *Index {
	ix := &Index{reads: reads}

	var b strings.Builder
	for _, r := range reads {
		ix.starts = append(ix.starts, b.Len())
		b.WriteString(r)
		b.WriteByte(sentinel)
	}
	ix.concat = b.String()

	n := len(ix.concat)
	ix.sa = make([]int, n)
	for i := range ix.sa {
		ix.sa[i] = i
	}
	sort.Slice(ix.sa, func(i, j int) bool {
		return ix.concat[ix.sa[i]:] < ix.concat[ix.sa[j]:]
	})

	ix.bwt = make([]byte, n)
	for row, pos := range ix.sa {
		if pos == 0 {
			ix.bwt[row] = ix.concat[n-1]
		} else {
			ix.bwt[row] = ix.concat[pos-1]
		}
	}

	ix.buildC()
	ix.buildOcc()

	inv := make([]int, n)
	for row, pos := range ix.sa {
		inv[pos] = row
	}
	ix.readAtRow = make(map[int]int, len(reads))
	for id, start := range ix.starts {
		ix.readAtRow[inv[start]] = id
	}

	return ix
}

func (ix *Index) buildC() {
	var counts [256]int
	for i := 0; i < len(ix.concat); i++ {
		counts[ix.concat[i]]++
	}
	ix.cTable = make(map[byte]int)
	running := 0
	for b := 0; b < 256; b++ {
		ix.cTable[byte(b)] = running
		running += counts[b]
	}
}

func (ix *Index) buildOcc() {
	ix.occPrefix = make(map[byte][]int)
	alphabet := []byte{sentinel, 'A', 'C', 'G', 'N', 'T'}
	for _, b := range alphabet {
		col := make([]int, len(ix.bwt)+1)
		for i, c := range ix.bwt {
			col[i+1] = col[i]
			if c == b {
				col[i+1]++
			}
		}
		ix.occPrefix[b] = col
	}
}

// FindInterval implements core.FMIndex via binary search over the suffix
// array rather than backward search, since the full array is in memory
// anyway.
func (ix *Index) FindInterval(kmer string) core.Interval {
	n := len(ix.sa)
	prefixOf := func(i int) string {
		s := ix.concat[ix.sa[i]:]
		if len(s) > len(kmer) {
			return s[:len(kmer)]
		}
		return s
	}
	lo := sort.Search(n, func(i int) bool { return prefixOf(i) >= kmer })
	hi := sort.Search(n, func(i int) bool { return prefixOf(i) > kmer })
	if lo >= hi {
		return core.Interval{Lower: 0, Upper: -1}
	}
	return core.Interval{Lower: lo, Upper: hi - 1}
}

// Count implements core.FMIndex.
func (ix *Index) Count(kmer string) int {
	return ix.FindInterval(kmer).Size()
}

// BWTChar implements core.FMIndex.
func (ix *Index) BWTChar(index int) byte { return ix.bwt[index] }

// C implements core.FMIndex.
func (ix *Index) C(b byte) int { return ix.cTable[b] }

// Occ implements core.FMIndex.
func (ix *Index) Occ(b byte, index int) int {
	col := ix.occPrefix[b]
	if col == nil {
		return 0
	}
	return col[index+1]
}

// ExtractString implements core.FMIndex, returning the original sequence
// of the read identified by id.
func (ix *Index) ExtractString(id int) string { return ix.reads[id] }

// LookupLexRank implements core.SuffixArraySample. index must be the row of
// a suffix that starts at the first base of a read; any other row is a
// caller error.
func (ix *Index) LookupLexRank(index int) int {
	id, ok := ix.readAtRow[index]
	core.Require(ok, "memindex: LookupLexRank called on row %d, which is not a read boundary", index)
	return id
}
