// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package seed implements the shared-k-mer seed enumerator (C4): turning a
// read into a deduplicated set of (read id, strand) seeds by sweeping
// FM-index intervals for each of the read's k-mers and backtracking the
// survivors to read identifiers via LF-mapping.
package seed

import "github.com/biogo/readcorrect/core"

// MaxIntervalSize is the seed-filter cutoff named in the design notes: an
// FM-index interval at least this large is treated as a repeat and
// discarded rather than expanded, to keep seed enumeration from degrading
// to O(collection size) on a highly-repetitive k-mer. Exported as a named
// constant rather than a Params field because upstream hard-codes it.
const MaxIntervalSize = 500

// Seed is one surviving (read id, strand) hit against the query read.
//
// Identity for set/dedup purposes is (ReadID, Reverse); QueryPosition is
// metadata recording one k-mer offset (in read.Seq, or in its reverse
// complement when Reverse is set) that produced this seed, used by the
// overlap refiner to locate an anchor point.
type Seed struct {
	ReadID        int
	Reverse       bool
	QueryPosition int
}

// Enumerator enumerates seeds for a query read against the shared FM-index.
type Enumerator struct {
	idx core.FMIndex
	sa  core.SuffixArraySample
}

// NewEnumerator returns an Enumerator over idx and sa. Both must be
// non-nil; violating that is a structural precondition.
func NewEnumerator(idx core.FMIndex, sa core.SuffixArraySample) *Enumerator {
	core.Require(idx != nil, "seed: NewEnumerator requires a non-nil FMIndex")
	core.Require(sa != nil, "seed: NewEnumerator requires a non-nil SuffixArraySample")
	return &Enumerator{idx: idx, sa: sa}
}

// Enumerate returns the deduplicated seed set for read, using k-mers of
// length k on both strands. The query read itself (read.Idx) is always
// excluded from the result.
func (en *Enumerator) Enumerate(read core.Read, k int) []Seed {
	core.Require(k >= 1, "seed: Enumerate requires k >= 1")

	pm := newPremap()
	en.sweep(pm, read.Seq, false, k)
	en.sweep(pm, RevComp(read.Seq), true, k)

	out := make(map[seedKey]Seed)
	pm.do(func(e *premapEntry) {
		if e.visited {
			return
		}
		en.backtrack(pm, e, read.Idx, out)
	})

	seeds := make([]Seed, 0, len(out))
	for _, s := range out {
		seeds = append(seeds, s)
	}
	return seeds
}

// sweep performs the interval sweep of 4.4 step 1 for one strand.
func (en *Enumerator) sweep(pm *premap, seq string, reverse bool, k int) {
	if len(seq) < k {
		return
	}
	for i := 0; i+k <= len(seq); i++ {
		iv := en.idx.FindInterval(seq[i : i+k])
		if !iv.Valid() || iv.Size() >= MaxIntervalSize {
			continue
		}
		for j := iv.Lower; j <= iv.Upper; j++ {
			pm.insert(j, reverse, i)
		}
	}
}

// seedKey is the identity used to dedupe resolved seeds: (ReadID, Reverse).
type seedKey struct {
	readID  int
	reverse bool
}

// backtrack performs the LF-backtrack of 4.4 step 2 for one unvisited
// premap entry, emitting at most one resolved seed into out.
func (en *Enumerator) backtrack(pm *premap, start *premapEntry, selfIdx int, out map[seedKey]Seed) {
	start.visited = true
	index := start.index
	for {
		b := en.idx.BWTChar(index)
		if b == '$' {
			readID := en.sa.LookupLexRank(index)
			if readID != selfIdx {
				k := seedKey{readID: readID, reverse: start.reverse}
				if _, ok := out[k]; !ok {
					out[k] = Seed{ReadID: readID, Reverse: start.reverse, QueryPosition: start.queryPos}
				}
			}
			return
		}

		occPrev := 0
		if index > 0 {
			occPrev = en.idx.Occ(b, index-1)
		}
		next := en.idx.C(b) + occPrev

		if pe := pm.get(next, start.reverse); pe != nil {
			if pe.visited {
				return
			}
			pe.visited = true
		}
		index = next
	}
}

var complement = map[byte]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A', 'N': 'N'}

// RevComp returns the reverse complement of a DNA sequence over {A,C,G,T,N}.
func RevComp(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		c, ok := complement[seq[len(seq)-1-i]]
		if !ok {
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}
