// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memindex

import "github.com/biogo/readcorrect/core"

// overlapResult is memindex's concrete core.Overlap: a suffix-of-a vs
// prefix-of-b Hamming overlap (no indels). This is a deliberate
// simplification for a reference/test double -- real overlap services
// (e.g. the teacher's pals.PALS) run an indel-tolerant banded DP instead.
type overlapResult struct {
	length      int
	identity    float64
	queryStart  int
	targetStart int
}

func (o *overlapResult) Length() int           { return o.length }
func (o *overlapResult) PercentIdentity() float64 { return o.identity }
func (o *overlapResult) QueryStart() int       { return o.queryStart }
func (o *overlapResult) TargetStart() int      { return o.targetStart }

// overlapInRange scores, for every candidate overlap length L in
// [lo, hi], the Hamming identity of a's last L bases against b's first L
// bases, and returns the highest-scoring one (score = matches-mismatches).
// It returns nil if the range is empty.
func overlapInRange(a, b string, lo, hi int) *overlapResult {
	if lo < 1 {
		lo = 1
	}
	if hi > len(a) {
		hi = len(a)
	}
	if hi > len(b) {
		hi = len(b)
	}
	if lo > hi {
		return nil
	}

	const negInf = -(1 << 62)
	bestScore := negInf
	var best *overlapResult
	for l := lo; l <= hi; l++ {
		suf := a[len(a)-l:]
		pre := b[:l]
		matches := 0
		for i := 0; i < l; i++ {
			if suf[i] == pre[i] {
				matches++
			}
		}
		score := 2*matches - l
		if score > bestScore {
			bestScore = score
			best = &overlapResult{
				length:      l,
				identity:    float64(matches) / float64(l) * 100,
				queryStart:  len(a) - l,
				targetStart: 0,
			}
		}
	}
	return best
}

// ComputeOverlap implements core.OverlapService's full-DP path (4.5) as an
// exhaustive scan over every candidate overlap length.
func (ix *Index) ComputeOverlap(a, b string) (core.Overlap, error) {
	maxL := len(a)
	if len(b) < maxL {
		maxL = len(b)
	}
	ov := overlapInRange(a, b, 1, maxL)
	if ov == nil {
		return nil, nil
	}
	return ov, nil
}

// ExtendMatch implements core.OverlapService's banded-extension path (4.5),
// restricting the scan to overlap lengths within band of the length the
// (posA, posB) anchor implies.
func (ix *Index) ExtendMatch(a, b string, posA, posB, band int) (core.Overlap, error) {
	center := len(a) - posA + posB
	ov := overlapInRange(a, b, center-band, center+band)
	if ov == nil {
		return nil, nil
	}
	return ov, nil
}

// OverlapRead implements core.OverlapService.OverlapRead by comparing read
// against every other read in the collection directly (no FM-index
// filtering -- this is the naive reference double, not the indexed path
// the real overlap service would use). For each other read it checks both
// directions: read's prefix against the other's suffix, and read's suffix
// against the other's prefix.
func (ix *Index) OverlapRead(read core.Read, minOverlap int) ([]core.OverlapBlock, error) {
	var blocks []core.OverlapBlock
	for id, other := range ix.reads {
		if id == read.Idx {
			continue
		}
		maxL := len(other)
		if len(read.Seq) < maxL {
			maxL = len(read.Seq)
		}

		if ov := overlapInRange(other, read.Seq, 1, maxL); ov != nil && ov.length >= minOverlap {
			blocks = append(blocks, core.OverlapBlock{
				QueryInterval:  core.Interval{Lower: 0, Upper: 0},
				TargetInterval: core.Interval{Lower: 0, Upper: 0},
				Prefix:         true,
				Sequence:       other,
				OverlapLen:     ov.length,
			})
		}
		if ov := overlapInRange(read.Seq, other, 1, maxL); ov != nil && ov.length >= minOverlap {
			blocks = append(blocks, core.OverlapBlock{
				QueryInterval:  core.Interval{Lower: 0, Upper: 0},
				TargetInterval: core.Interval{Lower: 0, Upper: 0},
				Prefix:         false,
				Sequence:       other,
				OverlapLen:     ov.length,
			})
		}
	}
	return blocks, nil
}
