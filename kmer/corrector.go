// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kmer

import "github.com/biogo/readcorrect/core"

var bases = [4]byte{'A', 'C', 'G', 'T'}

// Correct repairs read.Seq by iteratively fixing its leftmost non-solid
// base, as described by the k-mer correction algorithm (C3). It never
// mutates read; it returns a new core.Result.
//
// Correct requires idx and qt to be non-nil and params.KmerLength >= 1;
// violating either is a structural precondition and panics with a
// core.PreconditionError.
func Correct(read core.Read, params core.Params, idx core.FMIndex, qt core.QualityTable) core.Result {
	core.Require(idx != nil, "kmer: Correct requires a non-nil FMIndex")
	core.Require(qt != nil, "kmer: Correct requires a non-nil QualityTable")
	core.Require(params.KmerLength >= 1, "kmer: Correct requires KmerLength >= 1, got %d", params.KmerLength)

	k := params.KmerLength
	seq := []byte(read.Seq)

	if len(seq) < k {
		return core.Result{CorrectedSeq: read.Seq, KmerQC: false}
	}

	cache := NewCache(idx)
	minPhred := minPhredPerKmer(read, k)

	nk := len(seq) - k + 1
	for round := 0; round <= params.NumKmerRounds; round++ {
		solid := make([]bool, len(seq))
		allSolid := true
		for i := 0; i < nk; i++ {
			count := cache.Count(string(seq[i : i+k]))
			if count >= qt.RequiredSupport(minPhred[i]) {
				for j := i; j < i+k; j++ {
					solid[j] = true
				}
			}
		}
		for _, s := range solid {
			if !s {
				allSolid = false
				break
			}
		}
		if allSolid {
			return core.Result{CorrectedSeq: string(seq), KmerQC: true}
		}

		iStar := firstFalse(solid)
		phredStar := read.PhredAt(iStar)

		kIdx1 := max(0, iStar-k+1)
		minCount1 := max(cache.Count(string(seq[kIdx1:kIdx1+k])), qt.RequiredSupport(phredStar))
		if next, changed := attemptCorrection(seq, iStar, kIdx1, minCount1, k, cache); changed {
			seq = next
			continue
		}

		// The rightmost k-mer starts at min(iStar, len(seq)-k). Since
		// iStar < len(seq), that start lies in [iStar-k+1, iStar], so this
		// k-mer always covers iStar, including when iStar == len(seq)-1.
		kIdx2 := min(iStar, len(seq)-k)
		minCount2 := max(cache.Count(string(seq[kIdx2:kIdx2+k])), qt.RequiredSupport(phredStar))
		if next, changed := attemptCorrection(seq, iStar, kIdx2, minCount2, k, cache); changed {
			seq = next
			continue
		}

		return core.Result{CorrectedSeq: string(seq), KmerQC: false}
	}

	return core.Result{CorrectedSeq: string(seq), KmerQC: false}
}

// attemptCorrection implements the single-base attempt of 4.3.1. It is a
// pure function: it never mutates seq, returning either the corrected copy
// with changed=true, or seq unchanged with changed=false.
//
// Ambiguity is never resolved by picking a base: if two or more of the
// three alternative bases independently reach minCount, the attempt aborts
// with changed=false even though one of them has the strictly-higher count.
func attemptCorrection(seq []byte, i, kIdx, minCount, k int, cache *Cache) (result []byte, changed bool) {
	b := i - kIdx
	original := seq[i]

	var meeting []byte
	for _, alt := range bases {
		if alt == original {
			continue
		}
		candidate := make([]byte, k)
		copy(candidate, seq[kIdx:kIdx+k])
		candidate[b] = alt
		if cache.Count(string(candidate)) >= minCount {
			meeting = append(meeting, alt)
		}
	}

	if len(meeting) != 1 {
		return seq, false
	}

	out := make([]byte, len(seq))
	copy(out, seq)
	out[i] = meeting[0]
	return out, true
}

// minPhredPerKmer precomputes, for each k-mer start i, the minimum phred
// quality across the k bases it covers.
func minPhredPerKmer(read core.Read, k int) []byte {
	n := len(read.Seq)
	if n < k {
		return nil
	}
	out := make([]byte, n-k+1)
	for i := range out {
		m := read.PhredAt(i)
		for j := i + 1; j < i+k; j++ {
			if p := read.PhredAt(j); p < m {
				m = p
			}
		}
		out[i] = m
	}
	return out
}

func firstFalse(solid []bool) int {
	for i, s := range solid {
		if !s {
			return i
		}
	}
	return -1
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
