// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package overlap implements the overlap-based correction paths: the
// per-seed refiner (C5), the multiple-alignment consensus (C6), the
// index-driven overlap corrector (C7), and the legacy overlap corrector
// (C8).
package overlap

import (
	"strings"

	"github.com/biogo/readcorrect/core"
	"github.com/biogo/readcorrect/seed"
)

// bandWidth is the fixed band used for the extension alignment, per 4.5.
const bandWidth = 20

// Refiner decides, for each surviving seed, whether to extend a unique
// anchor or fall back to full dynamic programming, and applies the
// resulting accept/reject rule.
type Refiner struct {
	idx core.FMIndex
	svc core.OverlapService
}

// NewRefiner returns a Refiner over idx and svc. Both must be non-nil.
func NewRefiner(idx core.FMIndex, svc core.OverlapService) *Refiner {
	core.Require(idx != nil, "overlap: NewRefiner requires a non-nil FMIndex")
	core.Require(svc != nil, "overlap: NewRefiner requires a non-nil OverlapService")
	return &Refiner{idx: idx, svc: svc}
}

// Hit is an accepted overlap, oriented and offset into the query read's own
// forward-strand coordinate frame regardless of which strand the seed
// matched on -- callers never need to know a seed was reverse.
type Hit struct {
	Seq     string
	Offset  int
	Overlap core.Overlap
}

// Refine fetches the full sequence for s, locates the seed k-mer in both
// the query and the match, and computes an overlap with banded extension
// (when the k-mer is unique in both sequences) or full DP (otherwise). It
// reports ok=false if the FM-index/overlap-service collaborators reject the
// pairing or the resulting overlap doesn't meet params' length/identity
// thresholds.
func (r *Refiner) Refine(read core.Read, s seed.Seed, params core.Params) (Hit, bool, error) {
	k := params.KmerLength

	querySeq := read.Seq
	if s.Reverse {
		querySeq = seed.RevComp(read.Seq)
	}
	if s.QueryPosition < 0 || s.QueryPosition+k > len(querySeq) {
		return Hit{}, false, nil
	}
	kmer := querySeq[s.QueryPosition : s.QueryPosition+k]

	matchSeq := r.idx.ExtractString(s.ReadID)
	if s.Reverse {
		matchSeq = seed.RevComp(matchSeq)
	}

	qPos := strings.Index(querySeq, kmer)
	mPos := strings.Index(matchSeq, kmer)
	if qPos < 0 || mPos < 0 {
		return Hit{}, false, nil
	}

	var (
		ov  core.Overlap
		err error
	)
	if occursOnce(querySeq, kmer) && occursOnce(matchSeq, kmer) {
		ov, err = r.svc.ExtendMatch(querySeq, matchSeq, qPos, mPos, bandWidth)
	} else {
		ov, err = r.svc.ComputeOverlap(querySeq, matchSeq)
	}
	if err != nil {
		return Hit{}, false, err
	}
	if ov == nil {
		return Hit{}, false, nil
	}

	if ov.Length() < params.MinOverlap || ov.PercentIdentity()/100 < params.MinIdentity {
		return Hit{}, false, nil
	}

	// ov's QueryStart/TargetStart are columns in querySeq's coordinate
	// frame, which is RevComp(read.Seq) when the seed matched on the
	// reverse strand. Project both the offset and the hit sequence back
	// into read.Seq's own forward coordinates: a span [off, off+m) of
	// querySeq's reverse complement corresponds to the mirrored span
	// [len(read.Seq)-off-m, len(read.Seq)-off) of read.Seq, read in the
	// opposite direction, so the projected row is matchSeq's reverse
	// complement rather than matchSeq itself.
	offset := ov.QueryStart() - ov.TargetStart()
	projected := matchSeq
	if s.Reverse {
		projected = seed.RevComp(matchSeq)
		offset = len(read.Seq) - offset - len(matchSeq)
	}

	return Hit{Seq: projected, Offset: offset, Overlap: ov}, true, nil
}

// occursOnce reports whether sub occurs in s exactly once, including
// overlapping occurrences -- i.e. there is no second occurrence strictly
// after the first.
func occursOnce(s, sub string) bool {
	pos := strings.Index(s, sub)
	if pos < 0 {
		return false
	}
	return !strings.Contains(s[pos+1:], sub)
}
