// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package overlap

import "github.com/biogo/readcorrect/core"

// pErrorDefault is the base sequencing error rate used by the legacy
// conflict-aware consensus, per 4.8 ("consensus_conflict(p_error=0.01,
// conflict_cutoff)").
const pErrorDefault = 0.01

// pile is the masked multi-overlap pile of 4.8: a per-column tally of
// bases contributed by the overlap blocks the overlap service reports for
// a read, re-voted against the read's current working sequence on each
// round of legacy correction.
type pile struct {
	seq    []byte
	counts [][256]int
}

func newPile(seq string) *pile {
	p := &pile{seq: []byte(seq), counts: make([][256]int, len(seq))}
	for i, b := range p.seq {
		p.counts[i][b]++
	}
	return p
}

// addBlock folds one overlap block's contribution into the pile. Prefix
// blocks extend before the read (their sequence's tail aligns with the
// read's first OverlapLen columns); suffix blocks extend after it (their
// sequence's head aligns with the read's last OverlapLen columns).
func (p *pile) addBlock(b core.OverlapBlock) {
	n := b.OverlapLen
	if n <= 0 || n > len(p.seq) || b.Sequence == "" {
		return
	}
	weight := b.QueryInterval.Size()
	if weight < 1 {
		weight = 1
	}
	if b.Prefix {
		off := len(b.Sequence) - n
		if off < 0 {
			return
		}
		for i := 0; i < n; i++ {
			p.counts[i][b.Sequence[off+i]] += weight
		}
	} else {
		start := len(p.seq) - n
		for i := 0; i < n && i < len(b.Sequence); i++ {
			p.counts[start+i][b.Sequence[i]] += weight
		}
	}
}

// update replaces the pile's reference sequence (the fallback emitted for
// conflicted or unsupported columns) without touching accumulated votes.
func (p *pile) update(seq string) { p.seq = []byte(seq) }

// consensusConflict calls each column's majority base when it both clears
// conflictCutoff (the minority's share of the vote) and holds at least a
// 1-pError majority; otherwise it refuses to call and emits the pile's
// current reference base.
func (p *pile) consensusConflict(pError, conflictCutoff float64) string {
	out := make([]byte, len(p.seq))
	for i := range p.seq {
		total := 0
		best, bestCount := p.seq[i], 0
		for b, c := range p.counts[i] {
			total += c
			if c > bestCount {
				bestCount, best = c, byte(b)
			}
		}
		if total == 0 {
			out[i] = p.seq[i]
			continue
		}
		minorityFrac := float64(total-bestCount) / float64(total)
		majorityFrac := float64(bestCount) / float64(total)
		if minorityFrac <= conflictCutoff && majorityFrac >= 1-pError {
			out[i] = best
		} else {
			out[i] = p.seq[i]
		}
	}
	return string(out)
}

// qcCheck reports whether every column of the pile has at least one piece
// of corroborating evidence beyond the reference sequence itself.
func (p *pile) qcCheck() bool {
	for i := range p.seq {
		total := 0
		for _, c := range p.counts[i] {
			total += c
		}
		if total <= 1 {
			return false
		}
	}
	return true
}

// Legacy is the legacy overlap corrector (C8): it drives the overlap
// service directly instead of enumerating seeds via the FM-index.
type Legacy struct {
	svc core.OverlapService
}

// NewLegacy returns a Legacy corrector over svc.
func NewLegacy(svc core.OverlapService) *Legacy {
	core.Require(svc != nil, "overlap: NewLegacy requires a non-nil OverlapService")
	return &Legacy{svc: svc}
}

// Correct implements 4.8. When the combined overlap size exceeds
// params.DepthFilter it short-circuits: the read is returned unchanged,
// OverlapQC is true, and NumPrefixOverlaps/NumSuffixOverlaps are both set
// to the combined sum (not independent counts -- see 4.8 step 2 and the
// "Open questions" this preserves verbatim).
func (l *Legacy) Correct(read core.Read, params core.Params) (core.Result, error) {
	blocks, err := l.svc.OverlapRead(read, params.MinOverlap)
	if err != nil {
		return core.Result{}, err
	}

	var prefixSum, suffixSum int
	for _, b := range blocks {
		sz := b.QueryInterval.Size()
		if b.Prefix {
			prefixSum += sz
		} else {
			suffixSum += sz
		}
	}
	sum := prefixSum + suffixSum

	if params.DepthFilter > 0 && sum > params.DepthFilter {
		return core.Result{
			CorrectedSeq:      read.Seq,
			OverlapQC:         true,
			NumPrefixOverlaps: sum,
			NumSuffixOverlaps: sum,
		}, nil
	}

	p := newPile(read.Seq)
	for _, b := range blocks {
		p.addBlock(b)
	}

	current := read.Seq
	rounds := params.NumOverlapRounds
	if rounds < 1 {
		rounds = 1
	}
	for round := 0; round < rounds; round++ {
		p.update(current)
		next := p.consensusConflict(pErrorDefault, params.ConflictCutoff)
		if next == current {
			break
		}
		current = next
	}
	p.update(current)

	return core.Result{
		CorrectedSeq:      current,
		OverlapQC:         p.qcCheck(),
		NumPrefixOverlaps: prefixSum,
		NumSuffixOverlaps: suffixSum,
	}, nil
}
