// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package overlap

import (
	"github.com/biogo/readcorrect/core"
	"github.com/biogo/readcorrect/seed"
)

// IndexCorrector is the index-driven overlap corrector (C7): a round-loop
// tying the seed enumerator (C4), refiner (C5), and multiple-alignment
// consensus (C6) together.
type IndexCorrector struct {
	enum *seed.Enumerator
	ref  *Refiner
}

// NewIndexCorrector returns an IndexCorrector over idx, sa, and svc.
func NewIndexCorrector(idx core.FMIndex, sa core.SuffixArraySample, svc core.OverlapService) *IndexCorrector {
	return &IndexCorrector{
		enum: seed.NewEnumerator(idx, sa),
		ref:  NewRefiner(idx, svc),
	}
}

// Correct runs params.NumOverlapRounds rounds of seed-and-extend consensus,
// aggressively smoothing on every round but the last (per 4.7).
func (c *IndexCorrector) Correct(read core.Read, params core.Params) (core.Result, error) {
	core.Require(params.KmerLength >= 1, "overlap: Correct requires KmerLength >= 1")

	current := read.Seq
	rounds := params.NumOverlapRounds
	if rounds < 1 {
		rounds = 1
	}

	// anyOverlap tracks whether any round ever accepted at least one
	// overlap hit. A read whose seed set is empty on every round (e.g. it
	// shares k-mers with nothing but itself) never gets a multiple
	// alignment worth consensus-calling: the base row alone is not
	// "the consensus is nonempty" in 4.7's sense, even though
	// Alignment.Consensus on a base-only alignment happily returns the
	// base read unchanged (see Alignment.Consensus's own identity
	// invariant, which is about the consensus function in isolation, not
	// about what the round-loop should report here).
	var anyOverlap bool

	for round := 0; round < rounds; round++ {
		working := core.Read{ID: read.ID, Seq: current, Idx: read.Idx}

		seeds := c.enum.Enumerate(working, params.KmerLength)

		aln := NewAlignment()
		aln.AddBase(current)
		for _, s := range seeds {
			hit, ok, err := c.ref.Refine(working, s, params)
			if err != nil {
				return core.Result{}, err
			}
			if !ok {
				continue
			}
			aln.AddOverlap(hit.Seq, hit.Offset)
			anyOverlap = true
		}

		final := round == rounds-1
		var consensus string
		if final {
			consensus = aln.Consensus(10000, 3)
		} else {
			consensus = aln.Consensus(10000, 0)
		}
		current = consensus
	}

	if !anyOverlap {
		return core.Result{CorrectedSeq: read.Seq, OverlapQC: false}, nil
	}
	return core.Result{CorrectedSeq: current, OverlapQC: true}, nil
}
