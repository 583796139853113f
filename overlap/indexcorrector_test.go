// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package overlap

import (
	check "gopkg.in/check.v1"

	"github.com/biogo/readcorrect/core"
	"github.com/biogo/readcorrect/internal/memindex"
	"github.com/biogo/readcorrect/seed"
)

// A read with a single-base error, surrounded by several identical clean
// reads in the collection, is corrected by the index-driven overlap
// corrector's consensus once enough overlap rounds run.
func (s *S) TestIndexCorrectorFixesMinorityBase(c *check.C) {
	clean := "ACGTACGTACGTACGTACGT"
	dirty := "ACGTATGTACGTACGTACGT" // one substitution at column 5
	reads := []string{clean, clean, clean, dirty}
	idx := memindex.New(reads)

	ic := NewIndexCorrector(idx, idx, idx)
	params := core.Params{
		KmerLength:       5,
		NumOverlapRounds: 2,
		MinOverlap:       5,
		MinIdentity:      0.8,
	}

	res, err := ic.Correct(core.Read{ID: "dirty", Seq: dirty, Idx: 3}, params)
	c.Assert(err, check.IsNil)
	c.Check(res.OverlapQC, check.Equals, true)
	c.Check(res.CorrectedSeq, check.Equals, clean)
}

// A read that matches nothing else in the collection (after self-exclusion,
// its seed set is empty) fails overlap QC and is returned unchanged.
func (s *S) TestIndexCorrectorNoSeedsFailsQC(c *check.C) {
	reads := []string{"ACGTACGTACGTACGTACGT", "TTTTTTTTTTTTTTTTTTTT"}
	idx := memindex.New(reads)

	ic := NewIndexCorrector(idx, idx, idx)
	params := core.Params{
		KmerLength:       5,
		NumOverlapRounds: 2,
		MinOverlap:       5,
		MinIdentity:      0.8,
	}

	read := core.Read{ID: "lonely", Seq: reads[0], Idx: 0}
	res, err := ic.Correct(read, params)
	c.Assert(err, check.IsNil)
	c.Check(res.OverlapQC, check.Equals, false)
	c.Check(res.CorrectedSeq, check.Equals, read.Seq)
}

// Refiner.Refine rejects a seed whose best overlap falls short of
// MinOverlap, even when the k-mer itself matched.
func (s *S) TestRefinerRejectsShortOverlap(c *check.C) {
	reads := []string{"ACGTACGTAA", "ACGTAGGGGG"} // share only the 5-mer "ACGTA"
	idx := memindex.New(reads)
	ref := NewRefiner(idx, idx)

	en := seed.NewEnumerator(idx, idx)
	read := core.Read{Seq: reads[0], Idx: 0}
	seeds := en.Enumerate(read, 5)
	c.Assert(len(seeds) > 0, check.Equals, true)

	params := core.Params{KmerLength: 5, MinOverlap: 9, MinIdentity: 0.5}
	for _, sd := range seeds {
		_, ok, err := ref.Refine(read, sd, params)
		c.Assert(err, check.IsNil)
		c.Check(ok, check.Equals, false)
	}
}
