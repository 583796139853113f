// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package overlap

import (
	check "gopkg.in/check.v1"

	"github.com/biogo/readcorrect/core"
)

// fakeOverlapService returns a fixed set of blocks for every read, ignoring
// minOverlap; tests construct the blocks directly rather than computing
// them from real sequence alignment, since Legacy only consumes blocks.
type fakeOverlapService struct {
	blocks []core.OverlapBlock
	err    error
}

func (f *fakeOverlapService) OverlapRead(core.Read, int) ([]core.OverlapBlock, error) {
	return f.blocks, f.err
}
func (f *fakeOverlapService) ComputeOverlap(string, string) (core.Overlap, error) {
	panic("not used by Legacy.Correct")
}
func (f *fakeOverlapService) ExtendMatch(string, string, int, int, int) (core.Overlap, error) {
	panic("not used by Legacy.Correct")
}

// Scenario 6: sum_overlaps = depth_filter + 1 short-circuits, returning the
// read unchanged with both overlap counts set to the combined sum.
func (s *S) TestLegacyDepthFilterShortCircuit(c *check.C) {
	blocks := make([]core.OverlapBlock, 0, 11)
	for i := 0; i < 11; i++ {
		blocks = append(blocks, core.OverlapBlock{
			QueryInterval: core.Interval{Lower: 0, Upper: 0},
			Prefix:        i%2 == 0,
			Sequence:      "ACGTACGTACGT",
			OverlapLen:    4,
		})
	}
	svc := &fakeOverlapService{blocks: blocks}
	leg := NewLegacy(svc)

	read := core.Read{ID: "r", Seq: "TTTTTTTTTTTT", Idx: 0}
	params := core.Params{DepthFilter: 10, NumOverlapRounds: 3, ConflictCutoff: 0.2}

	res, err := leg.Correct(read, params)
	c.Assert(err, check.IsNil)
	c.Check(res.CorrectedSeq, check.Equals, read.Seq)
	c.Check(res.OverlapQC, check.Equals, true)
	c.Check(res.NumPrefixOverlaps, check.Equals, 11)
	c.Check(res.NumSuffixOverlaps, check.Equals, 11)
}

// A unanimous majority of overlap blocks, none conflicting, corrects the
// base read's columns and passes QC.
func (s *S) TestLegacyCorrectsUnanimousColumn(c *check.C) {
	read := core.Read{ID: "r", Seq: "AAAA", Idx: 0}
	blocks := []core.OverlapBlock{
		{QueryInterval: core.Interval{Lower: 0, Upper: 0}, Prefix: false, Sequence: "CCCC", OverlapLen: 4},
		{QueryInterval: core.Interval{Lower: 0, Upper: 0}, Prefix: false, Sequence: "CCCC", OverlapLen: 4},
	}
	svc := &fakeOverlapService{blocks: blocks}
	leg := NewLegacy(svc)
	params := core.Params{DepthFilter: 10000, NumOverlapRounds: 3, ConflictCutoff: 0.2}

	res, err := leg.Correct(read, params)
	c.Assert(err, check.IsNil)
	c.Check(res.CorrectedSeq, check.Equals, "CCCC")
	c.Check(res.OverlapQC, check.Equals, true)
}

// A column with a genuine conflict straddling conflictCutoff keeps the
// reference base rather than guessing.
func (s *S) TestConsensusConflictRefusesCloseCall(c *check.C) {
	p := newPile("A")
	p.counts[0]['A']++ // reference vote
	for i := 0; i < 2; i++ {
		p.counts[0]['C']++
	}
	p.counts[0]['T']++
	// total=4, best=C(2), minorityFrac = 2/4 = 0.5 > 0.2 cutoff: refuse.
	got := p.consensusConflict(0.01, 0.2)
	c.Check(got, check.Equals, "A")
}

func (s *S) TestQCCheckRequiresCorroboration(c *check.C) {
	p := newPile("AA")
	c.Check(p.qcCheck(), check.Equals, false) // only the reference vote at each column

	p.counts[0]['A']++
	p.counts[1]['A']++
	c.Check(p.qcCheck(), check.Equals, true)
}
