// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package overlap

import (
	check "gopkg.in/check.v1"

	"github.com/biogo/readcorrect/core"
	"github.com/biogo/readcorrect/seed"
)

// fixedOverlap is a core.Overlap stub that reports whatever the test wired
// in, independent of the sequences actually passed to the service.
type fixedOverlap struct {
	length      int
	identity    float64
	queryStart  int
	targetStart int
}

func (o *fixedOverlap) Length() int           { return o.length }
func (o *fixedOverlap) PercentIdentity() float64 { return o.identity }
func (o *fixedOverlap) QueryStart() int       { return o.queryStart }
func (o *fixedOverlap) TargetStart() int      { return o.targetStart }

// fixedOverlapService always returns ov from both Refine-reachable methods,
// regardless of the sequences/positions given.
type fixedOverlapService struct{ ov *fixedOverlap }

func (f *fixedOverlapService) OverlapRead(core.Read, int) ([]core.OverlapBlock, error) {
	panic("not used by Refine")
}
func (f *fixedOverlapService) ComputeOverlap(string, string) (core.Overlap, error) {
	return f.ov, nil
}
func (f *fixedOverlapService) ExtendMatch(string, string, int, int, int) (core.Overlap, error) {
	return f.ov, nil
}

// fixedIndex is a core.FMIndex stub that only serves ExtractString, since
// Refine never touches the BWT side directly.
type fixedIndex struct{ seqs map[int]string }

func (f *fixedIndex) FindInterval(string) core.Interval { panic("not used by Refine") }
func (f *fixedIndex) Count(string) int                  { panic("not used by Refine") }
func (f *fixedIndex) BWTChar(int) byte                  { panic("not used by Refine") }
func (f *fixedIndex) C(byte) int                        { panic("not used by Refine") }
func (f *fixedIndex) Occ(byte, int) int                 { panic("not used by Refine") }
func (f *fixedIndex) ExtractString(id int) string       { return f.seqs[id] }

// A reverse-strand hit's Seq and Offset must land in the query read's own
// forward coordinate frame: Refine runs the whole pairwise alignment in
// RevComp(read.Seq) space, but the alignment this Hit feeds (C6) is always
// anchored on the forward base read.
func (s *S) TestRefineProjectsReverseStrandHit(c *check.C) {
	query := "AAAACCCC" // RevComp = "GGGGTTTT"
	matched := "CCCCAAAA" // the matched read's own forward sequence; RevComp = "TTTTGGGG"

	idx := &fixedIndex{seqs: map[int]string{7: matched}}
	// In RevComp(query)="GGGGTTTT" vs RevComp(matched)="TTTTGGGG", the
	// aligner reports the shared "GGGG"/"TTTT" overlap at queryStart=0,
	// targetStart=4.
	svc := &fixedOverlapService{ov: &fixedOverlap{length: 4, identity: 100, queryStart: 0, targetStart: 4}}
	ref := NewRefiner(idx, svc)

	read := core.Read{Seq: query, Idx: 0}
	sd := seed.Seed{ReadID: 7, Reverse: true, QueryPosition: 0} // "GGGG" at RevComp(query)[0:4]

	params := core.Params{KmerLength: 4, MinOverlap: 4, MinIdentity: 1.0}
	hit, ok, err := ref.Refine(read, sd, params)
	c.Assert(err, check.IsNil)
	c.Assert(ok, check.Equals, true)

	// Projected back to query's forward frame, the matched read's own
	// forward sequence reappears (RevComp undoes the RevComp Refine applied
	// internally) anchored so its "CCCC" prefix lines up with query's
	// "CCCC" suffix at columns [4,8).
	c.Check(hit.Seq, check.Equals, matched)
	c.Check(hit.Offset, check.Equals, 4)
}
