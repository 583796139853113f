// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seed

import (
	"testing"

	check "gopkg.in/check.v1"

	"github.com/biogo/readcorrect/core"
	"github.com/biogo/readcorrect/internal/memindex"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestRevComp(c *check.C) {
	c.Check(RevComp("ACGT"), check.Equals, "ACGT")
	c.Check(RevComp("AACCGGTT"), check.Equals, "AACCGGTT")
	c.Check(RevComp("AAAA"), check.Equals, "TTTT")
	c.Check(RevComp("ACGTN"), check.Equals, "NACGT")
}

// A read enumerates another read it shares a k-mer with as a seed, and is
// never a seed of itself.
func (s *S) TestEnumerateFindsSharedKmer(c *check.C) {
	reads := []string{"ACGTACGTAA", "TTACGTACGT"}
	idx := memindex.New(reads)
	en := NewEnumerator(idx, idx)

	seeds := en.Enumerate(core.Read{Seq: reads[0], Idx: 0}, 5)
	var found bool
	for _, sd := range seeds {
		c.Check(sd.ReadID, check.Not(check.Equals), 0)
		if sd.ReadID == 1 {
			found = true
		}
	}
	c.Check(found, check.Equals, true)
}

// A read with no shared k-mer against anything else in the collection
// enumerates an empty seed set once self-matches are excluded.
func (s *S) TestEnumerateSelfOnlyIsEmpty(c *check.C) {
	reads := []string{"ACGTACGTAA", "TTTTTTTTTT"}
	idx := memindex.New(reads)
	en := NewEnumerator(idx, idx)

	seeds := en.Enumerate(core.Read{Seq: reads[0], Idx: 0}, 5)
	c.Check(seeds, check.HasLen, 0)
}

// An interval at exactly MaxIntervalSize is excluded (strict <), per the
// "excluded from seed enumeration" edge case.
func (s *S) TestSweepExcludesIntervalAtMax(c *check.C) {
	pm := newPremap()
	en := &Enumerator{idx: boundaryIndex{size: MaxIntervalSize}, sa: nil}
	en.sweep(pm, "AAAAA", false, 5)
	c.Check(countPremap(pm), check.Equals, 0)
}

func (s *S) TestSweepAcceptsIntervalBelowMax(c *check.C) {
	pm := newPremap()
	en := &Enumerator{idx: boundaryIndex{size: MaxIntervalSize - 1}, sa: nil}
	en.sweep(pm, "AAAAA", false, 5)
	c.Check(countPremap(pm), check.Equals, MaxIntervalSize-1)
}

func countPremap(pm *premap) int {
	n := 0
	pm.do(func(*premapEntry) { n++ })
	return n
}

// boundaryIndex is a core.FMIndex stub that reports a fixed-size interval
// for every k-mer, used to test the MaxIntervalSize cutoff in isolation
// from any real BWT construction.
type boundaryIndex struct{ size int }

func (b boundaryIndex) FindInterval(string) core.Interval {
	return core.Interval{Lower: 0, Upper: b.size - 1}
}
func (b boundaryIndex) Count(string) int             { return b.size }
func (b boundaryIndex) BWTChar(int) byte             { panic("not used by sweep") }
func (b boundaryIndex) C(byte) int                   { panic("not used by sweep") }
func (b boundaryIndex) Occ(byte, int) int            { panic("not used by sweep") }
func (b boundaryIndex) ExtractString(int) string     { panic("not used by sweep") }
