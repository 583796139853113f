// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seed

import "github.com/biogo/store/llrb"

// premapEntry is one element of the premap: a candidate (index, reverse)
// seed discovered during the interval sweep, together with the query
// position that first produced it (metadata only, per the data model) and
// a visited flag used to dedupe the LF-backtrack walk.
type premapEntry struct {
	index    int
	reverse  bool
	queryPos int
	visited  bool
}

// Compare orders premapEntry values by (index, reverse), matching the
// data model's identity rule for seeds: "(index, reverse)".
func (e *premapEntry) Compare(c llrb.Comparable) int {
	o := c.(*premapEntry)
	switch {
	case e.index < o.index:
		return -1
	case e.index > o.index:
		return 1
	case !e.reverse && o.reverse:
		return -1
	case e.reverse && !o.reverse:
		return 1
	default:
		return 0
	}
}

// premap is the seed-identity -> visited-bool map of 4.4, backed by an
// ordered tree (github.com/biogo/store/llrb) rather than a bare Go map so
// that Do walks the entries in a stable, deterministic order -- useful for
// reproducing a given run's seed set across invocations during debugging.
type premap struct {
	tree *llrb.Tree
}

func newPremap() *premap {
	return &premap{tree: &llrb.Tree{}}
}

// insert adds (index, reverse) to the premap if absent, initializing
// visited to false. An existing entry is left untouched (its visited flag
// and original queryPos are preserved).
func (p *premap) insert(index int, reverse bool, queryPos int) {
	probe := &premapEntry{index: index, reverse: reverse}
	if p.tree.Get(probe) != nil {
		return
	}
	probe.queryPos = queryPos
	p.tree.Insert(probe)
}

// get returns the entry for (index, reverse), or nil if absent.
func (p *premap) get(index int, reverse bool) *premapEntry {
	probe := &premapEntry{index: index, reverse: reverse}
	v := p.tree.Get(probe)
	if v == nil {
		return nil
	}
	return v.(*premapEntry)
}

// do visits every premap entry in key order.
func (p *premap) do(fn func(*premapEntry)) {
	p.tree.Do(func(c llrb.Comparable) bool {
		fn(c.(*premapEntry))
		return false
	})
}
