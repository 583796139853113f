// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kmer implements k-mer based read correction: a per-read k-mer
// count cache (C2) fronting the FM-index, and the iterative single-base
// corrector (C3) driven by it.
package kmer

import "github.com/biogo/readcorrect/core"

// Cache memoizes FM-index occurrence counts for one read. It keeps no
// eviction policy and no concurrency guard: a Cache is created fresh for
// each correction call and discarded when that call returns, matching the
// "owned by the correction call" lifetime in the data model.
type Cache struct {
	idx    core.FMIndex
	counts map[string]int
}

// NewCache returns a Cache fronting idx.
func NewCache(idx core.FMIndex) *Cache {
	core.Require(idx != nil, "kmer: NewCache requires a non-nil FMIndex")
	return &Cache{idx: idx, counts: make(map[string]int)}
}

// Count returns the occurrence count of kmer, querying the FM-index on
// first request and memoizing the result for the remainder of this read.
func (c *Cache) Count(kmer string) int {
	if v, ok := c.counts[kmer]; ok {
		return v
	}
	v := c.idx.Count(kmer)
	c.counts[kmer] = v
	return v
}
