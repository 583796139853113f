// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics implements the post-processor (C10): classification of
// correction results, sink routing, and per-base error accounting.
package metrics

import (
	"io"

	"github.com/biogo/readcorrect/core"
)

// Snapshot is the metrics a single PostProcessor has accumulated. It is
// plain data: combine several workers' snapshots with Combine.
type Snapshot struct {
	KmerPass    int
	OverlapPass int
	QCFail      int

	// BasesSeen and Errors are keyed by position, original base, quality
	// character, and preceding 2-mer, as named in 4.10. position is
	// int-keyed; the remaining three form the baseKey.
	BasesSeen map[int]map[baseKey]int
	Errors    map[int]map[baseKey]int
}

// baseKey identifies one (original base, quality, preceding 2-mer) tuple.
// The preceding 2-mer is empty for i <= 2, the positions 4.10 excludes from
// 2-mer-keyed accounting.
type baseKey struct {
	base byte
	qual byte
	prev2 string
}

func newSnapshot() Snapshot {
	return Snapshot{
		BasesSeen: make(map[int]map[baseKey]int),
		Errors:    make(map[int]map[baseKey]int),
	}
}

func bump(m map[int]map[baseKey]int, pos int, k baseKey) {
	row, ok := m[pos]
	if !ok {
		row = make(map[baseKey]int)
		m[pos] = row
	}
	row[k]++
}

// PostProcessor classifies correction results, routes reads to the
// corrected/discard sinks, and accumulates per-base error metrics. It is
// not safe for concurrent use; the host gives each worker its own instance
// and combines their Snapshots with Combine (4.10, 5 "Shared-resource
// policy").
type PostProcessor struct {
	corrected io.Writer
	discard   io.Writer // nil means route failures to corrected instead
	snap      Snapshot
}

// NewPostProcessor returns a PostProcessor writing to corrected and,
// optionally, discard. corrected must be non-nil; discard may be nil, in
// which case QC-fail reads are written to corrected as well.
func NewPostProcessor(corrected, discard io.Writer) *PostProcessor {
	core.Require(corrected != nil, "metrics: NewPostProcessor requires a non-nil corrected sink")
	return &PostProcessor{corrected: corrected, discard: discard, snap: newSnapshot()}
}

// classification is the C10 bucket a result falls into.
type classification int

const (
	kmerPass classification = iota
	overlapPass
	qcFail
)

func classify(res core.Result) classification {
	switch {
	case res.KmerQC:
		return kmerPass
	case res.OverlapQC:
		return overlapPass
	default:
		return qcFail
	}
}

// Process classifies res, writes read's corrected sequence to the
// appropriate sink, and folds per-base metrics (when collectMetrics is
// true) into the accumulating Snapshot.
func (p *PostProcessor) Process(read core.Read, res core.Result, collectMetrics bool) error {
	class := classify(res)
	switch class {
	case kmerPass:
		p.snap.KmerPass++
	case overlapPass:
		p.snap.OverlapPass++
	case qcFail:
		p.snap.QCFail++
	}

	sink := p.corrected
	if class == qcFail && p.discard != nil {
		sink = p.discard
	}
	if _, err := io.WriteString(sink, res.CorrectedSeq+"\n"); err != nil {
		return err
	}

	if collectMetrics {
		p.accumulate(read, res)
	}
	return nil
}

// accumulate implements 4.10's per-base counters: for each position i of
// the original read, bump the "bases seen" counter keyed by position,
// original base, quality character, and preceding 2-mer (only for i > 2);
// where the corrected read differs at i, bump the matching error counter
// too.
func (p *PostProcessor) accumulate(read core.Read, res core.Result) {
	orig := read.Seq
	corrected := res.CorrectedSeq
	for i := 0; i < len(orig); i++ {
		var prev2 string
		if i > 2 {
			prev2 = orig[i-2 : i]
		}
		k := baseKey{base: orig[i], qual: read.PhredAt(i), prev2: prev2}
		bump(p.snap.BasesSeen, i, k)

		if i < len(corrected) && corrected[i] != orig[i] {
			bump(p.snap.Errors, i, k)
		}
	}
}

// Snapshot returns a copy of the metrics accumulated so far. The returned
// value shares no mutable state with p; further calls to Process do not
// affect it.
func (p *PostProcessor) Snapshot() Snapshot {
	out := newSnapshot()
	out.KmerPass, out.OverlapPass, out.QCFail = p.snap.KmerPass, p.snap.OverlapPass, p.snap.QCFail
	for pos, row := range p.snap.BasesSeen {
		cp := make(map[baseKey]int, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.BasesSeen[pos] = cp
	}
	for pos, row := range p.snap.Errors {
		cp := make(map[baseKey]int, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.Errors[pos] = cp
	}
	return out
}

// Combine merges several workers' Snapshots into one, per 4.10's "combining
// across workers is the caller's responsibility."
func Combine(snaps ...Snapshot) Snapshot {
	out := newSnapshot()
	for _, s := range snaps {
		out.KmerPass += s.KmerPass
		out.OverlapPass += s.OverlapPass
		out.QCFail += s.QCFail
		mergeInto(out.BasesSeen, s.BasesSeen)
		mergeInto(out.Errors, s.Errors)
	}
	return out
}

func mergeInto(dst, src map[int]map[baseKey]int) {
	for pos, row := range src {
		drow, ok := dst[pos]
		if !ok {
			drow = make(map[baseKey]int, len(row))
			dst[pos] = drow
		}
		for k, v := range row {
			drow[k] += v
		}
	}
}
