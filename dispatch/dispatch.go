// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dispatch selects and runs the correction path named by a read's
// core.Params.Algorithm (C9).
package dispatch

import (
	"github.com/pkg/errors"

	"github.com/biogo/readcorrect/core"
	"github.com/biogo/readcorrect/kmer"
	"github.com/biogo/readcorrect/overlap"
)

// Dispatcher owns the collaborators each correction path needs and routes a
// read to the algorithm named by its Params.
type Dispatcher struct {
	idx core.FMIndex
	qt  core.QualityTable
	ic  *overlap.IndexCorrector
	leg *overlap.Legacy
}

// New returns a Dispatcher. idx and qt are required by the k-mer path; svc
// is required by both overlap paths, and idx and sa by the index-driven one.
func New(idx core.FMIndex, qt core.QualityTable, sa core.SuffixArraySample, svc core.OverlapService) *Dispatcher {
	core.Require(idx != nil, "dispatch: New requires a non-nil FMIndex")
	core.Require(qt != nil, "dispatch: New requires a non-nil QualityTable")
	core.Require(svc != nil, "dispatch: New requires a non-nil OverlapService")
	return &Dispatcher{
		idx: idx,
		qt:  qt,
		ic:  overlap.NewIndexCorrector(idx, sa, svc),
		leg: overlap.NewLegacy(svc),
	}
}

// Correct runs the algorithm params.Algorithm names (4.9):
//
//   - KMER runs k-mer correction (4.3) alone.
//   - OVERLAP runs the index-driven overlap corrector (4.7) alone.
//   - HYBRID runs k-mer correction first; if its QC fails, it discards that
//     attempt and runs the legacy overlap corrector (4.8) on the original,
//     uncorrected read, returning that result instead.
func (d *Dispatcher) Correct(read core.Read, params core.Params) (core.Result, error) {
	core.Require(read.Idx >= 0, "dispatch: Correct requires a non-negative Read.Idx, got %d", read.Idx)
	switch params.Algorithm {
	case core.KMER:
		return kmer.Correct(read, params, d.idx, d.qt), nil

	case core.OVERLAP:
		res, err := d.ic.Correct(read, params)
		return res, errors.Wrapf(err, "dispatch: overlap correction of read %s", read.ID)

	case core.HYBRID:
		res := kmer.Correct(read, params, d.idx, d.qt)
		if res.KmerQC {
			return res, nil
		}
		res, err := d.leg.Correct(read, params)
		return res, errors.Wrapf(err, "dispatch: legacy overlap correction of read %s", read.ID)

	default:
		core.Require(false, "dispatch: Correct got unknown Algorithm %v", params.Algorithm)
		panic("unreachable")
	}
}
