// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/biogo/readcorrect/core"
	"github.com/biogo/readcorrect/dispatch"
	"github.com/biogo/readcorrect/internal/memindex"
	"github.com/biogo/readcorrect/metrics"
)

// TestDemoEndToEnd drives the same dispatch.Dispatcher/memindex.Index/
// metrics.PostProcessor wiring main() uses, over a small in-memory read
// collection, the way grailbio-bio's package tests use testify/require for
// integration-style assertions rather than gopkg.in/check.v1's table style.
func TestDemoEndToEnd(t *testing.T) {
	reads := []core.Read{
		{ID: "r0", Seq: "ACGTACGTACGTACGTACGT", Idx: 0},
		{ID: "r1", Seq: "ACGTACGTACGTACGTACGT", Idx: 1},
		{ID: "r2", Seq: "ACGTACGTACGTACGTACGT", Idx: 2},
		{ID: "r3", Seq: "ACGTATGTACGTACGTACGT", Idx: 3}, // one substitution vs the others
	}

	idx := memindex.New(seqsOf(reads))
	qt := newStaticQualityTable(2)
	d := dispatch.New(idx, qt, idx, idx)

	params := core.Params{
		Algorithm:        core.KMER,
		KmerLength:       5,
		NumKmerRounds:    10,
		NumOverlapRounds: 3,
		MinOverlap:       5,
		MinIdentity:      0.9,
		ConflictCutoff:   0.2,
		DepthFilter:      10000,
	}

	var out strings.Builder
	pp := metrics.NewPostProcessor(&out, nil)

	for _, r := range reads {
		res, err := d.Correct(r, params)
		require.NoError(t, err)
		require.NoError(t, pp.Process(r, res, true))
	}

	snap := pp.Snapshot()
	require.Equal(t, 4, snap.KmerPass+snap.OverlapPass+snap.QCFail)
	require.Greater(t, snap.KmerPass, 0)

	overall, meanPerPosition := snap.ErrorRate()
	require.GreaterOrEqual(t, overall, 0.0)
	require.GreaterOrEqual(t, meanPerPosition, 0.0)
	require.NotEmpty(t, out.String())
}

func seqsOf(reads []core.Read) []string {
	out := make([]string, len(reads))
	for i, r := range reads {
		out[i] = r.Seq
	}
	return out
}
