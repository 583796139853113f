// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "io"

// QualityTable maps a phred score to the minimum k-mer occurrence count
// required to call a k-mer solid. It is provided by the host's
// configuration layer; the core only queries it and treats the returned
// value as an opaque threshold (no monotonicity is assumed or required).
type QualityTable interface {
	RequiredSupport(phred byte) int
}

// Interval is a BWT interval with inclusive bounds, [Lower, Upper].
// An interval with Upper < Lower denotes no match.
type Interval struct {
	Lower, Upper int
}

// Size returns the number of BWT rows spanned by the interval.
func (iv Interval) Size() int {
	if iv.Upper < iv.Lower {
		return 0
	}
	return iv.Upper - iv.Lower + 1
}

// Valid reports whether the interval denotes at least one match.
func (iv Interval) Valid() bool { return iv.Upper >= iv.Lower }

// FMIndex is the compressed self-index over the full read collection. The
// core only consumes it; construction and maintenance of the index belong
// to the host (see internal/memindex for a reference implementation used
// by tests and the demo CLI).
type FMIndex interface {
	// FindInterval returns the BWT interval of rows prefixed by kmer, or an
	// invalid Interval (Upper < Lower) if kmer does not occur.
	FindInterval(kmer string) Interval

	// Count returns the occurrence count of kmer in the collection. It is
	// typically Upper-Lower+1 of FindInterval, but is exposed separately so
	// a cache layer (see package kmer) can front it without needing to know
	// about intervals at all.
	Count(kmer string) int

	// BWTChar returns the byte of the Burrows-Wheeler transform at index.
	BWTChar(index int) byte

	// C returns the number of characters in the transform lexicographically
	// smaller than b.
	C(b byte) int

	// Occ returns the number of occurrences of b in BWT[0:index+1].
	Occ(b byte, index int) int

	// ExtractString reconstructs the full original sequence of the read
	// identified by id (a resolved read id, i.e. Read.Idx -- the same
	// space SuffixArraySample.LookupLexRank resolves into, not a raw BWT
	// row index).
	ExtractString(id int) string
}

// SuffixArraySample resolves a BWT index to the identifier of the read that
// produced it, using a sparse ("sampled") representation combined with
// LF-mapping.
type SuffixArraySample interface {
	LookupLexRank(bwtIndex int) int
}

// Overlap is a computed pairwise overlap between two sequences, "a" (the
// query) and "b" (the match), as returned by OverlapService.
type Overlap interface {
	// Length is the number of aligned bases in the overlap.
	Length() int
	// PercentIdentity is expressed as a percentage in [0, 100], matching the
	// overlap service's native units; callers divide by 100 to compare
	// against Params.MinIdentity.
	PercentIdentity() float64
	// QueryStart and TargetStart are the 0-based offsets in a and b,
	// respectively, where the aligned region begins. Package overlap's
	// Refiner uses QueryStart-TargetStart as the column offset at which b
	// is stacked onto a in the multiple alignment (C6).
	QueryStart() int
	TargetStart() int
}

// OverlapBlock is a contiguous run of reads sharing a common prefix/suffix
// with the query, as returned by OverlapService.OverlapRead. QueryInterval
// and TargetInterval always have equal Size(): every read in the query-side
// interval corresponds 1:1 with a read in the target-side interval.
type OverlapBlock struct {
	QueryInterval  Interval
	TargetInterval Interval

	// Prefix reports whether this block overlaps the query read's prefix
	// (true) or its suffix (false).
	Prefix bool

	// Sequence is a representative extension sequence contributed by the
	// reads in this block, oriented so that, for a prefix block, its last
	// OverlapLen bytes align with the query's first OverlapLen columns,
	// and for a suffix block its first OverlapLen bytes align with the
	// query's last OverlapLen columns.
	Sequence string

	// OverlapLen is the number of bases of Sequence that overlap the
	// query read.
	OverlapLen int
}

// OverlapService is the per-base overlap/alignment collaborator. The core
// never implements alignment itself; it only decides which of
// ComputeOverlap or ExtendMatch to call and interprets the result.
type OverlapService interface {
	// OverlapRead returns the overlap blocks for read against the
	// collection, restricted to overlaps of at least minOverlap bases.
	OverlapRead(read Read, minOverlap int) ([]OverlapBlock, error)

	// ComputeOverlap runs full O(len(a)*len(b)) dynamic programming to find
	// the best overlap between a and b.
	ComputeOverlap(a, b string) (Overlap, error)

	// ExtendMatch runs a banded extension seeded at posA/posB with the given
	// band width.
	ExtendMatch(a, b string, posA, posB, band int) (Overlap, error)
}

// Sink is an opaque byte-stream writer consumed only by the post-processor
// (package metrics). The core never inspects what format a sink writes.
type Sink = io.Writer
