// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package core defines the data model and external-service contracts shared
// by the read error-correction packages (kmer, seed, overlap, metrics). It
// has no dependencies on its sibling packages so that each of them can
// depend on core without import cycles.
package core

// Read is a single sequencing read drawn from a larger collection.
//
// Seq is immutable on input; a corrector returns a new Read rather than
// mutating this one. Qual is optional: an empty string means no quality
// information is available and callers should assume a neutral phred value
// for every position (see DefaultPhred).
type Read struct {
	ID  string
	Seq string

	// Qual holds one phred-encoded byte per base of Seq, or is empty if
	// quality information was not provided.
	Qual string

	// Idx is this read's position in the source collection. It is used to
	// suppress self-overlap during seed enumeration and is a structural
	// precondition: every Read passed to a corrector must carry a valid,
	// non-negative Idx.
	Idx int
}

// DefaultPhred is the phred byte assumed for a base when Read.Qual is empty.
// It corresponds to a Sanger quality of 40, a conservative "trust the base"
// default; reads with no quality track are rare in practice, this only
// keeps k-mer correction from treating every base as unconditionally
// untrustworthy.
const DefaultPhred = 'I'

// PhredAt returns the phred-quality byte at position i of r, honoring
// DefaultPhred when r.Qual is absent.
func (r Read) PhredAt(i int) byte {
	if r.Qual == "" {
		return DefaultPhred
	}
	return r.Qual[i]
}

// Algorithm selects which correction path the dispatcher runs for a read.
type Algorithm int

const (
	// KMER runs k-mer correction only.
	KMER Algorithm = iota
	// OVERLAP runs the index-driven overlap corrector only.
	OVERLAP
	// HYBRID runs k-mer correction first and falls back to legacy overlap
	// correction when it fails QC.
	HYBRID
)

func (a Algorithm) String() string {
	switch a {
	case KMER:
		return "kmer"
	case OVERLAP:
		return "overlap"
	case HYBRID:
		return "hybrid"
	default:
		return "unknown"
	}
}

// Params holds the immutable, per-run correction parameters. A Params value
// is safe to share (by value) across concurrently running workers; it is
// never mutated after construction.
type Params struct {
	Algorithm Algorithm

	// KmerLength is the k-mer size used by k-mer correction and by seed
	// enumeration. Must be >= 1.
	KmerLength int

	NumKmerRounds    int
	NumOverlapRounds int

	MinOverlap  int
	MinIdentity float64 // in [0, 1]

	ConflictCutoff float64

	// DepthFilter bounds the legacy overlap corrector's pile size before it
	// short-circuits (see overlap.Legacy). Zero disables the check; the
	// conventional default used by the demo CLI is 10000.
	DepthFilter int

	PrintOverlaps bool
}

// Result is the outcome of correcting one read.
//
// At most one of KmerQC and OverlapQC is true. If both are false the read
// is classified QC-fail by the post-processor.
type Result struct {
	CorrectedSeq string

	KmerQC    bool
	OverlapQC bool

	NumPrefixOverlaps int
	NumSuffixOverlaps int
}
