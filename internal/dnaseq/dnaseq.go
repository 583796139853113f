// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dnaseq loads reads from FASTA and FASTQ files into core.Read
// values for the demo CLI and tests. It is not a spec component: the core
// takes no position on file formats, so some concrete Read-producing path
// is needed to exercise it end to end.
package dnaseq

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"
	wseq "github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"

	"github.com/biogo/readcorrect/core"
)

// ReadFasta loads every record in r as a core.Read, numbered Idx 0..n-1 in
// file order. FASTA carries no quality track, so Qual is left empty and
// correction falls back to core.DefaultPhred for every base.
func ReadFasta(r io.Reader) ([]core.Read, error) {
	template := &linear.Seq{Annotation: seq.Annotation{Alpha: alphabet.DNA}}
	sf := fasta.NewReader(r, template)

	var reads []core.Read
	for {
		s, err := sf.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		ls, ok := s.(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("dnaseq: unexpected sequence type %T", s)
		}
		reads = append(reads, core.Read{
			ID:  ls.Name(),
			Seq: letters(ls),
			Idx: len(reads),
		})
	}
	return reads, nil
}

func letters(s *linear.Seq) string {
	b := make([]byte, len(s.Seq))
	for i, l := range s.Seq {
		b[i] = byte(l)
	}
	return string(b)
}

// ReadFastq loads every record of the FASTQ file at path as a core.Read,
// including its phred quality string, using shenwei356/bio/seqio/fastx
// with the shenwei356/bio/seq DNAredundant alphabet.
func ReadFastq(path string) ([]core.Read, error) {
	fr, err := fastx.NewReader(wseq.DNAredundant, path, fastx.DefaultIDRegexp)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	var reads []core.Read
	for {
		rec, err := fr.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		reads = append(reads, core.Read{
			ID:   string(rec.ID),
			Seq:  string(rec.Seq.Seq),
			Qual: string(rec.Seq.Qual),
			Idx:  len(reads),
		})
	}
	return reads, nil
}
