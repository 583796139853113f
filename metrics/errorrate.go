// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import "gonum.org/v1/gonum/stat"

// ErrorRate returns the overall fraction of accounted bases that were
// corrected (sum of Errors over sum of BasesSeen), and the mean of the
// per-position error rates. The two differ when positions are covered by
// very different numbers of reads: the first weights every base equally,
// the second weights every position equally.
//
// It uses gonum.org/v1/gonum/stat.Mean the same way the teacher pack's
// k-mer distribution tools reduce a set of ratios to a single summary
// statistic, rather than hand-rolling a weighted average.
func (s Snapshot) ErrorRate() (overall, meanPerPosition float64) {
	positions := make([]int, 0, len(s.BasesSeen))
	for pos := range s.BasesSeen {
		positions = append(positions, pos)
	}

	var rates []float64
	var totalErrors, totalSeen int
	for _, pos := range positions {
		seen := sumCounts(s.BasesSeen[pos])
		errs := sumCounts(s.Errors[pos])
		if seen == 0 {
			continue
		}
		totalErrors += errs
		totalSeen += seen
		rates = append(rates, float64(errs)/float64(seen))
	}

	if totalSeen > 0 {
		overall = float64(totalErrors) / float64(totalSeen)
	}
	if len(rates) > 0 {
		meanPerPosition = stat.Mean(rates, nil)
	}
	return overall, meanPerPosition
}

func sumCounts(row map[baseKey]int) int {
	total := 0
	for _, c := range row {
		total += c
	}
	return total
}
