// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "fmt"

// PreconditionError marks a violated structural precondition (missing
// collaborator, invalid Read.Idx, non-positive k-mer length, and similar).
// Per the core's error-handling contract these are programmer errors: the
// core panics with a PreconditionError rather than trying to recover, the
// same way contig.Contig.At panics on an invariant violation instead of
// returning an error that has no good zero value.
type PreconditionError string

func (e PreconditionError) Error() string { return string(e) }

// Require panics with a PreconditionError built from format/args if cond is
// false.
func Require(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(PreconditionError(fmt.Sprintf(format, args...)))
	}
}
