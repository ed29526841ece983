// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kernel

import (
	"math"

	"golang.org/x/exp/constraints"
)

// PairwiseScratch returns the number of scratch elements Pairwise and
// PairwiseCarry need for n terms.
func PairwiseScratch(n int) int {
	return (n + 1) / 2
}

// Pairwise sums v with a binary tree reduction: adjacent terms are added
// into scratch, then adjacent partial sums are added in place, level after
// level, for ceil(log2 n) levels in total.
//
// Each level halves the partial count with integer division, so when
// len(v) is not a power of two the unpaired trailing partial of a level is
// dropped. used reports how many leading terms the returned sum covers;
// it equals len(v) exactly when len(v) is a power of two.
//
// scratch must hold at least PairwiseScratch(len(v)) elements.
func Pairwise[T constraints.Float](v, scratch []T) (sum T, used int) {
	n := len(v)
	switch n {
	case 0:
		return 0, 0
	case 1:
		return v[0], 1
	}

	nmax := n / 2
	for i := range nmax {
		scratch[i] = v[i*2] + v[i*2+1]
	}
	used = 2

	levels := math.Log2(float64(n))
	for j := 1; float64(j) < levels; j++ {
		nmax /= 2
		if nmax == 0 {
			break
		}
		for i := range nmax {
			scratch[i] = scratch[i*2] + scratch[i*2+1]
		}
		used *= 2
	}
	return scratch[0], used
}

// PairwiseCarry is Pairwise without dropped terms: the odd partial of each
// level is carried unchanged into the next level.
//
// scratch must hold at least PairwiseScratch(len(v)) elements.
func PairwiseCarry[T constraints.Float](v, scratch []T) T {
	n := len(v)
	switch n {
	case 0:
		return 0
	case 1:
		return v[0]
	}

	half := n / 2
	for i := range half {
		scratch[i] = v[i*2] + v[i*2+1]
	}
	if n%2 == 1 {
		scratch[half] = v[n-1]
	}
	m := (n + 1) / 2

	for m > 1 {
		half = m / 2
		for i := range half {
			scratch[i] = scratch[i*2] + scratch[i*2+1]
		}
		if m%2 == 1 {
			scratch[half] = scratch[m-1]
		}
		m = (m + 1) / 2
	}
	return scratch[0]
}
