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

import "golang.org/x/exp/constraints"

// Naive sums v left to right in a single accumulator.
func Naive[T constraints.Float](v []T) T {
	var sum T
	for _, x := range v {
		sum += x
	}
	return sum
}

// Lanes sums v with lanes independent accumulators, the way a vector unit
// does: term i goes to accumulator i%lanes for every full group of lanes
// terms, the accumulators are then added together in lane order, and the
// remaining tail terms are added one at a time.
//
// lanes is clamped to [1, MaxLanes].
func Lanes[T constraints.Float](v []T, lanes int) T {
	lanes = min(max(lanes, 1), MaxLanes)

	var acc [MaxLanes]T

	// Process full vectors
	var i int
	for i = 0; i+lanes <= len(v); i += lanes {
		for l := range lanes {
			acc[l] += v[i+l]
		}
	}

	// Reduce lanes to scalar
	var result T
	for l := range lanes {
		result += acc[l]
	}

	// Handle tail elements with scalar code
	for ; i < len(v); i++ {
		result += v[i]
	}
	return result
}

// MaxLanes is the widest lane count Lanes supports (AVX-512 with float32).
const MaxLanes = 16
