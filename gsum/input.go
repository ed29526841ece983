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

package gsum

import (
	"math/big"

	"github.com/ajroetker/go-globalsums/gsum/contrib/kernel"
	"github.com/ajroetker/go-globalsums/gsum/contrib/workerpool"
)

// Input is the read-only term array shared by every strategy, together
// with the reference sum the computed sums are compared against.
type Input struct {
	// Values are the float64 terms. Strategies never write to them.
	Values []float64

	// QuadValues are the same terms carried at quad precision. Only the
	// full-quad strategy reads them.
	QuadValues []*big.Float

	// Accurate is the reference sum for native strategies.
	Accurate float64

	// AccurateWide is the reference sum for extended and quad strategies.
	// When nil, Accurate is widened instead.
	AccurateWide *big.Float
}

// Len returns the number of float64 terms.
func (in *Input) Len() int {
	if in == nil {
		return 0
	}
	return len(in.Values)
}

// Schedule selects how parallel strategies hand out work.
type Schedule int

const (
	// Static splits the terms into one contiguous chunk per worker and
	// combines the chunk results in chunk order. The result only depends
	// on the worker count.
	Static Schedule = iota

	// Dynamic hands out fixed-size batches to whichever worker is free and
	// combines the batch results in completion order. The result may vary
	// from run to run.
	Dynamic
)

// String returns "static" or "dynamic".
func (s Schedule) String() string {
	switch s {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// DefaultBatchSize is the dynamic schedule batch size used when
// Options.BatchSize is not set.
const DefaultBatchSize = 4096

// MaxLanes is the largest accumulator count of the lanes strategy.
const MaxLanes = kernel.MaxLanes

// Options configures a single Run.
type Options struct {
	// Pool runs the parallel strategies. When nil, Run creates a pool of
	// Threads workers for the call and closes it afterwards.
	Pool *workerpool.Pool

	// Threads is the worker count used when Pool is nil. Zero means
	// GOMAXPROCS.
	Threads int

	// Schedule selects static chunks or dynamic batches.
	Schedule Schedule

	// BatchSize is the number of terms per dynamic batch.
	BatchSize int

	// Lanes is the accumulator count of the lanes strategy, clamped to
	// MaxLanes. Zero uses the width of the detected vector unit.
	Lanes int

	// MaxScratch bounds the pairwise scratch buffer, in elements. Zero
	// means no limit.
	MaxScratch int
}

func (o Options) lanes() int {
	if o.Lanes > 0 {
		return o.Lanes
	}
	return DefaultLanes()
}

func (o Options) batchSize() int {
	if o.BatchSize > 0 {
		return o.BatchSize
	}
	return DefaultBatchSize
}
