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
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Result is the comparison of one computed sum with its reference, after
// truncation.
type Result struct {
	Variant   Variant
	Precision Precision

	// Accurate and Sum are the reference and computed sums. Extended and
	// quad runs store them narrowed to float64 here and at full width in
	// Wide.
	Accurate float64
	Sum      float64

	// Diff is Sum - Accurate.
	Diff float64

	// RelDiff is Diff / Accurate. It is NaN and RelDefined is false when
	// the reference sum is zero.
	RelDiff    float64
	RelDefined bool

	Wide *WideResult

	// Dropped is the number of trailing terms the pairwise strategy left
	// out of the sum.
	Dropped int

	// Threads is the number of workers that ran the sum.
	Threads int
	Elapsed time.Duration
}

// WideResult holds the sums and differences of extended and quad runs at
// accumulator precision. RelDiff is nil when the reference is zero.
type WideResult struct {
	Accurate *big.Float
	Sum      *big.Float
	Diff     *big.Float
	RelDiff  *big.Float
}

// Label returns the report label of the variant that produced r.
func (r *Result) Label() string {
	return r.Variant.Label()
}

// String renders the report line. Quad runs print the sums with 24
// significant digits and the differences with 14.
func (r *Result) String() string {
	var sb strings.Builder
	if r.Precision == Quad && r.Wide != nil {
		fmt.Fprintf(&sb, "  accurate sum %-25.24g sum %-25.24g diff %-20.14g relative diff ",
			r.Wide.Accurate, r.Wide.Sum, r.Wide.Diff)
		if r.RelDefined {
			fmt.Fprintf(&sb, "%-20.14g", r.Wide.RelDiff)
		} else {
			fmt.Fprintf(&sb, "%-20s", Undefined)
		}
	} else {
		fmt.Fprintf(&sb, "  accurate sum %-17.16g sum %-17.16g diff %10.4g relative diff ",
			r.Accurate, r.Sum, r.Diff)
		if r.RelDefined {
			fmt.Fprintf(&sb, "%10.4g", r.RelDiff)
		} else {
			fmt.Fprintf(&sb, "%10s", Undefined)
		}
	}
	fmt.Fprintf(&sb, " runtime %f   %s", r.Elapsed.Seconds(), r.Label())
	if r.Dropped > 0 {
		fmt.Fprintf(&sb, " (%d trailing terms dropped)", r.Dropped)
	}
	return sb.String()
}

// Undefined is printed in place of the relative difference when the
// reference sum is zero.
const Undefined = "undefined"
