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

// Package gsum computes the sum of a floating-point array with many
// summation strategies and reports how far each result lands from an
// externally supplied reference sum.
//
// Strategies differ along three axes: the accumulator precision (native
// float64, 64-bit mantissa extended, or 113-bit mantissa quad), the
// parallelism (serial or a fork-join reduction over a worker pool) and the
// compensation technique (naive, Kahan, Knuth two-sum, Neumaier, pairwise
// tree or SIMD-style lane accumulators). Any strategy can be combined with
// a truncation post-step that reduces both the computed and the reference
// sum to fewer decimal digits or mantissa bits before they are compared.
//
// Basic usage:
//
//	in := &gsum.Input{Values: values, Accurate: reference}
//	res, err := gsum.Run(gsum.Variant{Strategy: gsum.KahanSerial}, in, gsum.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res)
//
// Serial strategies accumulate strictly in index order and are bit-for-bit
// reproducible. Parallel strategies partition the indices into contiguous
// chunks; with the static schedule the partial sums are combined in chunk
// order, so results are reproducible for a fixed worker count but change
// with it. The dynamic schedule combines partials in completion order.
package gsum
