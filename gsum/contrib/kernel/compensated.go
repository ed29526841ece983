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

// Pair is a compensated accumulator: Sum holds the rounded running sum and
// Correction the low-order part lost by the additions so far.
type Pair[T constraints.Float] struct {
	Sum        T
	Correction T
}

// Value returns the compensated total.
func (p Pair[T]) Value() T {
	return p.Sum + p.Correction
}

// AddKahan adds x with Kahan's compensated summation. The correction from
// the previous step is folded into x before the addition, and the bits lost
// by the addition become the new correction.
func (p *Pair[T]) AddKahan(x T) {
	corrected := x + p.Correction
	sum := p.Sum + corrected
	p.Correction = corrected - (sum - p.Sum)
	p.Sum = sum
}

// AddTwoSum adds x using the Knuth/Dekker two-sum error-free transform. The
// exact rounding error of each addition is recovered without comparing
// magnitudes.
func (p *Pair[T]) AddTwoSum(x T) {
	s, e := TwoSum(p.Sum, x+p.Correction)
	p.Sum = s
	p.Correction = e
}

// AddNeumaier adds x with the Neumaier variant of Kahan summation, which
// picks the operand order by magnitude and accumulates every error term.
func (p *Pair[T]) AddNeumaier(x T) {
	t := p.Sum + x
	switch {
	case math.IsInf(float64(t), 0):
		p.Correction = 0
	case abs(p.Sum) >= abs(x):
		p.Correction += (p.Sum - t) + x
	default:
		p.Correction += (x - t) + p.Sum
	}
	p.Sum = t
}

// Merge folds another pair into p with compensated additions, correction
// first, so no precision is lost when partial sums are combined.
func (p *Pair[T]) Merge(q Pair[T]) {
	p.AddKahan(q.Correction)
	p.AddKahan(q.Sum)
}

// TwoSum returns s = fl(a+b) and the exact error e with a + b = s + e.
func TwoSum[T constraints.Float](a, b T) (s, e T) {
	s = a + b
	ap := s - b
	bp := s - ap
	e = (a - ap) + (b - bp)
	return s, e
}

// Kahan sums v with AddKahan.
func Kahan[T constraints.Float](v []T) Pair[T] {
	var p Pair[T]
	for _, x := range v {
		p.AddKahan(x)
	}
	return p
}

// Knuth sums v with AddTwoSum.
func Knuth[T constraints.Float](v []T) Pair[T] {
	var p Pair[T]
	for _, x := range v {
		p.AddTwoSum(x)
	}
	return p
}

// Neumaier sums v with AddNeumaier.
func Neumaier[T constraints.Float](v []T) Pair[T] {
	var p Pair[T]
	for _, x := range v {
		p.AddNeumaier(x)
	}
	return p
}

func abs[T constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
