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

// Package workload builds deterministic term arrays with quad precision
// reference sums for exercising the summation strategies.
package workload

import (
	"fmt"
	"math"
	"math/big"
	"math/rand/v2"
	"sort"

	"github.com/ajroetker/go-globalsums/gsum"
	"github.com/ajroetker/go-globalsums/gsum/contrib/xprec"
)

// Kind names a fixture.
type Kind string

const (
	// KindIllConditioned is one large term followed by many terms just
	// above half an ulp of it.
	KindIllConditioned Kind = "ill-conditioned"

	// KindTwoRegion is a shock-tube style field: the first half of the
	// cells hold a high value and the second half a value nine decades
	// lower.
	KindTwoRegion Kind = "two-region"

	// KindSpread is positive pseudo-random terms spanning a range of
	// decades.
	KindSpread Kind = "spread"

	// KindConstant is n copies of one value.
	KindConstant Kind = "constant"
)

// Kinds lists every fixture in a stable order.
func Kinds() []Kind {
	return []Kind{KindIllConditioned, KindTwoRegion, KindSpread, KindConstant}
}

// Params configures Generate.
type Params struct {
	Kind Kind
	N    int

	// Magnitude is the number of decades spanned by the spread fixture
	// and the value of the constant fixture, which defaults to 1.
	Magnitude float64

	// Seed selects the pseudo-random stream of the spread fixture.
	Seed uint64
}

// Generate builds the fixture described by p.
func Generate(p Params) (*gsum.Input, error) {
	if p.N < 1 {
		return nil, fmt.Errorf("workload %s: %w: n=%d", p.Kind, gsum.ErrEmptyInput, p.N)
	}
	switch p.Kind {
	case KindIllConditioned:
		return IllConditioned(p.N), nil
	case KindTwoRegion:
		return TwoRegion(p.N), nil
	case KindSpread:
		return Spread(p.N, p.Magnitude, p.Seed), nil
	case KindConstant:
		x := p.Magnitude
		if x == 0 {
			x = 1
		}
		return Constant(p.N, x), nil
	default:
		return nil, fmt.Errorf("unknown workload %q", p.Kind)
	}
}

// IllConditioned returns 1e8 followed by n-1 terms of 1e-8. Each small
// term is larger than half an ulp of 1e8, so naive summation rounds every
// addition up.
func IllConditioned(n int) *gsum.Input {
	v := make([]float64, n)
	v[0] = 1e8
	for i := 1; i < n; i++ {
		v[i] = 1e-8
	}
	return New(v)
}

// TwoRegion returns n cells, the first half at 1e-1 and the rest at 1e-10.
func TwoRegion(n int) *gsum.Input {
	v := make([]float64, n)
	for i := range v {
		if i < n/2 {
			v[i] = 1.0e-1
		} else {
			v[i] = 1.0e-10
		}
	}
	return New(v)
}

// Spread returns n positive pseudo-random terms whose magnitudes are
// spread uniformly over decades decades centered on 1, in shuffled order.
// The same seed always yields the same terms.
func Spread(n int, decades float64, seed uint64) *gsum.Input {
	if decades <= 0 {
		decades = 1
	}
	r := rand.New(rand.NewPCG(seed, seed^0x243f6a8885a308d3))
	v := make([]float64, n)
	for i := range v {
		v[i] = (1 + r.Float64()) * math.Pow(10, (r.Float64()-0.5)*decades)
	}
	return New(v)
}

// Constant returns n copies of x.
func Constant(n int, x float64) *gsum.Input {
	v := make([]float64, n)
	for i := range v {
		v[i] = x
	}
	return New(v)
}

// New wraps v in an Input whose reference sum is accumulated in quad
// precision from the smallest magnitude term up. The quad terms of the
// full-quad strategy are v widened exactly.
func New(v []float64) *gsum.Input {
	exact := referenceSum(v)
	return &gsum.Input{
		Values:       v,
		QuadValues:   xprec.Widen(v, xprec.QuadPrec),
		Accurate:     xprec.Narrow(exact),
		AccurateWide: exact,
	}
}

func referenceSum(v []float64) *big.Float {
	order := make([]int, len(v))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return math.Abs(v[order[a]]) < math.Abs(v[order[b]])
	})
	acc := xprec.NewAccumulator(xprec.QuadPrec)
	for _, i := range order {
		acc.AddFloat64(v[i])
	}
	return acc.Sum()
}
