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
	"math"
	"math/big"

	"github.com/ajroetker/go-globalsums/gsum/contrib/kernel"
	"github.com/ajroetker/go-globalsums/gsum/contrib/workerpool"
	"github.com/ajroetker/go-globalsums/gsum/contrib/xprec"
)

// Run sums in with the variant's strategy, applies the variant's
// truncation to both the computed and the reference sum, and returns the
// comparison. The elapsed time covers the summation and the truncation.
//
// Run never modifies in. Concurrent calls are safe as long as they do not
// share a Pool that is being closed.
func Run(v Variant, in *Input, opts Options) (*Result, error) {
	d, ok := v.Strategy.descriptor()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(v.Strategy))
	}
	if err := v.Truncation.validate(); err != nil {
		return nil, err
	}
	if err := checkInput(d, in); err != nil {
		return nil, fmt.Errorf("%s: %w", v, err)
	}
	if d.comp == compTree || d.comp == compTreeCarry {
		if need := kernel.PairwiseScratch(in.Len()); opts.MaxScratch > 0 && need > opts.MaxScratch {
			return nil, fmt.Errorf("%s: %w: need %d elements, limit %d",
				v, ErrResourceExhausted, need, opts.MaxScratch)
		}
	}

	pool := opts.Pool
	if d.parallel && pool == nil {
		pool = workerpool.New(opts.Threads)
		defer pool.Close()
	}

	res := &Result{Variant: v, Precision: d.precision, Threads: 1}
	if d.parallel {
		res.Threads = pool.NumWorkers()
	}

	var err error
	timer := StartTimer()
	if d.precision == Native {
		err = runNative(res, d, v.Truncation, in, pool, opts)
	} else {
		err = runWide(res, d, v.Truncation, in)
	}
	res.Elapsed = timer.Stop()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", v, err)
	}
	return res, nil
}

func checkInput(d descriptor, in *Input) error {
	if in == nil {
		return ErrEmptyInput
	}
	if d.quadTerms {
		if len(in.QuadValues) == 0 {
			return fmt.Errorf("%w: no quad precision terms", ErrEmptyInput)
		}
		for i, x := range in.QuadValues {
			if x == nil {
				return fmt.Errorf("%w: quad term %d is nil", ErrEmptyInput, i)
			}
		}
		return nil
	}
	if len(in.Values) == 0 {
		return ErrEmptyInput
	}
	if d.precision != Native {
		// big.Float cannot represent NaN.
		for i, x := range in.Values {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("%w: term %d is %v", ErrDomain, i, x)
			}
		}
		if math.IsNaN(in.Accurate) && in.AccurateWide == nil {
			return fmt.Errorf("%w: reference sum is NaN", ErrDomain)
		}
	}
	return nil
}

func runNative(res *Result, d descriptor, t Truncation, in *Input, pool *workerpool.Pool, opts Options) error {
	v := in.Values
	var sum float64
	switch {
	case d.parallel:
		sum = sumParallel(d.comp, v, pool, opts)
	case d.comp == compKahan:
		sum = kernel.Kahan(v).Value()
	case d.comp == compKnuth:
		sum = kernel.Knuth(v).Value()
	case d.comp == compNeumaier:
		sum = kernel.Neumaier(v).Value()
	case d.comp == compTree:
		scratch := make([]float64, kernel.PairwiseScratch(len(v)))
		var used int
		sum, used = kernel.Pairwise(v, scratch)
		res.Dropped = len(v) - used
	case d.comp == compTreeCarry:
		sum = kernel.PairwiseCarry(v, make([]float64, kernel.PairwiseScratch(len(v))))
	case d.comp == compLanes:
		sum = kernel.Lanes(v, opts.lanes())
	default:
		sum = kernel.Naive(v)
	}

	accurate := in.Accurate
	switch t.Kind {
	case DigitTruncation:
		var err error
		if sum, err = DigitRound(sum, t.Digits); err != nil {
			return fmt.Errorf("computed sum: %w", err)
		}
		if accurate, err = DigitRound(accurate, t.Digits); err != nil {
			return fmt.Errorf("accurate sum: %w", err)
		}
	case BitTruncation:
		sum = BitTruncate(sum, t.Bits)
		accurate = BitTruncate(accurate, t.Bits)
	}

	res.Sum = sum
	res.Accurate = accurate
	res.Diff = sum - accurate
	res.RelDiff, res.RelDefined = relative(res.Diff, accurate)
	return nil
}

// sumParallel reduces v on the pool. Partial results are combined in the
// order the schedule returns them.
func sumParallel(comp compensation, v []float64, pool *workerpool.Pool, opts Options) float64 {
	if comp == compKahan {
		kahan := func(start, end int) kernel.Pair[float64] { return kernel.Kahan(v[start:end]) }
		var partials []kernel.Pair[float64]
		if opts.Schedule == Dynamic {
			partials = workerpool.ReduceDynamic(pool, len(v), opts.batchSize(), kahan)
		} else {
			partials = workerpool.Reduce(pool, len(v), kahan)
		}
		var total kernel.Pair[float64]
		for _, p := range partials {
			total.Merge(p)
		}
		return total.Value()
	}

	naive := func(start, end int) float64 { return kernel.Naive(v[start:end]) }
	var partials []float64
	if opts.Schedule == Dynamic {
		partials = workerpool.ReduceDynamic(pool, len(v), opts.batchSize(), naive)
	} else {
		partials = workerpool.Reduce(pool, len(v), naive)
	}
	return kernel.Naive(partials)
}

func relative(diff, accurate float64) (float64, bool) {
	if accurate == 0 {
		return math.NaN(), false
	}
	return diff / accurate, true
}

func runWide(res *Result, d descriptor, t Truncation, in *Input) error {
	prec := uint(xprec.QuadPrec)
	if d.precision == Extended {
		prec = xprec.ExtendedPrec
	}

	var sum *big.Float
	if d.quadTerms {
		sum = xprec.SumWide(in.QuadValues, prec)
	} else {
		sum = xprec.Sum(in.Values, prec)
	}
	var accurate *big.Float
	if in.AccurateWide != nil {
		accurate = xprec.Round(in.AccurateWide, prec)
	} else {
		accurate = xprec.FromFloat64(in.Accurate, prec)
	}

	switch t.Kind {
	case DigitTruncation:
		var err error
		if sum, accurate, err = wideDigitRound(sum, accurate, t.Digits, d.precision, prec); err != nil {
			return err
		}
	case BitTruncation:
		sum = xprec.FromFloat64(BitTruncate(xprec.Narrow(sum), t.Bits), prec)
		accurate = xprec.FromFloat64(BitTruncate(xprec.Narrow(accurate), t.Bits), prec)
	}

	w := &WideResult{
		Accurate: accurate,
		Sum:      sum,
		Diff:     xprec.Sub(sum, accurate, prec),
	}
	w.RelDiff, res.RelDefined = xprec.Quo(w.Diff, accurate, prec)
	res.Wide = w
	res.Sum = xprec.Narrow(sum)
	res.Accurate = xprec.Narrow(accurate)
	res.Diff = xprec.Narrow(w.Diff)
	res.RelDiff = math.NaN()
	if res.RelDefined {
		res.RelDiff = xprec.Narrow(w.RelDiff)
	}
	return nil
}

// wideDigitRound rounds quad sums in quad precision, both at the decimal
// places of the computed sum. Extended sums go through float64, like every
// other extended truncation.
func wideDigitRound(sum, accurate *big.Float, ndigits int, p Precision, prec uint) (*big.Float, *big.Float, error) {
	if p == Quad {
		places, err := xprec.DigitPlaces(sum, ndigits)
		if err != nil {
			return nil, nil, fmt.Errorf("computed sum: %w: decimal rounding of %s", ErrDomain, sum.Text('g', 10))
		}
		if accurate.IsInf() {
			return nil, nil, fmt.Errorf("accurate sum: %w: decimal rounding of %s", ErrDomain, accurate.Text('g', 10))
		}
		return xprec.RoundPlaces(sum, places), xprec.RoundPlaces(accurate, places), nil
	}
	s, err := DigitRound(xprec.Narrow(sum), ndigits)
	if err != nil {
		return nil, nil, fmt.Errorf("computed sum: %w", err)
	}
	a, err := DigitRound(xprec.Narrow(accurate), ndigits)
	if err != nil {
		return nil, nil, fmt.Errorf("accurate sum: %w", err)
	}
	return xprec.FromFloat64(s, prec), xprec.FromFloat64(a, prec), nil
}
