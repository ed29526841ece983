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

// Package xprec provides accumulators wider than float64, built on
// math/big.Float with IEEE round-to-nearest-even:
//
//   - ExtendedPrec (64-bit mantissa) matches the x87 80-bit long double.
//   - QuadPrec (113-bit mantissa) matches IEEE-754 binary128.
//
// Every addition rounds once to the accumulator precision, so a run
// reproduces what hardware with that significand width would compute.
// The exponent range is unbounded, so overflow and subnormal behaviour
// differ from hardware.
package xprec

import (
	"errors"
	"math"
	"math/big"
)

const (
	// ExtendedPrec is the significand width of an x87 long double.
	ExtendedPrec uint = 64

	// QuadPrec is the significand width of IEEE-754 binary128.
	QuadPrec uint = 113
)

// ErrNonPositive is returned by DigitRound for values that are not
// finite and strictly positive.
var ErrNonPositive = errors.New("xprec: value is not finite and strictly positive")

// New returns a zero value with the given precision.
func New(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetMode(big.ToNearestEven)
}

// FromFloat64 widens x to prec bits. x must not be NaN.
func FromFloat64(x float64, prec uint) *big.Float {
	return New(prec).SetFloat64(x)
}

// Round returns x rounded to prec bits.
func Round(x *big.Float, prec uint) *big.Float {
	return New(prec).Set(x)
}

// Narrow rounds x to the nearest float64.
func Narrow(x *big.Float) float64 {
	f, _ := x.Float64()
	return f
}

// Widen converts every element of v to a prec-bit value.
func Widen(v []float64, prec uint) []*big.Float {
	out := make([]*big.Float, len(v))
	for i, x := range v {
		out[i] = FromFloat64(x, prec)
	}
	return out
}

// Sub returns a-b rounded to prec bits.
func Sub(a, b *big.Float, prec uint) *big.Float {
	return New(prec).Sub(a, b)
}

// Quo returns a/b rounded to prec bits. ok is false when b is zero.
func Quo(a, b *big.Float, prec uint) (q *big.Float, ok bool) {
	if b.Sign() == 0 {
		return nil, false
	}
	return New(prec).Quo(a, b), true
}

// Accumulator is a running sum with a fixed significand width.
type Accumulator struct {
	sum  big.Float
	term big.Float
}

// NewAccumulator returns a zero accumulator rounding to prec bits.
func NewAccumulator(prec uint) *Accumulator {
	a := &Accumulator{}
	a.sum.SetPrec(prec).SetMode(big.ToNearestEven)
	a.term.SetPrec(53)
	return a
}

// AddFloat64 widens x and adds it to the sum. x must not be NaN.
func (a *Accumulator) AddFloat64(x float64) {
	a.term.SetFloat64(x)
	a.sum.Add(&a.sum, &a.term)
}

// Add adds x to the sum.
func (a *Accumulator) Add(x *big.Float) {
	a.sum.Add(&a.sum, x)
}

// Sum returns a copy of the current sum.
func (a *Accumulator) Sum() *big.Float {
	return new(big.Float).Copy(&a.sum)
}

// Sum adds the float64 terms of v in index order at prec bits.
func Sum(v []float64, prec uint) *big.Float {
	a := NewAccumulator(prec)
	for _, x := range v {
		a.AddFloat64(x)
	}
	return a.Sum()
}

// SumWide adds the terms of v in index order at prec bits.
func SumWide(v []*big.Float, prec uint) *big.Float {
	a := NewAccumulator(prec)
	for _, x := range v {
		a.Add(x)
	}
	return a.Sum()
}

// DigitRound rounds x to ndigits-n decimal places, where n is the decimal
// exponent floor(log10(x)), keeping the precision of x. Halfway cases round
// away from zero.
func DigitRound(x *big.Float, ndigits int) (*big.Float, error) {
	places, err := DigitPlaces(x, ndigits)
	if err != nil {
		return nil, err
	}
	return RoundPlaces(x, places), nil
}

// DigitPlaces returns ndigits - floor(log10(x)), the number of decimal
// places DigitRound keeps for x.
func DigitPlaces(x *big.Float, ndigits int) (int, error) {
	if x.Sign() <= 0 || x.IsInf() {
		return 0, ErrNonPositive
	}
	return ndigits - DecimalExponent(x), nil
}

// RoundPlaces rounds finite x to places decimal places, or to a multiple of
// 10^-places when places is negative, keeping the precision of x. Halfway
// cases round away from zero.
func RoundPlaces(x *big.Float, places int) *big.Float {
	prec := x.Prec()
	scaled := New(prec)
	if places >= 0 {
		scaled.Mul(x, pow10(places))
	} else {
		scaled.Quo(x, pow10(-places))
	}
	r := roundHalfAway(scaled)

	out := New(prec)
	if places >= 0 {
		return out.Quo(r, pow10(places))
	}
	return out.Mul(r, pow10(-places))
}

// DecimalExponent returns floor(log10(x)) for finite positive x.
func DecimalExponent(x *big.Float) int {
	mant := new(big.Float)
	exp := x.MantExp(mant)
	m, _ := mant.Float64()
	n := int(math.Floor(math.Log10(m) + float64(exp)*math.Log10(2)))

	// The float64 estimate can be off by one next to a power of ten.
	switch {
	case x.Cmp(pow10Signed(n+1)) >= 0:
		n++
	case x.Cmp(pow10Signed(n)) < 0:
		n--
	}
	return n
}

// pow10 returns 10^k exactly for k >= 0.
func pow10(k int) *big.Float {
	i := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(k)), nil)
	return new(big.Float).SetInt(i)
}

// pow10Signed returns 10^k, exact for k >= 0 and rounded to 256 bits
// otherwise.
func pow10Signed(k int) *big.Float {
	if k >= 0 {
		return pow10(k)
	}
	return new(big.Float).SetPrec(256).Quo(big.NewFloat(1), pow10(-k))
}

func roundHalfAway(x *big.Float) *big.Float {
	if x.Sign() < 0 {
		r := roundHalfAway(new(big.Float).Neg(x))
		return r.Neg(r)
	}
	ip, _ := x.Int(nil)
	frac := new(big.Float).SetPrec(x.Prec()).Sub(x, new(big.Float).SetInt(ip))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		ip.Add(ip, big.NewInt(1))
	}
	return new(big.Float).SetInt(ip)
}
