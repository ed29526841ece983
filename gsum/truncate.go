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
)

// MaxTruncateBits is the largest number of mantissa bits BitTruncate clears.
// Larger requests saturate to this value.
const MaxTruncateBits = 40

// digitShift is the number of decimal digits a float64 resolves reliably.
const digitShift = 15

// BitTruncate clears the low nbits bits of the IEEE-754 bit pattern of x.
//
// nbits is clamped to MaxTruncateBits. The operation works on the raw
// 64-bit pattern, so for finite x the result never has a larger magnitude
// than x, and BitTruncate(x, 0) returns x unchanged.
func BitTruncate(x float64, nbits uint) float64 {
	nbits = min(nbits, MaxTruncateBits)
	mask := uint64(1)<<nbits - 1
	return math.Float64frombits(math.Float64bits(x) &^ mask)
}

// DigitRound rounds x to a reduced number of decimal digits.
//
// The decimal exponent n of x is floor(log10(x)). When 15-ndigits-n is
// non-negative, x is rounded to ndigits places after the decimal point;
// otherwise it is rounded at 10^(n+ndigits-15), clearing digits before the
// decimal point. Halfway cases round away from zero.
//
// x must be finite and strictly positive, and ndigits must not be negative.
// A value that rounds to zero is reported as ErrDomain, so every result
// DigitRound returns is itself a valid input and rounding it again is a
// no-op.
func DigitRound(x float64, ndigits int) (float64, error) {
	if ndigits < 0 {
		return 0, fmt.Errorf("%w: digit count %d", ErrPrecisionParam, ndigits)
	}
	if !(x > 0) || math.IsInf(x, 1) {
		return 0, fmt.Errorf("%w: decimal rounding of %g", ErrDomain, x)
	}

	var r float64
	if shift := digitShift - ndigits - DecimalExponent(x); shift >= 0 {
		mult := math.Pow10(ndigits)
		if math.IsInf(mult, 0) {
			return 0, fmt.Errorf("%w: 10^%d overflows", ErrPrecisionParam, ndigits)
		}
		r = math.Round(x*mult) / mult
	} else {
		div := math.Pow10(-shift)
		if math.IsInf(div, 0) {
			return 0, fmt.Errorf("%w: 10^%d overflows", ErrPrecisionParam, -shift)
		}
		r = math.Round(x/div) * div
	}
	if r == 0 || math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, fmt.Errorf("%w: %g rounds to %g at %d digits", ErrDomain, x, r, ndigits)
	}
	return r, nil
}

// DecimalExponent returns floor(log10(x)) for finite positive x, exact at
// powers of ten where math.Log10 can land one ulp low.
func DecimalExponent(x float64) int {
	n := int(math.Floor(math.Log10(x)))
	switch {
	case x >= math.Pow10(n+1):
		n++
	case x < math.Pow10(n):
		n--
	}
	return n
}
