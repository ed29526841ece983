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
	"errors"
	"math"
	"testing"
)

func TestBitTruncateIdentity(t *testing.T) {
	for _, x := range []float64{0, 1, -1, math.Pi, 1e-300, 1e300, math.SmallestNonzeroFloat64} {
		if got := BitTruncate(x, 0); math.Float64bits(got) != math.Float64bits(x) {
			t.Errorf("BitTruncate(%g, 0) = %g, want %g", x, got, x)
		}
	}
}

func TestBitTruncateIdempotent(t *testing.T) {
	for _, x := range []float64{math.Pi, -math.E, 12345.6789, 1.0 / 3.0} {
		once := BitTruncate(x, 40)
		twice := BitTruncate(once, 40)
		if once != twice {
			t.Errorf("BitTruncate(%g, 40) not idempotent: %g then %g", x, once, twice)
		}
	}
}

func TestBitTruncateClamp(t *testing.T) {
	x := math.Pi
	want := BitTruncate(x, MaxTruncateBits)
	for _, n := range []uint{41, 52, 64, 1000} {
		if got := BitTruncate(x, n); got != want {
			t.Errorf("BitTruncate(pi, %d) = %v, want %v", n, got, want)
		}
	}
}

func TestBitTruncateMonotonic(t *testing.T) {
	for _, x := range []float64{math.Pi, 1.0 / 3.0, 9.87654321e10} {
		prevErr := 0.0
		for n := uint(0); n <= MaxTruncateBits; n++ {
			got := BitTruncate(x, n)
			if got > x {
				t.Fatalf("BitTruncate(%g, %d) = %g is larger than the input", x, n, got)
			}
			err := x - got
			if err < prevErr {
				t.Fatalf("BitTruncate(%g, %d): error %g smaller than with %d bits (%g)", x, n, err, n-1, prevErr)
			}
			prevErr = err
		}
	}
}

func TestBitTruncateMask(t *testing.T) {
	x := math.Float64frombits(0x3FF0_0000_0000_FFFF)
	got := math.Float64bits(BitTruncate(x, 8))
	if want := uint64(0x3FF0_0000_0000_FF00); got != want {
		t.Errorf("BitTruncate bits = %#x, want %#x", got, want)
	}
}

func TestDecimalExponent(t *testing.T) {
	tests := []struct {
		x    float64
		want int
	}{
		{1, 0},
		{9.999, 0},
		{10, 1},
		{1000, 3},
		{999.999, 2},
		{0.001, -3},
		{0.00099, -4},
		{1e22, 22},
		{1.5e-200, -200},
	}
	for _, tt := range tests {
		if got := DecimalExponent(tt.x); got != tt.want {
			t.Errorf("DecimalExponent(%g) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestDigitRound(t *testing.T) {
	tests := []struct {
		name    string
		x       float64
		ndigits int
		want    float64
	}{
		{"fraction places", 1234.5678, 2, 1234.57},
		{"half away from zero", 0.5, 0, 1},
		{"integer", 36, 4, 36},
		{"large value rounds before the point", 123456789012345678, 2, 123456789012350000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DigitRound(tt.x, tt.ndigits)
			if err != nil {
				t.Fatalf("DigitRound(%g, %d): %v", tt.x, tt.ndigits, err)
			}
			if got != tt.want {
				t.Errorf("DigitRound(%g, %d) = %v, want %v", tt.x, tt.ndigits, got, tt.want)
			}
		})
	}
}

func TestDigitRoundIdempotent(t *testing.T) {
	for _, x := range []float64{math.Pi, 1.0 / 3.0, 12345.6789, 6.02214076e23, 0.0123} {
		for _, d := range []int{2, 6, 10} {
			once, err := DigitRound(x, d)
			if err != nil {
				t.Fatalf("DigitRound(%g, %d): %v", x, d, err)
			}
			twice, err := DigitRound(once, d)
			if err != nil {
				t.Fatalf("DigitRound(%g, %d): %v", once, d, err)
			}
			if once != twice {
				t.Errorf("DigitRound(%g, %d) not idempotent: %v then %v", x, d, once, twice)
			}
		}
	}
}

// Every value DigitRound returns must round to itself, including values
// far below the rounding grid and digit counts near the float64 range.
func TestDigitRoundIdempotentEdges(t *testing.T) {
	tests := []struct {
		x       float64
		ndigits int
	}{
		{1e-30, 30},
		{1e-300, 300},
		{0.6, 0},
		{5e-8, 7},
		{1.7976931348623157e308, 0},
		{math.SmallestNonzeroFloat64, 308},
	}
	for _, tt := range tests {
		once, err := DigitRound(tt.x, tt.ndigits)
		if err != nil {
			if !errors.Is(err, ErrDomain) && !errors.Is(err, ErrPrecisionParam) {
				t.Errorf("DigitRound(%g, %d): unexpected error %v", tt.x, tt.ndigits, err)
			}
			continue
		}
		if !(once > 0) || math.IsInf(once, 0) {
			t.Fatalf("DigitRound(%g, %d) = %v without an error", tt.x, tt.ndigits, once)
		}
		twice, err := DigitRound(once, tt.ndigits)
		if err != nil {
			t.Fatalf("DigitRound(DigitRound(%g, %d)) error = %v", tt.x, tt.ndigits, err)
		}
		if once != twice {
			t.Errorf("DigitRound(%g, %d) not idempotent: %v then %v", tt.x, tt.ndigits, once, twice)
		}
	}
}

func TestDigitRoundErrors(t *testing.T) {
	tests := []struct {
		x       float64
		ndigits int
		want    error
	}{
		{0, 4, ErrDomain},
		{-1, 4, ErrDomain},
		{math.NaN(), 4, ErrDomain},
		{math.Inf(1), 4, ErrDomain},
		{1, -1, ErrPrecisionParam},
		{1e-300, 310, ErrPrecisionParam},
		{1e300, 400, ErrPrecisionParam},
		{1e-30, 7, ErrDomain},
		{0.4, 0, ErrDomain},
	}
	for _, tt := range tests {
		got, err := DigitRound(tt.x, tt.ndigits)
		if !errors.Is(err, tt.want) {
			t.Errorf("DigitRound(%g, %d) = %v, error = %v, want %v", tt.x, tt.ndigits, got, err, tt.want)
		}
	}
}

func BenchmarkBitTruncate(b *testing.B) {
	x := math.Pi
	for i := 0; i < b.N; i++ {
		x = BitTruncate(x+1, 20)
	}
	_ = x
}

func BenchmarkDigitRound(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = DigitRound(math.Pi+float64(i), 8)
	}
}
