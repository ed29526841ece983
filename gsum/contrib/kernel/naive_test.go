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
	"testing"
)

// illConditioned returns 1e8 followed by n-1 copies of 1e-8.
func illConditioned(n int) []float64 {
	v := make([]float64, n)
	v[0] = 1e8
	for i := 1; i < n; i++ {
		v[i] = 1e-8
	}
	return v
}

func TestNaive(t *testing.T) {
	tests := []struct {
		name string
		v    []float64
		want float64
	}{
		{name: "empty", v: nil, want: 0},
		{name: "single", v: []float64{3.5}, want: 3.5},
		{name: "single negative", v: []float64{-7.25}, want: -7.25},
		{name: "mixed", v: []float64{-1, 2, -3, 0.5}, want: -1.5},
		{name: "small integers", v: []float64{1, 2, 3, 4, 5, 6, 7, 8}, want: 36},
		{name: "includes inf", v: []float64{1, math.Inf(1), 2}, want: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Naive(tt.v); got != tt.want {
				t.Errorf("Naive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNaiveFloat32(t *testing.T) {
	v := []float32{0.5, 0.25, 0.125}
	if got := Naive(v); got != 0.875 {
		t.Errorf("Naive() = %v, want 0.875", got)
	}
}

func TestNaiveIndexOrder(t *testing.T) {
	// (1 + 2^53) rounds back to 2^53 twice in index order, but the
	// reversed order keeps both ones.
	big := math.Ldexp(1, 53)
	v := []float64{big, 1, 1}
	if got := Naive(v); got != big {
		t.Errorf("Naive() = %v, want %v", got, big)
	}
	if got := Naive([]float64{1, 1, big}); got != big+2 {
		t.Errorf("Naive() reversed = %v, want %v", got, big+2)
	}
}

func TestLanes(t *testing.T) {
	v := make([]float64, 37)
	for i := range v {
		v[i] = float64(i + 1)
	}
	want := float64(37 * 38 / 2)

	for _, lanes := range []int{-3, 0, 1, 2, 4, 8, 16, 64} {
		if got := Lanes(v, lanes); got != want {
			t.Errorf("Lanes(lanes=%d) = %v, want %v", lanes, got, want)
		}
	}
}

func TestLanesOrder(t *testing.T) {
	// With two lanes the large term and the ones land in different
	// accumulators, so the ones survive until the final lane reduction.
	big := math.Ldexp(1, 53)
	v := []float64{big, 1, 0, 1}
	if got := Lanes(v, 2); got != big+2 {
		t.Errorf("Lanes(2) = %v, want %v", got, big+2)
	}
	if got := Lanes(v, 1); got != big {
		t.Errorf("Lanes(1) = %v, want %v", got, big)
	}
}

func BenchmarkNaive(b *testing.B) {
	v := illConditioned(1 << 16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Naive(v)
	}
}

func BenchmarkLanes(b *testing.B) {
	v := illConditioned(1 << 16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Lanes(v, 4)
	}
}
