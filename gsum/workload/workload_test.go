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

package workload

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-globalsums/gsum"
)

func TestGenerate(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(string(k), func(t *testing.T) {
			in, err := Generate(Params{Kind: k, N: 1000, Magnitude: 6, Seed: 1})
			require.NoError(t, err)
			assert.Len(t, in.Values, 1000)
			assert.Len(t, in.QuadValues, 1000)
			require.NotNil(t, in.AccurateWide)
			assert.Greater(t, in.Accurate, 0.0)
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	_, err := Generate(Params{Kind: KindSpread, N: 0})
	assert.ErrorIs(t, err, gsum.ErrEmptyInput)

	_, err = Generate(Params{Kind: "gaussian", N: 10})
	assert.Error(t, err)
}

func TestIllConditionedReference(t *testing.T) {
	in := IllConditioned(1001)
	assert.InDelta(t, 1e8+1e-5, in.Accurate, 1e-7)

	res, err := gsum.Run(gsum.Variant{Strategy: gsum.Serial}, in, gsum.Options{})
	require.NoError(t, err)
	assert.Greater(t, math.Abs(res.Diff), 1e-6, "naive sum should lose the small terms")

	kahan, err := gsum.Run(gsum.Variant{Strategy: gsum.KahanSerial}, in, gsum.Options{})
	require.NoError(t, err)
	assert.LessOrEqual(t, math.Abs(kahan.Diff), math.Abs(res.Diff))
}

func TestTwoRegion(t *testing.T) {
	in := TwoRegion(10)
	assert.Equal(t, 1.0e-1, in.Values[0])
	assert.Equal(t, 1.0e-10, in.Values[9])
	assert.InDelta(t, 0.5+5e-10, in.Accurate, 1e-15)
}

func TestSpreadDeterministic(t *testing.T) {
	a := Spread(500, 8, 42)
	b := Spread(500, 8, 42)
	c := Spread(500, 8, 43)
	assert.Equal(t, a.Values, b.Values)
	assert.NotEqual(t, a.Values, c.Values)
	for _, x := range a.Values {
		assert.Greater(t, x, 0.0)
	}
}

func TestConstantExact(t *testing.T) {
	in := Constant(10000, 1)
	assert.Equal(t, 10000.0, in.Accurate)

	in, err := Generate(Params{Kind: KindConstant, N: 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 1}, in.Values)
}
