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

//go:generate go tool stringer -type=Strategy -linecomment

import (
	"fmt"
	"strings"
)

// Strategy identifies a summation algorithm.
type Strategy int

const (
	// Serial adds the terms in index order in a float64 accumulator.
	Serial Strategy = iota // serial

	// Parallel sums contiguous chunks on the worker pool and adds the
	// chunk sums in a float64 accumulator.
	Parallel // parallel

	// ExtendedSerial adds float64 terms in index order in a 64-bit
	// mantissa accumulator.
	ExtendedSerial // extended

	// KahanSerial adds the terms in index order with Kahan compensation.
	KahanSerial // kahan

	// KahanParallel runs Kahan summation per chunk and merges the chunk
	// (sum, correction) pairs with compensated additions.
	KahanParallel // kahan-parallel

	// KnuthSerial adds the terms in index order with the Knuth/Dekker
	// two-sum error-free transform.
	KnuthSerial // knuth

	// NeumaierSerial adds the terms in index order with Neumaier's
	// magnitude-ordered compensation.
	NeumaierSerial // neumaier

	// Pairwise adds the terms with a binary tree reduction that drops the
	// unpaired partial of every level.
	Pairwise // pairwise

	// PairwiseCarry adds the terms with a binary tree reduction that
	// carries the unpaired partial of every level.
	PairwiseCarry // pairwise-carry

	// LaneSerial adds the terms into one accumulator per vector lane and
	// reduces the lanes at the end.
	LaneSerial // lanes

	// QuadSerial adds float64 terms in index order in a 113-bit mantissa
	// accumulator.
	QuadSerial // quad

	// FullQuadSerial adds quad precision terms in index order in a 113-bit
	// mantissa accumulator.
	FullQuadSerial // full-quad

	numStrategies
)

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	out := make([]Strategy, numStrategies)
	for i := range out {
		out[i] = Strategy(i)
	}
	return out
}

// ParseStrategy returns the strategy whose String form is name.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Strategies() {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Precision is the significand width class of an accumulator.
type Precision int

const (
	// Native is float64.
	Native Precision = iota

	// Extended is a 64-bit mantissa, as in the x87 long double.
	Extended

	// Quad is a 113-bit mantissa, as in IEEE-754 binary128.
	Quad
)

// String returns a human-readable name for the precision.
func (p Precision) String() string {
	switch p {
	case Native:
		return "native"
	case Extended:
		return "extended"
	case Quad:
		return "quad"
	default:
		return "unknown"
	}
}

// compensation is the accumulation kernel a strategy runs per chunk.
type compensation int

const (
	compNone compensation = iota
	compKahan
	compKnuth
	compNeumaier
	compTree
	compTreeCarry
	compLanes
)

// descriptor is one row of the strategy table.
type descriptor struct {
	label     string
	precision Precision
	comp      compensation
	parallel  bool
	quadTerms bool
}

var descriptors = [numStrategies]descriptor{
	Serial:         {label: "Serial sum", precision: Native, comp: compNone},
	Parallel:       {label: "Parallel sum", precision: Native, comp: compNone, parallel: true},
	ExtendedSerial: {label: "Serial sum with extended precision accumulator", precision: Extended},
	KahanSerial:    {label: "Serial sum with Kahan compensated accumulator", precision: Native, comp: compKahan},
	KahanParallel:  {label: "Parallel sum with Kahan compensated accumulator", precision: Native, comp: compKahan, parallel: true},
	KnuthSerial:    {label: "Serial sum with Knuth two-sum accumulator", precision: Native, comp: compKnuth},
	NeumaierSerial: {label: "Serial sum with Neumaier compensated accumulator", precision: Native, comp: compNeumaier},
	Pairwise:       {label: "Pair-wise sum", precision: Native, comp: compTree},
	PairwiseCarry:  {label: "Pair-wise sum with odd-term carry", precision: Native, comp: compTreeCarry},
	LaneSerial:     {label: "Serial sum with vector lane accumulators", precision: Native, comp: compLanes},
	QuadSerial:     {label: "Serial sum with quad precision accumulator", precision: Quad},
	FullQuadSerial: {label: "Serial sum with quad precision accumulator and quad terms", precision: Quad, quadTerms: true},
}

func (s Strategy) descriptor() (descriptor, bool) {
	if s < 0 || s >= numStrategies {
		return descriptor{}, false
	}
	return descriptors[s], true
}

// Label returns the human-readable report label of the strategy.
func (s Strategy) Label() string {
	d, ok := s.descriptor()
	if !ok {
		return s.String()
	}
	return d.label
}

// Precision returns the accumulator precision of the strategy.
func (s Strategy) Precision() Precision {
	d, _ := s.descriptor()
	return d.precision
}

// IsParallel reports whether the strategy runs on the worker pool.
func (s Strategy) IsParallel() bool {
	d, _ := s.descriptor()
	return d.parallel
}

// TruncationKind selects the precision-reduction post-step.
type TruncationKind int

const (
	// NoTruncation leaves both sums untouched.
	NoTruncation TruncationKind = iota

	// DigitTruncation rounds both sums to fewer decimal digits.
	DigitTruncation

	// BitTruncation clears low mantissa bits of both sums.
	BitTruncation
)

// Truncation is the post-step applied identically to the computed and the
// reference sum before they are compared.
type Truncation struct {
	Kind   TruncationKind
	Digits int
	Bits   uint
}

// Digits returns a decimal digit truncation.
func Digits(n int) Truncation {
	return Truncation{Kind: DigitTruncation, Digits: n}
}

// Bits returns a mantissa bit truncation. Counts above MaxTruncateBits
// saturate.
func Bits(n uint) Truncation {
	return Truncation{Kind: BitTruncation, Bits: n}
}

// String returns a short form such as "digits=6" or "bits=20".
func (t Truncation) String() string {
	switch t.Kind {
	case DigitTruncation:
		return fmt.Sprintf("digits=%d", t.Digits)
	case BitTruncation:
		return fmt.Sprintf("bits=%d", t.Bits)
	default:
		return "none"
	}
}

func (t Truncation) validate() error {
	if t.Kind == DigitTruncation && t.Digits < 0 {
		return fmt.Errorf("%w: digit count %d", ErrPrecisionParam, t.Digits)
	}
	return nil
}

func (t Truncation) labelSuffix() string {
	switch t.Kind {
	case DigitTruncation:
		return " with digit truncation"
	case BitTruncation:
		return " with bit truncation"
	default:
		return ""
	}
}

// Variant is one summation entry point: a strategy plus its truncation.
type Variant struct {
	Strategy   Strategy
	Truncation Truncation
}

// Label returns the report label, for example
// "Parallel sum with bit truncation".
func (v Variant) Label() string {
	return v.Strategy.Label() + v.Truncation.labelSuffix()
}

// String returns the strategy name, followed by "+digits" or "+bits" for
// truncating variants. ParseVariant accepts the same form.
func (v Variant) String() string {
	switch v.Truncation.Kind {
	case DigitTruncation:
		return v.Strategy.String() + "+digits"
	case BitTruncation:
		return v.Strategy.String() + "+bits"
	default:
		return v.Strategy.String()
	}
}

// ParseVariant parses "name", "name+digits" or "name+bits", taking the
// truncation parameters from ndigits and nbits.
func ParseVariant(s string, ndigits int, nbits uint) (Variant, error) {
	name, suffix, _ := strings.Cut(strings.TrimSpace(s), "+")
	strategy, err := ParseStrategy(name)
	if err != nil {
		return Variant{}, err
	}
	v := Variant{Strategy: strategy}
	switch strings.ToLower(suffix) {
	case "":
	case "digits":
		v.Truncation = Digits(ndigits)
	case "bits":
		v.Truncation = Bits(nbits)
	default:
		return Variant{}, fmt.Errorf("%w: truncation %q in %q", ErrUnknownStrategy, suffix, s)
	}
	return v, nil
}

// Catalog returns the classic set of seventeen reproducibility variants,
// followed by the neumaier, pairwise-carry and lanes strategies.
func Catalog(ndigits int, nbits uint) []Variant {
	d, b := Digits(ndigits), Bits(nbits)
	return []Variant{
		{Strategy: Serial},
		{Strategy: Parallel},
		{Strategy: Parallel, Truncation: b},
		{Strategy: Serial, Truncation: d},
		{Strategy: Serial, Truncation: b},
		{Strategy: ExtendedSerial},
		{Strategy: ExtendedSerial, Truncation: d},
		{Strategy: ExtendedSerial, Truncation: b},
		{Strategy: KahanSerial},
		{Strategy: KahanParallel},
		{Strategy: KahanParallel, Truncation: b},
		{Strategy: KnuthSerial},
		{Strategy: Pairwise},
		{Strategy: QuadSerial},
		{Strategy: QuadSerial, Truncation: d},
		{Strategy: FullQuadSerial},
		{Strategy: FullQuadSerial, Truncation: d},
		{Strategy: NeumaierSerial},
		{Strategy: PairwiseCarry},
		{Strategy: LaneSerial},
	}
}
