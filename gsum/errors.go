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

import "errors"

var (
	// ErrDomain is returned when a transform is applied outside its domain,
	// such as decimal rounding of a value that is not strictly positive.
	ErrDomain = errors.New("gsum: value outside transform domain")

	// ErrPrecisionParam is returned for a negative decimal digit count.
	ErrPrecisionParam = errors.New("gsum: invalid precision parameter")

	// ErrEmptyInput is returned when a strategy has no terms to sum.
	ErrEmptyInput = errors.New("gsum: empty input")

	// ErrResourceExhausted is returned when scratch storage for a
	// reduction exceeds the configured limit.
	ErrResourceExhausted = errors.New("gsum: scratch allocation exceeds limit")

	// ErrUnknownStrategy is returned for strategy values or names that are
	// not part of the strategy table.
	ErrUnknownStrategy = errors.New("gsum: unknown strategy")
)
