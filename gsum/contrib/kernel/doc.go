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

// Package kernel provides the accumulation loops behind every summation
// strategy. Each kernel sums a contiguous range of terms strictly in index
// order and never writes to its input.
//
// Kernels are generic over float32 and float64. Compensated kernels return
// a Pair holding the running sum and the correction term, so that partial
// results computed by different workers can be merged without dropping the
// correction.
package kernel
