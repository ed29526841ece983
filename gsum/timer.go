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

import "time"

// Timer measures the wall-clock time of a single summation.
type Timer struct {
	start time.Time
}

// StartTimer captures the current time.
func StartTimer() Timer {
	return Timer{start: time.Now()}
}

// Stop returns the time elapsed since StartTimer.
func (t Timer) Stop() time.Duration {
	return time.Since(t.start)
}
