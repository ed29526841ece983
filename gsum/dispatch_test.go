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
	"testing"
	"time"
)

func TestDispatchLevelString(t *testing.T) {
	tests := map[DispatchLevel]string{
		DispatchScalar:    "scalar",
		DispatchSSE2:      "sse2",
		DispatchAVX2:      "avx2",
		DispatchAVX512:    "avx512",
		DispatchNEON:      "neon",
		DispatchLevel(99): "unknown",
	}
	for level, want := range tests {
		if got := level.String(); got != want {
			t.Errorf("DispatchLevel(%d).String() = %q, want %q", int(level), got, want)
		}
	}
}

func TestDefaultLanes(t *testing.T) {
	lanes := DefaultLanes()
	if lanes < 2 || lanes > MaxLanes {
		t.Errorf("DefaultLanes() = %d, want in [2, %d]", lanes, MaxLanes)
	}
	if CurrentWidth() != lanes*8 {
		t.Errorf("CurrentWidth() = %d, want %d", CurrentWidth(), lanes*8)
	}
	t.Logf("vector unit %s, width %d bytes, FMA %t", CurrentLevel(), CurrentWidth(), HasFMA())
}

func TestNoSimdEnv(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"true", true},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Setenv("GSUM_NO_SIMD", tt.val)
		if got := NoSimdEnv(); got != tt.want {
			t.Errorf("GSUM_NO_SIMD=%q: NoSimdEnv() = %v, want %v", tt.val, got, tt.want)
		}
	}
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(2 * time.Millisecond)
	if elapsed := timer.Stop(); elapsed < 2*time.Millisecond {
		t.Errorf("Stop() = %v, want at least 2ms", elapsed)
	}
}
