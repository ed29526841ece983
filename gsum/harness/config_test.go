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

package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-globalsums/gsum"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	variants, err := cfg.Variants()
	require.NoError(t, err)
	assert.Equal(t, gsum.Catalog(7, 20), variants)
}

func TestLoadConfigFormats(t *testing.T) {
	want := DefaultConfig()
	want.Threads = 4
	want.Schedule = "dynamic"
	want.Digits = 5
	want.Strategies = []string{"serial", "kahan-parallel+bits"}
	want.Workload.Kind = "spread"
	want.Workload.N = 1000

	yamlPath := writeFile(t, "gsum.yaml", `
threads: 4
schedule: dynamic
digits: 5
strategies: [serial, kahan-parallel+bits]
workload:
  kind: spread
  n: 1000
`)
	tomlPath := writeFile(t, "gsum.toml", `
threads = 4
schedule = "dynamic"
digits = 5
strategies = ["serial", "kahan-parallel+bits"]

[workload]
kind = "spread"
n = 1000
`)
	for _, path := range []string{yamlPath, tomlPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			got, err := LoadConfig(path)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("LoadConfig mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "gsum.json", `{}`))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = LoadConfig(writeFile(t, "bad.yaml", "threads: [1"))
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("GSUM_THREADS", "3")
	t.Setenv("GSUM_SCHEDULE", "dynamic")
	t.Setenv("GSUM_LANES", "2")
	t.Setenv("GSUM_BATCH_SIZE", "128")

	path := writeFile(t, "gsum.yaml", "threads: 8\nlanes: 4\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Threads)
	assert.Equal(t, "dynamic", cfg.Schedule)
	assert.Equal(t, 2, cfg.Lanes)
	assert.Equal(t, 128, cfg.BatchSize)

	opts := cfg.Options(nil)
	assert.Equal(t, gsum.Dynamic, opts.Schedule)
	assert.Equal(t, 128, opts.BatchSize)
}

func TestLoadConfigEnvInvalid(t *testing.T) {
	t.Setenv("GSUM_THREADS", "many")
	_, err := LoadConfig("")
	assert.ErrorContains(t, err, "GSUM_THREADS")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"negative threads", func(c *Config) { c.Threads = -1 }, "threads"},
		{"bad schedule", func(c *Config) { c.Schedule = "guided" }, "schedule"},
		{"too many lanes", func(c *Config) { c.Lanes = 64 }, "lanes"},
		{"negative digits", func(c *Config) { c.Digits = -2 }, "digits"},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, "concurrency"},
		{"unknown strategy", func(c *Config) { c.Strategies = []string{"serial", "bogus"} }, "bogus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestVariantsExplicit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategies = []string{"quad+digits", "parallel+bits", "pairwise"}
	got, err := cfg.Variants()
	require.NoError(t, err)
	want := []gsum.Variant{
		{Strategy: gsum.QuadSerial, Truncation: gsum.Digits(7)},
		{Strategy: gsum.Parallel, Truncation: gsum.Bits(20)},
		{Strategy: gsum.Pairwise},
	}
	assert.Equal(t, want, got)
}
