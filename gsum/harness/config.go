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
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-globalsums/gsum"
	"github.com/ajroetker/go-globalsums/gsum/contrib/workerpool"
	"github.com/ajroetker/go-globalsums/gsum/workload"
)

// Config holds the harness configuration.
type Config struct {
	// Threads is the worker pool size. Zero means GOMAXPROCS.
	Threads int `yaml:"threads" toml:"threads"`

	// Schedule is "static" or "dynamic".
	Schedule  string `yaml:"schedule" toml:"schedule"`
	BatchSize int    `yaml:"batch_size" toml:"batch_size"`

	// Lanes overrides the lane count of the lanes strategy.
	Lanes int `yaml:"lanes" toml:"lanes"`

	// Digits and Bits parameterize the "+digits" and "+bits" variants.
	Digits int  `yaml:"digits" toml:"digits"`
	Bits   uint `yaml:"bits" toml:"bits"`

	// Strategies lists the variants to run, as accepted by
	// gsum.ParseVariant. Empty or "all" runs the full catalog.
	Strategies []string `yaml:"strategies" toml:"strategies"`

	// Concurrency is the number of variants run at the same time.
	Concurrency int `yaml:"concurrency" toml:"concurrency"`

	Color      bool `yaml:"color" toml:"color"`
	MaxScratch int  `yaml:"max_scratch" toml:"max_scratch"`

	Workload WorkloadConfig `yaml:"workload" toml:"workload"`
}

// WorkloadConfig selects the fixture the CLI sums.
type WorkloadConfig struct {
	Kind      string  `yaml:"kind" toml:"kind"`
	N         int     `yaml:"n" toml:"n"`
	Magnitude float64 `yaml:"magnitude" toml:"magnitude"`
	Seed      uint64  `yaml:"seed" toml:"seed"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Schedule:    gsum.Static.String(),
		BatchSize:   gsum.DefaultBatchSize,
		Digits:      7,
		Bits:        20,
		Concurrency: 1,
		Color:       true,
		Workload: WorkloadConfig{
			Kind:      string(workload.KindIllConditioned),
			N:         1 << 20,
			Magnitude: 6,
			Seed:      1,
		},
	}
}

// LoadConfig reads a YAML or TOML file over the defaults, chosen by file
// extension, and then applies environment overrides. An empty path yields
// the defaults with environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, cfg)
		case ".toml":
			_, err = toml.Decode(string(data), cfg)
		default:
			return nil, fmt.Errorf("unsupported config format %q", ext)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from GSUM_THREADS, GSUM_SCHEDULE, GSUM_LANES
// and GSUM_BATCH_SIZE.
func (c *Config) ApplyEnv() error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"GSUM_THREADS", &c.Threads},
		{"GSUM_LANES", &c.Lanes},
		{"GSUM_BATCH_SIZE", &c.BatchSize},
	}
	for _, e := range ints {
		val := os.Getenv(e.name)
		if val == "" {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", e.name, val, err)
		}
		*e.dst = n
	}
	if s := os.Getenv("GSUM_SCHEDULE"); s != "" {
		c.Schedule = s
	}
	return nil
}

// Validate checks the configuration, including every strategy name.
func (c *Config) Validate() error {
	if c.Threads < 0 {
		return fmt.Errorf("threads must be >= 0, got %d", c.Threads)
	}
	if _, err := c.schedule(); err != nil {
		return err
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("batch_size must be >= 0, got %d", c.BatchSize)
	}
	if c.Lanes < 0 || c.Lanes > gsum.MaxLanes {
		return fmt.Errorf("lanes must be in [0, %d], got %d", gsum.MaxLanes, c.Lanes)
	}
	if c.Digits < 0 {
		return fmt.Errorf("%w: digits must be >= 0, got %d", gsum.ErrPrecisionParam, c.Digits)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1, got %d", c.Concurrency)
	}
	if c.MaxScratch < 0 {
		return fmt.Errorf("max_scratch must be >= 0, got %d", c.MaxScratch)
	}
	_, err := c.Variants()
	return err
}

func (c *Config) schedule() (gsum.Schedule, error) {
	switch strings.ToLower(c.Schedule) {
	case "", "static":
		return gsum.Static, nil
	case "dynamic":
		return gsum.Dynamic, nil
	default:
		return 0, fmt.Errorf("invalid schedule %q (valid: static, dynamic)", c.Schedule)
	}
}

// Variants resolves Strategies into summation variants.
func (c *Config) Variants() ([]gsum.Variant, error) {
	if len(c.Strategies) == 0 || (len(c.Strategies) == 1 && c.Strategies[0] == "all") {
		return gsum.Catalog(c.Digits, c.Bits), nil
	}
	out := make([]gsum.Variant, 0, len(c.Strategies))
	for _, s := range c.Strategies {
		v, err := gsum.ParseVariant(s, c.Digits, c.Bits)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Options returns the per-run options for summations on pool.
func (c *Config) Options(pool *workerpool.Pool) gsum.Options {
	sched, _ := c.schedule()
	return gsum.Options{
		Pool:       pool,
		Threads:    c.Threads,
		Schedule:   sched,
		BatchSize:  c.BatchSize,
		Lanes:      c.Lanes,
		MaxScratch: c.MaxScratch,
	}
}

// WorkloadParams converts the workload section for workload.Generate.
func (c *Config) WorkloadParams() workload.Params {
	return workload.Params{
		Kind:      workload.Kind(c.Workload.Kind),
		N:         c.Workload.N,
		Magnitude: c.Workload.Magnitude,
		Seed:      c.Workload.Seed,
	}
}
