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

// Command globalsums sums a generated workload with every summation
// strategy and prints how far each result is from the quad precision
// reference.
//
// Usage:
//
//	globalsums [flags]
//	globalsums list
//
// Example:
//
//	globalsums --workload spread --n 1000000 --threads 8 --strategy serial,parallel,kahan-parallel+bits
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ajroetker/go-globalsums/gsum"
	"github.com/ajroetker/go-globalsums/gsum/harness"
	"github.com/ajroetker/go-globalsums/gsum/workload"
)

var (
	// Global flags
	verbose    bool
	configPath string
	noColor    bool

	// Run flags
	threads     int
	digits      int
	bits        uint
	strategies  []string
	kind        string
	n           int
	magnitude   float64
	seed        uint64
	concurrency int
	schedule    string
	batchSize   int
	lanes       int
	maxScratch  int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "globalsums",
	Short: "Compare the reproducibility of floating-point summation strategies",
	Long: `globalsums sums one array with serial, parallel, compensated,
extended precision, pairwise and truncated summation strategies and reports
each result against a quad precision reference sum.

Parallel strategies depend on the thread count and schedule; serial
strategies are bit-for-bit reproducible.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runSums,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List strategies, catalog variants and workloads",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Strategies:")
		for _, s := range gsum.Strategies() {
			fmt.Fprintf(out, "  %-16s %s\n", s, s.Label())
		}
		fmt.Fprintln(out, "Catalog:")
		for _, v := range gsum.Catalog(digits, bits) {
			fmt.Fprintf(out, "  %-22s %s\n", v, v.Label())
		}
		fmt.Fprintln(out, "Workloads:")
		for _, k := range workload.Kinds() {
			fmt.Fprintf(out, "  %s\n", k)
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVarP(&configPath, "config", "c", "", "Config file (.yaml, .yml or .toml)")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored output")
	pf.IntVar(&digits, "digits", 7, "Decimal digits for +digits variants")
	pf.UintVar(&bits, "bits", 20, "Mantissa bits cleared by +bits variants (saturates at 40)")

	f := rootCmd.Flags()
	f.IntVarP(&threads, "threads", "t", 0, "Worker threads for parallel strategies (0 = GOMAXPROCS)")
	f.StringSliceVarP(&strategies, "strategy", "s", nil, "Variants to run, e.g. serial,kahan-parallel+bits (default: full catalog)")
	f.StringVarP(&kind, "workload", "w", string(workload.KindIllConditioned), "Workload: ill-conditioned, two-region, spread or constant")
	f.IntVar(&n, "n", 1<<20, "Number of terms")
	f.Float64Var(&magnitude, "magnitude", 6, "Decades spanned by the spread workload, or the constant workload value")
	f.Uint64Var(&seed, "seed", 1, "Seed of the spread workload")
	f.IntVar(&concurrency, "concurrency", 1, "Variants run at the same time")
	f.StringVar(&schedule, "schedule", "static", "Parallel schedule: static or dynamic")
	f.IntVar(&batchSize, "batch-size", gsum.DefaultBatchSize, "Terms per batch with the dynamic schedule")
	f.IntVar(&lanes, "lanes", 0, "Accumulators of the lanes strategy (0 = vector width)")
	f.IntVar(&maxScratch, "max-scratch", 0, "Pairwise scratch limit in elements (0 = unlimited)")

	rootCmd.AddCommand(listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and environment, then applies the flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command) (*harness.Config, error) {
	cfg, err := harness.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("threads", func() { cfg.Threads = threads })
	set("digits", func() { cfg.Digits = digits })
	set("bits", func() { cfg.Bits = bits })
	set("strategy", func() { cfg.Strategies = strategies })
	set("workload", func() { cfg.Workload.Kind = kind })
	set("n", func() { cfg.Workload.N = n })
	set("magnitude", func() { cfg.Workload.Magnitude = magnitude })
	set("seed", func() { cfg.Workload.Seed = seed })
	set("concurrency", func() { cfg.Concurrency = concurrency })
	set("schedule", func() { cfg.Schedule = schedule })
	set("batch-size", func() { cfg.BatchSize = batchSize })
	set("lanes", func() { cfg.Lanes = lanes })
	set("max-scratch", func() { cfg.MaxScratch = maxScratch })
	if noColor {
		cfg.Color = false
	}
	return cfg, nil
}

func runSums(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	variants, err := cfg.Variants()
	if err != nil {
		return err
	}

	in, err := workload.Generate(cfg.WorkloadParams())
	if err != nil {
		return err
	}
	logger.Debug("Generated workload",
		zap.String("kind", cfg.Workload.Kind),
		zap.Int("terms", in.Len()),
		zap.Float64("accurate", in.Accurate))

	runner, err := harness.NewRunner(cfg, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	printer := harness.NewPrinter(cmd.OutOrStdout(), cfg.Color)
	printer.Header(runner, cfg, in)

	reports, err := runner.Run(ctx, in, variants)
	printer.Reports(reports)
	if err != nil {
		logger.Info("Batch interrupted", zap.Error(err))
		return err
	}
	return nil
}
