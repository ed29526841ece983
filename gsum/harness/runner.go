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

// Package harness runs batches of summation variants over one input,
// logs each outcome and renders the report lines.
//
// A failing variant never stops the batch: its error is kept in the
// variant's Report and the remaining variants still run.
package harness

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-globalsums/gsum"
	"github.com/ajroetker/go-globalsums/gsum/contrib/workerpool"
)

// Report is the outcome of one variant. Exactly one of Result and Err is
// set.
type Report struct {
	Variant gsum.Variant
	Result  *gsum.Result
	Err     error
}

// Failed reports whether the variant returned an error.
func (r Report) Failed() bool {
	return r.Err != nil
}

// Runner owns the worker pool shared by the parallel strategies of a
// batch.
type Runner struct {
	cfg    *Config
	logger *zap.Logger
	pool   *workerpool.Pool
	runID  string
}

// NewRunner validates cfg and starts a worker pool of cfg.Threads workers.
// A nil logger disables logging.
func NewRunner(cfg *Config, logger *zap.Logger) (*Runner, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		cfg:   cfg,
		pool:  workerpool.New(cfg.Threads),
		runID: uuid.NewString(),
	}
	r.logger = logger.With(zap.String("run_id", r.runID))
	return r, nil
}

// RunID returns the identifier attached to every log entry of the runner.
func (r *Runner) RunID() string {
	return r.runID
}

// Threads returns the worker count of the pool.
func (r *Runner) Threads() int {
	return r.pool.NumWorkers()
}

// Close stops the worker pool.
func (r *Runner) Close() {
	r.pool.Close()
}

// Run sums in with every variant and returns one report per variant in
// the order given. With Concurrency above one, up to that many variants
// run at the same time and their timings include the contention.
//
// Run stops starting variants once ctx is done and returns ctx.Err()
// together with the reports of the variants that finished, in order;
// variants that already started run to completion.
func (r *Runner) Run(ctx context.Context, in *gsum.Input, variants []gsum.Variant) ([]Report, error) {
	r.logger.Debug("Starting batch",
		zap.Int("variants", len(variants)),
		zap.Int("terms", in.Len()),
		zap.Int("threads", r.Threads()),
		zap.Int("concurrency", r.cfg.Concurrency))

	opts := r.cfg.Options(r.pool)
	reports := make([]Report, len(variants))

	if r.cfg.Concurrency <= 1 {
		for i, v := range variants {
			if err := ctx.Err(); err != nil {
				return reports[:i], err
			}
			reports[i] = r.runOne(v, in, opts)
		}
		return reports, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)
	for i, v := range variants {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = r.runOne(v, in, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return completed(reports), err
	}
	return reports, nil
}

// completed drops the slots of variants that never ran, keeping order.
func completed(reports []Report) []Report {
	out := reports[:0:0]
	for _, rep := range reports {
		if rep.Result != nil || rep.Err != nil {
			out = append(out, rep)
		}
	}
	return out
}

func (r *Runner) runOne(v gsum.Variant, in *gsum.Input, opts gsum.Options) Report {
	res, err := gsum.Run(v, in, opts)
	if err != nil {
		r.logger.Warn("Summation failed",
			zap.String("strategy", v.Strategy.String()),
			zap.Stringer("truncation", v.Truncation),
			zap.Bool("domain", errors.Is(err, gsum.ErrDomain)),
			zap.Error(err))
		return Report{Variant: v, Err: err}
	}

	fields := []zap.Field{
		zap.String("strategy", v.Strategy.String()),
		zap.Stringer("truncation", v.Truncation),
		zap.Float64("sum", res.Sum),
		zap.Float64("diff", res.Diff),
		zap.Int("threads", res.Threads),
		zap.Duration("elapsed", res.Elapsed),
	}
	if res.RelDefined {
		fields = append(fields, zap.Float64("rel_diff", res.RelDiff))
	} else {
		fields = append(fields, zap.String("rel_diff", gsum.Undefined))
	}
	if res.Dropped > 0 {
		fields = append(fields, zap.Int("dropped", res.Dropped))
	}
	r.logger.Info("Summation finished", fields...)
	return Report{Variant: v, Result: res}
}
