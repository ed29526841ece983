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
	"io"

	"github.com/fatih/color"

	"github.com/ajroetker/go-globalsums/gsum"
)

// Printer writes report lines. Failed variants are printed in red and
// results that need attention (undefined relative difference, dropped
// terms) in yellow.
type Printer struct {
	w      io.Writer
	header *color.Color
	warn   *color.Color
	fail   *color.Color
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, useColor bool) *Printer {
	p := &Printer{
		w:      w,
		header: color.New(color.FgCyan, color.Bold),
		warn:   color.New(color.FgYellow),
		fail:   color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.header, p.warn, p.fail} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Header prints the run identifier and the machine and input parameters
// that decide the summation order.
func (p *Printer) Header(r *Runner, cfg *Config, in *gsum.Input) {
	p.header.Fprintf(p.w, "globalsums run %s\n", r.RunID())
	fmt.Fprintf(p.w, "  terms %d  threads %d  schedule %s  vector %s  lanes %d  fma %t\n",
		in.Len(), r.Threads(), cfg.Options(nil).Schedule, gsum.CurrentLevel(), laneCount(cfg), gsum.HasFMA())
}

func laneCount(cfg *Config) int {
	if cfg.Lanes > 0 {
		return min(cfg.Lanes, gsum.MaxLanes)
	}
	return gsum.DefaultLanes()
}

// Report prints one report line.
func (p *Printer) Report(rep Report) {
	switch {
	case rep.Failed():
		p.fail.Fprintf(p.w, "  error %v   %s\n", rep.Err, rep.Variant.Label())
	case !rep.Result.RelDefined || rep.Result.Dropped > 0:
		p.warn.Fprintln(p.w, rep.Result.String())
	default:
		fmt.Fprintln(p.w, rep.Result.String())
	}
}

// Reports prints every report followed by a summary line.
func (p *Printer) Reports(reps []Report) {
	failed := 0
	for _, rep := range reps {
		p.Report(rep)
		if rep.Failed() {
			failed++
		}
	}
	if failed > 0 {
		p.fail.Fprintf(p.w, "%d of %d variants failed\n", failed, len(reps))
		return
	}
	fmt.Fprintf(p.w, "%d variants\n", len(reps))
}
