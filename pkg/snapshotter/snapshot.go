// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package snapshotter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/hostdiag/pkg/collector"
	"github.com/NVIDIA/hostdiag/pkg/defaults"
	"github.com/NVIDIA/hostdiag/pkg/errors"
	"github.com/NVIDIA/hostdiag/pkg/render"
	"github.com/NVIDIA/hostdiag/pkg/report"
	"github.com/NVIDIA/hostdiag/pkg/serializer"
)

// Collector names used in logs and metrics.
const (
	collectorHost     = "host"
	collectorEventLog = "eventlog"
	collectorProcess  = "process"
	collectorSoftware = "software"
)

// HostSnapshotter collects a diagnostic report from the current host.
// It runs every collector once, isolating failures and timeouts per collector,
// renders the report and writes it to the Sink.
type HostSnapshotter struct {
	// Version is the snapshotter version.
	Version string

	// Factory is the collector factory to use. If nil, the default factory is used.
	Factory collector.Factory

	// Sink receives the rendered lines. If nil, stdout is used.
	Sink serializer.Sink

	// Clock stamps the report. If nil, time.Now is used.
	Clock Clock

	// Timeouts bounds each collector. Zero fields use defaults.
	Timeouts Timeouts

	// Sequential runs collectors one after another instead of concurrently.
	Sequential bool
}

// Measure collects the report, renders it and writes it to the Sink.
// Collector failures never fail Measure; only Sink failures do.
func (n *HostSnapshotter) Measure(ctx context.Context) error {
	r := n.Run(ctx)

	lines := render.Render(r)

	sink := n.Sink
	if sink == nil {
		sink = serializer.NewStdoutWriter()
	}

	// The report is written even when ctx expired during collection.
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaults.SinkTimeout)
	defer cancel()

	if err := sink.WriteLines(wctx, lines); err != nil {
		snapshotMeasureTotal.WithLabelValues(statusError).Inc()
		slog.Error("failed to write report", slog.String("id", r.ID.String()), slog.String("error", err.Error()))
		if !errors.IsCode(err, errors.ErrCodeSink) {
			return errors.Wrap(errors.ErrCodeSink, "failed to write report", err)
		}
		return err
	}

	snapshotMeasureTotal.WithLabelValues(statusSuccess).Inc()
	slog.Info("diagnostic report written",
		slog.String("id", r.ID.String()),
		slog.Int("lines", len(lines)))
	return nil
}

// Run invokes every collector exactly once and assembles the report. A failing
// or timed-out collector contributes its degraded value. Run never fails.
func (n *HostSnapshotter) Run(ctx context.Context) *report.DiagnosticReport {
	factory := n.Factory
	if factory == nil {
		factory = collector.NewDefaultFactory()
	}
	clock := n.Clock
	if clock == nil {
		clock = time.Now
	}
	timeouts := n.Timeouts.withDefaults()

	generatedAt := clock()
	slog.Info("starting host diagnostic collection",
		slog.String("version", n.Version),
		slog.Bool("sequential", n.Sequential))

	start := time.Now()
	defer func() {
		snapshotCollectionDuration.Observe(time.Since(start).Seconds())
	}()

	var (
		host     report.HostSnapshot
		events   []report.EventLogRecord
		procs    []report.ProcessRecord
		programs []report.InstalledProgram
	)

	// Each task writes only its own variable, so no lock is needed.
	tasks := []func(){
		func() {
			host = collect(ctx, collectorHost, timeouts.Host,
				factory.CreateHostCollector(), report.UnavailableHost())
		},
		func() {
			events = collect(ctx, collectorEventLog, timeouts.EventLog,
				factory.CreateEventLogCollector(), []report.EventLogRecord{})
		},
		func() {
			procs = collect(ctx, collectorProcess, timeouts.Process,
				factory.CreateProcessCollector(), []report.ProcessRecord{})
		},
		func() {
			programs = collect(ctx, collectorSoftware, timeouts.Software,
				factory.CreateSoftwareCollector(), []report.InstalledProgram{})
		},
	}

	if n.Sequential {
		for _, task := range tasks {
			task()
		}
	} else {
		var g errgroup.Group
		for _, task := range tasks {
			g.Go(func() error {
				task()
				return nil
			})
		}
		_ = g.Wait()
	}

	r := report.New(generatedAt, host, events, procs, programs)
	for section, count := range recordCounts(r) {
		snapshotRecordCount.WithLabelValues(section).Set(float64(count))
	}

	slog.Info("host diagnostic collection complete",
		slog.String("id", r.ID.String()),
		slog.Bool("host_available", !r.Host.Unavailable),
		slog.Int("events", len(r.Events)),
		slog.Int("processes", len(r.Processes)),
		slog.Int("programs", len(r.Programs)),
		slog.Duration("duration", time.Since(start)))

	return r
}

type result[T any] struct {
	value T
	err   error
}

// collect runs c under its own timeout and returns degraded on error, panic or
// timeout. A collector that ignores cancellation is abandoned; its late result
// is discarded.
func collect[T any](ctx context.Context, name string, timeout time.Duration,
	c collector.Collector[T], degraded T) T {
	start := time.Now()
	status := statusSuccess
	defer func() {
		snapshotCollectorDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		snapshotCollectorTotal.WithLabelValues(name, status).Inc()
	}()

	slog.Debug("running collector", slog.String("collector", name), slog.Duration("timeout", timeout))

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan result[T], 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- result[T]{err: errors.New(errors.ErrCodeInternal,
					fmt.Sprintf("collector panicked: %v", p))}
			}
		}()
		v, err := c.Collect(cctx)
		done <- result[T]{value: v, err: err}
	}()

	var err error
	select {
	case res := <-done:
		if res.err == nil {
			slog.Debug("collector finished", slog.String("collector", name),
				slog.Duration("duration", time.Since(start)))
			return res.value
		}
		err = res.err
	case <-cctx.Done():
		err = errors.WrapWithContext(errors.ErrCodeTimeout, "collector did not finish in time",
			cctx.Err(), map[string]any{"collector": name, "timeout": timeout.String()})
	}

	status = statusDegraded
	slog.Warn("collector failed, using degraded result",
		slog.String("collector", name),
		slog.String("code", string(errors.CodeOf(err))),
		slog.String("error", err.Error()))
	return degraded
}
