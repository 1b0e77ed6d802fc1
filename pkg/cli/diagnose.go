/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NVIDIA/hostdiag/pkg/collector"
	"github.com/NVIDIA/hostdiag/pkg/config"
	"github.com/NVIDIA/hostdiag/pkg/defaults"
	"github.com/NVIDIA/hostdiag/pkg/errors"
	"github.com/NVIDIA/hostdiag/pkg/serializer"
	"github.com/NVIDIA/hostdiag/pkg/snapshotter"
)

// runDiagnose collects, renders and writes one report as configured by cfg.
func runDiagnose(ctx context.Context, cfg *config.Config) error {
	sevs, err := cfg.Severities()
	if err != nil {
		return err
	}

	factory := collector.NewDefaultFactory(
		collector.WithEventLog(cfg.EventLog.Name),
		collector.WithSeverities(sevs),
		collector.WithMaxEvents(cfg.EventLog.MaxRecords),
		collector.WithSampleWindow(cfg.Host.SampleWindow),
		collector.WithDiskPath(cfg.Host.DiskPath),
	)

	hs := &snapshotter.HostSnapshotter{
		Version:    version,
		Factory:    factory,
		Sink:       serializer.NewFileWriterOrStdout(cfg.Output),
		Timeouts:   collectorTimeouts(cfg),
		Sequential: cfg.Collection.Sequential,
	}

	measureErr := hs.Measure(ctx)

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, prometheus.DefaultGatherer); err != nil {
			slog.Warn("failed to write metrics file",
				slog.String("path", cfg.MetricsFile),
				slog.String("error", err.Error()))
			if measureErr == nil {
				return errors.WrapWithContext(errors.ErrCodeSink, "failed to write metrics file",
					err, map[string]any{"path": cfg.MetricsFile})
			}
		}
	}

	if measureErr == nil && !cfg.WritesToStdout() {
		slog.Info("report saved", slog.String("path", cfg.Output))
	}
	return measureErr
}

// collectorTimeouts derives the per-collector budgets. The host collector
// always gets at least the CPU sample window plus its own default.
func collectorTimeouts(cfg *config.Config) snapshotter.Timeouts {
	t := snapshotter.DefaultTimeouts()
	if cfg.Collection.Timeout > 0 {
		t = snapshotter.UniformTimeouts(cfg.Collection.Timeout)
	}

	window := max(cfg.Host.SampleWindow, defaults.MinCPUSampleWindow)
	if t.Host <= window {
		t.Host = window + defaults.HostCollectorTimeout
	}
	return t
}
