// Package snapshotter collects a point-in-time diagnostic report of the
// current host and writes its rendered text.
//
// # Core Types
//
// Snapshotter: Interface for a complete run
//
//	type Snapshotter interface {
//	    Measure(ctx context.Context) error
//	}
//
// HostSnapshotter: Production implementation that collects from the current host
//
//	type HostSnapshotter struct {
//	    Version    string            // Snapshotter version
//	    Factory    collector.Factory // Collector factory (optional)
//	    Sink       serializer.Sink   // Output sink (optional, stdout)
//	    Clock      Clock             // Report timestamp source (optional)
//	    Timeouts   Timeouts          // Per-collector bounds (optional)
//	    Sequential bool              // Disable concurrent collection
//	}
//
// # Usage
//
// Write the report to a file:
//
//	s := &snapshotter.HostSnapshotter{
//	    Version: "v1.0.0",
//	    Sink:    serializer.NewFileWriterOrStdout("system_diagnose.txt"),
//	}
//	if err := s.Measure(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// Collect without writing:
//
//	r := s.Run(ctx)
//	lines := render.Render(r)
//
// # Collection
//
// HostSnapshotter runs the host, event log, process and software collectors
// concurrently using errgroup, or one after another when Sequential is set.
// Each collector runs under its own timeout. A collector that fails, panics or
// exceeds its timeout contributes a degraded value instead:
//   - host: report.UnavailableHost()
//   - event log, processes, software: an empty list
//
// A collector that ignores cancellation is abandoned; its goroutine finishes
// in the background and the late result is discarded.
//
// # Error Handling
//
// Run never fails. Measure returns an error only when the report cannot be
// written; that error carries the SINK code.
//
// # Observability
//
// The snapshotter exports Prometheus metrics:
//   - hostdiag_collection_duration_seconds: Total time to collect a report
//   - hostdiag_collector_duration_seconds{collector}: Per-collector timing
//   - hostdiag_collector_total{collector,status}: success or degraded runs
//   - hostdiag_measure_total{status}: Complete runs including the write
//   - hostdiag_report_records{section}: Section sizes of the last report
//
// Structured logs are emitted for collection start, degraded collectors and
// the written report, all tagged with the report ID.
package snapshotter
