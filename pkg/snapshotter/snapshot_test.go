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
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/hostdiag/pkg/collector"
	cerrors "github.com/NVIDIA/hostdiag/pkg/errors"
	"github.com/NVIDIA/hostdiag/pkg/render"
	"github.com/NVIDIA/hostdiag/pkg/report"
	"github.com/NVIDIA/hostdiag/pkg/serializer"
)

var fixedTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// collectorFunc adapts a function to collector.Collector.
type collectorFunc[T any] func(ctx context.Context) (T, error)

func (f collectorFunc[T]) Collect(ctx context.Context) (T, error) { return f(ctx) }

type mockFactory struct {
	host     collectorFunc[report.HostSnapshot]
	events   collectorFunc[[]report.EventLogRecord]
	procs    collectorFunc[[]report.ProcessRecord]
	programs collectorFunc[[]report.InstalledProgram]

	calls atomic.Int32
}

func newMockFactory() *mockFactory {
	return &mockFactory{
		host: func(context.Context) (report.HostSnapshot, error) {
			return report.HostSnapshot{
				OS:         "Linux",
				Hostname:   "workstation-7",
				Interfaces: map[string]string{"eth0": "192.168.1.20"},
			}, nil
		},
		events: func(context.Context) ([]report.EventLogRecord, error) {
			return []report.EventLogRecord{{
				Time: fixedTime, Source: "kernel", Severity: report.SeverityError, Description: "oops",
			}}, nil
		},
		procs: func(context.Context) ([]report.ProcessRecord, error) {
			return []report.ProcessRecord{
				{PID: 1, Name: "init", CPUPercent: ptr.To(0.0), MemoryPercent: ptr.To(0.1), Status: "sleep"},
				{PID: 2, Name: "kthreadd", Status: "sleep"},
			}, nil
		},
		programs: func(context.Context) ([]report.InstalledProgram, error) {
			return []report.InstalledProgram{{Name: "bash", Version: ptr.To("5.2")}}, nil
		},
	}
}

func (m *mockFactory) CreateHostCollector() collector.Collector[report.HostSnapshot] {
	m.calls.Add(1)
	return m.host
}

func (m *mockFactory) CreateEventLogCollector() collector.Collector[[]report.EventLogRecord] {
	m.calls.Add(1)
	return m.events
}

func (m *mockFactory) CreateProcessCollector() collector.Collector[[]report.ProcessRecord] {
	m.calls.Add(1)
	return m.procs
}

func (m *mockFactory) CreateSoftwareCollector() collector.Collector[[]report.InstalledProgram] {
	m.calls.Add(1)
	return m.programs
}

type mockSink struct {
	lines []string
	err   error
	calls int
}

func (s *mockSink) WriteLines(_ context.Context, lines []string) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.lines = append([]string(nil), lines...)
	return nil
}

func newSnapshotter(f collector.Factory, sink *mockSink) *HostSnapshotter {
	return &HostSnapshotter{
		Version: "test",
		Factory: f,
		Sink:    sink,
		Clock:   func() time.Time { return fixedTime },
	}
}

func TestHostSnapshotter_Run(t *testing.T) {
	for _, sequential := range []bool{false, true} {
		f := newMockFactory()
		s := newSnapshotter(f, nil)
		s.Sequential = sequential

		r := s.Run(context.Background())
		require.NotNil(t, r)

		assert.Equal(t, int32(4), f.calls.Load())
		assert.Equal(t, fixedTime, r.GeneratedAt)
		assert.Equal(t, "workstation-7", r.Host.Hostname)
		assert.Len(t, r.Events, 1)
		assert.Len(t, r.Processes, 2)
		assert.Len(t, r.Programs, 1)
	}
}

func TestHostSnapshotter_FaultIsolation(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name  string
		fail  func(*mockFactory)
		check func(*testing.T, *report.DiagnosticReport)
	}{
		{
			name: "host",
			fail: func(m *mockFactory) {
				m.host = func(context.Context) (report.HostSnapshot, error) { return report.HostSnapshot{}, boom }
			},
			check: func(t *testing.T, r *report.DiagnosticReport) {
				assert.True(t, r.Host.Unavailable)
				assert.Len(t, r.Events, 1)
				assert.Len(t, r.Processes, 2)
				assert.Len(t, r.Programs, 1)
			},
		},
		{
			name: "eventlog",
			fail: func(m *mockFactory) {
				m.events = func(context.Context) ([]report.EventLogRecord, error) { return nil, boom }
			},
			check: func(t *testing.T, r *report.DiagnosticReport) {
				assert.False(t, r.Host.Unavailable)
				assert.Empty(t, r.Events)
				assert.Len(t, r.Processes, 2)
				assert.Len(t, r.Programs, 1)
			},
		},
		{
			name: "process",
			fail: func(m *mockFactory) {
				m.procs = func(context.Context) ([]report.ProcessRecord, error) { return nil, boom }
			},
			check: func(t *testing.T, r *report.DiagnosticReport) {
				assert.False(t, r.Host.Unavailable)
				assert.Len(t, r.Events, 1)
				assert.Empty(t, r.Processes)
				assert.Len(t, r.Programs, 1)
			},
		},
		{
			name: "software",
			fail: func(m *mockFactory) {
				m.programs = func(context.Context) ([]report.InstalledProgram, error) { return nil, boom }
			},
			check: func(t *testing.T, r *report.DiagnosticReport) {
				assert.False(t, r.Host.Unavailable)
				assert.Len(t, r.Events, 1)
				assert.Len(t, r.Processes, 2)
				assert.Empty(t, r.Programs)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMockFactory()
			tt.fail(f)

			before := testutil.ToFloat64(snapshotCollectorTotal.WithLabelValues(tt.name, statusDegraded))
			r := newSnapshotter(f, nil).Run(context.Background())
			after := testutil.ToFloat64(snapshotCollectorTotal.WithLabelValues(tt.name, statusDegraded))

			tt.check(t, r)
			assert.Equal(t, before+1, after)
			assert.NotNil(t, r.Events)
			assert.NotNil(t, r.Processes)
			assert.NotNil(t, r.Programs)
		})
	}
}

func TestHostSnapshotter_CollectorPanic(t *testing.T) {
	f := newMockFactory()
	f.procs = func(context.Context) ([]report.ProcessRecord, error) { panic("nil map") }

	r := newSnapshotter(f, nil).Run(context.Background())
	assert.Empty(t, r.Processes)
	assert.Len(t, r.Programs, 1)
}

func TestHostSnapshotter_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	f := newMockFactory()
	// Ignores cancellation on purpose.
	f.programs = func(context.Context) ([]report.InstalledProgram, error) {
		<-release
		return []report.InstalledProgram{{Name: "late"}}, nil
	}

	s := newSnapshotter(f, nil)
	s.Timeouts = Timeouts{Software: 50 * time.Millisecond}

	start := time.Now()
	r := s.Run(context.Background())

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Empty(t, r.Programs)
	assert.Len(t, r.Processes, 2)
}

func TestHostSnapshotter_TimeoutCancelsContext(t *testing.T) {
	f := newMockFactory()
	var sawDeadline atomic.Bool
	f.events = func(ctx context.Context) ([]report.EventLogRecord, error) {
		_, ok := ctx.Deadline()
		sawDeadline.Store(ok)
		<-ctx.Done()
		return nil, ctx.Err()
	}

	s := newSnapshotter(f, nil)
	s.Timeouts = UniformTimeouts(50 * time.Millisecond)

	r := s.Run(context.Background())
	assert.Empty(t, r.Events)
	assert.True(t, sawDeadline.Load())
}

// An event log that cannot be opened renders the placeholder while every
// other section renders normally.
func TestHostSnapshotter_EventLogUnavailable(t *testing.T) {
	f := newMockFactory()
	f.events = func(context.Context) ([]report.EventLogRecord, error) {
		return nil, cerrors.Wrap(cerrors.ErrCodeUnavailable, "failed to open event log", errors.New("access denied"))
	}
	sink := &mockSink{}

	require.NoError(t, newSnapshotter(f, sink).Measure(context.Background()))

	assert.Contains(t, sink.lines, "no warnings or errors found")
	assert.Contains(t, sink.lines, "Hostname: workstation-7")
	assert.Contains(t, sink.lines, "  eth0: 192.168.1.20")
	assert.Contains(t, sink.lines, "Name: init, PID: 1, CPU usage: 0.0%, RAM usage: 0.1%, Status: sleep")
	assert.Contains(t, sink.lines, "Program name: bash, Version: 5.2")
}

func TestHostSnapshotter_Measure(t *testing.T) {
	sink := &mockSink{}
	s := newSnapshotter(newMockFactory(), sink)

	before := testutil.ToFloat64(snapshotMeasureTotal.WithLabelValues(statusSuccess))
	require.NoError(t, s.Measure(context.Background()))

	assert.Equal(t, 1, sink.calls)
	assert.Equal(t, "System diagnostic report - 2024-03-01 10:00:00.000000", sink.lines[0])
	assert.Equal(t, render.Rule, sink.lines[1])
	assert.Equal(t, before+1, testutil.ToFloat64(snapshotMeasureTotal.WithLabelValues(statusSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(snapshotRecordCount.WithLabelValues("processes")))
}

// A run deadline that expires during collection degrades the slow collector
// but still writes the report.
func TestHostSnapshotter_MeasureAfterDeadline(t *testing.T) {
	f := newMockFactory()
	f.host = func(ctx context.Context) (report.HostSnapshot, error) {
		<-ctx.Done()
		return report.HostSnapshot{}, ctx.Err()
	}
	out := filepath.Join(t.TempDir(), "system_diagnose.txt")

	s := newSnapshotter(f, nil)
	s.Sink = serializer.NewFileWriter(out)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, s.Measure(ctx))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hostname: unavailable")
	assert.Contains(t, string(data), "Program name: bash, Version: 5.2")
}

func TestHostSnapshotter_SinkFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"structured", cerrors.Wrap(cerrors.ErrCodeSink, "failed to replace output file", errors.New("locked"))},
		{"plain", errors.New("locked")},
		{"other code", cerrors.New(cerrors.ErrCodeInternal, "encoder failed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &mockSink{err: tt.err}
			err := newSnapshotter(newMockFactory(), sink).Measure(context.Background())

			require.Error(t, err)
			assert.True(t, cerrors.IsCode(err, cerrors.ErrCodeSink))
		})
	}
}

func TestTimeouts_WithDefaults(t *testing.T) {
	got := Timeouts{EventLog: time.Second}.withDefaults()
	d := DefaultTimeouts()

	assert.Equal(t, d.Host, got.Host)
	assert.Equal(t, time.Second, got.EventLog)
	assert.Equal(t, d.Process, got.Process)
	assert.Equal(t, d.Software, got.Software)
}
