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

package collector

import (
	"context"
	"time"

	"github.com/NVIDIA/hostdiag/pkg/collector/eventlog"
	"github.com/NVIDIA/hostdiag/pkg/collector/host"
	"github.com/NVIDIA/hostdiag/pkg/collector/process"
	"github.com/NVIDIA/hostdiag/pkg/collector/software"
	"github.com/NVIDIA/hostdiag/pkg/defaults"
	"github.com/NVIDIA/hostdiag/pkg/report"
)

// Collector gathers one kind of diagnostic value.
type Collector[T any] interface {
	Collect(ctx context.Context) (T, error)
}

// Factory creates the source adapters.
type Factory interface {
	CreateHostCollector() Collector[report.HostSnapshot]
	CreateEventLogCollector() Collector[[]report.EventLogRecord]
	CreateProcessCollector() Collector[[]report.ProcessRecord]
	CreateSoftwareCollector() Collector[[]report.InstalledProgram]
}

// Option is a functional option for configuring DefaultFactory.
type Option func(*DefaultFactory)

// WithEventLog sets the event log to read.
func WithEventLog(name string) Option {
	return func(f *DefaultFactory) {
		if name != "" {
			f.EventLogName = name
		}
	}
}

// WithSeverities sets the event severities to keep. Empty keeps the default.
func WithSeverities(sevs []report.Severity) Option {
	return func(f *DefaultFactory) {
		if len(sevs) > 0 {
			f.Severities = sevs
		}
	}
}

// WithMaxEvents caps the number of event records. Zero means unlimited.
func WithMaxEvents(n int) Option {
	return func(f *DefaultFactory) {
		if n >= 0 {
			f.MaxEvents = n
		}
	}
}

// WithSampleWindow sets the CPU utilization sample window.
func WithSampleWindow(d time.Duration) Option {
	return func(f *DefaultFactory) {
		f.SampleWindow = d
	}
}

// WithDiskPath sets the volume whose usage is reported.
func WithDiskPath(path string) Option {
	return func(f *DefaultFactory) {
		if path != "" {
			f.DiskPath = path
		}
	}
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	EventLogName string
	Severities   []report.Severity
	MaxEvents    int
	SampleWindow time.Duration
	DiskPath     string
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		EventLogName: defaults.EventLogName,
		Severities:   report.DefaultSeverities(),
		MaxEvents:    defaults.EventLogMaxRecords,
		SampleWindow: defaults.CPUSampleWindow,
		DiskPath:     defaults.DiskPath,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateHostCollector creates a host and hardware collector.
func (f *DefaultFactory) CreateHostCollector() Collector[report.HostSnapshot] {
	return &host.Collector{
		SampleWindow: f.SampleWindow,
		DiskPath:     f.DiskPath,
	}
}

// CreateEventLogCollector creates an event log collector.
func (f *DefaultFactory) CreateEventLogCollector() Collector[[]report.EventLogRecord] {
	return &eventlog.Collector{
		LogName:    f.EventLogName,
		Severities: f.Severities,
		MaxRecords: f.MaxEvents,
	}
}

// CreateProcessCollector creates a running process collector.
func (f *DefaultFactory) CreateProcessCollector() Collector[[]report.ProcessRecord] {
	return &process.Collector{}
}

// CreateSoftwareCollector creates an installed software collector.
func (f *DefaultFactory) CreateSoftwareCollector() Collector[[]report.InstalledProgram] {
	return &software.Collector{}
}
