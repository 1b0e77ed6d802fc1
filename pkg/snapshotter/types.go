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
	"time"

	"github.com/NVIDIA/hostdiag/pkg/defaults"
	"github.com/NVIDIA/hostdiag/pkg/report"
)

// Snapshotter defines the interface for collecting a diagnostic report and
// persisting its rendered text.
type Snapshotter interface {
	Measure(ctx context.Context) error
}

// Clock returns the current time. It is injected so report timestamps are testable.
type Clock func() time.Time

// Timeouts bounds each collector. A zero field uses that collector's default.
type Timeouts struct {
	Host     time.Duration
	EventLog time.Duration
	Process  time.Duration
	Software time.Duration
}

// DefaultTimeouts returns the per-collector defaults.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Host:     defaults.HostCollectorTimeout,
		EventLog: defaults.EventLogCollectorTimeout,
		Process:  defaults.CollectorTimeout,
		Software: defaults.SoftwareCollectorTimeout,
	}
}

// UniformTimeouts applies d to every collector.
func UniformTimeouts(d time.Duration) Timeouts {
	return Timeouts{Host: d, EventLog: d, Process: d, Software: d}
}

func (t Timeouts) withDefaults() Timeouts {
	d := DefaultTimeouts()
	if t.Host <= 0 {
		t.Host = d.Host
	}
	if t.EventLog <= 0 {
		t.EventLog = d.EventLog
	}
	if t.Process <= 0 {
		t.Process = d.Process
	}
	if t.Software <= 0 {
		t.Software = d.Software
	}
	return t
}

// recordCounts reports the size of each list section of r.
func recordCounts(r *report.DiagnosticReport) map[string]int {
	return map[string]int{
		"events":     len(r.Events),
		"processes":  len(r.Processes),
		"programs":   len(r.Programs),
		"interfaces": len(r.Host.Interfaces),
	}
}
