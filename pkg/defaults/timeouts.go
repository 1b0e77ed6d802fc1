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

package defaults

import "time"

// Collector timeouts for data collection operations.
const (
	// CollectorTimeout is the default per-adapter timeout enforced by the snapshotter.
	// Collectors should respect parent context deadlines when shorter.
	CollectorTimeout = 30 * time.Second

	// HostCollectorTimeout bounds the host collector, including the CPU sample window.
	HostCollectorTimeout = 15 * time.Second

	// EventLogCollectorTimeout bounds a full backwards read of the event log.
	EventLogCollectorTimeout = 60 * time.Second

	// SoftwareCollectorTimeout bounds the installed software inventory walk.
	SoftwareCollectorTimeout = 30 * time.Second
)

// Sampling parameters.
const (
	// CPUSampleWindow is the window over which CPU utilization is measured.
	CPUSampleWindow = 1 * time.Second

	// MinCPUSampleWindow is the shortest window that yields a meaningful reading.
	MinCPUSampleWindow = 1 * time.Second
)

// Event log parameters.
const (
	// EventLogName is the log domain read when none is configured.
	EventLogName = "System"

	// EventLogMaxRecords caps the number of matching records kept per run. Zero disables the cap.
	EventLogMaxRecords = 1000
)

// Host parameters.
const (
	// DiskPath is the volume whose usage is reported.
	DiskPath = "/"
)

// Output parameters.
const (
	// OutputFile is the default report destination.
	OutputFile = "system_diagnose.txt"

	// SinkTimeout bounds writing the rendered report.
	SinkTimeout = 30 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLIRunTimeout bounds a complete collect-render-write run.
	CLIRunTimeout = 5 * time.Minute
)
