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

// Package collector provides the source adapters that gather host diagnostics.
//
// # Overview
//
// Every adapter wraps one failure-prone platform source and exposes the same
// method, parameterized by the value it produces:
//
//	type Collector[T any] interface {
//	    Collect(ctx context.Context) (T, error)
//	}
//
// Adapters fail as a whole with an UNAVAILABLE structured error (see
// pkg/errors). Failures of single records are logged and the record is
// skipped; they never surface from Collect.
//
// # Factory Pattern
//
// The Factory interface abstracts adapter creation so the orchestrator can be
// tested with fakes:
//
//	type Factory interface {
//	    CreateHostCollector() Collector[report.HostSnapshot]
//	    CreateEventLogCollector() Collector[[]report.EventLogRecord]
//	    CreateProcessCollector() Collector[[]report.ProcessRecord]
//	    CreateSoftwareCollector() Collector[[]report.InstalledProgram]
//	}
//
// The DefaultFactory builds the platform implementations and is configured
// with functional options:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithEventLog("Application"),
//	    collector.WithSeverities([]report.Severity{report.SeverityError}),
//	    collector.WithSampleWindow(2*time.Second),
//	)
//
// # Subpackages
//
//   - collector/host - OS identity, CPU, memory, disk, network and battery
//   - collector/eventlog - error and warning records from the system event log
//   - collector/process - running processes
//   - collector/software - installed programs
//   - collector/file - line, key-value and stanza file parsing used by the above
package collector
