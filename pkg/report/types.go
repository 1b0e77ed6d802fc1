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

package report

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Unavailable is the sentinel rendered for host fields whose source could not be queried.
const Unavailable = "unavailable"

// Battery holds the battery state at collection time.
type Battery struct {
	// Percent is the remaining charge in [0,100].
	Percent float64 `json:"percent" yaml:"percent"`

	// Charging is true when the machine runs on external power.
	Charging bool `json:"charging" yaml:"charging"`
}

// HostSnapshot captures hardware and OS identity plus point-in-time utilization.
type HostSnapshot struct {
	// Unavailable marks the degraded value substituted when the host source failed.
	Unavailable bool `json:"unavailable,omitempty" yaml:"unavailable,omitempty"`

	OS           string `json:"os" yaml:"os"`
	Hostname     string `json:"hostname" yaml:"hostname"`
	PrimaryIP    string `json:"primaryIP" yaml:"primaryIP"`
	Release      string `json:"release" yaml:"release"`
	Version      string `json:"version" yaml:"version"`
	Architecture string `json:"architecture" yaml:"architecture"`

	CPUModel      string  `json:"cpuModel" yaml:"cpuModel"`
	PhysicalCores int     `json:"physicalCores" yaml:"physicalCores"`
	LogicalCores  int     `json:"logicalCores" yaml:"logicalCores"`
	CPUPercent    float64 `json:"cpuPercent" yaml:"cpuPercent"`

	MemoryTotal     uint64 `json:"memoryTotal" yaml:"memoryTotal"`
	MemoryUsed      uint64 `json:"memoryUsed" yaml:"memoryUsed"`
	MemoryAvailable uint64 `json:"memoryAvailable" yaml:"memoryAvailable"`

	DiskTotal     uint64  `json:"diskTotal" yaml:"diskTotal"`
	DiskUsed      uint64  `json:"diskUsed" yaml:"diskUsed"`
	DiskAvailable uint64  `json:"diskAvailable" yaml:"diskAvailable"`
	DiskPercent   float64 `json:"diskPercent" yaml:"diskPercent"`

	// Interfaces maps interface name to its IPv4 address.
	Interfaces map[string]string `json:"interfaces" yaml:"interfaces"`

	// Battery is nil when no battery sensor is present or readable.
	Battery *Battery `json:"battery,omitempty" yaml:"battery,omitempty"`
}

// UnavailableHost returns the degraded HostSnapshot used when the host source fails.
func UnavailableHost() HostSnapshot {
	return HostSnapshot{
		Unavailable:  true,
		OS:           Unavailable,
		Hostname:     Unavailable,
		PrimaryIP:    Unavailable,
		Release:      Unavailable,
		Version:      Unavailable,
		Architecture: Unavailable,
		CPUModel:     Unavailable,
		Interfaces:   map[string]string{},
	}
}

// EventLogRecord is one error or warning entry from the platform event log.
type EventLogRecord struct {
	// Time is the normalized timestamp; zero when the native value could not be converted.
	Time time.Time `json:"time" yaml:"time"`

	// RawTime holds the native timestamp representation when Time is zero.
	RawTime string `json:"rawTime,omitempty" yaml:"rawTime,omitempty"`

	Source      string   `json:"source" yaml:"source"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Description string   `json:"description" yaml:"description"`
}

// ProcessRecord describes one running process.
type ProcessRecord struct {
	PID  int32  `json:"pid" yaml:"pid"`
	Name string `json:"name" yaml:"name"`

	// CPUPercent is nil when the value could not be read.
	CPUPercent *float64 `json:"cpuPercent,omitempty" yaml:"cpuPercent,omitempty"`

	// MemoryPercent is nil when the value could not be read.
	MemoryPercent *float64 `json:"memoryPercent,omitempty" yaml:"memoryPercent,omitempty"`

	Status string `json:"status" yaml:"status"`
}

// InstalledProgram is one entry of the installed software inventory.
type InstalledProgram struct {
	Name string `json:"name" yaml:"name"`

	// Version is nil when the inventory entry carries none.
	Version *string `json:"version,omitempty" yaml:"version,omitempty"`
}

// DiagnosticReport is the aggregate of one collection run.
type DiagnosticReport struct {
	// ID correlates log lines and metrics of one run.
	ID uuid.UUID `json:"id" yaml:"id"`

	// GeneratedAt is the time the run started.
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`

	Host      HostSnapshot       `json:"host" yaml:"host"`
	Events    []EventLogRecord   `json:"events" yaml:"events"`
	Processes []ProcessRecord    `json:"processes" yaml:"processes"`
	Programs  []InstalledProgram `json:"programs" yaml:"programs"`
}

// New assembles a DiagnosticReport. Nil slices are replaced with empty ones.
func New(generatedAt time.Time, host HostSnapshot, events []EventLogRecord,
	procs []ProcessRecord, programs []InstalledProgram) *DiagnosticReport {
	if host.Interfaces == nil {
		host.Interfaces = map[string]string{}
	}
	if events == nil {
		events = []EventLogRecord{}
	}
	if procs == nil {
		procs = []ProcessRecord{}
	}
	if programs == nil {
		programs = []InstalledProgram{}
	}
	return &DiagnosticReport{
		ID:          uuid.New(),
		GeneratedAt: generatedAt,
		Host:        host,
		Events:      events,
		Processes:   procs,
		Programs:    programs,
	}
}

// ClampPercent limits v to [0,100]. NaN becomes 0.
func ClampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
