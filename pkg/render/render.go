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

package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/NVIDIA/hostdiag/pkg/report"
)

const (
	ruleWidth = 40

	headerTimeLayout = "2006-01-02 15:04:05.000000"
	eventTimeLayout  = "2006-01-02 15:04:05"

	bytesPerGB = 1 << 30

	notAvailable      = "n/a"
	noInterfaces      = "none"
	noEventsLine      = "no warnings or errors found"
	noBatteryLine     = "Battery: no battery information available"
	unknownEventTime  = "unknown"
	headerTitle       = "System diagnostic report"
	eventsTitle       = "Error and warning events:"
	processesTitle    = "Running processes:"
	programsTitle     = "Installed programs:"
	interfacesLabel   = "Network interfaces"
	batteryLabel      = "Battery"
	batteryPercentKey = "Battery percent (%)"
	batteryChargeKey  = "Battery charging"
)

// Rule is the section delimiter line.
var Rule = strings.Repeat("=", ruleWidth)

// Render returns the report lines in layout order.
func Render(r *report.DiagnosticReport) []string {
	if r == nil {
		return nil
	}

	var b builder
	b.line(headerTitle + " - " + r.GeneratedAt.Format(headerTimeLayout))
	b.line(Rule)

	renderHost(&b, r.Host)
	renderEvents(&b, r.Events)
	renderProcesses(&b, r.Processes)
	renderPrograms(&b, r.Programs)

	return b.lines
}

type builder struct {
	lines []string
}

func (b *builder) line(s string) {
	b.lines = append(b.lines, s)
}

func (b *builder) linef(format string, args ...any) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

// field writes one scalar host field followed by a rule.
func (b *builder) field(key, value string) {
	b.line(key + ": " + value)
	b.line(Rule)
}

func (b *builder) section(title string) {
	b.line("")
	b.line(title)
	b.line(Rule)
}

func renderHost(b *builder, h report.HostSnapshot) {
	for _, f := range hostFields(h) {
		b.field(f.key, f.value)
	}

	switch {
	case h.Unavailable:
		b.field(interfacesLabel, report.Unavailable)
	case len(h.Interfaces) == 0:
		b.field(interfacesLabel, noInterfaces)
	default:
		b.line(interfacesLabel + ":")
		names := make([]string, 0, len(h.Interfaces))
		for name := range h.Interfaces {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.linef("  %s: %s", name, h.Interfaces[name])
		}
		b.line(Rule)
	}

	switch {
	case h.Unavailable:
		b.field(batteryLabel, report.Unavailable)
	case h.Battery == nil:
		b.line(noBatteryLine)
		b.line(Rule)
	default:
		b.field(batteryPercentKey, percent(h.Battery.Percent))
		b.field(batteryChargeKey, yesNo(h.Battery.Charging))
	}
}

type kv struct {
	key, value string
}

func hostFields(h report.HostSnapshot) []kv {
	fields := []kv{
		{"System", h.OS},
		{"Hostname", h.Hostname},
		{"IP address", h.PrimaryIP},
		{"Release", h.Release},
		{"Version", h.Version},
		{"Architecture", h.Architecture},
		{"CPU", h.CPUModel},
		{"CPU cores (physical)", strconv.Itoa(h.PhysicalCores)},
		{"CPU cores (logical)", strconv.Itoa(h.LogicalCores)},
		{"Current CPU usage (%)", percent(h.CPUPercent)},
		{"Total RAM (GB)", gigabytes(h.MemoryTotal)},
		{"Used RAM (GB)", gigabytes(h.MemoryUsed)},
		{"Available RAM (GB)", gigabytes(h.MemoryAvailable)},
		{"Total disk (GB)", gigabytes(h.DiskTotal)},
		{"Used disk (GB)", gigabytes(h.DiskUsed)},
		{"Available disk (GB)", gigabytes(h.DiskAvailable)},
		{"Disk usage (%)", percent(h.DiskPercent)},
	}
	if h.Unavailable {
		for i := range fields {
			fields[i].value = report.Unavailable
		}
	}
	return fields
}

func renderEvents(b *builder, events []report.EventLogRecord) {
	b.section(eventsTitle)
	if len(events) == 0 {
		b.line(noEventsLine)
		return
	}
	for _, e := range events {
		b.line("Time: " + eventTime(e))
		b.line("Source: " + e.Source)
		b.line("Event type: " + e.Severity.String())
		b.line("Description: " + e.Description)
		b.line(Rule)
	}
}

func renderProcesses(b *builder, procs []report.ProcessRecord) {
	b.section(processesTitle)
	for _, p := range procs {
		b.linef("Name: %s, PID: %d, CPU usage: %s, RAM usage: %s, Status: %s",
			p.Name, p.PID, optionalPercent(p.CPUPercent), optionalPercent(p.MemoryPercent), p.Status)
	}
	b.line(Rule)
}

func renderPrograms(b *builder, programs []report.InstalledProgram) {
	b.section(programsTitle)
	for _, p := range programs {
		version := notAvailable
		if p.Version != nil {
			version = *p.Version
		}
		b.linef("Program name: %s, Version: %s", p.Name, version)
	}
	b.line(Rule)
}

func eventTime(e report.EventLogRecord) string {
	switch {
	case !e.Time.IsZero():
		return e.Time.Format(eventTimeLayout)
	case e.RawTime != "":
		return e.RawTime
	default:
		return unknownEventTime
	}
}

func gigabytes(v uint64) string {
	return strconv.FormatFloat(float64(v)/bytesPerGB, 'f', 2, 64)
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func optionalPercent(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return percent(*v) + "%"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
