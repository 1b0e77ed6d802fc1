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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/hostdiag/pkg/report"
)

var generatedAt = time.Date(2024, 3, 1, 10, 0, 0, 123456000, time.UTC)

func sampleHost() report.HostSnapshot {
	return report.HostSnapshot{
		OS:              "Linux",
		Hostname:        "workstation-7",
		PrimaryIP:       "192.168.1.20",
		Release:         "6.8.0-45-generic",
		Version:         "ubuntu 24.04",
		Architecture:    "x86_64",
		CPUModel:        "Intel(R) Core(TM) i7-1185G7",
		PhysicalCores:   4,
		LogicalCores:    8,
		CPUPercent:      12.5,
		MemoryTotal:     16 << 30,
		MemoryUsed:      6 << 30,
		MemoryAvailable: 10 << 30,
		DiskTotal:       512 << 30,
		DiskUsed:        200 << 30,
		DiskAvailable:   312 << 30,
		DiskPercent:     39.06,
		Interfaces:      map[string]string{"wlan0": "10.0.0.7", "eth0": "192.168.1.20", "lo": "127.0.0.1"},
		Battery:         &report.Battery{Percent: 80, Charging: true},
	}
}

func sampleReport() *report.DiagnosticReport {
	events := []report.EventLogRecord{
		{
			Time:        time.Date(2024, 3, 1, 9, 58, 1, 0, time.UTC),
			Source:      "kernel",
			Severity:    report.SeverityError,
			Description: "I/O error, dev sda, sector 2048",
		},
		{
			RawTime:     "1709287000",
			Source:      "NetworkManager",
			Severity:    report.SeverityWarning,
			Description: "dhcp4 lease expired",
		},
	}
	procs := []report.ProcessRecord{
		{PID: 1, Name: "systemd", CPUPercent: ptr.To(0.0), MemoryPercent: ptr.To(0.08), Status: "sleep"},
		{PID: 812, Name: "sshd", Status: "sleep"},
	}
	programs := []report.InstalledProgram{
		{Name: "bash", Version: ptr.To("5.2.21-2ubuntu4")},
		{Name: "fonts-dejavu"},
	}
	return report.New(generatedAt, sampleHost(), events, procs, programs)
}

func TestRender_Layout(t *testing.T) {
	want := []string{
		"System diagnostic report - 2024-03-01 10:00:00.123456",
		Rule,
		"System: Linux", Rule,
		"Hostname: workstation-7", Rule,
		"IP address: 192.168.1.20", Rule,
		"Release: 6.8.0-45-generic", Rule,
		"Version: ubuntu 24.04", Rule,
		"Architecture: x86_64", Rule,
		"CPU: Intel(R) Core(TM) i7-1185G7", Rule,
		"CPU cores (physical): 4", Rule,
		"CPU cores (logical): 8", Rule,
		"Current CPU usage (%): 12.5", Rule,
		"Total RAM (GB): 16.00", Rule,
		"Used RAM (GB): 6.00", Rule,
		"Available RAM (GB): 10.00", Rule,
		"Total disk (GB): 512.00", Rule,
		"Used disk (GB): 200.00", Rule,
		"Available disk (GB): 312.00", Rule,
		"Disk usage (%): 39.1", Rule,
		"Network interfaces:",
		"  eth0: 192.168.1.20",
		"  lo: 127.0.0.1",
		"  wlan0: 10.0.0.7",
		Rule,
		"Battery percent (%): 80.0", Rule,
		"Battery charging: yes", Rule,
		"",
		"Error and warning events:",
		Rule,
		"Time: 2024-03-01 09:58:01",
		"Source: kernel",
		"Event type: Error",
		"Description: I/O error, dev sda, sector 2048",
		Rule,
		"Time: 1709287000",
		"Source: NetworkManager",
		"Event type: Warning",
		"Description: dhcp4 lease expired",
		Rule,
		"",
		"Running processes:",
		Rule,
		"Name: systemd, PID: 1, CPU usage: 0.0%, RAM usage: 0.1%, Status: sleep",
		"Name: sshd, PID: 812, CPU usage: n/a, RAM usage: n/a, Status: sleep",
		Rule,
		"",
		"Installed programs:",
		Rule,
		"Program name: bash, Version: 5.2.21-2ubuntu4",
		"Program name: fonts-dejavu, Version: n/a",
		Rule,
	}

	assert.Equal(t, want, Render(sampleReport()))
}

func TestRender_Deterministic(t *testing.T) {
	r := sampleReport()
	first := Render(r)
	for range 20 {
		assert.Equal(t, first, Render(r))
	}
}

func TestRender_InterfaceRoundTrip(t *testing.T) {
	r := sampleReport()
	lines := Render(r)

	for name, ip := range r.Host.Interfaces {
		count := 0
		for _, l := range lines {
			if l == "  "+name+": "+ip {
				count++
			}
		}
		assert.Equal(t, 1, count, "interface %s", name)
	}
}

func TestRender_NoInterfaces(t *testing.T) {
	h := sampleHost()
	h.Interfaces = map[string]string{}
	lines := Render(report.New(generatedAt, h, nil, nil, nil))

	assert.Contains(t, lines, "Network interfaces: none")
	assert.NotContains(t, lines, "Network interfaces:")
	for _, l := range lines {
		assert.False(t, strings.HasPrefix(l, "  "), "unexpected sub-list line %q", l)
	}
}

func TestRender_EmptyEvents(t *testing.T) {
	lines := Render(report.New(generatedAt, sampleHost(), nil, nil, nil))

	i := indexOf(lines, "Error and warning events:")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, Rule, lines[i+1])
	assert.Equal(t, "no warnings or errors found", lines[i+2])
	assert.Equal(t, "", lines[i+3])
	assert.Equal(t, "Running processes:", lines[i+4])
}

func TestRender_EmptyLists(t *testing.T) {
	lines := Render(report.New(generatedAt, sampleHost(), nil, nil, nil))

	assert.Equal(t, []string{"", "Running processes:", Rule, Rule, "", "Installed programs:", Rule, Rule},
		lines[len(lines)-8:])
}

func TestRender_NoBattery(t *testing.T) {
	h := sampleHost()
	h.Battery = nil
	lines := Render(report.New(generatedAt, h, nil, nil, nil))

	assert.Contains(t, lines, "Battery: no battery information available")
	assert.NotContains(t, lines, "Battery charging: no")
}

func TestRender_DegradedHost(t *testing.T) {
	lines := Render(report.New(generatedAt, report.UnavailableHost(), nil, nil, nil))

	host := lines[2:indexOf(lines, "")]
	for _, l := range host {
		if l == Rule {
			continue
		}
		assert.True(t, strings.HasSuffix(l, ": unavailable"), "line %q", l)
	}
	assert.Contains(t, host, "CPU cores (physical): unavailable")
	assert.Contains(t, host, "Network interfaces: unavailable")
	assert.Contains(t, host, "Battery: unavailable")
}

func TestRender_ProcessCount(t *testing.T) {
	procs := []report.ProcessRecord{
		{PID: 10, Name: "a", Status: "running"},
		{PID: 20, Name: "b", Status: "sleep"},
	}
	lines := Render(report.New(generatedAt, sampleHost(), nil, procs, nil))

	start := indexOf(lines, "Running processes:")
	end := indexOf(lines, "Installed programs:")
	count := 0
	for _, l := range lines[start:end] {
		if strings.HasPrefix(l, "Name: ") {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestRender_EventTimeFallback(t *testing.T) {
	assert.Equal(t, "unknown", eventTime(report.EventLogRecord{}))
	assert.Equal(t, "raw", eventTime(report.EventLogRecord{RawTime: "raw"}))
}

func TestRender_Nil(t *testing.T) {
	assert.Nil(t, Render(nil))
}

func indexOf(lines []string, s string) int {
	for i, l := range lines {
		if l == s {
			return i
		}
	}
	return -1
}
