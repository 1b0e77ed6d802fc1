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

package host

import (
	"context"
	"log/slog"
	"net/netip"
	"time"

	psnet "github.com/shirou/gopsutil/v4/net"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/hostdiag/pkg/defaults"
	"github.com/NVIDIA/hostdiag/pkg/errors"
	"github.com/NVIDIA/hostdiag/pkg/report"
)

const unknownCPUModel = "unknown"

// Collector gathers a report.HostSnapshot from the local machine.
type Collector struct {
	// System is the platform query layer. If nil, the gopsutil implementation is used.
	System System

	// SampleWindow is the CPU utilization window. Values below one second are raised.
	SampleWindow time.Duration

	// DiskPath is the volume whose usage is reported. Defaults to "/".
	DiskPath string
}

// Collect queries the platform and returns a fully populated snapshot.
func (c *Collector) Collect(ctx context.Context) (report.HostSnapshot, error) {
	slog.Info("collecting host information")

	if err := ctx.Err(); err != nil {
		return report.HostSnapshot{}, unavailable("host collection canceled", err)
	}

	sys := c.System
	if sys == nil {
		sys = NewSystem()
	}

	info, err := sys.Info(ctx)
	if err != nil {
		return report.HostSnapshot{}, unavailable("failed to read host info", err)
	}

	snap := report.HostSnapshot{
		OS:           osName(info.OS),
		Hostname:     info.Hostname,
		Release:      info.KernelVersion,
		Version:      joinNonEmpty(info.Platform, info.PlatformVersion),
		Architecture: info.KernelArch,
	}

	snap.PrimaryIP, err = sys.LookupIPv4(ctx, info.Hostname)
	if err != nil {
		slog.Debug("failed to resolve host address", "hostname", info.Hostname, "error", err)
		snap.PrimaryIP = report.Unavailable
	}

	if snap.CPUModel, err = sys.CPUModel(ctx); err != nil {
		return report.HostSnapshot{}, unavailable("failed to read CPU model", err)
	}
	if snap.CPUModel == "" {
		snap.CPUModel = unknownCPUModel
	}

	if snap.PhysicalCores, err = sys.CPUCounts(ctx, false); err != nil {
		return report.HostSnapshot{}, unavailable("failed to count physical cores", err)
	}
	if snap.LogicalCores, err = sys.CPUCounts(ctx, true); err != nil {
		return report.HostSnapshot{}, unavailable("failed to count logical cores", err)
	}

	pct, err := sys.CPUPercent(ctx, c.sampleWindow())
	if err != nil {
		return report.HostSnapshot{}, unavailable("failed to sample CPU utilization", err)
	}
	snap.CPUPercent = report.ClampPercent(pct)

	vm, err := sys.VirtualMemory(ctx)
	if err != nil {
		return report.HostSnapshot{}, unavailable("failed to read memory statistics", err)
	}
	snap.MemoryTotal = vm.Total
	snap.MemoryUsed = vm.Used
	snap.MemoryAvailable = vm.Available

	du, err := sys.DiskUsage(ctx, c.diskPath())
	if err != nil {
		return report.HostSnapshot{}, errors.WrapWithContext(errors.ErrCodeUnavailable,
			"failed to read disk usage", err, map[string]any{"path": c.diskPath()})
	}
	snap.DiskTotal = du.Total
	snap.DiskUsed = du.Used
	snap.DiskAvailable = du.Free
	snap.DiskPercent = report.ClampPercent(du.UsedPercent)

	ifaces, err := sys.Interfaces(ctx)
	if err != nil {
		return report.HostSnapshot{}, unavailable("failed to enumerate network interfaces", err)
	}
	snap.Interfaces = IPv4ByInterface(ifaces)

	bat, err := sys.Battery(ctx)
	if err != nil {
		slog.Debug("battery information not available", "error", err)
		bat = nil
	}
	if bat != nil {
		bat.Percent = report.ClampPercent(bat.Percent)
	}
	snap.Battery = bat

	slog.Debug("collected host information",
		slog.String("hostname", snap.Hostname),
		slog.Int("interfaces", len(snap.Interfaces)),
		slog.Bool("battery", snap.Battery != nil))

	return snap, nil
}

func (c *Collector) sampleWindow() time.Duration {
	if c.SampleWindow < defaults.MinCPUSampleWindow {
		return defaults.MinCPUSampleWindow
	}
	return c.SampleWindow
}

func (c *Collector) diskPath() string {
	if c.DiskPath == "" {
		return defaults.DiskPath
	}
	return c.DiskPath
}

// IPv4ByInterface maps every interface with an IPv4 address to its first such address.
// Interfaces without IPv4 are omitted.
func IPv4ByInterface(ifaces psnet.InterfaceStatList) map[string]string {
	out := make(map[string]string, len(ifaces))
	for _, iface := range ifaces {
		if iface.Name == "" {
			continue
		}
		for _, a := range iface.Addrs {
			addr, ok := parseAddr(a.Addr)
			if !ok || !addr.Is4() {
				continue
			}
			out[iface.Name] = addr.String()
			break
		}
	}
	return out
}

// parseAddr accepts both CIDR ("10.0.0.2/24") and bare address forms.
func parseAddr(s string) (netip.Addr, bool) {
	if p, err := netip.ParsePrefix(s); err == nil {
		return p.Addr().Unmap(), true
	}
	a, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return a.Unmap(), true
}

// osName returns the display name of a GOOS-style identifier, e.g. "linux" -> "Linux".
func osName(goos string) string {
	switch goos {
	case "":
		return report.Unavailable
	case "darwin":
		return "Darwin"
	case "freebsd":
		return "FreeBSD"
	default:
		return cases.Title(language.Und).String(goos)
	}
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

func unavailable(msg string, err error) error {
	return errors.Wrap(errors.ErrCodeUnavailable, msg, err)
}
