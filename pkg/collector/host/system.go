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
	"fmt"
	"net"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	pshost "github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"

	"github.com/NVIDIA/hostdiag/pkg/report"
)

// System is the platform query layer the host Collector depends on.
// Every method is fallible; Battery returns (nil, nil) when no battery exists.
type System interface {
	Info(ctx context.Context) (*pshost.InfoStat, error)
	LookupIPv4(ctx context.Context, hostname string) (string, error)
	CPUModel(ctx context.Context) (string, error)
	CPUCounts(ctx context.Context, logical bool) (int, error)
	CPUPercent(ctx context.Context, window time.Duration) (float64, error)
	VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error)
	DiskUsage(ctx context.Context, path string) (*disk.UsageStat, error)
	Interfaces(ctx context.Context) (psnet.InterfaceStatList, error)
	Battery(ctx context.Context) (*report.Battery, error)
}

// NewSystem returns the gopsutil-backed System.
func NewSystem() System {
	return &gopsutilSystem{resolver: net.DefaultResolver}
}

type gopsutilSystem struct {
	resolver *net.Resolver
}

func (s *gopsutilSystem) Info(ctx context.Context) (*pshost.InfoStat, error) {
	return pshost.InfoWithContext(ctx)
}

func (s *gopsutilSystem) LookupIPv4(ctx context.Context, hostname string) (string, error) {
	ips, err := s.resolver.LookupIP(ctx, "ip4", hostname)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("no IPv4 address for %q", hostname)
	}
	return ips[0].String(), nil
}

func (s *gopsutilSystem) CPUModel(ctx context.Context) (string, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return "", err
	}
	for _, i := range infos {
		if i.ModelName != "" {
			return i.ModelName, nil
		}
	}
	return "", nil
}

func (s *gopsutilSystem) CPUCounts(ctx context.Context, logical bool) (int, error) {
	return cpu.CountsWithContext(ctx, logical)
}

func (s *gopsutilSystem) CPUPercent(ctx context.Context, window time.Duration) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, window, false)
	if err != nil {
		return 0, err
	}
	if len(pcts) == 0 {
		return 0, fmt.Errorf("no CPU utilization sample returned")
	}
	return pcts[0], nil
}

func (s *gopsutilSystem) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	return mem.VirtualMemoryWithContext(ctx)
}

func (s *gopsutilSystem) DiskUsage(ctx context.Context, path string) (*disk.UsageStat, error) {
	return disk.UsageWithContext(ctx, path)
}

func (s *gopsutilSystem) Interfaces(ctx context.Context) (psnet.InterfaceStatList, error) {
	return psnet.InterfacesWithContext(ctx)
}

func (s *gopsutilSystem) Battery(ctx context.Context) (*report.Battery, error) {
	return readBattery(ctx)
}
