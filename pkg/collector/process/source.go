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

package process

import (
	"context"
	"strings"

	psprocess "github.com/shirou/gopsutil/v4/process"
)

// Source enumerates the processes visible to the caller.
type Source interface {
	Processes(ctx context.Context) ([]Handle, error)
}

// Handle reads attributes of a single process. Every read may fail
// independently since the process can exit at any time.
type Handle interface {
	PID() int32
	Name(ctx context.Context) (string, error)
	CPUPercent(ctx context.Context) (float64, error)
	MemoryPercent(ctx context.Context) (float64, error)
	Status(ctx context.Context) (string, error)
}

// NewSource returns the gopsutil-backed Source.
func NewSource() Source {
	return gopsutilSource{}
}

type gopsutilSource struct{}

func (gopsutilSource) Processes(ctx context.Context) ([]Handle, error) {
	procs, err := psprocess.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Handle, 0, len(procs))
	for _, p := range procs {
		out = append(out, gopsutilHandle{p: p})
	}
	return out, nil
}

type gopsutilHandle struct {
	p *psprocess.Process
}

func (h gopsutilHandle) PID() int32 { return h.p.Pid }

func (h gopsutilHandle) Name(ctx context.Context) (string, error) {
	return h.p.NameWithContext(ctx)
}

func (h gopsutilHandle) CPUPercent(ctx context.Context) (float64, error) {
	return h.p.CPUPercentWithContext(ctx)
}

func (h gopsutilHandle) MemoryPercent(ctx context.Context) (float64, error) {
	v, err := h.p.MemoryPercentWithContext(ctx)
	return float64(v), err
}

func (h gopsutilHandle) Status(ctx context.Context) (string, error) {
	st, err := h.p.StatusWithContext(ctx)
	if err != nil {
		return "", err
	}
	return strings.Join(st, ","), nil
}
