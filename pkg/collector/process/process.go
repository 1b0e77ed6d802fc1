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
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	psprocess "github.com/shirou/gopsutil/v4/process"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/hostdiag/pkg/errors"
	"github.com/NVIDIA/hostdiag/pkg/report"
)

const (
	unknownName   = "unknown"
	unknownStatus = "unknown"
)

// Collector lists running processes.
type Collector struct {
	// Source enumerates processes. If nil, the gopsutil implementation is used.
	Source Source
}

// Collect returns one record per readable process, sorted by PID.
// It never returns an error: enumeration failures are logged and yield an empty list.
func (c *Collector) Collect(ctx context.Context) ([]report.ProcessRecord, error) {
	slog.Info("collecting running processes")

	src := c.Source
	if src == nil {
		src = NewSource()
	}

	handles, err := src.Processes(ctx)
	if err != nil {
		slog.Warn("failed to enumerate processes", "error", err)
		return []report.ProcessRecord{}, nil
	}

	records := make([]report.ProcessRecord, 0, len(handles))
	skipped := 0
	for _, h := range handles {
		if ctx.Err() != nil {
			break
		}
		rec, err := read(ctx, h)
		if err != nil {
			skipped++
			slog.Debug("skipping process", "pid", h.PID(), "error", err)
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].PID < records[j].PID })

	slog.Debug("collected running processes", "count", len(records), "skipped", skipped)
	return records, nil
}

// read builds a record for one process. A non-nil error means the process
// must be skipped.
func read(ctx context.Context, h Handle) (report.ProcessRecord, error) {
	rec := report.ProcessRecord{PID: h.PID()}

	name, err := h.Name(ctx)
	switch {
	case err == nil:
		rec.Name = name
	case skippable(err):
		return rec, recordError(h.PID(), "failed to read process name", err)
	default:
		rec.Name = unknownName
	}

	status, err := h.Status(ctx)
	switch {
	case err == nil:
		rec.Status = status
	case skippable(err):
		return rec, recordError(h.PID(), "failed to read process status", err)
	default:
		rec.Status = unknownStatus
	}
	if isZombie(rec.Status) {
		return rec, errors.NewWithContext(errors.ErrCodeRecord, "zombie process",
			map[string]any{"pid": h.PID()})
	}

	if v, err := h.CPUPercent(ctx); err == nil {
		rec.CPUPercent = ptr.To(report.ClampPercent(v))
	} else if skippable(err) {
		return rec, recordError(h.PID(), "failed to read CPU usage", err)
	}

	if v, err := h.MemoryPercent(ctx); err == nil {
		rec.MemoryPercent = ptr.To(report.ClampPercent(v))
	} else if skippable(err) {
		return rec, recordError(h.PID(), "failed to read memory usage", err)
	}

	return rec, nil
}

// skippable reports whether err means the process vanished or denies access.
func skippable(err error) bool {
	return stderrors.Is(err, psprocess.ErrorProcessNotRunning) ||
		stderrors.Is(err, os.ErrPermission) ||
		stderrors.Is(err, fs.ErrNotExist)
}

func isZombie(status string) bool {
	for _, s := range strings.Split(status, ",") {
		if s == psprocess.Zombie {
			return true
		}
	}
	return false
}

func recordError(pid int32, msg string, err error) error {
	return errors.WrapWithContext(errors.ErrCodeRecord, msg, err, map[string]any{"pid": pid})
}
