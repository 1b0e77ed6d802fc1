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

package eventlog

import (
	"context"
	"log/slog"

	"github.com/NVIDIA/hostdiag/pkg/defaults"
	"github.com/NVIDIA/hostdiag/pkg/errors"
	"github.com/NVIDIA/hostdiag/pkg/report"
)

// Entry is a single decoded native record. Err is set when the record could
// not be decoded; such entries are skipped.
type Entry struct {
	Record report.EventLogRecord
	Err    error
}

// Query selects the records a Reader produces.
type Query struct {
	LogName    string
	Severities report.SeveritySet
}

// Reader walks a native event log backwards, calling visit once per record
// until the log is exhausted or visit returns false. An error returned by
// Read means the log could not be opened or read at all.
type Reader interface {
	Read(ctx context.Context, q Query, visit func(Entry) bool) error
}

// Collector reads error and warning records from the system event log.
type Collector struct {
	// LogName is the log to read. Defaults to "System".
	LogName string

	// Severities restricts the returned records. Defaults to Error and Warning.
	Severities []report.Severity

	// MaxRecords caps the number of returned records. Zero means unlimited.
	MaxRecords int

	// Reader is the platform reader. If nil, the native reader is used.
	Reader Reader
}

// Collect returns matching records, most recent first.
func (c *Collector) Collect(ctx context.Context) ([]report.EventLogRecord, error) {
	q := Query{
		LogName:    c.LogName,
		Severities: report.NewSeveritySet(c.Severities),
	}
	if q.LogName == "" {
		q.LogName = defaults.EventLogName
	}
	if len(c.Severities) == 0 {
		q.Severities = report.NewSeveritySet(report.DefaultSeverities())
	}

	slog.Info("collecting event log records", "log", q.LogName, "max", c.MaxRecords)

	r := c.Reader
	if r == nil {
		r = newReader()
	}

	records := make([]report.EventLogRecord, 0)
	skipped := 0
	err := r.Read(ctx, q, func(e Entry) bool {
		if e.Err != nil {
			skipped++
			slog.Debug("skipping event log record", "log", q.LogName, "error", e.Err)
			return true
		}
		if !q.Severities.Has(e.Record.Severity) {
			return true
		}
		records = append(records, e.Record)
		return c.MaxRecords <= 0 || len(records) < c.MaxRecords
	})
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeUnavailable, "failed to read event log",
			err, map[string]any{"log": q.LogName})
	}

	slog.Debug("collected event log records", "log", q.LogName,
		"count", len(records), "skipped", skipped)
	return records, nil
}

// Classic Windows event types.
const (
	EventTypeError       uint16 = 0x0001
	EventTypeWarning     uint16 = 0x0002
	EventTypeInformation uint16 = 0x0004
	EventTypeAuditOK     uint16 = 0x0008
	EventTypeAuditFail   uint16 = 0x0010
)

// SeverityFromEventType maps a Windows event type. Only error and warning map.
func SeverityFromEventType(t uint16) (report.Severity, bool) {
	switch t {
	case EventTypeError:
		return report.SeverityError, true
	case EventTypeWarning:
		return report.SeverityWarning, true
	case EventTypeInformation, EventTypeAuditOK, EventTypeAuditFail:
		return "", false
	default:
		return "", false
	}
}

// SeverityFromPriority maps a syslog priority (0 emerg .. 7 debug).
// Priorities 0 through 3 are errors, 4 is a warning.
func SeverityFromPriority(p int) (report.Severity, bool) {
	switch {
	case p >= 0 && p <= 3:
		return report.SeverityError, true
	case p == 4:
		return report.SeverityWarning, true
	default:
		return "", false
	}
}

// priorityRange returns the inclusive syslog priority range covering sevs.
func priorityRange(sevs report.SeveritySet) (lo, hi int, ok bool) {
	switch {
	case sevs.Has(report.SeverityError) && sevs.Has(report.SeverityWarning):
		return 0, 4, true
	case sevs.Has(report.SeverityError):
		return 0, 3, true
	case sevs.Has(report.SeverityWarning):
		return 4, 4, true
	default:
		return 0, 0, false
	}
}
