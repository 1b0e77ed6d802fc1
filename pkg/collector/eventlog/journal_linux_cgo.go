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

//go:build linux && cgo

package eventlog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/coreos/go-systemd/v22/sdjournal"
)

func newReader() Reader {
	return &journalReader{}
}

// journalReader reads the systemd journal through libsystemd.
type journalReader struct{}

func (r *journalReader) Read(ctx context.Context, q Query, visit func(Entry) bool) error {
	j, err := sdjournal.NewJournal()
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer j.Close()

	if err := addMatches(j, q); err != nil {
		return err
	}

	if err := j.SeekTail(); err != nil {
		return fmt.Errorf("failed to seek journal tail: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := j.Previous()
		if err != nil {
			return fmt.Errorf("failed to step journal: %w", err)
		}
		if n == 0 {
			return nil
		}

		je, err := j.GetEntry()
		if err != nil {
			if !visit(Entry{Err: fmt.Errorf("failed to read journal entry: %w", err)}) {
				return nil
			}
			continue
		}

		if !visit(journalEntry(je.Fields, strconv.FormatUint(je.RealtimeTimestamp, 10))) {
			return nil
		}
	}
}

// addMatches restricts the journal to the requested priorities and identifier.
// Matches on the same field are OR-ed by journald, different fields are AND-ed.
func addMatches(j *sdjournal.Journal, q Query) error {
	if lo, hi, ok := priorityRange(q.Severities); ok {
		for p := lo; p <= hi; p++ {
			m := sdjournal.Match{Field: sdjournal.SD_JOURNAL_FIELD_PRIORITY, Value: strconv.Itoa(p)}
			if err := j.AddMatch(m.String()); err != nil {
				return fmt.Errorf("failed to add priority match: %w", err)
			}
		}
	}
	if q.LogName != "" && q.LogName != systemLog {
		m := sdjournal.Match{Field: sdjournal.SD_JOURNAL_FIELD_SYSLOG_IDENTIFIER, Value: q.LogName}
		if err := j.AddMatch(m.String()); err != nil {
			return fmt.Errorf("failed to add identifier match: %w", err)
		}
	}
	return nil
}
