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
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/NVIDIA/hostdiag/pkg/errors"
	"github.com/NVIDIA/hostdiag/pkg/report"
)

// Journal field names.
const (
	fieldMessage    = "MESSAGE"
	fieldPriority   = "PRIORITY"
	fieldIdentifier = "SYSLOG_IDENTIFIER"
	fieldComm       = "_COMM"
	fieldTransport  = "_TRANSPORT"
	fieldRealtime   = "__REALTIME_TIMESTAMP"
)

const unknownSource = "unknown"

// systemLog is the log name that selects the whole journal.
const systemLog = "System"

// journalEntry converts journal fields into an Entry. realtime is the entry
// timestamp in microseconds since the epoch, as journald renders it.
func journalEntry(fields map[string]string, realtime string) Entry {
	raw, ok := fields[fieldPriority]
	if !ok {
		return Entry{Err: errors.New(errors.ErrCodeRecord, "journal entry has no priority")}
	}
	prio, err := strconv.Atoi(raw)
	if err != nil {
		return Entry{Err: errors.Wrap(errors.ErrCodeRecord, "invalid journal priority", err)}
	}

	msg, ok := fields[fieldMessage]
	if !ok {
		return Entry{Err: errors.New(errors.ErrCodeRecord, "journal entry has no message")}
	}

	rec := report.EventLogRecord{
		Source:      journalSource(fields),
		Description: msg,
	}
	rec.Severity, _ = SeverityFromPriority(prio)

	if usec, err := strconv.ParseInt(realtime, 10, 64); err == nil && usec > 0 {
		rec.Time = time.UnixMicro(usec)
	} else {
		rec.RawTime = realtime
	}

	return Entry{Record: rec}
}

func journalSource(fields map[string]string) string {
	if v := fields[fieldIdentifier]; v != "" {
		return v
	}
	if fields[fieldTransport] == "kernel" {
		return "kernel"
	}
	if v := fields[fieldComm]; v != "" {
		return v
	}
	return unknownSource
}

// parseJournalJSON decodes one line of `journalctl --output=json`. Fields that
// journald renders as byte arrays are ignored, except MESSAGE which makes the
// record undecodable.
func parseJournalJSON(line []byte) Entry {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(line, &raw); err != nil {
		return Entry{Err: errors.Wrap(errors.ErrCodeRecord, "invalid journal JSON", err)}
	}

	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			if k == fieldMessage {
				return Entry{Err: errors.Wrap(errors.ErrCodeRecord,
					fmt.Sprintf("journal field %s is not text", k), err)}
			}
			continue
		}
		fields[k] = s
	}

	return journalEntry(fields, fields[fieldRealtime])
}

// journalctlArgs builds the journalctl invocation for q.
func journalctlArgs(q Query) []string {
	args := []string{"--output=json", "--reverse", "--no-pager", "--quiet"}
	if lo, hi, ok := priorityRange(q.Severities); ok {
		args = append(args, fmt.Sprintf("--priority=%d..%d", lo, hi))
	}
	if q.LogName != "" && q.LogName != systemLog {
		args = append(args, "--identifier="+q.LogName)
	}
	return args
}
