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
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/NVIDIA/hostdiag/pkg/errors"
	"github.com/NVIDIA/hostdiag/pkg/report"
)

// EVENTLOGRECORD fixed header layout.
const (
	evtHeaderSize      = 56
	evtSignature       = 0x654c664c // "LfLe"
	offLength          = 0
	offReserved        = 4
	offRecordNumber    = 8
	offTimeGenerated   = 12
	offEventID         = 20
	offEventType       = 24
	offNumStrings      = 26
	offStringOffset    = 36
	eventIDDisplayMask = 0xFFFF
)

// classicRecord is one decoded EVENTLOGRECORD.
type classicRecord struct {
	RecordNumber  uint32
	TimeGenerated uint32
	EventID       uint32
	EventType     uint16
	Source        string
	Strings       []string
}

// DisplayID is the event ID as shown by Event Viewer.
func (r classicRecord) DisplayID() uint32 {
	return r.EventID & eventIDDisplayMask
}

// parseClassicRecords splits a ReadEventLogW buffer into records. A record
// whose header is corrupt ends parsing since the next offset cannot be trusted.
func parseClassicRecords(buf []byte) ([]classicRecord, error) {
	var out []classicRecord
	for len(buf) > 0 {
		if len(buf) < evtHeaderSize {
			return out, errors.New(errors.ErrCodeRecord, "truncated event record header")
		}
		le := binary.LittleEndian
		length := le.Uint32(buf[offLength:])
		if length < evtHeaderSize || int(length) > len(buf) {
			return out, errors.NewWithContext(errors.ErrCodeRecord, "invalid event record length",
				map[string]any{"length": length})
		}
		if le.Uint32(buf[offReserved:]) != evtSignature {
			return out, errors.New(errors.ErrCodeRecord, "invalid event record signature")
		}
		rec := buf[:length]

		r := classicRecord{
			RecordNumber:  le.Uint32(rec[offRecordNumber:]),
			TimeGenerated: le.Uint32(rec[offTimeGenerated:]),
			EventID:       le.Uint32(rec[offEventID:]),
			EventType:     le.Uint16(rec[offEventType:]),
		}
		r.Source, _ = utf16z(rec[evtHeaderSize:])

		n := int(le.Uint16(rec[offNumStrings:]))
		strOff := int(le.Uint32(rec[offStringOffset:]))
		if n > 0 && strOff >= evtHeaderSize && strOff < len(rec) {
			rest := rec[strOff:]
			for i := 0; i < n && len(rest) > 0; i++ {
				s, used := utf16z(rest)
				r.Strings = append(r.Strings, s)
				rest = rest[used:]
			}
		}

		out = append(out, r)
		buf = buf[length:]
	}
	return out, nil
}

// utf16z decodes a NUL-terminated little-endian UTF-16 string and returns it
// with the number of bytes consumed including the terminator.
func utf16z(b []byte) (string, int) {
	var u []uint16
	i := 0
	for ; i+1 < len(b); i += 2 {
		c := binary.LittleEndian.Uint16(b[i:])
		if c == 0 {
			return string(utf16.Decode(u)), i + 2
		}
		u = append(u, c)
	}
	return string(utf16.Decode(u)), len(b)
}

// classicEntry converts a decoded record. describe renders the message from the
// source's message file; when it fails a fallback built from the insertion
// strings is used.
func classicEntry(r classicRecord, describe func(classicRecord) (string, error)) Entry {
	rec := report.EventLogRecord{
		Source: r.Source,
	}
	if rec.Source == "" {
		rec.Source = unknownSource
	}
	rec.Severity, _ = SeverityFromEventType(r.EventType)

	if r.TimeGenerated > 0 {
		rec.Time = time.Unix(int64(r.TimeGenerated), 0)
	} else {
		rec.RawTime = strconv.FormatUint(uint64(r.TimeGenerated), 10)
	}

	if describe != nil {
		if msg, err := describe(r); err == nil && msg != "" {
			rec.Description = strings.TrimSpace(msg)
			return Entry{Record: rec}
		}
	}
	rec.Description = fallbackDescription(r)
	return Entry{Record: rec}
}

func fallbackDescription(r classicRecord) string {
	msg := fmt.Sprintf("The description for Event ID %d in source %s could not be found.",
		r.DisplayID(), r.Source)
	if len(r.Strings) > 0 {
		msg += " Insertion strings: " + strings.Join(r.Strings, ", ")
	}
	return msg
}
