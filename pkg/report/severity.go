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

package report

import (
	"fmt"
	"strings"
)

// Severity is the closed set of event severities carried by the report.
type Severity string

const (
	// SeverityError marks error events.
	SeverityError Severity = "Error"
	// SeverityWarning marks warning events.
	SeverityWarning Severity = "Warning"
)

// String returns the string representation of the Severity.
func (s Severity) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known severities.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning:
		return true
	default:
		return false
	}
}

// DefaultSeverities returns the severities collected when none are configured.
func DefaultSeverities() []Severity {
	return []Severity{SeverityError, SeverityWarning}
}

// ParseSeverity converts a case-insensitive name into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "errors":
		return SeverityError, nil
	case "warning", "warnings", "warn":
		return SeverityWarning, nil
	default:
		return "", fmt.Errorf("unknown severity %q (supported values: error, warning)", s)
	}
}

// ParseSeverities converts names into a de-duplicated severity set, preserving order.
// An empty input yields DefaultSeverities.
func ParseSeverities(names []string) ([]Severity, error) {
	if len(names) == 0 {
		return DefaultSeverities(), nil
	}

	out := make([]Severity, 0, len(names))
	seen := make(map[Severity]struct{}, len(names))
	for _, n := range names {
		s, err := ParseSeverity(n)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

// SeveritySet is a lookup set used by event log readers to filter records.
type SeveritySet map[Severity]struct{}

// NewSeveritySet builds a set from the given severities; empty input selects the
// defaults. Unknown severities are ignored.
func NewSeveritySet(sevs []Severity) SeveritySet {
	if len(sevs) == 0 {
		sevs = DefaultSeverities()
	}
	set := make(SeveritySet, len(sevs))
	for _, s := range sevs {
		if s.IsValid() {
			set[s] = struct{}{}
		}
	}
	return set
}

// Has reports whether s is in the set.
func (ss SeveritySet) Has(s Severity) bool {
	_, ok := ss[s]
	return ok
}
