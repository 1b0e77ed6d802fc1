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

package software

import (
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"k8s.io/utils/ptr"

	"github.com/NVIDIA/hostdiag/pkg/errors"
	"github.com/NVIDIA/hostdiag/pkg/report"
)

// Entry is a raw inventory entry as the platform stores it.
type Entry struct {
	Name    string
	Version string
}

// Source reads the platform inventory. An error matching fs.ErrNotExist
// means the inventory root does not exist.
type Source interface {
	Entries(ctx context.Context) ([]Entry, error)
}

// Collector lists installed programs.
type Collector struct {
	// Source is the platform inventory. If nil, the native source is used.
	Source Source
}

// Collect returns installed programs sorted by name. Entries without a name
// are dropped and exact duplicates are merged.
func (c *Collector) Collect(ctx context.Context) ([]report.InstalledProgram, error) {
	slog.Info("collecting installed programs")

	src := c.Source
	if src == nil {
		src = newSource()
	}

	entries, err := src.Entries(ctx)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			slog.Debug("software inventory not found", "error", err)
			return []report.InstalledProgram{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to read software inventory", err)
	}

	programs := normalize(entries)
	slog.Debug("collected installed programs", "count", len(programs))
	return programs, nil
}

func normalize(entries []Entry) []report.InstalledProgram {
	type key struct{ name, version string }
	seen := make(map[key]struct{}, len(entries))

	out := make([]report.InstalledProgram, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		version := strings.TrimSpace(e.Version)

		k := key{name, version}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		p := report.InstalledProgram{Name: name}
		if version != "" {
			p.Version = ptr.To(version)
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return ptr.Deref(out[i].Version, "") < ptr.Deref(out[j].Version, "")
	})
	return out
}
