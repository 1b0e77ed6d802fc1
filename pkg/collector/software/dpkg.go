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
	"strings"

	"github.com/NVIDIA/hostdiag/pkg/collector/file"
)

const (
	dpkgStatusPath = "/var/lib/dpkg/status"
	dpkgInstalled  = "install ok installed"
	dpkgMaxSize    = 64 << 20
)

// dpkgSource reads the dpkg status database.
type dpkgSource struct {
	path string
}

func (s dpkgSource) Entries(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.path
	if path == "" {
		path = dpkgStatusPath
	}

	blocks, err := dpkgParser().GetBlocks(path)
	if err != nil {
		return nil, err
	}
	return dpkgEntries(blocks), nil
}

func dpkgParser() *file.Parser {
	return file.NewParser(
		file.WithKVDelimiter(":"),
		file.WithMaxSize(dpkgMaxSize),
		file.WithSkipComments(false),
		file.WithReplaceInvalidUTF8(true),
	)
}

// dpkgEntries keeps only fully installed packages.
func dpkgEntries(blocks []map[string]string) []Entry {
	out := make([]Entry, 0, len(blocks))
	for _, b := range blocks {
		if strings.TrimSpace(b["Status"]) != dpkgInstalled {
			continue
		}
		out = append(out, Entry{Name: b["Package"], Version: b["Version"]})
	}
	return out
}
