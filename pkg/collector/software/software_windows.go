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
	"fmt"
	"log/slog"

	"golang.org/x/sys/windows/registry"
)

// uninstallKeys are the native and 32-bit views of the uninstall inventory.
var uninstallKeys = []string{
	`SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`,
	`SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`,
}

func newSource() Source {
	return registrySource{root: registry.LOCAL_MACHINE, paths: uninstallKeys}
}

// registrySource reads program entries from Uninstall registry keys.
type registrySource struct {
	root  registry.Key
	paths []string
}

func (s registrySource) Entries(ctx context.Context) ([]Entry, error) {
	var (
		out   []Entry
		found bool
	)
	for _, path := range s.paths {
		entries, err := s.readKey(ctx, path)
		if err != nil {
			if stderrors.Is(err, registry.ErrNotExist) {
				slog.Debug("uninstall key not found", "key", path)
				continue
			}
			return nil, err
		}
		found = true
		out = append(out, entries...)
	}
	if !found {
		return nil, fmt.Errorf("no uninstall key present: %w", registry.ErrNotExist)
	}
	return out, nil
}

func (s registrySource) readKey(ctx context.Context, path string) ([]Entry, error) {
	k, err := registry.OpenKey(s.root, path, registry.ENUMERATE_SUB_KEYS|registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer k.Close()

	names, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", path, err)
	}

	out := make([]Entry, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sub, err := registry.OpenKey(k, name, registry.QUERY_VALUE)
		if err != nil {
			slog.Debug("skipping unreadable uninstall entry", "key", name, "error", err)
			continue
		}
		display, _, _ := sub.GetStringValue("DisplayName")
		version, _, _ := sub.GetStringValue("DisplayVersion")
		sub.Close()

		out = append(out, Entry{Name: display, Version: version})
	}
	return out, nil
}
