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

//go:build linux && !cgo

package eventlog

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
)

// maxJournalLine bounds a single JSON record; journald caps fields well below this.
const maxJournalLine = 4 << 20

func newReader() Reader {
	return &journalctlReader{binary: "journalctl"}
}

// journalctlReader reads the journal through the journalctl binary when the
// build has no cgo and libsystemd cannot be linked.
type journalctlReader struct {
	binary string
}

func (r *journalctlReader) Read(ctx context.Context, q Query, visit func(Entry) bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.binary, journalctlArgs(q)...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to attach to journalctl: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start journalctl: %w", err)
	}

	sc := bufio.NewScanner(out)
	sc.Buffer(make([]byte, 0, 64*1024), maxJournalLine)

	stopped := false
	for sc.Scan() {
		if !visit(parseJournalJSON(sc.Bytes())) {
			stopped = true
			break
		}
	}
	scanErr := sc.Err()

	if stopped || scanErr != nil {
		// journalctl may block on a full pipe once reading stops.
		cancel()
		_ = cmd.Wait()
		if scanErr != nil {
			return fmt.Errorf("failed to read journalctl output: %w", scanErr)
		}
		return nil
	}

	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("journalctl failed: %w", err)
	}
	return nil
}
