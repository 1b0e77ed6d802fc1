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

// Package serializer writes rendered report lines to their destination.
//
// # Core Types
//
// Sink: Interface for persisting an ordered list of lines
//
//	type Sink interface {
//	    WriteLines(ctx context.Context, lines []string) error
//	}
//
// FileWriter: Atomic file output. Lines are written to a temporary file in the
// destination directory, flushed, synced and renamed over the target. On any
// failure the temporary file is removed, so a partial report never replaces
// the target.
//
// Writer: Stream output to any io.Writer, os.Stdout by default.
//
// # Usage
//
// Write to a file, or to stdout when the path is empty or "-":
//
//	sink := serializer.NewFileWriterOrStdout("system_diagnose.txt")
//	if err := sink.WriteLines(ctx, lines); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Every failure is a structured error with code SINK (see pkg/errors). Sink
// failures are the only fatal errors of a diagnostic run.
package serializer
