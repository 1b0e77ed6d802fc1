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

// Package errors provides structured error types used across the diagnostic pipeline.
//
// Every failure that crosses a package boundary carries an ErrorCode so callers can
// decide how to degrade without string matching:
//
//   - UNAVAILABLE: a data source could not be opened or queried; the orchestrator
//     substitutes a degraded value for that section.
//   - RECORD: a single record failed to parse; the adapter skips it.
//   - TIMEOUT: an adapter exceeded its budget; handled like UNAVAILABLE.
//   - SINK: the report could not be persisted; the only fatal class.
//
// Usage:
//
//	if err != nil {
//	    return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to open event log", err)
//	}
//
//	if errors.IsCode(err, errors.ErrCodeSink) {
//	    os.Exit(1)
//	}
package errors
