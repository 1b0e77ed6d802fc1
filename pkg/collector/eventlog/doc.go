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

// Package eventlog reads error and warning records from the operating system
// event history, most recent first.
//
// Platform readers:
//
//   - Windows: the classic event log through advapi32 (OpenEventLogW,
//     ReadEventLogW with backwards sequential reads).
//   - Linux with cgo: the systemd journal through go-systemd sdjournal.
//   - Linux without cgo: journalctl JSON output.
//   - Anything else: not supported, Collect fails with UNAVAILABLE.
//
// Native severities are mapped into report.Severity. Records with any other
// native severity are dropped. A record that cannot be decoded is skipped
// without failing the collection. On Linux the log name "System" selects the
// whole journal and any other name filters on SYSLOG_IDENTIFIER.
package eventlog
