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

// Package report defines the structured model of a diagnostic run.
//
// A DiagnosticReport is the aggregate root: exactly one HostSnapshot, the
// matching event log records (most recent first), the readable processes and
// the installed program inventory, stamped with the time generation started.
// Values are built once by the snapshotter and only read afterwards.
//
// Optional values use nil pointers as the explicit "absent" marker so that a
// real zero (0% CPU, empty version string) is never confused with missing data.
package report
