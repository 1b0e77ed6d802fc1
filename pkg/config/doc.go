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

// Package config loads hostdiag settings from a YAML file.
//
// Values absent from the file keep their defaults. Unknown keys are rejected.
// Command-line flags and HOSTDIAG_* environment variables take precedence
// over the file (see pkg/cli).
//
// Example:
//
//	output: /var/tmp/system_diagnose.txt
//	logLevel: debug
//	metricsFile: /var/lib/node_exporter/hostdiag.prom
//	eventLog:
//	  name: System
//	  severities: [error, warning]
//	  maxRecords: 500
//	host:
//	  sampleWindow: 2s
//	  diskPath: /
//	collection:
//	  timeout: 45s
//	  sequential: false
package config
