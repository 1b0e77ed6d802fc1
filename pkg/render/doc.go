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

// Package render turns a DiagnosticReport into the lines of the text report.
//
// # Layout
//
// Sections appear in a fixed order and are delimited by a rule of 40 "="
// characters:
//
//	System diagnostic report - 2024-03-01 10:00:00.000000
//	========================================
//	System: Linux
//	========================================
//	...
//	Network interfaces:
//	  eth0: 192.168.1.20
//	========================================
//
//	Error and warning events:
//	========================================
//	no warnings or errors found
//
//	Running processes:
//	========================================
//	Name: init, PID: 1, CPU usage: 0.0%, RAM usage: 0.1%, Status: sleep
//	========================================
//
//	Installed programs:
//	========================================
//	Program name: bash, Version: 5.2.21
//	========================================
//
// Byte counts are shown in GB with two decimals and percentages with one.
// Values that could not be read are shown as "n/a". Network interfaces are
// sorted by name; every other list keeps the order of the report.
//
// Render performs no I/O and reads no clock, so equal reports always
// produce equal output.
package render
