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

// Package host collects hardware and operating system identity together with
// point-in-time CPU, memory, disk and network state.
//
// The Collector talks to the platform through the System interface; the
// default implementation is backed by gopsutil. Any mandatory query failing
// makes the whole collection fail with an UNAVAILABLE structured error. A
// missing or unreadable battery is not a failure and leaves Battery nil.
//
// CPU utilization is sampled over SampleWindow (at least one second), so
// Collect always blocks for at least that long.
package host
