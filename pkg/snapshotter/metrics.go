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

package snapshotter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess  = "success"
	statusDegraded = "degraded"
	statusError    = "error"
)

var (
	// Report collection metrics
	snapshotCollectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hostdiag_collection_duration_seconds",
			Help:    "Time taken to collect a complete diagnostic report",
			Buckets: []float64{1, 2, 5, 10, 30, 60, 120},
		},
	)

	snapshotMeasureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostdiag_measure_total",
			Help: "Total number of collect, render and write runs",
		},
		[]string{"status"}, // success or error
	)

	snapshotCollectorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hostdiag_collector_duration_seconds",
			Help:    "Time taken by individual collectors",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"collector"}, // host, eventlog, process, software
	)

	snapshotCollectorTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostdiag_collector_total",
			Help: "Total number of collector invocations",
		},
		[]string{"collector", "status"}, // success or degraded
	)

	snapshotRecordCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hostdiag_report_records",
			Help: "Number of records per section in the last collected report",
		},
		[]string{"section"}, // events, processes, programs, interfaces
	)
)
