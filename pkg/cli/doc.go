// Package cli implements the command-line interface of the hostdiag tool.
//
// # Overview
//
// hostdiag captures a one-shot diagnostic report of the local machine and
// writes it as plain text. It is meant for support engineers and operators
// who need a quick picture of a host without installing an agent.
//
// # Usage
//
//	hostdiag [--output FILE|-] [--config FILE] [--event-log NAME]
//	         [--severity error|warning]... [--max-events N]
//	         [--sample-window DURATION] [--disk-path PATH]
//	         [--collector-timeout DURATION] [--sequential]
//	         [--metrics-file FILE] [--log-level LEVEL]
//
// The report goes to system_diagnose.txt in the working directory unless
// --output says otherwise. The file is replaced atomically.
//
// # Configuration
//
// Settings are resolved in this order, later wins:
//
//  1. Built-in defaults
//  2. The YAML file named by --config
//  3. HOSTDIAG_* environment variables
//  4. Command-line flags
//
// # Environment Variables
//
//	HOSTDIAG_CONFIG             Config file path
//	HOSTDIAG_OUTPUT             Report path, - for stdout
//	HOSTDIAG_EVENT_LOG          Event log name
//	HOSTDIAG_SEVERITY           Comma-separated severities
//	HOSTDIAG_MAX_EVENTS         Event record cap
//	HOSTDIAG_SAMPLE_WINDOW      CPU sample window
//	HOSTDIAG_DISK_PATH          Disk usage path
//	HOSTDIAG_COLLECTOR_TIMEOUT  Timeout for every collector
//	HOSTDIAG_SEQUENTIAL         Run collectors sequentially
//	HOSTDIAG_METRICS_FILE       Prometheus text output
//	LOG_LEVEL                   Logging verbosity (debug, info, warn, error)
//
// # Exit Codes
//
//	0  Report written
//	1  Invalid configuration or the report could not be written
//
// Collector failures do not change the exit code; they show up as
// "unavailable" values or empty sections in the report.
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/hostdiag/pkg/cli.version=1.0.0'"
package cli
