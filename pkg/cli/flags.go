/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostdiag/pkg/config"
	"github.com/NVIDIA/hostdiag/pkg/defaults"
)

const envPrefix = "HOSTDIAG_"

func diagnoseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML config file; flags and environment override its values",
			Sources: cli.EnvVars(envPrefix + "CONFIG"),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Report file path, or - for stdout",
			Sources: cli.EnvVars(envPrefix + "OUTPUT"),
			Value:   defaults.OutputFile,
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.EnvVars(envPrefix+"LOG_LEVEL", "LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:    "metrics-file",
			Usage:   "Write collection metrics in Prometheus text format to this file",
			Sources: cli.EnvVars(envPrefix + "METRICS_FILE"),
		},
		&cli.StringFlag{
			Name:    "event-log",
			Usage:   "Event log to read (System, Application, or a journal identifier)",
			Sources: cli.EnvVars(envPrefix + "EVENT_LOG"),
			Value:   defaults.EventLogName,
		},
		&cli.StringSliceFlag{
			Name:    "severity",
			Usage:   "Event severity to include, can be repeated (error, warning)",
			Sources: cli.EnvVars(envPrefix + "SEVERITY"),
		},
		&cli.IntFlag{
			Name:    "max-events",
			Usage:   "Maximum event log records in the report, 0 for unlimited",
			Sources: cli.EnvVars(envPrefix + "MAX_EVENTS"),
			Value:   defaults.EventLogMaxRecords,
		},
		&cli.DurationFlag{
			Name:    "sample-window",
			Usage:   "CPU usage sampling window, at least 1s",
			Sources: cli.EnvVars(envPrefix + "SAMPLE_WINDOW"),
			Value:   defaults.CPUSampleWindow,
		},
		&cli.StringFlag{
			Name:    "disk-path",
			Usage:   "Path whose volume is reported as disk usage",
			Sources: cli.EnvVars(envPrefix + "DISK_PATH"),
			Value:   defaults.DiskPath,
		},
		&cli.DurationFlag{
			Name:    "collector-timeout",
			Usage:   "Timeout applied to every collector, 0 keeps the per-collector defaults",
			Sources: cli.EnvVars(envPrefix + "COLLECTOR_TIMEOUT"),
		},
		&cli.BoolFlag{
			Name:    "sequential",
			Usage:   "Run collectors one after another instead of concurrently",
			Sources: cli.EnvVars(envPrefix + "SEQUENTIAL"),
		},
	}
}

// loadConfig reads the config file, if any, and applies every flag that was
// set on the command line or through the environment on top of it.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("metrics-file") {
		cfg.MetricsFile = cmd.String("metrics-file")
	}
	if cmd.IsSet("event-log") {
		cfg.EventLog.Name = cmd.String("event-log")
	}
	if cmd.IsSet("severity") {
		cfg.EventLog.Severities = cmd.StringSlice("severity")
	}
	if cmd.IsSet("max-events") {
		cfg.EventLog.MaxRecords = cmd.Int("max-events")
	}
	if cmd.IsSet("sample-window") {
		cfg.Host.SampleWindow = cmd.Duration("sample-window")
	}
	if cmd.IsSet("disk-path") {
		cfg.Host.DiskPath = cmd.String("disk-path")
	}
	if cmd.IsSet("collector-timeout") {
		cfg.Collection.Timeout = cmd.Duration("collector-timeout")
	}
	if cmd.IsSet("sequential") {
		cfg.Collection.Sequential = cmd.Bool("sequential")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
