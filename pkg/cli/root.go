/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostdiag/pkg/defaults"
	"github.com/NVIDIA/hostdiag/pkg/logging"
)

const (
	name           = "hostdiag"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the root command with the process arguments.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, defaults.CLIRunTimeout)
	defer cancel()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Capture a point-in-time diagnostic report of this host",
		Description: `Collect a one-shot diagnostic report of the local machine:
  - Host identity, CPU, memory, disk, network interfaces and battery
  - Recent warning and error entries of the system event log
  - Running processes with CPU and memory usage
  - Installed software packages

Every collector runs once. A collector that fails or times out degrades its
section of the report and never aborts the run. Only a failure to write the
report is fatal.

# Examples

Write the report to system_diagnose.txt in the working directory:
  hostdiag

Print the report to stdout:
  hostdiag --output -

Only errors, at most 50 records, sampling CPU for 3 seconds:
  hostdiag --severity error --max-events 50 --sample-window 3s

Load settings from a file, overriding the output:
  hostdiag --config hostdiag.yaml --output /tmp/report.txt`,
		Flags:    diagnoseFlags(),
		Commands: []*cli.Command{versionCmd()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
				"logLevel", cfg.LogLevel)

			return runDiagnose(ctx, cfg)
		},
	}
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(cmd.Root().Writer, "%s %s\ncommit: %s\nbuilt:  %s\n", name, version, commit, date)
			return err
		},
	}
}
