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

package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/hostdiag/pkg/defaults"
	"github.com/NVIDIA/hostdiag/pkg/errors"
	"github.com/NVIDIA/hostdiag/pkg/report"
	"github.com/NVIDIA/hostdiag/pkg/serializer"
)

// maxConfigSize bounds the config file.
const maxConfigSize = 1 << 20

// Config holds every setting of a diagnostic run.
type Config struct {
	// Output is the report path, "-" for stdout.
	Output string `yaml:"output"`

	// LogLevel is one of debug, info, warn, error. Empty defers to LOG_LEVEL.
	LogLevel string `yaml:"logLevel"`

	// MetricsFile, when set, receives the collection metrics in text format.
	MetricsFile string `yaml:"metricsFile"`

	EventLog   EventLogConfig   `yaml:"eventLog"`
	Host       HostConfig       `yaml:"host"`
	Collection CollectionConfig `yaml:"collection"`
}

// EventLogConfig selects event log records.
type EventLogConfig struct {
	Name       string   `yaml:"name"`
	Severities []string `yaml:"severities"`
	// MaxRecords caps the records kept. Zero means unlimited.
	MaxRecords int `yaml:"maxRecords"`
}

// HostConfig tunes the host collector.
type HostConfig struct {
	SampleWindow time.Duration `yaml:"sampleWindow"`
	DiskPath     string        `yaml:"diskPath"`
}

// CollectionConfig tunes the orchestrator.
type CollectionConfig struct {
	// Timeout applies to every collector. Zero keeps the per-collector defaults.
	Timeout    time.Duration `yaml:"timeout"`
	Sequential bool          `yaml:"sequential"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: defaults.OutputFile,
		EventLog: EventLogConfig{
			Name:       defaults.EventLogName,
			Severities: []string{report.SeverityError.String(), report.SeverityWarning.String()},
			MaxRecords: defaults.EventLogMaxRecords,
		},
		Host: HostConfig{
			SampleWindow: defaults.CPUSampleWindow,
			DiskPath:     defaults.DiskPath,
		},
	}
}

// Load reads the config file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to open config file",
			err, map[string]any{"path": path})
	}
	defer f.Close()

	if err := cfg.decode(io.LimitReader(f, maxConfigSize)); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to parse config file",
			err, map[string]any{"path": path})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks value ranges and severity names.
func (c *Config) Validate() error {
	if _, err := c.Severities(); err != nil {
		return err
	}
	if c.EventLog.MaxRecords < 0 {
		return invalid("eventLog.maxRecords must not be negative", c.EventLog.MaxRecords)
	}
	if c.Host.SampleWindow < 0 {
		return invalid("host.sampleWindow must not be negative", c.Host.SampleWindow)
	}
	if c.Collection.Timeout < 0 {
		return invalid("collection.timeout must not be negative", c.Collection.Timeout)
	}
	return nil
}

// Severities parses the configured severity names.
func (c *Config) Severities() ([]report.Severity, error) {
	sevs, err := report.ParseSeverities(c.EventLog.Severities)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid eventLog.severities", err)
	}
	return sevs, nil
}

// WritesToStdout reports whether the report goes to standard output.
func (c *Config) WritesToStdout() bool {
	return c.Output == "" || c.Output == serializer.StdoutURI
}

func invalid(msg string, value any) error {
	return errors.NewWithContext(errors.ErrCodeInvalidRequest, msg,
		map[string]any{"value": fmt.Sprint(value)})
}
