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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostdiag/pkg/errors"
	"github.com/NVIDIA/hostdiag/pkg/report"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hostdiag.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "system_diagnose.txt", cfg.Output)
	assert.Equal(t, 1000, cfg.EventLog.MaxRecords)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
output: "-"
logLevel: debug
eventLog:
  name: Application
  severities: [error]
  maxRecords: 0
host:
  sampleWindow: 2s
collection:
  timeout: 45s
  sequential: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "-", cfg.Output)
	assert.True(t, cfg.WritesToStdout())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Application", cfg.EventLog.Name)
	assert.Equal(t, 0, cfg.EventLog.MaxRecords)
	assert.Equal(t, 2*time.Second, cfg.Host.SampleWindow)
	assert.Equal(t, "/", cfg.Host.DiskPath)
	assert.Equal(t, 45*time.Second, cfg.Collection.Timeout)
	assert.True(t, cfg.Collection.Sequential)

	sevs, err := cfg.Severities()
	require.NoError(t, err)
	assert.Equal(t, []report.Severity{report.SeverityError}, sevs)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown key":       "outputs: report.txt\n",
		"bad yaml":          "output: [\n",
		"bad duration":      "host:\n  sampleWindow: soon\n",
		"unknown severity":  "eventLog:\n  severities: [critical]\n",
		"negative max":      "eventLog:\n  maxRecords: -1\n",
		"negative timeout":  "collection:\n  timeout: -5s\n",
		"negative sampling": "host:\n  sampleWindow: -1s\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest), "got %v", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestConfig_WritesToStdout(t *testing.T) {
	assert.True(t, (&Config{}).WritesToStdout())
	assert.True(t, (&Config{Output: "-"}).WritesToStdout())
	assert.False(t, (&Config{Output: "report.txt"}).WritesToStdout())
}
