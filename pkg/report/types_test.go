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

package report

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FillsEmptyCollections(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := New(at, HostSnapshot{}, nil, nil, nil)

	require.NotNil(t, r)
	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, at, r.GeneratedAt)
	assert.NotNil(t, r.Host.Interfaces)
	assert.NotNil(t, r.Events)
	assert.NotNil(t, r.Processes)
	assert.NotNil(t, r.Programs)
	assert.Empty(t, r.Events)
}

func TestNew_UniqueIDs(t *testing.T) {
	a := New(time.Now(), HostSnapshot{}, nil, nil, nil)
	b := New(time.Now(), HostSnapshot{}, nil, nil, nil)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestUnavailableHost(t *testing.T) {
	h := UnavailableHost()

	assert.True(t, h.Unavailable)
	assert.Equal(t, Unavailable, h.OS)
	assert.Equal(t, Unavailable, h.Hostname)
	assert.Equal(t, Unavailable, h.CPUModel)
	assert.Empty(t, h.Interfaces)
	assert.Nil(t, h.Battery)
}

func TestClampPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{100.01, 100},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampPercent(tt.in), "ClampPercent(%v)", tt.in)
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{"error", SeverityError, false},
		{"ERROR", SeverityError, false},
		{" Warning ", SeverityWarning, false},
		{"warn", SeverityWarning, false},
		{"info", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeverity(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestParseSeverities(t *testing.T) {
	got, err := ParseSeverities(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultSeverities(), got)

	got, err = ParseSeverities([]string{"warning", "error", "WARNING"})
	require.NoError(t, err)
	assert.Equal(t, []Severity{SeverityWarning, SeverityError}, got)

	_, err = ParseSeverities([]string{"error", "critical"})
	assert.Error(t, err)
}

func TestSeveritySet(t *testing.T) {
	set := NewSeveritySet([]Severity{SeverityError})
	assert.True(t, set.Has(SeverityError))
	assert.False(t, set.Has(SeverityWarning))

	def := NewSeveritySet(nil)
	assert.True(t, def.Has(SeverityError))
	assert.True(t, def.Has(SeverityWarning))

	mixed := NewSeveritySet([]Severity{"Information", SeverityWarning})
	assert.Len(t, mixed, 1)
	assert.True(t, mixed.Has(SeverityWarning))
}

func TestSeverity_IsValid(t *testing.T) {
	assert.True(t, SeverityError.IsValid())
	assert.True(t, SeverityWarning.IsValid())
	assert.False(t, Severity("Information").IsValid())
}
