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

package host

import (
	"context"
	stderrors "errors"

	"github.com/distatus/battery"

	"github.com/NVIDIA/hostdiag/pkg/report"
)

func readBattery(ctx context.Context) (*report.Battery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return aggregateBatteries(battery.GetAll())
}

// aggregateBatteries folds every readable battery into one state. Percent is
// the summed current charge over the summed full capacity. The machine counts
// as plugged in when any battery is charging, full or idle. No readable
// battery yields (nil, nil).
func aggregateBatteries(bats []*battery.Battery, err error) (*report.Battery, error) {
	var perBattery battery.Errors
	if err != nil && !stderrors.As(err, &perBattery) {
		return nil, err
	}

	var (
		current, full float64
		plugged       bool
		found         bool
	)
	for i, b := range bats {
		if b == nil || b.Full <= 0 {
			continue
		}
		if i < len(perBattery) && !readable(perBattery[i]) {
			continue
		}
		current += b.Current
		full += b.Full
		found = true

		switch b.State.Raw {
		case battery.Charging, battery.Full, battery.Idle:
			plugged = true
		}
	}

	if !found {
		return nil, nil
	}
	return &report.Battery{
		Percent:  current / full * 100,
		Charging: plugged,
	}, nil
}

// readable reports whether a per-battery error still leaves the charge usable.
func readable(err error) bool {
	if err == nil {
		return true
	}
	var partial battery.ErrPartial
	return stderrors.As(err, &partial) && partial.Current == nil && partial.Full == nil
}
