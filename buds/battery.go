// Copyright (C) 2026 The Chime Authors
//
// This program is free software; you can redistribute it and/or
// modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.

package buds

import "fmt"

// ThresholdOptions controls whether the two battery readings collapse into
// a single displayed number when they are close enough.
type ThresholdOptions struct {
	// Enabled selects combined display; when false both levels are
	// always shown.
	Enabled bool
	// Drift is the maximum absolute difference still considered
	// insignificant.
	Drift int
}

// BatteryStatus reconciles the two buds' battery readings into the display
// text for the battery field and the single combined level used for
// gradient lookup.
//
// The combined level is the smaller of the two readings, unless either
// reading is exactly zero: a dead or absent bud should not drag the
// summary to zero, so the surviving bud's level wins. With thresholding
// enabled the display collapses to the combined level only while neither
// bud is in the case and the drift stays within the threshold; otherwise
// both raw levels are shown left first.
func BatteryStatus(left, right int, pl, pr Placement, opts ThresholdOptions) (string, int) {
	combined := min(left, right)
	if left == 0 || right == 0 {
		combined = max(left, right)
	}

	display := fmt.Sprintf("%d %d", left, right)
	if !opts.Enabled {
		return display, combined
	}

	drift := absDiff(left, right)
	cased := pl == PlacementInCase || pr == PlacementInCase
	if drift <= opts.Drift && !cased {
		display = fmt.Sprintf("%d", combined)
	}

	return display, combined
}

// CaseDisplay returns the case battery suffix for the status line:
// " <level><symbol>" while at least one bud rests in the case, empty
// otherwise. Display is independent of any notification decision.
func CaseDisplay(caseBattery int, pl, pr Placement, symbol string) string {
	if pl != PlacementInCase && pr != PlacementInCase {
		return ""
	}
	return fmt.Sprintf(" %d%s", caseBattery, symbol)
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
