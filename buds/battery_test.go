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

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBatteryStatus tests combined-level computation and display collapse.
func TestBatteryStatus(t *testing.T) {
	threshold := ThresholdOptions{Enabled: true, Drift: 3}

	tests := []struct {
		name         string
		left, right  int
		pl, pr       Placement
		opts         ThresholdOptions
		wantDisplay  string
		wantCombined int
	}{
		{
			name: "drift above threshold shows both levels",
			left: 53, right: 48,
			pl: PlacementWearing, pr: PlacementWearing,
			opts:        threshold,
			wantDisplay: "53 48", wantCombined: 48,
		},
		{
			name: "equal levels collapse to single number",
			left: 48, right: 48,
			pl: PlacementWearing, pr: PlacementWearing,
			opts:        threshold,
			wantDisplay: "48", wantCombined: 48,
		},
		{
			name: "drift exactly at threshold still collapses",
			left: 51, right: 48,
			pl: PlacementIdle, pr: PlacementWearing,
			opts:        threshold,
			wantDisplay: "48", wantCombined: 48,
		},
		{
			name: "drift one past threshold shows both",
			left: 52, right: 48,
			pl: PlacementWearing, pr: PlacementWearing,
			opts:        threshold,
			wantDisplay: "52 48", wantCombined: 48,
		},
		{
			name: "cased bud forces both levels even within threshold",
			left: 49, right: 48,
			pl: PlacementInCase, pr: PlacementWearing,
			opts:        threshold,
			wantDisplay: "49 48", wantCombined: 48,
		},
		{
			name: "depleted left inverts combined to surviving bud",
			left: 0, right: 9,
			pl: PlacementWearing, pr: PlacementWearing,
			opts:        threshold,
			wantDisplay: "0 9", wantCombined: 9,
		},
		{
			name: "depleted right inverts combined to surviving bud",
			left: 72, right: 0,
			pl: PlacementWearing, pr: PlacementIdle,
			opts:        threshold,
			wantDisplay: "72 0", wantCombined: 72,
		},
		{
			name: "threshold disabled always shows both",
			left: 50, right: 50,
			pl: PlacementWearing, pr: PlacementWearing,
			opts:        ThresholdOptions{},
			wantDisplay: "50 50", wantCombined: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			display, combined := BatteryStatus(tt.left, tt.right, tt.pl, tt.pr, tt.opts)
			assert.Equal(t, tt.wantDisplay, display)
			assert.Equal(t, tt.wantCombined, combined)
		})
	}
}

// TestBatteryStatusCollapseProperty sweeps drift around the threshold and
// checks the single-number/both-numbers boundary.
func TestBatteryStatusCollapseProperty(t *testing.T) {
	const threshold = 5
	opts := ThresholdOptions{Enabled: true, Drift: threshold}

	for drift := 0; drift <= 2*threshold+1; drift++ {
		left := 80
		right := 80 - drift
		display, combined := BatteryStatus(left, right, PlacementWearing, PlacementWearing, opts)

		assert.Equal(t, right, combined, "combined is min while both > 0")
		if drift <= threshold {
			assert.Equal(t, fmt.Sprintf("%d", combined), display, "drift %d collapses", drift)
		} else {
			assert.Equal(t, fmt.Sprintf("%d %d", left, right), display, "drift %d shows both", drift)
		}
	}
}

// TestCaseDisplay tests the case battery suffix resolution.
func TestCaseDisplay(t *testing.T) {
	tests := []struct {
		name    string
		caseBat int
		pl, pr  Placement
		want    string
	}{
		{
			name:    "left bud in case shows suffix",
			caseBat: 82,
			pl:      PlacementInCase, pr: PlacementWearing,
			want: " 82C",
		},
		{
			name:    "right bud in case shows suffix",
			caseBat: 61,
			pl:      PlacementIdle, pr: PlacementInCase,
			want: " 61C",
		},
		{
			name:    "both buds in case still shows suffix",
			caseBat: 90,
			pl:      PlacementInCase, pr: PlacementInCase,
			want: " 90C",
		},
		{
			name:    "no bud in case hides suffix",
			caseBat: 75,
			pl:      PlacementWearing, pr: PlacementIdle,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CaseDisplay(tt.caseBat, tt.pl, tt.pr, "C"))
		})
	}
}
