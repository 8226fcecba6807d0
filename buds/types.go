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

// Package buds implements the per-poll reconciliation logic for a pair of
// wireless earbuds: combined battery computation, drift and convergence
// notifications, equalizer mode cycling, placement glyphs, and the battery
// color gradient. Every function here is a pure function of its inputs;
// the package holds no state between polls.
package buds

// Placement is the physical state of a single earbud. The wire codes match
// the LiveBudsCli status payload (1=wearing, 2=idle, 3=in case).
type Placement int

const (
	PlacementWearing Placement = 1
	PlacementIdle    Placement = 2
	PlacementInCase  Placement = 3
)

// String returns the canonical name for the placement, or "unknown" for
// out-of-range codes.
func (p Placement) String() string {
	switch p {
	case PlacementWearing:
		return "wearing"
	case PlacementIdle:
		return "idle"
	case PlacementInCase:
		return "case"
	default:
		return "unknown"
	}
}

// Valid reports whether p is one of the three recognized placement codes.
func (p Placement) Valid() bool {
	return p == PlacementWearing || p == PlacementIdle || p == PlacementInCase
}

// TouchpadLock mirrors the tab_lock_status block of the status payload.
// The touchpad counts as locked when both gestures are off.
type TouchpadLock struct {
	TapOn          bool `json:"tap_on"`
	TouchAndHoldOn bool `json:"touch_an_hold_on"`
}

// Locked reports whether both touchpad gestures are disabled.
func (t TouchpadLock) Locked() bool {
	return !t.TapOn && !t.TouchAndHoldOn
}

// DeviceSnapshot is one poll's view of the device. It is produced fresh
// each cycle by the earbuds client and owned by that cycle; nothing in
// this package retains it.
type DeviceSnapshot struct {
	LeftBattery    int           `json:"left_battery"`
	RightBattery   int           `json:"right_battery"`
	CaseBattery    int           `json:"case_battery"`
	PlacementLeft  Placement     `json:"placement_left"`
	PlacementRight Placement     `json:"placement_right"`
	Equalizer      EqualizerMode `json:"equalizer"`
	AmbientSound   bool          `json:"ambient_sound"`
	NoiseReduction bool          `json:"noise_reduction"`
	Touchpad       TouchpadLock  `json:"touchpad"`
	Model          string        `json:"model"`
}

// AnyInCase reports whether at least one bud rests in the charging case.
func (s *DeviceSnapshot) AnyInCase() bool {
	return s.PlacementLeft == PlacementInCase || s.PlacementRight == PlacementInCase
}

// BothInCase reports whether both buds rest in the charging case.
func (s *DeviceSnapshot) BothInCase() bool {
	return s.PlacementLeft == PlacementInCase && s.PlacementRight == PlacementInCase
}
