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

// Package types defines the core data structures for chime's configuration.
package types

// BudsConfig represents /etc/chime/buds.json, the earbuds status widget
// settings.
type BudsConfig struct {
	Format            string `json:"format"`              // Status line template
	Interval          int    `json:"interval"`            // Poll interval in seconds
	Binary            string `json:"binary,omitempty"`    // Path to the earbuds CLI (default: "earbuds" from $PATH)
	WearingGlyph      string `json:"wearing_glyph"`       // Placement glyph: bud is worn
	IdleGlyph         string `json:"idle_glyph"`          // Placement glyph: bud is out but idle
	CaseGlyph         string `json:"case_glyph"`          // Placement glyph: bud is in the case
	CaseBatterySymbol string `json:"case_battery_symbol"` // Suffix after the case battery percentage
	UseDriftThreshold bool   `json:"use_drift_threshold"` // Collapse near-equal sides to one number
	DriftThreshold    int    `json:"drift_threshold"`     // Max left/right difference to collapse (and notify band width)
	DynamicColor      bool   `json:"dynamic_color"`       // Color the line by combined battery level
	StartColor        string `json:"start_color"`         // Gradient color at full battery
	EndColor          string `json:"end_color"`           // Gradient color at empty battery
	Color             string `json:"color"`               // Line color when dynamic color is off
	DisconnectedColor string `json:"disconnected_color"`  // Line color when no device is connected
	BatteryLimit      int    `json:"battery_limit"`       // Level at which the gradient saturates
	Notifications     bool   `json:"notifications"`       // Desktop notifications for drift and convergence
	NotifyCooldownMS  int    `json:"notify_cooldown_ms"`  // Suppress identical repeat notifications for this long (0 = never suppress)
	HideNoDevice      bool   `json:"hide_no_device"`      // Emit an empty line instead of "Disconnected"
	Version           string `json:"version"`
}

// HistoryConfig represents the battery history store settings.
type HistoryConfig struct {
	Enabled       bool   `json:"enabled"`        // Record battery samples
	Path          string `json:"path,omitempty"` // SQLite database path (default: <config dir>/history.db)
	RetentionDays int    `json:"retention_days"` // Samples older than this are pruned
}
