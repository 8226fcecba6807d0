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

// Package daemon implements the Chime daemon server and IPC protocol.
package daemon

// LogFilter defines filtering criteria for log streaming
type LogFilter struct {
	Level     string `json:"level,omitempty"`     // Filter by log level (debug, info, warn, error)
	Component string `json:"component,omitempty"` // Filter by component name
}

// Request represents a command sent to the daemon
type Request struct {
	Command   string     `json:"command"` // line, snapshot, eq-set, eq-step, toggle-anc, toggle-amb, touchpad-set, connect, disconnect, restart, refresh, history, widget-list, widget-enable, widget-disable, widget-action, config-get, config-set, logs-subscribe
	Mode      string     `json:"mode,omitempty"`       // Equalizer mode name for eq-set
	Delta     int        `json:"delta,omitempty"`      // Step offset for eq-step (+1 next, -1 prev)
	Enabled   *bool      `json:"enabled,omitempty"`    // Desired state for touchpad-set
	Widget    string     `json:"widget,omitempty"`     // Widget name for widget commands
	Action    string     `json:"action,omitempty"`     // Action name for widget-action
	Args      []string   `json:"args,omitempty"`       // Arguments for widget-action
	Key       string     `json:"key,omitempty"`        // Config key for config-get/config-set
	Value     string     `json:"value,omitempty"`      // Config value for config-set
	Hours     int        `json:"hours,omitempty"`      // History window in hours (0 = default)
	LogFilter *LogFilter `json:"log_filter,omitempty"` // Log filter for logs-subscribe command
}

// Response represents the daemon's response
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Success bool        `json:"success"`
}
