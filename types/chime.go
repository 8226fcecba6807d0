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

// WidgetState represents the state of a widget plugin
type WidgetState struct {
	Version string `json:"version"` // Widget version from metadata
	Enabled bool   `json:"enabled"` // Whether the widget is enabled
}

// LoggingConfig represents configuration for the logging system
type LoggingConfig struct {
	Level   string   `json:"level"`   // debug, info, warn, error (default: info)
	Format  string   `json:"format"`  // text, json (default: text)
	Outputs []string `json:"outputs"` // ["file", "journald"] (default: auto-detect)
	File    string   `json:"file"`    // Log file path (default: /var/log/chime/chime.log)
}

// ChimeConfig represents the main chime configuration (/etc/chime/chime.json)
type ChimeConfig struct {
	Widgets map[string]WidgetState `json:"widgets"` // Map of widget name to state
	Logging *LoggingConfig         `json:"logging"` // Logging configuration (optional)
	History *HistoryConfig         `json:"history"` // Battery history configuration (optional)
	Version string                 `json:"version"`
}
