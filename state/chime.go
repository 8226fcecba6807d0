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

// Package state manages configuration state and persistence for chime.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chimed/chime/types"
)

// LoadChimeConfig loads the chime.json configuration from disk.
// If the file doesn't exist, it returns a default configuration.
func LoadChimeConfig() (*types.ChimeConfig, error) {
	chimeConfigPath := filepath.Join(GetConfigDir(), "chime.json")

	if _, err := os.Stat(chimeConfigPath); os.IsNotExist(err) {
		return getDefaultChimeConfig(), nil
	}

	var config types.ChimeConfig
	err := LoadConfig("chime", &config)
	if err != nil {
		return nil, fmt.Errorf("failed to load chime config: %w", err)
	}

	// If widgets is nil, initialize with defaults
	if config.Widgets == nil {
		return getDefaultChimeConfig(), nil
	}

	return &config, nil
}

// SaveChimeConfig saves the chime.json configuration to disk.
func SaveChimeConfig(config *types.ChimeConfig) error {
	return SaveConfig("chime", config)
}

// getDefaultChimeConfig returns the default chime configuration.
// Widgets are known but disabled until the user opts in.
func getDefaultChimeConfig() *types.ChimeConfig {
	return &types.ChimeConfig{
		Version: "1.0",
		Widgets: map[string]types.WidgetState{
			"hassio": {
				Enabled: false,
				Version: "", // Will be filled in on load
			},
			"mqttbridge": {
				Enabled: false,
				Version: "",
			},
		},
		History: &types.HistoryConfig{
			Enabled:       true,
			RetentionDays: 30,
		},
	}
}
