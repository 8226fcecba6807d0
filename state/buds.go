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
	"errors"
	"os"

	"github.com/chimed/chime/buds"
	"github.com/chimed/chime/daemon/logger"
	"github.com/chimed/chime/types"
	"github.com/chimed/chime/validation"
)

// LoadBudsConfig loads the buds widget configuration from disk.
// If the file doesn't exist, the default configuration is written out so
// the user has something to edit.
func LoadBudsConfig() (*types.BudsConfig, error) {
	var config types.BudsConfig
	err := LoadConfig("buds", &config)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			defaultConfig := DefaultBudsConfig()
			if saveErr := SaveConfig("buds", defaultConfig); saveErr != nil {
				logger.Warn("Failed to save default buds config",
					logger.Field{Key: "error", Value: saveErr.Error()})
			} else {
				logger.Info("Saved default buds configuration",
					logger.Field{Key: "path", Value: GetConfigDir() + "/buds.json"})
			}
			return defaultConfig, nil
		}
		return nil, err
	}

	applyBudsDefaults(&config)

	if err := ValidateBudsConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveBudsConfig saves the buds widget configuration to disk.
func SaveBudsConfig(config *types.BudsConfig) error {
	if err := ValidateBudsConfig(config); err != nil {
		return err
	}
	return SaveConfig("buds", config)
}

// DefaultBudsConfig returns the default buds widget configuration.
func DefaultBudsConfig() *types.BudsConfig {
	return &types.BudsConfig{
		Version:           "1.0",
		Format:            buds.DefaultFormat,
		Interval:          5,
		WearingGlyph:      buds.DefaultGlyphs.Wearing,
		IdleGlyph:         buds.DefaultGlyphs.Idle,
		CaseGlyph:         buds.DefaultGlyphs.InCase,
		CaseBatterySymbol: "C",
		UseDriftThreshold: true,
		DriftThreshold:    3,
		DynamicColor:      true,
		StartColor:        "#00FF00",
		EndColor:          "#FF0000",
		Color:             "#FFFFFF",
		DisconnectedColor: "#FFFFFF",
		BatteryLimit:      100,
		Notifications:     true,
		NotifyCooldownMS:  300000,
	}
}

// applyBudsDefaults fills zero values that would otherwise render an
// unusable status line. Booleans are left alone: false is a valid choice
// for every flag.
func applyBudsDefaults(config *types.BudsConfig) {
	defaults := DefaultBudsConfig()
	if config.Format == "" {
		config.Format = defaults.Format
	}
	if config.Interval == 0 {
		config.Interval = defaults.Interval
	}
	if config.WearingGlyph == "" {
		config.WearingGlyph = defaults.WearingGlyph
	}
	if config.IdleGlyph == "" {
		config.IdleGlyph = defaults.IdleGlyph
	}
	if config.CaseGlyph == "" {
		config.CaseGlyph = defaults.CaseGlyph
	}
	if config.CaseBatterySymbol == "" {
		config.CaseBatterySymbol = defaults.CaseBatterySymbol
	}
	if config.DriftThreshold == 0 {
		config.DriftThreshold = defaults.DriftThreshold
	}
	if config.StartColor == "" {
		config.StartColor = defaults.StartColor
	}
	if config.EndColor == "" {
		config.EndColor = defaults.EndColor
	}
	if config.Color == "" {
		config.Color = defaults.Color
	}
	if config.DisconnectedColor == "" {
		config.DisconnectedColor = defaults.DisconnectedColor
	}
	if config.BatteryLimit == 0 {
		config.BatteryLimit = defaults.BatteryLimit
	}
}

// ValidateBudsConfig checks a buds configuration and reports every problem
// at once.
func ValidateBudsConfig(config *types.BudsConfig) error {
	v := validation.NewCollector().WithContext("buds config")

	v.CheckMsg(validation.ValidateFormat(config.Format), "invalid format")
	v.CheckMsg(validation.ValidateInterval(config.Interval), "invalid interval")
	v.CheckMsg(validation.ValidateGlyph(config.WearingGlyph), "invalid wearing glyph")
	v.CheckMsg(validation.ValidateGlyph(config.IdleGlyph), "invalid idle glyph")
	v.CheckMsg(validation.ValidateGlyph(config.CaseGlyph), "invalid case glyph")
	v.CheckMsg(validation.ValidateDriftThreshold(config.DriftThreshold), "invalid drift threshold")
	v.CheckMsg(validation.ValidateHexColor(config.StartColor), "invalid start color")
	v.CheckMsg(validation.ValidateHexColor(config.EndColor), "invalid end color")
	v.CheckMsg(validation.ValidateHexColor(config.Color), "invalid color")
	v.CheckMsg(validation.ValidateHexColor(config.DisconnectedColor), "invalid disconnected color")
	v.CheckMsg(validation.ValidateBatteryLimit(config.BatteryLimit), "invalid battery limit")
	v.CheckMsg(validation.ValidateCooldown(config.NotifyCooldownMS), "invalid notify cooldown")

	return v.Error()
}
