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

package daemon

import (
	"fmt"
	"strconv"

	"github.com/chimed/chime/state"
	"github.com/chimed/chime/types"
)

// budsConfigValue returns one buds.json setting by its JSON key.
func budsConfigValue(config *types.BudsConfig, key string) (interface{}, error) {
	switch key {
	case "format":
		return config.Format, nil
	case "interval":
		return config.Interval, nil
	case "binary":
		return config.Binary, nil
	case "wearing_glyph":
		return config.WearingGlyph, nil
	case "idle_glyph":
		return config.IdleGlyph, nil
	case "case_glyph":
		return config.CaseGlyph, nil
	case "case_battery_symbol":
		return config.CaseBatterySymbol, nil
	case "use_drift_threshold":
		return config.UseDriftThreshold, nil
	case "drift_threshold":
		return config.DriftThreshold, nil
	case "dynamic_color":
		return config.DynamicColor, nil
	case "start_color":
		return config.StartColor, nil
	case "end_color":
		return config.EndColor, nil
	case "color":
		return config.Color, nil
	case "disconnected_color":
		return config.DisconnectedColor, nil
	case "battery_limit":
		return config.BatteryLimit, nil
	case "notifications":
		return config.Notifications, nil
	case "notify_cooldown_ms":
		return config.NotifyCooldownMS, nil
	case "hide_no_device":
		return config.HideNoDevice, nil
	default:
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
}

// setBudsConfigValue parses and applies one setting, then validates the
// whole config so a bad value never reaches disk.
func setBudsConfigValue(config *types.BudsConfig, key, value string) error {
	switch key {
	case "format":
		config.Format = value
	case "interval":
		n, err := parseIntValue(key, value)
		if err != nil {
			return err
		}
		config.Interval = n
	case "binary":
		config.Binary = value
	case "wearing_glyph":
		config.WearingGlyph = value
	case "idle_glyph":
		config.IdleGlyph = value
	case "case_glyph":
		config.CaseGlyph = value
	case "case_battery_symbol":
		config.CaseBatterySymbol = value
	case "use_drift_threshold":
		b, err := parseBoolValue(key, value)
		if err != nil {
			return err
		}
		config.UseDriftThreshold = b
	case "drift_threshold":
		n, err := parseIntValue(key, value)
		if err != nil {
			return err
		}
		config.DriftThreshold = n
	case "dynamic_color":
		b, err := parseBoolValue(key, value)
		if err != nil {
			return err
		}
		config.DynamicColor = b
	case "start_color":
		config.StartColor = value
	case "end_color":
		config.EndColor = value
	case "color":
		config.Color = value
	case "disconnected_color":
		config.DisconnectedColor = value
	case "battery_limit":
		n, err := parseIntValue(key, value)
		if err != nil {
			return err
		}
		config.BatteryLimit = n
	case "notifications":
		b, err := parseBoolValue(key, value)
		if err != nil {
			return err
		}
		config.Notifications = b
	case "notify_cooldown_ms":
		n, err := parseIntValue(key, value)
		if err != nil {
			return err
		}
		config.NotifyCooldownMS = n
	case "hide_no_device":
		b, err := parseBoolValue(key, value)
		if err != nil {
			return err
		}
		config.HideNoDevice = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	return state.ValidateBudsConfig(config)
}

func parseIntValue(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s expects an integer, got %q", key, value)
	}
	return n, nil
}

func parseBoolValue(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s expects true or false, got %q", key, value)
	}
	return b, nil
}
