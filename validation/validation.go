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

// Package validation provides reusable validation helpers for chime configuration types.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/chimed/chime/buds"
)

// hexColorRegex matches "#rgb" and "#rrggbb" hex color notation.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a hex color string like "#FFFF00" or "#ff0".
func ValidateHexColor(color string) error {
	if color == "" {
		return fmt.Errorf("color cannot be empty")
	}
	if !hexColorRegex.MatchString(color) {
		return fmt.Errorf("invalid hex color %s (expected '#rgb' or '#rrggbb')", color)
	}
	return nil
}

// ValidateBatteryLevel validates that a battery percentage is in [0, 100].
func ValidateBatteryLevel(level int) error {
	if level < 0 || level > 100 {
		return fmt.Errorf("battery level %d out of valid range [0, 100]", level)
	}
	return nil
}

// ValidateBatteryLimit validates the upper bound of the color gradient.
// A limit of 0 would leave the gradient with a single entry, so the
// minimum is 1.
func ValidateBatteryLimit(limit int) error {
	if limit < 1 || limit > 100 {
		return fmt.Errorf("battery limit %d out of valid range [1, 100]", limit)
	}
	return nil
}

// ValidateDriftThreshold validates the battery drift threshold.
func ValidateDriftThreshold(threshold int) error {
	if threshold < 1 {
		return fmt.Errorf("drift threshold %d must be at least 1", threshold)
	}
	return nil
}

// ValidateInterval validates a polling interval in seconds.
func ValidateInterval(seconds int) error {
	if seconds < 1 {
		return fmt.Errorf("interval %d must be at least 1 second", seconds)
	}
	return nil
}

// ValidateCooldown validates a notification cooldown in milliseconds.
// Zero is allowed and disables repeat suppression.
func ValidateCooldown(ms int) error {
	if ms < 0 {
		return fmt.Errorf("cooldown %d cannot be negative", ms)
	}
	return nil
}

// ValidateEqualizerName validates an equalizer preset name.
func ValidateEqualizerName(name string) error {
	if _, err := buds.ParseEqualizerMode(name); err != nil {
		return err
	}
	return nil
}

// ValidateGlyph validates a placement glyph.
// Glyphs are rendered inline in the status line, so whitespace is rejected.
func ValidateGlyph(glyph string) error {
	if glyph == "" {
		return fmt.Errorf("glyph cannot be empty")
	}
	if strings.ContainsAny(glyph, " \t\n") {
		return fmt.Errorf("glyph %q cannot contain whitespace", glyph)
	}
	return nil
}

// ValidateFormat validates a status line format string: every '{' must be
// closed before the next one opens. Unknown token names are allowed and
// pass through to the output untouched.
func ValidateFormat(format string) error {
	if format == "" {
		return fmt.Errorf("format cannot be empty")
	}
	depth := 0
	for i, r := range format {
		switch r {
		case '{':
			if depth > 0 {
				return fmt.Errorf("invalid format: nested '{' at position %d", i)
			}
			depth++
		case '}':
			if depth == 0 {
				return fmt.Errorf("invalid format: unmatched '}' at position %d", i)
			}
			depth--
		}
	}
	if depth != 0 {
		return fmt.Errorf("invalid format: unclosed '{'")
	}
	return nil
}

// ValidateRetentionDays validates the history retention window.
func ValidateRetentionDays(days int) error {
	if days < 1 {
		return fmt.Errorf("retention %d must be at least 1 day", days)
	}
	return nil
}

// ValidateHTTPURL validates an http or https base URL.
func ValidateHTTPURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("URL cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %s: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme %s (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL %s: missing host", raw)
	}
	return nil
}

// ValidateBrokerURL validates an MQTT broker URL.
// Accepted schemes are the ones the paho client dials: tcp, ssl, ws, wss.
func ValidateBrokerURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("broker URL cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid broker URL %s: %w", raw, err)
	}
	switch u.Scheme {
	case "tcp", "ssl", "ws", "wss":
	default:
		return fmt.Errorf("invalid broker scheme %s (must be tcp, ssl, ws, or wss)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid broker URL %s: missing host", raw)
	}
	return nil
}

// ValidateTopic validates an MQTT publish topic.
// Wildcards are subscription syntax and are rejected for publishing.
func ValidateTopic(topic string) error {
	if topic == "" {
		return fmt.Errorf("topic cannot be empty")
	}
	if strings.ContainsAny(topic, "+#") {
		return fmt.Errorf("invalid publish topic %s: wildcards not allowed", topic)
	}
	return nil
}
