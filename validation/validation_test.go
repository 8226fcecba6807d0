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

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		name    string
		color   string
		wantErr bool
	}{
		{"six digit", "#FFFF00", false},
		{"six digit lowercase", "#8fbcbb", false},
		{"three digit", "#f00", false},
		{"empty", "", true},
		{"no hash", "FFFF00", true},
		{"bad digits", "#zzzzzz", true},
		{"wrong length", "#ffff", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHexColor(tt.color)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateBatteryBounds(t *testing.T) {
	assert.NoError(t, ValidateBatteryLevel(0))
	assert.NoError(t, ValidateBatteryLevel(100))
	assert.Error(t, ValidateBatteryLevel(-1))
	assert.Error(t, ValidateBatteryLevel(101))

	assert.NoError(t, ValidateBatteryLimit(1))
	assert.NoError(t, ValidateBatteryLimit(100))
	assert.Error(t, ValidateBatteryLimit(0))
	assert.Error(t, ValidateBatteryLimit(101))
}

func TestValidateDriftThreshold(t *testing.T) {
	assert.NoError(t, ValidateDriftThreshold(1))
	assert.NoError(t, ValidateDriftThreshold(3))
	assert.Error(t, ValidateDriftThreshold(0))
	assert.Error(t, ValidateDriftThreshold(-3))
}

func TestValidateIntervalAndCooldown(t *testing.T) {
	assert.NoError(t, ValidateInterval(1))
	assert.Error(t, ValidateInterval(0))

	assert.NoError(t, ValidateCooldown(0))
	assert.NoError(t, ValidateCooldown(300000))
	assert.Error(t, ValidateCooldown(-1))
}

func TestValidateEqualizerName(t *testing.T) {
	for _, name := range []string{"off", "bass", "soft", "dynamic", "clear", "treble", "Dynamic"} {
		assert.NoError(t, ValidateEqualizerName(name), name)
	}
	assert.Error(t, ValidateEqualizerName("loudness"))
	assert.Error(t, ValidateEqualizerName(""))
}

func TestValidateGlyph(t *testing.T) {
	assert.NoError(t, ValidateGlyph("W"))
	assert.NoError(t, ValidateGlyph("🎧"))
	assert.Error(t, ValidateGlyph(""))
	assert.Error(t, ValidateGlyph("a b"))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"default style", "{device_model} L{placement_left}{battery}R", false},
		{"no tokens", "plain text", false},
		{"unknown token ok", "{bogus}", false},
		{"unclosed", "{battery", true},
		{"unmatched close", "battery}", true},
		{"nested", "{a{b}}", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateHTTPURL(t *testing.T) {
	assert.NoError(t, ValidateHTTPURL("http://homeassistant.local:8123"))
	assert.NoError(t, ValidateHTTPURL("https://ha.example.com"))
	assert.Error(t, ValidateHTTPURL(""))
	assert.Error(t, ValidateHTTPURL("ftp://example.com"))
	assert.Error(t, ValidateHTTPURL("http://"))
}

func TestValidateBrokerURL(t *testing.T) {
	assert.NoError(t, ValidateBrokerURL("tcp://localhost:1883"))
	assert.NoError(t, ValidateBrokerURL("ssl://broker.example.com:8883"))
	assert.NoError(t, ValidateBrokerURL("wss://broker.example.com/mqtt"))
	assert.Error(t, ValidateBrokerURL("http://localhost:1883"))
	assert.Error(t, ValidateBrokerURL(""))
}

func TestValidateTopic(t *testing.T) {
	assert.NoError(t, ValidateTopic("chime/buds/status"))
	assert.Error(t, ValidateTopic(""))
	assert.Error(t, ValidateTopic("chime/+/status"))
	assert.Error(t, ValidateTopic("chime/#"))
}
