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
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGlyphSet tests placement code to glyph mapping, including graceful
// degradation for unknown codes.
func TestGlyphSet(t *testing.T) {
	tests := []struct {
		name      string
		placement Placement
		want      string
	}{
		{"wearing", PlacementWearing, "W"},
		{"idle", PlacementIdle, "I"},
		{"in case", PlacementInCase, "C"},
		{"out of range code", Placement(0), "?"},
		{"garbage code", Placement(42), "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultGlyphs.Glyph(tt.placement))
		})
	}
}

// TestGlyphSetCustom tests configurable glyphs are honored.
func TestGlyphSetCustom(t *testing.T) {
	glyphs := GlyphSet{Wearing: "w", Idle: "-", InCase: "c"}
	assert.Equal(t, "w", glyphs.Glyph(PlacementWearing))
	assert.Equal(t, "-", glyphs.Glyph(PlacementIdle))
	assert.Equal(t, "c", glyphs.Glyph(PlacementInCase))
	assert.Equal(t, "?", glyphs.Glyph(Placement(99)))
}

// TestPlacementString tests placement names.
func TestPlacementString(t *testing.T) {
	assert.Equal(t, "wearing", PlacementWearing.String())
	assert.Equal(t, "idle", PlacementIdle.String())
	assert.Equal(t, "case", PlacementInCase.String())
	assert.Equal(t, "unknown", Placement(7).String())
	assert.False(t, Placement(7).Valid())
}
