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

// unknownGlyph is shown for placement codes outside the recognized set.
// Graceful degradation, not an error path.
const unknownGlyph = "?"

// GlyphSet holds the configurable display glyphs for the three placement
// states.
type GlyphSet struct {
	Wearing string
	Idle    string
	InCase  string
}

// DefaultGlyphs matches the upstream defaults: (W)earing, (I)dle, (C)ase.
var DefaultGlyphs = GlyphSet{Wearing: "W", Idle: "I", InCase: "C"}

// Glyph maps a placement code to its display glyph. Total over all inputs;
// unrecognized codes map to "?".
func (g GlyphSet) Glyph(p Placement) string {
	switch p {
	case PlacementWearing:
		return g.Wearing
	case PlacementIdle:
		return g.Idle
	case PlacementInCase:
		return g.InCase
	default:
		return unknownGlyph
	}
}
