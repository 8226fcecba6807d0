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
	"strconv"
	"strings"
)

// DefaultFormat is the upstream default status line layout.
const DefaultFormat = "{device_model} L{placement_left}{battery}R{placement_right}{battery_case}{amb}{anc}{equalizer}{touchpad}"

// RenderOptions bundles the configuration a snapshot render needs.
type RenderOptions struct {
	Format     string
	Glyphs     GlyphSet
	CaseSymbol string
	Threshold  ThresholdOptions
}

// Line is one rendered status line: the formatted text and the gradient
// color for the combined battery level.
type Line struct {
	FullText string `json:"full_text"`
	Color    string `json:"color"`
	Combined int    `json:"combined"`
}

// Fields computes the formatter substitution set for one snapshot and
// returns it together with the combined battery level.
func Fields(snap *DeviceSnapshot, opts RenderOptions) (map[string]string, int) {
	battery, combined := BatteryStatus(
		snap.LeftBattery, snap.RightBattery,
		snap.PlacementLeft, snap.PlacementRight,
		opts.Threshold,
	)

	amb := ""
	if snap.AmbientSound {
		amb = " AMB"
	}
	anc := ""
	if snap.NoiseReduction {
		anc = " ANC"
	}
	touchpad := ""
	if snap.Touchpad.Locked() {
		touchpad = " TL"
	}

	fields := map[string]string{
		"battery":         battery,
		"left_battery":    strconv.Itoa(snap.LeftBattery),
		"right_battery":   strconv.Itoa(snap.RightBattery),
		"battery_case":    CaseDisplay(snap.CaseBattery, snap.PlacementLeft, snap.PlacementRight, opts.CaseSymbol),
		"device_model":    snap.Model,
		"equalizer":       snap.Equalizer.Label(),
		"placement_left":  opts.Glyphs.Glyph(snap.PlacementLeft),
		"placement_right": opts.Glyphs.Glyph(snap.PlacementRight),
		"amb":             amb,
		"anc":             anc,
		"touchpad":        touchpad,
	}
	return fields, combined
}

// Render assembles the full status line for a snapshot and colors it by
// the combined level's gradient entry.
func Render(snap *DeviceSnapshot, opts RenderOptions, gradient *Gradient) Line {
	fields, combined := Fields(snap, opts)
	format := opts.Format
	if format == "" {
		format = DefaultFormat
	}
	return Line{
		FullText: Expand(format, fields),
		Color:    gradient.Lookup(combined),
		Combined: combined,
	}
}

// Events evaluates both notification rules against a snapshot. The result
// is recomputed from scratch every poll; any repeat suppression is the
// delivery sink's decision.
func Events(snap *DeviceSnapshot, threshold int, enabled bool) []Event {
	var events []Event
	if ev, ok := DriftEvent(snap.LeftBattery, snap.RightBattery,
		snap.PlacementLeft, snap.PlacementRight, threshold, enabled); ok {
		events = append(events, ev)
	}
	if ev, ok := ConvergenceEvent(snap.LeftBattery, snap.RightBattery,
		snap.PlacementLeft, snap.PlacementRight, enabled); ok {
		events = append(events, ev)
	}
	return events
}

// Expand substitutes {name} tokens in a format string from the field map.
// Unknown tokens are left untouched so a typo in a user format is visible
// in the output instead of vanishing.
func Expand(format string, fields map[string]string) string {
	var b strings.Builder
	b.Grow(len(format))

	for {
		open := strings.IndexByte(format, '{')
		if open < 0 {
			b.WriteString(format)
			break
		}
		close := strings.IndexByte(format[open:], '}')
		if close < 0 {
			b.WriteString(format)
			break
		}
		close += open

		b.WriteString(format[:open])
		key := format[open+1 : close]
		if value, ok := fields[key]; ok {
			b.WriteString(value)
		} else {
			b.WriteString(format[open : close+1])
		}
		format = format[close+1:]
	}
	return b.String()
}
