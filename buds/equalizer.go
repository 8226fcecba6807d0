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
	"fmt"
	"strings"
)

// EqualizerMode is one of the six sound profiles the device supports.
// The modes form a cycle under Step; index 0 is "off".
type EqualizerMode int

const (
	EqOff EqualizerMode = iota
	EqBass
	EqSoft
	EqDynamic
	EqClear
	EqTreble

	equalizerModeCount = 6
)

// equalizerNames is the explicit total order used for cycling and for the
// canonical names sent to the device.
var equalizerNames = [equalizerModeCount]string{
	EqOff:     "off",
	EqBass:    "bass",
	EqSoft:    "soft",
	EqDynamic: "dynamic",
	EqClear:   "clear",
	EqTreble:  "treble",
}

// Valid reports whether m is one of the six known modes.
func (m EqualizerMode) Valid() bool {
	return m >= EqOff && m < equalizerModeCount
}

// Name returns the canonical lowercase mode name understood by the device
// control command. Unknown modes report as "off".
func (m EqualizerMode) Name() string {
	if !m.Valid() {
		return equalizerNames[EqOff]
	}
	return equalizerNames[m]
}

// Label returns the display form of the mode: empty for off, otherwise a
// leading space plus the capitalized name (" Bass", " Treble", ...).
func (m EqualizerMode) Label() string {
	if !m.Valid() || m == EqOff {
		return ""
	}
	name := equalizerNames[m]
	return " " + strings.ToUpper(name[:1]) + name[1:]
}

// Step returns the mode delta positions away from m, wrapping in both
// directions. Stepping backwards from off lands on treble, never on a
// negative index. An invalid current mode is treated as off before the
// step is applied.
func (m EqualizerMode) Step(delta int) EqualizerMode {
	if !m.Valid() {
		m = EqOff
	}
	next := (int(m) + delta) % equalizerModeCount
	if next < 0 {
		next += equalizerModeCount
	}
	return EqualizerMode(next)
}

// ParseEqualizerMode maps a canonical mode name to its EqualizerMode.
func ParseEqualizerMode(name string) (EqualizerMode, error) {
	for i, n := range equalizerNames {
		if n == strings.ToLower(name) {
			return EqualizerMode(i), nil
		}
	}
	return EqOff, fmt.Errorf("unknown equalizer mode: %q", name)
}
