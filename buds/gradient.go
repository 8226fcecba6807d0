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

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Gradient is a precomputed battery-level color table. It is built once
// from the configured endpoint colors and read-only afterwards, so it is
// safe to share across poll cycles.
type Gradient struct {
	table []string
	limit int
}

// NewGradient builds a table of limit+1 hex colors linearly interpolated
// per RGB channel from start (level 0) to end (level limit). Endpoint
// colors are "#RRGGBB" hex strings.
func NewGradient(start, end string, limit int) (*Gradient, error) {
	if limit < 1 {
		return nil, fmt.Errorf("gradient limit must be positive, got %d", limit)
	}
	from, err := colorful.Hex(start)
	if err != nil {
		return nil, fmt.Errorf("invalid gradient start color %q: %w", start, err)
	}
	to, err := colorful.Hex(end)
	if err != nil {
		return nil, fmt.Errorf("invalid gradient end color %q: %w", end, err)
	}

	table := make([]string, limit+1)
	for i := 0; i <= limit; i++ {
		table[i] = from.BlendRgb(to, float64(i)/float64(limit)).Hex()
	}
	return &Gradient{table: table, limit: limit}, nil
}

// NewSolidGradient builds a degenerate table that returns the same color
// for every level. Used when dynamic coloring is disabled; lookups take
// the same path as a real gradient. The configured color string is kept
// verbatim, casing included, never re-encoded.
func NewSolidGradient(color string, limit int) (*Gradient, error) {
	if limit < 1 {
		return nil, fmt.Errorf("gradient limit must be positive, got %d", limit)
	}
	if _, err := colorful.Hex(color); err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", color, err)
	}

	table := make([]string, limit+1)
	for i := range table {
		table[i] = color
	}
	return &Gradient{table: table, limit: limit}, nil
}

// Lookup returns the color for a battery level, clamped to [0, limit].
func (g *Gradient) Lookup(level int) string {
	if level < 0 {
		level = 0
	}
	if level > g.limit {
		level = g.limit
	}
	return g.table[level]
}

// Limit returns the highest level the table covers.
func (g *Gradient) Limit() int {
	return g.limit
}
