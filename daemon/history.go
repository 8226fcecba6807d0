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
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chimed/chime/buds"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS battery_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ts INTEGER NOT NULL,
	left INTEGER NOT NULL,
	right INTEGER NOT NULL,
	case_batt INTEGER NOT NULL,
	combined INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_battery_history_ts ON battery_history(ts);
`

// Sample is one recorded battery reading.
type Sample struct {
	Timestamp int64 `json:"ts"`
	Left      int   `json:"left"`
	Right     int   `json:"right"`
	Case      int   `json:"case"`
	Combined  int   `json:"combined"`
}

// History persists per-poll battery samples in SQLite.
type History struct {
	db  *sql.DB
	now func() time.Time
}

// OpenHistory opens (creating if needed) the battery history database.
func OpenHistory(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// Serialize access; the poller is the only writer but CLI queries
	// arrive on connection goroutines.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &History{db: db, now: time.Now}, nil
}

// Record stores one battery sample from a successful poll.
func (h *History) Record(snap *buds.DeviceSnapshot, combined int) error {
	_, err := h.db.Exec(
		"INSERT INTO battery_history (ts, left, right, case_batt, combined) VALUES (?, ?, ?, ?, ?)",
		h.now().Unix(), snap.LeftBattery, snap.RightBattery, snap.CaseBattery, combined)
	if err != nil {
		return fmt.Errorf("failed to record battery sample: %w", err)
	}
	return nil
}

// Samples returns all samples newer than since, oldest first.
func (h *History) Samples(since time.Time) ([]Sample, error) {
	rows, err := h.db.Query(
		"SELECT ts, left, right, case_batt, combined FROM battery_history WHERE ts >= ? ORDER BY ts ASC",
		since.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query battery history: %w", err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var s Sample
		if err := rows.Scan(&s.Timestamp, &s.Left, &s.Right, &s.Case, &s.Combined); err != nil {
			return nil, fmt.Errorf("failed to scan battery sample: %w", err)
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// Prune deletes samples older than the retention window.
func (h *History) Prune(retentionDays int) error {
	cutoff := h.now().AddDate(0, 0, -retentionDays).Unix()
	_, err := h.db.Exec("DELETE FROM battery_history WHERE ts < ?", cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune battery history: %w", err)
	}
	return nil
}

// Close closes the database.
func (h *History) Close() error {
	return h.db.Close()
}
