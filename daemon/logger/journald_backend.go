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

package logger

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

const journaldTag = "chime"

// JournaldBackend writes log entries to the systemd journal
type JournaldBackend struct {
	format string // "json" or "text"
	mu     sync.Mutex
}

// NewJournaldBackend creates a new journald backend.
// Returns an error if systemd-cat is not available.
func NewJournaldBackend(format string) (*JournaldBackend, error) {
	if _, err := exec.LookPath("systemd-cat"); err != nil {
		return nil, fmt.Errorf("systemd-cat not found: %w", err)
	}
	return &JournaldBackend{format: format}, nil
}

// Write writes a log entry to the systemd journal
func (b *JournaldBackend) Write(entry *Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	output, err := render(entry, b.format)
	if err != nil {
		return err
	}

	cmd := exec.Command("systemd-cat", "-t", journaldTag, "-p", journalPriority(entry.Level))
	cmd.Stdin = strings.NewReader(output)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to write to journal: %w", err)
	}
	return nil
}

// Close is a no-op for journald
func (b *JournaldBackend) Close() error {
	return nil
}

// journalPriority maps a log level to a syslog priority
func journalPriority(level string) string {
	switch level {
	case "debug":
		return "7"
	case "warn":
		return "4"
	case "error":
		return "3"
	default:
		return "6"
	}
}
