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

// Package widgets defines the widget plugin system for chime using
// Hashicorp's go-plugin framework. Widgets run as separate processes and
// receive every rendered status line over RPC.
package widgets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WidgetManager manages widget discovery and loading.
// It searches for widget binaries in multiple directories.
type WidgetManager struct {
	widgetDirs []string
}

// NewWidgetManager creates a new widget manager with default search directories.
// Search order: ./bin (dev), /usr/lib/chime/widgets (system), /opt/chime/widgets (alt).
func NewWidgetManager() *WidgetManager {
	return &WidgetManager{
		widgetDirs: []string{
			"./bin",                  // Local development
			"/usr/lib/chime/widgets", // System installation
			"/opt/chime/widgets",     // Alternative installation
		},
	}
}

// FindWidget searches for a widget binary by name.
// The name is converted to the full widget binary name (e.g., "hassio" -> "chime-widget-hassio").
// Returns the full path to the widget binary or an error if not found.
func (wm *WidgetManager) FindWidget(name string) (string, error) {
	widgetName := fmt.Sprintf("chime-widget-%s", name)

	for _, dir := range wm.widgetDirs {
		widgetPath := filepath.Join(dir, widgetName)

		// Check if widget exists and is executable
		if info, err := os.Stat(widgetPath); err == nil {
			if info.Mode().IsRegular() && (info.Mode().Perm()&0111) != 0 {
				return widgetPath, nil
			}
		}
	}

	return "", fmt.Errorf("widget not found: %s", name)
}

// ListWidgets returns a list of all available widget names (without the "chime-widget-" prefix).
// It searches all configured widget directories and returns unique widget names.
func (wm *WidgetManager) ListWidgets() ([]string, error) {
	widgets := make(map[string]bool)

	for _, dir := range wm.widgetDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue // Directory might not exist
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			name := entry.Name()
			if strings.HasPrefix(name, "chime-widget-") {
				fullPath := filepath.Join(dir, name)
				if info, err := os.Stat(fullPath); err == nil {
					if info.Mode().IsRegular() && (info.Mode().Perm()&0111) != 0 {
						widgetName := strings.TrimPrefix(name, "chime-widget-")
						widgets[widgetName] = true
					}
				}
			}
		}
	}

	var result []string
	for name := range widgets {
		result = append(result, name)
	}

	return result, nil
}
