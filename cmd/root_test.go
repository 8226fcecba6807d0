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

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRootCmdExists tests that root command is properly initialized
func TestRootCmdExists(t *testing.T) {
	assert.NotNil(t, rootCmd, "root command should exist")
	assert.Equal(t, "chime", rootCmd.Use)
	assert.Contains(t, rootCmd.Short, "Chime")
}

// TestRootCmdHasCommands tests that subcommands are registered
func TestRootCmdHasCommands(t *testing.T) {
	expectedCommands := []string{
		"status",
		"eq",
		"toggle",
		"touchpad",
		"connect",
		"disconnect",
		"restart",
		"refresh",
		"history",
		"widget",
		"config",
		"daemon",
		"logs",
	}

	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	for _, expected := range expectedCommands {
		assert.Contains(t, commandNames, expected, "command %s should be registered", expected)
	}
}

// TestSetVersion tests that version info lands in the cobra template.
func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3", "2026-01-02")
	assert.Equal(t, "1.2.3", Version)
	assert.Equal(t, "2026-01-02", BuildTime)
	assert.Equal(t, "1.2.3", rootCmd.Version)
}
