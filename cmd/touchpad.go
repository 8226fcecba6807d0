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
	"github.com/spf13/cobra"

	"github.com/chimed/chime/daemon"
)

var touchpadCmd = &cobra.Command{
	Use:   "touchpad",
	Short: "Lock or unlock the touchpad",
	Long:  `Enable or disable the buds' touchpad gestures.`,
}

var touchpadLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Disable touchpad gestures",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runSimple(cmd, touchpadRequest(false))
	},
}

var touchpadUnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Enable touchpad gestures",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runSimple(cmd, touchpadRequest(true))
	},
}

func init() {
	rootCmd.AddCommand(touchpadCmd)
	touchpadCmd.AddCommand(touchpadLockCmd)
	touchpadCmd.AddCommand(touchpadUnlockCmd)
}

func touchpadRequest(enabled bool) daemon.Request {
	return daemon.Request{
		Command: "touchpad-set",
		Enabled: &enabled,
	}
}
