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

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle a sound feature",
	Long:  `Flips active noise control or ambient sound, based on the daemon's last snapshot.`,
}

var toggleANCCmd = &cobra.Command{
	Use:   "anc",
	Short: "Toggle active noise control",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runSimple(cmd, daemon.Request{Command: "toggle-anc"})
	},
}

var toggleAmbientCmd = &cobra.Command{
	Use:   "amb",
	Short: "Toggle ambient sound passthrough",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runSimple(cmd, daemon.Request{Command: "toggle-amb"})
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
	toggleCmd.AddCommand(toggleANCCmd)
	toggleCmd.AddCommand(toggleAmbientCmd)
}
