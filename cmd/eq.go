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

var eqCmd = &cobra.Command{
	Use:   "eq",
	Short: "Control the equalizer",
	Long:  `Set the equalizer mode directly or cycle through the fixed mode order (off, bass, soft, dynamic, clear, treble).`,
}

var eqSetCmd = &cobra.Command{
	Use:   "set <mode>",
	Short: "Set the equalizer to a named mode",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSimple(cmd, daemon.Request{Command: "eq-set", Mode: args[0]})
	},
}

var eqNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Cycle to the next equalizer mode",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runSimple(cmd, daemon.Request{Command: "eq-step", Delta: 1})
	},
}

var eqPrevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Cycle to the previous equalizer mode",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runSimple(cmd, daemon.Request{Command: "eq-step", Delta: -1})
	},
}

func init() {
	rootCmd.AddCommand(eqCmd)
	eqCmd.AddCommand(eqSetCmd)
	eqCmd.AddCommand(eqNextCmd)
	eqCmd.AddCommand(eqPrevCmd)
}
