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

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect the paired buds",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runSimple(cmd, daemon.Request{Command: "connect"})
	},
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect the buds",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runSimple(cmd, daemon.Request{Command: "disconnect"})
	},
}

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the earbuds background daemon",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runSimple(cmd, daemon.Request{Command: "restart"})
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force an immediate poll cycle",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runSimple(cmd, daemon.Request{Command: "refresh"})
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(disconnectCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(refreshCmd)
}
