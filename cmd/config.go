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
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chimed/chime/daemon"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change the buds configuration",
	Long:  `Reads and writes buds.json settings through the daemon. Changes take effect on the next daemon restart.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show one setting, or the whole configuration",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := ""
		if len(args) > 0 {
			key = args[0]
		}
		if err := executeConfigGet(cmd.OutOrStdout(), defaultClient, key); err != nil {
			cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
			exitWithError()
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runSimple(cmd, daemon.Request{
			Command: "config-set",
			Key:     args[0],
			Value:   args[1],
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

// executeConfigGet prints a single setting as a bare value, or the whole
// configuration as indented JSON when key is empty.
func executeConfigGet(w io.Writer, client ClientInterface, key string) error {
	resp, err := client.Send(daemon.Request{Command: "config-get", Key: key})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}

	switch value := resp.Data.(type) {
	case string:
		fmt.Fprintln(w, value)
	case bool:
		fmt.Fprintln(w, value)
	case float64:
		fmt.Fprintln(w, formatJSONNumber(value))
	default:
		data, err := json.MarshalIndent(resp.Data, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	}
	return nil
}

// formatJSONNumber prints whole JSON numbers without a decimal point.
func formatJSONNumber(value float64) string {
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d", int64(value))
	}
	return fmt.Sprintf("%g", value)
}
