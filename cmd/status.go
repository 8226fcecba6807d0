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

var (
	statusJSON bool
	statusRaw  bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current buds status line",
	Long: `Displays the rendered status line from the daemon's last poll.

With --json the line is printed as an i3bar block. With --raw the last
device snapshot is dumped instead.`,
	Run: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print the line as an i3bar JSON block")
	statusCmd.Flags().BoolVar(&statusRaw, "raw", false, "Print the raw device snapshot")
}

func runStatus(cmd *cobra.Command, args []string) {
	var err error
	if statusRaw {
		err = executeStatusRaw(cmd.OutOrStdout(), defaultClient)
	} else {
		err = executeStatus(cmd.OutOrStdout(), defaultClient, statusJSON)
	}
	if err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

// executeStatus prints the rendered line, plain or as an i3bar block.
func executeStatus(w io.Writer, client ClientInterface, asBlock bool) error {
	resp, err := client.Send(daemon.Request{Command: "line"})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}

	line, ok := resp.Data.(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected response data")
	}

	if asBlock {
		return writeI3barBlock(w, line)
	}

	fullText, _ := line["full_text"].(string)
	fmt.Fprintln(w, fullText)
	return nil
}

// writeI3barBlock emits the line in the i3bar protocol block shape.
func writeI3barBlock(w io.Writer, line map[string]interface{}) error {
	block := map[string]interface{}{
		"full_text": line["full_text"],
	}
	if color, ok := line["color"].(string); ok && color != "" {
		block["color"] = color
	}

	data, err := json.Marshal(block)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, string(data))
	return nil
}

// executeStatusRaw dumps the last device snapshot as indented JSON.
func executeStatusRaw(w io.Writer, client ClientInterface) error {
	resp, err := client.Send(daemon.Request{Command: "snapshot"})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}

	data, err := json.MarshalIndent(resp.Data, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(w, string(data))
	return nil
}
