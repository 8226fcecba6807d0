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
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/chimed/chime/daemon"
)

var historyHours int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Plot recorded battery levels",
	Long:  `Renders the combined battery level over time from the daemon's history store.`,
	Run:   runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyHours, "hours", 24, "History window in hours")
}

func runHistory(cmd *cobra.Command, args []string) {
	if err := executeHistory(cmd.OutOrStdout(), defaultClient, historyHours); err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

// executeHistory fetches recent samples and plots them.
func executeHistory(w io.Writer, client ClientInterface, hours int) error {
	resp, err := client.Send(daemon.Request{
		Command: "history",
		Hours:   hours,
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}

	samples, _ := resp.Data.([]interface{})
	output, ok := renderHistoryGraph(samples, hours)
	if !ok {
		fmt.Fprintf(w, "No battery samples in the last %dh\n", hours)
		return nil
	}

	fmt.Fprintln(w, output)
	return nil
}

// renderHistoryGraph turns history samples into an ascii plot of the
// combined battery level. Needs at least two samples to draw a line.
func renderHistoryGraph(samples []interface{}, hours int) (string, bool) {
	var levels []float64
	for _, raw := range samples {
		sample, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if combined, ok := sample["combined"].(float64); ok {
			levels = append(levels, combined)
		}
	}

	if len(levels) < 2 {
		return "", false
	}

	graph := asciigraph.Plot(levels,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("Combined battery %% - last %dh (%d samples)", hours, len(levels))))
	return graph, true
}
