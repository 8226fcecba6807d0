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

	"github.com/spf13/cobra"

	"github.com/chimed/chime/daemon"
)

var widgetCmd = &cobra.Command{
	Use:   "widget",
	Short: "Manage status widgets",
	Long:  `Lists, enables and disables the out-of-process status widgets, and forwards actions to them.`,
}

var widgetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed widgets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := executeWidgetList(cmd.OutOrStdout(), defaultClient); err != nil {
			cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
			exitWithError()
		}
	},
}

var widgetEnableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Enable and start a widget",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSimple(cmd, daemon.Request{Command: "widget-enable", Widget: args[0]})
	},
}

var widgetDisableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Disable and stop a widget",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSimple(cmd, daemon.Request{Command: "widget-disable", Widget: args[0]})
	},
}

var widgetActionCmd = &cobra.Command{
	Use:   "action <name> <action> [args...]",
	Short: "Invoke a widget action",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := executeWidgetAction(cmd.OutOrStdout(), defaultClient, args[0], args[1], args[2:]); err != nil {
			cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
			exitWithError()
		}
	},
}

func init() {
	rootCmd.AddCommand(widgetCmd)
	widgetCmd.AddCommand(widgetListCmd)
	widgetCmd.AddCommand(widgetEnableCmd)
	widgetCmd.AddCommand(widgetDisableCmd)
	widgetCmd.AddCommand(widgetActionCmd)
}

// executeWidgetList prints an aligned table of installed widgets.
func executeWidgetList(w io.Writer, client ClientInterface) error {
	resp, err := client.Send(daemon.Request{Command: "widget-list"})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}

	widgets, _ := resp.Data.([]interface{})
	if len(widgets) == 0 {
		fmt.Fprintln(w, "No widgets installed")
		return nil
	}

	fmt.Fprintf(w, "%-16s %-10s %-9s %s\n", "NAME", "VERSION", "ENABLED", "RUNNING")
	for _, raw := range widgets {
		widget, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := widget["name"].(string)
		version, _ := widget["version"].(string)
		if version == "" {
			version = "-"
		}
		enabled, _ := widget["enabled"].(bool)
		running, _ := widget["running"].(bool)
		fmt.Fprintf(w, "%-16s %-10s %-9s %s\n", name, version, boolToYesNo(enabled), boolToYesNo(running))
	}
	return nil
}

// executeWidgetAction forwards an action to a running widget and prints
// whatever output it returned.
func executeWidgetAction(w io.Writer, client ClientInterface, widget, action string, args []string) error {
	resp, err := client.Send(daemon.Request{
		Command: "widget-action",
		Widget:  widget,
		Action:  action,
		Args:    args,
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}

	if output, ok := resp.Data.(string); ok && output != "" {
		fmt.Fprintln(w, output)
	}
	return nil
}

func boolToYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
