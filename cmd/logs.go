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
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chimed/chime/client"
	"github.com/chimed/chime/daemon"
	"github.com/chimed/chime/daemon/logger"
)

var (
	logsFollow    bool
	logsLines     int
	logsSince     string
	logsComponent string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show Chime daemon logs",
	Long:  `Display logs from the Chime daemon using journalctl (systemd) or tail (non-systemd).`,
	Run:   runLogs,
}

var logsWatchCmd = &cobra.Command{
	Use:   "watch [level]",
	Short: "Watch logs in real-time from the Chime daemon",
	Long:  `Stream logs from the Chime daemon in real-time. Optionally filter by log level (debug, info, warn, error).`,
	Run:   runLogsWatch,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsWatchCmd)
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output in real-time")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 100, "Number of lines to show")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show logs since time (e.g., '1 hour ago', '2024-01-01')")

	logsWatchCmd.Flags().StringVar(&logsComponent, "component", "", "Filter by component name")
}

func runLogs(cmd *cobra.Command, args []string) {
	if _, err := exec.LookPath("journalctl"); err == nil {
		runJournalctlLogs()
	} else {
		runTailLogs()
	}
}

func runJournalctlLogs() {
	jcmd := []string{"journalctl", "-t", "chime"}

	if logsFollow {
		jcmd = append(jcmd, "-f")
	}

	if logsLines > 0 && !logsFollow {
		jcmd = append(jcmd, "-n", fmt.Sprintf("%d", logsLines))
	}

	if logsSince != "" {
		jcmd = append(jcmd, "--since", logsSince)
	}

	if !logsFollow {
		jcmd = append(jcmd, "--no-pager")
	}

	execCmd := exec.Command(jcmd[0], jcmd[1:]...) //nolint:gosec // Command built from hardcoded journalctl with validated flags
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr
	execCmd.Stdin = os.Stdin

	if err := execCmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] Failed to run journalctl: %v\n", err)
		os.Exit(1)
	}
}

func runTailLogs() {
	logFile := defaultLogFile

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "[ERROR] Log file not found: %s\n", logFile)
		fmt.Fprintf(os.Stderr, "[INFO] Make sure chime daemon is running or has been run at least once.\n")
		os.Exit(1)
	}

	tailCmd := []string{"tail"}

	if logsFollow {
		tailCmd = append(tailCmd, "-f")
	}

	if logsLines > 0 {
		tailCmd = append(tailCmd, "-n", fmt.Sprintf("%d", logsLines))
	}

	tailCmd = append(tailCmd, logFile)

	if logsSince != "" {
		fmt.Fprintf(os.Stderr, "[WARN] --since flag is not supported without journalctl, ignoring\n")
	}

	execCmd := exec.Command(tailCmd[0], tailCmd[1:]...) //nolint:gosec // Command built from hardcoded tail with validated flags
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr
	execCmd.Stdin = os.Stdin

	if err := execCmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] Failed to run tail: %v\n", err)
		os.Exit(1)
	}
}

func runLogsWatch(cmd *cobra.Command, args []string) {
	filter := &daemon.LogFilter{
		Component: logsComponent,
	}

	if len(args) > 0 {
		filter.Level = args[0]
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan error, 1)

	go func() {
		err := client.StreamLogs(filter, func(logData []byte) error {
			var entry logger.Entry
			if err := json.Unmarshal(logData, &entry); err != nil {
				return fmt.Errorf("failed to parse log entry: %w", err)
			}

			fmt.Printf("[%s] [%s] %s: %s\n",
				entry.Timestamp,
				entry.Level,
				entry.Component,
				entry.Message)

			return nil
		})
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
			os.Exit(1)
		}
	case <-sigChan:
		fmt.Println("\nStopping log stream...")
		return
	}
}
