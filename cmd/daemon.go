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
	"log"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chimed/chime/daemon"
	"github.com/chimed/chime/daemon/logger"
	"github.com/chimed/chime/earbuds"
	"github.com/chimed/chime/state"
)

const defaultLogFile = "/var/log/chime/chime.log"

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run Chime as a daemon",
	Long:  `Starts the Chime daemon which polls the earbuds and listens for commands on a Unix socket.`,
	Run:   runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) {
	// Check for existing daemon via PID file
	pidFile := os.Getenv("CHIME_PID_FILE")
	if pidFile == "" {
		pidFile = "/run/chime.pid"
	}
	if err := checkExistingDaemon(pidFile); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}

	if err := writePIDFile(pidFile); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] Failed to write PID file: %v\n", err)
		os.Exit(1)
	}
	defer os.Remove(pidFile)

	if err := initializeLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	budsConfig, err := state.LoadBudsConfig()
	if err != nil {
		logger.Error("Failed to load buds config", logger.Field{Key: "error", Value: err.Error()})
		os.Exit(1)
	}

	device := earbuds.NewClient(budsConfig.Binary)

	server, err := daemon.NewServer(device)
	if err != nil {
		logger.Error("Failed to create server", logger.Field{Key: "error", Value: err.Error()})
		os.Exit(1)
	}

	// Handle shutdown gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutting down...")
		if err := server.Stop(); err != nil {
			logger.Error("Failed to stop server", logger.Field{Key: "error", Value: err.Error()})
		}
		os.Exit(0)
	}()

	if err := server.Start(); err != nil {
		logger.Error("Server failed", logger.Field{Key: "error", Value: err.Error()})
		os.Exit(1)
	}
}

// checkExistingDaemon checks if another daemon is already running
func checkExistingDaemon(pidFile string) error {
	data, err := os.ReadFile(pidFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("PID file exists but cannot be read: %w (remove %s manually if daemon is not running)", err, pidFile)
	}

	pidStr := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		return fmt.Errorf("invalid PID in %s: %s (remove file manually if daemon is not running)", pidFile, pidStr)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		os.Remove(pidFile)
		return nil
	}

	// Signal 0 probes for existence without touching the process
	err = process.Signal(syscall.Signal(0))
	if err != nil {
		os.Remove(pidFile)
		return nil
	}

	return fmt.Errorf("daemon already running with PID %d (stop it first or remove %s if it's stale)", pid, pidFile)
}

// writePIDFile writes the current process PID to a file
func writePIDFile(pidFile string) error {
	pid := os.Getpid()
	return os.WriteFile(pidFile, []byte(fmt.Sprintf("%d\n", pid)), 0600)
}

// initializeLogger sets up the structured logger with the configured
// level and backend, preferring journald when systemd-cat is available.
func initializeLogger() error {
	config := logger.Config{
		Level:     "info",
		Format:    "json",
		Component: "daemon",
	}
	logFile := defaultLogFile

	if chimeConfig, err := state.LoadChimeConfig(); err == nil && chimeConfig.Logging != nil {
		if chimeConfig.Logging.Level != "" {
			config.Level = chimeConfig.Logging.Level
		}
		if chimeConfig.Logging.Format != "" {
			config.Format = chimeConfig.Logging.Format
		}
		if chimeConfig.Logging.File != "" {
			logFile = chimeConfig.Logging.File
		}
	}

	useJournald := false
	if _, err := exec.LookPath("systemd-cat"); err == nil {
		useJournald = true
	}

	var backends []logger.Backend
	emitter := logger.NewEmitter()

	if useJournald {
		journaldBackend, err := logger.NewJournaldBackend(config.Format)
		if err != nil {
			log.Printf("[WARN] Could not initialize journald backend: %v, falling back to file", err)
			useJournald = false
		} else {
			backends = append(backends, journaldBackend)
		}
	}

	if !useJournald {
		fileBackend, err := logger.NewFileBackend(logFile, config.Format)
		if err != nil {
			return fmt.Errorf("failed to initialize file backend: %w", err)
		}
		backends = append(backends, fileBackend)
	}

	logger.Init(config, backends, emitter)

	if useJournald {
		logger.Info("Logging initialized",
			logger.Field{Key: "backend", Value: "journald"},
			logger.Field{Key: "format", Value: config.Format})
	} else {
		logger.Info("Logging initialized",
			logger.Field{Key: "backend", Value: "file"},
			logger.Field{Key: "file", Value: logFile},
			logger.Field{Key: "format", Value: config.Format})
	}

	return nil
}
