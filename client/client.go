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

// Package client provides a client library for communicating with the Chime daemon.
package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/chimed/chime/daemon"
)

// GetSocketPath returns the socket path, preferring CHIME_SOCKET_PATH env var
func GetSocketPath() string {
	if path := os.Getenv("CHIME_SOCKET_PATH"); path != "" {
		return path
	}
	return "/run/chime.sock"
}

func Send(req daemon.Request) (*daemon.Response, error) {
	conn, err := net.Dial("unix", GetSocketPath())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon (is it running?): %w", err)
	}
	defer conn.Close()

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	data = append(data, '\n')
	if _, err = conn.Write(data); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp daemon.Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &resp, nil
}

// StreamLogs subscribes to the daemon's log stream and invokes handler
// for each JSON log line. It blocks until the daemon closes the stream
// or the handler returns an error.
func StreamLogs(filter *daemon.LogFilter, handler func(logData []byte) error) error {
	conn, err := net.Dial("unix", GetSocketPath())
	if err != nil {
		return fmt.Errorf("failed to connect to daemon (is it running?): %w", err)
	}
	defer conn.Close()

	req := daemon.Request{
		Command:   "logs-subscribe",
		LogFilter: filter,
	}
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	if _, err := conn.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("log stream closed: %w", err)
		}
		if err := handler(line); err != nil {
			return err
		}
	}
}
