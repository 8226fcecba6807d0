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

package widgets

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

// WidgetClient wraps a go-plugin client for lifecycle management
type WidgetClient struct {
	client    *plugin.Client
	rpcClient plugin.ClientProtocol
}

// NewWidgetClient creates a new widget client and starts the widget process
func NewWidgetClient(widgetPath string) (*WidgetClient, error) {
	// Suppress plugin framework logs unless debugging
	logLevel := hclog.Error
	output := io.Discard
	if os.Getenv("CHIME_DEBUG") != "" {
		logLevel = hclog.Debug
		output = os.Stderr
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "widget",
		Output: output,
		Level:  logLevel,
	})

	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			"widget": &RPCWidget{},
		},
		Cmd:    exec.Command(widgetPath),
		Logger: logger,
		AllowedProtocols: []plugin.Protocol{
			plugin.ProtocolNetRPC,
		},
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	return &WidgetClient{
		client:    client,
		rpcClient: rpcClient,
	}, nil
}

// Dispense dispenses the widget provider
func (c *WidgetClient) Dispense() (Provider, error) {
	raw, err := c.rpcClient.Dispense("widget")
	if err != nil {
		return nil, fmt.Errorf("failed to dispense widget: %w", err)
	}

	provider, ok := raw.(Provider)
	if !ok {
		return nil, fmt.Errorf("dispensed widget is not a Provider")
	}

	return provider, nil
}

// Close terminates the widget process
func (c *WidgetClient) Close() error {
	if c.client != nil {
		c.client.Kill()
	}
	return nil
}
