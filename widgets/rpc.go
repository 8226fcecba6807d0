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
	"context"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// Handshake is used to verify that client and server are compatible.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "CHIME_WIDGET",
	MagicCookieValue: "status",
}

// Provider is the interface that all widgets must implement for RPC
// communication. Configs and status blocks are JSON-encoded so the core
// stays type-agnostic about widget internals.
type Provider interface {
	// Metadata returns widget information
	Metadata(ctx context.Context) (MetadataResponse, error)

	// Configure applies configuration (config is JSON-encoded)
	Configure(ctx context.Context, configJSON []byte) error

	// Poll returns the widget's current status block (JSON-encoded)
	Poll(ctx context.Context) ([]byte, error)

	// Publish delivers a rendered earbuds status line to the widget
	// (lineJSON is the JSON-encoded line)
	Publish(ctx context.Context, lineJSON []byte) error

	// Action executes a named widget action (e.g., "toggle")
	Action(ctx context.Context, name string, args []string) ([]byte, error)

	// Shutdown flushes widget state before the process is killed
	Shutdown(ctx context.Context) error
}

// ActionDescriptor describes an action a widget exposes over the CLI
type ActionDescriptor struct {
	Name  string   `json:"name"`           // Action name (e.g., "toggle")
	Short string   `json:"short"`          // Short description
	Args  []string `json:"args,omitempty"` // Positional argument names
}

// MetadataResponse contains widget metadata
type MetadataResponse struct {
	Name          string                 `json:"name"`
	Version       string                 `json:"version"`
	Description   string                 `json:"description"`
	ConfigPath    string                 `json:"config_path"`
	DefaultConfig map[string]interface{} `json:"default_config,omitempty"` // Default configuration for the widget
	Actions       []ActionDescriptor     `json:"actions,omitempty"`        // Actions exposed via "chime widget run"
}

// RPCWidget is the go-plugin Plugin implementation
type RPCWidget struct {
	plugin.Plugin
	Impl Provider
}

// Server returns the RPC server for this widget
func (p *RPCWidget) Server(broker *plugin.MuxBroker) (interface{}, error) {
	return &RPCServer{Impl: p.Impl}, nil
}

// Client returns the RPC client for this widget
func (p *RPCWidget) Client(broker *plugin.MuxBroker, client *rpc.Client) (interface{}, error) {
	return &RPCClient{client: client}, nil
}

// ============================================================================
// RPC Server Implementation
// ============================================================================

// RPCServer is the RPC server that wraps Provider
type RPCServer struct {
	Impl Provider
}

type MetadataArgs struct{}
type MetadataReply struct {
	Error    string
	Metadata MetadataResponse
}

func (s *RPCServer) Metadata(args *MetadataArgs, reply *MetadataReply) error {
	metadata, err := s.Impl.Metadata(context.Background())
	if err != nil {
		reply.Error = err.Error()
		return nil
	}
	reply.Metadata = metadata
	return nil
}

type ConfigureArgs struct {
	ConfigJSON []byte
}
type ConfigureReply struct {
	Error string
}

func (s *RPCServer) Configure(args *ConfigureArgs, reply *ConfigureReply) error {
	err := s.Impl.Configure(context.Background(), args.ConfigJSON)
	if err != nil {
		reply.Error = err.Error()
	}
	return nil
}

type PollArgs struct{}
type PollReply struct {
	Error      string
	StatusJSON []byte
}

func (s *RPCServer) Poll(args *PollArgs, reply *PollReply) error {
	statusJSON, err := s.Impl.Poll(context.Background())
	if err != nil {
		reply.Error = err.Error()
		return nil
	}
	reply.StatusJSON = statusJSON
	return nil
}

type PublishArgs struct {
	LineJSON []byte
}
type PublishReply struct {
	Error string
}

func (s *RPCServer) Publish(args *PublishArgs, reply *PublishReply) error {
	err := s.Impl.Publish(context.Background(), args.LineJSON)
	if err != nil {
		reply.Error = err.Error()
	}
	return nil
}

type ActionArgs struct {
	Name string
	Args []string
}
type ActionReply struct {
	Error  string
	Output []byte
}

func (s *RPCServer) Action(args *ActionArgs, reply *ActionReply) error {
	output, err := s.Impl.Action(context.Background(), args.Name, args.Args)
	if err != nil {
		reply.Error = err.Error()
		return nil
	}
	reply.Output = output
	return nil
}

type ShutdownArgs struct{}
type ShutdownReply struct {
	Error string
}

func (s *RPCServer) Shutdown(args *ShutdownArgs, reply *ShutdownReply) error {
	err := s.Impl.Shutdown(context.Background())
	if err != nil {
		reply.Error = err.Error()
	}
	return nil
}

// ============================================================================
// RPC Client Implementation
// ============================================================================

// RPCClient is the RPC client that implements Provider
type RPCClient struct {
	client *rpc.Client
}

func (c *RPCClient) Metadata(ctx context.Context) (MetadataResponse, error) {
	var reply MetadataReply
	err := c.client.Call("Plugin.Metadata", &MetadataArgs{}, &reply)
	if err != nil {
		return MetadataResponse{}, err
	}
	if reply.Error != "" {
		return MetadataResponse{}, ErrFromString(reply.Error)
	}
	return reply.Metadata, nil
}

func (c *RPCClient) Configure(ctx context.Context, configJSON []byte) error {
	var reply ConfigureReply
	err := c.client.Call("Plugin.Configure", &ConfigureArgs{ConfigJSON: configJSON}, &reply)
	if err != nil {
		return err
	}
	if reply.Error != "" {
		return ErrFromString(reply.Error)
	}
	return nil
}

func (c *RPCClient) Poll(ctx context.Context) ([]byte, error) {
	var reply PollReply
	err := c.client.Call("Plugin.Poll", &PollArgs{}, &reply)
	if err != nil {
		return nil, err
	}
	if reply.Error != "" {
		return nil, ErrFromString(reply.Error)
	}
	return reply.StatusJSON, nil
}

func (c *RPCClient) Publish(ctx context.Context, lineJSON []byte) error {
	var reply PublishReply
	err := c.client.Call("Plugin.Publish", &PublishArgs{LineJSON: lineJSON}, &reply)
	if err != nil {
		return err
	}
	if reply.Error != "" {
		return ErrFromString(reply.Error)
	}
	return nil
}

func (c *RPCClient) Action(ctx context.Context, name string, args []string) ([]byte, error) {
	var reply ActionReply
	err := c.client.Call("Plugin.Action", &ActionArgs{
		Name: name,
		Args: args,
	}, &reply)
	if err != nil {
		return nil, err
	}
	if reply.Error != "" {
		return nil, ErrFromString(reply.Error)
	}
	return reply.Output, nil
}

func (c *RPCClient) Shutdown(ctx context.Context) error {
	var reply ShutdownReply
	err := c.client.Call("Plugin.Shutdown", &ShutdownArgs{}, &reply)
	if err != nil {
		return err
	}
	if reply.Error != "" {
		return ErrFromString(reply.Error)
	}
	return nil
}

// ============================================================================
// Helper Functions
// ============================================================================

// ErrFromString creates an error from a string
func ErrFromString(s string) error {
	if s == "" {
		return nil
	}
	return &rpcError{msg: s}
}

type rpcError struct {
	msg string
}

func (e *rpcError) Error() string {
	return e.msg
}

// ServeWidget is a helper to serve a widget using the generic protocol
func ServeWidget(impl Provider) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			"widget": &RPCWidget{Impl: impl},
		},
	})
}
