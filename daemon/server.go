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

package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/chimed/chime/buds"
	"github.com/chimed/chime/daemon/logger"
	"github.com/chimed/chime/notify"
	"github.com/chimed/chime/state"
	"github.com/chimed/chime/types"
)

// GetSocketPath returns the socket path, preferring CHIME_SOCKET_PATH env var
func GetSocketPath() string {
	if path := os.Getenv("CHIME_SOCKET_PATH"); path != "" {
		return path
	}
	return "/run/chime.sock"
}

type handlerFunc func(req Request) Response

// Server is the Chime daemon: it owns the poll loop, the widget
// subprocesses, the history store and the Unix socket command surface.
type Server struct {
	listener net.Listener
	done     chan struct{}
	cancel   context.CancelFunc
	handlers map[string]handlerFunc

	device  Device
	config  *types.BudsConfig
	chime   *types.ChimeConfig
	poller  *Poller
	history *History
	widgets *widgetRunner
	sink    *notify.DBusSink
}

// NewServer loads configuration, builds the poll pipeline and binds the
// Unix socket.
func NewServer(device Device) (*Server, error) {
	config, err := state.LoadBudsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load buds config: %w", err)
	}

	chimeConfig, err := state.LoadChimeConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load chime config: %w", err)
	}

	s := &Server{
		done:    make(chan struct{}),
		device:  device,
		config:  config,
		chime:   chimeConfig,
		widgets: newWidgetRunner(state.GetConfigDir()),
	}

	// Notifications go out over the session bus. A missing bus is not
	// fatal; the daemon still renders lines, it just cannot notify.
	var sink notify.Sink
	if config.Notifications {
		dbusSink, err := notify.NewDBusSink()
		if err != nil {
			logger.Warn("Desktop notifications unavailable",
				logger.Field{Key: "error", Value: err.Error()})
		} else {
			s.sink = dbusSink
			cooldown := time.Duration(config.NotifyCooldownMS) * time.Millisecond
			sink = notify.NewDeduper(dbusSink, cooldown)
		}
	}

	if hc := chimeConfig.History; hc != nil && hc.Enabled {
		path := hc.Path
		if path == "" {
			path = filepath.Join(state.GetConfigDir(), "history.db")
		}
		history, err := OpenHistory(path)
		if err != nil {
			return nil, err
		}
		if err := history.Prune(hc.RetentionDays); err != nil {
			logger.Warn("Failed to prune battery history",
				logger.Field{Key: "error", Value: err.Error()})
		}
		s.history = history
	}

	poller, err := NewPoller(*config, device, sink, s.history, s.widgets)
	if err != nil {
		return nil, err
	}
	s.poller = poller

	// Remove stale socket from previous run
	socketPath := GetSocketPath()
	os.Remove(socketPath)

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(socketPath, 0666); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.handlers = map[string]handlerFunc{
		"line":           func(req Request) Response { return s.handleLine() },
		"snapshot":       func(req Request) Response { return s.handleSnapshot() },
		"eq-set":         s.handleEqSet,
		"eq-step":        s.handleEqStep,
		"toggle-anc":     func(req Request) Response { return s.handleToggleANC() },
		"toggle-amb":     func(req Request) Response { return s.handleToggleAmbient() },
		"touchpad-set":   s.handleTouchpadSet,
		"connect":        func(req Request) Response { return s.handleConnect() },
		"disconnect":     func(req Request) Response { return s.handleDisconnect() },
		"restart":        func(req Request) Response { return s.handleRestart() },
		"refresh":        func(req Request) Response { return s.handleRefresh() },
		"history":        s.handleHistory,
		"widget-list":    func(req Request) Response { return s.handleWidgetList() },
		"widget-enable":  s.handleWidgetEnable,
		"widget-disable": s.handleWidgetDisable,
		"widget-action":  s.handleWidgetAction,
		"config-get":     s.handleConfigGet,
		"config-set":     s.handleConfigSet,
	}

	return s, nil
}

// Start launches the enabled widgets and the poll loop, then serves
// connections until Stop is called.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for name, widgetState := range s.chime.Widgets {
		if !widgetState.Enabled {
			continue
		}
		if err := s.widgets.Start(ctx, name); err != nil {
			logger.Warn("Failed to start widget",
				logger.Field{Key: "widget", Value: name},
				logger.Field{Key: "error", Value: err.Error()})
		}
	}

	go s.poller.Run(ctx)

	logger.Info("Daemon listening",
		logger.Field{Key: "socket", Value: GetSocketPath()},
		logger.Field{Key: "interval", Value: s.config.Interval})

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return nil
			default:
				logger.Error("Failed to accept connection",
					logger.Field{Key: "error", Value: err.Error()})
				continue
			}
		}

		go s.handleConnection(conn)
	}
}

func (s *Server) Stop() error {
	close(s.done)
	if s.cancel != nil {
		s.cancel()
	}
	if s.listener != nil {
		s.listener.Close()
	}
	s.widgets.Close()
	if s.history != nil {
		s.history.Close()
	}
	if s.sink != nil {
		s.sink.Close()
	}
	os.Remove(GetSocketPath())
	return nil
}

func (s *Server) handleConnection(conn net.Conn) {
	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil {
		conn.Close()
		return
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendResponse(conn, Response{
			Success: false,
			Error:   fmt.Sprintf("invalid request: %v", err),
		})
		conn.Close()
		return
	}

	// Handle streaming log subscription specially (keeps connection open)
	if req.Command == "logs-subscribe" {
		defer conn.Close()

		filter := req.LogFilter
		if filter == nil {
			filter = &LogFilter{}
		}

		s.handleLogsSubscribe(conn, filter)
		return
	}

	defer conn.Close()
	resp := s.handleRequest(req)
	s.sendResponse(conn, resp)
}

func (s *Server) handleRequest(req Request) Response {
	handler, exists := s.handlers[req.Command]
	if !exists {
		return Response{
			Success: false,
			Error:   fmt.Sprintf("unknown command: %s", req.Command),
		}
	}
	return handler(req)
}

func (s *Server) sendResponse(conn net.Conn, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Error("Failed to marshal response",
			logger.Field{Key: "error", Value: err.Error()})
		return
	}
	conn.Write(append(data, '\n'))
}

// handleLine returns the most recent rendered status line.
func (s *Server) handleLine() Response {
	line, connected := s.poller.Line()
	message := "Device connected"
	if !connected {
		message = "No device connected"
	}
	return Response{
		Success: true,
		Data:    line,
		Message: message,
	}
}

// handleSnapshot returns the raw last device snapshot.
func (s *Server) handleSnapshot() Response {
	snap := s.poller.Snapshot()
	if snap == nil {
		return Response{
			Success: false,
			Error:   "no device connected",
		}
	}
	return Response{
		Success: true,
		Data:    snap,
	}
}

func (s *Server) handleEqSet(req Request) Response {
	mode, err := buds.ParseEqualizerMode(req.Mode)
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	if err := s.device.SetEqualizer(context.Background(), mode); err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	s.poller.Refresh()
	return Response{
		Success: true,
		Message: fmt.Sprintf("Equalizer set to %s", mode.Name()),
		Data:    mode.Name(),
	}
}

// handleEqStep reads the last seen mode from the latest snapshot and
// steps the fixed mode cycle. No snapshot means the current mode is
// unknown and stepping starts from off.
func (s *Server) handleEqStep(req Request) Response {
	delta := req.Delta
	if delta == 0 {
		delta = 1
	}

	current := buds.EqOff
	if snap := s.poller.Snapshot(); snap != nil {
		current = snap.Equalizer
	}
	next := current.Step(delta)

	if err := s.device.SetEqualizer(context.Background(), next); err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	s.poller.Refresh()
	return Response{
		Success: true,
		Message: fmt.Sprintf("Equalizer set to %s", next.Name()),
		Data:    next.Name(),
	}
}

func (s *Server) handleToggleANC() Response {
	snap := s.poller.Snapshot()
	if snap == nil {
		return Response{Success: false, Error: "no device connected"}
	}

	enabled := !snap.NoiseReduction
	if err := s.device.SetNoiseReduction(context.Background(), enabled); err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	s.poller.Refresh()
	return Response{
		Success: true,
		Message: fmt.Sprintf("Noise reduction %s", onOff(enabled)),
	}
}

func (s *Server) handleToggleAmbient() Response {
	snap := s.poller.Snapshot()
	if snap == nil {
		return Response{Success: false, Error: "no device connected"}
	}

	enabled := !snap.AmbientSound
	if err := s.device.SetAmbientSound(context.Background(), enabled); err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	s.poller.Refresh()
	return Response{
		Success: true,
		Message: fmt.Sprintf("Ambient sound %s", onOff(enabled)),
	}
}

func (s *Server) handleTouchpadSet(req Request) Response {
	if req.Enabled == nil {
		return Response{Success: false, Error: "touchpad-set requires enabled: true or false"}
	}

	if err := s.device.SetTouchpad(context.Background(), *req.Enabled); err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	s.poller.Refresh()
	return Response{
		Success: true,
		Message: fmt.Sprintf("Touchpad %s", onOff(*req.Enabled)),
	}
}

func (s *Server) handleConnect() Response {
	if err := s.device.Connect(context.Background()); err != nil {
		return Response{Success: false, Error: err.Error()}
	}
	s.poller.Refresh()
	return Response{Success: true, Message: "Connect requested"}
}

func (s *Server) handleDisconnect() Response {
	if err := s.device.Disconnect(context.Background()); err != nil {
		return Response{Success: false, Error: err.Error()}
	}
	s.poller.Refresh()
	return Response{Success: true, Message: "Disconnect requested"}
}

func (s *Server) handleRestart() Response {
	if err := s.device.RestartDaemon(context.Background()); err != nil {
		return Response{Success: false, Error: err.Error()}
	}
	s.poller.Refresh()
	return Response{Success: true, Message: "Device daemon restarted"}
}

func (s *Server) handleRefresh() Response {
	s.poller.Refresh()
	return Response{Success: true, Message: "Poll scheduled"}
}

func (s *Server) handleHistory(req Request) Response {
	if s.history == nil {
		return Response{Success: false, Error: "battery history is disabled"}
	}

	hours := req.Hours
	if hours <= 0 {
		hours = 24
	}

	samples, err := s.history.Samples(time.Now().Add(-time.Duration(hours) * time.Hour))
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	return Response{
		Success: true,
		Data:    samples,
		Message: fmt.Sprintf("%d samples in the last %dh", len(samples), hours),
	}
}

func (s *Server) handleWidgetList() Response {
	chimeConfig, err := state.LoadChimeConfig()
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	enabled := make(map[string]bool)
	for name, widgetState := range chimeConfig.Widgets {
		enabled[name] = widgetState.Enabled
	}

	infos, err := s.widgets.List(enabled)
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	return Response{Success: true, Data: infos}
}

func (s *Server) handleWidgetEnable(req Request) Response {
	if req.Widget == "" {
		return Response{Success: false, Error: "widget name required"}
	}

	if err := s.setWidgetEnabled(req.Widget, true); err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	if err := s.widgets.Start(context.Background(), req.Widget); err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	return Response{
		Success: true,
		Message: fmt.Sprintf("Widget enabled: %s", req.Widget),
	}
}

func (s *Server) handleWidgetDisable(req Request) Response {
	if req.Widget == "" {
		return Response{Success: false, Error: "widget name required"}
	}

	if err := s.setWidgetEnabled(req.Widget, false); err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	if err := s.widgets.Stop(context.Background(), req.Widget); err != nil {
		// Disabling a widget that never started is fine; the saved
		// state is what matters.
		logger.Warn("Widget stop failed",
			logger.Field{Key: "widget", Value: req.Widget},
			logger.Field{Key: "error", Value: err.Error()})
	}

	return Response{
		Success: true,
		Message: fmt.Sprintf("Widget disabled: %s", req.Widget),
	}
}

func (s *Server) handleWidgetAction(req Request) Response {
	if req.Widget == "" || req.Action == "" {
		return Response{Success: false, Error: "widget and action required"}
	}

	output, err := s.widgets.Action(context.Background(), req.Widget, req.Action, req.Args)
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	return Response{
		Success: true,
		Data:    string(output),
	}
}

func (s *Server) setWidgetEnabled(name string, enabled bool) error {
	chimeConfig, err := state.LoadChimeConfig()
	if err != nil {
		return err
	}

	if chimeConfig.Widgets == nil {
		chimeConfig.Widgets = make(map[string]types.WidgetState)
	}
	widgetState := chimeConfig.Widgets[name]
	widgetState.Enabled = enabled
	chimeConfig.Widgets[name] = widgetState

	if err := state.SaveChimeConfig(chimeConfig); err != nil {
		return err
	}
	s.chime = chimeConfig
	return nil
}

func (s *Server) handleConfigGet(req Request) Response {
	config, err := state.LoadBudsConfig()
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	if req.Key == "" {
		return Response{Success: true, Data: config}
	}

	value, err := budsConfigValue(config, req.Key)
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}
	return Response{Success: true, Data: value}
}

// handleConfigSet updates one key, validates the result and persists it.
// The running pipeline keeps its current settings until the daemon is
// restarted.
func (s *Server) handleConfigSet(req Request) Response {
	if req.Key == "" {
		return Response{Success: false, Error: "config key required"}
	}

	config, err := state.LoadBudsConfig()
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	if err := setBudsConfigValue(config, req.Key, req.Value); err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	if err := state.SaveBudsConfig(config); err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	return Response{
		Success: true,
		Message: fmt.Sprintf("Set %s = %s. Restart the daemon to apply.", req.Key, req.Value),
	}
}

// handleLogsSubscribe handles streaming log subscription
// This is a special handler that keeps the connection open
func (s *Server) handleLogsSubscribe(conn net.Conn, filter *LogFilter) {
	subscriber := NewSocketLogSubscriber(conn, filter)

	emitter := logger.GetEmitter()
	if emitter == nil {
		logger.Error("Logger emitter not initialized")
		return
	}

	emitter.Subscribe(subscriber)
	defer func() {
		emitter.Unsubscribe(subscriber)
		subscriber.Close()
	}()

	logger.Info("Client subscribed to log stream",
		logger.Field{Key: "level", Value: filter.Level},
		logger.Field{Key: "component", Value: filter.Component})

	// Keep connection open until client disconnects
	buffer := make([]byte, 1)
	for {
		_, err := conn.Read(buffer)
		if err != nil {
			logger.Info("Client unsubscribed from log stream")
			return
		}
	}
}

func onOff(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
