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
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chimed/chime/daemon/logger"
	"github.com/chimed/chime/widgets"
)

// widgetPollInterval is how often each running widget is polled for its
// auxiliary status payload.
const widgetPollInterval = 30 * time.Second

// WidgetInfo describes one widget for the widget-list command.
type WidgetInfo struct {
	Name     string          `json:"name"`
	Version  string          `json:"version,omitempty"`
	Enabled  bool            `json:"enabled"`
	Running  bool            `json:"running"`
	LastPoll json.RawMessage `json:"last_poll,omitempty"`
}

// runningWidget is one live widget subprocess.
type runningWidget struct {
	name     string
	client   *widgets.WidgetClient
	provider widgets.Provider
	version  string
	cancel   context.CancelFunc

	mu       sync.Mutex
	lastPoll json.RawMessage
}

// widgetRunner owns the widget subprocess lifecycle: discovery, startup,
// the per-widget poll loop, status line publication and shutdown.
type widgetRunner struct {
	manager   *widgets.WidgetManager
	configDir string

	mu      sync.RWMutex
	running map[string]*runningWidget
}

func newWidgetRunner(configDir string) *widgetRunner {
	return &widgetRunner{
		manager:   widgets.NewWidgetManager(),
		configDir: configDir,
		running:   make(map[string]*runningWidget),
	}
}

// Start launches one widget subprocess, configures it from
// <configdir>/widgets/<name>.json when present and begins its poll loop.
func (r *widgetRunner) Start(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.running[name]; exists {
		return fmt.Errorf("widget already running: %s", name)
	}

	path, err := r.manager.FindWidget(name)
	if err != nil {
		return err
	}

	client, err := widgets.NewWidgetClient(path)
	if err != nil {
		return fmt.Errorf("failed to start widget %s: %w", name, err)
	}

	provider, err := client.Dispense()
	if err != nil {
		client.Close()
		return fmt.Errorf("failed to dispense widget %s: %w", name, err)
	}

	meta, err := provider.Metadata(ctx)
	if err != nil {
		client.Close()
		return fmt.Errorf("failed to query widget metadata for %s: %w", name, err)
	}

	configPath := filepath.Join(r.configDir, "widgets", name+".json")
	if configJSON, err := os.ReadFile(configPath); err == nil {
		if err := provider.Configure(ctx, configJSON); err != nil {
			client.Close()
			return fmt.Errorf("failed to configure widget %s: %w", name, err)
		}
	} else if !os.IsNotExist(err) {
		client.Close()
		return fmt.Errorf("failed to read widget config for %s: %w", name, err)
	}

	pollCtx, cancel := context.WithCancel(context.Background())
	w := &runningWidget{
		name:     name,
		client:   client,
		provider: provider,
		version:  meta.Version,
		cancel:   cancel,
	}
	r.running[name] = w

	go w.pollLoop(pollCtx)

	logger.Info("Widget started",
		logger.Field{Key: "widget", Value: name},
		logger.Field{Key: "version", Value: meta.Version})
	return nil
}

// Stop shuts one widget down and kills its subprocess.
func (r *widgetRunner) Stop(ctx context.Context, name string) error {
	r.mu.Lock()
	w, exists := r.running[name]
	if exists {
		delete(r.running, name)
	}
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("widget not running: %s", name)
	}

	w.cancel()
	if err := w.provider.Shutdown(ctx); err != nil {
		logger.Warn("Widget shutdown returned error",
			logger.Field{Key: "widget", Value: name},
			logger.Field{Key: "error", Value: err.Error()})
	}
	w.client.Close()

	logger.Info("Widget stopped", logger.Field{Key: "widget", Value: name})
	return nil
}

// PublishLine pushes the rendered status line to every running widget.
func (r *widgetRunner) PublishLine(ctx context.Context, line interface{}) {
	lineJSON, err := json.Marshal(line)
	if err != nil {
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.running {
		if err := w.provider.Publish(ctx, lineJSON); err != nil {
			logger.Warn("Failed to publish line to widget",
				logger.Field{Key: "widget", Value: w.name},
				logger.Field{Key: "error", Value: err.Error()})
		}
	}
}

// Action forwards a click or CLI action to a running widget.
func (r *widgetRunner) Action(ctx context.Context, name, action string, args []string) ([]byte, error) {
	r.mu.RLock()
	w, exists := r.running[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("widget not running: %s", name)
	}
	return w.provider.Action(ctx, action, args)
}

// List merges installed widgets with the running set.
func (r *widgetRunner) List(enabled map[string]bool) ([]WidgetInfo, error) {
	installed, err := r.manager.ListWidgets()
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var infos []WidgetInfo
	for _, name := range installed {
		info := WidgetInfo{Name: name, Enabled: enabled[name]}
		if w, ok := r.running[name]; ok {
			info.Running = true
			info.Version = w.version
			w.mu.Lock()
			info.LastPoll = w.lastPoll
			w.mu.Unlock()
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Close stops every running widget.
func (r *widgetRunner) Close() {
	r.mu.Lock()
	running := r.running
	r.running = make(map[string]*runningWidget)
	r.mu.Unlock()

	for _, w := range running {
		w.cancel()
		w.provider.Shutdown(context.Background())
		w.client.Close()
	}
}

// pollLoop polls the widget on its own interval, independent of the
// device poll cycle, and keeps the latest payload for widget-list.
func (w *runningWidget) pollLoop(ctx context.Context) {
	w.pollOnce(ctx)

	ticker := time.NewTicker(widgetPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.pollOnce(ctx)
		}
	}
}

func (w *runningWidget) pollOnce(ctx context.Context) {
	payload, err := w.provider.Poll(ctx)
	if err != nil {
		logger.Warn("Widget poll failed",
			logger.Field{Key: "widget", Value: w.name},
			logger.Field{Key: "error", Value: err.Error()})
		return
	}

	w.mu.Lock()
	w.lastPoll = payload
	w.mu.Unlock()
}
