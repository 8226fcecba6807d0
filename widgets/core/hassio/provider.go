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

// Package main implements the Home Assistant bridge widget for chime.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/chimed/chime/validation"
	"github.com/chimed/chime/widgets"
)

const defaultCacheTTL = 30 * time.Second

// HassioConfig is the widget configuration (hassio.json)
type HassioConfig struct {
	BaseURL         string   `json:"base_url"`             // Home Assistant base URL, e.g. http://homeassistant.local:8123
	Token           string   `json:"token"`                // Long-lived access token
	Entities        []string `json:"entities"`             // Entity IDs to report in Poll
	StatusEntity    string   `json:"status_entity"`        // Sensor entity that receives the earbuds status line
	CacheTTLSeconds int      `json:"cache_ttl_seconds"`    // Entity state cache lifetime (default: 30)
	TimeoutSeconds  int      `json:"timeout_sec,omitempty"` // HTTP timeout (default: 10)
}

// entityState is one cached Home Assistant entity state
type entityState struct {
	State     string    `json:"state"`
	FetchedAt time.Time `json:"-"`
}

// HassioProvider implements the widget Provider interface
type HassioProvider struct {
	mu     sync.Mutex
	config *HassioConfig
	client *http.Client
	cache  map[string]entityState
	ttl    time.Duration
	now    func() time.Time
}

// NewHassioProvider creates an unconfigured provider. Configure must run
// before Poll or Publish.
func NewHassioProvider() *HassioProvider {
	return &HassioProvider{
		cache: make(map[string]entityState),
		ttl:   defaultCacheTTL,
		now:   time.Now,
	}
}

// Metadata returns widget information
func (p *HassioProvider) Metadata(ctx context.Context) (widgets.MetadataResponse, error) {
	return widgets.MetadataResponse{
		Name:        "hassio",
		Version:     "1.0.0",
		Description: "Bridges earbuds status to Home Assistant",
		ConfigPath:  "/etc/chime/hassio.json",
		DefaultConfig: map[string]interface{}{
			"base_url":          "http://homeassistant.local:8123",
			"token":             "",
			"entities":          []string{},
			"status_entity":     "sensor.chime_buds",
			"cache_ttl_seconds": 30,
		},
		Actions: []widgets.ActionDescriptor{
			{Name: "toggle", Short: "Toggle a Home Assistant entity", Args: []string{"entity_id"}},
			{Name: "state", Short: "Show the cached state of an entity", Args: []string{"entity_id"}},
		},
	}, nil
}

// Configure applies the widget configuration
func (p *HassioProvider) Configure(ctx context.Context, configJSON []byte) error {
	var config HassioConfig
	if err := json.Unmarshal(configJSON, &config); err != nil {
		return fmt.Errorf("failed to parse hassio config: %w", err)
	}

	v := validation.NewCollector().WithContext("widget hassio")
	v.CheckMsg(validation.ValidateHTTPURL(config.BaseURL), "invalid base URL")
	if config.Token == "" {
		v.Check(fmt.Errorf("token cannot be empty"))
	}
	if err := v.Error(); err != nil {
		return err
	}

	timeout := 10 * time.Second
	if config.TimeoutSeconds > 0 {
		timeout = time.Duration(config.TimeoutSeconds) * time.Second
	}
	ttl := defaultCacheTTL
	if config.CacheTTLSeconds > 0 {
		ttl = time.Duration(config.CacheTTLSeconds) * time.Second
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.config = &config
	p.client = &http.Client{Timeout: timeout}
	p.cache = make(map[string]entityState)
	p.ttl = ttl
	return nil
}

// Poll returns the configured entity states, served from cache within the TTL
func (p *HassioProvider) Poll(ctx context.Context) ([]byte, error) {
	p.mu.Lock()
	config := p.config
	p.mu.Unlock()
	if config == nil {
		return nil, fmt.Errorf("hassio widget not configured")
	}

	states := make(map[string]string, len(config.Entities))
	for _, entity := range config.Entities {
		state, err := p.entityState(ctx, entity)
		if err != nil {
			states[entity] = "unavailable"
			continue
		}
		states[entity] = state
	}

	return json.Marshal(states)
}

// Publish mirrors a rendered status line into the configured sensor entity
func (p *HassioProvider) Publish(ctx context.Context, lineJSON []byte) error {
	p.mu.Lock()
	config := p.config
	p.mu.Unlock()
	if config == nil {
		return fmt.Errorf("hassio widget not configured")
	}
	if config.StatusEntity == "" {
		return nil
	}

	var line struct {
		FullText string `json:"full_text"`
		Color    string `json:"color"`
		Combined int    `json:"combined"`
	}
	if err := json.Unmarshal(lineJSON, &line); err != nil {
		return fmt.Errorf("failed to parse status line: %w", err)
	}

	body := map[string]interface{}{
		"state": line.FullText,
		"attributes": map[string]interface{}{
			"combined_battery": line.Combined,
			"color":            line.Color,
		},
	}

	path := fmt.Sprintf("/api/states/%s", config.StatusEntity)
	_, err := p.request(ctx, http.MethodPost, path, body)
	return err
}

// Action executes a widget action
func (p *HassioProvider) Action(ctx context.Context, name string, args []string) ([]byte, error) {
	switch name {
	case "toggle":
		if len(args) != 1 {
			return nil, fmt.Errorf("toggle requires exactly one entity_id")
		}
		body := map[string]interface{}{"entity_id": args[0]}
		return p.request(ctx, http.MethodPost, "/api/services/homeassistant/toggle", body)
	case "state":
		if len(args) != 1 {
			return nil, fmt.Errorf("state requires exactly one entity_id")
		}
		state, err := p.entityState(ctx, args[0])
		if err != nil {
			return nil, err
		}
		return []byte(state), nil
	default:
		return nil, fmt.Errorf("unknown action: %s", name)
	}
}

// Shutdown has nothing to flush
func (p *HassioProvider) Shutdown(ctx context.Context) error {
	return nil
}

// entityState returns the entity's state, fetching it when the cached copy
// is stale
func (p *HassioProvider) entityState(ctx context.Context, entity string) (string, error) {
	p.mu.Lock()
	cached, ok := p.cache[entity]
	fresh := ok && p.now().Sub(cached.FetchedAt) < p.ttl
	p.mu.Unlock()
	if fresh {
		return cached.State, nil
	}

	data, err := p.request(ctx, http.MethodGet, fmt.Sprintf("/api/states/%s", entity), nil)
	if err != nil {
		return "", err
	}

	var state entityState
	if err := json.Unmarshal(data, &state); err != nil {
		return "", fmt.Errorf("failed to parse entity state: %w", err)
	}

	p.mu.Lock()
	p.cache[entity] = entityState{State: state.State, FetchedAt: p.now()}
	p.mu.Unlock()
	return state.State, nil
}

// request performs an authenticated call against the Home Assistant API
func (p *HassioProvider) request(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	p.mu.Lock()
	config := p.config
	client := p.client
	p.mu.Unlock()
	if config == nil {
		return nil, fmt.Errorf("hassio widget not configured")
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, config.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+config.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to Home Assistant failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Home Assistant returned %s: %s", resp.Status, data)
	}
	return data, nil
}
