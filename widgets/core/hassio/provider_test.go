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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configure(t *testing.T, p *HassioProvider, baseURL string, entities []string) {
	t.Helper()
	config, err := json.Marshal(HassioConfig{
		BaseURL:         baseURL,
		Token:           "test-token",
		Entities:        entities,
		StatusEntity:    "sensor.chime_buds",
		CacheTTLSeconds: 30,
	})
	require.NoError(t, err)
	require.NoError(t, p.Configure(context.Background(), config))
}

func TestConfigureRejectsInvalid(t *testing.T) {
	p := NewHassioProvider()

	err := p.Configure(context.Background(), []byte(`{"base_url":"ftp://x","token":""}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widget hassio: invalid base URL")
	assert.Contains(t, err.Error(), "token cannot be empty")
}

func TestPollFetchesEntityStates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/states/switch.desk_lamp":
			fmt.Fprint(w, `{"state":"on"}`)
		case "/api/states/sensor.temperature":
			fmt.Fprint(w, `{"state":"21.5"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	p := NewHassioProvider()
	configure(t, p, server.URL, []string{"switch.desk_lamp", "sensor.temperature", "sensor.missing"})

	data, err := p.Poll(context.Background())
	require.NoError(t, err)

	var states map[string]string
	require.NoError(t, json.Unmarshal(data, &states))
	assert.Equal(t, "on", states["switch.desk_lamp"])
	assert.Equal(t, "21.5", states["sensor.temperature"])
	assert.Equal(t, "unavailable", states["sensor.missing"])
}

func TestPollServesFromCache(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{"state":"on"}`)
	}))
	defer server.Close()

	p := NewHassioProvider()
	configure(t, p, server.URL, []string{"switch.desk_lamp"})

	clock := time.Now()
	p.now = func() time.Time { return clock }

	_, err := p.Poll(context.Background())
	require.NoError(t, err)
	_, err = p.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load(), "second poll within TTL should hit the cache")

	clock = clock.Add(31 * time.Second)
	_, err = p.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load(), "expired cache entry should refetch")
}

func TestPublishWritesStatusEntity(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/states/sensor.chime_buds", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	p := NewHassioProvider()
	configure(t, p, server.URL, nil)

	line := []byte(`{"full_text":"Buds2 LW53 48RW","color":"#00FF00","combined":48}`)
	require.NoError(t, p.Publish(context.Background(), line))

	assert.Equal(t, "Buds2 LW53 48RW", received["state"])
	attrs := received["attributes"].(map[string]interface{})
	assert.Equal(t, float64(48), attrs["combined_battery"])
}

func TestActionToggle(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/services/homeassistant/toggle", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	p := NewHassioProvider()
	configure(t, p, server.URL, nil)

	_, err := p.Action(context.Background(), "toggle", []string{"switch.desk_lamp"})
	require.NoError(t, err)
	assert.Equal(t, "switch.desk_lamp", received["entity_id"])

	_, err = p.Action(context.Background(), "toggle", nil)
	assert.Error(t, err)

	_, err = p.Action(context.Background(), "reboot", nil)
	assert.Error(t, err)
}

func TestUnconfiguredProvider(t *testing.T) {
	p := NewHassioProvider()

	_, err := p.Poll(context.Background())
	assert.Error(t, err)

	err = p.Publish(context.Background(), []byte(`{}`))
	assert.Error(t, err)
}
