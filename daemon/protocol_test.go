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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRequestOmitEmpty tests that unused request fields stay off the wire
func TestRequestOmitEmpty(t *testing.T) {
	req := Request{
		Command: "line",
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var jsonMap map[string]interface{}
	err = json.Unmarshal(data, &jsonMap)
	require.NoError(t, err)

	// Only command should be present
	assert.Contains(t, jsonMap, "command")
	assert.NotContains(t, jsonMap, "mode")
	assert.NotContains(t, jsonMap, "enabled")
	assert.NotContains(t, jsonMap, "widget")
	assert.NotContains(t, jsonMap, "key")
	assert.NotContains(t, jsonMap, "filter")
}

// TestRequestEnabledRoundTrip tests that an explicit false survives marshaling
func TestRequestEnabledRoundTrip(t *testing.T) {
	enabled := false
	req := Request{
		Command: "touchpad-set",
		Enabled: &enabled,
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded Request
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.Enabled)
	assert.False(t, *decoded.Enabled)
}

// TestResponseOmitEmpty tests that empty response fields are omitted
func TestResponseOmitEmpty(t *testing.T) {
	resp := Response{
		Success: true,
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var jsonMap map[string]interface{}
	err = json.Unmarshal(data, &jsonMap)
	require.NoError(t, err)

	// Only success should be present
	assert.Contains(t, jsonMap, "success")
	assert.NotContains(t, jsonMap, "message")
	assert.NotContains(t, jsonMap, "error")
	assert.NotContains(t, jsonMap, "data")
}

// TestLogFilterRoundTrip tests the logs-subscribe filter payload
func TestLogFilterRoundTrip(t *testing.T) {
	req := Request{
		Command: "logs-subscribe",
		LogFilter: &LogFilter{
			Level:     "debug",
			Component: "poller",
		},
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded Request
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.LogFilter)
	assert.Equal(t, "debug", decoded.LogFilter.Level)
	assert.Equal(t, "poller", decoded.LogFilter.Component)
}
