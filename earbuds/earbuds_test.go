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

package earbuds

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimed/chime/buds"
)

const connectedJSON = `{
  "payload": {
    "batt_left": 53,
    "batt_right": 48,
    "batt_case": 84,
    "placement_left": 1,
    "placement_right": 1,
    "equalizer_type": 3,
    "ambient_sound_enabled": true,
    "noise_reduction": false,
    "tab_lock_status": {"tap_on": true, "touch_an_hold_on": true},
    "model": "Buds2"
  }
}`

// fakeRunner records invoked command lines and replays canned output.
type fakeRunner struct {
	commands []string
	output   []byte
	err      error
}

func (f *fakeRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.commands = append(f.commands, name+" "+strings.Join(args, " "))
	return f.output, f.err
}

func newTestClient(output string, err error) (*Client, *fakeRunner) {
	runner := &fakeRunner{output: []byte(output), err: err}
	client := NewClient("earbuds")
	client.run = runner.run
	return client, runner
}

// TestStatusConnected tests decoding a connected status payload.
func TestStatusConnected(t *testing.T) {
	client, runner := newTestClient(connectedJSON, nil)

	snap, err := client.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, runner.commands, 1)
	assert.Equal(t, "earbuds status -o json -q", runner.commands[0])

	assert.Equal(t, 53, snap.LeftBattery)
	assert.Equal(t, 48, snap.RightBattery)
	assert.Equal(t, 84, snap.CaseBattery)
	assert.Equal(t, buds.PlacementWearing, snap.PlacementLeft)
	assert.Equal(t, buds.PlacementWearing, snap.PlacementRight)
	assert.Equal(t, buds.EqDynamic, snap.Equalizer)
	assert.True(t, snap.AmbientSound)
	assert.False(t, snap.NoiseReduction)
	assert.False(t, snap.Touchpad.Locked())
	assert.Equal(t, "Buds2", snap.Model)
}

// TestStatusDisconnected tests the missing-payload path.
func TestStatusDisconnected(t *testing.T) {
	client, _ := newTestClient(`{"payload": null}`, nil)

	_, err := client.Status(context.Background())
	assert.ErrorIs(t, err, ErrDisconnected)
}

// TestStatusMalformed tests decode failures surface as errors.
func TestStatusMalformed(t *testing.T) {
	client, _ := newTestClient("not json at all", nil)

	_, err := client.Status(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrDisconnected)
}

// TestStatusCommandFailure tests run errors are wrapped.
func TestStatusCommandFailure(t *testing.T) {
	client, _ := newTestClient("", errors.New("exit status 1"))

	_, err := client.Status(context.Background())
	assert.ErrorContains(t, err, "earbuds status")
}

// TestStatusTouchpadLocked tests the locked gesture block.
func TestStatusTouchpadLocked(t *testing.T) {
	locked := strings.Replace(connectedJSON,
		`{"tap_on": true, "touch_an_hold_on": true}`,
		`{"tap_on": false, "touch_an_hold_on": false}`, 1)
	client, _ := newTestClient(locked, nil)

	snap, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Touchpad.Locked())
}

// TestControlCommands tests the exact command lines sent to the binary.
func TestControlCommands(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		call func(*Client) error
		want string
	}{
		{"set equalizer", func(c *Client) error { return c.SetEqualizer(ctx, buds.EqTreble) }, "earbuds set equalizer treble"},
		{"enable anc", func(c *Client) error { return c.SetNoiseReduction(ctx, true) }, "earbuds set anc true"},
		{"disable anc", func(c *Client) error { return c.SetNoiseReduction(ctx, false) }, "earbuds set anc false"},
		{"enable ambient", func(c *Client) error { return c.SetAmbientSound(ctx, true) }, "earbuds set ambientsound 1"},
		{"disable ambient", func(c *Client) error { return c.SetAmbientSound(ctx, false) }, "earbuds set ambientsound 0"},
		{"enable touchpad", func(c *Client) error { return c.SetTouchpad(ctx, true) }, "earbuds set touchpad true"},
		{"disable touchpad", func(c *Client) error { return c.SetTouchpad(ctx, false) }, "earbuds set touchpad false"},
		{"connect", func(c *Client) error { return c.Connect(ctx) }, "earbuds connect"},
		{"disconnect", func(c *Client) error { return c.Disconnect(ctx) }, "earbuds disconnect"},
		{"restart daemon", func(c *Client) error { return c.RestartDaemon(ctx) }, "earbuds -kd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, runner := newTestClient("", nil)
			require.NoError(t, tt.call(client))
			require.Len(t, runner.commands, 1)
			assert.Equal(t, tt.want, runner.commands[0])
		})
	}
}
