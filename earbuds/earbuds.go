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

// Package earbuds wraps the external `earbuds` control binary
// (LiveBudsCli). It turns the JSON status output into a buds.DeviceSnapshot
// and exposes the device control surface as one-shot commands. All parsing
// and reconciliation decisions live elsewhere; this package is I/O glue.
package earbuds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"

	"github.com/chimed/chime/buds"
)

// DefaultBinary is the expected name of the LiveBudsCli binary on PATH.
const DefaultBinary = "earbuds"

// ErrDisconnected is returned when the status command succeeds but reports
// no connected device. The caller renders a degraded line for the cycle
// and skips the reconciliation pipeline.
var ErrDisconnected = errors.New("no device connected")

// runFunc executes a command and returns its stdout. Swappable in tests.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Client invokes the earbuds binary.
type Client struct {
	binary string
	run    runFunc
}

// NewClient creates a client for the given binary path; empty selects
// DefaultBinary.
func NewClient(binary string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{binary: binary, run: execRun}
}

// statusPayload is the wire format of `earbuds status -o json -q`.
type statusPayload struct {
	Payload *devicePayload `json:"payload"`
}

type devicePayload struct {
	BattLeft      int              `json:"batt_left"`
	BattRight     int              `json:"batt_right"`
	BattCase      int              `json:"batt_case"`
	PlacementL    int              `json:"placement_left"`
	PlacementR    int              `json:"placement_right"`
	EqualizerType int              `json:"equalizer_type"`
	AmbientSound  bool             `json:"ambient_sound_enabled"`
	NoiseReduct   bool             `json:"noise_reduction"`
	TabLockStatus *tabLockStatus   `json:"tab_lock_status"`
	Model         string           `json:"model"`
}

type tabLockStatus struct {
	TapOn          bool `json:"tap_on"`
	TouchAndHoldOn bool `json:"touch_an_hold_on"`
}

// Status polls the device and returns a fresh snapshot. A missing payload
// means no device is connected; malformed output is a decode error. Either
// way no snapshot reaches the reconciliation core for this cycle.
func (c *Client) Status(ctx context.Context) (*buds.DeviceSnapshot, error) {
	out, err := c.run(ctx, c.binary, "status", "-o", "json", "-q")
	if err != nil {
		return nil, fmt.Errorf("failed to run %s status: %w", c.binary, err)
	}

	var status statusPayload
	if err := json.Unmarshal(out, &status); err != nil {
		return nil, fmt.Errorf("failed to parse %s status output: %w", c.binary, err)
	}
	if status.Payload == nil {
		return nil, ErrDisconnected
	}

	p := status.Payload
	snap := &buds.DeviceSnapshot{
		LeftBattery:    p.BattLeft,
		RightBattery:   p.BattRight,
		CaseBattery:    p.BattCase,
		PlacementLeft:  buds.Placement(p.PlacementL),
		PlacementRight: buds.Placement(p.PlacementR),
		Equalizer:      buds.EqualizerMode(p.EqualizerType),
		AmbientSound:   p.AmbientSound,
		NoiseReduction: p.NoiseReduct,
		Model:          p.Model,
	}
	if p.TabLockStatus != nil {
		snap.Touchpad = buds.TouchpadLock{
			TapOn:          p.TabLockStatus.TapOn,
			TouchAndHoldOn: p.TabLockStatus.TouchAndHoldOn,
		}
	} else {
		// No lock block means gestures are active, i.e. not locked.
		snap.Touchpad = buds.TouchpadLock{TapOn: true, TouchAndHoldOn: true}
	}
	return snap, nil
}

// SetEqualizer pushes a new equalizer mode to the device by its canonical
// name.
func (c *Client) SetEqualizer(ctx context.Context, mode buds.EqualizerMode) error {
	if _, err := c.run(ctx, c.binary, "set", "equalizer", mode.Name()); err != nil {
		return fmt.Errorf("failed to set equalizer: %w", err)
	}
	return nil
}

// SetNoiseReduction toggles active noise control.
func (c *Client) SetNoiseReduction(ctx context.Context, enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	if _, err := c.run(ctx, c.binary, "set", "anc", value); err != nil {
		return fmt.Errorf("failed to set anc: %w", err)
	}
	return nil
}

// SetAmbientSound toggles ambient sound passthrough. The binary expects
// 0/1 here rather than true/false.
func (c *Client) SetAmbientSound(ctx context.Context, enabled bool) error {
	value := "0"
	if enabled {
		value = "1"
	}
	if _, err := c.run(ctx, c.binary, "set", "ambientsound", value); err != nil {
		return fmt.Errorf("failed to set ambient sound: %w", err)
	}
	return nil
}

// SetTouchpad enables or disables the touchpad gestures.
func (c *Client) SetTouchpad(ctx context.Context, enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	if _, err := c.run(ctx, c.binary, "set", "touchpad", value); err != nil {
		return fmt.Errorf("failed to set touchpad: %w", err)
	}
	return nil
}

// Connect asks the daemon to connect the paired device.
func (c *Client) Connect(ctx context.Context) error {
	if _, err := c.run(ctx, c.binary, "connect"); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	return nil
}

// Disconnect drops the device connection.
func (c *Client) Disconnect(ctx context.Context) error {
	if _, err := c.run(ctx, c.binary, "disconnect"); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	return nil
}

// RestartDaemon kills and restarts the LiveBudsCli background daemon.
func (c *Client) RestartDaemon(ctx context.Context) error {
	if _, err := c.run(ctx, c.binary, "-kd"); err != nil {
		return fmt.Errorf("failed to restart daemon: %w", err)
	}
	return nil
}
