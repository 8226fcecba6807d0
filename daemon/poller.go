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
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chimed/chime/buds"
	"github.com/chimed/chime/daemon/logger"
	"github.com/chimed/chime/earbuds"
	"github.com/chimed/chime/notify"
	"github.com/chimed/chime/types"
)

// Device is the control surface the daemon drives. *earbuds.Client
// implements it; tests substitute a fake.
type Device interface {
	Status(ctx context.Context) (*buds.DeviceSnapshot, error)
	SetEqualizer(ctx context.Context, mode buds.EqualizerMode) error
	SetNoiseReduction(ctx context.Context, enabled bool) error
	SetAmbientSound(ctx context.Context, enabled bool) error
	SetTouchpad(ctx context.Context, enabled bool) error
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	RestartDaemon(ctx context.Context) error
}

// Poller runs the serial poll loop: fetch a snapshot, render the status
// line, evaluate notification events, record history. Cycles never
// overlap; a failed poll produces the degraded line for that cycle and
// the next tick starts fresh.
type Poller struct {
	client   Device
	config   types.BudsConfig
	opts     buds.RenderOptions
	gradient *buds.Gradient
	sink     notify.Sink
	history  *History
	widgets  *widgetRunner
	interval time.Duration
	refresh  chan struct{}

	mu        sync.RWMutex
	line      buds.Line
	snapshot  *buds.DeviceSnapshot
	connected bool
}

// NewPoller builds a poller from the buds configuration. The sink and
// history may be nil; the corresponding step is skipped.
func NewPoller(config types.BudsConfig, client Device, sink notify.Sink, history *History, widgets *widgetRunner) (*Poller, error) {
	var gradient *buds.Gradient
	var err error
	if config.DynamicColor {
		// Table index is the battery level, so the empty-battery color
		// anchors index 0 and the full-battery color anchors the limit.
		gradient, err = buds.NewGradient(config.EndColor, config.StartColor, config.BatteryLimit)
	} else {
		gradient, err = buds.NewSolidGradient(config.Color, config.BatteryLimit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build color gradient: %w", err)
	}

	return &Poller{
		client:   client,
		config:   config,
		gradient: gradient,
		sink:     sink,
		history:  history,
		widgets:  widgets,
		interval: time.Duration(config.Interval) * time.Second,
		refresh:  make(chan struct{}, 1),
		opts: buds.RenderOptions{
			Format: config.Format,
			Glyphs: buds.GlyphSet{
				Wearing: config.WearingGlyph,
				Idle:    config.IdleGlyph,
				InCase:  config.CaseGlyph,
			},
			CaseSymbol: config.CaseBatterySymbol,
			Threshold: buds.ThresholdOptions{
				Enabled: config.UseDriftThreshold,
				Drift:   config.DriftThreshold,
			},
		},
	}, nil
}

// Run polls until the context is canceled. The first cycle runs
// immediately so the daemon has a line to serve before the first tick.
func (p *Poller) Run(ctx context.Context) {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		case <-p.refresh:
			p.poll(ctx)
		}
	}
}

// Refresh schedules an immediate poll cycle. A cycle already pending is
// enough; the signal is not queued twice.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Line returns the most recent rendered line and whether a device was
// connected when it was produced.
func (p *Poller) Line() (buds.Line, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.line, p.connected
}

// Snapshot returns the last successful device snapshot, or nil if the
// device has not been seen yet.
func (p *Poller) Snapshot() *buds.DeviceSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

func (p *Poller) poll(ctx context.Context) {
	snap, err := p.client.Status(ctx)
	if err != nil {
		if !errors.Is(err, earbuds.ErrDisconnected) {
			logger.Warn("Failed to poll device",
				logger.Field{Key: "error", Value: err.Error()})
		}
		p.setDisconnected()
		return
	}

	line := buds.Render(snap, p.opts, p.gradient)

	p.mu.Lock()
	p.line = line
	p.snapshot = snap
	p.connected = true
	p.mu.Unlock()

	if p.sink != nil {
		for _, event := range buds.Events(snap, p.config.DriftThreshold, p.config.Notifications) {
			if err := p.sink.Deliver(event); err != nil {
				logger.Warn("Failed to deliver notification",
					logger.Field{Key: "title", Value: event.Title},
					logger.Field{Key: "error", Value: err.Error()})
			}
		}
	}

	if p.history != nil {
		if err := p.history.Record(snap, line.Combined); err != nil {
			logger.Warn("Failed to record battery sample",
				logger.Field{Key: "error", Value: err.Error()})
		}
	}

	if p.widgets != nil {
		p.widgets.PublishLine(ctx, line)
	}
}

// setDisconnected installs the degraded line for this cycle. With
// hide_no_device set the line is empty so the bar shows nothing.
func (p *Poller) setDisconnected() {
	line := buds.Line{}
	if !p.config.HideNoDevice {
		line = buds.Line{FullText: "Disconnected", Color: p.config.DisconnectedColor}
	}

	p.mu.Lock()
	p.line = line
	p.snapshot = nil
	p.connected = false
	p.mu.Unlock()
}
