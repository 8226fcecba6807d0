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

// Package notify delivers buds notification events to the desktop via the
// org.freedesktop.Notifications D-Bus service. The reconciliation core is
// level-triggered and recomputes its events every poll; the Deduper here
// is what keeps an unchanged drift condition from re-notifying on every
// cycle.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/chimed/chime/buds"
)

const (
	notifyService   = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyMethod    = "org.freedesktop.Notifications.Notify"
	notifyAppName   = "chime"
	notifyNoTimeout = int32(-1)
)

// Sink receives the events the core decided to emit.
type Sink interface {
	Deliver(event buds.Event) error
}

// DBusSink shows events as desktop notifications on the session bus.
type DBusSink struct {
	mu   sync.Mutex
	conn *dbus.Conn
}

// NewDBusSink connects to the session bus.
func NewDBusSink() (*DBusSink, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &DBusSink{conn: conn}, nil
}

// Deliver sends one notification. Delivery failures are reported to the
// caller but never retried; whether the notification was actually shown is
// not tracked.
func (s *DBusSink) Deliver(event buds.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj := s.conn.Object(notifyService, notifyPath)
	call := obj.Call(notifyMethod, 0,
		notifyAppName,
		uint32(0), // replaces_id: always a fresh notification
		event.Icon,
		event.Title,
		event.Body,
		[]string{},
		map[string]dbus.Variant{"urgency": dbus.MakeVariant(event.Urgency)},
		notifyNoTimeout,
	)
	if call.Err != nil {
		return fmt.Errorf("failed to deliver notification: %w", call.Err)
	}
	return nil
}

// Close releases the bus connection.
func (s *DBusSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Deduper drops an event identical to the previously delivered one when it
// arrives within the cooldown window. A zero cooldown disables suppression
// and every recomputed event is delivered again, one per poll.
type Deduper struct {
	sink     Sink
	cooldown time.Duration
	now      func() time.Time

	mu     sync.Mutex
	last   buds.Event
	lastAt time.Time
}

// NewDeduper wraps a sink with repeat suppression.
func NewDeduper(sink Sink, cooldown time.Duration) *Deduper {
	return &Deduper{sink: sink, cooldown: cooldown, now: time.Now}
}

// Deliver forwards the event unless it repeats the last one within the
// cooldown. A suppressed event refreshes nothing: the window is anchored
// at the last successful delivery, so a persistent condition re-notifies
// once per cooldown period rather than never again. A failed delivery
// records nothing and the next poll retries.
func (d *Deduper) Deliver(event buds.Event) error {
	d.mu.Lock()
	if d.cooldown > 0 && event == d.last && d.now().Sub(d.lastAt) < d.cooldown {
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()

	if err := d.sink.Deliver(event); err != nil {
		return err
	}

	d.mu.Lock()
	d.last = event
	d.lastAt = d.now()
	d.mu.Unlock()
	return nil
}
