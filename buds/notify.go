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

package buds

import "fmt"

// Notification urgency levels, matching the org.freedesktop.Notifications
// hint values.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

const (
	notifyTitle = "Buds"
	notifyIcon  = "battery"
)

// Event is a notification the core has decided to emit. Delivery is the
// notify sink's concern; the core never learns whether an event was shown
// and never suppresses a repeat on a later poll.
type Event struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	Icon    string `json:"icon"`
	Urgency byte   `json:"urgency"`
}

// DriftEvent decides whether this poll emits a battery-divergence
// notification. It fires only while neither bud is in the case and the
// drift falls inside the band (threshold, 2*threshold]: at or below the
// threshold the drift is normal, above twice the threshold the divergence
// is treated as already known and no longer newsworthy.
func DriftEvent(left, right int, pl, pr Placement, threshold int, enabled bool) (Event, bool) {
	if !enabled {
		return Event{}, false
	}
	if pl == PlacementInCase || pr == PlacementInCase {
		return Event{}, false
	}
	drift := absDiff(left, right)
	if drift <= threshold || drift > 2*threshold {
		return Event{}, false
	}
	return Event{
		Title:   notifyTitle,
		Body:    fmt.Sprintf("Battery drift occurred L%d %dR", left, right),
		Icon:    notifyIcon,
		Urgency: UrgencyNormal,
	}, true
}

// ConvergenceEvent decides whether this poll emits a "levels matched"
// notification. It fires only while exactly one bud rests in the case and
// the active bud has caught up to the cased one's level. Both buds sitting
// in the case is an expected steady state, not an event.
func ConvergenceEvent(left, right int, pl, pr Placement, enabled bool) (Event, bool) {
	if !enabled {
		return Event{}, false
	}
	if pl != PlacementInCase && pr != PlacementInCase {
		return Event{}, false
	}
	if pl == PlacementInCase && pr == PlacementInCase {
		return Event{}, false
	}
	if left != right {
		return Event{}, false
	}
	return Event{
		Title:   notifyTitle,
		Body:    fmt.Sprintf("Battery level reached L%d %dR", left, right),
		Icon:    notifyIcon,
		Urgency: UrgencyNormal,
	}, true
}
