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

// chime-widget-mqttbridge publishes each rendered earbuds status line to an
// MQTT broker. It runs as a separate process and communicates with chime
// via RPC.
package main

import (
	"log"
	"os"

	"github.com/chimed/chime/widgets"
)

func main() {
	// Set up logging to stderr (stdout is used for RPC)
	log.SetOutput(os.Stderr)
	log.SetPrefix("[chime-widget-mqttbridge] ")

	log.Println("Starting mqttbridge widget...")

	widgets.ServeWidget(NewMQTTBridgeProvider())
}
