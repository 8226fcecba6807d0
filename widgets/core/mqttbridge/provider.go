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

// Package main implements the MQTT bridge widget for chime.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/chimed/chime/validation"
	"github.com/chimed/chime/widgets"
)

const (
	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	subscribeTimeout  = 5 * time.Second
	disconnectQuiesce = 250 // milliseconds, per paho convention
)

// WatchEntity names one state topic whose last-seen value the widget keeps.
type WatchEntity struct {
	Name  string `json:"name"`  // Display name, used as "name: value"
	Topic string `json:"topic"` // State topic to subscribe to
}

// MQTTBridgeConfig is the widget configuration (mqttbridge.json)
type MQTTBridgeConfig struct {
	Broker   string        `json:"broker"`             // e.g. tcp://localhost:1883
	ClientID string        `json:"client_id"`          // MQTT client identifier (default: "chime")
	Topic    string        `json:"topic"`              // Topic the status line is published to
	Username string        `json:"username,omitempty"` // Optional broker credentials
	Password string        `json:"password,omitempty"`
	QoS      byte          `json:"qos"`                // 0, 1 or 2
	Retain   bool          `json:"retain"`             // Retain the last published line on the broker
	Watch    []WatchEntity `json:"watch,omitempty"`    // State topics to mirror as entities
}

// MQTTBridgeProvider implements the widget Provider interface
type MQTTBridgeProvider struct {
	mu     sync.Mutex
	config *MQTTBridgeConfig
	client mqtt.Client
	values map[string]string
	// newClient is swapped out in tests
	newClient func(*mqtt.ClientOptions) mqtt.Client
}

// NewMQTTBridgeProvider creates an unconfigured provider. Configure must
// run before Publish.
func NewMQTTBridgeProvider() *MQTTBridgeProvider {
	return &MQTTBridgeProvider{
		values:    make(map[string]string),
		newClient: mqtt.NewClient,
	}
}

// Metadata returns widget information
func (p *MQTTBridgeProvider) Metadata(ctx context.Context) (widgets.MetadataResponse, error) {
	return widgets.MetadataResponse{
		Name:        "mqttbridge",
		Version:     "1.0.0",
		Description: "Publishes earbuds status lines to an MQTT broker and mirrors watched state topics",
		ConfigPath:  "/etc/chime/mqttbridge.json",
		DefaultConfig: map[string]interface{}{
			"broker":    "tcp://localhost:1883",
			"client_id": "chime",
			"topic":     "chime/buds/status",
			"qos":       0,
			"retain":    true,
			"watch":     []interface{}{},
		},
		Actions: []widgets.ActionDescriptor{
			{Name: "publish", Short: "Publish a message to the configured topic", Args: []string{"payload"}},
			{Name: "state", Short: "Show the last-seen value of a watched entity", Args: []string{"name"}},
		},
	}, nil
}

// Configure applies the configuration, connects to the broker and
// subscribes to every watched state topic
func (p *MQTTBridgeProvider) Configure(ctx context.Context, configJSON []byte) error {
	var config MQTTBridgeConfig
	if err := json.Unmarshal(configJSON, &config); err != nil {
		return fmt.Errorf("failed to parse mqttbridge config: %w", err)
	}
	if config.ClientID == "" {
		config.ClientID = "chime"
	}

	v := validation.NewCollector().WithContext("widget mqttbridge")
	v.CheckMsg(validation.ValidateBrokerURL(config.Broker), "invalid broker")
	v.CheckMsg(validation.ValidateTopic(config.Topic), "invalid topic")
	if config.QoS > 2 {
		v.Check(fmt.Errorf("invalid QoS %d (must be 0, 1 or 2)", config.QoS))
	}
	for _, watch := range config.Watch {
		if watch.Name == "" {
			v.Check(fmt.Errorf("watch entry for topic %q needs a name", watch.Topic))
		}
		v.CheckMsg(validation.ValidateTopic(watch.Topic), fmt.Sprintf("invalid watch topic for %s", watch.Name))
	}
	if err := v.Error(); err != nil {
		return err
	}

	opts := mqtt.NewClientOptions().
		AddBroker(config.Broker).
		SetClientID(config.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout)
	if config.Username != "" {
		opts.SetUsername(config.Username)
		opts.SetPassword(config.Password)
	}

	client := p.newClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("timed out connecting to broker %s", config.Broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to broker %s: %w", config.Broker, err)
	}

	// Retained messages can arrive as soon as a subscription lands, so the
	// entity cache is reset before the first Subscribe.
	p.mu.Lock()
	p.values = make(map[string]string)
	p.mu.Unlock()

	for _, watch := range config.Watch {
		name := watch.Name
		token := client.Subscribe(watch.Topic, config.QoS, func(_ mqtt.Client, msg mqtt.Message) {
			p.mu.Lock()
			p.values[name] = string(msg.Payload())
			p.mu.Unlock()
		})
		if !token.WaitTimeout(subscribeTimeout) {
			client.Disconnect(disconnectQuiesce)
			return fmt.Errorf("timed out subscribing to %s", watch.Topic)
		}
		if err := token.Error(); err != nil {
			client.Disconnect(disconnectQuiesce)
			return fmt.Errorf("failed to subscribe to %s: %w", watch.Topic, err)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		p.client.Disconnect(disconnectQuiesce)
	}
	p.config = &config
	p.client = client
	return nil
}

// Poll reports the broker connection state and the watched entities as
// "name: value" segments, ordered by name
func (p *MQTTBridgeProvider) Poll(ctx context.Context) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	status := map[string]interface{}{
		"connected": p.client != nil && p.client.IsConnected(),
	}
	if p.config != nil {
		status["broker"] = p.config.Broker
		status["topic"] = p.config.Topic
	}
	if len(p.values) > 0 {
		names := make([]string, 0, len(p.values))
		for name := range p.values {
			names = append(names, name)
		}
		sort.Strings(names)

		segments := make([]string, 0, len(names))
		for _, name := range names {
			segments = append(segments, fmt.Sprintf("%s: %s", name, p.values[name]))
		}
		status["entities"] = p.values
		status["segments"] = segments
	}
	return json.Marshal(status)
}

// Publish sends a rendered status line to the configured topic
func (p *MQTTBridgeProvider) Publish(ctx context.Context, lineJSON []byte) error {
	return p.publish(lineJSON)
}

// Action executes a widget action
func (p *MQTTBridgeProvider) Action(ctx context.Context, name string, args []string) ([]byte, error) {
	switch name {
	case "publish":
		if len(args) != 1 {
			return nil, fmt.Errorf("publish requires exactly one payload")
		}
		if err := p.publish([]byte(args[0])); err != nil {
			return nil, err
		}
		return []byte("published"), nil
	case "state":
		if len(args) != 1 {
			return nil, fmt.Errorf("state requires exactly one entity name")
		}
		p.mu.Lock()
		value, ok := p.values[args[0]]
		p.mu.Unlock()
		if !ok {
			return nil, fmt.Errorf("no value seen yet for entity %s", args[0])
		}
		return []byte(fmt.Sprintf("%s: %s", args[0], value)), nil
	default:
		return nil, fmt.Errorf("unknown action: %s", name)
	}
}

// Shutdown disconnects from the broker
func (p *MQTTBridgeProvider) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		p.client.Disconnect(disconnectQuiesce)
		p.client = nil
	}
	return nil
}

func (p *MQTTBridgeProvider) publish(payload []byte) error {
	p.mu.Lock()
	config := p.config
	client := p.client
	p.mu.Unlock()
	if config == nil || client == nil {
		return fmt.Errorf("mqttbridge widget not configured")
	}

	token := client.Publish(config.Topic, config.QoS, config.Retain, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("timed out publishing to %s", config.Topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", config.Topic, err)
	}
	return nil
}
