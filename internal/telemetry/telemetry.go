// Copyright © 2025 Coldledger Technologies
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/internal/log"
	"github.com/coldledger-io/coldledger/internal/registry"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
	"github.com/coldledger-io/coldledger/pkg/ledger"
	"github.com/coldledger-io/coldledger/pkg/objectstore"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	// TelemetryConfBroker is the MQTT broker URL; empty disables ingest
	TelemetryConfBroker = "broker"
	// TelemetryConfClientID identifies this node to the broker
	TelemetryConfClientID = "clientId"
	// TelemetryConfTopic is the subscription filter for sensor readings
	TelemetryConfTopic = "topic"
	// TelemetryConfUsername for broker auth
	TelemetryConfUsername = "username"
	// TelemetryConfPassword for broker auth
	TelemetryConfPassword = "password"
	// TelemetryConfConnectRetryInterval is the fixed reconnect delay
	TelemetryConfConnectRetryInterval = "connectRetryInterval"
)

const (
	defaultClientID             = "coldledger"
	defaultTopic                = "coldledger/readings/#"
	defaultConnectRetryInterval = "10s"
)

// Manager subscribes to the sensor reading stream and fans each reading out
// to the object store and the owning batch's telemetry topic. Readings are
// best effort throughout - a reading that cannot be parsed, matched to a
// batch, stored or published is logged and dropped, never retried.
type Manager struct {
	ctx      context.Context
	enabled  bool
	topic    string
	client   mqtt.Client
	registry *registry.Registry
	storage  objectstore.Plugin
	ledger   ledger.Plugin
}

func NewTelemetryManager(reg *registry.Registry, storage objectstore.Plugin, le ledger.Plugin) *Manager {
	return &Manager{
		registry: reg,
		storage:  storage,
		ledger:   le,
	}
}

func (m *Manager) InitPrefix(prefix config.Prefix) {
	prefix.AddKnownKey(TelemetryConfBroker)
	prefix.AddKnownKey(TelemetryConfClientID, defaultClientID)
	prefix.AddKnownKey(TelemetryConfTopic, defaultTopic)
	prefix.AddKnownKey(TelemetryConfUsername)
	prefix.AddKnownKey(TelemetryConfPassword)
	prefix.AddKnownKey(TelemetryConfConnectRetryInterval, defaultConnectRetryInterval)
}

func (m *Manager) Init(ctx context.Context, prefix config.Prefix) error {
	m.ctx = log.WithLogField(ctx, "role", "telemetry")
	broker := prefix.GetString(TelemetryConfBroker)
	if broker == "" {
		log.L(ctx).Infof("Telemetry broker not configured - ingest disabled")
		m.enabled = false
		return nil
	}
	m.enabled = true
	m.topic = prefix.GetString(TelemetryConfTopic)

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(prefix.GetString(TelemetryConfClientID)).
		SetUsername(prefix.GetString(TelemetryConfUsername)).
		SetPassword(prefix.GetString(TelemetryConfPassword)).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(prefix.GetDuration(TelemetryConfConnectRetryInterval)).
		SetOnConnectHandler(func(client mqtt.Client) {
			if token := client.Subscribe(m.topic, 0, m.onReading); token.Wait() && token.Error() != nil {
				log.L(m.ctx).Errorf("Telemetry subscription to %s failed: %s", m.topic, token.Error())
			}
		})
	m.client = mqtt.NewClient(opts)
	return nil
}

func (m *Manager) Enabled() bool {
	return m.enabled
}

// Start connects to the broker. The connect retries in the background, so a
// broker outage at boot does not fail node startup.
func (m *Manager) Start() {
	if !m.enabled {
		return
	}
	m.client.Connect()
}

func (m *Manager) Close() {
	if m.client != nil {
		m.client.Disconnect(250)
	}
}

func (m *Manager) onReading(client mqtt.Client, msg mqtt.Message) {
	m.HandleReading(m.ctx, msg.Payload())
}

// HandleReading ingests one raw sensor reading payload
func (m *Manager) HandleReading(ctx context.Context, payload []byte) {
	var reading cctypes.TelemetryReading
	if err := json.Unmarshal(payload, &reading); err != nil || reading.BatchNumber == "" {
		log.L(ctx).Warnf("Discarding unparseable telemetry reading: %s", err)
		return
	}
	if reading.Recorded == nil {
		reading.Recorded = cctypes.Now()
	}
	_ = json.Unmarshal(payload, &reading.Raw)

	batch, err := m.registry.FindByBatchNumber(ctx, reading.BatchNumber)
	if err != nil || batch == nil {
		log.L(ctx).Warnf("Telemetry reading received for unknown batch '%s'", reading.BatchNumber)
		return
	}

	var fileRef *cctypes.StorageRef
	stored, err := json.Marshal(&reading)
	if err == nil {
		fileRef, err = m.storage.Store(ctx, bytes.NewReader(stored), fmt.Sprintf("%s-telemetry", batch.BatchNumber))
	}
	if err != nil {
		log.L(ctx).Warnf("Failed to store telemetry reading for batch %s: %s", batch.BatchNumber, err)
	}

	if batch.TopicID == "" {
		log.L(ctx).Debugf("Batch %s has no telemetry topic - reading not published", batch.BatchNumber)
		return
	}
	message, _ := json.Marshal(cctypes.JSONObject{
		"t":           "telemetry_v1",
		"batch":       batch.BatchNumber,
		"deviceId":    reading.DeviceID,
		"temperature": reading.Temperature,
		"humidity":    reading.Humidity,
		"file":        fileRef,
		"ts":          reading.Recorded,
	})
	if _, err := m.ledger.SubmitMessage(ctx, batch.TopicID, message); err != nil {
		log.L(ctx).Warnf("Failed to publish telemetry reading for batch %s: %s", batch.BatchNumber, err)
	}
}
