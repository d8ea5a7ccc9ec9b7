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

package ledger

import (
	"context"

	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
)

// Plugin wraps the external ledger for token minting and durable topics.
//
// Every call may fail independently due to network or configuration issues,
// and must return a typed failure rather than hang. The only ordering
// guarantee callers may assume is that a submit can only succeed after its
// topic's create succeeded.
type Plugin interface {

	// InitPrefix initializes the set of configuration options that are valid,
	// with defaults
	InitPrefix(prefix config.Prefix)

	// Init initializes the plugin, with the config marked in InitPrefix
	Init(ctx context.Context, prefix config.Prefix) error

	// Name returns the name of the plugin
	Name() string

	// Simulated is true when no live network is configured, and identifiers
	// are generated locally. Records created through a simulated ledger are
	// non-authoritative.
	Simulated() bool

	// CreateBatchToken mints a unique collectible identifier for a batch
	CreateBatchToken(ctx context.Context, batch *cctypes.BatchRecord) (tokenID string, err error)

	// CreateTopic creates a durable append-only message topic
	CreateTopic(ctx context.Context, memo string) (topicID string, err error)

	// SubmitMessage publishes one message payload to a topic
	SubmitMessage(ctx context.Context, topicID string, payload []byte) (*MessageReceipt, error)

	// GetTopicMessages lists the messages currently visible on a topic, in
	// sequence order
	GetTopicMessages(ctx context.Context, topicID string) ([]*TopicMessage, error)
}

// MessageReceipt is the synchronous result of a topic submit. The sequence
// number is not known at submit time.
type MessageReceipt struct {
	TransactionRef string `json:"transactionRef"`
}

// TopicMessage is one message relocated from a topic
type TopicMessage struct {
	SequenceNumber     int64           `json:"sequenceNumber"`
	ConsensusTimestamp *cctypes.FFTime `json:"consensusTimestamp"`
	Payload            []byte          `json:"payload"`
}
