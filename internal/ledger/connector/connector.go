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

package connector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/internal/i18n"
	"github.com/coldledger-io/coldledger/internal/log"
	"github.com/coldledger-io/coldledger/internal/restclient"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
	"github.com/coldledger-io/coldledger/pkg/ledger"
	"github.com/go-resty/resty/v2"
	gocache "github.com/patrickmn/go-cache"
)

const (
	// ConnectorConfTopicCacheTTL is how long a topic message listing is served
	// from cache before re-fetching from the connector
	ConnectorConfTopicCacheTTL = "topicCacheTTL"

	defaultTopicCacheTTL = "15s"
)

// Connector talks HTTP to a ledger connector microservice that holds the
// operator keys and executes the SDK calls. When no connector URL is
// configured the plugin runs simulated: identifiers are generated locally and
// topic messages are recorded in-process, so the rest of the pipeline remains
// exercisable without a network (and records are flagged non-authoritative).
type Connector struct {
	ctx        context.Context
	client     *resty.Client
	simulated  bool
	topicCache *gocache.Cache

	simMux    sync.Mutex
	simTopics map[string][]*ledger.TopicMessage
}

type createTokenRequest struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Memo   string `json:"memo"`
}

type createTokenResponse struct {
	TokenID string `json:"tokenId"`
}

type createTopicRequest struct {
	Memo string `json:"memo"`
}

type createTopicResponse struct {
	TopicID string `json:"topicId"`
}

type submitMessageRequest struct {
	Message string `json:"message"`
}

type submitMessageResponse struct {
	TransactionID string `json:"transactionId"`
}

type topicMessagesResponse struct {
	Messages []struct {
		SequenceNumber     int64  `json:"sequenceNumber"`
		ConsensusTimestamp string `json:"consensusTimestamp"`
		Message            string `json:"message"`
	} `json:"messages"`
}

func (c *Connector) Name() string {
	return "connector"
}

func (c *Connector) InitPrefix(prefix config.Prefix) {
	restclient.InitPrefix(prefix)
	prefix.AddKnownKey(ConnectorConfTopicCacheTTL, defaultTopicCacheTTL)
}

func (c *Connector) Init(ctx context.Context, prefix config.Prefix) error {
	c.ctx = log.WithLogField(ctx, "ledger", "connector")
	if prefix.GetString(restclient.HTTPConfigURL) == "" {
		// Configuration absence is a legitimate state, not an error - the
		// plugin degrades to simulated identifiers
		c.simulated = true
		c.simTopics = map[string][]*ledger.TopicMessage{}
		log.L(ctx).Warnf("No ledger connector configured - tokens and topics will be simulated")
		return nil
	}
	c.client = restclient.New(c.ctx, prefix)
	ttl := prefix.GetDuration(ConnectorConfTopicCacheTTL)
	c.topicCache = gocache.New(ttl, 10*time.Minute)
	return nil
}

func (c *Connector) Simulated() bool {
	return c.simulated
}

func (c *Connector) CreateBatchToken(ctx context.Context, batch *cctypes.BatchRecord) (string, error) {
	if c.simulated {
		tokenID := fmt.Sprintf("SIM-0.0.%s", cctypes.ShortID())
		log.L(ctx).Infof("Simulated token %s for batch %s", tokenID, batch.BatchNumber)
		return tokenID, nil
	}
	var response createTokenResponse
	res, err := c.client.R().SetContext(ctx).
		SetBody(&createTokenRequest{
			Name:   fmt.Sprintf("Batch %s", batch.BatchNumber),
			Symbol: "CLBATCH",
			Memo:   batch.BatchNumber,
		}).
		SetResult(&response).
		Post("/api/v1/tokens")
	if err != nil || !res.IsSuccess() {
		return "", restclient.WrapRestErr(ctx, res, err, i18n.MsgLedgerRESTErr)
	}
	return response.TokenID, nil
}

func (c *Connector) CreateTopic(ctx context.Context, memo string) (string, error) {
	if c.simulated {
		topicID := fmt.Sprintf("SIM-0.0.%s", cctypes.ShortID())
		c.simMux.Lock()
		c.simTopics[topicID] = []*ledger.TopicMessage{}
		c.simMux.Unlock()
		log.L(ctx).Infof("Simulated topic %s memo=%s", topicID, memo)
		return topicID, nil
	}
	var response createTopicResponse
	res, err := c.client.R().SetContext(ctx).
		SetBody(&createTopicRequest{Memo: memo}).
		SetResult(&response).
		Post("/api/v1/topics")
	if err != nil || !res.IsSuccess() {
		return "", restclient.WrapRestErr(ctx, res, err, i18n.MsgLedgerRESTErr)
	}
	return response.TopicID, nil
}

func (c *Connector) SubmitMessage(ctx context.Context, topicID string, payload []byte) (*ledger.MessageReceipt, error) {
	if c.simulated {
		c.simMux.Lock()
		msgs := c.simTopics[topicID]
		msg := &ledger.TopicMessage{
			SequenceNumber:     int64(len(msgs) + 1),
			ConsensusTimestamp: cctypes.Now(),
			Payload:            payload,
		}
		c.simTopics[topicID] = append(msgs, msg)
		c.simMux.Unlock()
		return &ledger.MessageReceipt{TransactionRef: "sim-" + cctypes.ShortID()}, nil
	}
	var response submitMessageResponse
	res, err := c.client.R().SetContext(ctx).
		SetBody(&submitMessageRequest{Message: string(payload)}).
		SetResult(&response).
		Post(fmt.Sprintf("/api/v1/topics/%s/messages", topicID))
	if err != nil || !res.IsSuccess() {
		return nil, restclient.WrapRestErr(ctx, res, err, i18n.MsgLedgerRESTErr)
	}
	// The listing for this topic is now stale
	c.topicCache.Delete(topicID)
	return &ledger.MessageReceipt{TransactionRef: response.TransactionID}, nil
}

func (c *Connector) GetTopicMessages(ctx context.Context, topicID string) ([]*ledger.TopicMessage, error) {
	if c.simulated {
		c.simMux.Lock()
		defer c.simMux.Unlock()
		msgs := make([]*ledger.TopicMessage, len(c.simTopics[topicID]))
		copy(msgs, c.simTopics[topicID])
		return msgs, nil
	}

	if cached, ok := c.topicCache.Get(topicID); ok {
		return cached.([]*ledger.TopicMessage), nil
	}

	var response topicMessagesResponse
	res, err := c.client.R().SetContext(ctx).
		SetResult(&response).
		Get(fmt.Sprintf("/api/v1/topics/%s/messages", topicID))
	if err != nil || !res.IsSuccess() {
		return nil, restclient.WrapRestErr(ctx, res, err, i18n.MsgLedgerRESTErr)
	}

	msgs := make([]*ledger.TopicMessage, 0, len(response.Messages))
	for _, m := range response.Messages {
		var ts *cctypes.FFTime
		if m.ConsensusTimestamp != "" {
			if parsed, err := cctypes.ParseTimeString(m.ConsensusTimestamp); err == nil {
				ts = parsed
			}
		}
		msgs = append(msgs, &ledger.TopicMessage{
			SequenceNumber:     m.SequenceNumber,
			ConsensusTimestamp: ts,
			Payload:            []byte(m.Message),
		})
	}
	c.topicCache.SetDefault(topicID, msgs)
	log.L(ctx).Debugf("Listed %d messages on topic %s", len(msgs), topicID)
	return msgs, nil
}
