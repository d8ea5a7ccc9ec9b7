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

package anchor

import (
	"context"
	"encoding/json"

	"github.com/coldledger-io/coldledger/internal/i18n"
	"github.com/coldledger-io/coldledger/internal/log"
	"github.com/coldledger-io/coldledger/internal/registry"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
	"github.com/coldledger-io/coldledger/pkg/ledger"
)

// Publisher writes one AnchorMessage per batch to its durable topic. A batch
// already carrying an anchor is a successful no-op, which is what makes the
// sweep operation safe to re-run.
type Publisher struct {
	registry *registry.Registry
	ledger   ledger.Plugin
}

// SweepResult is the outcome for one record of a publish-all-unanchored sweep
type SweepResult struct {
	BatchNumber string `json:"batchNumber"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

func NewAnchorPublisher(reg *registry.Registry, le ledger.Plugin) *Publisher {
	return &Publisher{
		registry: reg,
		ledger:   le,
	}
}

func (p *Publisher) resolve(ctx context.Context, idOrNumber string) (*cctypes.BatchRecord, error) {
	if id, err := cctypes.ParseUUID(ctx, idOrNumber); err == nil {
		batch, err := p.registry.Get(ctx, id)
		if err != nil || batch != nil {
			return batch, err
		}
	}
	return p.registry.FindByBatchNumber(ctx, idOrNumber)
}

// PublishBatchAnchor publishes the batch's AnchorMessage exactly once,
// returning the updated record. The sequence number recorded is provisional;
// the verifier relocates the true one on demand.
func (p *Publisher) PublishBatchAnchor(ctx context.Context, idOrNumber string) (*cctypes.BatchRecord, error) {
	batch, err := p.resolve(ctx, idOrNumber)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, i18n.NewError(ctx, i18n.MsgBatchNotFound, idOrNumber)
	}
	if batch.Anchor != nil {
		log.L(ctx).Debugf("Batch %s already anchored on topic %s", batch.BatchNumber, batch.Anchor.TopicID)
		return batch, nil
	}

	topicID := batch.TopicID
	if topicID == "" {
		// Topic setup failed or was skipped at seal time
		if topicID, err = p.ledger.CreateTopic(ctx, batch.BatchNumber); err != nil {
			return nil, i18n.WrapError(ctx, err, i18n.MsgTopicCreateFailed)
		}
	}

	var tokenID *string
	if batch.TokenID != "" {
		tokenID = &batch.TokenID
	}
	var hashString string
	if batch.Metadata.SHA256 != nil {
		hashString = batch.Metadata.SHA256.String()
	}
	payload, err := json.Marshal(&cctypes.AnchorMessage{
		Type:        cctypes.AnchorMessageType,
		BatchNumber: batch.BatchNumber,
		TokenID:     tokenID,
		File:        batch.Metadata.FileRef,
		SHA256:      hashString,
		Schema:      batch.SchemaVersion,
		Timestamp:   cctypes.Now(),
	})
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgTopicPublishFailed)
	}

	receipt, err := p.ledger.SubmitMessage(ctx, topicID, payload)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgTopicPublishFailed)
	}
	log.L(ctx).Infof("Anchored batch %s on topic %s (tx=%s)", batch.BatchNumber, topicID, receipt.TransactionRef)

	updated, err := p.registry.Update(ctx, batch.ID, func(b *cctypes.BatchRecord) error {
		b.Status = cctypes.BatchStatusAnchored
		b.TopicID = topicID
		b.Anchor = &cctypes.AnchorInfo{
			TopicID:        topicID,
			SequenceNumber: cctypes.ProvisionalSequenceNumber,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, i18n.NewError(ctx, i18n.MsgBatchNotFound, idOrNumber)
	}
	return updated, nil
}

// PublishAllUnanchored publishes every registry record lacking an anchor,
// independently. One record's failure never aborts the sweep.
func (p *Publisher) PublishAllUnanchored(ctx context.Context) ([]*SweepResult, error) {
	batches, err := p.registry.List(ctx)
	if err != nil {
		return nil, err
	}
	results := []*SweepResult{}
	for _, batch := range batches {
		if batch.Anchor != nil {
			continue
		}
		result := &SweepResult{BatchNumber: batch.BatchNumber}
		if _, err := p.PublishBatchAnchor(ctx, batch.ID.String()); err != nil {
			log.L(ctx).Warnf("Sweep failed to anchor batch %s: %s", batch.BatchNumber, err)
			result.Error = err.Error()
		} else {
			result.Success = true
		}
		results = append(results, result)
	}
	return results, nil
}
