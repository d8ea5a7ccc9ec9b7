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

package verifier

import (
	"context"
	"encoding/json"
	"io/ioutil"

	"github.com/coldledger-io/coldledger/internal/log"
	"github.com/coldledger-io/coldledger/internal/registry"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
	"github.com/coldledger-io/coldledger/pkg/ledger"
	"github.com/coldledger-io/coldledger/pkg/objectstore"
)

// Verifier answers "is this batch's on-record claim still true?" without
// trusting any single system. It recomputes the metadata digest from the
// stored bytes, and relocates the anchor message on the topic, comparing
// both against the local record.
//
// VerifyBatchIntegrity never returns an error and never mutates the record -
// every failure mode downgrades the summary's status instead.
type Verifier struct {
	registry *registry.Registry
	storage  objectstore.Plugin
	ledger   ledger.Plugin
}

func NewIntegrityVerifier(reg *registry.Registry, storage objectstore.Plugin, le ledger.Plugin) *Verifier {
	return &Verifier{
		registry: reg,
		storage:  storage,
		ledger:   le,
	}
}

func (v *Verifier) resolve(ctx context.Context, idOrNumber string) (*cctypes.BatchRecord, error) {
	if id, err := cctypes.ParseUUID(ctx, idOrNumber); err == nil {
		batch, err := v.registry.Get(ctx, id)
		if err != nil || batch != nil {
			return batch, err
		}
	}
	return v.registry.FindByBatchNumber(ctx, idOrNumber)
}

// VerifyBatchIntegrity computes a fresh VerificationSummary for the batch.
//
// Classification precedence, in order: retrieval or hash-computation error;
// no hash ever committed; hash but no anchor located; hash and anchor but
// digests disagree; hash and anchor and digests agree; anything else is
// partial. The order matters - a digest mismatch must never be masked by the
// anchor being present, and a good local digest must never upgrade an
// unanchored record.
func (v *Verifier) VerifyBatchIntegrity(ctx context.Context, idOrNumber string) *cctypes.VerificationSummary {
	summary := &cctypes.VerificationSummary{
		BatchNumber:       idOrNumber,
		MetadataRetrieval: cctypes.MetadataRetrievalSkipped,
		CheckedAt:         cctypes.Now(),
	}

	batch, err := v.resolve(ctx, idOrNumber)
	if err != nil {
		summary.Status = cctypes.VerifyStatusError
		summary.Errors = append(summary.Errors, err.Error())
		return summary
	}
	if batch == nil {
		summary.Status = cctypes.VerifyStatusError
		summary.Errors = append(summary.Errors, "batch not found")
		return summary
	}
	summary.BatchNumber = batch.BatchNumber
	summary.StoredHash = batch.Metadata.SHA256
	summary.Simulated = batch.Simulated ||
		(batch.Metadata.FileRef != nil && batch.Metadata.FileRef.Type == cctypes.StorageTypeMock)

	retrievalError := v.checkMetadata(ctx, batch, summary)
	v.relocateAnchor(ctx, batch, summary)

	switch {
	case retrievalError:
		summary.Status = cctypes.VerifyStatusError
	case summary.StoredHash == nil:
		summary.Status = cctypes.VerifyStatusPartial
	case !summary.AnchorFound:
		summary.Status = cctypes.VerifyStatusUnanchored
	case summary.HashMatches != nil && !*summary.HashMatches:
		summary.Status = cctypes.VerifyStatusMismatch
	case summary.HashMatches != nil && *summary.HashMatches:
		summary.Status = cctypes.VerifyStatusValid
	default:
		summary.Status = cctypes.VerifyStatusPartial
	}
	return summary
}

// checkMetadata retrieves the stored blob and recomputes its digest.
// Returns true when retrieval itself failed - absence of the blob is
// diagnostic information, not a crash.
func (v *Verifier) checkMetadata(ctx context.Context, batch *cctypes.BatchRecord, summary *cctypes.VerificationSummary) bool {
	if batch.Metadata.FileRef == nil {
		return false
	}
	reader, err := v.storage.Retrieve(ctx, batch.Metadata.FileRef)
	if err == nil {
		var data []byte
		data, err = ioutil.ReadAll(reader)
		reader.Close()
		if err == nil {
			summary.MetadataRetrieval = cctypes.MetadataRetrievalOK
			summary.ComputedHash = cctypes.HashBytes(data)
			if summary.StoredHash != nil {
				matches := summary.StoredHash.Equals(summary.ComputedHash)
				summary.HashMatches = &matches
			}
			return false
		}
	}
	log.L(ctx).Warnf("Metadata retrieval failed for batch %s ref %s: %s", batch.BatchNumber, batch.Metadata.FileRef.Ref, err)
	summary.MetadataRetrieval = cctypes.MetadataRetrievalNotFound
	summary.Errors = append(summary.Errors, err.Error())
	return true
}

// relocateAnchor scans the batch's topic for the first message carrying the
// anchor discriminator and this batch's number, filling in the true sequence
// number and consensus timestamp when found
func (v *Verifier) relocateAnchor(ctx context.Context, batch *cctypes.BatchRecord, summary *cctypes.VerificationSummary) {
	if batch.Metadata.SHA256 == nil {
		return
	}
	topicID := batch.TopicID
	if batch.Anchor != nil && batch.Anchor.TopicID != "" {
		topicID = batch.Anchor.TopicID
	}
	if topicID == "" {
		return
	}
	messages, err := v.ledger.GetTopicMessages(ctx, topicID)
	if err != nil {
		log.L(ctx).Warnf("Topic listing failed for batch %s topic %s: %s", batch.BatchNumber, topicID, err)
		summary.Errors = append(summary.Errors, err.Error())
		return
	}
	for _, msg := range messages {
		if m, ok := parseAnchorMessage(msg); ok && m.BatchNumber == batch.BatchNumber {
			summary.AnchorFound = true
			summary.Anchor = &cctypes.AnchorInfo{
				TopicID:            topicID,
				ConsensusTimestamp: msg.ConsensusTimestamp,
				SequenceNumber:     msg.SequenceNumber,
			}
			return
		}
	}
}

// parseAnchorMessage structurally matches one topic message against the
// anchor wire format. Non-JSON payloads and other message types share the
// topic, so parse failures are expected and not reported.
func parseAnchorMessage(msg *ledger.TopicMessage) (*cctypes.AnchorMessage, bool) {
	var m cctypes.AnchorMessage
	if err := json.Unmarshal(msg.Payload, &m); err != nil || m.Type != cctypes.AnchorMessageType {
		return nil, false
	}
	return &m, true
}
