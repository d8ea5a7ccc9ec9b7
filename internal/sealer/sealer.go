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

package sealer

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/coldledger-io/coldledger/internal/guardian"
	"github.com/coldledger-io/coldledger/internal/i18n"
	"github.com/coldledger-io/coldledger/internal/log"
	"github.com/coldledger-io/coldledger/internal/registry"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
	"github.com/coldledger-io/coldledger/pkg/ledger"
	"github.com/coldledger-io/coldledger/pkg/objectstore"
	"github.com/xeipuuv/gojsonschema"
)

// DefaultSchemaVersion is applied when a seal request names no schema
const DefaultSchemaVersion = "v1"

const metadataSchemaV1 = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["batchNumber", "tokenId", "schemaVersion"],
	"properties": {
		"batchNumber":   {"type": "string", "minLength": 1},
		"productName":   {"type": "string"},
		"manufacturer":  {"type": "string"},
		"expiryDate":    {"type": "string"},
		"quantity":      {"type": "integer", "minimum": 0},
		"tokenId":       {"type": "string", "minLength": 1},
		"schemaVersion": {"const": "v1"}
	}
}`

var metadataSchemas = map[string]gojsonschema.JSONLoader{
	"v1": gojsonschema.NewStringLoader(metadataSchemaV1),
}

// BatchInput is the user-supplied portion of a new batch
type BatchInput struct {
	BatchNumber   string `json:"batchNumber"`
	ProductName   string `json:"productName,omitempty"`
	Manufacturer  string `json:"manufacturer,omitempty"`
	ExpiryDate    string `json:"expiryDate,omitempty"`
	Quantity      int64  `json:"quantity,omitempty"`
	SchemaVersion string `json:"schemaVersion,omitempty"`
}

// SealResult summarizes one completed seal. Degraded is true when a non-fatal
// sub-step failed and recorded itself in the batch's errors.
type SealResult struct {
	Batch    *cctypes.BatchRecord `json:"batch"`
	Degraded bool                 `json:"degraded"`
}

// Sealer coordinates the multi-system write for one new batch. Token creation
// is the only hard dependency; every step after the registry checkpoint is
// soft-fail-and-record, so the registry always reflects the furthest
// successfully-completed step.
type Sealer struct {
	ctx      context.Context
	registry *registry.Registry
	storage  objectstore.Plugin
	ledger   ledger.Plugin
	guardian *guardian.Guardian
	bgWork   sync.WaitGroup
}

func NewSealer(ctx context.Context, reg *registry.Registry, storage objectstore.Plugin, le ledger.Plugin, gd *guardian.Guardian) *Sealer {
	return &Sealer{
		ctx:      log.WithLogField(ctx, "role", "sealer"),
		registry: reg,
		storage:  storage,
		ledger:   le,
		guardian: gd,
	}
}

// SealBatch runs the fixed seal sequence. Re-sealing an existing batch number
// always creates a new record - deduplication is the caller's concern.
func (s *Sealer) SealBatch(ctx context.Context, input *BatchInput) (*SealResult, error) {

	schemaVersion := input.SchemaVersion
	if schemaVersion == "" {
		schemaVersion = DefaultSchemaVersion
	}
	schema, ok := metadataSchemas[schemaVersion]
	if !ok {
		return nil, i18n.NewError(ctx, i18n.MsgUnknownSchemaVersion, schemaVersion)
	}

	// 1. Mint the token. If this fails there is nothing to track, so no
	//    registry record is created.
	batch := &cctypes.BatchRecord{
		ID:            cctypes.NewUUID(),
		BatchNumber:   input.BatchNumber,
		ProductName:   input.ProductName,
		Manufacturer:  input.Manufacturer,
		ExpiryDate:    input.ExpiryDate,
		Quantity:      input.Quantity,
		SchemaVersion: schemaVersion,
		Status:        cctypes.BatchStatusCreated,
	}
	tokenID, err := s.ledger.CreateBatchToken(ctx, batch)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgTokenCreateFailed)
	}
	batch.TokenID = tokenID
	batch.Simulated = s.ledger.Simulated()

	// 2/3. Build the canonical metadata object and commit its digest before
	//      anything is stored, so the stored bytes and their hash are defined
	//      atomically from the caller's perspective.
	metadata := cctypes.JSONObject{
		"batchNumber":   batch.BatchNumber,
		"productName":   batch.ProductName,
		"manufacturer":  batch.Manufacturer,
		"expiryDate":    batch.ExpiryDate,
		"quantity":      batch.Quantity,
		"tokenId":       batch.TokenID,
		"schemaVersion": schemaVersion,
	}
	canonical, err := cctypes.CanonicalMarshal(ctx, metadata)
	if err != nil {
		return nil, err
	}
	validation, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(canonical))
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgBatchInvalidMetadata, "validator failure")
	}
	if !validation.Valid() {
		return nil, i18n.NewError(ctx, i18n.MsgBatchInvalidMetadata, validation.Errors()[0].String())
	}
	hash := cctypes.HashBytes(canonical)
	batch.Metadata.SHA256 = hash

	// 4. Store the canonical metadata. Soft failure - the record is still
	//    created, with the miss recorded for later re-attempts.
	fileRef, err := s.storage.Store(ctx, bytes.NewReader(canonical), batch.BatchNumber)
	if err != nil {
		log.L(ctx).Errorf("Metadata storage failed for batch %s: %s", batch.BatchNumber, err)
		batch.AddError("storage", err.Error())
	} else {
		batch.Metadata.FileRef = fileRef
	}

	// 5. Registry checkpoint. From here the batch is visible and recoverable
	//    even if every subsequent step fails.
	if s.guardian.Enabled() {
		batch.Guardian = &cctypes.GuardianInfo{Status: cctypes.GuardianPending}
	} else {
		batch.Guardian = &cctypes.GuardianInfo{Status: cctypes.GuardianDisabled}
	}
	if err := s.registry.Add(ctx, batch); err != nil {
		return nil, err
	}

	// 6. Asynchronous policy submission, patching only the guardian
	//    sub-object when it completes.
	if s.guardian.Enabled() {
		guardianCopy := *batch // the goroutine must not share the record being mutated below
		s.bgWork.Add(1)
		go s.submitGuardian(guardianCopy.ID, &guardianCopy)
	}

	// 7. Telemetry topic with an initial message. Non-fatal - the batch is
	//    usable without telemetry.
	s.createBatchTopic(ctx, batch)

	return &SealResult{
		Batch:    batch,
		Degraded: len(batch.Errors) > 0,
	}, nil
}

func (s *Sealer) createBatchTopic(ctx context.Context, batch *cctypes.BatchRecord) {
	topicID, err := s.ledger.CreateTopic(ctx, batch.BatchNumber)
	if err == nil {
		initial, _ := json.Marshal(cctypes.JSONObject{
			"t":     "batch_created_v1",
			"batch": batch.BatchNumber,
			"ts":    cctypes.Now(),
		})
		_, err = s.ledger.SubmitMessage(ctx, topicID, initial)
	}
	if err != nil {
		log.L(ctx).Warnf("Telemetry topic setup failed for batch %s: %s", batch.BatchNumber, err)
		batch.AddError("topic", err.Error())
	} else {
		batch.TopicID = topicID
	}
	updated, updateErr := s.registry.Update(ctx, batch.ID, func(b *cctypes.BatchRecord) error {
		b.TopicID = batch.TopicID
		b.Errors = batch.Errors
		return nil
	})
	if updateErr != nil {
		log.L(ctx).Errorf("Failed to record topic state for batch %s: %s", batch.BatchNumber, updateErr)
	} else if updated != nil {
		*batch = *updated
	}
}

func (s *Sealer) submitGuardian(id *cctypes.UUID, batch *cctypes.BatchRecord) {
	defer s.bgWork.Done()
	info := s.guardian.SubmitBatch(s.ctx, batch)
	_, err := s.registry.Update(s.ctx, id, func(b *cctypes.BatchRecord) error {
		b.Guardian = info
		return nil
	})
	if err != nil {
		log.L(s.ctx).Errorf("Failed to record guardian result for batch %s: %s", batch.BatchNumber, err)
	}
}

// WaitStop blocks until all background policy submissions have completed
func (s *Sealer) WaitStop() {
	s.bgWork.Wait()
}
