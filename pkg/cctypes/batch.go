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

package cctypes

import (
	"context"
	"database/sql/driver"
	"encoding/json"

	"github.com/coldledger-io/coldledger/internal/i18n"
)

// StorageType discriminates which backend holds a stored blob
type StorageType string

const (
	// StorageTypeHFS is the chunked file service
	StorageTypeHFS StorageType = "HFS"
	// StorageTypeIPFS is the content-addressed pinning network
	StorageTypeIPFS StorageType = "IPFS"
	// StorageTypeMock marks a reference that was never stored remotely.
	// Consumers must classify such records as never-truly-anchored.
	StorageTypeMock StorageType = "MOCK"
)

// StorageRef is a tagged reference identifying which storage backend holds a
// blob, and how to address it there
type StorageRef struct {
	Type StorageType `json:"type"`
	Ref  string      `json:"ref"`
	Size int64       `json:"size,omitempty"`
}

// BatchStatus is the lifecycle state of a batch record
type BatchStatus string

const (
	BatchStatusCreated   BatchStatus = "created"
	BatchStatusAnchoring BatchStatus = "anchoring"
	BatchStatusAnchored  BatchStatus = "anchored"
	BatchStatusFailed    BatchStatus = "failed"
)

// GuardianState is the policy engine sub-status of a batch record.
// "disabled" means the engine was never configured, which is a legitimate
// terminal state, distinct from "failed" (configured but broken).
type GuardianState string

const (
	GuardianPending  GuardianState = "pending"
	GuardianIssued   GuardianState = "issued"
	GuardianFailed   GuardianState = "failed"
	GuardianDisabled GuardianState = "disabled"
)

// GuardianInfo is mutated asynchronously after batch creation by the policy
// submission step. Its failure never rolls back the rest of the record.
type GuardianInfo struct {
	Status   GuardianState `json:"status"`
	VCID     string        `json:"vcId,omitempty"`
	VCHash   string        `json:"vcHash,omitempty"`
	PolicyID string        `json:"policyId,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
}

// ProvisionalSequenceNumber is stored at publish time. The true sequence
// number is only known once the message is relocated on the topic.
const ProvisionalSequenceNumber = int64(-1)

// AnchorInfo is set exactly once, by the anchor publisher. The sequence
// number and consensus timestamp are provisional until the verifier (or a
// later lookup) relocates the message on the topic.
type AnchorInfo struct {
	TopicID            string  `json:"topicId"`
	ConsensusTimestamp *FFTime `json:"consensusTimestamp,omitempty"`
	SequenceNumber     int64   `json:"sequenceNumber"`
}

// BatchError is an append-only audit entry for a soft-failed stage
type BatchError struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

type BatchErrors []BatchError

// BatchMetadata carries the reference to the canonical metadata blob, and the
// digest committed before the blob was stored. The digest is never recomputed
// in place - verification recomputes into a separate field.
type BatchMetadata struct {
	FileRef *StorageRef `json:"fileRef,omitempty"`
	SHA256  *Bytes32    `json:"sha256,omitempty"`
}

// BatchRecord is the unit of truth for one medicine batch. It is visible the
// instant it is added to the registry, even while token, storage, anchor or
// guardian fields are still unset.
type BatchRecord struct {
	ID            *UUID         `json:"id"`
	BatchNumber   string        `json:"batchNumber"`
	ProductName   string        `json:"productName,omitempty"`
	Manufacturer  string        `json:"manufacturer,omitempty"`
	ExpiryDate    string        `json:"expiryDate,omitempty"`
	Quantity      int64         `json:"quantity,omitempty"`
	TokenID       string        `json:"tokenId,omitempty"`
	TopicID       string        `json:"topicId,omitempty"`
	Simulated     bool          `json:"simulated"`
	SchemaVersion string        `json:"schemaVersion"`
	Metadata      BatchMetadata `json:"metadata"`
	Status        BatchStatus   `json:"status"`
	Anchor        *AnchorInfo   `json:"anchor,omitempty"`
	Guardian      *GuardianInfo `json:"guardian,omitempty"`
	Errors        BatchErrors   `json:"errors,omitempty"`
	Created       *FFTime       `json:"created,omitempty"`
	Updated       *FFTime       `json:"updated,omitempty"`
}

// AddError appends an audit entry for a soft-failed stage
func (b *BatchRecord) AddError(stage, message string) {
	b.Errors = append(b.Errors, BatchError{Stage: stage, Message: message})
}

// AnchorMessageType is the discriminator every consumer must check before
// parsing further fields of a candidate topic message
const AnchorMessageType = "batch_meta_v1"

// AnchorMessage is the wire payload published to the durable topic. The topic
// is metered per message, so the payload carries only enough to relocate and
// re-hash the full metadata object stored elsewhere. Unknown additional
// fields must be ignored by consumers.
type AnchorMessage struct {
	Type        string      `json:"t"`
	BatchNumber string      `json:"batch"`
	TokenID     *string     `json:"tokenId"`
	File        *StorageRef `json:"file"`
	SHA256      string      `json:"sha256,omitempty"`
	Schema      string      `json:"schema"`
	Timestamp   *FFTime     `json:"ts"`
}

// VerifyStatus classifies the overall trust state of a batch
type VerifyStatus string

const (
	VerifyStatusValid      VerifyStatus = "valid"
	VerifyStatusMismatch   VerifyStatus = "mismatch"
	VerifyStatusPartial    VerifyStatus = "partial"
	VerifyStatusUnanchored VerifyStatus = "unanchored"
	VerifyStatusError      VerifyStatus = "error"
)

// MetadataRetrieval is the sub-result of fetching the stored metadata blob
type MetadataRetrieval string

const (
	MetadataRetrievalOK       MetadataRetrieval = "ok"
	MetadataRetrievalNotFound MetadataRetrieval = "not-found"
	MetadataRetrievalSkipped  MetadataRetrieval = "skipped"
)

// VerificationSummary is computed fresh on every verification call, and never
// persisted. HashMatches is nil when no stored hash exists to compare against,
// which is a different signal to a known mismatch.
type VerificationSummary struct {
	BatchNumber       string            `json:"batchNumber"`
	Status            VerifyStatus      `json:"status"`
	StoredHash        *Bytes32          `json:"storedHash,omitempty"`
	ComputedHash      *Bytes32          `json:"computedHash,omitempty"`
	HashMatches       *bool             `json:"hashMatches"`
	MetadataRetrieval MetadataRetrieval `json:"metadataRetrieval"`
	AnchorFound       bool              `json:"anchorFound"`
	Anchor            *AnchorInfo       `json:"anchor,omitempty"`
	Simulated         bool              `json:"simulated,omitempty"`
	Errors            []string          `json:"errors,omitempty"`
	CheckedAt         *FFTime           `json:"checkedAt"`
}

// TelemetryReading is one sensor observation for a batch in transit
type TelemetryReading struct {
	BatchNumber string     `json:"batchNumber"`
	DeviceID    string     `json:"deviceId,omitempty"`
	Temperature *float64   `json:"temperature,omitempty"`
	Humidity    *float64   `json:"humidity,omitempty"`
	Recorded    *FFTime    `json:"recorded,omitempty"`
	Raw         JSONObject `json:"raw,omitempty"`
}

// Scan implements sql.Scanner
func (sr *StorageRef) Scan(src interface{}) error {
	return scanJSON(src, sr)
}

// Value implements sql.Valuer
func (sr *StorageRef) Value() (driver.Value, error) {
	if sr == nil {
		return nil, nil
	}
	return json.Marshal(sr)
}

// Scan implements sql.Scanner
func (ai *AnchorInfo) Scan(src interface{}) error {
	return scanJSON(src, ai)
}

// Value implements sql.Valuer
func (ai *AnchorInfo) Value() (driver.Value, error) {
	if ai == nil {
		return nil, nil
	}
	return json.Marshal(ai)
}

// Scan implements sql.Scanner
func (gi *GuardianInfo) Scan(src interface{}) error {
	return scanJSON(src, gi)
}

// Value implements sql.Valuer
func (gi *GuardianInfo) Value() (driver.Value, error) {
	if gi == nil {
		return nil, nil
	}
	return json.Marshal(gi)
}

// Scan implements sql.Scanner
func (be *BatchErrors) Scan(src interface{}) error {
	return scanJSON(src, be)
}

// Value implements sql.Valuer
func (be BatchErrors) Value() (driver.Value, error) {
	if be == nil {
		return nil, nil
	}
	return json.Marshal(be)
}

func scanJSON(src, target interface{}) error {
	switch src := src.(type) {
	case nil:
		return nil
	case string:
		if src == "" {
			return nil
		}
		return json.Unmarshal([]byte(src), target)
	case []byte:
		if len(src) == 0 {
			return nil
		}
		return json.Unmarshal(src, target)
	default:
		return i18n.NewError(context.Background(), i18n.MsgScanFailed, src, target)
	}
}
