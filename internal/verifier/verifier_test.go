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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"testing"

	"github.com/coldledger-io/coldledger/internal/registry"
	"github.com/coldledger-io/coldledger/mocks/databasemocks"
	"github.com/coldledger-io/coldledger/mocks/ledgermocks"
	"github.com/coldledger-io/coldledger/mocks/objectstoremocks"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
	"github.com/coldledger-io/coldledger/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type testVerifier struct {
	verifier *Verifier
	mdi      *databasemocks.Plugin
	msi      *objectstoremocks.Plugin
	mli      *ledgermocks.Plugin
}

func newTestVerifier() *testVerifier {
	tv := &testVerifier{
		mdi: &databasemocks.Plugin{},
		msi: &objectstoremocks.Plugin{},
		mli: &ledgermocks.Plugin{},
	}
	tv.verifier = NewIntegrityVerifier(registry.NewBatchRegistry(tv.mdi), tv.msi, tv.mli)
	return tv
}

func anchoredBatch(metadata []byte) *cctypes.BatchRecord {
	return &cctypes.BatchRecord{
		ID:            cctypes.NewUUID(),
		BatchNumber:   "VX-001",
		TokenID:       "0.0.4001",
		TopicID:       "0.0.5001",
		SchemaVersion: "v1",
		Status:        cctypes.BatchStatusAnchored,
		Metadata: cctypes.BatchMetadata{
			FileRef: &cctypes.StorageRef{Type: cctypes.StorageTypeIPFS, Ref: "QmRef"},
			SHA256:  cctypes.HashBytes(metadata),
		},
		Anchor: &cctypes.AnchorInfo{
			TopicID:        "0.0.5001",
			SequenceNumber: cctypes.ProvisionalSequenceNumber,
		},
	}
}

func anchorMessages(batchNumber string) []*ledger.TopicMessage {
	anchorPayload, _ := json.Marshal(cctypes.JSONObject{
		"t":     cctypes.AnchorMessageType,
		"batch": batchNumber,
	})
	initialPayload, _ := json.Marshal(cctypes.JSONObject{
		"t":     "batch_created_v1",
		"batch": batchNumber,
	})
	return []*ledger.TopicMessage{
		{SequenceNumber: 1, ConsensusTimestamp: cctypes.Now(), Payload: initialPayload},
		{SequenceNumber: 2, ConsensusTimestamp: cctypes.Now(), Payload: []byte("not json")},
		{SequenceNumber: 3, ConsensusTimestamp: cctypes.Now(), Payload: anchorPayload},
	}
}

func TestVerifyValid(t *testing.T) {
	tv := newTestVerifier()
	metadata := []byte(`{"batchNumber":"VX-001","tokenId":"0.0.4001"}`)
	batch := anchoredBatch(metadata)

	tv.mdi.On("GetBatchByNumber", mock.Anything, "VX-001").Return(batch, nil)
	tv.msi.On("Retrieve", mock.Anything, batch.Metadata.FileRef).Return(ioutil.NopCloser(bytes.NewReader(metadata)), nil)
	tv.mli.On("GetTopicMessages", mock.Anything, "0.0.5001").Return(anchorMessages("VX-001"), nil)

	summary := tv.verifier.VerifyBatchIntegrity(context.Background(), "VX-001")
	assert.Equal(t, cctypes.VerifyStatusValid, summary.Status)
	assert.Equal(t, cctypes.MetadataRetrievalOK, summary.MetadataRetrieval)
	assert.True(t, *summary.HashMatches)
	assert.True(t, summary.AnchorFound)
	assert.Equal(t, int64(3), summary.Anchor.SequenceNumber) // relocated, not provisional
	assert.False(t, summary.Simulated)
	assert.Empty(t, summary.Errors)
}

func TestVerifyMismatchAfterTamper(t *testing.T) {
	tv := newTestVerifier()
	metadata := []byte(`{"batchNumber":"VX-001","tokenId":"0.0.4001"}`)
	batch := anchoredBatch(metadata)

	tv.mdi.On("GetBatchByNumber", mock.Anything, "VX-001").Return(batch, nil)
	tv.msi.On("Retrieve", mock.Anything, batch.Metadata.FileRef).Return(ioutil.NopCloser(bytes.NewReader([]byte(`tampered`))), nil)
	tv.mli.On("GetTopicMessages", mock.Anything, "0.0.5001").Return(anchorMessages("VX-001"), nil)

	summary := tv.verifier.VerifyBatchIntegrity(context.Background(), "VX-001")
	// Anchor presence must not mask the digest disagreement
	assert.Equal(t, cctypes.VerifyStatusMismatch, summary.Status)
	assert.True(t, summary.AnchorFound)
	assert.False(t, *summary.HashMatches)
	assert.NotEqual(t, summary.StoredHash.String(), summary.ComputedHash.String())
}

func TestVerifyUnanchored(t *testing.T) {
	tv := newTestVerifier()
	metadata := []byte(`{"batchNumber":"VX-001"}`)
	batch := anchoredBatch(metadata)
	batch.Status = cctypes.BatchStatusCreated
	batch.Anchor = nil

	tv.mdi.On("GetBatchByNumber", mock.Anything, "VX-001").Return(batch, nil)
	tv.msi.On("Retrieve", mock.Anything, batch.Metadata.FileRef).Return(ioutil.NopCloser(bytes.NewReader(metadata)), nil)
	tv.mli.On("GetTopicMessages", mock.Anything, "0.0.5001").Return(anchorMessages("VX-OTHER"), nil)

	summary := tv.verifier.VerifyBatchIntegrity(context.Background(), "VX-001")
	// A good local digest never upgrades an unanchored record
	assert.Equal(t, cctypes.VerifyStatusUnanchored, summary.Status)
	assert.True(t, *summary.HashMatches)
	assert.False(t, summary.AnchorFound)
}

func TestVerifyPartialNoCommittedHash(t *testing.T) {
	tv := newTestVerifier()
	metadata := []byte(`{"batchNumber":"VX-001"}`)
	batch := anchoredBatch(metadata)
	batch.Metadata.SHA256 = nil

	tv.mdi.On("GetBatchByNumber", mock.Anything, "VX-001").Return(batch, nil)
	tv.msi.On("Retrieve", mock.Anything, batch.Metadata.FileRef).Return(ioutil.NopCloser(bytes.NewReader(metadata)), nil)

	summary := tv.verifier.VerifyBatchIntegrity(context.Background(), "VX-001")
	assert.Equal(t, cctypes.VerifyStatusPartial, summary.Status)
	assert.Nil(t, summary.HashMatches) // unknown, not false
	assert.NotNil(t, summary.ComputedHash)
	tv.mli.AssertNotCalled(t, "GetTopicMessages", mock.Anything, mock.Anything)
}

func TestVerifyErrorOnRetrievalFailure(t *testing.T) {
	tv := newTestVerifier()
	metadata := []byte(`{"batchNumber":"VX-001"}`)
	batch := anchoredBatch(metadata)

	tv.mdi.On("GetBatchByNumber", mock.Anything, "VX-001").Return(batch, nil)
	tv.msi.On("Retrieve", mock.Anything, batch.Metadata.FileRef).Return(nil, fmt.Errorf("gone"))
	tv.mli.On("GetTopicMessages", mock.Anything, "0.0.5001").Return(anchorMessages("VX-001"), nil)

	summary := tv.verifier.VerifyBatchIntegrity(context.Background(), "VX-001")
	assert.Equal(t, cctypes.VerifyStatusError, summary.Status)
	assert.Equal(t, cctypes.MetadataRetrievalNotFound, summary.MetadataRetrieval)
	assert.True(t, summary.AnchorFound) // verification continued past the failure
	assert.NotEmpty(t, summary.Errors)
}

func TestVerifyUnknownBatchIsError(t *testing.T) {
	tv := newTestVerifier()
	tv.mdi.On("GetBatchByNumber", mock.Anything, "VX-404").Return(nil, nil)

	summary := tv.verifier.VerifyBatchIntegrity(context.Background(), "VX-404")
	assert.Equal(t, cctypes.VerifyStatusError, summary.Status)
	assert.Equal(t, "VX-404", summary.BatchNumber)
}

func TestVerifyRegistryLookupFailure(t *testing.T) {
	tv := newTestVerifier()
	tv.mdi.On("GetBatchByNumber", mock.Anything, "VX-001").Return(nil, fmt.Errorf("pop"))

	summary := tv.verifier.VerifyBatchIntegrity(context.Background(), "VX-001")
	assert.Equal(t, cctypes.VerifyStatusError, summary.Status)
}

func TestVerifyTopicListingFailureDegradesToUnanchored(t *testing.T) {
	tv := newTestVerifier()
	metadata := []byte(`{"batchNumber":"VX-001"}`)
	batch := anchoredBatch(metadata)

	tv.mdi.On("GetBatchByNumber", mock.Anything, "VX-001").Return(batch, nil)
	tv.msi.On("Retrieve", mock.Anything, batch.Metadata.FileRef).Return(ioutil.NopCloser(bytes.NewReader(metadata)), nil)
	tv.mli.On("GetTopicMessages", mock.Anything, "0.0.5001").Return(nil, fmt.Errorf("pop"))

	summary := tv.verifier.VerifyBatchIntegrity(context.Background(), "VX-001")
	assert.Equal(t, cctypes.VerifyStatusUnanchored, summary.Status)
	assert.False(t, summary.AnchorFound)
	assert.NotEmpty(t, summary.Errors)
}

func TestVerifyMockStorageMarkedSimulated(t *testing.T) {
	tv := newTestVerifier()
	metadata := []byte(`{"batchNumber":"VX-001"}`)
	batch := anchoredBatch(metadata)
	batch.Metadata.FileRef.Type = cctypes.StorageTypeMock

	tv.mdi.On("GetBatchByNumber", mock.Anything, "VX-001").Return(batch, nil)
	tv.msi.On("Retrieve", mock.Anything, batch.Metadata.FileRef).Return(ioutil.NopCloser(bytes.NewReader(metadata)), nil)
	tv.mli.On("GetTopicMessages", mock.Anything, "0.0.5001").Return(anchorMessages("VX-001"), nil)

	summary := tv.verifier.VerifyBatchIntegrity(context.Background(), "VX-001")
	assert.Equal(t, cctypes.VerifyStatusValid, summary.Status)
	assert.True(t, summary.Simulated)
}
