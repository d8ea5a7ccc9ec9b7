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

package registry

import (
	"context"
	"fmt"
	"testing"

	"github.com/coldledger-io/coldledger/mocks/databasemocks"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAddSetsTimestamps(t *testing.T) {
	mdi := &databasemocks.Plugin{}
	r := NewBatchRegistry(mdi)

	batch := &cctypes.BatchRecord{
		ID:          cctypes.NewUUID(),
		BatchNumber: "LOT-1",
		Status:      cctypes.BatchStatusCreated,
	}
	mdi.On("UpsertBatch", mock.Anything, batch).Return(nil)

	err := r.Add(context.Background(), batch)
	assert.NoError(t, err)
	assert.NotNil(t, batch.Created)
	assert.NotNil(t, batch.Updated)

	mdi.AssertExpectations(t)
}

func TestAddUpsertFail(t *testing.T) {
	mdi := &databasemocks.Plugin{}
	r := NewBatchRegistry(mdi)
	mdi.On("UpsertBatch", mock.Anything, mock.Anything).Return(fmt.Errorf("pop"))
	err := r.Add(context.Background(), &cctypes.BatchRecord{ID: cctypes.NewUUID()})
	assert.EqualError(t, err, "pop")
}

func TestGetPassthrough(t *testing.T) {
	mdi := &databasemocks.Plugin{}
	r := NewBatchRegistry(mdi)
	id := cctypes.NewUUID()
	batch := &cctypes.BatchRecord{ID: id}
	mdi.On("GetBatchByID", mock.Anything, id).Return(batch, nil)
	mdi.On("GetBatchByNumber", mock.Anything, "LOT-1").Return(batch, nil)
	mdi.On("GetBatches", mock.Anything).Return([]*cctypes.BatchRecord{batch}, nil)

	b1, err := r.Get(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, batch, b1)

	b2, err := r.FindByBatchNumber(context.Background(), "LOT-1")
	assert.NoError(t, err)
	assert.Equal(t, batch, b2)

	all, err := r.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	mdi.AssertExpectations(t)
}

func TestUpdatePatchesAndWritesBack(t *testing.T) {
	mdi := &databasemocks.Plugin{}
	r := NewBatchRegistry(mdi)
	id := cctypes.NewUUID()
	stored := &cctypes.BatchRecord{
		ID:          id,
		BatchNumber: "LOT-1",
		Status:      cctypes.BatchStatusCreated,
		Guardian:    &cctypes.GuardianInfo{Status: cctypes.GuardianPending},
	}
	mdi.On("RunAsGroup", mock.Anything, mock.Anything).Return(func(ctx context.Context, fn func(context.Context) error) error {
		return fn(ctx)
	})
	mdi.On("GetBatchByID", mock.Anything, id).Return(stored, nil)
	mdi.On("UpsertBatch", mock.Anything, mock.MatchedBy(func(b *cctypes.BatchRecord) bool {
		return b.Guardian.Status == cctypes.GuardianIssued && b.Updated != nil
	})).Return(nil)

	updated, err := r.Update(context.Background(), id, func(b *cctypes.BatchRecord) error {
		b.Guardian.Status = cctypes.GuardianIssued
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, cctypes.GuardianIssued, updated.Guardian.Status)

	mdi.AssertExpectations(t)
}

func TestUpdateRecordVanished(t *testing.T) {
	mdi := &databasemocks.Plugin{}
	r := NewBatchRegistry(mdi)
	id := cctypes.NewUUID()
	mdi.On("RunAsGroup", mock.Anything, mock.Anything).Return(func(ctx context.Context, fn func(context.Context) error) error {
		return fn(ctx)
	})
	mdi.On("GetBatchByID", mock.Anything, id).Return(nil, nil)

	updated, err := r.Update(context.Background(), id, func(b *cctypes.BatchRecord) error {
		t.Fail() // patch must not run for a missing record
		return nil
	})
	assert.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUpdatePatchError(t *testing.T) {
	mdi := &databasemocks.Plugin{}
	r := NewBatchRegistry(mdi)
	id := cctypes.NewUUID()
	mdi.On("RunAsGroup", mock.Anything, mock.Anything).Return(func(ctx context.Context, fn func(context.Context) error) error {
		return fn(ctx)
	})
	mdi.On("GetBatchByID", mock.Anything, id).Return(&cctypes.BatchRecord{ID: id}, nil)

	_, err := r.Update(context.Background(), id, func(b *cctypes.BatchRecord) error {
		return fmt.Errorf("pop")
	})
	assert.EqualError(t, err, "pop")
}
