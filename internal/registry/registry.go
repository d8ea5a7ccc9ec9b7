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
	"sync"

	"github.com/coldledger-io/coldledger/internal/log"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
	"github.com/coldledger-io/coldledger/pkg/database"
)

// Registry is the durability checkpoint for batch records. A record is
// visible from the moment Add returns, even while later pipeline stages are
// still filling in token, anchor and guardian fields.
//
// Update serializes read-modify-write cycles under a mutex, so the anchor
// publisher and the asynchronous guardian goroutine can both patch the same
// record without losing fields. Databases that support concurrency could
// take row locks instead, but a single coordinator keeps the two drivers
// behaviorally identical.
type Registry struct {
	database  database.Plugin
	updateMux sync.Mutex
}

func NewBatchRegistry(di database.Plugin) *Registry {
	return &Registry{
		database: di,
	}
}

// Add persists a new batch record
func (r *Registry) Add(ctx context.Context, batch *cctypes.BatchRecord) error {
	if batch.Created == nil {
		batch.Created = cctypes.Now()
	}
	batch.Updated = cctypes.Now()
	err := r.database.UpsertBatch(ctx, batch)
	if err == nil {
		log.L(ctx).Infof("Registered batch %s (id=%s)", batch.BatchNumber, batch.ID)
	}
	return err
}

// Get returns the batch with the given id, or nil
func (r *Registry) Get(ctx context.Context, id *cctypes.UUID) (*cctypes.BatchRecord, error) {
	return r.database.GetBatchByID(ctx, id)
}

// FindByBatchNumber returns the most recent batch with the given batch
// number, or nil
func (r *Registry) FindByBatchNumber(ctx context.Context, batchNumber string) (*cctypes.BatchRecord, error) {
	return r.database.GetBatchByNumber(ctx, batchNumber)
}

// List returns all batch records, newest first
func (r *Registry) List(ctx context.Context) ([]*cctypes.BatchRecord, error) {
	return r.database.GetBatches(ctx)
}

// Update applies the patch function to the current state of the record and
// writes the result back, as a single serialized read-modify-write.
// Returns nil,nil if the record no longer exists.
func (r *Registry) Update(ctx context.Context, id *cctypes.UUID, patch func(*cctypes.BatchRecord) error) (*cctypes.BatchRecord, error) {
	r.updateMux.Lock()
	defer r.updateMux.Unlock()

	var batch *cctypes.BatchRecord
	err := r.database.RunAsGroup(ctx, func(ctx context.Context) (err error) {
		batch, err = r.database.GetBatchByID(ctx, id)
		if err != nil || batch == nil {
			return err
		}
		if err = patch(batch); err != nil {
			return err
		}
		batch.Updated = cctypes.Now()
		return r.database.UpsertBatch(ctx, batch)
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}
