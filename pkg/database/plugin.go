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

package database

import (
	"context"

	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
)

// Plugin is the interface implemented by each database backend.
//
// Read operations return (nil, nil) when no row matches, so callers can treat
// "record disappeared" as a normal edge case rather than an error.
type Plugin interface {

	// InitPrefix initializes the set of configuration options that are valid,
	// with defaults. Called on all plugins.
	InitPrefix(prefix config.Prefix)

	// Init initializes the plugin, with the config marked in InitPrefix
	Init(ctx context.Context, prefix config.Prefix) error

	// Name returns the name of the plugin
	Name() string

	// Capabilities returns the capabilities of the plugin
	Capabilities() *Capabilities

	// RunAsGroup executes a group of database operations within a single
	// transaction on the same context
	RunAsGroup(ctx context.Context, fn func(ctx context.Context) error) error

	// UpsertBatch writes a batch record, replacing an existing record with
	// the same id
	UpsertBatch(ctx context.Context, batch *cctypes.BatchRecord) error

	// GetBatchByID returns the batch with the given id, or nil
	GetBatchByID(ctx context.Context, id *cctypes.UUID) (*cctypes.BatchRecord, error)

	// GetBatchByNumber returns the most recent batch with the given batch
	// number, or nil
	GetBatchByNumber(ctx context.Context, batchNumber string) (*cctypes.BatchRecord, error)

	// GetBatches returns all batch records, newest first
	GetBatches(ctx context.Context) ([]*cctypes.BatchRecord, error)

	// Close frees the database resources
	Close()
}

// Capabilities defines the capabilities a plugin can report as implementing or not
type Capabilities struct {
	Concurrency bool
}
