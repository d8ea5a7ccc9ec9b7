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

package orchestrator

import (
	"context"
	"testing"

	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestInitOKDefaultsToSQLiteAndMockStore(t *testing.T) {
	config.Reset()
	config.Set("database.sqlite.url", "file::memory:")
	config.Set("database.sqlite.maxConns", 1)
	config.Set("database.sqlite.migrations.auto", true)
	config.Set("database.sqlite.migrations.directory", "../../db/migrations/sqlite")

	or := NewOrchestrator()
	err := or.Init(context.Background())
	assert.NoError(t, err)

	assert.NotNil(t, or.Registry())
	assert.NotNil(t, or.Sealer())
	assert.NotNil(t, or.AnchorPublisher())
	assert.NotNil(t, or.Verifier())
	assert.Equal(t, "mock", or.ObjectStore().Name())
	assert.True(t, or.Ledger().Simulated())
	assert.False(t, or.Guardian().Enabled())
	assert.False(t, or.Telemetry().Enabled())

	or.Start()
	or.WaitStop()
}

func TestInitBadDatabaseType(t *testing.T) {
	config.Reset()
	config.Set(config.DatabaseType, "wrong")

	or := NewOrchestrator()
	err := or.Init(context.Background())
	assert.Regexp(t, "CL10115.*wrong", err)
}

func TestInitBadObjectStoreType(t *testing.T) {
	config.Reset()
	config.Set(config.DatabaseType, "sqlite")
	config.Set("database.sqlite.url", "file::memory:")
	config.Set("database.sqlite.maxConns", 1)
	config.Set(config.ObjectStoreType, "wrong")

	or := NewOrchestrator()
	err := or.Init(context.Background())
	assert.Regexp(t, "CL10116.*wrong", err)
}

func TestInitDatabaseInitFail(t *testing.T) {
	config.Reset()
	config.Set(config.DatabaseType, "sqlite")
	config.Set("database.sqlite.url", "file::memory:")
	config.Set("database.sqlite.maxConns", 1)
	config.Set("database.sqlite.migrations.auto", true)
	config.Set("database.sqlite.migrations.directory", "!!!")

	or := NewOrchestrator()
	err := or.Init(context.Background())
	assert.Error(t, err)
}
