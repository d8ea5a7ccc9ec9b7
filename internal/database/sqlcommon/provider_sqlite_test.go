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

package sqlcommon

import (
	"context"
	"database/sql"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/pkg/database"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/stretchr/testify/assert"

	// Import the pure-Go SQLite driver
	_ "modernc.org/sqlite"
)

// sqliteTestProvider runs the e2e tests against a real in-memory database
type sqliteTestProvider struct {
	SQLCommon
	t            *testing.T
	prefix       config.Prefix
	capabilities *database.Capabilities
}

func newSQLiteTestProvider(t *testing.T) (*sqliteTestProvider, func()) {
	tp := &sqliteTestProvider{
		t:            t,
		prefix:       config.NewPluginConfig("unittest.db"),
		capabilities: &database.Capabilities{},
	}
	tp.SQLCommon.InitPrefix(tp, tp.prefix)
	tp.prefix.Set(SQLConfDatasourceURL, "file::memory:")
	tp.prefix.Set(SQLConfMaxConnections, 1)
	tp.prefix.Set(SQLConfMigrationsAuto, true)
	tp.prefix.Set(SQLConfMigrationsDirectory, "../../../db/migrations/sqlite")

	err := tp.Init(context.Background(), tp, tp.prefix, tp.capabilities)
	assert.NoError(t, err)

	return tp, func() {
		tp.Close()
	}
}

func (tp *sqliteTestProvider) Name() string {
	return "sqlite"
}

func (tp *sqliteTestProvider) MigrationsDir() string {
	return "sqlite"
}

func (tp *sqliteTestProvider) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Dollar
}

func (tp *sqliteTestProvider) UpdateInsertForSequenceReturn(insert sq.InsertBuilder) (sq.InsertBuilder, bool) {
	// Relies on LastInsertId not RETURNING
	return insert, false
}

func (tp *sqliteTestProvider) Open(url string) (*sql.DB, error) {
	return sql.Open("sqlite", url)
}

func (tp *sqliteTestProvider) GetMigrationDriver(db *sql.DB) (migratedb.Driver, error) {
	return migratesqlite.WithInstance(db, &migratesqlite.Config{})
}
