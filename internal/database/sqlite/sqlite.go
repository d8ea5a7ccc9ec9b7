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

package sqlite

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/internal/database/sqlcommon"
	"github.com/coldledger-io/coldledger/pkg/database"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"

	// Import the pure-Go SQLite driver
	_ "modernc.org/sqlite"
)

type SQLite struct {
	sqlcommon.SQLCommon
}

func (s *SQLite) InitPrefix(prefix config.Prefix) {
	s.SQLCommon.InitPrefix(s, prefix)
}

func (s *SQLite) Init(ctx context.Context, prefix config.Prefix) error {
	capabilities := &database.Capabilities{}
	return s.SQLCommon.Init(ctx, s, prefix, capabilities)
}

func (s *SQLite) Name() string {
	return "sqlite"
}

func (s *SQLite) MigrationsDir() string {
	return s.Name()
}

func (s *SQLite) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Dollar
}

func (s *SQLite) UpdateInsertForSequenceReturn(insert sq.InsertBuilder) (sq.InsertBuilder, bool) {
	// Driver returns the sequence via LastInsertId
	return insert, false
}

func (s *SQLite) Open(url string) (*sql.DB, error) {
	return sql.Open(s.Name(), url)
}

func (s *SQLite) GetMigrationDriver(db *sql.DB) (migratedb.Driver, error) {
	return migratesqlite.WithInstance(db, &migratesqlite.Config{})
}
