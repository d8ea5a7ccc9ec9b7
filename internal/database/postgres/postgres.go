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

package postgres

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/internal/database/sqlcommon"
	"github.com/coldledger-io/coldledger/pkg/database"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"

	// Import pq driver
	_ "github.com/lib/pq"
)

type Postgres struct {
	sqlcommon.SQLCommon
}

func (psql *Postgres) InitPrefix(prefix config.Prefix) {
	psql.SQLCommon.InitPrefix(psql, prefix)
}

func (psql *Postgres) Init(ctx context.Context, prefix config.Prefix) error {
	capabilities := &database.Capabilities{
		Concurrency: true,
	}
	return psql.SQLCommon.Init(ctx, psql, prefix, capabilities)
}

func (psql *Postgres) Name() string {
	return "postgres"
}

func (psql *Postgres) MigrationsDir() string {
	return psql.Name()
}

func (psql *Postgres) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Dollar
}

func (psql *Postgres) UpdateInsertForSequenceReturn(insert sq.InsertBuilder) (sq.InsertBuilder, bool) {
	// Postgres requires a query to return the sequence
	return insert.Suffix(" RETURNING seq"), true
}

func (psql *Postgres) Open(url string) (*sql.DB, error) {
	return sql.Open(psql.Name(), url)
}

func (psql *Postgres) GetMigrationDriver(db *sql.DB) (migratedb.Driver, error) {
	return migratepg.WithInstance(db, &migratepg.Config{})
}
