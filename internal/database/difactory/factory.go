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

package difactory

import (
	"context"

	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/internal/database/postgres"
	"github.com/coldledger-io/coldledger/internal/database/sqlite"
	"github.com/coldledger-io/coldledger/internal/i18n"
	"github.com/coldledger-io/coldledger/pkg/database"
)

var pluginsByName = map[string]func() database.Plugin{
	(*sqlite.SQLite)(nil).Name():     func() database.Plugin { return &sqlite.SQLite{} },
	(*postgres.Postgres)(nil).Name(): func() database.Plugin { return &postgres.Postgres{} },
}

func InitPrefix(prefix config.Prefix) {
	for name, plugin := range pluginsByName {
		plugin().InitPrefix(prefix.SubPrefix(name))
	}
}

func GetPlugin(ctx context.Context, pluginType string) (database.Plugin, error) {
	plugin, ok := pluginsByName[pluginType]
	if !ok {
		return nil, i18n.NewError(ctx, i18n.MsgUnknownDatabasePlugin, pluginType)
	}
	return plugin(), nil
}
