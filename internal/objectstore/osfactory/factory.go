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

package osfactory

import (
	"context"

	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/internal/i18n"
	"github.com/coldledger-io/coldledger/internal/objectstore/hfs"
	"github.com/coldledger-io/coldledger/internal/objectstore/ipfs"
	"github.com/coldledger-io/coldledger/internal/objectstore/mockstore"
	"github.com/coldledger-io/coldledger/pkg/objectstore"
)

var pluginsByName = map[string]func() objectstore.Plugin{
	(*ipfs.IPFS)(nil).Name():           func() objectstore.Plugin { return &ipfs.IPFS{} },
	(*hfs.HFS)(nil).Name():             func() objectstore.Plugin { return &hfs.HFS{} },
	(*mockstore.MockStore)(nil).Name(): func() objectstore.Plugin { return &mockstore.MockStore{} },
}

func InitPrefix(prefix config.Prefix) {
	for name, plugin := range pluginsByName {
		plugin().InitPrefix(prefix.SubPrefix(name))
	}
}

// GetPlugin returns the configured plugin. An empty type selects the mock
// fallback, so an unconfigured deployment still seals batches - with
// references downstream consumers can classify as never stored remotely.
func GetPlugin(ctx context.Context, pluginType string) (objectstore.Plugin, error) {
	if pluginType == "" {
		pluginType = (*mockstore.MockStore)(nil).Name()
	}
	plugin, ok := pluginsByName[pluginType]
	if !ok {
		return nil, i18n.NewError(ctx, i18n.MsgUnknownObjectStorePlugin, pluginType)
	}
	return plugin(), nil
}
