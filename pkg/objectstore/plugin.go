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

package objectstore

import (
	"context"
	"io"

	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
)

// Plugin is the interface implemented by each object store backend.
//
// Backend selection is a configuration decision made once per deployment.
// Callers address every backend uniformly through the tagged StorageRef, so
// retrieval logic never special-cases the backend beyond dispatching on the
// reference type.
type Plugin interface {

	// InitPrefix initializes the set of configuration options that are valid,
	// with defaults. Called on all plugins.
	InitPrefix(prefix config.Prefix)

	// Init initializes the plugin, with the config marked in InitPrefix
	Init(ctx context.Context, prefix config.Prefix) error

	// Name returns the name of the plugin
	Name() string

	// Type returns the storage type tag this plugin writes into references
	Type() cctypes.StorageType

	// Store writes the blob, returning a tagged reference to it
	Store(ctx context.Context, data io.Reader, memo string) (*cctypes.StorageRef, error)

	// Retrieve reads back the blob for a reference previously returned by
	// Store. Best effort - the backing service may have lost it.
	Retrieve(ctx context.Context, ref *cctypes.StorageRef) (io.ReadCloser, error)

	// Capabilities returns the capabilities of the plugin
	Capabilities() *Capabilities
}

// Capabilities the supported featureset of the object store interface
// implemented by the plugin, with the specified config
type Capabilities struct {
	// ContentAddressed is true when the reference is derived from the
	// content itself, rather than assigned by the service
	ContentAddressed bool
}
