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

package mockstore

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/internal/i18n"
	"github.com/coldledger-io/coldledger/internal/log"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
	"github.com/coldledger-io/coldledger/pkg/objectstore"
)

// MockStore is the fallback backend used when no real object store is
// configured. References are tagged MOCK and are only resolvable inside this
// process, so downstream verification classifies such records as never truly
// anchored rather than crashing.
type MockStore struct {
	ctx   context.Context
	mux   sync.Mutex
	blobs map[string][]byte
}

func (m *MockStore) Name() string {
	return "mock"
}

func (m *MockStore) Type() cctypes.StorageType {
	return cctypes.StorageTypeMock
}

func (m *MockStore) InitPrefix(prefix config.Prefix) {
}

func (m *MockStore) Init(ctx context.Context, prefix config.Prefix) error {
	m.ctx = log.WithLogField(ctx, "objectstore", "mock")
	m.blobs = map[string][]byte{}
	log.L(ctx).Warnf("No object store configured - falling back to mock storage. References are not remotely resolvable")
	return nil
}

func (m *MockStore) Capabilities() *objectstore.Capabilities {
	return &objectstore.Capabilities{}
}

func (m *MockStore) Store(ctx context.Context, data io.Reader, memo string) (*cctypes.StorageRef, error) {
	payload, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}
	ref := "mock-" + cctypes.ShortID()
	m.mux.Lock()
	m.blobs[ref] = payload
	m.mux.Unlock()
	log.L(ctx).Infof("Mock stored %s size=%d memo=%s", ref, len(payload), memo)
	return &cctypes.StorageRef{
		Type: cctypes.StorageTypeMock,
		Ref:  ref,
		Size: int64(len(payload)),
	}, nil
}

func (m *MockStore) Retrieve(ctx context.Context, ref *cctypes.StorageRef) (io.ReadCloser, error) {
	m.mux.Lock()
	payload, ok := m.blobs[ref.Ref]
	m.mux.Unlock()
	if !ok {
		return nil, i18n.NewError(ctx, i18n.MsgMockRefNotStored, ref.Ref)
	}
	return io.NopCloser(bytes.NewReader(payload)), nil
}

// Overwrite replaces the stored bytes for a reference, for tamper testing
func (m *MockStore) Overwrite(ref string, payload []byte) {
	m.mux.Lock()
	m.blobs[ref] = payload
	m.mux.Unlock()
}
