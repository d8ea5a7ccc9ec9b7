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
	"io/ioutil"
	"testing"

	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
	"github.com/stretchr/testify/assert"
)

func newTestMockStore(t *testing.T) *MockStore {
	config.Reset()
	m := &MockStore{}
	m.InitPrefix(config.NewPluginConfig("mockstore_unit_tests"))
	err := m.Init(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, "mock", m.Name())
	assert.Equal(t, cctypes.StorageTypeMock, m.Type())
	assert.NotNil(t, m.Capabilities())
	return m
}

func TestStoreAndRetrieveRoundTrip(t *testing.T) {
	m := newTestMockStore(t)
	ctx := context.Background()

	ref, err := m.Store(ctx, bytes.NewReader([]byte(`{"batchNumber":"VX-1"}`)), "VX-1")
	assert.NoError(t, err)
	assert.Equal(t, cctypes.StorageTypeMock, ref.Type)
	assert.Regexp(t, "^mock-", ref.Ref)
	assert.Equal(t, int64(22), ref.Size)

	reader, err := m.Retrieve(ctx, ref)
	assert.NoError(t, err)
	defer reader.Close()
	b, err := ioutil.ReadAll(reader)
	assert.NoError(t, err)
	assert.Equal(t, `{"batchNumber":"VX-1"}`, string(b))
}

func TestRetrieveUnknownRef(t *testing.T) {
	m := newTestMockStore(t)

	_, err := m.Retrieve(context.Background(), &cctypes.StorageRef{
		Type: cctypes.StorageTypeMock,
		Ref:  "mock-neverstored",
	})
	assert.Regexp(t, "CL10132.*mock-neverstored", err)
}

func TestOverwriteForTamperScenarios(t *testing.T) {
	m := newTestMockStore(t)
	ctx := context.Background()

	ref, err := m.Store(ctx, bytes.NewReader([]byte(`{"quantity":500}`)), "VX-1")
	assert.NoError(t, err)

	m.Overwrite(ref.Ref, []byte(`{"quantity":9999}`))

	reader, err := m.Retrieve(ctx, ref)
	assert.NoError(t, err)
	defer reader.Close()
	b, _ := ioutil.ReadAll(reader)
	assert.Equal(t, `{"quantity":9999}`, string(b))
}
