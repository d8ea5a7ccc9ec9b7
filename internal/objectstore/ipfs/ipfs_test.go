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

package ipfs

import (
	"bytes"
	"context"
	"io/ioutil"
	"net/http"
	"testing"

	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/internal/restclient"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
)

var utConfPrefix = config.NewPluginConfig("ipfs_unit_tests")

func resetConf() {
	config.Reset()
	i := &IPFS{}
	i.InitPrefix(utConfPrefix)
}

func newTestIPFS(t *testing.T) (*IPFS, func()) {
	mockedClient := &http.Client{}
	httpmock.ActivateNonDefault(mockedClient)

	resetConf()
	apiPrefix := utConfPrefix.SubPrefix(IPFSConfAPISubconf)
	apiPrefix.Set(restclient.HTTPConfigURL, "http://localhost:12345")
	apiPrefix.Set(restclient.HTTPCustomClient, mockedClient)
	gwPrefix := utConfPrefix.SubPrefix(IPFSConfGatewaySubconf)
	gwPrefix.Set(restclient.HTTPConfigURL, "http://localhost:12346")
	gwPrefix.Set(restclient.HTTPCustomClient, mockedClient)

	i := &IPFS{}
	err := i.Init(context.Background(), utConfPrefix)
	assert.NoError(t, err)
	assert.Equal(t, "ipfs", i.Name())
	assert.Equal(t, cctypes.StorageTypeIPFS, i.Type())
	assert.True(t, i.Capabilities().ContentAddressed)

	return i, httpmock.DeactivateAndReset
}

func TestInitMissingAPIURL(t *testing.T) {
	resetConf()
	i := &IPFS{}
	err := i.Init(context.Background(), utConfPrefix)
	assert.Regexp(t, "CL10114.*api", err)
}

func TestInitMissingGatewayURL(t *testing.T) {
	resetConf()
	utConfPrefix.SubPrefix(IPFSConfAPISubconf).Set(restclient.HTTPConfigURL, "http://localhost:12345")
	i := &IPFS{}
	err := i.Init(context.Background(), utConfPrefix)
	assert.Regexp(t, "CL10114.*gateway", err)
}

func TestStoreSuccess(t *testing.T) {
	i, done := newTestIPFS(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:12345/api/v0/add",
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"Name": "file.bin",
			"Hash": "Qmf412jQZiuVUtdgnB36FXFX7xg5V6KEbSJ4dpQuhkLyfD",
			"Size": "21",
		}))

	ref, err := i.Store(context.Background(), bytes.NewReader([]byte(`{"batchNumber":"VX-1"}`)), "VX-1")
	assert.NoError(t, err)
	assert.Equal(t, cctypes.StorageTypeIPFS, ref.Type)
	assert.Equal(t, "Qmf412jQZiuVUtdgnB36FXFX7xg5V6KEbSJ4dpQuhkLyfD", ref.Ref)
	assert.Equal(t, int64(21), ref.Size)
}

func TestStoreFail(t *testing.T) {
	i, done := newTestIPFS(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:12345/api/v0/add",
		httpmock.NewStringResponder(500, "pop"))

	_, err := i.Store(context.Background(), bytes.NewReader([]byte(`{}`)), "VX-1")
	assert.Regexp(t, "CL10129", err)
}

func TestRetrieveSuccess(t *testing.T) {
	i, done := newTestIPFS(t)
	defer done()

	httpmock.RegisterResponder("GET", "http://localhost:12346/ipfs/Qmf412jQZiuVUtdgnB36FXFX7xg5V6KEbSJ4dpQuhkLyfD",
		httpmock.NewStringResponder(200, `{"batchNumber":"VX-1"}`))

	reader, err := i.Retrieve(context.Background(), &cctypes.StorageRef{
		Type: cctypes.StorageTypeIPFS,
		Ref:  "Qmf412jQZiuVUtdgnB36FXFX7xg5V6KEbSJ4dpQuhkLyfD",
	})
	assert.NoError(t, err)
	defer reader.Close()
	b, err := ioutil.ReadAll(reader)
	assert.NoError(t, err)
	assert.Equal(t, `{"batchNumber":"VX-1"}`, string(b))
}

func TestRetrieveFail(t *testing.T) {
	i, done := newTestIPFS(t)
	defer done()

	httpmock.RegisterResponder("GET", "http://localhost:12346/ipfs/QmMissing",
		httpmock.NewStringResponder(404, "not found"))

	_, err := i.Retrieve(context.Background(), &cctypes.StorageRef{
		Type: cctypes.StorageTypeIPFS,
		Ref:  "QmMissing",
	})
	assert.Regexp(t, "CL10129", err)
}
