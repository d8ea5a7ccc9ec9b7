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
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/internal/i18n"
	"github.com/coldledger-io/coldledger/internal/log"
	"github.com/coldledger-io/coldledger/internal/restclient"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
	"github.com/coldledger-io/coldledger/pkg/objectstore"
	"github.com/go-resty/resty/v2"
)

const (
	// IPFSConfAPISubconf is the http configuration to connect to the API endpoint of IPFS
	IPFSConfAPISubconf = "api"
	// IPFSConfGatewaySubconf is the http configuration to connect to the Gateway endpoint of IPFS
	IPFSConfGatewaySubconf = "gateway"
)

type IPFS struct {
	ctx          context.Context
	capabilities *objectstore.Capabilities
	apiClient    *resty.Client
	gwClient     *resty.Client
}

type ipfsUploadResponse struct {
	Name string      `json:"Name"`
	Hash string      `json:"Hash"`
	Size json.Number `json:"Size"`
}

func (i *IPFS) Name() string {
	return "ipfs"
}

func (i *IPFS) Type() cctypes.StorageType {
	return cctypes.StorageTypeIPFS
}

func (i *IPFS) InitPrefix(prefix config.Prefix) {
	restclient.InitPrefix(prefix.SubPrefix(IPFSConfAPISubconf))
	restclient.InitPrefix(prefix.SubPrefix(IPFSConfGatewaySubconf))
}

func (i *IPFS) Init(ctx context.Context, prefix config.Prefix) error {

	i.ctx = log.WithLogField(ctx, "objectstore", "ipfs")

	apiPrefix := prefix.SubPrefix(IPFSConfAPISubconf)
	if apiPrefix.GetString(restclient.HTTPConfigURL) == "" {
		return i18n.NewError(ctx, i18n.MsgMissingPluginConfig, apiPrefix.Resolve(restclient.HTTPConfigURL), "ipfs")
	}
	i.apiClient = restclient.New(i.ctx, apiPrefix)
	gwPrefix := prefix.SubPrefix(IPFSConfGatewaySubconf)
	if gwPrefix.GetString(restclient.HTTPConfigURL) == "" {
		return i18n.NewError(ctx, i18n.MsgMissingPluginConfig, gwPrefix.Resolve(restclient.HTTPConfigURL), "ipfs")
	}
	i.gwClient = restclient.New(i.ctx, gwPrefix)
	i.capabilities = &objectstore.Capabilities{
		ContentAddressed: true,
	}
	return nil
}

func (i *IPFS) Capabilities() *objectstore.Capabilities {
	return i.capabilities
}

func (i *IPFS) Store(ctx context.Context, data io.Reader, memo string) (*cctypes.StorageRef, error) {
	var ipfsResponse ipfsUploadResponse
	res, err := i.apiClient.R().
		SetContext(ctx).
		SetFileReader("document", "file.bin", data).
		SetResult(&ipfsResponse).
		Post("/api/v0/add")
	if err != nil || !res.IsSuccess() {
		return nil, restclient.WrapRestErr(i.ctx, res, err, i18n.MsgIPFSRESTErr)
	}
	size, _ := ipfsResponse.Size.Int64()
	log.L(ctx).Infof("IPFS published %s Size=%s memo=%s", ipfsResponse.Hash, ipfsResponse.Size, memo)
	return &cctypes.StorageRef{
		Type: cctypes.StorageTypeIPFS,
		Ref:  ipfsResponse.Hash,
		Size: size,
	}, nil
}

func (i *IPFS) Retrieve(ctx context.Context, ref *cctypes.StorageRef) (io.ReadCloser, error) {
	res, err := i.gwClient.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(fmt.Sprintf("/ipfs/%s", ref.Ref))
	restclient.OnAfterResponse(i.gwClient, res) // required using SetDoNotParseResponse
	if err != nil || !res.IsSuccess() {
		if res != nil && res.RawBody() != nil {
			_ = res.RawBody().Close()
		}
		return nil, restclient.WrapRestErr(i.ctx, res, err, i18n.MsgIPFSRESTErr)
	}
	log.L(ctx).Infof("IPFS retrieved %s", ref.Ref)
	return res.RawBody(), nil
}
