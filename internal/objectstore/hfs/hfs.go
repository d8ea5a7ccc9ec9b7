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

package hfs

import (
	"context"
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
	// HFSConfChunkSize is the maximum number of bytes sent in one create/append call
	HFSConfChunkSize = "chunkSize"

	defaultChunkSize = 4096
)

// HFS stores blobs through a chunked file service. The first chunk creates
// the file, each subsequent chunk appends in order. A failed append is
// surfaced as an error - the partially written file is never returned as a
// usable reference.
type HFS struct {
	ctx          context.Context
	capabilities *objectstore.Capabilities
	client       *resty.Client
	chunkSize    int
}

type hfsCreateResponse struct {
	FileID string `json:"fileId"`
}

func (h *HFS) Name() string {
	return "hfs"
}

func (h *HFS) Type() cctypes.StorageType {
	return cctypes.StorageTypeHFS
}

func (h *HFS) InitPrefix(prefix config.Prefix) {
	restclient.InitPrefix(prefix)
	prefix.AddKnownKey(HFSConfChunkSize, defaultChunkSize)
}

func (h *HFS) Init(ctx context.Context, prefix config.Prefix) error {
	h.ctx = log.WithLogField(ctx, "objectstore", "hfs")
	if prefix.GetString(restclient.HTTPConfigURL) == "" {
		return i18n.NewError(ctx, i18n.MsgMissingPluginConfig, prefix.Resolve(restclient.HTTPConfigURL), "hfs")
	}
	h.client = restclient.New(h.ctx, prefix)
	h.chunkSize = prefix.GetInt(HFSConfChunkSize)
	if h.chunkSize <= 0 {
		h.chunkSize = defaultChunkSize
	}
	h.capabilities = &objectstore.Capabilities{}
	return nil
}

func (h *HFS) Capabilities() *objectstore.Capabilities {
	return h.capabilities
}

func (h *HFS) Store(ctx context.Context, data io.Reader, memo string) (*cctypes.StorageRef, error) {
	payload, err := io.ReadAll(data)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgHFSRESTErr, err.Error())
	}

	chunks := splitChunks(payload, h.chunkSize)

	// The first chunk creates the file
	var createResponse hfsCreateResponse
	res, err := h.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"memo":     memo,
			"contents": chunks[0],
		}).
		SetResult(&createResponse).
		Post("/v1/files")
	if err != nil || !res.IsSuccess() {
		return nil, restclient.WrapRestErr(h.ctx, res, err, i18n.MsgHFSRESTErr)
	}

	// Subsequent chunks append in order. A mid-sequence failure is an error,
	// not a silent truncation.
	for n, chunk := range chunks[1:] {
		res, err := h.client.R().
			SetContext(ctx).
			SetBody(map[string]interface{}{
				"contents": chunk,
			}).
			Post(fmt.Sprintf("/v1/files/%s/append", createResponse.FileID))
		if err != nil || !res.IsSuccess() {
			restErr := restclient.WrapRestErr(h.ctx, res, err, i18n.MsgHFSRESTErr)
			log.L(ctx).Errorf("HFS append chunk %d/%d failed for file %s: %s", n+1, len(chunks)-1, createResponse.FileID, restErr)
			return nil, i18n.WrapError(ctx, restErr, i18n.MsgHFSAppendIncomplete, n+1, len(chunks)-1)
		}
	}

	log.L(ctx).Infof("HFS stored file %s size=%d chunks=%d", createResponse.FileID, len(payload), len(chunks))
	return &cctypes.StorageRef{
		Type: cctypes.StorageTypeHFS,
		Ref:  createResponse.FileID,
		Size: int64(len(payload)),
	}, nil
}

func (h *HFS) Retrieve(ctx context.Context, ref *cctypes.StorageRef) (io.ReadCloser, error) {
	res, err := h.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(fmt.Sprintf("/v1/files/%s/contents", ref.Ref))
	restclient.OnAfterResponse(h.client, res) // required using SetDoNotParseResponse
	if err != nil || !res.IsSuccess() {
		if res != nil && res.RawBody() != nil {
			_ = res.RawBody().Close()
		}
		return nil, restclient.WrapRestErr(h.ctx, res, err, i18n.MsgHFSRESTErr)
	}
	log.L(ctx).Infof("HFS retrieved %s", ref.Ref)
	return res.RawBody(), nil
}

func splitChunks(payload []byte, chunkSize int) [][]byte {
	var chunks [][]byte
	for len(payload) > chunkSize {
		chunks = append(chunks, payload[0:chunkSize])
		payload = payload[chunkSize:]
	}
	return append(chunks, payload)
}
