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

package apiserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/internal/orchestrator"
	"github.com/coldledger-io/coldledger/internal/sealer"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
)

func newTestAPIServer(t *testing.T) (*apiServer, *mux.Router, *orchestrator.Orchestrator) {
	config.Reset()
	config.Set("database.sqlite.url", "file::memory:")
	config.Set("database.sqlite.maxConns", 1)
	config.Set("database.sqlite.migrations.auto", true)
	config.Set("database.sqlite.migrations.directory", "../../db/migrations/sqlite")

	or := orchestrator.NewOrchestrator()
	err := or.Init(context.Background())
	assert.NoError(t, err)

	as := &apiServer{apiTimeout: 10 * time.Second}
	return as, as.createMuxRouter(or), or
}

func doRequest(r *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	var bodyReader *bytes.Buffer
	if s, ok := body.(string); ok {
		bodyReader = bytes.NewBufferString(s)
	} else {
		b, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(b)
	}
	req := httptest.NewRequest(method, path, bodyReader)
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	return res
}

func TestSealGetAnchorVerifyLifecycle(t *testing.T) {
	_, r, or := newTestAPIServer(t)
	defer or.WaitStop()

	// Seal a new batch
	res := doRequest(r, http.MethodPost, "/api/v1/batches", &sealer.BatchInput{
		BatchNumber: "VX-2025-0001",
		ProductName: "mRNA-1273",
		Quantity:    500,
	})
	assert.Equal(t, 201, res.Code)
	var sealed sealer.SealResult
	err := json.Unmarshal(res.Body.Bytes(), &sealed)
	assert.NoError(t, err)
	assert.False(t, sealed.Degraded)
	assert.Regexp(t, "^SIM-0\\.0\\.", sealed.Batch.TokenID)
	assert.NotEmpty(t, sealed.Batch.TopicID)
	assert.Equal(t, cctypes.BatchStatusCreated, sealed.Batch.Status)

	// Duplicate batch number is rejected before any ledger write
	res = doRequest(r, http.MethodPost, "/api/v1/batches", &sealer.BatchInput{
		BatchNumber: "VX-2025-0001",
	})
	assert.Equal(t, 409, res.Code)
	assert.Regexp(t, "CL10137", res.Body.String())

	// Lookup by number and by ID
	res = doRequest(r, http.MethodGet, "/api/v1/batches/VX-2025-0001", nil)
	assert.Equal(t, 200, res.Code)
	res = doRequest(r, http.MethodGet, fmt.Sprintf("/api/v1/batches/%s", sealed.Batch.ID), nil)
	assert.Equal(t, 200, res.Code)

	res = doRequest(r, http.MethodGet, "/api/v1/batches", nil)
	assert.Equal(t, 200, res.Code)
	var list []*cctypes.BatchRecord
	err = json.Unmarshal(res.Body.Bytes(), &list)
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	// Anchor it, then confirm anchoring is idempotent
	res = doRequest(r, http.MethodPost, "/api/v1/batches/VX-2025-0001/anchor", nil)
	assert.Equal(t, 200, res.Code)
	var anchored cctypes.BatchRecord
	err = json.Unmarshal(res.Body.Bytes(), &anchored)
	assert.NoError(t, err)
	assert.Equal(t, cctypes.BatchStatusAnchored, anchored.Status)
	assert.NotNil(t, anchored.Anchor)
	res = doRequest(r, http.MethodPost, "/api/v1/batches/VX-2025-0001/anchor", nil)
	assert.Equal(t, 200, res.Code)

	// End to end verification against the simulated ledger
	res = doRequest(r, http.MethodGet, "/api/v1/batches/VX-2025-0001/verify", nil)
	assert.Equal(t, 200, res.Code)
	var summary cctypes.VerificationSummary
	err = json.Unmarshal(res.Body.Bytes(), &summary)
	assert.NoError(t, err)
	assert.Equal(t, cctypes.VerifyStatusValid, summary.Status)
	assert.True(t, summary.AnchorFound)
	assert.True(t, summary.Simulated)
	assert.True(t, *summary.HashMatches)
}

func TestSweepAnchorsAllPending(t *testing.T) {
	_, r, or := newTestAPIServer(t)
	defer or.WaitStop()

	for _, number := range []string{"VX-A", "VX-B"} {
		res := doRequest(r, http.MethodPost, "/api/v1/batches", &sealer.BatchInput{BatchNumber: number})
		assert.Equal(t, 201, res.Code)
	}

	res := doRequest(r, http.MethodPost, "/api/v1/anchors/sweep", nil)
	assert.Equal(t, 200, res.Code)
	var results []map[string]interface{}
	err := json.Unmarshal(res.Body.Bytes(), &results)
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	for _, result := range results {
		assert.True(t, result["success"].(bool))
	}
}

func TestPostBatchBadJSON(t *testing.T) {
	_, r, or := newTestAPIServer(t)
	defer or.WaitStop()

	res := doRequest(r, http.MethodPost, "/api/v1/batches", "!json")
	assert.Equal(t, 400, res.Code)
	assert.Regexp(t, "CL10102", res.Body.String())
}

func TestPostBatchUnknownSchemaVersion(t *testing.T) {
	_, r, or := newTestAPIServer(t)
	defer or.WaitStop()

	res := doRequest(r, http.MethodPost, "/api/v1/batches", &sealer.BatchInput{
		BatchNumber:   "VX-1",
		SchemaVersion: "v99",
	})
	assert.Equal(t, 400, res.Code)
	assert.Regexp(t, "CL10139.*v99", res.Body.String())
}

func TestGetBatchNotFound(t *testing.T) {
	_, r, or := newTestAPIServer(t)
	defer or.WaitStop()

	res := doRequest(r, http.MethodGet, "/api/v1/batches/VX-MISSING", nil)
	assert.Equal(t, 404, res.Code)
	assert.Regexp(t, "CL10136", res.Body.String())

	res = doRequest(r, http.MethodPost, "/api/v1/batches/VX-MISSING/anchor", nil)
	assert.Equal(t, 404, res.Code)
}

func TestVerifyUnknownBatchReportsError(t *testing.T) {
	_, r, or := newTestAPIServer(t)
	defer or.WaitStop()

	res := doRequest(r, http.MethodGet, "/api/v1/batches/VX-MISSING/verify", nil)
	assert.Equal(t, 200, res.Code)
	var summary cctypes.VerificationSummary
	err := json.Unmarshal(res.Body.Bytes(), &summary)
	assert.NoError(t, err)
	assert.Equal(t, cctypes.VerifyStatusError, summary.Status)
}

func TestStatusRoute(t *testing.T) {
	_, r, or := newTestAPIServer(t)
	defer or.WaitStop()

	res := doRequest(r, http.MethodGet, "/api/v1/status", nil)
	assert.Equal(t, 200, res.Code)
	var status cctypes.JSONObject
	err := json.Unmarshal(res.Body.Bytes(), &status)
	assert.NoError(t, err)
	assert.Equal(t, "sqlite", status.GetObject("plugins").GetString("database"))
	assert.Equal(t, "mock", status.GetObject("plugins").GetString("objectstore"))
}

func TestUnknownRoute404(t *testing.T) {
	_, r, or := newTestAPIServer(t)
	defer or.WaitStop()

	res := doRequest(r, http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, 404, res.Code)
	assert.Regexp(t, "CL10107", res.Body.String())
}
