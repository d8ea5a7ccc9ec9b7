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
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/gorilla/mux"

	"github.com/coldledger-io/coldledger/internal/config"
	"github.com/coldledger-io/coldledger/internal/i18n"
	"github.com/coldledger-io/coldledger/internal/log"
	"github.com/coldledger-io/coldledger/internal/orchestrator"
	"github.com/coldledger-io/coldledger/internal/sealer"
	"github.com/coldledger-io/coldledger/pkg/cctypes"
)

var clcodeExtractor = regexp.MustCompile(`^(CL\d+):`)

// statusForCode maps the leading message code of an error to an HTTP status.
// Anything unlisted is an internal error.
var statusForCode = map[string]int{
	"CL10102": http.StatusBadRequest,
	"CL10107": http.StatusNotFound,
	"CL10110": http.StatusBadRequest,
	"CL10136": http.StatusNotFound,
	"CL10137": http.StatusConflict,
	"CL10138": http.StatusBadRequest,
	"CL10139": http.StatusBadRequest,
}

var apiConfigPrefix = config.NewPluginConfig("http")

// Server is the external interface for the API Server
type Server interface {
	Serve(ctx context.Context, o *orchestrator.Orchestrator) error
}

type apiServer struct {
	apiTimeout time.Duration
}

func InitConfig() {
	initHTTPConfPrefix(apiConfigPrefix, 5000)
}

func NewAPIServer() Server {
	return &apiServer{
		apiTimeout: config.GetDuration(config.APIRequestTimeout),
	}
}

// Serve is the main entry point for the API Server
func (as *apiServer) Serve(ctx context.Context, o *orchestrator.Orchestrator) error {
	httpErrChan := make(chan error)

	apiHTTPServer, err := newHTTPServer(ctx, "api", as.createMuxRouter(o), httpErrChan, apiConfigPrefix)
	if err != nil {
		return err
	}
	go apiHTTPServer.serveHTTP(ctx)

	select {
	case err = <-httpErrChan:
		return err
	case <-ctx.Done():
		return nil
	}
}

type restError struct {
	Error string `json:"error"`
}

func (as *apiServer) writeJSON(ctx context.Context, res http.ResponseWriter, status int, payload interface{}) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	if err := json.NewEncoder(res).Encode(payload); err != nil {
		log.L(ctx).Errorf("Failed to send HTTP response: %s", err)
	}
}

func (as *apiServer) writeError(ctx context.Context, res http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if match := clcodeExtractor.FindStringSubmatch(err.Error()); match != nil {
		if mapped, ok := statusForCode[match[1]]; ok {
			status = mapped
		}
	}
	log.L(ctx).Errorf("<-- %d: %s", status, err)
	as.writeJSON(ctx, res, status, &restError{Error: err.Error()})
}

type apiHandler func(ctx context.Context, req *http.Request) (status int, payload interface{}, err error)

func (as *apiServer) route(handler apiHandler) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), as.apiTimeout)
		defer cancel()
		log.L(ctx).Infof("--> %s %s", req.Method, req.URL.Path)
		status, payload, err := handler(ctx, req)
		if err != nil {
			as.writeError(ctx, res, err)
			return
		}
		log.L(ctx).Infof("<-- %s %s [%d]", req.Method, req.URL.Path, status)
		as.writeJSON(ctx, res, status, payload)
	}
}

// getBatch resolves a path element that may be a record UUID or a batch number
func (as *apiServer) getBatch(ctx context.Context, o *orchestrator.Orchestrator, idOrNumber string) (*cctypes.BatchRecord, error) {
	if id, err := cctypes.ParseUUID(ctx, idOrNumber); err == nil {
		return o.Registry().Get(ctx, id)
	}
	return o.Registry().FindByBatchNumber(ctx, idOrNumber)
}

func (as *apiServer) createMuxRouter(o *orchestrator.Orchestrator) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/v1/batches", as.route(func(ctx context.Context, req *http.Request) (int, interface{}, error) {
		var input sealer.BatchInput
		if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
			return 0, nil, i18n.WrapError(ctx, err, i18n.MsgJSONDecodeFailed)
		}
		existing, err := o.Registry().FindByBatchNumber(ctx, input.BatchNumber)
		if err != nil {
			return 0, nil, err
		}
		if existing != nil {
			return 0, nil, i18n.NewError(ctx, i18n.MsgBatchNumberExists, input.BatchNumber)
		}
		result, err := o.Sealer().SealBatch(ctx, &input)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusCreated, result, nil
	})).Methods(http.MethodPost)

	r.HandleFunc("/api/v1/batches", as.route(func(ctx context.Context, req *http.Request) (int, interface{}, error) {
		batches, err := o.Registry().List(ctx)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, batches, nil
	})).Methods(http.MethodGet)

	r.HandleFunc("/api/v1/batches/{idOrNumber}", as.route(func(ctx context.Context, req *http.Request) (int, interface{}, error) {
		idOrNumber := mux.Vars(req)["idOrNumber"]
		batch, err := as.getBatch(ctx, o, idOrNumber)
		if err != nil {
			return 0, nil, err
		}
		if batch == nil {
			return 0, nil, i18n.NewError(ctx, i18n.MsgBatchNotFound, idOrNumber)
		}
		return http.StatusOK, batch, nil
	})).Methods(http.MethodGet)

	r.HandleFunc("/api/v1/batches/{idOrNumber}/anchor", as.route(func(ctx context.Context, req *http.Request) (int, interface{}, error) {
		batch, err := o.AnchorPublisher().PublishBatchAnchor(ctx, mux.Vars(req)["idOrNumber"])
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, batch, nil
	})).Methods(http.MethodPost)

	r.HandleFunc("/api/v1/anchors/sweep", as.route(func(ctx context.Context, req *http.Request) (int, interface{}, error) {
		results, err := o.AnchorPublisher().PublishAllUnanchored(ctx)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, results, nil
	})).Methods(http.MethodPost)

	r.HandleFunc("/api/v1/batches/{idOrNumber}/verify", as.route(func(ctx context.Context, req *http.Request) (int, interface{}, error) {
		summary := o.Verifier().VerifyBatchIntegrity(ctx, mux.Vars(req)["idOrNumber"])
		return http.StatusOK, summary, nil
	})).Methods(http.MethodGet)

	r.HandleFunc("/api/v1/status", as.route(func(ctx context.Context, req *http.Request) (int, interface{}, error) {
		return http.StatusOK, cctypes.JSONObject{
			"node": cctypes.JSONObject{
				"name": config.GetString(config.NodeName),
			},
			"plugins": cctypes.JSONObject{
				"database":    o.Database().Name(),
				"objectstore": o.ObjectStore().Name(),
			},
			"ledger": cctypes.JSONObject{
				"simulated": o.Ledger().Simulated(),
			},
			"guardian": cctypes.JSONObject{
				"enabled": o.Guardian().Enabled(),
			},
			"telemetry": cctypes.JSONObject{
				"enabled": o.Telemetry().Enabled(),
			},
		}, nil
	})).Methods(http.MethodGet)

	r.NotFoundHandler = as.route(func(ctx context.Context, req *http.Request) (int, interface{}, error) {
		return 0, nil, i18n.NewError(ctx, i18n.Msg404NotFound)
	})

	return r
}
