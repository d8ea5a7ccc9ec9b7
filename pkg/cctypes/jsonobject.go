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

package cctypes

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"strconv"

	"github.com/coldledger-io/coldledger/internal/i18n"
)

// JSONObject is a holder of a chunk of JSON, as passed to external
// collaborators and canonicalized for hashing
type JSONObject map[string]interface{}

// Scan implements sql.Scanner
func (jd *JSONObject) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		return nil

	case string:
		if src == "" {
			return nil
		}
		return json.Unmarshal([]byte(src), &jd)

	case []byte:
		if len(src) == 0 {
			return nil
		}
		return json.Unmarshal(src, &jd)

	default:
		return i18n.NewError(context.Background(), i18n.MsgScanFailed, src, jd)
	}

}

// Value implements sql.Valuer
func (jd JSONObject) Value() (driver.Value, error) {
	if jd == nil {
		return nil, nil
	}
	return json.Marshal(&jd)
}

func (jd JSONObject) GetString(key string) string {
	s, _ := jd.GetStringOk(key)
	return s
}

func (jd JSONObject) GetStringOk(key string) (string, bool) {
	vInterface := jd[key]
	switch vt := vInterface.(type) {
	case string:
		return vt, true
	case bool:
		return strconv.FormatBool(vt), true
	case float64:
		return strconv.FormatFloat(vt, 'f', -1, 64), true
	case json.Number:
		return vt.String(), true
	default:
		return "", false
	}
}

func (jd JSONObject) GetObject(key string) JSONObject {
	vInterface, ok := jd[key]
	if ok && vInterface != nil {
		switch vMap := vInterface.(type) {
		case map[string]interface{}:
			return JSONObject(vMap)
		case JSONObject:
			return vMap
		}
	}
	return JSONObject{}
}

func (jd JSONObject) String() string {
	b, _ := json.Marshal(&jd)
	return string(b)
}

// Hash returns the digest of the canonical form of the object
func (jd JSONObject) Hash(ctx context.Context) (*Bytes32, error) {
	return HashJSON(ctx, jd)
}
