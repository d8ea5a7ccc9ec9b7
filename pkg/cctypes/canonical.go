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
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"

	"github.com/coldledger-io/coldledger/internal/i18n"
)

// Absent marks a key that is present in a map but must be treated as if the
// key had been omitted entirely. Canonicalization drops such keys at every
// nesting level, so hash({"a":1,"b":Absent}) == hash({"a":1}). A nil value is
// a JSON null and is preserved - they are different signals.
var Absent = absentType{}

type absentType struct{}

func (absentType) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// CanonicalMarshal serializes any JSON-serializable value to a deterministic
// byte sequence: object keys are sorted lexicographically at every nesting
// level, array order is preserved, Absent-valued keys are dropped, and null
// values are kept. Two semantically equal values always produce the same
// bytes, whatever the key insertion order, so the output is a stable input
// for hashing and must be reproducible by any other language with a JSON
// model (tested against golden strings).
func CanonicalMarshal(ctx context.Context, v interface{}) ([]byte, error) {
	tree, err := normalize(ctx, v)
	if err != nil {
		return nil, err
	}
	// encoding/json marshals map keys in sorted order, which combined with
	// the normalization above gives the canonical form
	b, err := json.Marshal(tree)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgCanonicalizeFailed)
	}
	return b, nil
}

// HashJSON computes the sha256 digest of the canonical serialization of v
func HashJSON(ctx context.Context, v interface{}) (*Bytes32, error) {
	if v == nil {
		return nil, i18n.NewError(ctx, i18n.MsgNilDataForHash)
	}
	b, err := CanonicalMarshal(ctx, v)
	if err != nil {
		return nil, err
	}
	var b32 Bytes32 = sha256.Sum256(b)
	return &b32, nil
}

// HashBytes computes the sha256 digest of a raw byte sequence, as retrieved
// from an object store
func HashBytes(b []byte) *Bytes32 {
	var b32 Bytes32 = sha256.Sum256(b)
	return &b32
}

// normalize rebuilds the value as a tree of map[string]interface{},
// []interface{}, json.Number, string, bool and nil. Structs and other typed
// values are round-tripped through their JSON form, using json.Number so the
// original textual form of numbers survives canonicalization.
func normalize(ctx context.Context, v interface{}) (interface{}, error) {
	switch vt := v.(type) {
	case nil:
		return nil, nil
	case absentType:
		return nil, nil
	case JSONObject:
		return normalizeMap(ctx, vt)
	case map[string]interface{}:
		return normalizeMap(ctx, vt)
	case []interface{}:
		out := make([]interface{}, len(vt))
		for i, e := range vt {
			ne, err := normalize(ctx, e)
			if err != nil {
				return nil, err
			}
			out[i] = ne
		}
		return out, nil
	case string, bool, json.Number:
		return vt, nil
	default:
		b, err := json.Marshal(vt)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, i18n.MsgCanonicalizeFailed)
		}
		d := json.NewDecoder(bytes.NewReader(b))
		d.UseNumber()
		var decoded interface{}
		if err := d.Decode(&decoded); err != nil {
			return nil, i18n.WrapError(ctx, err, i18n.MsgCanonicalizeFailed)
		}
		switch decoded.(type) {
		case map[string]interface{}, []interface{}:
			return normalize(ctx, decoded)
		default:
			return decoded, nil
		}
	}
}

func normalizeMap(ctx context.Context, m map[string]interface{}) (interface{}, error) {
	out := make(map[string]interface{}, len(m))
	for k, val := range m {
		if _, absent := val.(absentType); absent {
			continue
		}
		nv, err := normalize(ctx, val)
		if err != nil {
			return nil, err
		}
		out[k] = nv
	}
	return out, nil
}
