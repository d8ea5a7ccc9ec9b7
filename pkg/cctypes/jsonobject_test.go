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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONObjectGetString(t *testing.T) {
	jd := JSONObject{
		"string": "value",
		"bool":   true,
		"number": float64(12345),
		"object": map[string]interface{}{"nested": "here"},
	}
	assert.Equal(t, "value", jd.GetString("string"))
	assert.Equal(t, "true", jd.GetString("bool"))
	assert.Equal(t, "12345", jd.GetString("number"))
	assert.Equal(t, "", jd.GetString("missing"))

	_, ok := jd.GetStringOk("object")
	assert.False(t, ok)

	num := JSONObject{"n": json.Number("1.50")}
	assert.Equal(t, "1.50", num.GetString("n"))
}

func TestJSONObjectGetObject(t *testing.T) {
	jd := JSONObject{
		"fromMap":   map[string]interface{}{"a": "1"},
		"fromTyped": JSONObject{"b": "2"},
		"notObject": "string",
	}
	assert.Equal(t, "1", jd.GetObject("fromMap").GetString("a"))
	assert.Equal(t, "2", jd.GetObject("fromTyped").GetString("b"))
	assert.Empty(t, jd.GetObject("notObject"))
	assert.Empty(t, jd.GetObject("missing"))
}

func TestJSONObjectScanValue(t *testing.T) {
	jd := JSONObject{"batchNumber": "VX-1"}
	v, err := jd.Value()
	assert.NoError(t, err)

	var restored JSONObject
	assert.NoError(t, restored.Scan(v))
	assert.Equal(t, "VX-1", restored.GetString("batchNumber"))

	assert.NoError(t, restored.Scan(nil))
	assert.NoError(t, restored.Scan(""))
	assert.NoError(t, restored.Scan([]byte{}))
	assert.NoError(t, restored.Scan(`{"a":"1"}`))
	assert.Regexp(t, "CL10109", restored.Scan(12345))

	var nilObj JSONObject
	v, err = nilObj.Value()
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestJSONObjectStringAndHash(t *testing.T) {
	jd := JSONObject{"a": "1"}
	assert.Equal(t, `{"a":"1"}`, jd.String())

	h, err := jd.Hash(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, HashBytes([]byte(`{"a":"1"}`)).String(), h.String())
}
