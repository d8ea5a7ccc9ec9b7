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

func TestUUIDParseAndString(t *testing.T) {
	ctx := context.Background()

	u, err := ParseUUID(ctx, "03D31DFB-6B8D-418B-B5F3-50B2A4EA3FA8")
	assert.NoError(t, err)
	assert.Equal(t, "03d31dfb-6b8d-418b-b5f3-50b2a4ea3fa8", u.String())

	_, err = ParseUUID(ctx, "!wrong")
	assert.Regexp(t, "CL10110", err)

	var nilUUID *UUID
	assert.Equal(t, "", nilUUID.String())
}

func TestUUIDJSONRoundTrip(t *testing.T) {
	u := NewUUID()
	j, err := json.Marshal(u)
	assert.NoError(t, err)

	var restored UUID
	err = json.Unmarshal(j, &restored)
	assert.NoError(t, err)
	assert.True(t, u.Equals(&restored))
}

func TestUUIDScanValue(t *testing.T) {
	u := MustParseUUID("03d31dfb-6b8d-418b-b5f3-50b2a4ea3fa8")
	v, err := u.Value()
	assert.NoError(t, err)
	assert.Equal(t, "03d31dfb-6b8d-418b-b5f3-50b2a4ea3fa8", v)

	var nilUUID *UUID
	v, err = nilUUID.Value()
	assert.NoError(t, err)
	assert.Nil(t, v)

	var restored UUID
	assert.NoError(t, restored.Scan(nil))
	assert.NoError(t, restored.Scan(""))
	assert.NoError(t, restored.Scan("03d31dfb-6b8d-418b-b5f3-50b2a4ea3fa8"))
	assert.True(t, u.Equals(&restored))
	assert.NoError(t, restored.Scan([]byte("03d31dfb-6b8d-418b-b5f3-50b2a4ea3fa8")))
	assert.Regexp(t, "CL10109", restored.Scan(12345))
}

func TestUUIDEquals(t *testing.T) {
	u1 := NewUUID()
	u2 := *u1
	assert.True(t, u1.Equals(&u2))
	assert.False(t, u1.Equals(nil))
	assert.False(t, (*UUID)(nil).Equals(u1))
	assert.True(t, (*UUID)(nil).Equals(nil))
	assert.False(t, u1.Equals(NewUUID()))
}

func TestShortID(t *testing.T) {
	id := ShortID()
	assert.Len(t, id, 8)
	assert.NotEqual(t, id, ShortID())
}
