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

package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestExecMissingConfig(t *testing.T) {
	viper.Reset()
	rootCmd.SetArgs([]string{"-f", "/wrong/path.yml"})
	defer rootCmd.SetArgs([]string{})
	err := Execute()
	assert.Regexp(t, "CL10101", err)
}

func TestVersionCommand(t *testing.T) {
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs([]string{})
	err := Execute()
	assert.NoError(t, err)
}

func TestVersionCommandShort(t *testing.T) {
	rootCmd.SetArgs([]string{"version", "-s"})
	defer rootCmd.SetArgs([]string{})
	err := Execute()
	assert.NoError(t, err)
}
