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
	"encoding/json"
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var shortened = false

var BuildDate string
var BuildCommit string
var BuildVersionOverride string

type versionInfo struct {
	Version string `json:"Version,omitempty"`
	Commit  string `json:"Commit,omitempty"`
	Date    string `json:"Date,omitempty"`
	License string `json:"License,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version info",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := &versionInfo{
			Date:    BuildDate,
			Commit:  BuildCommit,
			Version: BuildVersionOverride,
			License: "Apache-2.0",
		}

		// With go install, Go itself carries good version information.
		// Release builds pass the version in explicitly.
		if info.Version == "" {
			if buildInfo, ok := debug.ReadBuildInfo(); ok {
				info.Version = buildInfo.Main.Version
			}
		}

		if shortened {
			fmt.Println(info.Version)
			return nil
		}
		b, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&shortened, "short", "s", false, "Prints only the version number")
	rootCmd.AddCommand(versionCmd)
}
