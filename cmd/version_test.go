// Copyright © 2025 NAV (Arbeids- og velferdsetaten)
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
	"context"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runVersion(args ...string) error {
	rootCmd.SetArgs(append([]string{"version"}, args...))
	defer rootCmd.SetArgs([]string{})
	return rootCmd.Execute()
}

func TestVersionCmd(t *testing.T) {
	assert.NoError(t, runVersion())
	assert.NoError(t, runVersion("-o", "yaml"))
	assert.NoError(t, runVersion("-o", "json"))
	assert.NoError(t, runVersion("-s"))
}

func TestVersionCmdInvalidType(t *testing.T) {
	err := runVersion("-o", "wrong")
	assert.Regexp(t, "AO10103", err)
	output = "json"
}

func TestSetBuildInfo(t *testing.T) {
	info := &Info{Commit: "fromldflags"}
	setBuildInfo(info, &debug.BuildInfo{
		GoVersion: "go1.21.0",
		Main:      debug.Module{Version: "12345"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef"},
			{Key: "vcs.time", Value: "2025-03-01T12:00:00Z"},
		},
	}, true)
	assert.Equal(t, "12345", info.Version)
	assert.Equal(t, "go1.21.0", info.GoVersion)
	assert.Equal(t, "fromldflags", info.Commit)
	assert.Equal(t, "2025-03-01T12:00:00Z", info.Date)

	empty := &Info{}
	setBuildInfo(empty, nil, false)
	assert.Empty(t, empty.Version)
}

func TestMarshalInfo(t *testing.T) {
	b, err := marshalInfo(context.Background(), &Info{Name: appName, Version: "1.0.0"}, "yaml")
	assert.NoError(t, err)
	assert.Equal(t, "name: avvist-til-oppgave\nversion: 1.0.0\n", string(b))
}
