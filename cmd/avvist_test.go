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
	"fmt"
	"syscall"
	"testing"

	"github.com/navikt/avvist-til-oppgave/mocks/orchestratormocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const configFile = "../test/config/avvist.core.yaml"

func runWith(t *testing.T, o *orchestratormocks.Orchestrator, args ...string) error {
	_utOrchestrator = o
	cfgFile = ""
	rootCmd.SetArgs(args)
	defer func() {
		_utOrchestrator = nil
		rootCmd.SetArgs([]string{})
	}()
	return Execute()
}

func TestGetOrchestrator(t *testing.T) {
	assert.NotNil(t, getOrchestrator())
}

func TestExecMissingConfig(t *testing.T) {
	err := runWith(t, &orchestratormocks.Orchestrator{}, "-f", "../test/config/missing.yaml")
	assert.Regexp(t, "AO10101", err)
}

func TestExecOrchestratorInitFail(t *testing.T) {
	o := &orchestratormocks.Orchestrator{}
	o.On("Init", mock.Anything, mock.Anything).Return(fmt.Errorf("splutter"))
	err := runWith(t, o, "-f", configFile)
	assert.Regexp(t, "splutter", err)
}

func TestExecOrchestratorStartFail(t *testing.T) {
	o := &orchestratormocks.Orchestrator{}
	o.On("Init", mock.Anything, mock.Anything).Return(nil)
	o.On("Start").Return(fmt.Errorf("bang"))
	err := runWith(t, o, "-f", configFile)
	assert.Regexp(t, "bang", err)
}

func TestExecComponentFailure(t *testing.T) {
	o := &orchestratormocks.Orchestrator{}
	o.On("Init", mock.Anything, mock.Anything).Return(nil)
	o.On("Start").Return(nil)
	o.On("WaitStop").Return(fmt.Errorf("AO10107: Component consumer failed"))
	err := runWith(t, o, "-f", configFile)
	assert.Regexp(t, "AO10107", err)
}

func TestExecOkExitSIGINT(t *testing.T) {
	o := &orchestratormocks.Orchestrator{}
	waitStop := make(chan struct{})
	o.On("Init", mock.Anything, mock.Anything).Return(nil)
	o.On("Start").Return(nil)
	o.On("WaitStop").Return(func() error {
		<-waitStop
		return nil
	})

	go func() {
		sigs <- syscall.SIGINT
		close(waitStop)
	}()
	err := runWith(t, o, "-f", configFile)
	assert.NoError(t, err)
}
