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

package health

import (
	"context"
	"sync"

	"github.com/navikt/avvist-til-oppgave/internal/log"
)

// State holds the liveness, readiness and startup flags reported on the /internal endpoints.
// A process starts alive, not ready and not started.
type State struct {
	mux        sync.RWMutex
	alive      bool
	ready      bool
	started    bool
	deadReason string
}

func NewState() *State {
	return &State{alive: true}
}

// SetAlive marks the process alive or dead. Once dead, the platform is expected to restart us.
func (s *State) SetAlive(ctx context.Context, alive bool, reason string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if !alive && s.alive {
		log.L(ctx).Errorf("Marking process as not alive: %s", reason)
		s.deadReason = reason
	}
	s.alive = alive
}

func (s *State) SetReady(ready bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.ready = ready
}

func (s *State) SetStarted(started bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.started = started
}

func (s *State) IsAlive() bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.alive
}

func (s *State) IsReady() bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.ready
}

func (s *State) HasStarted() bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.started
}

// DeadReason is the reason given when the process was first marked not alive
func (s *State) DeadReason() string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.deadReason
}
