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

package orchestrator

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/navikt/avvist-til-oppgave/internal/config"
	"github.com/navikt/avvist-til-oppgave/internal/health"
	"github.com/navikt/avvist-til-oppgave/mocks/databasemocks"
	"github.com/stretchr/testify/assert"
)

type fakeConsumer struct {
	err  error
	done chan error
}

func newFakeConsumer(err error) *fakeConsumer {
	return &fakeConsumer{err: err, done: make(chan error, 1)}
}

func (c *fakeConsumer) Start(ctx context.Context) {
	go func() {
		if c.err == nil {
			<-ctx.Done()
		}
		c.done <- c.err
	}()
}

func (c *fakeConsumer) Done() <-chan error { return c.done }

type fakePoller struct {
	done chan struct{}
}

func (p *fakePoller) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		close(p.done)
	}()
}

func (p *fakePoller) Done() <-chan struct{} { return p.done }

type fakeHealth struct {
	done chan error
}

func (h *fakeHealth) Serve(ctx context.Context) {
	<-ctx.Done()
	h.done <- nil
}

func (h *fakeHealth) Done() <-chan error { return h.done }

func newTestOrchestrator(t *testing.T) *orchestrator {
	config.Reset()
	or := NewOrchestrator().(*orchestrator)
	healthConfig.Set(health.HTTPConfAddress, "127.0.0.1")
	healthConfig.Set(health.HTTPConfPort, 0)
	return or
}

func newStartedOrchestrator(t *testing.T, consumerErr error) (*orchestrator, *databasemocks.Plugin, context.CancelFunc) {
	or := newTestOrchestrator(t)
	mdi := &databasemocks.Plugin{}
	mdi.On("Close").Return()
	or.database = mdi
	or.consumer = newFakeConsumer(consumerErr)
	or.pollers = []poller{&fakePoller{done: make(chan struct{})}}
	or.health = &fakeHealth{done: make(chan error, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	assert.NoError(t, or.Init(ctx, cancel))
	assert.NoError(t, or.Start())
	return or, mdi, cancel
}

func TestInitBadHWMVersion(t *testing.T) {
	or := newTestOrchestrator(t)
	config.Set(config.HWMVersion, 0)
	err := or.Init(context.Background(), func() {})
	assert.Regexp(t, "AO10106", err)

	config.Set(config.HWMVersion, 40000)
	err = or.Init(context.Background(), func() {})
	assert.Regexp(t, "AO10106", err)
}

func TestInitUnknownDatabase(t *testing.T) {
	or := newTestOrchestrator(t)
	config.Set(config.DatabaseType, "wrong")
	err := or.Init(context.Background(), func() {})
	assert.Regexp(t, "AO10105", err)
}

func TestInitDatabaseMigrationFails(t *testing.T) {
	or := newTestOrchestrator(t)
	config.Set(config.StartupRetryAttempts, 1)
	pgConfig := databaseConfig.SubPrefix("postgres")
	pgConfig.Set("url", "postgres://localhost:1/none?sslmode=disable&connect_timeout=1")
	pgConfig.Set("migrations.auto", true)
	err := or.Init(context.Background(), func() {})
	assert.Regexp(t, "AO10111", err)
}

func TestInitConsumerFails(t *testing.T) {
	or := newTestOrchestrator(t)
	or.database = &databasemocks.Plugin{}
	kafkaConfig.Set("topics", []string{})
	err := or.Init(context.Background(), func() {})
	assert.Regexp(t, "AO10205", err)
}

func TestInitPollerConfigInvalid(t *testing.T) {
	or := newTestOrchestrator(t)
	or.database = &databasemocks.Plugin{}
	config.Set(config.ReconcilerBatchSize, 0)
	err := or.Init(context.Background(), func() {})
	assert.Regexp(t, "AO10605", err)
	assert.Nil(t, or.consumer)

	or = newTestOrchestrator(t)
	or.database = &databasemocks.Plugin{}
	config.Set(config.CompletionEnabled, true)
	config.Set(config.CompletionInterval, "-1s")
	err = or.Init(context.Background(), func() {})
	assert.Regexp(t, "AO10606", err)
}

func TestInitHealthServerFails(t *testing.T) {
	or := newTestOrchestrator(t)
	or.database = &databasemocks.Plugin{}
	or.consumer = newFakeConsumer(nil)
	healthConfig.Set(health.HTTPConfAddress, "!bad")
	err := or.Init(context.Background(), func() {})
	assert.Regexp(t, "AO10104", err)
}

func TestInitOK(t *testing.T) {
	assert.NoError(t, config.ReadConfig("../../test/config/avvist.core.yaml"))
	or := NewOrchestrator().(*orchestrator)
	healthConfig.Set(health.HTTPConfAddress, "127.0.0.1")
	healthConfig.Set(health.HTTPConfPort, 0)
	databaseConfig.SubPrefix("postgres").Set("migrations.auto", false)
	config.Set(config.CompletionEnabled, true)
	or.consumer = newFakeConsumer(nil)

	err := or.Init(context.Background(), func() {})
	assert.NoError(t, err)
	assert.Equal(t, int16(1), or.hwmVersion)
	assert.NotNil(t, or.database)
	assert.NotNil(t, or.processor)
	assert.Len(t, or.pollers, 2)
	assert.NotNil(t, or.health)
	or.database.Close()
}

func TestWaitStopNotStarted(t *testing.T) {
	or := newTestOrchestrator(t)
	assert.NoError(t, or.WaitStop())
}

func TestStartAndStopOnCancel(t *testing.T) {
	or, mdi, cancel := newStartedOrchestrator(t, nil)
	assert.True(t, or.state.HasStarted())

	cancel()
	assert.NoError(t, or.WaitStop())
	assert.True(t, or.state.IsAlive())
	mdi.AssertExpectations(t)
}

func TestConsumerFailureStopsEverything(t *testing.T) {
	or, mdi, cancel := newStartedOrchestrator(t, fmt.Errorf("pop"))
	defer cancel()

	done := make(chan error)
	go func() { done <- or.WaitStop() }()
	select {
	case err := <-done:
		assert.Regexp(t, "AO10107.*consumer.*pop", err)
	case <-time.After(5 * time.Second):
		assert.Fail(t, "orchestrator did not stop")
	}
	assert.False(t, or.state.IsAlive())
	assert.False(t, or.state.IsReady())
	assert.Regexp(t, "pop", or.state.DeadReason())
	mdi.AssertExpectations(t)
}
