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
	"math"
	"sync"

	"github.com/navikt/avvist-til-oppgave/internal/config"
	"github.com/navikt/avvist-til-oppgave/internal/database"
	"github.com/navikt/avvist-til-oppgave/internal/database/difactory"
	"github.com/navikt/avvist-til-oppgave/internal/health"
	"github.com/navikt/avvist-til-oppgave/internal/i18n"
	"github.com/navikt/avvist-til-oppgave/internal/kafka"
	"github.com/navikt/avvist-til-oppgave/internal/log"
	"github.com/navikt/avvist-til-oppgave/internal/metrics"
	"github.com/navikt/avvist-til-oppgave/internal/oppgaveclient"
	"github.com/navikt/avvist-til-oppgave/internal/oppgaver"
	"github.com/navikt/avvist-til-oppgave/internal/retry"
	"github.com/navikt/avvist-til-oppgave/internal/tokenclient"
)

var (
	databaseConfig = config.NewPluginConfig("database")
	kafkaConfig    = config.NewPluginConfig("kafka")
	tokenConfig    = config.NewPluginConfig("token")
	oppgaveConfig  = config.NewPluginConfig("oppgave")
	healthConfig   = config.NewPluginConfig("health")
)

// Orchestrator wires the consumer, the reconciliation loops and the health server
// over one database, and supervises them until shutdown
type Orchestrator interface {
	Init(ctx context.Context, cancelCtx context.CancelFunc) error
	Start() error

	// WaitStop blocks until every component has exited, returning the first component failure
	WaitStop() error
}

type consumer interface {
	Start(ctx context.Context)
	Done() <-chan error
}

type poller interface {
	Start(ctx context.Context)
	Done() <-chan struct{}
}

type healthServer interface {
	Serve(ctx context.Context)
	Done() <-chan error
}

type orchestrator struct {
	ctx        context.Context
	cancelCtx  context.CancelFunc
	hwmVersion int16
	state      *health.State
	metrics    metrics.Manager
	database   database.Plugin
	tokens     tokenclient.Client
	oppgaver   oppgaveclient.Client
	processor  *oppgaver.Processor
	consumer   consumer
	pollers    []poller
	health     healthServer

	mux     sync.Mutex
	started bool
	stopped chan struct{}
	failure error
}

func NewOrchestrator() Orchestrator {
	or := &orchestrator{
		state:   health.NewState(),
		stopped: make(chan struct{}),
	}

	// Initialize the config on all the factories
	difactory.InitPrefix(databaseConfig)
	kafka.InitPrefix(kafkaConfig)
	tokenclient.InitPrefix(tokenConfig)
	oppgaveclient.InitPrefix(oppgaveConfig)
	health.InitPrefix(healthConfig)

	return or
}

func (or *orchestrator) Init(ctx context.Context, cancelCtx context.CancelFunc) (err error) {
	or.ctx = ctx
	or.cancelCtx = cancelCtx
	err = or.initConfig(ctx)
	if err == nil {
		err = or.initPlugins(ctx)
	}
	if err == nil {
		err = or.initComponents(ctx)
	}
	return err
}

func (or *orchestrator) initConfig(ctx context.Context) error {
	version := config.GetInt(config.HWMVersion)
	if version < 1 || version > math.MaxInt16 {
		return i18n.NewError(ctx, i18n.MsgInvalidHWMVersion, version)
	}
	or.hwmVersion = int16(version)
	return nil
}

func (or *orchestrator) initPlugins(ctx context.Context) (err error) {
	if or.database == nil {
		if or.database, err = or.initDatabasePlugin(ctx); err != nil {
			return err
		}
	}
	return nil
}

// initDatabasePlugin connects and migrates, retrying while the database comes up
func (or *orchestrator) initDatabasePlugin(ctx context.Context) (database.Plugin, error) {
	pluginType := config.GetString(config.DatabaseType)
	if _, err := difactory.GetPlugin(ctx, pluginType); err != nil {
		return nil, err
	}

	var plugin database.Plugin
	maxAttempts := config.GetInt(config.StartupRetryAttempts)
	err := retry.FromConfig().Do(ctx, "database init", func(attempt int) (bool, error) {
		plugin, _ = difactory.GetPlugin(ctx, pluginType)
		err := plugin.Init(ctx, databaseConfig.SubPrefix(pluginType))
		if err != nil {
			plugin.Close()
		}
		return err != nil && attempt < maxAttempts, err
	})
	if err != nil {
		return nil, err
	}
	return plugin, nil
}

func (or *orchestrator) initComponents(ctx context.Context) (err error) {
	if or.metrics == nil {
		or.metrics = metrics.NewMetricsManager()
	}

	if or.tokens == nil {
		or.tokens = tokenclient.New(ctx, tokenConfig)
	}

	if or.oppgaver == nil {
		or.oppgaver = oppgaveclient.New(ctx, oppgaveConfig, or.tokens)
	}

	if or.processor == nil {
		or.processor = oppgaver.NewProcessor(or.database, or.metrics)
	}

	if or.pollers == nil {
		or.pollers = []poller{}
		if config.GetBool(config.ReconcilerEnabled) {
			r, err := oppgaver.NewReconciler(ctx, or.database, or.oppgaver, or.metrics)
			if err != nil {
				return err
			}
			or.pollers = append(or.pollers, r)
		}
		if config.GetBool(config.CompletionEnabled) {
			cs, err := oppgaver.NewCompletionSync(ctx, or.database, or.oppgaver)
			if err != nil {
				return err
			}
			or.pollers = append(or.pollers, cs)
		}
	}

	if or.consumer == nil {
		if or.consumer, err = kafka.NewConsumer(ctx, kafkaConfig, or.database, or.hwmVersion, or.processor.HandleMessage, or.state, or.metrics); err != nil {
			return err
		}
	}

	if or.health == nil {
		if or.health, err = health.NewServer(ctx, healthConfig, or.state); err != nil {
			return err
		}
	}
	return nil
}

func (or *orchestrator) Start() error {
	or.mux.Lock()
	defer or.mux.Unlock()

	go or.health.Serve(or.ctx)
	or.consumer.Start(or.ctx)
	for _, p := range or.pollers {
		p.Start(or.ctx)
	}
	go or.supervise()

	or.started = true
	or.state.SetStarted(true)
	log.L(or.ctx).Infof("Started")
	return nil
}

// supervise cancels everything as soon as the consumer or health server exits,
// as neither can usefully run without the other
func (or *orchestrator) supervise() {
	defer close(or.stopped)
	consumerDone, healthDone := or.consumer.Done(), or.health.Done()
	for consumerDone != nil || healthDone != nil {
		select {
		case err := <-consumerDone:
			consumerDone = nil
			or.componentExited("consumer", err)
		case err := <-healthDone:
			healthDone = nil
			or.componentExited("health", err)
		}
	}
	for _, p := range or.pollers {
		<-p.Done()
	}
	if or.database != nil {
		or.database.Close()
	}
	log.L(or.ctx).Infof("Stopped")
}

func (or *orchestrator) componentExited(name string, err error) {
	if err != nil {
		failure := i18n.NewError(or.ctx, i18n.MsgComponentFailed, name, err)
		log.L(or.ctx).Errorf("%s", failure)
		or.state.SetAlive(or.ctx, false, failure.Error())
		or.mux.Lock()
		if or.failure == nil {
			or.failure = failure
		}
		or.mux.Unlock()
	}
	or.state.SetReady(false)
	or.cancelCtx()
}

func (or *orchestrator) WaitStop() error {
	or.mux.Lock()
	started := or.started
	or.mux.Unlock()
	if !started {
		return nil
	}

	<-or.stopped
	or.mux.Lock()
	defer or.mux.Unlock()
	return or.failure
}
