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

package oppgaver

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/navikt/avvist-til-oppgave/internal/avtypes"
	"github.com/navikt/avvist-til-oppgave/internal/config"
	"github.com/navikt/avvist-til-oppgave/internal/hendelser"
	"github.com/navikt/avvist-til-oppgave/internal/kafka"
	"github.com/navikt/avvist-til-oppgave/internal/oppgaveclient"
	"github.com/navikt/avvist-til-oppgave/mocks/oppgaveclientmocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const e2eTopic = "paw.arbeidssoker-hendelseslogg-v1"

type pipeline struct {
	store      *memStore
	applier    *kafka.Applier
	reconciler *Reconciler
	completion *CompletionSync
	client     *oppgaveclientmocks.Client
}

func newPipeline(t *testing.T) (*pipeline, *memStore) {
	config.Reset()
	store := newMemStore()
	assert.NoError(t, store.InsertHWM(context.Background(), &avtypes.HWM{Version: 1, Topic: e2eTopic, Partition: 0, Offset: avtypes.HWMNone}))
	r, mc := newTestReconciler(t, store)
	p := NewProcessor(store, r.metrics)
	cs, err := NewCompletionSync(context.Background(), store, mc)
	assert.NoError(t, err)
	return &pipeline{
		store:      store,
		applier:    kafka.NewApplier(store, 1, p.HandleMessage, kafka.DecodeFailureSkip, r.metrics),
		reconciler: r,
		completion: cs,
		client:     mc,
	}, store
}

func (p *pipeline) deliver(t *testing.T, offset int64, value []byte) bool {
	applied, err := p.applier.Apply(context.Background(), &kafka.Message{Topic: e2eTopic, Partition: 0, Offset: offset, Value: value})
	assert.NoError(t, err)
	return applied
}

func TestEndToEndCreateReconcileReplay(t *testing.T) {
	p, store := newPipeline(t)
	event := avvistPayload(12345, uuid.New(), "SYSTEM", hendelser.OpplysningErUnder18Aar)

	assert.True(t, p.deliver(t, 5, event))
	all := store.all()
	assert.Len(t, all, 1)
	assert.Equal(t, avtypes.OppgaveStatusUbehandlet, all[0].Status)
	assert.Equal(t, int64(12345), all[0].SubjectID)
	assert.Equal(t, int64(5), store.hwm(1, e2eTopic, 0))

	p.client.On("CreateOppgave", mock.Anything, mock.Anything).Return(&oppgaveclient.OppgaveDTO{ID: 999}, nil).Once()
	assert.NoError(t, p.reconciler.RunOnce(context.Background()))
	after := store.get(all[0].ID)
	assert.Equal(t, avtypes.OppgaveStatusOpprettet, after.Status)
	assert.Equal(t, int64(999), *after.ExternalID)

	entries := store.historyCount()
	assert.False(t, p.deliver(t, 5, event))
	assert.Len(t, store.all(), 1)
	assert.Equal(t, entries, store.historyCount())
	assert.Equal(t, int64(5), store.hwm(1, e2eTopic, 0))

	// the replay caused no second external call
	assert.NoError(t, p.reconciler.RunOnce(context.Background()))
	p.client.AssertNumberOfCalls(t, "CreateOppgave", 1)
}

func TestEndToEndSecondEventForSameSubject(t *testing.T) {
	p, store := newPipeline(t)
	second := uuid.New()

	assert.True(t, p.deliver(t, 0, avvistPayload(12345, uuid.New(), "SYSTEM", hendelser.OpplysningErUnder18Aar)))
	assert.True(t, p.deliver(t, 1, avvistPayload(12345, second, "SYSTEM", hendelser.OpplysningErUnder18Aar)))

	all := store.all()
	assert.Len(t, all, 1)
	assert.Equal(t, avtypes.OppgaveStatusUbehandlet, all[0].Status)
	assert.Len(t, all[0].History, 2)
	assert.Equal(t, avtypes.HistoryAvvistHendelseMottatt, all[0].History[0].Status)
	assert.Contains(t, all[0].History[0].Message, second.String())
}

func TestEndToEndNewOppgaveAfterCompletion(t *testing.T) {
	p, store := newPipeline(t)

	assert.True(t, p.deliver(t, 0, avvistPayload(12345, uuid.New(), "SYSTEM", hendelser.OpplysningErUnder18Aar)))
	p.client.On("CreateOppgave", mock.Anything, mock.Anything).Return(&oppgaveclient.OppgaveDTO{ID: 999}, nil).Once()
	assert.NoError(t, p.reconciler.RunOnce(context.Background()))

	p.client.On("GetOppgave", mock.Anything, int64(999)).Return(&oppgaveclient.OppgaveDTO{ID: 999, Status: oppgaveclient.StatusFerdigstilt}, nil)
	assert.NoError(t, p.completion.RunOnce(context.Background()))

	assert.True(t, p.deliver(t, 1, avvistPayload(12345, uuid.New(), "SYSTEM", hendelser.OpplysningErUnder18Aar)))
	all := store.all()
	assert.Len(t, all, 2)
	assert.Equal(t, avtypes.OppgaveStatusFerdigbehandlet, all[0].Status)
	assert.Equal(t, avtypes.OppgaveStatusUbehandlet, all[1].Status)
}

func TestEndToEndUndecodableEventIsSkipped(t *testing.T) {
	p, store := newPipeline(t)

	assert.True(t, p.deliver(t, 0, []byte(`{!`)))
	assert.Empty(t, store.all())
	assert.Equal(t, int64(0), store.hwm(1, e2eTopic, 0))
}
