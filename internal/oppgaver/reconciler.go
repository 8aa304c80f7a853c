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
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/navikt/avvist-til-oppgave/internal/avtypes"
	"github.com/navikt/avvist-til-oppgave/internal/config"
	"github.com/navikt/avvist-til-oppgave/internal/database"
	"github.com/navikt/avvist-til-oppgave/internal/i18n"
	"github.com/navikt/avvist-til-oppgave/internal/log"
	"github.com/navikt/avvist-til-oppgave/internal/metrics"
	"github.com/navikt/avvist-til-oppgave/internal/oppgaveclient"
)

const (
	msgEksternOppgaveOpprettetFmt = "Ekstern oppgave opprettet (id=%d)"
	msgEksternOppgaveFeiletFmt    = "Feil ved opprettelse av ekstern oppgave: HTTP %d: %s"
	msgOppgaveFeiletFmt           = "Ga opp etter %d mislykkede forsøk på å opprette ekstern oppgave"
)

// Reconciler pushes Ubehandlet oppgaver to the Oppgave API.
//
// The conditional Ubehandlet->Opprettet update is the claim, so any number of
// instances can run against the same table without calling the API twice for
// the same oppgave.
type Reconciler struct {
	database    database.Plugin
	client      oppgaveclient.Client
	metrics     metrics.Manager
	interval    time.Duration
	batchSize   int
	maxAttempts int
	shuffle     func(n int, swap func(i, j int))
	done        chan struct{}
}

func NewReconciler(ctx context.Context, di database.Plugin, client oppgaveclient.Client, mm metrics.Manager) (*Reconciler, error) {
	r := &Reconciler{
		database:    di,
		client:      client,
		metrics:     mm,
		interval:    config.GetDuration(config.ReconcilerInterval),
		batchSize:   config.GetInt(config.ReconcilerBatchSize),
		maxAttempts: config.GetInt(config.ReconcilerMaxAttempts),
		shuffle:     rand.Shuffle,
		done:        make(chan struct{}),
	}
	if err := validatePoller(ctx, "reconciler", r.interval, r.batchSize); err != nil {
		return nil, err
	}
	return r, nil
}

// validatePoller rejects settings that would panic the ticker or page forever
func validatePoller(ctx context.Context, role string, interval time.Duration, batchSize int) error {
	if interval <= 0 {
		return i18n.NewError(ctx, i18n.MsgPollerInvalidInterval, role, interval)
	}
	if batchSize < 1 {
		return i18n.NewError(ctx, i18n.MsgPollerInvalidBatchSize, role, batchSize)
	}
	return nil
}

// Start runs a tick every interval until the context is cancelled
func (r *Reconciler) Start(ctx context.Context) {
	go r.loop(log.WithLogField(ctx, "role", "reconciler"))
}

// Done is closed once the loop has exited, after any in-flight oppgave has been handled
func (r *Reconciler) Done() <-chan struct{} {
	return r.done
}

func (r *Reconciler) loop(ctx context.Context) {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	log.L(ctx).Infof("Reconciler started interval=%s batchSize=%d maxAttempts=%d", r.interval, r.batchSize, r.maxAttempts)
	for {
		select {
		case <-ctx.Done():
			log.L(ctx).Infof("Reconciler stopped")
			return
		case <-ticker.C:
			if err := r.RunOnce(ctx); err != nil {
				log.L(ctx).Errorf("Reconciliation failed: %s", err)
			}
		}
	}
}

// RunOnce handles one batch of the oldest Ubehandlet oppgaver, in random order.
// Cancelling the context stops the batch between oppgaver, never in the middle of one.
func (r *Reconciler) RunOnce(ctx context.Context) error {
	var batch []*avtypes.Oppgave
	err := r.database.RunAsGroup(ctx, func(ctx context.Context) (err error) {
		batch, err = r.database.GetOppgaverByStatus(ctx, avtypes.OppgaveStatusUbehandlet, r.batchSize)
		return err
	})
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		return nil
	}
	log.L(ctx).Debugf("Reconciling %d oppgaver", len(batch))

	r.shuffle(len(batch), func(i, j int) {
		batch[i], batch[j] = batch[j], batch[i]
	})

	workCtx := context.WithoutCancel(ctx)
	for _, oppgave := range batch {
		if ctx.Err() != nil {
			return nil
		}
		r.reconcile(log.WithLogField(workCtx, "oppgave", strconv.FormatInt(oppgave.ID, 10)), oppgave)
	}
	return nil
}

func (r *Reconciler) reconcile(ctx context.Context, oppgave *avtypes.Oppgave) {
	claimed, err := r.claim(ctx, oppgave)
	if err != nil {
		log.L(ctx).Errorf("Failed to claim oppgave: %s", err)
		return
	}
	if !claimed {
		log.L(ctx).Debugf("Oppgave already claimed")
		return
	}

	req := oppgaveclient.NewAvvistUnder18Request(oppgave.Identitetsnummer, oppgave.IdempotencyKey())
	created, err := r.client.CreateOppgave(ctx, req)
	if err != nil {
		r.metrics.EksternOppgave(false)
		log.L(ctx).Warnf("Failed to create external oppgave: %s", err)
		r.compensate(ctx, oppgave, err)
		return
	}
	r.metrics.EksternOppgave(true)

	if err := r.recordExternalID(ctx, oppgave, created.ID); err != nil {
		r.metrics.OppgaveStuck()
		log.L(ctx).Errorf("%s: %s", i18n.NewError(ctx, i18n.MsgOppgaveRecordExternalFailed, created.ID, oppgave.ID), err)
		return
	}
	log.L(ctx).Infof("Created external oppgave %d", created.ID)
}

func (r *Reconciler) claim(ctx context.Context, oppgave *avtypes.Oppgave) (claimed bool, err error) {
	err = r.database.RunAsGroup(ctx, func(ctx context.Context) (err error) {
		claimed, err = r.database.UpdateOppgaveStatus(ctx, oppgave.ID, avtypes.OppgaveStatusUbehandlet, avtypes.OppgaveStatusOpprettet)
		return err
	})
	return claimed, err
}

func (r *Reconciler) recordExternalID(ctx context.Context, oppgave *avtypes.Oppgave, externalID int64) error {
	return r.database.RunAsGroup(ctx, func(ctx context.Context) error {
		updated, err := r.database.SetOppgaveExternalID(ctx, oppgave.ID, externalID)
		if err != nil {
			return err
		}
		if !updated {
			log.L(ctx).Warnf("Oppgave left Opprettet before external oppgave %d could be recorded", externalID)
			return nil
		}
		entry := avtypes.NewHistoryEntry(oppgave.ID, avtypes.HistoryEksternOppgaveOpprettet, fmt.Sprintf(msgEksternOppgaveOpprettetFmt, externalID))
		return r.database.InsertHistoryEntry(ctx, entry)
	})
}

// compensate hands the oppgave back for the next tick, or gives up on it once
// the configured number of attempts has failed
func (r *Reconciler) compensate(ctx context.Context, oppgave *avtypes.Oppgave, apiErr error) {
	status, message := 0, apiErr.Error()
	if e, ok := oppgaveclient.AsAPIError(apiErr); ok {
		status, message = e.Status, e.Message
	}

	target := avtypes.OppgaveStatusUbehandlet
	err := r.database.RunAsGroup(ctx, func(ctx context.Context) error {
		failures, err := r.database.CountHistory(ctx, oppgave.ID, avtypes.HistoryEksternOppgaveFeilet)
		if err != nil {
			return err
		}
		failures++
		if r.maxAttempts > 0 && failures >= r.maxAttempts {
			target = avtypes.OppgaveStatusFeilet
		}

		reverted, err := r.database.UpdateOppgaveStatus(ctx, oppgave.ID, avtypes.OppgaveStatusOpprettet, target)
		if err != nil {
			return err
		}
		if !reverted {
			log.L(ctx).Infof("Oppgave no longer Opprettet, nothing to compensate")
			return nil
		}

		entry := avtypes.NewHistoryEntry(oppgave.ID, avtypes.HistoryEksternOppgaveFeilet, fmt.Sprintf(msgEksternOppgaveFeiletFmt, status, message))
		if err := r.database.InsertHistoryEntry(ctx, entry); err != nil {
			return err
		}
		if target == avtypes.OppgaveStatusFeilet {
			entry := avtypes.NewHistoryEntry(oppgave.ID, avtypes.HistoryOppgaveFeilet, fmt.Sprintf(msgOppgaveFeiletFmt, failures))
			return r.database.InsertHistoryEntry(ctx, entry)
		}
		return nil
	})
	if err != nil {
		r.metrics.OppgaveStuck()
		log.L(ctx).Errorf("%s: %s", i18n.NewError(ctx, i18n.MsgOppgaveCompensationFailed, oppgave.ID, target), err)
	}
}
