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
	"strconv"
	"time"

	"github.com/navikt/avvist-til-oppgave/internal/avtypes"
	"github.com/navikt/avvist-til-oppgave/internal/config"
	"github.com/navikt/avvist-til-oppgave/internal/database"
	"github.com/navikt/avvist-til-oppgave/internal/log"
	"github.com/navikt/avvist-til-oppgave/internal/oppgaveclient"
)

const (
	msgOppgaveFerdigstiltFmt    = "Ekstern oppgave %d er ferdigstilt"
	msgOppgaveFeilregistrertFmt = "Ekstern oppgave %d er feilregistrert"
)

// CompletionSync closes Opprettet oppgaver once caseworkers have finished the
// matching oppgave in the Oppgave API, which frees the subject for a new one.
type CompletionSync struct {
	database  database.Plugin
	client    oppgaveclient.Client
	interval  time.Duration
	batchSize int
	done      chan struct{}
}

func NewCompletionSync(ctx context.Context, di database.Plugin, client oppgaveclient.Client) (*CompletionSync, error) {
	cs := &CompletionSync{
		database:  di,
		client:    client,
		interval:  config.GetDuration(config.CompletionInterval),
		batchSize: config.GetInt(config.CompletionBatchSize),
		done:      make(chan struct{}),
	}
	if err := validatePoller(ctx, "completion", cs.interval, cs.batchSize); err != nil {
		return nil, err
	}
	return cs, nil
}

func (cs *CompletionSync) Start(ctx context.Context) {
	go cs.loop(log.WithLogField(ctx, "role", "completion"))
}

func (cs *CompletionSync) Done() <-chan struct{} {
	return cs.done
}

func (cs *CompletionSync) loop(ctx context.Context) {
	defer close(cs.done)
	ticker := time.NewTicker(cs.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.L(ctx).Infof("Completion sync stopped")
			return
		case <-ticker.C:
			if err := cs.RunOnce(ctx); err != nil {
				log.L(ctx).Errorf("Completion sync failed: %s", err)
			}
		}
	}
}

// RunOnce pages through every open oppgave with an external id, batchSize at a time
func (cs *CompletionSync) RunOnce(ctx context.Context) error {
	var afterID int64
	for ctx.Err() == nil {
		page, err := cs.database.GetOpenOppgaverWithExternalID(ctx, afterID, cs.batchSize)
		if err != nil {
			return err
		}
		for _, oppgave := range page {
			if ctx.Err() != nil {
				return nil
			}
			cs.sync(log.WithLogField(ctx, "oppgave", strconv.FormatInt(oppgave.ID, 10)), oppgave)
			afterID = oppgave.ID
		}
		if len(page) == 0 || len(page) < cs.batchSize {
			return nil
		}
	}
	return nil
}

func (cs *CompletionSync) sync(ctx context.Context, oppgave *avtypes.Oppgave) {
	if oppgave.ExternalID == nil {
		return
	}
	externalID := *oppgave.ExternalID
	remote, err := cs.client.GetOppgave(ctx, externalID)
	switch {
	case oppgaveclient.IsNotFound(err):
		log.L(ctx).Warnf("External oppgave %d not found", externalID)
		return
	case err != nil:
		log.L(ctx).Errorf("Failed to get external oppgave %d: %s", externalID, err)
		return
	}

	var to avtypes.OppgaveStatus
	var entry *avtypes.HistoryEntry
	switch remote.Status {
	case oppgaveclient.StatusFerdigstilt:
		to = avtypes.OppgaveStatusFerdigbehandlet
		entry = avtypes.NewHistoryEntry(oppgave.ID, avtypes.HistoryOppgaveFerdigbehandlet, fmt.Sprintf(msgOppgaveFerdigstiltFmt, externalID))
	case oppgaveclient.StatusFeilregistrert:
		to = avtypes.OppgaveStatusFeilet
		entry = avtypes.NewHistoryEntry(oppgave.ID, avtypes.HistoryOppgaveFeilet, fmt.Sprintf(msgOppgaveFeilregistrertFmt, externalID))
	default:
		log.L(ctx).Tracef("External oppgave %d is %s", externalID, remote.Status)
		return
	}

	err = cs.database.RunAsGroup(ctx, func(ctx context.Context) error {
		updated, err := cs.database.UpdateOppgaveStatus(ctx, oppgave.ID, avtypes.OppgaveStatusOpprettet, to)
		if err != nil || !updated {
			return err
		}
		return cs.database.InsertHistoryEntry(ctx, entry)
	})
	if err != nil {
		log.L(ctx).Errorf("Failed to move oppgave to %s: %s", to, err)
		return
	}
	log.L(ctx).Infof("Moved oppgave to %s as external oppgave %d is %s", to, externalID, remote.Status)
}
