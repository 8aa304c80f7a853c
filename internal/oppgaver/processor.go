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
	"github.com/navikt/avvist-til-oppgave/internal/database"
	"github.com/navikt/avvist-til-oppgave/internal/hendelser"
	"github.com/navikt/avvist-til-oppgave/internal/kafka"
	"github.com/navikt/avvist-til-oppgave/internal/log"
	"github.com/navikt/avvist-til-oppgave/internal/metrics"
)

const (
	msgOppgaveOpprettet         = "Oppretter oppgave for avvist hendelse"
	msgAvvistHendelseMottattFmt = "Avvist hendelse mottatt for eksisterende oppgave (hendelseId=%s)"
)

// Processor turns rejected registrations of people under 18 into oppgaver
type Processor struct {
	database database.Plugin
	metrics  metrics.Manager
}

func NewProcessor(di database.Plugin, mm metrics.Manager) *Processor {
	return &Processor{
		database: di,
		metrics:  mm,
	}
}

// HandleMessage is called inside the transaction that advances the HWM for the message,
// so every database change here commits or rolls back together with it
func (p *Processor) HandleMessage(ctx context.Context, msg *kafka.Message) error {
	h, err := hendelser.Decode(ctx, msg.Value)
	if err != nil {
		return kafka.DecodeError(err)
	}

	avvist, ok := h.(*hendelser.AvvistHendelse)
	if !ok || !avvist.ErUnder18() || avvist.UtfoertAvVeileder() {
		log.L(ctx).Tracef("Ignoring %s", h.HendelseType())
		return nil
	}

	ctx = log.WithLogField(ctx, "hendelse", avvist.HendelseID.String())
	return p.handleAvvistUnder18(ctx, avvist)
}

func (p *Processor) handleAvvistUnder18(ctx context.Context, h *hendelser.AvvistHendelse) error {
	existing, err := p.database.GetOpenOppgave(ctx, h.ID, avtypes.OppgaveTypeAvvistUnder18)
	if err != nil {
		return err
	}

	if existing != nil {
		log.L(ctx).Infof("Oppgave %d already open with status %s", existing.ID, existing.Status)
		entry := avtypes.NewHistoryEntry(existing.ID, avtypes.HistoryAvvistHendelseMottatt, fmt.Sprintf(msgAvvistHendelseMottattFmt, h.HendelseID))
		if err := p.database.InsertHistoryEntry(ctx, entry); err != nil {
			return err
		}
		p.metrics.OppgaveDuplicate()
		return nil
	}

	oppgave := &avtypes.Oppgave{
		Type:             avtypes.OppgaveTypeAvvistUnder18,
		Status:           avtypes.OppgaveStatusUbehandlet,
		SourceEventID:    h.HendelseID,
		Opplysninger:     h.Opplysninger,
		SubjectID:        h.ID,
		Identitetsnummer: h.Identitetsnummer,
		Created:          time.Now().UTC(),
	}
	if err := p.database.InsertOppgave(ctx, oppgave); err != nil {
		return err
	}
	entry := avtypes.NewHistoryEntry(oppgave.ID, avtypes.HistoryOppgaveOpprettet, msgOppgaveOpprettet)
	if err := p.database.InsertHistoryEntry(ctx, entry); err != nil {
		return err
	}

	log.L(log.WithLogField(ctx, "oppgave", strconv.FormatInt(oppgave.ID, 10))).Infof("Created oppgave")
	p.metrics.OppgaveCreated()
	return nil
}
