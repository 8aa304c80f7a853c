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

package avtypes

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/navikt/avvist-til-oppgave/internal/i18n"
)

// OppgaveStatus is the lifecycle state of an oppgave
type OppgaveStatus string

const (
	// OppgaveStatusUbehandlet is a new oppgave, not yet sent to the Oppgave API
	OppgaveStatusUbehandlet OppgaveStatus = "Ubehandlet"
	// OppgaveStatusOpprettet is claimed for, or created in, the Oppgave API
	OppgaveStatusOpprettet OppgaveStatus = "Opprettet"
	// OppgaveStatusFerdigbehandlet is done
	OppgaveStatusFerdigbehandlet OppgaveStatus = "Ferdigbehandlet"
	// OppgaveStatusFeilet has been given up on
	OppgaveStatusFeilet OppgaveStatus = "Feilet"
)

// OpenOppgaveStatuses are the statuses that block creation of another oppgave of the same type
var OpenOppgaveStatuses = []OppgaveStatus{OppgaveStatusUbehandlet, OppgaveStatusOpprettet}

// IsTerminal is true when no further transitions happen from this status
func (s OppgaveStatus) IsTerminal() bool {
	return s == OppgaveStatusFerdigbehandlet || s == OppgaveStatusFeilet
}

func ParseOppgaveStatus(ctx context.Context, s string) (OppgaveStatus, error) {
	switch st := OppgaveStatus(s); st {
	case OppgaveStatusUbehandlet, OppgaveStatusOpprettet, OppgaveStatusFerdigbehandlet, OppgaveStatusFeilet:
		return st, nil
	default:
		return "", i18n.NewError(ctx, i18n.MsgOppgaveInvalidStatus, s)
	}
}

// OppgaveType is the kind of follow-up the oppgave represents
type OppgaveType string

const (
	OppgaveTypeAvvistUnder18 OppgaveType = "AvvistUnder18"
)

func ParseOppgaveType(ctx context.Context, s string) (OppgaveType, error) {
	if t := OppgaveType(s); t == OppgaveTypeAvvistUnder18 {
		return t, nil
	}
	return "", i18n.NewError(ctx, i18n.MsgOppgaveInvalidType, s)
}

// Oppgave is one unit of follow-up work derived from a rejected registration
type Oppgave struct {
	ID               int64           `json:"id"`
	Type             OppgaveType     `json:"type"`
	Status           OppgaveStatus   `json:"status"`
	SourceEventID    uuid.UUID       `json:"meldingId"`
	Opplysninger     []string        `json:"opplysninger"`
	SubjectID        int64           `json:"arbeidssoekerId"`
	Identitetsnummer string          `json:"identitetsnummer"`
	ExternalID       *int64          `json:"eksternOppgaveId,omitempty"`
	Created          time.Time       `json:"tidspunkt"`
	History          []*HistoryEntry `json:"hendelseLogg,omitempty"`
}

// IsOpen is true while the oppgave blocks creation of another of the same type for the subject
func (o *Oppgave) IsOpen() bool {
	return !o.Status.IsTerminal()
}

// CurrentHistory returns the history entry with the latest timestamp, regardless
// of the order the entries were loaded in
func (o *Oppgave) CurrentHistory() *HistoryEntry {
	if len(o.History) == 0 {
		return nil
	}
	sorted := make([]*HistoryEntry, len(o.History))
	copy(sorted, o.History)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted[len(sorted)-1]
}

// IdempotencyKey is the key sent on every create call for this oppgave
func (o *Oppgave) IdempotencyKey() uuid.UUID {
	return IdempotencyKey(o.ID, o.SourceEventID)
}
