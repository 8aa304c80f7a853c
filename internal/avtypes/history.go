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
	"time"

	"github.com/navikt/avvist-til-oppgave/internal/i18n"
)

// HistoryStatus labels an entry in the append-only log of an oppgave
type HistoryStatus string

const (
	HistoryOppgaveOpprettet        HistoryStatus = "OppgaveOpprettet"
	HistoryAvvistHendelseMottatt   HistoryStatus = "AvvistHendelseMottatt"
	HistoryEksternOppgaveOpprettet HistoryStatus = "EksternOppgaveOpprettet"
	HistoryEksternOppgaveFeilet    HistoryStatus = "EksternOppgaveFeilet"
	HistoryOppgaveFerdigbehandlet  HistoryStatus = "OppgaveFerdigbehandlet"
	HistoryOppgaveFeilet           HistoryStatus = "OppgaveFeilet"
)

func ParseHistoryStatus(ctx context.Context, s string) (HistoryStatus, error) {
	switch hs := HistoryStatus(s); hs {
	case HistoryOppgaveOpprettet,
		HistoryAvvistHendelseMottatt,
		HistoryEksternOppgaveOpprettet,
		HistoryEksternOppgaveFeilet,
		HistoryOppgaveFerdigbehandlet,
		HistoryOppgaveFeilet:
		return hs, nil
	default:
		return "", i18n.NewError(ctx, i18n.MsgOppgaveInvalidHistoryStatus, s)
	}
}

// HistoryEntry is an immutable record of something that happened to an oppgave
type HistoryEntry struct {
	ID        int64         `json:"id"`
	OppgaveID int64         `json:"oppgaveId"`
	Status    HistoryStatus `json:"status"`
	Message   string        `json:"melding"`
	Timestamp time.Time     `json:"tidspunkt"`
}

func NewHistoryEntry(oppgaveID int64, status HistoryStatus, message string) *HistoryEntry {
	return &HistoryEntry{
		OppgaveID: oppgaveID,
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}
