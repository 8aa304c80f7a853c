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

package oppgaveclient

import (
	"time"

	"github.com/google/uuid"
)

type Prioritet string

const (
	PrioritetHoy  Prioritet = "HOY"
	PrioritetNorm Prioritet = "NORM"
	PrioritetLav  Prioritet = "LAV"
)

// Status is the status of an oppgave in the Oppgave API
type Status string

const (
	StatusOpprettet       Status = "OPPRETTET"
	StatusAapnet          Status = "AAPNET"
	StatusUnderBehandling Status = "UNDER_BEHANDLING"
	StatusFerdigstilt     Status = "FERDIGSTILT"
	StatusFeilregistrert  Status = "FEILREGISTRERT"
)

const (
	oppgavetypeKontaktBruker = "KONT_BRUK"
	temaGenerell             = "GEN"
	aktivDatoFormat          = "2006-01-02"
)

const avvistUnder18Beskrivelse = `Personen har forsøkt å registrere seg som arbeidssøker, men er sperret fra å gjøre dette da personen er under 18 år.
For mindreårige arbeidssøkere trengs det samtykke fra begge foresatte for å kunne registrere seg.
Se "Samtykke fra foresatte til unge under 18 år - registrering som arbeidssøker, øvrige tiltak og tjenester".
Når samtykke er innhentet kan du registrere arbeidssøker via flate for manuell registrering i modia.`

type OpprettOppgaveRequest struct {
	AktivDato              string    `json:"aktiv_dato"`
	Prioritet              Prioritet `json:"prioritet"`
	Tema                   string    `json:"tema"`
	Oppgavetype            string    `json:"oppgavetype"`
	Personident            string    `json:"personident,omitempty"`
	Orgnr                  string    `json:"orgnr,omitempty"`
	TildeltEnhetsnr        string    `json:"tildelt_enhetsnr,omitempty"`
	OpprettetAvEnhetsnr    string    `json:"opprettet_av_enhetsnr,omitempty"`
	JournalpostID          string    `json:"journalpost_id,omitempty"`
	BehandlesAvApplikasjon string    `json:"behandles_av_applikasjon,omitempty"`
	Saksreferanse          string    `json:"saksreferanse,omitempty"`
	Beskrivelse            string    `json:"beskrivelse,omitempty"`
	Behandlingstema        string    `json:"behandlingstema,omitempty"`
	Behandlingstype        string    `json:"behandlingstype,omitempty"`
	FristFerdigstillelse   string    `json:"frist_ferdigstillelse,omitempty"`
	UUID                   string    `json:"uuid,omitempty"`
}

type Bruker struct {
	Ident string `json:"ident"`
	Type  string `json:"type"`
}

type OppgaveDTO struct {
	ID                   int64      `json:"id"`
	Personident          string     `json:"personident,omitempty"`
	TildeltEnhetsnr      string     `json:"tildelt_enhetsnr"`
	Beskrivelse          string     `json:"beskrivelse,omitempty"`
	Tema                 string     `json:"tema"`
	Oppgavetype          string     `json:"oppgavetype"`
	Versjon              int32      `json:"versjon"`
	Prioritet            Prioritet  `json:"prioritet"`
	Status               Status     `json:"status"`
	AktivDato            string     `json:"aktiv_dato"`
	FristFerdigstillelse string     `json:"frist_ferdigstillelse,omitempty"`
	OpprettetTidspunkt   *time.Time `json:"opprettet_tidspunkt,omitempty"`
	FerdigstiltTidspunkt *time.Time `json:"ferdigstilt_tidspunkt,omitempty"`
	EndretTidspunkt      *time.Time `json:"endret_tidspunkt,omitempty"`
	Bruker               *Bruker    `json:"bruker,omitempty"`
}

var now = time.Now

// NewAvvistUnder18Request builds the request for a person rejected as a job seeker for being under 18.
// The idempotency key lets the Oppgave API recognize a retried create.
func NewAvvistUnder18Request(identitetsnummer string, idempotencyKey uuid.UUID) *OpprettOppgaveRequest {
	return &OpprettOppgaveRequest{
		Personident: identitetsnummer,
		AktivDato:   now().Format(aktivDatoFormat),
		Oppgavetype: oppgavetypeKontaktBruker,
		Prioritet:   PrioritetNorm,
		Tema:        temaGenerell,
		Beskrivelse: avvistUnder18Beskrivelse,
		UUID:        idempotencyKey.String(),
	}
}
