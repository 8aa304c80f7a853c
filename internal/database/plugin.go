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

package database

import (
	"context"

	"github.com/navikt/avvist-til-oppgave/internal/avtypes"
	"github.com/navikt/avvist-til-oppgave/internal/config"
)

// Plugin is the interface implemented by each database plugin
type Plugin interface {
	PersistenceInterface // Split out to aid pluggability the next level down (SQL provider etc.)

	// InitPrefix initializes the set of configuration options that are valid, with defaults. Called on all plugins.
	InitPrefix(prefix config.Prefix)

	// Init initializes the plugin, connecting to the database and applying migrations if configured
	Init(ctx context.Context, prefix config.Prefix) error

	// Name gives the name of the plugin
	Name() string

	// Close releases the connection pool
	Close()
}

// PersistenceInterface holds the high-water-marks of the event log and the oppgaver
// created from it in one transactional store, so that consuming a message and
// applying its effect commit together.
type PersistenceInterface interface {
	HWMs
	Oppgaver
	History

	// RunAsGroup instructs the database plugin that all database operations performed within the context
	// function can be grouped into a single transaction.
	// Note, the caller is responsible for passing the context back to all database operations performed within the supplied function.
	RunAsGroup(ctx context.Context, fn func(ctx context.Context) error) error
}

type HWMs interface {
	// GetHWM returns the stored offset for the partition, or nil if it has never been assigned
	GetHWM(ctx context.Context, version int16, topic string, partition int32) (offset *int64, err error)

	// InsertHWM creates the row for a partition. Fails if the row exists.
	InsertHWM(ctx context.Context, hwm *avtypes.HWM) (err error)

	// AdvanceHWM moves the stored offset forwards to hwm.Offset, only if it is strictly greater.
	// Returns false, and changes nothing, otherwise.
	AdvanceHWM(ctx context.Context, hwm *avtypes.HWM) (advanced bool, err error)

	// GetHWMs lists all partitions for a consumer version
	GetHWMs(ctx context.Context, version int16) (hwms []*avtypes.HWM, err error)
}

type Oppgaver interface {
	// InsertOppgave creates an oppgave, setting the ID on the supplied object
	InsertOppgave(ctx context.Context, oppgave *avtypes.Oppgave) (err error)

	// GetOpenOppgave returns the non-terminal oppgave of the type for the subject, with its history, or nil
	GetOpenOppgave(ctx context.Context, subjectID int64, oppgaveType avtypes.OppgaveType) (oppgave *avtypes.Oppgave, err error)

	// GetOppgaveByID returns the oppgave with its history, or nil
	GetOppgaveByID(ctx context.Context, id int64) (oppgave *avtypes.Oppgave, err error)

	// GetOppgaverByStatus returns up to limit oppgaver in the status, oldest first, without history
	GetOppgaverByStatus(ctx context.Context, status avtypes.OppgaveStatus, limit int) (oppgaver []*avtypes.Oppgave, err error)

	// GetOpenOppgaverWithExternalID returns up to limit Opprettet oppgaver that have been created in the Oppgave API,
	// in id order starting after afterID
	GetOpenOppgaverWithExternalID(ctx context.Context, afterID int64, limit int) (oppgaver []*avtypes.Oppgave, err error)

	// UpdateOppgaveStatus conditionally moves the oppgave from one status to another.
	// Returns false if the oppgave was not in the from status.
	UpdateOppgaveStatus(ctx context.Context, id int64, from, to avtypes.OppgaveStatus) (updated bool, err error)

	// SetOppgaveExternalID records the id assigned by the Oppgave API, only while the oppgave is Opprettet
	SetOppgaveExternalID(ctx context.Context, id int64, externalID int64) (updated bool, err error)
}

type History interface {
	// InsertHistoryEntry appends to the log of an oppgave, setting the ID on the supplied object
	InsertHistoryEntry(ctx context.Context, entry *avtypes.HistoryEntry) (err error)

	// GetHistory returns the log of an oppgave, latest first
	GetHistory(ctx context.Context, oppgaveID int64) (entries []*avtypes.HistoryEntry, err error)

	// CountHistory counts the entries with a status on an oppgave
	CountHistory(ctx context.Context, oppgaveID int64, status avtypes.HistoryStatus) (count int, err error)
}
