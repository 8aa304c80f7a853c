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
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/navikt/avvist-til-oppgave/internal/avtypes"
	"github.com/navikt/avvist-til-oppgave/internal/database"
	"github.com/navikt/avvist-til-oppgave/internal/hendelser"
)

type memTxKey struct{}

// memStore is a transactional in-memory rendition of the database, enforcing
// at most one open oppgave per subject and type. A failed group restores the
// state from before it started.
type memStore struct {
	database.Plugin
	mux      sync.Mutex
	hwms     map[string]int64
	oppgaver []avtypes.Oppgave
	history  []avtypes.HistoryEntry
	nextID   int64
	failOn   map[avtypes.HistoryStatus]error
}

func newMemStore() *memStore {
	return &memStore{
		hwms:   map[string]int64{},
		failOn: map[avtypes.HistoryStatus]error{},
	}
}

func (m *memStore) RunAsGroup(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}
	m.mux.Lock()
	defer m.mux.Unlock()
	hwms := make(map[string]int64, len(m.hwms))
	for k, v := range m.hwms {
		hwms[k] = v
	}
	oppgaver := append([]avtypes.Oppgave{}, m.oppgaver...)
	history := append([]avtypes.HistoryEntry{}, m.history...)
	nextID := m.nextID
	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		m.hwms, m.oppgaver, m.history, m.nextID = hwms, oppgaver, history, nextID
		return err
	}
	return nil
}

func hwmKey(version int16, topic string, partition int32) string {
	return fmt.Sprintf("%d/%s/%d", version, topic, partition)
}

func (m *memStore) GetHWM(ctx context.Context, version int16, topic string, partition int32) (*int64, error) {
	if v, ok := m.hwms[hwmKey(version, topic, partition)]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *memStore) InsertHWM(ctx context.Context, hwm *avtypes.HWM) error {
	k := hwmKey(hwm.Version, hwm.Topic, hwm.Partition)
	if _, ok := m.hwms[k]; ok {
		return fmt.Errorf("duplicate key %s", k)
	}
	m.hwms[k] = hwm.Offset
	return nil
}

func (m *memStore) AdvanceHWM(ctx context.Context, hwm *avtypes.HWM) (bool, error) {
	k := hwmKey(hwm.Version, hwm.Topic, hwm.Partition)
	if current, ok := m.hwms[k]; !ok || current >= hwm.Offset {
		return false, nil
	}
	m.hwms[k] = hwm.Offset
	return true, nil
}

func (m *memStore) nextSeq() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) find(id int64) *avtypes.Oppgave {
	for i := range m.oppgaver {
		if m.oppgaver[i].ID == id {
			return &m.oppgaver[i]
		}
	}
	return nil
}

func (m *memStore) withHistory(o avtypes.Oppgave) *avtypes.Oppgave {
	o.History = nil
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].OppgaveID == o.ID {
			h := m.history[i]
			o.History = append(o.History, &h)
		}
	}
	return &o
}

func (m *memStore) InsertOppgave(ctx context.Context, oppgave *avtypes.Oppgave) error {
	for _, o := range m.oppgaver {
		if o.SubjectID == oppgave.SubjectID && o.Type == oppgave.Type && o.IsOpen() {
			return fmt.Errorf("duplicate open oppgave for %d", oppgave.SubjectID)
		}
	}
	oppgave.ID = m.nextSeq()
	m.oppgaver = append(m.oppgaver, *oppgave)
	return nil
}

func (m *memStore) GetOpenOppgave(ctx context.Context, subjectID int64, oppgaveType avtypes.OppgaveType) (*avtypes.Oppgave, error) {
	for _, o := range m.oppgaver {
		if o.SubjectID == subjectID && o.Type == oppgaveType && o.IsOpen() {
			return m.withHistory(o), nil
		}
	}
	return nil, nil
}

func (m *memStore) GetOppgaveByID(ctx context.Context, id int64) (*avtypes.Oppgave, error) {
	if o := m.find(id); o != nil {
		return m.withHistory(*o), nil
	}
	return nil, nil
}

func (m *memStore) GetOppgaverByStatus(ctx context.Context, status avtypes.OppgaveStatus, limit int) ([]*avtypes.Oppgave, error) {
	var result []*avtypes.Oppgave
	for _, o := range m.oppgaver {
		if o.Status == status && len(result) < limit {
			o := o
			result = append(result, &o)
		}
	}
	return result, nil
}

func (m *memStore) GetOpenOppgaverWithExternalID(ctx context.Context, afterID int64, limit int) ([]*avtypes.Oppgave, error) {
	var result []*avtypes.Oppgave
	for _, o := range m.oppgaver {
		if o.Status == avtypes.OppgaveStatusOpprettet && o.ExternalID != nil && o.ID > afterID && len(result) < limit {
			o := o
			result = append(result, &o)
		}
	}
	return result, nil
}

func (m *memStore) UpdateOppgaveStatus(ctx context.Context, id int64, from, to avtypes.OppgaveStatus) (bool, error) {
	o := m.find(id)
	if o == nil || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (m *memStore) SetOppgaveExternalID(ctx context.Context, id int64, externalID int64) (bool, error) {
	o := m.find(id)
	if o == nil || o.Status != avtypes.OppgaveStatusOpprettet {
		return false, nil
	}
	o.ExternalID = &externalID
	return true, nil
}

func (m *memStore) InsertHistoryEntry(ctx context.Context, entry *avtypes.HistoryEntry) error {
	if err := m.failOn[entry.Status]; err != nil {
		return err
	}
	entry.ID = m.nextSeq()
	m.history = append(m.history, *entry)
	return nil
}

func (m *memStore) CountHistory(ctx context.Context, oppgaveID int64, status avtypes.HistoryStatus) (int, error) {
	count := 0
	for _, h := range m.history {
		if h.OppgaveID == oppgaveID && h.Status == status {
			count++
		}
	}
	return count, nil
}

// all returns every oppgave with its history, in id order
func (m *memStore) all() []*avtypes.Oppgave {
	m.mux.Lock()
	defer m.mux.Unlock()
	result := make([]*avtypes.Oppgave, 0, len(m.oppgaver))
	for _, o := range m.oppgaver {
		result = append(result, m.withHistory(o))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (m *memStore) historyCount() int {
	m.mux.Lock()
	defer m.mux.Unlock()
	return len(m.history)
}

func (m *memStore) hwm(version int16, topic string, partition int32) int64 {
	m.mux.Lock()
	defer m.mux.Unlock()
	return m.hwms[hwmKey(version, topic, partition)]
}

func avvistPayload(subjectID int64, hendelseID uuid.UUID, utfoertAv string, opplysninger ...string) []byte {
	b, _ := json.Marshal(&hendelser.AvvistHendelse{
		HendelseID:       hendelseID,
		ID:               subjectID,
		Identitetsnummer: "12345678901",
		Type:             hendelser.AvvistHendelseType,
		Opplysninger:     opplysninger,
		Metadata: hendelser.Metadata{
			Tidspunkt: hendelser.EpochTime(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)),
			UtfoertAv: hendelser.UtfoertAv{Type: utfoertAv, ID: "paw"},
			Kilde:     "paw-arbeidssokerregisteret-api-inngang",
			Aarsak:    "Er under 18 år",
		},
	})
	return b
}

func (m *memStore) get(id int64) *avtypes.Oppgave {
	m.mux.Lock()
	defer m.mux.Unlock()
	if o := m.find(id); o != nil {
		return m.withHistory(*o)
	}
	return nil
}
