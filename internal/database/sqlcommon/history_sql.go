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

package sqlcommon

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/navikt/avvist-til-oppgave/internal/avtypes"
	"github.com/navikt/avvist-til-oppgave/internal/i18n"
)

var (
	historyColumns = []string{
		"oppgave_id",
		"status",
		"melding",
		"tidspunkt",
	}
	historySelectColumns = append([]string{idColumn}, historyColumns...)
)

func (s *SQLCommon) InsertHistoryEntry(ctx context.Context, entry *avtypes.HistoryEntry) (err error) {
	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	entry.ID, err = s.insertTx(ctx, tx,
		sq.Insert("oppgave_hendelse_logg").
			Columns(historyColumns...).
			Values(
				entry.OppgaveID,
				string(entry.Status),
				entry.Message,
				entry.Timestamp,
			),
	)
	if err != nil {
		return err
	}

	return s.commitTx(ctx, tx, autoCommit)
}

func (s *SQLCommon) historyResult(ctx context.Context, row *sql.Rows) (*avtypes.HistoryEntry, error) {
	var entry avtypes.HistoryEntry
	var status string
	err := row.Scan(
		&entry.ID,
		&entry.OppgaveID,
		&status,
		&entry.Message,
		&entry.Timestamp,
	)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgDBReadErr, "oppgave_hendelse_logg")
	}
	if entry.Status, err = avtypes.ParseHistoryStatus(ctx, status); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *SQLCommon) GetHistory(ctx context.Context, oppgaveID int64) (entries []*avtypes.HistoryEntry, err error) {

	rows, err := s.query(ctx,
		sq.Select(historySelectColumns...).
			From("oppgave_hendelse_logg").
			Where(sq.Eq{"oppgave_id": oppgaveID}).
			OrderBy("tidspunkt DESC", "id DESC"),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries = []*avtypes.HistoryEntry{}
	for rows.Next() {
		entry, err := s.historyResult(ctx, rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *SQLCommon) CountHistory(ctx context.Context, oppgaveID int64, status avtypes.HistoryStatus) (count int, err error) {

	rows, err := s.query(ctx,
		sq.Select("COUNT(*)").
			From("oppgave_hendelse_logg").
			Where(sq.Eq{
				"oppgave_id": oppgaveID,
				"status":     string(status),
			}),
	)
	if err != nil {
		return -1, err
	}
	defer rows.Close()

	if rows.Next() {
		if err = rows.Scan(&count); err != nil {
			return -1, i18n.WrapError(ctx, err, i18n.MsgDBReadErr, "oppgave_hendelse_logg")
		}
	}
	return count, nil
}
