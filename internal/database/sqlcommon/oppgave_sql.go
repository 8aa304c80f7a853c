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
	"github.com/lib/pq"
	"github.com/navikt/avvist-til-oppgave/internal/avtypes"
	"github.com/navikt/avvist-til-oppgave/internal/i18n"
	"github.com/navikt/avvist-til-oppgave/internal/log"
)

var (
	oppgaveColumns = []string{
		"type",
		"status",
		"melding_id",
		"opplysninger",
		"arbeidssoeker_id",
		"identitetsnummer",
		"ekstern_oppgave_id",
		"tidspunkt",
	}
	oppgaveSelectColumns = append([]string{idColumn}, oppgaveColumns...)
)

func openOppgaveStatuses() []string {
	statuses := make([]string, len(avtypes.OpenOppgaveStatuses))
	for i, s := range avtypes.OpenOppgaveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

func (s *SQLCommon) InsertOppgave(ctx context.Context, oppgave *avtypes.Oppgave) (err error) {
	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	oppgave.ID, err = s.insertTx(ctx, tx,
		sq.Insert("oppgaver").
			Columns(oppgaveColumns...).
			Values(
				string(oppgave.Type),
				string(oppgave.Status),
				oppgave.SourceEventID,
				pq.Array(oppgave.Opplysninger),
				oppgave.SubjectID,
				oppgave.Identitetsnummer,
				oppgave.ExternalID,
				oppgave.Created,
			),
	)
	if err != nil {
		return err
	}

	return s.commitTx(ctx, tx, autoCommit)
}

func (s *SQLCommon) oppgaveResult(ctx context.Context, row *sql.Rows) (*avtypes.Oppgave, error) {
	var oppgave avtypes.Oppgave
	var oType, oStatus string
	var externalID sql.NullInt64
	err := row.Scan(
		&oppgave.ID,
		&oType,
		&oStatus,
		&oppgave.SourceEventID,
		pq.Array(&oppgave.Opplysninger),
		&oppgave.SubjectID,
		&oppgave.Identitetsnummer,
		&externalID,
		&oppgave.Created,
	)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgDBReadErr, "oppgaver")
	}
	if oppgave.Type, err = avtypes.ParseOppgaveType(ctx, oType); err != nil {
		return nil, err
	}
	if oppgave.Status, err = avtypes.ParseOppgaveStatus(ctx, oStatus); err != nil {
		return nil, err
	}
	if externalID.Valid {
		oppgave.ExternalID = &externalID.Int64
	}
	return &oppgave, nil
}

func (s *SQLCommon) getOppgaver(ctx context.Context, q sq.SelectBuilder) ([]*avtypes.Oppgave, error) {
	rows, err := s.query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	oppgaver := []*avtypes.Oppgave{}
	for rows.Next() {
		oppgave, err := s.oppgaveResult(ctx, rows)
		if err != nil {
			return nil, err
		}
		oppgaver = append(oppgaver, oppgave)
	}
	return oppgaver, nil
}

func (s *SQLCommon) getOppgaveWithHistory(ctx context.Context, q sq.SelectBuilder) (*avtypes.Oppgave, error) {
	oppgaver, err := s.getOppgaver(ctx, q.Limit(1))
	if err != nil {
		return nil, err
	}
	if len(oppgaver) == 0 {
		return nil, nil
	}
	oppgave := oppgaver[0]
	if oppgave.History, err = s.GetHistory(ctx, oppgave.ID); err != nil {
		return nil, err
	}
	return oppgave, nil
}

func (s *SQLCommon) GetOpenOppgave(ctx context.Context, subjectID int64, oppgaveType avtypes.OppgaveType) (oppgave *avtypes.Oppgave, err error) {
	oppgave, err = s.getOppgaveWithHistory(ctx,
		sq.Select(oppgaveSelectColumns...).
			From("oppgaver").
			Where(sq.Eq{
				"arbeidssoeker_id": subjectID,
				"type":             string(oppgaveType),
				"status":           openOppgaveStatuses(),
			}).
			OrderBy("id DESC"),
	)
	if err == nil && oppgave == nil {
		log.L(ctx).Debugf("No open oppgave of type %s for arbeidssoeker %d", oppgaveType, subjectID)
	}
	return oppgave, err
}

func (s *SQLCommon) GetOppgaveByID(ctx context.Context, id int64) (oppgave *avtypes.Oppgave, err error) {
	return s.getOppgaveWithHistory(ctx,
		sq.Select(oppgaveSelectColumns...).
			From("oppgaver").
			Where(sq.Eq{"id": id}),
	)
}

func (s *SQLCommon) GetOppgaverByStatus(ctx context.Context, status avtypes.OppgaveStatus, limit int) (oppgaver []*avtypes.Oppgave, err error) {
	return s.getOppgaver(ctx,
		sq.Select(oppgaveSelectColumns...).
			From("oppgaver").
			Where(sq.Eq{"status": string(status)}).
			OrderBy("tidspunkt ASC", "id ASC").
			Limit(uint64(limit)),
	)
}

func (s *SQLCommon) GetOpenOppgaverWithExternalID(ctx context.Context, afterID int64, limit int) (oppgaver []*avtypes.Oppgave, err error) {
	return s.getOppgaver(ctx,
		sq.Select(oppgaveSelectColumns...).
			From("oppgaver").
			Where(sq.Eq{"status": string(avtypes.OppgaveStatusOpprettet)}).
			Where(sq.NotEq{"ekstern_oppgave_id": nil}).
			Where(sq.Gt{"id": afterID}).
			OrderBy("id ASC").
			Limit(uint64(limit)),
	)
}

func (s *SQLCommon) UpdateOppgaveStatus(ctx context.Context, id int64, from, to avtypes.OppgaveStatus) (updated bool, err error) {
	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return false, err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	ra, err := s.updateTx(ctx, tx,
		sq.Update("oppgaver").
			Set("status", string(to)).
			Where(sq.Eq{
				"id":     id,
				"status": string(from),
			}),
	)
	if err != nil {
		return false, err
	}

	if err = s.commitTx(ctx, tx, autoCommit); err != nil {
		return false, err
	}
	return ra > 0, nil
}

func (s *SQLCommon) SetOppgaveExternalID(ctx context.Context, id int64, externalID int64) (updated bool, err error) {
	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return false, err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	ra, err := s.updateTx(ctx, tx,
		sq.Update("oppgaver").
			Set("ekstern_oppgave_id", externalID).
			Where(sq.Eq{
				"id":     id,
				"status": string(avtypes.OppgaveStatusOpprettet),
			}),
	)
	if err != nil {
		return false, err
	}

	if err = s.commitTx(ctx, tx, autoCommit); err != nil {
		return false, err
	}
	return ra > 0, nil
}
