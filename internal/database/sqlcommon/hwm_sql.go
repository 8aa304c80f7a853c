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
	"github.com/navikt/avvist-til-oppgave/internal/log"
)

var (
	hwmColumns = []string{
		"version",
		"topic",
		"partition",
		"hwm",
	}
)

func (s *SQLCommon) GetHWM(ctx context.Context, version int16, topic string, partition int32) (offset *int64, err error) {

	rows, err := s.query(ctx,
		sq.Select("hwm").
			From("hwm").
			Where(sq.Eq{
				"version":   version,
				"topic":     topic,
				"partition": partition,
			}),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		log.L(ctx).Debugf("HWM v%d:%s[%d] not found", version, topic, partition)
		return nil, nil
	}

	var hwm int64
	if err = rows.Scan(&hwm); err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgDBReadErr, "hwm")
	}
	return &hwm, nil
}

func (s *SQLCommon) InsertHWM(ctx context.Context, hwm *avtypes.HWM) (err error) {
	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	sqlQuery, args, err := sq.Insert("hwm").
		Columns(hwmColumns...).
		Values(hwm.Version, hwm.Topic, hwm.Partition, hwm.Offset).
		PlaceholderFormat(s.provider.PlaceholderFormat()).
		ToSql()
	if err != nil {
		return i18n.WrapError(ctx, err, i18n.MsgDBQueryBuildFailed)
	}
	// The hwm table has no surrogate key, so this is a plain exec rather than insertTx
	log.L(ctx).Debugf(`SQL-> insert: %s`, sqlQuery)
	if _, err = tx.sqlTX.ExecContext(ctx, sqlQuery, args...); err != nil {
		log.L(ctx).Errorf(`SQL insert failed: %s sql=[ %s ]`, err, sqlQuery)
		return i18n.WrapError(ctx, err, i18n.MsgDBInsertFailed)
	}
	log.L(ctx).Debugf(`SQL<- insert %s`, hwm)

	return s.commitTx(ctx, tx, autoCommit)
}

func (s *SQLCommon) AdvanceHWM(ctx context.Context, hwm *avtypes.HWM) (advanced bool, err error) {
	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return false, err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	// The predicate on the stored value is the only concurrency control: a redelivered
	// or older offset matches no rows
	ra, err := s.updateTx(ctx, tx,
		sq.Update("hwm").
			Set("hwm", hwm.Offset).
			Where(sq.Eq{
				"version":   hwm.Version,
				"topic":     hwm.Topic,
				"partition": hwm.Partition,
			}).
			Where(sq.Lt{"hwm": hwm.Offset}),
	)
	if err != nil {
		return false, err
	}

	if err = s.commitTx(ctx, tx, autoCommit); err != nil {
		return false, err
	}
	return ra > 0, nil
}

func (s *SQLCommon) hwmResult(ctx context.Context, row *sql.Rows) (*avtypes.HWM, error) {
	hwm := avtypes.HWM{}
	err := row.Scan(
		&hwm.Version,
		&hwm.Topic,
		&hwm.Partition,
		&hwm.Offset,
	)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgDBReadErr, "hwm")
	}
	return &hwm, nil
}

func (s *SQLCommon) GetHWMs(ctx context.Context, version int16) (hwms []*avtypes.HWM, err error) {

	rows, err := s.query(ctx,
		sq.Select(hwmColumns...).
			From("hwm").
			Where(sq.Eq{"version": version}).
			OrderBy("topic", "partition"),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hwms = []*avtypes.HWM{}
	for rows.Next() {
		hwm, err := s.hwmResult(ctx, rows)
		if err != nil {
			return nil, err
		}
		hwms = append(hwms, hwm)
	}
	return hwms, nil
}
