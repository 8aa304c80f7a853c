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

package postgres

import (
	"context"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/navikt/avvist-til-oppgave/internal/config"
	"github.com/navikt/avvist-til-oppgave/internal/database"
	"github.com/navikt/avvist-til-oppgave/internal/database/sqlcommon"
	"github.com/stretchr/testify/assert"
)

func TestPostgresProvider(t *testing.T) {
	config.Reset()
	psql := &Postgres{}
	prefix := config.NewPluginConfig("unittest")
	psql.InitPrefix(prefix)
	prefix.Set(sqlcommon.SQLConfDatasourceURL, "!bad connection")
	err := psql.Init(context.Background(), prefix)
	assert.NoError(t, err)
	_, err = psql.GetMigrationDriver(psql.DB())
	assert.Error(t, err)

	assert.Equal(t, "postgres", psql.Name())
	assert.Equal(t, "postgres", psql.MigrationsDir())
	assert.Equal(t, sq.Dollar, psql.PlaceholderFormat())
	assert.Equal(t, "./db/migrations/postgres", prefix.GetString(sqlcommon.SQLConfMigrationsDirectory))

	insert := sq.Insert("test").Columns("col1").Values("val1")
	insert, query := psql.UpdateInsertForSequenceReturn(insert)
	sql, _, err := insert.ToSql()
	assert.NoError(t, err)
	assert.Equal(t, "INSERT INTO test (col1) VALUES (?)  RETURNING id", sql)
	assert.True(t, query)

	var _ database.Plugin = psql
	psql.Close()
}

func TestPostgresMigrationsFail(t *testing.T) {
	config.Reset()
	psql := &Postgres{}
	prefix := config.NewPluginConfig("unittest")
	psql.InitPrefix(prefix)
	prefix.Set(sqlcommon.SQLConfDatasourceURL, "!bad connection")
	prefix.Set(sqlcommon.SQLConfMigrationsAuto, true)
	err := psql.Init(context.Background(), prefix)
	assert.Regexp(t, "AO10111", err)
}
