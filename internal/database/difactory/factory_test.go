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

package difactory

import (
	"context"
	"testing"

	"github.com/navikt/avvist-til-oppgave/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestGetPluginUnknown(t *testing.T) {
	ctx := context.Background()
	_, err := GetPlugin(ctx, "foo")
	assert.Error(t, err)
	assert.Regexp(t, "AO10105", err)
}

func TestGetPluginPostgres(t *testing.T) {
	ctx := context.Background()
	plugin, err := GetPlugin(ctx, "postgres")
	assert.NoError(t, err)
	assert.Equal(t, "postgres", plugin.Name())
}

func TestInitPrefix(t *testing.T) {
	config.Reset()
	prefix := config.NewPluginConfig("difactorytest")
	InitPrefix(prefix)
	assert.False(t, prefix.SubPrefix("postgres").GetBool("migrations.auto"))
}
