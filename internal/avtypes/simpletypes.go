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
	"strconv"

	"github.com/aidarkhanov/nanoid"
	"github.com/google/uuid"
)

const (
	// ShortIDlphabet is designed for easy double-click select
	ShortIDlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"
)

// idempotencyNamespace scopes the deterministic keys sent on external create calls
var idempotencyNamespace = uuid.MustParse("6c0a5d62-4b0e-4f3c-9b7e-a7d1c0f1e2b3")

// ShortID is used for log correlation, such as the dbtx field on a transaction
func ShortID() string {
	return nanoid.Must(nanoid.Generate(ShortIDlphabet, 8))
}

func NewUUID() uuid.UUID {
	return uuid.New()
}

// IdempotencyKey derives a stable key for an external create call, so that a
// retried call for the same oppgave and source event carries the same value.
func IdempotencyKey(oppgaveID int64, sourceEventID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(idempotencyNamespace, []byte(strconv.FormatInt(oppgaveID, 10)+":"+sourceEventID.String()))
}
