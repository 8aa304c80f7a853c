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

package hendelser

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/navikt/avvist-til-oppgave/internal/i18n"
	"github.com/xeipuuv/gojsonschema"
)

const avvistHendelseSchema = `{
  "type": "object",
  "required": ["hendelseId", "id", "identitetsnummer", "metadata", "hendelseType", "opplysninger"],
  "properties": {
    "hendelseId": {"type": "string", "format": "uuid"},
    "id": {"type": "integer"},
    "identitetsnummer": {"type": "string", "minLength": 1},
    "hendelseType": {"type": "string"},
    "opplysninger": {"type": "array", "items": {"type": "string"}},
    "metadata": {
      "type": "object",
      "required": ["tidspunkt", "utfoertAv", "kilde", "aarsak"],
      "properties": {
        "tidspunkt": {"type": "number"},
        "kilde": {"type": "string"},
        "aarsak": {"type": "string"},
        "utfoertAv": {
          "type": "object",
          "required": ["type", "id"],
          "properties": {
            "type": {"type": "string"},
            "id": {"type": "string"}
          }
        }
      }
    }
  }
}`

var (
	avvistSchemaOnce sync.Once
	avvistSchema     *gojsonschema.Schema
	avvistSchemaErr  error
)

func loadAvvistSchema(ctx context.Context) (*gojsonschema.Schema, error) {
	avvistSchemaOnce.Do(func() {
		avvistSchema, avvistSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(avvistHendelseSchema))
	})
	if avvistSchemaErr != nil {
		return nil, i18n.WrapError(ctx, avvistSchemaErr, i18n.MsgHendelseSchemaLoadFailed, AvvistHendelseType)
	}
	return avvistSchema, nil
}

type typeProbe struct {
	HendelseType *string `json:"hendelseType"`
}

// Decode reads the type tag of the payload, and decodes the event types we act on
// into their typed form. Every other type is returned as an *IgnorertHendelse.
func Decode(ctx context.Context, payload []byte) (Hendelse, error) {
	var probe typeProbe
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgHendelseDecodeFailed)
	}
	if probe.HendelseType == nil {
		return nil, i18n.NewError(ctx, i18n.MsgHendelseMissingType)
	}

	switch *probe.HendelseType {
	case AvvistHendelseType:
		if err := validate(ctx, *probe.HendelseType, payload); err != nil {
			return nil, err
		}
		var h AvvistHendelse
		if err := json.Unmarshal(payload, &h); err != nil {
			return nil, i18n.WrapError(ctx, err, i18n.MsgHendelseDecodeFailed)
		}
		return &h, nil
	default:
		return &IgnorertHendelse{Type: *probe.HendelseType}, nil
	}
}

func validate(ctx context.Context, hendelseType string, payload []byte) error {
	schema, err := loadAvvistSchema(ctx)
	if err != nil {
		return err
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return i18n.WrapError(ctx, err, i18n.MsgHendelseDecodeFailed)
	}
	if !res.Valid() {
		errStrings := make([]string, len(res.Errors()))
		for i, e := range res.Errors() {
			errStrings[i] = e.String()
		}
		return i18n.NewError(ctx, i18n.MsgHendelseSchemaInvalid, hendelseType, strings.Join(errStrings, ","))
	}
	return nil
}
