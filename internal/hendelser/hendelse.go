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
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	// AvvistHendelseType is the tag of a rejected registration
	AvvistHendelseType = "intern.v1.avvist"
	// OpplysningErUnder18Aar is the fact tag set when the person is under 18
	OpplysningErUnder18Aar = "ER_UNDER_18_AAR"
	// BrukerTypeVeileder is the actor type of a case worker
	BrukerTypeVeileder = "VEILEDER"
)

// Hendelse is one decoded entry of the event log. It is either an *AvvistHendelse,
// or an *IgnorertHendelse for every other type.
type Hendelse interface {
	HendelseType() string
}

// IgnorertHendelse is any event type this service does not act on
type IgnorertHendelse struct {
	Type string
}

func (h *IgnorertHendelse) HendelseType() string {
	return h.Type
}

type AvvistHendelse struct {
	HendelseID       uuid.UUID `json:"hendelseId"`
	ID               int64     `json:"id"`
	Identitetsnummer string    `json:"identitetsnummer"`
	Metadata         Metadata  `json:"metadata"`
	Type             string    `json:"hendelseType"`
	Opplysninger     []string  `json:"opplysninger"`
}

type Metadata struct {
	Tidspunkt EpochTime `json:"tidspunkt"`
	UtfoertAv UtfoertAv `json:"utfoertAv"`
	Kilde     string    `json:"kilde"`
	Aarsak    string    `json:"aarsak"`
}

type UtfoertAv struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func (h *AvvistHendelse) HendelseType() string {
	return h.Type
}

// HarOpplysning is true if the fact tag is present
func (h *AvvistHendelse) HarOpplysning(opplysning string) bool {
	for _, o := range h.Opplysninger {
		if o == opplysning {
			return true
		}
	}
	return false
}

// ErUnder18 is true for a rejection because the person is under 18
func (h *AvvistHendelse) ErUnder18() bool {
	return h.Type == AvvistHendelseType && h.HarOpplysning(OpplysningErUnder18Aar)
}

// UtfoertAvVeileder is true when a case worker entered the event by hand
func (h *AvvistHendelse) UtfoertAvVeileder() bool {
	return h.Metadata.UtfoertAv.Type == BrukerTypeVeileder
}

// EpochTime is a timestamp carried on the wire as fractional seconds since the epoch
type EpochTime time.Time

func (et *EpochTime) UnmarshalJSON(b []byte) error {
	var secs float64
	if err := json.Unmarshal(b, &secs); err != nil {
		return err
	}
	whole, frac := math.Modf(secs)
	*et = EpochTime(time.Unix(int64(whole), int64(frac*1e9)).UTC())
	return nil
}

func (et EpochTime) MarshalJSON() ([]byte, error) {
	t := time.Time(et)
	return json.Marshal(float64(t.UnixNano()) / 1e9)
}

func (et EpochTime) Time() time.Time {
	return time.Time(et)
}
