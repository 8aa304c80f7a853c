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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var OppgaverCreatedCounter prometheus.Counter
var OppgaverDuplicateCounter prometheus.Counter
var EksterneOppgaverCounter *prometheus.CounterVec
var OppgaverStuckCounter prometheus.Counter

// OppgaverCreatedCounterName is the prometheus metric for new oppgaver
var OppgaverCreatedCounterName = "avvist_oppgaver_created_total"

// OppgaverDuplicateCounterName is the prometheus metric for events that matched an open oppgave
var OppgaverDuplicateCounterName = "avvist_oppgaver_duplicate_total"

// EksterneOppgaverCounterName is the prometheus metric for calls to create an oppgave in the Oppgave API, by result
var EksterneOppgaverCounterName = "avvist_eksterne_oppgaver_total"

// OppgaverStuckCounterName is the prometheus metric for oppgaver left Opprettet after a failed compensation.
// Any increase needs an operator.
var OppgaverStuckCounterName = "avvist_oppgaver_stuck_total"

const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

func InitOppgaveMetrics() {
	OppgaverCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: OppgaverCreatedCounterName,
		Help: "Number of oppgaver created",
	})
	OppgaverDuplicateCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: OppgaverDuplicateCounterName,
		Help: "Number of rejection events received for an oppgave that was already open",
	})
	EksterneOppgaverCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: EksterneOppgaverCounterName,
		Help: "Number of create calls to the Oppgave API",
	}, []string{"result"})
	OppgaverStuckCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: OppgaverStuckCounterName,
		Help: "Number of oppgaver left in Opprettet without an external id",
	})
}

func RegisterOppgaveMetrics() {
	registry.MustRegister(OppgaverCreatedCounter)
	registry.MustRegister(OppgaverDuplicateCounter)
	registry.MustRegister(EksterneOppgaverCounter)
	registry.MustRegister(OppgaverStuckCounter)
}
