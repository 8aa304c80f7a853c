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

type Manager interface {
	HendelseApplied(topic string)
	HendelseSkipped(topic string)
	DecodeFailed(topic string)
	OppgaveCreated()
	OppgaveDuplicate()
	EksternOppgave(ok bool)
	OppgaveStuck()
}

type metricsManager struct{}

// NewMetricsManager returns a manager recording to the shared registry
func NewMetricsManager() Manager {
	Registry()
	return &metricsManager{}
}

func (mm *metricsManager) HendelseApplied(topic string) {
	HendelserAppliedCounter.WithLabelValues(topic).Inc()
}

func (mm *metricsManager) HendelseSkipped(topic string) {
	HendelserSkippedCounter.WithLabelValues(topic).Inc()
}

func (mm *metricsManager) DecodeFailed(topic string) {
	DecodeFailuresCounter.WithLabelValues(topic).Inc()
}

func (mm *metricsManager) OppgaveCreated() {
	OppgaverCreatedCounter.Inc()
}

func (mm *metricsManager) OppgaveDuplicate() {
	OppgaverDuplicateCounter.Inc()
}

func (mm *metricsManager) EksternOppgave(ok bool) {
	result := ResultOK
	if !ok {
		result = ResultFailed
	}
	EksterneOppgaverCounter.WithLabelValues(result).Inc()
}

func (mm *metricsManager) OppgaveStuck() {
	OppgaverStuckCounter.Inc()
}
