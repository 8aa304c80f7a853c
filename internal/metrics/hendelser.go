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

var HendelserAppliedCounter *prometheus.CounterVec
var HendelserSkippedCounter *prometheus.CounterVec
var DecodeFailuresCounter *prometheus.CounterVec

// HendelserAppliedCounterName is the prometheus metric for messages whose HWM advance committed
var HendelserAppliedCounterName = "avvist_hendelser_applied_total"

// HendelserSkippedCounterName is the prometheus metric for redelivered messages at or below the HWM
var HendelserSkippedCounterName = "avvist_hendelser_skipped_total"

// DecodeFailuresCounterName is the prometheus metric for messages that could not be decoded
var DecodeFailuresCounterName = "avvist_decode_failures_total"

var topicLabels = []string{"topic"}

func InitHendelseMetrics() {
	HendelserAppliedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: HendelserAppliedCounterName,
		Help: "Number of messages applied",
	}, topicLabels)
	HendelserSkippedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: HendelserSkippedCounterName,
		Help: "Number of redelivered messages skipped by the high-water-mark",
	}, topicLabels)
	DecodeFailuresCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: DecodeFailuresCounterName,
		Help: "Number of messages that could not be decoded",
	}, topicLabels)
}

func RegisterHendelseMetrics() {
	registry.MustRegister(HendelserAppliedCounter)
	registry.MustRegister(HendelserSkippedCounter)
	registry.MustRegister(DecodeFailuresCounter)
}
