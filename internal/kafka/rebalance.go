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

package kafka

import (
	"context"
	"sort"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/navikt/avvist-til-oppgave/internal/avtypes"
	"github.com/navikt/avvist-til-oppgave/internal/database"
	"github.com/navikt/avvist-til-oppgave/internal/health"
	"github.com/navikt/avvist-til-oppgave/internal/i18n"
	"github.com/navikt/avvist-til-oppgave/internal/log"
)

// hwmRebalancer positions every newly assigned partition from the high-water-marks
// in the database. sarama calls Setup before any claim of the new generation is
// consumed, so no message is fetched from an unpositioned partition.
type hwmRebalancer struct {
	database database.Plugin
	version  int16
	state    *health.State
	fatal    error
}

// Setup restores (or initializes) the HWM of each assigned partition in one transaction,
// then seeks each partition to the offset after its HWM.
// Failure is fatal: the process is marked not alive.
func (r *hwmRebalancer) Setup(sess sarama.ConsumerGroupSession) error {
	ctx := log.WithLogField(sess.Context(), "generation", strconv.Itoa(int(sess.GenerationID())))
	assigned := sortedAssignments(r.version, sess.Claims())
	log.L(ctx).Infof("Partitions assigned: %v", assigned)

	err := r.database.RunAsGroup(ctx, func(ctx context.Context) error {
		for _, hwm := range assigned {
			offset, err := r.database.GetHWM(ctx, hwm.Version, hwm.Topic, hwm.Partition)
			if err != nil {
				return err
			}
			if offset == nil {
				hwm.Offset = avtypes.HWMNone
				if err := r.database.InsertHWM(ctx, hwm); err != nil {
					return err
				}
				continue
			}
			hwm.Offset = *offset
		}
		return nil
	})
	if err != nil {
		err = i18n.WrapError(ctx, err, i18n.MsgHWMRestoreFailed)
		r.fatal = err
		r.state.SetAlive(ctx, false, err.Error())
		r.state.SetReady(false)
		return err
	}

	for _, hwm := range assigned {
		next := hwm.NextOffset()
		if hwm.IsNone() {
			next = sarama.OffsetOldest
		}
		// MarkOffset only moves forwards and ResetOffset only moves backwards, so together they set the exact position
		sess.MarkOffset(hwm.Topic, hwm.Partition, next, "")
		sess.ResetOffset(hwm.Topic, hwm.Partition, next, "")
		log.L(ctx).Infof("Seeking %s to offset %d", hwm, next)
	}
	r.state.SetReady(true)
	return nil
}

// Cleanup is called when partitions are revoked. Applied messages are already durable.
func (r *hwmRebalancer) Cleanup(sess sarama.ConsumerGroupSession) error {
	log.L(sess.Context()).Infof("Partitions revoked: generation=%d", sess.GenerationID())
	return nil
}

func sortedAssignments(version int16, claims map[string][]int32) []*avtypes.HWM {
	hwms := make([]*avtypes.HWM, 0)
	for topic, partitions := range claims {
		for _, partition := range partitions {
			hwms = append(hwms, &avtypes.HWM{Version: version, Topic: topic, Partition: partition})
		}
	}
	sort.Slice(hwms, func(i, j int) bool {
		if hwms[i].Topic != hwms[j].Topic {
			return hwms[i].Topic < hwms[j].Topic
		}
		return hwms[i].Partition < hwms[j].Partition
	})
	return hwms
}
