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
	"strconv"
	"sync"

	"github.com/navikt/avvist-til-oppgave/internal/avtypes"
	"github.com/navikt/avvist-til-oppgave/internal/database"
	"github.com/navikt/avvist-til-oppgave/internal/i18n"
	"github.com/navikt/avvist-til-oppgave/internal/log"
	"github.com/navikt/avvist-til-oppgave/internal/metrics"
)

// Applier applies each message at most once per consumer version, by advancing the
// partition's HWM and running the handler in the same transaction
type Applier struct {
	// sarama runs one ConsumeClaim goroutine per partition, and applies from all of
	// them go through here one at a time
	applyMux      sync.Mutex
	database      database.Plugin
	version       int16
	handler       MessageHandler
	decodeFailure DecodeFailureMode
	metrics       metrics.Manager
}

func NewApplier(di database.Plugin, version int16, handler MessageHandler, decodeFailure DecodeFailureMode, mm metrics.Manager) *Applier {
	return &Applier{
		database:      di,
		version:       version,
		handler:       handler,
		decodeFailure: decodeFailure,
		metrics:       mm,
	}
}

// Apply returns false with no error when the message is at or below the HWM, and
// nothing has been changed. On error the transaction is rolled back, the HWM is
// unchanged, and the message will be redelivered.
func (a *Applier) Apply(ctx context.Context, msg *Message) (applied bool, err error) {
	ctx = log.WithLogField(ctx, "topic", msg.Topic)
	ctx = log.WithLogField(ctx, "partition", strconv.Itoa(int(msg.Partition)))
	ctx = log.WithLogField(ctx, "offset", strconv.FormatInt(msg.Offset, 10))

	hwm := &avtypes.HWM{
		Version:   a.version,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
	}
	a.applyMux.Lock()
	err = a.database.RunAsGroup(ctx, func(ctx context.Context) error {
		advanced, err := a.database.AdvanceHWM(ctx, hwm)
		if err != nil || !advanced {
			// Not advanced means no rows changed, so committing is harmless
			return err
		}
		applied = true
		err = a.handler(ctx, msg)
		if err != nil && IsDecodeError(err) && a.decodeFailure == DecodeFailureSkip {
			log.L(ctx).Warnf("Skipping message that cannot be decoded: %s", err)
			a.metrics.DecodeFailed(msg.Topic)
			return nil
		}
		return err
	})
	a.applyMux.Unlock()
	if err != nil {
		if IsDecodeError(err) {
			a.metrics.DecodeFailed(msg.Topic)
		}
		return false, i18n.WrapError(ctx, err, i18n.MsgHWMApplyFailed, msg.Topic, msg.Partition, msg.Offset)
	}

	if applied {
		log.L(ctx).Debugf("Applied message")
		a.metrics.HendelseApplied(msg.Topic)
	} else {
		log.L(ctx).Infof("Skipping message at or below high-water-mark")
		a.metrics.HendelseSkipped(msg.Topic)
	}
	return applied, nil
}
