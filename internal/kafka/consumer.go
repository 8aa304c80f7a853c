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
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/navikt/avvist-til-oppgave/internal/config"
	"github.com/navikt/avvist-til-oppgave/internal/database"
	"github.com/navikt/avvist-til-oppgave/internal/health"
	"github.com/navikt/avvist-til-oppgave/internal/i18n"
	"github.com/navikt/avvist-til-oppgave/internal/log"
	"github.com/navikt/avvist-til-oppgave/internal/metrics"
	"github.com/navikt/avvist-til-oppgave/internal/retry"
	"github.com/pkg/errors"
)

var newConsumerGroup = sarama.NewConsumerGroup

// Consumer reads the configured topics as a member of a consumer group, applying
// messages one at a time per partition
type Consumer struct {
	hwmRebalancer
	group   sarama.ConsumerGroup
	groupID string
	topics  []string
	applier *Applier
	retry   *retry.Retry
	done    chan error

	sessionMux sync.Mutex
	sessionErr error
}

func NewConsumer(ctx context.Context, conf config.Prefix, di database.Plugin, version int16, handler MessageHandler, state *health.State, mm metrics.Manager) (*Consumer, error) {
	topics := conf.GetStringSlice(KafkaConfTopics)
	if len(topics) == 0 {
		return nil, i18n.NewError(ctx, i18n.MsgKafkaNoTopics)
	}
	decodeFailure, err := parseDecodeFailureMode(ctx, conf.GetString(KafkaConfDecodeFailure))
	if err != nil {
		return nil, err
	}
	sc, err := newSaramaConfig(ctx, conf)
	if err != nil {
		return nil, err
	}

	groupID := conf.GetString(KafkaConfGroupID)
	group, err := newConsumerGroup(conf.GetStringSlice(KafkaConfBrokers), groupID, sc)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgKafkaConnectFailed, groupID)
	}

	return &Consumer{
		hwmRebalancer: hwmRebalancer{
			database: di,
			version:  version,
			state:    state,
		},
		group:   group,
		groupID: groupID,
		topics:  topics,
		applier: NewApplier(di, version, handler, decodeFailure, mm),
		retry:   retry.FromConfig(),
		done:    make(chan error, 1),
	}, nil
}

// Start runs the consume loop in the background until the context is cancelled, or a fatal error occurs
func (c *Consumer) Start(ctx context.Context) {
	ctx = log.WithLogField(ctx, "group", c.groupID)
	go func() {
		err := c.consumeLoop(ctx)
		if closeErr := c.group.Close(); closeErr != nil {
			log.L(ctx).Warnf("Failed to close consumer group: %s", closeErr)
		}
		c.done <- err
	}()
}

// Done receives nil on a clean shutdown, or the fatal error that stopped the consumer
func (c *Consumer) Done() <-chan error {
	return c.done
}

func (c *Consumer) consumeLoop(ctx context.Context) error {
	failures := 0
	for {
		// Returns at the end of each session (rebalance, or a failed claim)
		err := c.group.Consume(ctx, c.topics, c)
		switch {
		case errors.Is(err, sarama.ErrClosedConsumerGroup):
			log.L(ctx).Infof("Consumer group closed")
			return nil
		case c.fatal != nil:
			return c.fatal
		case ctx.Err() != nil:
			log.L(ctx).Infof("Consumer context cancelled - shutting down")
			return nil
		}

		if err == nil {
			err = c.takeSessionError()
		}
		if err == nil {
			failures = 0
			continue
		}

		failures++
		delay := c.retry.Delay(failures)
		log.L(ctx).Errorf("Consumer session failed (attempt %d), rejoining in %s: %s", failures, delay, err)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil
		}
	}
}

// ConsumeClaim applies messages strictly in order. Returning an error ends the session,
// and the next Setup seeks back to the HWM so the failed message is redelivered.
func (c *Consumer) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := sess.Context()
	log.L(ctx).Infof("Consuming %s[%d] from offset %d", claim.Topic(), claim.Partition(), claim.InitialOffset())
	for {
		select {
		case m, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if _, err := c.applier.Apply(ctx, messageFromSarama(m)); err != nil {
				log.L(ctx).Errorf("Stopping %s[%d]: %s", claim.Topic(), claim.Partition(), err)
				c.setSessionError(err)
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (c *Consumer) setSessionError(err error) {
	c.sessionMux.Lock()
	defer c.sessionMux.Unlock()
	if c.sessionErr == nil {
		c.sessionErr = err
	}
}

func (c *Consumer) takeSessionError() error {
	c.sessionMux.Lock()
	defer c.sessionMux.Unlock()
	err := c.sessionErr
	c.sessionErr = nil
	return err
}
