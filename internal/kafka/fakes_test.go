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
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/IBM/sarama"
	"github.com/navikt/avvist-til-oppgave/internal/avtypes"
	"github.com/navikt/avvist-til-oppgave/internal/database"
)

type memTxKey struct{}

// memDB is a transactional in-memory store of HWMs and applied effects.
// A failed group restores the state from before the group started.
type memDB struct {
	database.Plugin
	mux     sync.Mutex
	hwms    map[string]int64
	effects []int64
	getErr  error
}

func newMemDB() *memDB {
	return &memDB{hwms: map[string]int64{}}
}

func hwmKey(version int16, topic string, partition int32) string {
	return fmt.Sprintf("%d/%s/%d", version, topic, partition)
}

func (m *memDB) RunAsGroup(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}
	m.mux.Lock()
	defer m.mux.Unlock()
	hwms := make(map[string]int64, len(m.hwms))
	for k, v := range m.hwms {
		hwms[k] = v
	}
	effects := append([]int64{}, m.effects...)
	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		m.hwms = hwms
		m.effects = effects
		return err
	}
	return nil
}

func (m *memDB) GetHWM(ctx context.Context, version int16, topic string, partition int32) (*int64, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if v, ok := m.hwms[hwmKey(version, topic, partition)]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *memDB) InsertHWM(ctx context.Context, hwm *avtypes.HWM) error {
	k := hwmKey(hwm.Version, hwm.Topic, hwm.Partition)
	if _, ok := m.hwms[k]; ok {
		return fmt.Errorf("duplicate key %s", k)
	}
	m.hwms[k] = hwm.Offset
	return nil
}

func (m *memDB) AdvanceHWM(ctx context.Context, hwm *avtypes.HWM) (bool, error) {
	k := hwmKey(hwm.Version, hwm.Topic, hwm.Partition)
	current, ok := m.hwms[k]
	if !ok || current >= hwm.Offset {
		return false, nil
	}
	m.hwms[k] = hwm.Offset
	return true, nil
}

func (m *memDB) hwm(version int16, topic string, partition int32) int64 {
	m.mux.Lock()
	defer m.mux.Unlock()
	return m.hwms[hwmKey(version, topic, partition)]
}

func (m *memDB) applied() []int64 {
	m.mux.Lock()
	defer m.mux.Unlock()
	return append([]int64{}, m.effects...)
}

// recordingHandler appends each offset as the business effect, failing on the listed offsets once
func (m *memDB) recordingHandler(failOnce map[int64]error) MessageHandler {
	return func(ctx context.Context, msg *Message) error {
		m.effects = append(m.effects, msg.Offset)
		if err, ok := failOnce[msg.Offset]; ok {
			delete(failOnce, msg.Offset)
			return err
		}
		return nil
	}
}

// passThroughDB has no locking of its own, so any serialization of applies comes from the caller
type passThroughDB struct {
	database.Plugin
	groups int32
}

func (p *passThroughDB) RunAsGroup(ctx context.Context, fn func(ctx context.Context) error) error {
	atomic.AddInt32(&p.groups, 1)
	return fn(ctx)
}

func (p *passThroughDB) AdvanceHWM(ctx context.Context, hwm *avtypes.HWM) (bool, error) {
	return true, nil
}

type fakeSession struct {
	sarama.ConsumerGroupSession
	ctx    context.Context
	claims map[string][]int32
	mux    sync.Mutex
	marked map[string]int64
	reset  map[string]int64
}

func newFakeSession(ctx context.Context, claims map[string][]int32) *fakeSession {
	return &fakeSession{
		ctx:    ctx,
		claims: claims,
		marked: map[string]int64{},
		reset:  map[string]int64{},
	}
}

func partitionKey(topic string, partition int32) string {
	return fmt.Sprintf("%s/%d", topic, partition)
}

func (s *fakeSession) Context() context.Context   { return s.ctx }
func (s *fakeSession) Claims() map[string][]int32 { return s.claims }
func (s *fakeSession) GenerationID() int32        { return 3 }
func (s *fakeSession) MemberID() string           { return "member1" }
func (s *fakeSession) MarkOffset(topic string, partition int32, offset int64, _ string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.marked[partitionKey(topic, partition)] = offset
}
func (s *fakeSession) ResetOffset(topic string, partition int32, offset int64, _ string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.reset[partitionKey(topic, partition)] = offset
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	topic     string
	partition int32
	messages  chan *sarama.ConsumerMessage
}

func newFakeClaim(topic string, partition int32, offsets ...int64) *fakeClaim {
	c := &fakeClaim{
		topic:     topic,
		partition: partition,
		messages:  make(chan *sarama.ConsumerMessage, len(offsets)),
	}
	for _, o := range offsets {
		c.messages <- &sarama.ConsumerMessage{Topic: topic, Partition: partition, Offset: o, Value: []byte(`{}`)}
	}
	close(c.messages)
	return c
}

func (c *fakeClaim) Topic() string                            { return c.topic }
func (c *fakeClaim) Partition() int32                         { return c.partition }
func (c *fakeClaim) InitialOffset() int64                     { return 0 }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

type fakeGroup struct {
	sarama.ConsumerGroup
	calls   int
	consume func(call int, ctx context.Context, handler sarama.ConsumerGroupHandler) error
	closed  bool
}

func (g *fakeGroup) Consume(ctx context.Context, topics []string, handler sarama.ConsumerGroupHandler) error {
	g.calls++
	return g.consume(g.calls, ctx, handler)
}

func (g *fakeGroup) Close() error {
	g.closed = true
	return nil
}
