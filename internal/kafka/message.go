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
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// Message is a record read from a partition of the event log
type Message struct {
	Topic     string
	Partition int32
	Offset    int64
	Key       []byte
	Value     []byte
	// Headers keeps every value of a repeated key, in the order they were sent
	Headers   map[string][]string
	Timestamp time.Time
}

// MessageHandler applies the business effect of a message. It runs inside the
// transaction that advances the high-water-mark, and must use the supplied context
// for all database operations.
type MessageHandler func(ctx context.Context, msg *Message) error

func messageFromSarama(m *sarama.ConsumerMessage) *Message {
	msg := &Message{
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
		Key:       m.Key,
		Value:     m.Value,
		Timestamp: m.Timestamp,
	}
	if len(m.Headers) > 0 {
		msg.Headers = make(map[string][]string, len(m.Headers))
		for _, h := range m.Headers {
			if h != nil {
				k := string(h.Key)
				msg.Headers[k] = append(msg.Headers[k], string(h.Value))
			}
		}
	}
	return msg
}

type decodeError struct {
	error
}

func (e *decodeError) Unwrap() error {
	return e.error
}

// DecodeError marks a handler error as a payload that can never be decoded, which the
// applier handles according to the configured DecodeFailureMode
func DecodeError(err error) error {
	return &decodeError{error: err}
}

func IsDecodeError(err error) bool {
	var de *decodeError
	return errors.As(err, &de)
}
