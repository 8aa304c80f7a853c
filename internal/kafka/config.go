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
	"crypto/tls"
	"crypto/x509"
	"os"
	"strings"

	"github.com/IBM/sarama"
	"github.com/docker/go-units"
	"github.com/navikt/avvist-til-oppgave/internal/config"
	"github.com/navikt/avvist-til-oppgave/internal/i18n"
)

const (
	// KafkaConfBrokers the bootstrap brokers
	KafkaConfBrokers = "brokers"
	// KafkaConfGroupID the consumer group, which must change together with hwm.version
	KafkaConfGroupID = "groupId"
	// KafkaConfClientID the client id sent to the brokers
	KafkaConfClientID = "clientId"
	// KafkaConfTopics the topics to consume
	KafkaConfTopics = "topics"
	// KafkaConfSessionTimeout the consumer group session timeout
	KafkaConfSessionTimeout = "sessionTimeout"
	// KafkaConfFetchMaxBytes the maximum fetch size per request, such as "1MB"
	KafkaConfFetchMaxBytes = "fetchMaxBytes"
	// KafkaConfDecodeFailure what to do with a payload that cannot be decoded: skip or abort
	KafkaConfDecodeFailure = "decodeFailure"
	// KafkaConfTLSEnabled whether to connect to the brokers with TLS
	KafkaConfTLSEnabled = "tls.enabled"
	// KafkaConfTLSCAFile the CA certificates for the brokers
	KafkaConfTLSCAFile = "tls.caFile"
	// KafkaConfTLSCertFile the client certificate
	KafkaConfTLSCertFile = "tls.certFile"
	// KafkaConfTLSKeyFile the client private key
	KafkaConfTLSKeyFile = "tls.keyFile"
)

// DecodeFailureMode controls how a message that fails to decode is handled
type DecodeFailureMode string

const (
	// DecodeFailureSkip consumes the message without effect, advancing the HWM
	DecodeFailureSkip DecodeFailureMode = "skip"
	// DecodeFailureAbort rolls back and fails, so the message is redelivered
	DecodeFailureAbort DecodeFailureMode = "abort"
)

func InitPrefix(prefix config.Prefix) {
	prefix.AddKnownKey(KafkaConfBrokers)
	prefix.AddKnownKey(KafkaConfGroupID, "avvist-til-oppgave-v1")
	prefix.AddKnownKey(KafkaConfClientID, "avvist-til-oppgave")
	prefix.AddKnownKey(KafkaConfTopics)
	prefix.AddKnownKey(KafkaConfSessionTimeout, "10s")
	prefix.AddKnownKey(KafkaConfFetchMaxBytes, "1MB")
	prefix.AddKnownKey(KafkaConfDecodeFailure, string(DecodeFailureSkip))
	prefix.AddKnownKey(KafkaConfTLSEnabled, false)
	prefix.AddKnownKey(KafkaConfTLSCAFile)
	prefix.AddKnownKey(KafkaConfTLSCertFile)
	prefix.AddKnownKey(KafkaConfTLSKeyFile)
}

func parseDecodeFailureMode(ctx context.Context, s string) (DecodeFailureMode, error) {
	switch DecodeFailureMode(strings.ToLower(s)) {
	case DecodeFailureSkip:
		return DecodeFailureSkip, nil
	case DecodeFailureAbort:
		return DecodeFailureAbort, nil
	default:
		return "", i18n.NewError(ctx, i18n.MsgKafkaInvalidDecodeFailure, s)
	}
}

// newSaramaConfig disables auto-commit. Positions come only from the high-water-marks in the database.
func newSaramaConfig(ctx context.Context, conf config.Prefix) (*sarama.Config, error) {
	sc := sarama.NewConfig()
	sc.ClientID = conf.GetString(KafkaConfClientID)
	sc.Consumer.Offsets.AutoCommit.Enable = false
	sc.Consumer.Offsets.Initial = sarama.OffsetOldest
	sc.Consumer.Group.Session.Timeout = conf.GetDuration(KafkaConfSessionTimeout)

	if fetchMax := conf.GetString(KafkaConfFetchMaxBytes); fetchMax != "" {
		size, err := units.RAMInBytes(fetchMax)
		if err != nil || size <= 0 || size > int64(^uint32(0)>>1) {
			return nil, i18n.NewError(ctx, i18n.MsgKafkaInvalidFetchMaxBytes, fetchMax)
		}
		sc.Consumer.Fetch.Max = int32(size)
	}

	if conf.GetBool(KafkaConfTLSEnabled) {
		tlsConfig, err := newTLSConfig(ctx, conf)
		if err != nil {
			return nil, err
		}
		sc.Net.TLS.Enable = true
		sc.Net.TLS.Config = tlsConfig
	}
	return sc, nil
}

func newTLSConfig(ctx context.Context, conf config.Prefix) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	caFile := conf.GetString(KafkaConfTLSCAFile)
	if caFile != "" {
		caBytes, err := os.ReadFile(caFile)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, i18n.MsgKafkaTLSConfigFailed)
		}
		rootCAs := x509.NewCertPool()
		if !rootCAs.AppendCertsFromPEM(caBytes) {
			return nil, i18n.NewError(ctx, i18n.MsgKafkaInvalidCAFile)
		}
		tlsConfig.RootCAs = rootCAs
	}

	certFile := conf.GetString(KafkaConfTLSCertFile)
	keyFile := conf.GetString(KafkaConfTLSKeyFile)
	if certFile != "" || keyFile != "" {
		cert, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, i18n.MsgKafkaTLSConfigFailed)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}
	return tlsConfig, nil
}
