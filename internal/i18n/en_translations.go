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

package i18n

//revive:disable
var (
	MsgConfigFailed            = ffm("AO10101", "Failed to read config '%s'")
	MsgContextCanceled         = ffm("AO10102", "Context cancelled")
	MsgInvalidOutputOption     = ffm("AO10103", "invalid output option '%s'")
	MsgHealthServerStartFailed = ffm("AO10104", "Unable to start listener on %s: %s")
	MsgUnknownDatabasePlugin   = ffm("AO10105", "Unknown database plugin '%s'")
	MsgInvalidHWMVersion       = ffm("AO10106", "Invalid high-water-mark version %d - must be between 1 and 32767")
	MsgComponentFailed         = ffm("AO10107", "Component %s failed: %s")

	MsgDBInitFailed       = ffm("AO10110", "Database initialization failed")
	MsgDBMigrationFailed  = ffm("AO10111", "Database migration failed")
	MsgDBBeginFailed      = ffm("AO10112", "Database begin transaction failed")
	MsgDBQueryBuildFailed = ffm("AO10113", "Database query builder failed")
	MsgDBQueryFailed      = ffm("AO10114", "Database query failed")
	MsgDBInsertFailed     = ffm("AO10115", "Database insert failed")
	MsgDBUpdateFailed     = ffm("AO10116", "Database update failed")
	MsgDBCommitFailed     = ffm("AO10117", "Database commit failed")
	MsgDBReadErr          = ffm("AO10118", "Database resultset read error from table '%s'")

	MsgKafkaConnectFailed        = ffm("AO10200", "Failed to create Kafka consumer group '%s'")
	MsgHWMRestoreFailed          = ffm("AO10201", "Failed to restore high-water-marks on partition assignment")
	MsgHWMApplyFailed            = ffm("AO10202", "Failed to apply message %s[%d]@%d")
	MsgKafkaTLSConfigFailed      = ffm("AO10203", "Failed to configure Kafka TLS")
	MsgKafkaInvalidDecodeFailure = ffm("AO10204", "Invalid decode failure mode '%s' - must be 'skip' or 'abort'")
	MsgKafkaNoTopics             = ffm("AO10205", "No Kafka topics configured")
	MsgKafkaInvalidFetchMaxBytes = ffm("AO10206", "Invalid Kafka fetch size '%s'")
	MsgKafkaConsumerGroupFailed  = ffm("AO10207", "Kafka consumer group session failed")
	MsgKafkaInvalidCAFile        = ffm("AO10208", "Invalid Kafka CA certificates file")

	MsgHendelseDecodeFailed     = ffm("AO10300", "Failed to decode event payload")
	MsgHendelseSchemaInvalid    = ffm("AO10301", "Event of type '%s' does not match schema: %s")
	MsgHendelseSchemaLoadFailed = ffm("AO10302", "Failed to load schema for event type '%s'")
	MsgHendelseMissingType      = ffm("AO10303", "Event payload has no 'hendelseType'")

	MsgOppgaveAPIError         = ffm("AO10400", "Oppgave API returned status %d: %s")
	MsgOppgaveNotFound         = ffm("AO10401", "Oppgave %d not found in Oppgave API")
	MsgOppgaveAPIRequestFailed = ffm("AO10402", "Oppgave API request failed: %s")
	MsgOppgaveAPIResponseEmpty = ffm("AO10403", "Oppgave API returned an empty response body")

	MsgTokenRequestFailed = ffm("AO10500", "Failed to obtain token for target '%s': %s")
	MsgTokenEmpty         = ffm("AO10501", "Token endpoint returned no access token for target '%s'")

	MsgOppgaveInvalidStatus        = ffm("AO10600", "Invalid oppgave status '%s'")
	MsgOppgaveInvalidType          = ffm("AO10601", "Invalid oppgave type '%s'")
	MsgOppgaveInvalidHistoryStatus = ffm("AO10602", "Invalid oppgave history status '%s'")
	MsgOppgaveCompensationFailed   = ffm("AO10603", "Failed to return oppgave %d to '%s' after Oppgave API failure")
	MsgOppgaveRecordExternalFailed = ffm("AO10604", "Failed to record external oppgave %d on oppgave %d")
	MsgPollerInvalidBatchSize      = ffm("AO10605", "Invalid %s batch size %d - must be at least 1")
	MsgPollerInvalidInterval       = ffm("AO10606", "Invalid %s interval '%s' - must be greater than zero")
)
