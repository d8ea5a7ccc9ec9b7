// Copyright © 2025 Coldledger Technologies
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

var (
	MsgConfigFailed             = ffm("CL10101", "Failed to read config: %s")
	MsgJSONDecodeFailed         = ffm("CL10102", "Failed to decode input JSON")
	MsgAPIServerStartFailed     = ffm("CL10103", "Unable to start listener on %s")
	MsgTLSConfigFailed          = ffm("CL10104", "Failed to initialize TLS configuration")
	MsgInvalidCAFile            = ffm("CL10105", "Invalid CA certificates file")
	MsgResponseMarshalError     = ffm("CL10106", "Failed to serialize response data")
	Msg404NotFound              = ffm("CL10107", "Not found")
	MsgContextCanceled          = ffm("CL10108", "Context cancelled")
	MsgScanFailed               = ffm("CL10109", "Failed to restore type '%T' into '%T'")
	MsgInvalidUUID              = ffm("CL10110", "Invalid UUID supplied")
	MsgInvalidHex               = ffm("CL10111", "Invalid hex supplied")
	MsgInvalidWrongLenB32       = ffm("CL10112", "Byte length must be 32 (64 hex characters)")
	MsgTimeParseFail            = ffm("CL10113", "Cannot parse time as RFC3339 or unix timestamp: '%s'")
	MsgMissingPluginConfig      = ffm("CL10114", "Missing configuration '%s' for %s")
	MsgUnknownDatabasePlugin    = ffm("CL10115", "Unknown database plugin '%s'")
	MsgUnknownObjectStorePlugin = ffm("CL10116", "Unknown object store plugin '%s'")
	MsgDBInitFailed             = ffm("CL10117", "Database initialization failed")
	MsgDBMigrationFailed        = ffm("CL10118", "Database migration failed")
	MsgDBBeginFailed            = ffm("CL10119", "Database begin transaction failed")
	MsgDBQueryBuildFailed       = ffm("CL10120", "Database query builder failed")
	MsgDBQueryFailed            = ffm("CL10121", "Database query failed")
	MsgDBInsertFailed           = ffm("CL10122", "Database insert failed")
	MsgDBUpdateFailed           = ffm("CL10123", "Database update failed")
	MsgDBCommitFailed           = ffm("CL10124", "Database commit failed")
	MsgDBReadErr                = ffm("CL10125", "Database read failed for '%s'")
	MsgCanonicalizeFailed       = ffm("CL10126", "Value cannot be canonicalized to JSON")
	MsgLedgerRESTErr            = ffm("CL10127", "Error from ledger connector: %s")
	MsgLedgerNotConfigured      = ffm("CL10128", "Ledger connector is not configured")
	MsgIPFSRESTErr              = ffm("CL10129", "Error from IPFS: %s")
	MsgHFSRESTErr               = ffm("CL10130", "Error from file service: %s")
	MsgHFSAppendIncomplete      = ffm("CL10131", "File service append failed after %d of %d chunks")
	MsgMockRefNotStored         = ffm("CL10132", "Mock storage reference '%s' was never stored remotely")
	MsgBlobNotFound             = ffm("CL10133", "No stored object found for reference '%s'")
	MsgGuardianRESTErr          = ffm("CL10134", "Error from policy engine: %s")
	MsgGuardianPollExhausted    = ffm("CL10135", "Credential not issued after %d poll attempts")
	MsgBatchNotFound            = ffm("CL10136", "Batch '%s' not found")
	MsgBatchNumberExists        = ffm("CL10137", "A batch already exists with batch number '%s'")
	MsgBatchInvalidMetadata     = ffm("CL10138", "Batch metadata failed schema validation: %s")
	MsgUnknownSchemaVersion     = ffm("CL10139", "Unknown metadata schema version '%s'")
	MsgTokenCreateFailed        = ffm("CL10140", "Ledger token creation failed")
	MsgTopicCreateFailed        = ffm("CL10141", "Ledger topic creation failed")
	MsgTopicPublishFailed       = ffm("CL10142", "Ledger topic publish failed")
	MsgTelemetryBadReading      = ffm("CL10143", "Discarding unparseable telemetry reading")
	MsgTelemetryUnknownBatch    = ffm("CL10144", "Telemetry reading received for unknown batch '%s'")
	MsgNilDataForHash           = ffm("CL10145", "Cannot hash a nil value")
)
