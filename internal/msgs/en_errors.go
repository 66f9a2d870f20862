// Copyright © 2024 Kaleido, Inc.
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

package msgs

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"golang.org/x/text/language"
)

const ganadoPrefix = "GC01"

var registerOnce sync.Once
var ffe = func(key, translation string, statusHint ...int) i18n.ErrorMessageKey {
	registerOnce.Do(func() {
		i18n.RegisterPrefix(ganadoPrefix, "GanadoChain Transaction Lifecycle")
	})
	if !strings.HasPrefix(key, ganadoPrefix) {
		panic(fmt.Errorf("must have prefix '%s': %s", ganadoPrefix, key))
	}
	return i18n.FFE(language.AmericanEnglish, key, translation, statusHint...)
}

var (
	// Configuration GC0100XX
	MsgConfigFileMissing          = ffe("GC010000", "Configuration file not found at %s")
	MsgConfigFileReadError        = ffe("GC010001", "Failed to read configuration file %s: %s")
	MsgConfigFileParseError       = ffe("GC010002", "Failed to parse configuration file: %s")
	MsgConfigRPCURLMissing        = ffe("GC010003", "Blockchain RPC URL missing from configuration")
	MsgConfigContractAddress      = ffe("GC010004", "Invalid or missing address for contract '%s': '%s'")
	MsgConfigArtifactMissing      = ffe("GC010005", "No ABI artifact found for contract '%s' (searched %s)")
	MsgConfigArtifactInvalid      = ffe("GC010006", "ABI artifact %s for contract '%s' could not be parsed")
	MsgConfigArtifactNoFunction   = ffe("GC010007", "ABI for contract '%s' does not contain function '%s'")
	MsgConfigArtifactNoEvent      = ffe("GC010008", "ABI for contract '%s' does not contain event '%s'")
	MsgConfigSignerKeyMissing     = ffe("GC010009", "No signing key configured: one of keyFile, keystore or mnemonic is required")
	MsgConfigSignerKeyInvalid     = ffe("GC010010", "Signing key from %s could not be loaded")
	MsgConfigHDPathInvalid        = ffe("GC010011", "Invalid HD derivation path '%s'")
	MsgConfigChainIDQueryFailed   = ffe("GC010012", "Failed to query chain ID from node")
	MsgConfigTxTypeInvalid        = ffe("GC010013", "Invalid transaction type '%s' (expected legacy or eip1559)")
	MsgConfigGasCeilingInvalid    = ffe("GC010014", "Invalid gas price ceiling '%s'")
	MsgConfigHTTPPortMissing      = ffe("GC010015", "HTTP port must be configured for %s server")
	MsgConfigHTTPListenFailed     = ffe("GC010016", "Failed to listen on %s")
	MsgConfigAnomalyThresholds    = ffe("GC010017", "Anomaly thresholds invalid: %s min %v must be below max %v")
	MsgConfigWebSocketUpgrade     = ffe("GC010018", "WebSocket upgrade failed")
	MsgConfigCLIConfigFileMissing = ffe("GC010019", "The --config / -c flag is required")
	MsgContextCanceled            = ffe("GC010020", "Context canceled")
	MsgHTTPNoWSUpgradeSupport     = ffe("GC010021", "HTTP response writer does not support WebSocket upgrade: %T")
	MsgStatusAPIEncodeFailed      = ffe("GC010022", "Failed to encode status API response")
	MsgStatusAPIInvalidLimit      = ffe("GC010023", "Invalid limit '%s'", http.StatusBadRequest)
	MsgStatusAPIInvalidBody       = ffe("GC010024", "Invalid request body: %v", http.StatusBadRequest)
	MsgConfigAuthTokenFile        = ffe("GC010025", "Failed to read bearer token for %s server from %s")

	// Signing GC0101XX
	MsgSigningFailed           = ffe("GC010100", "Signing failed for transaction with nonce %d")
	MsgSignerStopped           = ffe("GC010101", "Signer is stopped")
	MsgSignerNonceReconcile    = ffe("GC010102", "Failed to reconcile nonce for %s with node")
	MsgSignerPersistFailed     = ffe("GC010103", "Failed to persist signed transaction with nonce %d")
	MsgSignerNonceReadFailed   = ffe("GC010104", "Failed to read persisted nonce counter for %s")
	MsgSignerPayloadEncoding   = ffe("GC010105", "Failed to build signature payload for transaction")
	MsgSignerUnsupportedCurve  = ffe("GC010106", "Key derived from %s is not a secp256k1 private key")
	MsgSignerRawPayloadInvalid = ffe("GC010107", "Stored raw transaction could not be decoded for re-signing")
	MsgSignerNotOurPayload     = ffe("GC010108", "Raw transaction was signed by %s, not %s")

	// Broadcast GC0102XX
	MsgBroadcastFailed        = ffe("GC010200", "Broadcast of transaction %s failed (reason=%s): %s")
	MsgBroadcastHashMismatch  = ffe("GC010201", "Node returned transaction hash %s that does not match calculated hash %s")
	MsgBroadcastNoRawPayload  = ffe("GC010202", "Transaction %s has no raw payload to broadcast")
	MsgBroadcastRPCError      = ffe("GC010203", "JSON-RPC call %s failed: %s")
	MsgBroadcastGasEstimate   = ffe("GC010204", "Gas estimation failed for %s.%s: %s")
	MsgBroadcastGasPriceQuery = ffe("GC010205", "Failed to query network gas price")

	// Confirmation GC0103XX
	MsgConfirmationTimeout    = ffe("GC010300", "No receipt for transaction %s after %s (outcome unknown)")
	MsgConfirmerStopped       = ffe("GC010301", "Confirmer is stopped")
	MsgConfirmerQueueFull     = ffe("GC010302", "Confirmer queue is full, cannot track %s")
	MsgConfirmerReceiptLookup = ffe("GC010303", "Receipt lookup failed for %s")

	// Receipt GC0104XX
	MsgReceiptFailure         = ffe("GC010400", "Transaction %s failed on-chain in block %s: %s")
	MsgReceiptNoRevertReason  = ffe("GC010401", "no revert reason")
	MsgReceiptRevertUndecoded = ffe("GC010402", "revert data %s")

	// Event decode GC0105XX
	MsgEventNotFound      = ffe("GC010500", "Event '%s' not found in receipt of transaction %s (manual review required)")
	MsgEventDecodeFailed  = ffe("GC010501", "Failed to decode event '%s' at log index %d of transaction %s")
	MsgEventFieldMissing  = ffe("GC010502", "Decoded event '%s' missing field '%s'")
	MsgEventFieldBadValue = ffe("GC010503", "Decoded event '%s' field '%s' has unexpected value '%v'")

	// Persistence / pool GC0106XX
	MsgPersistenceInvalidType         = ffe("GC010600", "Invalid persistence type: %s")
	MsgPersistenceMissingDSN          = ffe("GC010601", "Missing database connection DSN")
	MsgPersistenceInitFailed          = ffe("GC010602", "Database init failed")
	MsgPersistenceMigrationFailed     = ffe("GC010603", "Database migration failed")
	MsgPersistenceMissingMigrationDir = ffe("GC010604", "Missing database migration directory for autoMigrate")
	MsgPersistenceDSNParamLoad        = ffe("GC010605", "Failed to load DSN parameter '%s'")
	MsgPersistenceDSNTemplate         = ffe("GC010606", "Invalid DSN template")
	MsgPersistenceTxPanic             = ffe("GC010607", "Database transaction panicked: %v")
	MsgPoolInvalidStatusTransition    = ffe("GC010608", "Transaction %s cannot move from %s to %s")
	MsgPoolRecordNotFound             = ffe("GC010609", "Transaction %s not found in pool", http.StatusNotFound)
	MsgPoolRetriesExhausted           = ffe("GC010610", "retries exhausted after %d attempts")
	MsgPoolNonceConsumed              = ffe("GC010611", "nonce %d consumed by another transaction")
	MsgFlushWriterQuiescing           = ffe("GC010612", "Flush writer shutting down")
	MsgFlushWriterOpFailed            = ffe("GC010613", "Flush writer batch failed")
	MsgPoolNonceReallocated           = ffe("GC010614", "nonce %d reallocated to %d as %s")
	MsgPoolReallocationsExhausted     = ffe("GC010615", "nonce conflict persisted after %d reallocations")

	// Reconcile GC0107XX
	MsgReconcileOwnerMismatch    = ffe("GC010700", "Minted owner %s does not match expected owner %s")
	MsgReconcileMetadataMismatch = ffe("GC010701", "Minted metadata URI '%s' does not match expected '%s'")
	MsgReconcileConflict         = ffe("GC010702", "Entity %s already reconciled with on-chain id %s")
	MsgReconcileEntityNotFound   = ffe("GC010703", "Entity %s not found")
	MsgOutboxEntryNotFound       = ffe("GC010704", "Outbox entry %s not found")
	MsgOutboxUnknownOperation    = ffe("GC010705", "No dispatcher registered for outbox operation '%s'")
	MsgOutboxAlreadyDispatched   = ffe("GC010706", "Outbox entry %s was already dispatched")
	MsgOutboxAttemptsExhausted   = ffe("GC010707", "Outbox entry %s failed after %d dispatch attempts: %s")
	MsgReconcileReceiptFailed    = ffe("GC010708", "Transaction reverted: %s")
	MsgOutboxNotDispatchedAs     = ffe("GC010709", "Outbox entry %s is not dispatched as %s")

	// Operations GC0108XX
	MsgOpInvalidAddress      = ffe("GC010800", "Invalid Ethereum address '%s'")
	MsgOpInvalidTxHash       = ffe("GC010801", "Invalid transaction hash '%s'", http.StatusBadRequest)
	MsgOpAnimalNotMinted     = ffe("GC010802", "Animal %s has no on-chain token id")
	MsgOpBatchNotOnChain     = ffe("GC010803", "Batch %s has no on-chain id")
	MsgOpInvalidAmount       = ffe("GC010804", "Token amount must be positive: %s")
	MsgOpMissingField        = ffe("GC010805", "Required field '%s' missing")
	MsgOpInvalidEnum         = ffe("GC010806", "Value '%s' is not one of %v")
	MsgOpBatchNotFound       = ffe("GC010807", "Batch %s not found")
	MsgOpCallFailed          = ffe("GC010808", "Read-only call %s.%s failed")
	MsgOpUnexpectedOutput    = ffe("GC010809", "Read-only call %s.%s returned unexpected output")
	MsgOpManagerStopped      = ffe("GC010810", "Transaction manager is stopped")
	MsgOpInvalidHex          = ffe("GC010811", "Invalid hex: %s")
	MsgOpInvalidLength       = ffe("GC010812", "Invalid length for %s expected=%d actual=%d")
	MsgOpInvalidTokenID      = ffe("GC010813", "Invalid token id '%s'")
	MsgOpNoDecodedEventOwner = ffe("GC010814", "No decoded mint event available for reconciliation of %s")
	MsgOpAnimalNotFound      = ffe("GC010815", "Animal %s not found")
	MsgOpAnimalAlreadyMinted = ffe("GC010816", "Animal %s is already minted as token %s")
	MsgOpPayloadInvalid      = ffe("GC010817", "Outbox payload for %s entry %s could not be decoded")

	// Components GC0110XX
	MsgComponentDBInitError             = ffe("GC011000", "Error initializing database")
	MsgComponentChainClientInitError    = ffe("GC011001", "Error initializing blockchain client")
	MsgComponentSignerInitError         = ffe("GC011002", "Error initializing signer")
	MsgComponentTxBuilderInitError      = ffe("GC011003", "Error initializing transaction builder")
	MsgComponentAnomalyInitError        = ffe("GC011004", "Error initializing anomaly detector")
	MsgComponentStatusAPIInitError      = ffe("GC011005", "Error initializing status API")
	MsgComponentMetricsServerInitError  = ffe("GC011006", "Error initializing metrics server")
	MsgComponentSignerStartError        = ffe("GC011007", "Error starting signer")
	MsgComponentStatusAPIStartError     = ffe("GC011008", "Error starting status API")
	MsgComponentMetricsServerStartError = ffe("GC011009", "Error starting metrics server")
	MsgComponentMigrateError            = ffe("GC011010", "Error running database migrations")
	MsgComponentNotInitialized          = ffe("GC011011", "Components must be initialized before they are started")

	// Types GC0109XX
	MsgTypesScanFail         = ffe("GC010900", "Unable to scan type %T into %T")
	MsgTypesEnumValueInvalid = ffe("GC010901", "Value must be one of %s")
	MsgTypesTimeParseFail    = ffe("GC010902", "Cannot parse time as RFC3339 or unix timestamp: %s")
)
