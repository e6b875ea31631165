/*
 * Copyright 2024 The Colnative Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package proto implements the message codec: encoding outbound command
// variants to bytes and decoding inbound bytes into a tagged Frame,
// honoring the protocol revision gates that control which optional
// fields are present on the wire.
package proto

// ClientRevision is the protocol revision this client advertises during
// the handshake.
const ClientRevision = 54126

// ClientVersionMajor/Minor accompany ClientRevision in the Hello frame.
const (
	ClientVersionMajor = 1
	ClientVersionMinor = 1
)

// Revision gates: the minimum server revision at which each optional
// wire field appears, in both directions.
const (
	RevisionWithTemporaryTables      = 50264
	RevisionWithTotalRowsInProgress  = 51554
	RevisionWithBlockInfo            = 51903
	RevisionWithClientInfo           = 54032
	RevisionWithServerTimezone       = 54058
	RevisionWithQuotaKeyInClientInfo = 54060
)

// Client opcodes.
const (
	OpClientHello = 0
	OpClientQuery = 1
	OpClientData  = 2
	OpClientPing  = 4
)

// Server opcodes.
const (
	OpServerHello       = 0
	OpServerData        = 1
	OpServerException   = 2
	OpServerProgress    = 3
	OpServerPong        = 4
	OpServerEndOfStream = 5
	OpServerProfileInfo = 6
	OpServerTotals      = 7
	OpServerExtremes    = 8
)

// QueryStageComplete is the only query stage this client ever requests.
const QueryStageComplete = 2

// Compression negotiation codes; this client always sends Disable.
const (
	CompressionDisable = 0
	CompressionEnable  = 1
)

// ClientInfo constants for the Query frame's client-info block.
const (
	clientInfoQueryKindInitial = 1
	clientInfoIfaceTypeTCP     = 1
)
