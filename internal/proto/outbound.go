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

package proto

import (
	"github.com/colnative/native-go/internal/column"
	"github.com/colnative/native-go/internal/wire"
)

// EncodeHello builds the client's handshake frame: client name, protocol
// version, revision, then the target database/user/password.
func EncodeHello(clientName, database, user, password string) []byte {
	w := wire.NewWriter()
	w.Uvarint(OpClientHello)
	w.String(clientName)
	w.Uvarint(ClientVersionMajor)
	w.Uvarint(ClientVersionMinor)
	w.Uvarint(ClientRevision)
	w.String(database)
	w.String(user)
	w.String(password)
	return w.Bytes()
}

// EncodeQuery builds the client's Query frame, gating the client-info
// block and quota key on the negotiated server revision, followed by the
// empty data block that marks the end of the query preamble.
func EncodeQuery(revision uint64, queryID, clientName, sql string) ([]byte, error) {
	w := wire.NewWriter()
	w.Uvarint(OpClientQuery)
	w.String(queryID)

	if revision >= RevisionWithClientInfo {
		writeClientInfo(w, revision, clientName)
	}

	w.String("") // empty settings terminator
	w.Uvarint(QueryStageComplete)
	w.Uvarint(CompressionDisable)
	w.String(sql)

	// An empty data block marks the end of the query preamble.
	empty, err := EncodeDataBlock(revision, "", &column.Block{})
	if err != nil {
		return nil, err
	}
	w.Raw(empty)
	return w.Bytes(), nil
}

func writeClientInfo(w *wire.Writer, revision uint64, clientName string) {
	w.Uvarint(clientInfoQueryKindInitial)
	w.String("") // initial user
	w.String("") // initial query id
	w.String("") // initial address
	w.Uvarint(clientInfoIfaceTypeTCP)
	w.String("") // os user
	w.String("") // hostname
	w.String(clientName)
	w.Uvarint(ClientVersionMajor)
	w.Uvarint(ClientVersionMinor)
	w.Uvarint(ClientRevision)
	if revision >= RevisionWithQuotaKeyInClientInfo {
		w.String("") // quota key
	}
}

// EncodeDataBlock builds a client->server Data frame carrying block,
// gating the temporary-table name and block-info header on revision.
func EncodeDataBlock(revision uint64, tableName string, block *column.Block) ([]byte, error) {
	w := wire.NewWriter()
	w.Uvarint(OpClientData)
	if err := writeDataBlockBody(w, revision, tableName, block); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// writeDataBlockBody writes the shared data-block payload.
func writeDataBlockBody(w *wire.Writer, revision uint64, tableName string, block *column.Block) error {
	if revision >= RevisionWithTemporaryTables {
		w.String(tableName)
	}
	if revision >= RevisionWithBlockInfo {
		w.Uvarint(1)
		w.Uint8(block.IsOverflows)
		w.Uvarint(2)
		w.Int32(block.BucketNum)
		w.Uvarint(0)
	}

	w.Uvarint(uint64(len(block.Columns)))
	w.Uvarint(uint64(block.NumRows()))
	for _, col := range block.Columns {
		w.String(col.Name)
		w.String(col.Type.String())
		if col.Values != nil {
			if err := col.Values.Encode(w, col.Type); err != nil {
				return err
			}
		}
	}
	return nil
}

// EncodePing builds the client's Ping frame.
func EncodePing() []byte {
	w := wire.NewWriter()
	w.Uvarint(OpClientPing)
	return w.Bytes()
}

// EncodeEndOfData builds the second, empty Data frame that signals "no
// more blocks from client" after an insert's row block.
func EncodeEndOfData(revision uint64) ([]byte, error) {
	return EncodeDataBlock(revision, "", &column.Block{})
}
