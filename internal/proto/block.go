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
	"github.com/colnative/native-go/internal/cherr"
	"github.com/colnative/native-go/internal/column"
	"github.com/colnative/native-go/internal/wire"
)

// decodeDataBlockBody reads the shared data-block payload (table name,
// block-info header, columns) from r, gated by revision. r may be left
// part way through on failure: Decoder.Decode parses from a fresh Reader
// and only trims its buffer on overall success.
func decodeDataBlockBody(r *wire.Reader, revision uint64) (*column.Block, error) {
	block := &column.Block{}

	if revision >= RevisionWithTemporaryTables {
		name, err := r.String()
		if err != nil {
			return nil, err
		}
		block.TableName = name
	}

	if revision >= RevisionWithBlockInfo {
		if _, err := r.Uvarint(); err != nil { // field id 1
			return nil, err
		}
		isOverflows, err := r.Uint8()
		if err != nil {
			return nil, err
		}
		block.IsOverflows = isOverflows
		if _, err := r.Uvarint(); err != nil { // field id 2
			return nil, err
		}
		bucketNum, err := r.Int32()
		if err != nil {
			return nil, err
		}
		block.BucketNum = bucketNum
		if _, err := r.Uvarint(); err != nil { // terminator 0
			return nil, err
		}
	}

	numCols, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	numRows, err := r.Uvarint()
	if err != nil {
		return nil, err
	}

	block.Columns = make([]column.Column, numCols)
	for i := uint64(0); i < numCols; i++ {
		name, err := r.String()
		if err != nil {
			return nil, err
		}
		typeStr, err := r.String()
		if err != nil {
			return nil, err
		}
		typ, err := column.Parse(typeStr)
		if err != nil {
			return nil, cherr.WrapDataTypeError("parsing column type descriptor", err)
		}
		values := column.NewValues(typ)
		if err := values.Decode(r, typ, int(numRows)); err != nil {
			return nil, err
		}
		block.Columns[i] = column.Column{Name: name, Type: typ, Values: values}
	}

	return block, nil
}
