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

package column

import "fmt"

// Block is a set of columns plus header fields and an optional table
// name. A query result is transmitted as one or more blocks: the first
// carries the schema with zero rows, followed by blocks with rows,
// followed by end-of-stream.
type Block struct {
	Columns     []Column
	IsOverflows uint8
	BucketNum   int32
	TableName   string
}

// NumRows returns the row count of the block, i.e. the length of any of
// its columns (they're all equal by invariant).
func (b *Block) NumRows() int {
	if len(b.Columns) == 0 {
		return 0
	}
	return b.Columns[0].Values.Len()
}

// Merge synthesizes a single result Block from the sequence of blocks a
// query response streamed. The first block carries the schema with zero
// rows.
//
//   - Exactly one block: return its columns unchanged.
//   - First block has zero rows and there's exactly one further block:
//     return that further block's columns.
//   - Otherwise: concatenate row-wise, column by column, using each
//     column's same-type merge capability.
//
// Mixing heterogeneous types across blocks at the same column position
// is a fatal data-type error.
func Merge(blocks []*Block) (*Block, error) {
	if len(blocks) == 0 {
		return &Block{}, nil
	}
	if len(blocks) == 1 {
		return blocks[0], nil
	}

	first := blocks[0]
	rest := blocks[1:]

	if first.NumRows() == 0 && len(rest) == 1 {
		return rest[0], nil
	}

	ncols := len(first.Columns)
	merged := make([]Column, ncols)
	for i := 0; i < ncols; i++ {
		name := first.Columns[i].Name
		typ := first.Columns[i].Type
		values := first.Columns[i].Values

		for _, b := range rest {
			if i >= len(b.Columns) {
				return nil, fmt.Errorf("column: block column count mismatch: expected %d, got %d", ncols, len(b.Columns))
			}
			col := b.Columns[i]
			if col.Name != name {
				return nil, fmt.Errorf("column: block column name mismatch at position %d: %q vs %q", i, name, col.Name)
			}
			if col.Type.String() != typ.String() {
				return nil, fmt.Errorf("column: mixing heterogeneous types for column %q: %s vs %s", name, typ.String(), col.Type.String())
			}
			var err error
			values, err = values.Merge(col.Values)
			if err != nil {
				return nil, fmt.Errorf("column: merging column %q: %w", name, err)
			}
		}
		merged[i] = Column{Name: name, Type: typ, Values: values}
	}

	return &Block{Columns: merged, TableName: first.TableName}, nil
}
