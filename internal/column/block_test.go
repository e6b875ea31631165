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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func schemaBlock(name string, typ *Type) *Block {
	return &Block{Columns: []Column{{Name: name, Type: typ, Values: NewValues(typ)}}}
}

func dataBlock(name string, typ *Type, data []uint32) *Block {
	v := NewUInt32Values()
	v.Data = data
	return &Block{Columns: []Column{{Name: name, Type: typ, Values: v}}}
}

func TestMergeSingleBlockReturnedAsIs(t *testing.T) {
	b := dataBlock("id", UInt32Type(), []uint32{1, 2, 3})
	merged, err := Merge([]*Block{b})
	require.NoError(t, err)
	require.Same(t, b, merged)
}

func TestMergeSchemaThenSingleDataBlock(t *testing.T) {
	schema := schemaBlock("id", UInt32Type())
	data := dataBlock("id", UInt32Type(), []uint32{1, 2, 3})

	merged, err := Merge([]*Block{schema, data})
	require.NoError(t, err)
	require.Same(t, data, merged)
}

func TestMergeConcatenatesMultipleDataBlocks(t *testing.T) {
	schema := schemaBlock("id", UInt32Type())
	b1 := dataBlock("id", UInt32Type(), []uint32{1, 2})
	b2 := dataBlock("id", UInt32Type(), []uint32{3, 4, 5})

	merged, err := Merge([]*Block{schema, b1, b2})
	require.NoError(t, err)
	require.Equal(t, 5, merged.NumRows())
	require.Equal(t, []uint32{1, 2, 3, 4, 5}, merged.Columns[0].Values.(*ScalarValues[uint32]).Data)
}

func TestMergeRejectsHeterogeneousTypes(t *testing.T) {
	schema := schemaBlock("id", UInt32Type())
	b1 := dataBlock("id", UInt32Type(), []uint32{1})
	b2 := &Block{Columns: []Column{{Name: "id", Type: StringType(), Values: NewStringValues()}}}

	_, err := Merge([]*Block{schema, b1, b2})
	require.Error(t, err)
}
