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

	"github.com/brianvoe/gofakeit/v7"
	"github.com/colnative/native-go/internal/wire"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// encodeDecode round-trips a Values container through the wire and
// returns a freshly decoded container of the same concrete type.
func encodeDecode(t *testing.T, typ *Type, v Values) Values {
	t.Helper()
	w := wire.NewWriter()
	require.NoError(t, v.Encode(w, typ))

	got := NewValues(typ)
	require.NoError(t, got.Decode(wire.NewReader(w.Bytes()), typ, v.Len()))
	return got
}

func TestScalarCodecRoundTrip(t *testing.T) {
	f := gofakeit.New(1)

	typ := UInt32Type()
	v := NewUInt32Values()
	for i := 0; i < 64; i++ {
		v.Data = append(v.Data, f.Uint32())
	}
	got := encodeDecode(t, typ, v).(*ScalarValues[uint32])
	require.Equal(t, v.Data, got.Data)
}

func TestInt64CodecRoundTrip(t *testing.T) {
	f := gofakeit.New(2)

	typ := Int64Type()
	v := NewInt64Values()
	for i := 0; i < 64; i++ {
		v.Data = append(v.Data, f.Int64())
	}
	got := encodeDecode(t, typ, v).(*ScalarValues[int64])
	require.Equal(t, v.Data, got.Data)
}

func TestStringCodecRoundTrip(t *testing.T) {
	f := gofakeit.New(3)

	typ := StringType()
	v := NewStringValues()
	for i := 0; i < 32; i++ {
		v.Data = append(v.Data, f.Sentence(5))
	}
	got := encodeDecode(t, typ, v).(*StringValues)
	require.Equal(t, v.Data, got.Data)
}

func TestNullableCodecRoundTrip(t *testing.T) {
	// nullable=[nil, nil, 1, 3, 4, 5, 6, 7, 8, 8]
	typ := NullableType(UInt32Type())
	inner := NewUInt32Values()
	inner.Data = []uint32{0, 0, 1, 3, 4, 5, 6, 7, 8, 8}
	v := &NullableValues{
		Null:  []bool{true, true, false, false, false, false, false, false, false, false},
		Inner: inner,
	}

	got := encodeDecode(t, typ, v).(*NullableValues)
	require.Equal(t, v.Null, got.Null)
	require.Equal(t, inner.Data, got.Inner.(*ScalarValues[uint32]).Data)
}

func TestArrayCodecRoundTrip(t *testing.T) {
	// arr=[[1],[43,65],[],[1234,-345,1]]
	rows := [][]int32{{1}, {43, 65}, {}, {1234, -345, 1}}

	typ := ArrayType(Int32Type())
	elem := NewInt32Values()
	offsets := make([]uint64, len(rows))
	var cum uint64
	for i, row := range rows {
		elem.Data = append(elem.Data, row...)
		cum += uint64(len(row))
		offsets[i] = cum
	}
	v := &ArrayValues{Offsets: offsets, Elem: elem}

	require.Equal(t, []uint64{1, 3, 3, 6}, offsets)

	got := encodeDecode(t, typ, v).(*ArrayValues)
	require.Equal(t, offsets, got.Offsets)
	require.Equal(t, elem.Data, got.Elem.(*ScalarValues[int32]).Data)
}

func TestMapCodecRoundTrip(t *testing.T) {
	typ := MapType(StringType(), StringType())
	v := NewMapValues()
	rows := [][2]string{{"a", "1"}, {"b", "2"}}
	v.Offsets = []uint64{1, 2}
	for _, kv := range rows {
		v.Keys.Data = append(v.Keys.Data, kv[0])
		v.Vals.Data = append(v.Vals.Data, kv[1])
	}

	got := encodeDecode(t, typ, v).(*MapValues)
	require.Equal(t, v.Offsets, got.Offsets)
	require.Equal(t, v.Keys.Data, got.Keys.Data)
	require.Equal(t, v.Vals.Data, got.Vals.Data)
}

func TestEnumCodecRoundTrip(t *testing.T) {
	typ, err := Parse("Enum8('hi' = -1, 'bye' = 5)")
	require.NoError(t, err)

	v := NewEnumValues()
	v.Data = []string{"hi", "bye", "hi"}

	got := encodeDecode(t, typ, v).(*EnumValues)
	require.Equal(t, v.Data, got.Data)
}

func TestEnumEncodeUnknownNameFails(t *testing.T) {
	typ, err := Parse("Enum8('hi' = -1)")
	require.NoError(t, err)

	v := NewEnumValues()
	v.Data = []string{"nope"}

	w := wire.NewWriter()
	require.Error(t, v.Encode(w, typ))
}

func TestUUIDCodecRoundTrip(t *testing.T) {
	f := gofakeit.New(4)
	typ := UUIDType()
	v := NewUUIDValues()
	for i := 0; i < 8; i++ {
		v.Data = append(v.Data, uuid.MustParse(f.UUID()))
	}
	got := encodeDecode(t, typ, v).(*ScalarValues[uuid.UUID])
	require.Equal(t, v.Data, got.Data)
}
