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

package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUvarintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 16383, 16384, 1 << 20, 1 << 40, ^uint64(0)}
	for _, v := range cases {
		buf := PutUvarint(nil, v)
		got, n, err := Uvarint(buf)
		require.NoError(t, err)
		require.Equal(t, len(buf), n)
		require.Equal(t, v, got)
	}
}

func TestUvarintEncodedLength(t *testing.T) {
	require.Len(t, PutUvarint(nil, 0), 1)
	require.Len(t, PutUvarint(nil, 1<<7-1), 1)
	require.Len(t, PutUvarint(nil, 1<<7), 2)
	require.Len(t, PutUvarint(nil, 1<<14-1), 2)
	require.Len(t, PutUvarint(nil, 1<<14), 3)
}

func TestUvarintNeedMoreData(t *testing.T) {
	buf := PutUvarint(nil, 1<<20)
	_, _, err := Uvarint(buf[:len(buf)-1])
	require.ErrorIs(t, err, ErrNeedMoreData)
}

func TestUvarintCorrupted(t *testing.T) {
	buf := make([]byte, 10)
	for i := range buf {
		buf[i] = 0x80
	}
	_, _, err := Uvarint(buf)
	require.ErrorIs(t, err, ErrVarintCorrupted)
}
