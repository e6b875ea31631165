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

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUUIDRoundTrip(t *testing.T) {
	id := uuid.MustParse("01234567-89ab-cdef-0123-456789abcdef")

	w := NewWriter()
	w.PutUUID(id)
	require.Len(t, w.Bytes(), 16)

	r := NewReader(w.Bytes())
	got, err := r.UUID()
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestUUIDHalvesAreByteReversed(t *testing.T) {
	id := uuid.MustParse("00010203-0405-0607-0809-0a0b0c0d0e0f")
	w := NewWriter()
	w.PutUUID(id)
	require.Equal(t, []byte{
		0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, 0x00,
		0x0f, 0x0e, 0x0d, 0x0c, 0x0b, 0x0a, 0x09, 0x08,
	}, w.Bytes())
}
