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

import "github.com/google/uuid"

// PutUUID appends the wire representation of id: the canonical big-endian
// 16 bytes with each 8-byte half byte-reversed.
func (w *Writer) PutUUID(id uuid.UUID) {
	var b [16]byte
	swapUUIDHalves(&b, id)
	w.buf = append(w.buf, b[:]...)
}

// UUID reads a wire-format UUID and un-swaps it back to canonical form.
func (r *Reader) UUID() (uuid.UUID, error) {
	b, err := r.readN(16)
	if err != nil {
		return uuid.UUID{}, err
	}
	var out [16]byte
	unswapUUIDHalves(&out, b)
	return uuid.UUID(out), nil
}

// swapUUIDHalves writes id's two 8-byte halves into dst in reversed
// byte order within each half, matching the server's native layout.
func swapUUIDHalves(dst *[16]byte, id uuid.UUID) {
	for i := 0; i < 8; i++ {
		dst[i] = id[7-i]
		dst[8+i] = id[15-i]
	}
}

// unswapUUIDHalves inverts swapUUIDHalves.
func unswapUUIDHalves(dst *[16]byte, src []byte) {
	for i := 0; i < 8; i++ {
		dst[7-i] = src[i]
		dst[15-i] = src[8+i]
	}
}
