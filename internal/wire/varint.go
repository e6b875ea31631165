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

// Package wire implements the low-level byte primitives of the native
// columnar wire protocol: variable-length integers, length-prefixed and
// fixed-width strings, little-endian fixed-width scalars, and the UUID
// byte-swap used by the server's on-wire representation.
package wire

import "fmt"

// maxVarintLen is the maximum number of bytes a VarInt64 can occupy on the
// wire: 10 groups of 7 data bits are needed to cover the full 64-bit range.
const maxVarintLen = 10

// PutUvarint appends the VarInt64 encoding of v to dst and returns the
// extended slice.
func PutUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// ErrVarintCorrupted is returned when a VarInt64 exceeds the maximum
// encoded length without a terminating byte.
var ErrVarintCorrupted = fmt.Errorf("wire: varint exceeds %d bytes", maxVarintLen)

// ErrNeedMoreData signals that buf does not yet hold a full value; the
// caller should read more bytes and retry.
var ErrNeedMoreData = fmt.Errorf("wire: need more data")

// Uvarint decodes a VarInt64 from the front of buf. It returns the decoded
// value and the number of bytes consumed. If buf is a valid prefix of a
// varint but doesn't yet contain the terminating byte, it returns
// ErrNeedMoreData. If 10 bytes are consumed without a terminator, it returns
// ErrVarintCorrupted.
func Uvarint(buf []byte) (v uint64, n int, err error) {
	for n = 0; n < len(buf) && n < maxVarintLen; n++ {
		b := buf[n]
		v |= uint64(b&0x7f) << (7 * n)
		if b&0x80 == 0 {
			return v, n + 1, nil
		}
	}
	if n >= maxVarintLen {
		return 0, 0, ErrVarintCorrupted
	}
	return 0, 0, ErrNeedMoreData
}
