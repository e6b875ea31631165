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
	"fmt"

	"github.com/colnative/native-go/internal/wire"
	"github.com/google/uuid"
)

// Values is the capability set every column container implements:
// length, same-type merge, and wire encode/decode given the column's
// declared Type. Array, Nullable and Map recurse through these same
// capabilities on their element containers instead of switching on a
// type hierarchy.
type Values interface {
	Len() int
	Merge(other Values) (Values, error)
	Encode(w *wire.Writer, t *Type) error
	Decode(r *wire.Reader, t *Type, rows int) error
}

// ScalarValues is a generic fixed-width column container. The
// encode/decode functions capture the wire width and byte order for a
// single scalar kind, so the boilerplate that differs only in width
// across Int8..UInt64/Float32/Float64/Bool/UUID collapses into one type.
type ScalarValues[T any] struct {
	Data []T

	encode func(w *wire.Writer, v T)
	decode func(r *wire.Reader) (T, error)
}

func newScalarValues[T any](encode func(*wire.Writer, T), decode func(*wire.Reader) (T, error)) *ScalarValues[T] {
	return &ScalarValues[T]{encode: encode, decode: decode}
}

func (v *ScalarValues[T]) Len() int { return len(v.Data) }

func (v *ScalarValues[T]) Merge(other Values) (Values, error) {
	o, ok := other.(*ScalarValues[T])
	if !ok {
		return nil, fmt.Errorf("column: cannot merge %T with %T", v, other)
	}
	return &ScalarValues[T]{Data: append(append([]T{}, v.Data...), o.Data...), encode: v.encode, decode: v.decode}, nil
}

func (v *ScalarValues[T]) Encode(w *wire.Writer, _ *Type) error {
	for _, x := range v.Data {
		v.encode(w, x)
	}
	return nil
}

func (v *ScalarValues[T]) Decode(r *wire.Reader, _ *Type, rows int) error {
	v.Data = make([]T, rows)
	for i := 0; i < rows; i++ {
		x, err := v.decode(r)
		if err != nil {
			return err
		}
		v.Data[i] = x
	}
	return nil
}

// Constructors for every fixed-width scalar kind named in the type
// grammar. Each wires ScalarValues to the matching Writer/Reader pair.

func NewFloat32Values() *ScalarValues[float32] {
	return newScalarValues(func(w *wire.Writer, v float32) { w.Float32(v) }, (*wire.Reader).Float32)
}

func NewFloat64Values() *ScalarValues[float64] {
	return newScalarValues(func(w *wire.Writer, v float64) { w.Float64(v) }, (*wire.Reader).Float64)
}

func NewInt8Values() *ScalarValues[int8] {
	return newScalarValues(func(w *wire.Writer, v int8) { w.Int8(v) }, (*wire.Reader).Int8)
}

func NewInt16Values() *ScalarValues[int16] {
	return newScalarValues(func(w *wire.Writer, v int16) { w.Int16(v) }, (*wire.Reader).Int16)
}

func NewInt32Values() *ScalarValues[int32] {
	return newScalarValues(func(w *wire.Writer, v int32) { w.Int32(v) }, (*wire.Reader).Int32)
}

func NewInt64Values() *ScalarValues[int64] {
	return newScalarValues(func(w *wire.Writer, v int64) { w.Int64(v) }, (*wire.Reader).Int64)
}

func NewUInt8Values() *ScalarValues[uint8] {
	return newScalarValues(func(w *wire.Writer, v uint8) { w.Uint8(v) }, (*wire.Reader).Uint8)
}

func NewUInt16Values() *ScalarValues[uint16] {
	return newScalarValues(func(w *wire.Writer, v uint16) { w.Uint16(v) }, (*wire.Reader).Uint16)
}

func NewUInt32Values() *ScalarValues[uint32] {
	return newScalarValues(func(w *wire.Writer, v uint32) { w.Uint32(v) }, (*wire.Reader).Uint32)
}

func NewUInt64Values() *ScalarValues[uint64] {
	return newScalarValues(func(w *wire.Writer, v uint64) { w.Uint64(v) }, (*wire.Reader).Uint64)
}

func NewBoolValues() *ScalarValues[bool] {
	return newScalarValues(
		func(w *wire.Writer, v bool) {
			if v {
				w.Uint8(1)
			} else {
				w.Uint8(0)
			}
		},
		func(r *wire.Reader) (bool, error) {
			b, err := r.Uint8()
			return b != 0, err
		},
	)
}

func NewUUIDValues() *ScalarValues[uuid.UUID] {
	return newScalarValues(func(w *wire.Writer, v uuid.UUID) { w.PutUUID(v) }, (*wire.Reader).UUID)
}

// StringValues holds variable-length UTF-8 strings, each length-prefixed
// on the wire.
type StringValues struct {
	Data []string
}

func NewStringValues() *StringValues { return &StringValues{} }

func (v *StringValues) Len() int { return len(v.Data) }

func (v *StringValues) Merge(other Values) (Values, error) {
	o, ok := other.(*StringValues)
	if !ok {
		return nil, fmt.Errorf("column: cannot merge %T with %T", v, other)
	}
	return &StringValues{Data: append(append([]string{}, v.Data...), o.Data...)}, nil
}

func (v *StringValues) Encode(w *wire.Writer, _ *Type) error {
	for _, s := range v.Data {
		w.String(s)
	}
	return nil
}

func (v *StringValues) Decode(r *wire.Reader, _ *Type, rows int) error {
	v.Data = make([]string, rows)
	for i := 0; i < rows; i++ {
		s, err := r.String()
		if err != nil {
			return err
		}
		v.Data[i] = s
	}
	return nil
}

// FixedStringValues holds fixed-byte-length strings; truncation and
// zero-padding on write, NUL-stripping on read, per FixedString(len).
type FixedStringValues struct {
	Data []string
}

func NewFixedStringValues() *FixedStringValues { return &FixedStringValues{} }

func (v *FixedStringValues) Len() int { return len(v.Data) }

func (v *FixedStringValues) Merge(other Values) (Values, error) {
	o, ok := other.(*FixedStringValues)
	if !ok {
		return nil, fmt.Errorf("column: cannot merge %T with %T", v, other)
	}
	return &FixedStringValues{Data: append(append([]string{}, v.Data...), o.Data...)}, nil
}

func (v *FixedStringValues) Encode(w *wire.Writer, t *Type) error {
	for _, s := range v.Data {
		w.FixedString(s, t.FixedLen)
	}
	return nil
}

func (v *FixedStringValues) Decode(r *wire.Reader, t *Type, rows int) error {
	v.Data = make([]string, rows)
	for i := 0; i < rows; i++ {
		s, err := r.FixedString(t.FixedLen)
		if err != nil {
			return err
		}
		v.Data[i] = s
	}
	return nil
}
