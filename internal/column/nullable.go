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
)

// NullableValues wraps another Values container with a parallel null-flag
// array. The wire layout is row-count null-flag bytes (1 = null, 0 =
// present) followed by the inner payload for every row; null slots carry
// the inner type's default value in the payload, exactly like the server.
type NullableValues struct {
	Null  []bool
	Inner Values
}

func NewNullableValues(inner Values) *NullableValues {
	return &NullableValues{Inner: inner}
}

func (v *NullableValues) Len() int { return len(v.Null) }

func (v *NullableValues) Merge(other Values) (Values, error) {
	o, ok := other.(*NullableValues)
	if !ok {
		return nil, fmt.Errorf("column: cannot merge %T with %T", v, other)
	}
	inner, err := v.Inner.Merge(o.Inner)
	if err != nil {
		return nil, fmt.Errorf("column: merging Nullable inner values: %w", err)
	}
	return &NullableValues{
		Null:  append(append([]bool{}, v.Null...), o.Null...),
		Inner: inner,
	}, nil
}

func (v *NullableValues) Encode(w *wire.Writer, t *Type) error {
	for _, isNull := range v.Null {
		if isNull {
			w.Uint8(1)
		} else {
			w.Uint8(0)
		}
	}
	return v.Inner.Encode(w, t.Elem)
}

func (v *NullableValues) Decode(r *wire.Reader, t *Type, rows int) error {
	v.Null = make([]bool, rows)
	for i := 0; i < rows; i++ {
		b, err := r.Uint8()
		if err != nil {
			return err
		}
		v.Null[i] = b != 0
	}
	if v.Inner == nil {
		v.Inner = NewValues(t.Elem)
	}
	return v.Inner.Decode(r, t.Elem, rows)
}
