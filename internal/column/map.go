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

// MapValues holds Map(String, String) columns. It mirrors Array's wire
// encoding: a u64 offsets array, then the flattened keys, then the
// flattened values, both as plain String payloads.
type MapValues struct {
	Offsets []uint64
	Keys    *StringValues
	Vals    *StringValues
}

func NewMapValues() *MapValues {
	return &MapValues{Keys: NewStringValues(), Vals: NewStringValues()}
}

func (v *MapValues) Len() int { return len(v.Offsets) }

func (v *MapValues) RowLen(i int) int {
	if i == 0 {
		return int(v.Offsets[0])
	}
	return int(v.Offsets[i] - v.Offsets[i-1])
}

func (v *MapValues) Merge(other Values) (Values, error) {
	o, ok := other.(*MapValues)
	if !ok {
		return nil, fmt.Errorf("column: cannot merge %T with %T", v, other)
	}
	keys, err := v.Keys.Merge(o.Keys)
	if err != nil {
		return nil, err
	}
	vals, err := v.Vals.Merge(o.Vals)
	if err != nil {
		return nil, err
	}

	offsets := append([]uint64{}, v.Offsets...)
	var base uint64
	if len(v.Offsets) > 0 {
		base = v.Offsets[len(v.Offsets)-1]
	}
	for _, off := range o.Offsets {
		offsets = append(offsets, base+off)
	}
	return &MapValues{Offsets: offsets, Keys: keys.(*StringValues), Vals: vals.(*StringValues)}, nil
}

func (v *MapValues) Encode(w *wire.Writer, t *Type) error {
	for _, off := range v.Offsets {
		w.Uint64(off)
	}
	if err := v.Keys.Encode(w, t.Key); err != nil {
		return err
	}
	return v.Vals.Encode(w, t.Value)
}

func (v *MapValues) Decode(r *wire.Reader, t *Type, rows int) error {
	v.Offsets = make([]uint64, rows)
	for i := 0; i < rows; i++ {
		off, err := r.Uint64()
		if err != nil {
			return err
		}
		v.Offsets[i] = off
	}
	total := 0
	if rows > 0 {
		total = int(v.Offsets[rows-1])
	}
	v.Keys = NewStringValues()
	v.Vals = NewStringValues()
	if err := v.Keys.Decode(r, t.Key, total); err != nil {
		return err
	}
	return v.Vals.Decode(r, t.Value, total)
}
