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

// ArrayValues holds Array(T) columns. The wire layout is a u64 offsets
// array of row-count entries, where entry i is the cumulative element
// count through row i, followed by the concatenated element payload.
type ArrayValues struct {
	// Offsets has len(Offsets) == number of rows; Offsets[i] is the
	// cumulative element count through row i.
	Offsets []uint64
	Elem    Values
}

func NewArrayValues(elem Values) *ArrayValues {
	return &ArrayValues{Elem: elem}
}

func (v *ArrayValues) Len() int { return len(v.Offsets) }

// RowLen returns the number of elements in row i.
func (v *ArrayValues) RowLen(i int) int {
	if i == 0 {
		return int(v.Offsets[0])
	}
	return int(v.Offsets[i] - v.Offsets[i-1])
}

func (v *ArrayValues) Merge(other Values) (Values, error) {
	o, ok := other.(*ArrayValues)
	if !ok {
		return nil, fmt.Errorf("column: cannot merge %T with %T", v, other)
	}
	elem, err := v.Elem.Merge(o.Elem)
	if err != nil {
		return nil, fmt.Errorf("column: merging Array element values: %w", err)
	}

	offsets := append([]uint64{}, v.Offsets...)
	var base uint64
	if len(v.Offsets) > 0 {
		base = v.Offsets[len(v.Offsets)-1]
	}
	for _, off := range o.Offsets {
		offsets = append(offsets, base+off)
	}
	return &ArrayValues{Offsets: offsets, Elem: elem}, nil
}

func (v *ArrayValues) Encode(w *wire.Writer, t *Type) error {
	for _, off := range v.Offsets {
		w.Uint64(off)
	}
	return v.Elem.Encode(w, t.Elem)
}

func (v *ArrayValues) Decode(r *wire.Reader, t *Type, rows int) error {
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
	if v.Elem == nil {
		v.Elem = NewValues(t.Elem)
	}
	return v.Elem.Decode(r, t.Elem, total)
}
