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
	"time"

	"github.com/colnative/native-go/internal/wire"
)

const secondsPerDay = 24 * 60 * 60

// dateTime64Min/Max are the clamp bounds from the spec: 1900-01-01T00:00:00Z
// and 2299-12-31T23:59:59.9Z. Decoded values outside this range are clamped
// to the endpoint rather than rejected.
var (
	dateTime64Min = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	dateTime64Max = time.Date(2299, 12, 31, 23, 59, 59, 900000000, time.UTC)
)

// DateValues holds Date columns: u16 days since the Unix epoch,
// truncated to whole days.
type DateValues struct {
	Data []time.Time
}

func NewDateValues() *DateValues { return &DateValues{} }

func (v *DateValues) Len() int { return len(v.Data) }

func (v *DateValues) Merge(other Values) (Values, error) {
	o, ok := other.(*DateValues)
	if !ok {
		return nil, fmt.Errorf("column: cannot merge %T with %T", v, other)
	}
	return &DateValues{Data: append(append([]time.Time{}, v.Data...), o.Data...)}, nil
}

func (v *DateValues) Encode(w *wire.Writer, _ *Type) error {
	for _, t := range v.Data {
		days := t.UTC().Unix() / secondsPerDay
		w.Uint16(uint16(days))
	}
	return nil
}

func (v *DateValues) Decode(r *wire.Reader, _ *Type, rows int) error {
	v.Data = make([]time.Time, rows)
	for i := 0; i < rows; i++ {
		days, err := r.Uint16()
		if err != nil {
			return err
		}
		v.Data[i] = time.Unix(int64(days)*secondsPerDay, 0).UTC()
	}
	return nil
}

// Date32Values holds Date32 columns: i32 days since the Unix epoch,
// allowing dates before 1970.
type Date32Values struct {
	Data []time.Time
}

func NewDate32Values() *Date32Values { return &Date32Values{} }

func (v *Date32Values) Len() int { return len(v.Data) }

func (v *Date32Values) Merge(other Values) (Values, error) {
	o, ok := other.(*Date32Values)
	if !ok {
		return nil, fmt.Errorf("column: cannot merge %T with %T", v, other)
	}
	return &Date32Values{Data: append(append([]time.Time{}, v.Data...), o.Data...)}, nil
}

func (v *Date32Values) Encode(w *wire.Writer, _ *Type) error {
	for _, t := range v.Data {
		days := t.UTC().Unix() / secondsPerDay
		w.Int32(int32(days))
	}
	return nil
}

func (v *Date32Values) Decode(r *wire.Reader, _ *Type, rows int) error {
	v.Data = make([]time.Time, rows)
	for i := 0; i < rows; i++ {
		days, err := r.Int32()
		if err != nil {
			return err
		}
		v.Data[i] = time.Unix(int64(days)*secondsPerDay, 0).UTC()
	}
	return nil
}

// DateTimeValues holds DateTime columns: u32 seconds since the Unix
// epoch, optionally tagged with a display timezone carried in Type.
type DateTimeValues struct {
	Data []time.Time
}

func NewDateTimeValues() *DateTimeValues { return &DateTimeValues{} }

func (v *DateTimeValues) Len() int { return len(v.Data) }

func (v *DateTimeValues) Merge(other Values) (Values, error) {
	o, ok := other.(*DateTimeValues)
	if !ok {
		return nil, fmt.Errorf("column: cannot merge %T with %T", v, other)
	}
	return &DateTimeValues{Data: append(append([]time.Time{}, v.Data...), o.Data...)}, nil
}

func (v *DateTimeValues) Encode(w *wire.Writer, _ *Type) error {
	for _, t := range v.Data {
		w.Uint32(uint32(t.UTC().Unix()))
	}
	return nil
}

func (v *DateTimeValues) Decode(r *wire.Reader, _ *Type, rows int) error {
	v.Data = make([]time.Time, rows)
	for i := 0; i < rows; i++ {
		secs, err := r.Uint32()
		if err != nil {
			return err
		}
		v.Data[i] = time.Unix(int64(secs), 0).UTC()
	}
	return nil
}

// DateTime64Values holds DateTime64(p) columns: i64 count of 10^-p
// seconds since the epoch, clamped on read to the documented display
// range so out-of-range encoded values produce the endpoint timestamps.
type DateTime64Values struct {
	Data []time.Time
}

func NewDateTime64Values() *DateTime64Values { return &DateTime64Values{} }

func (v *DateTime64Values) Len() int { return len(v.Data) }

func (v *DateTime64Values) Merge(other Values) (Values, error) {
	o, ok := other.(*DateTime64Values)
	if !ok {
		return nil, fmt.Errorf("column: cannot merge %T with %T", v, other)
	}
	return &DateTime64Values{Data: append(append([]time.Time{}, v.Data...), o.Data...)}, nil
}

// pow10 returns 10^n for the small non-negative exponents (0-9) that a
// DateTime64 precision can take.
func pow10(n int8) int64 {
	p := int64(1)
	for i := int8(0); i < n; i++ {
		p *= 10
	}
	return p
}

// floorDivMod is Euclidean division: r is always in [0, b), even for
// negative a, so a pre-1970 timestamp's fractional part comes out
// positive instead of needing a sign correction at the call site.
func floorDivMod(a, b int64) (q, r int64) {
	q, r = a/b, a%b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}

func (v *DateTime64Values) Encode(w *wire.Writer, t *Type) error {
	scale := pow10(t.Precision)
	subSecond := pow10(9 - t.Precision)
	for _, ts := range v.Data {
		ts = ts.UTC()
		w.Int64(ts.Unix()*scale + int64(ts.Nanosecond())/subSecond)
	}
	return nil
}

func (v *DateTime64Values) Decode(r *wire.Reader, t *Type, rows int) error {
	scale := pow10(t.Precision)
	subSecond := pow10(9 - t.Precision)
	v.Data = make([]time.Time, rows)
	for i := 0; i < rows; i++ {
		raw, err := r.Int64()
		if err != nil {
			return err
		}
		whole, frac := floorDivMod(raw, scale)
		ts := time.Unix(whole, frac*subSecond).UTC()
		if ts.Before(dateTime64Min) {
			ts = dateTime64Min
		} else if ts.After(dateTime64Max) {
			ts = dateTime64Max
		}
		v.Data[i] = ts
	}
	return nil
}
