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
	"time"

	"github.com/stretchr/testify/require"

	"github.com/colnative/native-go/internal/wire"
)

func TestDateRoundTrip(t *testing.T) {
	typ := DateType()
	in := &DateValues{Data: []time.Time{
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	}}

	w := wire.NewWriter()
	require.NoError(t, in.Encode(w, typ))

	out := NewDateValues()
	require.NoError(t, out.Decode(wire.NewReader(w.Bytes()), typ, len(in.Data)))
	require.Equal(t, in.Data, out.Data)
}

func TestDate32RoundTrip(t *testing.T) {
	typ := Date32Type()
	in := &Date32Values{Data: []time.Time{
		time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1969, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2100, 3, 4, 0, 0, 0, 0, time.UTC),
	}}

	w := wire.NewWriter()
	require.NoError(t, in.Encode(w, typ))

	out := NewDate32Values()
	require.NoError(t, out.Decode(wire.NewReader(w.Bytes()), typ, len(in.Data)))
	require.Equal(t, in.Data, out.Data)
}

func TestDateTimeRoundTrip(t *testing.T) {
	typ := DateTimeType("")
	in := &DateTimeValues{Data: []time.Time{
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2038, 1, 19, 3, 14, 7, 0, time.UTC),
	}}

	w := wire.NewWriter()
	require.NoError(t, in.Encode(w, typ))

	out := NewDateTimeValues()
	require.NoError(t, out.Decode(wire.NewReader(w.Bytes()), typ, len(in.Data)))
	require.Equal(t, in.Data, out.Data)
}

func TestDateTime64RoundTrip(t *testing.T) {
	cases := []struct {
		name      string
		precision int8
		ts        time.Time
	}{
		{"nanoseconds epoch", 9, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"nanoseconds far future", 9, time.Date(2200, 5, 17, 12, 30, 45, 123456789, time.UTC)},
		{"nanoseconds pre-epoch", 9, time.Date(1969, 12, 31, 23, 59, 59, 500000000, time.UTC)},
		{"milliseconds", 3, time.Date(2024, 6, 15, 10, 20, 30, 456000000, time.UTC)},
		{"seconds", 0, time.Date(2024, 6, 15, 10, 20, 30, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			typ := DateTime64Type(tc.precision, "")
			in := &DateTime64Values{Data: []time.Time{tc.ts}}

			w := wire.NewWriter()
			require.NoError(t, in.Encode(w, typ))

			out := NewDateTime64Values()
			require.NoError(t, out.Decode(wire.NewReader(w.Bytes()), typ, len(in.Data)))
			require.True(t, tc.ts.Equal(out.Data[0]), "want %v, got %v", tc.ts, out.Data[0])
		})
	}
}

func TestDateTime64ClampsOutOfRangeOnDecode(t *testing.T) {
	// Precision 0 keeps the raw values well inside int64 range; higher
	// precisions multiply by 10^p and would overflow computing a
	// deliberately-out-of-range raw value for the far end of the clamp
	// window.
	typ := DateTime64Type(0, "")
	scale := pow10(0)

	beforeMin := dateTime64Min.Unix()*scale - scale
	afterMax := dateTime64Max.Unix()*scale + scale

	w := wire.NewWriter()
	w.Int64(beforeMin)
	w.Int64(afterMax)

	out := NewDateTime64Values()
	require.NoError(t, out.Decode(wire.NewReader(w.Bytes()), typ, 2))
	require.True(t, out.Data[0].Equal(dateTime64Min), "want clamp to %v, got %v", dateTime64Min, out.Data[0])
	require.True(t, out.Data[1].Equal(dateTime64Max), "want clamp to %v, got %v", dateTime64Max, out.Data[1])
}

func TestFloorDivMod(t *testing.T) {
	q, r := floorDivMod(-5, 3)
	require.Equal(t, int64(-2), q)
	require.Equal(t, int64(1), r)

	q, r = floorDivMod(5, 3)
	require.Equal(t, int64(1), q)
	require.Equal(t, int64(2), r)
}
