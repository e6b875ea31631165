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

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

func TestParseFormatRoundTrip(t *testing.T) {
	cases := []string{
		"Float32",
		"Float64",
		"Int8",
		"UInt64",
		"UUID",
		"String",
		"FixedString(7)",
		"Bool",
		"Date",
		"Date32",
		"DateTime",
		"DateTime('GMT')",
		"DateTime64(3)",
		"DateTime64(3, 'GMT')",
		"Nullable(UInt32)",
		"Array(Int32)",
		"Array(Enum8('hi' = -1, 'bye' = 5))",
		"Map(String, String)",
		"Nullable(Array(String))",
	}
	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			typ, err := Parse(s)
			require.NoError(t, err, s)
			require.Equal(t, s, typ.String(), s)
			snaps.MatchSnapshot(t, typ)
		})
	}
}

func TestParseRejectsArrayOfNullable(t *testing.T) {
	_, err := Parse("Array(Nullable(UInt32))")
	require.Error(t, err)
}

func TestParseRejectsNestedNullable(t *testing.T) {
	_, err := Parse("Nullable(Nullable(UInt32))")
	require.Error(t, err)
}

func TestParseAcceptsNullableOfArray(t *testing.T) {
	typ, err := Parse("Nullable(Array(String))")
	require.NoError(t, err)
	require.Equal(t, KindNullable, typ.Kind)
	require.Equal(t, KindArray, typ.Elem.Kind)
}

func TestParseMapRejectsNonStringValue(t *testing.T) {
	_, err := Parse("Map(String, Int32)")
	require.Error(t, err)
}

func TestEnumCodeLookup(t *testing.T) {
	typ, err := Parse("Enum8('hi' = -1, 'bye' = 5)")
	require.NoError(t, err)

	code, err := typ.CodeForName("hi")
	require.NoError(t, err)
	require.EqualValues(t, -1, code)

	name, err := typ.NameForCode(5)
	require.NoError(t, err)
	require.Equal(t, "bye", name)

	_, err = typ.CodeForName("nope")
	require.Error(t, err)
}
