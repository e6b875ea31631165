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

// Package column implements the recursive columnar type grammar used by
// the wire protocol: a textual type descriptor grammar identical to the
// server's own ("Nullable(UInt32)", "Array(Enum8('hi' = -1, 'bye' = 5))",
// "Map(String, String)", "DateTime64(3, 'GMT')"), a polymorphic Values
// container per scalar/composite kind, and per-type wire encode/decode.
package column

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind tags the variant of a Type. Array, Nullable and Map are the only
// recursive variants; every other Kind is a leaf.
type Kind int

const (
	KindFloat32 Kind = iota
	KindFloat64
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindUUID
	KindString
	KindFixedString
	KindBool
	KindDate
	KindDate32
	KindDateTime
	KindDateTime64
	KindEnum8
	KindEnum16
	KindArray
	KindNullable
	KindMap
)

// Type is a recursive tagged type descriptor. Only the fields relevant to
// Kind are populated; the rest are zero.
type Type struct {
	Kind Kind

	// FixedLen is the declared byte length of FixedString.
	FixedLen int

	// Timezone is the optional IANA/abbreviated timezone name attached to
	// DateTime and DateTime64.
	Timezone string

	// Precision is the DateTime64 fractional-second digit count.
	Precision int8

	// EnumNames/EnumCodes give the enum's declaration order and each
	// name's mapped code (int8 range for Enum8, int16 range for Enum16).
	// Kept as parallel slices instead of a map so textual formatting can
	// reproduce a stable order.
	EnumNames []string
	EnumCodes []int16

	// Elem is the element type for Array and the wrapped type for
	// Nullable.
	Elem *Type

	// Key and Value are always String for Map in this protocol subset,
	// but are represented generically for symmetry with the grammar.
	Key   *Type
	Value *Type
}

// Simple type constructors for the non-recursive scalar kinds.
func Float32Type() *Type { return &Type{Kind: KindFloat32} }
func Float64Type() *Type { return &Type{Kind: KindFloat64} }
func Int8Type() *Type    { return &Type{Kind: KindInt8} }
func Int16Type() *Type   { return &Type{Kind: KindInt16} }
func Int32Type() *Type   { return &Type{Kind: KindInt32} }
func Int64Type() *Type   { return &Type{Kind: KindInt64} }
func UInt8Type() *Type   { return &Type{Kind: KindUInt8} }
func UInt16Type() *Type  { return &Type{Kind: KindUInt16} }
func UInt32Type() *Type  { return &Type{Kind: KindUInt32} }
func UInt64Type() *Type  { return &Type{Kind: KindUInt64} }
func UUIDType() *Type    { return &Type{Kind: KindUUID} }
func StringType() *Type  { return &Type{Kind: KindString} }
func BoolType() *Type    { return &Type{Kind: KindBool} }
func DateType() *Type    { return &Type{Kind: KindDate} }
func Date32Type() *Type  { return &Type{Kind: KindDate32} }

func FixedStringType(n int) *Type { return &Type{Kind: KindFixedString, FixedLen: n} }
func DateTimeType(tz string) *Type {
	return &Type{Kind: KindDateTime, Timezone: tz}
}
func DateTime64Type(precision int8, tz string) *Type {
	return &Type{Kind: KindDateTime64, Precision: precision, Timezone: tz}
}
func ArrayType(elem *Type) *Type    { return &Type{Kind: KindArray, Elem: elem} }
func NullableType(elem *Type) *Type { return &Type{Kind: KindNullable, Elem: elem} }
func MapType(key, value *Type) *Type {
	return &Type{Kind: KindMap, Key: key, Value: value}
}
func Enum8Type(names []string, codes []int16) *Type {
	return &Type{Kind: KindEnum8, EnumNames: names, EnumCodes: codes}
}
func Enum16Type(names []string, codes []int16) *Type {
	return &Type{Kind: KindEnum16, EnumNames: names, EnumCodes: codes}
}

// Validate enforces the invariants from the data model: Nullable is never
// nested inside Nullable, and Array/Map never contain Nullable.
func (t *Type) Validate() error {
	return t.validate(false)
}

func (t *Type) validate(insideNullable bool) error {
	switch t.Kind {
	case KindNullable:
		if insideNullable {
			return fmt.Errorf("column: Nullable cannot be nested inside Nullable")
		}
		if t.Elem.Kind == KindArray || t.Elem.Kind == KindMap {
			// Nullable(Array(...)) and Nullable(Map(...)) are accepted;
			// only the elements of Array/Map may not be Nullable.
			return t.Elem.validate(false)
		}
		return t.Elem.validate(true)
	case KindArray:
		if t.Elem.Kind == KindNullable {
			return fmt.Errorf("column: Array cannot contain Nullable")
		}
		return t.Elem.validate(false)
	case KindMap:
		if t.Key.Kind != KindString || t.Value.Kind != KindString {
			return fmt.Errorf("column: Map supports only (String, String)")
		}
		if t.Value.Kind == KindNullable {
			return fmt.Errorf("column: Map cannot contain Nullable")
		}
		return nil
	default:
		return nil
	}
}

// String formats t using the same textual grammar the server emits.
func (t *Type) String() string {
	switch t.Kind {
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindInt8:
		return "Int8"
	case KindInt16:
		return "Int16"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindUInt8:
		return "UInt8"
	case KindUInt16:
		return "UInt16"
	case KindUInt32:
		return "UInt32"
	case KindUInt64:
		return "UInt64"
	case KindUUID:
		return "UUID"
	case KindString:
		return "String"
	case KindFixedString:
		return fmt.Sprintf("FixedString(%d)", t.FixedLen)
	case KindBool:
		return "Bool"
	case KindDate:
		return "Date"
	case KindDate32:
		return "Date32"
	case KindDateTime:
		if t.Timezone == "" {
			return "DateTime"
		}
		return fmt.Sprintf("DateTime('%s')", t.Timezone)
	case KindDateTime64:
		if t.Timezone == "" {
			return fmt.Sprintf("DateTime64(%d)", t.Precision)
		}
		return fmt.Sprintf("DateTime64(%d, '%s')", t.Precision, t.Timezone)
	case KindEnum8:
		return formatEnum("Enum8", t.EnumNames, t.EnumCodes)
	case KindEnum16:
		return formatEnum("Enum16", t.EnumNames, t.EnumCodes)
	case KindArray:
		return fmt.Sprintf("Array(%s)", t.Elem.String())
	case KindNullable:
		return fmt.Sprintf("Nullable(%s)", t.Elem.String())
	case KindMap:
		return fmt.Sprintf("Map(%s, %s)", t.Key.String(), t.Value.String())
	default:
		return "Unknown"
	}
}

func formatEnum(name string, names []string, codes []int16) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, n := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "'%s' = %d", n, codes[i])
	}
	b.WriteByte(')')
	return b.String()
}

// CodeForName looks up the wire code for an enum value name, in
// declaration order. Encoding a name absent from the map is an
// implementation error.
func (t *Type) CodeForName(name string) (int16, error) {
	for i, n := range t.EnumNames {
		if n == name {
			return t.EnumCodes[i], nil
		}
	}
	return 0, fmt.Errorf("column: enum name %q is not declared in %s", name, t.String())
}

// NameForCode inverts CodeForName.
func (t *Type) NameForCode(code int16) (string, error) {
	for i, c := range t.EnumCodes {
		if c == code {
			return t.EnumNames[i], nil
		}
	}
	return "", fmt.Errorf("column: enum code %d has no matching name in %s", code, t.String())
}

// Parse parses a textual type descriptor into a Type, following the same
// prefix grammar the server uses. The longest matching prefix wins, so
// e.g. "DateTime64(" is tried before "DateTime(".
func Parse(s string) (*Type, error) {
	t, rest, err := parsePrefix(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rest) != "" {
		return nil, fmt.Errorf("column: unexpected trailing input %q", rest)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// prefixes is ordered so a longer, more specific prefix is tried before a
// shorter one that would otherwise shadow it (e.g. DateTime64 before
// DateTime).
var prefixes = []struct {
	prefix string
	kind   Kind
}{
	{"Nullable(", KindNullable},
	{"Array(", KindArray},
	{"Map(", KindMap},
	{"FixedString(", KindFixedString},
	{"DateTime64(", KindDateTime64},
	{"DateTime(", KindDateTime},
	{"Enum8(", KindEnum8},
	{"Enum16(", KindEnum16},
}

var leaves = map[string]Kind{
	"Float32": KindFloat32,
	"Float64": KindFloat64,
	"Int8":    KindInt8,
	"Int16":   KindInt16,
	"Int32":   KindInt32,
	"Int64":   KindInt64,
	"UInt8":   KindUInt8,
	"UInt16":  KindUInt16,
	"UInt32":  KindUInt32,
	"UInt64":  KindUInt64,
	"UUID":    KindUUID,
	"String":  KindString,
	"Bool":    KindBool,
	"Date32":  KindDate32,
	"Date":    KindDate,
	"DateTime": KindDateTime,
}

func parsePrefix(s string) (*Type, string, error) {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p.prefix) {
			inner, rest, err := splitParen(s[len(p.prefix)-1:])
			if err != nil {
				return nil, "", err
			}
			t, err := buildFromInner(p.kind, inner)
			if err != nil {
				return nil, "", err
			}
			return t, rest, nil
		}
	}
	// Leaves, longest match first so "DateTime" doesn't shadow nothing
	// (it's not a prefix of any other leaf here, but Date/Date32 need
	// the same care).
	names := make([]string, 0, len(leaves))
	for n := range leaves {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	for _, n := range names {
		if strings.HasPrefix(s, n) {
			return &Type{Kind: leaves[n]}, s[len(n):], nil
		}
	}
	return nil, "", fmt.Errorf("column: cannot parse type descriptor %q", s)
}

// splitParen expects s to start with '(' and returns the contents of the
// balanced parenthesised group and whatever trails it.
func splitParen(s string) (inner, rest string, err error) {
	if len(s) == 0 || s[0] != '(' {
		return "", "", fmt.Errorf("column: expected '(' in %q", s)
	}
	depth := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' && (i == 0 || s[i-1] != '\\'):
			inQuote = !inQuote
		case inQuote:
			// skip
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], nil
			}
		}
	}
	return "", "", fmt.Errorf("column: unbalanced parentheses in %q", s)
}

func buildFromInner(kind Kind, inner string) (*Type, error) {
	switch kind {
	case KindNullable:
		elem, rest, err := parsePrefix(strings.TrimSpace(inner))
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(rest) != "" {
			return nil, fmt.Errorf("column: unexpected trailing input %q in Nullable(...)", rest)
		}
		return &Type{Kind: KindNullable, Elem: elem}, nil
	case KindArray:
		elem, rest, err := parsePrefix(strings.TrimSpace(inner))
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(rest) != "" {
			return nil, fmt.Errorf("column: unexpected trailing input %q in Array(...)", rest)
		}
		if elem.Kind == KindNullable {
			return nil, fmt.Errorf("column: Array(Nullable(...)) is not supported")
		}
		return &Type{Kind: KindArray, Elem: elem}, nil
	case KindMap:
		parts := splitTopLevelComma(inner)
		if len(parts) != 2 {
			return nil, fmt.Errorf("column: Map(...) requires exactly two type arguments, got %q", inner)
		}
		key, keyRest, err := parsePrefix(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(keyRest) != "" || key.Kind != KindString {
			return nil, fmt.Errorf("column: Map key must be String")
		}
		value, valRest, err := parsePrefix(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(valRest) != "" || value.Kind != KindString {
			return nil, fmt.Errorf("column: Map value must be String")
		}
		return &Type{Kind: KindMap, Key: key, Value: value}, nil
	case KindFixedString:
		n, err := strconv.Atoi(strings.TrimSpace(inner))
		if err != nil {
			return nil, fmt.Errorf("column: invalid FixedString length %q: %w", inner, err)
		}
		return &Type{Kind: KindFixedString, FixedLen: n}, nil
	case KindDateTime64:
		parts := splitTopLevelComma(inner)
		p, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("column: invalid DateTime64 precision %q: %w", parts[0], err)
		}
		tz := ""
		if len(parts) > 1 {
			tz, err = parseQuotedString(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, err
			}
		}
		return &Type{Kind: KindDateTime64, Precision: int8(p), Timezone: tz}, nil
	case KindDateTime:
		tz, err := parseQuotedString(strings.TrimSpace(inner))
		if err != nil {
			return nil, err
		}
		return &Type{Kind: KindDateTime, Timezone: tz}, nil
	case KindEnum8, KindEnum16:
		names, codes, err := parseEnumBody(inner)
		if err != nil {
			return nil, err
		}
		return &Type{Kind: kind, EnumNames: names, EnumCodes: codes}, nil
	default:
		return nil, fmt.Errorf("column: unsupported composite kind %v", kind)
	}
}

func parseQuotedString(s string) (string, error) {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return "", fmt.Errorf("column: expected quoted string, got %q", s)
	}
	return s[1 : len(s)-1], nil
}

func splitTopLevelComma(s string) []string {
	var parts []string
	depth := 0
	inQuote := false
	last := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' && (i == 0 || s[i-1] != '\\'):
			inQuote = !inQuote
		case inQuote:
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// parseEnumBody parses tokens of the form 'name' = N, comma separated.
func parseEnumBody(s string) (names []string, codes []int16, err error) {
	for _, tok := range splitTopLevelComma(s) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		eq := strings.LastIndexByte(tok, '=')
		if eq < 0 {
			return nil, nil, fmt.Errorf("column: invalid enum entry %q", tok)
		}
		name, err := parseQuotedString(strings.TrimSpace(tok[:eq]))
		if err != nil {
			return nil, nil, err
		}
		code, err := strconv.ParseInt(strings.TrimSpace(tok[eq+1:]), 10, 16)
		if err != nil {
			return nil, nil, fmt.Errorf("column: invalid enum code in %q: %w", tok, err)
		}
		names = append(names, name)
		codes = append(codes, int16(code))
	}
	return names, codes, nil
}
