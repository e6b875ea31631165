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

// EnumValues holds Enum8/Enum16 columns as their string names; the wire
// payload is a plain integer array of the mapped codes. Width (i8 vs i16)
// is decided by the column's Type.Kind.
type EnumValues struct {
	Data []string
}

func NewEnumValues() *EnumValues { return &EnumValues{} }

func (v *EnumValues) Len() int { return len(v.Data) }

func (v *EnumValues) Merge(other Values) (Values, error) {
	o, ok := other.(*EnumValues)
	if !ok {
		return nil, fmt.Errorf("column: cannot merge %T with %T", v, other)
	}
	return &EnumValues{Data: append(append([]string{}, v.Data...), o.Data...)}, nil
}

func (v *EnumValues) Encode(w *wire.Writer, t *Type) error {
	for _, name := range v.Data {
		code, err := t.CodeForName(name)
		if err != nil {
			return err
		}
		switch t.Kind {
		case KindEnum8:
			w.Int8(int8(code))
		case KindEnum16:
			w.Int16(code)
		default:
			return fmt.Errorf("column: EnumValues used with non-enum type %s", t.String())
		}
	}
	return nil
}

func (v *EnumValues) Decode(r *wire.Reader, t *Type, rows int) error {
	v.Data = make([]string, rows)
	for i := 0; i < rows; i++ {
		var code int16
		switch t.Kind {
		case KindEnum8:
			c, err := r.Int8()
			if err != nil {
				return err
			}
			code = int16(c)
		case KindEnum16:
			c, err := r.Int16()
			if err != nil {
				return err
			}
			code = c
		default:
			return fmt.Errorf("column: EnumValues used with non-enum type %s", t.String())
		}
		name, err := t.NameForCode(code)
		if err != nil {
			return err
		}
		v.Data[i] = name
	}
	return nil
}
