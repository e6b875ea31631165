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

import "fmt"

// NewValues returns an empty container of the concrete Values
// implementation matching t.Kind, ready for Decode to populate.
func NewValues(t *Type) Values {
	switch t.Kind {
	case KindFloat32:
		return NewFloat32Values()
	case KindFloat64:
		return NewFloat64Values()
	case KindInt8:
		return NewInt8Values()
	case KindInt16:
		return NewInt16Values()
	case KindInt32:
		return NewInt32Values()
	case KindInt64:
		return NewInt64Values()
	case KindUInt8:
		return NewUInt8Values()
	case KindUInt16:
		return NewUInt16Values()
	case KindUInt32:
		return NewUInt32Values()
	case KindUInt64:
		return NewUInt64Values()
	case KindBool:
		return NewBoolValues()
	case KindUUID:
		return NewUUIDValues()
	case KindString:
		return NewStringValues()
	case KindFixedString:
		return NewFixedStringValues()
	case KindDate:
		return NewDateValues()
	case KindDate32:
		return NewDate32Values()
	case KindDateTime:
		return NewDateTimeValues()
	case KindDateTime64:
		return NewDateTime64Values()
	case KindEnum8, KindEnum16:
		return NewEnumValues()
	case KindArray:
		return NewArrayValues(NewValues(t.Elem))
	case KindNullable:
		return NewNullableValues(NewValues(t.Elem))
	case KindMap:
		return NewMapValues()
	default:
		panic(fmt.Sprintf("column: unhandled kind %v", t.Kind))
	}
}
