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

// Package arrowexport converts decoded result blocks into Arrow records,
// for callers that want to hand query results to Arrow-aware tooling
// (Parquet writers, pandas/polars bridges, IPC streaming) instead of
// walking column.Values directly.
package arrowexport

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/google/uuid"

	"github.com/colnative/native-go/internal/cherr"
	"github.com/colnative/native-go/internal/column"
)

// Schema derives an Arrow schema from block's column types.
func Schema(block *column.Block) (*arrow.Schema, error) {
	fields := make([]arrow.Field, len(block.Columns))
	for i, col := range block.Columns {
		dt, nullable, err := arrowType(col.Type)
		if err != nil {
			return nil, fmt.Errorf("arrowexport: column %q: %w", col.Name, err)
		}
		fields[i] = arrow.Field{Name: col.Name, Type: dt, Nullable: nullable}
	}
	return arrow.NewSchema(fields, nil), nil
}

// Export builds a single Arrow record holding every row of block. The
// caller must Release the returned record.
func Export(block *column.Block) (arrow.Record, error) {
	schema, err := Schema(block)
	if err != nil {
		return nil, err
	}

	pool := memory.NewGoAllocator()
	b := array.NewRecordBuilder(pool, schema)
	defer b.Release()

	for i, col := range block.Columns {
		if err := appendColumn(b.Field(i), col.Type, col.Values); err != nil {
			return nil, fmt.Errorf("arrowexport: column %q: %w", col.Name, err)
		}
	}
	return b.NewRecord(), nil
}

// WriteIPC streams batches to w in the Arrow IPC stream format, base64
// encoded, matching the wire framing the original ScopeDB HTTP surface
// used for its Arrow payloads.
func WriteIPC(w io.Writer, batches ...arrow.Record) (err error) {
	if len(batches) == 0 {
		return errors.New("arrowexport: cannot encode empty batches")
	}

	encoder := base64.NewEncoder(base64.StdEncoding, w)
	defer func() {
		err = errors.Join(err, encoder.Close())
	}()

	writer := ipc.NewWriter(encoder, ipc.WithSchema(batches[0].Schema()))
	defer func() {
		err = errors.Join(err, writer.Close())
	}()

	for _, batch := range batches {
		if err := writer.Write(batch); err != nil {
			return err
		}
	}
	return nil
}

// ReadIPC decodes a base64-encoded Arrow IPC stream written by WriteIPC.
// Each returned record is retained; the caller must Release them.
func ReadIPC(data []byte) ([]arrow.Record, error) {
	decoder := base64.NewDecoder(base64.StdEncoding, bytes.NewReader(data))
	reader, err := ipc.NewReader(decoder, ipc.WithDelayReadSchema(true))
	if err != nil {
		return nil, err
	}

	var batches []arrow.Record
	for reader.Next() {
		rec := reader.Record()
		rec.Retain()
		batches = append(batches, rec)
	}
	return batches, nil
}

func arrowType(t *column.Type) (arrow.DataType, bool, error) {
	switch t.Kind {
	case column.KindFloat32:
		return arrow.PrimitiveTypes.Float32, false, nil
	case column.KindFloat64:
		return arrow.PrimitiveTypes.Float64, false, nil
	case column.KindInt8:
		return arrow.PrimitiveTypes.Int8, false, nil
	case column.KindInt16:
		return arrow.PrimitiveTypes.Int16, false, nil
	case column.KindInt32:
		return arrow.PrimitiveTypes.Int32, false, nil
	case column.KindInt64:
		return arrow.PrimitiveTypes.Int64, false, nil
	case column.KindUInt8:
		return arrow.PrimitiveTypes.Uint8, false, nil
	case column.KindUInt16:
		return arrow.PrimitiveTypes.Uint16, false, nil
	case column.KindUInt32:
		return arrow.PrimitiveTypes.Uint32, false, nil
	case column.KindUInt64:
		return arrow.PrimitiveTypes.Uint64, false, nil
	case column.KindBool:
		return arrow.FixedWidthTypes.Boolean, false, nil
	case column.KindUUID, column.KindString, column.KindFixedString, column.KindEnum8, column.KindEnum16:
		return arrow.BinaryTypes.String, false, nil
	case column.KindDate, column.KindDate32:
		return arrow.FixedWidthTypes.Date32, false, nil
	case column.KindDateTime:
		return &arrow.TimestampType{Unit: arrow.Second, TimeZone: t.Timezone}, false, nil
	case column.KindDateTime64:
		return &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: t.Timezone}, false, nil
	case column.KindNullable:
		dt, _, err := arrowType(t.Elem)
		return dt, true, err
	case column.KindArray:
		elemType, elemNullable, err := arrowType(t.Elem)
		if err != nil {
			return nil, false, err
		}
		return arrow.ListOfField(arrow.Field{Name: "item", Type: elemType, Nullable: elemNullable}), false, nil
	case column.KindMap:
		return arrow.MapOf(arrow.BinaryTypes.String, arrow.BinaryTypes.String), false, nil
	default:
		return nil, false, fmt.Errorf("unsupported type %s", t.String())
	}
}

func appendColumn(fb array.Builder, t *column.Type, values column.Values) error {
	switch t.Kind {
	case column.KindNullable:
		nv, ok := values.(*column.NullableValues)
		if !ok {
			return fmt.Errorf("expected NullableValues, got %T", values)
		}
		for i, isNull := range nv.Null {
			if isNull {
				fb.AppendNull()
				continue
			}
			if err := appendScalarAt(fb, t.Elem, nv.Inner, i); err != nil {
				return err
			}
		}
		return nil
	case column.KindArray:
		av, ok := values.(*column.ArrayValues)
		if !ok {
			return fmt.Errorf("expected ArrayValues, got %T", values)
		}
		lb, ok := fb.(*array.ListBuilder)
		if !ok {
			return fmt.Errorf("expected ListBuilder, got %T", fb)
		}
		vb := lb.ValueBuilder()
		var start uint64
		for i := 0; i < av.Len(); i++ {
			lb.Append(true)
			end := av.Offsets[i]
			for j := start; j < end; j++ {
				if err := appendScalarAt(vb, t.Elem, av.Elem, int(j)); err != nil {
					return err
				}
			}
			start = end
		}
		return nil
	case column.KindMap:
		mv, ok := values.(*column.MapValues)
		if !ok {
			return fmt.Errorf("expected MapValues, got %T", values)
		}
		mb, ok := fb.(*array.MapBuilder)
		if !ok {
			return fmt.Errorf("expected MapBuilder, got %T", fb)
		}
		keyB := mb.KeyBuilder().(*array.StringBuilder)
		valB := mb.ItemBuilder().(*array.StringBuilder)
		var start uint64
		for i := 0; i < mv.Len(); i++ {
			mb.Append(true)
			end := mv.Offsets[i]
			for j := start; j < end; j++ {
				keyB.Append(mv.Keys.Data[j])
				valB.Append(mv.Vals.Data[j])
			}
			start = end
		}
		return nil
	default:
		for i := 0; i < values.Len(); i++ {
			if err := appendScalarAt(fb, t, values, i); err != nil {
				return err
			}
		}
		return nil
	}
}

// appendScalarAt appends the value at row i of values (a leaf, non
// Array/Nullable/Map kind) to fb.
func appendScalarAt(fb array.Builder, t *column.Type, values column.Values, i int) error {
	switch t.Kind {
	case column.KindFloat32:
		fb.(*array.Float32Builder).Append(values.(*column.ScalarValues[float32]).Data[i])
	case column.KindFloat64:
		fb.(*array.Float64Builder).Append(values.(*column.ScalarValues[float64]).Data[i])
	case column.KindInt8:
		fb.(*array.Int8Builder).Append(values.(*column.ScalarValues[int8]).Data[i])
	case column.KindInt16:
		fb.(*array.Int16Builder).Append(values.(*column.ScalarValues[int16]).Data[i])
	case column.KindInt32:
		fb.(*array.Int32Builder).Append(values.(*column.ScalarValues[int32]).Data[i])
	case column.KindInt64:
		fb.(*array.Int64Builder).Append(values.(*column.ScalarValues[int64]).Data[i])
	case column.KindUInt8:
		fb.(*array.Uint8Builder).Append(values.(*column.ScalarValues[uint8]).Data[i])
	case column.KindUInt16:
		fb.(*array.Uint16Builder).Append(values.(*column.ScalarValues[uint16]).Data[i])
	case column.KindUInt32:
		fb.(*array.Uint32Builder).Append(values.(*column.ScalarValues[uint32]).Data[i])
	case column.KindUInt64:
		fb.(*array.Uint64Builder).Append(values.(*column.ScalarValues[uint64]).Data[i])
	case column.KindBool:
		fb.(*array.BooleanBuilder).Append(values.(*column.ScalarValues[bool]).Data[i])
	case column.KindUUID:
		fb.(*array.StringBuilder).Append(values.(*column.ScalarValues[uuid.UUID]).Data[i].String())
	case column.KindString:
		fb.(*array.StringBuilder).Append(values.(*column.StringValues).Data[i])
	case column.KindFixedString:
		fb.(*array.StringBuilder).Append(values.(*column.FixedStringValues).Data[i])
	case column.KindEnum8, column.KindEnum16:
		fb.(*array.StringBuilder).Append(values.(*column.EnumValues).Data[i])
	case column.KindDate:
		days := int32(values.(*column.DateValues).Data[i].Unix() / secondsPerDay)
		fb.(*array.Date32Builder).Append(arrow.Date32(days))
	case column.KindDate32:
		days := int32(values.(*column.Date32Values).Data[i].Unix() / secondsPerDay)
		fb.(*array.Date32Builder).Append(arrow.Date32(days))
	case column.KindDateTime:
		secs := values.(*column.DateTimeValues).Data[i].Unix()
		fb.(*array.TimestampBuilder).Append(arrow.Timestamp(secs))
	case column.KindDateTime64:
		nanos := values.(*column.DateTime64Values).Data[i].UnixNano()
		fb.(*array.TimestampBuilder).Append(arrow.Timestamp(nanos))
	default:
		return cherr.NewDataTypeError(fmt.Sprintf("arrowexport: unsupported element type %s", t.String()))
	}
	return nil
}

const secondsPerDay = 24 * 60 * 60
