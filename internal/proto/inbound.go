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

package proto

import (
	"errors"

	"github.com/colnative/native-go/internal/cherr"
	"github.com/colnative/native-go/internal/wire"
)

// Decoder is a byte-to-message decoder: it buffers bytes as they arrive
// and, on each Decode call, speculatively parses the next frame from a
// fresh Reader over the buffered bytes. The buffer is only trimmed once
// the whole frame parses successfully, so a partial payload (an
// ErrNeedMoreData part way through, e.g. mid-column) leaves it untouched
// for the next Feed/Decode round.
type Decoder struct {
	buf      []byte
	revision uint64
}

// NewDecoder returns a Decoder with no negotiated revision yet; the
// caller must call SetRevision once the Hello response is processed, or
// every revision gate is treated as not-yet-reached.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// SetRevision records the server's negotiated protocol revision, which
// gates optional fields on Progress and Data frames from this point on.
func (d *Decoder) SetRevision(revision uint64) { d.revision = revision }

// Feed appends newly read bytes to the decoder's internal buffer.
func (d *Decoder) Feed(b []byte) {
	d.buf = append(d.buf, b...)
}

// Pending reports whether there is buffered data left after the last
// successful Decode, e.g. because the server left debris after a
// rejected query.
func (d *Decoder) Pending() bool { return len(d.buf) > 0 }

// Reset discards any buffered, undecoded bytes.
func (d *Decoder) Reset() { d.buf = nil }

// Decode attempts to parse the next frame from the buffered bytes. It
// returns wire.ErrNeedMoreData if the buffer holds a valid but
// incomplete prefix, or a *cherr.ProtocolError for anything
// unrecoverable (unknown opcode, corrupted varint, unimplemented
// Totals/Extremes).
func (d *Decoder) Decode() (Frame, error) {
	cursor := wire.NewReader(d.buf)
	opcode, err := cursor.Uvarint()
	if err != nil {
		return nil, corruptedAsProtocolError(err)
	}

	frame, err := d.decodeBody(cursor, opcode)
	if err != nil {
		return nil, corruptedAsProtocolError(err)
	}

	d.buf = d.buf[cursor.Pos():]
	return frame, nil
}

// corruptedAsProtocolError wraps wire.ErrVarintCorrupted in a
// *cherr.ProtocolError and returns every other error unchanged.
func corruptedAsProtocolError(err error) error {
	if errors.Is(err, wire.ErrVarintCorrupted) {
		return cherr.WrapProtocolError("corrupted varint", err)
	}
	return err
}

func (d *Decoder) decodeBody(r *wire.Reader, opcode uint64) (Frame, error) {
	switch opcode {
	case OpServerHello:
		return decodeServerInfo(r)
	case OpServerData:
		block, err := decodeDataBlockBody(r, d.revision)
		if err != nil {
			return nil, err
		}
		return DataFrame{Block: block}, nil
	case OpServerException:
		return decodeException(r)
	case OpServerProgress:
		return decodeProgress(r, d.revision)
	case OpServerPong:
		return Pong{}, nil
	case OpServerEndOfStream:
		return EndOfStream{}, nil
	case OpServerProfileInfo:
		return decodeProfileInfo(r)
	case OpServerTotals, OpServerExtremes:
		return nil, cherr.NewProtocolError("Totals/Extremes result blocks are not implemented")
	default:
		return nil, cherr.NewProtocolError("unknown server opcode")
	}
}

func decodeServerInfo(r *wire.Reader) (Frame, error) {
	name, err := r.String()
	if err != nil {
		return nil, err
	}
	major, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	minor, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	revision, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	info := ServerInfo{Name: name, VersionMajor: major, VersionMinor: minor, Revision: revision}
	if revision >= RevisionWithServerTimezone {
		tz, err := r.String()
		if err != nil {
			return nil, err
		}
		info.Timezone = tz
	}
	return info, nil
}

func decodeException(r *wire.Reader) (Frame, error) {
	e, err := decodeOneException(r)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func decodeOneException(r *wire.Reader) (*Exception, error) {
	code, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	name, err := r.String()
	if err != nil {
		return nil, err
	}
	message, err := r.String()
	if err != nil {
		return nil, err
	}
	stack, err := r.String()
	if err != nil {
		return nil, err
	}
	hasNested, err := r.Uint8()
	if err != nil {
		return nil, err
	}
	e := &Exception{Code: code, Name: name, Message: message, StackTrace: stack}
	if hasNested != 0 {
		nested, err := decodeOneException(r)
		if err != nil {
			return nil, err
		}
		e.Nested = nested
	}
	return e, nil
}

func decodeProgress(r *wire.Reader, revision uint64) (Frame, error) {
	rows, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	bytes, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	p := Progress{Rows: rows, Bytes: bytes}
	if revision >= RevisionWithTotalRowsInProgress {
		total, err := r.Uvarint()
		if err != nil {
			return nil, err
		}
		p.TotalRows = total
		p.HasTotal = true
	}
	return p, nil
}

func decodeProfileInfo(r *wire.Reader) (Frame, error) {
	rows, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	blocks, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	bytes, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	appliedLimit, err := r.Int8()
	if err != nil {
		return nil, err
	}
	rowsBeforeLimit, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	calculated, err := r.Int8()
	if err != nil {
		return nil, err
	}
	return ProfileInfo{
		Rows:                      rows,
		Blocks:                    blocks,
		Bytes:                     bytes,
		AppliedLimit:              appliedLimit,
		RowsBeforeLimit:           rowsBeforeLimit,
		CalculatedRowsBeforeLimit: calculated,
	}, nil
}
