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

package protocol

import (
	"fmt"
	"strings"

	"github.com/colnative/native-go/internal/cherr"
	"github.com/colnative/native-go/internal/column"
	"github.com/colnative/native-go/internal/proto"
)

// Machine is the per-connection protocol state machine. It has no
// knowledge of sockets or timers: callers feed it commands and inbound
// frames, and it returns the bytes to write and the Event, if any, to
// surface. All methods are meant to run on a single connection's event
// loop; Machine itself does no locking.
type Machine struct {
	state    State
	revision uint64
}

// NewMachine returns a Machine in NotConnected.
func NewMachine() *Machine {
	return &Machine{state: NotConnected{}}
}

// State returns the machine's current state.
func (m *Machine) State() State { return m.state }

// Revision returns the negotiated server revision, or 0 before the
// handshake completes.
func (m *Machine) Revision() uint64 { return m.revision }

func usage(msg string) error { return cherr.NewUsageError(cherr.ConnectionNotReady, msg) }

// Connect writes the handshake frame. Valid only from NotConnected.
func (m *Machine) Connect(clientName, database, user, password string) ([]byte, error) {
	if _, ok := m.state.(NotConnected); !ok {
		return nil, usage("Connect is only valid before the handshake")
	}
	m.state = Connecting{}
	return proto.EncodeHello(clientName, database, user, password), nil
}

func (m *Machine) requireReady(command string) error {
	if _, ok := m.state.(Ready); !ok {
		return usage(fmt.Sprintf("%s is only valid when the connection is ready", command))
	}
	return nil
}

// Query writes a Query frame and starts accumulating result blocks.
// Valid only from Ready.
func (m *Machine) Query(queryID, clientName, sql string) ([]byte, error) {
	if err := m.requireReady("Query"); err != nil {
		return nil, err
	}
	b, err := proto.EncodeQuery(m.revision, queryID, clientName, sql)
	if err != nil {
		return nil, err
	}
	m.state = AwaitingQueryResult{}
	return b, nil
}

// Command writes a Query frame whose result is discarded, only waiting
// for confirmation of execution. Valid only from Ready.
func (m *Machine) Command(queryID, clientName, sql string) ([]byte, error) {
	if err := m.requireReady("Command"); err != nil {
		return nil, err
	}
	b, err := proto.EncodeQuery(m.revision, queryID, clientName, sql)
	if err != nil {
		return nil, err
	}
	m.state = AwaitingQueryConfirmation{}
	return b, nil
}

// Insert writes an "INSERT INTO table (cols…) VALUES" Query frame and
// waits for the server to declare the target schema before the row data
// itself can be sent. Valid only from Ready.
func (m *Machine) Insert(queryID, clientName, table string, cols []column.Column) ([]byte, error) {
	if err := m.requireReady("Insert"); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, usage("Insert requires at least one column")
	}
	sql := buildInsertSQL(table, cols)
	b, err := proto.EncodeQuery(m.revision, queryID, clientName, sql)
	if err != nil {
		return nil, err
	}
	m.state = AwaitingToSendData{Table: table, Columns: cols}
	return b, nil
}

// Ping writes a Ping frame. Valid only from Ready.
func (m *Machine) Ping() ([]byte, error) {
	if err := m.requireReady("Ping"); err != nil {
		return nil, err
	}
	m.state = AwaitingPong{}
	return proto.EncodePing(), nil
}

func buildInsertSQL(table string, cols []column.Column) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = quoteIdent(c.Name)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES", quoteIdent(table), strings.Join(names, ", "))
}

func quoteIdent(s string) string {
	var b strings.Builder
	b.WriteByte('`')
	for _, c := range s {
		if c == '`' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	b.WriteByte('`')
	return b.String()
}

// Advance feeds one inbound frame to the machine. It returns the Event
// to surface (nil if the frame only updates internal bookkeeping) and
// any bytes the machine needs written back (only non-nil while
// AwaitingToSendData receives the server's schema block).
func (m *Machine) Advance(frame proto.Frame) (Event, []byte, error) {
	if _, ok := m.state.(Closed); ok {
		return nil, nil, nil
	}

	if exc, ok := frame.(*proto.Exception); ok {
		if _, notConnected := m.state.(NotConnected); notConnected {
			return nil, nil, nil
		}
		m.state = Ready{}
		return EventError{Err: exc}, nil, nil
	}

	switch st := m.state.(type) {
	case Connecting:
		info, ok := frame.(proto.ServerInfo)
		if !ok {
			return nil, nil, cherr.NewProtocolError("expected ServerInfo during handshake")
		}
		m.revision = info.Revision
		m.state = Ready{}
		return EventServerInfo{Info: info}, nil, nil

	case AwaitingQueryResult:
		switch f := frame.(type) {
		case proto.Progress, proto.ProfileInfo:
			return nil, nil, nil
		case proto.DataFrame:
			if len(f.Block.Columns) == 0 {
				result, err := column.Merge(st.Blocks)
				if err != nil {
					return nil, nil, err
				}
				m.state = AwaitingQueryResultEndOfStream{Result: result}
				return nil, nil, nil
			}
			m.state = AwaitingQueryResult{Blocks: append(st.Blocks, f.Block)}
			return nil, nil, nil
		default:
			return nil, nil, cherr.NewProtocolError("unexpected frame while awaiting query result")
		}

	case AwaitingQueryResultEndOfStream:
		switch frame.(type) {
		case proto.Progress:
			return nil, nil, nil
		case proto.EndOfStream:
			m.state = Ready{}
			return EventResult{Result: st.Result}, nil, nil
		default:
			return nil, nil, cherr.NewProtocolError("unexpected frame while awaiting end of stream")
		}

	case AwaitingToSendData:
		df, ok := frame.(proto.DataFrame)
		if !ok {
			return nil, nil, cherr.NewProtocolError("expected the target schema Data frame during insert")
		}
		out, err := m.encodeInsertRows(st, df.Block)
		if err != nil {
			return nil, nil, err
		}
		m.state = AwaitingQueryConfirmation{}
		return nil, out, nil

	case AwaitingQueryConfirmation:
		switch frame.(type) {
		case proto.Progress, proto.ProfileInfo, proto.DataFrame:
			return nil, nil, nil
		case proto.EndOfStream:
			m.state = Ready{}
			return EventExecuted{}, nil, nil
		default:
			return nil, nil, cherr.NewProtocolError("unexpected frame while awaiting confirmation")
		}

	case AwaitingPong:
		if _, ok := frame.(proto.Pong); ok {
			m.state = Ready{}
			return EventPong{}, nil, nil
		}
		return nil, nil, cherr.NewProtocolError("expected Pong")

	default:
		// Ready, NotConnected: no inbound frame is expected here.
		return nil, nil, cherr.NewProtocolError("unexpected frame")
	}
}

// encodeInsertRows validates the server-declared schema against the
// pending columns, attaches the server's type descriptors, and encodes
// the row data block followed by the empty end-of-data block.
func (m *Machine) encodeInsertRows(pending AwaitingToSendData, schema *column.Block) ([]byte, error) {
	if len(schema.Columns) != len(pending.Columns) {
		return nil, cherr.NewDataTypeError(fmt.Sprintf(
			"server declared %d columns for insert, client supplied %d", len(schema.Columns), len(pending.Columns)))
	}

	typed := make([]column.Column, len(pending.Columns))
	for i, want := range pending.Columns {
		got := schema.Columns[i]
		if got.Name != want.Name {
			return nil, cherr.NewDataTypeError(fmt.Sprintf(
				"server declared column %d as %q, client supplied %q", i, got.Name, want.Name))
		}
		typed[i] = column.Column{Name: want.Name, Type: got.Type, Values: want.Values}
	}
	rowBlock := &column.Block{Columns: typed}

	rows, err := proto.EncodeDataBlock(m.revision, pending.Table, rowBlock)
	if err != nil {
		return nil, err
	}
	end, err := proto.EncodeEndOfData(m.revision)
	if err != nil {
		return nil, err
	}
	return append(rows, end...), nil
}

// ForceClosed transitions the machine to Closed regardless of its
// current state, used when a timeout or transport error tears down the
// connection out of band.
func (m *Machine) ForceClosed() { m.state = Closed{} }
