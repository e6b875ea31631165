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

// Package protocol implements the connection-level state machine: it
// turns outbound commands (Connect, Query, Command, Insert, Ping) into
// wire bytes via package proto, and turns inbound proto.Frame values
// into state transitions plus the Event a caller should surface.
package protocol

import "github.com/colnative/native-go/internal/column"

// State is the tagged union of connection states. Every state is an
// exported type so callers can type-assert to inspect it, matching how
// package proto exposes Frame.
type State interface {
	state()
}

// NotConnected is the state before Connect is called.
type NotConnected struct{}

func (NotConnected) state() {}

// Connecting is entered by Connect and left once ServerInfo arrives.
type Connecting struct{}

func (Connecting) state() {}

// Ready is the idle state between commands.
type Ready struct{}

func (Ready) state() {}

// AwaitingQueryResult accumulates data blocks for a running Query until
// the server signals end of the result set with a zero-column Data.
type AwaitingQueryResult struct {
	Blocks []*column.Block
}

func (AwaitingQueryResult) state() {}

// AwaitingQueryResultEndOfStream holds the merged result, waiting only
// for the terminal EndOfStream frame.
type AwaitingQueryResultEndOfStream struct {
	Result *column.Block
}

func (AwaitingQueryResultEndOfStream) state() {}

// AwaitingToSendData holds the table name and user-supplied columns of
// an in-flight Insert, waiting for the server to declare the target
// schema before the row data can be sent.
type AwaitingToSendData struct {
	Table   string
	Columns []column.Column
}

func (AwaitingToSendData) state() {}

// AwaitingQueryConfirmation is entered once an Insert's row data (and
// trailing empty block) has been sent, or once a Command's Query frame
// has been sent; both wait for a bare EndOfStream.
type AwaitingQueryConfirmation struct{}

func (AwaitingQueryConfirmation) state() {}

// AwaitingPong is entered by Ping and left by the matching Pong.
type AwaitingPong struct{}

func (AwaitingPong) state() {}

// Closed is terminal: every inbound frame is dropped and every outbound
// command is rejected.
type Closed struct{}

func (Closed) state() {}
