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

import "github.com/colnative/native-go/internal/column"

// Frame is the tagged union of everything the server can send. Each
// concrete type below implements frame() as a marker so only this
// package's types satisfy the interface.
type Frame interface {
	frame()
}

// ServerInfo is decoded from the Hello response and establishes the
// connection's negotiated revision.
type ServerInfo struct {
	Name         string
	VersionMajor uint64
	VersionMinor uint64
	Revision     uint64
	Timezone     string
}

func (ServerInfo) frame() {}

// DataFrame carries a Block from server to client (or the reverse
// direction's echo of the target schema during an insert).
type DataFrame struct {
	Block *column.Block
}

func (DataFrame) frame() {}

// Exception is a decoded server exception with an optional single nested
// cause.
type Exception struct {
	Code       uint32
	Name       string
	Message    string
	StackTrace string
	Nested     *Exception
}

func (*Exception) frame() {}

func (e *Exception) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Name + ": " + e.Message
	if e.Nested != nil {
		msg += ": " + e.Nested.Error()
	}
	return msg
}

// Progress reports rows/bytes read so far, with an optional total once
// the server negotiates RevisionWithTotalRowsInProgress.
type Progress struct {
	Rows      uint64
	Bytes     uint64
	TotalRows uint64
	HasTotal  bool
}

func (Progress) frame() {}

// ProfileInfo summarizes the result set the server just produced.
type ProfileInfo struct {
	Rows                uint64
	Blocks              uint64
	Bytes               uint64
	AppliedLimit        int8
	RowsBeforeLimit     uint64
	CalculatedRowsBeforeLimit int8
}

func (ProfileInfo) frame() {}

// Pong answers a Ping.
type Pong struct{}

func (Pong) frame() {}

// EndOfStream marks the end of a query's or command's response.
type EndOfStream struct{}

func (EndOfStream) frame() {}
