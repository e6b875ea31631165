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
	"github.com/colnative/native-go/internal/column"
	"github.com/colnative/native-go/internal/proto"
)

// Event is what an inbound frame produces for the caller once the
// machine has finished updating its own State. A frame that only
// changes internal bookkeeping (Progress, ProfileInfo, an accumulating
// Data block) produces no Event.
type Event interface {
	event()
}

// EventServerInfo surfaces the handshake response.
type EventServerInfo struct {
	Info proto.ServerInfo
}

func (EventServerInfo) event() {}

// EventError surfaces a non-fatal server exception; the connection
// returns to Ready and remains usable.
type EventError struct {
	Err *proto.Exception
}

func (EventError) event() {}

// EventResult surfaces a finished query's merged result.
type EventResult struct {
	Result *column.Block
}

func (EventResult) event() {}

// EventExecuted surfaces a finished Command or Insert.
type EventExecuted struct{}

func (EventExecuted) event() {}

// EventPong surfaces a Ping's answer.
type EventPong struct{}

func (EventPong) event() {}
