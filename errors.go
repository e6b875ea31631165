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

package native

import (
	"github.com/colnative/native-go/internal/cherr"
	"github.com/colnative/native-go/internal/proto"
)

// ProtocolError means the byte stream itself is no longer
// interpretable. The connection that produced it is always already
// closed by the time it reaches the caller.
type ProtocolError = cherr.ProtocolError

// ServerException is a decoded exception frame from the server: code,
// name, display message, stack trace, and an optional single nested
// cause. The connection survives a ServerException and remains usable.
type ServerException = proto.Exception

// DataTypeError is a client-side type error: a column type descriptor
// from the server that failed to parse, or insert columns that don't
// match the server-declared schema. Both are detected while a server
// frame is processed, and the connection is closed when one occurs.
// Column-merge and enum-name failures are reported as plain errors and
// close the connection the same way.
type DataTypeError = cherr.DataTypeError

// TransportError means the socket failed outright (closed mid-frame, a
// TLS handshake failure, a write error). Every outstanding call on the
// connection fails with it.
type TransportError = cherr.TransportError

// TimeoutKind distinguishes which deadline fired.
type TimeoutKind = cherr.TimeoutKind

const (
	ConnectTimeout = cherr.ConnectTimeout
	ReadTimeout    = cherr.ReadTimeout
	QueryTimeout   = cherr.QueryTimeout
)

// TimeoutError means a deadline fired; the connection is closed
// afterward regardless of which timeout it was.
type TimeoutError = cherr.TimeoutError

// Err{Connect,Read,Query}Timeout are the sentinels to match against
// with errors.Is: e.g. errors.Is(err, native.ErrConnectTimeout).
var (
	ErrConnectTimeout = cherr.ErrConnectTimeout
	ErrReadTimeout    = cherr.ErrReadTimeout
	ErrQueryTimeout   = cherr.ErrQueryTimeout
)

// UsageErrorKind distinguishes the usage-error sources named in the
// spec.
type UsageErrorKind = cherr.UsageErrorKind

const (
	ConnectionNotReady = cherr.ConnectionNotReady
	ConnectionClosed   = cherr.ConnectionClosed
)

// UsageError means the call was rejected before anything was sent:
// issuing a command before Connect, after Close, or while one is
// already outstanding on the connection.
type UsageError = cherr.UsageError

// Err{ConnectionNotReady,ConnectionClosed} are the sentinels to match
// against with errors.Is: e.g. errors.Is(err, native.ErrConnectionClosed).
var (
	ErrConnectionNotReady = cherr.ErrConnectionNotReady
	ErrConnectionClosed   = cherr.ErrConnectionClosed
)
