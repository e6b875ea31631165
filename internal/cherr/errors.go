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

// Package cherr defines the error taxonomy shared by every layer of the
// client: the wire codec, the protocol state machine, the correlator and
// the connection facade all wrap failures into one of these types so the
// public package can classify and re-export them without duplicating the
// logic that decides fatal from non-fatal.
package cherr

import "fmt"

// ProtocolError is fatal: it means the byte stream itself is no longer
// interpretable (unknown opcode, a frame that can't occur in the current
// state, a malformed varint). The connection must close.
type ProtocolError struct {
	Msg   string
	Cause error
}

func (e *ProtocolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("protocol error: %s: %v", e.Msg, e.Cause)
	}
	return fmt.Sprintf("protocol error: %s", e.Msg)
}

func (e *ProtocolError) Unwrap() error { return e.Cause }

func NewProtocolError(msg string) *ProtocolError { return &ProtocolError{Msg: msg} }

func WrapProtocolError(msg string, cause error) *ProtocolError {
	return &ProtocolError{Msg: msg, Cause: cause}
}

// DataTypeError is a client-side type error: a descriptor parse failure
// or an insert schema mismatch. The connection's read loop closes the
// connection when either occurs while processing a server frame.
type DataTypeError struct {
	Msg   string
	Cause error
}

func (e *DataTypeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("data type error: %s: %v", e.Msg, e.Cause)
	}
	return fmt.Sprintf("data type error: %s", e.Msg)
}

func (e *DataTypeError) Unwrap() error { return e.Cause }

func NewDataTypeError(msg string) *DataTypeError { return &DataTypeError{Msg: msg} }

func WrapDataTypeError(msg string, cause error) *DataTypeError {
	return &DataTypeError{Msg: msg, Cause: cause}
}

// TransportError is fatal: the socket closed mid-frame, or a lower-level
// I/O failure. It is delivered to every outstanding correlator waiter.
type TransportError struct {
	Msg   string
	Cause error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transport error: %s: %v", e.Msg, e.Cause)
	}
	return fmt.Sprintf("transport error: %s", e.Msg)
}

func (e *TransportError) Unwrap() error { return e.Cause }

func NewTransportError(msg string) *TransportError { return &TransportError{Msg: msg} }

func WrapTransportError(msg string, cause error) *TransportError {
	return &TransportError{Msg: msg, Cause: cause}
}

// TimeoutKind distinguishes the three timeout sources named in the spec.
type TimeoutKind int

const (
	ConnectTimeout TimeoutKind = iota
	ReadTimeout
	QueryTimeout
)

func (k TimeoutKind) String() string {
	switch k {
	case ConnectTimeout:
		return "connect timeout"
	case ReadTimeout:
		return "read timeout"
	case QueryTimeout:
		return "query timeout"
	default:
		return "timeout"
	}
}

// TimeoutError is fatal: all three timeout sources close the connection.
type TimeoutError struct {
	Kind TimeoutKind
}

func (e *TimeoutError) Error() string { return e.Kind.String() }

// Is reports whether target is a *TimeoutError of the same Kind, so
// errors.Is(err, ErrConnectTimeout) works regardless of which
// *TimeoutError instance produced err.
func (e *TimeoutError) Is(target error) bool {
	t, ok := target.(*TimeoutError)
	return ok && t.Kind == e.Kind
}

func NewTimeoutError(kind TimeoutKind) *TimeoutError { return &TimeoutError{Kind: kind} }

// Err{Connect,Read,Query}Timeout are the sentinels errors.Is callers
// match against; construct with NewTimeoutError to produce one.
var (
	ErrConnectTimeout = &TimeoutError{Kind: ConnectTimeout}
	ErrReadTimeout    = &TimeoutError{Kind: ReadTimeout}
	ErrQueryTimeout   = &TimeoutError{Kind: QueryTimeout}
)

// UsageErrorKind distinguishes the usage-error sources named in the spec.
type UsageErrorKind int

const (
	// ConnectionNotReady means a command was issued while another was
	// already outstanding on the connection.
	ConnectionNotReady UsageErrorKind = iota
	// ConnectionClosed means a command was issued before Connect or
	// after Close.
	ConnectionClosed
)

func (k UsageErrorKind) String() string {
	switch k {
	case ConnectionNotReady:
		return "connection not ready"
	case ConnectionClosed:
		return "connection closed"
	default:
		return "usage error"
	}
}

// UsageError is non-fatal and detected before anything is sent: issuing a
// command before connect, after close, or while one is already
// outstanding.
type UsageError struct {
	Kind UsageErrorKind
	Msg  string
}

func (e *UsageError) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Msg) }

// Is reports whether target is a *UsageError of the same Kind,
// ignoring Msg, so errors.Is(err, ErrConnectionClosed) works
// regardless of which call produced err.
func (e *UsageError) Is(target error) bool {
	t, ok := target.(*UsageError)
	return ok && t.Kind == e.Kind
}

func NewUsageError(kind UsageErrorKind, msg string) *UsageError { return &UsageError{Kind: kind, Msg: msg} }

// Err{ConnectionNotReady,ConnectionClosed} are the sentinels errors.Is
// callers match against; construct with NewUsageError to produce one.
var (
	ErrConnectionNotReady = &UsageError{Kind: ConnectionNotReady}
	ErrConnectionClosed   = &UsageError{Kind: ConnectionClosed}
)
