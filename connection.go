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
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/colnative/native-go/internal/cherr"
	"github.com/colnative/native-go/internal/column"
	"github.com/colnative/native-go/internal/correlator"
	"github.com/colnative/native-go/internal/proto"
	"github.com/colnative/native-go/internal/protocol"
	"github.com/colnative/native-go/internal/wire"
)

// Connection is a single native-protocol session. All reads, writes and
// state transitions run on the connection's own read-loop goroutine;
// the exported methods may be called from any goroutine but at most one
// call may be outstanding at a time (a second concurrent call fails
// immediately with a UsageError rather than queuing behind the first).
type Connection struct {
	cfg        Config
	transport  Transport
	machine    *protocol.Machine
	correlator *correlator.Correlator
	decoder    *proto.Decoder

	cmdMu sync.Mutex

	queryCounter atomic.Uint64
	closeOnce    sync.Once
	done         chan struct{}

	// eg supervises the read-loop goroutine so Close can wait for it to
	// actually exit instead of merely signaling it to.
	eg *errgroup.Group
}

// Connect dials cfg's address, performs the TLS handshake if configured,
// and runs the protocol handshake. It blocks until the server's Hello
// response arrives or cfg.ConnectTimeout (or ctx) expires.
func Connect(ctx context.Context, cfg Config) (*Connection, error) {
	cfg = cfg.withDefaults()

	dialCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	transport, err := dialTransport(dialCtx, cfg)
	if err != nil {
		return nil, err
	}

	c := &Connection{
		cfg:        cfg,
		transport:  transport,
		machine:    protocol.NewMachine(),
		correlator: correlator.New(),
		decoder:    proto.NewDecoder(),
		done:       make(chan struct{}),
		eg:         &errgroup.Group{},
	}
	c.eg.Go(func() error {
		c.readLoop()
		return nil
	})

	out, err := c.dispatch(ctx, cfg.ConnectTimeout, cherr.ConnectTimeout, func() ([]byte, error) {
		return c.machine.Connect(cfg.ClientName, cfg.Database, cfg.User, cfg.Password)
	})
	if err != nil {
		return nil, err
	}
	if _, ok := out.Event.(protocol.EventServerInfo); !ok {
		err := cherr.NewProtocolError("handshake did not complete with ServerInfo")
		c.forceClose(err)
		return nil, err
	}
	cfg.Logger.Debug("native: connected", "address", cfg.address())
	return c, nil
}

// IsClosed reports whether the connection has been closed, whether by
// the caller, a timeout, or a transport failure.
func (c *Connection) IsClosed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Close tears down the connection and waits for its read-loop goroutine
// to exit. Idempotent.
func (c *Connection) Close() error {
	c.forceClose(cherr.NewTransportError("connection closed by caller"))
	return c.eg.Wait()
}

// Ping round-trips a Ping/Pong pair. A zero timeout uses cfg.QueryTimeout.
func (c *Connection) Ping(ctx context.Context, timeout time.Duration) error {
	out, err := c.dispatch(ctx, c.effectiveTimeout(timeout), cherr.QueryTimeout, c.machine.Ping)
	if err != nil {
		return err
	}
	if errEv, ok := out.Event.(protocol.EventError); ok {
		return errEv.Err
	}
	return nil
}

// Query runs sql and returns its merged result block. A zero timeout
// uses cfg.QueryTimeout.
func (c *Connection) Query(ctx context.Context, sql string, timeout time.Duration) (*column.Block, error) {
	id := c.nextQueryID()
	out, err := c.dispatch(ctx, c.effectiveTimeout(timeout), cherr.QueryTimeout, func() ([]byte, error) {
		return c.machine.Query(id, c.cfg.ClientName, sql)
	})
	if err != nil {
		return nil, err
	}
	if errEv, ok := out.Event.(protocol.EventError); ok {
		return nil, errEv.Err
	}
	res, ok := out.Event.(protocol.EventResult)
	if !ok {
		return nil, cherr.NewProtocolError("query completed with an unexpected event")
	}
	return res.Result, nil
}

// Command runs sql and waits for confirmation, discarding any result.
// A zero timeout uses cfg.QueryTimeout.
func (c *Connection) Command(ctx context.Context, sql string, timeout time.Duration) error {
	id := c.nextQueryID()
	out, err := c.dispatch(ctx, c.effectiveTimeout(timeout), cherr.QueryTimeout, func() ([]byte, error) {
		return c.machine.Command(id, c.cfg.ClientName, sql)
	})
	if err != nil {
		return err
	}
	if errEv, ok := out.Event.(protocol.EventError); ok {
		return errEv.Err
	}
	return nil
}

// Insert writes cols into table. Column names must exactly match the
// server-declared schema in insertion order. A zero timeout uses
// cfg.QueryTimeout.
func (c *Connection) Insert(ctx context.Context, table string, cols []column.Column, timeout time.Duration) error {
	id := c.nextQueryID()
	out, err := c.dispatch(ctx, c.effectiveTimeout(timeout), cherr.QueryTimeout, func() ([]byte, error) {
		return c.machine.Insert(id, c.cfg.ClientName, table, cols)
	})
	if err != nil {
		return err
	}
	if errEv, ok := out.Event.(protocol.EventError); ok {
		return errEv.Err
	}
	return nil
}

func (c *Connection) nextQueryID() string {
	return strconv.FormatUint(c.queryCounter.Add(1), 10)
}

func (c *Connection) effectiveTimeout(t time.Duration) time.Duration {
	if t <= 0 {
		return c.cfg.QueryTimeout
	}
	return t
}

// dispatch serializes one command: it encodes the outbound payload
// under cmdMu, enqueues a correlator waiter, writes the payload, then
// blocks for the matching terminal Event or a timeout. On any timeout
// or transport failure the whole connection is force-closed, matching
// the protocol's "no targeted cancellation" limitation.
func (c *Connection) dispatch(ctx context.Context, timeout time.Duration, timeoutKind cherr.TimeoutKind, encode func() ([]byte, error)) (correlator.Outcome, error) {
	if c.IsClosed() {
		return correlator.Outcome{}, cherr.NewUsageError(cherr.ConnectionClosed, "connection is closed")
	}
	if !c.cmdMu.TryLock() {
		return correlator.Outcome{}, cherr.NewUsageError(cherr.ConnectionNotReady, "a command is already outstanding on this connection")
	}
	defer c.cmdMu.Unlock()

	payload, err := encode()
	if err != nil {
		return correlator.Outcome{}, err
	}

	waiter := c.correlator.Enqueue()
	if err := c.transport.Write(payload); err != nil {
		wrapped := cherr.WrapTransportError("writing command", err)
		c.forceClose(wrapped)
		return correlator.Outcome{}, wrapped
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case out := <-waiter:
		return out, out.Err
	case <-timer.C:
		err := cherr.NewTimeoutError(timeoutKind)
		c.forceClose(err)
		return correlator.Outcome{}, err
	case <-ctx.Done():
		err := cherr.NewTimeoutError(timeoutKind)
		c.forceClose(err)
		return correlator.Outcome{}, err
	case <-c.done:
		return correlator.Outcome{}, cherr.NewTransportError("connection closed while awaiting response")
	}
}

// readLoop owns the socket and the state machine exclusively: it is the
// only goroutine that reads bytes, feeds the decoder, or advances the
// machine.
func (c *Connection) readLoop() {
	buf := make([]byte, 32*1024)
	for {
		if err := c.transport.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout)); err != nil {
			c.forceClose(cherr.WrapTransportError("arming read deadline", err))
			return
		}

		n, err := c.transport.Read(buf)
		if err != nil {
			if isDeadlineExceeded(err) {
				if _, ready := c.machine.State().(protocol.Ready); ready {
					continue // idle keep-alive
				}
				c.forceClose(cherr.NewTimeoutError(cherr.ReadTimeout))
				return
			}
			c.cfg.Logger.Error("native: read failed", "error", err)
			c.forceClose(cherr.WrapTransportError("reading from connection", err))
			return
		}

		c.decoder.Feed(buf[:n])
		for {
			frame, err := c.decoder.Decode()
			if err != nil {
				if errors.Is(err, wire.ErrNeedMoreData) {
					break
				}
				c.forceClose(err)
				return
			}
			if err := c.handleFrame(frame); err != nil {
				c.forceClose(err)
				return
			}
		}
	}
}

func (c *Connection) handleFrame(frame proto.Frame) error {
	if info, ok := frame.(proto.ServerInfo); ok {
		c.decoder.SetRevision(info.Revision)
	}

	ev, out, err := c.machine.Advance(frame)
	if err != nil {
		return err
	}
	if out != nil {
		if err := c.transport.Write(out); err != nil {
			return cherr.WrapTransportError("writing insert row data", err)
		}
	}
	if ev != nil {
		c.correlator.Complete(ev)
	}
	return nil
}

func (c *Connection) forceClose(err error) {
	c.closeOnce.Do(func() {
		c.cfg.Logger.Debug("native: closing connection", "reason", err)
		c.machine.ForceClosed()
		_ = c.transport.Close()
		close(c.done)
		c.correlator.FailAll(err)
	})
}

func isDeadlineExceeded(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
