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
	"crypto/tls"
	"net"
	"time"

	"github.com/colnative/native-go/internal/cherr"
)

// Transport is the byte-level connection to the server. Connection
// drives it directly; Connect always creates it with dialTransport.
type Transport interface {
	// Write sends b in its entirety.
	Write(b []byte) error
	// Read reads into buf, returning the number of bytes read.
	Read(buf []byte) (int, error)
	// SetReadDeadline arms the deadline for the next Read.
	SetReadDeadline(t time.Time) error
	// Close releases the underlying connection.
	Close() error
}

type tcpTransport struct {
	conn net.Conn
}

// dialTransport opens a TCP connection to cfg's address, optionally
// wrapping it in a TLS handshake, bounded by ctx.
func dialTransport(ctx context.Context, cfg Config) (Transport, error) {
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", cfg.address())
	if err != nil {
		if ctx.Err() != nil {
			return nil, cherr.NewTimeoutError(cherr.ConnectTimeout)
		}
		return nil, cherr.WrapTransportError("dialing "+cfg.address(), err)
	}

	if cfg.TLS != nil {
		tlsConn := tls.Client(conn, cfg.TLS)
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			_ = conn.Close()
			if ctx.Err() != nil {
				return nil, cherr.NewTimeoutError(cherr.ConnectTimeout)
			}
			return nil, cherr.WrapTransportError("TLS handshake with "+cfg.address(), err)
		}
		conn = tlsConn
	}

	return &tcpTransport{conn: conn}, nil
}

// Ensure tcpTransport implements Transport.
var _ Transport = (*tcpTransport)(nil)

func (t *tcpTransport) Write(b []byte) error {
	_, err := t.conn.Write(b)
	return err
}

func (t *tcpTransport) Read(buf []byte) (int, error) {
	return t.conn.Read(buf)
}

func (t *tcpTransport) SetReadDeadline(deadline time.Time) error {
	return t.conn.SetReadDeadline(deadline)
}

func (t *tcpTransport) Close() error {
	return t.conn.Close()
}
