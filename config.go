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
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"time"
)

// Config defines the configuration for a Connection.
type Config struct {
	// Addr, if set, is a pre-resolved socket address dialed directly,
	// bypassing DNS resolution of Hostname/Port entirely. Takes
	// precedence over Hostname/Port when non-nil.
	Addr *net.TCPAddr

	// Hostname is the server's address. Defaults to "localhost". Unused
	// when Addr is set.
	Hostname string
	// Port is the server's TCP port. Defaults to 9000, or 9440 when TLS
	// is set. Unused when Addr is set.
	Port int

	// User authenticates the handshake. Defaults to "default".
	User string
	// Password authenticates the handshake. Defaults to empty.
	Password string
	// Database selects the default database. Defaults to "default".
	Database string

	// ClientName is advertised to the server during the handshake.
	// Defaults to "colnative-go".
	ClientName string

	// ConnectTimeout bounds the TCP (and TLS, if configured) handshake.
	// Defaults to 10s.
	ConnectTimeout time.Duration
	// ReadTimeout is the idle-read guard on an established connection:
	// if no bytes arrive for this long while the connection isn't
	// Ready, it is force-closed. Defaults to 90s.
	ReadTimeout time.Duration
	// QueryTimeout is the default per-operation deadline, overridable
	// per call. Defaults to 600s.
	QueryTimeout time.Duration

	// TLS, if non-nil, is used to wrap the TCP connection before the
	// first byte of Hello is written.
	TLS *tls.Config

	// Logger receives handshake, close, and force-close diagnostics.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

const (
	defaultHostname       = "localhost"
	defaultPlaintextPort  = 9000
	defaultTLSPort        = 9440
	defaultUser           = "default"
	defaultDatabase       = "default"
	defaultClientName     = "colnative-go"
	defaultConnectTimeout = 10 * time.Second
	defaultReadTimeout    = 90 * time.Second
	defaultQueryTimeout   = 600 * time.Second
)

// withDefaults returns a copy of c with every zero-valued field filled
// in with its documented default.
func (c Config) withDefaults() Config {
	if c.Hostname == "" {
		c.Hostname = defaultHostname
	}
	if c.Port == 0 {
		if c.TLS != nil {
			c.Port = defaultTLSPort
		} else {
			c.Port = defaultPlaintextPort
		}
	}
	if c.User == "" {
		c.User = defaultUser
	}
	if c.Database == "" {
		c.Database = defaultDatabase
	}
	if c.ClientName == "" {
		c.ClientName = defaultClientName
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = defaultReadTimeout
	}
	if c.QueryTimeout == 0 {
		c.QueryTimeout = defaultQueryTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// address returns the dial target: Addr's string form when set, else
// Hostname:Port.
func (c Config) address() string {
	if c.Addr != nil {
		return c.Addr.String()
	}
	return fmt.Sprintf("%s:%d", c.Hostname, c.Port)
}
