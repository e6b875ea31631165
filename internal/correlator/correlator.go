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

// Package correlator implements the request/response correlator that
// sits above the protocol state machine: callers enqueue a waiter when
// they write a command, and the connection's read loop completes the
// oldest outstanding waiter with each terminal Event the state machine
// emits.
package correlator

import (
	"sync"

	"github.com/colnative/native-go/internal/protocol"
)

// Outcome is delivered to a waiter exactly once: either the Event a
// command completed with, or the Err that failed it.
type Outcome struct {
	Event protocol.Event
	Err   error
}

// Correlator maintains the FIFO queue of outstanding waiters. It is
// safe for concurrent use: Enqueue may be called from any goroutine
// issuing a command, while Complete/FailAll are driven by the
// connection's single read loop.
type Correlator struct {
	mu      sync.Mutex
	waiters []chan Outcome
}

// New returns an empty Correlator.
func New() *Correlator {
	return &Correlator{}
}

// Enqueue registers a new waiter for the next terminal result and
// returns the channel it will be delivered on. The channel is buffered
// so Complete/FailAll never block on a caller that has stopped
// listening (e.g. because its own timeout already fired).
func (c *Correlator) Enqueue() <-chan Outcome {
	ch := make(chan Outcome, 1)
	c.mu.Lock()
	c.waiters = append(c.waiters, ch)
	c.mu.Unlock()
	return ch
}

// Complete fulfills the oldest outstanding waiter with ev. It reports
// false if there was no waiter to complete, which signals a protocol
// bug upstream (a terminal frame with no corresponding request).
func (c *Correlator) Complete(ev protocol.Event) bool {
	ch, ok := c.dequeue()
	if !ok {
		return false
	}
	ch <- Outcome{Event: ev}
	return true
}

// Fail fulfills the oldest outstanding waiter with err.
func (c *Correlator) Fail(err error) bool {
	ch, ok := c.dequeue()
	if !ok {
		return false
	}
	ch <- Outcome{Err: err}
	return true
}

// FailAll fulfills every outstanding waiter with err and empties the
// queue. Used when the channel goes inactive: every request still in
// flight can no longer receive a response.
func (c *Correlator) FailAll(err error) {
	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- Outcome{Err: err}
	}
}

// Pending reports the number of outstanding waiters.
func (c *Correlator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

func (c *Correlator) dequeue() (chan Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.waiters) == 0 {
		return nil, false
	}
	ch := c.waiters[0]
	c.waiters = c.waiters[1:]
	return ch, true
}
