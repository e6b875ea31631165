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

package correlator

import (
	"errors"
	"testing"

	"github.com/colnative/native-go/internal/protocol"
	"github.com/stretchr/testify/require"
)

func TestCorrelatorFIFOOrder(t *testing.T) {
	c := New()
	first := c.Enqueue()
	second := c.Enqueue()

	require.True(t, c.Complete(protocol.EventPong{}))
	out := <-first
	require.NoError(t, out.Err)
	require.IsType(t, protocol.EventPong{}, out.Event)

	select {
	case <-second:
		t.Fatal("second waiter must not be completed yet")
	default:
	}

	require.True(t, c.Complete(protocol.EventExecuted{}))
	out = <-second
	require.IsType(t, protocol.EventExecuted{}, out.Event)
}

func TestCorrelatorCompleteWithNoWaiterReportsFalse(t *testing.T) {
	c := New()
	require.False(t, c.Complete(protocol.EventPong{}))
	require.False(t, c.Fail(errors.New("boom")))
}

func TestCorrelatorFailAllFailsEveryOutstandingWaiter(t *testing.T) {
	c := New()
	waiters := []<-chan Outcome{c.Enqueue(), c.Enqueue(), c.Enqueue()}
	require.Equal(t, 3, c.Pending())

	transportErr := errors.New("connection reset")
	c.FailAll(transportErr)
	require.Equal(t, 0, c.Pending())

	for _, w := range waiters {
		out := <-w
		require.ErrorIs(t, out.Err, transportErr)
		require.Nil(t, out.Event)
	}
}

func TestCorrelatorResponseBeforeCloseOnlyAffectsEarlierWaiters(t *testing.T) {
	c := New()
	first := c.Enqueue()
	second := c.Enqueue()
	third := c.Enqueue()

	require.True(t, c.Complete(protocol.EventPong{}))
	out := <-first
	require.NoError(t, out.Err)

	closeErr := errors.New("channel closed")
	c.FailAll(closeErr)

	outSecond := <-second
	require.ErrorIs(t, outSecond.Err, closeErr)
	outThird := <-third
	require.ErrorIs(t, outThird.Err, closeErr)
}
