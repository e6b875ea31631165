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
	"testing"

	"github.com/colnative/native-go/internal/cherr"
	"github.com/colnative/native-go/internal/column"
	"github.com/colnative/native-go/internal/proto"
	"github.com/stretchr/testify/require"
)

func TestMachineHandshake(t *testing.T) {
	m := NewMachine()
	_, err := m.Connect("go-client", "default", "default", "")
	require.NoError(t, err)
	require.IsType(t, Connecting{}, m.State())

	ev, out, err := m.Advance(proto.ServerInfo{Name: "srv", Revision: 54126})
	require.NoError(t, err)
	require.Nil(t, out)
	info, ok := ev.(EventServerInfo)
	require.True(t, ok)
	require.Equal(t, uint64(54126), info.Info.Revision)
	require.IsType(t, Ready{}, m.State())
	require.Equal(t, uint64(54126), m.Revision())
}

func TestMachineConnectOnlyFromNotConnected(t *testing.T) {
	m := NewMachine()
	_, _ = m.Connect("c", "d", "u", "")
	_, err := m.Connect("c", "d", "u", "")
	var usageErr *cherr.UsageError
	require.ErrorAs(t, err, &usageErr)
}

func readyMachine(t *testing.T) *Machine {
	t.Helper()
	m := NewMachine()
	_, err := m.Connect("c", "d", "u", "")
	require.NoError(t, err)
	_, _, err = m.Advance(proto.ServerInfo{Revision: 54126})
	require.NoError(t, err)
	return m
}

func TestMachineQueryAccumulatesBlocksAndMerges(t *testing.T) {
	m := readyMachine(t)
	_, err := m.Query("q1", "go-client", "SELECT 1")
	require.NoError(t, err)
	require.IsType(t, AwaitingQueryResult{}, m.State())

	values := column.NewInt64Values()
	values.Data = []int64{1, 2}
	dataBlock := &column.Block{Columns: []column.Column{{Name: "n", Type: column.Int64Type(), Values: values}}}
	ev, out, err := m.Advance(proto.DataFrame{Block: dataBlock})
	require.NoError(t, err)
	require.Nil(t, ev)
	require.Nil(t, out)

	emptyBlock := &column.Block{}
	ev, out, err = m.Advance(proto.DataFrame{Block: emptyBlock})
	require.NoError(t, err)
	require.Nil(t, ev)
	require.Nil(t, out)
	require.IsType(t, AwaitingQueryResultEndOfStream{}, m.State())

	ev, out, err = m.Advance(proto.EndOfStream{})
	require.NoError(t, err)
	require.Nil(t, out)
	res, ok := ev.(EventResult)
	require.True(t, ok)
	require.Equal(t, 2, res.Result.NumRows())
	require.IsType(t, Ready{}, m.State())
}

func TestMachineCommandLifecycle(t *testing.T) {
	m := readyMachine(t)
	_, err := m.Command("q2", "go-client", "OPTIMIZE TABLE t")
	require.NoError(t, err)
	require.IsType(t, AwaitingQueryConfirmation{}, m.State())

	ev, _, err := m.Advance(proto.ProfileInfo{})
	require.NoError(t, err)
	require.Nil(t, ev)

	ev, _, err = m.Advance(proto.EndOfStream{})
	require.NoError(t, err)
	require.IsType(t, EventExecuted{}, ev)
	require.IsType(t, Ready{}, m.State())
}

func TestMachinePingPong(t *testing.T) {
	m := readyMachine(t)
	_, err := m.Ping()
	require.NoError(t, err)
	require.IsType(t, AwaitingPong{}, m.State())

	ev, _, err := m.Advance(proto.Pong{})
	require.NoError(t, err)
	require.IsType(t, EventPong{}, ev)
	require.IsType(t, Ready{}, m.State())
}

func TestMachineExceptionReturnsToReady(t *testing.T) {
	m := readyMachine(t)
	_, err := m.Ping()
	require.NoError(t, err)

	ev, _, err := m.Advance(&proto.Exception{Code: 1, Name: "E", Message: "boom"})
	require.NoError(t, err)
	errEv, ok := ev.(EventError)
	require.True(t, ok)
	require.Equal(t, "boom", errEv.Err.Message)
	require.IsType(t, Ready{}, m.State())
}

func TestMachineInsertRoundTrip(t *testing.T) {
	m := readyMachine(t)
	values := column.NewInt64Values()
	values.Data = []int64{10, 20}
	cols := []column.Column{{Name: "n", Values: values}}
	_, err := m.Insert("q3", "go-client", "t", cols)
	require.NoError(t, err)
	require.IsType(t, AwaitingToSendData{}, m.State())

	serverSchema := &column.Block{Columns: []column.Column{
		{Name: "n", Type: column.Int64Type(), Values: column.NewInt64Values()},
	}}
	ev, out, err := m.Advance(proto.DataFrame{Block: serverSchema})
	require.NoError(t, err)
	require.Nil(t, ev)
	require.NotEmpty(t, out)
	require.IsType(t, AwaitingQueryConfirmation{}, m.State())

	ev, _, err = m.Advance(proto.EndOfStream{})
	require.NoError(t, err)
	require.IsType(t, EventExecuted{}, ev)
}

func TestMachineInsertSchemaMismatch(t *testing.T) {
	m := readyMachine(t)
	values := column.NewInt64Values()
	values.Data = []int64{10}
	cols := []column.Column{{Name: "n", Values: values}}
	_, err := m.Insert("q4", "go-client", "t", cols)
	require.NoError(t, err)

	serverSchema := &column.Block{Columns: []column.Column{
		{Name: "wrong", Type: column.Int64Type(), Values: column.NewInt64Values()},
	}}
	_, _, err = m.Advance(proto.DataFrame{Block: serverSchema})
	var dtErr *cherr.DataTypeError
	require.ErrorAs(t, err, &dtErr)
}

func TestMachineForceClosedDropsFrames(t *testing.T) {
	m := readyMachine(t)
	m.ForceClosed()
	ev, out, err := m.Advance(proto.Pong{})
	require.NoError(t, err)
	require.Nil(t, ev)
	require.Nil(t, out)
}
