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

package native_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/lucasepe/codename"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/colnative/native-go"
	"github.com/colnative/native-go/internal/column"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newConnection dials the server named by NATIVE_TEST_HOST on the default
// port, skipping the test when it isn't set. These scenarios exercise the real
// wire protocol end to end and need a live server; the rest of the suite
// covers the codec and state machine without one.
func newConnection(t testing.TB) *native.Connection {
	host := os.Getenv("NATIVE_TEST_HOST")
	if host == "" {
		t.Skip("NATIVE_TEST_HOST not set")
		return nil // unreachable
	}

	conn, err := native.Connect(context.Background(), native.Config{
		Hostname: host,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func randomName(t testing.TB) string {
	rng, err := codename.DefaultRNG()
	require.NoError(t, err)
	return strings.ReplaceAll(codename.Generate(rng, 10), "-", "_")
}

func TestShowDatabasesReturnsStringColumn(t *testing.T) {
	conn := newConnection(t)

	result, err := conn.Query(context.Background(), "SHOW DATABASES", 0)
	require.NoError(t, err)
	require.Len(t, result.Columns, 1)
	_, ok := result.Columns[0].Values.(*column.StringValues)
	require.True(t, ok)
}

func TestFixedStringTruncationRoundTrip(t *testing.T) {
	conn := newConnection(t)
	table := randomName(t)

	require.NoError(t, conn.Command(context.Background(),
		"CREATE TABLE "+table+" (id String, s FixedString(7)) ENGINE = Memory", 0))
	t.Cleanup(func() { _ = conn.Table(table).Drop(context.Background()) })

	ids := column.NewStringValues()
	ids.Data = []string{"1", "🎅☃🧪", "234"}
	ss := column.NewFixedStringValues()
	ss.Data = []string{"🎅☃🧪", "a", "awfawfawf"}
	require.NoError(t, conn.Insert(context.Background(), table, []column.Column{
		{Name: "id", Values: ids},
		{Name: "s", Values: ss},
	}, 0))

	result, err := conn.Query(context.Background(), "SELECT * FROM "+table+" ORDER BY id", 0)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "234", "🎅☃🧪"}, result.Columns[0].Values.(*column.StringValues).Data)
	require.Equal(t, []string{"🎅☃", "awfawfa", "a"}, result.Columns[1].Values.(*column.FixedStringValues).Data)
}

func TestCommandTimeoutClosesConnection(t *testing.T) {
	conn := newConnection(t)

	err := conn.Command(context.Background(), "SELECT sleep(3)", 1500*time.Millisecond)
	require.Error(t, err)
	var timeoutErr *native.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	require.True(t, conn.IsClosed())
}

func TestServerExceptionThenPingRecovers(t *testing.T) {
	conn := newConnection(t)

	err := conn.Command(context.Background(), "something wrong", 0)
	require.Error(t, err)
	var exc *native.ServerException
	require.ErrorAs(t, err, &exc)
	require.Equal(t, "DB::Exception", exc.Name)
	require.True(t, strings.HasPrefix(exc.Message, "DB::Exception: Syntax error: failed at position 1"))

	require.NoError(t, conn.Ping(context.Background(), 0))
	require.False(t, conn.IsClosed())

	_, err = conn.Query(context.Background(), "SHOW DATABASES", 0)
	require.NoError(t, err)
}

func TestNullableInsertAndSelect(t *testing.T) {
	conn := newConnection(t)
	table := randomName(t)

	require.NoError(t, conn.Command(context.Background(),
		"CREATE TABLE "+table+" (n Nullable(UInt32), str Nullable(String)) ENGINE = Memory", 0))
	t.Cleanup(func() { _ = conn.Table(table).Drop(context.Background()) })

	inner := column.NewUInt32Values()
	inner.Data = []uint32{0, 0, 1, 3, 4, 5, 6, 7, 8, 8}
	n := column.NewNullableValues(inner)
	n.Null = []bool{true, true, false, false, false, false, false, false, false, false}

	strInner := column.NewStringValues()
	strInner.Data = []string{"", "", "1", "3", "4", "5", "6", "7", "8", "8"}
	str := column.NewNullableValues(strInner)
	str.Null = append([]bool{}, n.Null...)

	require.NoError(t, conn.Insert(context.Background(), table, []column.Column{
		{Name: "n", Values: n},
		{Name: "str", Values: str},
	}, 0))

	result, err := conn.Query(context.Background(), "SELECT n, str FROM "+table, 0)
	require.NoError(t, err)
	gotN := result.Columns[0].Values.(*column.NullableValues)
	require.Equal(t, n.Null, gotN.Null)
}

func TestArrayInsertAndSelect(t *testing.T) {
	conn := newConnection(t)
	table := randomName(t)

	require.NoError(t, conn.Command(context.Background(),
		"CREATE TABLE "+table+" (arr Array(Int32)) ENGINE = Memory", 0))
	t.Cleanup(func() { _ = conn.Table(table).Drop(context.Background()) })

	elem := column.NewInt32Values()
	elem.Data = []int32{1, 43, 65, 1234, -345, 1}
	arr := column.NewArrayValues(elem)
	arr.Offsets = []uint64{1, 3, 3, 6}

	require.NoError(t, conn.Insert(context.Background(), table, []column.Column{
		{Name: "arr", Values: arr},
	}, 0))

	result, err := conn.Query(context.Background(), "SELECT arr FROM "+table, 0)
	require.NoError(t, err)
	got := result.Columns[0].Values.(*column.ArrayValues)
	require.Equal(t, []uint64{1, 3, 3, 6}, got.Offsets)
}
