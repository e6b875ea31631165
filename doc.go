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

/*
Package native is a client for a columnar analytic database's native
TCP wire protocol: VarInt-framed messages, a recursive column type
grammar, and a single-request-at-a-time connection state machine.

# Connect

Use Connect to open a session:

	conn, err := native.Connect(ctx, native.Config{
		Hostname: "localhost",
		Database: "default",
	})
	if err != nil {
		return err
	}
	defer conn.Close()

# Query Data

	result, err := conn.Query(ctx, "SHOW DATABASES", 0)
	if err != nil {
		return err
	}
	names := result.Columns[0].Values.(*column.StringValues).Data

# Insert Data

Insert takes a table name and an ordered list of columns; column names
must exactly match the server-declared schema in insertion order:

	ids := column.NewStringValues()
	ids.Data = []string{"1", "2", "3"}
	err := conn.Insert(ctx, "events", []column.Column{
		{Name: "id", Values: ids},
	}, 0)

# Ping

	if err := conn.Ping(ctx, 0); err != nil {
		return err
	}
*/
package native
