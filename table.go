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
	"bytes"
	"context"
	"fmt"
)

// Table is a convenience handle for a qualified table name, bound to a
// Connection for DDL.
type Table struct {
	conn *Connection

	// Database is the name of the database.
	//
	// This is optional and may be empty.
	Database string
	// Name is the table name.
	Name string
}

// Table returns a handle for tableName, addressed against conn's default
// database unless Database is set explicitly.
func (c *Connection) Table(tableName string) *Table {
	return &Table{conn: c, Name: tableName}
}

// Drop issues DROP TABLE for t and waits for confirmation.
func (t *Table) Drop(ctx context.Context) error {
	return t.conn.Command(ctx, fmt.Sprintf(`DROP TABLE %s`, t.Identifier()), 0)
}

// Identifier renders t as a backtick-quoted, dot-joined identifier
// suitable for interpolation into SQL text.
func (t *Table) Identifier() string {
	var b bytes.Buffer
	if t.Database != "" {
		b.WriteString(quoteIdent(t.Database))
		b.WriteByte('.')
	}
	b.WriteString(quoteIdent(t.Name))
	return b.String()
}

func quoteIdent(s string) string {
	var b bytes.Buffer
	b.WriteByte('`')
	for _, c := range s {
		switch c {
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '`':
			b.WriteString("\\`")
		default:
			if c < 0x20 {
				fmt.Fprintf(&b, `\x%02x`, c)
				break
			}
			b.WriteRune(c)
		}
	}
	b.WriteByte('`')
	return b.String()
}
