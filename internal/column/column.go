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

package column

import "fmt"

// Column is a named, typed, homogeneous vector of values. Every column
// in a single Block must have the same length.
type Column struct {
	Name   string
	Type   *Type
	Values Values
}

// Validate checks the non-empty-name invariant, that Type is set, and
// that Type satisfies Type.Validate. Values is not inspected.
func (c *Column) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("column: column name must not be empty")
	}
	if c.Type == nil {
		return fmt.Errorf("column: column %q has no type", c.Name)
	}
	return c.Type.Validate()
}
