// Copyright 2024 The CascadeSQL Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package props defines the logical and physical property systems: the
// output schema every plan node and memo group carries, and the physical
// delivery/requirement contracts the Cascades scheduler reasons about.
package props

import (
	"fmt"
	"strings"

	querypb "gopkg.in/src-d/go-vitess.v0/vt/proto/query"
)

// Column is one entry of a Schema: a name, a wire type borrowed from vitess's
// query.Type enum (rather than inventing a parallel type tag set), and a
// nullability flag.
type Column struct {
	Name     string
	Type     querypb.Type
	Nullable bool
}

func (c Column) Equal(other Column) bool {
	return c.Name == other.Name && c.Type == other.Type && c.Nullable == other.Nullable
}

func (c Column) String() string {
	null := "NOT NULL"
	if c.Nullable {
		null = "NULL"
	}
	return fmt.Sprintf("%s %s %s", c.Name, c.Type, null)
}

// Schema is an ordered list of typed columns. It is the sole component of
// LogicalProperty required by spec section 3; the column list defines the
// output shape of a plan node or memo group.
type Schema []Column

// Equal compares schemas positionally; column order is part of the contract
// (it determines projection output ordering).
func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !s[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

func (s Schema) String() string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// LogicalProperty holds the logical properties derived for a plan node or
// memo group: at minimum, the output Schema. All members of a memo group
// share the group's LogicalProperty; the memo does not check for a mismatch,
// not even when it merges two groups, and raises no InvariantViolation.
type LogicalProperty struct {
	Schema Schema
}

func (p LogicalProperty) Equal(other LogicalProperty) bool {
	return p.Schema.Equal(other.Schema)
}
