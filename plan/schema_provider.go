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

package plan

import "github.com/cascadesql/cascadesql/props"

// SchemaProvider resolves the schema of a base table. It is the minimal
// catalog surface the plan builders need; a richer catalog lives entirely in
// the embedding host and is out of scope here (spec section 1).
type SchemaProvider interface {
	TableSchema(table string) (props.Schema, bool)
}

// StaticSchemas is a SchemaProvider backed by an in-memory map, useful for
// tests and for hosts with a fixed, pre-resolved schema set.
type StaticSchemas map[string]props.Schema

func (s StaticSchemas) TableSchema(table string) (props.Schema, bool) {
	schema, ok := s[table]
	return schema, ok
}
