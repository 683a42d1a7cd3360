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

import (
	"github.com/cascadesql/cascadesql/operator"
	"github.com/cascadesql/cascadesql/props"
)

// LogicalPlanBuilder is a fluent constructor for logical Plan trees, used by
// tests and by anything ingesting a plan by hand rather than through the
// bridge. Each method assigns a fresh node id and eagerly derives the node's
// LogicalProperty, mirroring the teacher's eager-property construction style.
type LogicalPlanBuilder struct {
	idGen   *IdGen
	schemas SchemaProvider
	cur     *Node
}

// NewLogicalPlanBuilder starts a new builder sharing idGen (pass NewIdGen()
// for a standalone plan, or an existing Plan's IdGen to keep ids unique
// across a larger construction that this builder's output will join into).
func NewLogicalPlanBuilder(idGen *IdGen, schemas SchemaProvider) *LogicalPlanBuilder {
	return &LogicalPlanBuilder{idGen: idGen, schemas: schemas}
}

// Scan starts the builder at a base table scan.
func (b *LogicalPlanBuilder) Scan(table string) *LogicalPlanBuilder {
	schema, _ := b.schemas.TableSchema(table)
	n := NewNode(b.idGen.Next(), operator.NewScan(table))
	n.LogicalProperty(schema)
	b.cur = n
	return b
}

// Filter wraps the current node in a Filter.
func (b *LogicalPlanBuilder) Filter(predicate operator.ScalarExpr, correlated []operator.ColumnRef) *LogicalPlanBuilder {
	n := NewNode(b.idGen.Next(), operator.NewFilter(predicate, correlated), b.cur)
	n.LogicalProperty(nil)
	b.cur = n
	return b
}

// Projection wraps the current node in a Projection producing the given
// output schema (expression typing is the host's job; the optimizer core
// treats exprs as opaque, per spec section 6).
func (b *LogicalPlanBuilder) Projection(schema props.Schema, exprs []operator.ScalarExpr) *LogicalPlanBuilder {
	n := NewNode(b.idGen.Next(), operator.NewProjection(exprs), b.cur)
	n.LogicalProperty(schema)
	b.cur = n
	return b
}

// Limit wraps the current node in a Limit.
func (b *LogicalPlanBuilder) Limit(count int) *LogicalPlanBuilder {
	n := NewNode(b.idGen.Next(), operator.NewLimit(count), b.cur)
	n.LogicalProperty(nil)
	b.cur = n
	return b
}

// Join combines the current node (as left input) with right under joinType
// and predicate.
func (b *LogicalPlanBuilder) Join(joinType operator.JoinType, predicate operator.ScalarExpr, right *Node) *LogicalPlanBuilder {
	n := NewNode(b.idGen.Next(), operator.NewJoin(joinType, predicate), b.cur, right)
	n.LogicalProperty(nil)
	b.cur = n
	return b
}

// Build finalizes the builder into a Plan rooted at the current node.
func (b *LogicalPlanBuilder) Build() *Plan {
	return NewPlan(b.cur, b.idGen)
}

// PhysicalPlanBuilder is the physical-operator analogue of
// LogicalPlanBuilder, used by tests asserting on the optimizer's expected
// output plan.
type PhysicalPlanBuilder struct {
	idGen   *IdGen
	schemas SchemaProvider
	cur     *Node
}

func NewPhysicalPlanBuilder(idGen *IdGen, schemas SchemaProvider) *PhysicalPlanBuilder {
	return &PhysicalPlanBuilder{idGen: idGen, schemas: schemas}
}

func (b *PhysicalPlanBuilder) TableScan(table string) *PhysicalPlanBuilder {
	schema, _ := b.schemas.TableSchema(table)
	n := NewNode(b.idGen.Next(), operator.NewTableScan(table))
	n.LogicalProperty(schema)
	b.cur = n
	return b
}

func (b *PhysicalPlanBuilder) TableScanWithLimit(table string, limit int) *PhysicalPlanBuilder {
	schema, _ := b.schemas.TableSchema(table)
	n := NewNode(b.idGen.Next(), operator.NewTableScanWithLimit(table, limit))
	n.LogicalProperty(schema)
	b.cur = n
	return b
}

func (b *PhysicalPlanBuilder) HashJoin(joinType operator.JoinType, predicate operator.ScalarExpr, right *Node) *PhysicalPlanBuilder {
	n := NewNode(b.idGen.Next(), operator.NewHashJoin(joinType, predicate), b.cur, right)
	n.LogicalProperty(nil)
	b.cur = n
	return b
}

func (b *PhysicalPlanBuilder) Sort(keys []string) *PhysicalPlanBuilder {
	n := NewNode(b.idGen.Next(), operator.NewSortEnforcer(keys), b.cur)
	n.LogicalProperty(nil)
	b.cur = n
	return b
}

func (b *PhysicalPlanBuilder) Build() *Plan {
	return NewPlan(b.cur, b.idGen)
}
