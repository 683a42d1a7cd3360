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

package memo

import "github.com/cascadesql/cascadesql/props"

// Group is a set of logically equivalent expressions (spec section 4.2): one
// or more GroupExprs sharing the same LogicalProperty, plus the cheapest
// physical plan found so far for each distinct required physical property
// set the scheduler has asked this group to satisfy.
type Group struct {
	id      GroupId
	members []GroupExprId

	logicalComputed bool
	logical         props.LogicalProperty

	// winners is keyed by PhysicalPropertySet.Key() rather than the struct
	// itself, since Go maps need a comparable (here, string) key and two
	// PhysicalPropertySets with equal Key()s are required to be
	// interchangeable for costing purposes.
	winners map[string]Winner

	fullyExplored bool
}

// Members returns the ids of this group's expressions.
func (g *Group) Members() []GroupExprId { return g.members }

// LogicalProperty returns the schema every member of this group shares, set
// once when the group is first created from an ingested plan node. Every
// GroupExpr later added to the group (by a rule) is required by the
// Cascades invariant to be logically equivalent to the group's existing
// members, so it is never recomputed from a new member.
func (g *Group) LogicalProperty() props.LogicalProperty { return g.logical }

// FullyExplored reports whether the scheduler has finished applying every
// applicable rule transitively reachable from this group, so OptimizeGroup
// need not revisit it.
func (g *Group) FullyExplored() bool { return g.fullyExplored }

// SetFullyExplored marks the group as done (or not) being explored.
func (g *Group) SetFullyExplored(done bool) { g.fullyExplored = done }

// Winner is the cheapest known physical expression satisfying one required
// PhysicalPropertySet within a Group, along with the (possibly weaker)
// property sets that were in turn required of each of its children to
// achieve that cost (spec section 4.3): a HashJoin might require no
// particular ordering of its right input even though the join itself is
// asked to deliver one via an enforcer above it.
type Winner struct {
	ExprId     GroupExprId
	Cost       Cost
	ChildProps []props.PhysicalPropertySet
}
