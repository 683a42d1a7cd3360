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

// Package plan implements the immutable plan tree (spec section 3, 4.6): a
// PlanNode carries an Operator, an ordered list of owned children, and a
// lazily-derived LogicalProperty, addressed by a stable, monotonically
// assigned PlanNodeId. A Plan is a shared reference to a root PlanNode; Go's
// garbage collector retires the reference-counting the source spec calls for
// outside the memo, so PlanNode is simply shared by pointer.
package plan

import (
	"fmt"

	"github.com/cascadesql/cascadesql/operator"
	"github.com/cascadesql/cascadesql/props"
)

// NodeId is a dense, never-reused identifier for a PlanNode within the
// lifetime of the IdGen that produced it.
type NodeId uint64

// IdGen is the monotonic PlanNodeId generator a Plan owns. Builders share one
// IdGen across an entire construction so that ids stay unique across shared
// subplans.
type IdGen struct {
	next NodeId
}

// NewIdGen returns a generator that will hand out ids starting at 1 (0 is
// reserved to mean "unassigned").
func NewIdGen() *IdGen {
	return &IdGen{}
}

// Next allocates and returns the next id.
func (g *IdGen) Next() NodeId {
	g.next++
	return g.next
}

// Node is one immutable node of a plan tree.
type Node struct {
	ID       NodeId
	Op       operator.Operator
	Children []*Node

	propComputed bool
	prop         props.LogicalProperty
}

// NewNode constructs a Node with its logical property left uncomputed; call
// LogicalProperty to derive and memoize it.
func NewNode(id NodeId, op operator.Operator, children ...*Node) *Node {
	return &Node{ID: id, Op: op, Children: children}
}

// LogicalProperty derives (and memoizes) this node's logical property using
// Derive. schema is only consulted for operators that need externally
// supplied schema information (Scan, Projection); other operators ignore it.
func (n *Node) LogicalProperty(schema props.Schema) props.LogicalProperty {
	if n.propComputed {
		return n.prop
	}
	n.prop = Derive(n.Op, childSchemas(n.Children), schema)
	n.propComputed = true
	return n.prop
}

// SetLogicalProperty forces n's cached logical property to p, bypassing
// derivation. A rule's replacement at the root of its pattern binding is, by
// the Cascades equivalence invariant, guaranteed to share its original's
// logical property even when Derive cannot recompute it standalone (a
// rebuilt Scan or Projection has no externalSchema available at
// reconstruction time) — callers materializing rule output use this to
// stamp that known-correct value rather than rederiving it.
func (n *Node) SetLogicalProperty(p props.LogicalProperty) {
	n.prop = p
	n.propComputed = true
}

func childSchemas(children []*Node) []props.Schema {
	out := make([]props.Schema, len(children))
	for i, c := range children {
		out[i] = c.prop.Schema
	}
	return out
}

// Derive computes the LogicalProperty for an operator given its already
// logical-property'd children. Filter and Limit pass the child schema
// through unchanged; Join concatenates its children's schemas, since a join's
// output columns are structurally the union of its inputs' columns. Scan and
// Projection need a schema the optimizer core cannot derive on its own
// (catalog lookup, expression typing respectively) and so take it from the
// externalSchema argument, which callers (builders, ingestion) must supply.
func Derive(op operator.Operator, childSchemas []props.Schema, externalSchema props.Schema) props.LogicalProperty {
	switch op.(type) {
	case operator.Scan, operator.TableScan, operator.Projection:
		return props.LogicalProperty{Schema: externalSchema}
	case operator.Filter, operator.Limit, operator.SortEnforcer:
		if len(childSchemas) == 0 {
			return props.LogicalProperty{}
		}
		return props.LogicalProperty{Schema: childSchemas[0]}
	case operator.Join, operator.HashJoin:
		var merged props.Schema
		for _, s := range childSchemas {
			merged = append(merged, s...)
		}
		return props.LogicalProperty{Schema: merged}
	default:
		return props.LogicalProperty{Schema: externalSchema}
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("%s#%d", n.Op, n.ID)
}

// Plan is a shared reference to a root PlanNode, along with the IdGen used to
// build it (retained so further construction, e.g. by the bridge, keeps
// allocating fresh ids rather than colliding with this tree's).
type Plan struct {
	root  *Node
	idGen *IdGen
}

// NewPlan wraps root as a Plan.
func NewPlan(root *Node, idGen *IdGen) *Plan {
	return &Plan{root: root, idGen: idGen}
}

// Root returns the shared root node.
func (p *Plan) Root() *Node { return p.root }

// IdGen returns the id generator backing this plan, so further construction
// rooted at this plan's nodes keeps allocating unique ids.
func (p *Plan) IdGen() *IdGen { return p.idGen }
