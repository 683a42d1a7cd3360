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

// Package memo implements the group-structured search space the Cascades
// scheduler (xform) explores: logically equivalent expressions are
// structurally interned into a shared Group, so the scheduler only ever
// costs each distinct expression once (spec section 4.2). Grounded on the
// architecture of pkg/sql/opt/xform/optimizer.go (cockroachdb) and the group
// bookkeeping of sql/memo/memo.go (aperturerobotics-go-mysql-server), with
// structural interning via hashstructure the way the teacher's analyzer
// package hashes join trees.
package memo

import (
	"fmt"

	"github.com/mitchellh/hashstructure"
	"github.com/pkg/errors"

	"github.com/cascadesql/cascadesql/cost"
	"github.com/cascadesql/cascadesql/operator"
	"github.com/cascadesql/cascadesql/optimizer/errkind"
	"github.com/cascadesql/cascadesql/plan"
	"github.com/cascadesql/cascadesql/props"
)

// GroupId names a Group within a Memo. The zero value is never a valid id;
// valid ids start at 1.
type GroupId uint32

// GroupExprId names a GroupExpr within a Memo.
type GroupExprId uint32

// Memo owns every Group and GroupExpr, and the union-find structure that
// lets two groups discovered to be logically equivalent after the fact
// (e.g. CommutateJoin producing an expression matching an existing group) be
// merged into one.
type Memo struct {
	groups []*Group       // index 0 unused; GroupId i lives at groups[i]
	exprs  []*GroupExpr    // index 0 unused; GroupExprId i lives at exprs[i]
	parent []GroupId       // union-find parent; parent[g] == g means g is its own representative

	signatures map[uint64][]GroupExprId // structural-hash bucket -> candidate exprs, for interning

	root GroupId
}

// New returns an empty Memo.
func New() *Memo {
	return &Memo{
		groups:     []*Group{nil},
		exprs:      []*GroupExpr{nil},
		parent:     []GroupId{0},
		signatures: make(map[uint64][]GroupExprId),
	}
}

// SetRoot records g as the group the whole plan optimizes from.
func (m *Memo) SetRoot(g GroupId) { m.root = m.Find(g) }

// Root returns the memo's root group.
func (m *Memo) Root() GroupId { return m.Find(m.root) }

// Find returns g's current union-find representative, compressing the path
// as it walks.
func (m *Memo) Find(g GroupId) GroupId {
	for m.parent[g] != g {
		m.parent[g] = m.parent[m.parent[g]]
		g = m.parent[g]
	}
	return g
}

// Group returns the Group g resolves to (after Find).
func (m *Memo) Group(g GroupId) *Group {
	return m.groups[m.Find(g)]
}

// NumGroups returns the largest GroupId ever allocated, so a caller
// enumerating every group can range over 1..NumGroups() inclusive (some of those ids
// may have been absorbed by a merge; Find resolves them to their survivor).
func (m *Memo) NumGroups() int { return len(m.groups) - 1 }

// Expr returns the GroupExpr identified by id.
func (m *Memo) Expr(id GroupExprId) *GroupExpr {
	return m.exprs[id]
}

func (m *Memo) newGroup() GroupId {
	id := GroupId(len(m.groups))
	m.groups = append(m.groups, &Group{id: id, winners: make(map[string]Winner)})
	m.parent = append(m.parent, id)
	return id
}

func (m *Memo) newExpr(op operator.Operator, children []GroupId, owner GroupId) GroupExprId {
	id := GroupExprId(len(m.exprs))
	m.exprs = append(m.exprs, &GroupExpr{id: id, op: op, children: children, group: owner})
	return id
}

type signatureKey struct {
	Op       operator.Operator
	Children []GroupId
}

func (m *Memo) signature(op operator.Operator, children []GroupId) uint64 {
	h, err := hashstructure.Hash(signatureKey{Op: op, Children: children}, nil)
	if err != nil {
		// Hashing these plain value structs cannot fail; a non-nil err here
		// would mean an operator type holds something reflect can't walk.
		panic(errors.Wrap(err, "memo: hashing group expression signature"))
	}
	return h
}

func sameChildren(a, b []GroupId) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// lookup finds an existing GroupExpr structurally identical to (op,
// children) after resolving children through Find, returning its id and
// owning group, or ok=false if none exists yet.
func (m *Memo) lookup(op operator.Operator, children []GroupId) (GroupExprId, bool) {
	resolved := make([]GroupId, len(children))
	for i, c := range children {
		resolved[i] = m.Find(c)
	}
	sig := m.signature(op, resolved)
	for _, candidate := range m.signatures[sig] {
		e := m.exprs[candidate]
		if e.op.Equal(op) && sameChildren(e.children, resolved) {
			return candidate, true
		}
	}
	return 0, false
}

// InsertExpr is the single entry point for adding an expression to the memo,
// used both for the initial logical plan ingestion and for rule results
// (spec section 4.2). children must already be GroupIds (an ingested
// subplan's group, or a rule's reused/constructed child). If target is
// non-nil, the expression must land in that specific group: if an identical
// expression already exists in a *different* group, the two groups are
// merged (they have just been proven logically equivalent); if target is
// nil, an existing identical expression's group is reused, otherwise a fresh
// group is allocated.
func (m *Memo) InsertExpr(op operator.Operator, children []GroupId, target *GroupId) (GroupId, GroupExprId) {
	resolved := make([]GroupId, len(children))
	for i, c := range children {
		resolved[i] = m.Find(c)
	}

	if existingId, ok := m.lookup(op, resolved); ok {
		existing := m.exprs[existingId]
		if target == nil {
			return existing.group, existingId
		}
		want := m.Find(*target)
		if existing.group == want {
			return want, existingId
		}
		survivor := m.merge(existing.group, want)
		return survivor, existingId
	}

	owner := GroupId(0)
	if target != nil {
		owner = m.Find(*target)
	} else {
		owner = m.newGroup()
	}

	id := m.newExpr(op, resolved, owner)
	m.groups[owner].members = append(m.groups[owner].members, id)
	sig := m.signature(op, resolved)
	m.signatures[sig] = append(m.signatures[sig], id)
	return owner, id
}

// merge unions groups a and b (already both representatives or resolved to
// one via Find by the caller), keeping the lower-numbered group as the
// survivor so earlier-assigned groups remain stable reference points, moving
// every member expression and taking the cheaper winner per required
// property set.
func (m *Memo) merge(a, b GroupId) GroupId {
	a, b = m.Find(a), m.Find(b)
	if a == b {
		return a
	}
	survivor, absorbed := a, b
	if absorbed < survivor {
		survivor, absorbed = absorbed, survivor
	}

	m.parent[absorbed] = survivor
	sg, ag := m.groups[survivor], m.groups[absorbed]
	for _, id := range ag.members {
		m.exprs[id].group = survivor
		sg.members = append(sg.members, id)
	}
	for key, w := range ag.winners {
		if existing, ok := sg.winners[key]; !ok || w.Cost.Less(existing.Cost) {
			sg.winners[key] = w
		}
	}
	if m.root == absorbed {
		m.root = survivor
	}
	return survivor
}

// InsertPlan ingests an entire plan tree (bottom-up) into the memo as a
// chain of logically-equivalent-singleton groups, returning the group
// holding its root. This is how a fresh logical plan enters the search
// space before the scheduler explores it.
func (m *Memo) InsertPlan(n *plan.Node) GroupId {
	children := make([]GroupId, len(n.Children))
	for i, c := range n.Children {
		children[i] = m.InsertPlan(c)
	}
	g, _ := m.InsertExpr(n.Op, children, nil)
	grp := m.groups[m.Find(g)]
	if !grp.logicalComputed {
		grp.logical = n.LogicalProperty(nil)
		grp.logicalComputed = true
	}
	return g
}

// BestPlan reconstructs the cheapest physical plan satisfying required out
// of the memo's root group's recorded winners, returning an error if no
// winner was ever recorded for that (group, required) pair (an
// errkind.NoWinner error).
func (m *Memo) BestPlan(required props.PhysicalPropertySet) (*plan.Plan, error) {
	idGen := plan.NewIdGen()
	root, err := m.buildWinner(m.Root(), required, idGen)
	if err != nil {
		return nil, err
	}
	return plan.NewPlan(root, idGen), nil
}

func (m *Memo) buildWinner(g GroupId, required props.PhysicalPropertySet, idGen *plan.IdGen) (*plan.Node, error) {
	grp := m.Group(g)
	winner, ok := grp.winners[required.Key()]
	if !ok {
		return nil, errkind.NoWinner.New(g, required.Key())
	}
	expr := m.exprs[winner.ExprId]
	children := make([]*plan.Node, len(expr.children))
	for i, childGroup := range expr.children {
		childRequired := props.PhysicalPropertySet{}
		if i < len(winner.ChildProps) {
			childRequired = winner.ChildProps[i]
		}
		child, err := m.buildWinner(childGroup, childRequired, idGen)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return plan.NewNode(idGen.Next(), expr.op, children...), nil
}

// UpdateWinner ratchets candidate into group g's winner table for required,
// keeping it only if cheaper than whatever is already recorded there.
// Reports whether candidate became (or stayed) the recorded winner.
func (m *Memo) UpdateWinner(g GroupId, required props.PhysicalPropertySet, candidate Winner) bool {
	grp := m.Group(g)
	key := required.Key()
	if existing, ok := grp.winners[key]; ok && !candidate.Cost.Less(existing.Cost) {
		return false
	}
	grp.winners[key] = candidate
	return true
}

// Winner looks up the recorded winner for (g, required), if any.
func (m *Memo) Winner(g GroupId, required props.PhysicalPropertySet) (Winner, bool) {
	w, ok := m.Group(g).winners[required.Key()]
	return w, ok
}

// Cost is a convenience alias so callers need not also import the cost
// package merely to name Winner.Cost's type when constructing one.
type Cost = cost.Cost

func (id GroupId) String() string     { return fmt.Sprintf("g%d", id) }
func (id GroupExprId) String() string { return fmt.Sprintf("e%d", id) }
