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

package pattern

import "github.com/cascadesql/cascadesql/operator"

// Handle identifies a bindable target in whichever substrate a Binder
// wraps: a memo.GroupId in the Cascades path, or a *plan.Node in the
// heuristic path.
type Handle interface{}

// Expr is one concrete expression a Binder can hand out for a Handle: an
// operator together with per-position child handles. The memo's GroupExpr
// and the heuristic optimizer's plan-node adapter both implement this.
type Expr interface {
	Operator() operator.Operator
	NumChildren() int
	ChildHandle(i int) Handle
	// Self returns the handle that identifies this expression itself, used
	// as the root handle of an OptExpression binding.
	Self() Handle
}

// Binder abstracts over the memo (where a Handle may have several
// alternative Members, one per group expression) and the heuristic tree
// (where a Handle has exactly one Member, the node itself).
type Binder interface {
	Members(h Handle) []Expr
}

// OptExpression is a lightweight tree produced either by binding a Pattern
// against a Binder (existing=true: it refers into the memo or plan tree by
// Handle) or by a Rule constructing a replacement (existing=false: Operator
// and Children describe a brand new expression to be inserted). Ref wraps an
// existing handle with neither a known operator nor known children, for the
// common case of "reuse this child's group unchanged".
type OptExpression struct {
	handle   Handle
	existing bool
	operator operator.Operator
	children []OptExpression
}

// Ref wraps an existing handle (typically a child group obtained from
// Context.ChildHandles) for reuse, unchanged, as a child of a rule's
// replacement expression.
func Ref(h Handle) OptExpression {
	return OptExpression{handle: h, existing: true}
}

// NewExpr builds a freshly specified replacement expression: a new operator
// over new or reused (via Ref) children.
func NewExpr(op operator.Operator, children ...OptExpression) OptExpression {
	return OptExpression{operator: op, children: children}
}

func (e OptExpression) Handle() Handle             { return e.handle }
func (e OptExpression) IsExistingRef() bool        { return e.existing }
func (e OptExpression) HasOperator() bool          { return e.operator != nil }
func (e OptExpression) Operator() operator.Operator { return e.operator }
func (e OptExpression) NumChildren() int           { return len(e.children) }
func (e OptExpression) Child(i int) OptExpression   { return e.children[i] }
func (e OptExpression) Children() []OptExpression   { return e.children }

// Bind enumerates every way pattern can be matched starting at root,
// against binder. Each returned OptExpression is one complete binding: for
// a leaf pattern, that's one alternative per matching Member of root; for
// an interior pattern, it's the cross product of all matching bindings of
// each child pattern against the corresponding child handle.
func Bind(binder Binder, root Handle, pat *Pattern) []OptExpression {
	var out []OptExpression
	for _, expr := range binder.Members(root) {
		if !pat.Predicate(expr.Operator()) {
			continue
		}
		if pat.IsLeaf() {
			out = append(out, OptExpression{handle: expr.Self(), existing: true, operator: expr.Operator()})
			continue
		}
		if expr.NumChildren() != len(pat.Children) {
			continue
		}
		childBindings := make([][]OptExpression, len(pat.Children))
		complete := true
		for i, childPat := range pat.Children {
			childBindings[i] = Bind(binder, expr.ChildHandle(i), childPat)
			if len(childBindings[i]) == 0 {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		for _, combo := range cartesian(childBindings) {
			out = append(out, OptExpression{
				handle:   expr.Self(),
				existing: true,
				operator: expr.Operator(),
				children: combo,
			})
		}
	}
	return out
}

// cartesian computes the cross product of n slices of OptExpression,
// returning one []OptExpression per combination.
func cartesian(lists [][]OptExpression) [][]OptExpression {
	result := [][]OptExpression{{}}
	for _, list := range lists {
		var next [][]OptExpression
		for _, prefix := range result {
			for _, item := range list {
				combo := make([]OptExpression, len(prefix), len(prefix)+1)
				copy(combo, prefix)
				combo = append(combo, item)
				next = append(next, combo)
			}
		}
		result = next
	}
	return result
}
