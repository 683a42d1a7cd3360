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

import (
	"github.com/cascadesql/cascadesql/operator"
	"github.com/cascadesql/cascadesql/pattern"
)

// Members implements pattern.Binder: h must be a GroupId, and the returned
// Exprs are one per expression currently in that group (after resolving h
// through Find), each wrapping a specific GroupExprId so a Rule's Apply can
// later recover that exact expression's children via ChildHandles.
func (m *Memo) Members(h pattern.Handle) []pattern.Expr {
	g, ok := h.(GroupId)
	if !ok {
		return nil
	}
	grp := m.Group(g)
	out := make([]pattern.Expr, len(grp.members))
	for i, id := range grp.members {
		out[i] = memoExpr{m: m, id: id}
	}
	return out
}

// memoExpr adapts a GroupExpr to pattern.Expr. Self returns the
// GroupExprId (identifying this specific alternative within its group) so
// that a rule.Context's ChildHandles, and the scheduler's applied-rule
// bookkeeping, can address exactly the bound expression rather than its
// whole group. ChildHandle returns child GroupIds so pattern.Bind can
// recurse into them by enumerating each child group's members in turn.
type memoExpr struct {
	m  *Memo
	id GroupExprId
}

func (e memoExpr) Operator() operator.Operator { return e.m.exprs[e.id].op }
func (e memoExpr) NumChildren() int            { return len(e.m.exprs[e.id].children) }
func (e memoExpr) ChildHandle(i int) pattern.Handle {
	return e.m.exprs[e.id].children[i]
}
func (e memoExpr) Self() pattern.Handle { return e.id }

// ChildHandles returns the real child GroupIds of the expression identified
// by h (a GroupExprId), independent of how deep a pattern bound it,
// satisfying rule.Context for the Cascades path.
func (m *Memo) ChildHandles(h pattern.Handle) []pattern.Handle {
	id, ok := h.(GroupExprId)
	if !ok {
		return nil
	}
	children := m.exprs[id].children
	out := make([]pattern.Handle, len(children))
	for i, g := range children {
		out[i] = g
	}
	return out
}
