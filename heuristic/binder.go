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

// Package heuristic implements the simpler, non-cost-based optimizer: a
// fixpoint rewrite of a single mutable-by-replacement plan tree, reusing the
// pattern/rule machinery the Cascades path (xform) also shares. It trades
// the memo's ability to keep multiple competing alternatives for lower
// overhead, at the cost of needing each rule in its set to be confluent
// (spec section 4.5).
package heuristic

import (
	"github.com/sirupsen/logrus"

	"github.com/cascadesql/cascadesql/operator"
	"github.com/cascadesql/cascadesql/pattern"
	"github.com/cascadesql/cascadesql/plan"
)

// treeBinder implements pattern.Binder over a *plan.Node tree, where every
// Handle has exactly one Member: the node itself. There is no group, and so
// no cross-expression alternatives to choose between — the whole reason this
// optimizer needs no cost model.
type treeBinder struct{}

func (treeBinder) Members(h pattern.Handle) []pattern.Expr {
	n, ok := h.(*plan.Node)
	if !ok {
		return nil
	}
	return []pattern.Expr{nodeExpr{n}}
}

type nodeExpr struct{ n *plan.Node }

func (e nodeExpr) Operator() operator.Operator       { return e.n.Op }
func (e nodeExpr) NumChildren() int                  { return len(e.n.Children) }
func (e nodeExpr) ChildHandle(i int) pattern.Handle   { return e.n.Children[i] }
func (e nodeExpr) Self() pattern.Handle               { return e.n }

// treeContext implements rule.Context over the plan tree: a node's actual
// children are always exactly its Children slice, regardless of how deep the
// pattern that bound it recursed.
type treeContext struct {
	log *logrus.Entry
}

func (c *treeContext) ChildHandles(h pattern.Handle) []pattern.Handle {
	n, ok := h.(*plan.Node)
	if !ok {
		return nil
	}
	out := make([]pattern.Handle, len(n.Children))
	for i, c := range n.Children {
		out[i] = c
	}
	return out
}

func (c *treeContext) Log() *logrus.Entry { return c.log }
