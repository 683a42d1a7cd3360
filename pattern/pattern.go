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

// Package pattern implements the tree-pattern and binding machinery shared by
// the Cascades rule engine (over the memo) and the heuristic optimizer (over
// a plan tree). A Pattern is matched against a Binder, an abstraction that
// lets both substrates reuse the same binding code.
package pattern

import "github.com/cascadesql/cascadesql/operator"

// Predicate decides whether an operator satisfies a pattern node.
type Predicate func(op operator.Operator) bool

// Pattern is a tree of predicates. A Pattern with no Children is a leaf: it
// matches any operator satisfying Predicate regardless of that operator's
// actual sub-children, which lets rules pin down only as much structure as
// they need (spec section 4.1).
type Pattern struct {
	Predicate Predicate
	Children  []*Pattern
}

// Leaf builds a pattern node that matches on predicate alone.
func Leaf(predicate Predicate) *Pattern {
	return &Pattern{Predicate: predicate}
}

// New builds a pattern node requiring predicate on this operator and, in
// order, each of children to match this operator's corresponding child.
func New(predicate Predicate, children ...*Pattern) *Pattern {
	return &Pattern{Predicate: predicate, Children: children}
}

// IsLeaf reports whether p imposes no constraint on children.
func (p *Pattern) IsLeaf() bool { return len(p.Children) == 0 }
