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

package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadesql/cascadesql/operator"
	"github.com/cascadesql/cascadesql/pattern"
)

// fakeExpr/fakeBinder wrap a tiny fixed tree of operators, one Member per
// node, so Bind's single-member (heuristic-tree-like) path can be exercised
// without pulling in the memo or plan packages.
type fakeExpr struct {
	id       int
	op       operator.Operator
	children []int
}

type fakeBinder map[int]fakeExpr

func (b fakeBinder) Members(h pattern.Handle) []pattern.Expr {
	return []pattern.Expr{fakeExprAdapter{b: b, id: h.(int)}}
}

type fakeExprAdapter struct {
	b  fakeBinder
	id int
}

func (a fakeExprAdapter) Operator() operator.Operator   { return a.b[a.id].op }
func (a fakeExprAdapter) NumChildren() int               { return len(a.b[a.id].children) }
func (a fakeExprAdapter) ChildHandle(i int) pattern.Handle { return a.b[a.id].children[i] }
func (a fakeExprAdapter) Self() pattern.Handle           { return a.id }

func isLimit(op operator.Operator) bool {
	_, ok := op.(operator.Limit)
	return ok
}

func isScan(op operator.Operator) bool {
	_, ok := op.(operator.Scan)
	return ok
}

func TestBindLeafPattern(t *testing.T) {
	b := fakeBinder{
		0: {id: 0, op: operator.NewLimit(10), children: []int{1}},
		1: {id: 1, op: operator.NewScan("t")},
	}
	pat := pattern.Leaf(isLimit)
	bindings := pattern.Bind(b, 0, pat)
	require.Len(t, bindings, 1)
	require.True(t, bindings[0].IsExistingRef())
	require.Equal(t, 0, bindings[0].Handle())
}

func TestBindInteriorPatternRecursesIntoChildren(t *testing.T) {
	b := fakeBinder{
		0: {id: 0, op: operator.NewLimit(10), children: []int{1}},
		1: {id: 1, op: operator.NewScan("t")},
	}
	pat := pattern.New(isLimit, pattern.Leaf(isScan))
	bindings := pattern.Bind(b, 0, pat)
	require.Len(t, bindings, 1)
	require.Equal(t, 1, bindings[0].NumChildren())
	require.Equal(t, 1, bindings[0].Child(0).Handle())
}

func TestBindNoMatchReturnsEmpty(t *testing.T) {
	b := fakeBinder{0: {id: 0, op: operator.NewScan("t")}}
	pat := pattern.Leaf(isLimit)
	require.Empty(t, pattern.Bind(b, 0, pat))
}

func TestBindChildArityMismatchExcludesCandidate(t *testing.T) {
	b := fakeBinder{
		0: {id: 0, op: operator.NewLimit(10)}, // no children, pattern wants one
	}
	pat := pattern.New(isLimit, pattern.Leaf(isScan))
	require.Empty(t, pattern.Bind(b, 0, pat))
}

func TestNewExpressionAndRef(t *testing.T) {
	ref := pattern.Ref(42)
	require.True(t, ref.IsExistingRef())
	require.False(t, ref.HasOperator())

	fresh := pattern.NewExpr(operator.NewScan("t"), ref)
	require.False(t, fresh.IsExistingRef())
	require.True(t, fresh.HasOperator())
	require.Equal(t, 1, fresh.NumChildren())
}
