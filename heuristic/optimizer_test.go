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

package heuristic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadesql/cascadesql/heuristic"
	"github.com/cascadesql/cascadesql/operator"
	"github.com/cascadesql/cascadesql/plan"
	"github.com/cascadesql/cascadesql/rule"
)

func TestBuiltinsExcludesCommutateJoin(t *testing.T) {
	for _, r := range heuristic.Builtins() {
		require.NotEqual(t, rule.CommutateJoin, r.ID())
	}
	require.Len(t, heuristic.Builtins(), 5)
}

func TestHeuristicOptimizeImplementsScanAndFusesLimit(t *testing.T) {
	idGen := plan.NewIdGen()
	scan := plan.NewNode(idGen.Next(), operator.NewScan("t"))
	limited := plan.NewNode(idGen.Next(), operator.NewLimit(10), scan)
	p := plan.NewPlan(limited, idGen)

	h := heuristic.New(heuristic.Builtins(), nil)
	out, err := h.Optimize(p)
	require.NoError(t, err)

	ts, ok := out.Root().Op.(operator.TableScan)
	require.True(t, ok)
	require.NotNil(t, ts.Limit)
	require.Equal(t, 10, *ts.Limit)
}

func TestHeuristicOptimizeImplementsJoinAsHashJoinPreservingOrder(t *testing.T) {
	idGen := plan.NewIdGen()
	predicate := operator.BinaryExpr{
		Op:    "=",
		Left:  operator.ColumnRef{Table: "orders", Column: "customer_id"},
		Right: operator.ColumnRef{Table: "customers", Column: "id"},
	}
	left := plan.NewNode(idGen.Next(), operator.NewScan("orders"))
	right := plan.NewNode(idGen.Next(), operator.NewScan("customers"))
	joinNode := plan.NewNode(idGen.Next(), operator.NewJoin(operator.InnerJoin, predicate), left, right)
	p := plan.NewPlan(joinNode, idGen)

	h := heuristic.New(heuristic.Builtins(), nil)
	out, err := h.Optimize(p)
	require.NoError(t, err)

	hj, ok := out.Root().Op.(operator.HashJoin)
	require.True(t, ok)
	require.Equal(t, operator.InnerJoin, hj.Type)
	require.Equal(t, "orders", out.Root().Children[0].Op.(operator.TableScan).Table)
	require.Equal(t, "customers", out.Root().Children[1].Op.(operator.TableScan).Table)
}

func TestHeuristicOptimizeMergesNestedLimits(t *testing.T) {
	idGen := plan.NewIdGen()
	scan := plan.NewNode(idGen.Next(), operator.NewScan("t"))
	inner := plan.NewNode(idGen.Next(), operator.NewLimit(5), scan)
	outer := plan.NewNode(idGen.Next(), operator.NewLimit(10), inner)
	p := plan.NewPlan(outer, idGen)

	h := heuristic.New(heuristic.Builtins(), nil)
	out, err := h.Optimize(p)
	require.NoError(t, err)

	ts, ok := out.Root().Op.(operator.TableScan)
	require.True(t, ok)
	require.Equal(t, 5, *ts.Limit)
}
