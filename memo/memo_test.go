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

package memo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadesql/cascadesql/memo"
	"github.com/cascadesql/cascadesql/operator"
	"github.com/cascadesql/cascadesql/plan"
	"github.com/cascadesql/cascadesql/props"
)

func TestInsertExprDedupsStructurallyIdenticalExpressions(t *testing.T) {
	m := memo.New()
	scanTable := m.InsertPlan(plan.NewNode(1, operator.NewScan("t")))

	g1, e1 := m.InsertExpr(operator.NewLimit(10), []memo.GroupId{scanTable}, nil)
	g2, e2 := m.InsertExpr(operator.NewLimit(10), []memo.GroupId{scanTable}, nil)

	require.Equal(t, g1, g2, "identical (op, children) must land in the same group")
	require.Equal(t, e1, e2, "identical (op, children) must reuse the existing GroupExpr")
}

func TestInsertExprDistinguishesDifferentOperators(t *testing.T) {
	m := memo.New()
	scanTable := m.InsertPlan(plan.NewNode(1, operator.NewScan("t")))

	g1, _ := m.InsertExpr(operator.NewLimit(10), []memo.GroupId{scanTable}, nil)
	g2, _ := m.InsertExpr(operator.NewLimit(20), []memo.GroupId{scanTable}, nil)

	require.NotEqual(t, g1, g2)
}

func TestInsertExprWithTargetMergesGroups(t *testing.T) {
	m := memo.New()
	scanA := m.InsertPlan(plan.NewNode(1, operator.NewScan("a")))
	scanB := m.InsertPlan(plan.NewNode(2, operator.NewScan("b")))

	limitOverA, _ := m.InsertExpr(operator.NewLimit(5), []memo.GroupId{scanA}, nil)
	target := scanB
	merged, _ := m.InsertExpr(operator.NewLimit(5), []memo.GroupId{scanA}, &target)

	require.Equal(t, m.Find(limitOverA), m.Find(merged))
	require.Equal(t, m.Find(scanB), m.Find(merged), "target group must survive or be merged into")
}

func TestInsertPlanBuildsChainOfSingletonGroups(t *testing.T) {
	m := memo.New()
	child := plan.NewNode(1, operator.NewScan("t"))
	root := plan.NewNode(2, operator.NewLimit(10), child)

	g := m.InsertPlan(root)
	require.Len(t, m.Group(g).Members(), 1)

	expr := m.Expr(m.Group(g).Members()[0])
	require.Equal(t, 1, len(expr.Children()))
}

func TestBestPlanReconstructsRecordedWinners(t *testing.T) {
	m := memo.New()
	scanGroup := m.InsertPlan(plan.NewNode(1, operator.NewScan("t")))
	tableScanExpr, tableScanExprId := m.InsertExpr(operator.NewTableScan("t"), nil, &scanGroup)
	require.Equal(t, scanGroup, tableScanExpr)

	required := props.Empty()
	m.UpdateWinner(scanGroup, required, memo.Winner{ExprId: tableScanExprId, Cost: 1})
	m.SetRoot(scanGroup)

	best, err := m.BestPlan(required)
	require.NoError(t, err)
	require.Equal(t, operator.NewTableScan("t"), best.Root().Op)
}

func TestBestPlanErrorsWithoutWinner(t *testing.T) {
	m := memo.New()
	g := m.InsertPlan(plan.NewNode(1, operator.NewScan("t")))
	m.SetRoot(g)

	_, err := m.BestPlan(props.Empty())
	require.Error(t, err)
}

func TestUpdateWinnerKeepsCheaperCandidate(t *testing.T) {
	m := memo.New()
	g := m.InsertPlan(plan.NewNode(1, operator.NewScan("t")))
	_, e1 := m.InsertExpr(operator.NewTableScan("t"), nil, &g)

	required := props.Empty()
	require.True(t, m.UpdateWinner(g, required, memo.Winner{ExprId: e1, Cost: 10}))
	require.False(t, m.UpdateWinner(g, required, memo.Winner{ExprId: e1, Cost: 20}), "a more expensive candidate must not replace the recorded winner")

	w, ok := m.Winner(g, required)
	require.True(t, ok)
	require.Equal(t, memo.Cost(10), w.Cost)
}

func TestGroupLogicalPropertyComputedOnce(t *testing.T) {
	m := memo.New()
	n := plan.NewNode(1, operator.NewScan("t"))
	n.SetLogicalProperty(props.LogicalProperty{Schema: props.Schema{{Name: "x"}}})
	g := m.InsertPlan(n)

	require.Equal(t, "x", m.Group(g).LogicalProperty().Schema[0].Name)
}
