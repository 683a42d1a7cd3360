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

package cost_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadesql/cascadesql/cost"
	"github.com/cascadesql/cascadesql/operator"
)

type fakeStats map[string]float64

func (f fakeStats) RowCount(table string) (float64, bool) {
	v, ok := f[table]
	return v, ok
}

func TestSimpleCostModelWeighsByOperatorKind(t *testing.T) {
	m := cost.DefaultSimpleCostModel()
	scanCost := m.LocalCost(operator.NewScan("t"), nil)
	joinCost := m.LocalCost(operator.NewJoin(operator.InnerJoin, operator.Literal{Value: true}), []cost.Cost{scanCost, scanCost})

	require.True(t, scanCost.Less(joinCost))
}

func TestSimpleCostModelUsesStatsWhenPresent(t *testing.T) {
	m := cost.DefaultSimpleCostModel()
	m.Stats = fakeStats{"orders": 1000}

	withStats := m.LocalCost(operator.NewScan("orders"), nil)
	withoutStats := m.LocalCost(operator.NewScan("unknown_table"), nil)

	require.True(t, withoutStats.Less(withStats), "a table with a much higher row count estimate should cost more")
}

func TestCostLessAndSum(t *testing.T) {
	require.True(t, cost.Cost(1).Less(cost.Cost(2)))
	require.False(t, cost.Inf.Less(cost.Inf))
	require.Equal(t, cost.Cost(6), cost.Sum(cost.Cost(1), cost.Cost(2), cost.Cost(3)))
	require.Equal(t, cost.Cost(0), cost.Sum())
}
