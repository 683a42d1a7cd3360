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

package optimizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadesql/cascadesql/cost"
	"github.com/cascadesql/cascadesql/operator"
	"github.com/cascadesql/cascadesql/optimizer"
	"github.com/cascadesql/cascadesql/plan"
	"github.com/cascadesql/cascadesql/props"
	"github.com/cascadesql/cascadesql/rule"
)

func TestFindBestPlanFusesLimitIntoTableScan(t *testing.T) {
	idGen := plan.NewIdGen()
	scan := plan.NewNode(idGen.Next(), operator.NewScan("t"))
	limited := plan.NewNode(idGen.Next(), operator.NewLimit(10), scan)
	p := plan.NewPlan(limited, idGen)

	opt := optimizer.New()
	best, err := opt.FindBestPlan(p, props.Empty())
	require.NoError(t, err)

	ts, ok := best.Root().Op.(operator.TableScan)
	require.True(t, ok)
	require.Equal(t, 10, *ts.Limit)
}

func TestHeuristicOptimizeFusesLimitIntoTableScan(t *testing.T) {
	idGen := plan.NewIdGen()
	scan := plan.NewNode(idGen.Next(), operator.NewScan("t"))
	limited := plan.NewNode(idGen.Next(), operator.NewLimit(10), scan)
	p := plan.NewPlan(limited, idGen)

	opt := optimizer.New()
	best, err := opt.HeuristicOptimize(p)
	require.NoError(t, err)

	ts, ok := best.Root().Op.(operator.TableScan)
	require.True(t, ok)
	require.Equal(t, 10, *ts.Limit)
}

func TestWithRulesRestrictsAppliedRules(t *testing.T) {
	idGen := plan.NewIdGen()
	scan := plan.NewNode(idGen.Next(), operator.NewScan("t"))
	limited := plan.NewNode(idGen.Next(), operator.NewLimit(10), scan)
	p := plan.NewPlan(limited, idGen)

	// Without Scan2TableScan, no physical implementation of Scan exists, so
	// the search should fail to produce a winner.
	var onlyLimitRules []rule.Rule
	for _, r := range rule.Builtins() {
		if r.ID() == rule.RemoveLimit {
			onlyLimitRules = append(onlyLimitRules, r)
		}
	}

	opt := optimizer.New(optimizer.WithRules(onlyLimitRules))
	_, err := opt.FindBestPlan(p, props.Empty())
	require.Error(t, err, "without a physical implementation rule for Scan, no winner can be recorded")
}

func TestWithCostModelIsUsedDuringSearch(t *testing.T) {
	idGen := plan.NewIdGen()
	scan := plan.NewNode(idGen.Next(), operator.NewScan("t"))
	p := plan.NewPlan(scan, idGen)

	custom := cost.DefaultSimpleCostModel()
	custom.ScanWeight = 0.001

	opt := optimizer.New(optimizer.WithCostModel(custom))
	best, err := opt.FindBestPlan(p, props.Empty())
	require.NoError(t, err)
	require.NotNil(t, best.Root())
}
