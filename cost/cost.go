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

// Package cost implements the scalar cost type and pluggable cost model used
// by the scheduler to rank competing physical alternatives within a group
// (spec section 4.3). Grounded on dolomite/src/cost/mod.rs.
package cost

import (
	"math"

	"github.com/cascadesql/cascadesql/operator"
)

// Cost is a single scalar figure of merit, lower is better. It is a plain
// float64 newtype rather than a multi-dimensional vector, matching the
// source model's simplicity (spec section 9 decides against a richer cost
// vector as an unneeded complication for this scope).
type Cost float64

// Inf is the cost assigned to a plan that cannot be built (e.g. no winner
// exists yet for a required child property), and used as the initial upper
// bound a scheduler task ratchets down from.
const Inf Cost = Cost(math.Inf(1))

// Less reports whether c is strictly cheaper than other.
func (c Cost) Less(other Cost) bool { return c < other }

// Add returns the sum of c and other; Inf absorbs any finite addend.
func (c Cost) Add(other Cost) Cost { return c + other }

// Sum totals a slice of costs, returning 0 for an empty slice.
func Sum(costs ...Cost) Cost {
	var total Cost
	for _, c := range costs {
		total += c
	}
	return total
}

// StatsProvider supplies the row count estimate a Model needs to weigh an
// operator; a host with real table statistics implements this over its
// catalog, and statscache.BoltStats is the example implementation bundled
// here.
type StatsProvider interface {
	RowCount(table string) (float64, bool)
}

// Model computes the local cost of a single expression (its operator plus
// its children's *already-known* costs) without recursing itself; the
// scheduler is responsible for accumulating child costs before calling
// LocalCost (spec section 4.3).
type Model interface {
	LocalCost(op operator.Operator, childCosts []Cost) Cost
}

// SimpleCostModel is a per-operator-kind weighted model: each operator
// contributes a fixed weight plus the sum of its children's costs, with
// Scan/TableScan additionally weighted by estimated row count when Stats is
// set. It is deliberately simple (spec section 9 rejects a richer
// statistics-driven model as out of scope) but pluggable enough for a host to
// swap in.
type SimpleCostModel struct {
	Stats StatsProvider

	ScanWeight    Cost
	FilterWeight  Cost
	ProjectWeight Cost
	LimitWeight   Cost
	JoinWeight    Cost
	SortWeight    Cost
}

// DefaultSimpleCostModel returns a SimpleCostModel with reasonable flat
// per-operator weights and no row-count statistics.
func DefaultSimpleCostModel() *SimpleCostModel {
	return &SimpleCostModel{
		ScanWeight:    1,
		FilterWeight:  1,
		ProjectWeight: 1,
		LimitWeight:   0.5,
		JoinWeight:    10,
		SortWeight:    5,
	}
}

func (m *SimpleCostModel) LocalCost(op operator.Operator, childCosts []Cost) Cost {
	local := m.weight(op)
	return local + Sum(childCosts...)
}

func (m *SimpleCostModel) weight(op operator.Operator) Cost {
	switch o := op.(type) {
	case operator.Scan:
		return m.scanWeight(o.Table)
	case operator.TableScan:
		return m.scanWeight(o.Table)
	case operator.Filter:
		return m.FilterWeight
	case operator.Projection:
		return m.ProjectWeight
	case operator.Limit:
		return m.LimitWeight
	case operator.Join:
		return m.JoinWeight
	case operator.HashJoin:
		return m.JoinWeight
	case operator.SortEnforcer:
		return m.SortWeight
	default:
		return 1
	}
}

func (m *SimpleCostModel) scanWeight(table string) Cost {
	if m.Stats == nil {
		return m.ScanWeight
	}
	rows, ok := m.Stats.RowCount(table)
	if !ok {
		return m.ScanWeight
	}
	return m.ScanWeight * Cost(rows)
}
