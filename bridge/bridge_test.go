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

package bridge_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cascadesql/cascadesql/bridge"
	"github.com/cascadesql/cascadesql/operator"
	"github.com/cascadesql/cascadesql/plan"
	"github.com/cascadesql/cascadesql/props"
)

func TestToHostConvertsTableScan(t *testing.T) {
	n := plan.NewNode(1, operator.NewTableScan("t"))
	host, err := bridge.ToHost(n)
	require.NoError(t, err)

	ts, ok := host.(*bridge.HostTableScan)
	require.True(t, ok)
	require.Equal(t, "t", ts.Table)
}

func TestToHostConvertsLimitAsLiteralFetch(t *testing.T) {
	scan := plan.NewNode(1, operator.NewTableScan("t"))
	limit := plan.NewNode(2, operator.NewLimit(10), scan)

	host, err := bridge.ToHost(limit)
	require.NoError(t, err)

	hl, ok := host.(*bridge.HostLimit)
	require.True(t, ok)
	lit, ok := hl.Fetch.(operator.Literal)
	require.True(t, ok)
	require.Equal(t, 10, lit.Value)
}

func TestToHostRejectsUnsupportedOperator(t *testing.T) {
	n := plan.NewNode(1, operator.NewHashJoin(operator.InnerJoin, operator.Literal{Value: true}))
	_, err := bridge.ToHost(n)
	require.Error(t, err)
}

func TestFromHostConvertsTableScanResolvingSchema(t *testing.T) {
	schemas := plan.StaticSchemas{"t": props.Schema{{Name: "id"}}}
	idGen := plan.NewIdGen()

	n, err := bridge.FromHost(&bridge.HostTableScan{Table: "t"}, idGen, schemas)
	require.NoError(t, err)
	require.Equal(t, operator.NewScan("t"), n.Op)
	require.Len(t, n.LogicalProperty(nil).Schema, 1)
}

func TestFromHostLimitRequiresIntLiteral(t *testing.T) {
	idGen := plan.NewIdGen()
	schemas := plan.StaticSchemas{}

	_, err := bridge.FromHost(&bridge.HostLimit{
		Fetch: operator.ColumnRef{Column: "not-a-literal"},
		Input: &bridge.HostTableScan{Table: "t"},
	}, idGen, schemas)
	require.Error(t, err)

	n, err := bridge.FromHost(&bridge.HostLimit{
		Fetch: operator.Literal{Value: 5},
		Input: &bridge.HostTableScan{Table: "t"},
	}, idGen, schemas)
	require.NoError(t, err)
	require.Equal(t, operator.NewLimit(5), n.Op)
}

func TestFromHostJoinIsUnsupported(t *testing.T) {
	idGen := plan.NewIdGen()
	_, err := bridge.FromHost(&bridge.HostJoin{}, idGen, plan.StaticSchemas{})
	require.Error(t, err, "HostJoin conversion is deliberately one-directional (ToHost only)")
}

func TestFromHostFilterDefaultsCorrelatedRefsToEmpty(t *testing.T) {
	idGen := plan.NewIdGen()
	schemas := plan.StaticSchemas{"t": props.Schema{{Name: "id"}}}

	n, err := bridge.FromHost(&bridge.HostFilter{
		Predicate: operator.Literal{Value: true},
		Input:     &bridge.HostTableScan{Table: "t"},
	}, idGen, schemas)
	require.NoError(t, err)

	f, ok := n.Op.(operator.Filter)
	require.True(t, ok)
	require.Empty(t, f.CorrelatedRefs)
}
