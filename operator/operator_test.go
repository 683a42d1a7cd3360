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

package operator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cascadesql/cascadesql/operator"
)

func TestScanEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     operator.Scan
		expected bool
	}{
		{"same unbounded", operator.NewScan("orders"), operator.NewScan("orders"), true},
		{"different table", operator.NewScan("orders"), operator.NewScan("customers"), false},
		{"same limit", operator.NewScanWithLimit("orders", 10), operator.NewScanWithLimit("orders", 10), true},
		{"different limit", operator.NewScanWithLimit("orders", 10), operator.NewScanWithLimit("orders", 20), false},
		{"limit vs unbounded", operator.NewScanWithLimit("orders", 10), operator.NewScan("orders"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equal(tt.b))
		})
	}
}

func TestScanIsLogicalTableScanIsPhysical(t *testing.T) {
	require.False(t, operator.NewScan("t").IsPhysical())
	require.True(t, operator.NewTableScan("t").IsPhysical())
}

func TestJoinEqual(t *testing.T) {
	pred := operator.BinaryExpr{Op: "=", Left: operator.ColumnRef{Column: "a"}, Right: operator.ColumnRef{Column: "b"}}
	otherPred := operator.BinaryExpr{Op: "=", Left: operator.ColumnRef{Column: "a"}, Right: operator.ColumnRef{Column: "c"}}

	j1 := operator.NewJoin(operator.InnerJoin, pred)
	j2 := operator.NewJoin(operator.InnerJoin, pred)
	j3 := operator.NewJoin(operator.LeftJoin, pred)
	j4 := operator.NewJoin(operator.InnerJoin, otherPred)

	assert.True(t, j1.Equal(j2))
	assert.False(t, j1.Equal(j3))
	assert.False(t, j1.Equal(j4))
}

func TestOperatorsAreNeverEqualAcrossConcreteTypes(t *testing.T) {
	scan := operator.NewScan("t")
	tableScan := operator.NewTableScan("t")
	assert.False(t, scan.Equal(tableScan))
}

func TestColumnRefString(t *testing.T) {
	assert.Equal(t, "c", operator.ColumnRef{Column: "c"}.String())
	assert.Equal(t, "t.c", operator.ColumnRef{Table: "t", Column: "c"}.String())
}

func TestEqualExprLists(t *testing.T) {
	a := []operator.ScalarExpr{operator.ColumnRef{Column: "a"}, operator.Literal{Value: 1}}
	b := []operator.ScalarExpr{operator.ColumnRef{Column: "a"}, operator.Literal{Value: 1}}
	c := []operator.ScalarExpr{operator.ColumnRef{Column: "a"}, operator.Literal{Value: 2}}

	assert.True(t, operator.EqualExprLists(a, b))
	assert.False(t, operator.EqualExprLists(a, c))
}

func TestEqualColumnRefSetsIgnoresOrder(t *testing.T) {
	a := []operator.ColumnRef{{Column: "x"}, {Column: "y"}}
	b := []operator.ColumnRef{{Column: "y"}, {Column: "x"}}
	c := []operator.ColumnRef{{Column: "y"}}

	assert.True(t, operator.EqualColumnRefSets(a, b))
	assert.False(t, operator.EqualColumnRefSets(a, c))
}
