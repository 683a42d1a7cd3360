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

package bridge

import (
	"fmt"

	"github.com/cascadesql/cascadesql/operator"
	"github.com/cascadesql/cascadesql/optimizer/errkind"
	"github.com/cascadesql/cascadesql/plan"
)

// ToHost converts a plan.Node tree into the host's own representation.
// Supported operators are Projection, Limit, Join and TableScan, matching
// to_df_logical/plan_node_to_df_logical_plan in
// datafusion-dolomite-integration/src/conversion/logical.rs; anything else
// returns an errkind.UnsupportedOperator error.
func ToHost(n *plan.Node) (HostNode, error) {
	switch op := n.Op.(type) {
	case operator.TableScan:
		return &HostTableScan{Table: op.Table}, nil

	case operator.Projection:
		input, err := ToHost(n.Children[0])
		if err != nil {
			return nil, err
		}
		return &HostProjection{Exprs: op.Exprs, Input: input}, nil

	case operator.Limit:
		input, err := ToHost(n.Children[0])
		if err != nil {
			return nil, err
		}
		return &HostLimit{Fetch: operator.Literal{Value: op.Count}, Input: input}, nil

	case operator.Join:
		left, err := ToHost(n.Children[0])
		if err != nil {
			return nil, err
		}
		right, err := ToHost(n.Children[1])
		if err != nil {
			return nil, err
		}
		return &HostJoin{Type: op.Type, On: op.Predicate, Left: left, Right: right}, nil

	default:
		return nil, errkind.UnsupportedOperator.New(fmt.Sprintf("%T (ToHost)", n.Op))
	}
}

// FromHost converts a HostNode tree into a plan.Node tree rooted for
// optimization, allocating node ids from idGen and resolving base table
// schemas through schemas. Supported nodes are Projection, Limit, TableScan
// and Filter, matching from_df_logical/df_logical_plan_to_plan_node in the
// same source file. HostJoin is deliberately unsupported in this direction:
// the original leaves Join's conversion commented out, noting the ambiguity
// in how a join condition's column references would need to be represented
// going the other way, and this port preserves that asymmetry rather than
// inventing a resolution for it (spec section 9).
func FromHost(h HostNode, idGen *plan.IdGen, schemas plan.SchemaProvider) (*plan.Node, error) {
	switch host := h.(type) {
	case *HostTableScan:
		schema, _ := schemas.TableSchema(host.Table)
		n := plan.NewNode(idGen.Next(), operator.NewScan(host.Table))
		n.LogicalProperty(schema)
		return n, nil

	case *HostFilter:
		input, err := FromHost(host.Input, idGen, schemas)
		if err != nil {
			return nil, err
		}
		// original_source's Filter conversion defaults correlated column
		// references to an empty list regardless of whether Predicate is
		// actually correlated (marked FIXME in logical.rs as a
		// questionable default); preserved here rather than guessed at.
		n := plan.NewNode(idGen.Next(), operator.NewFilter(host.Predicate, nil), input)
		n.LogicalProperty(nil)
		return n, nil

	case *HostProjection:
		input, err := FromHost(host.Input, idGen, schemas)
		if err != nil {
			return nil, err
		}
		// Expression typing is out of scope (spec section 6 treats exprs as
		// opaque), so a Projection's own output schema cannot be computed
		// here; its input's schema is reused as the closest available
		// approximation, a known limitation rather than a silent guess.
		n := plan.NewNode(idGen.Next(), operator.NewProjection(host.Exprs), input)
		n.LogicalProperty(input.LogicalProperty(nil).Schema)
		return n, nil

	case *HostLimit:
		lit, ok := host.Fetch.(operator.Literal)
		if !ok {
			return nil, errkind.ConversionError.New("Limit fetch must be a literal expression")
		}
		count, ok := lit.Value.(int)
		if !ok {
			return nil, errkind.ConversionError.New("Limit fetch literal must hold an int")
		}
		input, err := FromHost(host.Input, idGen, schemas)
		if err != nil {
			return nil, err
		}
		n := plan.NewNode(idGen.Next(), operator.NewLimit(count), input)
		n.LogicalProperty(nil)
		return n, nil

	case *HostJoin:
		return nil, errkind.UnsupportedOperator.New("HostJoin (FromHost)")

	default:
		return nil, errkind.UnsupportedOperator.New(fmt.Sprintf("%T (FromHost)", h))
	}
}
