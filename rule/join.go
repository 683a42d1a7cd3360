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

package rule

import (
	"github.com/cascadesql/cascadesql/operator"
	"github.com/cascadesql/cascadesql/pattern"
)

// commutateJoinRule reorders a Join's inputs, producing a logically
// equivalent alternative in the same group for the Join2HashJoin rule (and
// the coster) to consider against the original order. Grounded on the
// CommutateJoinRule exercised by test_optimize_join in
// dolomite/src/cascades/optimizer.rs.
type commutateJoinRule struct{}

func (r *commutateJoinRule) ID() RuleId           { return CommutateJoin }
func (r *commutateJoinRule) Promise() RulePromise { return Low }

func (r *commutateJoinRule) Pattern() *pattern.Pattern {
	return pattern.Leaf(isJoin)
}

func (r *commutateJoinRule) Apply(expr pattern.OptExpression, ctx Context, result *Result) error {
	join := expr.Operator().(operator.Join)
	children := ctx.ChildHandles(expr.Handle())
	if len(children) != 2 {
		return nil
	}
	swapped := operator.NewJoin(join.Type, join.Predicate)
	result.Add(pattern.NewExpr(swapped, pattern.Ref(children[1]), pattern.Ref(children[0])))
	return nil
}

// join2HashJoinRule implements a logical Join as a physical HashJoin,
// keeping the same input order. Grounded on Join2HashJoinRule exercised by
// test_optimize_join in dolomite/src/cascades/optimizer.rs.
type join2HashJoinRule struct{}

func (r *join2HashJoinRule) ID() RuleId           { return Join2HashJoin }
func (r *join2HashJoinRule) Promise() RulePromise { return High }

func (r *join2HashJoinRule) Pattern() *pattern.Pattern {
	return pattern.Leaf(isJoin)
}

func (r *join2HashJoinRule) Apply(expr pattern.OptExpression, ctx Context, result *Result) error {
	join := expr.Operator().(operator.Join)
	children := ctx.ChildHandles(expr.Handle())
	refs := make([]pattern.OptExpression, len(children))
	for i, h := range children {
		refs[i] = pattern.Ref(h)
	}
	result.Add(pattern.NewExpr(operator.NewHashJoin(join.Type, join.Predicate), refs...))
	return nil
}
