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

func isLimit(op operator.Operator) bool {
	_, ok := op.(operator.Limit)
	return ok
}

func isProjection(op operator.Operator) bool {
	_, ok := op.(operator.Projection)
	return ok
}

func isScan(op operator.Operator) bool {
	_, ok := op.(operator.Scan)
	return ok
}

func isJoin(op operator.Operator) bool {
	_, ok := op.(operator.Join)
	return ok
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// removeLimitRule merges a Limit directly over another Limit into a single
// Limit carrying the smaller of the two counts: Limit(n, Limit(m, x)) =>
// Limit(min(n, m), x). Grounded on RemoveLimitRule in
// dolomite/src/rules/limit_push_down.rs.
type removeLimitRule struct{}

func (r *removeLimitRule) ID() RuleId           { return RemoveLimit }
func (r *removeLimitRule) Promise() RulePromise { return Low }

func (r *removeLimitRule) Pattern() *pattern.Pattern {
	return pattern.New(isLimit, pattern.Leaf(isLimit))
}

func (r *removeLimitRule) Apply(expr pattern.OptExpression, ctx Context, result *Result) error {
	outer := expr.Operator().(operator.Limit)
	innerExpr := expr.Child(0)
	inner := innerExpr.Operator().(operator.Limit)

	merged := operator.NewLimit(minInt(outer.Count, inner.Count))
	grandchildren := ctx.ChildHandles(innerExpr.Handle())

	refs := make([]pattern.OptExpression, len(grandchildren))
	for i, h := range grandchildren {
		refs[i] = pattern.Ref(h)
	}
	result.Add(pattern.NewExpr(merged, refs...))
	return nil
}

// pushLimitOverProjectionRule swaps a Limit sitting above a Projection to
// below it, since limiting row count commutes with projecting columns:
// Limit(n, Projection(e, x)) => Projection(e, Limit(n, x)). Grounded on
// PushLimitOverProjectionRule in dolomite/src/rules/limit_push_down.rs.
type pushLimitOverProjectionRule struct{}

func (r *pushLimitOverProjectionRule) ID() RuleId           { return PushLimitOverProjection }
func (r *pushLimitOverProjectionRule) Promise() RulePromise { return Low }

func (r *pushLimitOverProjectionRule) Pattern() *pattern.Pattern {
	return pattern.New(isLimit, pattern.Leaf(isProjection))
}

func (r *pushLimitOverProjectionRule) Apply(expr pattern.OptExpression, ctx Context, result *Result) error {
	limit := expr.Operator().(operator.Limit)
	projExpr := expr.Child(0)
	proj := projExpr.Operator().(operator.Projection)

	grandchildren := ctx.ChildHandles(projExpr.Handle())
	refs := make([]pattern.OptExpression, len(grandchildren))
	for i, h := range grandchildren {
		refs[i] = pattern.Ref(h)
	}
	pushedLimit := pattern.NewExpr(operator.NewLimit(limit.Count), refs...)
	result.Add(pattern.NewExpr(proj, pushedLimit))
	return nil
}

// pushLimitToTableScanRule fuses a Limit directly over a Scan into the
// scan's own optional row limit, taking the smaller of the two when the scan
// already carries one: Limit(n, Scan(t)) => Scan(t, limit=n), or
// Scan(t, limit=min(n, m)) if the scan already had limit m. Grounded on
// PushLimitToTableScanRule in dolomite/src/rules/limit_push_down.rs.
type pushLimitToTableScanRule struct{}

func (r *pushLimitToTableScanRule) ID() RuleId           { return PushLimitToTableScan }
func (r *pushLimitToTableScanRule) Promise() RulePromise { return Low }

func (r *pushLimitToTableScanRule) Pattern() *pattern.Pattern {
	return pattern.New(isLimit, pattern.Leaf(isScan))
}

func (r *pushLimitToTableScanRule) Apply(expr pattern.OptExpression, ctx Context, result *Result) error {
	limit := expr.Operator().(operator.Limit)
	scanExpr := expr.Child(0)
	scan := scanExpr.Operator().(operator.Scan)

	count := limit.Count
	if scan.Limit != nil {
		count = minInt(count, *scan.Limit)
	}
	fused := operator.NewScanWithLimit(scan.Table, count)
	result.Add(pattern.NewExpr(fused))
	return nil
}
