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

// scan2TableScanRule implements a logical Scan as a physical TableScan,
// carrying over any row limit already fused into the scan by
// PushLimitToTableScan. Grounded on Scan2TableScanRule exercised by
// test_optimize_join in dolomite/src/cascades/optimizer.rs.
type scan2TableScanRule struct{}

func (r *scan2TableScanRule) ID() RuleId           { return Scan2TableScan }
func (r *scan2TableScanRule) Promise() RulePromise { return High }

func (r *scan2TableScanRule) Pattern() *pattern.Pattern {
	return pattern.Leaf(isScan)
}

func (r *scan2TableScanRule) Apply(expr pattern.OptExpression, ctx Context, result *Result) error {
	scan := expr.Operator().(operator.Scan)
	if scan.Limit != nil {
		result.Add(pattern.NewExpr(operator.NewTableScanWithLimit(scan.Table, *scan.Limit)))
		return nil
	}
	result.Add(pattern.NewExpr(operator.NewTableScan(scan.Table)))
	return nil
}
