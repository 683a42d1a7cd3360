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

// Package bridge converts between this module's plan.Node tree and an
// embedding host engine's own logical plan representation. Since the host
// engine itself is out of scope (spec section 1 treats the SQL front end as
// an external collaborator), HostNode stands in for whatever plan type a
// real host would supply — shaped, deliberately, like original_source's
// datafusion LogicalPlan (Projection/Limit/Join/TableScan/Filter) so the
// conversion logic below is a direct translation of
// datafusion-dolomite-integration/src/conversion/logical.rs rather than an
// invented shape.
package bridge

import (
	"fmt"

	"github.com/cascadesql/cascadesql/operator"
)

// HostNode is one node of a host engine's logical plan.
type HostNode interface {
	fmt.Stringer
	hostNode()
}

type hostBase struct{}

func (hostBase) hostNode() {}

// HostProjection computes exprs over Input.
type HostProjection struct {
	hostBase
	Exprs []operator.ScalarExpr
	Input HostNode
}

func (p *HostProjection) String() string { return fmt.Sprintf("HostProjection(%v)", p.Exprs) }

// HostLimit bounds Input to Fetch rows. Fetch is a ScalarExpr rather than a
// plain int because the host's own expression representation is what a real
// conversion would receive; FromHost requires it to be an operator.Literal
// holding an int, following the original's bail!-on-non-literal handling
// (spec section 9), but surfaced as a typed ConversionError rather than a
// panic.
type HostLimit struct {
	hostBase
	Fetch operator.ScalarExpr
	Input HostNode
}

func (l *HostLimit) String() string { return fmt.Sprintf("HostLimit(%s)", l.Fetch) }

// HostJoin combines Left and Right under Type filtered by On. ToHost
// produces this node; FromHost does not accept it (see bridge.go doc).
type HostJoin struct {
	hostBase
	Type        operator.JoinType
	On          operator.ScalarExpr
	Left, Right HostNode
}

func (j *HostJoin) String() string { return fmt.Sprintf("HostJoin(%s, %s)", j.Type, j.On) }

// HostTableScan reads Table.
type HostTableScan struct {
	hostBase
	Table string
}

func (t *HostTableScan) String() string { return fmt.Sprintf("HostTableScan(%s)", t.Table) }

// HostFilter keeps rows of Input matching Predicate.
type HostFilter struct {
	hostBase
	Predicate operator.ScalarExpr
	Input     HostNode
}

func (f *HostFilter) String() string { return fmt.Sprintf("HostFilter(%s)", f.Predicate) }
