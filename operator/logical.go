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

package operator

import "fmt"

// Scan reads rows from a base table, optionally bounded by a row limit that
// has been fused in by PushLimitToTableScan (or its logical analogue). A nil
// Limit means unbounded.
type Scan struct {
	logicalBase
	Table string
	Limit *int
}

// NewScan builds an unbounded Scan of the named table.
func NewScan(table string) Scan { return Scan{Table: table} }

// NewScanWithLimit builds a Scan bounded to at most limit rows.
func NewScanWithLimit(table string, limit int) Scan {
	l := limit
	return Scan{Table: table, Limit: &l}
}

func (s Scan) String() string {
	if s.Limit != nil {
		return fmt.Sprintf("Scan(%s, limit=%d)", s.Table, *s.Limit)
	}
	return fmt.Sprintf("Scan(%s)", s.Table)
}

func (s Scan) Equal(other Operator) bool {
	o, ok := other.(Scan)
	if !ok || o.Table != s.Table {
		return false
	}
	if (s.Limit == nil) != (o.Limit == nil) {
		return false
	}
	return s.Limit == nil || *s.Limit == *o.Limit
}

// Filter keeps only rows for which Predicate holds. CorrelatedRefs names the
// outer-scope columns the predicate references; it may legitimately be empty
// even when the predicate is correlated, since bridge conversion from a host
// plan cannot always recover this set (see bridge package doc).
type Filter struct {
	logicalBase
	Predicate      ScalarExpr
	CorrelatedRefs []ColumnRef
}

func NewFilter(predicate ScalarExpr, correlated []ColumnRef) Filter {
	return Filter{Predicate: predicate, CorrelatedRefs: correlated}
}

func (f Filter) String() string { return fmt.Sprintf("Filter(%s)", f.Predicate) }

func (f Filter) Equal(other Operator) bool {
	o, ok := other.(Filter)
	if !ok || !o.Predicate.Equal(f.Predicate) {
		return false
	}
	return EqualColumnRefSets(f.CorrelatedRefs, o.CorrelatedRefs)
}

// Projection computes a new row shape from a list of scalar expressions,
// without aggregation.
type Projection struct {
	logicalBase
	Exprs []ScalarExpr
}

func NewProjection(exprs []ScalarExpr) Projection { return Projection{Exprs: exprs} }

func (p Projection) String() string { return fmt.Sprintf("Projection(%v)", p.Exprs) }

func (p Projection) Equal(other Operator) bool {
	o, ok := other.(Projection)
	return ok && EqualExprLists(p.Exprs, o.Exprs)
}

// Limit bounds the number of rows produced by its child to Count.
type Limit struct {
	logicalBase
	Count int
}

func NewLimit(count int) Limit { return Limit{Count: count} }

func (l Limit) String() string { return fmt.Sprintf("Limit(%d)", l.Count) }

func (l Limit) Equal(other Operator) bool {
	o, ok := other.(Limit)
	return ok && o.Count == l.Count
}

// Join combines two inputs under JoinType semantics, filtered by Predicate.
type Join struct {
	logicalBase
	Type      JoinType
	Predicate ScalarExpr
}

func NewJoin(joinType JoinType, predicate ScalarExpr) Join {
	return Join{Type: joinType, Predicate: predicate}
}

func (j Join) String() string { return fmt.Sprintf("Join(%s, %s)", j.Type, j.Predicate) }

func (j Join) Equal(other Operator) bool {
	o, ok := other.(Join)
	return ok && o.Type == j.Type && o.Predicate.Equal(j.Predicate)
}
