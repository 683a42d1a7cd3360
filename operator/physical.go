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

// TableScan is the physical implementation of Scan, produced by the
// Scan2TableScan rule.
type TableScan struct {
	physicalBase
	Table string
	Limit *int
}

func NewTableScan(table string) TableScan { return TableScan{Table: table} }

func NewTableScanWithLimit(table string, limit int) TableScan {
	l := limit
	return TableScan{Table: table, Limit: &l}
}

func (t TableScan) String() string {
	if t.Limit != nil {
		return fmt.Sprintf("TableScan(%s, limit=%d)", t.Table, *t.Limit)
	}
	return fmt.Sprintf("TableScan(%s)", t.Table)
}

func (t TableScan) Equal(other Operator) bool {
	o, ok := other.(TableScan)
	if !ok || o.Table != t.Table {
		return false
	}
	if (t.Limit == nil) != (o.Limit == nil) {
		return false
	}
	return t.Limit == nil || *t.Limit == *o.Limit
}

// HashJoin is the physical implementation of Join produced by Join2HashJoin.
// It builds a hash table over its right input keyed by the join predicate.
type HashJoin struct {
	physicalBase
	Type      JoinType
	Predicate ScalarExpr
}

func NewHashJoin(joinType JoinType, predicate ScalarExpr) HashJoin {
	return HashJoin{Type: joinType, Predicate: predicate}
}

func (h HashJoin) String() string { return fmt.Sprintf("HashJoin(%s, %s)", h.Type, h.Predicate) }

func (h HashJoin) Equal(other Operator) bool {
	o, ok := other.(HashJoin)
	return ok && o.Type == h.Type && o.Predicate.Equal(h.Predicate)
}

// SortEnforcer is inserted by the scheduler (xform's enforceOrdering) when a
// group must deliver a sort order that none of its members delivers on its
// own. Keys is the ordering it delivers; the scheduler compares it against a
// required property set to decide whether the enforcer satisfies it. The
// cost model charges it a flat weight regardless of Keys.
type SortEnforcer struct {
	physicalBase
	Keys []string
}

func NewSortEnforcer(keys []string) SortEnforcer { return SortEnforcer{Keys: keys} }

func (s SortEnforcer) String() string { return fmt.Sprintf("Sort(%v)", s.Keys) }

func (s SortEnforcer) Equal(other Operator) bool {
	o, ok := other.(SortEnforcer)
	if !ok || len(o.Keys) != len(s.Keys) {
		return false
	}
	for i := range s.Keys {
		if s.Keys[i] != o.Keys[i] {
			return false
		}
	}
	return true
}
