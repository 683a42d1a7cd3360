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

package memo

import (
	"github.com/cascadesql/cascadesql/operator"
	"github.com/cascadesql/cascadesql/rule"
)

// GroupExpr is one concrete expression belonging to a Group: an operator
// over a fixed list of child groups, plus the set of rules already applied
// to it so the scheduler's ApplyRule task never fires the same rule against
// the same expression twice (spec section 4.2).
type GroupExpr struct {
	id       GroupExprId
	op       operator.Operator
	children []GroupId
	group    GroupId

	applied ruleBitset
}

// Operator returns the expression's operator.
func (e *GroupExpr) Operator() operator.Operator { return e.op }

// Children returns the expression's child groups, in order.
func (e *GroupExpr) Children() []GroupId { return e.children }

// Group returns the group this expression belongs to.
func (e *GroupExpr) Group() GroupId { return e.group }

// HasApplied reports whether id has already fired against this expression.
func (e *GroupExpr) HasApplied(id rule.RuleId) bool { return e.applied.has(id) }

// MarkApplied records that id has fired against this expression.
func (e *GroupExpr) MarkApplied(id rule.RuleId) { e.applied.set(id) }

// ruleBitset tracks applied RuleIds in a single uint64, which comfortably
// covers the six built-in rules plus a generous allowance of host-defined
// ones; a host registering more than 58 custom rules (RuleIds 64 and up)
// would need a wider
// representation, which is not a scope this optimizer core targets.
type ruleBitset uint64

func (b ruleBitset) has(id rule.RuleId) bool { return b&(1<<uint(id)) != 0 }
func (b *ruleBitset) set(id rule.RuleId)     { *b |= 1 << uint(id) }
