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

// Package rule defines the transformation/implementation rule contract
// shared by the Cascades scheduler (xform) and the heuristic optimizer
// (heuristic), along with the built-in rule set (spec section 4.1).
package rule

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/cascadesql/cascadesql/pattern"
)

// RuleId is a stable, small identifier for a rule, used as a bit position in
// a GroupExpr's applied-rules set so a rule never fires twice against the
// same expression (spec section 4.2). Ids 0..builtinRuleCount are reserved
// for the built-in rules below; a host registering custom rules should start
// numbering at FirstCustomRuleId.
type RuleId uint8

const (
	CommutateJoin RuleId = iota
	RemoveLimit
	PushLimitOverProjection
	PushLimitToTableScan
	Scan2TableScan
	Join2HashJoin

	builtinRuleCount
)

// FirstCustomRuleId is the first RuleId a host may assign to its own rules.
const FirstCustomRuleId = builtinRuleCount

func (id RuleId) String() string {
	switch id {
	case CommutateJoin:
		return "CommutateJoin"
	case RemoveLimit:
		return "RemoveLimit"
	case PushLimitOverProjection:
		return "PushLimitOverProjection"
	case PushLimitToTableScan:
		return "PushLimitToTableScan"
	case Scan2TableScan:
		return "Scan2TableScan"
	case Join2HashJoin:
		return "Join2HashJoin"
	default:
		return "RuleId(" + strconv.Itoa(int(id)) + ")"
	}
}

// RulePromise orders rule application within a group: High-promise rules
// (typically implementation rules that produce a physical alternative
// directly usable as a winner) are tried before Low-promise ones (typically
// transformation rules that only reshape the logical search space), per
// spec section 4.1.
type RulePromise uint8

const (
	Low RulePromise = iota
	High
)

// Context carries the ambient services a rule's Apply may need beyond what
// its bound OptExpression already contains. Both the xform (memo-backed) and
// heuristic (tree-backed) optimizers implement it.
type Context interface {
	// ChildHandles returns the actual child handles of the expression bound
	// at h, independent of how deep the pattern that matched h recursed.
	// A leaf pattern only binds h itself, not its children; rules that need
	// to reattach or reorder those children (RemoveLimit's grandchild,
	// CommutateJoin's swap) fetch them here.
	ChildHandles(h pattern.Handle) []pattern.Handle
	// Log is the logger a rule may use to record why it did or didn't fire.
	Log() *logrus.Entry
}

// Result collects the zero or more replacement expressions a rule's Apply
// produces. Each is inserted into the same group/node the pattern bound at
// its root (spec section 4.2).
type Result struct {
	Exprs []pattern.OptExpression
}

// Add appends a replacement expression to the result.
func (r *Result) Add(e pattern.OptExpression) {
	r.Exprs = append(r.Exprs, e)
}

// Rule is one transformation or implementation rule: a pattern describing
// what it matches, and an Apply producing zero or more replacements when it
// does.
type Rule interface {
	ID() RuleId
	Promise() RulePromise
	Pattern() *pattern.Pattern
	Apply(expr pattern.OptExpression, ctx Context, result *Result) error
}

// Builtins returns the six rules named in spec section 4.1, in no
// particular order; callers needing a stable order should sort by ID.
func Builtins() []Rule {
	return []Rule{
		&commutateJoinRule{},
		&removeLimitRule{},
		&pushLimitOverProjectionRule{},
		&pushLimitToTableScanRule{},
		&scan2TableScanRule{},
		&join2HashJoinRule{},
	}
}
