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

// Package xform implements the Cascades scheduler: the depth-first,
// cost-bounded search that explores a memo's groups by applying rules and
// costs every physical alternative it produces, recording a winner per
// (group, required physical properties) pair (spec section 4.2, 4.3).
// Grounded on the recursive optimizeGroup/optimizeGroupMember/enforceProps
// structure of pkg/sql/opt/xform/optimizer.go (cockroachdb).
package xform

import (
	"sort"

	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/cascadesql/cascadesql/cost"
	"github.com/cascadesql/cascadesql/memo"
	"github.com/cascadesql/cascadesql/metrics"
	"github.com/cascadesql/cascadesql/operator"
	"github.com/cascadesql/cascadesql/optimizer/errkind"
	"github.com/cascadesql/cascadesql/pattern"
	"github.com/cascadesql/cascadesql/plan"
	"github.com/cascadesql/cascadesql/props"
	"github.com/cascadesql/cascadesql/rule"
)

// Optimizer runs the Cascades search over a Memo.
type Optimizer struct {
	m         *memo.Memo
	rules     []rule.Rule
	costModel cost.Model
	log       *logrus.Entry
	metrics   *metrics.Scheduler
	sessionID uuid.UUID
}

// AttachMetrics wires m into the scheduler so subsequent Optimize calls
// report through it. A nil Optimizer.metrics (the default) simply skips
// every metrics call below.
func (o *Optimizer) AttachMetrics(m *metrics.Scheduler) { o.metrics = m }

// New builds an Optimizer over m, applying rules in order of RulePromise
// (High before Low) within each exploration pass, using costModel to rank
// physical alternatives. A nil log is replaced by a fresh logrus logger with
// default settings. Each
// Optimizer gets its own session id, attached to its log entry and every
// trace span it opens, the way the teacher correlates a connection's log
// lines and spans by session.
func New(m *memo.Memo, rules []rule.Rule, costModel cost.Model, log *logrus.Entry) *Optimizer {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	sessionID := uuid.NewV4()
	log = log.WithField("session_id", sessionID.String())
	ordered := append([]rule.Rule(nil), rules...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Promise() > ordered[j].Promise() })
	return &Optimizer{m: m, rules: ordered, costModel: costModel, log: log, sessionID: sessionID}
}

// Optimize searches the group rooted at root for the cheapest physical plan
// satisfying required, returning that plan (spec section 4.4's end-to-end
// entry point).
func (o *Optimizer) Optimize(root memo.GroupId, required props.PhysicalPropertySet) (*plan.Plan, error) {
	span := opentracing.GlobalTracer().StartSpan("xform.optimize")
	span.SetTag("session_id", o.sessionID.String())
	span.SetTag("root_group", root)
	span.SetTag("required_props", required.Key())
	defer span.Finish()

	if o.metrics != nil {
		timer := prometheus.NewTimer(o.metrics.OptimizeDuration)
		defer timer.ObserveDuration()
	}
	o.m.SetRoot(root)
	if _, err := o.OptimizeGroup(root, required); err != nil {
		return nil, err
	}
	return o.m.BestPlan(required)
}

// OptimizeGroup is the OptimizeGroup task: explore g to a fixpoint, then cost
// every physical member against required, recording the cheapest as g's
// winner for required. If required asks for an ordering no direct member
// delivers, it also tries wrapping the group's best unordered plan in a sort
// enforcer (the EnforceProperty task).
func (o *Optimizer) OptimizeGroup(g memo.GroupId, required props.PhysicalPropertySet) (cost.Cost, error) {
	g = o.m.Find(g)
	if w, ok := o.m.Winner(g, required); ok {
		return w.Cost, nil
	}

	if err := o.exploreGroup(g); err != nil {
		return cost.Inf, err
	}

	best := cost.Inf
	for _, exprId := range append([]memo.GroupExprId(nil), o.m.Group(g).Members()...) {
		c, err := o.optimizeGroupMember(exprId, required)
		if err != nil {
			return cost.Inf, err
		}
		if c.Less(best) {
			best = c
		}
	}

	if !required.Ordering.Any() {
		c, err := o.enforceOrdering(g, required)
		if err != nil {
			return cost.Inf, err
		}
		if c.Less(best) {
			best = c
		}
	}

	if best >= cost.Inf {
		return cost.Inf, errkind.NoWinner.New(g, required.Key())
	}
	return best, nil
}

// optimizeGroupMember is the OptimizeExpr/OptimizeInputs task: cost one
// physical expression by recursively optimizing its children against
// whatever properties this expression needs of them, then ratchets the
// result into its group's winner table for required. Logical members, and
// physical members that cannot satisfy required directly, are given
// cost.Inf, so they never become the winner.
func (o *Optimizer) optimizeGroupMember(exprId memo.GroupExprId, required props.PhysicalPropertySet) (cost.Cost, error) {
	expr := o.m.Expr(exprId)
	op := expr.Operator()
	if !op.IsPhysical() {
		return cost.Inf, nil
	}
	if !satisfiesDirectly(op, required) {
		return cost.Inf, nil
	}

	childReq := childRequiredProps(op, required)
	children := expr.Children()
	childCosts := make([]cost.Cost, len(children))
	for i, childGroup := range children {
		req := props.PhysicalPropertySet{}
		if i < len(childReq) {
			req = childReq[i]
		}
		c, err := o.OptimizeGroup(childGroup, req)
		if err != nil {
			return cost.Inf, err
		}
		childCosts[i] = c
	}

	localCost := o.costModel.LocalCost(op, childCosts)
	if o.metrics != nil {
		o.metrics.ExprsCosted.Inc()
	}
	o.m.UpdateWinner(expr.Group(), required, memo.Winner{ExprId: exprId, Cost: localCost, ChildProps: childReq})
	return localCost, nil
}

// enforceOrdering is the EnforceProperty task: optimize g against a version
// of required with no ordering constraint, then wrap that plan in a
// SortEnforcer delivering required.Ordering, recording the wrapped plan as a
// new member of g itself (a SortEnforcer's child group is g, under the
// weaker requirement, which is why this does not recurse forever).
func (o *Optimizer) enforceOrdering(g memo.GroupId, required props.PhysicalPropertySet) (cost.Cost, error) {
	relaxed := required
	relaxed.Ordering = props.SortOrder{}

	childCost, err := o.OptimizeGroup(g, relaxed)
	if err != nil {
		return cost.Inf, err
	}
	if childCost >= cost.Inf {
		return cost.Inf, nil
	}

	sortOp := operator.NewSortEnforcer(required.Ordering.Keys)
	target := g
	_, exprId := o.m.InsertExpr(sortOp, []memo.GroupId{g}, &target)
	enforcerCost := o.costModel.LocalCost(sortOp, []cost.Cost{childCost})
	o.m.UpdateWinner(g, required, memo.Winner{
		ExprId:     exprId,
		Cost:       enforcerCost,
		ChildProps: []props.PhysicalPropertySet{relaxed},
	})
	return enforcerCost, nil
}

// exploreGroup applies every rule to every member of g, and every member any
// of those applications add, until no rule produces anything new (spec
// section 4.2's exploration phase).
func (o *Optimizer) exploreGroup(g memo.GroupId) error {
	if o.metrics != nil {
		o.metrics.GroupsExplored.Inc()
	}
	for {
		progressed := false
		members := append([]memo.GroupExprId(nil), o.m.Group(g).Members()...)
		for _, exprId := range members {
			for _, r := range o.rules {
				expr := o.m.Expr(exprId)
				if expr.HasApplied(r.ID()) {
					continue
				}
				changed, err := o.applyRule(r, g, exprId)
				if err != nil {
					return err
				}
				expr.MarkApplied(r.ID())
				progressed = progressed || changed
			}
		}
		if !progressed {
			return nil
		}
	}
}

// applyRule is the ApplyRule task: bind r's pattern against g, keep only the
// binding rooted at exprId (Bind naturally returns one binding per matching
// member of g, not per-expression), apply r, and insert every replacement
// into g. Reports whether any new expression was actually added.
func (o *Optimizer) applyRule(r rule.Rule, g memo.GroupId, exprId memo.GroupExprId) (bool, error) {
	bindings := pattern.Bind(o.m, g, r.Pattern())
	changed := false
	for _, b := range bindings {
		if b.Handle().(memo.GroupExprId) != exprId {
			continue
		}
		result := &rule.Result{}
		ctx := &ruleContext{m: o.m, log: o.log}
		if err := r.Apply(b, ctx, result); err != nil {
			return changed, err
		}
		for _, e := range result.Exprs {
			if o.insertResult(e, g) {
				changed = true
				if o.metrics != nil {
					o.metrics.RulesApplied.WithLabelValues(r.ID().String()).Inc()
				}
			}
		}
	}
	return changed, nil
}

// insertResult materializes a rule's replacement expression e as a new
// member of target (or merges target with wherever e already lives, if it
// turns out to be a structural duplicate of an expression already in a
// different group). Reports whether target's group gained members: a new
// GroupExpr, or the members of a group merged into it.
func (o *Optimizer) insertResult(e pattern.OptExpression, target memo.GroupId) bool {
	before := len(o.m.Group(target).Members())
	children := make([]memo.GroupId, e.NumChildren())
	for i, c := range e.Children() {
		children[i] = o.materialize(c)
	}
	newTarget, _ := o.m.InsertExpr(e.Operator(), children, &target)
	return len(o.m.Group(newTarget).Members()) != before
}

// materialize resolves a child OptExpression to a GroupId: an existing
// reference resolves to the group it already lives in (its own children are
// already in the memo, untouched); a freshly constructed one is recursively
// inserted, opportunistically landing in an existing group if it turns out
// to be a structural duplicate.
func (o *Optimizer) materialize(e pattern.OptExpression) memo.GroupId {
	if e.IsExistingRef() {
		switch h := e.Handle().(type) {
		case memo.GroupId:
			return h
		case memo.GroupExprId:
			return o.m.Expr(h).Group()
		}
	}
	children := make([]memo.GroupId, e.NumChildren())
	for i, c := range e.Children() {
		children[i] = o.materialize(c)
	}
	g, _ := o.m.InsertExpr(e.Operator(), children, nil)
	return g
}
