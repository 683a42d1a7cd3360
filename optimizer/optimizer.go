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

// Package optimizer is the facade a host embeds: it wires the memo, rule
// set and cost model together behind FindBestPlan (the Cascades path) and
// HeuristicOptimize (the cheaper, non-cost-based path), so callers need not
// assemble xform/heuristic/memo/cost themselves (spec section 4.4).
package optimizer

import (
	"github.com/sirupsen/logrus"

	"github.com/cascadesql/cascadesql/cost"
	"github.com/cascadesql/cascadesql/heuristic"
	"github.com/cascadesql/cascadesql/memo"
	"github.com/cascadesql/cascadesql/plan"
	"github.com/cascadesql/cascadesql/props"
	"github.com/cascadesql/cascadesql/rule"
	"github.com/cascadesql/cascadesql/xform"
)

// Optimizer holds the rule set and cost model FindBestPlan uses, and the
// logger both optimization paths use.
type Optimizer struct {
	rules     []rule.Rule
	costModel cost.Model
	log       *logrus.Entry
}

// Option configures an Optimizer built by New.
type Option func(*Optimizer)

// WithRules overrides the rule set FindBestPlan uses (default
// rule.Builtins()). HeuristicOptimize always uses heuristic.Builtins().
func WithRules(rules []rule.Rule) Option {
	return func(o *Optimizer) { o.rules = rules }
}

// WithCostModel overrides the cost model (default cost.DefaultSimpleCostModel()).
func WithCostModel(m cost.Model) Option {
	return func(o *Optimizer) { o.costModel = m }
}

// WithLogger overrides the logger (default a bare logrus.Entry).
func WithLogger(l *logrus.Entry) Option {
	return func(o *Optimizer) { o.log = l }
}

// New builds an Optimizer, applying opts over the defaults.
func New(opts ...Option) *Optimizer {
	o := &Optimizer{
		rules:     rule.Builtins(),
		costModel: cost.DefaultSimpleCostModel(),
		log:       logrus.NewEntry(logrus.New()),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// FindBestPlan runs the Cascades search: p is ingested into a fresh memo,
// explored and costed by the scheduler, and the cheapest plan satisfying
// required is reconstructed from the resulting winners. Grounded on
// CascadesOptimizer::find_best_plan in dolomite/src/cascades/optimizer.rs.
func (o *Optimizer) FindBestPlan(p *plan.Plan, required props.PhysicalPropertySet) (*plan.Plan, error) {
	m := memo.New()
	root := m.InsertPlan(p.Root())
	sched := xform.New(m, o.rules, o.costModel, o.log)
	return sched.Optimize(root, required)
}

// HeuristicOptimize runs the non-cost-based fixpoint rewrite over p
// directly, without building a memo (spec section 4.5).
func (o *Optimizer) HeuristicOptimize(p *plan.Plan) (*plan.Plan, error) {
	h := heuristic.New(heuristic.Builtins(), o.log)
	return h.Optimize(p)
}
