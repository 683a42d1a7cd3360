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

package heuristic

import (
	"github.com/opentracing/opentracing-go"
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/cascadesql/cascadesql/pattern"
	"github.com/cascadesql/cascadesql/plan"
	"github.com/cascadesql/cascadesql/rule"
)

// Optimizer rewrites a plan tree to a fixpoint using a fixed list of rules,
// tried at each node before and again after its children are rewritten,
// with no cost comparison: each rule is trusted to
// strictly improve (or at worst not worsen) the plan whenever it fires.
type Optimizer struct {
	rules     []rule.Rule
	log       *logrus.Entry
	sessionID uuid.UUID
}

// New builds an Optimizer applying rules, in order, to each node until none
// of them fire anymore. Each Optimizer gets its own session id, attached to
// its log entry and the root span Optimize opens, matching the session
// tagging xform.New does for the cost-based path.
func New(rules []rule.Rule, log *logrus.Entry) *Optimizer {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	sessionID := uuid.NewV4()
	log = log.WithField("session_id", sessionID.String())
	return &Optimizer{rules: rules, log: log, sessionID: sessionID}
}

// Builtins returns the built-in rule set minus CommutateJoin: commuting a
// join's inputs only produces a logically equivalent alternative for a
// cost model to choose between, which this optimizer has none of, so
// including it here would just flip the join back and forth forever (spec
// section 4.5 scopes the heuristic path to the rules it applies without a
// cost model).
func Builtins() []rule.Rule {
	var out []rule.Rule
	for _, r := range rule.Builtins() {
		if r.ID() == rule.CommutateJoin {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Optimize rewrites plan to a fixpoint and returns the result. idGen is
// shared with plan so ids allocated for rewritten nodes stay unique.
func (o *Optimizer) Optimize(p *plan.Plan) (*plan.Plan, error) {
	span := opentracing.GlobalTracer().StartSpan("heuristic.optimize")
	span.SetTag("session_id", o.sessionID.String())
	defer span.Finish()

	root, err := o.optimizeNode(p.Root(), p.IdGen())
	if err != nil {
		return nil, err
	}
	return plan.NewPlan(root, p.IdGen()), nil
}

func (o *Optimizer) optimizeNode(n *plan.Node, idGen *plan.IdGen) (*plan.Node, error) {
	for {
		rewritten, fired, err := o.tryRules(n, idGen)
		if err != nil {
			return nil, err
		}
		if !fired {
			break
		}
		n = rewritten
	}

	newChildren := make([]*plan.Node, len(n.Children))
	childChanged := false
	for i, c := range n.Children {
		nc, err := o.optimizeNode(c, idGen)
		if err != nil {
			return nil, err
		}
		newChildren[i] = nc
		if nc != c {
			childChanged = true
		}
	}

	cur := n
	if childChanged {
		cur = plan.NewNode(idGen.Next(), n.Op, newChildren...)
		cur.SetLogicalProperty(n.LogicalProperty(nil))
	}

	for {
		rewritten, fired, err := o.tryRules(cur, idGen)
		if err != nil {
			return nil, err
		}
		if !fired {
			return cur, nil
		}
		cur = rewritten
	}
}

// tryRules attempts every rule against cur in order, applying the first one
// whose pattern matches and stopping (the caller's fixpoint loop restarts
// matching from the top against the rewritten node, since a rewrite can
// change which rules now apply).
func (o *Optimizer) tryRules(cur *plan.Node, idGen *plan.IdGen) (*plan.Node, bool, error) {
	for _, r := range o.rules {
		bindings := pattern.Bind(treeBinder{}, cur, r.Pattern())
		if len(bindings) == 0 {
			continue
		}
		result := &rule.Result{}
		ctx := &treeContext{log: o.log}
		if err := r.Apply(bindings[0], ctx, result); err != nil {
			return nil, false, err
		}
		if len(result.Exprs) == 0 {
			continue
		}
		replacement := materializeNode(result.Exprs[0], idGen)
		replacement.SetLogicalProperty(cur.LogicalProperty(nil))
		return replacement, true, nil
	}
	return nil, false, nil
}

// materializeNode turns a rule's replacement OptExpression into a *plan.Node
// tree: an existing reference resolves to the original node it points to
// unchanged; a freshly constructed node is built and has its logical
// property derived from its (by now already resolved) children. The overall
// replacement's root property is not trusted to this derivation — the
// caller stamps it from the node being replaced once materializeNode
// returns, since a rebuilt Scan or Projection has no externalSchema
// available here to derive correctly from scratch.
func materializeNode(e pattern.OptExpression, idGen *plan.IdGen) *plan.Node {
	if e.IsExistingRef() {
		return e.Handle().(*plan.Node)
	}
	children := make([]*plan.Node, e.NumChildren())
	for i, c := range e.Children() {
		children[i] = materializeNode(c, idGen)
	}
	n := plan.NewNode(idGen.Next(), e.Operator(), children...)
	n.LogicalProperty(nil)
	return n
}
