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

// Command cascadesqld is a sample host embedding the optimizer: it loads a
// YAML config, opens a bolt-backed stats cache, builds a demo two-table join
// plan, runs it through the Cascades scheduler, and serves the resulting
// memo over a debug HTTP endpoint. It is a wiring example, not a SQL engine.
package main

import (
	"flag"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	querypb "gopkg.in/src-d/go-vitess.v0/vt/proto/query"

	"github.com/cascadesql/cascadesql/config"
	"github.com/cascadesql/cascadesql/debugserver"
	"github.com/cascadesql/cascadesql/memo"
	"github.com/cascadesql/cascadesql/metrics"
	"github.com/cascadesql/cascadesql/operator"
	"github.com/cascadesql/cascadesql/plan"
	"github.com/cascadesql/cascadesql/props"
	"github.com/cascadesql/cascadesql/rule"
	"github.com/cascadesql/cascadesql/statscache"
	"github.com/cascadesql/cascadesql/xform"
)

func main() {
	configPath := flag.String("config", "", "path to optimizer YAML config (optional)")
	statsPath := flag.String("stats", "cascadesql-stats.db", "path to the bolt row-count stats file")
	addr := flag.String("addr", ":6274", "debug HTTP server listen address")
	flag.Parse()

	log := logrus.NewEntry(logrus.New())

	cfg := &config.Config{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.WithError(err).Fatal("cascadesqld: loading config")
		}
		cfg = loaded
	}

	stats, err := statscache.Open(*statsPath)
	if err != nil {
		log.WithError(err).Fatal("cascadesqld: opening stats cache")
	}
	defer stats.Close()
	stats.SetRowCount("orders", 1000000)
	stats.SetRowCount("customers", 10000)

	costModel := cfg.CostModel()
	costModel.Stats = stats

	schedMetrics := metrics.NewScheduler(prometheus.DefaultRegisterer)

	demoPlan := buildDemoPlan()

	m := memo.New()
	root := m.InsertPlan(demoPlan.Root())

	sched := xform.New(m, rule.Builtins(), costModel, log)
	sched.AttachMetrics(schedMetrics)

	best, err := sched.Optimize(root, props.Empty())
	if err != nil {
		log.WithError(err).Fatal("cascadesqld: optimizing demo plan")
	}
	log.WithField("root_operator", best.Root().Op.String()).Info("cascadesqld: optimized demo plan")

	var mu sync.Mutex
	srv := debugserver.New(func() debugserver.Snapshot {
		mu.Lock()
		defer mu.Unlock()
		return snapshotMemo(m)
	}, log)

	log.WithField("addr", *addr).Info("cascadesqld: serving debug endpoint at /debug/memo")
	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
		log.WithError(err).Fatal("cascadesqld: debug server exited")
	}
}

// buildDemoPlan constructs orders JOIN customers, the shape CommutateJoin
// and Join2HashJoin act on.
func buildDemoPlan() *plan.Plan {
	schemas := plan.StaticSchemas{
		"orders": props.Schema{
			{Name: "id", Type: querypb.Type_INT64},
			{Name: "customer_id", Type: querypb.Type_INT64},
		},
		"customers": props.Schema{
			{Name: "id", Type: querypb.Type_INT64},
			{Name: "name", Type: querypb.Type_VARCHAR},
		},
	}
	idGen := plan.NewIdGen()

	right := plan.NewLogicalPlanBuilder(idGen, schemas).Scan("customers").Build().Root()

	predicate := operator.BinaryExpr{
		Op:    "=",
		Left:  operator.ColumnRef{Table: "orders", Column: "customer_id"},
		Right: operator.ColumnRef{Table: "customers", Column: "id"},
	}

	return plan.NewLogicalPlanBuilder(idGen, schemas).
		Scan("orders").
		Join(operator.InnerJoin, predicate, right).
		Build()
}

// snapshotMemo renders m's current state into a debugserver.Snapshot,
// reporting each group's members and (if any) its cheapest plan under the
// empty property set, which is what the demo run above optimized for.
func snapshotMemo(m *memo.Memo) debugserver.Snapshot {
	snap := debugserver.Snapshot{Root: uint32(m.Root())}
	for i := 1; i <= m.NumGroups(); i++ {
		g := m.Group(memo.GroupId(i))
		if g == nil {
			continue
		}
		ops := make([]string, 0, len(g.Members()))
		for _, exprId := range g.Members() {
			ops = append(ops, m.Expr(exprId).Operator().String())
		}
		gs := debugserver.GroupSnapshot{
			Group:         uint32(i),
			MemberCount:   len(g.Members()),
			FullyExplored: g.FullyExplored(),
			MemberOps:     ops,
		}
		if w, ok := m.Winner(memo.GroupId(i), props.Empty()); ok {
			gs.WinnerOperator = m.Expr(w.ExprId).Operator().String()
			gs.WinnerCost = float64(w.Cost)
		}
		snap.Groups = append(snap.Groups, gs)
	}
	return snap
}
