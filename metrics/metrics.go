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

// Package metrics exposes the scheduler's activity as Prometheus metrics,
// in the teacher's client_golang style, for a host that wants to observe
// optimizer behavior in production rather than only in tests.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Scheduler is the set of counters and the histogram a Cascades run reports
// through. It has no methods of its own; xform checks for a nil *Scheduler
// (the default when a host attaches none) and then skips every metrics
// update.
type Scheduler struct {
	GroupsExplored   prometheus.Counter
	RulesApplied     *prometheus.CounterVec
	ExprsCosted      prometheus.Counter
	OptimizeDuration prometheus.Histogram
}

// NewScheduler registers a Scheduler's metrics against reg and returns it.
func NewScheduler(reg prometheus.Registerer) *Scheduler {
	s := &Scheduler{
		GroupsExplored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cascadesql",
			Subsystem: "scheduler",
			Name:      "groups_explored_total",
			Help:      "Number of distinct memo groups the scheduler has explored.",
		}),
		RulesApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cascadesql",
			Subsystem: "scheduler",
			Name:      "rules_applied_total",
			Help:      "Number of times each rule fired and produced at least one replacement.",
		}, []string{"rule"}),
		ExprsCosted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cascadesql",
			Subsystem: "scheduler",
			Name:      "exprs_costed_total",
			Help:      "Number of group expressions the cost model was invoked on.",
		}),
		OptimizeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cascadesql",
			Subsystem: "scheduler",
			Name:      "optimize_duration_seconds",
			Help:      "Wall-clock time spent in a single Optimize call.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(s.GroupsExplored, s.RulesApplied, s.ExprsCosted, s.OptimizeDuration)
	return s
}
