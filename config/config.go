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

// Package config loads the optimizer's host-facing YAML configuration: which
// rules are enabled and the per-operator cost weights, in the teacher's
// yaml.v2 + spf13/cast style (loosely-typed YAML values coerced explicitly
// rather than trusted to unmarshal into the right Go numeric type).
package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"

	"github.com/cascadesql/cascadesql/cost"
	"github.com/cascadesql/cascadesql/rule"
)

// Config is the top-level shape of the optimizer's YAML configuration file.
type Config struct {
	Rules RuleConfig `yaml:"rules"`
	Cost  CostConfig `yaml:"cost"`
}

// RuleConfig lists which built-in rules (by RuleId.String() name) are
// disabled. A rule absent from Disabled is enabled; this way an empty or
// missing rules section runs every built-in rule, which is the expected
// default.
type RuleConfig struct {
	Disabled []string `yaml:"disabled"`
}

// CostConfig holds per-operator-kind weight overrides for SimpleCostModel,
// keyed by the lowercase operator name (scan, filter, project, limit, join,
// sort). An absent key keeps that weight at its SimpleCostModel default.
type CostConfig struct {
	Weights map[string]interface{} `yaml:"weights"`
}

// Load reads and parses the YAML configuration file at path.
func Load(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: reading file")
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "config: parsing yaml")
	}
	return &c, nil
}

// EnabledRules filters rule.Builtins() down to those not named in
// Rules.Disabled.
func (c *Config) EnabledRules() []rule.Rule {
	disabled := make(map[string]bool, len(c.Rules.Disabled))
	for _, name := range c.Rules.Disabled {
		disabled[name] = true
	}
	var out []rule.Rule
	for _, r := range rule.Builtins() {
		if disabled[r.ID().String()] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CostModel builds a SimpleCostModel from Cost.Weights, falling back to
// cost.DefaultSimpleCostModel's weight for anything unspecified.
func (c *Config) CostModel() *cost.SimpleCostModel {
	m := cost.DefaultSimpleCostModel()
	if w, ok := c.Cost.Weights["scan"]; ok {
		m.ScanWeight = cost.Cost(cast.ToFloat64(w))
	}
	if w, ok := c.Cost.Weights["filter"]; ok {
		m.FilterWeight = cost.Cost(cast.ToFloat64(w))
	}
	if w, ok := c.Cost.Weights["project"]; ok {
		m.ProjectWeight = cost.Cost(cast.ToFloat64(w))
	}
	if w, ok := c.Cost.Weights["limit"]; ok {
		m.LimitWeight = cost.Cost(cast.ToFloat64(w))
	}
	if w, ok := c.Cost.Weights["join"]; ok {
		m.JoinWeight = cost.Cost(cast.ToFloat64(w))
	}
	if w, ok := c.Cost.Weights["sort"]; ok {
		m.SortWeight = cost.Cost(cast.ToFloat64(w))
	}
	return m
}
