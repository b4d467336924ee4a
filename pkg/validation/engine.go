// Copyright 2025 The TopoForge Authors.
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

package validation

import (
	"strconv"

	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

// Rule is one independent family of checks. Rules never short-circuit
// each other; the engine concatenates everything they report.
type Rule interface {
	Name() string
	Check(topo *topology.Topology, reg *schema.Registry) []Issue
}

// Engine runs a fixed set of rules over a topology.
type Engine struct {
	reg   *schema.Registry
	rules []Rule
}

// NewEngine builds an engine with the default rule set.
func NewEngine(reg *schema.Registry) *Engine {
	return &Engine{
		reg: reg,
		rules: []Rule{
			namingRule{},
			apiUsageRule{},
			connectionRule{},
			configurationRule{},
			architectureRule{},
			securityRule{},
			performanceRule{},
			cycleRule{},
		},
	}
}

// NewEngineWithRules builds an engine running only the given rules.
func NewEngineWithRules(reg *schema.Registry, rules ...Rule) *Engine {
	return &Engine{reg: reg, rules: rules}
}

// Validate runs every rule and returns the concatenated result. Issue
// IDs are assigned sequentially in report order, so validating the
// same topology twice returns identical results.
func (e *Engine) Validate(topo *topology.Topology) Result {
	var res Result
	for _, rule := range e.rules {
		res.Issues = append(res.Issues, rule.Check(topo, e.reg)...)
	}
	for i := range res.Issues {
		res.Issues[i].ID = "issue-" + strconv.Itoa(i+1)
	}
	return res
}
