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
	"fmt"

	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

const fanInThreshold = 3

type performanceRule struct{}

func (performanceRule) Name() string { return "performance" }

func (performanceRule) Check(topo *topology.Topology, reg *schema.Registry) []Issue {
	var issues []Issue

	for _, in := range topo.Instances {
		def, ok := reg.Definition(in.TypeID)
		if !ok {
			continue
		}
		if def.Category != schema.CategoryProject && def.Category != schema.CategoryContainer {
			continue
		}
		if len(topo.Incoming(in.ID)) > fanInThreshold && in.Config.Replicas < 2 {
			is := newIssue(SeverityInfo, CategoryPerformance,
				fmt.Sprintf("%q consumes %d resources but runs a single replica", in.Name, len(topo.Incoming(in.ID))))
			is.NodeID = in.ID
			is.Suggestion = "consider raising the replica count"
			issues = append(issues, is)
		}
	}

	return issues
}
