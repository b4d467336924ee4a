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
	"strings"

	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

type architectureRule struct{}

func (architectureRule) Name() string { return "architecture" }

func (architectureRule) Check(topo *topology.Topology, reg *schema.Registry) []Issue {
	var issues []Issue

	instancesPer := map[schema.Category][]topology.Instance{}
	for _, in := range topo.Instances {
		def, ok := reg.Definition(in.TypeID)
		if !ok {
			continue
		}
		instancesPer[def.Category] = append(instancesPer[def.Category], in)

		switch def.Category {
		case schema.CategoryProject, schema.CategoryContainer:
			if len(topo.Incoming(in.ID)) == 0 {
				is := newIssue(SeverityInfo, CategoryArchitecture,
					fmt.Sprintf("%q has no incoming connections", in.Name))
				is.NodeID = in.ID
				issues = append(issues, is)
			}
		case schema.CategoryDatabase, schema.CategoryCache, schema.CategoryMessaging:
			if len(topo.Outgoing(in.ID)) == 0 {
				is := newIssue(SeverityWarning, CategoryArchitecture,
					fmt.Sprintf("%q is deployed but unused: nothing consumes it", in.Name))
				is.NodeID = in.ID
				is.Suggestion = "connect a consumer or remove the resource"
				issues = append(issues, is)
			}
		}
	}

	// Multiple brokers or caches in one graph usually indicates an
	// accidental duplicate; reported once per category.
	for _, cat := range []schema.Category{schema.CategoryMessaging, schema.CategoryCache} {
		ins := instancesPer[cat]
		if len(ins) < 2 {
			continue
		}
		names := make([]string, len(ins))
		ids := make([]string, len(ins))
		for i, in := range ins {
			names[i] = in.Name
			ids[i] = in.ID
		}
		is := newIssue(SeverityWarning, CategoryArchitecture,
			fmt.Sprintf("multiple %s instances in one topology: %s", cat, strings.Join(names, ", ")))
		is.NodeID = ids[0]
		is.Related = ids
		issues = append(issues, is)
	}

	return issues
}
