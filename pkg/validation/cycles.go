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

// cycleRule finds dependency cycles by depth-first search with a
// recursion stack. Each cycle is reported once, naming the instances in
// traversal order with the starting instance repeated.
type cycleRule struct{}

func (cycleRule) Name() string { return "cycles" }

func (cycleRule) Check(topo *topology.Topology, reg *schema.Registry) []Issue {
	adjacent := map[string][]string{}
	for _, c := range topo.Connections {
		if c.SourceID == c.TargetID {
			continue // self loops are the connection rule's finding
		}
		if _, ok := topo.Instance(c.SourceID); !ok {
			continue
		}
		if _, ok := topo.Instance(c.TargetID); !ok {
			continue
		}
		adjacent[c.SourceID] = append(adjacent[c.SourceID], c.TargetID)
	}

	var issues []Issue
	visited := map[string]bool{}
	onStack := map[string]bool{}
	var stack []string

	var visit func(id string)
	visit = func(id string) {
		visited[id] = true
		onStack[id] = true
		stack = append(stack, id)

		for _, next := range adjacent[id] {
			if onStack[next] {
				start := 0
				for i, s := range stack {
					if s == next {
						start = i
						break
					}
				}
				cycle := append(append([]string{}, stack[start:]...), next)
				issues = append(issues, cycleIssue(topo, cycle))
				continue
			}
			if !visited[next] {
				visit(next)
			}
		}

		stack = stack[:len(stack)-1]
		onStack[id] = false
	}

	for _, in := range topo.Instances {
		if !visited[in.ID] {
			visit(in.ID)
		}
	}

	return issues
}

func cycleIssue(topo *topology.Topology, cycle []string) Issue {
	names := make([]string, len(cycle))
	for i, id := range cycle {
		if in, ok := topo.Instance(id); ok && in.Name != "" {
			names[i] = in.Name
		} else {
			names[i] = id
		}
	}
	is := newIssue(SeverityError, CategoryConnection,
		fmt.Sprintf("dependency cycle: %s", strings.Join(names, " -> ")))
	is.NodeID = cycle[0]
	is.Related = cycle[:len(cycle)-1]
	is.Suggestion = "break the cycle by removing one of its connections"
	return is
}
