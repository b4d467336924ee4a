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
	"sort"
	"strings"

	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

type namingRule struct{}

func (namingRule) Name() string { return "naming" }

func (namingRule) Check(topo *topology.Topology, reg *schema.Registry) []Issue {
	var issues []Issue

	byName := map[string][]string{}
	for _, in := range topo.Instances {
		if in.Name == "" {
			is := newIssue(SeverityError, CategoryNaming, fmt.Sprintf("instance %s has no name", in.ID))
			is.NodeID = in.ID
			is.Suggestion = "give every resource instance a unique name"
			issues = append(issues, is)
			continue
		}
		byName[in.Name] = append(byName[in.Name], in.ID)

		issues = append(issues, checkInstanceName(in, reg)...)

		if in.Database != "" && !schema.IsValidIdentifier(in.Database) {
			is := newIssue(SeverityError, CategoryNaming,
				fmt.Sprintf("instance %q: logical database name %q is not a valid identifier", in.Name, in.Database))
			is.NodeID = in.ID
			issues = append(issues, is)
		}
	}

	for name, ids := range byName {
		if len(ids) < 2 {
			continue
		}
		is := newIssue(SeverityError, CategoryNaming,
			fmt.Sprintf("name %q is used by %d instances", name, len(ids)))
		is.NodeID = ids[0]
		is.Related = ids
		is.Suggestion = "rename the instances so every name is unique"
		issues = append(issues, is)
	}

	return sortByNode(topo, issues)
}

func checkInstanceName(in topology.Instance, reg *schema.Registry) []Issue {
	spec := schema.ParameterSpec{Name: "name", Type: schema.ParamString, Required: true, Identifier: true}
	if def, ok := reg.Definition(in.TypeID); ok && len(def.Parameters) > 0 {
		spec = def.Parameters[0]
	}
	ok, msgs := schema.ValidateParameterValue(in.Name, spec)
	if ok {
		return nil
	}
	is := newIssue(SeverityError, CategoryNaming,
		fmt.Sprintf("instance name %q: %s", in.Name, strings.Join(msgs, "; ")))
	is.NodeID = in.ID
	return []Issue{is}
}

// sortByNode keeps duplicate-name reports deterministic by re-emitting
// issues in instance declaration order, unassociated issues last.
func sortByNode(topo *topology.Topology, issues []Issue) []Issue {
	pos := map[string]int{}
	for i, in := range topo.Instances {
		pos[in.ID] = i
	}
	out := make([]Issue, len(issues))
	copy(out, issues)
	sort.SliceStable(out, func(i, j int) bool {
		return rank(pos, out[i]) < rank(pos, out[j])
	})
	return out
}

func rank(pos map[string]int, is Issue) int {
	if p, ok := pos[is.NodeID]; ok {
		return p
	}
	return len(pos)
}
