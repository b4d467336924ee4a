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
	"regexp"
	"sort"

	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

var upperSnakeCase = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

type configurationRule struct{}

func (configurationRule) Name() string { return "configuration" }

func (configurationRule) Check(topo *topology.Topology, reg *schema.Registry) []Issue {
	var issues []Issue

	for _, in := range topo.Instances {
		def, known := reg.Definition(in.TypeID)

		if known && def.Child != nil && in.Database == "" {
			is := newIssue(SeverityWarning, CategoryConfiguration,
				fmt.Sprintf("instance %q has no logical database", in.Name))
			is.NodeID = in.ID
			is.Suggestion = fmt.Sprintf("declare one with %s so consumers reference the database, not the server", def.Child.Method)
			issues = append(issues, is)
		}

		if known && def.Category == schema.CategoryDatabase &&
			in.Config.Persistent != nil && !*in.Config.Persistent {
			is := newIssue(SeverityWarning, CategoryConfiguration,
				fmt.Sprintf("database %q has persistence disabled; data is lost on restart", in.Name))
			is.NodeID = in.ID
			issues = append(issues, is)
		}

		for _, key := range sortedEnvKeys(in.Config.Env) {
			if !upperSnakeCase.MatchString(key) {
				is := newIssue(SeverityWarning, CategoryConfiguration,
					fmt.Sprintf("instance %q: environment variable %q is not UPPER_SNAKE_CASE", in.Name, key))
				is.NodeID = in.ID
				issues = append(issues, is)
			}
		}

		for _, p := range in.Config.Ports {
			for _, port := range []int{p.Host, p.Container} {
				if port < 1 || port > 65535 {
					is := newIssue(SeverityError, CategoryConfiguration,
						fmt.Sprintf("instance %q: port %d is out of range 1-65535", in.Name, port))
					is.NodeID = in.ID
					issues = append(issues, is)
				}
			}
		}
	}

	return issues
}

func sortedEnvKeys(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
