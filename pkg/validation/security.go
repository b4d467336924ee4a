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
	"strings"

	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

var sensitiveEnvKey = regexp.MustCompile(`(?i)(password|secret|token|api_?key|(^|_)key($|_|s))`)

type securityRule struct{}

func (securityRule) Name() string { return "security" }

func (securityRule) Check(topo *topology.Topology, reg *schema.Registry) []Issue {
	var issues []Issue

	for _, in := range topo.Instances {
		hasKeyLikeEnv := false
		for _, key := range sortedEnvKeys(in.Config.Env) {
			if !sensitiveEnvKey.MatchString(key) {
				continue
			}
			hasKeyLikeEnv = true
			if isLiteralSecret(in.Config.Env[key]) {
				is := newIssue(SeverityWarning, CategorySecurity,
					fmt.Sprintf("instance %q: %q looks like a hardcoded secret", in.Name, key))
				is.NodeID = in.ID
				is.Suggestion = "use a placeholder such as {secrets.NAME} instead of a literal value"
				issues = append(issues, is)
			}
		}

		def, ok := reg.Definition(in.TypeID)
		if ok && def.Category == schema.CategoryAI && def.ConnectionStringTemplate != "" && !hasKeyLikeEnv {
			is := newIssue(SeverityInfo, CategorySecurity,
				fmt.Sprintf("AI service %q has no API key configured", in.Name))
			is.NodeID = in.ID
			issues = append(issues, is)
		}
	}

	return issues
}

// isLiteralSecret reports whether the value is a literal rather than a
// placeholder reference.
func isLiteralSecret(value string) bool {
	return value != "" &&
		!strings.HasPrefix(value, "{") &&
		!strings.HasPrefix(value, "$")
}
