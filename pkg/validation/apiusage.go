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

type apiUsageRule struct{}

func (apiUsageRule) Name() string { return "api-usage" }

func (apiUsageRule) Check(topo *topology.Topology, reg *schema.Registry) []Issue {
	var issues []Issue

	for _, in := range topo.Instances {
		def, ok := reg.Definition(in.TypeID)
		if !ok {
			is := newIssue(SeverityWarning, CategoryAPI,
				fmt.Sprintf("instance %q uses unknown resource type %q", in.Name, in.TypeID))
			is.NodeID = in.ID
			issues = append(issues, is)
			continue
		}

		for _, spec := range def.Parameters {
			value := synthesizeArgument(in, spec)
			if ok, msgs := schema.ValidateParameterValue(value, spec); !ok {
				is := newIssue(SeverityError, CategoryAPI,
					fmt.Sprintf("instance %q: %s argument invalid: %s",
						in.Name, def.BuilderMethod, strings.Join(msgs, "; ")))
				is.NodeID = in.ID
				issues = append(issues, is)
			}
		}

		if len(topo.Incoming(in.ID)) > 0 && !def.HasChaining(schema.OpReference) {
			is := newIssue(SeverityError, CategoryAPI,
				fmt.Sprintf("instance %q of type %q is referenced but does not support %s",
					in.Name, in.TypeID, schema.OpReference))
			is.NodeID = in.ID
			is.Suggestion = "point the connection at a resource that accepts references"
			issues = append(issues, is)
		}
	}

	return issues
}

// synthesizeArgument derives the value the renderer would pass for a
// builder parameter: the instance name, the first configured host port,
// or a constructed path/image for path-accepting kinds.
func synthesizeArgument(in topology.Instance, spec schema.ParameterSpec) any {
	switch {
	case spec.Name == "name":
		return in.Name
	case spec.Name == "image":
		if in.Image != "" {
			return in.Image
		}
		return in.Name
	case spec.Type == schema.ParamInt && strings.Contains(strings.ToLower(spec.Name), "port"):
		if len(in.Config.Ports) > 0 {
			return in.Config.Ports[0].Host
		}
		return nil
	case spec.Type == schema.ParamString:
		// Path-accepting parameters (workingDirectory, contextPath) get
		// the conventional sibling-directory path.
		return "../" + in.Name
	default:
		return nil
	}
}
