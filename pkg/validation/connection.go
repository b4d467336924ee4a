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

type connectionRule struct{}

func (connectionRule) Name() string { return "connection" }

func (connectionRule) Check(topo *topology.Topology, reg *schema.Registry) []Issue {
	var issues []Issue

	for _, c := range topo.Connections {
		src, srcOK := topo.Instance(c.SourceID)
		dst, dstOK := topo.Instance(c.TargetID)

		if !srcOK || !dstOK {
			is := newIssue(SeverityError, CategoryConnection,
				fmt.Sprintf("connection %s references a missing instance", c.ID))
			is.EdgeID = c.ID
			is.Suggestion = "remove the dangling connection or restore its endpoint"
			issues = append(issues, is)
			continue
		}

		if c.SourceID == c.TargetID {
			is := newIssue(SeverityError, CategoryConnection,
				fmt.Sprintf("instance %q is connected to itself", src.Name))
			is.EdgeID = c.ID
			is.NodeID = c.SourceID
			issues = append(issues, is)
			continue
		}

		// Compatibility is only decidable when both types are known;
		// unknown types are the API-usage rule's finding.
		_, srcKnown := reg.Definition(src.TypeID)
		_, dstKnown := reg.Definition(dst.TypeID)
		if srcKnown && dstKnown && !reg.IsConnectionValid(src.TypeID, dst.TypeID) {
			is := newIssue(SeverityError, CategoryConnection,
				fmt.Sprintf("%q (%s) cannot be referenced by %q (%s)",
					src.Name, src.TypeID, dst.Name, dst.TypeID))
			is.EdgeID = c.ID
			is.Related = []string{c.SourceID, c.TargetID}
			issues = append(issues, is)
		}
	}

	return issues
}
