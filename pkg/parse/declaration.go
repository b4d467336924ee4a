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

package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

var (
	// var api = builder.AddProject<Projects.Api>("api")...
	declCall = regexp.MustCompile(`var\s+(\w+)\s*=\s*builder\.(Add\w+?)\s*(?:<[^>]*>)?\s*\(\s*"([^"]+)"`)
	// var appdb = pg.AddDatabase("appdb")
	childCall = regexp.MustCompile(`var\s+(\w+)\s*=\s*(\w+)\.AddDatabase\s*\(\s*"([^"]+)"\s*\)`)
	// .WithReference(appdb)
	referenceCall = regexp.MustCompile(`\.WithReference\s*\(\s*(\w+)\s*\)`)
	// subject of a bare chained statement: api.WithReference(...)
	subjectCall = regexp.MustCompile(`^\s*(\w+)\s*\.`)
)

// DeclarationParser reconstructs a topology from apphost declaration
// text.
type DeclarationParser struct {
	reg *schema.Registry
}

// NewDeclarationParser creates a declaration parser against the given
// registry; builder method names resolve through the registry's
// reverse lookup.
func NewDeclarationParser(reg *schema.Registry) *DeclarationParser {
	return &DeclarationParser{reg: reg}
}

// Parse scans declaration text statement by statement. Builder calls
// create instances, AddDatabase calls attach logical databases and
// alias the child variable to the parent node, and WithReference call
// chains create edges between previously aliased variables.
func (p *DeclarationParser) Parse(text string) (*topology.Topology, []string) {
	topo := &topology.Topology{}
	var warnings []string

	ids := newAllocator("decl")
	methods := p.reg.BuilderMethods()
	// alias maps declaration variables to instance IDs; child aliases
	// resolve to their parent instance.
	alias := map[string]string{}

	for _, stmt := range statements(text) {
		if m := childCall.FindStringSubmatch(stmt); m != nil {
			childVar, parentVar, dbName := m[1], m[2], m[3]
			parentID, ok := alias[parentVar]
			if !ok {
				warnings = append(warnings, fmt.Sprintf("AddDatabase on unknown variable %q skipped", parentVar))
				continue
			}
			for i := range topo.Instances {
				if topo.Instances[i].ID == parentID {
					topo.Instances[i].Database = dbName
				}
			}
			alias[childVar] = parentID
			continue
		}

		if m := declCall.FindStringSubmatch(stmt); m != nil {
			declVar, method, name := m[1], m[2], m[3]
			typeID, ok := methods[method]
			if !ok {
				warnings = append(warnings, fmt.Sprintf("unknown builder call %q for %q skipped", method, name))
				continue
			}
			in := topology.Instance{ID: ids.id("node"), TypeID: typeID, Name: name}
			topo.Instances = append(topo.Instances, in)
			alias[declVar] = in.ID

			warnings = append(warnings, p.linkReferences(topo, ids, alias, in.ID, stmt)...)
			continue
		}

		if m := subjectCall.FindStringSubmatch(stmt); m != nil {
			if targetID, ok := alias[m[1]]; ok {
				warnings = append(warnings, p.linkReferences(topo, ids, alias, targetID, stmt)...)
			}
		}
	}

	if len(topo.Instances) == 0 {
		warnings = append(warnings, "no resource declarations found")
	}
	return topo, warnings
}

// linkReferences creates one edge per WithReference call in a
// statement, pointing from the referenced instance to the statement's
// subject. Self references are ignored.
func (p *DeclarationParser) linkReferences(topo *topology.Topology, ids *allocator, alias map[string]string, targetID, stmt string) []string {
	var warnings []string
	for _, m := range referenceCall.FindAllStringSubmatch(stmt, -1) {
		sourceID, ok := alias[m[1]]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("reference to unknown variable %q skipped", m[1]))
			continue
		}
		if sourceID == targetID {
			continue
		}
		topo.Connections = append(topo.Connections, topology.Connection{
			ID:       ids.id("conn"),
			SourceID: sourceID,
			TargetID: targetID,
			Kind:     topology.KindReference,
		})
	}
	return warnings
}

// statements splits source text on terminators, tolerating multi-line
// chains.
func statements(text string) []string {
	var out []string
	for _, s := range strings.Split(text, ";") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
