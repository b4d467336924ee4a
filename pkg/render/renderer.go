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

package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

const (
	// packageVersion pins the hosting package generation the emitted
	// directives reference.
	packageVersion = "9.3.0"

	builderLine = "var builder = DistributedApplication.CreateBuilder(args);"
	trailerLine = "builder.Build().Run();"
)

// Renderer emits declaration text and companion artifacts for a
// sequenced topology.
type Renderer struct {
	reg *schema.Registry
}

// New creates a renderer against the given registry.
func New(reg *schema.Registry) *Renderer {
	return &Renderer{reg: reg}
}

// Render produces the artifact bundle for a sequenced instance list and
// the full topology. A non-empty blocking list suppresses declarations:
// the primary text becomes a placeholder document listing the messages.
func (r *Renderer) Render(sequence []topology.Instance, topo *topology.Topology, blocking []string) Artifacts {
	out := Artifacts{
		RequiredPackages:   r.requiredPackages(topo),
		DeploymentCommands: DeploymentCommands(),
		SettingsText:       r.settingsText(topo),
		BuildFileText:      r.buildFileText(topo),
		ManifestText:       r.manifestText(topo),
	}

	if len(blocking) > 0 {
		out.BlockingErrors = append([]string{}, blocking...)
		out.PrimaryText = placeholderDocument(blocking)
		return out
	}

	out.PrimaryText = r.declarationText(sequence, topo)
	return out
}

func (r *Renderer) requiredPackages(topo *topology.Topology) []string {
	typeIDs := make([]string, 0, len(topo.Instances))
	for _, in := range topo.Instances {
		typeIDs = append(typeIDs, in.TypeID)
	}
	return r.reg.RequiredPackages(typeIDs)
}

func (r *Renderer) declarationText(sequence []topology.Instance, topo *topology.Topology) string {
	var lines []string

	for _, pkg := range r.requiredPackages(topo) {
		lines = append(lines, fmt.Sprintf("#:package %s@%s", pkg, packageVersion))
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	lines = append(lines, builderLine, "")

	for _, in := range sequence {
		block := r.instanceBlock(in, topo)
		if len(block) > 0 {
			lines = append(lines, block...)
			lines = append(lines, "")
		}
	}

	lines = append(lines, trailerLine)
	return strings.Join(lines, "\n") + "\n"
}

// instanceBlock renders one instance's declaration, sub-resource, and
// reference statements. Instances without a name render nothing.
func (r *Renderer) instanceBlock(in topology.Instance, topo *topology.Topology) []string {
	if in.Name == "" {
		return nil
	}
	def, ok := r.reg.Definition(in.TypeID)
	if !ok {
		// Unknown types degrade to a comment, never a render failure.
		return []string{fmt.Sprintf("// instance %q skipped: unknown resource type %q", in.Name, in.TypeID)}
	}

	self := varName(in.Name)
	chain := builderCall(def, in)
	chain += r.defaultChaining(def, in)
	chain += configChaining(in)

	block := []string{fmt.Sprintf("var %s = %s;", self, chain)}

	if def.Child != nil && in.Database != "" {
		block = append(block, fmt.Sprintf("var %s = %s.%s(%q);", varName(in.Database), self, def.Child.Method, in.Database))
	}

	for _, c := range topo.Incoming(in.ID) {
		src, ok := topo.Instance(c.SourceID)
		if !ok || src.Name == "" {
			continue
		}
		srcDef, ok := r.reg.Definition(src.TypeID)
		if !ok {
			continue
		}
		ref := varName(src.Name)
		if srcDef.Child != nil && src.Database != "" {
			ref = varName(src.Database)
		}
		stmt := fmt.Sprintf("%s.%s(%s)", self, schema.OpReference, ref)
		if srcDef.Category == schema.CategoryDatabase {
			stmt += fmt.Sprintf(".%s(%s)", schema.OpWaitFor, ref)
		}
		block = append(block, stmt+";")
	}

	return block
}

// defaultChaining appends the type's implicit operations: persistence
// for databases and the strategy table's default endpoint.
func (r *Renderer) defaultChaining(def schema.Definition, in topology.Instance) string {
	var b strings.Builder

	if def.Category == schema.CategoryDatabase &&
		(in.Config.Persistent == nil || *in.Config.Persistent) {
		fmt.Fprintf(&b, ".%s()", schema.OpDataVolume)
	}

	s := strategyFor(in.TypeID)
	if s.EndpointEnv != "" {
		fmt.Fprintf(&b, ".%s(env: %q)", schema.OpEndpoint, s.EndpointEnv)
	}
	if s.EndpointTargetPort > 0 {
		port := s.EndpointTargetPort
		if len(in.Config.Ports) > 0 {
			port = in.Config.Ports[0].Container
		}
		fmt.Fprintf(&b, ".%s(targetPort: %d)", schema.OpEndpoint, port)
	}

	return b.String()
}

// configChaining appends one call per configured environment variable,
// port mapping, bind mount, and a replica call when more than one
// replica is requested.
func configChaining(in topology.Instance) string {
	var b strings.Builder

	for _, key := range sortedKeys(in.Config.Env) {
		fmt.Fprintf(&b, ".%s(%q, %q)", schema.OpEnvironment, key, in.Config.Env[key])
	}
	for _, p := range in.Config.Ports {
		fmt.Fprintf(&b, ".%s(port: %d, targetPort: %d)", schema.OpEndpoint, p.Host, p.Container)
	}
	for _, m := range in.Config.Mounts {
		fmt.Fprintf(&b, ".%s(%q, %q)", schema.OpBindMount, m.Source, m.Target)
	}
	if in.Config.Replicas > 1 {
		fmt.Fprintf(&b, ".%s(%d)", schema.OpReplicas, in.Config.Replicas)
	}

	return b.String()
}

func placeholderDocument(blocking []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generation blocked: %d validation error(s).\n", len(blocking))
	b.WriteString("// Fix the issues below and regenerate.\n//\n")
	for _, msg := range blocking {
		fmt.Fprintf(&b, "// - %s\n", msg)
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
