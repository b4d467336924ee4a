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
	"encoding/json"
	"fmt"

	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

// settingsText generates the connection-settings JSON: every logical
// database name (or instance name for cache/messaging types) mapped to
// a connection-string placeholder. Keys marshal sorted, so the output
// is deterministic.
func (r *Renderer) settingsText(topo *topology.Topology) string {
	conns := map[string]string{}

	for _, in := range topo.Instances {
		if in.Name == "" {
			continue
		}
		def, ok := r.reg.Definition(in.TypeID)
		if !ok {
			continue
		}

		switch def.Category {
		case schema.CategoryDatabase:
			key := in.Name
			if in.Database != "" {
				key = in.Database
			}
			conns[key] = connectionPlaceholder(key)
		case schema.CategoryCache, schema.CategoryMessaging:
			conns[in.Name] = connectionPlaceholder(in.Name)
		}
	}

	doc := map[string]any{"ConnectionStrings": conns}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		// map[string]string cannot fail to marshal.
		return "{}"
	}
	return string(data) + "\n"
}

func connectionPlaceholder(name string) string {
	return fmt.Sprintf("{%s.connectionString}", name)
}
