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
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

const defaultMaxReplicas = 10

// manifestDescriptor is one deployment entry of the manifest skeleton.
type manifestDescriptor struct {
	Name    string          `json:"name"`
	Compute manifestCompute `json:"compute"`
	Scale   manifestScale   `json:"scale"`
}

type manifestCompute struct {
	CPU    string `json:"cpu"`
	Memory string `json:"memory"`
}

type manifestScale struct {
	MinReplicas int `json:"minReplicas"`
	MaxReplicas int `json:"maxReplicas"`
}

// manifestText emits one descriptor per project/container-category
// instance with default compute sizing and a scale block bounded by the
// instance's replica count (or the default ceiling).
func (r *Renderer) manifestText(topo *topology.Topology) string {
	var docs []string

	for _, in := range topo.Instances {
		if in.Name == "" {
			continue
		}
		def, ok := r.reg.Definition(in.TypeID)
		if !ok {
			continue
		}
		if def.Category != schema.CategoryProject && def.Category != schema.CategoryContainer {
			continue
		}

		max := defaultMaxReplicas
		if in.Config.Replicas > 0 {
			max = in.Config.Replicas
		}
		desc := manifestDescriptor{
			Name:    in.Name,
			Compute: manifestCompute{CPU: "0.5", Memory: "1Gi"},
			Scale:   manifestScale{MinReplicas: 1, MaxReplicas: max},
		}
		data, err := yaml.Marshal(desc)
		if err != nil {
			continue
		}
		docs = append(docs, string(data))
	}

	if len(docs) == 0 {
		return ""
	}
	return strings.Join(docs, "---\n")
}
