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

package compiler

import (
	"github.com/topoforge/topoforge/pkg/topology"
	"github.com/topoforge/topoforge/pkg/topology/dag"
)

type sequencer struct{}

func newSequencer() Sequencer { return &sequencer{} }

// Sequence orders instances so that every connection's source precedes
// its target, tie-broken by original list order. Dangling and self
// edges are skipped here; they are the validation engine's findings.
//
// Cycle participants are returned alongside a CycleError naming them;
// callers that can tolerate a partial order can detect it with
// dag.AsCycleError and use the prefix.
func (s *sequencer) Sequence(topo *topology.Topology) ([]topology.Instance, error) {
	d := dag.NewDirectedAcyclicGraph[string]()
	for i, in := range topo.Instances {
		if err := d.AddVertex(in.ID, i); err != nil {
			return nil, terminal("sequencer", err)
		}
	}

	for _, c := range topo.Connections {
		if c.SourceID == c.TargetID {
			continue
		}
		if _, ok := topo.Instance(c.SourceID); !ok {
			continue
		}
		if _, ok := topo.Instance(c.TargetID); !ok {
			continue
		}
		// Target depends on source. Cycles are legal input here and
		// surface from the sort, not the insert.
		if err := d.AddDependency(c.TargetID, c.SourceID); err != nil {
			return nil, terminal("sequencer", err)
		}
	}

	order, dropped := d.SortBestEffort()
	out := make([]topology.Instance, 0, len(order))
	for _, id := range order {
		in, _ := topo.Instance(id)
		out = append(out, in)
	}

	if len(dropped) > 0 {
		return out, &dag.CycleError[string]{Remaining: dropped}
	}
	return out, nil
}
