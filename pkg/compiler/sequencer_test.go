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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
	"github.com/topoforge/topoforge/pkg/topology/dag"
)

func names(sequence []topology.Instance) []string {
	out := make([]string, len(sequence))
	for i, in := range sequence {
		out[i] = in.Name
	}
	return out
}

func TestSequencerOrdersDependenciesFirst(t *testing.T) {
	web := topology.NewInstance(schema.TypeNpmApp, "web")
	api := topology.NewInstance(schema.TypeProject, "api")
	db := topology.NewInstance("postgres", "pg")
	topo := &topology.Topology{
		Instances: []topology.Instance{web, api, db},
		Connections: []topology.Connection{
			topology.NewConnection(api.ID, web.ID, topology.KindReference),
			topology.NewConnection(db.ID, api.ID, topology.KindReference),
		},
	}

	sequence, err := newSequencer().Sequence(topo)
	require.NoError(t, err)
	assert.Equal(t, []string{"pg", "api", "web"}, names(sequence))
}

func TestSequencerKeepsDeclarationOrderWithoutEdges(t *testing.T) {
	a := topology.NewInstance("redis", "cache")
	b := topology.NewInstance("postgres", "pg")
	c := topology.NewInstance(schema.TypeProject, "api")
	topo := &topology.Topology{Instances: []topology.Instance{a, b, c}}

	sequence, err := newSequencer().Sequence(topo)
	require.NoError(t, err)
	assert.Equal(t, []string{"cache", "pg", "api"}, names(sequence))
}

func TestSequencerSkipsDanglingAndSelfEdges(t *testing.T) {
	api := topology.NewInstance(schema.TypeProject, "api")
	topo := &topology.Topology{
		Instances: []topology.Instance{api},
		Connections: []topology.Connection{
			topology.NewConnection(api.ID, api.ID, topology.KindReference),
			topology.NewConnection("ghost", api.ID, topology.KindReference),
			topology.NewConnection(api.ID, "ghost", topology.KindReference),
		},
	}

	sequence, err := newSequencer().Sequence(topo)
	require.NoError(t, err)
	assert.Equal(t, []string{"api"}, names(sequence))
}

func TestSequencerReportsCycleParticipants(t *testing.T) {
	a := topology.NewInstance(schema.TypeProject, "api")
	b := topology.NewInstance(schema.TypeProject, "worker")
	c := topology.NewInstance("postgres", "pg")
	topo := &topology.Topology{
		Instances: []topology.Instance{a, b, c},
		Connections: []topology.Connection{
			topology.NewConnection(a.ID, b.ID, topology.KindReference),
			topology.NewConnection(b.ID, a.ID, topology.KindReference),
		},
	}

	sequence, err := newSequencer().Sequence(topo)
	require.Error(t, err)

	ce := dag.AsCycleError[string](err)
	require.NotNil(t, ce)
	assert.Equal(t, []string{a.ID, b.ID}, ce.Remaining)
	// The sequenceable prefix still comes back for partial rendering.
	assert.Equal(t, []string{"pg"}, names(sequence))
}
