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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topoforge/topoforge/pkg/render"
	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

func testTopology() *topology.Topology {
	pg := topology.NewInstance("postgres", "pg").WithDatabase("appdb")
	api := topology.NewInstance(schema.TypeProject, "api")
	return &topology.Topology{
		Instances: []topology.Instance{api, pg},
		Connections: []topology.Connection{
			topology.NewConnection(pg.ID, api.ID, topology.KindReference),
		},
	}
}

func TestCompileValidTopology(t *testing.T) {
	out, err := New().Compile(testTopology())
	require.NoError(t, err)

	assert.Empty(t, out.BlockingErrors)
	// pg precedes api despite declaration order: api references it.
	assert.Contains(t, out.PrimaryText, `var pg = builder.AddPostgres("pg")`)
	assert.Contains(t, out.PrimaryText, "api.WithReference(appdb).WaitFor(appdb);")
	assert.Less(t,
		strings.Index(out.PrimaryText, "AddPostgres"),
		strings.Index(out.PrimaryText, "AddProject"))
	assert.Equal(t, []string{"Aspire.Hosting.PostgreSQL"}, out.RequiredPackages)
}

func TestCompileIsDeterministic(t *testing.T) {
	topo := testTopology()
	c := New()

	first, err := c.Compile(topo)
	require.NoError(t, err)
	second, err := c.Compile(topo)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompileValidationGatesRendering(t *testing.T) {
	a := topology.NewInstance("postgres", "shared")
	b := topology.NewInstance("redis", "shared")
	topo := &topology.Topology{Instances: []topology.Instance{a, b}}

	out, err := New().Compile(topo)
	require.NoError(t, err)

	assert.NotEmpty(t, out.BlockingErrors)
	assert.Contains(t, out.PrimaryText, "// Code generation blocked")
	assert.NotContains(t, out.PrimaryText, "AddPostgres")
	assert.NotEmpty(t, out.SettingsText, "companion artifacts survive blocking errors")
}

func TestCompileCyclicTopology(t *testing.T) {
	a := topology.NewInstance(schema.TypeProject, "api")
	b := topology.NewInstance(schema.TypeProject, "worker")
	topo := &topology.Topology{
		Instances: []topology.Instance{a, b},
		Connections: []topology.Connection{
			topology.NewConnection(a.ID, b.ID, topology.KindReference),
			topology.NewConnection(b.ID, a.ID, topology.KindReference),
		},
	}

	// The cycle surfaces as a blocking validation issue, not a Compile
	// error; the placeholder document reports it.
	out, err := New().Compile(topo)
	require.NoError(t, err)
	assert.NotEmpty(t, out.BlockingErrors)
	assert.Contains(t, out.PrimaryText, "dependency cycle")
}

func TestCompileNilTopology(t *testing.T) {
	_, err := New().Compile(nil)
	require.Error(t, err)
	assert.True(t, IsTerminal(err))

	_, err = New().Validate(nil)
	require.Error(t, err)
}

func TestNewAppliesOptions(t *testing.T) {
	reg := schema.NewRegistry(schema.Definition{
		ID:            "onlytype",
		Category:      schema.CategoryProject,
		BuilderMethod: "AddOnly",
		Parameters:    []schema.ParameterSpec{{Name: "name", Required: true, Identifier: true}},
	})

	c := New(WithRegistry(reg))
	assert.Same(t, reg, c.Registry())

	stub := stubRenderer{text: "stubbed"}
	out, err := New(WithRenderer(stub)).Compile(testTopology())
	require.NoError(t, err)
	assert.Equal(t, "stubbed", out.PrimaryText)
}

type stubRenderer struct{ text string }

func (s stubRenderer) Render([]topology.Instance, *topology.Topology, []string) render.Artifacts {
	return render.Artifacts{PrimaryText: s.text}
}

func TestValidateOnly(t *testing.T) {
	res, err := New().Validate(testTopology())
	require.NoError(t, err)
	assert.True(t, res.IsValid())

	res, err = New().Validate(&topology.Topology{Instances: []topology.Instance{
		topology.NewInstance("postgres", ""),
	}})
	require.NoError(t, err)
	assert.False(t, res.IsValid())
}
