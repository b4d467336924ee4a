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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

const composeText = `version: "3.9"
services:
  db:
    image: postgres:16
    ports:
      - "5432:5432"
  api:
    image: ghcr.io/acme/api:latest
    depends_on:
      - db
    ports:
      - "8080:80"
`

func TestComposeParser(t *testing.T) {
	topo, warnings := NewComposeParser().Parse(composeText)

	require.Len(t, topo.Instances, 2)

	db := topo.Instances[0]
	assert.Equal(t, "postgres", db.TypeID)
	assert.Equal(t, "db", db.Name)
	assert.Equal(t, []topology.PortMapping{{Host: 5432, Container: 5432}}, db.Config.Ports)

	api := topo.Instances[1]
	assert.Equal(t, schema.TypeContainer, api.TypeID)
	assert.Equal(t, "ghcr.io/acme/api:latest", api.Image)
	assert.Equal(t, []topology.PortMapping{{Host: 8080, Container: 80}}, api.Config.Ports)

	// depends_on makes the depended-upon service the edge source.
	require.Len(t, topo.Connections, 1)
	assert.Equal(t, db.ID, topo.Connections[0].SourceID)
	assert.Equal(t, api.ID, topo.Connections[0].TargetID)
	assert.Equal(t, topology.KindDependsOn, topo.Connections[0].Kind)

	// The unrecognized api image is the only expected warning.
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "not recognized")
}

func TestComposeParserInlineDependsOn(t *testing.T) {
	text := `services:
  db:
    image: postgres:16
  cache:
    image: redis:7
  api:
    image: node:22
    depends_on: [db, cache]
`
	topo, _ := NewComposeParser().Parse(text)

	require.Len(t, topo.Instances, 3)
	require.Len(t, topo.Connections, 2)
	assert.Equal(t, topo.Instances[0].ID, topo.Connections[0].SourceID)
	assert.Equal(t, topo.Instances[1].ID, topo.Connections[1].SourceID)
	assert.Equal(t, topo.Instances[2].ID, topo.Connections[0].TargetID)
}

func TestComposeImageMapping(t *testing.T) {
	tests := []struct {
		image  string
		want   string
		mapped bool
	}{
		{image: "postgres:16-alpine", want: "postgres", mapped: true},
		{image: "mariadb:11", want: "mysql", mapped: true},
		{image: "mcr.microsoft.com/mssql:2022", want: "sqlserver", mapped: true},
		{image: "confluentinc/cp-kafka:7.5", want: "kafka", mapped: true},
		{image: "valkey/valkey:8", want: "valkey", mapped: true},
		{image: "ollama/ollama", want: "ollama", mapped: true},
		{image: "nginx:1.27", want: schema.TypeContainer, mapped: false},
	}

	for _, tt := range tests {
		t.Run(tt.image, func(t *testing.T) {
			got, mapped := mapImage(tt.image, "svc")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.mapped, mapped)
		})
	}
}

func TestComposeParserEdgeCases(t *testing.T) {
	t.Run("no services block", func(t *testing.T) {
		topo, warnings := NewComposeParser().Parse("version: \"3\"\n")
		assert.Empty(t, topo.Instances)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "no services block")
	})

	t.Run("empty services block", func(t *testing.T) {
		topo, warnings := NewComposeParser().Parse("services:\n")
		assert.Empty(t, topo.Instances)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "services block is empty")
	})

	t.Run("unknown dependency", func(t *testing.T) {
		text := `services:
  api:
    image: postgres:16
    depends_on:
      - ghost
`
		topo, warnings := NewComposeParser().Parse(text)
		require.Len(t, topo.Instances, 1)
		assert.Empty(t, topo.Connections)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], `unknown service "ghost"`)
	})

	t.Run("missing image falls back to service name", func(t *testing.T) {
		text := `services:
  redis:
    ports:
      - "6379:6379"
`
		topo, warnings := NewComposeParser().Parse(text)
		require.Len(t, topo.Instances, 1)
		assert.Equal(t, "redis", topo.Instances[0].TypeID)
		assert.Empty(t, warnings)
	})
}
