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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

func TestNamingRule(t *testing.T) {
	reg := schema.Catalog()

	t.Run("duplicate names reported once with all holders", func(t *testing.T) {
		a := topology.NewInstance("postgres", "shared")
		b := topology.NewInstance("redis", "shared")
		topo := &topology.Topology{Instances: []topology.Instance{a, b}}

		issues := namingRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityError, issues[0].Severity)
		assert.Equal(t, a.ID, issues[0].NodeID)
		assert.Equal(t, []string{a.ID, b.ID}, issues[0].Related)
	})

	t.Run("invalid identifier", func(t *testing.T) {
		topo := &topology.Topology{Instances: []topology.Instance{
			topology.NewInstance("postgres", "My_DB"),
		}}
		issues := namingRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Equal(t, CategoryNaming, issues[0].Category)
	})

	t.Run("invalid logical database name", func(t *testing.T) {
		topo := &topology.Topology{Instances: []topology.Instance{
			topology.NewInstance("postgres", "pg").WithDatabase("App Db"),
		}}
		issues := namingRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "logical database")
	})

	t.Run("missing name", func(t *testing.T) {
		topo := &topology.Topology{Instances: []topology.Instance{
			topology.NewInstance("postgres", ""),
		}}
		issues := namingRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "has no name")
	})
}

func TestAPIUsageRule(t *testing.T) {
	reg := schema.Catalog()

	t.Run("unknown type is a warning not an error", func(t *testing.T) {
		topo := &topology.Topology{Instances: []topology.Instance{
			topology.NewInstance("cosmosdb", "cosmos"),
		}}
		issues := apiUsageRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityWarning, issues[0].Severity)
		assert.Equal(t, CategoryAPI, issues[0].Category)
	})

	t.Run("referenced type must support references", func(t *testing.T) {
		db := topology.NewInstance("postgres", "pg")
		other := topology.NewInstance("mysql", "my")
		topo := &topology.Topology{
			Instances: []topology.Instance{db, other},
			Connections: []topology.Connection{
				topology.NewConnection(other.ID, db.ID, topology.KindReference),
			},
		}
		issues := apiUsageRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityError, issues[0].Severity)
		assert.Equal(t, db.ID, issues[0].NodeID)
		assert.Contains(t, issues[0].Message, schema.OpReference)
	})
}

func TestConnectionRule(t *testing.T) {
	reg := schema.Catalog()

	t.Run("dangling edge yields exactly one error", func(t *testing.T) {
		api := topology.NewInstance(schema.TypeProject, "api")
		topo := &topology.Topology{
			Instances: []topology.Instance{api},
			Connections: []topology.Connection{
				topology.NewConnection("ghost", api.ID, topology.KindReference),
			},
		}
		issues := connectionRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityError, issues[0].Severity)
		assert.Equal(t, topo.Connections[0].ID, issues[0].EdgeID)
	})

	t.Run("self loop", func(t *testing.T) {
		api := topology.NewInstance(schema.TypeProject, "api")
		topo := &topology.Topology{
			Instances: []topology.Instance{api},
			Connections: []topology.Connection{
				topology.NewConnection(api.ID, api.ID, topology.KindReference),
			},
		}
		issues := connectionRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "connected to itself")
	})

	t.Run("incompatible categories", func(t *testing.T) {
		db := topology.NewInstance("postgres", "pg")
		cache := topology.NewInstance("redis", "cache")
		topo := &topology.Topology{
			Instances: []topology.Instance{db, cache},
			Connections: []topology.Connection{
				topology.NewConnection(cache.ID, db.ID, topology.KindReference),
			},
		}
		issues := connectionRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Equal(t, []string{cache.ID, db.ID}, issues[0].Related)
	})

	t.Run("unknown endpoint type skips compatibility", func(t *testing.T) {
		mystery := topology.NewInstance("cosmosdb", "cosmos")
		api := topology.NewInstance(schema.TypeProject, "api")
		topo := &topology.Topology{
			Instances: []topology.Instance{mystery, api},
			Connections: []topology.Connection{
				topology.NewConnection(mystery.ID, api.ID, topology.KindReference),
			},
		}
		assert.Empty(t, connectionRule{}.Check(topo, reg))
	})
}

func TestConfigurationRule(t *testing.T) {
	reg := schema.Catalog()

	t.Run("database without logical database", func(t *testing.T) {
		topo := &topology.Topology{Instances: []topology.Instance{
			topology.NewInstance("postgres", "pg"),
		}}
		issues := configurationRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityWarning, issues[0].Severity)
		assert.Contains(t, issues[0].Suggestion, schema.OpAddDatabase)
	})

	t.Run("persistence disabled", func(t *testing.T) {
		topo := &topology.Topology{Instances: []topology.Instance{
			topology.NewInstance("postgres", "pg").WithDatabase("appdb").WithPersistence(false),
		}}
		issues := configurationRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "persistence disabled")
	})

	t.Run("env key casing", func(t *testing.T) {
		topo := &topology.Topology{Instances: []topology.Instance{
			topology.NewInstance(schema.TypeProject, "api").
				WithEnv("ASPNETCORE_ENVIRONMENT", "Development").
				WithEnv("connectionString", "x"),
		}}
		issues := configurationRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "connectionString")
	})

	t.Run("port out of range", func(t *testing.T) {
		topo := &topology.Topology{Instances: []topology.Instance{
			topology.NewInstance(schema.TypeContainer, "svc").WithPort(0, 70000),
		}}
		issues := configurationRule{}.Check(topo, reg)
		require.Len(t, issues, 2)
		assert.Equal(t, SeverityError, issues[0].Severity)
		assert.Equal(t, SeverityError, issues[1].Severity)
	})
}

func TestArchitectureRule(t *testing.T) {
	reg := schema.Catalog()

	t.Run("orphan project is informational", func(t *testing.T) {
		topo := &topology.Topology{Instances: []topology.Instance{
			topology.NewInstance(schema.TypeProject, "worker"),
		}}
		issues := architectureRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityInfo, issues[0].Severity)
	})

	t.Run("unused backing service", func(t *testing.T) {
		topo := &topology.Topology{Instances: []topology.Instance{
			topology.NewInstance("rabbitmq", "bus"),
		}}
		issues := architectureRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityWarning, issues[0].Severity)
		assert.Contains(t, issues[0].Message, "deployed but unused")
	})

	t.Run("duplicate caches reported once", func(t *testing.T) {
		api := topology.NewInstance(schema.TypeProject, "api")
		c1 := topology.NewInstance("redis", "sessions")
		c2 := topology.NewInstance("valkey", "output")
		topo := &topology.Topology{
			Instances: []topology.Instance{api, c1, c2},
			Connections: []topology.Connection{
				topology.NewConnection(c1.ID, api.ID, topology.KindReference),
				topology.NewConnection(c2.ID, api.ID, topology.KindReference),
			},
		}
		issues := architectureRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "multiple cache instances")
		assert.Equal(t, []string{c1.ID, c2.ID}, issues[0].Related)
	})
}

func TestSecurityRule(t *testing.T) {
	reg := schema.Catalog()

	t.Run("literal secret", func(t *testing.T) {
		topo := &topology.Topology{Instances: []topology.Instance{
			topology.NewInstance("postgres", "pg").WithEnv("POSTGRES_PASSWORD", "hunter2"),
		}}
		issues := securityRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityWarning, issues[0].Severity)
		assert.Contains(t, issues[0].Message, "POSTGRES_PASSWORD")
	})

	t.Run("placeholder values pass", func(t *testing.T) {
		topo := &topology.Topology{Instances: []topology.Instance{
			topology.NewInstance("postgres", "pg").
				WithEnv("POSTGRES_PASSWORD", "{secrets.PG_PASSWORD}").
				WithEnv("API_TOKEN", "$TOKEN"),
		}}
		assert.Empty(t, securityRule{}.Check(topo, reg))
	})

	t.Run("AI service without key", func(t *testing.T) {
		topo := &topology.Topology{Instances: []topology.Instance{
			topology.NewInstance("openai", "llm"),
		}}
		issues := securityRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityInfo, issues[0].Severity)
	})

	t.Run("non sensitive env untouched", func(t *testing.T) {
		topo := &topology.Topology{Instances: []topology.Instance{
			topology.NewInstance(schema.TypeProject, "api").WithEnv("LOG_LEVEL", "debug"),
		}}
		assert.Empty(t, securityRule{}.Check(topo, reg))
	})
}

func TestPerformanceRule(t *testing.T) {
	reg := schema.Catalog()

	build := func(replicas int) *topology.Topology {
		api := topology.NewInstance(schema.TypeProject, "api")
		if replicas > 0 {
			api = api.WithReplicas(replicas)
		}
		instances := []topology.Instance{api}
		var conns []topology.Connection
		for _, name := range []string{"pg", "cache", "bus", "blob"} {
			in := topology.NewInstance("postgres", name)
			instances = append(instances, in)
			conns = append(conns, topology.NewConnection(in.ID, api.ID, topology.KindReference))
		}
		return &topology.Topology{Instances: instances, Connections: conns}
	}

	t.Run("high fan-in single replica", func(t *testing.T) {
		issues := performanceRule{}.Check(build(0), reg)
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityInfo, issues[0].Severity)
		assert.Contains(t, issues[0].Message, "4 resources")
	})

	t.Run("replicated consumer passes", func(t *testing.T) {
		assert.Empty(t, performanceRule{}.Check(build(3), reg))
	})
}

func TestCycleRule(t *testing.T) {
	reg := schema.Catalog()

	t.Run("two instance cycle", func(t *testing.T) {
		a := topology.NewInstance(schema.TypeProject, "api")
		b := topology.NewInstance(schema.TypeProject, "worker")
		topo := &topology.Topology{
			Instances: []topology.Instance{a, b},
			Connections: []topology.Connection{
				topology.NewConnection(a.ID, b.ID, topology.KindReference),
				topology.NewConnection(b.ID, a.ID, topology.KindReference),
			},
		}
		issues := cycleRule{}.Check(topo, reg)
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityError, issues[0].Severity)
		assert.Equal(t, "dependency cycle: api -> worker -> api", issues[0].Message)
		assert.Equal(t, []string{a.ID, b.ID}, issues[0].Related)
	})

	t.Run("self loops and dangling edges are ignored", func(t *testing.T) {
		a := topology.NewInstance(schema.TypeProject, "api")
		topo := &topology.Topology{
			Instances: []topology.Instance{a},
			Connections: []topology.Connection{
				topology.NewConnection(a.ID, a.ID, topology.KindReference),
				topology.NewConnection("ghost", a.ID, topology.KindReference),
			},
		}
		assert.Empty(t, cycleRule{}.Check(topo, reg))
	})

	t.Run("acyclic chain", func(t *testing.T) {
		assert.Empty(t, cycleRule{}.Check(validTopology(), reg))
	})
}
