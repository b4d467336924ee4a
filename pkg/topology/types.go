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

// Package topology holds the in-memory application graph: typed resource
// instances (nodes) and directed connections (edges). The model is plain
// data produced by a host layer or a reverse parser; all interpretation
// (validation, ordering, rendering) happens downstream.
package topology

import (
	"maps"
	"slices"

	"github.com/google/uuid"
)

// ConnectionKind classifies the relationship an edge expresses.
type ConnectionKind string

const (
	// KindReference injects the source's availability into the target.
	KindReference ConnectionKind = "reference"
	// KindWaitFor gates the target's startup on the source.
	KindWaitFor ConnectionKind = "wait-for"
	// KindDependsOn is a generic dependency imported from compose files.
	KindDependsOn ConnectionKind = "depends-on"
)

// PortMapping maps a host port to a container port.
type PortMapping struct {
	Host      int `json:"host"`
	Container int `json:"container"`
}

// BindMount maps a host path into a container path.
type BindMount struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Config is the optional configuration bag of an instance.
// A nil Persistent means "not specified"; rules and the renderer treat
// an explicit false differently from absence.
type Config struct {
	Env        map[string]string `json:"env,omitempty"`
	Ports      []PortMapping     `json:"ports,omitempty"`
	Mounts     []BindMount       `json:"mounts,omitempty"`
	Replicas   int               `json:"replicas,omitempty"`
	Persistent *bool             `json:"persistent,omitempty"`
}

// Instance is one node of the topology graph.
type Instance struct {
	ID     string `json:"id"`
	TypeID string `json:"type"`
	Name   string `json:"name"`
	// Database is the logical database name owned by a database-server
	// instance, empty otherwise.
	Database string `json:"database,omitempty"`
	// Image overrides the container image for container-category types.
	Image  string `json:"image,omitempty"`
	Config Config `json:"config,omitempty"`
}

// Connection is one directed edge. Direction means "target depends on /
// references source". Endpoints are instance IDs; both may transiently
// point at missing instances, which the validation engine reports.
type Connection struct {
	ID       string         `json:"id"`
	SourceID string         `json:"source"`
	TargetID string         `json:"target"`
	Kind     ConnectionKind `json:"kind"`
}

// Topology is the full graph handed to the compiler pipeline.
type Topology struct {
	Instances   []Instance   `json:"instances"`
	Connections []Connection `json:"connections,omitempty"`
}

// NewInstance creates an instance with a fresh unique ID.
func NewInstance(typeID, name string) Instance {
	return Instance{ID: uuid.NewString(), TypeID: typeID, Name: name}
}

// NewConnection creates a connection with a fresh unique ID.
func NewConnection(sourceID, targetID string, kind ConnectionKind) Connection {
	return Connection{ID: uuid.NewString(), SourceID: sourceID, TargetID: targetID, Kind: kind}
}

// cloneConfig deep-copies the configuration bag so updated instances
// never alias the original's maps and slices.
func cloneConfig(c Config) Config {
	out := Config{Replicas: c.Replicas}
	if c.Env != nil {
		out.Env = maps.Clone(c.Env)
	}
	out.Ports = slices.Clone(c.Ports)
	out.Mounts = slices.Clone(c.Mounts)
	if c.Persistent != nil {
		v := *c.Persistent
		out.Persistent = &v
	}
	return out
}

// WithEnv returns a copy of the instance with one environment variable set.
func (in Instance) WithEnv(key, value string) Instance {
	out := in
	out.Config = cloneConfig(in.Config)
	if out.Config.Env == nil {
		out.Config.Env = map[string]string{}
	}
	out.Config.Env[key] = value
	return out
}

// WithPort returns a copy of the instance with a port mapping appended.
func (in Instance) WithPort(host, container int) Instance {
	out := in
	out.Config = cloneConfig(in.Config)
	out.Config.Ports = append(out.Config.Ports, PortMapping{Host: host, Container: container})
	return out
}

// WithMount returns a copy of the instance with a bind mount appended.
func (in Instance) WithMount(source, target string) Instance {
	out := in
	out.Config = cloneConfig(in.Config)
	out.Config.Mounts = append(out.Config.Mounts, BindMount{Source: source, Target: target})
	return out
}

// WithReplicas returns a copy of the instance with the replica count set.
func (in Instance) WithReplicas(n int) Instance {
	out := in
	out.Config = cloneConfig(in.Config)
	out.Config.Replicas = n
	return out
}

// WithPersistence returns a copy of the instance with the persistence
// flag explicitly set.
func (in Instance) WithPersistence(enabled bool) Instance {
	out := in
	out.Config = cloneConfig(in.Config)
	out.Config.Persistent = &enabled
	return out
}

// WithDatabase returns a copy of the instance with the logical database
// name set.
func (in Instance) WithDatabase(name string) Instance {
	out := in
	out.Database = name
	return out
}

// Instance looks up an instance by ID.
func (t *Topology) Instance(id string) (Instance, bool) {
	for _, in := range t.Instances {
		if in.ID == id {
			return in, true
		}
	}
	return Instance{}, false
}

// Incoming returns the connections whose target is the given instance,
// in declaration order.
func (t *Topology) Incoming(id string) []Connection {
	var out []Connection
	for _, c := range t.Connections {
		if c.TargetID == id {
			out = append(out, c)
		}
	}
	return out
}

// Outgoing returns the connections whose source is the given instance,
// in declaration order.
func (t *Topology) Outgoing(id string) []Connection {
	var out []Connection
	for _, c := range t.Connections {
		if c.SourceID == id {
			out = append(out, c)
		}
	}
	return out
}

// ReplaceInstance returns a copy of the topology with the instance of
// the same ID replaced. Unknown IDs leave the topology unchanged.
func (t *Topology) ReplaceInstance(in Instance) *Topology {
	out := t.Clone()
	for i := range out.Instances {
		if out.Instances[i].ID == in.ID {
			out.Instances[i] = in
			break
		}
	}
	return out
}

// Clone deep-copies the topology.
func (t *Topology) Clone() *Topology {
	out := &Topology{
		Instances:   make([]Instance, len(t.Instances)),
		Connections: slices.Clone(t.Connections),
	}
	for i, in := range t.Instances {
		in.Config = cloneConfig(in.Config)
		out.Instances[i] = in
	}
	return out
}

// Merge appends another topology's instances and connections, remapping
// any IDs that collide with ones already present. Connections of the
// merged fragment follow their instances' remapped IDs.
func (t *Topology) Merge(other *Topology) *Topology {
	out := t.Clone()
	taken := map[string]struct{}{}
	for _, in := range out.Instances {
		taken[in.ID] = struct{}{}
	}

	remap := map[string]string{}
	for _, in := range other.Instances {
		id := in.ID
		if _, clash := taken[id]; clash {
			id = uuid.NewString()
			remap[in.ID] = id
		}
		taken[id] = struct{}{}
		in.Config = cloneConfig(in.Config)
		in.ID = id
		out.Instances = append(out.Instances, in)
	}
	for _, c := range other.Connections {
		if id, ok := remap[c.SourceID]; ok {
			c.SourceID = id
		}
		if id, ok := remap[c.TargetID]; ok {
			c.TargetID = id
		}
		out.Connections = append(out.Connections, c)
	}
	return out
}
