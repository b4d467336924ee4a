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

package schema

import (
	"sort"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Registry is a read-only lookup table of resource type definitions.
// Unknown type IDs return "not found" results, never panics.
type Registry struct {
	defs  map[string]Definition
	order []string
}

// NewRegistry builds a registry from definitions, keeping their order
// for deterministic iteration.
func NewRegistry(defs ...Definition) *Registry {
	r := &Registry{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		if _, dup := r.defs[d.ID]; dup {
			continue
		}
		r.defs[d.ID] = d
		r.order = append(r.order, d.ID)
	}
	return r
}

// Definition looks up a type definition by ID.
func (r *Registry) Definition(typeID string) (Definition, bool) {
	d, ok := r.defs[typeID]
	return d, ok
}

// TypeIDs returns all registered type IDs in catalog order.
func (r *Registry) TypeIDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ChainingOperations returns the chaining operations available for a
// type, nil for unknown types.
func (r *Registry) ChainingOperations(typeID string) []string {
	d, ok := r.defs[typeID]
	if !ok {
		return nil
	}
	out := make([]string, len(d.ChainingOperations))
	copy(out, d.ChainingOperations)
	return out
}

// IsConnectionValid reports whether an edge from sourceType to
// targetType is category-compatible: the source advertises the target's
// category in CanBeReferencedBy, or the target advertises the source's
// category in CanConnectTo. Unknown types are never valid.
func (r *Registry) IsConnectionValid(sourceTypeID, targetTypeID string) bool {
	src, ok := r.defs[sourceTypeID]
	if !ok {
		return false
	}
	dst, ok := r.defs[targetTypeID]
	if !ok {
		return false
	}
	for _, c := range src.CanBeReferencedBy {
		if c == dst.Category {
			return true
		}
	}
	for _, c := range dst.CanConnectTo {
		if c == src.Category {
			return true
		}
	}
	return false
}

// RequiredPackages collects the external packages needed by the given
// type IDs, sorted and de-duplicated. The builtin project type and
// unknown types contribute nothing.
func (r *Registry) RequiredPackages(typeIDs []string) []string {
	pkgs := sets.NewString()
	for _, id := range typeIDs {
		d, ok := r.defs[id]
		if !ok {
			continue
		}
		pkgs.Insert(d.Packages...)
	}
	out := pkgs.List()
	sort.Strings(out)
	return out
}

// BuilderMethods returns a reverse lookup from builder method name to
// type ID, used by the declaration parser.
func (r *Registry) BuilderMethods() map[string]string {
	out := make(map[string]string, len(r.defs))
	for _, id := range r.order {
		out[r.defs[id].BuilderMethod] = id
	}
	return out
}
