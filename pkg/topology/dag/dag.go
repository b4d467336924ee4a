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

// Package dag implements a directed acyclic graph used to order
// topology instances by their connection dependencies.
package dag

import (
	"fmt"
	"sort"
)

// Vertex is one node of the graph together with its dependency set.
type Vertex[T comparable] struct {
	// ID is the unique identifier of the vertex.
	ID T
	// Order is the position of the vertex in the original list. It is
	// the tie-break for topological ordering: vertices that become
	// ready together are emitted in insertion order, not by ID.
	Order int
	// DependsOn tracks the vertices this vertex depends on.
	DependsOn map[T]struct{}
}

// DirectedAcyclicGraph holds vertices keyed by ID.
type DirectedAcyclicGraph[T comparable] struct {
	Vertices map[T]*Vertex[T]
}

// NewDirectedAcyclicGraph creates an empty graph.
func NewDirectedAcyclicGraph[T comparable]() *DirectedAcyclicGraph[T] {
	return &DirectedAcyclicGraph[T]{
		Vertices: make(map[T]*Vertex[T]),
	}
}

// CycleError is returned when an operation cannot complete because the
// graph contains at least one dependency cycle.
type CycleError[T comparable] struct {
	// Remaining are the vertices that could not be sequenced, in
	// insertion order.
	Remaining []T
}

func (e *CycleError[T]) Error() string {
	return fmt.Sprintf("graph contains a cycle involving %v", e.Remaining)
}

// AsCycleError returns the CycleError in err's chain, or nil.
func AsCycleError[T comparable](err error) *CycleError[T] {
	for err != nil {
		if ce, ok := err.(*CycleError[T]); ok {
			return ce
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil
		}
		err = u.Unwrap()
	}
	return nil
}

// AddVertex adds a vertex with the given insertion order.
func (d *DirectedAcyclicGraph[T]) AddVertex(id T, order int) error {
	if _, exists := d.Vertices[id]; exists {
		return fmt.Errorf("node %v already exists", id)
	}
	d.Vertices[id] = &Vertex[T]{
		ID:        id,
		Order:     order,
		DependsOn: make(map[T]struct{}),
	}
	return nil
}

// AddDependencies records that `from` depends on each of `deps`.
// Unknown endpoints, self references, and edges that would introduce a
// cycle are rejected.
func (d *DirectedAcyclicGraph[T]) AddDependencies(from T, deps []T) error {
	fromVertex, ok := d.Vertices[from]
	if !ok {
		return fmt.Errorf("node %v does not exist", from)
	}
	for _, dep := range deps {
		if from == dep {
			return fmt.Errorf("self reference on node %v", from)
		}
		if _, ok := d.Vertices[dep]; !ok {
			return fmt.Errorf("dependency %v does not exist", dep)
		}
		fromVertex.DependsOn[dep] = struct{}{}
		if cyclic, path := d.hasCycle(); cyclic {
			delete(fromVertex.DependsOn, dep)
			return fmt.Errorf("adding %v -> %v would create a cycle: %v", dep, from, path)
		}
	}
	return nil
}

// AddDependency records that `from` depends on `dep` without checking
// for cycles. The sequencer uses this for transient graphs where cycles
// are legal input and surface later as a CycleError from Sort.
func (d *DirectedAcyclicGraph[T]) AddDependency(from, dep T) error {
	fromVertex, ok := d.Vertices[from]
	if !ok {
		return fmt.Errorf("node %v does not exist", from)
	}
	if _, ok := d.Vertices[dep]; !ok {
		return fmt.Errorf("dependency %v does not exist", dep)
	}
	if from == dep {
		return fmt.Errorf("self reference on node %v", from)
	}
	fromVertex.DependsOn[dep] = struct{}{}
	return nil
}

// orderedIDs returns all vertex IDs sorted by insertion order.
func (d *DirectedAcyclicGraph[T]) orderedIDs() []T {
	ids := make([]T, 0, len(d.Vertices))
	for id := range d.Vertices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return d.Vertices[ids[i]].Order < d.Vertices[ids[j]].Order
	})
	return ids
}

// kahn runs Kahn's algorithm and returns the sequenced IDs plus any
// vertices that never reached zero in-degree (cycle participants), both
// in insertion order.
func (d *DirectedAcyclicGraph[T]) kahn() (order, remaining []T) {
	indegree := make(map[T]int, len(d.Vertices))
	dependents := make(map[T][]T, len(d.Vertices))
	for _, id := range d.orderedIDs() {
		v := d.Vertices[id]
		indegree[id] = len(v.DependsOn)
		for dep := range v.DependsOn {
			dependents[dep] = append(dependents[dep], id)
		}
	}

	var queue []T
	for _, id := range d.orderedIDs() {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order = make([]T, 0, len(d.Vertices))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		ready := make([]T, 0, len(dependents[id]))
		for _, dep := range dependents[id] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
		// Vertices released by the same dequeue become ready together;
		// enqueue them in insertion order to keep the sort stable.
		sort.Slice(ready, func(i, j int) bool {
			return d.Vertices[ready[i]].Order < d.Vertices[ready[j]].Order
		})
		queue = append(queue, ready...)
	}

	if len(order) < len(d.Vertices) {
		sequenced := make(map[T]struct{}, len(order))
		for _, id := range order {
			sequenced[id] = struct{}{}
		}
		for _, id := range d.orderedIDs() {
			if _, ok := sequenced[id]; !ok {
				remaining = append(remaining, id)
			}
		}
	}
	return order, remaining
}

// TopologicalSort returns a dependency-respecting order of all vertices.
// It fails with a CycleError when any vertex participates in a cycle.
func (d *DirectedAcyclicGraph[T]) TopologicalSort() ([]T, error) {
	order, remaining := d.kahn()
	if len(remaining) > 0 {
		return order, &CycleError[T]{Remaining: remaining}
	}
	return order, nil
}

// SortBestEffort returns the sequenceable prefix of the graph plus the
// vertices excluded by cycles. Callers that can tolerate a partial
// order get it here under an explicit name; everyone else should use
// TopologicalSort.
func (d *DirectedAcyclicGraph[T]) SortBestEffort() (order, dropped []T) {
	return d.kahn()
}

// TopologicalSortLevels groups vertices into dependency levels: every
// vertex's dependencies live in strictly earlier levels, and vertices
// within a level keep insertion order.
func (d *DirectedAcyclicGraph[T]) TopologicalSortLevels() ([][]T, error) {
	order, err := d.TopologicalSort()
	if err != nil {
		return nil, err
	}

	level := make(map[T]int, len(order))
	for _, id := range order {
		max := 0
		for dep := range d.Vertices[id].DependsOn {
			if level[dep]+1 > max {
				max = level[dep] + 1
			}
		}
		level[id] = max
	}

	var levels [][]T
	for _, id := range order {
		l := level[id]
		for len(levels) <= l {
			levels = append(levels, nil)
		}
		levels[l] = append(levels[l], id)
	}
	for _, l := range levels {
		sort.Slice(l, func(i, j int) bool {
			return d.Vertices[l[i]].Order < d.Vertices[l[j]].Order
		})
	}
	return levels, nil
}

// hasCycle reports whether the graph contains a cycle, returning one
// cycle path when found.
func (d *DirectedAcyclicGraph[T]) hasCycle() (bool, []T) {
	cycles := d.Cycles()
	if len(cycles) == 0 {
		return false, nil
	}
	return true, cycles[0]
}

// Cycles finds dependency cycles by depth-first search with a recursion
// stack. Each cycle is reported once as the path from the revisited
// vertex forward, closed by repeating that vertex. Traversal starts
// from vertices in insertion order, so results are deterministic.
func (d *DirectedAcyclicGraph[T]) Cycles() [][]T {
	var cycles [][]T
	visited := make(map[T]bool, len(d.Vertices))
	onStack := make(map[T]bool, len(d.Vertices))
	var stack []T

	var visit func(id T)
	visit = func(id T) {
		visited[id] = true
		onStack[id] = true
		stack = append(stack, id)

		for _, dep := range d.sortedDeps(id) {
			if onStack[dep] {
				start := 0
				for i, s := range stack {
					if s == dep {
						start = i
						break
					}
				}
				cycle := append([]T{}, stack[start:]...)
				cycle = append(cycle, dep)
				cycles = append(cycles, cycle)
				continue
			}
			if !visited[dep] {
				visit(dep)
			}
		}

		stack = stack[:len(stack)-1]
		onStack[id] = false
	}

	for _, id := range d.orderedIDs() {
		if !visited[id] {
			visit(id)
		}
	}
	return cycles
}

func (d *DirectedAcyclicGraph[T]) sortedDeps(id T) []T {
	deps := make([]T, 0, len(d.Vertices[id].DependsOn))
	for dep := range d.Vertices[id].DependsOn {
		deps = append(deps, dep)
	}
	sort.Slice(deps, func(i, j int) bool {
		return d.Vertices[deps[i]].Order < d.Vertices[deps[j]].Order
	})
	return deps
}
