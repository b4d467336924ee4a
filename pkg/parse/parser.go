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

// Package parse reconstructs topologies from external text: apphost
// declaration source, a restricted service-compose subset, and
// container build files. All parsers are best-effort line/pattern
// scanners: malformed input degrades to an empty topology plus
// warnings, never a panic.
package parse

import (
	"strconv"

	"github.com/topoforge/topoforge/pkg/topology"
)

// Parser reconstructs a topology from one text format.
type Parser interface {
	// Parse scans text and returns the reconstructed topology plus any
	// warnings about constructs it skipped or guessed at.
	Parse(text string) (*topology.Topology, []string)
}

// allocator hands out synthetic, monotonically increasing IDs so that
// parsed elements never collide with a pre-existing topology's UUIDs.
type allocator struct {
	prefix string
	next   int
}

func newAllocator(prefix string) *allocator {
	return &allocator{prefix: prefix, next: 1}
}

func (a *allocator) id(kind string) string {
	id := a.prefix + "-" + kind + "-" + strconv.Itoa(a.next)
	a.next++
	return id
}
