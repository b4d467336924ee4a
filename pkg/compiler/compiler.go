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

// Package compiler orchestrates the topology compilation pipeline:
// validate, sequence, render. Each stage sits behind an interface and
// can be replaced through options for testing or custom behavior. The
// pipeline is a pure function of the topology: compiling the same
// graph twice yields identical artifacts.
package compiler

import (
	"github.com/go-logr/logr"

	"github.com/topoforge/topoforge/pkg/render"
	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
	"github.com/topoforge/topoforge/pkg/topology/dag"
	"github.com/topoforge/topoforge/pkg/validation"
)

// Sequencer orders instances by connection dependency.
type Sequencer interface {
	// Sequence returns a dependency-respecting order. When the graph
	// contains cycles it returns the sequenceable prefix together with
	// a dag.CycleError naming the excluded instances.
	Sequence(*topology.Topology) ([]topology.Instance, error)
}

// Validator produces the aggregate diagnostics for a topology.
type Validator interface {
	Validate(*topology.Topology) validation.Result
}

// Renderer emits the artifact bundle for a sequenced topology.
type Renderer interface {
	Render(sequence []topology.Instance, topo *topology.Topology, blocking []string) render.Artifacts
}

// Compiler compiles a topology into generated artifacts.
type Compiler struct {
	reg       *schema.Registry
	sequencer Sequencer
	validator Validator
	renderer  Renderer
	log       logr.Logger
}

// Option mutates Compiler stage wiring before defaults are applied.
type Option func(*Compiler)

// WithRegistry overrides the schema registry used by default stages.
func WithRegistry(reg *schema.Registry) Option { return func(c *Compiler) { c.reg = reg } }

// WithSequencer overrides the sequencer stage implementation.
func WithSequencer(s Sequencer) Option { return func(c *Compiler) { c.sequencer = s } }

// WithValidator overrides the validator stage implementation.
func WithValidator(v Validator) Option { return func(c *Compiler) { c.validator = v } }

// WithRenderer overrides the renderer stage implementation.
func WithRenderer(r Renderer) Option { return func(c *Compiler) { c.renderer = r } }

// WithLogger installs a logger; the default discards everything.
func WithLogger(log logr.Logger) Option { return func(c *Compiler) { c.log = log } }

// New constructs a Compiler.
//
// Configuration flow:
//  1. Apply opts to inject custom stages.
//  2. Fill any nil stage with the package default built against the
//     registry (the compiled-in catalog unless overridden).
func New(opts ...Option) *Compiler {
	c := &Compiler{log: logr.Discard()}
	for _, opt := range opts {
		opt(c)
	}

	if c.reg == nil {
		c.reg = schema.Catalog()
	}
	if c.sequencer == nil {
		c.sequencer = newSequencer()
	}
	if c.validator == nil {
		c.validator = validation.NewEngine(c.reg)
	}
	if c.renderer == nil {
		c.renderer = render.New(c.reg)
	}
	return c
}

// Registry returns the schema registry the compiler was built against.
func (c *Compiler) Registry() *schema.Registry { return c.reg }

// Validate runs only the validation stage.
func (c *Compiler) Validate(topo *topology.Topology) (validation.Result, error) {
	if topo == nil {
		return validation.Result{}, terminalf("validator", "nil topology")
	}
	return c.validator.Validate(topo), nil
}

// Compile runs the full pipeline:
//
//	Validate -> Sequence -> Render
//
// Validation gates rendering: any error-severity issue replaces the
// declarations with a placeholder document listing the blocking
// messages. The returned bundle is always well formed.
func (c *Compiler) Compile(topo *topology.Topology) (*render.Artifacts, error) {
	if topo == nil {
		return nil, terminalf("compiler", "nil topology")
	}

	result := c.validator.Validate(topo)
	c.log.V(1).Info("validated topology",
		"instances", len(topo.Instances),
		"connections", len(topo.Connections),
		"issues", len(result.Issues))

	sequence, err := c.sequencer.Sequence(topo)
	if err != nil {
		if ce := dag.AsCycleError[string](err); ce != nil {
			// The cycle is already an error-severity issue from the
			// validation engine; rendering proceeds to the placeholder
			// document with the partial sequence.
			c.log.V(1).Info("sequence incomplete", "excluded", ce.Remaining)
		} else {
			return nil, terminal("sequencer", err)
		}
	}

	artifacts := c.renderer.Render(sequence, topo, result.BlockingMessages())
	return &artifacts, nil
}
