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

package render

import (
	"fmt"

	"github.com/gobuffalo/flect"

	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

// CallShape is the closed set of builder-call shapes. Every type in the
// catalog maps to exactly one shape; anything not in the strategy table
// uses ShapeGeneric.
type CallShape int

const (
	// ShapeGeneric is builder.<Method>("name").
	ShapeGeneric CallShape = iota
	// ShapeProject is builder.AddProject<Projects.Name>("name").
	ShapeProject
	// ShapeWorkdirApp is builder.<Method>("name", "../name") for
	// language-runtime apps.
	ShapeWorkdirApp
	// ShapeContainerImage is builder.AddContainer("name", "image").
	ShapeContainerImage
	// ShapeDockerfile is builder.AddDockerfile("name", "../name").
	ShapeDockerfile
)

// strategy describes how one resource type renders: its call shape and
// the default endpoint chained right after declaration.
type strategy struct {
	Shape CallShape

	// EndpointEnv binds a default HTTP endpoint to an environment
	// variable (frontend-build types).
	EndpointEnv string
	// EndpointTargetPort adds a default target-port endpoint when > 0;
	// the first configured container port overrides it.
	EndpointTargetPort int
}

// strategies is the closed dispatch table keyed by type ID. Types
// absent here render with the generic shape and no default endpoint.
var strategies = map[string]strategy{
	schema.TypeProject:    {Shape: ShapeProject},
	schema.TypeNpmApp:     {Shape: ShapeWorkdirApp, EndpointEnv: "PORT"},
	schema.TypePythonApp:  {Shape: ShapeWorkdirApp},
	schema.TypeContainer:  {Shape: ShapeContainerImage},
	schema.TypeDockerfile: {Shape: ShapeDockerfile, EndpointTargetPort: 8080},
}

func strategyFor(typeID string) strategy {
	if s, ok := strategies[typeID]; ok {
		return s
	}
	return strategy{Shape: ShapeGeneric}
}

// varName derives the declaration variable from the instance name
// ("my-api" -> "myApi").
func varName(name string) string {
	return flect.Camelize(name)
}

// builderCall renders the base declaration call for an instance.
func builderCall(def schema.Definition, in topology.Instance) string {
	switch strategyFor(in.TypeID).Shape {
	case ShapeProject:
		return fmt.Sprintf("builder.%s<Projects.%s>(%q)", def.BuilderMethod, flect.Pascalize(in.Name), in.Name)
	case ShapeWorkdirApp:
		return fmt.Sprintf("builder.%s(%q, %q)", def.BuilderMethod, in.Name, "../"+in.Name)
	case ShapeContainerImage:
		image := in.Image
		if image == "" {
			image = in.Name
		}
		return fmt.Sprintf("builder.%s(%q, %q)", def.BuilderMethod, in.Name, image)
	case ShapeDockerfile:
		return fmt.Sprintf("builder.%s(%q, %q)", def.BuilderMethod, in.Name, "../"+in.Name)
	default:
		return fmt.Sprintf("builder.%s(%q)", def.BuilderMethod, in.Name)
	}
}
