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

// Package schema is the static catalog of resource types: builder
// signatures, parameter constraints, chaining operations, and
// cross-category connection compatibility. The catalog is compiled in
// and read-only; components receive a Registry explicitly rather than
// consulting ambient global state.
package schema

// Category is the display category of a resource type.
type Category string

const (
	CategoryDatabase  Category = "database"
	CategoryCache     Category = "cache"
	CategoryMessaging Category = "messaging"
	CategoryAI        Category = "ai"
	CategoryCompute   Category = "compute"
	CategoryProject   Category = "project"
	CategoryContainer Category = "container"
	CategoryStorage   Category = "storage"
)

// ParamType is the value type of a builder parameter.
type ParamType string

const (
	ParamString ParamType = "string"
	ParamInt    ParamType = "int"
	ParamBool   ParamType = "bool"
)

// ParameterSpec describes one ordered builder parameter together with
// its constraints. Zero MinLength/MaxLength and nil Minimum/Maximum
// mean "unconstrained".
type ParameterSpec struct {
	Name     string
	Type     ParamType
	Required bool
	Default  string

	MinLength int
	MaxLength int
	// Pattern is an anchored regular expression the value must match.
	Pattern string
	// Identifier requires the value to be a valid resource identifier.
	Identifier bool

	Minimum *float64
	Maximum *float64

	// AllowedValues restricts the value to a closed set, any type.
	AllowedValues []string
}

// ChildResource describes a sub-resource method exposed by a type, such
// as a database server exposing logical databases.
type ChildResource struct {
	// Method is the chaining method that declares the sub-resource.
	Method string
	// Kind names what the sub-resource is, for diagnostics.
	Kind string
}

// Definition is the immutable schema entry for one resource type.
type Definition struct {
	ID       string
	Category Category

	// BuilderMethod is the builder call that declares the resource,
	// e.g. "AddPostgres".
	BuilderMethod string
	// Parameters are the ordered builder parameters.
	Parameters []ParameterSpec

	// Child is the optional sub-resource method (nil when absent).
	Child *ChildResource

	// ChainingOperations lists the configuration calls available on the
	// declared resource.
	ChainingOperations []string

	// CanConnectTo lists categories this type may point an edge at.
	CanConnectTo []Category
	// CanBeReferencedBy lists categories that may reference this type.
	CanBeReferencedBy []Category

	// ConnectionStringTemplate is the placeholder template for types
	// that expose a connection string, empty otherwise.
	ConnectionStringTemplate string

	// Packages are the external package identifiers the declaration
	// needs. The builtin project type carries none.
	Packages []string
}

// HasChaining reports whether the definition offers the named chaining
// operation.
func (d Definition) HasChaining(op string) bool {
	for _, c := range d.ChainingOperations {
		if c == op {
			return true
		}
	}
	return false
}
