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

// Well-known type IDs referenced by the renderer strategy table and
// the reverse parsers.
const (
	TypeProject    = "project"
	TypeNpmApp     = "npmapp"
	TypePythonApp  = "pythonapp"
	TypeContainer  = "container"
	TypeDockerfile = "dockerfile"
)

// Chaining operation names shared between the catalog, the renderer,
// and the validation engine.
const (
	OpReference   = "WithReference"
	OpWaitFor     = "WaitFor"
	OpEnvironment = "WithEnvironment"
	OpEndpoint    = "WithHttpEndpoint"
	OpBindMount   = "WithBindMount"
	OpReplicas    = "WithReplicas"
	OpDataVolume  = "WithDataVolume"
	OpAddDatabase = "AddDatabase"
)

const maxNameLength = 63

func nameParam() ParameterSpec {
	return ParameterSpec{
		Name:       "name",
		Type:       ParamString,
		Required:   true,
		MinLength:  1,
		MaxLength:  maxNameLength,
		Identifier: true,
	}
}

func pathParam(name string) ParameterSpec {
	return ParameterSpec{
		Name:      name,
		Type:      ParamString,
		Required:  true,
		MinLength: 1,
	}
}

var (
	// Categories allowed to initiate references to backing services.
	consumerCategories = []Category{CategoryProject, CategoryCompute, CategoryContainer}
	// Categories a compute-like resource may point an edge at.
	backingCategories = []Category{
		CategoryDatabase, CategoryCache, CategoryMessaging,
		CategoryAI, CategoryStorage, CategoryProject,
		CategoryCompute, CategoryContainer,
	}
)

func backingOps() []string {
	return []string{OpEnvironment, OpEndpoint, OpBindMount, OpDataVolume}
}

func consumerOps() []string {
	return []string{OpReference, OpWaitFor, OpEnvironment, OpEndpoint, OpBindMount, OpReplicas}
}

func databaseDef(id, method, pkg, template string) Definition {
	return Definition{
		ID:                       id,
		Category:                 CategoryDatabase,
		BuilderMethod:            method,
		Parameters:               []ParameterSpec{nameParam()},
		Child:                    &ChildResource{Method: OpAddDatabase, Kind: "logical database"},
		ChainingOperations:       backingOps(),
		CanBeReferencedBy:        consumerCategories,
		ConnectionStringTemplate: template,
		Packages:                 []string{pkg},
	}
}

func backingDef(id string, cat Category, method, pkg, template string) Definition {
	return Definition{
		ID:                       id,
		Category:                 cat,
		BuilderMethod:            method,
		Parameters:               []ParameterSpec{nameParam()},
		ChainingOperations:       backingOps(),
		CanBeReferencedBy:        consumerCategories,
		ConnectionStringTemplate: template,
		Packages:                 []string{pkg},
	}
}

// Catalog returns the compiled-in registry of resource types. The table
// is static: regenerating it from upstream package metadata is a build
// step outside this module.
func Catalog() *Registry {
	return NewRegistry(
		databaseDef("postgres", "AddPostgres", "Aspire.Hosting.PostgreSQL", "postgresql://{host}:5432/{database}"),
		databaseDef("mysql", "AddMySql", "Aspire.Hosting.MySql", "mysql://{host}:3306/{database}"),
		databaseDef("sqlserver", "AddSqlServer", "Aspire.Hosting.SqlServer", "Server={host},1433;Database={database}"),
		databaseDef("mongodb", "AddMongoDB", "Aspire.Hosting.MongoDB", "mongodb://{host}:27017/{database}"),

		backingDef("redis", CategoryCache, "AddRedis", "Aspire.Hosting.Redis", "redis://{host}:6379"),
		backingDef("valkey", CategoryCache, "AddValkey", "Aspire.Hosting.Valkey", "valkey://{host}:6379"),
		backingDef("garnet", CategoryCache, "AddGarnet", "Aspire.Hosting.Garnet", "garnet://{host}:6379"),

		backingDef("rabbitmq", CategoryMessaging, "AddRabbitMQ", "Aspire.Hosting.RabbitMQ", "amqp://{host}:5672"),
		backingDef("kafka", CategoryMessaging, "AddKafka", "Aspire.Hosting.Kafka", "{host}:9092"),
		backingDef("nats", CategoryMessaging, "AddNats", "Aspire.Hosting.Nats", "nats://{host}:4222"),

		backingDef("openai", CategoryAI, "AddOpenAI", "Aspire.Hosting.Azure.CognitiveServices", "Endpoint={endpoint};Key={key}"),
		backingDef("ollama", CategoryAI, "AddOllama", "CommunityToolkit.Aspire.Hosting.Ollama", "http://{host}:11434"),

		backingDef("storage", CategoryStorage, "AddAzureStorage", "Aspire.Hosting.Azure.Storage", ""),

		Definition{
			ID:                 TypeProject,
			Category:           CategoryProject,
			BuilderMethod:      "AddProject",
			Parameters:         []ParameterSpec{nameParam()},
			ChainingOperations: consumerOps(),
			CanConnectTo:       backingCategories,
			CanBeReferencedBy:  consumerCategories,
			// The builtin type: project references compile in without
			// an external hosting package.
		},
		Definition{
			ID:                 TypeNpmApp,
			Category:           CategoryCompute,
			BuilderMethod:      "AddNpmApp",
			Parameters:         []ParameterSpec{nameParam(), pathParam("workingDirectory")},
			ChainingOperations: consumerOps(),
			CanConnectTo:       backingCategories,
			CanBeReferencedBy:  consumerCategories,
			Packages:           []string{"Aspire.Hosting.NodeJs"},
		},
		Definition{
			ID:                 TypePythonApp,
			Category:           CategoryCompute,
			BuilderMethod:      "AddPythonApp",
			Parameters:         []ParameterSpec{nameParam(), pathParam("workingDirectory")},
			ChainingOperations: consumerOps(),
			CanConnectTo:       backingCategories,
			CanBeReferencedBy:  consumerCategories,
			Packages:           []string{"Aspire.Hosting.Python"},
		},
		Definition{
			ID:                 TypeContainer,
			Category:           CategoryContainer,
			BuilderMethod:      "AddContainer",
			Parameters:         []ParameterSpec{nameParam(), pathParam("image")},
			ChainingOperations: consumerOps(),
			CanConnectTo:       backingCategories,
			CanBeReferencedBy:  consumerCategories,
		},
		Definition{
			ID:                 TypeDockerfile,
			Category:           CategoryContainer,
			BuilderMethod:      "AddDockerfile",
			Parameters:         []ParameterSpec{nameParam(), pathParam("contextPath")},
			ChainingOperations: consumerOps(),
			CanConnectTo:       backingCategories,
			CanBeReferencedBy:  consumerCategories,
		},
	)
}
