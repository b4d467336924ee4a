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
	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

// buildFileSkeleton is emitted when the topology only hosts managed
// resources: a plain publish of the apphost itself.
const buildFileSkeleton = `# Generated build file.
FROM mcr.microsoft.com/dotnet/sdk:9.0 AS build
WORKDIR /src
COPY . .
RUN dotnet publish -c Release -o /app

FROM mcr.microsoft.com/dotnet/aspnet:9.0
WORKDIR /app
COPY --from=build /app .
ENTRYPOINT ["dotnet", "AppHost.dll"]
`

// buildFileSkeletonCustomImage is emitted when any custom-image
// container participates: the skeleton leaves a stage for the custom
// context to build in.
const buildFileSkeletonCustomImage = `# Generated build file (custom container images present).
FROM mcr.microsoft.com/dotnet/sdk:9.0 AS build
WORKDIR /src
COPY . .
RUN dotnet publish -c Release -o /app

# Stage for custom container contexts; adjust the context path per
# AddDockerfile declaration.
FROM docker:27-cli AS images
WORKDIR /ctx
COPY . .

FROM mcr.microsoft.com/dotnet/aspnet:9.0
WORKDIR /app
COPY --from=build /app .
ENTRYPOINT ["dotnet", "AppHost.dll"]
`

// buildFileText picks one of the two static skeletons depending on
// whether a custom-image container instance is present.
func (r *Renderer) buildFileText(topo *topology.Topology) string {
	for _, in := range topo.Instances {
		if in.TypeID == schema.TypeDockerfile {
			return buildFileSkeletonCustomImage
		}
	}
	return buildFileSkeleton
}
