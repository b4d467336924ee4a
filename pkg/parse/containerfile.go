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

package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gobuffalo/flect"

	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

var (
	fromLine   = regexp.MustCompile(`(?i)^FROM\s+(?:--\S+\s+)*(\S+)`)
	exposeLine = regexp.MustCompile(`(?i)^EXPOSE\s+(.*)$`)
	portToken  = regexp.MustCompile(`^(\d+)`)
)

// ContainerfileParser reconstructs exactly one container-category
// instance from a container build file: the first FROM base image and
// all EXPOSE port lists. Findings are reported as informational
// warnings, not errors.
type ContainerfileParser struct {
	// FileName is the build file's name; the instance name derives from
	// it when it carries a usable suffix or prefix.
	FileName string
}

// NewContainerfileParser creates a parser for the named build file.
func NewContainerfileParser(fileName string) *ContainerfileParser {
	return &ContainerfileParser{FileName: fileName}
}

// Parse scans the build-file text.
func (p *ContainerfileParser) Parse(text string) (*topology.Topology, []string) {
	var warnings []string

	baseImage := ""
	var ports []int
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if baseImage == "" {
			if m := fromLine.FindStringSubmatch(line); m != nil {
				baseImage = strings.TrimSuffix(m[1], ",")
				continue
			}
		}
		if m := exposeLine.FindStringSubmatch(line); m != nil {
			for _, tok := range strings.Fields(m[1]) {
				// Tokens may carry a protocol suffix, e.g. 8080/tcp.
				if pm := portToken.FindStringSubmatch(tok); pm != nil {
					if port, err := strconv.Atoi(pm[1]); err == nil {
						ports = append(ports, port)
					}
				}
			}
		}
	}

	ids := newAllocator("dockerfile")
	in := topology.Instance{
		ID:     ids.id("node"),
		TypeID: schema.TypeDockerfile,
		Name:   p.instanceName(baseImage),
		Image:  baseImage,
	}
	for _, port := range ports {
		in.Config.Ports = append(in.Config.Ports, topology.PortMapping{Host: port, Container: port})
	}

	if baseImage != "" {
		warnings = append(warnings, fmt.Sprintf("detected base image %q", baseImage))
	} else {
		warnings = append(warnings, "no FROM directive found")
	}
	if len(ports) > 0 {
		warnings = append(warnings, fmt.Sprintf("detected exposed ports %v", ports))
	}

	return &topology.Topology{Instances: []topology.Instance{in}}, warnings
}

// instanceName derives the instance name from the file name, stripping
// a leading "Dockerfile." prefix or a trailing build-file suffix; when
// the file name carries neither, the base image names the instance.
func (p *ContainerfileParser) instanceName(baseImage string) string {
	name := p.FileName
	switch {
	case strings.HasPrefix(name, "Dockerfile."):
		name = strings.TrimPrefix(name, "Dockerfile.")
	case strings.HasSuffix(name, ".Dockerfile"):
		name = strings.TrimSuffix(name, ".Dockerfile")
	case strings.HasSuffix(name, ".dockerfile"):
		name = strings.TrimSuffix(name, ".dockerfile")
	default:
		name = ""
	}

	if name == "" {
		name = baseImage
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		if i := strings.Index(name, ":"); i >= 0 {
			name = name[:i]
		}
	}
	if name == "" {
		name = "app"
	}
	return flect.Dasherize(name)
}
