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

	"github.com/topoforge/topoforge/pkg/schema"
	"github.com/topoforge/topoforge/pkg/topology"
)

// imageTypes is the fixed image -> resource type lookup table. Keys
// match the image name with registry path and tag stripped.
var imageTypes = map[string]string{
	"postgres":   "postgres",
	"postgresql": "postgres",
	"mysql":      "mysql",
	"mariadb":    "mysql",
	"mssql":      "sqlserver",
	"mongo":      "mongodb",
	"mongodb":    "mongodb",
	"redis":      "redis",
	"valkey":     "valkey",
	"garnet":     "garnet",
	"rabbitmq":   "rabbitmq",
	"kafka":      "kafka",
	"cp-kafka":   "kafka",
	"nats":       "nats",
	"ollama":     "ollama",
}

var (
	serviceLine   = regexp.MustCompile(`^  ([A-Za-z0-9._-]+):\s*$`)
	imageLine     = regexp.MustCompile(`^\s+image:\s*"?([^"\s]+)"?\s*$`)
	portItemLine  = regexp.MustCompile(`^\s+-\s*"?(\d+):(\d+)"?\s*$`)
	dependsItemRe = regexp.MustCompile(`^\s+-\s*"?([A-Za-z0-9._-]+)"?\s*$`)
	dependsInline = regexp.MustCompile(`^\s+depends_on:\s*\[([^\]]*)\]\s*$`)
)

type composeService struct {
	name      string
	image     string
	ports     []topology.PortMapping
	dependsOn []string
}

// ComposeParser reconstructs a topology from a restricted line-oriented
// subset of the service-compose format: a top-level services block with
// 2-space indentation, image lines, list-style host:container port
// entries, and depends_on lists.
type ComposeParser struct{}

// NewComposeParser creates a compose parser.
func NewComposeParser() *ComposeParser {
	return &ComposeParser{}
}

// Parse line-scans the compose text. Dependency edges follow the
// renderer's convention: the depended-upon service is the edge source.
func (p *ComposeParser) Parse(text string) (*topology.Topology, []string) {
	topo := &topology.Topology{}
	var warnings []string

	services, ok := scanServices(text)
	if !ok {
		warnings = append(warnings, "no services block found")
		return topo, warnings
	}
	if len(services) == 0 {
		warnings = append(warnings, "services block is empty")
		return topo, warnings
	}

	ids := newAllocator("compose")
	byName := map[string]string{}

	for _, svc := range services {
		typeID, mapped := mapImage(svc.image, svc.name)
		if !mapped {
			warnings = append(warnings, fmt.Sprintf("service %q: image %q not recognized, using a generic container", svc.name, svc.image))
		}
		in := topology.Instance{
			ID:     ids.id("node"),
			TypeID: typeID,
			Name:   svc.name,
		}
		if typeID == schema.TypeContainer {
			in.Image = svc.image
		}
		in.Config.Ports = svc.ports
		topo.Instances = append(topo.Instances, in)
		byName[svc.name] = in.ID
	}

	for _, svc := range services {
		for _, dep := range svc.dependsOn {
			depID, ok := byName[dep]
			if !ok {
				warnings = append(warnings, fmt.Sprintf("service %q depends on unknown service %q", svc.name, dep))
				continue
			}
			topo.Connections = append(topo.Connections, topology.Connection{
				ID:       ids.id("conn"),
				SourceID: depID,
				TargetID: byName[svc.name],
				Kind:     topology.KindDependsOn,
			})
		}
	}

	return topo, warnings
}

// scanServices extracts the services of the top-level services block.
// Returns ok=false when no block exists.
func scanServices(text string) ([]*composeService, bool) {
	lines := strings.Split(text, "\n")

	inServices := false
	var services []*composeService
	var current *composeService
	section := "" // "ports" or "depends_on" while inside those lists

	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t\r")
		if trimmed == "" {
			continue
		}

		if !strings.HasPrefix(trimmed, " ") {
			inServices = strings.HasPrefix(trimmed, "services:")
			current = nil
			section = ""
			continue
		}
		if !inServices {
			continue
		}

		if m := serviceLine.FindStringSubmatch(trimmed); m != nil {
			current = &composeService{name: m[1]}
			services = append(services, current)
			section = ""
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case imageLine.MatchString(trimmed):
			current.image = imageLine.FindStringSubmatch(trimmed)[1]
			section = ""
		case dependsInline.MatchString(trimmed):
			for _, dep := range strings.Split(dependsInline.FindStringSubmatch(trimmed)[1], ",") {
				if dep = strings.Trim(dep, ` "`); dep != "" {
					current.dependsOn = append(current.dependsOn, dep)
				}
			}
			section = ""
		case strings.HasSuffix(strings.TrimSpace(trimmed), "ports:"):
			section = "ports"
		case strings.HasSuffix(strings.TrimSpace(trimmed), "depends_on:"):
			section = "depends_on"
		case section == "ports" && portItemLine.MatchString(trimmed):
			m := portItemLine.FindStringSubmatch(trimmed)
			host, _ := strconv.Atoi(m[1])
			container, _ := strconv.Atoi(m[2])
			current.ports = append(current.ports, topology.PortMapping{Host: host, Container: container})
		case section == "depends_on" && dependsItemRe.MatchString(trimmed):
			current.dependsOn = append(current.dependsOn, dependsItemRe.FindStringSubmatch(trimmed)[1])
		default:
			section = ""
		}
	}

	if !inServices && services == nil {
		// services: may have been followed by another top-level key;
		// report found only if we ever saw the block.
		for _, line := range lines {
			if strings.HasPrefix(line, "services:") {
				return services, true
			}
		}
		return nil, false
	}
	return services, true
}

// mapImage resolves an image (or the service name) to a resource type.
// Unmatched images default to the generic container type.
func mapImage(image, serviceName string) (string, bool) {
	key := image
	if key == "" {
		key = serviceName
	}
	// Strip registry path and tag: confluentinc/cp-kafka:7.5 -> cp-kafka.
	if i := strings.LastIndex(key, "/"); i >= 0 {
		key = key[i+1:]
	}
	if i := strings.Index(key, ":"); i >= 0 {
		key = key[:i]
	}
	if typeID, ok := imageTypes[key]; ok {
		return typeID, true
	}
	return schema.TypeContainer, false
}
