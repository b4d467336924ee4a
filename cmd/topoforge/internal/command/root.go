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

// Package command wires the topoforge CLI: compile, validate, and
// import workflows over topology documents.
package command

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/topoforge/topoforge/cmd/topoforge/internal/view"
	"github.com/topoforge/topoforge/pkg/topology"
)

// CLI is shared state propagated from root to subcommands.
type CLI struct {
	*view.Stream
}

// Highlight applies the CLI accent color to the given format.
func Highlight(format string, a ...any) string {
	return color.New(color.FgHiBlue).Sprintf(format, a...)
}

// NewRootCommand builds the topoforge root command with all
// subcommands attached.
func NewRootCommand() *cobra.Command {
	cli := &CLI{Stream: &view.Stream{Out: os.Stdout, Err: os.Stderr}}

	cmd := &cobra.Command{
		Use:   "topoforge",
		Short: "Compile distributed-application topologies into apphost code",
		Long: Highlight("topoforge <subcommand> [options]") + "\n\n" +
			"topoforge compiles a topology document (resource instances plus\n" +
			"connections) into generated apphost declarations and deployment\n" +
			"artifacts, validates topologies, and imports existing apphost,\n" +
			"compose, or container build files back into topology documents.\n",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				_ = cmd.Help()
			}
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(NewCompileCommand(cli))
	cmd.AddCommand(NewValidateCommand(cli))
	cmd.AddCommand(NewImportCommand(cli))
	return cmd
}

// loadTopology reads and decodes a topology YAML document.
func loadTopology(path string) (*topology.Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topology file: %w", err)
	}
	var topo topology.Topology
	if err := yaml.Unmarshal(data, &topo); err != nil {
		return nil, fmt.Errorf("unmarshal topology: %w", err)
	}
	return &topo, nil
}
