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

package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/topoforge/topoforge/pkg/compiler"
)

// CompileOptions configures the compile command.
type CompileOptions struct {
	Path   string
	OutDir string
}

// NewCompileCommand compiles a topology document into generated
// artifacts.
func NewCompileCommand(cli *CLI) *cobra.Command {
	var opts CompileOptions

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a topology document into apphost code",
		Long: Highlight("topoforge compile -f <topology.yaml> [-d <dir>]") + "\n\n" +
			"Compile a topology document into apphost declaration text and\n" +
			"companion artifacts. Without -d the declaration text prints to\n" +
			"stdout; with -d the full bundle is written as files.\n",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunCompile(cli, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Path, "file", "f", "", "Path to the topology document")
	cmd.Flags().StringVarP(&opts.OutDir, "dir", "d", "", "Directory to write the artifact bundle into")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// RunCompile executes the compile workflow.
func RunCompile(cli *CLI, opts CompileOptions) error {
	topo, err := loadTopology(opts.Path)
	if err != nil {
		return err
	}

	artifacts, err := compiler.New().Compile(topo)
	if err != nil {
		return err
	}

	if len(artifacts.BlockingErrors) > 0 {
		fmt.Fprintf(cli.Err, "code generation blocked by %d validation error(s); see the placeholder document\n",
			len(artifacts.BlockingErrors))
	}

	if opts.OutDir == "" {
		fmt.Fprint(cli.Out, artifacts.PrimaryText)
		return nil
	}

	files := map[string]string{
		"apphost.cs":       artifacts.PrimaryText,
		"appsettings.json": artifacts.SettingsText,
		"Dockerfile":       artifacts.BuildFileText,
		"manifest.yaml":    artifacts.ManifestText,
		"deploy.txt":       strings.Join(artifacts.DeploymentCommands, "\n") + "\n",
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for name, content := range files {
		if content == "" {
			continue
		}
		path := filepath.Join(opts.OutDir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	fmt.Fprintf(cli.Out, "wrote artifact bundle to %s\n", opts.OutDir)
	return nil
}
