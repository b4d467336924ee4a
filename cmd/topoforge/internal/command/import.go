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

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/topoforge/topoforge/pkg/parse"
	"github.com/topoforge/topoforge/pkg/schema"
)

// ImportOptions configures the import command.
type ImportOptions struct {
	Path   string
	Format string
}

// NewImportCommand reverse-parses an existing source file into a
// topology document.
func NewImportCommand(cli *CLI) *cobra.Command {
	var opts ImportOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import an existing source file as a topology document",
		Long: Highlight("topoforge import -f <file> --format <declaration|compose|dockerfile>") + "\n\n" +
			"Reverse-parse apphost declaration text, a service compose file,\n" +
			"or a container build file into a topology document, printed as\n" +
			"YAML on stdout. Parser warnings go to stderr.\n",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunImport(cli, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Path, "file", "f", "", "Path to the source file to import")
	cmd.Flags().StringVar(&opts.Format, "format", "declaration", "Source format: declaration, compose, or dockerfile")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// RunImport executes the import workflow.
func RunImport(cli *CLI, opts ImportOptions) error {
	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return fmt.Errorf("read source file: %w", err)
	}

	var parser parse.Parser
	switch opts.Format {
	case "declaration":
		parser = parse.NewDeclarationParser(schema.Catalog())
	case "compose":
		parser = parse.NewComposeParser()
	case "dockerfile":
		parser = parse.NewContainerfileParser(filepath.Base(opts.Path))
	default:
		return fmt.Errorf("unknown format %q, expected declaration, compose, or dockerfile", opts.Format)
	}

	topo, warnings := parser.Parse(string(data))
	cli.PrintWarnings(warnings)

	out, err := yaml.Marshal(topo)
	if err != nil {
		return fmt.Errorf("marshal topology: %w", err)
	}
	fmt.Fprint(cli.Out, string(out))
	return nil
}
