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
	"errors"

	"github.com/spf13/cobra"

	"github.com/topoforge/topoforge/pkg/compiler"
)

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	Path string
}

// NewValidateCommand validates a topology document and prints the
// diagnostics.
func NewValidateCommand(cli *CLI) *cobra.Command {
	var opts ValidateOptions

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a topology document",
		Long: Highlight("topoforge validate -f <topology.yaml>") + "\n\n" +
			"Run all validation rule families over a topology document and\n" +
			"print the categorized diagnostics. Exits non-zero when any\n" +
			"error-severity issue is found.\n",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunValidate(cli, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Path, "file", "f", "", "Path to the topology document")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// RunValidate executes the validate workflow.
func RunValidate(cli *CLI, opts ValidateOptions) error {
	topo, err := loadTopology(opts.Path)
	if err != nil {
		return err
	}

	result, err := compiler.New().Validate(topo)
	if err != nil {
		return err
	}

	cli.PrintResult(result)
	if !result.IsValid() {
		return errors.New("")
	}
	return nil
}
