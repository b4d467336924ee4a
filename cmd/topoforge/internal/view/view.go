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

// Package view renders human-readable diagnostics for the CLI.
package view

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/topoforge/topoforge/pkg/validation"
)

var (
	errorTag   = color.New(color.FgRed, color.Bold).Sprint("error")
	warningTag = color.New(color.FgYellow).Sprint("warning")
	infoTag    = color.New(color.FgCyan).Sprint("info")
	okTag      = color.New(color.FgGreen, color.Bold).Sprint("ok")
)

// Stream holds the CLI's output writers.
type Stream struct {
	Out io.Writer
	Err io.Writer
}

// PrintResult writes every issue of a validation result, most severe
// first, followed by a per-severity summary.
func (s *Stream) PrintResult(res validation.Result) {
	for _, sev := range []validation.Severity{
		validation.SeverityError,
		validation.SeverityWarning,
		validation.SeverityInfo,
	} {
		for _, is := range res.BySeverity(sev) {
			fmt.Fprintf(s.Out, "%s [%s] %s\n", tag(sev), is.Category, is.Message)
			if is.Suggestion != "" {
				fmt.Fprintf(s.Out, "        %s\n", is.Suggestion)
			}
		}
	}

	counts := res.Counts()
	if res.IsValid() {
		fmt.Fprintf(s.Out, "%s topology is ready for code generation (%d warnings, %d infos)\n",
			okTag, counts[validation.SeverityWarning], counts[validation.SeverityInfo])
		return
	}
	fmt.Fprintf(s.Out, "%d error(s), %d warning(s), %d info(s)\n",
		counts[validation.SeverityError],
		counts[validation.SeverityWarning],
		counts[validation.SeverityInfo])
}

// PrintWarnings writes reverse-parser warnings to the error stream.
func (s *Stream) PrintWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(s.Err, "%s %s\n", warningTag, w)
	}
}

func tag(sev validation.Severity) string {
	switch sev {
	case validation.SeverityError:
		return errorTag
	case validation.SeverityWarning:
		return warningTag
	default:
		return infoTag
	}
}
