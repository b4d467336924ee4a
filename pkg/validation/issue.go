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

// Package validation runs independent rule families over a topology and
// a schema registry, producing categorized diagnostics. Issues are
// data, not errors: every rule always runs and contributes to the
// aggregate result.
package validation

// Severity ranks an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Category names the rule family that produced an issue.
type Category string

const (
	CategoryNaming        Category = "naming"
	CategoryConfiguration Category = "configuration"
	CategoryConnection    Category = "connection"
	CategoryArchitecture  Category = "architecture"
	CategorySecurity      Category = "security"
	CategoryPerformance   Category = "performance"
	CategoryAPI           Category = "api"
)

// Issue is one diagnostic produced by a rule.
type Issue struct {
	ID       string
	Severity Severity
	Category Category

	// NodeID / EdgeID associate the issue with a graph element when one
	// applies.
	NodeID string
	EdgeID string

	Message    string
	Suggestion string
	// Related lists further node IDs involved, e.g. all holders of a
	// duplicated name.
	Related []string
}

// newIssue leaves ID empty; the engine assigns IDs in report order so
// repeated validation of an unchanged topology yields identical
// results.
func newIssue(sev Severity, cat Category, msg string) Issue {
	return Issue{Severity: sev, Category: cat, Message: msg}
}

// Result aggregates all issues of one validation run.
type Result struct {
	Issues []Issue
}

// IsValid reports whether the result carries no error-severity issue.
// A valid result means the topology is ready for code generation.
func (r Result) IsValid() bool {
	for _, is := range r.Issues {
		if is.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Counts returns the number of issues per severity.
func (r Result) Counts() map[Severity]int {
	out := map[Severity]int{}
	for _, is := range r.Issues {
		out[is.Severity]++
	}
	return out
}

// BySeverity returns the issues of one severity, in report order.
func (r Result) BySeverity(sev Severity) []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Severity == sev {
			out = append(out, is)
		}
	}
	return out
}

// BlockingMessages returns the messages of all error-severity issues.
// The renderer substitutes these for declarations when any exist.
func (r Result) BlockingMessages() []string {
	var out []string
	for _, is := range r.Issues {
		if is.Severity == SeverityError {
			out = append(out, is.Message)
		}
	}
	return out
}
