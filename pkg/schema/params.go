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

import (
	"fmt"
	"regexp"
)

// identifierPattern is what a resource instance name must look like:
// lowercase, digit/dash tail, no leading digit or dash.
var identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// IsValidIdentifier reports whether s is a valid resource identifier.
func IsValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// ValidateParameterValue checks a value against a parameter spec and
// returns ok plus the constraint violations found. Checks are applied
// in a fixed order: required presence, string constraints (length,
// pattern, identifier), numeric range, then allowed-value membership.
func ValidateParameterValue(value any, spec ParameterSpec) (bool, []string) {
	var errs []string

	missing := value == nil
	if s, ok := value.(string); ok && s == "" {
		missing = true
	}
	if missing {
		if spec.Required {
			errs = append(errs, fmt.Sprintf("parameter %q is required", spec.Name))
		}
		return len(errs) == 0, errs
	}

	switch v := value.(type) {
	case string:
		errs = append(errs, checkString(v, spec)...)
	case int:
		errs = append(errs, checkNumber(float64(v), spec)...)
	case int64:
		errs = append(errs, checkNumber(float64(v), spec)...)
	case float64:
		errs = append(errs, checkNumber(v, spec)...)
	}

	if len(spec.AllowedValues) > 0 {
		errs = append(errs, checkAllowed(value, spec)...)
	}

	return len(errs) == 0, errs
}

func checkString(v string, spec ParameterSpec) []string {
	var errs []string
	if spec.MinLength > 0 && len(v) < spec.MinLength {
		errs = append(errs, fmt.Sprintf("parameter %q must be at least %d characters", spec.Name, spec.MinLength))
	}
	if spec.MaxLength > 0 && len(v) > spec.MaxLength {
		errs = append(errs, fmt.Sprintf("parameter %q must be at most %d characters", spec.Name, spec.MaxLength))
	}
	if spec.Pattern != "" {
		re, err := regexp.Compile(spec.Pattern)
		if err != nil || !re.MatchString(v) {
			errs = append(errs, fmt.Sprintf("parameter %q must match pattern %s", spec.Name, spec.Pattern))
		}
	}
	if spec.Identifier && !IsValidIdentifier(v) {
		errs = append(errs, fmt.Sprintf("parameter %q must be a valid identifier (lowercase letters, digits, dashes)", spec.Name))
	}
	return errs
}

func checkNumber(v float64, spec ParameterSpec) []string {
	var errs []string
	if spec.Minimum != nil && v < *spec.Minimum {
		errs = append(errs, fmt.Sprintf("parameter %q must be >= %v", spec.Name, *spec.Minimum))
	}
	if spec.Maximum != nil && v > *spec.Maximum {
		errs = append(errs, fmt.Sprintf("parameter %q must be <= %v", spec.Name, *spec.Maximum))
	}
	return errs
}

func checkAllowed(value any, spec ParameterSpec) []string {
	got := fmt.Sprintf("%v", value)
	for _, allowed := range spec.AllowedValues {
		if got == allowed {
			return nil
		}
	}
	return []string{fmt.Sprintf("parameter %q must be one of %v", spec.Name, spec.AllowedValues)}
}
