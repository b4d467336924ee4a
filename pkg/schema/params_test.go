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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidIdentifier(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"pg", true},
		{"api-gateway", true},
		{"cache2", true},
		{"", false},
		{"Postgres", false},
		{"2fast", false},
		{"-api", false},
		{"my_db", false},
		{"web frontend", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidIdentifier(tt.value), "IsValidIdentifier(%q)", tt.value)
		})
	}
}

func TestValidateParameterValue(t *testing.T) {
	min := float64(1)
	max := float64(65535)

	tests := []struct {
		name     string
		value    any
		spec     ParameterSpec
		wantOK   bool
		wantErrs int
	}{
		{
			name:   "required present",
			value:  "pg",
			spec:   ParameterSpec{Name: "name", Required: true},
			wantOK: true,
		},
		{
			name:     "required missing nil",
			value:    nil,
			spec:     ParameterSpec{Name: "name", Required: true},
			wantOK:   false,
			wantErrs: 1,
		},
		{
			name:     "required missing empty string",
			value:    "",
			spec:     ParameterSpec{Name: "name", Required: true},
			wantOK:   false,
			wantErrs: 1,
		},
		{
			name:   "optional missing",
			value:  "",
			spec:   ParameterSpec{Name: "image"},
			wantOK: true,
		},
		{
			name:     "too short",
			value:    "ab",
			spec:     ParameterSpec{Name: "name", MinLength: 3},
			wantOK:   false,
			wantErrs: 1,
		},
		{
			name:     "too long",
			value:    "abcdef",
			spec:     ParameterSpec{Name: "name", MaxLength: 4},
			wantOK:   false,
			wantErrs: 1,
		},
		{
			name:     "pattern mismatch",
			value:    "UPPER",
			spec:     ParameterSpec{Name: "name", Pattern: `^[a-z]+$`},
			wantOK:   false,
			wantErrs: 1,
		},
		{
			name:     "identifier violation",
			value:    "My_Service",
			spec:     ParameterSpec{Name: "name", Identifier: true},
			wantOK:   false,
			wantErrs: 1,
		},
		{
			name:     "multiple string violations accumulate",
			value:    "A",
			spec:     ParameterSpec{Name: "name", MinLength: 2, Identifier: true},
			wantOK:   false,
			wantErrs: 2,
		},
		{
			name:   "int within range",
			value:  8080,
			spec:   ParameterSpec{Name: "port", Type: ParamInt, Minimum: &min, Maximum: &max},
			wantOK: true,
		},
		{
			name:     "int below minimum",
			value:    0,
			spec:     ParameterSpec{Name: "port", Type: ParamInt, Minimum: &min},
			wantOK:   false,
			wantErrs: 1,
		},
		{
			name:     "float above maximum",
			value:    float64(70000),
			spec:     ParameterSpec{Name: "port", Type: ParamInt, Maximum: &max},
			wantOK:   false,
			wantErrs: 1,
		},
		{
			name:   "allowed value",
			value:  "http",
			spec:   ParameterSpec{Name: "scheme", AllowedValues: []string{"http", "https"}},
			wantOK: true,
		},
		{
			name:     "disallowed value",
			value:    "ftp",
			spec:     ParameterSpec{Name: "scheme", AllowedValues: []string{"http", "https"}},
			wantOK:   false,
			wantErrs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, errs := ValidateParameterValue(tt.value, tt.spec)
			assert.Equal(t, tt.wantOK, ok)
			assert.Len(t, errs, tt.wantErrs)
		})
	}
}
