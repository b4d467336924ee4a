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

// Package render turns a sequenced topology into generated apphost
// declaration text plus companion artifacts. Rendering is a pure
// function of its inputs; when validation reports errors the primary
// text is a placeholder document instead of declarations, but the
// bundle is always well formed.
package render

// Artifacts is the full generated output bundle.
type Artifacts struct {
	// PrimaryText is the apphost declaration source, or the
	// error-placeholder document when BlockingErrors is non-empty.
	PrimaryText string

	// RequiredPackages are the external package identifiers the
	// declarations need, sorted and de-duplicated.
	RequiredPackages []string

	// DeploymentCommands is the static deploy command list.
	DeploymentCommands []string

	// SettingsText maps connection names to connection-string
	// placeholders (JSON).
	SettingsText string

	// BuildFileText is the container build-file skeleton.
	BuildFileText string

	// ManifestText is the deployment-manifest skeleton.
	ManifestText string

	// BlockingErrors lists the validation errors that suppressed
	// declaration rendering, empty on success.
	BlockingErrors []string
}
