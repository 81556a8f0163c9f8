// MIT License
//
// Copyright (c) 2025 Advanced Micro Devices, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package handlers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
	controllerutils "github.com/amd-enterprise-ai/cluster-wizard-engine/internal/controller/utils"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/readiness"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/validations"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/wizard"
)

// Validation scopes of a raw payload.
const (
	ScopeCluster = "cluster"
	ScopeHost    = "host"
)

// ValidationsOptions selects the validations to print.
type ValidationsOptions struct {
	Files []string

	// Raw is a validationsInfo payload as reported by the installer. It is
	// used instead of Files when set.
	Raw   string
	Scope string

	// Step filters the validations to the ones relevant to a wizard step.
	Step        string
	FailingOnly bool

	Flavor wizard.Flavor
	Output string
}

// ValidationRow is one validation of one resource.
type ValidationRow struct {
	Kind    string `json:"kind"`
	Name    string `json:"name,omitempty"`
	Group   string `json:"group"`
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Validations prints the validations of AgentClusterInstalls and agents,
// optionally filtered to one wizard step.
func Validations(ctx context.Context, stdin io.Reader, out io.Writer, opts ValidationsOptions) error {
	if err := validateOutput(opts.Output); err != nil {
		return err
	}
	steps, err := wizard.ForFlavor(opts.Flavor)
	if err != nil {
		return err
	}
	if opts.Step != "" && !steps.Has(opts.Step) {
		return fmt.Errorf("unknown step %q for flavor %s, expected one of %s",
			opts.Step, steps.Flavor(), strings.Join(steps.Steps(), ", "))
	}
	logger := log.FromContext(ctx)
	evaluator := readiness.NewEvaluator(steps, logger.WithName("evaluator"))

	var rows []ValidationRow
	if opts.Raw != "" {
		info := validations.LoadWithLogger(logger, "cli", opts.Raw)
		switch opts.Scope {
		case ScopeCluster:
			rows = validationRows("AgentClusterInstall", "", filterStep(evaluator.ClusterValidationsInfo, opts.Step, info), opts.FailingOnly)
		case ScopeHost:
			rows = validationRows("Agent", "", filterStep(evaluator.HostValidationsInfo, opts.Step, info), opts.FailingOnly)
		default:
			return fmt.Errorf("unsupported scope %q, expected %s or %s", opts.Scope, ScopeCluster, ScopeHost)
		}
	} else {
		manifests, err := ReadManifests(stdin, opts.Files...)
		if err != nil {
			return err
		}
		for _, obj := range manifests.ClusterInstalls {
			aci, err := controllerutils.FromUnstructured[v1beta1.AgentClusterInstall](obj)
			if err != nil {
				return err
			}
			info := filterStep(evaluator.ClusterValidationsInfo, opts.Step, aci.Status.ValidationsInfo)
			rows = append(rows, validationRows("AgentClusterInstall", aci.Name, info, opts.FailingOnly)...)
		}
		for _, agent := range manifests.Agents {
			info := filterStep(evaluator.HostValidationsInfo, opts.Step, agent.Status.ValidationsInfo)
			rows = append(rows, validationRows("Agent", agent.Name, info, opts.FailingOnly)...)
		}
	}

	if opts.Output != OutputText {
		return writeStructured(out, opts.Output, rows)
	}
	_, err = io.WriteString(out, renderValidations(paletteFor(out), rows))
	return err
}

func filterStep(
	filter func(step string, info v1beta1.ValidationsInfo) v1beta1.ValidationsInfo,
	step string,
	info v1beta1.ValidationsInfo,
) v1beta1.ValidationsInfo {
	if step == "" {
		return info
	}
	return filter(step, info)
}

func validationRows(kind, name string, info v1beta1.ValidationsInfo, failingOnly bool) []ValidationRow {
	var rows []ValidationRow
	for _, group := range validations.Groups(info) {
		for _, validation := range info[group] {
			if failingOnly && constants.ValidationStatus(validation.Status) != constants.ValidationFailure {
				continue
			}
			rows = append(rows, ValidationRow{
				Kind:    kind,
				Name:    name,
				Group:   group,
				ID:      validation.ID,
				Status:  validation.Status,
				Message: validation.Message,
			})
		}
	}
	return rows
}

func renderValidations(p palette, rows []ValidationRow) string {
	if len(rows) == 0 {
		return "No validations found\n"
	}

	var b strings.Builder
	current := ""
	for _, row := range rows {
		owner := row.Kind
		if row.Name != "" {
			owner += " " + row.Name
		}
		if owner != current {
			if current != "" {
				b.WriteString("\n")
			}
			b.WriteString(p.title.Render(owner))
			b.WriteString("\n")
			current = owner
		}

		statusStyle := p.dim
		switch constants.ValidationStatus(row.Status) {
		case constants.ValidationSuccess:
			statusStyle = p.good
		case constants.ValidationFailure:
			statusStyle = p.bad
		}
		line := fmt.Sprintf("  %-12s %-40s %s", row.Group, row.ID, statusStyle.Render(row.Status))
		if row.Message != "" {
			line += " " + p.dim.Render(row.Message)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
