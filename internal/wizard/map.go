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

// Package wizard holds the static tables that tell, for every step of the
// cluster installation wizard, which validations gate leaving that step.
package wizard

import (
	"fmt"
	"slices"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
)

// Flavor selects one of the wizard step tables.
type Flavor string

const (
	// FlavorCIM is the wizard driven by AgentClusterInstall and Agent resources.
	FlavorCIM Flavor = "cim"
	// FlavorOCM is the hosted assisted installer wizard.
	FlavorOCM Flavor = "ocm"
)

// ClusterValidations selects cluster validations by group or id.
type ClusterValidations struct {
	Groups        []string
	ValidationIDs []string
}

// HostValidations selects host validations and restricts host statuses.
type HostValidations struct {
	// AllowedStatuses gates the cluster on every host's step status. Empty means no gate.
	AllowedStatuses []constants.HostStatus
	Groups          []string
	ValidationIDs   []string
}

// StepValidationMap lists the validations relevant to one wizard step.
type StepValidationMap struct {
	Cluster ClusterValidations
	Host    HostValidations
	// SoftValidationIDs never block the step when failing.
	SoftValidationIDs []string
}

// DeepCopy returns a copy sharing no slices with m.
func (m StepValidationMap) DeepCopy() StepValidationMap {
	return StepValidationMap{
		Cluster: ClusterValidations{
			Groups:        slices.Clone(m.Cluster.Groups),
			ValidationIDs: slices.Clone(m.Cluster.ValidationIDs),
		},
		Host: HostValidations{
			AllowedStatuses: slices.Clone(m.Host.AllowedStatuses),
			Groups:          slices.Clone(m.Host.Groups),
			ValidationIDs:   slices.Clone(m.Host.ValidationIDs),
		},
		SoftValidationIDs: slices.Clone(m.SoftValidationIDs),
	}
}

// StepsMap is the read-only step table of one wizard flavor. It is built once
// per process and every accessor returns copies, so it is safe for concurrent use.
type StepsMap struct {
	flavor Flavor
	order  []string
	steps  map[string]StepValidationMap
	soft   []string

	// hostStep is the earliest step able to fix failing host validations.
	hostStep string
}

func newStepsMap(flavor Flavor, order []string, steps map[string]StepValidationMap, hostStep string) *StepsMap {
	var soft []string
	for _, step := range order {
		for _, id := range steps[step].SoftValidationIDs {
			if !slices.Contains(soft, id) {
				soft = append(soft, id)
			}
		}
	}
	return &StepsMap{
		flavor:   flavor,
		order:    order,
		steps:    steps,
		soft:     soft,
		hostStep: hostStep,
	}
}

// ForFlavor returns the step table of the given flavor.
func ForFlavor(flavor Flavor) (*StepsMap, error) {
	switch flavor {
	case FlavorCIM:
		return CIM(), nil
	case FlavorOCM:
		return OCM(), nil
	}
	return nil, fmt.Errorf("unknown wizard flavor %q", flavor)
}

// Flavor returns the flavor of the table.
func (m *StepsMap) Flavor() Flavor {
	return m.flavor
}

// Steps returns the step ids in wizard order.
func (m *StepsMap) Steps() []string {
	return slices.Clone(m.order)
}

// Has reports whether step is part of the table.
func (m *StepsMap) Has(step string) bool {
	_, ok := m.steps[step]
	return ok
}

// Get returns a copy of the validation map of step.
func (m *StepsMap) Get(step string) (StepValidationMap, bool) {
	entry, ok := m.steps[step]
	if !ok {
		return StepValidationMap{}, false
	}
	return entry.DeepCopy(), true
}

// AllSoftValidationIDs returns the union of every step's soft validation ids.
func (m *StepsMap) AllSoftValidationIDs() []string {
	return slices.Clone(m.soft)
}

// FirstStepID returns the first step of the wizard.
func (m *StepsMap) FirstStepID() string {
	return m.order[0]
}

// LastStepID returns the last step of the wizard.
func (m *StepsMap) LastStepID() string {
	return m.order[len(m.order)-1]
}

// HostStep returns the earliest step able to fix failing host validations.
func (m *StepsMap) HostStep() string {
	return m.hostStep
}

// IsStepAfter reports whether stepA comes after stepB. Unknown steps are never after anything.
func (m *StepsMap) IsStepAfter(stepA, stepB string) bool {
	indexA := slices.Index(m.order, stepA)
	indexB := slices.Index(m.order, stepB)
	if indexA == -1 || indexB == -1 {
		return false
	}
	return indexA > indexB
}

// FindValidationFixStep returns the first step, in wizard order, that gates
// on validationID or on one of the given groups. Empty groups are ignored.
func (m *StepsMap) FindValidationFixStep(validationID, hostGroup, clusterGroup string) (string, bool) {
	for _, step := range m.order {
		entry := m.steps[step]
		if slices.Contains(entry.Cluster.ValidationIDs, validationID) ||
			slices.Contains(entry.Host.ValidationIDs, validationID) ||
			(clusterGroup != "" && slices.Contains(entry.Cluster.Groups, clusterGroup)) ||
			(hostGroup != "" && slices.Contains(entry.Host.Groups, hostGroup)) {
			return step, true
		}
	}
	return "", false
}

// FindValidationStep returns the first step not before minimumStep whose host
// validation ids contain validationID.
func (m *StepsMap) FindValidationStep(validationID, minimumStep string) (string, bool) {
	start := slices.Index(m.order, minimumStep)
	if start == -1 {
		return "", false
	}
	for _, step := range m.order[start:] {
		if slices.Contains(m.steps[step].Host.ValidationIDs, validationID) {
			return step, true
		}
	}
	return "", false
}

// FirstStep returns the step the wizard opens on for a cluster in state whose
// hosts report failingHostValidationIDs. Ready clusters open on the last step,
// clusters waiting for host fixes on the first step able to fix one, and
// everything else on the first step.
func (m *StepsMap) FirstStep(state constants.ClusterStatus, failingHostValidationIDs []string) string {
	switch state {
	case constants.ClusterStatusReady:
		return m.LastStepID()
	case constants.ClusterStatusPendingForInput,
		constants.ClusterStatusAddingHosts,
		constants.ClusterStatusInsufficient:
		for _, id := range failingHostValidationIDs {
			if step, ok := m.FindValidationStep(id, m.hostStep); ok {
				return step
			}
		}
		return m.hostStep
	}
	return m.FirstStepID()
}
