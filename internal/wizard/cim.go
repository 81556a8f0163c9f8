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

package wizard

import (
	"sync"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
)

const (
	StepClusterDetails = "cluster-details"
	StepHostsDiscovery = "hosts-discovery"
	StepHostsSelection = "hosts-selection"
	StepNetworking     = "networking"
	StepReview         = "review"
)

var hostAllowedStatuses = []constants.HostStatus{constants.HostStatusKnown, constants.HostStatusDisabled}

// CIM returns the step table of the AgentClusterInstall wizard.
var CIM = sync.OnceValue(func() *StepsMap {
	hostsStep := StepValidationMap{
		Cluster: ClusterValidations{
			ValidationIDs: []string{
				"sufficient-masters-count",
				"odf-requirements-satisfied",
				"lso-requirements-satisfied",
				"cnv-requirements-satisfied",
			},
		},
		Host: HostValidations{
			AllowedStatuses: hostAllowedStatuses,
			Groups:          []string{"hardware"},
			ValidationIDs: []string{
				"connected",
				"odf-requirements-satisfied",
				"lso-requirements-satisfied",
				"cnv-requirements-satisfied",
			},
		},
		SoftValidationIDs: []string{"no-skip-installation-disk", "no-skip-missing-disk"},
	}

	return newStepsMap(FlavorCIM,
		[]string{StepClusterDetails, StepHostsDiscovery, StepHostsSelection, StepNetworking, StepReview},
		map[string]StepValidationMap{
			StepClusterDetails: {
				Cluster: ClusterValidations{
					ValidationIDs: []string{"pull-secret-set", "dns-domain-defined"},
				},
			},
			StepHostsDiscovery: hostsStep,
			StepHostsSelection: hostsStep.DeepCopy(),
			StepNetworking: {
				Cluster: ClusterValidations{Groups: []string{"network"}},
				Host: HostValidations{
					AllowedStatuses: hostAllowedStatuses,
					Groups:          []string{"network"},
				},
				SoftValidationIDs: []string{"ntp-synced", "container-images-available"},
			},
			StepReview: {
				Cluster: ClusterValidations{
					ValidationIDs: []string{"all-hosts-are-ready-to-install"},
				},
				Host: HostValidations{AllowedStatuses: hostAllowedStatuses},
			},
		},
		StepHostsDiscovery,
	)
})
