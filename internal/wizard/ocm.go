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
)

const (
	StepStaticIPYAMLView           = "static-ip-yaml-view"
	StepStaticIPNetworkWide        = "static-ip-network-wide-configurations"
	StepStaticIPHostConfigurations = "static-ip-host-configurations"
	StepOperators                  = "operators"
	StepHostDiscovery              = "host-discovery"
	StepStorage                    = "storage"
	StepCustomManifests            = "custom-manifests"
	StepCredentialsDownload        = "credentials-download"
)

// OCM returns the step table of the hosted assisted installer wizard.
var OCM = sync.OnceValue(func() *StepsMap {
	operatorRequirements := []string{
		"lso-requirements-satisfied",
		"odf-requirements-satisfied",
		"lvm-requirements-satisfied",
		"cnv-requirements-satisfied",
		"nvidia-gpu-requirements-satisfied",
		"openshift-ai-requirements-satisfied",
		"osc-requirements-satisfied",
		"amd-gpu-requirements-satisfied",
	}

	return newStepsMap(FlavorOCM,
		[]string{
			StepClusterDetails,
			StepStaticIPYAMLView,
			StepStaticIPNetworkWide,
			StepStaticIPHostConfigurations,
			StepOperators,
			StepHostDiscovery,
			StepStorage,
			StepNetworking,
			StepCustomManifests,
			StepCredentialsDownload,
			StepReview,
		},
		map[string]StepValidationMap{
			StepClusterDetails: {
				Cluster: ClusterValidations{
					ValidationIDs: []string{"pull-secret-set", "dns-domain-defined"},
				},
			},
			StepStaticIPYAMLView:           {},
			StepStaticIPNetworkWide:        {},
			StepStaticIPHostConfigurations: {},
			StepOperators:                  {},
			StepHostDiscovery: {
				Cluster: ClusterValidations{
					ValidationIDs: append([]string{"sufficient-masters-count"}, operatorRequirements...),
				},
				Host: HostValidations{
					AllowedStatuses: hostAllowedStatuses,
					Groups:          []string{"hardware"},
					ValidationIDs:   append([]string{"connected", "media-connected"}, operatorRequirements...),
				},
				SoftValidationIDs: []string{
					"no-skip-installation-disk",
					"no-skip-missing-disk",
					"compatible-agent",
					"openshift-ai-gpu-requirements-satisfied",
				},
			},
			StepStorage: {
				Cluster: ClusterValidations{
					ValidationIDs: []string{"sufficient-masters-count"},
				},
				Host: HostValidations{
					AllowedStatuses: hostAllowedStatuses,
					Groups:          []string{"hardware"},
					ValidationIDs: []string{
						"connected",
						"media-connected",
						"no-skip-installation-disk",
						"no-skip-missing-disk",
					},
				},
			},
			StepNetworking: {
				Cluster: ClusterValidations{Groups: []string{"network"}},
				Host: HostValidations{
					AllowedStatuses: hostAllowedStatuses,
					Groups:          []string{"network"},
				},
				SoftValidationIDs: []string{"ntp-synced", "container-images-available", "mtu-valid"},
			},
			StepCustomManifests:     {},
			StepCredentialsDownload: {},
			StepReview: {
				Cluster: ClusterValidations{
					ValidationIDs: []string{"all-hosts-are-ready-to-install"},
				},
				Host: HostValidations{AllowedStatuses: hostAllowedStatuses},
			},
		},
		StepHostDiscovery,
	)
})
