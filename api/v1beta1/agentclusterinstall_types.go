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

package v1beta1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// AgentClusterInstall represents the install intent and progress of one cluster.
type AgentClusterInstall struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   AgentClusterInstallSpec   `json:"spec,omitempty"`
	Status AgentClusterInstallStatus `json:"status,omitempty"`
}

// AgentClusterInstallSpec holds the fields of the install spec read by the engine.
type AgentClusterInstallSpec struct {
	// ClusterDeploymentRef is the ClusterDeployment this install belongs to.
	// Agents bound to the same ClusterDeployment are the cluster's hosts.
	ClusterDeploymentRef corev1.LocalObjectReference `json:"clusterDeploymentRef,omitempty"`

	// ProvisionRequirements states the expected number of control plane and worker agents.
	// +optional
	ProvisionRequirements ProvisionRequirements `json:"provisionRequirements,omitempty"`
}

// ProvisionRequirements mirrors the agent counts requested by the user.
type ProvisionRequirements struct {
	ControlPlaneAgents int `json:"controlPlaneAgents,omitempty"`
	WorkerAgents       int `json:"workerAgents,omitempty"`
}

// AgentClusterInstallStatus holds the observed install state.
type AgentClusterInstallStatus struct {
	// Conditions includes the Validated, RequirementsMet, Completed and Stopped conditions.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`

	// DebugInfo carries the raw installer state. An empty state means the
	// installation controller has not reported yet.
	// +optional
	DebugInfo DebugInfo `json:"debugInfo,omitempty"`

	// ValidationsInfo holds the cluster validations grouped by category.
	// +optional
	ValidationsInfo ValidationsInfo `json:"validationsInfo,omitempty"`
}

// ClusterDeploymentName returns the name of the referenced ClusterDeployment.
func (in *AgentClusterInstall) ClusterDeploymentName() string {
	return in.Spec.ClusterDeploymentRef.Name
}
