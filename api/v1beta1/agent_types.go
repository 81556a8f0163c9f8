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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// AgentRole is the role requested for a host.
type AgentRole string

const (
	AgentRoleMaster     AgentRole = "master"
	AgentRoleWorker     AgentRole = "worker"
	AgentRoleAutoAssign AgentRole = "auto-assign"
)

// Agent represents a single discovered host.
type Agent struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   AgentSpec   `json:"spec,omitempty"`
	Status AgentStatus `json:"status,omitempty"`
}

// AgentSpec holds the user controlled fields of an Agent.
type AgentSpec struct {
	// Approved must be set before the host can take part in an installation.
	Approved bool `json:"approved"`

	// +optional
	Role AgentRole `json:"role,omitempty"`

	// +optional
	Hostname string `json:"hostname,omitempty"`

	// ClusterDeploymentName binds the agent to a cluster. Unbound agents belong
	// only to their InfraEnv.
	// +optional
	ClusterDeploymentName *ClusterReference `json:"clusterDeploymentName,omitempty"`
}

// AgentStatus holds the observed state of an Agent.
type AgentStatus struct {
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`

	// +optional
	DebugInfo DebugInfo `json:"debugInfo,omitempty"`

	// +optional
	ValidationsInfo ValidationsInfo `json:"validationsInfo,omitempty"`
}

// IsBound reports whether the agent is bound to a ClusterDeployment.
func (in *Agent) IsBound() bool {
	return in.Spec.ClusterDeploymentName != nil && in.Spec.ClusterDeploymentName.Name != ""
}

// BelongsTo reports whether the agent is bound to the named ClusterDeployment.
// An empty reference namespace is taken to mean the agent's own namespace.
func (in *Agent) BelongsTo(namespace, clusterDeploymentName string) bool {
	if !in.IsBound() {
		return false
	}
	ref := in.Spec.ClusterDeploymentName
	refNamespace := ref.Namespace
	if refNamespace == "" {
		refNamespace = in.Namespace
	}
	return ref.Name == clusterDeploymentName && refNamespace == namespace
}
