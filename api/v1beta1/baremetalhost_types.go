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

// BareMetalHost represents a physical host managed by metal3.
type BareMetalHost struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Status BareMetalHostStatus `json:"status,omitempty"`
}

// BareMetalHostStatus holds the provisioning fields read by the engine.
type BareMetalHostStatus struct {
	// +optional
	ErrorType string `json:"errorType,omitempty"`

	// +optional
	ErrorMessage string `json:"errorMessage,omitempty"`

	// +optional
	Provisioning ProvisionStatus `json:"provisioning,omitempty"`
}

// ProvisionStatus holds the metal3 provisioning state machine value.
type ProvisionStatus struct {
	// State is e.g. "registering", "inspecting", "provisioned".
	// +optional
	State string `json:"state,omitempty"`
}

// InfraEnv is the discovery environment agents boot from. Only its conditions are read.
type InfraEnv struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Status InfraEnvStatus `json:"status,omitempty"`
}

// InfraEnvStatus holds the observed state of an InfraEnv.
type InfraEnvStatus struct {
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}
