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

package testutil

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
)

// NewScheme returns a scheme that serves the installer kinds as unstructured
// objects, which is how the engine reads them.
func NewScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	_ = clientgoscheme.AddToScheme(scheme)
	for _, gvk := range []schema.GroupVersionKind{
		v1beta1.AgentClusterInstallGVK,
		v1beta1.AgentGVK,
		v1beta1.InfraEnvGVK,
		v1beta1.BareMetalHostGVK,
	} {
		scheme.AddKnownTypeWithName(gvk, &unstructured.Unstructured{})
		scheme.AddKnownTypeWithName(gvk.GroupVersion().WithKind(gvk.Kind+"List"), &unstructured.UnstructuredList{})
	}
	return scheme
}

// Condition builds a condition with the given type, status and reason.
func Condition(condType string, status metav1.ConditionStatus, reason string) metav1.Condition {
	return metav1.Condition{Type: condType, Status: status, Reason: reason}
}

// ToUnstructured converts a fixture into an unstructured object of the given kind.
func ToUnstructured(obj any, gvk schema.GroupVersionKind) *unstructured.Unstructured {
	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		panic(err)
	}
	u := &unstructured.Unstructured{Object: content}
	u.SetGroupVersionKind(gvk)
	return u
}

// AgentClusterInstall fixtures

type ClusterInstallOption func(*v1beta1.AgentClusterInstall)

func NewClusterInstall(opts ...ClusterInstallOption) *v1beta1.AgentClusterInstall {
	aci := &v1beta1.AgentClusterInstall{
		TypeMeta: metav1.TypeMeta{
			APIVersion: v1beta1.AgentClusterInstallGVK.GroupVersion().String(),
			Kind:       v1beta1.AgentClusterInstallGVK.Kind,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      "test-cluster",
			Namespace: "default",
		},
		Spec: v1beta1.AgentClusterInstallSpec{
			ClusterDeploymentRef: corev1.LocalObjectReference{Name: "test-cluster"},
		},
	}
	for _, opt := range opts {
		opt(aci)
	}
	return aci
}

func WithClusterInstallName(name string) ClusterInstallOption {
	return func(aci *v1beta1.AgentClusterInstall) {
		aci.Name = name
	}
}

func WithClusterInstallNamespace(namespace string) ClusterInstallOption {
	return func(aci *v1beta1.AgentClusterInstall) {
		aci.Namespace = namespace
	}
}

func WithClusterDeployment(name string) ClusterInstallOption {
	return func(aci *v1beta1.AgentClusterInstall) {
		aci.Spec.ClusterDeploymentRef.Name = name
	}
}

func WithClusterState(state string) ClusterInstallOption {
	return func(aci *v1beta1.AgentClusterInstall) {
		aci.Status.DebugInfo.State = state
	}
}

func WithClusterConditions(conditions ...metav1.Condition) ClusterInstallOption {
	return func(aci *v1beta1.AgentClusterInstall) {
		aci.Status.Conditions = append(aci.Status.Conditions, conditions...)
	}
}

func WithClusterValidations(info v1beta1.ValidationsInfo) ClusterInstallOption {
	return func(aci *v1beta1.AgentClusterInstall) {
		aci.Status.ValidationsInfo = info
	}
}

func WithClusterAnnotation(key, value string) ClusterInstallOption {
	return func(aci *v1beta1.AgentClusterInstall) {
		if aci.Annotations == nil {
			aci.Annotations = map[string]string{}
		}
		aci.Annotations[key] = value
	}
}

// Agent fixtures

type AgentOption func(*v1beta1.Agent)

func NewAgent(opts ...AgentOption) *v1beta1.Agent {
	agent := &v1beta1.Agent{
		TypeMeta: metav1.TypeMeta{
			APIVersion: v1beta1.AgentGVK.GroupVersion().String(),
			Kind:       v1beta1.AgentGVK.Kind,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      "test-agent",
			Namespace: "default",
		},
		Spec: v1beta1.AgentSpec{
			Approved: true,
			ClusterDeploymentName: &v1beta1.ClusterReference{
				Name:      "test-cluster",
				Namespace: "default",
			},
		},
	}
	for _, opt := range opts {
		opt(agent)
	}
	return agent
}

func WithAgentName(name string) AgentOption {
	return func(agent *v1beta1.Agent) {
		agent.Name = name
	}
}

func WithAgentNamespace(namespace string) AgentOption {
	return func(agent *v1beta1.Agent) {
		agent.Namespace = namespace
	}
}

func WithAgentApproved(approved bool) AgentOption {
	return func(agent *v1beta1.Agent) {
		agent.Spec.Approved = approved
	}
}

// WithAgentClusterDeployment binds the agent to a cluster deployment. An
// empty name leaves the agent unbound.
func WithAgentClusterDeployment(namespace, name string) AgentOption {
	return func(agent *v1beta1.Agent) {
		if name == "" {
			agent.Spec.ClusterDeploymentName = nil
			return
		}
		agent.Spec.ClusterDeploymentName = &v1beta1.ClusterReference{Name: name, Namespace: namespace}
	}
}

func WithAgentState(state string) AgentOption {
	return func(agent *v1beta1.Agent) {
		agent.Status.DebugInfo.State = state
	}
}

func WithAgentConditions(conditions ...metav1.Condition) AgentOption {
	return func(agent *v1beta1.Agent) {
		agent.Status.Conditions = append(agent.Status.Conditions, conditions...)
	}
}

func WithAgentValidations(info v1beta1.ValidationsInfo) AgentOption {
	return func(agent *v1beta1.Agent) {
		agent.Status.ValidationsInfo = info
	}
}

// BareMetalHost fixtures

type BareMetalHostOption func(*v1beta1.BareMetalHost)

func NewBareMetalHost(opts ...BareMetalHostOption) *v1beta1.BareMetalHost {
	bmh := &v1beta1.BareMetalHost{
		TypeMeta: metav1.TypeMeta{
			APIVersion: v1beta1.BareMetalHostGVK.GroupVersion().String(),
			Kind:       v1beta1.BareMetalHostGVK.Kind,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      "test-bmh",
			Namespace: "default",
		},
	}
	for _, opt := range opts {
		opt(bmh)
	}
	return bmh
}

func WithBareMetalHostName(name string) BareMetalHostOption {
	return func(bmh *v1beta1.BareMetalHost) {
		bmh.Name = name
	}
}

func WithBareMetalHostState(state string) BareMetalHostOption {
	return func(bmh *v1beta1.BareMetalHost) {
		bmh.Status.Provisioning.State = state
	}
}

func WithBareMetalHostError(errorType, message string) BareMetalHostOption {
	return func(bmh *v1beta1.BareMetalHost) {
		bmh.Status.ErrorType = errorType
		bmh.Status.ErrorMessage = message
	}
}
