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

package status

import (
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
)

func TestAgentStatusKey(t *testing.T) {
	bound := &v1beta1.ClusterReference{Name: "cluster"}
	specSyncFailed := []metav1.Condition{cond(constants.ConditionSpecSynced, metav1.ConditionFalse, "InputError", "bad spec")}

	tests := []struct {
		name     string
		agent    v1beta1.Agent
		exclude  bool
		expected constants.HostStatus
	}{
		{
			name: "spec sync error wins over approval",
			agent: v1beta1.Agent{
				Status: v1beta1.AgentStatus{Conditions: specSyncFailed},
			},
			expected: constants.HostStatusSpecSyncErr,
		},
		{
			name:     "unapproved agent is discovered",
			agent:    v1beta1.Agent{Status: v1beta1.AgentStatus{DebugInfo: v1beta1.DebugInfo{State: "known"}}},
			expected: constants.HostStatusDiscovered,
		},
		{
			name:     "discovered excluded",
			agent:    v1beta1.Agent{Status: v1beta1.AgentStatus{DebugInfo: v1beta1.DebugInfo{State: "known"}}},
			exclude:  true,
			expected: constants.HostStatusKnown,
		},
		{
			name: "reported state",
			agent: v1beta1.Agent{
				Spec:   v1beta1.AgentSpec{Approved: true},
				Status: v1beta1.AgentStatus{DebugInfo: v1beta1.DebugInfo{State: "installing-in-progress"}},
			},
			expected: constants.HostStatusInstallingInProgress,
		},
		{
			name:     "bound without state",
			agent:    v1beta1.Agent{Spec: v1beta1.AgentSpec{Approved: true, ClusterDeploymentName: bound}},
			expected: constants.HostStatusInsufficient,
		},
		{
			name:     "unbound without state",
			agent:    v1beta1.Agent{Spec: v1beta1.AgentSpec{Approved: true}},
			expected: constants.HostStatusInsufficientUnbound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgentStatusKey(&tt.agent, tt.exclude); got != tt.expected {
				t.Errorf("AgentStatusKey() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestIsDraft(t *testing.T) {
	tests := []struct {
		state    string
		expected bool
	}{
		{state: "", expected: true},
		{state: "ready", expected: true},
		{state: "pending-for-input", expected: true},
		{state: "installing", expected: false},
		{state: "installed", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			aci := &v1beta1.AgentClusterInstall{}
			aci.Status.DebugInfo.State = tt.state
			if got := IsDraft(aci); got != tt.expected {
				t.Errorf("IsDraft(%q) = %v, expected %v", tt.state, got, tt.expected)
			}
		})
	}
}

func TestBMHStatus(t *testing.T) {
	tests := []struct {
		name          string
		status        v1beta1.BareMetalHostStatus
		expectedKey   string
		expectedState string
	}{
		{
			name:          "error type set",
			status:        v1beta1.BareMetalHostStatus{ErrorType: "registration error", ErrorMessage: "bad credentials", Provisioning: v1beta1.ProvisionStatus{State: "registering"}},
			expectedKey:   BMHStatusError,
			expectedState: BMHStatusError,
		},
		{
			name:          "provisioning state",
			status:        v1beta1.BareMetalHostStatus{Provisioning: v1beta1.ProvisionStatus{State: "inspecting"}},
			expectedKey:   "inspecting",
			expectedState: "inspecting",
		},
		{
			name:          "no state",
			expectedKey:   "",
			expectedState: BMHStatusPending,
		},
		{
			name:          "unknown state",
			status:        v1beta1.BareMetalHostStatus{Provisioning: v1beta1.ProvisionStatus{State: "levitating"}},
			expectedKey:   "levitating",
			expectedState: BMHStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bmh := &v1beta1.BareMetalHost{Status: tt.status}
			if got := BMHStatusKey(bmh); got != tt.expectedKey {
				t.Errorf("BMHStatusKey() = %q, expected %q", got, tt.expectedKey)
			}
			state := BMHStatus(bmh)
			if state.Key != tt.expectedState {
				t.Errorf("BMHStatus().Key = %q, expected %q", state.Key, tt.expectedState)
			}
			if state.ErrorMessage != tt.status.ErrorMessage {
				t.Errorf("BMHStatus().ErrorMessage = %q, expected %q", state.ErrorMessage, tt.status.ErrorMessage)
			}
		})
	}
}
