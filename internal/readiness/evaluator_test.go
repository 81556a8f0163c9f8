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

package readiness

import (
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/wizard"
)

func val(id, status string) v1beta1.Validation {
	return v1beta1.Validation{ID: id, Status: status}
}

func passingHostsStepCluster() v1beta1.ValidationsInfo {
	return v1beta1.ValidationsInfo{
		"hostsData": {
			val("sufficient-masters-count", "success"),
			val("odf-requirements-satisfied", "success"),
			val("lso-requirements-satisfied", "success"),
			val("cnv-requirements-satisfied", "success"),
		},
	}
}

func passingHostsStepHost() v1beta1.ValidationsInfo {
	return v1beta1.ValidationsInfo{
		"hardware": {
			val("odf-requirements-satisfied", "success"),
			val("lso-requirements-satisfied", "success"),
			val("cnv-requirements-satisfied", "success"),
			val("connected", "success"),
		},
	}
}

func newCIMEvaluator() *Evaluator {
	return NewEvaluator(wizard.CIM(), logr.Discard())
}

func TestStepHostStatus(t *testing.T) {
	tests := []struct {
		name     string
		step     string
		host     HostState
		expected constants.HostStatus
	}{
		{
			name:     "insufficient host passing step validations",
			step:     wizard.StepHostsDiscovery,
			host:     HostState{Status: constants.HostStatusInsufficient, ValidationsInfo: passingHostsStepHost()},
			expected: constants.HostStatusKnown,
		},
		{
			name:     "pending host passing step validations",
			step:     wizard.StepHostsDiscovery,
			host:     HostState{Status: constants.HostStatusPendingForInput, ValidationsInfo: passingHostsStepHost()},
			expected: constants.HostStatusKnown,
		},
		{
			name:     "insufficient host missing validations",
			step:     wizard.StepHostsDiscovery,
			host:     HostState{Status: constants.HostStatusInsufficient, ValidationsInfo: v1beta1.ValidationsInfo{}},
			expected: constants.HostStatusInsufficient,
		},
		{
			name:     "disconnected host is not promoted",
			step:     wizard.StepHostsDiscovery,
			host:     HostState{Status: constants.HostStatusDisconnected, ValidationsInfo: passingHostsStepHost()},
			expected: constants.HostStatusDisconnected,
		},
		{
			name:     "unknown step",
			step:     "storage",
			host:     HostState{Status: constants.HostStatusInsufficient, ValidationsInfo: passingHostsStepHost()},
			expected: constants.HostStatusInsufficient,
		},
	}

	evaluator := newCIMEvaluator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evaluator.StepHostStatus(tt.step, tt.host); got != tt.expected {
				t.Errorf("StepHostStatus() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	insufficient := func(info v1beta1.ValidationsInfo) ClusterState {
		return ClusterState{Status: constants.ClusterStatusInsufficient, ValidationsInfo: info}
	}
	allValidationsPass := v1beta1.ValidationsInfo{
		"network": {val("api-vips-defined", "success")},
	}

	tests := []struct {
		name         string
		step         string
		cluster      ClusterState
		hosts        []HostState
		expected     constants.Readiness
		expectedSoft bool
	}{
		{
			name:     "no cluster status",
			step:     wizard.StepNetworking,
			cluster:  ClusterState{ValidationsInfo: allValidationsPass},
			expected: constants.ReadinessNotReady,
		},
		{
			name:     "unknown step",
			step:     "does-not-exist",
			cluster:  ClusterState{Status: constants.ClusterStatusReady},
			expected: constants.ReadinessNotReady,
		},
		{
			name:     "ready cluster",
			step:     wizard.StepReview,
			cluster:  ClusterState{Status: constants.ClusterStatusReady},
			expected: constants.ReadinessReady,
		},
		{
			name:     "installing cluster",
			step:     wizard.StepReview,
			cluster:  ClusterState{Status: constants.ClusterStatusInstalling},
			expected: constants.ReadinessNotReady,
		},
		{
			name:     "disconnected host blocks even when validations pass",
			step:     wizard.StepNetworking,
			cluster:  insufficient(allValidationsPass),
			hosts:    []HostState{{Status: constants.HostStatusDisconnected, ValidationsInfo: v1beta1.ValidationsInfo{"network": {}}}},
			expected: constants.ReadinessNotReady,
		},
		{
			name:     "disabled host passes the gate",
			step:     wizard.StepNetworking,
			cluster:  insufficient(allValidationsPass),
			hosts:    []HostState{{Status: constants.HostStatusDisabled}},
			expected: constants.ReadinessReady,
		},
		{
			name:     "cluster details has no host gate",
			step:     wizard.StepClusterDetails,
			cluster:  insufficient(v1beta1.ValidationsInfo{"configuration": {val("pull-secret-set", "success"), val("dns-domain-defined", "disabled")}}),
			hosts:    []HostState{{Status: constants.HostStatusDisconnected}},
			expected: constants.ReadinessReady,
		},
		{
			name:         "soft only cluster failure",
			step:         wizard.StepNetworking,
			cluster:      insufficient(v1beta1.ValidationsInfo{"network": {val("api-vips-defined", "success"), val("ntp-synced", "failure")}}),
			expected:     constants.ReadinessReady,
			expectedSoft: true,
		},
		{
			name:    "soft only host failure",
			step:    wizard.StepNetworking,
			cluster: insufficient(allValidationsPass),
			hosts: []HostState{{
				Status:          constants.HostStatusInsufficient,
				ValidationsInfo: v1beta1.ValidationsInfo{"network": {val("has-default-route", "success"), val("container-images-available", "failure")}},
			}},
			expected:     constants.ReadinessReady,
			expectedSoft: true,
		},
		{
			name:     "hard host failure",
			step:     wizard.StepNetworking,
			cluster:  insufficient(allValidationsPass),
			hosts:    []HostState{{Status: constants.HostStatusInsufficient, ValidationsInfo: v1beta1.ValidationsInfo{"network": {val("has-default-route", "failure")}}}},
			expected: constants.ReadinessNotReady,
		},
	}

	evaluator := newCIMEvaluator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluation := evaluator.Evaluate(tt.step, tt.cluster, tt.hosts)
			if evaluation.Readiness != tt.expected {
				t.Errorf("Evaluate() readiness = %v, expected %v", evaluation.Readiness, tt.expected)
			}
			if evaluation.SoftWarning != tt.expectedSoft {
				t.Errorf("Evaluate() soft warning = %v, expected %v", evaluation.SoftWarning, tt.expectedSoft)
			}
			if evaluation.Step != tt.step {
				t.Errorf("Evaluate() step = %q, expected %q", evaluation.Step, tt.step)
			}
		})
	}
}

func clusterConditions(validated metav1.Condition) []metav1.Condition {
	return []metav1.Condition{
		validated,
		{Type: constants.ConditionRequirementsMet, Status: metav1.ConditionTrue, Reason: "ClusterIsReady"},
		{Type: constants.ConditionCompleted, Status: metav1.ConditionFalse, Reason: constants.ReasonInstallationNotStarted},
		{Type: constants.ConditionStopped, Status: metav1.ConditionFalse, Reason: constants.ReasonInstallationNotStarted},
	}
}

func TestCanProceedFromStep(t *testing.T) {
	knownHost := HostSnapshot{
		State:           constants.HostStatusKnown,
		Approved:        true,
		ValidationsInfo: v1beta1.ValidationsInfo{"network": {val("has-default-route", "success")}},
	}

	t.Run("cluster level hard failure blocks", func(t *testing.T) {
		cluster := ClusterSnapshot{
			Conditions: clusterConditions(metav1.Condition{
				Type: constants.ConditionValidated, Status: metav1.ConditionFalse, Reason: constants.ReasonValidationsFailing,
			}),
			RawValidations: `{"network":[{"id":"api-vips-defined","status":"failure"}]}`,
		}
		if CanProceedFromStep(wizard.StepNetworking, cluster, []HostSnapshot{knownHost}) {
			t.Error("CanProceedFromStep() = true, expected false")
		}
	})

	t.Run("classified cluster with passing validations", func(t *testing.T) {
		cluster := ClusterSnapshot{
			Conditions: clusterConditions(metav1.Condition{
				Type: constants.ConditionValidated, Status: metav1.ConditionFalse, Reason: constants.ReasonValidationsUserPending,
			}),
			RawValidations: `{"network":[{"id":"api-vips-defined","status":"success"}]}`,
		}
		if !CanProceedFromStep(wizard.StepNetworking, cluster, []HostSnapshot{knownHost}) {
			t.Error("CanProceedFromStep() = false, expected true")
		}
	})

	t.Run("soft only cluster failure does not block", func(t *testing.T) {
		cluster := ClusterSnapshot{
			State: constants.ClusterStatusInsufficient,
			ValidationsInfo: v1beta1.ValidationsInfo{
				"network": {val("api-vips-defined", "success"), val("ntp-synced", "failure")},
			},
		}
		if !CanProceedFromStep(wizard.StepNetworking, cluster, []HostSnapshot{knownHost}) {
			t.Error("CanProceedFromStep() = false, expected true")
		}
	})

	t.Run("host classified from conditions", func(t *testing.T) {
		cluster := ClusterSnapshot{
			State:           constants.ClusterStatusInsufficient,
			ValidationsInfo: v1beta1.ValidationsInfo{"network": {}},
		}
		disconnected := HostSnapshot{
			Approved: true,
			Conditions: []metav1.Condition{
				{Type: constants.ConditionConnected, Status: metav1.ConditionFalse, Reason: constants.ReasonAgentDisconnected},
			},
		}
		if CanProceedFromStep(wizard.StepNetworking, cluster, []HostSnapshot{disconnected}) {
			t.Error("CanProceedFromStep() = true, expected false")
		}
	})

	t.Run("nothing known about the cluster", func(t *testing.T) {
		if CanProceedFromStep(wizard.StepReview, ClusterSnapshot{}, nil) {
			t.Error("CanProceedFromStep() = true, expected false")
		}
	})
}

func TestCanProceedFromStep_LogsMalformedValidations(t *testing.T) {
	var lines []string
	log := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{})
	evaluator := NewEvaluator(wizard.CIM(), log)

	cluster := ClusterSnapshot{State: constants.ClusterStatusInsufficient, RawValidations: "not json"}
	if evaluator.CanProceedFromStep(wizard.StepNetworking, cluster, nil) {
		t.Error("CanProceedFromStep() = true, expected false")
	}
	if len(lines) != 1 || !strings.Contains(lines[0], "Failed to parse validations info") {
		t.Errorf("expected one malformed validations log line, got %v", lines)
	}
}

func TestGetStepValidationsInfo(t *testing.T) {
	info := v1beta1.ValidationsInfo{
		"configuration": {val("pull-secret-set", "success"), val("ntp-server-configured", "failure")},
		"network":       {val("api-vips-defined", "success")},
	}

	clusterDetails := GetStepValidationsInfo(wizard.StepClusterDetails, info)
	if len(clusterDetails) != 1 || len(clusterDetails["configuration"]) != 1 || clusterDetails["configuration"][0].ID != "pull-secret-set" {
		t.Errorf("GetStepValidationsInfo(cluster-details) = %v", clusterDetails)
	}

	networking := GetStepValidationsInfo(wizard.StepNetworking, info)
	if len(networking) != 1 || len(networking["network"]) != 1 {
		t.Errorf("GetStepValidationsInfo(networking) = %v", networking)
	}

	if unknown := GetStepValidationsInfo("unknown", info); len(unknown) != 0 {
		t.Errorf("GetStepValidationsInfo(unknown) = %v, expected empty", unknown)
	}

	hostInfo := GetStepHostValidationsInfo(wizard.StepHostsDiscovery, v1beta1.ValidationsInfo{
		"hardware":       {val("has-min-cpu-cores", "failure")},
		"infrastructure": {val("connected", "success"), val("belongs-to-machine-cidr", "failure")},
	})
	if len(hostInfo["hardware"]) != 1 || len(hostInfo["infrastructure"]) != 1 || hostInfo["infrastructure"][0].ID != "connected" {
		t.Errorf("GetStepHostValidationsInfo(hosts-discovery) = %v", hostInfo)
	}
}

func TestEvaluateSteps(t *testing.T) {
	evaluations := newCIMEvaluator().EvaluateSteps(ClusterState{Status: constants.ClusterStatusReady}, nil)
	steps := wizard.CIM().Steps()
	if len(evaluations) != len(steps) {
		t.Fatalf("EvaluateSteps() returned %d evaluations, expected %d", len(evaluations), len(steps))
	}
	for i, evaluation := range evaluations {
		if evaluation.Step != steps[i] {
			t.Errorf("evaluation %d step = %q, expected %q", i, evaluation.Step, steps[i])
		}
		if !evaluation.Ready() {
			t.Errorf("step %q not ready for a ready cluster", evaluation.Step)
		}
	}
}
