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
	"sync"

	logf "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/wizard"
)

var defaultEvaluator = sync.OnceValue(func() *Evaluator {
	return NewEvaluator(wizard.CIM(), logf.Log.WithName("readiness"))
})

// CanNextFromStep reports whether the AgentClusterInstall wizard may leave
// step. Clusters the installer has not reported a state for never may.
func (e *Evaluator) CanNextFromStep(aci *v1beta1.AgentClusterInstall, agents []v1beta1.Agent, step string) bool {
	if aci.Status.DebugInfo.State == "" {
		return false
	}
	return e.CanProceedFromStep(step, ClusterSnapshotFromInstall(aci), HostSnapshotsFromAgents(agents))
}

// CanProceedFromStep reports whether step of the AgentClusterInstall wizard may be left.
func CanProceedFromStep(step string, cluster ClusterSnapshot, hosts []HostSnapshot) bool {
	return defaultEvaluator().CanProceedFromStep(step, cluster, hosts)
}

// GetStepValidationsInfo returns the cluster validations relevant to step.
func GetStepValidationsInfo(step string, info v1beta1.ValidationsInfo) v1beta1.ValidationsInfo {
	return defaultEvaluator().ClusterValidationsInfo(step, info)
}

// GetStepHostValidationsInfo returns the host validations relevant to step.
func GetStepHostValidationsInfo(step string, info v1beta1.ValidationsInfo) v1beta1.ValidationsInfo {
	return defaultEvaluator().HostValidationsInfo(step, info)
}

// StepAgentStatus returns how an agent is presented within step.
func StepAgentStatus(agent *v1beta1.Agent, step string, excludeDiscovered bool) AgentStepStatus {
	return defaultEvaluator().StepAgentStatus(agent, step, excludeDiscovered)
}

// CanNextFromStep reports whether the AgentClusterInstall wizard may leave step,
// using the CIM step table.
func CanNextFromStep(aci *v1beta1.AgentClusterInstall, agents []v1beta1.Agent, step string) bool {
	return defaultEvaluator().CanNextFromStep(aci, agents, step)
}

// CanNextFromClusterDetailsStep reports whether the cluster details step may be left.
func CanNextFromClusterDetailsStep(aci *v1beta1.AgentClusterInstall, agents []v1beta1.Agent) bool {
	return CanNextFromStep(aci, agents, wizard.StepClusterDetails)
}

// CanNextFromHostDiscoveryStep reports whether the host discovery step may be left.
func CanNextFromHostDiscoveryStep(aci *v1beta1.AgentClusterInstall, agents []v1beta1.Agent) bool {
	return CanNextFromStep(aci, agents, wizard.StepHostsDiscovery)
}

// CanNextFromHostSelectionStep reports whether the host selection step may be left.
func CanNextFromHostSelectionStep(aci *v1beta1.AgentClusterInstall, agents []v1beta1.Agent) bool {
	return CanNextFromStep(aci, agents, wizard.StepHostsSelection)
}

// CanNextFromNetworkingStep reports whether the networking step may be left.
func CanNextFromNetworkingStep(aci *v1beta1.AgentClusterInstall, agents []v1beta1.Agent) bool {
	return CanNextFromStep(aci, agents, wizard.StepNetworking)
}

// CanNextFromReviewStep reports whether the review step may be left.
func CanNextFromReviewStep(aci *v1beta1.AgentClusterInstall, agents []v1beta1.Agent) bool {
	return CanNextFromStep(aci, agents, wizard.StepReview)
}
