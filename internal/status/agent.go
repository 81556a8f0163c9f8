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
	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/conditions"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
)

// AgentStatusKey returns the status key shown for an agent. Spec sync errors
// take precedence over everything, unapproved agents are discovered unless
// excludeDiscovered is set, and otherwise the installer's reported state is used.
func AgentStatusKey(agent *v1beta1.Agent, excludeDiscovered bool) constants.HostStatus {
	byType := conditions.Reduce(agent.Status.Conditions)
	if byType.IsFalse(constants.ConditionSpecSynced) {
		return constants.HostStatusSpecSyncErr
	}
	if !excludeDiscovered && !agent.Spec.Approved {
		return constants.HostStatusDiscovered
	}
	if state := agent.Status.DebugInfo.State; state != "" {
		return constants.HostStatus(state)
	}
	if agent.IsBound() {
		return constants.HostStatusInsufficient
	}
	return constants.HostStatusInsufficientUnbound
}

// ClassifyAgent classifies an agent's conditions honouring its approval flag.
func (c *Classifier) ClassifyAgent(agent *v1beta1.Agent, excludeApprovalOverride bool) Result[constants.HostStatus] {
	return c.ApprovedHost(agent.Status.Conditions, agent.Spec.Approved, excludeApprovalOverride)
}
