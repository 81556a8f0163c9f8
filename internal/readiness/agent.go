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
	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/status"
)

// SublabelSomeValidationsFailed marks a host whose only failures are soft.
const SublabelSomeValidationsFailed = "Some validations failed"

// AgentStepStatus is the presentation of an agent within a wizard step.
type AgentStepStatus struct {
	Status          constants.HostStatus
	ValidationsInfo v1beta1.ValidationsInfo
	Sublabel        string
}

// StepAgentStatus returns how an agent is presented within step. Discovered
// agents and agents with spec sync errors are returned as is.
func (e *Evaluator) StepAgentStatus(agent *v1beta1.Agent, step string, excludeDiscovered bool) AgentStepStatus {
	key := status.AgentStatusKey(agent, excludeDiscovered)
	info := v1beta1.ValidationsInfo{}
	if key != constants.HostStatusSpecSyncErr && agent.Status.ValidationsInfo != nil {
		info = agent.Status.ValidationsInfo.DeepCopy()
	}
	if key == constants.HostStatusDiscovered || key == constants.HostStatusSpecSyncErr || !e.steps.Has(step) {
		return AgentStepStatus{Status: key, ValidationsInfo: info}
	}

	result := AgentStepStatus{
		Status:          e.StepHostStatus(step, HostState{Status: key, ValidationsInfo: info}),
		ValidationsInfo: e.HostValidationsInfo(step, info),
	}
	if e.HostOnlySoftFailing(step, info) {
		result.Sublabel = SublabelSomeValidationsFailed
	}
	return result
}
