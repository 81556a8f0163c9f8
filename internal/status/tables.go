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
	"slices"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
)

// clusterRules is ordered highest priority first.
var clusterRules = []Rule[constants.ClusterStatus]{
	{
		Condition: constants.ConditionStopped,
		Status:    metav1.ConditionTrue,
		Reasons:   []string{constants.ReasonInstallationCancelled},
		Outcome:   constants.ClusterStatusCancelled,
	},
	{
		Condition: constants.ConditionStopped,
		Status:    metav1.ConditionTrue,
		Reasons:   []string{constants.ReasonInstallationFailed},
		Outcome:   constants.ClusterStatusError,
	},
	{
		Condition: constants.ConditionCompleted,
		Status:    metav1.ConditionTrue,
		Reasons:   []string{constants.ReasonInstallationCompleted},
		Outcome:   constants.ClusterStatusInstalled,
	},
	{
		Condition: constants.ConditionCompleted,
		Status:    metav1.ConditionFalse,
		Reasons:   []string{constants.ReasonInstallationInProgress},
		Outcome:   constants.ClusterStatusInstalling,
	},
	{
		Condition: constants.ConditionValidated,
		Status:    metav1.ConditionFalse,
		Reasons:   []string{constants.ReasonValidationsFailing},
		Outcome:   constants.ClusterStatusInsufficient,
	},
	{
		Condition: constants.ConditionValidated,
		Status:    metav1.ConditionFalse,
		Reasons:   []string{constants.ReasonValidationsUserPending},
		Outcome:   constants.ClusterStatusPendingForInput,
	},
	{
		Condition: constants.ConditionValidated,
		Status:    metav1.ConditionFalse,
		Reasons:   []string{constants.ReasonValidationsUnknown},
		Outcome:   constants.ClusterStatusInsufficient,
	},
	{
		Condition: constants.ConditionRequirementsMet,
		Status:    metav1.ConditionFalse,
		Reasons: []string{
			constants.ReasonClusterNotReady,
			constants.ReasonInsufficientAgents,
			constants.ReasonUnapprovedAgents,
		},
		Outcome: constants.ClusterStatusInsufficient,
	},
	{
		Condition: constants.ConditionCompleted,
		Status:    metav1.ConditionFalse,
		Reasons:   []string{constants.ReasonUnapprovedAgents},
		Outcome:   constants.ClusterStatusInsufficient,
	},
}

// hostRules is ordered highest priority first.
var hostRules = []Rule[constants.HostStatus]{
	{
		Condition: constants.ConditionInstalled,
		Status:    metav1.ConditionTrue,
		Outcome:   constants.HostStatusInstalled,
	},
	{
		Condition: constants.ConditionInstalled,
		Status:    metav1.ConditionFalse,
		Reasons:   []string{constants.ReasonInstallationFailed},
		Outcome:   constants.HostStatusError,
	},
	{
		Condition: constants.ConditionInstalled,
		Status:    metav1.ConditionFalse,
		Reasons:   []string{constants.ReasonInstallationInProgress},
		Outcome:   constants.HostStatusInstalling,
	},
	{
		Condition: constants.ConditionConnected,
		Status:    metav1.ConditionFalse,
		Outcome:   constants.HostStatusDisconnected,
	},
	{
		Condition: constants.ConditionReadyForInstallation,
		Status:    metav1.ConditionTrue,
		Outcome:   constants.HostStatusKnown,
	},
	{
		Condition: constants.ConditionReadyForInstallation,
		Status:    metav1.ConditionFalse,
		Reasons:   []string{constants.ReasonAgentIsNotApproved},
		Outcome:   constants.HostStatusPendingForInput,
	},
	{
		Condition: constants.ConditionReadyForInstallation,
		Status:    metav1.ConditionFalse,
		Reasons:   []string{constants.ReasonAgentNotReady},
		Outcome:   constants.HostStatusInsufficient,
	},
}

// ClusterRules returns a copy of the cluster rule table in priority order.
func ClusterRules() []Rule[constants.ClusterStatus] {
	return slices.Clone(clusterRules)
}

// HostRules returns a copy of the host rule table in priority order.
func HostRules() []Rule[constants.HostStatus] {
	return slices.Clone(hostRules)
}
