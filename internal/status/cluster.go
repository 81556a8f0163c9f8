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
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
)

// ClusterStatusFromDebugInfo returns the state reported by the installer, or
// insufficient when none has been reported yet.
func ClusterStatusFromDebugInfo(aci *v1beta1.AgentClusterInstall) (constants.ClusterStatus, string) {
	debugInfo := aci.Status.DebugInfo
	if debugInfo.State == "" {
		return constants.ClusterStatusInsufficient, debugInfo.StateInfo
	}
	return constants.ClusterStatus(debugInfo.State), debugInfo.StateInfo
}

// IsDraft reports whether the cluster has not started installing yet.
func IsDraft(aci *v1beta1.AgentClusterInstall) bool {
	state, _ := ClusterStatusFromDebugInfo(aci)
	switch state {
	case constants.ClusterStatusPendingForInput,
		constants.ClusterStatusInsufficient,
		constants.ClusterStatusReady:
		return true
	}
	return false
}

// ClassifyClusterInstall classifies the conditions of an AgentClusterInstall.
func (c *Classifier) ClassifyClusterInstall(aci *v1beta1.AgentClusterInstall) Result[constants.ClusterStatus] {
	return c.Cluster(aci.Status.Conditions)
}
