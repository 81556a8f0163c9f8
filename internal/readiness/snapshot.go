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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/metrics"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/validations"
)

// ClusterSnapshot is what is known about a cluster at one point in time.
type ClusterSnapshot struct {
	// State is the status reported by the installer, if any.
	State      constants.ClusterStatus
	Conditions []metav1.Condition
	// ValidationsInfo takes precedence over RawValidations.
	ValidationsInfo v1beta1.ValidationsInfo
	RawValidations  string
}

// HostSnapshot is what is known about a host at one point in time.
type HostSnapshot struct {
	// State is the status reported by the installer, if any.
	State      constants.HostStatus
	Conditions []metav1.Condition
	Approved   bool
	// ValidationsInfo takes precedence over RawValidations.
	ValidationsInfo v1beta1.ValidationsInfo
	RawValidations  string
}

// ClusterSnapshotFromInstall builds a snapshot from an AgentClusterInstall.
func ClusterSnapshotFromInstall(aci *v1beta1.AgentClusterInstall) ClusterSnapshot {
	return ClusterSnapshot{
		State:           constants.ClusterStatus(aci.Status.DebugInfo.State),
		Conditions:      aci.Status.Conditions,
		ValidationsInfo: aci.Status.ValidationsInfo,
	}
}

// HostSnapshotFromAgent builds a snapshot from an Agent.
func HostSnapshotFromAgent(agent *v1beta1.Agent) HostSnapshot {
	return HostSnapshot{
		State:           constants.HostStatus(agent.Status.DebugInfo.State),
		Conditions:      agent.Status.Conditions,
		Approved:        agent.Spec.Approved,
		ValidationsInfo: agent.Status.ValidationsInfo,
	}
}

// HostSnapshotsFromAgents builds snapshots for agents.
func HostSnapshotsFromAgents(agents []v1beta1.Agent) []HostSnapshot {
	snapshots := make([]HostSnapshot, 0, len(agents))
	for i := range agents {
		snapshots = append(snapshots, HostSnapshotFromAgent(&agents[i]))
	}
	return snapshots
}

// ClusterState resolves a snapshot. The reported state wins over classified
// conditions; a snapshot with neither has no status.
func (e *Evaluator) ClusterState(snapshot ClusterSnapshot) ClusterState {
	state := ClusterState{
		Status:          snapshot.State,
		ValidationsInfo: snapshot.ValidationsInfo,
	}
	if state.Status == "" && len(snapshot.Conditions) > 0 {
		state.Status = e.classifier.Cluster(snapshot.Conditions).Status
	}
	if state.ValidationsInfo == nil {
		state.ValidationsInfo = validations.LoadWithLogger(e.log, metrics.ResourceCluster, snapshot.RawValidations)
	}
	return state
}

// HostState resolves a snapshot. The reported state wins over classified
// conditions; a snapshot with neither has no status.
func (e *Evaluator) HostState(snapshot HostSnapshot) HostState {
	state := HostState{
		Status:          snapshot.State,
		ValidationsInfo: snapshot.ValidationsInfo,
	}
	if state.Status == "" && len(snapshot.Conditions) > 0 {
		state.Status = e.classifier.ApprovedHost(snapshot.Conditions, snapshot.Approved, false).Status
	}
	if state.ValidationsInfo == nil {
		state.ValidationsInfo = validations.LoadWithLogger(e.log, metrics.ResourceHost, snapshot.RawValidations)
	}
	return state
}

// HostStates resolves host snapshots.
func (e *Evaluator) HostStates(snapshots []HostSnapshot) []HostState {
	states := make([]HostState, 0, len(snapshots))
	for _, snapshot := range snapshots {
		states = append(states, e.HostState(snapshot))
	}
	return states
}

// CanProceedFromStep reports whether step may be left given the snapshots.
func (e *Evaluator) CanProceedFromStep(step string, cluster ClusterSnapshot, hosts []HostSnapshot) bool {
	return e.Evaluate(step, e.ClusterState(cluster), e.HostStates(hosts)).Ready()
}
