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

// Package status derives the canonical installation status of clusters and
// hosts from their Kubernetes status conditions.
//
// Classification is a pure function of the condition set. Unexpected input
// never fails: it degrades to the most conservative status and is reported
// through the classifier's logger and metrics.
package status

import (
	"github.com/go-logr/logr"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/conditions"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/metrics"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/utils"
)

const (
	MessageClusterConditionsMissing = "AgentClusterInstall conditions are missing."
	MessageUnexpectedCluster        = "Unexpected AgentClusterInstall conditions."
	MessageUnexpectedAgent          = "Unexpected Agent conditions."
	MessageAgentNotApproved         = "The host has not been approved yet."
)

// Result is the outcome of a classification.
type Result[S ~string] struct {
	Status S
	// Info is the human readable detail explaining Status.
	Info string
	// Diagnostic is set when the classifier fell back to a conservative status.
	Diagnostic error
}

// Classifier maps condition sets to statuses and reports fallbacks.
// It holds no state besides its logger and is safe for concurrent use.
type Classifier struct {
	log logr.Logger
}

// NewClassifier returns a classifier logging diagnostics to log.
func NewClassifier(log logr.Logger) *Classifier {
	return &Classifier{log: log}
}

// defaultClassifier logs through the controller-runtime logger installed by the binary.
var defaultClassifier = NewClassifier(logf.Log.WithName("status"))

// Cluster classifies the conditions of an AgentClusterInstall.
func (c *Classifier) Cluster(conds []metav1.Condition) Result[constants.ClusterStatus] {
	byType := conditions.Reduce(conds)

	if missing := byType.Missing(constants.ClusterRequiredConditions...); len(missing) > 0 {
		diagnostic := &MissingConditionsError{Resource: "AgentClusterInstall", Missing: missing}
		utils.Debug(c.log, "Cluster conditions not synced yet", "missing", missing)
		metrics.RecordMissingConditions(metrics.ResourceCluster)
		return Result[constants.ClusterStatus]{
			Status:     constants.ClusterStatusInsufficient,
			Info:       MessageClusterConditionsMissing,
			Diagnostic: diagnostic,
		}
	}

	if i := FirstMatch(clusterRules, byType); i >= 0 {
		rule := clusterRules[i]
		return Result[constants.ClusterStatus]{
			Status: rule.Outcome,
			Info:   byType.Message(rule.Condition),
		}
	}

	diagnostic := &UnmappedConditionsError{Resource: "AgentClusterInstall", Conditions: byType}
	c.log.Info("Unhandled conditions to cluster status mapping", "error", diagnostic.Error())
	metrics.RecordUnmappedConditions(metrics.ResourceCluster)
	return Result[constants.ClusterStatus]{
		Status:     constants.ClusterStatusInsufficient,
		Info:       MessageUnexpectedCluster,
		Diagnostic: diagnostic,
	}
}

// Host classifies the conditions of an Agent, ignoring approval.
func (c *Classifier) Host(conds []metav1.Condition) Result[constants.HostStatus] {
	byType := conditions.Reduce(conds)

	if i := FirstMatch(hostRules, byType); i >= 0 {
		rule := hostRules[i]
		return Result[constants.HostStatus]{
			Status: rule.Outcome,
			Info:   byType.Message(rule.Condition),
		}
	}

	diagnostic := &UnmappedConditionsError{Resource: "Agent", Conditions: byType}
	c.log.Info("Unhandled conditions to agent status mapping", "error", diagnostic.Error())
	metrics.RecordUnmappedConditions(metrics.ResourceHost)
	return Result[constants.HostStatus]{
		Status:     constants.HostStatusInsufficient,
		Info:       MessageUnexpectedAgent,
		Diagnostic: diagnostic,
	}
}

// ApprovedHost classifies an agent's conditions and applies the approval gate:
// unapproved hosts are reported as discovered unless excludeApprovalOverride is set.
func (c *Classifier) ApprovedHost(conds []metav1.Condition, approved, excludeApprovalOverride bool) Result[constants.HostStatus] {
	if !approved && !excludeApprovalOverride {
		return Result[constants.HostStatus]{
			Status: constants.HostStatusDiscovered,
			Info:   MessageAgentNotApproved,
		}
	}
	return c.Host(conds)
}

// ClassifyCluster returns the status and status detail of a cluster condition set.
func ClassifyCluster(conds []metav1.Condition) (constants.ClusterStatus, string) {
	result := defaultClassifier.Cluster(conds)
	return result.Status, result.Info
}

// ClassifyHost returns the status and status detail of a host condition set.
func ClassifyHost(conds []metav1.Condition, approved, excludeApprovalOverride bool) (constants.HostStatus, string) {
	result := defaultClassifier.ApprovedHost(conds, approved, excludeApprovalOverride)
	return result.Status, result.Info
}
