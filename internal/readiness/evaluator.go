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

// Package readiness decides whether a cluster and its hosts may leave a
// wizard step, combining classified statuses, validation results and the
// wizard step tables.
package readiness

import (
	"slices"

	"github.com/go-logr/logr"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/status"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/utils"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/validations"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/wizard"
)

// ClusterState is a cluster status together with its validation results.
type ClusterState struct {
	Status          constants.ClusterStatus
	ValidationsInfo v1beta1.ValidationsInfo
}

// HostState is a host status together with its validation results.
type HostState struct {
	Status          constants.HostStatus
	ValidationsInfo v1beta1.ValidationsInfo
}

// Evaluation is the readiness of one wizard step.
type Evaluation struct {
	Step      string
	Readiness constants.Readiness
	// StepStatus is the cluster status as seen by the step.
	StepStatus constants.ClusterStatus
	// SoftWarning is set when only soft validations fail within the step.
	SoftWarning bool
}

// Ready reports whether the step may be left.
func (e Evaluation) Ready() bool {
	return e.Readiness == constants.ReadinessReady
}

// Evaluator evaluates wizard steps of one flavor. It is stateless and safe for
// concurrent use.
type Evaluator struct {
	steps      *wizard.StepsMap
	soft       []string
	classifier *status.Classifier
	log        logr.Logger
}

// NewEvaluator returns an evaluator for steps logging to log.
func NewEvaluator(steps *wizard.StepsMap, log logr.Logger) *Evaluator {
	return &Evaluator{
		steps:      steps,
		soft:       steps.AllSoftValidationIDs(),
		classifier: status.NewClassifier(log),
		log:        log,
	}
}

// Steps returns the step table used by the evaluator.
func (e *Evaluator) Steps() *wizard.StepsMap {
	return e.steps
}

// StepHostStatus returns the status of a host as seen by step. Insufficient
// and pending-for-input hosts whose step validations pass are known.
func (e *Evaluator) StepHostStatus(step string, host HostState) constants.HostStatus {
	if host.Status != constants.HostStatusInsufficient && host.Status != constants.HostStatusPendingForInput {
		return host.Status
	}
	entry, ok := e.steps.Get(step)
	if !ok {
		return host.Status
	}
	info := host.ValidationsInfo
	if validations.CheckGroups(info, entry.Host.Groups, e.soft) &&
		validations.CheckValidations(info, entry.Host.ValidationIDs, e.soft) {
		return constants.HostStatusKnown
	}
	return host.Status
}

// StepClusterStatus returns the status of a cluster as seen by step.
// Insufficient and pending-for-input clusters are ready when every host passes
// the step's status gate and the cluster's step validations pass.
func (e *Evaluator) StepClusterStatus(step string, cluster ClusterState, hosts []HostState) constants.ClusterStatus {
	if cluster.Status != constants.ClusterStatusInsufficient && cluster.Status != constants.ClusterStatusPendingForInput {
		return cluster.Status
	}
	entry, ok := e.steps.Get(step)
	if !ok {
		return cluster.Status
	}
	if len(entry.Host.AllowedStatuses) > 0 {
		for _, host := range hosts {
			if !slices.Contains(entry.Host.AllowedStatuses, e.StepHostStatus(step, host)) {
				return cluster.Status
			}
		}
	}
	info := cluster.ValidationsInfo
	if validations.CheckGroups(info, entry.Cluster.Groups, e.soft) &&
		validations.CheckValidations(info, entry.Cluster.ValidationIDs, e.soft) {
		return constants.ClusterStatusReady
	}
	return cluster.Status
}

// Evaluate decides whether step may be left. A cluster without status or an
// unknown step is never ready.
func (e *Evaluator) Evaluate(step string, cluster ClusterState, hosts []HostState) Evaluation {
	evaluation := Evaluation{
		Step:       step,
		Readiness:  constants.ReadinessNotReady,
		StepStatus: cluster.Status,
	}
	if cluster.Status == "" {
		utils.Debug(e.log, "Cluster has no status yet", "step", step)
		return evaluation
	}
	entry, ok := e.steps.Get(step)
	if !ok {
		utils.Debug(e.log, "Unknown wizard step", "step", step, "flavor", e.steps.Flavor())
		return evaluation
	}

	evaluation.StepStatus = e.StepClusterStatus(step, cluster, hosts)
	if evaluation.StepStatus == constants.ClusterStatusReady {
		evaluation.Readiness = constants.ReadinessReady
	}

	evaluation.SoftWarning = validations.OnlySoftFailing(cluster.ValidationsInfo, entry.Cluster.Groups, entry.Cluster.ValidationIDs, e.soft)
	for _, host := range hosts {
		if evaluation.SoftWarning {
			break
		}
		evaluation.SoftWarning = validations.OnlySoftFailing(host.ValidationsInfo, entry.Host.Groups, entry.Host.ValidationIDs, e.soft)
	}
	return evaluation
}

// EvaluateSteps evaluates every step of the wizard in order.
func (e *Evaluator) EvaluateSteps(cluster ClusterState, hosts []HostState) []Evaluation {
	steps := e.steps.Steps()
	evaluations := make([]Evaluation, 0, len(steps))
	for _, step := range steps {
		evaluations = append(evaluations, e.Evaluate(step, cluster, hosts))
	}
	return evaluations
}

// ClusterValidationsInfo returns the cluster validations relevant to step.
// Unknown steps yield an empty map.
func (e *Evaluator) ClusterValidationsInfo(step string, info v1beta1.ValidationsInfo) v1beta1.ValidationsInfo {
	entry, ok := e.steps.Get(step)
	if !ok {
		return v1beta1.ValidationsInfo{}
	}
	return validations.FilterByStep(info, entry.Cluster.Groups, entry.Cluster.ValidationIDs)
}

// HostValidationsInfo returns the host validations relevant to step.
// Unknown steps yield an empty map.
func (e *Evaluator) HostValidationsInfo(step string, info v1beta1.ValidationsInfo) v1beta1.ValidationsInfo {
	entry, ok := e.steps.Get(step)
	if !ok {
		return v1beta1.ValidationsInfo{}
	}
	return validations.FilterByStep(info, entry.Host.Groups, entry.Host.ValidationIDs)
}

// HostOnlySoftFailing reports whether only soft validations of step fail for a host.
func (e *Evaluator) HostOnlySoftFailing(step string, info v1beta1.ValidationsInfo) bool {
	entry, ok := e.steps.Get(step)
	if !ok {
		return false
	}
	return validations.OnlySoftFailing(info, entry.Host.Groups, entry.Host.ValidationIDs, e.soft)
}
