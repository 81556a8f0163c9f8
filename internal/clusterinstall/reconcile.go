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

package clusterinstall

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/tools/record"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
	controllerutils "github.com/amd-enterprise-ai/cluster-wizard-engine/internal/controller/utils"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/metrics"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/readiness"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/status"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/utils"
)

type ReconcileContext = controllerutils.ReconcileContext[*unstructured.Unstructured]

// ============================================================================
// DOMAIN RECONCILER
// ============================================================================

// Reconciler evaluates the wizard steps of an AgentClusterInstall and
// publishes their readiness as annotations.
type Reconciler struct {
	Evaluator  *readiness.Evaluator
	Classifier *status.Classifier

	// ReadinessAnnotation is the annotation key of the step readiness map.
	ReadinessAnnotation string

	// EmitEvents enables Kubernetes events on readiness and status changes.
	EmitEvents bool
}

// ============================================================================
// FETCH
// ============================================================================

// FetchResult holds everything fetched for one AgentClusterInstall.
type FetchResult struct {
	clusterInstall controllerutils.FetchResult[*v1beta1.AgentClusterInstall]
	agents         controllerutils.FetchResult[[]v1beta1.Agent]
	bareMetalHosts controllerutils.FetchResult[[]v1beta1.BareMetalHost]
}

// FetchRemoteState decodes the AgentClusterInstall and fetches its agents and
// the bare metal hosts of its namespace concurrently.
func (r *Reconciler) FetchRemoteState(ctx context.Context, c client.Client, reconcileCtx ReconcileContext) FetchResult {
	obj := reconcileCtx.Object
	ctx = log.IntoContext(ctx, log.FromContext(ctx).WithValues(
		"phase", "fetch",
		"clusterInstall", obj.GetName(),
		"namespace", obj.GetNamespace(),
	))

	result := FetchResult{}
	aci, err := controllerutils.FromUnstructured[v1beta1.AgentClusterInstall](obj)
	result.clusterInstall = controllerutils.FetchResult[*v1beta1.AgentClusterInstall]{Value: aci, Error: err}
	if err != nil {
		return result
	}

	// A failing fetch must not cancel the other one, so each reports its own error.
	var g errgroup.Group
	g.Go(func() error {
		result.agents = controllerutils.FetchClusterAgents(ctx, c, aci.Namespace, aci.ClusterDeploymentName())
		return result.agents.Error
	})
	g.Go(func() error {
		result.bareMetalHosts = controllerutils.FetchBareMetalHosts(ctx, c, aci.Namespace)
		return result.bareMetalHosts.Error
	})
	// Errors are carried by the fetch results.
	if err := g.Wait(); err != nil {
		utils.Debug(log.FromContext(ctx), "Fetch failed", "error", err)
	}
	return result
}

// NewFetchResult wraps resources that were read without a client, such as
// manifests on disk.
func NewFetchResult(aci *v1beta1.AgentClusterInstall, agents []v1beta1.Agent, bareMetalHosts []v1beta1.BareMetalHost) FetchResult {
	return FetchResult{
		clusterInstall: controllerutils.FetchResult[*v1beta1.AgentClusterInstall]{Value: aci},
		agents:         controllerutils.FetchResult[[]v1beta1.Agent]{Value: agents},
		bareMetalHosts: controllerutils.FetchResult[[]v1beta1.BareMetalHost]{Value: bareMetalHosts},
	}
}

// Errors returns the fetch errors of every component.
func (result FetchResult) Errors() []error {
	var errs []error
	for _, err := range []error{result.clusterInstall.Error, result.agents.Error, result.bareMetalHosts.Error} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (result FetchResult) GetComponentHealth() []controllerutils.ComponentHealth {
	return []controllerutils.ComponentHealth{
		result.clusterInstall.ToComponentHealth("ClusterInstall"),
		result.agents.ToComponentHealth("Agents"),
		result.bareMetalHosts.ToComponentHealth("BareMetalHosts"),
	}
}

// ============================================================================
// OBSERVATION
// ============================================================================

// HostObservation is the presented status of one agent.
type HostObservation struct {
	Name   string
	Status constants.HostStatus
	// Sublabel is set when only soft validations fail in the host step.
	Sublabel string
}

// BareMetalHostObservation is the presented status of one bare metal host.
type BareMetalHostObservation struct {
	Name  string
	State status.BMHState
}

// Observation holds the evaluated state of an AgentClusterInstall.
type Observation struct {
	FetchResult

	clusterStatus     constants.ClusterStatus
	clusterStatusInfo string
	evaluations       []readiness.Evaluation
	hosts             []HostObservation
	bareMetalHosts    []BareMetalHostObservation

	// previously published values, read back from the annotations
	previousReadiness map[string]constants.Readiness
	previousStatus    constants.ClusterStatus
}

// ClusterStatus returns the status the evaluation was based on.
func (obs Observation) ClusterStatus() constants.ClusterStatus {
	return obs.clusterStatus
}

// ClusterStatusInfo returns the detail reported or classified with the status.
func (obs Observation) ClusterStatusInfo() string {
	return obs.clusterStatusInfo
}

// Evaluations returns the per-step evaluations in wizard order.
func (obs Observation) Evaluations() []readiness.Evaluation {
	return obs.evaluations
}

// Hosts returns the presented status of every agent.
func (obs Observation) Hosts() []HostObservation {
	return obs.hosts
}

// BareMetalHosts returns the presented status of every bare metal host.
func (obs Observation) BareMetalHosts() []BareMetalHostObservation {
	return obs.bareMetalHosts
}

// Readiness returns the step readiness map.
func (obs Observation) Readiness() map[string]constants.Readiness {
	out := make(map[string]constants.Readiness, len(obs.evaluations))
	for _, evaluation := range obs.evaluations {
		out[evaluation.Step] = evaluation.Readiness
	}
	return out
}

func (r *Reconciler) ComposeState(ctx context.Context, reconcileCtx ReconcileContext, fetched FetchResult) Observation {
	logger := log.FromContext(ctx).WithName("compose")
	obs := Observation{FetchResult: fetched}
	if !fetched.clusterInstall.OK() {
		return obs
	}
	aci := fetched.clusterInstall.Value

	obs.previousReadiness, obs.previousStatus = r.previouslyPublished(logger, reconcileCtx.Object)

	// The reported state wins; conditions are classified until the installer reports one.
	obs.clusterStatus, obs.clusterStatusInfo = constants.ClusterStatus(aci.Status.DebugInfo.State), aci.Status.DebugInfo.StateInfo
	if obs.clusterStatus == "" && len(aci.Status.Conditions) > 0 {
		result := r.Classifier.ClassifyClusterInstall(aci)
		obs.clusterStatus, obs.clusterStatusInfo = result.Status, result.Info
	}

	agents := fetched.agents.Value
	hostStates := make([]readiness.HostState, 0, len(agents))
	hostStep := r.Evaluator.Steps().HostStep()
	for i := range agents {
		agent := &agents[i]
		hostStates = append(hostStates, r.Evaluator.HostState(readiness.HostSnapshotFromAgent(agent)))
		presented := r.Evaluator.StepAgentStatus(agent, hostStep, false)
		obs.hosts = append(obs.hosts, HostObservation{
			Name:     agent.Name,
			Status:   presented.Status,
			Sublabel: presented.Sublabel,
		})
	}

	for i := range fetched.bareMetalHosts.Value {
		bmh := &fetched.bareMetalHosts.Value[i]
		obs.bareMetalHosts = append(obs.bareMetalHosts, BareMetalHostObservation{
			Name:  bmh.Name,
			State: status.BMHStatus(bmh),
		})
	}

	cluster := readiness.ClusterState{Status: obs.clusterStatus, ValidationsInfo: aci.Status.ValidationsInfo}
	obs.evaluations = r.Evaluator.EvaluateSteps(cluster, hostStates)
	return obs
}

// previouslyPublished reads back the values published by an earlier
// reconciliation. A malformed readiness annotation is treated as absent.
func (r *Reconciler) previouslyPublished(logger logr.Logger, obj *unstructured.Unstructured) (map[string]constants.Readiness, constants.ClusterStatus) {
	annotations := obj.GetAnnotations()
	previous, err := DecodeReadiness(annotations[r.ReadinessAnnotation])
	if err != nil {
		logger.Info("Ignoring malformed readiness annotation", "annotation", r.ReadinessAnnotation, "error", err)
		previous = nil
	}
	return previous, constants.ClusterStatus(annotations[constants.ClusterStatusAnnotation])
}

// ============================================================================
// PLAN
// ============================================================================

func (r *Reconciler) PlanResources(ctx context.Context, _ ReconcileContext, obs Observation) controllerutils.PlanResult {
	logger := log.FromContext(ctx).WithName("plan")
	plan := controllerutils.PlanResult{}
	if obs.evaluations == nil {
		return plan
	}

	value, err := EncodeReadiness(obs.Readiness())
	if err != nil {
		logger.Error(err, "Failed to encode step readiness")
		return plan
	}
	plan.Annotate(r.ReadinessAnnotation, value)
	plan.Annotate(constants.ClusterStatusAnnotation, string(obs.clusterStatus))
	return plan
}

// ============================================================================
// RECORD
// ============================================================================

// RecordObservation updates metrics and emits events for readiness and
// status changes since the last publication.
func (r *Reconciler) RecordObservation(ctx context.Context, recorder record.EventRecorder, reconcileCtx ReconcileContext, obs Observation) {
	if obs.evaluations == nil {
		return
	}
	obj := reconcileCtx.Object
	namespace, name := obj.GetNamespace(), obj.GetName()
	logger := log.FromContext(ctx)

	for _, evaluation := range obs.evaluations {
		metrics.RecordStepReadiness(namespace, name, evaluation.Step, evaluation.Ready())
	}

	agentCounts := map[string]int{}
	for _, host := range obs.hosts {
		agentCounts[string(host.Status)]++
	}
	metrics.RecordHostStatuses(namespace, name, metrics.KindAgent, agentCounts)

	bmhCounts := map[string]int{}
	for _, bmh := range obs.bareMetalHosts {
		bmhCounts[bmh.State.Key]++
	}
	metrics.RecordHostStatuses(namespace, name, metrics.KindBareMetalHost, bmhCounts)

	steps := r.Evaluator.Steps().Steps()
	transitions := controllerutils.DiffReadiness(steps, obs.previousReadiness, obs.Readiness())
	for _, transition := range transitions {
		logger.Info("Wizard step readiness changed",
			"step", transition.Step, "from", transition.Old, "to", transition.New)
	}
	if obs.previousStatus != obs.clusterStatus {
		logger.Info("Cluster status changed",
			"from", obs.previousStatus, "to", obs.clusterStatus, "info", obs.clusterStatusInfo)
	}

	if !r.EmitEvents {
		return
	}
	controllerutils.EmitReadinessTransitions(recorder, obj, transitions)
	// The first publication has nothing to compare against.
	if obs.previousStatus != "" {
		controllerutils.EmitStatusChange(recorder, obj, obs.previousStatus, obs.clusterStatus, obs.clusterStatusInfo)
	}
}

// ============================================================================
// ANNOTATION FORMAT
// ============================================================================

// EncodeReadiness renders a step readiness map as the annotation value.
// Keys are sorted by encoding/json.
func EncodeReadiness(readiness map[string]constants.Readiness) (string, error) {
	data, err := json.Marshal(readiness)
	if err != nil {
		return "", fmt.Errorf("encode readiness: %w", err)
	}
	return string(data), nil
}

// DecodeReadiness parses an annotation value. An empty value yields no map.
func DecodeReadiness(value string) (map[string]constants.Readiness, error) {
	if value == "" {
		return nil, nil
	}
	readiness := map[string]constants.Readiness{}
	if err := json.Unmarshal([]byte(value), &readiness); err != nil {
		return nil, fmt.Errorf("decode readiness: %w", err)
	}
	return readiness, nil
}
