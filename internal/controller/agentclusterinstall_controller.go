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

package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/api/equality"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/predicate"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/clusterinstall"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/conditions"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/config"
	controllerutils "github.com/amd-enterprise-ai/cluster-wizard-engine/internal/controller/utils"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/metrics"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/readiness"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/status"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/utils"
)

const (
	clusterInstallControllerName = "clusterinstall"
)

// AgentClusterInstallReconciler reconciles an AgentClusterInstall object
type AgentClusterInstallReconciler struct {
	client.Client
	Scheme   *runtime.Scheme
	Recorder record.EventRecorder
	Config   config.Config

	// DomainReconciler holds the specific business logic
	reconciler *clusterinstall.Reconciler

	// Pipeline executes the standard reconciliation flow (Fetch -> Compose -> Plan -> Publish)
	pipeline controllerutils.Pipeline[
		*unstructured.Unstructured,
		clusterinstall.FetchResult,
		clusterinstall.Observation,
	]
}

// +kubebuilder:rbac:groups=extensions.hive.openshift.io,resources=agentclusterinstalls,verbs=get;list;watch;patch
// +kubebuilder:rbac:groups=agent-install.openshift.io,resources=agents,verbs=get;list;watch
// +kubebuilder:rbac:groups=metal3.io,resources=baremetalhosts,verbs=get;list;watch
// +kubebuilder:rbac:groups="",resources=namespaces,verbs=get;list;watch
// +kubebuilder:rbac:groups="",resources=events,verbs=create;patch

// NewAgentClusterInstallReconciler wires the domain reconciler and pipeline for cfg.
func NewAgentClusterInstallReconciler(
	c client.Client,
	scheme *runtime.Scheme,
	recorder record.EventRecorder,
	cfg config.Config,
	logger logr.Logger,
) (*AgentClusterInstallReconciler, error) {
	steps, err := cfg.Steps()
	if err != nil {
		return nil, err
	}

	r := &AgentClusterInstallReconciler{
		Client:   c,
		Scheme:   scheme,
		Recorder: recorder,
		Config:   cfg,
	}
	r.reconciler = &clusterinstall.Reconciler{
		Evaluator:           readiness.NewEvaluator(steps, logger.WithName("evaluator")),
		Classifier:          status.NewClassifier(logger.WithName("classifier")),
		ReadinessAnnotation: cfg.ReadinessAnnotation,
		EmitEvents:          cfg.EventsEnabled(),
	}
	r.pipeline = controllerutils.Pipeline[
		*unstructured.Unstructured,
		clusterinstall.FetchResult,
		clusterinstall.Observation,
	]{
		Client:         c,
		Recorder:       recorder,
		Reconciler:     r.reconciler,
		ControllerName: clusterInstallControllerName,
	}
	return r, nil
}

func (r *AgentClusterInstallReconciler) Reconcile(ctx context.Context, req ctrl.Request) (result ctrl.Result, err error) {
	logger := log.FromContext(ctx)
	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		metrics.RecordReconcile(outcome, time.Since(start).Seconds())
	}()

	aci := &unstructured.Unstructured{}
	aci.SetGroupVersionKind(v1beta1.AgentClusterInstallGVK)
	if err := r.Get(ctx, req.NamespacedName, aci); err != nil {
		if apierrors.IsNotFound(err) {
			metrics.ForgetCluster(req.Namespace, req.Name)
			return ctrl.Result{}, nil
		}
		logger.Error(err, "Failed to fetch AgentClusterInstall")
		return ctrl.Result{}, err
	}

	if !aci.GetDeletionTimestamp().IsZero() {
		utils.Debug(logger, "AgentClusterInstall is being deleted")
		metrics.ForgetCluster(req.Namespace, req.Name)
		return ctrl.Result{}, nil
	}

	terminating, err := isNamespaceTerminating(ctx, r.Client, req.Namespace)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("failed to check namespace %s: %w", req.Namespace, err)
	}
	if terminating {
		utils.Debug(logger, "Namespace is terminating, skipping publication")
		return ctrl.Result{}, nil
	}

	// Delegate execution to the generic Pipeline
	if err := r.pipeline.Run(ctx, aci); err != nil {
		return ctrl.Result{}, err
	}

	return ctrl.Result{RequeueAfter: r.Config.RequeueInterval.Duration}, nil
}

func (r *AgentClusterInstallReconciler) SetupWithManager(mgr ctrl.Manager) error {
	aci := &unstructured.Unstructured{}
	aci.SetGroupVersionKind(v1beta1.AgentClusterInstallGVK)

	agent := &unstructured.Unstructured{}
	agent.SetGroupVersionKind(v1beta1.AgentGVK)

	return ctrl.NewControllerManagedBy(mgr).
		For(aci, builder.WithPredicates(observedChange())).
		Watches(agent, handler.EnqueueRequestsFromMapFunc(r.findInstallsForAgent), builder.WithPredicates(observedChange())).
		Named(r.pipeline.GetKubernetesName()).
		Complete(r)
}

// findInstallsForAgent maps an agent to the AgentClusterInstalls of the
// cluster deployment it is bound to.
func (r *AgentClusterInstallReconciler) findInstallsForAgent(ctx context.Context, obj client.Object) []reconcile.Request {
	u, ok := obj.(*unstructured.Unstructured)
	if !ok {
		return nil
	}
	agent, err := controllerutils.FromUnstructured[v1beta1.Agent](u)
	if err != nil || !agent.IsBound() {
		return nil
	}
	namespace := agent.Spec.ClusterDeploymentName.Namespace
	if namespace == "" {
		namespace = agent.Namespace
	}

	installs := controllerutils.ListInto[v1beta1.AgentClusterInstall](ctx, r.Client,
		v1beta1.AgentClusterInstallListGVK,
		client.InNamespace(namespace))
	if installs.HasError() {
		log.FromContext(ctx).Error(installs.Error, "Failed to list AgentClusterInstalls for agent", "agent", agent.Name)
		return nil
	}

	var requests []reconcile.Request
	for _, install := range installs.Value {
		if agent.BelongsTo(install.Namespace, install.ClusterDeploymentName()) {
			requests = append(requests, reconcile.Request{
				NamespacedName: types.NamespacedName{Namespace: install.Namespace, Name: install.Name},
			})
		}
	}
	return requests
}

// observedChange passes updates that change the generation, the reported
// state, the validations or a condition. Annotation-only updates, such as the
// ones this controller publishes, are dropped.
func observedChange() predicate.Predicate {
	return predicate.Or(
		predicate.GenerationChangedPredicate{},
		predicate.Funcs{UpdateFunc: statusUpdated},
	)
}

func statusUpdated(e event.UpdateEvent) bool {
	oldObj, okOld := e.ObjectOld.(*unstructured.Unstructured)
	newObj, okNew := e.ObjectNew.(*unstructured.Unstructured)
	if !okOld || !okNew {
		return true
	}
	oldStatus, errOld := observedStatus(oldObj)
	newStatus, errNew := observedStatus(newObj)
	if errOld != nil || errNew != nil {
		return true
	}
	if len(conditions.Diff(conditions.Reduce(oldStatus.Conditions), conditions.Reduce(newStatus.Conditions))) > 0 {
		return true
	}
	return oldStatus.DebugInfo != newStatus.DebugInfo ||
		!equality.Semantic.DeepEqual(oldStatus.ValidationsInfo, newStatus.ValidationsInfo)
}

// observedStatus decodes the status fields shared by AgentClusterInstalls and agents.
// observedStatus decodes the status fields the engine reads. A missing status is empty.
func observedStatus(u *unstructured.Unstructured) (v1beta1.AgentStatus, error) {
	var observed v1beta1.AgentStatus
	content, ok := u.Object["status"].(map[string]any)
	if !ok {
		return observed, nil
	}
	err := runtime.DefaultUnstructuredConverter.FromUnstructured(content, &observed)
	return observed, err
}
