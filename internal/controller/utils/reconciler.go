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

package controllerutils

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"k8s.io/client-go/tools/record"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/utils"
)

// PlanResult contains the desired changes from the PlanResources phase.
type PlanResult struct {
	// annotations are set on the reconciled object with a JSON patch.
	annotations map[string]string
}

// Annotate adds an annotation to be set on the reconciled object.
func (pr *PlanResult) Annotate(key, value string) {
	if pr.annotations == nil {
		pr.annotations = map[string]string{}
	}
	pr.annotations[key] = value
}

// Annotations returns the planned annotations.
func (pr PlanResult) Annotations() map[string]string {
	return pr.annotations
}

// StateEngineDecision contains the pipeline's analysis of component health.
type StateEngineDecision struct {
	// ShouldApply is false if any component could not be observed
	ShouldApply bool

	// ShouldRequeue is true if infrastructure errors are present (triggers exponential backoff)
	ShouldRequeue bool

	// RequeueError is the error to return for controller-runtime requeue
	RequeueError error
}

// DomainReconciler is implemented by domain-specific logic for a watched kind.
type DomainReconciler[T client.Object, F any, Obs any] interface {
	// FetchRemoteState hits the API via client and returns the fetched objects.
	// Errors are captured in FetchResult types, not returned - this ensures ComposeState always runs.
	FetchRemoteState(ctx context.Context, c client.Client, reconcileCtx ReconcileContext[T]) F

	// ComposeState interprets the fetched objects into a meaningful observation.
	ComposeState(ctx context.Context, reconcileCtx ReconcileContext[T], fetched F) Obs

	// PlanResources must be pure: no client calls, just derive desired changes from the observation.
	PlanResources(ctx context.Context, reconcileCtx ReconcileContext[T], obs Obs) PlanResult
}

// ObservationRecorder lets a reconciler publish events and metrics for an
// observation once its plan has been applied.
type ObservationRecorder[T client.Object, Obs any] interface {
	RecordObservation(ctx context.Context, recorder record.EventRecorder, reconcileCtx ReconcileContext[T], obs Obs)
}

// Pipeline wires a domain reconciler with controller-runtime utilities.
type Pipeline[T client.Object, F any, Obs any] struct {
	Client         client.Client
	Recorder       record.EventRecorder
	Reconciler     DomainReconciler[T, F, Obs]
	ControllerName string
}

// GetKubernetesName returns the Kubernetes controller name (used in SetupWithManager's .Named()).
// Example: "clusterinstall" -> "clusterinstall-controller"
func (p *Pipeline[T, F, Obs]) GetKubernetesName() string {
	return p.ControllerName + "-controller"
}

type ReconcileContext[T client.Object] struct {
	Object T
}

// Run executes the Fetch → Compose → Plan → Decide → Patch → Record flow.
// It does NOT fetch the reconciled object itself; that remains in the
// controller's Reconcile.
func (p *Pipeline[T, F, Obs]) Run(ctx context.Context, obj T) error {
	logger := log.FromContext(ctx)
	reconcileCtx := ReconcileContext[T]{Object: obj}

	fetched := p.Reconciler.FetchRemoteState(ctx, p.Client, reconcileCtx)
	obs := p.Reconciler.ComposeState(ctx, reconcileCtx, fetched)
	planResult := p.Reconciler.PlanResources(ctx, reconcileCtx, obs)

	var componentHealth []ComponentHealth
	if provider, ok := any(obs).(ComponentHealthProvider); ok {
		componentHealth = provider.GetComponentHealth()
	}
	for _, h := range componentHealth {
		if state := h.GetState(); state != HealthStateHealthy {
			utils.Debug(logger, "Component not healthy",
				"component", h.Component, "state", state, "reason", h.GetReason(), "message", h.GetMessage())
		}
	}

	decision := decide(categorizeComponentErrors(componentHealth))
	if !decision.ShouldApply {
		if decision.ShouldRequeue {
			return decision.RequeueError
		}
		logger.Info("Skipping publication, components could not be observed")
		return nil
	}

	if annotations := planResult.Annotations(); len(annotations) > 0 {
		patched, err := PatchAnnotations(ctx, p.Client, obj, annotations)
		if err != nil {
			return fmt.Errorf("patch phase failed: %w", err)
		}
		if patched {
			keys := slices.Sorted(maps.Keys(annotations))
			utils.Debug(logger, "Patched annotations", "keys", keys)
		}
	}

	if rec, ok := any(p.Reconciler).(ObservationRecorder[T, Obs]); ok {
		rec.RecordObservation(ctx, p.Recorder, reconcileCtx, obs)
	}
	return nil
}

// errorCategories holds the results of error categorization from component health.
type errorCategories struct {
	hasInfra       bool
	hasAuth        bool
	hasMissing     bool
	hasInvalidSpec bool
	infraErrors    []error
}

// categorizeComponentErrors collects and categorizes all errors from component health.
func categorizeComponentErrors(componentHealth []ComponentHealth) errorCategories {
	var result errorCategories
	for _, h := range componentHealth {
		for _, err := range h.Errors {
			if err == nil {
				continue
			}
			switch CategorizeError(err).Category() {
			case ErrorCategoryInfrastructure, ErrorCategoryUnknown:
				result.hasInfra = true
				result.infraErrors = append(result.infraErrors, err)
			case ErrorCategoryAuth:
				result.hasAuth = true
			case ErrorCategoryMissingResource:
				result.hasMissing = true
			case ErrorCategoryInvalidSpec:
				result.hasInvalidSpec = true
			}
		}
	}
	return result
}

// decide turns error categories into a reconciliation decision. Only
// infrastructure errors are retried; the other categories wait for a watch event.
func decide(cats errorCategories) StateEngineDecision {
	if cats.hasInfra {
		return StateEngineDecision{ShouldRequeue: true, RequeueError: errors.Join(cats.infraErrors...)}
	}
	return StateEngineDecision{ShouldApply: !cats.hasAuth && !cats.hasInvalidSpec && !cats.hasMissing}
}
