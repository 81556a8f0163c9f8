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

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/tools/record"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// Shared test types for the pipeline tests

const testAnnotation = "example.com/observed"

type testFetch struct {
	errs []error
}

type testObservation struct {
	testFetch
	value string
}

func (o testObservation) GetComponentHealth() []ComponentHealth {
	return []ComponentHealth{{Component: "Dependency", Errors: o.errs}}
}

type testReconciler struct {
	fetchResult testFetch
	value       string
	recorded    []string
}

func (r *testReconciler) FetchRemoteState(_ context.Context, _ client.Client, _ ReconcileContext[*unstructured.Unstructured]) testFetch {
	return r.fetchResult
}

func (r *testReconciler) ComposeState(_ context.Context, _ ReconcileContext[*unstructured.Unstructured], fetched testFetch) testObservation {
	return testObservation{testFetch: fetched, value: r.value}
}

func (r *testReconciler) PlanResources(_ context.Context, _ ReconcileContext[*unstructured.Unstructured], obs testObservation) PlanResult {
	plan := PlanResult{}
	if obs.value != "" {
		plan.Annotate(testAnnotation, obs.value)
	}
	return plan
}

func (r *testReconciler) RecordObservation(_ context.Context, recorder record.EventRecorder, reconcileCtx ReconcileContext[*unstructured.Unstructured], obs testObservation) {
	r.recorded = append(r.recorded, obs.value)
	recorder.Event(reconcileCtx.Object, "Normal", "Observed", obs.value)
}
