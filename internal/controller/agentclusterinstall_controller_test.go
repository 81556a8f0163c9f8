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
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/clusterinstall"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/config"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
	controllerutils "github.com/amd-enterprise-ai/cluster-wizard-engine/internal/controller/utils"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/testutil"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/wizard"
)

var _ = Describe("AgentClusterInstallReconciler", func() {
	// Available in BeforeEach
	var (
		clientBuilder *fake.ClientBuilder
		scheme        *runtime.Scheme
		cfg           config.Config
		recorder      *record.FakeRecorder
	)

	// Available in JustBeforeEach
	var (
		cl  client.WithWatch
		rec *AgentClusterInstallReconciler
	)

	BeforeEach(func() {
		scheme = testutil.NewScheme()
		clientBuilder = fake.NewClientBuilder().WithScheme(scheme)
		cfg = config.Default()
		recorder = record.NewFakeRecorder(32)

		cl = nil
		rec = nil
	})

	JustBeforeEach(func() {
		cl = clientBuilder.Build()
		var err error
		rec, err = NewAgentClusterInstallReconciler(cl, scheme, recorder, cfg, GinkgoLogr)
		Expect(err).NotTo(HaveOccurred())
	})

	getInstall := func(ctx context.Context, key client.ObjectKey) *unstructured.Unstructured {
		aci := &unstructured.Unstructured{}
		aci.SetGroupVersionKind(v1beta1.AgentClusterInstallGVK)
		Expect(cl.Get(ctx, key, aci)).To(Succeed())
		return aci
	}

	It("ignores NotFound when the AgentClusterInstall does not exist", func(ctx SpecContext) {
		Expect(rec.Reconcile(ctx, reconcile.Request{
			NamespacedName: types.NamespacedName{Namespace: "default", Name: "missing"},
		})).To(Equal(reconcile.Result{}))
	})

	When("the flavor is unknown", func() {
		It("fails to build the reconciler", func() {
			cfg.Flavor = "unknown"
			_, err := NewAgentClusterInstallReconciler(cl, scheme, recorder, cfg, GinkgoLogr)
			Expect(err).To(HaveOccurred())
		})
	})

	When("Get fails with a non-NotFound error", func() {
		internalServerError := errors.New("internal server error")

		BeforeEach(func() {
			clientBuilder = clientBuilder.WithInterceptorFuncs(interceptor.Funcs{
				Get: func(ctx context.Context, c client.WithWatch, key client.ObjectKey, obj client.Object, opts ...client.GetOption) error {
					if u, ok := obj.(*unstructured.Unstructured); ok && u.GroupVersionKind() == v1beta1.AgentClusterInstallGVK {
						return internalServerError
					}
					return c.Get(ctx, key, obj, opts...)
				},
			})
		})

		It("returns the error", func(ctx SpecContext) {
			Expect(rec.Reconcile(ctx, reconcile.Request{
				NamespacedName: types.NamespacedName{Namespace: "default", Name: "test-cluster"},
			})).Error().To(MatchError(internalServerError))
		})
	})

	When("a ready AgentClusterInstall exists", func() {
		var aci *unstructured.Unstructured

		BeforeEach(func() {
			aci = testutil.ToUnstructured(
				testutil.NewClusterInstall(testutil.WithClusterState(string(constants.ClusterStatusReady))),
				v1beta1.AgentClusterInstallGVK,
			)
			agent := testutil.ToUnstructured(
				testutil.NewAgent(testutil.WithAgentState(string(constants.HostStatusKnown))),
				v1beta1.AgentGVK,
			)
			namespace := &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "default"}}
			clientBuilder = clientBuilder.WithObjects(namespace, aci, agent)
		})

		It("publishes the step readiness and requeues", func(ctx SpecContext) {
			Expect(rec.Reconcile(ctx, RequestFor(aci))).To(RequeueAfter(config.DefaultRequeueInterval))

			annotations := getInstall(ctx, client.ObjectKeyFromObject(aci)).GetAnnotations()
			Expect(annotations).To(HaveKeyWithValue(constants.ClusterStatusAnnotation, string(constants.ClusterStatusReady)))

			published, err := clusterinstall.DecodeReadiness(annotations[constants.DefaultReadinessAnnotation])
			Expect(err).NotTo(HaveOccurred())
			for _, step := range wizard.CIM().Steps() {
				Expect(published).To(HaveKeyWithValue(step, constants.ReadinessReady))
			}
		})

		It("emits readiness events on the first publication only", func(ctx SpecContext) {
			Expect(rec.Reconcile(ctx, RequestFor(aci))).Error().NotTo(HaveOccurred())
			events := testutil.DrainEvents(recorder.Events)
			Expect(events).To(ContainElement(ContainSubstring(controllerutils.EventReasonStepReady)))
			Expect(events).NotTo(ContainElement(ContainSubstring(controllerutils.EventReasonStatusChange)))

			Expect(rec.Reconcile(ctx, RequestFor(aci))).Error().NotTo(HaveOccurred())
			Expect(testutil.DrainEvents(recorder.Events)).To(BeEmpty())
		})

		When("events are disabled", func() {
			BeforeEach(func() {
				cfg.EmitEvents = ptr.To(false)
			})

			It("still publishes the annotations", func(ctx SpecContext) {
				Expect(rec.Reconcile(ctx, RequestFor(aci))).Error().NotTo(HaveOccurred())
				Expect(testutil.DrainEvents(recorder.Events)).To(BeEmpty())
				Expect(getInstall(ctx, client.ObjectKeyFromObject(aci)).GetAnnotations()).
					To(HaveKey(constants.DefaultReadinessAnnotation))
			})
		})

		When("a custom readiness annotation and interval are configured", func() {
			BeforeEach(func() {
				cfg.ReadinessAnnotation = "example.com/readiness"
				cfg.RequeueInterval = metav1.Duration{Duration: time.Minute}
			})

			It("publishes under the configured annotation", func(ctx SpecContext) {
				Expect(rec.Reconcile(ctx, RequestFor(aci))).To(RequeueAfter(time.Minute))
				annotations := getInstall(ctx, client.ObjectKeyFromObject(aci)).GetAnnotations()
				Expect(annotations).To(HaveKey("example.com/readiness"))
				Expect(annotations).NotTo(HaveKey(constants.DefaultReadinessAnnotation))
			})
		})
	})

	When("listing agents is forbidden while the host list is still in flight", func() {
		var (
			aci     *unstructured.Unstructured
			hostErr error
		)

		BeforeEach(func() {
			hostErr = nil
			aci = testutil.ToUnstructured(
				testutil.NewClusterInstall(testutil.WithClusterState(string(constants.ClusterStatusReady))),
				v1beta1.AgentClusterInstallGVK,
			)
			namespace := &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "default"}}
			agentsListed := make(chan struct{})
			clientBuilder = clientBuilder.WithObjects(namespace, aci).WithInterceptorFuncs(interceptor.Funcs{
				List: func(ctx context.Context, c client.WithWatch, list client.ObjectList, opts ...client.ListOption) error {
					switch list.GetObjectKind().GroupVersionKind() {
					case v1beta1.AgentListGVK:
						defer close(agentsListed)
						return apierrors.NewForbidden(
							schema.GroupResource{Group: v1beta1.AgentGVK.Group, Resource: "agents"}, "", errors.New("denied"))
					case v1beta1.BareMetalHostListGVK:
						<-agentsListed
						select {
						case <-ctx.Done():
							hostErr = ctx.Err()
							return hostErr
						case <-time.After(50 * time.Millisecond):
						}
					}
					return c.List(ctx, list, opts...)
				},
			})
		})

		It("skips publication without cancelling the host list", func(ctx SpecContext) {
			Expect(rec.Reconcile(ctx, RequestFor(aci))).To(RequeueAfter(config.DefaultRequeueInterval))
			Expect(hostErr).NotTo(HaveOccurred())
			Expect(getInstall(ctx, client.ObjectKeyFromObject(aci)).GetAnnotations()).
				NotTo(HaveKey(constants.DefaultReadinessAnnotation))
		})
	})

	When("the namespace is gone", func() {
		var aci *unstructured.Unstructured

		BeforeEach(func() {
			aci = testutil.ToUnstructured(
				testutil.NewClusterInstall(testutil.WithClusterState(string(constants.ClusterStatusReady))),
				v1beta1.AgentClusterInstallGVK,
			)
			clientBuilder = clientBuilder.WithObjects(aci)
		})

		It("skips publication", func(ctx SpecContext) {
			Expect(rec.Reconcile(ctx, RequestFor(aci))).To(Equal(reconcile.Result{}))
			Expect(getInstall(ctx, client.ObjectKeyFromObject(aci)).GetAnnotations()).
				NotTo(HaveKey(constants.DefaultReadinessAnnotation))
		})
	})

	When("agents change", func() {
		var aci *unstructured.Unstructured

		BeforeEach(func() {
			aci = testutil.ToUnstructured(testutil.NewClusterInstall(), v1beta1.AgentClusterInstallGVK)
			other := testutil.ToUnstructured(
				testutil.NewClusterInstall(
					testutil.WithClusterInstallName("other-cluster"),
					testutil.WithClusterDeployment("other-cluster"),
				),
				v1beta1.AgentClusterInstallGVK,
			)
			clientBuilder = clientBuilder.WithObjects(aci, other)
		})

		It("maps a bound agent to its AgentClusterInstall", func(ctx SpecContext) {
			agent := testutil.ToUnstructured(testutil.NewAgent(), v1beta1.AgentGVK)
			Expect(rec.findInstallsForAgent(ctx, agent)).To(ConsistOf(RequestFor(aci)))
		})

		It("ignores unbound agents", func(ctx SpecContext) {
			agent := testutil.ToUnstructured(
				testutil.NewAgent(testutil.WithAgentClusterDeployment("", "")),
				v1beta1.AgentGVK,
			)
			Expect(rec.findInstallsForAgent(ctx, agent)).To(BeEmpty())
		})
	})
})

var _ = Describe("statusUpdated", func() {
	var base *unstructured.Unstructured

	BeforeEach(func() {
		base = testutil.ToUnstructured(
			testutil.NewClusterInstall(
				testutil.WithClusterState(string(constants.ClusterStatusInsufficient)),
				testutil.WithClusterConditions(
					testutil.Condition(constants.ConditionValidated, metav1.ConditionFalse, "ValidationsFailing"),
				),
			),
			v1beta1.AgentClusterInstallGVK,
		)
	})

	updated := func(mutate func(*v1beta1.AgentClusterInstall)) *unstructured.Unstructured {
		aci, err := controllerutils.FromUnstructured[v1beta1.AgentClusterInstall](base)
		Expect(err).NotTo(HaveOccurred())
		mutate(aci)
		return testutil.ToUnstructured(aci, v1beta1.AgentClusterInstallGVK)
	}

	It("drops annotation-only updates", func() {
		next := base.DeepCopy()
		next.SetAnnotations(map[string]string{constants.DefaultReadinessAnnotation: "{}"})
		Expect(statusUpdated(event.UpdateEvent{ObjectOld: base, ObjectNew: next})).To(BeFalse())
	})

	It("passes reported state changes", func() {
		next := updated(func(aci *v1beta1.AgentClusterInstall) {
			aci.Status.DebugInfo.State = string(constants.ClusterStatusReady)
		})
		Expect(statusUpdated(event.UpdateEvent{ObjectOld: base, ObjectNew: next})).To(BeTrue())
	})

	It("passes condition changes", func() {
		next := updated(func(aci *v1beta1.AgentClusterInstall) {
			aci.Status.Conditions[0].Status = metav1.ConditionTrue
			aci.Status.Conditions[0].Reason = "ValidationsPassing"
		})
		Expect(statusUpdated(event.UpdateEvent{ObjectOld: base, ObjectNew: next})).To(BeTrue())
	})

	It("passes updates whose status cannot be decoded", func() {
		next := base.DeepCopy()
		Expect(unstructured.SetNestedField(next.Object, "not-a-list", "status", "conditions")).To(Succeed())
		Expect(statusUpdated(event.UpdateEvent{ObjectOld: base, ObjectNew: next})).To(BeTrue())
	})

	It("passes validation changes", func() {
		next := updated(func(aci *v1beta1.AgentClusterInstall) {
			aci.Status.ValidationsInfo = v1beta1.ValidationsInfo{
				"network": {{ID: "api-vips-defined", Status: "success"}},
			}
		})
		Expect(statusUpdated(event.UpdateEvent{ObjectOld: base, ObjectNew: next})).To(BeTrue())
	})
})
