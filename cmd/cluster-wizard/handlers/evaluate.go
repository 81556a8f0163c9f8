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

package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/clusterinstall"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
	controllerutils "github.com/amd-enterprise-ai/cluster-wizard-engine/internal/controller/utils"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/readiness"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/status"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/wizard"
)

// EvaluateOptions selects the cluster to evaluate and how to print the result.
type EvaluateOptions struct {
	// Files are manifest paths. Ignored when Live is set.
	Files []string

	// Name selects the AgentClusterInstall. Required when Live is set.
	Name      string
	Namespace string

	// Live reads the resources from the cluster of the current kubeconfig.
	Live bool

	Flavor wizard.Flavor
	Output string
}

// StepReport is the readiness of one wizard step.
type StepReport struct {
	Step        string                  `json:"step"`
	Readiness   constants.Readiness     `json:"readiness"`
	StepStatus  constants.ClusterStatus `json:"stepStatus,omitempty"`
	SoftWarning bool                    `json:"softWarning,omitempty"`
}

// HostReport is the presented status of one agent.
type HostReport struct {
	Name     string               `json:"name"`
	Status   constants.HostStatus `json:"status"`
	Sublabel string               `json:"sublabel,omitempty"`
}

// BareMetalHostReport is the presented status of one bare metal host.
type BareMetalHostReport struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// EvaluationReport is the result of evaluating one AgentClusterInstall.
type EvaluationReport struct {
	Namespace      string                  `json:"namespace"`
	Name           string                  `json:"name"`
	Flavor         wizard.Flavor           `json:"flavor"`
	Status         constants.ClusterStatus `json:"status"`
	StatusInfo     string                  `json:"statusInfo,omitempty"`
	Steps          []StepReport            `json:"steps"`
	Hosts          []HostReport            `json:"hosts,omitempty"`
	BareMetalHosts []BareMetalHostReport   `json:"bareMetalHosts,omitempty"`

	// Annotations are the annotations the controller would publish.
	Annotations map[string]string `json:"annotations"`
}

// Evaluate evaluates every wizard step of one AgentClusterInstall and prints
// the report to out.
func Evaluate(ctx context.Context, stdin io.Reader, out io.Writer, opts EvaluateOptions) error {
	if err := validateOutput(opts.Output); err != nil {
		return err
	}
	steps, err := wizard.ForFlavor(opts.Flavor)
	if err != nil {
		return err
	}
	logger := log.FromContext(ctx)

	reconciler := newClusterInstallReconciler(steps, logger)
	reconcileCtx, fetched, err := loadClusterInstall(ctx, stdin, reconciler, opts)
	if err != nil {
		return err
	}

	obs := reconciler.ComposeState(ctx, reconcileCtx, fetched)
	if obs.Evaluations() == nil {
		return fmt.Errorf("AgentClusterInstall %s/%s could not be evaluated",
			reconcileCtx.Object.GetNamespace(), reconcileCtx.Object.GetName())
	}
	plan := reconciler.PlanResources(ctx, reconcileCtx, obs)

	report := buildEvaluationReport(reconcileCtx.Object, steps.Flavor(), obs, plan.Annotations())
	if opts.Output != OutputText {
		return writeStructured(out, opts.Output, report)
	}
	_, err = io.WriteString(out, renderEvaluation(paletteFor(out), report))
	return err
}

func newClusterInstallReconciler(steps *wizard.StepsMap, logger logr.Logger) *clusterinstall.Reconciler {
	return &clusterinstall.Reconciler{
		Evaluator:           readiness.NewEvaluator(steps, logger.WithName("evaluator")),
		Classifier:          status.NewClassifier(logger.WithName("classifier")),
		ReadinessAnnotation: constants.DefaultReadinessAnnotation,
	}
}

// loadClusterInstall reads the AgentClusterInstall and its hosts from the
// manifests or, in live mode, from the cluster.
func loadClusterInstall(
	ctx context.Context,
	stdin io.Reader,
	reconciler *clusterinstall.Reconciler,
	opts EvaluateOptions,
) (clusterinstall.ReconcileContext, clusterinstall.FetchResult, error) {
	if opts.Live {
		return fetchClusterInstall(ctx, reconciler, opts)
	}

	manifests, err := ReadManifests(stdin, opts.Files...)
	if err != nil {
		return clusterinstall.ReconcileContext{}, clusterinstall.FetchResult{}, err
	}
	obj, err := manifests.ClusterInstall(opts.Name)
	if err != nil {
		return clusterinstall.ReconcileContext{}, clusterinstall.FetchResult{}, err
	}
	aci, err := controllerutils.FromUnstructured[v1beta1.AgentClusterInstall](obj)
	if err != nil {
		return clusterinstall.ReconcileContext{}, clusterinstall.FetchResult{}, err
	}

	fetched := clusterinstall.NewFetchResult(aci, manifests.AgentsFor(aci), manifests.BareMetalHostsIn(aci.Namespace))
	return clusterinstall.ReconcileContext{Object: obj}, fetched, nil
}

func fetchClusterInstall(
	ctx context.Context,
	reconciler *clusterinstall.Reconciler,
	opts EvaluateOptions,
) (clusterinstall.ReconcileContext, clusterinstall.FetchResult, error) {
	if opts.Name == "" {
		return clusterinstall.ReconcileContext{}, clusterinstall.FetchResult{}, errors.New("--name is required with --live")
	}
	c, err := newClient()
	if err != nil {
		return clusterinstall.ReconcileContext{}, clusterinstall.FetchResult{}, err
	}

	obj := &unstructured.Unstructured{}
	obj.SetGroupVersionKind(v1beta1.AgentClusterInstallGVK)
	result := controllerutils.Fetch(ctx, c, client.ObjectKey{Namespace: opts.Namespace, Name: opts.Name}, obj)
	if result.HasError() {
		return clusterinstall.ReconcileContext{}, clusterinstall.FetchResult{},
			fmt.Errorf("failed to get AgentClusterInstall %s/%s: %w", opts.Namespace, opts.Name, result.Error)
	}

	reconcileCtx := clusterinstall.ReconcileContext{Object: obj}
	fetched := reconciler.FetchRemoteState(ctx, c, reconcileCtx)
	if errs := fetched.Errors(); len(errs) > 0 {
		return clusterinstall.ReconcileContext{}, clusterinstall.FetchResult{}, errors.Join(errs...)
	}
	return reconcileCtx, fetched, nil
}

// newClient returns a client for the cluster of the current kubeconfig.
// Installer resources are read as unstructured objects, so no scheme
// registration is needed.
func newClient() (client.Client, error) {
	cfg, err := ctrl.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	c, err := client.New(cfg, client.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}

func buildEvaluationReport(
	obj *unstructured.Unstructured,
	flavor wizard.Flavor,
	obs clusterinstall.Observation,
	annotations map[string]string,
) EvaluationReport {
	report := EvaluationReport{
		Namespace:   obj.GetNamespace(),
		Name:        obj.GetName(),
		Flavor:      flavor,
		Status:      obs.ClusterStatus(),
		StatusInfo:  obs.ClusterStatusInfo(),
		Annotations: annotations,
	}
	for _, evaluation := range obs.Evaluations() {
		report.Steps = append(report.Steps, StepReport{
			Step:        evaluation.Step,
			Readiness:   evaluation.Readiness,
			StepStatus:  evaluation.StepStatus,
			SoftWarning: evaluation.SoftWarning,
		})
	}
	for _, host := range obs.Hosts() {
		report.Hosts = append(report.Hosts, HostReport{Name: host.Name, Status: host.Status, Sublabel: host.Sublabel})
	}
	for _, bmh := range obs.BareMetalHosts() {
		report.BareMetalHosts = append(report.BareMetalHosts, BareMetalHostReport{
			Name:    bmh.Name,
			Status:  bmh.State.Key,
			Message: bmh.State.ErrorMessage,
		})
	}
	return report
}

func renderEvaluation(p palette, report EvaluationReport) string {
	var b strings.Builder

	b.WriteString(p.title.Render(fmt.Sprintf("Cluster %s/%s", report.Namespace, report.Name)))
	b.WriteString("\n")
	statusLine := fmt.Sprintf("  status: %s", displayStatus(string(report.Status)))
	if report.StatusInfo != "" {
		statusLine += " (" + report.StatusInfo + ")"
	}
	b.WriteString(p.dim.Render(statusLine))
	b.WriteString("\n\n")

	b.WriteString(p.section.Render(fmt.Sprintf("Wizard steps (%s)", report.Flavor)))
	b.WriteString("\n")
	for _, step := range report.Steps {
		readinessStyle := p.good
		if step.Readiness != constants.ReadinessReady {
			readinessStyle = p.bad
		}
		line := fmt.Sprintf("  %-20s %s", step.Step, readinessStyle.Render(string(step.Readiness)))
		if step.SoftWarning {
			line += " " + p.warn.Render("(soft validations failing)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(report.Hosts) > 0 {
		b.WriteString("\n")
		b.WriteString(p.section.Render("Hosts"))
		b.WriteString("\n")
		for _, host := range report.Hosts {
			line := fmt.Sprintf("  %-20s %s", host.Name, host.Status)
			if host.Sublabel != "" {
				line += " " + p.warn.Render("("+host.Sublabel+")")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if len(report.BareMetalHosts) > 0 {
		b.WriteString("\n")
		b.WriteString(p.section.Render("Bare metal hosts"))
		b.WriteString("\n")
		for _, bmh := range report.BareMetalHosts {
			line := fmt.Sprintf("  %-20s %s", bmh.Name, bmh.Status)
			if bmh.Message != "" {
				line += " " + p.bad.Render(bmh.Message)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return b.String()
}

func displayStatus(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
