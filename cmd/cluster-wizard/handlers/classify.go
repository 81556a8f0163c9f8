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
	"fmt"
	"io"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/conditions"
	controllerutils "github.com/amd-enterprise-ai/cluster-wizard-engine/internal/controller/utils"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/status"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/utils"
)

// ClassifyOptions selects the manifests to classify.
type ClassifyOptions struct {
	Files []string

	// ExcludeApprovalOverride reports unapproved agents by their conditions.
	ExcludeApprovalOverride bool

	Output string
}

// Classification is the status of one resource.
type Classification struct {
	Kind      string `json:"kind"`
	Namespace string `json:"namespace,omitempty"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Info      string `json:"info,omitempty"`

	// Conditions lists the reduced conditions of kinds without a status table.
	Conditions []string `json:"conditions,omitempty"`
}

// Classify derives the status of every resource in the manifests.
func Classify(ctx context.Context, stdin io.Reader, out io.Writer, opts ClassifyOptions) error {
	if err := validateOutput(opts.Output); err != nil {
		return err
	}
	manifests, err := ReadManifests(stdin, opts.Files...)
	if err != nil {
		return err
	}

	logger := log.FromContext(ctx)
	classifier := status.NewClassifier(logger.WithName("classifier"))

	var results []Classification
	for _, obj := range manifests.Objects {
		result, err := classifyObject(classifier, obj, opts.ExcludeApprovalOverride)
		if err != nil {
			return fmt.Errorf("failed to classify %s %s: %w", obj.GetKind(), obj.GetName(), err)
		}
		results = append(results, result)
	}
	utils.Debug(logger, "Classified resources", "count", len(results))

	if opts.Output != OutputText {
		return writeStructured(out, opts.Output, results)
	}
	_, err = io.WriteString(out, renderClassifications(paletteFor(out), results))
	return err
}

func classifyObject(classifier *status.Classifier, obj *unstructured.Unstructured, excludeApprovalOverride bool) (Classification, error) {
	result := Classification{Kind: obj.GetKind(), Namespace: obj.GetNamespace(), Name: obj.GetName()}

	switch obj.GroupVersionKind().GroupKind() {
	case v1beta1.AgentClusterInstallGVK.GroupKind():
		aci, err := controllerutils.FromUnstructured[v1beta1.AgentClusterInstall](obj)
		if err != nil {
			return result, err
		}
		classified := classifier.ClassifyClusterInstall(aci)
		result.Status, result.Info = string(classified.Status), classified.Info
	case v1beta1.AgentGVK.GroupKind():
		agent, err := controllerutils.FromUnstructured[v1beta1.Agent](obj)
		if err != nil {
			return result, err
		}
		classified := classifier.ClassifyAgent(agent, excludeApprovalOverride)
		result.Status, result.Info = string(classified.Status), classified.Info
	case v1beta1.BareMetalHostGVK.GroupKind():
		bmh, err := controllerutils.FromUnstructured[v1beta1.BareMetalHost](obj)
		if err != nil {
			return result, err
		}
		state := status.BMHStatus(bmh)
		result.Status, result.Info = state.Key, state.ErrorMessage
	default:
		conds, err := objectConditions(obj)
		if err != nil {
			return result, err
		}
		byType := conditions.Reduce(conds)
		for _, conditionType := range byType.Types() {
			condition := byType[conditionType]
			result.Conditions = append(result.Conditions,
				fmt.Sprintf("%s=%s (%s)", condition.Type, condition.Status, condition.Reason))
		}
	}
	return result, nil
}

// objectConditions decodes status.conditions of any kind.
func objectConditions(obj *unstructured.Unstructured) ([]metav1.Condition, error) {
	raw, found, err := unstructured.NestedSlice(obj.Object, "status", "conditions")
	if err != nil || !found {
		return nil, err
	}
	conds := make([]metav1.Condition, 0, len(raw))
	for _, item := range raw {
		content, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("condition %v is not an object", item)
		}
		var condition metav1.Condition
		if err := runtime.DefaultUnstructuredConverter.FromUnstructured(content, &condition); err != nil {
			return nil, err
		}
		conds = append(conds, condition)
	}
	return conds, nil
}

func renderClassifications(p palette, results []Classification) string {
	var b strings.Builder
	for _, result := range results {
		name := result.Name
		if result.Namespace != "" {
			name = result.Namespace + "/" + name
		}
		b.WriteString(p.title.Render(fmt.Sprintf("%s %s", result.Kind, name)))
		b.WriteString("\n")
		if len(result.Conditions) > 0 || result.Status == "" {
			for _, condition := range result.Conditions {
				b.WriteString(p.dim.Render("  " + condition))
				b.WriteString("\n")
			}
			continue
		}
		line := "  status: " + p.section.Render(result.Status)
		if result.Info != "" {
			line += " " + p.dim.Render("("+result.Info+")")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
