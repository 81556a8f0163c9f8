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
	"reflect"
	"testing"

	"k8s.io/client-go/tools/record"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/testutil"
)

func TestDiffReadiness(t *testing.T) {
	steps := []string{"cluster-details", "networking", "review"}
	ready, notReady := constants.ReadinessReady, constants.ReadinessNotReady

	tests := []struct {
		name     string
		old      map[string]constants.Readiness
		new      map[string]constants.Readiness
		expected []ReadinessTransition
	}{
		{
			name: "first evaluation",
			new:  map[string]constants.Readiness{"cluster-details": ready, "review": notReady},
			expected: []ReadinessTransition{
				{Step: "cluster-details", New: ready},
				{Step: "review", New: notReady},
			},
		},
		{
			name: "no change",
			old:  map[string]constants.Readiness{"networking": ready},
			new:  map[string]constants.Readiness{"networking": ready},
		},
		{
			name: "changes in step order",
			old:  map[string]constants.Readiness{"review": notReady, "networking": ready, "cluster-details": ready},
			new:  map[string]constants.Readiness{"review": ready, "networking": notReady, "cluster-details": ready},
			expected: []ReadinessTransition{
				{Step: "networking", Old: ready, New: notReady},
				{Step: "review", Old: notReady, New: ready},
			},
		},
		{
			name: "unknown steps are ignored",
			new:  map[string]constants.Readiness{"storage": ready},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiffReadiness(steps, tt.old, tt.new)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("DiffReadiness() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestEmitReadinessTransitions(t *testing.T) {
	recorder := record.NewFakeRecorder(10)
	aci := testutil.ToUnstructured(testutil.NewClusterInstall(), v1beta1.AgentClusterInstallGVK)

	EmitReadinessTransitions(recorder, aci, []ReadinessTransition{
		{Step: "cluster-details", New: constants.ReadinessReady},
		{Step: "networking", Old: constants.ReadinessReady, New: constants.ReadinessNotReady},
		{Step: "review", New: constants.ReadinessNotReady},
	})

	events := testutil.DrainEvents(recorder.Events)
	expected := []string{
		"Normal WizardStepReady Wizard step cluster-details is ready",
		"Warning WizardStepNotReady Wizard step networking is not ready",
		"Normal WizardStepNotReady Wizard step review is not ready",
	}
	if !reflect.DeepEqual(events, expected) {
		t.Errorf("events = %v, expected %v", events, expected)
	}

	EmitReadinessTransitions(nil, aci, []ReadinessTransition{{Step: "review", New: constants.ReadinessReady}})
}

func TestEmitStatusChange(t *testing.T) {
	tests := []struct {
		name     string
		old      constants.ClusterStatus
		new      constants.ClusterStatus
		info     string
		expected []string
	}{
		{
			name:     "ready",
			old:      constants.ClusterStatusInsufficient,
			new:      constants.ClusterStatusReady,
			expected: []string{`Normal ClusterStatusChanged Cluster status changed from "insufficient" to "ready"`},
		},
		{
			name:     "error with info",
			old:      constants.ClusterStatusInstalling,
			new:      constants.ClusterStatusError,
			info:     "bootstrap failed",
			expected: []string{`Warning ClusterStatusChanged Cluster status changed from "installing" to "error": bootstrap failed`},
		},
		{
			name: "unchanged",
			old:  constants.ClusterStatusReady,
			new:  constants.ClusterStatusReady,
		},
		{
			name: "status cleared",
			old:  constants.ClusterStatusReady,
			new:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := record.NewFakeRecorder(10)
			aci := testutil.ToUnstructured(testutil.NewClusterInstall(), v1beta1.AgentClusterInstallGVK)
			EmitStatusChange(recorder, aci, tt.old, tt.new, tt.info)
			if got := testutil.DrainEvents(recorder.Events); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("EmitStatusChange() events = %v, expected %v", got, tt.expected)
			}
		})
	}
}
