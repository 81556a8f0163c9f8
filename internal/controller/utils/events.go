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
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
)

type EventLevel string

const (
	LevelNone    EventLevel = ""
	LevelNormal  EventLevel = EventLevel(corev1.EventTypeNormal)
	LevelWarning EventLevel = EventLevel(corev1.EventTypeWarning)
)

const (
	EventReasonStepReady    = "WizardStepReady"
	EventReasonStepNotReady = "WizardStepNotReady"
	EventReasonStatusChange = "ClusterStatusChanged"
)

// ReadinessTransition is a change of one wizard step's readiness.
type ReadinessTransition struct {
	Step string
	Old  constants.Readiness
	New  constants.Readiness
}

// DiffReadiness returns the transitions between two readiness maps in the
// order of steps. Steps missing from old are reported as new transitions.
func DiffReadiness(steps []string, old, new map[string]constants.Readiness) []ReadinessTransition {
	var transitions []ReadinessTransition
	for _, step := range steps {
		next, ok := new[step]
		if !ok {
			continue
		}
		if previous, seen := old[step]; !seen || previous != next {
			transitions = append(transitions, ReadinessTransition{Step: step, Old: old[step], New: next})
		}
	}
	return transitions
}

// EmitReadinessTransitions records one event per readiness transition.
// Steps becoming not ready after having been ready are warnings.
func EmitReadinessTransitions(recorder record.EventRecorder, obj runtime.Object, transitions []ReadinessTransition) {
	if recorder == nil {
		return
	}
	for _, transition := range transitions {
		if transition.New == constants.ReadinessReady {
			recorder.Event(obj, string(LevelNormal), EventReasonStepReady,
				fmt.Sprintf("Wizard step %s is ready", transition.Step))
			continue
		}
		level := LevelNormal
		if transition.Old == constants.ReadinessReady {
			level = LevelWarning
		}
		recorder.Event(obj, string(level), EventReasonStepNotReady,
			fmt.Sprintf("Wizard step %s is not ready", transition.Step))
	}
}

// StatusEventLevel returns the event level for a cluster entering status.
func StatusEventLevel(status constants.ClusterStatus) EventLevel {
	switch status {
	case constants.ClusterStatusError, constants.ClusterStatusCancelled:
		return LevelWarning
	case "":
		return LevelNone
	}
	return LevelNormal
}

// EmitStatusChange records an event when the classified cluster status changes.
func EmitStatusChange(recorder record.EventRecorder, obj runtime.Object, old, new constants.ClusterStatus, info string) {
	if recorder == nil || old == new {
		return
	}
	level := StatusEventLevel(new)
	if level == LevelNone {
		return
	}
	message := fmt.Sprintf("Cluster status changed from %q to %q", old, new)
	if info != "" {
		message += ": " + info
	}
	recorder.Event(obj, string(level), EventReasonStatusChange, message)
}
