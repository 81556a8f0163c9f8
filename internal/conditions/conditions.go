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

// Package conditions flattens Kubernetes status condition lists into lookups keyed by type.
package conditions

import (
	"slices"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ByType is a reduced condition set keyed by condition type.
type ByType map[string]metav1.Condition

// Reduce flattens conditions into a map keyed by type. A nil or empty list
// yields an empty map. When several conditions share a type the last one wins.
func Reduce(conditions []metav1.Condition) ByType {
	byType := make(ByType, len(conditions))
	for _, condition := range conditions {
		byType[condition.Type] = condition
	}
	return byType
}

// ReduceStrict behaves like Reduce but also returns the types that are not in
// known, in input order and without duplicates. Unknown conditions are still
// kept in the map.
func ReduceStrict(conditions []metav1.Condition, known ...string) (ByType, []string) {
	byType := Reduce(conditions)
	var unknown []string
	for _, condition := range conditions {
		if slices.Contains(known, condition.Type) || slices.Contains(unknown, condition.Type) {
			continue
		}
		unknown = append(unknown, condition.Type)
	}
	return byType, unknown
}

// Get returns the condition of the given type, or nil if it is absent.
func (c ByType) Get(conditionType string) *metav1.Condition {
	condition, ok := c[conditionType]
	if !ok {
		return nil
	}
	return &condition
}

// Has reports whether a condition of the given type exists.
func (c ByType) Has(conditionType string) bool {
	_, ok := c[conditionType]
	return ok
}

// HasAll reports whether all the given condition types exist.
func (c ByType) HasAll(conditionTypes ...string) bool {
	return len(c.Missing(conditionTypes...)) == 0
}

// Missing returns the given condition types that are absent, in argument order.
func (c ByType) Missing(conditionTypes ...string) []string {
	var missing []string
	for _, conditionType := range conditionTypes {
		if !c.Has(conditionType) {
			missing = append(missing, conditionType)
		}
	}
	return missing
}

// Matches reports whether the condition exists with the given status and reason.
// An empty reason matches any reason.
func (c ByType) Matches(conditionType string, status metav1.ConditionStatus, reason string) bool {
	condition, ok := c[conditionType]
	if !ok || condition.Status != status {
		return false
	}
	return reason == "" || condition.Reason == reason
}

// IsTrue reports whether the condition exists and is True.
func (c ByType) IsTrue(conditionType string) bool {
	return c.Matches(conditionType, metav1.ConditionTrue, "")
}

// IsFalse reports whether the condition exists and is False.
func (c ByType) IsFalse(conditionType string) bool {
	return c.Matches(conditionType, metav1.ConditionFalse, "")
}

// Message returns the message of the condition, or an empty string if it is absent.
func (c ByType) Message(conditionType string) string {
	return c[conditionType].Message
}

// Types returns the condition types in sorted order.
func (c ByType) Types() []string {
	types := make([]string, 0, len(c))
	for conditionType := range c {
		types = append(types, conditionType)
	}
	slices.Sort(types)
	return types
}

// Transition records a change of a condition between two snapshots.
type Transition struct {
	Old *metav1.Condition // nil if this condition is new
	New *metav1.Condition // nil if this condition was removed
}

// Diff returns transitions between two reduced sets. A transition is reported
// when a type appears, disappears, or changes Status or Reason. Transitions are
// sorted by type.
func Diff(oldConditions, newConditions ByType) []Transition {
	var transitions []Transition

	for _, conditionType := range newConditions.Types() {
		newCondition := newConditions[conditionType]
		oldCondition, found := oldConditions[conditionType]
		if !found {
			transitions = append(transitions, Transition{New: &newCondition})
			continue
		}
		if oldCondition.Status == newCondition.Status && oldCondition.Reason == newCondition.Reason {
			continue
		}
		transitions = append(transitions, Transition{Old: &oldCondition, New: &newCondition})
	}

	for _, conditionType := range oldConditions.Types() {
		if newConditions.Has(conditionType) {
			continue
		}
		oldCondition := oldConditions[conditionType]
		transitions = append(transitions, Transition{Old: &oldCondition})
	}

	return transitions
}
