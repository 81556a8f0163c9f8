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

package status

import (
	"slices"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/conditions"
)

// Rule maps one condition state to a status. Rules are evaluated in order and
// the first match wins, so the position of a rule in its table is its priority.
type Rule[S ~string] struct {
	// Condition is the condition type the rule inspects.
	Condition string
	// Status is the required condition status.
	Status metav1.ConditionStatus
	// Reasons lists accepted reasons. Empty accepts any reason.
	Reasons []string
	// Outcome is the status produced when the rule matches.
	Outcome S
}

// Matches reports whether the rule applies to the reduced condition set.
func (r Rule[S]) Matches(byType conditions.ByType) bool {
	condition := byType.Get(r.Condition)
	if condition == nil || condition.Status != r.Status {
		return false
	}
	return len(r.Reasons) == 0 || slices.Contains(r.Reasons, condition.Reason)
}

// FirstMatch returns the index of the first matching rule, or -1.
func FirstMatch[S ~string](rules []Rule[S], byType conditions.ByType) int {
	for i, rule := range rules {
		if rule.Matches(byType) {
			return i
		}
	}
	return -1
}
