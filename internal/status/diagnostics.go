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
	"fmt"
	"strings"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/conditions"
)

// MissingConditionsError reports a resource whose required condition types
// have not been synced yet. It is never returned to callers of the classifier;
// it is attached to the Result for logging.
type MissingConditionsError struct {
	Resource string
	Missing  []string
}

func (e *MissingConditionsError) Error() string {
	return fmt.Sprintf("%s conditions are missing: %s", e.Resource, strings.Join(e.Missing, ", "))
}

// UnmappedConditionsError reports a complete condition set that matched no
// classification rule. It usually means the backend introduced a new reason.
type UnmappedConditionsError struct {
	Resource   string
	Conditions conditions.ByType
}

func (e *UnmappedConditionsError) Error() string {
	parts := make([]string, 0, len(e.Conditions))
	for _, conditionType := range e.Conditions.Types() {
		condition := e.Conditions[conditionType]
		parts = append(parts, fmt.Sprintf("%s=%s/%s", condition.Type, condition.Status, condition.Reason))
	}
	return fmt.Sprintf("unhandled %s conditions: %s", e.Resource, strings.Join(parts, ", "))
}
