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

package v1beta1

// DebugInfo exposes the raw installer state of a resource.
type DebugInfo struct {
	// State is the installer's status value (e.g. "insufficient", "known").
	// +optional
	State string `json:"state,omitempty"`

	// StateInfo is the human readable explanation of State.
	// +optional
	StateInfo string `json:"stateInfo,omitempty"`
}

// Validation is a single named check reported by the installer.
type Validation struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ValidationsInfo groups validations by category ("network", "hardware", "hostsData", ...).
type ValidationsInfo map[string][]Validation

// DeepCopy returns an independent copy of the validations.
func (in ValidationsInfo) DeepCopy() ValidationsInfo {
	if in == nil {
		return nil
	}
	out := make(ValidationsInfo, len(in))
	for group, validations := range in {
		if validations == nil {
			out[group] = nil
			continue
		}
		out[group] = append([]Validation(nil), validations...)
	}
	return out
}

// ClusterReference points at a ClusterDeployment.
type ClusterReference struct {
	Name      string `json:"name,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}
