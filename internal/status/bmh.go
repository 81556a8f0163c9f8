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
	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
)

// BMHStatusError is the key used for bare metal hosts reporting an error.
const BMHStatusError = "bmh-error"

// BMHStatusPending is the fallback key for hosts without a known provisioning state.
const BMHStatusPending = "pending"

// knownBMHStates are the metal3 provisioning states with a dedicated presentation.
var knownBMHStates = map[string]struct{}{
	BMHStatusError:               {},
	BMHStatusPending:             {},
	"unmanaged":                  {},
	"registering":                {},
	"match profile":              {},
	"preparing":                  {},
	"ready":                      {},
	"available":                  {},
	"provisioning":               {},
	"provisioned":                {},
	"externally provisioned":     {},
	"deprovisioning":             {},
	"inspecting":                 {},
	"powering off before delete": {},
	"deleting":                   {},
}

// BMHStatusKey returns bmh-error for failed hosts, otherwise the provisioning
// state. The result is empty when neither is set.
func BMHStatusKey(bmh *v1beta1.BareMetalHost) string {
	if bmh.Status.ErrorType != "" {
		return BMHStatusError
	}
	return bmh.Status.Provisioning.State
}

// BMHState is the presentation status of a bare metal host.
type BMHState struct {
	Key          string
	ErrorMessage string
}

// BMHStatus resolves the presentation status of a bare metal host, falling
// back to pending for unset or unrecognised states.
func BMHStatus(bmh *v1beta1.BareMetalHost) BMHState {
	key := BMHStatusKey(bmh)
	if _, ok := knownBMHStates[key]; !ok {
		key = BMHStatusPending
	}
	return BMHState{Key: key, ErrorMessage: bmh.Status.ErrorMessage}
}
