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

// HealthState summarizes whether a fetched component could be observed.
type HealthState string

const (
	HealthStateHealthy  HealthState = "Healthy"
	HealthStateMissing  HealthState = "Missing"
	HealthStateDegraded HealthState = "Degraded"
)

// ComponentHealth describes the health of one fetched component, e.g. the
// agents of a cluster or its bare metal hosts.
type ComponentHealth struct {
	// Component is the logical name of this component: "ClusterInstall", "Agents", "BareMetalHosts".
	Component string

	// State is the current state of this component (optional).
	// If empty, the state is derived from Errors using DeriveStateFromErrors.
	State HealthState

	// Reason is a machine-readable reason code (optional).
	// If empty and Errors is non-empty, it is derived from the first categorized error.
	Reason string

	// Message is a human-readable description (optional).
	Message string

	// Errors are the raw errors that caused this state. They are categorized
	// by the pipeline to decide whether to publish or requeue.
	Errors []error
}

// ComponentHealthProvider is implemented by observation types that surface per-component health.
type ComponentHealthProvider interface {
	GetComponentHealth() []ComponentHealth
}

// ToComponentHealth reports the fetch result as the health of component.
func (fr FetchResult[T]) ToComponentHealth(component string) ComponentHealth {
	if fr.Error == nil {
		return ComponentHealth{Component: component, State: HealthStateHealthy}
	}
	return ComponentHealth{Component: component, Errors: []error{fr.Error}}
}

// GetState returns the component's state, deriving it from errors if not explicitly set.
func (ch ComponentHealth) GetState() HealthState {
	if ch.State != "" {
		return ch.State
	}
	return DeriveStateFromErrors(ch.Errors)
}

// GetReason returns the component's reason, deriving it from the first error if not explicitly set.
func (ch ComponentHealth) GetReason() string {
	if ch.Reason != "" {
		return ch.Reason
	}
	if len(ch.Errors) > 0 {
		return CategorizeError(ch.Errors[0]).Reason()
	}
	return string(HealthStateHealthy)
}

// GetMessage returns the component's message, deriving it from the first error if not explicitly set.
func (ch ComponentHealth) GetMessage() string {
	if ch.Message != "" {
		return ch.Message
	}
	if len(ch.Errors) > 0 {
		return CategorizeError(ch.Errors[0]).UserMessage()
	}
	return ""
}

// DeriveStateFromErrors infers a HealthState from a list of raw errors.
//
// Derivation rules:
//   - No errors → Healthy
//   - Only MissingResource errors → Missing
//   - Anything else → Degraded
func DeriveStateFromErrors(errs []error) HealthState {
	state := HealthStateHealthy
	for _, err := range errs {
		if err == nil {
			continue
		}
		if CategorizeError(err).Category() != ErrorCategoryMissingResource {
			return HealthStateDegraded
		}
		state = HealthStateMissing
	}
	return state
}
