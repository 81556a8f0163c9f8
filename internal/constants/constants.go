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

package constants

const (
	// AnnotationDomain is the base domain used for annotations written by the engine.
	AnnotationDomain = "wizard.agent-install.openshift.io"

	// DefaultReadinessAnnotation carries the JSON encoded step readiness map on an AgentClusterInstall.
	DefaultReadinessAnnotation = AnnotationDomain + "/step-readiness"

	// ClusterStatusAnnotation carries the cluster status the readiness map was computed from.
	ClusterStatusAnnotation = AnnotationDomain + "/cluster-status"

	// MetricsNamespace prefixes every metric exported by the engine.
	MetricsNamespace = "wizard_engine"
)

// ClusterStatus is the canonical installation status of an AgentClusterInstall.
type ClusterStatus string

const (
	ClusterStatusInsufficient                ClusterStatus = "insufficient"
	ClusterStatusReady                       ClusterStatus = "ready"
	ClusterStatusError                       ClusterStatus = "error"
	ClusterStatusPreparingForInstallation    ClusterStatus = "preparing-for-installation"
	ClusterStatusPendingForInput             ClusterStatus = "pending-for-input"
	ClusterStatusInstalling                  ClusterStatus = "installing"
	ClusterStatusFinalizing                  ClusterStatus = "finalizing"
	ClusterStatusInstalled                   ClusterStatus = "installed"
	ClusterStatusAddingHosts                 ClusterStatus = "adding-hosts"
	ClusterStatusCancelled                   ClusterStatus = "cancelled"
	ClusterStatusInstallingPendingUserAction ClusterStatus = "installing-pending-user-action"
)

// HostStatus is the canonical status of a single host (Agent).
type HostStatus string

const (
	HostStatusDiscovering                 HostStatus = "discovering"
	HostStatusKnown                       HostStatus = "known"
	HostStatusDisconnected                HostStatus = "disconnected"
	HostStatusInsufficient                HostStatus = "insufficient"
	HostStatusDisabled                    HostStatus = "disabled"
	HostStatusPreparingForInstallation    HostStatus = "preparing-for-installation"
	HostStatusPreparingFailed             HostStatus = "preparing-failed"
	HostStatusPreparingSuccessful         HostStatus = "preparing-successful"
	HostStatusPendingForInput             HostStatus = "pending-for-input"
	HostStatusInstalling                  HostStatus = "installing"
	HostStatusInstallingInProgress        HostStatus = "installing-in-progress"
	HostStatusInstallingPendingUserAction HostStatus = "installing-pending-user-action"
	HostStatusResettingPendingUserAction  HostStatus = "resetting-pending-user-action"
	HostStatusInstalled                   HostStatus = "installed"
	HostStatusError                       HostStatus = "error"
	HostStatusResetting                   HostStatus = "resetting"
	HostStatusAddedToExistingCluster      HostStatus = "added-to-existing-cluster"
	HostStatusCancelled                   HostStatus = "cancelled"
	HostStatusBinding                     HostStatus = "binding"
	HostStatusUnbinding                   HostStatus = "unbinding"
	HostStatusUnbindingPendingUserAction  HostStatus = "unbinding-pending-user-action"
	HostStatusKnownUnbound                HostStatus = "known-unbound"
	HostStatusDisconnectedUnbound         HostStatus = "disconnected-unbound"
	HostStatusInsufficientUnbound         HostStatus = "insufficient-unbound"
	HostStatusDisabledUnbound             HostStatus = "disabled-unbound"
	HostStatusDiscoveringUnbound          HostStatus = "discovering-unbound"
	HostStatusReclaiming                  HostStatus = "reclaiming"
	HostStatusReclaimingRebooting         HostStatus = "reclaiming-rebooting"

	// HostStatusDiscovered is shown for hosts that have not been approved yet.
	// It never comes out of the host rule table.
	HostStatusDiscovered HostStatus = "discovered"

	// HostStatusSpecSyncErr is shown when the agent spec could not be synced by the installer.
	HostStatusSpecSyncErr HostStatus = "specSyncErr"
)

// ValidationStatus is the result of a single installer validation.
type ValidationStatus string

const (
	ValidationSuccess  ValidationStatus = "success"
	ValidationFailure  ValidationStatus = "failure"
	ValidationPending  ValidationStatus = "pending"
	ValidationError    ValidationStatus = "error"
	ValidationDisabled ValidationStatus = "disabled"
)

// Passing reports whether the validation does not block anything.
func (s ValidationStatus) Passing() bool {
	return s == ValidationSuccess || s == ValidationDisabled
}

// Readiness is the outcome of evaluating a wizard step.
type Readiness string

const (
	ReadinessReady    Readiness = "ready"
	ReadinessNotReady Readiness = "not-ready"
)
