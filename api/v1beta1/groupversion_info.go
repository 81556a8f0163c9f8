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

// Package v1beta1 contains the subset of the assisted-installer custom resources
// read by the wizard status engine.
//
// The types are plain structs: resources are fetched as unstructured objects and
// converted, so no scheme registration or generated deep-copy code is needed.
package v1beta1

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
)

var (
	// AgentGroupVersion is the group version of Agent and InfraEnv resources.
	AgentGroupVersion = schema.GroupVersion{Group: "agent-install.openshift.io", Version: "v1beta1"}

	// ExtensionsGroupVersion is the group version of AgentClusterInstall resources.
	ExtensionsGroupVersion = schema.GroupVersion{Group: "extensions.hive.openshift.io", Version: "v1beta1"}

	// Metal3GroupVersion is the group version of BareMetalHost resources.
	Metal3GroupVersion = schema.GroupVersion{Group: "metal3.io", Version: "v1alpha1"}
)

var (
	AgentGVK                   = AgentGroupVersion.WithKind("Agent")
	AgentListGVK               = AgentGroupVersion.WithKind("AgentList")
	InfraEnvGVK                = AgentGroupVersion.WithKind("InfraEnv")
	AgentClusterInstallGVK     = ExtensionsGroupVersion.WithKind("AgentClusterInstall")
	AgentClusterInstallListGVK = ExtensionsGroupVersion.WithKind("AgentClusterInstallList")
	BareMetalHostGVK           = Metal3GroupVersion.WithKind("BareMetalHost")
	BareMetalHostListGVK       = Metal3GroupVersion.WithKind("BareMetalHostList")
)
