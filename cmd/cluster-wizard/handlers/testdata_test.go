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

package handlers

const clusterManifest = `
apiVersion: extensions.hive.openshift.io/v1beta1
kind: AgentClusterInstall
metadata:
  name: test-cluster
  namespace: default
spec:
  clusterDeploymentRef:
    name: test-cluster
status:
  debugInfo:
    state: ready
  validationsInfo:
    configuration:
    - id: pull-secret-set
      status: success
      message: The pull secret is set.
    network:
    - id: api-vips-defined
      status: failure
      message: API virtual IPs are undefined.
---
apiVersion: agent-install.openshift.io/v1beta1
kind: Agent
metadata:
  name: host-1
  namespace: default
spec:
  approved: true
  clusterDeploymentName:
    name: test-cluster
    namespace: default
status:
  debugInfo:
    state: known
  validationsInfo:
    hardware:
    - id: has-min-cpu-cores
      status: success
---
apiVersion: agent-install.openshift.io/v1beta1
kind: Agent
metadata:
  name: host-2
  namespace: default
spec:
  approved: false
status:
  debugInfo:
    state: known
---
apiVersion: metal3.io/v1alpha1
kind: BareMetalHost
metadata:
  name: bmh-1
  namespace: default
status:
  provisioning:
    state: provisioned
`

const installedClusterManifest = `
apiVersion: extensions.hive.openshift.io/v1beta1
kind: AgentClusterInstall
metadata:
  name: installed-cluster
  namespace: default
spec:
  clusterDeploymentRef:
    name: installed-cluster
status:
  conditions:
  - type: Validated
    status: "True"
    reason: ValidationsPassing
  - type: RequirementsMet
    status: "True"
    reason: ClusterAlreadyInstalling
  - type: Completed
    status: "True"
    reason: InstallationCompleted
    message: The installation has completed.
  - type: Stopped
    status: "False"
    reason: NotStopped
`

const infraEnvListManifest = `{
  "apiVersion": "v1",
  "kind": "List",
  "items": [
    {
      "apiVersion": "agent-install.openshift.io/v1beta1",
      "kind": "InfraEnv",
      "metadata": {"name": "test-infraenv", "namespace": "default"},
      "status": {
        "conditions": [
          {"type": "ImageCreated", "status": "True", "reason": "ImageCreated"}
        ]
      }
    }
  ]
}`
