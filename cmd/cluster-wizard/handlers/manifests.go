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

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
	"sigs.k8s.io/yaml"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/api/v1beta1"
	controllerutils "github.com/amd-enterprise-ai/cluster-wizard-engine/internal/controller/utils"
)

// stdinPath selects standard input as the manifest source.
const stdinPath = "-"

// Manifests holds the installer resources read from manifest files.
type Manifests struct {
	ClusterInstalls []*unstructured.Unstructured
	Agents          []v1beta1.Agent
	BareMetalHosts  []v1beta1.BareMetalHost
	InfraEnvs       []v1beta1.InfraEnv

	// Objects keeps every decoded object in file order.
	Objects []*unstructured.Unstructured
}

// ReadManifests reads multi-document YAML or JSON files. List kinds are
// expanded into their items.
func ReadManifests(stdin io.Reader, paths ...string) (*Manifests, error) {
	if len(paths) == 0 {
		return nil, errors.New("at least one manifest file is required")
	}

	manifests := &Manifests{}
	for _, path := range paths {
		var objects []*unstructured.Unstructured
		var err error
		if path == stdinPath {
			objects, err = DecodeManifests(stdin)
		} else {
			objects, err = readManifestFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := manifests.add(objects...); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}
	return manifests, nil
}

func readManifestFile(path string) ([]*unstructured.Unstructured, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return DecodeManifests(f)
}

// DecodeManifests splits r into documents and decodes each one. Empty
// documents are skipped.
func DecodeManifests(r io.Reader) ([]*unstructured.Unstructured, error) {
	reader := utilyaml.NewYAMLReader(bufio.NewReader(r))

	var objects []*unstructured.Unstructured
	for {
		doc, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return objects, nil
		}
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(doc)) == 0 {
			continue
		}

		jsonDoc, err := yaml.YAMLToJSON(doc)
		if err != nil {
			return nil, err
		}
		if bytes.Equal(jsonDoc, []byte("null")) {
			continue
		}
		obj := &unstructured.Unstructured{}
		if err := obj.UnmarshalJSON(jsonDoc); err != nil {
			return nil, err
		}

		if !obj.IsList() {
			objects = append(objects, obj)
			continue
		}
		list, err := obj.ToList()
		if err != nil {
			return nil, err
		}
		for i := range list.Items {
			objects = append(objects, &list.Items[i])
		}
	}
}

func (m *Manifests) add(objects ...*unstructured.Unstructured) error {
	for _, obj := range objects {
		m.Objects = append(m.Objects, obj)
		switch obj.GroupVersionKind().GroupKind() {
		case v1beta1.AgentClusterInstallGVK.GroupKind():
			if _, err := controllerutils.FromUnstructured[v1beta1.AgentClusterInstall](obj); err != nil {
				return err
			}
			m.ClusterInstalls = append(m.ClusterInstalls, obj)
		case v1beta1.AgentGVK.GroupKind():
			agent, err := controllerutils.FromUnstructured[v1beta1.Agent](obj)
			if err != nil {
				return err
			}
			m.Agents = append(m.Agents, *agent)
		case v1beta1.BareMetalHostGVK.GroupKind():
			bmh, err := controllerutils.FromUnstructured[v1beta1.BareMetalHost](obj)
			if err != nil {
				return err
			}
			m.BareMetalHosts = append(m.BareMetalHosts, *bmh)
		case v1beta1.InfraEnvGVK.GroupKind():
			infraEnv, err := controllerutils.FromUnstructured[v1beta1.InfraEnv](obj)
			if err != nil {
				return err
			}
			m.InfraEnvs = append(m.InfraEnvs, *infraEnv)
		}
	}
	return nil
}

// ClusterInstall returns the AgentClusterInstall called name, or the only
// one when name is empty.
func (m *Manifests) ClusterInstall(name string) (*unstructured.Unstructured, error) {
	if name == "" {
		switch len(m.ClusterInstalls) {
		case 0:
			return nil, errors.New("no AgentClusterInstall found in the manifests")
		case 1:
			return m.ClusterInstalls[0], nil
		default:
			return nil, fmt.Errorf("found %d AgentClusterInstalls, select one with --name", len(m.ClusterInstalls))
		}
	}
	for _, aci := range m.ClusterInstalls {
		if aci.GetName() == name {
			return aci, nil
		}
	}
	return nil, fmt.Errorf("AgentClusterInstall %q not found in the manifests", name)
}

// AgentsFor returns the agents bound to the cluster deployment of aci.
func (m *Manifests) AgentsFor(aci *v1beta1.AgentClusterInstall) []v1beta1.Agent {
	var agents []v1beta1.Agent
	for _, agent := range m.Agents {
		if agent.BelongsTo(aci.Namespace, aci.ClusterDeploymentName()) {
			agents = append(agents, agent)
		}
	}
	return agents
}

// BareMetalHostsIn returns the bare metal hosts of namespace.
func (m *Manifests) BareMetalHostsIn(namespace string) []v1beta1.BareMetalHost {
	var hosts []v1beta1.BareMetalHost
	for _, bmh := range m.BareMetalHosts {
		if bmh.Namespace == namespace {
			hosts = append(hosts, bmh)
		}
	}
	return hosts
}
