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

// Package config holds the runtime configuration of the wizard engine.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then command line flags. Each layer only overrides the fields it sets.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/constants"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/wizard"
)

const (
	DefaultMetricsBindAddress     = ":8080"
	DefaultHealthProbeBindAddress = ":8081"
	DefaultRequeueInterval        = 5 * time.Minute
)

// Config is the engine configuration.
type Config struct {
	// Flavor selects the wizard step table.
	Flavor wizard.Flavor `json:"flavor,omitempty"`

	// Namespace restricts the controller to one namespace. Empty watches all namespaces.
	Namespace string `json:"namespace,omitempty"`

	MetricsBindAddress     string `json:"metricsBindAddress,omitempty"`
	HealthProbeBindAddress string `json:"healthProbeBindAddress,omitempty"`

	LeaderElection *bool `json:"leaderElection,omitempty"`

	// ReadinessAnnotation is the annotation the step readiness map is published under.
	ReadinessAnnotation string `json:"readinessAnnotation,omitempty"`

	// RequeueInterval is how often clusters are re-evaluated without a watch event.
	RequeueInterval metav1.Duration `json:"requeueInterval,omitempty"`

	// EmitEvents enables Kubernetes events on readiness changes.
	EmitEvents *bool `json:"emitEvents,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Flavor:                 wizard.FlavorCIM,
		MetricsBindAddress:     DefaultMetricsBindAddress,
		HealthProbeBindAddress: DefaultHealthProbeBindAddress,
		LeaderElection:         ptr.To(false),
		ReadinessAnnotation:    constants.DefaultReadinessAnnotation,
		RequeueInterval:        metav1.Duration{Duration: DefaultRequeueInterval},
		EmitEvents:             ptr.To(true),
	}
}

// Merge returns base with every field set in override applied on top.
func Merge(base, override Config) (Config, error) {
	merged := base
	if err := mergo.Merge(&merged, override, mergo.WithOverride, mergo.WithoutDereference); err != nil {
		return Config{}, fmt.Errorf("failed to merge configuration: %w", err)
	}
	return merged, nil
}

// Parse decodes a YAML or JSON configuration document.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}

// Load returns the defaults overridden by the file at path. An empty path
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	fileConfig, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	return Merge(cfg, fileConfig)
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	var errs []error
	if _, err := wizard.ForFlavor(c.Flavor); err != nil {
		errs = append(errs, err)
	}
	if c.ReadinessAnnotation == "" {
		errs = append(errs, errors.New("readinessAnnotation must not be empty"))
	}
	if c.RequeueInterval.Duration < 0 {
		errs = append(errs, fmt.Errorf("requeueInterval must not be negative, got %s", c.RequeueInterval.Duration))
	}
	return errors.Join(errs...)
}

func (c Config) LeaderElectionEnabled() bool {
	return ptr.Deref(c.LeaderElection, false)
}

func (c Config) EventsEnabled() bool {
	return ptr.Deref(c.EmitEvents, true)
}

// Steps returns the wizard step table selected by Flavor.
func (c Config) Steps() (*wizard.StepsMap, error) {
	return wizard.ForFlavor(c.Flavor)
}
