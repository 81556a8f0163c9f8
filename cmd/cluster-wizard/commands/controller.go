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

package commands

import (
	"time"

	"github.com/spf13/cobra"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/cmd/cluster-wizard/handlers"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/config"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/wizard"
)

// Controller returns the command that runs the readiness controller.
//
// Flags override the configuration file, which overrides the defaults.
func Controller() *cobra.Command {
	var (
		configPath      string
		flavor          string
		namespace       string
		metricsAddr     string
		probeAddr       string
		leaderElect     bool
		annotation      string
		requeueInterval time.Duration
		emitEvents      bool
	)

	cmd := &cobra.Command{
		Use:   "controller",
		Short: "Publish wizard step readiness on AgentClusterInstalls",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			overrides := config.Config{}
			if flags.Changed("flavor") {
				overrides.Flavor = wizard.Flavor(flavor)
			}
			if flags.Changed("namespace") {
				overrides.Namespace = namespace
			}
			if flags.Changed("metrics-bind-address") {
				overrides.MetricsBindAddress = metricsAddr
			}
			if flags.Changed("health-probe-bind-address") {
				overrides.HealthProbeBindAddress = probeAddr
			}
			if flags.Changed("leader-elect") {
				overrides.LeaderElection = ptr.To(leaderElect)
			}
			if flags.Changed("readiness-annotation") {
				overrides.ReadinessAnnotation = annotation
			}
			if flags.Changed("requeue-interval") {
				overrides.RequeueInterval = metav1.Duration{Duration: requeueInterval}
			}
			if flags.Changed("emit-events") {
				overrides.EmitEvents = ptr.To(emitEvents)
			}

			return handlers.RunController(cmd.Context(), handlers.ControllerOptions{
				ConfigPath: configPath,
				Overrides:  overrides,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	flags.StringVar(&flavor, "flavor", string(wizard.FlavorCIM), "Wizard flavor (cim or ocm)")
	flags.StringVar(&namespace, "namespace", "", "Restrict the controller to one namespace")
	flags.StringVar(&metricsAddr, "metrics-bind-address", config.DefaultMetricsBindAddress, "The address the metric endpoint binds to.")
	flags.StringVar(&probeAddr, "health-probe-bind-address", config.DefaultHealthProbeBindAddress, "The address the probe endpoint binds to.")
	flags.BoolVar(&leaderElect, "leader-elect", false, "Enable leader election for the controller manager.")
	flags.StringVar(&annotation, "readiness-annotation", "", "Annotation the step readiness is published under")
	flags.DurationVar(&requeueInterval, "requeue-interval", config.DefaultRequeueInterval, "Interval between evaluations without a watch event")
	flags.BoolVar(&emitEvents, "emit-events", true, "Emit Kubernetes events on readiness changes")

	return cmd
}
