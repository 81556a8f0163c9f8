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
	"github.com/spf13/cobra"

	"github.com/amd-enterprise-ai/cluster-wizard-engine/cmd/cluster-wizard/handlers"
	"github.com/amd-enterprise-ai/cluster-wizard-engine/internal/wizard"
)

// Evaluate returns the command that evaluates every wizard step of a cluster.
func Evaluate() *cobra.Command {
	var (
		opts   handlers.EvaluateOptions
		flavor string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the wizard step readiness of a cluster",
		Long: `Evaluate the readiness of every wizard step of one AgentClusterInstall.

The AgentClusterInstall, the agents bound to its cluster deployment and the
bare metal hosts of its namespace are read from manifest files, or from the
cluster of the current kubeconfig with --live.

Examples:
  # Evaluate the only AgentClusterInstall in a manifest
  cluster-wizard evaluate -f cluster.yaml -f agents.yaml

  # Read the manifests from standard input
  kubectl get agentclusterinstall,agent -o yaml | cluster-wizard evaluate -f -

  # Evaluate a live cluster
  cluster-wizard evaluate --live -n my-cluster --name my-cluster -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Flavor = wizard.Flavor(flavor)
			return handlers.Evaluate(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Files, "filename", "f", nil, "Manifest files to read, - for standard input")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Name of the AgentClusterInstall")
	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "n", "default", "Namespace of the AgentClusterInstall with --live")
	cmd.Flags().BoolVar(&opts.Live, "live", false, "Read the resources from the cluster of the current kubeconfig")
	cmd.Flags().StringVar(&flavor, "flavor", string(wizard.FlavorCIM), "Wizard flavor (cim or ocm)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", handlers.OutputText, "Output format (text, json or yaml)")

	return cmd
}
