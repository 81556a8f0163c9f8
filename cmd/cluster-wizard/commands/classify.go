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
)

// Classify returns the command that derives resource statuses from conditions.
func Classify() *cobra.Command {
	var opts handlers.ClassifyOptions

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Derive the status of resources from their conditions",
		Long: `Derive the status of AgentClusterInstalls, agents and bare metal hosts.

AgentClusterInstalls and agents are classified by their conditions, bare
metal hosts by their provisioning state. Other kinds, such as InfraEnvs, list
their reduced conditions.

Examples:
  cluster-wizard classify -f cluster.yaml
  cluster-wizard classify -f agents.yaml --exclude-approval-override -o yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Classify(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Files, "filename", "f", nil, "Manifest files to read, - for standard input")
	cmd.Flags().BoolVar(&opts.ExcludeApprovalOverride, "exclude-approval-override", false,
		"Classify unapproved agents by their conditions")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", handlers.OutputText, "Output format (text, json or yaml)")

	return cmd
}
