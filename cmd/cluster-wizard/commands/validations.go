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

// Validations returns the command that prints installer validations.
func Validations() *cobra.Command {
	var (
		opts   handlers.ValidationsOptions
		flavor string
	)

	cmd := &cobra.Command{
		Use:   "validations",
		Short: "Print installer validations, optionally filtered by wizard step",
		Long: `Print the validations of AgentClusterInstalls and agents.

With --step only the validations the step depends on are printed. A raw
validationsInfo payload can be passed with --raw instead of manifests.

Examples:
  cluster-wizard validations -f cluster.yaml --step networking --failing
  cluster-wizard validations --raw "$(cat validations.json)" --scope host`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Flavor = wizard.Flavor(flavor)
			return handlers.Validations(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Files, "filename", "f", nil, "Manifest files to read, - for standard input")
	cmd.Flags().StringVar(&opts.Raw, "raw", "", "Raw validationsInfo payload")
	cmd.Flags().StringVar(&opts.Scope, "scope", handlers.ScopeHost, "Scope of the raw payload (cluster or host)")
	cmd.Flags().StringVar(&opts.Step, "step", "", "Wizard step to filter by")
	cmd.Flags().BoolVar(&opts.FailingOnly, "failing", false, "Print failing validations only")
	cmd.Flags().StringVar(&flavor, "flavor", string(wizard.FlavorCIM), "Wizard flavor (cim or ocm)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", handlers.OutputText, "Output format (text, json or yaml)")

	return cmd
}
