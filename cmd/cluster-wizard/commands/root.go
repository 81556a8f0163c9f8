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

// Package commands defines the CLI command structure and flag bindings.
//
// Command execution is delegated to handler functions in the handlers package.
package commands

import (
	"flag"

	"github.com/spf13/cobra"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// Root returns the root command for the cluster-wizard CLI.
func Root() *cobra.Command {
	logOpts := zap.Options{Development: true}
	logFlags := flag.NewFlagSet("zap", flag.ContinueOnError)
	logOpts.BindFlags(logFlags)

	cmd := &cobra.Command{
		Use:   "cluster-wizard",
		Short: "Evaluate assisted installer wizard readiness",
		Long: `Evaluate the readiness of the assisted installer cluster wizard steps.

The evaluate, classify and validations commands read AgentClusterInstall,
Agent, BareMetalHost and InfraEnv resources from manifest files. The
controller command publishes the step readiness of every AgentClusterInstall
as an annotation.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			ctrl.SetLogger(zap.New(zap.UseFlagOptions(&logOpts)))
			cmd.SetContext(log.IntoContext(cmd.Context(), ctrl.Log))
		},
	}
	cmd.PersistentFlags().AddGoFlagSet(logFlags)

	cmd.AddCommand(Evaluate())
	cmd.AddCommand(Classify())
	cmd.AddCommand(Validations())
	cmd.AddCommand(Controller())
	cmd.AddCommand(Version())

	return cmd
}
