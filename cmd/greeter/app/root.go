/*
Copyright 2026 The Fission Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package app

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

func NewRootCommand(logger logr.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "greeter",
		Short:        "Hello world HTTP function",
		Long:         "greeter answers HTTP requests with a greeting carrying the deployment tag (SF_TAG).",
		SilenceUsage: true,
		// serve is what the container runs, keep it the default
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, logger)
		},
	}
	addServeFlags(rootCmd.Flags())

	rootCmd.AddCommand(ServeCommand(logger))
	rootCmd.AddCommand(ProbeCommand(logger))
	rootCmd.AddCommand(VersionCommand())
	return rootCmd
}
